package dynamo

// DynamoDB attribute and index names used across repos.
// Using constants prevents silent runtime bugs caused by key typos.
const (
	attrUserID            = "user_id"
	attrEmail             = "email"
	attrVerificationToken = "verification_token"
	attrVerifiedWith      = "verified_with"
	attrUpdatedAt         = "updated_at"

	attrContactID = "contact_id"
	attrOwnerID   = "owner_id"
	attrFavorite  = "favorite"

	indexEmail             = "email-index"
	indexVerificationToken = "verification_token-index"
	indexVerifiedWith      = "verified_with-index"
	indexOwner             = "owner_id-index"
)
