package mongoinfra

// BSON field names used in filters and updates.
const (
	fieldID                = "_id"
	fieldEmail             = "email"
	fieldVerificationToken = "verification_token"
	fieldVerifiedWith      = "verified_with"
	fieldUpdatedAt         = "updated_at"
	fieldOwner             = "owner"
	fieldFavorite          = "favorite"
)
