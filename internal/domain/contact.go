package domain

import "time"

type Contact struct {
	ContactID string    `json:"id" dynamodbav:"contact_id" bson:"_id"`
	Name      string    `json:"name" dynamodbav:"name" bson:"name"`
	Email     string    `json:"email" dynamodbav:"email" bson:"email"`
	Phone     string    `json:"phone" dynamodbav:"phone" bson:"phone"`
	Favorite  bool      `json:"favorite" dynamodbav:"favorite" bson:"favorite"`
	OwnerID   string    `json:"owner" dynamodbav:"owner_id" bson:"owner"`
	CreatedAt time.Time `json:"-" dynamodbav:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"-" dynamodbav:"updated_at" bson:"updated_at"`
}

// CreateContactRequest is also used for full replacement (PUT). Favorite is optional:
// absent on create means false, absent on replace keeps the stored value.
type CreateContactRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required,phone"`
	Favorite *bool  `json:"favorite"`
}

type UpdateFavoriteRequest struct {
	Favorite *bool `json:"favorite" validate:"required"`
}

// ContactFilter selects the contacts of one owner, optionally narrowed by favorite.
type ContactFilter struct {
	OwnerID  string
	Favorite *bool
}
