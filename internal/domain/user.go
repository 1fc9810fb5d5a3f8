package domain

import "time"

// Subscription tiers.
const (
	SubscriptionStarter  = "starter"
	SubscriptionPro      = "pro"
	SubscriptionBusiness = "business"
)

// Subscriptions lists every accepted subscription tier.
var Subscriptions = []string{SubscriptionStarter, SubscriptionPro, SubscriptionBusiness}

// User is a registered account. VerificationToken is set while the account is
// unverified and cleared on verification; VerifiedWith keeps the consumed token so
// a repeated verification attempt can be answered with ErrAlreadyVerified.
type User struct {
	UserID            string    `json:"id" dynamodbav:"user_id" bson:"_id"`
	Email             string    `json:"email" dynamodbav:"email" bson:"email"`
	PasswordHash      string    `json:"-" dynamodbav:"password_hash" bson:"password_hash"`
	Subscription      string    `json:"subscription" dynamodbav:"subscription" bson:"subscription"`
	AvatarURL         string    `json:"avatarUrl" dynamodbav:"avatar_url" bson:"avatar_url"`
	Verified          bool      `json:"verified" dynamodbav:"verified" bson:"verified"`
	VerificationToken *string   `json:"-" dynamodbav:"verification_token,omitempty" bson:"verification_token,omitempty"`
	VerifiedWith      string    `json:"-" dynamodbav:"verified_with,omitempty" bson:"verified_with,omitempty"`
	CreatedAt         time.Time `json:"-" dynamodbav:"created_at" bson:"created_at"`
	UpdatedAt         time.Time `json:"-" dynamodbav:"updated_at" bson:"updated_at"`
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ResendVerificationRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type UpdateSubscriptionRequest struct {
	Subscription string `json:"subscription" validate:"required,subscription"`
}
