package models

import "time"

// User represents an account entity used for authentication and authorization.
// It contains identity attributes and credential-related data.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the internal unique identifier of the user.
	UserID int64 `json:"id"`

	// Username is the unique display login of the user.
	Username string `json:"username"`

	// Email is the unique e-mail address of the user.
	Email string `json:"email"`

	// PasswordHash stores the bcrypt hash of the user's password.
	// It is empty for accounts provisioned from a federated identity
	// provider and is never exposed via JSON.
	PasswordHash string `json:"-"`

	// ExternalSubject is the stable subject identifier assigned by the
	// federated identity provider ("sub" claim). Empty for accounts that
	// authenticate with a local password.
	ExternalSubject string `json:"-"`

	// IsAdmin reports whether the user may perform moderation actions.
	IsAdmin bool `json:"is_admin"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return `"user"`
}
