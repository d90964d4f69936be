package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Store-level unique constraint violations on the users table.
var (
	ErrUsernameConflict = errors.New("username violates unique constraint")
	ErrEmailConflict    = errors.New("email violates unique constraint")
)

// UserDB represents a user record in the database
type UserDB struct {
	UserID       uuid.UUID `json:"id" db:"user_id"`            // Primary key
	Username     string    `json:"username" db:"username"`     // Unique, case-sensitive username
	Email        string    `json:"email" db:"email"`           // Unique, lowercased email
	PasswordHash string    `json:"-" db:"password_hash"`       // bcrypt hash, never serialized
	CreatedAt    time.Time `json:"created_at" db:"created_at"` // Creation timestamp
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"` // Last update timestamp
}

// Identity returns the public projection of the user.
func (u *UserDB) Identity() Identity {
	return Identity{
		UserID:   u.UserID,
		Username: u.Username,
		Email:    u.Email,
	}
}

// UserUpdate holds the account fields replaced by a profile update.
// Nil fields are left untouched.
type UserUpdate struct {
	Username     *string
	Email        *string
	PasswordHash *string
}

// Empty reports whether the update changes nothing.
func (u UserUpdate) Empty() bool {
	return u.Username == nil && u.Email == nil && u.PasswordHash == nil
}
