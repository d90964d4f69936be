package models

import "github.com/google/uuid"

// Identity is the authenticated caller, resolved once per request and
// passed explicitly into every service call that acts on behalf of a user.
// swagger:model Identity
type Identity struct {
	// User ID
	// example: 0b7e6a8e-3f53-4f0c-9a55-6c1f3b1f1f2a
	UserID uuid.UUID `json:"id"`

	// Username
	// example: alice
	Username string `json:"username"`

	// Email
	// example: alice@example.com
	Email string `json:"email"`
}
