package models

// ProfileUpdateRequest represents the JSON body of a profile update.
// Every field is optional.
// swagger:model ProfileUpdateRequest
type ProfileUpdateRequest struct {
	// example: alice2
	Username string `json:"username,omitempty"`

	// example: alice2@example.com
	Email string `json:"email,omitempty"`

	// Required when NewPassword is set
	CurrentPassword string `json:"currentPassword,omitempty"`

	NewPassword string `json:"newPassword,omitempty"`
}

// ProfileUpdateResponse is returned by the profile endpoint on success and failure
// swagger:model ProfileUpdateResponse
type ProfileUpdateResponse struct {
	// example: true
	Success bool `json:"success"`

	// example: Profile updated successfully
	Message string `json:"message,omitempty"`

	// example: Email already exists
	Error string `json:"error,omitempty"`

	User *Identity `json:"user,omitempty"`
}

// ProfileUpdateResult is what the profile service hands back to the handler.
type ProfileUpdateResult struct {
	Changed bool
	User    Identity
}
