package models

// SignupRequest represents the JSON body for user registration
// swagger:model SignupRequest
type SignupRequest struct {
	// Username
	// required: true
	// example: alice
	Username string `json:"username"`

	// Email
	// required: true
	// example: alice@example.com
	Email string `json:"email"`

	// Password
	// required: true
	// example: Abc12!@
	Password string `json:"password"`

	// Password confirmation, checked only when present
	// example: Abc12!@
	ConfirmPassword string `json:"confirmPassword,omitempty"`
}

// SignupResponse represents a successful registration response
// swagger:model SignupResponse
type SignupResponse struct {
	// example: true
	Success bool `json:"success"`

	// Created account
	User Identity `json:"user"`
}

// SignupErrorResponse represents an error response for registration
// swagger:model SignupErrorResponse
type SignupErrorResponse struct {
	// Error message
	// example: Email already exists
	Error string `json:"error"`
}

// UsernameTakenResponse is returned when the requested username is held by another account
// swagger:model UsernameTakenResponse
type UsernameTakenResponse struct {
	// example: Username already exists
	Error string `json:"error"`

	// Alternative usernames that were free at the time of the check
	// example: ["alice123","ecila123","alice_77"]
	Suggestions []string `json:"suggestions"`
}
