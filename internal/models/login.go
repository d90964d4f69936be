package models

// LoginRequest represents the JSON body for user login.
// Either Username or Email identifies the account; Email wins when both are set.
// swagger:model LoginRequest
type LoginRequest struct {
	// Username
	// example: alice
	Username string `json:"username,omitempty"`

	// Email
	// example: alice@example.com
	Email string `json:"email,omitempty"`

	// Password
	// required: true
	// example: Abc12!@
	Password string `json:"password"`
}

// LoginResponse represents a successful login response
// swagger:model LoginResponse
type LoginResponse struct {
	// example: true
	Success bool `json:"success"`

	// example: Login successful
	Message string `json:"message"`

	// Session token, also set as an HttpOnly cookie
	// example: JWT_TOKEN
	Token string `json:"token"`

	User Identity `json:"user"`
}

// LogoutResponse represents a successful logout response
// swagger:model LogoutResponse
type LogoutResponse struct {
	// example: true
	Success bool `json:"success"`

	// example: Logged out
	Message string `json:"message"`
}

// SessionResponse reports whether the request carries a live session
// swagger:model SessionResponse
type SessionResponse struct {
	// example: true
	IsLoggedIn bool `json:"isLoggedIn"`

	User *Identity `json:"user,omitempty"`
}

// ErrorResponse is the generic error body
// swagger:model ErrorResponse
type ErrorResponse struct {
	// Error message
	// example: Internal server error
	Error string `json:"error"`
}
