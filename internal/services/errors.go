package services

import "errors"

// Errors returned by the services. Handlers map them to HTTP responses.
var (
	ErrEmailAlreadyExists      = errors.New("email already exists")
	ErrUsernameAlreadyExists   = errors.New("username already exists")
	ErrInvalidCredentials      = errors.New("invalid credentials")
	ErrUnauthorized            = errors.New("unauthorized")
	ErrUserNotFound            = errors.New("user not found")
	ErrCurrentPasswordRequired = errors.New("current password is required")
	ErrInvalidCurrentPassword  = errors.New("current password is incorrect")
	ErrNoteNotFound            = errors.New("note not found")
)

// UsernameTakenError is returned by registration when the username is held
// by another account. It carries alternatives that were free at the time of the check.
type UsernameTakenError struct {
	Suggestions []string
}

func (e *UsernameTakenError) Error() string {
	return ErrUsernameAlreadyExists.Error()
}

func (e *UsernameTakenError) Unwrap() error {
	return ErrUsernameAlreadyExists
}
