package services

//go:generate mockgen -source=auth.go -destination=auth_mock.go -package=services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-notebook/internal/logger"
	"github.com/sbilibin2017/gw-notebook/internal/models"
	"github.com/sbilibin2017/gw-notebook/internal/validators"
)

// UserWriter defines write operations for accounts.
type UserWriter interface {
	Create(ctx context.Context, username, email, passwordHash string) (*models.UserDB, error)
	Update(ctx context.Context, id uuid.UUID, upd models.UserUpdate) (*models.UserDB, error)
}

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
	VerifyDummy(password string)
}

// AuthService handles registration and credential checks.
type AuthService struct {
	reader    UserReader
	writer    UserWriter
	hasher    PasswordHasher
	validator *validators.Validator
	resolver  *UniquenessResolver
	events    AccountEventPublisher
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(
	reader UserReader,
	writer UserWriter,
	hasher PasswordHasher,
	validator *validators.Validator,
	resolver *UniquenessResolver,
	events AccountEventPublisher,
) *AuthService {
	return &AuthService{
		reader:    reader,
		writer:    writer,
		hasher:    hasher,
		validator: validator,
		resolver:  resolver,
		events:    publisherOrNoop(events),
	}
}

// Register validates the request, checks uniqueness and stores a new account.
//
// Errors: *validators.RuleError, ErrEmailAlreadyExists, *UsernameTakenError,
// or a wrapped infrastructure error.
func (svc *AuthService) Register(ctx context.Context, req models.SignupRequest) (*models.Identity, error) {
	req.Email = strings.ToLower(req.Email)

	if err := svc.validator.ValidateSignup(req); err != nil {
		logger.Log.Infow("signup rejected", "username", req.Username, "error", err)
		return nil, err
	}

	taken, err := svc.resolver.EmailTaken(ctx, req.Email)
	if err != nil {
		logger.Log.Errorw("failed to check email", "err", err)
		return nil, err
	}
	if taken {
		logger.Log.Infow("email already registered", "email", req.Email)
		return nil, ErrEmailAlreadyExists
	}

	taken, err = svc.resolver.UsernameTaken(ctx, req.Username)
	if err != nil {
		logger.Log.Errorw("failed to check username", "err", err)
		return nil, err
	}
	if taken {
		return nil, svc.usernameTaken(ctx, req.Username)
	}

	hash, err := svc.hasher.Hash(req.Password)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := svc.writer.Create(ctx, req.Username, req.Email, hash)
	switch {
	case errors.Is(err, models.ErrEmailConflict):
		logger.Log.Infow("email registered concurrently", "email", req.Email)
		return nil, ErrEmailAlreadyExists
	case errors.Is(err, models.ErrUsernameConflict):
		return nil, svc.usernameTaken(ctx, req.Username)
	case err != nil:
		logger.Log.Errorw("failed to save user", "err", err)
		return nil, fmt.Errorf("create account: %w", err)
	}

	ident := user.Identity()
	svc.events.Publish(ctx, models.EventUserRegistered, ident.UserID, "")

	logger.Log.Infow("user registered", "user_id", ident.UserID, "username", ident.Username)
	return &ident, nil
}

func (svc *AuthService) usernameTaken(ctx context.Context, username string) error {
	suggestions, err := svc.resolver.Suggest(ctx, username)
	if err != nil {
		logger.Log.Errorw("failed to build username suggestions", "err", err)
		return err
	}
	logger.Log.Infow("username already taken", "username", username, "suggestions", suggestions)
	return &UsernameTakenError{Suggestions: suggestions}
}

// Authenticate checks credentials and returns the matching identity.
// The identifier is the email when present, otherwise the username.
// Unknown accounts and wrong passwords both yield ErrInvalidCredentials.
func (svc *AuthService) Authenticate(ctx context.Context, req models.LoginRequest) (*models.Identity, error) {
	var (
		user *models.UserDB
		err  error
	)

	switch {
	case req.Email != "":
		user, err = svc.reader.GetByEmail(ctx, strings.ToLower(req.Email))
	case req.Username != "":
		user, err = svc.reader.GetByUsername(ctx, req.Username)
	}
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return nil, fmt.Errorf("look up account: %w", err)
	}

	if user == nil {
		svc.hasher.VerifyDummy(req.Password)
		logger.Log.Infow("login failed", "reason", "unknown account")
		return nil, ErrInvalidCredentials
	}

	if req.Password == "" || !svc.hasher.Verify(req.Password, user.PasswordHash) {
		logger.Log.Infow("login failed", "reason", "password mismatch", "user_id", user.UserID)
		return nil, ErrInvalidCredentials
	}

	ident := user.Identity()
	return &ident, nil
}
