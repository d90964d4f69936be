package services

//go:generate mockgen -source=session.go -destination=session_mock.go -package=services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-notebook/internal/jwt"
	"github.com/sbilibin2017/gw-notebook/internal/logger"
	"github.com/sbilibin2017/gw-notebook/internal/models"
)

// TokenManager mints and parses session tokens.
type TokenManager interface {
	Generate(ctx context.Context, ident models.Identity, sessionID string) (string, time.Time, error)
	GetClaims(ctx context.Context, tokenString string) (*jwt.Claims, error)
}

// SessionStore is the registry of live sessions.
type SessionStore interface {
	Save(ctx context.Context, sessionID string, userID uuid.UUID, ttl time.Duration) error
	Exists(ctx context.Context, sessionID string) (bool, error)
	Delete(ctx context.Context, sessionID string) error
}

// SessionService issues, resolves and revokes sessions.
// A session is a signed token whose id is registered in the SessionStore.
type SessionService struct {
	tokens TokenManager
	store  SessionStore
	reader UserReader
}

// NewSessionService creates a new SessionService instance.
func NewSessionService(tokens TokenManager, store SessionStore, reader UserReader) *SessionService {
	return &SessionService{tokens: tokens, store: store, reader: reader}
}

// Issue starts a session for ident and returns its token and expiry.
func (s *SessionService) Issue(ctx context.Context, ident models.Identity) (string, time.Time, error) {
	sessionID := uuid.NewString()

	token, expiresAt, err := s.tokens.Generate(ctx, ident, sessionID)
	if err != nil {
		logger.Log.Errorw("failed to generate JWT", "err", err)
		return "", time.Time{}, fmt.Errorf("generate token: %w", err)
	}

	if err := s.store.Save(ctx, sessionID, ident.UserID, time.Until(expiresAt)); err != nil {
		logger.Log.Errorw("failed to register session", "err", err)
		return "", time.Time{}, fmt.Errorf("register session: %w", err)
	}

	return token, expiresAt, nil
}

// Resolve returns the identity carried by a live session token.
// Missing, malformed, expired and revoked tokens yield ErrUnauthorized.
func (s *SessionService) Resolve(ctx context.Context, token string) (*models.Identity, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}

	claims, err := s.tokens.GetClaims(ctx, token)
	if err != nil {
		logger.Log.Debugw("session token rejected", "error", err)
		return nil, ErrUnauthorized
	}

	live, err := s.store.Exists(ctx, claims.SessionID())
	if err != nil {
		logger.Log.Errorw("failed to look up session", "err", err)
		return nil, fmt.Errorf("look up session: %w", err)
	}
	if !live {
		return nil, ErrUnauthorized
	}

	ident := claims.Identity()
	return &ident, nil
}

// Current resolves the token and refreshes username and email from the account store.
func (s *SessionService) Current(ctx context.Context, token string) (*models.Identity, error) {
	ident, err := s.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}

	user, err := s.reader.GetByID(ctx, ident.UserID)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return nil, fmt.Errorf("look up account: %w", err)
	}
	if user == nil {
		return nil, ErrUnauthorized
	}

	fresh := user.Identity()
	return &fresh, nil
}

// Revoke ends the session behind token. Unparseable tokens are ignored.
func (s *SessionService) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	claims, err := s.tokens.GetClaims(ctx, token)
	if err != nil {
		return nil
	}

	if err := s.store.Delete(ctx, claims.SessionID()); err != nil {
		logger.Log.Errorw("failed to revoke session", "err", err)
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}
