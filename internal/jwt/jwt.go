package jwt

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-notebook/internal/models"
)

// DefaultCookieName is the cookie carrying the session token.
const DefaultCookieName = "session_token"

var (
	ErrTokenMissing   = errors.New("session token missing")
	ErrInvalidHeader  = errors.New("invalid authorization header format")
	ErrInvalidToken   = errors.New("invalid token")
	ErrInvalidSubject = errors.New("invalid user_id format")
)

// Claims are the session claims carried by a token.
type Claims struct {
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	jwt.RegisteredClaims
}

// SessionID returns the token id, which keys the server-side session.
func (c *Claims) SessionID() string {
	return c.ID
}

// Identity returns the identity recorded in the token.
func (c *Claims) Identity() models.Identity {
	return models.Identity{UserID: c.UserID, Username: c.Username, Email: c.Email}
}

// JWT provides methods to generate and validate JWT tokens.
type JWT struct {
	secretKey  string        // Secret key for signing tokens
	exp        time.Duration // Token expiration duration
	cookieName string        // Cookie consulted when no Authorization header is sent
}

// Option configures a JWT.
type Option func(*JWT)

// WithSecretKey sets the HMAC signing key.
func WithSecretKey(key string) Option {
	return func(j *JWT) { j.secretKey = key }
}

// WithExpiration sets the token lifetime.
func WithExpiration(exp time.Duration) Option {
	return func(j *JWT) { j.exp = exp }
}

// WithCookieName sets the session cookie name.
func WithCookieName(name string) Option {
	return func(j *JWT) {
		if name != "" {
			j.cookieName = name
		}
	}
}

// New creates a new JWT instance
func New(opts ...Option) *JWT {
	j := &JWT{
		exp:        24 * time.Hour,
		cookieName: DefaultCookieName,
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Expiration returns the token lifetime.
func (j *JWT) Expiration() time.Duration {
	return j.exp
}

// CookieName returns the session cookie name.
func (j *JWT) CookieName() string {
	return j.cookieName
}

// Generate creates a token for the identity under the given session id.
func (j *JWT) Generate(ctx context.Context, ident models.Identity, sessionID string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(j.exp)
	claims := Claims{
		UserID:   ident.UserID,
		Username: ident.Username,
		Email:    ident.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			Subject:   ident.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// GetClaims parses and validates the token string and returns its claims.
func (j *JWT) GetClaims(ctx context.Context, tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(j.secretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.UserID == uuid.Nil {
		return nil, ErrInvalidSubject
	}
	return claims, nil
}

// Validate reports whether the token is well-formed, signed and unexpired.
func (j *JWT) Validate(ctx context.Context, tokenString string) error {
	_, err := j.GetClaims(ctx, tokenString)
	return err
}

// GetTokenFromRequest extracts the token from the Authorization header,
// falling back to the session cookie.
func (j *JWT) GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error) {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		parts := strings.Fields(authHeader)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return "", ErrInvalidHeader
		}
		return parts[1], nil
	}

	cookie, err := r.Cookie(j.cookieName)
	if err != nil || cookie.Value == "" {
		return "", ErrTokenMissing
	}
	return cookie.Value, nil
}
