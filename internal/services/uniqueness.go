package services

//go:generate mockgen -source=uniqueness.go -destination=uniqueness_mock.go -package=services

import (
	"context"
	"fmt"
	"math/rand"
	"slices"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-notebook/internal/models"
)

const (
	suggestionCount    = 3
	suggestionAttempts = 10
	suggestionSuffixes = 1000
)

// UserReader defines read-only operations for accounts.
type UserReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.UserDB, error)
	GetByUsername(ctx context.Context, username string) (*models.UserDB, error)
	GetByEmail(ctx context.Context, email string) (*models.UserDB, error)
}

// RandomSource draws suffixes for username suggestions.
type RandomSource interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int {
	return rand.Intn(n)
}

// UniquenessResolver answers "is this taken?" and proposes free usernames.
type UniquenessResolver struct {
	reader UserReader
	rnd    RandomSource
}

// NewUniquenessResolver creates a resolver. A nil rnd uses the package-level math/rand/v2 source.
func NewUniquenessResolver(reader UserReader, rnd RandomSource) *UniquenessResolver {
	if rnd == nil {
		rnd = globalRand{}
	}
	return &UniquenessResolver{reader: reader, rnd: rnd}
}

// EmailTaken reports whether an account holds this (already lowercased) email.
func (r *UniquenessResolver) EmailTaken(ctx context.Context, email string) (bool, error) {
	user, err := r.reader.GetByEmail(ctx, email)
	if err != nil {
		return false, fmt.Errorf("check email: %w", err)
	}
	return user != nil, nil
}

// UsernameTaken reports whether an account holds exactly this username.
func (r *UniquenessResolver) UsernameTaken(ctx context.Context, username string) (bool, error) {
	user, err := r.reader.GetByUsername(ctx, username)
	if err != nil {
		return false, fmt.Errorf("check username: %w", err)
	}
	return user != nil, nil
}

// Suggest proposes up to three usernames derived from base that no account holds.
// Fewer are returned when the attempt budget runs out.
func (r *UniquenessResolver) Suggest(ctx context.Context, base string) ([]string, error) {
	suggestions := make([]string, 0, suggestionCount)

	for attempt := 0; attempt < suggestionAttempts && len(suggestions) < suggestionCount; attempt++ {
		candidate := candidateFor(base, r.rnd.IntN(suggestionSuffixes), suggestions)
		if slices.Contains(suggestions, candidate) {
			continue
		}

		taken, err := r.UsernameTaken(ctx, candidate)
		if err != nil {
			return nil, err
		}
		if !taken {
			suggestions = append(suggestions, candidate)
		}
	}

	return suggestions, nil
}

func candidateFor(base string, n int, already []string) string {
	patterns := []string{
		fmt.Sprintf("%s%d", base, n),
		fmt.Sprintf("%s%d", reverse(base), n),
		fmt.Sprintf("%s_%d", base, n),
	}
	for _, p := range patterns {
		if !slices.Contains(already, p) {
			return p
		}
	}
	return fmt.Sprintf("%s_%d", base, n)
}

func reverse(s string) string {
	runes := []rune(s)
	slices.Reverse(runes)
	return string(runes)
}
