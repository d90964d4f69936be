package services

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

// AfterCommitFunc defers fn until the transaction bound to ctx commits.
type AfterCommitFunc func(ctx context.Context, fn func())

func runNow(_ context.Context, fn func()) { fn() }

// ProfileService edits the caller's own account.
type ProfileService struct {
	reader      UserReader
	writer      UserWriter
	hasher      PasswordHasher
	validator   *validators.Validator
	events      AccountEventPublisher
	afterCommit AfterCommitFunc
}

// NewProfileService creates a new ProfileService instance.
func NewProfileService(
	reader UserReader,
	writer UserWriter,
	hasher PasswordHasher,
	validator *validators.Validator,
	events AccountEventPublisher,
	afterCommit AfterCommitFunc,
) *ProfileService {
	if afterCommit == nil {
		afterCommit = runNow
	}
	return &ProfileService{
		reader:      reader,
		writer:      writer,
		hasher:      hasher,
		validator:   validator,
		events:      publisherOrNoop(events),
		afterCommit: afterCommit,
	}
}

// UpdateProfile applies the non-empty fields of req to the account userID.
// Only the account owner may edit it.
func (s *ProfileService) UpdateProfile(
	ctx context.Context,
	caller models.Identity,
	userID uuid.UUID,
	req models.ProfileUpdateRequest,
) (*models.ProfileUpdateResult, error) {
	if caller.UserID != userID {
		logger.Log.Warnw("profile update for another account", "caller", caller.UserID, "target", userID)
		return nil, ErrUnauthorized
	}

	user, err := s.reader.GetByID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return nil, fmt.Errorf("look up account: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	var upd models.UserUpdate

	if email := strings.ToLower(req.Email); email != "" && email != user.Email {
		if err := s.validator.ValidateEmail(email); err != nil {
			return nil, err
		}
		other, err := s.reader.GetByEmail(ctx, email)
		if err != nil {
			logger.Log.Errorw("failed to check email", "err", err)
			return nil, fmt.Errorf("check email: %w", err)
		}
		if other != nil && other.UserID != user.UserID {
			return nil, ErrEmailAlreadyExists
		}
		upd.Email = &email
	}

	if username := req.Username; username != "" && username != user.Username {
		if err := s.validator.ValidateUsername(username); err != nil {
			return nil, err
		}
		other, err := s.reader.GetByUsername(ctx, username)
		if err != nil {
			logger.Log.Errorw("failed to check username", "err", err)
			return nil, fmt.Errorf("check username: %w", err)
		}
		if other != nil && other.UserID != user.UserID {
			return nil, ErrUsernameAlreadyExists
		}
		upd.Username = &username
	}

	if req.NewPassword != "" {
		if req.CurrentPassword == "" {
			return nil, ErrCurrentPasswordRequired
		}
		if !s.hasher.Verify(req.CurrentPassword, user.PasswordHash) {
			logger.Log.Infow("profile update rejected", "user_id", user.UserID, "reason", "current password mismatch")
			return nil, ErrInvalidCurrentPassword
		}
		if err := s.validator.ValidatePassword(req.NewPassword); err != nil {
			return nil, err
		}
		hash, err := s.hasher.Hash(req.NewPassword)
		if err != nil {
			logger.Log.Errorw("failed to hash password", "err", err)
			return nil, fmt.Errorf("hash password: %w", err)
		}
		upd.PasswordHash = &hash
	}

	if upd.Empty() {
		return &models.ProfileUpdateResult{Changed: false, User: user.Identity()}, nil
	}

	updated, err := s.writer.Update(ctx, user.UserID, upd)
	switch {
	case errors.Is(err, models.ErrEmailConflict):
		return nil, ErrEmailAlreadyExists
	case errors.Is(err, models.ErrUsernameConflict):
		return nil, ErrUsernameAlreadyExists
	case err != nil:
		logger.Log.Errorw("failed to update user", "err", err)
		return nil, fmt.Errorf("update account: %w", err)
	case updated == nil:
		return nil, ErrUserNotFound
	}

	s.afterCommit(ctx, func() {
		s.events.Publish(ctx, models.EventUserProfileUpdated, updated.UserID, "")
	})

	logger.Log.Infow("profile updated", "user_id", updated.UserID)
	return &models.ProfileUpdateResult{Changed: true, User: updated.Identity()}, nil
}
