package services

//go:generate mockgen -source=notes.go -destination=notes_mock.go -package=services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-notebook/internal/logger"
	"github.com/sbilibin2017/gw-notebook/internal/models"
	"github.com/sbilibin2017/gw-notebook/internal/validators"
)

// NoteStore persists notes scoped to their owner.
type NoteStore interface {
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.NoteDB, error)
	GetByID(ctx context.Context, noteID, ownerID uuid.UUID) (*models.NoteDB, error)
	Create(ctx context.Context, ownerID uuid.UUID, title, content string) (*models.NoteDB, error)
	Update(ctx context.Context, noteID, ownerID uuid.UUID, title, content string) (*models.NoteDB, error)
	Delete(ctx context.Context, noteID, ownerID uuid.UUID) (bool, error)
}

// NoteService is note CRUD on behalf of the caller.
// A note that exists but belongs to someone else is reported as ErrNoteNotFound.
type NoteService struct {
	store     NoteStore
	validator *validators.Validator
	events    AccountEventPublisher
}

// NewNoteService creates a new NoteService instance.
func NewNoteService(store NoteStore, validator *validators.Validator, events AccountEventPublisher) *NoteService {
	return &NoteService{store: store, validator: validator, events: publisherOrNoop(events)}
}

// List returns the caller's notes, most recently updated first.
func (s *NoteService) List(ctx context.Context, caller models.Identity) ([]models.NoteDB, error) {
	notes, err := s.store.ListByOwner(ctx, caller.UserID)
	if err != nil {
		logger.Log.Errorw("failed to list notes", "user_id", caller.UserID, "err", err)
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return notes, nil
}

// Get returns one of the caller's notes.
func (s *NoteService) Get(ctx context.Context, caller models.Identity, noteID uuid.UUID) (*models.NoteDB, error) {
	note, err := s.store.GetByID(ctx, noteID, caller.UserID)
	if err != nil {
		logger.Log.Errorw("failed to get note", "note_id", noteID, "err", err)
		return nil, fmt.Errorf("get note: %w", err)
	}
	if note == nil {
		return nil, ErrNoteNotFound
	}
	return note, nil
}

// Save creates a note, or updates it in place when req carries an id.
// The boolean result reports whether a note was created.
func (s *NoteService) Save(ctx context.Context, caller models.Identity, req models.NoteRequest) (*models.NoteDB, bool, error) {
	if req.ID != "" {
		noteID, err := uuid.Parse(req.ID)
		if err != nil {
			return nil, false, ErrNoteNotFound
		}
		note, err := s.Update(ctx, caller, noteID, req)
		return note, false, err
	}

	title, err := s.title(req.Title)
	if err != nil {
		return nil, false, err
	}

	note, err := s.store.Create(ctx, caller.UserID, title, req.Content)
	if err != nil {
		logger.Log.Errorw("failed to create note", "user_id", caller.UserID, "err", err)
		return nil, false, fmt.Errorf("create note: %w", err)
	}

	logger.Log.Infow("note created", "note_id", note.NoteID, "user_id", caller.UserID)
	return note, true, nil
}

// Update replaces the title and content of one of the caller's notes.
func (s *NoteService) Update(ctx context.Context, caller models.Identity, noteID uuid.UUID, req models.NoteRequest) (*models.NoteDB, error) {
	title, err := s.title(req.Title)
	if err != nil {
		return nil, err
	}

	note, err := s.store.Update(ctx, noteID, caller.UserID, title, req.Content)
	if err != nil {
		logger.Log.Errorw("failed to update note", "note_id", noteID, "err", err)
		return nil, fmt.Errorf("update note: %w", err)
	}
	if note == nil {
		return nil, ErrNoteNotFound
	}
	return note, nil
}

// Delete removes one of the caller's notes.
func (s *NoteService) Delete(ctx context.Context, caller models.Identity, noteID uuid.UUID) error {
	deleted, err := s.store.Delete(ctx, noteID, caller.UserID)
	if err != nil {
		logger.Log.Errorw("failed to delete note", "note_id", noteID, "err", err)
		return fmt.Errorf("delete note: %w", err)
	}
	if !deleted {
		return ErrNoteNotFound
	}

	s.events.Publish(ctx, models.EventNoteDeleted, caller.UserID, noteID.String())
	logger.Log.Infow("note deleted", "note_id", noteID, "user_id", caller.UserID)
	return nil
}

func (s *NoteService) title(title string) (string, error) {
	if title == "" {
		return models.DefaultNoteTitle, nil
	}
	if err := s.validator.ValidateNoteTitle(title); err != nil {
		return "", err
	}
	return title, nil
}
