package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-notebook/internal/logger"
	"github.com/sbilibin2017/gw-notebook/internal/models"
)

// NoteRepository stores notes. Every statement is scoped to the owner.
type NoteRepository struct {
	db *sqlx.DB
}

func NewNoteRepository(db *sqlx.DB) *NoteRepository {
	return &NoteRepository{db: db}
}

// ListByOwner returns the owner's notes, most recently updated first.
func (r *NoteRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.NoteDB, error) {
	const query = `
		SELECT note_id, user_id, title, content, created_at, updated_at
		FROM notes
		WHERE user_id = $1
		ORDER BY updated_at DESC
	`

	notes := []models.NoteDB{}
	err := r.db.SelectContext(ctx, &notes, query, ownerID)

	logger.FromContext(ctx).Infow(
		"sql executed",
		"query", oneLine(query),
		"args", []any{ownerID},
		"result", len(notes),
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	return notes, nil
}

// GetByID returns the note if it exists and belongs to ownerID, otherwise nil.
func (r *NoteRepository) GetByID(ctx context.Context, noteID, ownerID uuid.UUID) (*models.NoteDB, error) {
	const query = `
		SELECT note_id, user_id, title, content, created_at, updated_at
		FROM notes
		WHERE note_id = $1 AND user_id = $2
	`

	var note models.NoteDB
	err := r.db.GetContext(ctx, &note, query, noteID, ownerID)

	logger.FromContext(ctx).Infow(
		"sql executed",
		"query", oneLine(query),
		"args", []any{noteID, ownerID},
		"found", err == nil,
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// Create inserts a note owned by ownerID.
func (r *NoteRepository) Create(ctx context.Context, ownerID uuid.UUID, title, content string) (*models.NoteDB, error) {
	const query = `
		INSERT INTO notes (user_id, title, content, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING note_id, user_id, title, content, created_at, updated_at
	`

	var note models.NoteDB
	err := r.db.GetContext(ctx, &note, query, ownerID, title, content)

	logger.FromContext(ctx).Infow(
		"sql executed",
		"query", oneLine(query),
		"args", []any{ownerID, title, len(content)},
		"result", note.NoteID,
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	return &note, nil
}

// Update replaces title and content of a note owned by ownerID.
// It returns nil when no such note exists for that owner.
func (r *NoteRepository) Update(ctx context.Context, noteID, ownerID uuid.UUID, title, content string) (*models.NoteDB, error) {
	const query = `
		UPDATE notes
		SET title = $3, content = $4, updated_at = NOW()
		WHERE note_id = $1 AND user_id = $2
		RETURNING note_id, user_id, title, content, created_at, updated_at
	`

	var note models.NoteDB
	err := r.db.GetContext(ctx, &note, query, noteID, ownerID, title, content)

	logger.FromContext(ctx).Infow(
		"sql executed",
		"query", oneLine(query),
		"args", []any{noteID, ownerID, title, len(content)},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// Delete removes a note owned by ownerID and reports whether a row was deleted.
func (r *NoteRepository) Delete(ctx context.Context, noteID, ownerID uuid.UUID) (bool, error) {
	const query = `
		DELETE FROM notes
		WHERE note_id = $1 AND user_id = $2
	`

	res, err := r.db.ExecContext(ctx, query, noteID, ownerID)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.FromContext(ctx).Infow(
		"sql executed",
		"query", oneLine(query),
		"args", []any{noteID, ownerID},
		"result", rowsAffected,
		"error", err,
	)

	if err != nil {
		return false, err
	}
	return rowsAffected > 0, nil
}
