package models

import (
	"time"

	"github.com/google/uuid"
)

// DefaultNoteTitle replaces an empty title on save.
const DefaultNoteTitle = "Untitled Note"

// NoteDB represents a note record in the database
// swagger:model Note
type NoteDB struct {
	NoteID    uuid.UUID `json:"_id" db:"note_id"`          // Primary key
	UserID    uuid.UUID `json:"userId" db:"user_id"`       // Owner, immutable
	Title     string    `json:"title" db:"title"`          // At most 60 characters
	Content   string    `json:"content" db:"content"`      // Body text
	CreatedAt time.Time `json:"createdAt" db:"created_at"` // Creation timestamp
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"` // Last update timestamp
}

// NoteRequest is the body of POST /notes and PUT /notes/{id}.
// On POST, a non-empty ID turns the request into an in-place update.
// swagger:model NoteRequest
type NoteRequest struct {
	// Existing note id (POST only)
	ID string `json:"_id,omitempty"`

	// example: Shopping list
	Title string `json:"title"`

	// example: milk, eggs
	Content string `json:"content"`
}

// MessageResponse carries a plain confirmation message
// swagger:model MessageResponse
type MessageResponse struct {
	// example: Note deleted successfully
	Message string `json:"message"`
}
