package handlers

//go:generate mockgen -source=notes.go -destination=notes_mock.go -package=handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-notebook/internal/logger"
	"github.com/sbilibin2017/gw-notebook/internal/middlewares"
	"github.com/sbilibin2017/gw-notebook/internal/models"
	"github.com/sbilibin2017/gw-notebook/internal/services"
	"github.com/sbilibin2017/gw-notebook/internal/validators"
)

// NoteManager is the note service as seen by the HTTP layer.
type NoteManager interface {
	List(ctx context.Context, caller models.Identity) ([]models.NoteDB, error)
	Get(ctx context.Context, caller models.Identity, noteID uuid.UUID) (*models.NoteDB, error)
	Save(ctx context.Context, caller models.Identity, req models.NoteRequest) (*models.NoteDB, bool, error)
	Update(ctx context.Context, caller models.Identity, noteID uuid.UUID, req models.NoteRequest) (*models.NoteDB, error)
	Delete(ctx context.Context, caller models.Identity, noteID uuid.UUID) error
}

// writeNoteError maps note service errors; fallback is used for anything unexpected.
func writeNoteError(w http.ResponseWriter, err error, fallback string) {
	var ruleErr *validators.RuleError
	switch {
	case errors.As(err, &ruleErr):
		writeError(w, http.StatusBadRequest, ruleErr.Message)
	case errors.Is(err, services.ErrNoteNotFound):
		writeError(w, http.StatusNotFound, "Note not found")
	default:
		logger.Log.Errorw("internal server error", "err", err)
		writeError(w, http.StatusInternalServerError, fallback)
	}
}

// noteRoute returns the caller and the {id} path parameter.
// It writes the response itself and returns ok=false when either is missing.
func noteRoute(w http.ResponseWriter, r *http.Request) (models.Identity, uuid.UUID, bool) {
	caller, ok := middlewares.GetIdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return caller, uuid.Nil, false
	}
	noteID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "Note not found")
		return caller, uuid.Nil, false
	}
	return caller, noteID, true
}

// NewListNotesHandler returns an HTTP handler listing the caller's notes.
// @Summary List notes
// @Description Returns the caller's notes, most recently updated first
// @Tags notes
// @Produce json
// @Success 200 {array} models.NoteDB
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 500 {object} models.ErrorResponse "Failed to fetch notes"
// @Security BearerAuth
// @Router /notes [get]
func NewListNotesHandler(svc NoteManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := middlewares.GetIdentityFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		notes, err := svc.List(r.Context(), caller)
		if err != nil {
			writeNoteError(w, err, "Failed to fetch notes")
			return
		}
		writeJSON(w, http.StatusOK, notes)
	}
}

// NewSaveNoteHandler returns an HTTP handler that creates a note,
// or updates it in place when the body carries an _id.
// @Summary Create or update a note
// @Tags notes
// @Accept json
// @Produce json
// @Param noteRequest body models.NoteRequest true "Note"
// @Success 200 {object} models.NoteDB "Updated"
// @Success 201 {object} models.NoteDB "Created"
// @Failure 400 {object} models.ErrorResponse "Invalid title"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 404 {object} models.ErrorResponse "Note not found"
// @Failure 500 {object} models.ErrorResponse "Failed to create or update note"
// @Security BearerAuth
// @Router /notes [post]
func NewSaveNoteHandler(svc NoteManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := middlewares.GetIdentityFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		var req models.NoteRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		note, created, err := svc.Save(r.Context(), caller, req)
		if err != nil {
			writeNoteError(w, err, "Failed to create or update note")
			return
		}

		status := http.StatusOK
		if created {
			status = http.StatusCreated
		}
		writeJSON(w, status, note)
	}
}

// NewGetNoteHandler returns an HTTP handler fetching one of the caller's notes.
// @Summary Get a note
// @Tags notes
// @Produce json
// @Param id path string true "Note id"
// @Success 200 {object} models.NoteDB
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 404 {object} models.ErrorResponse "Note not found"
// @Failure 500 {object} models.ErrorResponse "Failed to fetch note"
// @Security BearerAuth
// @Router /notes/{id} [get]
func NewGetNoteHandler(svc NoteManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, noteID, ok := noteRoute(w, r)
		if !ok {
			return
		}

		note, err := svc.Get(r.Context(), caller, noteID)
		if err != nil {
			writeNoteError(w, err, "Failed to fetch note")
			return
		}
		writeJSON(w, http.StatusOK, note)
	}
}

// NewUpdateNoteHandler returns an HTTP handler replacing a note's title and content.
// @Summary Update a note
// @Tags notes
// @Accept json
// @Produce json
// @Param id path string true "Note id"
// @Param noteRequest body models.NoteRequest true "Note"
// @Success 200 {object} models.NoteDB
// @Failure 400 {object} models.ErrorResponse "Invalid title"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 404 {object} models.ErrorResponse "Note not found"
// @Failure 500 {object} models.ErrorResponse "Failed to update note"
// @Security BearerAuth
// @Router /notes/{id} [put]
func NewUpdateNoteHandler(svc NoteManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, noteID, ok := noteRoute(w, r)
		if !ok {
			return
		}

		var req models.NoteRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		note, err := svc.Update(r.Context(), caller, noteID, req)
		if err != nil {
			writeNoteError(w, err, "Failed to update note")
			return
		}
		writeJSON(w, http.StatusOK, note)
	}
}

// NewDeleteNoteHandler returns an HTTP handler deleting one of the caller's notes.
// @Summary Delete a note
// @Tags notes
// @Produce json
// @Param id path string true "Note id"
// @Success 200 {object} models.MessageResponse
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 404 {object} models.ErrorResponse "Note not found"
// @Failure 500 {object} models.ErrorResponse "Failed to delete note"
// @Security BearerAuth
// @Router /notes/{id} [delete]
func NewDeleteNoteHandler(svc NoteManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, noteID, ok := noteRoute(w, r)
		if !ok {
			return
		}

		if err := svc.Delete(r.Context(), caller, noteID); err != nil {
			writeNoteError(w, err, "Failed to delete note")
			return
		}
		writeJSON(w, http.StatusOK, models.MessageResponse{Message: "Note deleted successfully"})
	}
}
