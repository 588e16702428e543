package workout

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/rohan/workout-buddy/internal/apperrors"
	"github.com/rohan/workout-buddy/internal/middleware"
	"github.com/rohan/workout-buddy/internal/models"
	"github.com/rohan/workout-buddy/internal/store"
)

// WorkoutStore defines the interface for workout persistence.
type WorkoutStore interface {
	Insert(ctx context.Context, w *models.Workout) (*models.Workout, error)
	ListByOwner(ctx context.Context, userID string) ([]models.Workout, error)
	GetByID(ctx context.Context, id string) (*models.Workout, error)
	Update(ctx context.Context, id string, fields bson.M) (*models.Workout, error)
	Delete(ctx context.Context, id string) (*models.Workout, error)
}

// FileStore defines the interface for export-snapshot storage.
type FileStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	Download(ctx context.Context, key string) ([]byte, string, error)
	Remove(ctx context.Context, key string) error
}

// Handler holds the workout HTTP handlers.
type Handler struct {
	workouts WorkoutStore
	exports  FileStore
	logger   zerolog.Logger
}

func NewHandler(workouts WorkoutStore, exports FileStore, logger zerolog.Logger) *Handler {
	return &Handler{workouts: workouts, exports: exports, logger: logger}
}

// identity returns the authenticated caller, or writes a 401 and reports
// false. RequireAuth passes through tokens whose user no longer resolves;
// that absence is rejected here, explicitly.
func (h *Handler) identity(w http.ResponseWriter, r *http.Request) (*middleware.Identity, bool) {
	ident := middleware.IdentityFrom(r.Context())
	if ident == nil {
		apperrors.WriteError(w, apperrors.Auth("Request is not authorized"))
		return nil, false
	}
	return ident, true
}

// List returns all workouts owned by the caller, newest first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ident, ok := h.identity(w, r)
	if !ok {
		return
	}

	workouts, err := h.workouts.ListByOwner(r.Context(), ident.UserID)
	if err != nil {
		h.logger.Error().Err(err).Msg("list workouts failed")
		apperrors.WriteError(w, err)
		return
	}
	if workouts == nil {
		workouts = []models.Workout{}
	}
	apperrors.WriteJSON(w, http.StatusOK, workouts)
}

// Get returns a single workout by id. Ownership is not checked.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.identity(w, r); !ok {
		return
	}

	id := chi.URLParam(r, "id")
	workout, err := h.workouts.GetByID(r.Context(), id)
	if errors.Is(err, store.ErrInvalidID) || errors.Is(err, store.ErrNotFound) {
		apperrors.WriteError(w, apperrors.NotFound("No such workout"))
		return
	}
	if err != nil {
		h.logger.Error().Err(err).Str("id", id).Msg("get workout failed")
		apperrors.WriteError(w, err)
		return
	}
	apperrors.WriteJSON(w, http.StatusOK, workout)
}

// Create stores a new workout owned by the caller. All three fields are
// required; the response names the empty ones so the form can highlight
// them.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ident, ok := h.identity(w, r)
	if !ok {
		return
	}

	var req models.CreateWorkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperrors.WriteError(w, apperrors.Validation("invalid request body"))
		return
	}

	var emptyFields []string
	if req.Title == "" {
		emptyFields = append(emptyFields, "title")
	}
	if req.Load == "" {
		emptyFields = append(emptyFields, "load")
	}
	if req.Reps == "" {
		emptyFields = append(emptyFields, "reps")
	}
	if len(emptyFields) > 0 {
		apperrors.WriteError(w, apperrors.ValidationFields("Please fill in all the fields", emptyFields))
		return
	}

	workout, err := h.workouts.Insert(r.Context(), &models.Workout{
		Title:  req.Title,
		Load:   req.Load,
		Reps:   req.Reps,
		UserID: ident.UserID,
	})
	if err != nil {
		h.logger.Error().Err(err).Msg("create workout failed")
		apperrors.WriteError(w, err)
		return
	}
	apperrors.WriteJSON(w, http.StatusOK, workout)
}

// Update patches the supplied fields and responds with the record as it
// was before the patch. Existing clients depend on receiving the previous
// state, so the store's return-before mode is surfaced unchanged.
// Ownership is not checked.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.identity(w, r); !ok {
		return
	}

	var body map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		apperrors.WriteError(w, apperrors.Validation("invalid request body"))
		return
	}

	// Only the workout's own fields are patchable; the owner id in
	// particular is never taken from the body.
	fields := bson.M{}
	for _, key := range []string{"title", "load", "reps"} {
		if val, ok := body[key]; ok {
			fields[key] = val
		}
	}

	id := chi.URLParam(r, "id")
	previous, err := h.workouts.Update(r.Context(), id, fields)
	if err != nil {
		h.writeMutationError(w, err, id, "update")
		return
	}
	apperrors.WriteJSON(w, http.StatusOK, previous)
}

// Delete removes a workout and responds with the deleted record.
// Ownership is not checked.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.identity(w, r); !ok {
		return
	}

	id := chi.URLParam(r, "id")
	deleted, err := h.workouts.Delete(r.Context(), id)
	if err != nil {
		h.writeMutationError(w, err, id, "delete")
		return
	}
	apperrors.WriteJSON(w, http.StatusOK, deleted)
}

// writeMutationError keeps the historical status split for update and
// delete: a malformed id is 404, a well-formed id that matches nothing
// is 400, both with the same message.
func (h *Handler) writeMutationError(w http.ResponseWriter, err error, id, op string) {
	switch {
	case errors.Is(err, store.ErrInvalidID):
		apperrors.WriteError(w, apperrors.NotFound("No such workout"))
	case errors.Is(err, store.ErrNotFound):
		apperrors.WriteError(w, apperrors.Validation("No such workout"))
	default:
		h.logger.Error().Err(err).Str("id", id).Msgf("%s workout failed", op)
		apperrors.WriteError(w, err)
	}
}
