package workout

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rohan/workout-buddy/internal/apperrors"
	"github.com/rohan/workout-buddy/internal/models"
	"github.com/rohan/workout-buddy/internal/store"
)

// exportKey is where a user's snapshot lives in the bucket. One snapshot
// per user; a new export overwrites the previous one.
func exportKey(userID string) string {
	return fmt.Sprintf("%s/workouts.json", userID)
}

// Export snapshots the caller's workouts to object storage and returns
// the object key. The snapshot only ever contains workouts owned by the
// caller.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	ident, ok := h.identity(w, r)
	if !ok {
		return
	}

	workouts, err := h.workouts.ListByOwner(r.Context(), ident.UserID)
	if err != nil {
		h.logger.Error().Err(err).Msg("export: list workouts failed")
		apperrors.WriteError(w, err)
		return
	}
	if workouts == nil {
		workouts = []models.Workout{}
	}

	snapshot := models.WorkoutExport{
		UserID:     ident.UserID,
		ExportedAt: time.Now().UTC(),
		Count:      len(workouts),
		Workouts:   workouts,
	}
	data, err := json.Marshal(snapshot)
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}

	key := exportKey(ident.UserID)
	if err := h.exports.Upload(r.Context(), key, data, "application/json"); err != nil {
		h.logger.Error().Err(err).Str("key", key).Msg("export upload failed")
		apperrors.WriteError(w, err)
		return
	}

	apperrors.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"objectKey": key,
		"count":     len(workouts),
	})
}

// DownloadExport streams the caller's latest snapshot.
func (h *Handler) DownloadExport(w http.ResponseWriter, r *http.Request) {
	ident, ok := h.identity(w, r)
	if !ok {
		return
	}

	data, ct, err := h.exports.Download(r.Context(), exportKey(ident.UserID))
	if errors.Is(err, store.ErrNotFound) {
		apperrors.WriteError(w, apperrors.NotFound("No export found"))
		return
	}
	if err != nil {
		h.logger.Error().Err(err).Msg("export download failed")
		apperrors.WriteError(w, err)
		return
	}

	if ct == "" {
		ct = "application/json"
	}
	w.Header().Set("Content-Type", ct)
	w.Header().Set("Content-Disposition", "attachment; filename=workouts.json")
	w.Write(data)
}

// DeleteExport removes the caller's snapshot, if any.
func (h *Handler) DeleteExport(w http.ResponseWriter, r *http.Request) {
	ident, ok := h.identity(w, r)
	if !ok {
		return
	}

	if err := h.exports.Remove(r.Context(), exportKey(ident.UserID)); err != nil {
		h.logger.Error().Err(err).Msg("export remove failed")
		apperrors.WriteError(w, err)
		return
	}
	apperrors.WriteJSON(w, http.StatusOK, map[string]string{"message": "export deleted"})
}
