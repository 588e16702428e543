package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/rohan/workout-buddy/internal/apperrors"
	"github.com/rohan/workout-buddy/internal/models"
)

// Handler holds the auth HTTP handlers.
type Handler struct {
	svc    *Service
	logger zerolog.Logger
}

func NewHandler(svc *Service, logger zerolog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// Signup creates a new user and returns `{email, token}`.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperrors.WriteError(w, apperrors.Validation("invalid request body"))
		return
	}

	resp, err := h.svc.Signup(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logError("signup", err)
		apperrors.WriteError(w, err)
		return
	}
	apperrors.WriteJSON(w, http.StatusOK, resp)
}

// Login verifies credentials and returns `{email, token}`.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperrors.WriteError(w, apperrors.Validation("invalid request body"))
		return
	}

	resp, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logError("login", err)
		apperrors.WriteError(w, err)
		return
	}
	apperrors.WriteJSON(w, http.StatusOK, resp)
}

// logError records unexpected failures; taxonomy errors are normal flow
// and stay quiet.
func (h *Handler) logError(op string, err error) {
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		h.logger.Error().Err(err).Str("op", op).Msg("auth operation failed")
	}
}
