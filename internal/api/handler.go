// internal/api/handler.go
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/prepwise/backend/internal/domain/selection"
	"github.com/prepwise/backend/internal/domain/streak"
	"github.com/prepwise/backend/internal/scorer"
	"github.com/prepwise/backend/internal/service"
)

// Handler holds all dependencies needed by HTTP handlers.
// Instead of relying on package-level globals, every handler method
// receives its dependencies through this struct.
type Handler struct {
	sessions *service.SessionService
	logger   *slog.Logger
}

// NewHandler creates a Handler with the given dependencies.
func NewHandler(sessions *service.SessionService, logger *slog.Logger) *Handler {
	return &Handler{
		sessions: sessions,
		logger:   logger,
	}
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// decodeJSON decodes the request body into v. Writes a 400 and returns
// false on malformed input (caller should return).
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return false
	}
	return true
}

// handleServiceError maps service-layer errors to HTTP responses. Returns
// true if an error was handled (caller should return).
func (h *Handler) handleServiceError(w http.ResponseWriter, err error) bool {
	if err == nil {
		return false
	}
	switch {
	case errors.Is(err, service.ErrUnknownQuestion):
		respondError(w, http.StatusNotFound, "question not found")
	case errors.Is(err, service.ErrAttemptInFlight):
		respondError(w, http.StatusConflict, "an attempt is already being scored")
	case errors.Is(err, service.ErrQuestNotClaimable):
		respondError(w, http.StatusConflict, "quest not claimable")
	case errors.Is(err, streak.ErrInvalidDate):
		respondError(w, http.StatusBadRequest, "invalid date")
	case errors.Is(err, scorer.ErrInvalidResponse):
		h.logger.Error("scorer returned an unusable response", "error", err)
		respondError(w, http.StatusBadGateway, "scoring failed, answer not recorded")
	case errors.As(err, new(*scorer.ScoreError)):
		h.logger.Error("scoring failed", "error", err)
		respondError(w, http.StatusBadGateway, "scoring failed, answer not recorded")
	case errors.Is(err, selection.ErrAllTiersExhausted):
		// Handled by the question handler before it gets here.
		respondError(w, http.StatusConflict, "all questions completed")
	default:
		h.logger.Error("service error", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
	}
	return true
}
