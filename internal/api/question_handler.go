package api

import (
	"errors"
	"net/http"

	"github.com/prepwise/backend/internal/domain/catalog"
	"github.com/prepwise/backend/internal/domain/selection"
)

// ── Request / Response types ────────────────────────────────────────────────

type QuestionView struct {
	ID         int      `json:"id" example:"4"`
	Text       string   `json:"text" example:"Explain how a hash table handles collisions."`
	Difficulty int      `json:"difficulty" example:"3"`
	Tier       string   `json:"tier" example:"junior"`
	KeyPoints  []string `json:"key_points"`
	Modules    []string `json:"modules"`
}

type NextQuestionResponse struct {
	Completed       bool          `json:"completed" example:"false"`
	Question        *QuestionView `json:"question,omitempty"`
	TierAdvanced    bool          `json:"tier_advanced" example:"false"`
	CurrentTier     string        `json:"current_tier" example:"junior"`
	RemainingInTier int           `json:"remaining_in_tier" example:"5"`
}

func questionView(q catalog.Question) *QuestionView {
	return &QuestionView{
		ID:         q.ID,
		Text:       q.Text,
		Difficulty: q.Difficulty,
		Tier:       string(q.Tier),
		KeyPoints:  q.KeyPoints,
		Modules:    q.Modules,
	}
}

// ── Handlers ────────────────────────────────────────────────────────────────

// nextQuestion selects the user's next practice question.
// @Summary      Get the next question
// @Description  Selects an unasked question in the user's current tier, optionally filtered by module. Advances the tier when the current one is exhausted.
// @Tags         Questions
// @Produce      json
// @Param        userKey  path      string  true   "User key"
// @Param        module   query     string  false  "Module filter, e.g. networking"
// @Success      200      {object}  NextQuestionResponse
// @Failure      500      {object}  map[string]string
// @Router       /users/{userKey}/questions/next [get]
func (h *Handler) nextQuestion(w http.ResponseWriter, r *http.Request) {
	userKey := r.PathValue("userKey")
	module := r.URL.Query().Get("module")

	result, err := h.sessions.NextQuestion(r.Context(), userKey, module)
	if errors.Is(err, selection.ErrAllTiersExhausted) {
		// Nothing left anywhere: the run is complete, not an error.
		respondJSON(w, http.StatusOK, NextQuestionResponse{Completed: true})
		return
	}
	if h.handleServiceError(w, err) {
		return
	}

	respondJSON(w, http.StatusOK, NextQuestionResponse{
		Question:        questionView(result.Question),
		TierAdvanced:    result.TierAdvanced,
		CurrentTier:     string(result.CurrentTier),
		RemainingInTier: result.Remaining,
	})
}
