package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/prepwise/backend/internal/domain/progression"
)

// ── Request / Response types ────────────────────────────────────────────────

type SubmitAnswerRequest struct {
	QuestionID int    `json:"question_id" example:"4"`
	Answer     string `json:"answer" example:"Separate chaining stores colliding entries in a linked list per bucket..."`
}

func (r *SubmitAnswerRequest) Validate() error {
	if r.QuestionID <= 0 {
		return errors.New("question_id is required")
	}
	if r.Answer == "" {
		return errors.New("answer is required")
	}
	return nil
}

type CategoryScoreView struct {
	Category string  `json:"category" example:"algorithms"`
	Score    float64 `json:"score" example:"7.5"`
	Comment  string  `json:"comment,omitempty"`
}

type SubmitAnswerResponse struct {
	AttemptID    string              `json:"attempt_id"`
	OverallScore float64             `json:"overall_score" example:"7.5"`
	EarnedXP     int                 `json:"earned_xp" example:"11"`
	BonusXP      int                 `json:"bonus_xp" example:"0"`
	CumulativeXP int                 `json:"cumulative_xp" example:"143"`
	Rewarded     bool                `json:"rewarded" example:"true"`
	Level        LevelView           `json:"level"`
	Strengths    []string            `json:"strengths,omitempty"`
	Weaknesses   []string            `json:"weaknesses,omitempty"`
	Breakdown    []CategoryScoreView `json:"breakdown,omitempty"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// submitAnswer scores a free-text answer and applies the result.
// @Summary      Submit an answer
// @Description  Scores the answer, applies XP and stat changes atomically, and returns the attempt outcome. A scoring failure records nothing; the client keeps the answer and may retry.
// @Tags         Attempts
// @Accept       json
// @Produce      json
// @Param        userKey  path      string               true  "User key"
// @Param        body     body      SubmitAnswerRequest  true  "Answer to score"
// @Success      200      {object}  SubmitAnswerResponse
// @Failure      400      {object}  map[string]string
// @Failure      404      {object}  map[string]string  "question not found"
// @Failure      409      {object}  map[string]string  "attempt already in flight"
// @Failure      502      {object}  map[string]string  "scoring failed"
// @Router       /users/{userKey}/attempts [post]
func (h *Handler) submitAnswer(w http.ResponseWriter, r *http.Request) {
	userKey := r.PathValue("userKey")

	var req SubmitAnswerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	outcome, err := h.sessions.SubmitAnswer(r.Context(), userKey, req.QuestionID, req.Answer, time.Now())
	if h.handleServiceError(w, err) {
		return
	}

	breakdown := make([]CategoryScoreView, len(outcome.Scoring.Breakdown))
	for i, entry := range outcome.Scoring.Breakdown {
		breakdown[i] = CategoryScoreView{
			Category: entry.Category,
			Score:    entry.Score,
			Comment:  entry.Comment,
		}
	}

	respondJSON(w, http.StatusOK, SubmitAnswerResponse{
		AttemptID:    outcome.Attempt.ID,
		OverallScore: outcome.Scoring.OverallScore,
		EarnedXP:     outcome.Attempt.EarnedXP,
		BonusXP:      outcome.BonusXP,
		CumulativeXP: outcome.CumulativeXP,
		Rewarded:     outcome.Scoring.OverallScore >= progression.ScoreThreshold,
		Level:        levelView(outcome.Level),
		Strengths:    outcome.Scoring.Strengths,
		Weaknesses:   outcome.Scoring.Weaknesses,
		Breakdown:    breakdown,
	})
}
