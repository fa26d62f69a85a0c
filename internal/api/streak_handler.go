package api

import (
	"net/http"
	"time"

	"github.com/prepwise/backend/internal/domain/streak"
)

// ── Request / Response types ────────────────────────────────────────────────

type CheckInRequest struct {
	// Date in YYYY-MM-DD. Defaults to the server's local date.
	Date string `json:"date,omitempty" example:"2026-03-10"`
}

type MilestoneView struct {
	Days            int    `json:"days" example:"7"`
	Title           string `json:"title" example:"One Week Strong"`
	RewardXPBonus   int    `json:"reward_xp_bonus" example:"25"`
	ProtectionItems int    `json:"protection_items" example:"1"`
}

type CheckInResponse struct {
	Status           string         `json:"status" example:"continued"`
	CurrentStreak    int            `json:"current_streak" example:"4"`
	PreviousStreak   int            `json:"previous_streak" example:"3"`
	LongestStreak    int            `json:"longest_streak" example:"9"`
	ProtectionUsed   bool           `json:"protection_used" example:"false"`
	MilestoneCrossed *MilestoneView `json:"milestone_crossed,omitempty"`
	NextMilestone    *MilestoneView `json:"next_milestone,omitempty"`
}

func milestoneView(m *streak.Milestone) *MilestoneView {
	if m == nil {
		return nil
	}
	return &MilestoneView{
		Days:            m.Days,
		Title:           m.Title,
		RewardXPBonus:   m.RewardXPBonus,
		ProtectionItems: m.ProtectionItems,
	}
}

// ── Handlers ────────────────────────────────────────────────────────────────

// checkIn records the user's daily login and applies the streak transition.
// @Summary      Daily streak check-in
// @Description  Evaluates the streak for the given date. Same-day calls are idempotent. A missed day consumes a protection item when one is available.
// @Tags         Streak
// @Accept       json
// @Produce      json
// @Param        userKey  path      string          true   "User key"
// @Param        body     body      CheckInRequest  false  "Check-in date override"
// @Success      200      {object}  CheckInResponse
// @Failure      400      {object}  map[string]string  "invalid date"
// @Router       /users/{userKey}/checkin [post]
func (h *Handler) checkIn(w http.ResponseWriter, r *http.Request) {
	userKey := r.PathValue("userKey")

	var req CheckInRequest
	if r.ContentLength > 0 && !decodeJSON(w, r, &req) {
		return
	}
	if req.Date == "" {
		req.Date = time.Now().Format(streak.DateLayout)
	}

	result, err := h.sessions.CheckIn(r.Context(), userKey, req.Date)
	if h.handleServiceError(w, err) {
		return
	}

	respondJSON(w, http.StatusOK, CheckInResponse{
		Status:           string(result.Evaluation.Status),
		CurrentStreak:    result.Evaluation.NewLength,
		PreviousStreak:   result.Evaluation.PreviousLength,
		LongestStreak:    result.LongestStreak,
		ProtectionUsed:   result.Evaluation.ProtectionUsed,
		MilestoneCrossed: milestoneView(result.MilestoneCrossed),
		NextMilestone:    milestoneView(result.NextMilestone),
	})
}
