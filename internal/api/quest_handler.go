package api

import (
	"net/http"
	"time"

	"github.com/prepwise/backend/internal/domain/quest"
)

// ── Request / Response types ────────────────────────────────────────────────

type QuestView struct {
	ID          string     `json:"id" example:"achievement-ten-attempts"`
	Kind        string     `json:"kind" example:"achievement"`
	Title       string     `json:"title" example:"Getting Serious"`
	Description string     `json:"description"`
	Current     int        `json:"current" example:"6"`
	Total       int        `json:"total" example:"10"`
	XPBonus     int        `json:"xp_bonus" example:"0"`
	Protection  int        `json:"protection_items" example:"1"`
	Completed   bool       `json:"completed" example:"false"`
	Claimable   bool       `json:"claimable" example:"false"`
	Claimed     bool       `json:"claimed" example:"false"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
}

func questView(q quest.Quest) QuestView {
	return QuestView{
		ID:          q.ID,
		Kind:        string(q.Kind),
		Title:       q.Title,
		Description: q.Description,
		Current:     q.Progress.Current,
		Total:       q.Progress.Total,
		XPBonus:     q.Reward.XPBonus,
		Protection:  q.Reward.ProtectionItems,
		Completed:   q.Completed,
		Claimable:   q.Claimable,
		Claimed:     q.Claimed,
		ExpiresAt:   q.ExpiresAt,
	}
}

// ── Handlers ────────────────────────────────────────────────────────────────

// listQuests returns the user's current quest board.
// @Summary      List quests
// @Description  Daily quests, achievements, and the next streak milestone, with progress and claim state.
// @Tags         Quests
// @Produce      json
// @Param        userKey  path      string  true  "User key"
// @Success      200      {array}   QuestView
// @Router       /users/{userKey}/quests [get]
func (h *Handler) listQuests(w http.ResponseWriter, r *http.Request) {
	userKey := r.PathValue("userKey")

	quests, err := h.sessions.Quests(r.Context(), userKey, time.Now())
	if h.handleServiceError(w, err) {
		return
	}

	views := make([]QuestView, len(quests))
	for i, q := range quests {
		views[i] = questView(q)
	}
	respondJSON(w, http.StatusOK, views)
}

// claimQuest collects a completed achievement's reward.
// @Summary      Claim a quest reward
// @Tags         Quests
// @Produce      json
// @Param        userKey  path      string  true  "User key"
// @Param        questID  path      string  true  "Quest ID"
// @Success      200      {object}  QuestView
// @Failure      409      {object}  map[string]string  "quest not claimable"
// @Router       /users/{userKey}/quests/{questID}/claim [post]
func (h *Handler) claimQuest(w http.ResponseWriter, r *http.Request) {
	userKey := r.PathValue("userKey")
	questID := r.PathValue("questID")

	claimed, err := h.sessions.ClaimQuest(r.Context(), userKey, questID, time.Now())
	if h.handleServiceError(w, err) {
		return
	}

	respondJSON(w, http.StatusOK, questView(*claimed))
}
