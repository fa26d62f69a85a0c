package api

import (
	"net/http"

	"github.com/prepwise/backend/internal/domain/progression"
)

// ── Request / Response types ────────────────────────────────────────────────

type LevelView struct {
	Tier            int     `json:"tier" example:"1"`
	Label           string  `json:"label" example:"Intermediate"`
	NextLabel       string  `json:"next_label,omitempty" example:"Advanced"`
	XPToNext        int     `json:"xp_to_next" example:"450"`
	ProgressPercent float64 `json:"progress_percent" example:"10"`
}

func levelView(l progression.Level) LevelView {
	return LevelView{
		Tier:            l.Tier,
		Label:           l.Label,
		NextLabel:       l.NextLabel,
		XPToNext:        l.XPToNext,
		ProgressPercent: l.ProgressPercent,
	}
}

type TierProgressView struct {
	Tier         string  `json:"tier" example:"junior"`
	Asked        int     `json:"asked" example:"3"`
	Total        int     `json:"total" example:"7"`
	AverageScore float64 `json:"average_score" example:"6.8"`
}

type ProgressResponse struct {
	UserKey         string             `json:"user_key" example:"alice"`
	CumulativeXP    int                `json:"cumulative_xp" example:"143"`
	XPHistory       []int              `json:"xp_history"`
	Level           LevelView          `json:"level"`
	CurrentTier     string             `json:"current_tier" example:"junior"`
	Attempts        int                `json:"attempts" example:"12"`
	WeightedAverage float64            `json:"weighted_average" example:"6.4"`
	SimpleAverage   float64            `json:"simple_average" example:"6.1"`
	RecentAverage   float64            `json:"recent_average" example:"7.2"`
	RecentRating    int                `json:"recent_rating" example:"88"`
	CurrentStreak   int                `json:"current_streak" example:"4"`
	LongestStreak   int                `json:"longest_streak" example:"9"`
	TodayCompleted  bool               `json:"today_completed" example:"true"`
	ProtectionItems int                `json:"protection_items" example:"1"`
	Tiers           []TierProgressView `json:"tiers"`
	Categories      map[string]float64 `json:"category_averages"`
	KeyPoints       map[string]float64 `json:"key_point_averages"`
	Degraded        bool               `json:"degraded" example:"false"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// getProgress returns the full stats overview for a user.
// @Summary      Get progress overview
// @Description  Cumulative XP, level, per-tier progress, rolling averages, streaks, and per-category mastery.
// @Tags         Progress
// @Produce      json
// @Param        userKey  path      string  true  "User key"
// @Success      200      {object}  ProgressResponse
// @Failure      500      {object}  map[string]string
// @Router       /users/{userKey}/progress [get]
func (h *Handler) getProgress(w http.ResponseWriter, r *http.Request) {
	userKey := r.PathValue("userKey")

	overview, err := h.sessions.Progress(r.Context(), userKey)
	if h.handleServiceError(w, err) {
		return
	}

	tiers := make([]TierProgressView, len(overview.Tiers))
	for i, t := range overview.Tiers {
		tiers[i] = TierProgressView{
			Tier:         string(t.Tier),
			Asked:        t.Asked,
			Total:        t.Total,
			AverageScore: t.AverageScore,
		}
	}

	respondJSON(w, http.StatusOK, ProgressResponse{
		UserKey:         overview.UserKey,
		CumulativeXP:    overview.CumulativeXP,
		XPHistory:       overview.XPHistory,
		Level:           levelView(overview.Level),
		CurrentTier:     string(overview.CurrentTier),
		Attempts:        overview.Attempts,
		WeightedAverage: overview.WeightedAverage,
		SimpleAverage:   overview.SimpleAverage,
		RecentAverage:   overview.RecentAverage,
		RecentRating:    overview.RecentRating,
		CurrentStreak:   overview.CurrentStreak,
		LongestStreak:   overview.LongestStreak,
		TodayCompleted:  overview.TodayCompleted,
		ProtectionItems: overview.ProtectionItems,
		Tiers:           tiers,
		Categories:      overview.CategoryAverages,
		KeyPoints:       overview.KeyPointAverages,
		Degraded:        h.sessions.Degraded(userKey),
	})
}

// resetProgress wipes the user's progress.
// @Summary      Reset progress
// @Tags         Progress
// @Param        userKey  path  string  true  "User key"
// @Success      204
// @Failure      500  {object}  map[string]string
// @Router       /users/{userKey}/progress [delete]
func (h *Handler) resetProgress(w http.ResponseWriter, r *http.Request) {
	userKey := r.PathValue("userKey")

	if err := h.sessions.Reset(r.Context(), userKey); h.handleServiceError(w, err) {
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
