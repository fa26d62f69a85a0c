package api

import "net/http"

type LeaderboardEntryView struct {
	Rank         int    `json:"rank" example:"1"`
	UserKey      string `json:"user_key" example:"alice"`
	CumulativeXP int    `json:"cumulative_xp" example:"640"`
	RecentRating int    `json:"recent_rating" example:"112"`
	Attempts     int    `json:"attempts" example:"41"`
}

// getLeaderboard ranks users by all-time XP, or by recent form with ?by=recent.
// @Summary      Leaderboard
// @Tags         Leaderboard
// @Produce      json
// @Param        by  query     string  false  "Ranking mode: alltime (default) or recent"
// @Success      200  {array}  LeaderboardEntryView
// @Router       /leaderboard [get]
func (h *Handler) getLeaderboard(w http.ResponseWriter, r *http.Request) {
	byForm := r.URL.Query().Get("by") == "recent"

	entries, err := h.sessions.Leaderboard(r.Context(), byForm)
	if h.handleServiceError(w, err) {
		return
	}

	views := make([]LeaderboardEntryView, len(entries))
	for i, e := range entries {
		views[i] = LeaderboardEntryView{
			Rank:         e.Rank,
			UserKey:      e.UserKey,
			CumulativeXP: e.CumulativeXP,
			RecentRating: e.RecentRating,
			Attempts:     e.Attempts,
		}
	}
	respondJSON(w, http.StatusOK, views)
}
