// internal/api/router.go
package api

import "net/http"

func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	// Questions
	mux.HandleFunc("GET /users/{userKey}/questions/next", h.nextQuestion)

	// Attempts
	mux.HandleFunc("POST /users/{userKey}/attempts", h.submitAnswer)

	// Progress
	mux.HandleFunc("GET /users/{userKey}/progress", h.getProgress)
	mux.HandleFunc("DELETE /users/{userKey}/progress", h.resetProgress)

	// Streak
	mux.HandleFunc("POST /users/{userKey}/checkin", h.checkIn)

	// Quests
	mux.HandleFunc("GET /users/{userKey}/quests", h.listQuests)
	mux.HandleFunc("POST /users/{userKey}/quests/{questID}/claim", h.claimQuest)

	// Leaderboard
	mux.HandleFunc("GET /leaderboard", h.getLeaderboard)
}
