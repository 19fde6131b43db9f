package handlers

import (
	"net/http"
	"time"

	"github.com/questforge/questforge-backend/internal/middleware"
)

type streakInfoResponse struct {
	LastStreakDate *time.Time `json:"lastStreakDate"`
}

// ContinueStreak handles POST /api/streak/continue.
func ContinueStreak(w http.ResponseWriter, r *http.Request) {
	stamped, err := deps.Streak.Continue(r.Context(), middleware.UserID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, streakInfoResponse{LastStreakDate: &stamped})
}

// StreakInfo handles GET /api/streak/info.
func StreakInfo(w http.ResponseWriter, r *http.Request) {
	last, err := deps.Streak.Info(r.Context(), middleware.UserID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, streakInfoResponse{LastStreakDate: last})
}
