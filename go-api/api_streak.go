package main

import (
	"net/http"
	"time"
)

// POST /api/update-streak
// Acts on the authenticated user. Same UTC day: nothing changes. Next
// day: streak extends. Longer gap: streak restarts at 1. lastStudyDate
// moves to now whenever the streak changed.
func (a *api) handleUpdateStreak(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromRequest(r)
	if userID == 0 {
		errorJSON(w, http.StatusUnauthorized, "authentication required")
		return
	}

	stats, found, err := a.store.GetUserStats(userID)
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, "db error")
		return
	}
	if !found {
		errorJSON(w, http.StatusNotFound, "user stats not found")
		return
	}

	now := time.Now().UTC()
	streakDays, updated := nextStreak(stats.StreakDays, stats.LastStudyDate, now)

	if updated {
		if _, err := a.store.UpdateUserStats(userID, StatsPatch{
			StreakDays:    &streakDays,
			LastStudyDate: &now,
		}); err != nil {
			errorJSON(w, http.StatusInternalServerError, "db error")
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"streakDays":    streakDays,
		"streakUpdated": updated,
	})
}
