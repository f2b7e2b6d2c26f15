package main

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
)

func userIDParam(r *http.Request) (uint, bool) {
	raw := chi.URLParam(r, "userId")
	n, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(n), true
}

// GET /api/stats/{userId}
// A missing stats row is not an error: it is lazily created with the
// starting currency so a brand-new user sees a live balance.
func (a *api) handleGetStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(r)
	if !ok {
		errorJSON(w, http.StatusBadRequest, "invalid user ID")
		return
	}

	stats, found, err := a.store.GetUserStats(userID)
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, "db error")
		return
	}
	if !found {
		stats, err = a.store.CreateUserStats(UserStats{
			UserID:        userID,
			Currency:      a.cfg.StartingCurrency,
			Level:         1,
			LastStudyDate: time.Now().UTC(),
		})
		if err != nil {
			errorJSON(w, http.StatusInternalServerError, "db error")
			return
		}
	}

	writeJSON(w, http.StatusOK, toStatsDTO(stats))
}

// PATCH /api/stats/{userId}
// Partial update; unknown fields are ignored by json decoding and absent
// fields leave the row untouched (upsert semantics, see storage.go).
func (a *api) handlePatchStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(r)
	if !ok {
		errorJSON(w, http.StatusBadRequest, "invalid user ID")
		return
	}

	var patch StatsPatch
	if err := decodeJSON(r, &patch); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid stats data")
		return
	}
	if err := validatePatch(patch); err != "" {
		errorJSON(w, http.StatusBadRequest, err)
		return
	}

	stats, err := a.store.UpdateUserStats(userID, patch)
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, "db error")
		return
	}
	writeJSON(w, http.StatusOK, toStatsDTO(stats))
}

// validatePatch rejects values that would break the stats invariants.
// Returns a field-level message, or "" when the patch is fine.
func validatePatch(p StatsPatch) string {
	checks := []struct {
		name string
		v    *int
		min  int
	}{
		{"currency", p.Currency, 0},
		{"totalStudyTime", p.TotalStudyTime, 0},
		{"todayStudyTime", p.TodayStudyTime, 0},
		{"totalSessions", p.TotalSessions, 0},
		{"breaksTaken", p.BreaksTaken, 0},
		{"streakDays", p.StreakDays, 0},
		{"experience", p.Experience, 0},
		{"level", p.Level, 1},
	}
	for _, c := range checks {
		if c.v != nil && *c.v < c.min {
			return "invalid " + c.name
		}
	}
	return ""
}
