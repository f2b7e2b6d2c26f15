package main

import (
	"net/http"
)

// GET /api/sessions/{userId}
func (a *api) handleListSessions(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(r)
	if !ok {
		errorJSON(w, http.StatusBadRequest, "invalid user ID")
		return
	}

	sessions, err := a.store.GetStudySessions(userID)
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, "db error")
		return
	}
	out := make([]sessionDTO, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, toSessionDTO(s))
	}
	writeJSON(w, http.StatusOK, out)
}

type createSessionReq struct {
	UserID      uint `json:"userId"`
	Duration    int  `json:"duration"` // seconds
	CoinsEarned int  `json:"coinsEarned"`
}

// POST /api/sessions
// Records one completed study interval and folds it into the user's
// aggregate row. Coins are recomputed server-side from the duration, so
// the client-reported value is advisory only and a replayed or forged
// payload cannot over-credit.
func (a *api) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var in createSessionReq
	if err := decodeJSON(r, &in); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid session data")
		return
	}
	if in.UserID == 0 {
		errorJSON(w, http.StatusBadRequest, "invalid userId")
		return
	}
	if in.Duration < 0 {
		errorJSON(w, http.StatusBadRequest, "invalid duration")
		return
	}

	coins := coinsForDuration(in.Duration, a.cfg.EarnRate)
	session, err := a.store.CreateStudySession(in.UserID, in.Duration, coins)
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, "db error")
		return
	}

	// Fold the session into the aggregate. Two-step by design: the
	// ledger never updates stats on its own (storage.go).
	stats, _, err := a.store.GetUserStats(in.UserID)
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, "db error")
		return
	}
	if stats.Level < 1 {
		stats.Level = 1
	}

	// 1 exp per second of study
	level, experience := applyExperience(stats.Level, stats.Experience, in.Duration)

	totalStudyTime := stats.TotalStudyTime + in.Duration
	todayStudyTime := stats.TodayStudyTime + in.Duration
	totalSessions := stats.TotalSessions + 1
	currency := stats.Currency + coins

	if _, err := a.store.UpdateUserStats(in.UserID, StatsPatch{
		TotalStudyTime: &totalStudyTime,
		TodayStudyTime: &todayStudyTime,
		TotalSessions:  &totalSessions,
		Currency:       &currency,
		Level:          &level,
		Experience:     &experience,
	}); err != nil {
		errorJSON(w, http.StatusInternalServerError, "db error")
		return
	}

	writeJSON(w, http.StatusCreated, toSessionDTO(session))
}
