package main

import (
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
)

/* ===================== Active-break tracking ====================== */

// activeBreaks remembers, per user, when the currently-running break
// ends. The countdown itself lives on the client; the server keeps only
// this expiry so the single-active-break rule can't be bypassed by a
// client that skips the check.
type activeBreaks struct {
	mu    sync.Mutex
	until map[uint]time.Time
}

func newActiveBreaks() *activeBreaks {
	return &activeBreaks{until: map[uint]time.Time{}}
}

func (b *activeBreaks) active(userID uint, now time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	t, ok := b.until[userID]
	if !ok {
		return false
	}
	if now.After(t) {
		delete(b.until, userID) // expired, clean up lazily
		return false
	}
	return true
}

func (b *activeBreaks) start(userID uint, d time.Duration, now time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.until[userID] = now.Add(d)
}

func (b *activeBreaks) end(userID uint) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.until, userID)
}

/* ===================== Handlers ====================== */

// GET /api/breaks
func (a *api) handleListBreaks(w http.ResponseWriter, r *http.Request) {
	opts, err := a.store.GetBreaks()
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, "db error")
		return
	}
	out := make([]breakDTO, 0, len(opts))
	for _, b := range opts {
		out = append(out, toBreakDTO(b))
	}
	writeJSON(w, http.StatusOK, out)
}

// POST /api/breaks/{id}/purchase
// Both preconditions (affordability, no break already running) are
// enforced here, server-side; the debit is a conditional UPDATE so a
// racing second purchase can't overdraw the balance.
func (a *api) handlePurchaseBreak(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromRequest(r)
	if userID == 0 {
		errorJSON(w, http.StatusUnauthorized, "authentication required")
		return
	}

	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid break ID")
		return
	}

	opt, found, err := a.store.GetBreak(uint(id))
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, "db error")
		return
	}
	if !found {
		errorJSON(w, http.StatusNotFound, "break not found")
		return
	}

	now := time.Now().UTC()
	if a.breaks.active(userID, now) {
		errorJSON(w, http.StatusConflict, "a break is already active")
		return
	}

	stats, err := a.store.SpendCurrency(userID, opt.Cost)
	if errors.Is(err, errInsufficientFunds) {
		errorJSON(w, http.StatusBadRequest, "insufficient currency")
		return
	}
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, "db error")
		return
	}

	a.breaks.start(userID, time.Duration(opt.Duration)*time.Minute, now)

	writeJSON(w, http.StatusOK, map[string]any{
		"break": toBreakDTO(opt),
		"stats": toStatsDTO(stats),
	})
}

// POST /api/breaks/end
// Explicit early end; clearing an already-clear state is a no-op.
func (a *api) handleEndBreak(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromRequest(r)
	if userID == 0 {
		errorJSON(w, http.StatusUnauthorized, "authentication required")
		return
	}
	a.breaks.end(userID)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ended"})
}
