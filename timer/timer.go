// Package timer implements the client-side study timer: an
// idle/running/paused state machine that accumulates elapsed study time
// and mirrors the server's per-minute coin accrual for display. It never
// talks to the network; callers post the Result of Stop to the API.
package timer

import "time"

type State string

const (
	StateIdle    State = "idle"
	StateRunning State = "running"
	StatePaused  State = "paused"
)

// Result is the outcome of one completed study cycle.
type Result struct {
	Duration    int // seconds
	CoinsEarned int
}

// Timer is not safe for concurrent use; drive it from one goroutine.
type Timer struct {
	earnRate int
	now      func() time.Time

	state       State
	startEpoch  time.Time     // adjusted start; only meaningful while running
	frozen      time.Duration // elapsed at the moment of the last pause
	minutesSeen int           // whole-minute boundaries already ticked
}

// New returns an idle timer. now is injectable for tests; pass nil for
// the wall clock.
func New(earnRate int, now func() time.Time) *Timer {
	if now == nil {
		now = time.Now
	}
	return &Timer{earnRate: earnRate, now: now, state: StateIdle}
}

func (t *Timer) State() State { return t.state }

// Elapsed reports how long the current cycle has been studying,
// excluding paused stretches.
func (t *Timer) Elapsed() time.Duration {
	switch t.state {
	case StateRunning:
		return t.now().Sub(t.startEpoch)
	case StatePaused:
		return t.frozen
	default:
		return 0
	}
}

// Start begins a fresh cycle from idle, resumes from paused, and is a
// no-op while running. Resuming shifts the start epoch back by the time
// already on the clock, so Elapsed keeps counting from where it stopped.
func (t *Timer) Start() {
	switch t.state {
	case StateRunning:
		return
	case StateIdle:
		t.startEpoch = t.now()
		t.frozen = 0
		t.minutesSeen = 0
	case StatePaused:
		t.startEpoch = t.now().Add(-t.frozen)
	}
	t.state = StateRunning
}

// Pause freezes the clock. No-op unless running.
func (t *Timer) Pause() {
	if t.state != StateRunning {
		return
	}
	t.frozen = t.now().Sub(t.startEpoch)
	t.state = StatePaused
}

// Stop ends the cycle and reports its final duration and coin award.
// The reset to idle is unconditional: even if the caller's ledger write
// fails afterwards, the timer does not re-enter running. Returns false
// from idle (nothing to stop).
func (t *Timer) Stop() (Result, bool) {
	if t.state == StateIdle {
		return Result{}, false
	}
	seconds := int(t.Elapsed() / time.Second)
	res := Result{
		Duration:    seconds,
		CoinsEarned: coins(seconds, t.earnRate),
	}
	t.state = StateIdle
	t.frozen = 0
	t.minutesSeen = 0
	return res, true
}

// Tick is called on the UI refresh interval. It reports how many fresh
// whole-minute boundaries were crossed since the last call (display-only
// accrual; the server recomputes the real award from the duration).
func (t *Timer) Tick() (coinsAwarded int, crossed bool) {
	if t.state != StateRunning {
		return 0, false
	}
	minutes := int(t.Elapsed() / time.Minute)
	if minutes <= t.minutesSeen {
		return 0, false
	}
	delta := minutes - t.minutesSeen
	t.minutesSeen = minutes
	return delta * t.earnRate, true
}

// CoinsSoFar is the running display total for the current cycle.
func (t *Timer) CoinsSoFar() int {
	return t.minutesSeen * t.earnRate
}

func coins(seconds, earnRate int) int {
	if seconds < 0 {
		return 0
	}
	return (seconds / 60) * earnRate
}
