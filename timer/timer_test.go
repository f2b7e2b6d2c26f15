package timer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fakeClock advances only when told to.
type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestStartFromIdle(t *testing.T) {
	clk := newFakeClock()
	tm := New(10, clk.now)

	assert.Equal(t, StateIdle, tm.State())
	assert.Equal(t, time.Duration(0), tm.Elapsed())

	tm.Start()
	assert.Equal(t, StateRunning, tm.State())

	clk.advance(90 * time.Second)
	assert.Equal(t, 90*time.Second, tm.Elapsed())
}

func TestStartWhileRunningIsNoop(t *testing.T) {
	clk := newFakeClock()
	tm := New(10, clk.now)

	tm.Start()
	clk.advance(30 * time.Second)
	tm.Start() // must not reset the clock
	assert.Equal(t, 30*time.Second, tm.Elapsed())
}

func TestPauseAndResume(t *testing.T) {
	clk := newFakeClock()
	tm := New(10, clk.now)

	tm.Start()
	clk.advance(40 * time.Second)
	tm.Pause()
	assert.Equal(t, StatePaused, tm.State())

	// paused time doesn't count
	clk.advance(5 * time.Minute)
	assert.Equal(t, 40*time.Second, tm.Elapsed())

	tm.Start()
	clk.advance(20 * time.Second)
	assert.Equal(t, StateRunning, tm.State())
	assert.Equal(t, time.Minute, tm.Elapsed())
}

func TestPauseWhenNotRunningIsNoop(t *testing.T) {
	clk := newFakeClock()
	tm := New(10, clk.now)

	tm.Pause()
	assert.Equal(t, StateIdle, tm.State())

	tm.Start()
	tm.Pause()
	tm.Pause()
	assert.Equal(t, StatePaused, tm.State())
}

func TestStopReturnsResultAndResets(t *testing.T) {
	clk := newFakeClock()
	tm := New(10, clk.now)

	tm.Start()
	clk.advance(125 * time.Second)
	res, ok := tm.Stop()
	assert.True(t, ok)
	assert.Equal(t, 125, res.Duration)
	assert.Equal(t, 10, res.CoinsEarned) // floor(125/60) * 10

	assert.Equal(t, StateIdle, tm.State())
	assert.Equal(t, time.Duration(0), tm.Elapsed())
}

func TestStopFromPaused(t *testing.T) {
	clk := newFakeClock()
	tm := New(10, clk.now)

	tm.Start()
	clk.advance(3 * time.Minute)
	tm.Pause()
	clk.advance(time.Hour) // the paused hour is not studied time

	res, ok := tm.Stop()
	assert.True(t, ok)
	assert.Equal(t, 180, res.Duration)
	assert.Equal(t, 30, res.CoinsEarned)
}

func TestStopWhenIdleIsNoop(t *testing.T) {
	tm := New(10, newFakeClock().now)
	_, ok := tm.Stop()
	assert.False(t, ok)
}

func TestRestartAfterStopResetsElapsed(t *testing.T) {
	clk := newFakeClock()
	tm := New(10, clk.now)

	tm.Start()
	clk.advance(10 * time.Minute)
	tm.Stop()

	tm.Start()
	clk.advance(30 * time.Second)
	assert.Equal(t, 30*time.Second, tm.Elapsed())
	assert.Equal(t, 0, tm.CoinsSoFar())
}

func TestTickMinuteBoundaries(t *testing.T) {
	clk := newFakeClock()
	tm := New(10, clk.now)
	tm.Start()

	// sub-minute ticks award nothing
	clk.advance(59 * time.Second)
	award, crossed := tm.Tick()
	assert.False(t, crossed)
	assert.Equal(t, 0, award)

	// crossing the first boundary
	clk.advance(2 * time.Second)
	award, crossed = tm.Tick()
	assert.True(t, crossed)
	assert.Equal(t, 10, award)
	assert.Equal(t, 10, tm.CoinsSoFar())

	// same minute again: no double award
	clk.advance(time.Second)
	_, crossed = tm.Tick()
	assert.False(t, crossed)

	// a slow UI that skipped two boundaries catches up in one tick
	clk.advance(2 * time.Minute)
	award, crossed = tm.Tick()
	assert.True(t, crossed)
	assert.Equal(t, 20, award)
	assert.Equal(t, 30, tm.CoinsSoFar())
}

func TestTickOnlyWhileRunning(t *testing.T) {
	clk := newFakeClock()
	tm := New(10, clk.now)

	_, crossed := tm.Tick()
	assert.False(t, crossed)

	tm.Start()
	clk.advance(90 * time.Second)
	tm.Pause()
	_, crossed = tm.Tick()
	assert.False(t, crossed)
}
