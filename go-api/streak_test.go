package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d, hour int) time.Time {
	return time.Date(y, m, d, hour, 0, 0, 0, time.UTC)
}

func TestNextStreakSameDay(t *testing.T) {
	last := day(2024, 3, 10, 9)
	now := day(2024, 3, 10, 23)
	days, updated := nextStreak(4, last, now)
	assert.Equal(t, 4, days)
	assert.False(t, updated)
}

func TestNextStreakNextDay(t *testing.T) {
	last := day(2024, 3, 10, 23)
	now := day(2024, 3, 11, 0) // one minute past midnight still counts
	days, updated := nextStreak(4, last, now)
	assert.Equal(t, 5, days)
	assert.True(t, updated)
}

func TestNextStreakGapResets(t *testing.T) {
	last := day(2024, 3, 10, 12)
	now := day(2024, 3, 15, 12) // day N+5
	days, updated := nextStreak(4, last, now)
	assert.Equal(t, 1, days)
	assert.True(t, updated)
}

func TestNextStreakCalendarDaysNotHours(t *testing.T) {
	// 23:59 -> 00:01 is 2 minutes apart but a new calendar day
	last := day(2024, 3, 10, 0).Add(23*time.Hour + 59*time.Minute)
	now := day(2024, 3, 11, 0).Add(time.Minute)
	days, updated := nextStreak(1, last, now)
	assert.Equal(t, 2, days)
	assert.True(t, updated)
}

func TestNextStreakMonthBoundary(t *testing.T) {
	last := day(2024, 2, 29, 20)
	now := day(2024, 3, 1, 8)
	days, updated := nextStreak(10, last, now)
	assert.Equal(t, 11, days)
	assert.True(t, updated)
}
