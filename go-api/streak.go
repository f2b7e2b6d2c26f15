package main

import "time"

/* ===================== Streak rules ====================== */

// utcDay truncates t to its UTC calendar day.
func utcDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// nextStreak compares the UTC calendar day of now against lastStudyDate:
// same day leaves the streak alone, the very next day extends it, any
// longer gap resets it to 1. Calendar days, not elapsed hours, so a
// 23:59 -> 00:01 study pair still counts as consecutive.
func nextStreak(current int, lastStudyDate, now time.Time) (streakDays int, updated bool) {
	diffDays := int(utcDay(now).Sub(utcDay(lastStudyDate)).Hours() / 24)

	switch {
	case diffDays == 0:
		return current, false
	case diffDays == 1:
		return current + 1, true
	default:
		return 1, true
	}
}
