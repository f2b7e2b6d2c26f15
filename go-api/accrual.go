package main

/* ===================== Accrual rules ====================== */

// coinsForDuration converts a session length in seconds into coins at a
// flat earnRate (coins per whole minute). Partial minutes earn nothing.
func coinsForDuration(seconds, earnRate int) int {
	if seconds < 0 {
		return 0
	}
	return (seconds / 60) * earnRate
}

// applyExperience folds gained exp into (level, experience). The cost of
// each level is level*1000 exp, so the loop drains the total until it no
// longer covers the current level. Level never decreases.
func applyExperience(level, experience, gained int) (int, int) {
	if level < 1 {
		level = 1
	}
	total := experience + gained
	for total >= level*1000 {
		total -= level * 1000
		level++
	}
	return level, total
}
