package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoinsForDuration(t *testing.T) {
	assert.Equal(t, 0, coinsForDuration(0, 10))
	assert.Equal(t, 0, coinsForDuration(59, 10))
	assert.Equal(t, 10, coinsForDuration(60, 10))
	assert.Equal(t, 10, coinsForDuration(119, 10))
	assert.Equal(t, 10, coinsForDuration(125, 10)) // the spec's 125s example
	assert.Equal(t, 250, coinsForDuration(25*60, 10))

	// negative durations never mint coins
	assert.Equal(t, 0, coinsForDuration(-30, 10))
}

func TestCoinsForDurationMonotonic(t *testing.T) {
	prev := 0
	for d := 0; d <= 600; d += 7 {
		c := coinsForDuration(d, 10)
		assert.GreaterOrEqual(t, c, prev, "coins must not decrease as duration grows (d=%d)", d)
		prev = c
	}
}

func TestApplyExperienceNoLevelUp(t *testing.T) {
	level, exp := applyExperience(1, 200, 300)
	assert.Equal(t, 1, level)
	assert.Equal(t, 500, exp)
}

func TestApplyExperienceSingleLevelUp(t *testing.T) {
	// level 1 costs 1000 exp
	level, exp := applyExperience(1, 900, 200)
	assert.Equal(t, 2, level)
	assert.Equal(t, 100, exp)
}

func TestApplyExperienceMultiLevelUp(t *testing.T) {
	// 1000 (lvl1) + 2000 (lvl2) + 500 leftover
	level, exp := applyExperience(1, 0, 3500)
	assert.Equal(t, 3, level)
	assert.Equal(t, 500, exp)
}

func TestApplyExperiencePostcondition(t *testing.T) {
	cases := []struct{ level, exp, gained int }{
		{1, 0, 0},
		{1, 999, 1},
		{2, 1999, 1},
		{5, 0, 100000},
		{1, 0, 1},
		{3, 2999, 50000},
	}
	for _, c := range cases {
		level, exp := applyExperience(c.level, c.exp, c.gained)
		assert.GreaterOrEqual(t, level, c.level, "level never decreases")
		assert.GreaterOrEqual(t, exp, 0)
		assert.Less(t, exp, level*1000, "experience must stay below the next level cost")
	}
}
