package main

import (
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// seedBreaks fills the catalog on first boot. Costs are tuned so ~25-30
// minutes of study (at the default earn rate of 10/min) buys a 5-minute
// break.
func seedBreaks(store Storage) error {
	existing, err := store.GetBreaks()
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil // already seeded
	}

	defaults := []BreakOption{
		{Name: "5 Minute Break", Description: "A quick refresher", Duration: 5, Cost: 250},
		{Name: "10 Minute Break", Description: "Time for a snack", Duration: 10, Cost: 300},
		{Name: "20 Minute Break", Description: "Proper rest time", Duration: 20, Cost: 450},
		{Name: "30 Minute Break", Description: "Extended relaxation", Duration: 30, Cost: 600},
	}
	for _, b := range defaults {
		if _, err := store.CreateBreak(b); err != nil {
			return err
		}
	}
	log.Printf("[seed] break catalog seeded (%d options)", len(defaults))
	return nil
}

// seedDemoUser creates a "demo" account with a few days of recent study
// history so a fresh deploy has something to show. Stats are recomputed
// from the seeded sessions so the dashboard numbers match exactly.
func seedDemoUser(store Storage, cfg Config) error {
	if _, exists, err := store.GetUserByUsername("demo"); err != nil {
		return err
	} else if exists {
		return nil
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte("demo"), bcrypt.DefaultCost)
	u, err := store.CreateUser("demo", string(hash))
	if err != nil {
		return err
	}

	// A week of sessions, 20-50 minutes each
	durations := []int{1500, 2400, 1800, 3000, 1200, 2700, 2100}
	totalTime, totalCoins := 0, 0
	for _, d := range durations {
		coins := coinsForDuration(d, cfg.EarnRate)
		if _, err := store.CreateStudySession(u.ID, d, coins); err != nil {
			return err
		}
		totalTime += d
		totalCoins += coins
	}

	level, experience := applyExperience(1, 0, totalTime)
	currency := cfg.StartingCurrency + totalCoins
	sessions := len(durations)
	streak := len(durations)
	now := time.Now().UTC()

	_, err = store.UpdateUserStats(u.ID, StatsPatch{
		Currency:       &currency,
		TotalStudyTime: &totalTime,
		TotalSessions:  &sessions,
		StreakDays:     &streak,
		LastStudyDate:  &now,
		Level:          &level,
		Experience:     &experience,
	})
	if err != nil {
		return err
	}
	log.Printf("[seed] demo user created (%d sessions)", sessions)
	return nil
}
