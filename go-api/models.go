package main

import "time"

/* ===================== DB models ====================== */

// User is the persisted auth user record.
// auth.go (handlers) convert this to a lightweight DTO for the client.
type User struct {
	ID           uint      `gorm:"primaryKey"`
	Username     string    `gorm:"uniqueIndex;size:64;not null"`
	PasswordHash string    `gorm:"size:255;not null"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

func (User) TableName() string { return "users" }

// StudySession is one completed, timed study interval. Append-only:
// nothing in the app mutates or deletes these rows.
type StudySession struct {
	ID          uint      `gorm:"primaryKey"`
	UserID      uint      `gorm:"index;not null"`
	Duration    int       `gorm:"not null"` // seconds
	CoinsEarned int       `gorm:"not null"`
	Date        time.Time `gorm:"not null;autoCreateTime"`
}

func (StudySession) TableName() string { return "study_sessions" }

// UserStats is the per-user aggregate row. One row per user, updated on
// every session create and every break purchase.
// Invariants: counters >= 0, Level >= 1, 0 <= Experience < Level*1000.
type UserStats struct {
	ID             uint      `gorm:"primaryKey"`
	UserID         uint      `gorm:"uniqueIndex;not null"`
	Currency       int       `gorm:"not null;default:0"`
	TotalStudyTime int       `gorm:"not null;default:0"` // seconds
	TodayStudyTime int       `gorm:"not null;default:0"` // seconds
	TotalSessions  int       `gorm:"not null;default:0"`
	BreaksTaken    int       `gorm:"not null;default:0"`
	StreakDays     int       `gorm:"not null;default:0"`
	LastStudyDate  time.Time
	Level          int       `gorm:"not null;default:1"`
	Experience     int       `gorm:"not null;default:0"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
}

func (UserStats) TableName() string { return "user_stats" }

// BreakOption is catalog data: a purchasable break duration with a coin cost.
// Seeded at startup, read-only afterwards, not tied to any user.
type BreakOption struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"not null"`
	Description string `gorm:"not null"`
	Duration    int    `gorm:"not null"` // minutes
	Cost        int    `gorm:"not null"`
}

func (BreakOption) TableName() string { return "breaks" }

/* ===================== Public JSON (API) ====================== */

type userDTO struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

func toDTO(u User) userDTO {
	return userDTO{ID: u.ID, Username: u.Username}
}

type sessionDTO struct {
	ID          uint   `json:"id"`
	UserID      uint   `json:"userId"`
	Duration    int    `json:"duration"`
	CoinsEarned int    `json:"coinsEarned"`
	Date        string `json:"date"` // RFC3339, UTC
}

func toSessionDTO(s StudySession) sessionDTO {
	return sessionDTO{
		ID:          s.ID,
		UserID:      s.UserID,
		Duration:    s.Duration,
		CoinsEarned: s.CoinsEarned,
		Date:        s.Date.UTC().Format(time.RFC3339),
	}
}

type statsDTO struct {
	UserID         uint   `json:"userId"`
	Currency       int    `json:"currency"`
	TotalStudyTime int    `json:"totalStudyTime"`
	TodayStudyTime int    `json:"todayStudyTime"`
	TotalSessions  int    `json:"totalSessions"`
	BreaksTaken    int    `json:"breaksTaken"`
	StreakDays     int    `json:"streakDays"`
	LastStudyDate  string `json:"lastStudyDate,omitempty"`
	Level          int    `json:"level"`
	Experience     int    `json:"experience"`
}

func toStatsDTO(s UserStats) statsDTO {
	out := statsDTO{
		UserID:         s.UserID,
		Currency:       s.Currency,
		TotalStudyTime: s.TotalStudyTime,
		TodayStudyTime: s.TodayStudyTime,
		TotalSessions:  s.TotalSessions,
		BreaksTaken:    s.BreaksTaken,
		StreakDays:     s.StreakDays,
		Level:          s.Level,
		Experience:     s.Experience,
	}
	if !s.LastStudyDate.IsZero() {
		out.LastStudyDate = s.LastStudyDate.UTC().Format(time.RFC3339)
	}
	return out
}

type breakDTO struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Duration    int    `json:"duration"` // minutes
	Cost        int    `json:"cost"`
}

func toBreakDTO(b BreakOption) breakDTO {
	return breakDTO{ID: b.ID, Name: b.Name, Description: b.Description, Duration: b.Duration, Cost: b.Cost}
}
