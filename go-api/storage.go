package main

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

/* ===================== Ledger contract ====================== */

var errInsufficientFunds = errors.New("insufficient currency")

// StatsPatch is a partial UserStats update. Pointer fields so callers can
// set a field to zero without clobbering the rest of the row.
type StatsPatch struct {
	Currency       *int       `json:"currency"`
	TotalStudyTime *int       `json:"totalStudyTime"`
	TodayStudyTime *int       `json:"todayStudyTime"`
	TotalSessions  *int       `json:"totalSessions"`
	BreaksTaken    *int       `json:"breaksTaken"`
	StreakDays     *int       `json:"streakDays"`
	LastStudyDate  *time.Time `json:"lastStudyDate"`
	Level          *int       `json:"level"`
	Experience     *int       `json:"experience"`
}

// Storage is the reward ledger: users, append-only study sessions, the
// per-user aggregate row and the break catalog. Handlers get it injected
// (see newAPI in main.go) so tests can back it with sqlite.
type Storage interface {
	GetUser(id uint) (User, bool, error)
	GetUserByUsername(username string) (User, bool, error)
	CreateUser(username, passwordHash string) (User, error)

	GetStudySessions(userID uint) ([]StudySession, error)
	CreateStudySession(userID uint, duration, coinsEarned int) (StudySession, error)

	GetUserStats(userID uint) (UserStats, bool, error)
	CreateUserStats(stats UserStats) (UserStats, error)
	UpdateUserStats(userID uint, patch StatsPatch) (UserStats, error)
	// SpendCurrency debits cost and bumps breaksTaken in one conditional
	// update; returns errInsufficientFunds (row untouched) when the
	// balance is short. Affordability is checked in the database, not in
	// the handler, so a racing purchase cannot overdraw.
	SpendCurrency(userID uint, cost int) (UserStats, error)

	GetBreaks() ([]BreakOption, error)
	GetBreak(id uint) (BreakOption, bool, error)
	CreateBreak(b BreakOption) (BreakOption, error)
}

/* ===================== gorm implementation ====================== */

type gormStorage struct {
	db *gorm.DB
}

func newGormStorage(db *gorm.DB) *gormStorage { return &gormStorage{db: db} }

func (s *gormStorage) GetUser(id uint) (User, bool, error) {
	var u User
	err := s.db.First(&u, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return User{}, false, nil
	}
	return u, err == nil, err
}

func (s *gormStorage) GetUserByUsername(username string) (User, bool, error) {
	var u User
	err := s.db.First(&u, "username = ?", username).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return User{}, false, nil
	}
	return u, err == nil, err
}

func (s *gormStorage) CreateUser(username, passwordHash string) (User, error) {
	u := User{Username: username, PasswordHash: passwordHash}
	return u, s.db.Create(&u).Error
}

// GetStudySessions returns the user's sessions newest first (snapshot at
// call time).
func (s *gormStorage) GetStudySessions(userID uint) ([]StudySession, error) {
	var out []StudySession
	err := s.db.Where("user_id = ?", userID).
		Order("date DESC, id DESC").
		Find(&out).Error
	return out, err
}

func (s *gormStorage) CreateStudySession(userID uint, duration, coinsEarned int) (StudySession, error) {
	rec := StudySession{
		UserID:      userID,
		Duration:    duration,
		CoinsEarned: coinsEarned,
		Date:        time.Now().UTC(),
	}
	return rec, s.db.Create(&rec).Error
}

func (s *gormStorage) GetUserStats(userID uint) (UserStats, bool, error) {
	var st UserStats
	err := s.db.First(&st, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return UserStats{}, false, nil
	}
	return st, err == nil, err
}

// CreateUserStats inserts a fresh aggregate row. The unique index on
// user_id makes a second create for the same user fail; callers that
// want merge semantics use UpdateUserStats instead.
func (s *gormStorage) CreateUserStats(stats UserStats) (UserStats, error) {
	if stats.Level < 1 {
		stats.Level = 1
	}
	return stats, s.db.Create(&stats).Error
}

// UpdateUserStats is an upsert: if no row exists for the user yet, one is
// created with zero defaults (level 1) and the patch applied on top.
// Every caller relies on this, so keep it that way.
func (s *gormStorage) UpdateUserStats(userID uint, patch StatsPatch) (UserStats, error) {
	var st UserStats
	err := s.db.First(&st, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		st = UserStats{UserID: userID, Level: 1}
		if err := s.db.Create(&st).Error; err != nil {
			return UserStats{}, err
		}
	} else if err != nil {
		return UserStats{}, err
	}

	applyPatch(&st, patch)
	return st, s.db.Save(&st).Error
}

func applyPatch(st *UserStats, p StatsPatch) {
	if p.Currency != nil {
		st.Currency = *p.Currency
	}
	if p.TotalStudyTime != nil {
		st.TotalStudyTime = *p.TotalStudyTime
	}
	if p.TodayStudyTime != nil {
		st.TodayStudyTime = *p.TodayStudyTime
	}
	if p.TotalSessions != nil {
		st.TotalSessions = *p.TotalSessions
	}
	if p.BreaksTaken != nil {
		st.BreaksTaken = *p.BreaksTaken
	}
	if p.StreakDays != nil {
		st.StreakDays = *p.StreakDays
	}
	if p.LastStudyDate != nil {
		st.LastStudyDate = *p.LastStudyDate
	}
	if p.Level != nil {
		st.Level = *p.Level
	}
	if p.Experience != nil {
		st.Experience = *p.Experience
	}
}

func (s *gormStorage) SpendCurrency(userID uint, cost int) (UserStats, error) {
	res := s.db.Model(&UserStats{}).
		Where("user_id = ? AND currency >= ?", userID, cost).
		Updates(map[string]any{
			"currency":     gorm.Expr("currency - ?", cost),
			"breaks_taken": gorm.Expr("breaks_taken + ?", 1),
		})
	if res.Error != nil {
		return UserStats{}, res.Error
	}
	if res.RowsAffected == 0 {
		return UserStats{}, errInsufficientFunds
	}

	var st UserStats
	if err := s.db.First(&st, "user_id = ?", userID).Error; err != nil {
		return UserStats{}, err
	}
	return st, nil
}

func (s *gormStorage) GetBreaks() ([]BreakOption, error) {
	var out []BreakOption
	err := s.db.Order("id ASC").Find(&out).Error
	return out, err
}

func (s *gormStorage) GetBreak(id uint) (BreakOption, bool, error) {
	var b BreakOption
	err := s.db.First(&b, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return BreakOption{}, false, nil
	}
	return b, err == nil, err
}

func (s *gormStorage) CreateBreak(b BreakOption) (BreakOption, error) {
	return b, s.db.Create(&b).Error
}
