package main

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// testStorage opens a fresh in-memory sqlite ledger. The DSN is keyed by
// the test name: a plain ":memory:" gives every pooled connection its own
// empty database.
func testStorage(t *testing.T) *gormStorage {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, autoMigrate(db))
	return newGormStorage(db)
}

func TestUserRoundTrip(t *testing.T) {
	s := testStorage(t)

	u, err := s.CreateUser("alice", "hash")
	require.NoError(t, err)
	assert.NotZero(t, u.ID)

	got, found, err := s.GetUserByUsername("alice")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, u.ID, got.ID)

	_, found, err = s.GetUser(u.ID + 99)
	require.NoError(t, err)
	assert.False(t, found)

	// username is unique
	_, err = s.CreateUser("alice", "otherhash")
	assert.Error(t, err)
}

func TestCreateUserStatsRejectsDuplicate(t *testing.T) {
	s := testStorage(t)
	u, err := s.CreateUser("bob", "hash")
	require.NoError(t, err)

	_, err = s.CreateUserStats(UserStats{UserID: u.ID, Currency: 100, Level: 1})
	require.NoError(t, err)

	// second create for the same user must fail (unique index); merge
	// semantics live in UpdateUserStats only
	_, err = s.CreateUserStats(UserStats{UserID: u.ID, Currency: 500, Level: 1})
	assert.Error(t, err)
}

func TestUpdateUserStatsUpsert(t *testing.T) {
	s := testStorage(t)
	u, err := s.CreateUser("carol", "hash")
	require.NoError(t, err)

	// no row yet: upsert creates zero defaults, then applies the patch
	currency := 40
	st, err := s.UpdateUserStats(u.ID, StatsPatch{Currency: &currency})
	require.NoError(t, err)
	assert.Equal(t, 40, st.Currency)
	assert.Equal(t, 1, st.Level)
	assert.Equal(t, 0, st.TotalSessions)

	// a second patch touching other fields preserves the first one
	sessions := 3
	st, err = s.UpdateUserStats(u.ID, StatsPatch{TotalSessions: &sessions})
	require.NoError(t, err)
	assert.Equal(t, 40, st.Currency, "fields absent from the patch stay put")
	assert.Equal(t, 3, st.TotalSessions)

	// zero values are applied, not skipped
	zero := 0
	st, err = s.UpdateUserStats(u.ID, StatsPatch{Currency: &zero})
	require.NoError(t, err)
	assert.Equal(t, 0, st.Currency)
	assert.Equal(t, 3, st.TotalSessions)
}

func TestSessionsNewestFirst(t *testing.T) {
	s := testStorage(t)
	u, err := s.CreateUser("dave", "hash")
	require.NoError(t, err)

	for _, d := range []int{100, 200, 300} {
		_, err := s.CreateStudySession(u.ID, d, d/60*10)
		require.NoError(t, err)
	}

	sessions, err := s.GetStudySessions(u.ID)
	require.NoError(t, err)
	require.Len(t, sessions, 3)
	assert.Equal(t, 300, sessions[0].Duration, "newest first")
	assert.Equal(t, 100, sessions[2].Duration)

	// another user's log is empty, not shared
	other, err := s.CreateUser("erin", "hash")
	require.NoError(t, err)
	sessions, err = s.GetStudySessions(other.ID)
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestSpendCurrency(t *testing.T) {
	s := testStorage(t)
	u, err := s.CreateUser("frank", "hash")
	require.NoError(t, err)

	_, err = s.CreateUserStats(UserStats{UserID: u.ID, Currency: 200, Level: 1})
	require.NoError(t, err)

	// 200 < 250: rejected, row untouched
	_, err = s.SpendCurrency(u.ID, 250)
	assert.ErrorIs(t, err, errInsufficientFunds)
	st, _, err := s.GetUserStats(u.ID)
	require.NoError(t, err)
	assert.Equal(t, 200, st.Currency)
	assert.Equal(t, 0, st.BreaksTaken)

	// top up to 300 and retry: 300 - 250 = 50, breaksTaken bumps
	currency := 300
	_, err = s.UpdateUserStats(u.ID, StatsPatch{Currency: &currency})
	require.NoError(t, err)

	st, err = s.SpendCurrency(u.ID, 250)
	require.NoError(t, err)
	assert.Equal(t, 50, st.Currency)
	assert.Equal(t, 1, st.BreaksTaken)
}

func TestBreakCatalog(t *testing.T) {
	s := testStorage(t)
	require.NoError(t, seedBreaks(s))

	opts, err := s.GetBreaks()
	require.NoError(t, err)
	require.Len(t, opts, 4)
	assert.Equal(t, "5 Minute Break", opts[0].Name)
	assert.Equal(t, 250, opts[0].Cost)

	// seeding again is a no-op
	require.NoError(t, seedBreaks(s))
	opts, err = s.GetBreaks()
	require.NoError(t, err)
	assert.Len(t, opts, 4)

	b, found, err := s.GetBreak(opts[2].ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 20, b.Duration)

	_, found, err = s.GetBreak(9999)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestStatsPatchLastStudyDate(t *testing.T) {
	s := testStorage(t)
	u, err := s.CreateUser("gina", "hash")
	require.NoError(t, err)

	yesterday := time.Now().UTC().AddDate(0, 0, -1)
	st, err := s.UpdateUserStats(u.ID, StatsPatch{LastStudyDate: &yesterday})
	require.NoError(t, err)
	assert.WithinDuration(t, yesterday, st.LastStudyDate, time.Second)
}
