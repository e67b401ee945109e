package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/blossom-focus/blossom-api/internal/models"
)

func completedOn(day time.Time) models.Task {
	return models.Task{CreatedAt: day, Completed: true}
}

func TestStreak_AnchorsAtMostRecentCompletion(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2026, 1, d, 15, 30, 0, 0, time.UTC)
	}

	tasks := []models.Task{
		completedOn(day(5)),
		completedOn(day(4)),
		completedOn(day(3)),
		completedOn(day(1)),
	}
	require.Equal(t, 3, Streak(tasks))
}

func TestStreak_EdgeCases(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2026, 1, d, 9, 0, 0, 0, time.UTC)
	}

	require.Equal(t, 0, Streak(nil))
	require.Equal(t, 1, Streak([]models.Task{completedOn(day(5))}))

	// Several completions on the same day count once.
	sameDay := []models.Task{
		completedOn(day(5)),
		{CreatedAt: time.Date(2026, 1, 5, 23, 0, 0, 0, time.UTC), Completed: true},
		completedOn(day(4)),
	}
	require.Equal(t, 2, Streak(sameDay))

	// A gap right after the anchor stops the walk immediately.
	gapped := []models.Task{
		completedOn(day(10)),
		completedOn(day(8)),
		completedOn(day(7)),
	}
	require.Equal(t, 1, Streak(gapped))
}

func TestPeriodStart(t *testing.T) {
	// A Wednesday.
	now := time.Date(2026, 3, 11, 16, 45, 0, 0, time.UTC)
	user := &models.User{CreatedAt: time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)}

	start, err := PeriodStart(PeriodToday, user, now)
	require.NoError(t, err)
	require.Equal(t, time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC), start)

	start, err = PeriodStart(PeriodWeek, user, now)
	require.NoError(t, err)
	require.Equal(t, time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), start)
	require.Equal(t, time.Monday, start.Weekday())

	start, err = PeriodStart(PeriodMonth, user, now)
	require.NoError(t, err)
	require.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), start)

	start, err = PeriodStart(PeriodYear, user, now)
	require.NoError(t, err)
	require.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), start)

	start, err = PeriodStart(PeriodAllTime, user, now)
	require.NoError(t, err)
	require.Equal(t, user.CreatedAt, start)

	_, err = PeriodStart(StatsPeriod("fortnight"), user, now)
	require.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestPeriodStart_WeekOnMonday(t *testing.T) {
	user := &models.User{}

	// On a Monday the week starts that same day.
	monday := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)
	start, err := PeriodStart(PeriodWeek, user, monday)
	require.NoError(t, err)
	require.Equal(t, time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), start)

	// On a Sunday it reaches back six days.
	sunday := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	start, err = PeriodStart(PeriodWeek, user, sunday)
	require.NoError(t, err)
	require.Equal(t, time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), start)
}

func TestGetStats_AllTime(t *testing.T) {
	env := setupServiceTestEnv(t)
	svc := NewStatsService(env.taskRepo, env.focusRepo, env.userRepo)
	user := env.createVerifiedUser(t, "amy", 160)

	now := time.Now()
	yesterday := now.Add(-24 * time.Hour)

	// Backdate the account so all_time reaches past yesterday's task.
	require.NoError(t, env.db.Model(user).Update("created_at", now.Add(-30*24*time.Hour)).Error)

	for _, task := range []models.Task{
		{Title: "a", UserID: user.ID, Completed: true, CreatedAt: now},
		{Title: "b", UserID: user.ID, Completed: true, CreatedAt: yesterday},
		{Title: "c", UserID: user.ID, Completed: false, CreatedAt: now},
	} {
		task := task
		require.NoError(t, env.db.Create(&task).Error)
	}

	require.NoError(t, env.db.Create(&models.FocusTime{
		UserID:          user.ID,
		StartedAt:       now.Add(-2 * time.Hour),
		EndedAt:         now.Add(-90 * time.Minute),
		DurationMinutes: 30,
	}).Error)
	require.NoError(t, env.db.Create(&models.FocusTime{
		UserID:          user.ID,
		StartedAt:       now.Add(-time.Hour),
		EndedAt:         now.Add(-35 * time.Minute),
		DurationMinutes: 25,
	}).Error)

	stats, err := svc.GetStats(user.ID, PeriodAllTime)
	require.NoError(t, err)
	require.Equal(t, int64(2), stats.CompletedCount)
	require.Equal(t, 2, stats.Streak)
	require.Equal(t, 160, stats.TotalXP)
	require.Equal(t, int64(55), stats.TotalFocusMinutes)
}

func TestGetStats_TodayExcludesOlderWork(t *testing.T) {
	env := setupServiceTestEnv(t)
	svc := NewStatsService(env.taskRepo, env.focusRepo, env.userRepo)
	user := env.createVerifiedUser(t, "amy", 100)

	now := time.Now()
	lastWeek := now.Add(-8 * 24 * time.Hour)

	today := models.Task{Title: "today", UserID: user.ID, Completed: true, CreatedAt: now}
	require.NoError(t, env.db.Create(&today).Error)
	old := models.Task{Title: "old", UserID: user.ID, Completed: true, CreatedAt: lastWeek}
	require.NoError(t, env.db.Create(&old).Error)

	require.NoError(t, env.db.Create(&models.FocusTime{
		UserID: user.ID, StartedAt: lastWeek, EndedAt: lastWeek.Add(time.Hour), DurationMinutes: 60,
	}).Error)

	stats, err := svc.GetStats(user.ID, PeriodToday)
	require.NoError(t, err)
	require.Equal(t, int64(1), stats.CompletedCount)
	require.Equal(t, int64(0), stats.TotalFocusMinutes)
}

func TestGetStats_InvalidPeriod(t *testing.T) {
	env := setupServiceTestEnv(t)
	svc := NewStatsService(env.taskRepo, env.focusRepo, env.userRepo)
	user := env.createVerifiedUser(t, "amy", 100)

	_, err := svc.GetStats(user.ID, StatsPeriod("decade"))
	require.ErrorIs(t, err, ErrInvalidPeriod)
}
