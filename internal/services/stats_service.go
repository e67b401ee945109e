package services

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/blossom-focus/blossom-api/internal/models"
	"github.com/blossom-focus/blossom-api/internal/repository"
)

var (
	ErrInvalidPeriod = errors.New("invalid stats period")
	ErrNegativeXP    = errors.New("user XP is negative")
)

// StatsPeriod selects the start of the window stats are computed over.
type StatsPeriod string

const (
	PeriodToday   StatsPeriod = "today"
	PeriodWeek    StatsPeriod = "week"
	PeriodMonth   StatsPeriod = "month"
	PeriodYear    StatsPeriod = "year"
	PeriodAllTime StatsPeriod = "all_time"
)

// UserStats is the derived read-only view over tasks, XP, and focus sessions.
type UserStats struct {
	CompletedCount    int64 `json:"num_task_completed"`
	Streak            int   `json:"streaks"`
	TotalXP           int   `json:"xps"`
	TotalFocusMinutes int64 `json:"total_focus_minutes"`
}

// StatsService derives per-user counters from the task ledger, the focus log,
// and the user row.
type StatsService struct {
	taskRepo  repository.TaskRepository
	focusRepo repository.FocusTimeRepository
	userRepo  repository.UserRepository
}

// NewStatsService creates a new StatsService
func NewStatsService(taskRepo repository.TaskRepository, focusRepo repository.FocusTimeRepository, userRepo repository.UserRepository) *StatsService {
	return &StatsService{
		taskRepo:  taskRepo,
		focusRepo: focusRepo,
		userRepo:  userRepo,
	}
}

// PeriodStart computes the window start for a period. The week starts on
// Monday; all_time anchors at account creation.
func PeriodStart(period StatsPeriod, user *models.User, now time.Time) (time.Time, error) {
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch period {
	case PeriodToday:
		return startOfDay, nil
	case PeriodWeek:
		offset := (int(now.Weekday()) + 6) % 7
		return startOfDay.AddDate(0, 0, -offset), nil
	case PeriodMonth:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), nil
	case PeriodYear:
		return time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location()), nil
	case PeriodAllTime:
		return user.CreatedAt, nil
	default:
		return time.Time{}, ErrInvalidPeriod
	}
}

// GetStats computes the stats view for one user over the given period.
func (s *StatsService) GetStats(userID uint64, period StatsPeriod) (*UserStats, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	since, err := PeriodStart(period, user, time.Now())
	if err != nil {
		return nil, err
	}

	completedCount, err := s.taskRepo.CountCompletedSince(userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to count completed tasks: %w", err)
	}

	completed, err := s.taskRepo.CompletedSince(userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to load completed tasks: %w", err)
	}

	xp := currentXP(user)
	if xp < 0 {
		// Rewards are additive-only, so this should be unreachable.
		return nil, ErrNegativeXP
	}

	focusMinutes, err := s.focusRepo.TotalMinutesSince(userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to sum focus time: %w", err)
	}

	return &UserStats{
		CompletedCount:    completedCount,
		Streak:            Streak(completed),
		TotalXP:           xp,
		TotalFocusMinutes: focusMinutes,
	}, nil
}

// Streak counts consecutive calendar days with at least one completed task,
// anchored at the most recent completion date. The walk stops at the first
// gap; a user whose last completion was days ago still keeps the streak those
// days earned.
func Streak(completed []models.Task) int {
	seen := make(map[time.Time]struct{}, len(completed))
	for _, t := range completed {
		y, m, d := t.CreatedAt.Date()
		seen[time.Date(y, m, d, 0, 0, 0, 0, time.UTC)] = struct{}{}
	}
	if len(seen) == 0 {
		return 0
	}

	dates := make([]time.Time, 0, len(seen))
	for d := range seen {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].After(dates[j]) })

	streak := 1
	for i := 1; i < len(dates); i++ {
		if dates[i-1].Sub(dates[i]) != 24*time.Hour {
			break
		}
		streak++
	}
	return streak
}
