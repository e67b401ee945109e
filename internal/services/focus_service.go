package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/blossom-focus/blossom-api/internal/models"
	"github.com/blossom-focus/blossom-api/internal/repository"
)

var ErrInvalidFocusInterval = errors.New("focus session must end after it starts")

// FocusService records completed focus sessions. The log is append-only.
type FocusService struct {
	focusRepo repository.FocusTimeRepository
}

// NewFocusService creates a new FocusService
func NewFocusService(focusRepo repository.FocusTimeRepository) *FocusService {
	return &FocusService{
		focusRepo: focusRepo,
	}
}

// LogSession stores a finished focus session with its duration in whole
// minutes.
func (s *FocusService) LogSession(userID uint64, startedAt, endedAt time.Time) (*models.FocusTime, error) {
	if !endedAt.After(startedAt) {
		return nil, ErrInvalidFocusInterval
	}

	entry := &models.FocusTime{
		UserID:          userID,
		StartedAt:       startedAt,
		EndedAt:         endedAt,
		DurationMinutes: int(endedAt.Sub(startedAt).Minutes()),
	}

	if err := s.focusRepo.Create(entry); err != nil {
		return nil, fmt.Errorf("failed to log focus session: %w", err)
	}

	return entry, nil
}

// ListSessions returns the user's focus sessions, newest first.
func (s *FocusService) ListSessions(userID uint64) ([]models.FocusTime, error) {
	entries, err := s.focusRepo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list focus sessions: %w", err)
	}
	return entries, nil
}
