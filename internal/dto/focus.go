package dto

import (
	"time"

	"github.com/blossom-focus/blossom-api/internal/models"
)

// FocusTimeDTO represents a focus session in API responses
type FocusTimeDTO struct {
	ID              uint64    `json:"id"`
	StartedAt       time.Time `json:"started_at"`
	EndedAt         time.Time `json:"ended_at"`
	DurationMinutes int       `json:"duration_minutes"`
}

// ToFocusTimeDTO converts a FocusTime model to FocusTimeDTO
func ToFocusTimeDTO(entry models.FocusTime) FocusTimeDTO {
	return FocusTimeDTO{
		ID:              entry.ID,
		StartedAt:       entry.StartedAt,
		EndedAt:         entry.EndedAt,
		DurationMinutes: entry.DurationMinutes,
	}
}

// ToFocusTimeListDTO converts a slice of focus sessions
func ToFocusTimeListDTO(entries []models.FocusTime) []FocusTimeDTO {
	items := make([]FocusTimeDTO, len(entries))
	for i, entry := range entries {
		items[i] = ToFocusTimeDTO(entry)
	}
	return items
}
