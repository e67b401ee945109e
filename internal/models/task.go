package models

import (
	"strings"
	"time"
)

type TaskPriority string

const (
	PriorityLow    TaskPriority = "Low"
	PriorityMedium TaskPriority = "Medium"
	PriorityHigh   TaskPriority = "High"
)

// NormalizePriority maps free-form input onto the canonical priority values.
// Unknown or empty input falls back to Medium.
func NormalizePriority(raw string) TaskPriority {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "low":
		return PriorityLow
	case "medium":
		return PriorityMedium
	case "high":
		return PriorityHigh
	default:
		return PriorityMedium
	}
}

type Task struct {
	ID        uint64       `gorm:"primarykey" json:"id"`
	Title     string       `gorm:"type:varchar(100);not null" json:"title"`
	Priority  TaskPriority `gorm:"type:varchar(20);not null;default:'Medium'" json:"priority"`
	Completed bool         `gorm:"not null;default:false" json:"completed"`
	UserID    uint64       `gorm:"not null;index" json:"user_id"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// XPReward returns the XP granted for completing a task of this priority.
// The match is case-insensitive; unrecognized values grant nothing.
func (t *Task) XPReward() int {
	switch strings.ToLower(string(t.Priority)) {
	case "low":
		return 10
	case "medium":
		return 15
	case "high":
		return 25
	default:
		return 0
	}
}
