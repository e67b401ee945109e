package dto

import (
	"time"

	"github.com/blossom-focus/blossom-api/internal/models"
)

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID        uint64              `json:"id"`
	Title     string              `json:"title"`
	Priority  models.TaskPriority `json:"priority"`
	Completed bool                `json:"completed"`
	UserID    uint64              `json:"user_id"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// TaskCompletionDTO represents the result of a completion toggle, including
// the XP granted by this call and the owner's XP afterwards.
type TaskCompletionDTO struct {
	TaskDTO
	XPReward int `json:"xpReward"`
	UserXP   int `json:"userXP"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	return TaskDTO{
		ID:        task.ID,
		Title:     task.Title,
		Priority:  task.Priority,
		Completed: task.Completed,
		UserID:    task.UserID,
		CreatedAt: task.CreatedAt,
		UpdatedAt: task.UpdatedAt,
	}
}

// ToTaskListDTO converts a slice of tasks
func ToTaskListDTO(tasks []models.Task) []TaskDTO {
	items := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskDTO(task)
	}
	return items
}

// ToTaskCompletionDTO builds the completion payload
func ToTaskCompletionDTO(task models.Task, xpReward, userXP int) TaskCompletionDTO {
	return TaskCompletionDTO{
		TaskDTO:  ToTaskDTO(task),
		XPReward: xpReward,
		UserXP:   userXP,
	}
}
