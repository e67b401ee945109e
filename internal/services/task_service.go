package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/blossom-focus/blossom-api/internal/constants"
	"github.com/blossom-focus/blossom-api/internal/models"
	"github.com/blossom-focus/blossom-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound  = errors.New("task not found")
	ErrTitleRequired = errors.New("title is required")
)

// TaskService handles task business logic, including the XP reward rule.
type TaskService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, userRepo repository.UserRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		userRepo: userRepo,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title    string
	Priority string
	UserID   uint64
}

// CompletionResult is returned by SetCompletion: the updated task, the XP
// granted by this call (0 unless the task flipped to completed), and the
// owner's XP after the change.
type CompletionResult struct {
	Task     *models.Task
	XPReward int
	UserXP   int
}

// CreateTask creates a task with a normalized priority.
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	task := &models.Task{
		Title:    title,
		Priority: models.NormalizePriority(input.Priority),
		UserID:   input.UserID,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// ListTasks returns the user's tasks. With a nil filter all tasks are
// returned; a non-nil filter narrows to completed or pending only.
func (s *TaskService) ListTasks(userID uint64, completed *bool) ([]models.Task, error) {
	tasks, err := s.taskRepo.ListByUser(userID, completed)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// UpdateTitle renames a task owned by the user.
func (s *TaskService) UpdateTitle(userID, taskID uint64, title string) (*models.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	task, err := s.taskRepo.FindByIDForUser(taskID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	task.Title = title
	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// SetCompletion sets the completed flag and applies the XP reward rule. XP is
// credited only when the flag flips from false to true; re-completing an
// already-completed task grants nothing and unchecking claws nothing back.
func (s *TaskService) SetCompletion(userID, taskID uint64, completed bool) (*CompletionResult, error) {
	task, err := s.taskRepo.FindByIDForUser(taskID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	owner, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find task owner: %w", err)
	}

	reward := 0
	if completed && !task.Completed {
		reward = task.XPReward()
	}
	task.Completed = completed

	xp := currentXP(owner)
	if reward > 0 {
		xp += reward
		owner.XP = &xp
		if err := s.taskRepo.UpdateWithOwner(task, owner); err != nil {
			return nil, fmt.Errorf("failed to update task: %w", err)
		}
	} else {
		if err := s.taskRepo.Update(task); err != nil {
			return nil, fmt.Errorf("failed to update task: %w", err)
		}
	}

	return &CompletionResult{
		Task:     task,
		XPReward: reward,
		UserXP:   xp,
	}, nil
}

// DeleteTask removes a task owned by the user.
func (s *TaskService) DeleteTask(userID, taskID uint64) error {
	task, err := s.taskRepo.FindByIDForUser(taskID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find task: %w", err)
	}

	if err := s.taskRepo.Delete(task.ID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

// currentXP reads a user's XP, substituting the default for rows that predate
// the XP column.
func currentXP(user *models.User) int {
	if user.XP == nil {
		return constants.DefaultXP
	}
	return *user.XP
}
