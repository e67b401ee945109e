package repository

import (
	"time"

	"github.com/blossom-focus/blossom-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// FindByIdentity finds a user by username or email
	FindByIdentity(identity string) (*models.User, error)

	// Update persists changes to a user
	Update(user *models.User) error

	// Delete removes a user and all owned rows in one transaction
	Delete(id uint64) error
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByIDForUser finds a task owned by the given user. A task owned by
	// someone else is reported as not found.
	FindByIDForUser(id, userID uint64) (*models.Task, error)

	// ListByUser retrieves a user's tasks, optionally filtered by completion
	ListByUser(userID uint64, completed *bool) ([]models.Task, error)

	// Update updates a task
	Update(task *models.Task) error

	// UpdateWithOwner updates a task and its owner in a single transaction
	UpdateWithOwner(task *models.Task, owner *models.User) error

	// Delete removes a task
	Delete(id uint64) error

	// CompletedSince lists a user's completed tasks created at or after since
	CompletedSince(userID uint64, since time.Time) ([]models.Task, error)

	// CountCompletedSince counts a user's completed tasks created at or after since
	CountCompletedSince(userID uint64, since time.Time) (int64, error)
}

// PetRepository defines the interface for pet data access
type PetRepository interface {
	// Create creates a new pet
	Create(pet *models.Pet) error

	// FindByIDForUser finds a pet owned by the given user. A pet owned by
	// someone else is reported as not found.
	FindByIDForUser(id, userID uint64) (*models.Pet, error)

	// ListByUser retrieves all pets owned by a user
	ListByUser(userID uint64) ([]models.Pet, error)

	// Update updates a pet
	Update(pet *models.Pet) error

	// UpdateWithOwner updates a pet and its owner in a single transaction
	UpdateWithOwner(pet *models.Pet, owner *models.User) error

	// Delete removes a pet
	Delete(id uint64) error
}

// FocusTimeRepository defines the interface for focus session data access
type FocusTimeRepository interface {
	// Create appends a focus session row
	Create(entry *models.FocusTime) error

	// ListByUser retrieves all focus sessions for a user
	ListByUser(userID uint64) ([]models.FocusTime, error)

	// TotalMinutesSince sums durations of sessions started at or after since
	TotalMinutesSince(userID uint64, since time.Time) (int64, error)
}
