package repository

import (
	"time"

	"github.com/blossom-focus/blossom-api/internal/models"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByIDForUser finds a task scoped to its owner
func (r *GormTaskRepository) FindByIDForUser(id, userID uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// ListByUser retrieves a user's tasks, optionally filtered by completion
func (r *GormTaskRepository) ListByUser(userID uint64, completed *bool) ([]models.Task, error) {
	var tasks []models.Task
	query := r.db.Where("user_id = ?", userID)
	if completed != nil {
		query = query.Where("completed = ?", *completed)
	}
	if err := query.Order("created_at DESC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update updates a task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// UpdateWithOwner saves the task and its owner atomically so an XP credit
// never lands without the completion flag, or vice versa.
func (r *GormTaskRepository) UpdateWithOwner(task *models.Task, owner *models.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(task).Error; err != nil {
			return err
		}
		return tx.Save(owner).Error
	})
}

// Delete removes a task
func (r *GormTaskRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Task{}, id).Error
}

// CompletedSince lists a user's completed tasks created at or after since
func (r *GormTaskRepository) CompletedSince(userID uint64, since time.Time) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.
		Where("user_id = ? AND completed = ? AND created_at >= ?", userID, true, since).
		Order("created_at DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// CountCompletedSince counts a user's completed tasks created at or after since
func (r *GormTaskRepository) CountCompletedSince(userID uint64, since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.Task{}).
		Where("user_id = ? AND completed = ? AND created_at >= ?", userID, true, since).
		Count(&count).Error
	return count, err
}
