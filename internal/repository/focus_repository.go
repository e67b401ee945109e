package repository

import (
	"time"

	"github.com/blossom-focus/blossom-api/internal/models"
	"gorm.io/gorm"
)

// GormFocusTimeRepository is a GORM implementation of FocusTimeRepository
type GormFocusTimeRepository struct {
	db *gorm.DB
}

// NewFocusTimeRepository creates a new FocusTimeRepository
func NewFocusTimeRepository(db *gorm.DB) FocusTimeRepository {
	return &GormFocusTimeRepository{db: db}
}

// Create appends a focus session row
func (r *GormFocusTimeRepository) Create(entry *models.FocusTime) error {
	return r.db.Create(entry).Error
}

// ListByUser retrieves all focus sessions for a user
func (r *GormFocusTimeRepository) ListByUser(userID uint64) ([]models.FocusTime, error) {
	var entries []models.FocusTime
	if err := r.db.Where("user_id = ?", userID).Order("started_at DESC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// TotalMinutesSince sums durations of sessions started at or after since
func (r *GormFocusTimeRepository) TotalMinutesSince(userID uint64, since time.Time) (int64, error) {
	var total int64
	err := r.db.Model(&models.FocusTime{}).
		Where("user_id = ? AND started_at >= ?", userID, since).
		Select("COALESCE(SUM(duration_minutes), 0)").
		Scan(&total).Error
	return total, err
}
