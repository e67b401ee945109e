package database

import (
	"fmt"

	"gorm.io/gorm"
)

// AddIndexes adds query-path indexes beyond what AutoMigrate declares.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Stats queries filter completed tasks by owner and creation date
		{"tasks", "idx_tasks_user_completed_created", "user_id, completed, created_at"},

		// Focus totals sum per owner within a period
		{"focus_times", "idx_focus_times_user_started", "user_id, started_at"},

		// Pet reads are always owner-scoped
		{"pets", "idx_pets_user_id", "user_id"},

		// OTP verification and forgot-password look users up by email
		{"users", "idx_users_verification_token", "verification_token"},
	}

	for _, idx := range indexes {
		var count int64
		err := db.Raw(`
			SELECT COUNT(*)
			FROM information_schema.statistics
			WHERE table_name = ? AND index_name = ?
		`, idx.table, idx.name).Count(&count).Error

		if err != nil {
			return fmt.Errorf("failed to check index %s: %w", idx.name, err)
		}

		if count > 0 {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}
