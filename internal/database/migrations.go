package database

import (
	"fmt"

	"github.com/yukikurage/task-manager-api/internal/models"
	"gorm.io/gorm"
)

// AddIndexes adds indexes that are not declared on the models. Indexes that
// already exist are skipped.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		model   any
		name    string
		columns string
	}{
		// Owner listings filtered by completion state
		{&models.Task{}, "idx_tasks_user_id_is_completed", "user_id, is_completed"},
	}

	migrator := db.Migrator()
	for _, idx := range indexes {
		if migrator.HasIndex(idx.model, idx.name) {
			continue
		}

		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(idx.model); err != nil {
			return fmt.Errorf("failed to parse model for index %s: %w", idx.name, err)
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, stmt.Schema.Table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}
