package database

import (
	"fmt"

	"github.com/yukikurage/procms-api/internal/logging"
	"github.com/yukikurage/procms-api/internal/models"
	"gorm.io/gorm"
)

// compositeIndex is an index GORM tags cannot express on one field.
type compositeIndex struct {
	model   interface{}
	name    string
	columns string
}

var compositeIndexes = []compositeIndex{
	// Board loads and column reassignment filter on both.
	{&models.Task{}, "idx_tasks_project_status", "project_id, status"},
	// Pending counts per task.
	{&models.TaskComment{}, "idx_task_comments_task_status", "task_id, status"},
	{&models.EODReport{}, "idx_eod_reports_employee_date", "employee_id, date"},
}

// AddIndexes creates the composite indexes that do not exist yet.
func AddIndexes(db *gorm.DB) error {
	for _, idx := range compositeIndexes {
		if db.Migrator().HasIndex(idx.model, idx.name) {
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

		logging.Logger.WithField("index", idx.name).Debug("created index")
	}

	return nil
}
