package repository

import (
	"github.com/yukikurage/procms-api/internal/database"
	"github.com/yukikurage/procms-api/internal/models"
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

// Create appends a new task to its project
func (r *GormTaskRepository) Create(task *models.Task) error {
	if task.Seq == 0 {
		var last int64
		if err := r.db.Model(&models.Task{}).
			Where("project_id = ?", task.ProjectID).
			Select("COALESCE(MAX(seq), 0)").
			Scan(&last).Error; err != nil {
			return err
		}
		task.Seq = last + 1
	}
	return r.db.Create(task).Error
}

// FindByID finds a task by ID
func (r *GormTaskRepository) FindByID(id string) (*models.Task, error) {
	var task models.Task
	if err := r.db.Where("id = ?", id).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// ListByProject lists the tasks of a project in insertion order
func (r *GormTaskRepository) ListByProject(projectID string) ([]models.Task, error) {
	var tasks []models.Task
	if err := r.db.Where("project_id = ?", projectID).
		Order("seq ASC, id ASC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// List retrieves tasks with filtering and pagination. A nil ProjectIDs lists
// every project; an empty one matches nothing.
func (r *GormTaskRepository) List(filter TaskFilter) ([]models.Task, int64, error) {
	var tasks []models.Task

	if filter.ProjectIDs != nil && len(filter.ProjectIDs) == 0 {
		return []models.Task{}, 0, nil
	}

	query := r.filtered(filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("CASE WHEN tasks.due_date IS NULL OR tasks.due_date = '' THEN 1 ELSE 0 END, tasks.due_date ASC, tasks.id ASC")
	listQuery = paginate(listQuery, filter.Page, filter.PageSize)

	if err := listQuery.Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// CountByStatus counts the matching tasks per status. Pagination fields of
// filter are ignored.
func (r *GormTaskRepository) CountByStatus(filter TaskFilter) (map[string]int64, error) {
	counts := make(map[string]int64)
	if filter.ProjectIDs != nil && len(filter.ProjectIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		Status string
		Count  int64
	}
	if err := r.filtered(filter).
		Select("tasks.status AS status, COUNT(*) AS count").
		Group("tasks.status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *GormTaskRepository) filtered(filter TaskFilter) *gorm.DB {
	query := r.db.Model(&models.Task{}).
		Scopes(database.Search(filter.Query, "tasks.title", "tasks.description"))

	if filter.ProjectIDs != nil {
		query = query.Where("tasks.project_id IN ?", filter.ProjectIDs)
	}
	if filter.Status != "" {
		query = query.Where("tasks.status = ?", filter.Status)
	}
	if filter.Priority != nil {
		query = query.Where("tasks.priority = ?", *filter.Priority)
	}
	if filter.AssigneeID != "" {
		query = query.Where("tasks.assignee_id = ?", filter.AssigneeID)
	}
	if filter.Tag != "" {
		// tags is stored as a JSON array of strings.
		query = query.Where("tasks.tags LIKE ? ESCAPE '!'", `%"`+database.EscapeLike(filter.Tag)+`"%`)
	}
	return query
}

// UpdateStatus moves a task to another column
func (r *GormTaskRepository) UpdateStatus(id, status string) error {
	return r.db.Model(&models.Task{}).Where("id = ?", id).Update("status", status).Error
}

// ReassignStatus moves every listed task of a project to status
func (r *GormTaskRepository) ReassignStatus(projectID string, taskIDs []string, status string) error {
	if len(taskIDs) == 0 {
		return nil
	}
	return r.db.Model(&models.Task{}).
		Where("project_id = ? AND id IN ?", projectID, taskIDs).
		Update("status", status).Error
}

// Delete deletes a task and every comment on it
func (r *GormTaskRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		comments := tx.Model(&models.TaskComment{}).Select("id").Where("task_id = ?", id)
		if err := tx.Where("comment_id IN (?)", comments).Delete(&models.TaskCommentReply{}).Error; err != nil {
			return err
		}

		if err := tx.Where("task_id = ?", id).Delete(&models.TaskComment{}).Error; err != nil {
			return err
		}

		return tx.Where("id = ?", id).Delete(&models.Task{}).Error
	})
}
