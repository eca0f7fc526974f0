package repository

import (
	"github.com/yukikurage/procms-api/internal/models"
	"gorm.io/gorm"
)

// GormCommentRepository is a GORM implementation of CommentRepository
type GormCommentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &GormCommentRepository{db: db}
}

// Create creates a new comment
func (r *GormCommentRepository) Create(comment *models.TaskComment) error {
	return r.db.Create(comment).Error
}

// FindByID finds a comment by ID with its replies
func (r *GormCommentRepository) FindByID(id string) (*models.TaskComment, error) {
	var comment models.TaskComment
	if err := r.db.Preload("Replies", orderReplies).
		Where("id = ?", id).
		First(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListByTask lists the comments of a task, oldest first, with replies
func (r *GormCommentRepository) ListByTask(taskID string) ([]models.TaskComment, error) {
	var comments []models.TaskComment
	if err := r.db.Preload("Replies", orderReplies).
		Where("task_id = ?", taskID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// CreateReply adds a reply to a comment
func (r *GormCommentRepository) CreateReply(reply *models.TaskCommentReply) error {
	return r.db.Create(reply).Error
}

// Transition writes the comment's new status only while the stored row is
// still pending, so two concurrent moderators cannot both succeed.
func (r *GormCommentRepository) Transition(comment *models.TaskComment) (bool, error) {
	result := r.db.Model(&models.TaskComment{}).
		Where("id = ? AND status = ?", comment.ID, models.CommentStatusPending).
		Updates(map[string]interface{}{
			"status":           comment.Status,
			"rejection_reason": comment.RejectionReason,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

type commentCountRow struct {
	TaskID  string
	Total   int64
	Pending int64
}

// CountByTask counts comments per task for the given task IDs
func (r *GormCommentRepository) CountByTask(taskIDs []string) (map[string]CommentCounts, error) {
	counts := make(map[string]CommentCounts, len(taskIDs))
	if len(taskIDs) == 0 {
		return counts, nil
	}

	var rows []commentCountRow
	if err := r.db.Model(&models.TaskComment{}).
		Select("task_id, COUNT(*) AS total, SUM(CASE WHEN status = ? THEN 1 ELSE 0 END) AS pending", models.CommentStatusPending).
		Where("task_id IN ?", taskIDs).
		Group("task_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.TaskID] = CommentCounts{Total: row.Total, Pending: row.Pending}
	}
	return counts, nil
}

// CountPending counts pending comments. A nil projectIDs counts every
// project.
func (r *GormCommentRepository) CountPending(projectIDs []string) (int64, error) {
	var count int64
	if projectIDs != nil && len(projectIDs) == 0 {
		return 0, nil
	}

	query := r.db.Model(&models.TaskComment{}).
		Where("status = ?", models.CommentStatusPending)
	if projectIDs != nil {
		query = query.Where("project_id IN ?", projectIDs)
	}
	err := query.Count(&count).Error
	return count, err
}

func orderReplies(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC, id ASC")
}
