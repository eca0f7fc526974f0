package dto

import (
	"time"

	"github.com/yukikurage/procms-api/internal/kanban"
	"github.com/yukikurage/procms-api/internal/models"
	"github.com/yukikurage/procms-api/internal/repository"
	"github.com/yukikurage/procms-api/internal/utils"
)

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID                  string              `json:"id"`
	ProjectID           string              `json:"project_id"`
	Title               string              `json:"title"`
	Description         string              `json:"description"`
	Status              string              `json:"status"`
	Priority            models.TaskPriority `json:"priority"`
	AssigneeID          string              `json:"assignee_id"`
	DueDate             string              `json:"due_date"`
	CreatedAt           string              `json:"created_at"`
	Tags                []string            `json:"tags"`
	CommentCount        int64               `json:"comment_count"`
	PendingCommentCount int64               `json:"pending_comment_count"`
}

// TaskListResponse represents a paginated list of tasks
type TaskListResponse struct {
	Tasks      []TaskDTO                `json:"tasks"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// DragDTO represents a drag gesture in progress
type DragDTO struct {
	ID        string    `json:"drag_id"`
	ProjectID string    `json:"project_id"`
	TaskID    string    `json:"task_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Conversion functions

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task, counts repository.CommentCounts) TaskDTO {
	tags := task.Tags
	if tags == nil {
		tags = []string{}
	}
	return TaskDTO{
		ID:                  task.ID,
		ProjectID:           task.ProjectID,
		Title:               task.Title,
		Description:         task.Description,
		Status:              task.Status,
		Priority:            task.Priority,
		AssigneeID:          task.AssigneeID,
		DueDate:             task.DueDate,
		CreatedAt:           task.CreatedOn,
		Tags:                tags,
		CommentCount:        counts.Total,
		PendingCommentCount: counts.Pending,
	}
}

// ToTaskDTOs converts tasks, looking up each task's comment counts
func ToTaskDTOs(tasks []models.Task, counts map[string]repository.CommentCounts) []TaskDTO {
	out := make([]TaskDTO, len(tasks))
	for i, t := range tasks {
		out[i] = ToTaskDTO(t, counts[t.ID])
	}
	return out
}

// ToDragDTO converts a drag gesture to DragDTO
func ToDragDTO(d *kanban.Drag) DragDTO {
	return DragDTO{
		ID:        d.ID,
		ProjectID: d.ProjectID,
		TaskID:    d.TaskID,
		ExpiresAt: d.ExpiresAt,
	}
}
