package dto

import (
	"time"

	"github.com/yukikurage/procms-api/internal/models"
	"github.com/yukikurage/procms-api/internal/repository"
	"github.com/yukikurage/procms-api/internal/services"
)

// AuthorDTO identifies who wrote a comment or reply
type AuthorDTO struct {
	ID   string      `json:"id"`
	Type models.Role `json:"type"`
	Name string      `json:"name"`
}

// ReplyDTO represents a reply in API responses
type ReplyDTO struct {
	ID        string    `json:"id"`
	CommentID string    `json:"comment_id"`
	Author    AuthorDTO `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentDTO represents a comment with its replies
type CommentDTO struct {
	ID              string               `json:"id"`
	TaskID          string               `json:"task_id"`
	ProjectID       string               `json:"project_id"`
	Author          AuthorDTO            `json:"author"`
	Content         string               `json:"content"`
	Images          []string             `json:"images"`
	Status          models.CommentStatus `json:"status"`
	RejectionReason string               `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
	Replies         []ReplyDTO           `json:"replies"`
}

// ApprovalDTO is the approved comment and the task generated from it
type ApprovalDTO struct {
	Comment CommentDTO `json:"comment"`
	Task    TaskDTO    `json:"task"`
}

func ToReplyDTO(r models.TaskCommentReply) ReplyDTO {
	return ReplyDTO{
		ID:        r.ID,
		CommentID: r.CommentID,
		Author:    AuthorDTO{ID: r.AuthorID, Type: r.AuthorType, Name: r.AuthorName},
		Content:   r.Content,
		CreatedAt: r.CreatedAt,
	}
}

// ToCommentDTO converts a comment and its loaded replies
func ToCommentDTO(c models.TaskComment) CommentDTO {
	images := c.Images
	if images == nil {
		images = []string{}
	}
	replies := make([]ReplyDTO, len(c.Replies))
	for i, r := range c.Replies {
		replies[i] = ToReplyDTO(r)
	}
	return CommentDTO{
		ID:              c.ID,
		TaskID:          c.TaskID,
		ProjectID:       c.ProjectID,
		Author:          AuthorDTO{ID: c.AuthorID, Type: c.AuthorType, Name: c.AuthorName},
		Content:         c.Content,
		Images:          images,
		Status:          c.Status,
		RejectionReason: c.RejectionReason,
		CreatedAt:       c.CreatedAt,
		Replies:         replies,
	}
}

func ToCommentDTOs(list []models.TaskComment) []CommentDTO {
	out := make([]CommentDTO, len(list))
	for i, c := range list {
		out[i] = ToCommentDTO(c)
	}
	return out
}

// ToApprovalDTO converts an approval. The new task has no comments yet.
func ToApprovalDTO(a *services.Approval) ApprovalDTO {
	return ApprovalDTO{
		Comment: ToCommentDTO(*a.Comment),
		Task:    ToTaskDTO(*a.Task, repository.CommentCounts{}),
	}
}
