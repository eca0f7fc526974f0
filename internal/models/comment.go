package models

import "time"

type CommentStatus string

const (
	CommentStatusPending  CommentStatus = "pending"
	CommentStatusApproved CommentStatus = "approved"
	CommentStatusRejected CommentStatus = "rejected"
)

// TaskComment is a request or remark left on a task. Moderators move it from
// pending to approved or rejected; both are terminal.
type TaskComment struct {
	ID              string        `gorm:"primaryKey;type:varchar(64)" json:"id"`
	TaskID          string        `gorm:"type:varchar(64);not null;index" json:"task_id"`
	ProjectID       string        `gorm:"type:varchar(64);not null;index" json:"project_id"`
	AuthorID        string        `gorm:"type:varchar(64);not null" json:"author_id"`
	AuthorType      Role          `gorm:"type:varchar(20);not null" json:"author_type"`
	AuthorName      string        `gorm:"type:varchar(255)" json:"author_name"`
	Content         string        `gorm:"type:text" json:"content"`
	Images          []string      `gorm:"serializer:json;type:text" json:"images"`
	Status          CommentStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	RejectionReason string        `gorm:"type:text" json:"rejection_reason,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`

	// Relations
	Replies []TaskCommentReply `gorm:"foreignKey:CommentID" json:"replies"`
}

// IsPending reports whether the comment still awaits moderation.
func (c TaskComment) IsPending() bool {
	return c.Status == CommentStatusPending
}

type TaskCommentReply struct {
	ID         string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	CommentID  string    `gorm:"type:varchar(64);not null;index" json:"comment_id"`
	AuthorID   string    `gorm:"type:varchar(64);not null" json:"author_id"`
	AuthorType Role      `gorm:"type:varchar(20);not null" json:"author_type"`
	AuthorName string    `gorm:"type:varchar(255)" json:"author_name"`
	Content    string    `gorm:"type:text" json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}
