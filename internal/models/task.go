package models

import (
	"time"
)

// DateLayout is the wire and storage format of date-only fields.
const DateLayout = "2006-01-02"

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
	PriorityUrgent TaskPriority = "urgent"
)

// Valid reports whether p is one of the known priorities.
func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Task is a card on a project's Kanban board. Status holds the id of the
// column the task sits in. Seq is the insertion position within the project.
type Task struct {
	ID          string       `gorm:"primaryKey;type:varchar(64)" json:"id"`
	ProjectID   string       `gorm:"type:varchar(64);not null;index" json:"project_id"`
	Title       string       `gorm:"not null" json:"title"`
	Description string       `gorm:"type:text" json:"description"`
	Status      string       `gorm:"type:varchar(64);not null;index" json:"status"`
	Priority    TaskPriority `gorm:"type:varchar(10);not null;default:'medium'" json:"priority"`
	AssigneeID  string       `gorm:"type:varchar(64);index" json:"assignee_id"`
	DueDate     string       `gorm:"type:varchar(10)" json:"due_date"`
	CreatedOn   string       `gorm:"type:varchar(10)" json:"created_at"`
	Tags        []string     `gorm:"serializer:json;type:text" json:"tags"`
	Seq         int64        `gorm:"not null;default:0;index" json:"-"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// HasTag reports whether the task carries tag.
func (t Task) HasTag(tag string) bool {
	for _, v := range t.Tags {
		if v == tag {
			return true
		}
	}
	return false
}
