package models

import (
	"time"
)

type ProjectStatus string

const (
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusCompleted ProjectStatus = "completed"
	ProjectStatusOnHold    ProjectStatus = "on-hold"
	ProjectStatusCancelled ProjectStatus = "cancelled"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectStatusActive, ProjectStatusCompleted, ProjectStatusOnHold, ProjectStatusCancelled:
		return true
	}
	return false
}

type Project struct {
	ID          string        `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Name        string        `gorm:"type:varchar(255);not null" json:"name"`
	Description string        `gorm:"type:text" json:"description"`
	ClientIDs   []string      `gorm:"serializer:json;type:text" json:"client_ids"`
	Status      ProjectStatus `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	Progress    int           `json:"progress"`
	StartDate   string        `gorm:"type:varchar(10)" json:"start_date"`
	DueDate     string        `gorm:"type:varchar(10)" json:"due_date"`
	Budget      float64       `json:"budget"`
	CreatedAt   time.Time     `json:"-"`
	UpdatedAt   time.Time     `json:"-"`

	// Relations
	Columns []KanbanColumn `gorm:"foreignKey:ProjectID" json:"columns,omitempty"`
	Tasks   []Task         `gorm:"foreignKey:ProjectID" json:"tasks,omitempty"`
}

// HasClient reports whether clientID is one of the project's clients.
func (p Project) HasClient(clientID string) bool {
	for _, id := range p.ClientIDs {
		if id == clientID {
			return true
		}
	}
	return false
}

// KanbanColumn is one bucket of a project's board. Column ids are only unique
// within a project.
type KanbanColumn struct {
	ID        string `gorm:"primaryKey;type:varchar(64)" json:"id"`
	ProjectID string `gorm:"primaryKey;type:varchar(64)" json:"project_id"`
	Title     string `gorm:"type:varchar(255);not null" json:"title"`
	Color     string `gorm:"type:varchar(16)" json:"color"`
	Order     int    `gorm:"column:position;not null;default:0" json:"order"`
}

// DefaultColumns returns the board every new project starts with.
func DefaultColumns(projectID string) []KanbanColumn {
	return []KanbanColumn{
		{ID: "backlog", ProjectID: projectID, Title: "Backlog", Color: "#6B7280", Order: 0},
		{ID: "todo", ProjectID: projectID, Title: "To Do", Color: "#3B82F6", Order: 1},
		{ID: "in-progress", ProjectID: projectID, Title: "In Progress", Color: "#F59E0B", Order: 2},
		{ID: "review", ProjectID: projectID, Title: "Review", Color: "#8B5CF6", Order: 3},
		{ID: "done", ProjectID: projectID, Title: "Done", Color: "#10B981", Order: 4},
	}
}
