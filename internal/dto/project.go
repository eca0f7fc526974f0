package dto

import (
	"github.com/yukikurage/procms-api/internal/models"
	"github.com/yukikurage/procms-api/internal/services"
	"github.com/yukikurage/procms-api/internal/utils"
)

// ProjectDTO represents a project in API responses
type ProjectDTO struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	ClientIDs   []string             `json:"client_ids"`
	Status      models.ProjectStatus `json:"status"`
	Progress    int                  `json:"progress"`
	StartDate   string               `json:"start_date"`
	DueDate     string               `json:"due_date"`
	Budget      float64              `json:"budget"`
}

// ProjectListResponse represents a paginated list of projects
type ProjectListResponse struct {
	Projects   []ProjectDTO             `json:"projects"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// ColumnDTO represents a Kanban column
type ColumnDTO struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Color string `json:"color"`
	Order int    `json:"order"`
}

// BoardDTO is a project with its board
type BoardDTO struct {
	ProjectDTO
	Columns []ColumnDTO `json:"columns"`
	Tasks   []TaskDTO   `json:"tasks"`
}

// ColumnDeletionDTO reports the columns left after a deletion and the tasks
// that moved
type ColumnDeletionDTO struct {
	Columns           []ColumnDTO `json:"columns"`
	ReassignedTo      string      `json:"reassigned_to"`
	ReassignedTaskIDs []string    `json:"reassigned_task_ids"`
}

// ToProjectDTO converts a Project model to ProjectDTO
func ToProjectDTO(p models.Project) ProjectDTO {
	clientIDs := p.ClientIDs
	if clientIDs == nil {
		clientIDs = []string{}
	}
	return ProjectDTO{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		ClientIDs:   clientIDs,
		Status:      p.Status,
		Progress:    p.Progress,
		StartDate:   p.StartDate,
		DueDate:     p.DueDate,
		Budget:      p.Budget,
	}
}

func ToProjectDTOs(projects []models.Project) []ProjectDTO {
	out := make([]ProjectDTO, len(projects))
	for i, p := range projects {
		out[i] = ToProjectDTO(p)
	}
	return out
}

// ToColumnDTO converts a KanbanColumn model to ColumnDTO
func ToColumnDTO(c models.KanbanColumn) ColumnDTO {
	return ColumnDTO{
		ID:    c.ID,
		Title: c.Title,
		Color: c.Color,
		Order: c.Order,
	}
}

func ToColumnDTOs(columns []models.KanbanColumn) []ColumnDTO {
	out := make([]ColumnDTO, len(columns))
	for i, c := range columns {
		out[i] = ToColumnDTO(c)
	}
	return out
}

// ToBoardDTO converts a board view to BoardDTO
func ToBoardDTO(view *services.BoardView) BoardDTO {
	return BoardDTO{
		ProjectDTO: ToProjectDTO(*view.Project),
		Columns:    ToColumnDTOs(view.Columns),
		Tasks:      ToTaskDTOs(view.Tasks, view.CommentCounts),
	}
}

// ToColumnDeletionDTO converts the outcome of a column deletion
func ToColumnDeletionDTO(d *services.ColumnDeletion) ColumnDeletionDTO {
	taskIDs := d.Reassignment.TaskIDs
	if taskIDs == nil {
		taskIDs = []string{}
	}
	return ColumnDeletionDTO{
		Columns:           ToColumnDTOs(d.Columns),
		ReassignedTo:      d.Reassignment.Status,
		ReassignedTaskIDs: taskIDs,
	}
}
