// Package kanban holds the column and task rules of a project board. A Board
// is a plain in-memory value; callers load it, apply one operation and persist
// what changed.
package kanban

import (
	"errors"
	"sort"
	"strings"

	"github.com/yukikurage/procms-api/internal/models"
)

var (
	ErrColumnNotFound = errors.New("column not found")
	ErrColumnExists   = errors.New("column already exists")
	ErrLastColumn     = errors.New("cannot delete the last remaining column")
	ErrTaskNotFound   = errors.New("task not found")
	ErrTitleRequired  = errors.New("title is required")
)

const (
	// FallbackStatus is used when a board has no column left to reassign to.
	FallbackStatus = "backlog"
	// IntakeColumnID is where approved client requests land when present.
	IntakeColumnID = "todo"
)

type Board struct {
	ProjectID string
	Columns   []models.KanbanColumn
	Tasks     []models.Task
}

// NewBoard copies columns and tasks into a board, ordering columns for display.
func NewBoard(projectID string, columns []models.KanbanColumn, tasks []models.Task) *Board {
	b := &Board{
		ProjectID: projectID,
		Columns:   append([]models.KanbanColumn(nil), columns...),
		Tasks:     append([]models.Task(nil), tasks...),
	}
	sort.SliceStable(b.Columns, func(i, j int) bool {
		return b.Columns[i].Order < b.Columns[j].Order
	})
	return b
}

func (b *Board) Column(id string) (models.KanbanColumn, bool) {
	for _, c := range b.Columns {
		if c.ID == id {
			return c, true
		}
	}
	return models.KanbanColumn{}, false
}

func (b *Board) HasColumn(id string) bool {
	_, ok := b.Column(id)
	return ok
}

// FirstColumnID returns the head of the ordered column list, or
// FallbackStatus for an empty board.
func (b *Board) FirstColumnID() string {
	if len(b.Columns) == 0 {
		return FallbackStatus
	}
	return b.Columns[0].ID
}

// IntakeStatus is the status given to tasks generated from approved comments.
func (b *Board) IntakeStatus() string {
	if b.HasColumn(IntakeColumnID) || len(b.Columns) == 0 {
		return IntakeColumnID
	}
	return b.Columns[0].ID
}

func (b *Board) Task(id string) (models.Task, bool) {
	i := b.taskIndex(id)
	if i < 0 {
		return models.Task{}, false
	}
	return b.Tasks[i], true
}

// TasksIn returns the tasks whose status is columnID, in board order.
func (b *Board) TasksIn(columnID string) []models.Task {
	var out []models.Task
	for _, t := range b.Tasks {
		if t.Status == columnID {
			out = append(out, t)
		}
	}
	return out
}

// AddColumn appends a column at the end of the board.
func (b *Board) AddColumn(id, title, color string) (models.KanbanColumn, error) {
	if strings.TrimSpace(title) == "" {
		return models.KanbanColumn{}, ErrTitleRequired
	}
	if b.HasColumn(id) {
		return models.KanbanColumn{}, ErrColumnExists
	}

	col := models.KanbanColumn{
		ID:        id,
		ProjectID: b.ProjectID,
		Title:     strings.TrimSpace(title),
		Color:     color,
		Order:     len(b.Columns),
	}
	b.Columns = append(b.Columns, col)
	return col, nil
}

// Reassignment describes the side effects of deleting a column.
type Reassignment struct {
	// Status is the column id the orphaned tasks now point at.
	Status  string
	TaskIDs []string
}

// DeleteColumn removes a column and moves its tasks to the new first column.
// Remaining columns are renumbered so their order stays dense.
func (b *Board) DeleteColumn(columnID string) (Reassignment, error) {
	idx := -1
	for i, c := range b.Columns {
		if c.ID == columnID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Reassignment{}, ErrColumnNotFound
	}
	if len(b.Columns) <= 1 {
		return Reassignment{}, ErrLastColumn
	}

	b.Columns = append(b.Columns[:idx], b.Columns[idx+1:]...)
	for i := range b.Columns {
		b.Columns[i].Order = i
	}

	r := Reassignment{Status: b.FirstColumnID()}
	for i := range b.Tasks {
		if b.Tasks[i].Status == columnID {
			b.Tasks[i].Status = r.Status
			r.TaskIDs = append(r.TaskIDs, b.Tasks[i].ID)
		}
	}
	return r, nil
}

// AddTask places task in activeColumnID and appends it to the board.
func (b *Board) AddTask(task models.Task, activeColumnID string) (models.Task, error) {
	if strings.TrimSpace(task.Title) == "" {
		return models.Task{}, ErrTitleRequired
	}
	if !b.HasColumn(activeColumnID) {
		return models.Task{}, ErrColumnNotFound
	}

	task.ProjectID = b.ProjectID
	task.Status = activeColumnID
	if task.Priority == "" {
		task.Priority = models.PriorityMedium
	}
	if task.Tags == nil {
		task.Tags = []string{}
	}
	b.Tasks = append(b.Tasks, task)
	return task, nil
}

// AppendTask adds a task whose status was decided elsewhere, such as a task
// generated from an approved comment.
func (b *Board) AppendTask(task models.Task) models.Task {
	task.ProjectID = b.ProjectID
	b.Tasks = append(b.Tasks, task)
	return task
}

func (b *Board) DeleteTask(taskID string) (models.Task, error) {
	i := b.taskIndex(taskID)
	if i < 0 {
		return models.Task{}, ErrTaskNotFound
	}
	removed := b.Tasks[i]
	b.Tasks = append(b.Tasks[:i], b.Tasks[i+1:]...)
	return removed, nil
}

// MoveTask sets the task's status to targetColumnID. The target must be a
// live column; otherwise nothing changes.
func (b *Board) MoveTask(taskID, targetColumnID string) (models.Task, error) {
	i := b.taskIndex(taskID)
	if i < 0 {
		return models.Task{}, ErrTaskNotFound
	}
	if !b.HasColumn(targetColumnID) {
		return models.Task{}, ErrColumnNotFound
	}
	b.Tasks[i].Status = targetColumnID
	return b.Tasks[i], nil
}

func (b *Board) taskIndex(id string) int {
	for i := range b.Tasks {
		if b.Tasks[i].ID == id {
			return i
		}
	}
	return -1
}
