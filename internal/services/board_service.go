package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yukikurage/procms-api/internal/kanban"
	"github.com/yukikurage/procms-api/internal/logging"
	"github.com/yukikurage/procms-api/internal/models"
	"github.com/yukikurage/procms-api/internal/repository"
	"github.com/yukikurage/procms-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrNotModerator    = errors.New("only employees and admins can change a board")
	ErrInvalidPriority = errors.New("invalid task priority")
	ErrNotDragOwner    = errors.New("drag gesture belongs to another viewer")
	ErrTextRequired    = errors.New("text is required")
)

// DefaultColumnColor is used when a new column is created without a color.
const DefaultColumnColor = "#6B7280"

// BoardService applies Kanban board operations and persists their effects.
type BoardService struct {
	repos     *repository.Repositories
	drags     *kanban.Registry
	aiService *AIService
	now       func() time.Time
}

// NewBoardService creates a new BoardService
func NewBoardService(repos *repository.Repositories, drags *kanban.Registry, aiService *AIService) *BoardService {
	return &BoardService{
		repos:     repos,
		drags:     drags,
		aiService: aiService,
		now:       time.Now,
	}
}

// ListTasksInput represents filters for listing tasks
type ListTasksInput struct {
	ProjectID  string
	Query      string
	Status     string
	Priority   *models.TaskPriority
	AssigneeID string
	Tag        string
	Page       int
	PageSize   int
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	// ColumnID is the column the task is added to. Empty selects the first column.
	ColumnID    string
	Title       string
	Description string
	Priority    models.TaskPriority
	AssigneeID  string
	DueDate     string
	Tags        []string
}

// ColumnDeletion reports the outcome of a column removal
type ColumnDeletion struct {
	Columns      []models.KanbanColumn
	Reassignment kanban.Reassignment
}

// ListTasks returns tasks of the projects within the viewer's scope
func (s *BoardService) ListTasks(viewer models.Viewer, input ListTasksInput) ([]models.Task, int64, error) {
	var projectIDs []string
	if input.ProjectID != "" {
		if _, err := loadProject(s.repos, viewer, input.ProjectID); err != nil {
			return nil, 0, err
		}
		projectIDs = []string{input.ProjectID}
	} else {
		ids, err := accessibleProjectIDs(s.repos, viewer)
		if err != nil {
			return nil, 0, err
		}
		projectIDs = ids
	}

	tasks, total, err := s.repos.Tasks.List(repository.TaskFilter{
		ProjectIDs: projectIDs,
		Query:      input.Query,
		Status:     input.Status,
		Priority:   input.Priority,
		AssigneeID: input.AssigneeID,
		Tag:        input.Tag,
		Page:       input.Page,
		PageSize:   input.PageSize,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, total, nil
}

// GetTask returns a task whose project the viewer may access
func (s *BoardService) GetTask(viewer models.Viewer, taskID string) (*models.Task, error) {
	return loadTask(s.repos, viewer, taskID)
}

// AddColumn appends a column to the project's board
func (s *BoardService) AddColumn(viewer models.Viewer, projectID, title, color string) (*models.KanbanColumn, error) {
	if viewer.Role != models.RoleAdmin {
		return nil, ErrAdminOnly
	}
	if color == "" {
		color = DefaultColumnColor
	}

	var column models.KanbanColumn
	err := s.repos.Transaction(func(tx *repository.Repositories) error {
		board, err := loadBoard(tx, viewer, projectID, false)
		if err != nil {
			return err
		}

		column, err = board.AddColumn(utils.NewID("col"), title, color)
		if err != nil {
			return err
		}

		if err := tx.Projects.CreateColumn(&column); err != nil {
			return fmt.Errorf("failed to create column: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logging.Logger.WithFields(logrus.Fields{
		"project_id": projectID,
		"column_id":  column.ID,
		"viewer":     viewer.ID,
	}).Info("column added")

	return &column, nil
}

// DeleteColumn removes a column and moves its tasks to the new first column
func (s *BoardService) DeleteColumn(viewer models.Viewer, projectID, columnID string) (*ColumnDeletion, error) {
	if viewer.Role != models.RoleAdmin {
		return nil, ErrAdminOnly
	}

	var result ColumnDeletion
	err := s.repos.Transaction(func(tx *repository.Repositories) error {
		board, err := loadBoard(tx, viewer, projectID, true)
		if err != nil {
			return err
		}

		reassignment, err := board.DeleteColumn(columnID)
		if err != nil {
			return err
		}

		if err := tx.Projects.DeleteColumn(projectID, columnID); err != nil {
			return fmt.Errorf("failed to delete column: %w", err)
		}
		if err := tx.Projects.ReorderColumns(board.Columns); err != nil {
			return fmt.Errorf("failed to reorder columns: %w", err)
		}
		if err := tx.Tasks.ReassignStatus(projectID, reassignment.TaskIDs, reassignment.Status); err != nil {
			return fmt.Errorf("failed to reassign tasks: %w", err)
		}

		result = ColumnDeletion{Columns: board.Columns, Reassignment: reassignment}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logging.Logger.WithFields(logrus.Fields{
		"project_id": projectID,
		"column_id":  columnID,
		"reassigned": len(result.Reassignment.TaskIDs),
		"status":     result.Reassignment.Status,
		"viewer":     viewer.ID,
	}).Info("column deleted")

	return &result, nil
}

// AddTask creates a task in one of the project's columns
func (s *BoardService) AddTask(viewer models.Viewer, projectID string, input CreateTaskInput) (*models.Task, error) {
	if viewer.Role != models.RoleAdmin {
		return nil, ErrAdminOnly
	}
	if input.Priority != "" && !input.Priority.Valid() {
		return nil, ErrInvalidPriority
	}
	if err := validateDate(input.DueDate); err != nil {
		return nil, err
	}

	var task models.Task
	err := s.repos.Transaction(func(tx *repository.Repositories) error {
		board, err := loadBoard(tx, viewer, projectID, false)
		if err != nil {
			return err
		}

		columnID := input.ColumnID
		if columnID == "" {
			columnID = board.FirstColumnID()
		}

		task, err = board.AddTask(models.Task{
			ID:          utils.NewID("task"),
			Title:       strings.TrimSpace(input.Title),
			Description: strings.TrimSpace(input.Description),
			Priority:    input.Priority,
			AssigneeID:  input.AssigneeID,
			DueDate:     input.DueDate,
			CreatedOn:   s.now().Format(models.DateLayout),
			Tags:        uniqueStrings(input.Tags),
		}, columnID)
		if err != nil {
			return err
		}

		if task.AssigneeID != "" {
			if _, err := tx.Employees.FindByID(task.AssigneeID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrEmployeeNotFound
				}
				return fmt.Errorf("failed to verify assignee: %w", err)
			}
		}

		if err := tx.Tasks.Create(&task); err != nil {
			return fmt.Errorf("failed to create task: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logging.Logger.WithFields(logrus.Fields{
		"project_id": projectID,
		"task_id":    task.ID,
		"status":     task.Status,
		"viewer":     viewer.ID,
	}).Info("task added")

	return &task, nil
}

// DeleteTask deletes a task and the comments on it
func (s *BoardService) DeleteTask(viewer models.Viewer, taskID string) error {
	if viewer.Role != models.RoleAdmin {
		return ErrAdminOnly
	}

	var projectID string
	err := s.repos.Transaction(func(tx *repository.Repositories) error {
		task, err := loadTask(tx, viewer, taskID)
		if err != nil {
			return err
		}
		projectID = task.ProjectID

		board, err := loadBoard(tx, viewer, task.ProjectID, true)
		if err != nil {
			return err
		}
		if _, err := board.DeleteTask(taskID); err != nil {
			return err
		}

		if err := tx.Tasks.Delete(taskID); err != nil {
			return fmt.Errorf("failed to delete task: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logging.Logger.WithFields(logrus.Fields{
		"project_id": projectID,
		"task_id":    taskID,
		"viewer":     viewer.ID,
	}).Info("task deleted")

	return nil
}

// MoveTask sets the task's status to a column of its project
func (s *BoardService) MoveTask(viewer models.Viewer, taskID, columnID string) (*models.Task, error) {
	if !viewer.CanModerate() {
		return nil, ErrNotModerator
	}

	var moved models.Task
	err := s.repos.Transaction(func(tx *repository.Repositories) error {
		task, err := loadTask(tx, viewer, taskID)
		if err != nil {
			return err
		}

		board, err := loadBoard(tx, viewer, task.ProjectID, true)
		if err != nil {
			return err
		}

		moved, err = board.MoveTask(taskID, columnID)
		if err != nil {
			return err
		}
		return persistMove(tx, task, moved)
	})
	if err != nil {
		return nil, err
	}

	logging.Logger.WithFields(logrus.Fields{
		"project_id": moved.ProjectID,
		"task_id":    moved.ID,
		"status":     moved.Status,
		"viewer":     viewer.ID,
	}).Info("task moved")

	return &moved, nil
}

// StartDrag begins a drag gesture on a task of the project
func (s *BoardService) StartDrag(viewer models.Viewer, projectID, taskID string) (*kanban.Drag, error) {
	if !viewer.CanModerate() {
		return nil, ErrNotModerator
	}

	board, err := loadBoard(s.repos, viewer, projectID, true)
	if err != nil {
		return nil, err
	}

	drag, err := board.StartDrag(taskID)
	if err != nil {
		return nil, err
	}
	drag.OwnerID = viewer.ID

	return s.drags.Put(drag), nil
}

// Drop ends a drag gesture by moving its task to columnID. The gesture ends
// even when columnID is not a column of the board.
func (s *BoardService) Drop(viewer models.Viewer, dragID, columnID string) (*models.Task, error) {
	drag, err := s.takeDrag(viewer, dragID)
	if err != nil {
		return nil, err
	}

	var moved models.Task
	err = s.repos.Transaction(func(tx *repository.Repositories) error {
		board, err := loadBoard(tx, viewer, drag.ProjectID, true)
		if err != nil {
			drag.Cancel()
			return err
		}

		before, ok := board.Task(drag.TaskID)
		if !ok {
			drag.Cancel()
			return ErrTaskNotFound
		}

		moved, err = drag.Drop(board, columnID)
		if err != nil {
			return err
		}
		return persistMove(tx, &before, moved)
	})
	if err != nil {
		return nil, err
	}

	logging.Logger.WithFields(logrus.Fields{
		"project_id": moved.ProjectID,
		"task_id":    moved.ID,
		"status":     moved.Status,
		"viewer":     viewer.ID,
	}).Info("task dropped")

	return &moved, nil
}

// CancelDrag ends a drag gesture without moving its task
func (s *BoardService) CancelDrag(viewer models.Viewer, dragID string) error {
	drag, err := s.takeDrag(viewer, dragID)
	if errors.Is(err, kanban.ErrDragExpired) {
		return nil
	}
	if err != nil {
		return err
	}
	drag.Cancel()
	return nil
}

// PruneDrags discards expired drag gestures
func (s *BoardService) PruneDrags() int {
	return s.drags.Prune()
}

// SuggestTasks uses AI to propose tasks for a project from free text
func (s *BoardService) SuggestTasks(ctx context.Context, viewer models.Viewer, projectID, text string) ([]SuggestedTask, error) {
	if !viewer.CanModerate() {
		return nil, ErrNotModerator
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrTextRequired
	}
	if s.aiService == nil {
		return nil, ErrAIServiceNotConfigured
	}

	project, err := loadProject(s.repos, viewer, projectID)
	if err != nil {
		return nil, err
	}

	suggestions, err := s.aiService.SuggestTasks(ctx, project, text)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tasks: %w", err)
	}

	return suggestions, nil
}

// takeDrag removes the gesture from the registry when the viewer owns it.
// Gestures of other viewers stay in place.
func (s *BoardService) takeDrag(viewer models.Viewer, dragID string) (*kanban.Drag, error) {
	peeked, ok := s.drags.Peek(dragID)
	if !ok {
		return nil, kanban.ErrDragNotFound
	}
	if peeked.OwnerID != viewer.ID {
		return nil, ErrNotDragOwner
	}
	return s.drags.Take(dragID)
}

// loadBoard builds the board of a project the viewer may access. Tasks are
// only loaded when withTasks is set.
func loadBoard(repos *repository.Repositories, viewer models.Viewer, projectID string, withTasks bool) (*kanban.Board, error) {
	if _, err := loadProject(repos, viewer, projectID); err != nil {
		return nil, err
	}

	columns, err := repos.Projects.ListColumns(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load columns: %w", err)
	}

	var tasks []models.Task
	if withTasks {
		tasks, err = repos.Tasks.ListByProject(projectID)
		if err != nil {
			return nil, fmt.Errorf("failed to load tasks: %w", err)
		}
	}

	return kanban.NewBoard(projectID, columns, tasks), nil
}

// loadTask finds a task whose project the viewer may access. Tasks outside
// the viewer's scope are reported as not found.
func loadTask(repos *repository.Repositories, viewer models.Viewer, taskID string) (*models.Task, error) {
	task, err := repos.Tasks.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if _, err := loadProject(repos, viewer, task.ProjectID); err != nil {
		if errors.Is(err, ErrProjectNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return task, nil
}

func persistMove(tx *repository.Repositories, before *models.Task, moved models.Task) error {
	if before.Status == moved.Status {
		return nil
	}
	if err := tx.Tasks.UpdateStatus(moved.ID, moved.Status); err != nil {
		return fmt.Errorf("failed to move task: %w", err)
	}
	return nil
}
