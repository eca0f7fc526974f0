package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yukikurage/procms-api/internal/logging"
	"github.com/yukikurage/procms-api/internal/models"
	"github.com/yukikurage/procms-api/internal/repository"
	"github.com/yukikurage/procms-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrProjectNotFound      = errors.New("project not found")
	ErrProjectNameRequired  = errors.New("project name cannot be empty")
	ErrInvalidProjectStatus = errors.New("invalid project status")
	ErrInvalidProgress      = errors.New("progress must be between 0 and 100")
	ErrInvalidDate          = errors.New("dates must use the YYYY-MM-DD format")
	ErrClientNotFound       = errors.New("client not found")
	ErrAdminOnly            = errors.New("only admins can perform this action")
	ErrForbidden            = errors.New("viewer is not allowed to perform this action")
)

// ProjectService provides business logic for project operations.
type ProjectService struct {
	repos *repository.Repositories
}

// NewProjectService creates a new ProjectService.
func NewProjectService(repos *repository.Repositories) *ProjectService {
	return &ProjectService{repos: repos}
}

// ListProjectsInput represents filters for listing projects.
type ListProjectsInput struct {
	Query    string
	Status   *models.ProjectStatus
	ClientID string
	Page     int
	PageSize int
}

// CreateProjectInput represents parameters to create a new project.
type CreateProjectInput struct {
	Name        string
	Description string
	ClientIDs   []string
	Status      models.ProjectStatus
	Progress    int
	StartDate   string
	DueDate     string
	Budget      float64
}

// BoardView is a project with its ordered columns, its tasks and comment
// counts per task.
type BoardView struct {
	Project       *models.Project
	Columns       []models.KanbanColumn
	Tasks         []models.Task
	CommentCounts map[string]repository.CommentCounts
}

// ListProjects returns the projects within the viewer's scope.
func (s *ProjectService) ListProjects(viewer models.Viewer, input ListProjectsInput) ([]models.Project, int64, error) {
	filter := repository.ProjectFilter{
		Query:    input.Query,
		Status:   input.Status,
		ClientID: input.ClientID,
		Page:     input.Page,
		PageSize: input.PageSize,
	}

	switch viewer.Role {
	case models.RoleClient:
		if input.ClientID != "" && input.ClientID != viewer.ID {
			return []models.Project{}, 0, nil
		}
		filter.ClientID = viewer.ID
	case models.RoleEmployee:
		filter.AssigneeID = viewer.ID
	}

	projects, total, err := s.repos.Projects.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, total, nil
}

// GetProject returns a project the viewer may access.
func (s *ProjectService) GetProject(viewer models.Viewer, projectID string) (*models.Project, error) {
	return loadProject(s.repos, viewer, projectID)
}

// GetBoard returns the project's board with comment counts per task.
func (s *ProjectService) GetBoard(viewer models.Viewer, projectID string) (*BoardView, error) {
	project, err := loadProject(s.repos, viewer, projectID, "Columns", "Tasks")
	if err != nil {
		return nil, err
	}

	taskIDs := make([]string, len(project.Tasks))
	for i, t := range project.Tasks {
		taskIDs[i] = t.ID
	}
	counts, err := s.repos.Comments.CountByTask(taskIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to count comments: %w", err)
	}

	view := &BoardView{
		Project:       project,
		Columns:       project.Columns,
		Tasks:         project.Tasks,
		CommentCounts: counts,
	}
	project.Columns = nil
	project.Tasks = nil
	return view, nil
}

// CreateProject creates a project with the default board columns.
func (s *ProjectService) CreateProject(viewer models.Viewer, input CreateProjectInput) (*models.Project, error) {
	if viewer.Role != models.RoleAdmin {
		return nil, ErrAdminOnly
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrProjectNameRequired
	}
	if input.Status == "" {
		input.Status = models.ProjectStatusActive
	}
	if !input.Status.Valid() {
		return nil, ErrInvalidProjectStatus
	}
	if input.Progress < 0 || input.Progress > 100 {
		return nil, ErrInvalidProgress
	}
	if err := validateDate(input.StartDate); err != nil {
		return nil, err
	}
	if err := validateDate(input.DueDate); err != nil {
		return nil, err
	}

	clientIDs := uniqueStrings(input.ClientIDs)
	id := utils.NewID("proj")
	project := &models.Project{
		ID:          id,
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		ClientIDs:   clientIDs,
		Status:      input.Status,
		Progress:    input.Progress,
		StartDate:   input.StartDate,
		DueDate:     input.DueDate,
		Budget:      input.Budget,
		Columns:     models.DefaultColumns(id),
	}

	err := s.repos.Transaction(func(tx *repository.Repositories) error {
		for _, clientID := range clientIDs {
			if _, err := tx.Clients.FindByID(clientID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrClientNotFound
				}
				return fmt.Errorf("failed to verify client: %w", err)
			}
		}
		if err := tx.Projects.Create(project); err != nil {
			return fmt.Errorf("failed to create project: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logging.Logger.WithFields(logrus.Fields{
		"project_id": project.ID,
		"viewer":     viewer.ID,
	}).Info("project created")

	return project, nil
}

// loadProject finds a project within the viewer's scope. Projects outside it
// are reported as not found so their existence is not leaked.
func loadProject(repos *repository.Repositories, viewer models.Viewer, projectID string, preload ...string) (*models.Project, error) {
	project, err := repos.Projects.FindByID(projectID, preload...)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	ok, err := canAccessProject(repos, viewer, project)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrProjectNotFound
	}
	return project, nil
}

func canAccessProject(repos *repository.Repositories, viewer models.Viewer, project *models.Project) (bool, error) {
	switch viewer.Role {
	case models.RoleAdmin:
		return true, nil
	case models.RoleClient:
		return project.HasClient(viewer.ID), nil
	case models.RoleEmployee:
		_, total, err := repos.Tasks.List(repository.TaskFilter{
			ProjectIDs: []string{project.ID},
			AssigneeID: viewer.ID,
			Page:       1,
			PageSize:   1,
		})
		if err != nil {
			return false, fmt.Errorf("failed to check project access: %w", err)
		}
		return total > 0, nil
	}
	return false, nil
}

// accessibleProjectIDs lists the projects in the viewer's scope. It returns
// nil for admins, who are not restricted.
func accessibleProjectIDs(repos *repository.Repositories, viewer models.Viewer) ([]string, error) {
	if viewer.Role == models.RoleAdmin {
		return nil, nil
	}

	filter := repository.ProjectFilter{}
	switch viewer.Role {
	case models.RoleClient:
		filter.ClientID = viewer.ID
	case models.RoleEmployee:
		filter.AssigneeID = viewer.ID
	default:
		return []string{}, nil
	}

	projects, _, err := repos.Projects.List(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve accessible projects: %w", err)
	}

	ids := make([]string, len(projects))
	for i, p := range projects {
		ids[i] = p.ID
	}
	return ids, nil
}

func validateDate(value string) error {
	if value == "" {
		return nil
	}
	if _, err := time.Parse(models.DateLayout, value); err != nil {
		return ErrInvalidDate
	}
	return nil
}

// uniqueStrings removes blank and duplicate values, keeping the first occurrence
func uniqueStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))

	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, exists := seen[v]; exists {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}

	return result
}
