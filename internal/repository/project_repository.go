package repository

import (
	"github.com/yukikurage/procms-api/internal/database"
	"github.com/yukikurage/procms-api/internal/models"
	"gorm.io/gorm"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// Create creates a project together with its columns
func (r *GormProjectRepository) Create(project *models.Project) error {
	return r.db.Create(project).Error
}

// FindByID finds a project by ID with optional preloading
func (r *GormProjectRepository) FindByID(id string, preload ...string) (*models.Project, error) {
	var project models.Project
	query := r.db

	// Apply preloading if specified
	for _, p := range preload {
		switch p {
		case "Columns":
			query = query.Preload("Columns", func(db *gorm.DB) *gorm.DB {
				return db.Order("position ASC")
			})
		case "Tasks":
			query = query.Preload("Tasks", func(db *gorm.DB) *gorm.DB {
				return db.Order("seq ASC, id ASC")
			})
		default:
			query = query.Preload(p)
		}
	}

	if err := query.Where("id = ?", id).First(&project).Error; err != nil {
		return nil, err
	}

	return &project, nil
}

// List retrieves projects with filtering and pagination
func (r *GormProjectRepository) List(filter ProjectFilter) ([]models.Project, int64, error) {
	var projects []models.Project

	query := r.db.Model(&models.Project{}).
		Scopes(database.Search(filter.Query, "projects.name", "projects.description"))

	if filter.Status != nil {
		query = query.Where("projects.status = ?", *filter.Status)
	}
	if filter.ClientID != "" {
		// client_ids is stored as a JSON array of strings.
		query = query.Where("projects.client_ids LIKE ? ESCAPE '!'", `%"`+database.EscapeLike(filter.ClientID)+`"%`)
	}
	if filter.AssigneeID != "" {
		assigned := r.db.Model(&models.Task{}).
			Select("tasks.project_id").
			Where("tasks.assignee_id = ?", filter.AssigneeID)
		query = query.Where("projects.id IN (?)", assigned)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := paginate(query.Order("projects.id ASC"), filter.Page, filter.PageSize)
	if err := listQuery.Find(&projects).Error; err != nil {
		return nil, 0, err
	}

	return projects, total, nil
}

// ListColumns lists a project's columns in board order
func (r *GormProjectRepository) ListColumns(projectID string) ([]models.KanbanColumn, error) {
	var columns []models.KanbanColumn
	if err := r.db.Where("project_id = ?", projectID).
		Order("position ASC").
		Find(&columns).Error; err != nil {
		return nil, err
	}
	return columns, nil
}

// CreateColumn adds a column to a project
func (r *GormProjectRepository) CreateColumn(column *models.KanbanColumn) error {
	return r.db.Create(column).Error
}

// DeleteColumn removes a column from a project
func (r *GormProjectRepository) DeleteColumn(projectID, columnID string) error {
	return r.db.Where("project_id = ? AND id = ?", projectID, columnID).
		Delete(&models.KanbanColumn{}).Error
}

// ReorderColumns persists the order of every given column
func (r *GormProjectRepository) ReorderColumns(columns []models.KanbanColumn) error {
	for _, c := range columns {
		if err := r.db.Model(&models.KanbanColumn{}).
			Where("project_id = ? AND id = ?", c.ProjectID, c.ID).
			Update("position", c.Order).Error; err != nil {
			return err
		}
	}
	return nil
}
