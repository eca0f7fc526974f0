package repository

import (
	"github.com/yukikurage/procms-api/internal/models"
	"gorm.io/gorm"
)

// ClientRepository defines the interface for client data access
type ClientRepository interface {
	// Create creates a new client
	Create(client *models.Client) error

	// FindByID finds a client by ID
	FindByID(id string) (*models.Client, error)

	// List retrieves clients with filtering and pagination
	List(filter DirectoryFilter) ([]models.Client, int64, error)
}

// EmployeeRepository defines the interface for employee data access
type EmployeeRepository interface {
	// Create creates a new employee
	Create(employee *models.Employee) error

	// FindByID finds an employee by ID
	FindByID(id string) (*models.Employee, error)

	// First returns the employee with the lowest ID
	First() (*models.Employee, error)

	// List retrieves employees with filtering and pagination
	List(filter DirectoryFilter) ([]models.Employee, int64, error)
}

// DirectoryFilter holds filtering options for listing clients and employees
type DirectoryFilter struct {
	Query  string
	Status string
	// Department only applies to employees.
	Department string
	Page       int
	PageSize   int
}

// ProjectRepository defines the interface for project and column data access
type ProjectRepository interface {
	// Create creates a project together with its columns
	Create(project *models.Project) error

	// FindByID finds a project by ID with optional preloading
	FindByID(id string, preload ...string) (*models.Project, error)

	// List retrieves projects with filtering and pagination
	List(filter ProjectFilter) ([]models.Project, int64, error)

	// ListColumns lists a project's columns in board order
	ListColumns(projectID string) ([]models.KanbanColumn, error)

	// CreateColumn adds a column to a project
	CreateColumn(column *models.KanbanColumn) error

	// DeleteColumn removes a column from a project
	DeleteColumn(projectID, columnID string) error

	// ReorderColumns persists the order of every given column
	ReorderColumns(columns []models.KanbanColumn) error
}

// ProjectFilter holds filtering options for listing projects
type ProjectFilter struct {
	Query  string
	Status *models.ProjectStatus
	// ClientID limits the result to projects shared with this client.
	ClientID string
	// AssigneeID limits the result to projects with a task assigned to this employee.
	AssigneeID string
	Page       int
	PageSize   int
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID
	FindByID(id string) (*models.Task, error)

	// ListByProject lists the tasks of a project in insertion order
	ListByProject(projectID string) ([]models.Task, error)

	// List retrieves tasks with filtering and pagination
	List(filter TaskFilter) ([]models.Task, int64, error)

	// CountByStatus counts the matching tasks per status
	CountByStatus(filter TaskFilter) (map[string]int64, error)

	// UpdateStatus moves a task to another column
	UpdateStatus(id, status string) error

	// ReassignStatus moves every listed task of a project to status
	ReassignStatus(projectID string, taskIDs []string, status string) error

	// Delete deletes a task and every comment on it
	Delete(id string) error
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	ProjectIDs []string
	Query      string
	Status     string
	Priority   *models.TaskPriority
	AssigneeID string
	Tag        string
	Page       int
	PageSize   int
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	// Create creates a new comment
	Create(comment *models.TaskComment) error

	// FindByID finds a comment by ID with its replies
	FindByID(id string) (*models.TaskComment, error)

	// ListByTask lists the comments of a task, oldest first, with replies
	ListByTask(taskID string) ([]models.TaskComment, error)

	// CreateReply adds a reply to a comment
	CreateReply(reply *models.TaskCommentReply) error

	// Transition moves a comment out of the pending state. It reports false
	// when the comment was no longer pending.
	Transition(comment *models.TaskComment) (bool, error)

	// CountByTask counts comments per task for the given task IDs
	CountByTask(taskIDs []string) (map[string]CommentCounts, error)

	// CountPending counts pending comments, optionally limited to projects
	CountPending(projectIDs []string) (int64, error)
}

// CommentCounts summarizes the comments on one task.
type CommentCounts struct {
	Total   int64 `json:"total"`
	Pending int64 `json:"pending"`
}

// SubscriptionRepository defines the interface for subscription data access
type SubscriptionRepository interface {
	// List lists subscriptions, optionally limited to one client
	List(clientID string) ([]models.Subscription, error)
}

// ReportRepository defines the interface for end-of-day report data access
type ReportRepository interface {
	// Create creates a new report
	Create(report *models.EODReport) error

	// List retrieves reports with filtering and pagination
	List(filter ReportFilter) ([]models.EODReport, int64, error)
}

// ReportFilter holds filtering options for listing reports
type ReportFilter struct {
	EmployeeID string
	ProjectID  string
	Date       string
	Page       int
	PageSize   int
}

// Repositories bundles every repository over one connection or transaction.
type Repositories struct {
	db *gorm.DB

	Clients       ClientRepository
	Employees     EmployeeRepository
	Projects      ProjectRepository
	Tasks         TaskRepository
	Comments      CommentRepository
	Subscriptions SubscriptionRepository
	Reports       ReportRepository
}

// New creates the repositories backed by db
func New(db *gorm.DB) *Repositories {
	return &Repositories{
		db:            db,
		Clients:       NewClientRepository(db),
		Employees:     NewEmployeeRepository(db),
		Projects:      NewProjectRepository(db),
		Tasks:         NewTaskRepository(db),
		Comments:      NewCommentRepository(db),
		Subscriptions: NewSubscriptionRepository(db),
		Reports:       NewReportRepository(db),
	}
}

// Transaction runs fn with repositories bound to a single transaction. Inside
// fn only the given repositories may be used.
func (r *Repositories) Transaction(fn func(tx *Repositories) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(New(tx))
	})
}
