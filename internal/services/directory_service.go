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
	ErrEmployeeNotFound       = errors.New("employee not found")
	ErrClientFieldsRequired   = errors.New("client name, company and email are required")
	ErrEmployeeFieldsRequired = errors.New("employee name, email and role are required")
)

// DirectoryService manages the clients and employees of the agency.
type DirectoryService struct {
	repos *repository.Repositories
	now   func() time.Time
}

// NewDirectoryService creates a new DirectoryService.
func NewDirectoryService(repos *repository.Repositories) *DirectoryService {
	return &DirectoryService{repos: repos, now: time.Now}
}

// CreateClientInput represents parameters to add a client.
type CreateClientInput struct {
	Name     string
	Company  string
	Email    string
	Phone    string
	Industry string
	Address  string
}

// CreateEmployeeInput represents parameters to add an employee.
type CreateEmployeeInput struct {
	Name       string
	Email      string
	Role       string
	Department string
}

// DirectoryInput represents filters for listing clients or employees.
type DirectoryInput struct {
	Query      string
	Status     string
	Department string
	Page       int
	PageSize   int
}

func (in DirectoryInput) filter() repository.DirectoryFilter {
	return repository.DirectoryFilter{
		Query:      in.Query,
		Status:     in.Status,
		Department: in.Department,
		Page:       in.Page,
		PageSize:   in.PageSize,
	}
}

// ListClients returns clients. Only admins can list them.
func (s *DirectoryService) ListClients(viewer models.Viewer, input DirectoryInput) ([]models.Client, int64, error) {
	if viewer.Role != models.RoleAdmin {
		return nil, 0, ErrAdminOnly
	}

	clients, total, err := s.repos.Clients.List(input.filter())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list clients: %w", err)
	}
	return clients, total, nil
}

// GetClient returns a client to admins or to the client themselves.
func (s *DirectoryService) GetClient(viewer models.Viewer, clientID string) (*models.Client, error) {
	if viewer.Role != models.RoleAdmin && !(viewer.Role == models.RoleClient && viewer.ID == clientID) {
		return nil, ErrClientNotFound
	}

	client, err := s.repos.Clients.FindByID(clientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to find client: %w", err)
	}
	return client, nil
}

// ListEmployees returns employees. Only admins can list them.
func (s *DirectoryService) ListEmployees(viewer models.Viewer, input DirectoryInput) ([]models.Employee, int64, error) {
	if viewer.Role != models.RoleAdmin {
		return nil, 0, ErrAdminOnly
	}

	employees, total, err := s.repos.Employees.List(input.filter())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list employees: %w", err)
	}
	return employees, total, nil
}

// CreateClient adds an active client, dated today. Only admins can add clients.
func (s *DirectoryService) CreateClient(viewer models.Viewer, input CreateClientInput) (*models.Client, error) {
	if viewer.Role != models.RoleAdmin {
		return nil, ErrAdminOnly
	}

	client := &models.Client{
		ID:        utils.NewID("client"),
		Name:      strings.TrimSpace(input.Name),
		Company:   strings.TrimSpace(input.Company),
		Email:     strings.TrimSpace(input.Email),
		Phone:     strings.TrimSpace(input.Phone),
		Industry:  strings.TrimSpace(input.Industry),
		Address:   strings.TrimSpace(input.Address),
		Status:    models.ClientStatusActive,
		CreatedOn: s.now().Format(models.DateLayout),
	}
	if client.Name == "" || client.Company == "" || client.Email == "" {
		return nil, ErrClientFieldsRequired
	}

	if err := s.repos.Clients.Create(client); err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	logging.Logger.WithFields(logrus.Fields{
		"client_id": client.ID,
		"viewer":    viewer.ID,
	}).Info("client added")

	return client, nil
}

// CreateEmployee adds an available employee. Only admins can add employees.
func (s *DirectoryService) CreateEmployee(viewer models.Viewer, input CreateEmployeeInput) (*models.Employee, error) {
	if viewer.Role != models.RoleAdmin {
		return nil, ErrAdminOnly
	}

	employee := &models.Employee{
		ID:         utils.NewID("emp"),
		Name:       strings.TrimSpace(input.Name),
		Email:      strings.TrimSpace(input.Email),
		Role:       strings.TrimSpace(input.Role),
		Department: strings.TrimSpace(input.Department),
		Status:     models.EmployeeStatusAvailable,
	}
	if employee.Name == "" || employee.Email == "" || employee.Role == "" {
		return nil, ErrEmployeeFieldsRequired
	}

	if err := s.repos.Employees.Create(employee); err != nil {
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}

	logging.Logger.WithFields(logrus.Fields{
		"employee_id": employee.ID,
		"viewer":      viewer.ID,
	}).Info("employee added")

	return employee, nil
}
