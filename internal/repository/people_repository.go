package repository

import (
	"github.com/yukikurage/procms-api/internal/database"
	"github.com/yukikurage/procms-api/internal/models"
	"github.com/yukikurage/procms-api/internal/utils"
	"gorm.io/gorm"
)

// GormClientRepository is a GORM implementation of ClientRepository
type GormClientRepository struct {
	db *gorm.DB
}

// NewClientRepository creates a new ClientRepository
func NewClientRepository(db *gorm.DB) ClientRepository {
	return &GormClientRepository{db: db}
}

// Create creates a new client
func (r *GormClientRepository) Create(client *models.Client) error {
	return r.db.Create(client).Error
}

// FindByID finds a client by ID
func (r *GormClientRepository) FindByID(id string) (*models.Client, error) {
	var client models.Client
	if err := r.db.Where("id = ?", id).First(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

// List retrieves clients with filtering and pagination
func (r *GormClientRepository) List(filter DirectoryFilter) ([]models.Client, int64, error) {
	var clients []models.Client

	query := r.db.Model(&models.Client{}).
		Scopes(database.Search(filter.Query, "name", "company", "email"))
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := paginate(query.Order("name ASC"), filter.Page, filter.PageSize)
	if err := listQuery.Find(&clients).Error; err != nil {
		return nil, 0, err
	}

	return clients, total, nil
}

// GormEmployeeRepository is a GORM implementation of EmployeeRepository
type GormEmployeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository creates a new EmployeeRepository
func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &GormEmployeeRepository{db: db}
}

// Create creates a new employee
func (r *GormEmployeeRepository) Create(employee *models.Employee) error {
	return r.db.Create(employee).Error
}

// FindByID finds an employee by ID
func (r *GormEmployeeRepository) FindByID(id string) (*models.Employee, error) {
	var employee models.Employee
	if err := r.db.Where("id = ?", id).First(&employee).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

// First returns the employee with the lowest ID
func (r *GormEmployeeRepository) First() (*models.Employee, error) {
	var employee models.Employee
	if err := r.db.Order("id ASC").First(&employee).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

// List retrieves employees with filtering and pagination
func (r *GormEmployeeRepository) List(filter DirectoryFilter) ([]models.Employee, int64, error) {
	var employees []models.Employee

	query := r.db.Model(&models.Employee{}).
		Scopes(database.Search(filter.Query, "name", "email", "role"))
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Department != "" {
		query = query.Where("department = ?", filter.Department)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := paginate(query.Order("name ASC"), filter.Page, filter.PageSize)
	if err := listQuery.Find(&employees).Error; err != nil {
		return nil, 0, err
	}

	return employees, total, nil
}

// paginate applies page and pageSize when both are set. Zero values return
// every row.
func paginate(query *gorm.DB, page, pageSize int) *gorm.DB {
	if page > 0 && pageSize > 0 {
		return query.Scopes(database.Paginate(utils.NewPaginationParams(page, pageSize)))
	}
	return query
}
