package repository

import (
	"github.com/yukikurage/procms-api/internal/models"
	"gorm.io/gorm"
)

// GormSubscriptionRepository is a GORM implementation of SubscriptionRepository
type GormSubscriptionRepository struct {
	db *gorm.DB
}

// NewSubscriptionRepository creates a new SubscriptionRepository
func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &GormSubscriptionRepository{db: db}
}

// List lists subscriptions, optionally limited to one client
func (r *GormSubscriptionRepository) List(clientID string) ([]models.Subscription, error) {
	var subs []models.Subscription
	query := r.db.Order("id ASC")
	if clientID != "" {
		query = query.Where("client_id = ?", clientID)
	}
	if err := query.Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

// GormReportRepository is a GORM implementation of ReportRepository
type GormReportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new ReportRepository
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &GormReportRepository{db: db}
}

// Create creates a new report
func (r *GormReportRepository) Create(report *models.EODReport) error {
	return r.db.Create(report).Error
}

// List retrieves reports with filtering and pagination, newest first
func (r *GormReportRepository) List(filter ReportFilter) ([]models.EODReport, int64, error) {
	var reports []models.EODReport

	query := r.db.Model(&models.EODReport{})
	if filter.EmployeeID != "" {
		query = query.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.ProjectID != "" {
		query = query.Where("project_id = ?", filter.ProjectID)
	}
	if filter.Date != "" {
		query = query.Where("date = ?", filter.Date)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := paginate(query.Order("date DESC, created_at DESC"), filter.Page, filter.PageSize)
	if err := listQuery.Find(&reports).Error; err != nil {
		return nil, 0, err
	}

	return reports, total, nil
}
