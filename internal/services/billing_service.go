package services

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yukikurage/procms-api/internal/logging"
	"github.com/yukikurage/procms-api/internal/models"
	"github.com/yukikurage/procms-api/internal/repository"
	"github.com/yukikurage/procms-api/internal/utils"
)

var ErrEmptyReport = errors.New("report content is required")

// SubscriptionSummary totals a list of subscriptions.
type SubscriptionSummary struct {
	TotalPaid        float64 `json:"total_paid"`
	TotalOutstanding float64 `json:"total_outstanding"`
	ActiveCount      int     `json:"active_count"`
}

// SubscriptionService exposes client subscriptions.
type SubscriptionService struct {
	repos *repository.Repositories
}

// NewSubscriptionService creates a new SubscriptionService.
func NewSubscriptionService(repos *repository.Repositories) *SubscriptionService {
	return &SubscriptionService{repos: repos}
}

// ListSubscriptions returns the subscriptions visible to the viewer and their
// summary. Clients only see their own; clientID filters for admins.
func (s *SubscriptionService) ListSubscriptions(viewer models.Viewer, clientID string) ([]models.Subscription, SubscriptionSummary, error) {
	switch viewer.Role {
	case models.RoleAdmin:
	case models.RoleClient:
		clientID = viewer.ID
	default:
		return nil, SubscriptionSummary{}, ErrForbidden
	}

	subs, err := s.repos.Subscriptions.List(clientID)
	if err != nil {
		return nil, SubscriptionSummary{}, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	return subs, Summarize(subs), nil
}

// Summarize totals what was paid and what is outstanding.
func Summarize(subs []models.Subscription) SubscriptionSummary {
	var sum SubscriptionSummary
	for _, sub := range subs {
		sum.TotalPaid += sub.AmountPaid
		sum.TotalOutstanding += sub.Outstanding()
		if sub.Status == models.SubscriptionActive {
			sum.ActiveCount++
		}
	}
	return sum
}

// PaidPercent is the rounded share of the total value already paid. A zero
// total yields 0.
func PaidPercent(sub models.Subscription) int {
	if sub.TotalValue <= 0 {
		return 0
	}
	return int(math.Round(sub.AmountPaid / sub.TotalValue * 100))
}

// ReportService stores employees' end-of-day reports.
type ReportService struct {
	repos *repository.Repositories
	now   func() time.Time
}

// NewReportService creates a new ReportService.
func NewReportService(repos *repository.Repositories) *ReportService {
	return &ReportService{repos: repos, now: time.Now}
}

// ListReportsInput represents filters for listing reports.
type ListReportsInput struct {
	EmployeeID string
	ProjectID  string
	Date       string
	Page       int
	PageSize   int
}

// ListReports returns reports, newest first. Employees only see their own.
func (s *ReportService) ListReports(viewer models.Viewer, input ListReportsInput) ([]models.EODReport, int64, error) {
	switch viewer.Role {
	case models.RoleAdmin:
	case models.RoleEmployee:
		input.EmployeeID = viewer.ID
	default:
		return nil, 0, ErrForbidden
	}
	if err := validateDate(input.Date); err != nil {
		return nil, 0, err
	}

	reports, total, err := s.repos.Reports.List(repository.ReportFilter{
		EmployeeID: input.EmployeeID,
		ProjectID:  input.ProjectID,
		Date:       input.Date,
		Page:       input.Page,
		PageSize:   input.PageSize,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reports: %w", err)
	}
	return reports, total, nil
}

// CreateReport files today's report for a project the employee works on.
func (s *ReportService) CreateReport(viewer models.Viewer, projectID, content string) (*models.EODReport, error) {
	if viewer.Role != models.RoleEmployee {
		return nil, ErrForbidden
	}
	if isBlankReport(content) {
		return nil, ErrEmptyReport
	}

	if _, err := loadProject(s.repos, viewer, projectID); err != nil {
		return nil, err
	}

	now := s.now()
	report := &models.EODReport{
		ID:         utils.NewID("report"),
		EmployeeID: viewer.ID,
		ProjectID:  projectID,
		Date:       now.Format(models.DateLayout),
		Content:    strings.TrimSpace(content),
		CreatedAt:  now.UTC(),
	}
	if err := s.repos.Reports.Create(report); err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}

	logging.Logger.WithFields(logrus.Fields{
		"project_id": projectID,
		"report_id":  report.ID,
		"viewer":     viewer.ID,
	}).Info("report filed")

	return report, nil
}

// isBlankReport reports whether content is empty once an editor's empty
// paragraph is removed.
func isBlankReport(content string) bool {
	c := strings.TrimSpace(content)
	return c == "" || c == "<p></p>" || c == "<p><br></p>"
}
