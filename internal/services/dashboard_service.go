package services

import (
	"fmt"

	"github.com/yukikurage/procms-api/internal/models"
	"github.com/yukikurage/procms-api/internal/repository"
)

// DashboardStats are the headline numbers of a viewer's portal. Directory
// counts are only set for admins, billing only for admins and clients.
type DashboardStats struct {
	Role            models.Role          `json:"role"`
	Projects        ProjectStats         `json:"projects"`
	Tasks           TaskStats            `json:"tasks"`
	PendingComments int64                `json:"pending_comments"`
	Directory       *DirectoryStats      `json:"directory,omitempty"`
	Billing         *SubscriptionSummary `json:"billing,omitempty"`
}

type ProjectStats struct {
	Total  int64 `json:"total"`
	Active int64 `json:"active"`
}

// TaskStats counts tasks per board status. For employees only their own
// tasks are counted.
type TaskStats struct {
	Total    int64            `json:"total"`
	ByStatus map[string]int64 `json:"by_status"`
}

type DirectoryStats struct {
	Clients       int64 `json:"clients"`
	ActiveClients int64 `json:"active_clients"`
	Employees     int64 `json:"employees"`
}

// DashboardService aggregates the counts shown on each portal's dashboard.
type DashboardService struct {
	repos *repository.Repositories
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(repos *repository.Repositories) *DashboardService {
	return &DashboardService{repos: repos}
}

// Stats computes the dashboard of the viewer, scoped like every other read.
func (s *DashboardService) Stats(viewer models.Viewer) (*DashboardStats, error) {
	projectIDs, err := accessibleProjectIDs(s.repos, viewer)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{Role: viewer.Role}

	if stats.Projects, err = s.projectStats(viewer); err != nil {
		return nil, err
	}

	taskFilter := repository.TaskFilter{ProjectIDs: projectIDs}
	if viewer.Role == models.RoleEmployee {
		taskFilter = repository.TaskFilter{AssigneeID: viewer.ID}
	}
	byStatus, err := s.repos.Tasks.CountByStatus(taskFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}
	stats.Tasks.ByStatus = byStatus
	for _, n := range byStatus {
		stats.Tasks.Total += n
	}

	if stats.PendingComments, err = s.repos.Comments.CountPending(projectIDs); err != nil {
		return nil, fmt.Errorf("failed to count pending comments: %w", err)
	}

	switch viewer.Role {
	case models.RoleAdmin:
		if stats.Directory, err = s.directoryStats(); err != nil {
			return nil, err
		}
		subs, err := s.repos.Subscriptions.List("")
		if err != nil {
			return nil, fmt.Errorf("failed to list subscriptions: %w", err)
		}
		summary := Summarize(subs)
		stats.Billing = &summary
	case models.RoleClient:
		subs, err := s.repos.Subscriptions.List(viewer.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list subscriptions: %w", err)
		}
		summary := Summarize(subs)
		stats.Billing = &summary
	}

	return stats, nil
}

func (s *DashboardService) projectStats(viewer models.Viewer) (ProjectStats, error) {
	filter := repository.ProjectFilter{Page: 1, PageSize: 1}
	switch viewer.Role {
	case models.RoleClient:
		filter.ClientID = viewer.ID
	case models.RoleEmployee:
		filter.AssigneeID = viewer.ID
	}

	var stats ProjectStats
	_, total, err := s.repos.Projects.List(filter)
	if err != nil {
		return stats, fmt.Errorf("failed to count projects: %w", err)
	}
	stats.Total = total

	active := models.ProjectStatusActive
	filter.Status = &active
	if _, stats.Active, err = s.repos.Projects.List(filter); err != nil {
		return stats, fmt.Errorf("failed to count projects: %w", err)
	}
	return stats, nil
}

func (s *DashboardService) directoryStats() (*DirectoryStats, error) {
	page := repository.DirectoryFilter{Page: 1, PageSize: 1}

	var stats DirectoryStats
	var err error
	if _, stats.Clients, err = s.repos.Clients.List(page); err != nil {
		return nil, fmt.Errorf("failed to count clients: %w", err)
	}

	active := page
	active.Status = "active"
	if _, stats.ActiveClients, err = s.repos.Clients.List(active); err != nil {
		return nil, fmt.Errorf("failed to count clients: %w", err)
	}

	if _, stats.Employees, err = s.repos.Employees.List(page); err != nil {
		return nil, fmt.Errorf("failed to count employees: %w", err)
	}
	return &stats, nil
}
