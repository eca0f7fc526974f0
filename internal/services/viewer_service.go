package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/procms-api/internal/models"
	"github.com/yukikurage/procms-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrInvalidViewerType = errors.New("viewer_type must be admin, employee or client")
	ErrViewerNotFound    = errors.New("viewer not found")
)

// ViewerService resolves the identity a session acts as.
type ViewerService struct {
	repos     *repository.Repositories
	adminID   string
	adminName string
}

// NewViewerService creates a new ViewerService.
func NewViewerService(repos *repository.Repositories, adminID, adminName string) *ViewerService {
	return &ViewerService{
		repos:     repos,
		adminID:   adminID,
		adminName: adminName,
	}
}

// Resolve checks that the requested identity exists and returns it with its
// display name. An empty id selects the configured admin for the admin role.
func (s *ViewerService) Resolve(role models.Role, id string) (*models.Viewer, error) {
	id = strings.TrimSpace(id)

	switch role {
	case models.RoleAdmin:
		if id != "" && id != s.adminID {
			return nil, ErrViewerNotFound
		}
		return &models.Viewer{Role: role, ID: s.adminID, Name: s.adminName}, nil

	case models.RoleEmployee:
		employee, err := s.repos.Employees.FindByID(id)
		if err != nil {
			return nil, viewerLookupError(err)
		}
		return &models.Viewer{Role: role, ID: employee.ID, Name: employee.Name}, nil

	case models.RoleClient:
		client, err := s.repos.Clients.FindByID(id)
		if err != nil {
			return nil, viewerLookupError(err)
		}
		return &models.Viewer{Role: role, ID: client.ID, Name: client.Name}, nil
	}

	return nil, ErrInvalidViewerType
}

func viewerLookupError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrViewerNotFound
	}
	return fmt.Errorf("failed to find viewer: %w", err)
}
