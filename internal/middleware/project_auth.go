package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/procms-api/internal/errors"
	"github.com/yukikurage/procms-api/internal/logging"
	"github.com/yukikurage/procms-api/internal/services"
)

// ContextKeyProject holds the *models.Project loaded by RequireProjectAccess
const ContextKeyProject = "project"

// RequireProjectAccess checks that the project in the :id parameter is within
// the viewer's scope
func RequireProjectAccess(projects *services.ProjectService) gin.HandlerFunc {
	return func(c *gin.Context) {
		viewer, ok := GetViewer(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		project, err := projects.GetProject(viewer, c.Param("id"))
		if err != nil {
			// Projects outside the scope are reported as missing
			if errors.Is(err, services.ErrProjectNotFound) {
				apierrors.NotFound(c, "Project not found")
			} else {
				logging.Logger.WithError(err).Error("project access check failed")
				apierrors.InternalError(c, "")
			}
			c.Abort()
			return
		}

		c.Set(ContextKeyProject, project)
		c.Next()
	}
}
