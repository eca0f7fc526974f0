package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/procms-api/internal/errors"
	"github.com/yukikurage/procms-api/internal/logging"
	"github.com/yukikurage/procms-api/internal/services"
)

// ContextKeyTask holds the *models.Task loaded by RequireTaskAccess
const ContextKeyTask = "task"

// RequireTaskAccess checks if the viewer has access to the task in the :id
// parameter through its project
func RequireTaskAccess(board *services.BoardService) gin.HandlerFunc {
	return func(c *gin.Context) {
		viewer, ok := GetViewer(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		task, err := board.GetTask(viewer, c.Param("id"))
		if err != nil {
			// Return 404 instead of 403 to avoid leaking task existence
			if errors.Is(err, services.ErrTaskNotFound) {
				apierrors.NotFound(c, "Task not found")
			} else {
				logging.Logger.WithError(err).Error("task access check failed")
				apierrors.InternalError(c, "")
			}
			c.Abort()
			return
		}

		c.Set(ContextKeyTask, task)
		c.Next()
	}
}
