package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/procms-api/internal/comments"
	apierrors "github.com/yukikurage/procms-api/internal/errors"
	"github.com/yukikurage/procms-api/internal/kanban"
	"github.com/yukikurage/procms-api/internal/logging"
	"github.com/yukikurage/procms-api/internal/services"
)

func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, comments.ErrEmptyComment),
		errors.Is(err, comments.ErrEmptyReply),
		errors.Is(err, comments.ErrReasonRequired),
		errors.Is(err, kanban.ErrTitleRequired),
		errors.Is(err, kanban.ErrColumnNotFound),
		errors.Is(err, kanban.ErrColumnExists),
		errors.Is(err, services.ErrInvalidPriority),
		errors.Is(err, services.ErrInvalidDate),
		errors.Is(err, services.ErrInvalidProjectStatus),
		errors.Is(err, services.ErrInvalidProgress),
		errors.Is(err, services.ErrProjectNameRequired),
		errors.Is(err, services.ErrEmptyReport),
		errors.Is(err, services.ErrTextRequired),
		errors.Is(err, services.ErrInvalidViewerType),
		errors.Is(err, services.ErrEmployeeNotFound),
		errors.Is(err, services.ErrClientFieldsRequired),
		errors.Is(err, services.ErrEmployeeFieldsRequired):
		apierrors.BadRequest(c, err.Error())

	case errors.Is(err, comments.ErrNotPending),
		errors.Is(err, kanban.ErrLastColumn),
		errors.Is(err, kanban.ErrDragFinished),
		errors.Is(err, kanban.ErrDragExpired):
		apierrors.Conflict(c, err.Error())

	case errors.Is(err, comments.ErrNotModerator),
		errors.Is(err, services.ErrNotModerator),
		errors.Is(err, services.ErrNotDragOwner),
		errors.Is(err, services.ErrAdminOnly),
		errors.Is(err, services.ErrForbidden):
		apierrors.Forbidden(c, err.Error())

	case errors.Is(err, services.ErrProjectNotFound),
		errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, kanban.ErrTaskNotFound),
		errors.Is(err, services.ErrCommentNotFound),
		errors.Is(err, services.ErrClientNotFound),
		errors.Is(err, services.ErrViewerNotFound),
		errors.Is(err, kanban.ErrDragNotFound):
		apierrors.NotFound(c, err.Error())

	case errors.Is(err, services.ErrAIServiceNotConfigured),
		errors.Is(err, services.ErrAIUnavailable):
		apierrors.ServiceUnavailable(c, err.Error())

	case errors.Is(err, services.ErrAINoTasksGenerated),
		errors.Is(err, services.ErrAINoValidTasks),
		errors.Is(err, services.ErrAITooManyTasks):
		apierrors.Unprocessable(c, err.Error())

	default:
		logging.Logger.WithError(err).WithField("path", c.FullPath()).Error("request failed")
		apierrors.InternalError(c, "")
	}
}
