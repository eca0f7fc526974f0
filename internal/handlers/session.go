package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/procms-api/internal/errors"
	"github.com/yukikurage/procms-api/internal/logging"
	"github.com/yukikurage/procms-api/internal/middleware"
	"github.com/yukikurage/procms-api/internal/models"
	"github.com/yukikurage/procms-api/internal/services"
)

// SessionHandler selects the identity a browser session acts as.
type SessionHandler struct {
	viewerService *services.ViewerService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(viewerService *services.ViewerService) *SessionHandler {
	return &SessionHandler{
		viewerService: viewerService,
	}
}

// Create resolves the requested viewer and stores it in the session.
func (h *SessionHandler) Create(c *gin.Context) {
	type CreateSessionRequest struct {
		ViewerType string `json:"viewer_type" binding:"required"`
		ViewerID   string `json:"viewer_id"`
	}

	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	viewer, err := h.viewerService.Resolve(models.Role(req.ViewerType), req.ViewerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if err := middleware.SaveViewer(c, *viewer); err != nil {
		logging.Logger.WithError(err).Error("failed to save session")
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	logging.Logger.WithField("viewer", viewer.ID).WithField("viewer_type", viewer.Role).Info("viewer selected")
	c.JSON(http.StatusOK, viewer)
}

// Get returns the current viewer.
func (h *SessionHandler) Get(c *gin.Context) {
	viewer, ok := middleware.GetViewer(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}
	c.JSON(http.StatusOK, viewer)
}

// Delete clears the viewer session.
func (h *SessionHandler) Delete(c *gin.Context) {
	if err := middleware.ClearViewer(c); err != nil {
		apierrors.InternalError(c, "Failed to clear session")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Session cleared",
	})
}
