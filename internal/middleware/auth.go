package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/procms-api/internal/errors"
	"github.com/yukikurage/procms-api/internal/models"
)

// Session and context keys
const (
	SessionKeyViewerType = "viewer_type"
	SessionKeyViewerID   = "viewer_id"
	SessionKeyViewerName = "viewer_name"

	ContextKeyViewer = "viewer"
)

// RequireViewer loads the viewer stored in the session into the context
func RequireViewer() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		role, _ := session.Get(SessionKeyViewerType).(string)
		id, _ := session.Get(SessionKeyViewerID).(string)
		name, _ := session.Get(SessionKeyViewerName).(string)

		viewer := models.Viewer{Role: models.Role(role), ID: id, Name: name}
		if !viewer.Role.Valid() || viewer.ID == "" {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		c.Set(ContextKeyViewer, viewer)
		c.Next()
	}
}

// RequireModerator rejects client viewers. It must run after RequireViewer.
func RequireModerator() gin.HandlerFunc {
	return func(c *gin.Context) {
		viewer, ok := GetViewer(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}
		if !viewer.CanModerate() {
			apierrors.Forbidden(c, "Only employees and admins can perform this action")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin only lets the admin viewer through. It must run after
// RequireViewer.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		viewer, ok := GetViewer(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}
		if viewer.Role != models.RoleAdmin {
			apierrors.Forbidden(c, "Only admins can perform this action")
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetViewer retrieves the current viewer from context
func GetViewer(c *gin.Context) (models.Viewer, bool) {
	v, exists := c.Get(ContextKeyViewer)
	if !exists {
		return models.Viewer{}, false
	}
	viewer, ok := v.(models.Viewer)
	return viewer, ok
}

// SaveViewer stores viewer in the session
func SaveViewer(c *gin.Context, viewer models.Viewer) error {
	session := sessions.Default(c)
	session.Set(SessionKeyViewerType, string(viewer.Role))
	session.Set(SessionKeyViewerID, viewer.ID)
	session.Set(SessionKeyViewerName, viewer.Name)
	return session.Save()
}

// ClearViewer ends the viewer session
func ClearViewer(c *gin.Context) error {
	session := sessions.Default(c)
	session.Clear()
	return session.Save()
}
