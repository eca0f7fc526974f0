package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/procms-api/internal/middleware"
	"github.com/yukikurage/procms-api/internal/services"
)

// Services are the dependencies of the HTTP handlers.
type Services struct {
	Viewers       *services.ViewerService
	Projects      *services.ProjectService
	Board         *services.BoardService
	Comments      *services.CommentService
	Directory     *services.DirectoryService
	Subscriptions *services.SubscriptionService
	Reports       *services.ReportService
	Dashboard     *services.DashboardService
}

// RegisterRoutes mounts the health check and the /api routes. Session
// middleware must already be installed on r.
func RegisterRoutes(r *gin.Engine, s Services) {
	sessionHandler := NewSessionHandler(s.Viewers)
	projectHandler := NewProjectHandler(s.Projects, s.Board)
	taskHandler := NewTaskHandler(s.Board)
	commentHandler := NewCommentHandler(s.Comments)
	directoryHandler := NewDirectoryHandler(s.Directory)
	billingHandler := NewBillingHandler(s.Subscriptions, s.Reports)
	dashboardHandler := NewDashboardHandler(s.Dashboard)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "ProCMS API is running",
		})
	})

	api := r.Group("/api")

	// Session routes (public)
	session := api.Group("/session")
	{
		session.POST("", sessionHandler.Create)
		session.DELETE("", sessionHandler.Delete)
		session.GET("", middleware.RequireViewer(), sessionHandler.Get)
	}

	protected := api.Group("")
	protected.Use(middleware.RequireViewer())

	protected.GET("/dashboard", dashboardHandler.GetStats)

	// Directory routes
	{
		protected.GET("/clients", middleware.RequireAdmin(), directoryHandler.ListClients)
		protected.POST("/clients", middleware.RequireAdmin(), directoryHandler.CreateClient)
		protected.GET("/clients/:id", directoryHandler.GetClient)
		protected.GET("/employees", middleware.RequireAdmin(), directoryHandler.ListEmployees)
		protected.POST("/employees", middleware.RequireAdmin(), directoryHandler.CreateEmployee)
	}

	// Project routes
	projects := protected.Group("/projects")
	{
		projectAccess := middleware.RequireProjectAccess(s.Projects)
		moderator := middleware.RequireModerator()
		adminOnly := middleware.RequireAdmin()

		projects.GET("", projectHandler.ListProjects)
		projects.POST("", middleware.RequireAdmin(), projectHandler.CreateProject)
		projects.GET("/:id", projectAccess, projectHandler.GetProject)
		projects.POST("/:id/columns", adminOnly, projectAccess, projectHandler.AddColumn)
		projects.DELETE("/:id/columns/:column_id", adminOnly, projectAccess, projectHandler.DeleteColumn)
		projects.POST("/:id/tasks", adminOnly, projectAccess, projectHandler.AddTask)
		projects.POST("/:id/tasks/suggest", moderator, projectAccess, projectHandler.SuggestTasks)
		projects.POST("/:id/drags", moderator, projectAccess, projectHandler.StartDrag)
	}

	// Task routes
	tasks := protected.Group("/tasks")
	{
		taskAccess := middleware.RequireTaskAccess(s.Board)

		tasks.GET("", taskHandler.ListTasks)
		tasks.GET("/:id", taskAccess, taskHandler.GetTask)
		tasks.DELETE("/:id", middleware.RequireAdmin(), taskAccess, taskHandler.DeleteTask)
		tasks.POST("/:id/move", middleware.RequireModerator(), taskAccess, taskHandler.MoveTask)
		tasks.GET("/:id/comments", taskAccess, commentHandler.ListComments)
		tasks.POST("/:id/comments", taskAccess, commentHandler.AddComment)
	}

	// Comment routes
	comments := protected.Group("/comments")
	{
		comments.POST("/:id/replies", commentHandler.AddReply)
		comments.POST("/:id/approve", middleware.RequireModerator(), commentHandler.Approve)
		comments.POST("/:id/reject", middleware.RequireModerator(), commentHandler.Reject)
	}

	// Drag routes
	drags := protected.Group("/drags")
	drags.Use(middleware.RequireModerator())
	{
		drags.POST("/:drag_id/drop", taskHandler.Drop)
		drags.DELETE("/:drag_id", taskHandler.CancelDrag)
	}

	// Billing routes
	{
		protected.GET("/subscriptions", billingHandler.ListSubscriptions)
		protected.GET("/reports", billingHandler.ListReports)
		protected.POST("/reports", billingHandler.CreateReport)
	}
}
