package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/procms-api/internal/dto"
	apierrors "github.com/yukikurage/procms-api/internal/errors"
	"github.com/yukikurage/procms-api/internal/middleware"
	"github.com/yukikurage/procms-api/internal/models"
	"github.com/yukikurage/procms-api/internal/repository"
	"github.com/yukikurage/procms-api/internal/services"
	"github.com/yukikurage/procms-api/internal/utils"
)

type TaskHandler struct {
	boardService *services.BoardService
}

func NewTaskHandler(boardService *services.BoardService) *TaskHandler {
	return &TaskHandler{
		boardService: boardService,
	}
}

// ListTasks returns tasks of the projects the viewer can access
// Can filter by project_id, status, priority, assignee_id and tag
func (h *TaskHandler) ListTasks(c *gin.Context) {
	viewer, ok := middleware.GetViewer(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	var priority *models.TaskPriority
	if raw := c.Query("priority"); raw != "" {
		p := models.TaskPriority(raw)
		if !p.Valid() {
			apierrors.BadRequest(c, services.ErrInvalidPriority.Error())
			return
		}
		priority = &p
	}

	params := utils.GetPaginationParams(c)
	tasks, total, err := h.boardService.ListTasks(viewer, services.ListTasksInput{
		ProjectID:  c.Query("project_id"),
		Query:      c.Query("q"),
		Status:     c.Query("status"),
		Priority:   priority,
		AssigneeID: c.Query("assignee_id"),
		Tag:        c.Query("tag"),
		Page:       params.Page,
		PageSize:   params.Limit,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.TaskListResponse{
		Tasks:      dto.ToTaskDTOs(tasks, nil),
		Pagination: params.Response(total),
	})
}

// GetTask returns a specific task
// Task is already loaded by RequireTaskAccess middleware
func (h *TaskHandler) GetTask(c *gin.Context) {
	task, ok := c.MustGet(middleware.ContextKeyTask).(*models.Task)
	if !ok {
		apierrors.InternalError(c, "Invalid task data")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task, repository.CommentCounts{}))
}

// DeleteTask deletes a task and its comments
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	viewer, _ := middleware.GetViewer(c)

	if err := h.boardService.DeleteTask(viewer, c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted successfully",
	})
}

// MoveTask moves a task to another column of its board
func (h *TaskHandler) MoveTask(c *gin.Context) {
	viewer, _ := middleware.GetViewer(c)

	type MoveTaskRequest struct {
		ColumnID string `json:"column_id" binding:"required"`
	}

	var req MoveTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.boardService.MoveTask(viewer, c.Param("id"), req.ColumnID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task, repository.CommentCounts{}))
}

// Drop ends a drag gesture on a column
func (h *TaskHandler) Drop(c *gin.Context) {
	viewer, _ := middleware.GetViewer(c)

	type DropRequest struct {
		ColumnID string `json:"column_id" binding:"required"`
	}

	var req DropRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.boardService.Drop(viewer, c.Param("drag_id"), req.ColumnID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task, repository.CommentCounts{}))
}

// CancelDrag ends a drag gesture without a move
func (h *TaskHandler) CancelDrag(c *gin.Context) {
	viewer, _ := middleware.GetViewer(c)

	if err := h.boardService.CancelDrag(viewer, c.Param("drag_id")); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Drag cancelled",
	})
}
