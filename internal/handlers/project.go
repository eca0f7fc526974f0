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

type ProjectHandler struct {
	projectService *services.ProjectService
	boardService   *services.BoardService
}

func NewProjectHandler(projectService *services.ProjectService, boardService *services.BoardService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		boardService:   boardService,
	}
}

// ListProjects returns the projects within the viewer's scope
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	viewer, ok := middleware.GetViewer(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	var status *models.ProjectStatus
	if raw := c.Query("status"); raw != "" {
		s := models.ProjectStatus(raw)
		if !s.Valid() {
			apierrors.BadRequest(c, services.ErrInvalidProjectStatus.Error())
			return
		}
		status = &s
	}

	params := utils.GetPaginationParams(c)
	projects, total, err := h.projectService.ListProjects(viewer, services.ListProjectsInput{
		Query:    c.Query("q"),
		Status:   status,
		ClientID: c.Query("client_id"),
		Page:     params.Page,
		PageSize: params.Limit,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ProjectListResponse{
		Projects:   dto.ToProjectDTOs(projects),
		Pagination: params.Response(total),
	})
}

// CreateProject creates a project with the default columns
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	viewer, ok := middleware.GetViewer(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateProjectRequest struct {
		Name        string               `json:"name" binding:"required"`
		Description string               `json:"description"`
		ClientIDs   []string             `json:"client_ids"`
		Status      models.ProjectStatus `json:"status"`
		Progress    int                  `json:"progress"`
		StartDate   string               `json:"start_date"`
		DueDate     string               `json:"due_date"`
		Budget      float64              `json:"budget"`
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	project, err := h.projectService.CreateProject(viewer, services.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		ClientIDs:   req.ClientIDs,
		Status:      req.Status,
		Progress:    req.Progress,
		StartDate:   req.StartDate,
		DueDate:     req.DueDate,
		Budget:      req.Budget,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.BoardDTO{
		ProjectDTO: dto.ToProjectDTO(*project),
		Columns:    dto.ToColumnDTOs(project.Columns),
		Tasks:      []dto.TaskDTO{},
	})
}

// GetProject returns the project with its board and comment counts
func (h *ProjectHandler) GetProject(c *gin.Context) {
	viewer, _ := middleware.GetViewer(c)

	view, err := h.projectService.GetBoard(viewer, c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBoardDTO(view))
}

// AddColumn appends a column to the board
func (h *ProjectHandler) AddColumn(c *gin.Context) {
	viewer, _ := middleware.GetViewer(c)

	type AddColumnRequest struct {
		Title string `json:"title" binding:"required"`
		Color string `json:"color"`
	}

	var req AddColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	column, err := h.boardService.AddColumn(viewer, c.Param("id"), req.Title, req.Color)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToColumnDTO(*column))
}

// DeleteColumn removes a column and reassigns its tasks
func (h *ProjectHandler) DeleteColumn(c *gin.Context) {
	viewer, _ := middleware.GetViewer(c)

	result, err := h.boardService.DeleteColumn(viewer, c.Param("id"), c.Param("column_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToColumnDeletionDTO(result))
}

// AddTask creates a task on the board
func (h *ProjectHandler) AddTask(c *gin.Context) {
	viewer, _ := middleware.GetViewer(c)

	type AddTaskRequest struct {
		ColumnID    string              `json:"column_id"`
		Title       string              `json:"title" binding:"required"`
		Description string              `json:"description"`
		Priority    models.TaskPriority `json:"priority"`
		AssigneeID  string              `json:"assignee_id"`
		DueDate     string              `json:"due_date"`
		Tags        []string            `json:"tags"`
	}

	var req AddTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.boardService.AddTask(viewer, c.Param("id"), services.CreateTaskInput{
		ColumnID:    req.ColumnID,
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		AssigneeID:  req.AssigneeID,
		DueDate:     req.DueDate,
		Tags:        req.Tags,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task, repository.CommentCounts{}))
}

// SuggestTasks generates task suggestions from text using AI
func (h *ProjectHandler) SuggestTasks(c *gin.Context) {
	viewer, _ := middleware.GetViewer(c)

	type SuggestTasksRequest struct {
		Text string `json:"text" binding:"required"`
	}

	var req SuggestTasksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	suggestions, err := h.boardService.SuggestTasks(c.Request.Context(), viewer, c.Param("id"), req.Text)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": suggestions,
	})
}

// StartDrag begins a drag gesture on a task of the board
func (h *ProjectHandler) StartDrag(c *gin.Context) {
	viewer, _ := middleware.GetViewer(c)

	type StartDragRequest struct {
		TaskID string `json:"task_id" binding:"required"`
	}

	var req StartDragRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	drag, err := h.boardService.StartDrag(viewer, c.Param("id"), req.TaskID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToDragDTO(drag))
}
