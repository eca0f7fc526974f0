package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/procms-api/internal/errors"
	"github.com/yukikurage/procms-api/internal/middleware"
	"github.com/yukikurage/procms-api/internal/services"
	"github.com/yukikurage/procms-api/internal/utils"
)

type DirectoryHandler struct {
	directoryService *services.DirectoryService
}

func NewDirectoryHandler(directoryService *services.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{
		directoryService: directoryService,
	}
}

func directoryInput(c *gin.Context, params utils.PaginationParams) services.DirectoryInput {
	return services.DirectoryInput{
		Query:      c.Query("q"),
		Status:     c.Query("status"),
		Department: c.Query("department"),
		Page:       params.Page,
		PageSize:   params.Limit,
	}
}

// ListClients returns the agency's clients
func (h *DirectoryHandler) ListClients(c *gin.Context) {
	viewer, _ := middleware.GetViewer(c)

	params := utils.GetPaginationParams(c)
	clients, total, err := h.directoryService.ListClients(viewer, directoryInput(c, params))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"clients":    clients,
		"pagination": params.Response(total),
	})
}

// GetClient returns one client
func (h *DirectoryHandler) GetClient(c *gin.Context) {
	viewer, _ := middleware.GetViewer(c)

	client, err := h.directoryService.GetClient(viewer, c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, client)
}

// ListEmployees returns the agency's employees
func (h *DirectoryHandler) ListEmployees(c *gin.Context) {
	viewer, _ := middleware.GetViewer(c)

	params := utils.GetPaginationParams(c)
	employees, total, err := h.directoryService.ListEmployees(viewer, directoryInput(c, params))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"employees":  employees,
		"pagination": params.Response(total),
	})
}

// CreateClient adds a client to the directory
func (h *DirectoryHandler) CreateClient(c *gin.Context) {
	viewer, _ := middleware.GetViewer(c)

	type CreateClientRequest struct {
		Name     string `json:"name" binding:"required"`
		Company  string `json:"company" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Phone    string `json:"phone"`
		Industry string `json:"industry"`
		Address  string `json:"address"`
	}

	var req CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	client, err := h.directoryService.CreateClient(viewer, services.CreateClientInput{
		Name:     req.Name,
		Company:  req.Company,
		Email:    req.Email,
		Phone:    req.Phone,
		Industry: req.Industry,
		Address:  req.Address,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, client)
}

// CreateEmployee adds an employee to the directory
func (h *DirectoryHandler) CreateEmployee(c *gin.Context) {
	viewer, _ := middleware.GetViewer(c)

	type CreateEmployeeRequest struct {
		Name       string `json:"name" binding:"required"`
		Email      string `json:"email" binding:"required,email"`
		Role       string `json:"role" binding:"required"`
		Department string `json:"department"`
	}

	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	employee, err := h.directoryService.CreateEmployee(viewer, services.CreateEmployeeInput{
		Name:       req.Name,
		Email:      req.Email,
		Role:       req.Role,
		Department: req.Department,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, employee)
}
