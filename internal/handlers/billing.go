package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/procms-api/internal/dto"
	apierrors "github.com/yukikurage/procms-api/internal/errors"
	"github.com/yukikurage/procms-api/internal/middleware"
	"github.com/yukikurage/procms-api/internal/services"
	"github.com/yukikurage/procms-api/internal/utils"
)

// BillingHandler serves subscriptions and end-of-day reports.
type BillingHandler struct {
	subscriptionService *services.SubscriptionService
	reportService       *services.ReportService
}

// NewBillingHandler creates a new BillingHandler.
func NewBillingHandler(subscriptionService *services.SubscriptionService, reportService *services.ReportService) *BillingHandler {
	return &BillingHandler{
		subscriptionService: subscriptionService,
		reportService:       reportService,
	}
}

// ListSubscriptions returns subscriptions with their totals.
func (h *BillingHandler) ListSubscriptions(c *gin.Context) {
	viewer, _ := middleware.GetViewer(c)

	subs, summary, err := h.subscriptionService.ListSubscriptions(viewer, c.Query("client_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSubscriptionListResponse(subs, summary))
}

// ListReports returns EOD reports, newest first.
func (h *BillingHandler) ListReports(c *gin.Context) {
	viewer, _ := middleware.GetViewer(c)

	params := utils.GetPaginationParams(c)
	reports, total, err := h.reportService.ListReports(viewer, services.ListReportsInput{
		EmployeeID: c.Query("employee_id"),
		ProjectID:  c.Query("project_id"),
		Date:       c.Query("date"),
		Page:       params.Page,
		PageSize:   params.Limit,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ReportListResponse{
		Reports:    reports,
		Pagination: params.Response(total),
	})
}

// CreateReport files today's report for a project.
func (h *BillingHandler) CreateReport(c *gin.Context) {
	viewer, _ := middleware.GetViewer(c)

	type CreateReportRequest struct {
		ProjectID string `json:"project_id" binding:"required"`
		Content   string `json:"content"`
	}

	var req CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	report, err := h.reportService.CreateReport(viewer, req.ProjectID, req.Content)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, report)
}
