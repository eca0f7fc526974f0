package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/procms-api/internal/dto"
	apierrors "github.com/yukikurage/procms-api/internal/errors"
	"github.com/yukikurage/procms-api/internal/middleware"
	"github.com/yukikurage/procms-api/internal/services"
)

// CommentHandler serves task comments and their moderation.
type CommentHandler struct {
	commentService *services.CommentService
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(commentService *services.CommentService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
	}
}

// ListComments returns the comments of a task with their replies.
func (h *CommentHandler) ListComments(c *gin.Context) {
	viewer, _ := middleware.GetViewer(c)

	list, err := h.commentService.ListComments(viewer, c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"comments": dto.ToCommentDTOs(list),
	})
}

// AddComment leaves a pending comment on a task.
func (h *CommentHandler) AddComment(c *gin.Context) {
	viewer, _ := middleware.GetViewer(c)

	type AddCommentRequest struct {
		Content string   `json:"content"`
		Images  []string `json:"images"`
	}

	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	comment, err := h.commentService.AddComment(viewer, services.AddCommentInput{
		TaskID:  c.Param("id"),
		Content: req.Content,
		Images:  req.Images,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCommentDTO(*comment))
}

// AddReply replies to a comment.
func (h *CommentHandler) AddReply(c *gin.Context) {
	viewer, _ := middleware.GetViewer(c)

	type AddReplyRequest struct {
		Content string `json:"content"`
	}

	var req AddReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	reply, err := h.commentService.AddReply(viewer, c.Param("id"), req.Content)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToReplyDTO(*reply))
}

// Approve approves a pending comment and returns the task it generated.
func (h *CommentHandler) Approve(c *gin.Context) {
	viewer, _ := middleware.GetViewer(c)

	approval, err := h.commentService.Approve(viewer, c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToApprovalDTO(approval))
}

// Reject rejects a pending comment with a reason.
func (h *CommentHandler) Reject(c *gin.Context) {
	viewer, _ := middleware.GetViewer(c)

	type RejectRequest struct {
		Reason string `json:"reason"`
	}

	var req RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	comment, err := h.commentService.Reject(viewer, c.Param("id"), req.Reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCommentDTO(*comment))
}
