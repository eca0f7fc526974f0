// Package comments implements the moderation workflow of task comments.
//
// A comment starts pending. A moderator (employee or admin) either approves
// it, which produces a new client-request task, or rejects it with a reason.
// Both outcomes are terminal. Replies can be added at any time.
package comments

import (
	"errors"
	"strings"
	"time"

	"github.com/yukikurage/procms-api/internal/models"
	"github.com/yukikurage/procms-api/internal/utils"
)

var (
	ErrEmptyComment   = errors.New("comment must have content or at least one image")
	ErrEmptyReply     = errors.New("reply content is required")
	ErrNotModerator   = errors.New("only employees and admins can moderate comments")
	ErrNotPending     = errors.New("comment has already been moderated")
	ErrReasonRequired = errors.New("rejection reason is required")
)

const (
	ClientRequestPrefix = "[Client Request] "
	ClientRequestTag    = "client-request"
	TitleExcerptLength  = 60
	RequestDueDays      = 14
)

// NewCommentInput carries what a viewer submits on a task.
type NewCommentInput struct {
	TaskID    string
	ProjectID string
	Author    models.Viewer
	Content   string
	Images    []string
	Now       time.Time
}

// NewComment builds a pending comment with no replies.
func NewComment(in NewCommentInput) (models.TaskComment, error) {
	content := strings.TrimSpace(in.Content)
	images := make([]string, 0, len(in.Images))
	for _, img := range in.Images {
		if strings.TrimSpace(img) != "" {
			images = append(images, img)
		}
	}
	if content == "" && len(images) == 0 {
		return models.TaskComment{}, ErrEmptyComment
	}

	return models.TaskComment{
		ID:         utils.NewID("comment"),
		TaskID:     in.TaskID,
		ProjectID:  in.ProjectID,
		AuthorID:   in.Author.ID,
		AuthorType: in.Author.Role,
		AuthorName: in.Author.Name,
		Content:    content,
		Images:     images,
		Status:     models.CommentStatusPending,
		CreatedAt:  in.Now,
		Replies:    []models.TaskCommentReply{},
	}, nil
}

// NewReply appends a reply to c regardless of its status.
func NewReply(c *models.TaskComment, author models.Viewer, content string, now time.Time) (models.TaskCommentReply, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return models.TaskCommentReply{}, ErrEmptyReply
	}

	reply := models.TaskCommentReply{
		ID:         utils.NewID("reply"),
		CommentID:  c.ID,
		AuthorID:   author.ID,
		AuthorType: author.Role,
		AuthorName: author.Name,
		Content:    content,
		CreatedAt:  now,
	}
	c.Replies = append(c.Replies, reply)
	return reply, nil
}

// ApprovalOptions supplies the board context of an approval.
type ApprovalOptions struct {
	Now time.Time
	// Status is the column the generated task is placed in.
	Status string
	// DefaultAssigneeID is used when the approver is not an employee.
	DefaultAssigneeID string
}

// Approve marks a pending comment approved and returns the task it turns into.
func Approve(c *models.TaskComment, viewer models.Viewer, opts ApprovalOptions) (models.Task, error) {
	if !viewer.CanModerate() {
		return models.Task{}, ErrNotModerator
	}
	if !c.IsPending() {
		return models.Task{}, ErrNotPending
	}

	assignee := opts.DefaultAssigneeID
	if viewer.Role == models.RoleEmployee {
		assignee = viewer.ID
	}

	c.Status = models.CommentStatusApproved
	return RequestTask(*c, opts.Status, assignee, opts.Now), nil
}

// Reject marks a pending comment rejected with a non-empty reason.
func Reject(c *models.TaskComment, viewer models.Viewer, reason string) error {
	if !viewer.CanModerate() {
		return ErrNotModerator
	}
	if !c.IsPending() {
		return ErrNotPending
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return ErrReasonRequired
	}

	c.Status = models.CommentStatusRejected
	c.RejectionReason = reason
	return nil
}

// RequestTask builds the task generated from an approved comment.
func RequestTask(c models.TaskComment, status, assigneeID string, now time.Time) models.Task {
	day := now.Format(models.DateLayout)
	return models.Task{
		ID:          utils.NewID("task"),
		ProjectID:   c.ProjectID,
		Title:       RequestTitle(c.Content),
		Description: c.Content,
		Status:      status,
		Priority:    models.PriorityMedium,
		AssigneeID:  assigneeID,
		DueDate:     now.AddDate(0, 0, RequestDueDays).Format(models.DateLayout),
		CreatedOn:   day,
		Tags:        []string{ClientRequestTag},
	}
}

// RequestTitle prefixes the first TitleExcerptLength characters of content.
// The ellipsis is always appended, even for short content.
func RequestTitle(content string) string {
	runes := []rune(content)
	if len(runes) > TitleExcerptLength {
		runes = runes[:TitleExcerptLength]
	}
	return ClientRequestPrefix + string(runes) + "..."
}
