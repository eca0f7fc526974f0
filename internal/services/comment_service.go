package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yukikurage/procms-api/internal/comments"
	"github.com/yukikurage/procms-api/internal/logging"
	"github.com/yukikurage/procms-api/internal/models"
	"github.com/yukikurage/procms-api/internal/repository"
	"gorm.io/gorm"
)

var ErrCommentNotFound = errors.New("comment not found")

// CommentService runs the comment moderation workflow against the store.
type CommentService struct {
	repos             *repository.Repositories
	defaultAssigneeID string
	now               func() time.Time
}

// NewCommentService creates a new CommentService. defaultAssigneeID is given
// tasks approved by admins; when empty the first employee is used.
func NewCommentService(repos *repository.Repositories, defaultAssigneeID string) *CommentService {
	return &CommentService{
		repos:             repos,
		defaultAssigneeID: defaultAssigneeID,
		now:               time.Now,
	}
}

// AddCommentInput represents a new comment on a task
type AddCommentInput struct {
	TaskID  string
	Content string
	Images  []string
}

// Approval is the outcome of approving a comment
type Approval struct {
	Comment *models.TaskComment
	Task    *models.Task
}

// ListComments returns the comments of a task, oldest first
func (s *CommentService) ListComments(viewer models.Viewer, taskID string) ([]models.TaskComment, error) {
	if _, err := loadTask(s.repos, viewer, taskID); err != nil {
		return nil, err
	}

	list, err := s.repos.Comments.ListByTask(taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return list, nil
}

// AddComment leaves a pending comment on a task
func (s *CommentService) AddComment(viewer models.Viewer, input AddCommentInput) (*models.TaskComment, error) {
	task, err := loadTask(s.repos, viewer, input.TaskID)
	if err != nil {
		return nil, err
	}

	comment, err := comments.NewComment(comments.NewCommentInput{
		TaskID:    task.ID,
		ProjectID: task.ProjectID,
		Author:    viewer,
		Content:   input.Content,
		Images:    input.Images,
		Now:       s.now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	if err := s.repos.Comments.Create(&comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	s.logger(viewer, &comment).Info("comment added")
	return &comment, nil
}

// AddReply appends a reply to a comment at any status
func (s *CommentService) AddReply(viewer models.Viewer, commentID, content string) (*models.TaskCommentReply, error) {
	var reply models.TaskCommentReply
	var comment *models.TaskComment
	err := s.repos.Transaction(func(tx *repository.Repositories) error {
		var err error
		comment, err = loadComment(tx, viewer, commentID)
		if err != nil {
			return err
		}

		reply, err = comments.NewReply(comment, viewer, content, s.now().UTC())
		if err != nil {
			return err
		}

		if err := tx.Comments.CreateReply(&reply); err != nil {
			return fmt.Errorf("failed to create reply: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger(viewer, comment).WithField("reply_id", reply.ID).Info("reply added")
	return &reply, nil
}

// Approve approves a pending comment and adds the task it generates to the
// project's board. The status change and the new task commit together, and a
// comment that is no longer pending yields comments.ErrNotPending.
func (s *CommentService) Approve(viewer models.Viewer, commentID string) (*Approval, error) {
	if !viewer.CanModerate() {
		return nil, comments.ErrNotModerator
	}

	var result Approval
	err := s.repos.Transaction(func(tx *repository.Repositories) error {
		comment, err := loadComment(tx, viewer, commentID)
		if err != nil {
			return err
		}

		board, err := loadBoard(tx, viewer, comment.ProjectID, false)
		if err != nil {
			return err
		}

		assignee, err := s.defaultAssignee(tx, viewer)
		if err != nil {
			return err
		}

		task, err := comments.Approve(comment, viewer, comments.ApprovalOptions{
			Now:               s.now(),
			Status:            board.IntakeStatus(),
			DefaultAssigneeID: assignee,
		})
		if err != nil {
			return err
		}

		ok, err := tx.Comments.Transition(comment)
		if err != nil {
			return fmt.Errorf("failed to approve comment: %w", err)
		}
		if !ok {
			return comments.ErrNotPending
		}

		task = board.AppendTask(task)
		if err := tx.Tasks.Create(&task); err != nil {
			return fmt.Errorf("failed to create task from comment: %w", err)
		}

		result = Approval{Comment: comment, Task: &task}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger(viewer, result.Comment).WithFields(logrus.Fields{
		"task_id":  result.Task.ID,
		"status":   result.Task.Status,
		"assignee": result.Task.AssigneeID,
	}).Info("comment approved")

	return &result, nil
}

// Reject rejects a pending comment with a reason
func (s *CommentService) Reject(viewer models.Viewer, commentID, reason string) (*models.TaskComment, error) {
	if !viewer.CanModerate() {
		return nil, comments.ErrNotModerator
	}

	var comment *models.TaskComment
	err := s.repos.Transaction(func(tx *repository.Repositories) error {
		var err error
		comment, err = loadComment(tx, viewer, commentID)
		if err != nil {
			return err
		}

		if err := comments.Reject(comment, viewer, reason); err != nil {
			return err
		}

		ok, err := tx.Comments.Transition(comment)
		if err != nil {
			return fmt.Errorf("failed to reject comment: %w", err)
		}
		if !ok {
			return comments.ErrNotPending
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger(viewer, comment).Info("comment rejected")
	return comment, nil
}

// PendingCount counts comments that still await moderation
func (s *CommentService) PendingCount() (int64, error) {
	count, err := s.repos.Comments.CountPending(nil)
	if err != nil {
		return 0, fmt.Errorf("failed to count pending comments: %w", err)
	}
	return count, nil
}

// defaultAssignee picks the assignee used when the approver is not an
// employee. An empty result leaves the task unassigned.
func (s *CommentService) defaultAssignee(tx *repository.Repositories, viewer models.Viewer) (string, error) {
	if viewer.Role == models.RoleEmployee || s.defaultAssigneeID != "" {
		return s.defaultAssigneeID, nil
	}

	first, err := tx.Employees.First()
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to pick default assignee: %w", err)
	}
	return first.ID, nil
}

func (s *CommentService) logger(viewer models.Viewer, c *models.TaskComment) *logrus.Entry {
	return logging.Logger.WithFields(logrus.Fields{
		"project_id": c.ProjectID,
		"task_id":    c.TaskID,
		"comment_id": c.ID,
		"viewer":     viewer.ID,
	})
}

// loadComment finds a comment whose project the viewer may access
func loadComment(repos *repository.Repositories, viewer models.Viewer, commentID string) (*models.TaskComment, error) {
	comment, err := repos.Comments.FindByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to find comment: %w", err)
	}

	if _, err := loadProject(repos, viewer, comment.ProjectID); err != nil {
		if errors.Is(err, ErrProjectNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return comment, nil
}
