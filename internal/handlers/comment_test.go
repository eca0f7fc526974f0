package handlers

import (
	"net/http"
	"strings"

	"github.com/stretchr/testify/assert"
	"github.com/yukikurage/procms-api/internal/dto"
	"github.com/yukikurage/procms-api/internal/models"
)

func (suite *HandlerTestSuite) TestApprove_OnceOnly() {
	client := suite.login("client", "client-1")
	admin := suite.login("admin", "")

	w := suite.do(http.MethodPost, "/api/tasks/task-3/comments", map[string]string{"content": "Add dark mode"}, client)
	suite.Require().Equal(http.StatusCreated, w.Code)

	var comment dto.CommentDTO
	suite.decode(w, &comment)
	assert.Equal(suite.T(), models.CommentStatusPending, comment.Status)
	assert.Equal(suite.T(), "James Mitchell", comment.Author.Name)
	assert.Empty(suite.T(), comment.Replies)

	w = suite.do(http.MethodPost, "/api/comments/"+comment.ID+"/approve", nil, client)
	suite.Require().Equal(http.StatusForbidden, w.Code)

	w = suite.do(http.MethodPost, "/api/comments/"+comment.ID+"/approve", nil, admin)
	suite.Require().Equal(http.StatusOK, w.Code)

	var approval dto.ApprovalDTO
	suite.decode(w, &approval)
	assert.Equal(suite.T(), models.CommentStatusApproved, approval.Comment.Status)
	assert.True(suite.T(), strings.HasPrefix(approval.Task.Title, "[Client Request] Add dark mode"))
	assert.Equal(suite.T(), "todo", approval.Task.Status)
	assert.Equal(suite.T(), models.PriorityMedium, approval.Task.Priority)
	assert.Equal(suite.T(), []string{"client-request"}, approval.Task.Tags)

	w = suite.do(http.MethodPost, "/api/comments/"+comment.ID+"/approve", nil, admin)
	suite.Require().Equal(http.StatusConflict, w.Code)

	w = suite.do(http.MethodGet, "/api/projects/proj-1", nil, admin)
	suite.Require().Equal(http.StatusOK, w.Code)
	var board dto.BoardDTO
	suite.decode(w, &board)
	assert.Len(suite.T(), board.Tasks, 7)
}

func (suite *HandlerTestSuite) TestReject() {
	cookies := suite.login("employee", "emp-1")

	w := suite.do(http.MethodPost, "/api/comments/comment-1/reject", map[string]string{"reason": " "}, cookies)
	suite.Require().Equal(http.StatusBadRequest, w.Code)

	w = suite.do(http.MethodPost, "/api/comments/comment-1/reject", map[string]string{"reason": "Out of scope"}, cookies)
	suite.Require().Equal(http.StatusOK, w.Code)

	var comment dto.CommentDTO
	suite.decode(w, &comment)
	assert.Equal(suite.T(), models.CommentStatusRejected, comment.Status)
	assert.Equal(suite.T(), "Out of scope", comment.RejectionReason)

	w = suite.do(http.MethodPost, "/api/comments/comment-1/approve", nil, cookies)
	assert.Equal(suite.T(), http.StatusConflict, w.Code)
}

func (suite *HandlerTestSuite) TestComments_ListAndReply() {
	cookies := suite.login("client", "client-1")

	w := suite.do(http.MethodPost, "/api/tasks/task-3/comments", map[string]string{"content": "  "}, cookies)
	suite.Require().Equal(http.StatusBadRequest, w.Code)

	w = suite.do(http.MethodPost, "/api/comments/comment-1/replies", map[string]string{"content": "Thanks"}, cookies)
	suite.Require().Equal(http.StatusCreated, w.Code)

	var reply dto.ReplyDTO
	suite.decode(w, &reply)
	assert.Equal(suite.T(), models.RoleClient, reply.Author.Type)

	w = suite.do(http.MethodGet, "/api/tasks/task-3/comments", nil, cookies)
	suite.Require().Equal(http.StatusOK, w.Code)

	var resp struct {
		Comments []dto.CommentDTO `json:"comments"`
	}
	suite.decode(w, &resp)
	suite.Require().Len(resp.Comments, 1)
	suite.Require().Len(resp.Comments[0].Replies, 2)
	assert.Equal(suite.T(), "reply-1", resp.Comments[0].Replies[0].ID)

	other := suite.login("client", "client-2")
	w = suite.do(http.MethodPost, "/api/comments/comment-1/replies", map[string]string{"content": "Hi"}, other)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}
