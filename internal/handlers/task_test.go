package handlers

import (
	"net/http"

	"github.com/stretchr/testify/assert"
	"github.com/yukikurage/procms-api/internal/dto"
	apierrors "github.com/yukikurage/procms-api/internal/errors"
)

func (suite *HandlerTestSuite) TestGetProject_Board() {
	cookies := suite.login("client", "client-1")

	w := suite.do(http.MethodGet, "/api/projects/proj-1", nil, cookies)
	suite.Require().Equal(http.StatusOK, w.Code)

	var board dto.BoardDTO
	suite.decode(w, &board)
	assert.Equal(suite.T(), "proj-1", board.ID)
	suite.Require().Len(board.Columns, 5)
	assert.Equal(suite.T(), "backlog", board.Columns[0].ID)
	assert.Len(suite.T(), board.Tasks, 6)

	for _, t := range board.Tasks {
		if t.ID == "task-3" {
			assert.EqualValues(suite.T(), 1, t.CommentCount)
			assert.EqualValues(suite.T(), 1, t.PendingCommentCount)
		}
	}
}

func (suite *HandlerTestSuite) TestGetProject_OutOfScope() {
	cookies := suite.login("client", "client-2")

	w := suite.do(http.MethodGet, "/api/projects/proj-1", nil, cookies)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)

	w = suite.do(http.MethodGet, "/api/tasks/task-1", nil, cookies)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestListProjects_Filters() {
	cookies := suite.login("admin", "")

	w := suite.do(http.MethodGet, "/api/projects?status=on-hold", nil, cookies)
	suite.Require().Equal(http.StatusOK, w.Code)

	var resp dto.ProjectListResponse
	suite.decode(w, &resp)
	suite.Require().Len(resp.Projects, 1)
	assert.Equal(suite.T(), "proj-4", resp.Projects[0].ID)
	assert.EqualValues(suite.T(), 1, resp.Pagination.Total)

	w = suite.do(http.MethodGet, "/api/projects?status=archived", nil, cookies)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	w = suite.do(http.MethodGet, "/api/projects?q=dashboard&limit=1", nil, cookies)
	suite.Require().Equal(http.StatusOK, w.Code)
	resp = dto.ProjectListResponse{}
	suite.decode(w, &resp)
	suite.Require().Len(resp.Projects, 1)
	assert.Equal(suite.T(), "proj-3", resp.Projects[0].ID)
	assert.Equal(suite.T(), 1, resp.Pagination.Limit)
}

func (suite *HandlerTestSuite) TestCreateProject_AdminOnly() {
	body := map[string]interface{}{"name": "Website Refresh", "client_ids": []string{"client-2"}}

	w := suite.do(http.MethodPost, "/api/projects", body, suite.login("employee", "emp-1"))
	assert.Equal(suite.T(), http.StatusForbidden, w.Code)

	w = suite.do(http.MethodPost, "/api/projects", body, suite.login("admin", ""))
	suite.Require().Equal(http.StatusCreated, w.Code)

	var board dto.BoardDTO
	suite.decode(w, &board)
	assert.Equal(suite.T(), "Website Refresh", board.Name)
	assert.Len(suite.T(), board.Columns, 5)
	assert.Empty(suite.T(), board.Tasks)
}

func (suite *HandlerTestSuite) TestMoveTask() {
	cookies := suite.login("admin", "")

	w := suite.do(http.MethodPost, "/api/tasks/task-1/move", map[string]string{"column_id": "backlog"}, cookies)
	suite.Require().Equal(http.StatusOK, w.Code)

	var task dto.TaskDTO
	suite.decode(w, &task)
	assert.Equal(suite.T(), "backlog", task.Status)

	w = suite.do(http.MethodPost, "/api/tasks/task-1/move", map[string]string{"column_id": "nope"}, cookies)
	suite.Require().Equal(http.StatusBadRequest, w.Code)

	var apiErr apierrors.APIError
	suite.decode(w, &apiErr)
	assert.Equal(suite.T(), apierrors.ErrCodeInvalidInput, apiErr.Code)

	w = suite.do(http.MethodGet, "/api/tasks/task-1", nil, cookies)
	suite.Require().Equal(http.StatusOK, w.Code)
	task = dto.TaskDTO{}
	suite.decode(w, &task)
	assert.Equal(suite.T(), "backlog", task.Status)
}

func (suite *HandlerTestSuite) TestBoardMutations_ClientForbidden() {
	cookies := suite.login("client", "client-1")

	tests := []struct {
		method string
		url    string
		body   interface{}
	}{
		{http.MethodPost, "/api/projects/proj-1/columns", map[string]string{"title": "QA"}},
		{http.MethodDelete, "/api/projects/proj-1/columns/backlog", nil},
		{http.MethodPost, "/api/projects/proj-1/tasks", map[string]string{"title": "x"}},
		{http.MethodPost, "/api/projects/proj-1/drags", map[string]string{"task_id": "task-1"}},
		{http.MethodPost, "/api/tasks/task-1/move", map[string]string{"column_id": "todo"}},
		{http.MethodDelete, "/api/tasks/task-1", nil},
		{http.MethodPost, "/api/comments/comment-1/approve", nil},
		{http.MethodPost, "/api/comments/comment-1/reject", map[string]string{"reason": "no"}},
	}

	for _, tt := range tests {
		suite.Run(tt.method+" "+tt.url, func() {
			w := suite.do(tt.method, tt.url, tt.body, cookies)
			assert.Equal(suite.T(), http.StatusForbidden, w.Code)
		})
	}
}

func (suite *HandlerTestSuite) TestBoardStructure_EmployeeForbidden() {
	cookies := suite.login("employee", "emp-1")

	tests := []struct {
		method string
		url    string
		body   interface{}
	}{
		{http.MethodPost, "/api/projects/proj-1/columns", map[string]string{"title": "QA"}},
		{http.MethodDelete, "/api/projects/proj-1/columns/backlog", nil},
		{http.MethodPost, "/api/projects/proj-1/tasks", map[string]string{"title": "x"}},
		{http.MethodDelete, "/api/tasks/task-3", nil},
	}

	for _, tt := range tests {
		suite.Run(tt.method+" "+tt.url, func() {
			w := suite.do(tt.method, tt.url, tt.body, cookies)
			assert.Equal(suite.T(), http.StatusForbidden, w.Code)
		})
	}

	w := suite.do(http.MethodPost, "/api/tasks/task-3/move", map[string]string{"column_id": "review"}, cookies)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
}

func (suite *HandlerTestSuite) TestColumns() {
	cookies := suite.login("admin", "")

	w := suite.do(http.MethodPost, "/api/projects/proj-1/columns", map[string]string{"title": "QA"}, cookies)
	suite.Require().Equal(http.StatusCreated, w.Code)

	var col dto.ColumnDTO
	suite.decode(w, &col)
	assert.Equal(suite.T(), "QA", col.Title)
	assert.Equal(suite.T(), 5, col.Order)
	assert.Equal(suite.T(), "#6B7280", col.Color)

	w = suite.do(http.MethodDelete, "/api/projects/proj-1/columns/backlog", nil, cookies)
	suite.Require().Equal(http.StatusOK, w.Code)

	var deletion dto.ColumnDeletionDTO
	suite.decode(w, &deletion)
	assert.Equal(suite.T(), "todo", deletion.ReassignedTo)
	assert.ElementsMatch(suite.T(), []string{"task-4", "task-5"}, deletion.ReassignedTaskIDs)
	assert.Len(suite.T(), deletion.Columns, 5)

	w = suite.do(http.MethodDelete, "/api/projects/proj-1/columns/backlog", nil, cookies)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestDeleteLastColumn_Conflict() {
	cookies := suite.login("admin", "")

	for _, id := range []string{"backlog", "todo", "in-progress", "review"} {
		w := suite.do(http.MethodDelete, "/api/projects/proj-2/columns/"+id, nil, cookies)
		suite.Require().Equal(http.StatusOK, w.Code, id)
	}

	w := suite.do(http.MethodDelete, "/api/projects/proj-2/columns/done", nil, cookies)
	suite.Require().Equal(http.StatusConflict, w.Code)

	var apiErr apierrors.APIError
	suite.decode(w, &apiErr)
	assert.Equal(suite.T(), apierrors.ErrCodeConflict, apiErr.Code)
}

func (suite *HandlerTestSuite) TestAddTask() {
	cookies := suite.login("admin", "")

	w := suite.do(http.MethodPost, "/api/projects/proj-1/tasks", map[string]interface{}{
		"title":    "Accessibility audit",
		"priority": "high",
		"tags":     []string{"qa"},
	}, cookies)
	suite.Require().Equal(http.StatusCreated, w.Code)

	var task dto.TaskDTO
	suite.decode(w, &task)
	assert.Equal(suite.T(), "backlog", task.Status)
	assert.Equal(suite.T(), "proj-1", task.ProjectID)

	w = suite.do(http.MethodPost, "/api/projects/proj-1/tasks", map[string]string{"description": "no title"}, cookies)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	w = suite.do(http.MethodPost, "/api/projects/proj-99/tasks", map[string]string{"title": "x"}, cookies)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestListTasks() {
	cookies := suite.login("client", "client-1")

	w := suite.do(http.MethodGet, "/api/tasks?priority=high", nil, cookies)
	suite.Require().Equal(http.StatusOK, w.Code)

	var resp dto.TaskListResponse
	suite.decode(w, &resp)
	for _, t := range resp.Tasks {
		assert.Equal(suite.T(), "high", string(t.Priority))
		assert.Contains(suite.T(), []string{"proj-1", "proj-4"}, t.ProjectID)
	}
	assert.EqualValues(suite.T(), len(resp.Tasks), resp.Pagination.Total)

	w = suite.do(http.MethodGet, "/api/tasks?priority=critical", nil, cookies)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestDeleteTask() {
	cookies := suite.login("admin", "")

	w := suite.do(http.MethodDelete, "/api/tasks/task-3", nil, cookies)
	suite.Require().Equal(http.StatusOK, w.Code)

	w = suite.do(http.MethodGet, "/api/tasks/task-3/comments", nil, cookies)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestDrag() {
	alex := suite.login("employee", "emp-1")

	w := suite.do(http.MethodPost, "/api/projects/proj-1/drags", map[string]string{"task_id": "task-3"}, alex)
	suite.Require().Equal(http.StatusCreated, w.Code)

	var drag dto.DragDTO
	suite.decode(w, &drag)
	suite.Require().NotEmpty(drag.ID)

	sarah := suite.login("employee", "emp-2")
	w = suite.do(http.MethodPost, "/api/drags/"+drag.ID+"/drop", map[string]string{"column_id": "done"}, sarah)
	assert.Equal(suite.T(), http.StatusForbidden, w.Code)

	w = suite.do(http.MethodPost, "/api/drags/"+drag.ID+"/drop", map[string]string{"column_id": "review"}, alex)
	suite.Require().Equal(http.StatusOK, w.Code)

	var task dto.TaskDTO
	suite.decode(w, &task)
	assert.Equal(suite.T(), "review", task.Status)

	w = suite.do(http.MethodPost, "/api/drags/"+drag.ID+"/drop", map[string]string{"column_id": "done"}, alex)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestDrag_Cancel() {
	cookies := suite.login("admin", "")

	w := suite.do(http.MethodPost, "/api/projects/proj-1/drags", map[string]string{"task_id": "task-3"}, cookies)
	suite.Require().Equal(http.StatusCreated, w.Code)

	var drag dto.DragDTO
	suite.decode(w, &drag)

	w = suite.do(http.MethodDelete, "/api/drags/"+drag.ID, nil, cookies)
	suite.Require().Equal(http.StatusOK, w.Code)

	w = suite.do(http.MethodPost, "/api/drags/"+drag.ID+"/drop", map[string]string{"column_id": "done"}, cookies)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)

	w = suite.do(http.MethodGet, "/api/tasks/task-3", nil, cookies)
	var task dto.TaskDTO
	suite.decode(w, &task)
	assert.Equal(suite.T(), "todo", task.Status)
}

func (suite *HandlerTestSuite) TestSuggestTasks_NotConfigured() {
	cookies := suite.login("admin", "")

	w := suite.do(http.MethodPost, "/api/projects/proj-1/tasks/suggest", map[string]string{"text": "ship it"}, cookies)
	assert.Equal(suite.T(), http.StatusServiceUnavailable, w.Code)
}
