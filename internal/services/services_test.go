package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/procms-api/internal/comments"
	"github.com/yukikurage/procms-api/internal/database"
	"github.com/yukikurage/procms-api/internal/kanban"
	"github.com/yukikurage/procms-api/internal/models"
	"github.com/yukikurage/procms-api/internal/repository"
	"gorm.io/gorm"
)

var (
	admin    = models.Viewer{Role: models.RoleAdmin, ID: "admin", Name: "Administrator"}
	alex     = models.Viewer{Role: models.RoleEmployee, ID: "emp-1", Name: "Alex Rivera"}
	sarah    = models.Viewer{Role: models.RoleEmployee, ID: "emp-2", Name: "Sarah Chen"}
	james    = models.Viewer{Role: models.RoleClient, ID: "client-1", Name: "James Mitchell"}
	olivia   = models.Viewer{Role: models.RoleClient, ID: "client-2", Name: "Olivia Grant"}
	fixedNow = time.Date(2025, 2, 20, 15, 30, 0, 0, time.UTC)
)

// ServiceTestSuite runs the services against a seeded SQLite store
type ServiceTestSuite struct {
	suite.Suite
	db       *gorm.DB
	repos    *repository.Repositories
	projects *ProjectService
	board    *BoardService
	comments *CommentService
	drags    *kanban.Registry
}

// SetupTest runs before each test
func (suite *ServiceTestSuite) SetupTest() {
	var err error

	suite.db, err = database.OpenSQLite(":memory:")
	suite.Require().NoError(err)
	suite.Require().NoError(database.Migrate(suite.db))
	suite.Require().NoError(database.Seed(suite.db))

	suite.repos = repository.New(suite.db)
	suite.drags = kanban.NewRegistry(time.Minute)
	suite.projects = NewProjectService(suite.repos)
	suite.board = NewBoardService(suite.repos, suite.drags, nil)
	suite.board.now = func() time.Time { return fixedNow }
	suite.comments = NewCommentService(suite.repos, "")
	suite.comments.now = func() time.Time { return fixedNow }
}

// TearDownTest runs after each test
func (suite *ServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *ServiceTestSuite) addComment(viewer models.Viewer, taskID, content string) *models.TaskComment {
	c, err := suite.comments.AddComment(viewer, AddCommentInput{TaskID: taskID, Content: content})
	suite.Require().NoError(err)
	return c
}

func (suite *ServiceTestSuite) countTasks(projectID string) int64 {
	var n int64
	suite.db.Model(&models.Task{}).Where("project_id = ?", projectID).Count(&n)
	return n
}

func (suite *ServiceTestSuite) TestApprove_CreatesExactlyOneTask() {
	c := suite.addComment(james, "task-3", "Add dark mode")
	before := suite.countTasks("proj-1")

	approval, err := suite.comments.Approve(admin, c.ID)
	suite.Require().NoError(err)

	task := approval.Task
	suite.Equal("[Client Request] Add dark mode...", task.Title)
	suite.Equal("todo", task.Status)
	suite.Equal(models.PriorityMedium, task.Priority)
	suite.Equal("emp-1", task.AssigneeID, "first employee by id")
	suite.Equal("2025-03-06", task.DueDate)
	suite.Equal([]string{"client-request"}, task.Tags)
	suite.Equal(before+1, suite.countTasks("proj-1"))

	_, err = suite.comments.Approve(admin, c.ID)
	suite.ErrorIs(err, comments.ErrNotPending)
	_, err = suite.comments.Reject(admin, c.ID, "too late")
	suite.ErrorIs(err, comments.ErrNotPending)
	suite.Equal(before+1, suite.countTasks("proj-1"))

	stored, err := suite.repos.Comments.FindByID(c.ID)
	suite.Require().NoError(err)
	suite.Equal(models.CommentStatusApproved, stored.Status)
}

func (suite *ServiceTestSuite) TestApprove_EmployeeAssignsThemselves() {
	approval, err := suite.comments.Approve(alex, "comment-1")
	suite.Require().NoError(err)
	suite.Equal("emp-1", approval.Task.AssigneeID)
}

func (suite *ServiceTestSuite) TestApprove_ConfiguredDefaultAssignee() {
	suite.comments.defaultAssigneeID = "emp-4"
	approval, err := suite.comments.Approve(admin, "comment-1")
	suite.Require().NoError(err)
	suite.Equal("emp-4", approval.Task.AssigneeID)
}

func (suite *ServiceTestSuite) TestApprove_FallsBackToFirstColumn() {
	_, err := suite.board.DeleteColumn(admin, "proj-1", "todo")
	suite.Require().NoError(err)

	approval, err := suite.comments.Approve(admin, "comment-1")
	suite.Require().NoError(err)
	suite.Equal("backlog", approval.Task.Status)
}

func (suite *ServiceTestSuite) TestModeration_ClientForbidden() {
	_, err := suite.comments.Approve(james, "comment-1")
	suite.ErrorIs(err, comments.ErrNotModerator)

	_, err = suite.comments.Reject(james, "comment-1", "no")
	suite.ErrorIs(err, comments.ErrNotModerator)

	stored, err := suite.repos.Comments.FindByID("comment-1")
	suite.Require().NoError(err)
	suite.True(stored.IsPending())
}

func (suite *ServiceTestSuite) TestReject() {
	_, err := suite.comments.Reject(alex, "comment-1", "  ")
	suite.ErrorIs(err, comments.ErrReasonRequired)

	rejected, err := suite.comments.Reject(alex, "comment-1", "Out of scope")
	suite.Require().NoError(err)
	suite.Equal(models.CommentStatusRejected, rejected.Status)

	stored, err := suite.repos.Comments.FindByID("comment-1")
	suite.Require().NoError(err)
	suite.Equal("Out of scope", stored.RejectionReason)
}

func (suite *ServiceTestSuite) TestComments_Scoping() {
	// Olivia is not a client of proj-1.
	_, err := suite.comments.AddComment(olivia, AddCommentInput{TaskID: "task-3", Content: "hi"})
	suite.ErrorIs(err, ErrTaskNotFound)

	_, err = suite.comments.AddReply(olivia, "comment-1", "hi")
	suite.ErrorIs(err, ErrCommentNotFound)

	_, err = suite.comments.AddComment(james, AddCommentInput{TaskID: "task-3", Content: "   "})
	suite.ErrorIs(err, comments.ErrEmptyComment)

	reply, err := suite.comments.AddReply(james, "comment-2", "Thanks!")
	suite.Require().NoError(err)
	suite.Equal("comment-2", reply.CommentID)

	list, err := suite.comments.ListComments(james, "task-1")
	suite.Require().NoError(err)
	suite.Require().Len(list, 1)
	suite.Len(list[0].Replies, 1)
}

func (suite *ServiceTestSuite) TestProjects_RoleScope() {
	all, total, err := suite.projects.ListProjects(admin, ListProjectsInput{})
	suite.Require().NoError(err)
	suite.EqualValues(5, total)
	suite.Len(all, 5)

	mine, _, err := suite.projects.ListProjects(james, ListProjectsInput{})
	suite.Require().NoError(err)
	suite.Len(mine, 2)

	none, _, err := suite.projects.ListProjects(james, ListProjectsInput{ClientID: "client-2"})
	suite.Require().NoError(err)
	suite.Empty(none)

	assigned, _, err := suite.projects.ListProjects(sarah, ListProjectsInput{})
	suite.Require().NoError(err)
	suite.Len(assigned, 2)

	_, err = suite.projects.GetProject(olivia, "proj-1")
	suite.ErrorIs(err, ErrProjectNotFound)
}

func (suite *ServiceTestSuite) TestGetBoard() {
	view, err := suite.projects.GetBoard(james, "proj-1")
	suite.Require().NoError(err)

	suite.Len(view.Columns, 5)
	suite.Len(view.Tasks, 6)
	suite.Equal(repository.CommentCounts{Total: 1, Pending: 1}, view.CommentCounts["task-3"])
}

func (suite *ServiceTestSuite) TestCreateProject() {
	_, err := suite.projects.CreateProject(alex, CreateProjectInput{Name: "X"})
	suite.ErrorIs(err, ErrAdminOnly)

	_, err = suite.projects.CreateProject(admin, CreateProjectInput{Name: "X", ClientIDs: []string{"client-99"}})
	suite.ErrorIs(err, ErrClientNotFound)

	_, err = suite.projects.CreateProject(admin, CreateProjectInput{Name: "X", DueDate: "03/01/2025"})
	suite.ErrorIs(err, ErrInvalidDate)

	project, err := suite.projects.CreateProject(admin, CreateProjectInput{
		Name:      " Website Refresh ",
		ClientIDs: []string{"client-2", "client-2"},
	})
	suite.Require().NoError(err)
	suite.Equal("Website Refresh", project.Name)
	suite.Equal([]string{"client-2"}, project.ClientIDs)
	suite.Equal(models.ProjectStatusActive, project.Status)

	cols, err := suite.repos.Projects.ListColumns(project.ID)
	suite.Require().NoError(err)
	suite.Len(cols, 5)

	_, err = suite.projects.GetProject(olivia, project.ID)
	suite.NoError(err)
}

func (suite *ServiceTestSuite) TestDeleteColumn_ReassignsTasks() {
	result, err := suite.board.DeleteColumn(admin, "proj-1", "backlog")
	suite.Require().NoError(err)

	suite.Equal("todo", result.Reassignment.Status)
	suite.ElementsMatch([]string{"task-4", "task-5"}, result.Reassignment.TaskIDs)

	for _, id := range []string{"task-4", "task-5"} {
		task, err := suite.repos.Tasks.FindByID(id)
		suite.Require().NoError(err)
		suite.Equal("todo", task.Status)
	}

	cols, err := suite.repos.Projects.ListColumns("proj-1")
	suite.Require().NoError(err)
	suite.Len(cols, 4)
	for i, c := range cols {
		suite.Equal(i, c.Order)
	}
}

func (suite *ServiceTestSuite) TestDeleteColumn_LastColumn() {
	for _, id := range []string{"backlog", "todo", "in-progress", "review"} {
		_, err := suite.board.DeleteColumn(admin, "proj-2", id)
		suite.Require().NoError(err)
	}

	_, err := suite.board.DeleteColumn(admin, "proj-2", "done")
	suite.ErrorIs(err, kanban.ErrLastColumn)

	tasks, err := suite.repos.Tasks.ListByProject("proj-2")
	suite.Require().NoError(err)
	for _, task := range tasks {
		suite.Equal("done", task.Status)
	}
}

func (suite *ServiceTestSuite) TestBoardMutations_ClientForbidden() {
	_, err := suite.board.AddColumn(james, "proj-1", "QA", "")
	suite.ErrorIs(err, ErrAdminOnly)

	_, err = suite.board.MoveTask(james, "task-1", "todo")
	suite.ErrorIs(err, ErrNotModerator)

	suite.ErrorIs(suite.board.DeleteTask(james, "task-1"), ErrAdminOnly)

	_, err = suite.board.StartDrag(james, "proj-1", "task-1")
	suite.ErrorIs(err, ErrNotModerator)
}

func (suite *ServiceTestSuite) TestBoardStructure_AdminOnly() {
	_, err := suite.board.AddColumn(alex, "proj-1", "QA", "")
	suite.ErrorIs(err, ErrAdminOnly)

	_, err = suite.board.DeleteColumn(alex, "proj-1", "backlog")
	suite.ErrorIs(err, ErrAdminOnly)

	_, err = suite.board.AddTask(alex, "proj-1", CreateTaskInput{Title: "x"})
	suite.ErrorIs(err, ErrAdminOnly)

	suite.ErrorIs(suite.board.DeleteTask(alex, "task-3"), ErrAdminOnly)

	// Employees still move their project's tasks.
	moved, err := suite.board.MoveTask(alex, "task-3", "in-progress")
	suite.Require().NoError(err)
	suite.Equal("in-progress", moved.Status)
	suite.Equal(int64(6), suite.countTasks("proj-1"))
}

func (suite *ServiceTestSuite) TestMoveTask() {
	moved, err := suite.board.MoveTask(admin, "task-1", "backlog")
	suite.Require().NoError(err)
	suite.Equal("backlog", moved.Status)

	_, err = suite.board.MoveTask(admin, "task-1", "archive")
	suite.ErrorIs(err, kanban.ErrColumnNotFound)

	task, err := suite.repos.Tasks.FindByID("task-1")
	suite.Require().NoError(err)
	suite.Equal("backlog", task.Status)

	other, err := suite.repos.Tasks.FindByID("task-2")
	suite.Require().NoError(err)
	suite.Equal("in-progress", other.Status)
}

func (suite *ServiceTestSuite) TestAddTask() {
	task, err := suite.board.AddTask(admin, "proj-1", CreateTaskInput{
		ColumnID: "review",
		Title:    "Accessibility audit",
		Tags:     []string{"qa", "qa", " "},
	})
	suite.Require().NoError(err)
	suite.Equal("review", task.Status)
	suite.Equal(models.PriorityMedium, task.Priority)
	suite.Equal("2025-02-20", task.CreatedOn)
	suite.Equal([]string{"qa"}, task.Tags)

	_, err = suite.board.AddTask(admin, "proj-1", CreateTaskInput{Title: "x", ColumnID: "nope"})
	suite.ErrorIs(err, kanban.ErrColumnNotFound)

	_, err = suite.board.AddTask(admin, "proj-1", CreateTaskInput{Title: "x", Priority: "critical"})
	suite.ErrorIs(err, ErrInvalidPriority)

	_, err = suite.board.AddTask(admin, "proj-1", CreateTaskInput{Title: "x", AssigneeID: "emp-99"})
	suite.ErrorIs(err, ErrEmployeeNotFound)

	_, err = suite.board.AddTask(admin, "proj-99", CreateTaskInput{Title: "x"})
	suite.ErrorIs(err, ErrProjectNotFound)
}

func (suite *ServiceTestSuite) TestAddTask_AppendsInInsertionOrder() {
	var added []string
	for _, title := range []string{"t0", "t1", "t2", "t3", "t4", "t5", "t6", "t7"} {
		task, err := suite.board.AddTask(admin, "proj-1", CreateTaskInput{ColumnID: "review", Title: title})
		suite.Require().NoError(err)
		added = append(added, task.ID)
	}

	view, err := suite.projects.GetBoard(admin, "proj-1")
	suite.Require().NoError(err)

	var review []string
	for _, t := range view.Tasks {
		if t.Status == "review" {
			review = append(review, t.ID)
		}
	}
	suite.Equal(append([]string{"task-6"}, added...), review)

	c := suite.addComment(james, "task-3", "Add dark mode")
	approval, err := suite.comments.Approve(admin, c.ID)
	suite.Require().NoError(err)

	tasks, err := suite.repos.Tasks.ListByProject("proj-1")
	suite.Require().NoError(err)
	suite.Equal(approval.Task.ID, tasks[len(tasks)-1].ID)
}

func (suite *ServiceTestSuite) TestDeleteTask_CascadesComments() {
	suite.Require().NoError(suite.board.DeleteTask(admin, "task-3"))

	_, err := suite.repos.Comments.FindByID("comment-1")
	suite.ErrorIs(err, gorm.ErrRecordNotFound)

	suite.ErrorIs(suite.board.DeleteTask(admin, "task-3"), ErrTaskNotFound)
}

func (suite *ServiceTestSuite) TestDrag_DropsOnce() {
	drag, err := suite.board.StartDrag(alex, "proj-1", "task-3")
	suite.Require().NoError(err)

	_, err = suite.board.Drop(sarah, drag.ID, "done")
	suite.ErrorIs(err, ErrNotDragOwner)

	moved, err := suite.board.Drop(alex, drag.ID, "review")
	suite.Require().NoError(err)
	suite.Equal("review", moved.Status)

	_, err = suite.board.Drop(alex, drag.ID, "done")
	suite.ErrorIs(err, kanban.ErrDragNotFound)

	task, err := suite.repos.Tasks.FindByID("task-3")
	suite.Require().NoError(err)
	suite.Equal("review", task.Status)
}

func (suite *ServiceTestSuite) TestDrag_CancelledNeverMoves() {
	drag, err := suite.board.StartDrag(admin, "proj-1", "task-3")
	suite.Require().NoError(err)
	suite.Require().NoError(suite.board.CancelDrag(admin, drag.ID))

	_, err = suite.board.Drop(admin, drag.ID, "done")
	suite.ErrorIs(err, kanban.ErrDragNotFound)

	task, err := suite.repos.Tasks.FindByID("task-3")
	suite.Require().NoError(err)
	suite.Equal("todo", task.Status)
}

func (suite *ServiceTestSuite) TestDrag_DropOutsideColumnsEndsGesture() {
	drag, err := suite.board.StartDrag(admin, "proj-1", "task-3")
	suite.Require().NoError(err)

	_, err = suite.board.Drop(admin, drag.ID, "nowhere")
	suite.ErrorIs(err, kanban.ErrColumnNotFound)
	suite.Zero(suite.drags.Len())
}

func (suite *ServiceTestSuite) TestListTasks_Scoped() {
	tasks, total, err := suite.board.ListTasks(james, ListTasksInput{})
	suite.Require().NoError(err)
	suite.EqualValues(8, total)
	for _, task := range tasks {
		suite.Contains([]string{"proj-1", "proj-4"}, task.ProjectID)
	}

	_, _, err = suite.board.ListTasks(olivia, ListTasksInput{ProjectID: "proj-1"})
	suite.ErrorIs(err, ErrProjectNotFound)
}

// TestServiceTestSuite runs the test suite
func (suite *ServiceTestSuite) TestDashboard() {
	dashboard := NewDashboardService(suite.repos)

	stats, err := dashboard.Stats(admin)
	suite.Require().NoError(err)
	suite.Equal(ProjectStats{Total: 5, Active: 4}, stats.Projects)
	suite.EqualValues(17, stats.Tasks.Total)
	suite.EqualValues(1, stats.PendingComments)
	suite.Require().NotNil(stats.Directory)
	suite.Equal(DirectoryStats{Clients: 5, ActiveClients: 4, Employees: 6}, *stats.Directory)
	suite.Require().NotNil(stats.Billing)
	suite.Equal(SubscriptionSummary{TotalPaid: 100500, TotalOutstanding: 73500, ActiveCount: 3}, *stats.Billing)

	stats, err = dashboard.Stats(alex)
	suite.Require().NoError(err)
	suite.Equal(ProjectStats{Total: 4, Active: 3}, stats.Projects)
	suite.Equal(TaskStats{Total: 4, ByStatus: map[string]int64{"backlog": 1, "todo": 2, "in-progress": 1}}, stats.Tasks)
	suite.Nil(stats.Directory)
	suite.Nil(stats.Billing)

	stats, err = dashboard.Stats(james)
	suite.Require().NoError(err)
	suite.Equal(ProjectStats{Total: 2, Active: 1}, stats.Projects)
	suite.EqualValues(8, stats.Tasks.Total)
	suite.EqualValues(2, stats.Tasks.ByStatus["done"])
	suite.EqualValues(1, stats.PendingComments)
	suite.Nil(stats.Directory)
	suite.Require().NotNil(stats.Billing)
	suite.Equal(2, stats.Billing.ActiveCount)

	stats, err = dashboard.Stats(olivia)
	suite.Require().NoError(err)
	suite.EqualValues(0, stats.PendingComments)
}

func (suite *ServiceTestSuite) TestDirectory_Create() {
	directory := NewDirectoryService(suite.repos)
	directory.now = func() time.Time { return fixedNow }

	client, err := directory.CreateClient(admin, CreateClientInput{
		Name:    " Nora Diaz ",
		Company: "Skyline Labs",
		Email:   "nora@skyline.io",
	})
	suite.Require().NoError(err)
	suite.Contains(client.ID, "client-")
	suite.Equal("Nora Diaz", client.Name)
	suite.Equal(models.ClientStatusActive, client.Status)
	suite.Equal("2025-02-20", client.CreatedOn)

	stored, err := directory.GetClient(admin, client.ID)
	suite.Require().NoError(err)
	suite.Equal("Skyline Labs", stored.Company)

	_, err = directory.CreateClient(admin, CreateClientInput{Name: "x", Company: " ", Email: "x@y.z"})
	suite.ErrorIs(err, ErrClientFieldsRequired)

	_, err = directory.CreateClient(alex, CreateClientInput{Name: "x", Company: "y", Email: "x@y.z"})
	suite.ErrorIs(err, ErrAdminOnly)

	employee, err := directory.CreateEmployee(admin, CreateEmployeeInput{
		Name:       "Priya Shah",
		Email:      "priya@procms.com",
		Role:       "DevOps Engineer",
		Department: "Engineering",
	})
	suite.Require().NoError(err)
	suite.Contains(employee.ID, "emp-")
	suite.Equal(models.EmployeeStatusAvailable, employee.Status)

	_, total, err := directory.ListEmployees(admin, DirectoryInput{Department: "Engineering"})
	suite.Require().NoError(err)
	suite.EqualValues(4, total)

	_, err = directory.CreateEmployee(admin, CreateEmployeeInput{Name: "x", Email: "x@y.z"})
	suite.ErrorIs(err, ErrEmployeeFieldsRequired)

	_, err = directory.CreateEmployee(james, CreateEmployeeInput{Name: "x", Email: "x@y.z", Role: "r"})
	suite.ErrorIs(err, ErrAdminOnly)
}

func TestServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}

func TestViewerService_Resolve(t *testing.T) {
	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	require.NoError(t, database.Seed(db))

	s := NewViewerService(repository.New(db), "admin", "Administrator")

	v, err := s.Resolve(models.RoleEmployee, "emp-2")
	require.NoError(t, err)
	assert.Equal(t, "Sarah Chen", v.Name)

	v, err = s.Resolve(models.RoleAdmin, "")
	require.NoError(t, err)
	assert.Equal(t, "admin", v.ID)

	_, err = s.Resolve(models.RoleClient, "emp-2")
	assert.ErrorIs(t, err, ErrViewerNotFound)

	_, err = s.Resolve("guest", "x")
	assert.ErrorIs(t, err, ErrInvalidViewerType)
}

func TestSubscriptions(t *testing.T) {
	sub := models.Subscription{TotalValue: 75000, AmountPaid: 37500, Status: models.SubscriptionActive}
	assert.Equal(t, 50, PaidPercent(sub))
	assert.Equal(t, 0, PaidPercent(models.Subscription{}))
	assert.Equal(t, 33, PaidPercent(models.Subscription{TotalValue: 3, AmountPaid: 1}))

	sum := Summarize([]models.Subscription{
		sub,
		{TotalValue: 100, AmountPaid: 100, Status: models.SubscriptionPaused},
	})
	assert.Equal(t, SubscriptionSummary{TotalPaid: 37600, TotalOutstanding: 37500, ActiveCount: 1}, sum)
}

func TestReportBlank(t *testing.T) {
	for _, c := range []string{"", "  ", "<p></p>", " <p><br></p> "} {
		assert.True(t, isBlankReport(c), c)
	}
	assert.False(t, isBlankReport("<p>Done</p>"))
}

type fakeChat struct {
	content string
	err     error
	calls   int
}

func (f *fakeChat) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.calls++
	if f.err != nil {
		return openai.ChatCompletionResponse{}, f.err
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: f.content}},
		},
	}, nil
}

func TestAIService_SuggestTasks(t *testing.T) {
	chat := &fakeChat{content: "```json\n" + `[
		{"title": "Write release notes", "priority": "high", "due_date": "2025-02-25"},
		{"title": "  ", "description": "dropped"},
		{"title": "Old deadline", "priority": "extreme", "due_date": "2025-01-01"}
	]` + "\n```"}
	ai := NewAIServiceWithClient(chat)
	ai.now = func() time.Time { return fixedNow }

	got, err := ai.SuggestTasks(context.Background(), &models.Project{Name: "P"}, "notes")
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "Write release notes", got[0].Title)
	assert.Equal(t, models.PriorityHigh, got[0].Priority)
	assert.Equal(t, "2025-02-25", got[0].DueDate)
	assert.Equal(t, models.PriorityMedium, got[1].Priority)
	assert.Empty(t, got[1].DueDate)
	assert.NotNil(t, got[1].Tags)
}

func TestAIService_BreakerOpens(t *testing.T) {
	chat := &fakeChat{err: errors.New("timeout")}
	ai := NewAIServiceWithClient(chat)

	for i := 0; i < 3; i++ {
		_, err := ai.SuggestTasks(context.Background(), &models.Project{}, "x")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrAIUnavailable)
	}

	_, err := ai.SuggestTasks(context.Background(), &models.Project{}, "x")
	assert.ErrorIs(t, err, ErrAIUnavailable)
	assert.Equal(t, 3, chat.calls)
}

func TestAIService_NotConfigured(t *testing.T) {
	ai := NewAIService("")
	_, err := ai.SuggestTasks(context.Background(), &models.Project{}, "x")
	assert.ErrorIs(t, err, ErrAIServiceNotConfigured)
}
