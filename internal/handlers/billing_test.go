package handlers

import (
	"net/http"

	"github.com/stretchr/testify/assert"
	"github.com/yukikurage/procms-api/internal/dto"
	"github.com/yukikurage/procms-api/internal/models"
	"github.com/yukikurage/procms-api/internal/services"
)

func (suite *HandlerTestSuite) TestSubscriptions_ClientSeesOwn() {
	cookies := suite.login("client", "client-1")

	// client_id is ignored for clients
	w := suite.do(http.MethodGet, "/api/subscriptions?client_id=client-2", nil, cookies)
	suite.Require().Equal(http.StatusOK, w.Code)

	var resp dto.SubscriptionListResponse
	suite.decode(w, &resp)
	suite.Require().Len(resp.Subscriptions, 2)
	assert.Equal(suite.T(), "sub-1", resp.Subscriptions[0].ID)
	assert.Equal(suite.T(), 50, resp.Subscriptions[0].PaidPercent)
	assert.Len(suite.T(), resp.Subscriptions[0].Milestones, 4)
	assert.Equal(suite.T(), 25, resp.Subscriptions[1].PaidPercent)

	assert.Equal(suite.T(), 43500.0, resp.Summary.TotalPaid)
	assert.Equal(suite.T(), 55500.0, resp.Summary.TotalOutstanding)
	assert.Equal(suite.T(), 2, resp.Summary.ActiveCount)
}

func (suite *HandlerTestSuite) TestSubscriptions_EmployeeForbidden() {
	w := suite.do(http.MethodGet, "/api/subscriptions", nil, suite.login("employee", "emp-1"))
	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

func (suite *HandlerTestSuite) TestReports() {
	alex := suite.login("employee", "emp-1")

	w := suite.do(http.MethodPost, "/api/reports", map[string]string{"project_id": "proj-1", "content": "<p></p>"}, alex)
	suite.Require().Equal(http.StatusBadRequest, w.Code)

	w = suite.do(http.MethodPost, "/api/reports", map[string]string{"project_id": "proj-2", "content": "<p>Done</p>"}, alex)
	suite.Require().Equal(http.StatusNotFound, w.Code)

	w = suite.do(http.MethodPost, "/api/reports", map[string]string{"project_id": "proj-1", "content": "<p>Done</p>"}, alex)
	suite.Require().Equal(http.StatusCreated, w.Code)

	var created models.EODReport
	suite.decode(w, &created)
	assert.Equal(suite.T(), "emp-1", created.EmployeeID)

	// employee_id is ignored for employees
	w = suite.do(http.MethodGet, "/api/reports?employee_id=emp-3", nil, alex)
	suite.Require().Equal(http.StatusOK, w.Code)

	var resp dto.ReportListResponse
	suite.decode(w, &resp)
	suite.Require().Len(resp.Reports, 3)
	assert.Equal(suite.T(), created.ID, resp.Reports[0].ID)
	for _, r := range resp.Reports {
		assert.Equal(suite.T(), "emp-1", r.EmployeeID)
	}

	w = suite.do(http.MethodGet, "/api/reports", nil, suite.login("client", "client-1"))
	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

func (suite *HandlerTestSuite) TestDirectory() {
	admin := suite.login("admin", "")

	w := suite.do(http.MethodGet, "/api/employees?department=Engineering", nil, admin)
	suite.Require().Equal(http.StatusOK, w.Code)

	var employees struct {
		Employees []models.Employee `json:"employees"`
	}
	suite.decode(w, &employees)
	assert.Len(suite.T(), employees.Employees, 3)

	w = suite.do(http.MethodGet, "/api/clients?status=inactive", nil, admin)
	suite.Require().Equal(http.StatusOK, w.Code)

	var clients struct {
		Clients []models.Client `json:"clients"`
	}
	suite.decode(w, &clients)
	suite.Require().Len(clients.Clients, 1)
	assert.Equal(suite.T(), "client-4", clients.Clients[0].ID)

	james := suite.login("client", "client-1")
	w = suite.do(http.MethodGet, "/api/clients", nil, james)
	assert.Equal(suite.T(), http.StatusForbidden, w.Code)

	w = suite.do(http.MethodGet, "/api/clients/client-1", nil, james)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	w = suite.do(http.MethodGet, "/api/clients/client-2", nil, james)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestDashboard() {
	w := suite.do(http.MethodGet, "/api/dashboard", nil, nil)
	suite.Require().Equal(http.StatusUnauthorized, w.Code)

	w = suite.do(http.MethodGet, "/api/dashboard", nil, suite.login("client", "client-1"))
	suite.Require().Equal(http.StatusOK, w.Code)

	var stats services.DashboardStats
	suite.decode(w, &stats)
	assert.Equal(suite.T(), models.RoleClient, stats.Role)
	assert.EqualValues(suite.T(), 2, stats.Projects.Total)
	assert.Nil(suite.T(), stats.Directory)
	suite.Require().NotNil(stats.Billing)
	assert.Equal(suite.T(), 55500.0, stats.Billing.TotalOutstanding)

	w = suite.do(http.MethodGet, "/api/dashboard", nil, suite.login("employee", "emp-1"))
	suite.Require().Equal(http.StatusOK, w.Code)

	stats = services.DashboardStats{}
	suite.decode(w, &stats)
	assert.EqualValues(suite.T(), 4, stats.Tasks.Total)
	assert.Nil(suite.T(), stats.Billing)
}
