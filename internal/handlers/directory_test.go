package handlers

import (
	"net/http"

	"github.com/stretchr/testify/assert"
	"github.com/yukikurage/procms-api/internal/models"
)

func (suite *HandlerTestSuite) TestCreateClient() {
	admin := suite.login("admin", "")

	w := suite.do(http.MethodPost, "/api/clients", map[string]string{
		"name":     "Nora Diaz",
		"company":  "Skyline Labs",
		"email":    "nora@skyline.io",
		"industry": "Aerospace",
	}, admin)
	suite.Require().Equal(http.StatusCreated, w.Code)

	var client models.Client
	suite.decode(w, &client)
	assert.Contains(suite.T(), client.ID, "client-")
	assert.Equal(suite.T(), models.ClientStatusActive, client.Status)
	assert.NotEmpty(suite.T(), client.CreatedOn)

	w = suite.do(http.MethodGet, "/api/clients/"+client.ID, nil, admin)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	w = suite.do(http.MethodPost, "/api/clients", map[string]string{"name": "x", "company": "y", "email": "not-an-email"}, admin)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	w = suite.do(http.MethodPost, "/api/clients", map[string]string{"name": "x", "company": "y", "email": "x@y.io"}, suite.login("employee", "emp-1"))
	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

func (suite *HandlerTestSuite) TestCreateEmployee() {
	admin := suite.login("admin", "")

	w := suite.do(http.MethodPost, "/api/employees", map[string]string{
		"name":       "Priya Shah",
		"email":      "priya@procms.com",
		"role":       "DevOps Engineer",
		"department": "Engineering",
	}, admin)
	suite.Require().Equal(http.StatusCreated, w.Code)

	var employee models.Employee
	suite.decode(w, &employee)
	assert.Equal(suite.T(), models.EmployeeStatusAvailable, employee.Status)

	w = suite.do(http.MethodGet, "/api/employees?department=Engineering", nil, admin)
	suite.Require().Equal(http.StatusOK, w.Code)

	var employees struct {
		Employees []models.Employee `json:"employees"`
	}
	suite.decode(w, &employees)
	assert.Len(suite.T(), employees.Employees, 4)

	w = suite.do(http.MethodPost, "/api/employees", map[string]string{"name": "x", "email": "x@y.io"}, admin)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	w = suite.do(http.MethodPost, "/api/employees", map[string]string{"name": "x", "email": "x@y.io", "role": "r"}, suite.login("client", "client-1"))
	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}
