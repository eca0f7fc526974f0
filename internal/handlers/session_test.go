package handlers

import (
	"net/http"

	"github.com/stretchr/testify/assert"
	apierrors "github.com/yukikurage/procms-api/internal/errors"
	"github.com/yukikurage/procms-api/internal/models"
)

func (suite *HandlerTestSuite) TestSession_CreateAndGet() {
	cookies := suite.login("employee", "emp-2")

	w := suite.do(http.MethodGet, "/api/session", nil, cookies)
	suite.Require().Equal(http.StatusOK, w.Code)

	var viewer models.Viewer
	suite.decode(w, &viewer)
	assert.Equal(suite.T(), models.RoleEmployee, viewer.Role)
	assert.Equal(suite.T(), "emp-2", viewer.ID)
	assert.Equal(suite.T(), "Sarah Chen", viewer.Name)
}

func (suite *HandlerTestSuite) TestSession_AdminDefaultsToConfiguredID() {
	cookies := suite.login("admin", "")

	w := suite.do(http.MethodGet, "/api/session", nil, cookies)
	suite.Require().Equal(http.StatusOK, w.Code)

	var viewer models.Viewer
	suite.decode(w, &viewer)
	assert.Equal(suite.T(), "admin", viewer.ID)
	assert.Equal(suite.T(), "Administrator", viewer.Name)
}

func (suite *HandlerTestSuite) TestSession_Invalid() {
	tests := []struct {
		name string
		body map[string]string
		code int
	}{
		{"missing type", map[string]string{"viewer_id": "emp-1"}, http.StatusBadRequest},
		{"unknown type", map[string]string{"viewer_type": "guest", "viewer_id": "x"}, http.StatusBadRequest},
		{"unknown client", map[string]string{"viewer_type": "client", "viewer_id": "client-99"}, http.StatusNotFound},
		{"employee as client", map[string]string{"viewer_type": "client", "viewer_id": "emp-1"}, http.StatusNotFound},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			w := suite.do(http.MethodPost, "/api/session", tt.body, nil)
			assert.Equal(suite.T(), tt.code, w.Code)
		})
	}
}

func (suite *HandlerTestSuite) TestSession_RequiredForAPI() {
	w := suite.do(http.MethodGet, "/api/projects", nil, nil)
	suite.Require().Equal(http.StatusUnauthorized, w.Code)

	var apiErr apierrors.APIError
	suite.decode(w, &apiErr)
	assert.Equal(suite.T(), apierrors.ErrCodeUnauthorized, apiErr.Code)
}

func (suite *HandlerTestSuite) TestSession_Delete() {
	cookies := suite.login("client", "client-1")

	w := suite.do(http.MethodDelete, "/api/session", nil, cookies)
	suite.Require().Equal(http.StatusOK, w.Code)

	w = suite.do(http.MethodGet, "/api/session", nil, w.Result().Cookies())
	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

func (suite *HandlerTestSuite) TestHealth() {
	w := suite.do(http.MethodGet, "/health", nil, nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
}
