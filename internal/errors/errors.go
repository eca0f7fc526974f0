package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error codes
const (
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodeInvalidInput       = "INVALID_INPUT"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeConflict           = "CONFLICT"
	ErrCodeInternalError      = "INTERNAL_ERROR"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

// APIError is the body of every error response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return e.Message
}

type statusError struct {
	code           string
	defaultMessage string
}

var statusErrors = map[int]statusError{
	http.StatusBadRequest:          {ErrCodeInvalidInput, "Invalid request"},
	http.StatusUnauthorized:        {ErrCodeUnauthorized, "Viewer session required"},
	http.StatusForbidden:           {ErrCodeForbidden, "Access denied"},
	http.StatusNotFound:            {ErrCodeNotFound, "Resource not found"},
	http.StatusConflict:            {ErrCodeConflict, "Resource conflict"},
	http.StatusUnprocessableEntity: {ErrCodeInvalidInput, "Request could not be processed"},
	http.StatusServiceUnavailable:  {ErrCodeServiceUnavailable, "Service temporarily unavailable"},
}

// Respond writes an APIError for statusCode. An empty message falls back to
// the status default; unknown statuses are reported as internal errors.
func Respond(c *gin.Context, statusCode int, message string) {
	se, ok := statusErrors[statusCode]
	if !ok {
		se = statusError{ErrCodeInternalError, "Internal server error"}
	}
	if message == "" {
		message = se.defaultMessage
	}
	c.JSON(statusCode, &APIError{Code: se.code, Message: message})
}

func Unauthorized(c *gin.Context, message string) {
	Respond(c, http.StatusUnauthorized, message)
}

func Forbidden(c *gin.Context, message string) {
	Respond(c, http.StatusForbidden, message)
}

func NotFound(c *gin.Context, message string) {
	Respond(c, http.StatusNotFound, message)
}

func BadRequest(c *gin.Context, message string) {
	Respond(c, http.StatusBadRequest, message)
}

func Conflict(c *gin.Context, message string) {
	Respond(c, http.StatusConflict, message)
}

// Unprocessable reports a well-formed request whose result could not be used,
// such as malformed AI output.
func Unprocessable(c *gin.Context, message string) {
	Respond(c, http.StatusUnprocessableEntity, message)
}

func InternalError(c *gin.Context, message string) {
	Respond(c, http.StatusInternalServerError, message)
}

func ServiceUnavailable(c *gin.Context, message string) {
	Respond(c, http.StatusServiceUnavailable, message)
}
