// Package httpkit holds the gin glue shared by every module: response
// helpers, authentication, rate limiting and request metrics.
package httpkit

import (
	"errors"
	"net/http"
	"strconv"

	"seedstore_backend/platform/apperr"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// StatusResponse acknowledges an action that returns no resource.
type StatusResponse struct {
	Status string `json:"status"`
}

func JSON(c *gin.Context, status int, payload any) {
	c.JSON(status, payload)
}

func OK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// Success writes {"status":"success"}.
func Success(c *gin.Context) {
	c.JSON(http.StatusOK, StatusResponse{Status: "success"})
}

// NoContent is the reply to a successful delete.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest rejects malformed input before it reaches a service.
func BadRequest(c *gin.Context, message string, details any) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message, Details: details})
}

// HandleError writes err and reports whether there was one. *apperr.Error
// values pick the status from their Kind; anything else is a 500 and is
// attached to the gin context so the access log records it.
func HandleError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	status := http.StatusInternalServerError
	body := ErrorResponse{Error: err.Error()}

	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		status = appErr.HTTPStatus()
		body = ErrorResponse{Error: appErr.Message, Details: appErr.Details}
	}
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.JSON(status, body)
	return true
}

// ParseID reads a positive integer path parameter, answering 400 with
// message when it is not one.
func ParseID(c *gin.Context, name, message string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		BadRequest(c, message, nil)
		return 0, false
	}
	return id, true
}
