package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusdesk/booking-dashboard/internal/backend"
	"github.com/campusdesk/booking-dashboard/internal/chat"
	"github.com/campusdesk/booking-dashboard/internal/workflow"
)

// response is the envelope every JSON route uses. Message and Error are
// mutually exclusive: Message accompanies success, Error carries the
// normalized failure reason.
type response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func okBody(data any, message string) response {
	return response{Success: true, Data: data, Message: message}
}

func errorBody(reason string) response {
	return response{Success: false, Error: reason}
}

func (s *Server) ok(c *gin.Context, data any) {
	c.JSON(http.StatusOK, okBody(data, ""))
}

// fail maps domain errors onto the HTTP surface. Confirmation sentinels
// become 428 so the UI can re-prompt; wizard state violations are
// conflicts; backend business failures pass through as 502 with the
// normalized reason intact.
func (s *Server) fail(c *gin.Context, err error) {
	status := http.StatusBadGateway
	switch {
	case errors.Is(err, workflow.ErrConfirmationRequired):
		status = http.StatusPreconditionRequired
	case errors.Is(err, workflow.ErrSubmitInFlight),
		errors.Is(err, workflow.ErrWrongStep),
		errors.Is(err, workflow.ErrNoAvailability):
		status = http.StatusConflict
	case errors.Is(err, workflow.ErrMissingTimeRange),
		errors.Is(err, workflow.ErrUnknownResource),
		errors.Is(err, chat.ErrEmptyMessage):
		status = http.StatusBadRequest
	case errors.Is(err, workflow.ErrUnknownWizard),
		errors.Is(err, backend.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, backend.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, errorBody("backend session expired; sign in again"))
		return
	}
	c.JSON(status, errorBody(err.Error()))
}

func (s *Server) badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, errorBody(err.Error()))
}
