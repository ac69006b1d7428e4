package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusdesk/booking-dashboard/internal/chat"
)

type chatRequest struct {
	Message string `json:"message"`
}

// handleChat forwards one message to the booking assistant. A transport
// failure still returns the failed transcript entry so the UI can render
// it, alongside the error.
func (s *Server) handleChat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}
	msg, err := s.chat.Send(c.Request.Context(), req.Message)
	if err != nil {
		if errors.Is(err, chat.ErrEmptyMessage) {
			s.fail(c, err)
			return
		}
		c.JSON(http.StatusBadGateway, response{Success: false, Data: msg, Error: err.Error()})
		return
	}
	s.ok(c, msg)
}

func (s *Server) handleChatTranscript(c *gin.Context) {
	s.ok(c, s.chat.Transcript())
}
