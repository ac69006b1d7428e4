package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusdesk/booking-dashboard/internal/workflow"
)

func (s *Server) handleApprovalQueue(c *gin.Context) {
	items, err := s.approvals.LoadQueue(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	s.ok(c, items)
}

func (s *Server) handleApprovalBadge(c *gin.Context) {
	count, err := s.approvals.RefreshBadge(c.Request.Context())
	// Badge failures are non-fatal; the last-known count still renders.
	if err != nil {
		s.log.Warn("badge refresh failed", "error", err)
	}
	s.ok(c, gin.H{"count": count, "visible": count > 0})
}

func queueSource(c *gin.Context) (workflow.Source, bool) {
	switch c.Param("source") {
	case string(workflow.SourceCreation):
		return workflow.SourceCreation, true
	case string(workflow.SourceDeletion):
		return workflow.SourceDeletion, true
	}
	return "", false
}

type decisionRequest struct {
	Reason    string `json:"reason"`
	Confirmed bool   `json:"confirmed"`
}

func (s *Server) handleApprove(c *gin.Context) {
	s.decide(c, true)
}

func (s *Server) handleReject(c *gin.Context) {
	s.decide(c, false)
}

func (s *Server) decide(c *gin.Context, approve bool) {
	source, ok := queueSource(c)
	if !ok {
		c.JSON(http.StatusBadRequest, errorBody("unknown queue source: "+c.Param("source")))
		return
	}
	var req decisionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			s.badRequest(c, err)
			return
		}
	}
	items, err := s.approvals.Decide(c.Request.Context(), source, c.Param("id"), approve, req.Reason, req.Confirmed)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.ok(c, items)
}
