package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campusdesk/booking-dashboard/internal/backend"
	"github.com/campusdesk/booking-dashboard/internal/dashboard"
	"github.com/campusdesk/booking-dashboard/internal/domain"
	"github.com/campusdesk/booking-dashboard/internal/workflow"
)

type dashboardView struct {
	Events      []dashboard.EventCard  `json:"events"`
	Rooms       []domain.Resource      `json:"rooms"`
	Instructors []domain.Resource      `json:"instructors"`
	Status      dashboard.SystemStatus `json:"status"`
	LoadedAt    time.Time              `json:"loaded_at"`
}

// handleDashboard re-fetches the whole snapshot and renders it. Panels
// fail independently: a partial refresh still returns whatever loaded,
// with the failure reason attached.
func (s *Server) handleDashboard(c *gin.Context) {
	err := s.snapshot.Reload(c.Request.Context())
	if err != nil && errors.Is(err, backend.ErrUnauthorized) {
		s.fail(c, err)
		return
	}
	view := dashboardView{
		Events:      s.snapshot.EventCards(),
		Rooms:       s.snapshot.Rooms(),
		Instructors: s.snapshot.Instructors(),
		Status:      s.status.Current(),
		LoadedAt:    s.snapshot.LoadedAt(),
	}
	body := okBody(view, "")
	if err != nil {
		body.Message = "partial refresh: " + err.Error()
	}
	c.JSON(http.StatusOK, body)
}

func (s *Server) handleEventDetail(c *gin.Context) {
	detail, err := s.snapshot.EventDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	s.ok(c, detail)
}

// handleEventDelete requires ?confirm=true; without it nothing is sent
// and the caller gets the confirmation sentinel.
func (s *Server) handleEventDelete(c *gin.Context) {
	if c.Query("confirm") != "true" {
		s.fail(c, fmt.Errorf("delete event: %w", workflow.ErrConfirmationRequired))
		return
	}
	outcome, err := s.snapshot.RequestDelete(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	message := outcome.Message
	if message == "" && !outcome.Immediate() {
		message = "Deletion request submitted for approval"
	}
	c.JSON(http.StatusOK, okBody(gin.H{"status": outcome.Status}, message))
}

func (s *Server) handleReports(c *gin.Context) {
	if err := s.snapshot.Reload(c.Request.Context()); err != nil {
		s.fail(c, err)
		return
	}
	s.ok(c, s.snapshot.ReportRows())
}

func (s *Server) handleReportExport(c *gin.Context) {
	if err := s.snapshot.Reload(c.Request.Context()); err != nil {
		s.fail(c, err)
		return
	}
	filename := fmt.Sprintf("events_report_%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	if err := dashboard.WriteReportCSV(c.Writer, s.snapshot.ReportRows()); err != nil {
		s.log.Error("csv export failed", "error", err)
	}
}

func (s *Server) handleTrash(c *gin.Context) {
	cards, err := s.snapshot.TrashCards(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	s.ok(c, cards)
}

func (s *Server) handleStatus(c *gin.Context) {
	s.ok(c, gin.H{"status": s.status.Current()})
}

func (s *Server) handleStatusCycle(c *gin.Context) {
	s.ok(c, gin.H{"status": s.status.Cycle()})
}
