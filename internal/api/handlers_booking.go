package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campusdesk/booking-dashboard/internal/workflow"
)

type wizardView struct {
	SessionID string               `json:"session_id"`
	State     workflow.WizardState `json:"state"`
	Draft     workflow.Draft       `json:"draft"`
}

func (s *Server) wizardView(id string, w *workflow.Wizard) wizardView {
	state, draft := w.Snapshot()
	return wizardView{SessionID: id, State: state, Draft: draft}
}

func (s *Server) handleBookingOpen(c *gin.Context) {
	// Successful submissions leave idle sessions behind; drop them
	// before adding a new one.
	s.wizards.Reap()
	id, w := s.wizards.Open()
	s.ok(c, s.wizardView(id, w))
}

func (s *Server) handleBookingSnapshot(c *gin.Context) {
	id := c.Param("id")
	w, err := s.wizards.Get(id)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.ok(c, s.wizardView(id, w))
}

type checkRequest struct {
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Capacity int       `json:"capacity"`
}

func (s *Server) handleBookingCheck(c *gin.Context) {
	id := c.Param("id")
	w, err := s.wizards.Get(id)
	if err != nil {
		s.fail(c, err)
		return
	}
	var req checkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}
	if _, err := w.CheckAvailability(c.Request.Context(), req.Start, req.End, req.Capacity); err != nil {
		s.fail(c, err)
		return
	}
	s.ok(c, s.wizardView(id, w))
}

type selectRequest struct {
	Kind string `json:"kind" binding:"required,oneof=room instructor equipment"`
	// ID may be empty for room and instructor to clear the selection.
	ID string `json:"id"`
}

func (s *Server) handleBookingSelect(c *gin.Context) {
	id := c.Param("id")
	w, err := s.wizards.Get(id)
	if err != nil {
		s.fail(c, err)
		return
	}
	var req selectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}
	switch req.Kind {
	case "room":
		err = w.SelectRoom(req.ID)
	case "instructor":
		err = w.SelectInstructor(req.ID)
	case "equipment":
		_, err = w.ToggleEquipment(req.ID)
	}
	if err != nil {
		s.fail(c, err)
		return
	}
	s.ok(c, s.wizardView(id, w))
}

func (s *Server) handleBookingBack(c *gin.Context) {
	id := c.Param("id")
	w, err := s.wizards.Get(id)
	if err != nil {
		s.fail(c, err)
		return
	}
	if err := w.Back(); err != nil {
		s.fail(c, err)
		return
	}
	s.ok(c, s.wizardView(id, w))
}

type confirmRequest struct {
	Title     string `json:"title"`
	EventType string `json:"event_type"`
	Purpose   string `json:"purpose"`
	// Ack acknowledges a booking with zero selected resources.
	Ack bool `json:"ack"`
}

func (s *Server) handleBookingConfirm(c *gin.Context) {
	id := c.Param("id")
	w, err := s.wizards.Get(id)
	if err != nil {
		s.fail(c, err)
		return
	}
	var req confirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}
	meta := workflow.Metadata{Title: req.Title, EventType: req.EventType, Purpose: req.Purpose}
	if err := w.Confirm(c.Request.Context(), meta, req.Ack); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, okBody(s.wizardView(id, w), "Booking submitted"))
}

func (s *Server) handleBookingClose(c *gin.Context) {
	if err := s.wizards.Close(c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	s.ok(c, gin.H{"closed": true})
}
