// Package api is the local HTTP surface the dashboard UI talks to. It
// binds to loopback by default and requires a bearer token on every route
// except the health check.
package api

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/campusdesk/booking-dashboard/internal/chat"
	"github.com/campusdesk/booking-dashboard/internal/dashboard"
	"github.com/campusdesk/booking-dashboard/internal/security"
	"github.com/campusdesk/booking-dashboard/internal/workflow"
)

type Server struct {
	snapshot  *dashboard.Store
	status    *dashboard.StatusToggle
	wizards   *workflow.WizardSet
	approvals *workflow.Approvals
	chat      *chat.Session
	auth      security.BearerAuth
	log       *slog.Logger

	engine  *gin.Engine
	httpSrv *http.Server
}

type Options struct {
	Snapshot  *dashboard.Store
	Status    *dashboard.StatusToggle
	Wizards   *workflow.WizardSet
	Approvals *workflow.Approvals
	Chat      *chat.Session
	Auth      security.BearerAuth

	AllowedOrigins []string
	Logger         *slog.Logger
}

func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		snapshot:  opts.Snapshot,
		status:    opts.Status,
		wizards:   opts.Wizards,
		approvals: opts.Approvals,
		chat:      opts.Chat,
		auth:      opts.Auth,
		log:       logger,
	}

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}))
	r.Use(requestID())
	r.Use(structuredLogger(logger))
	r.Use(gin.Recovery())
	r.Use(s.bearerAuth())

	r.GET("/healthz", s.handleHealth)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/dashboard", s.handleDashboard)
		v1.GET("/events/:id", s.handleEventDetail)
		v1.DELETE("/events/:id", s.handleEventDelete)
		v1.GET("/reports", s.handleReports)
		v1.GET("/reports/export", s.handleReportExport)
		v1.GET("/trash", s.handleTrash)
		v1.GET("/status", s.handleStatus)
		v1.POST("/status/cycle", s.handleStatusCycle)

		v1.POST("/bookings", s.handleBookingOpen)
		v1.GET("/bookings/:id", s.handleBookingSnapshot)
		v1.POST("/bookings/:id/check", s.handleBookingCheck)
		v1.POST("/bookings/:id/select", s.handleBookingSelect)
		v1.POST("/bookings/:id/back", s.handleBookingBack)
		v1.POST("/bookings/:id/confirm", s.handleBookingConfirm)
		v1.DELETE("/bookings/:id", s.handleBookingClose)

		v1.GET("/approvals", s.handleApprovalQueue)
		v1.GET("/approvals/badge", s.handleApprovalBadge)
		v1.POST("/approvals/:source/:id/approve", s.handleApprove)
		v1.POST("/approvals/:source/:id/reject", s.handleReject)

		v1.POST("/chat", s.handleChat)
		v1.GET("/chat", s.handleChatTranscript)
	}

	s.engine = r
	s.httpSrv = &http.Server{Handler: r, ReadHeaderTimeout: 5 * time.Second}
	return s
}

// Handler exposes the engine for tests and embedding.
func (s *Server) Handler() http.Handler { return s.engine }

func (s *Server) ServeTCP(ctx context.Context, bind string) error {
	if bind == "" {
		return errors.New("bind required")
	}
	ln, err := net.Listen("tcp", bind)
	if err != nil {
		return err
	}
	go s.shutdownOnContext(ctx)
	err = s.httpSrv.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) shutdownOnContext(ctx context.Context) {
	<-ctx.Done()
	timeout, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	_ = s.httpSrv.Shutdown(timeout)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "booking-dashboard"})
}
