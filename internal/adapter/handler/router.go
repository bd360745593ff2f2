package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	custommiddleware "github.com/skillsync-team/meeting-service/internal/infrastructure/http/middleware"
	"github.com/skillsync-team/meeting-service/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg             *config.Config
	meetingHandler  *Meeting
	internalHandler *Internal
	registry        *prometheus.Registry
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, meetingHandler *Meeting, internalHandler *Internal, registry *prometheus.Registry) *Router {
	return &Router{
		cfg:             cfg,
		meetingHandler:  meetingHandler,
		internalHandler: internalHandler,
		registry:        registry,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	// Prometheus scrape endpoint
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(rt.registry, promhttp.HandlerOpts{})))

	// API v1 group
	v1 := e.Group("/v1")
	rt.setupMeetingRoutes(v1)

	// Internal group, guarded by the scheduler's shared secret
	internal := e.Group("/internal", custommiddleware.RequireSharedSecret(rt.cfg.Reminder.SweepSecret))
	rt.setupInternalRoutes(internal)
}

// setupMeetingRoutes configures meeting lifecycle routes
func (rt *Router) setupMeetingRoutes(g *echo.Group) {
	meetingGroup := g.Group("/meetings")

	meetingGroup.POST("", rt.meetingHandler.Propose)
	meetingGroup.GET("", rt.meetingHandler.List)
	meetingGroup.GET("/:id", rt.meetingHandler.Get)
	meetingGroup.POST("/:id/respond", rt.meetingHandler.Respond)
	meetingGroup.POST("/:id/cancel", rt.meetingHandler.Cancel)
	meetingGroup.POST("/:id/cancellation/ack", rt.meetingHandler.Acknowledge)

	g.GET("/cancellations/unacknowledged", rt.meetingHandler.ListUnacknowledged)
}

// setupInternalRoutes configures operational routes for the scheduler
func (rt *Router) setupInternalRoutes(g *echo.Group) {
	g.POST("/reminders/sweep", rt.internalHandler.Sweep)
	g.POST("/meetings/:id/complete", rt.internalHandler.Complete)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": rt.cfg.Server.Environment,
	})
}
