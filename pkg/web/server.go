// Package web provides the firebot supervisor API and dashboard: mission
// status, tuning constants, telemetry, prometheus metrics, and the external
// alarm trigger.
package web

import (
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/teslashibe/go-firebot/internal/log"
	"github.com/teslashibe/go-firebot/pkg/events"
	"github.com/teslashibe/go-firebot/pkg/mission"
)

// maxBufferedEvents bounds the /api/events ring buffer.
const maxBufferedEvents = 500

// Mission is the subset of the mission controller the supervisor API needs.
type Mission interface {
	Status() mission.Status
	Config() mission.Config
	RaiseAlarm() error
}

// Server is the supervisor API server.
type Server struct {
	app  *fiber.App
	port string

	mission  Mission
	eventHub *events.Hub

	// Recent event ring buffer for late-joining dashboards
	eventsMu sync.RWMutex
	recent   []mission.Event
}

// NewServer creates the supervisor API server for the given mission.
func NewServer(port string, m Mission) *Server {
	s := &Server{
		port:     port,
		mission:  m,
		eventHub: events.New("mission"),
		recent:   make([]mission.Event, 0, maxBufferedEvents),
	}

	app := fiber.New(fiber.Config{
		AppName:               "firebot supervisor",
		DisableStartupMessage: true,
	})

	// CORS for dashboards served elsewhere during development
	app.Use(cors.New())

	api := app.Group("/api")
	api.Get("/status", s.handleStatus)
	api.Get("/config", s.handleConfig)
	api.Get("/events", s.handleEvents)
	api.Post("/alarm", s.handleAlarm)

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// WebSocket upgrade middleware
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/events", websocket.New(s.handleEventsWS))

	s.app = app
	return s
}

// Publish implements mission.Sink: it buffers the event for /api/events and
// broadcasts it to live websocket subscribers.
func (s *Server) Publish(e mission.Event) {
	s.eventsMu.Lock()
	s.recent = append(s.recent, e)
	if len(s.recent) > maxBufferedEvents {
		s.recent = s.recent[1:]
	}
	s.eventsMu.Unlock()

	s.eventHub.BroadcastJSON(e)
}

// Start runs the event hub and serves until the listener fails.
func (s *Server) Start() error {
	log.Info("supervisor API listening", "port", s.port)
	go s.eventHub.Run()
	return s.app.Listen(":" + s.port)
}

// StartAsync starts the server in a goroutine.
func (s *Server) StartAsync() {
	go func() {
		if err := s.Start(); err != nil {
			log.Error("supervisor API failed", "error", err)
		}
	}()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
