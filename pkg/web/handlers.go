package web

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/teslashibe/go-firebot/pkg/events"
)

// handleStatus returns the current mission snapshot.
func (s *Server) handleStatus(c *fiber.Ctx) error {
	return c.JSON(s.mission.Status())
}

// handleConfig returns the active tuning constants.
func (s *Server) handleConfig(c *fiber.Ctx) error {
	return c.JSON(s.mission.Config())
}

// handleEvents returns the recent telemetry ring buffer.
func (s *Server) handleEvents(c *fiber.Ctx) error {
	s.eventsMu.RLock()
	defer s.eventsMu.RUnlock()
	return c.JSON(s.recent)
}

// handleAlarm sounds the fire alarm. This is the external supervisor's entry
// point; the state machine itself never raises the alarm.
func (s *Server) handleAlarm(c *fiber.Ctx) error {
	if err := s.mission.RaiseAlarm(); err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{"alarm": "raised"})
}

// handleEventsWS streams live telemetry over a websocket.
func (s *Server) handleEventsWS(c *websocket.Conn) {
	client := events.NewClient(s.eventHub, c)
	client.Run() // Blocks until the connection closes
}
