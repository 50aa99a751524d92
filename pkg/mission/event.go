package mission

import "time"

// Event kinds published by the controller.
const (
	EventTransition = "transition"
	EventDetection  = "detection"
	EventAlarm      = "alarm"
	EventComplete   = "mission_complete"
	EventError      = "error"
)

// Event is a telemetry record of something the mission did or saw.
// Events are best-effort observability, not part of the control contract.
type Event struct {
	Time   time.Time `json:"time"`
	RunID  string    `json:"run_id"`
	Kind   string    `json:"kind"`
	State  string    `json:"state"`
	From   string    `json:"from,omitempty"`
	To     string    `json:"to,omitempty"`
	Detail string    `json:"detail,omitempty"`
	Value  float64   `json:"value,omitempty"`
}

// Sink receives mission events. Publish must not block the control loop;
// implementations are expected to buffer or drop.
type Sink interface {
	Publish(Event)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Event)

// Publish implements Sink.
func (f SinkFunc) Publish(e Event) {
	f(e)
}
