// Package mission implements the firefighting behavior loop: a finite state
// machine that wanders, follows walls, locates a flame by scanning ambient
// light, approaches it, and extinguishes it with the fan.
//
// The loop is single-threaded with respect to motion. Every drive call blocks
// until the physical motion completes, so at most one motion command is ever
// in flight. State is owned by the Controller and mutated only by its
// transition step.
package mission

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/teslashibe/go-firebot/internal/log"
	"github.com/teslashibe/go-firebot/pkg/drive"
)

// Status is a read-only snapshot of the mission for dashboards.
type Status struct {
	RunID          string  `json:"run_id"`
	State          string  `json:"state"`
	Ticks          uint64  `json:"ticks"`
	Transitions    uint64  `json:"transitions"`
	LastAmbient    float64 `json:"last_ambient"`
	LastDistanceMM float64 `json:"last_distance_mm"`
	LastColor      string  `json:"last_color"`
}

// Controller drives the firefighting state machine over a hardware rig.
type Controller struct {
	rig  drive.Rig
	cfg  Config
	sink Sink

	mu    sync.RWMutex
	state State

	// Diagnostics, guarded by mu for dashboard readers.
	ticks        uint64
	transitions  uint64
	lastAmbient  float64
	lastDistance float64
	lastColor    drive.Color

	runID string
}

// Option configures a Controller.
type Option func(*Controller)

// WithSink sets the telemetry event sink.
func WithSink(s Sink) Option {
	return func(c *Controller) { c.sink = s }
}

// New creates a mission controller in the Wander state.
func New(rig drive.Rig, cfg Config, opts ...Option) *Controller {
	c := &Controller{
		rig:   rig,
		cfg:   cfg,
		state: StateWander,
		runID: uuid.NewString(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetSink sets the telemetry event sink. Call before Run.
func (c *Controller) SetSink(s Sink) {
	c.sink = s
}

// RunID returns the unique identifier of this mission run.
func (c *Controller) RunID() string {
	return c.runID
}

// State returns the current behavioral state.
func (c *Controller) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Config returns the active tuning constants.
func (c *Controller) Config() Config {
	return c.cfg
}

// Status returns a snapshot for the dashboard.
func (c *Controller) Status() Status {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Status{
		RunID:          c.runID,
		State:          c.state.String(),
		Ticks:          c.ticks,
		Transitions:    c.transitions,
		LastAmbient:    c.lastAmbient,
		LastDistanceMM: c.lastDistance,
		LastColor:      c.lastColor.String(),
	}
}

// transition is the single place mission state is mutated.
func (c *Controller) transition(to State) {
	c.mu.Lock()
	from := c.state
	c.state = to
	c.transitions++
	c.mu.Unlock()

	log.Info("state transition", "from", from.String(), "to", to.String())
	transitionsTotal.WithLabelValues(from.String(), to.String()).Inc()
	c.publish(Event{Kind: EventTransition, From: from.String(), To: to.String()})
}

// publish sends a telemetry event to the sink, if one is configured.
func (c *Controller) publish(e Event) {
	if c.sink == nil {
		return
	}
	e.Time = time.Now()
	e.RunID = c.runID
	if e.State == "" {
		e.State = c.State().String()
	}
	c.sink.Publish(e)
}

// Update runs one dispatch tick of the state machine.
//
// Wander re-runs the flame scan every tick before wandering; wall following
// checks for the goal tile after its policy; fire detection advances one
// approach step per tick so the nested approach loop stays cancellable.
// Complete is terminal and a no-op.
func (c *Controller) Update() error {
	c.mu.Lock()
	c.ticks++
	c.mu.Unlock()
	ticksTotal.Inc()

	switch c.State() {
	case StateWander:
		found, err := c.scanForFlame()
		if err != nil {
			return err
		}
		if found {
			c.transition(StateFireDetection)
			return nil
		}
		log.Debug("no flame in scan, wandering")
		return c.wander()

	case StateWallFollowing:
		if err := c.wallFollow(); err != nil {
			return err
		}
		onGoal, err := c.detectGoal()
		if err != nil {
			return err
		}
		if onGoal {
			c.transition(StateFireDetection)
		}
		return nil

	case StateFireDetection:
		return c.approachStep()

	case StateExtinguish:
		return c.extinguish()

	case StateComplete:
		return nil
	}

	return fmt.Errorf("mission: unhandled state %d", c.State())
}

// Run drives the mission loop at the configured tick interval until the
// mission completes, the context is cancelled, or a device fails.
// Device failures are unrecoverable: the loop halts rather than continue on
// stale sensor data.
func (c *Controller) Run(ctx context.Context) error {
	log.Info("mission started",
		"run_id", c.runID,
		"state", c.State().String(),
		"tick", c.cfg.TickInterval.String())

	ticker := time.NewTicker(c.cfg.TickInterval.D())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			// Best-effort halt; the rig may already be gone.
			if err := c.rig.Stop(); err != nil {
				log.Warn("stop on shutdown failed", "error", err)
			}
			return ctx.Err()

		case <-ticker.C:
			if err := c.Update(); err != nil {
				deviceErrorsTotal.Inc()
				log.Error("mission halted", "state", c.State().String(), "error", err)
				c.publish(Event{Kind: EventError, Detail: err.Error()})
				return fmt.Errorf("mission halted in %s: %w", c.State(), err)
			}
			if c.State().Terminal() {
				log.Info("mission complete", "run_id", c.runID)
				c.publish(Event{Kind: EventComplete})
				return nil
			}
		}
	}
}

// RaiseAlarm sounds the fire alarm tone. It is not part of the state
// machine's transition path; an external supervisor invokes it through the
// dashboard API.
func (c *Controller) RaiseAlarm() error {
	log.Warn("alarm raised", "run_id", c.runID)
	c.publish(Event{Kind: EventAlarm, Value: float64(c.cfg.AlarmFreqHz)})
	if err := c.rig.Beep(c.cfg.AlarmFreqHz, c.cfg.AlarmDuration.D()); err != nil {
		return fmt.Errorf("raise alarm: %w", err)
	}
	return nil
}
