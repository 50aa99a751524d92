// Package sim provides simulated hardware for the firebot controller: a
// scripted rig for deterministic tests and a small 2D arena for running the
// full mission without a robot.
package sim

import (
	"sync"
	"time"

	"github.com/teslashibe/go-firebot/pkg/drive"
)

// Command records a single actuator call made against a simulated rig.
type Command struct {
	Op    string        // "straight", "turn", "stop", "fan", "light", "beep"
	Value float64       // distance mm, angle deg, fan speed, beep frequency
	Dur   time.Duration // fan or beep duration
	Color drive.Color   // light color
}

// Rig is a scripted drive.Rig. Sensor readings are queued per channel and
// popped one per read; the last value sticks once a queue drains. Every
// actuator call is recorded for assertions.
type Rig struct {
	mu sync.Mutex

	touch    []bool
	distance []float64
	ambient  []float64
	color    []drive.Color

	err      error
	commands []Command
}

// Ensure Rig implements the full hardware surface
var _ drive.Rig = (*Rig)(nil)

// NewRig creates an empty scripted rig. With no scripted readings, touch is
// false, distance is effectively infinite, ambient is zero, and the surface
// color is none.
func NewRig() *Rig {
	return &Rig{}
}

// PushTouch queues touch readings.
func (r *Rig) PushTouch(vals ...bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.touch = append(r.touch, vals...)
}

// PushDistance queues lateral range readings in millimeters.
func (r *Rig) PushDistance(vals ...float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.distance = append(r.distance, vals...)
}

// PushAmbient queues ambient light readings.
func (r *Rig) PushAmbient(vals ...float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ambient = append(r.ambient, vals...)
}

// PushColor queues surface color readings.
func (r *Rig) PushColor(vals ...drive.Color) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.color = append(r.color, vals...)
}

// FailWith makes every subsequent sensor read and actuator call return err.
// Pass nil to clear.
func (r *Rig) FailWith(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

// Commands returns a copy of all recorded actuator calls.
func (r *Rig) Commands() []Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Command, len(r.commands))
	copy(out, r.commands)
	return out
}

// DriveCommands returns only the drive base calls (straight, turn, stop).
func (r *Rig) DriveCommands() []Command {
	var out []Command
	for _, cmd := range r.Commands() {
		switch cmd.Op {
		case "straight", "turn", "stop":
			out = append(out, cmd)
		}
	}
	return out
}

// Touching pops the next scripted touch reading.
func (r *Rig) Touching() (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return false, r.err
	}
	v := false
	if len(r.touch) > 0 {
		v = r.touch[0]
		if len(r.touch) > 1 {
			r.touch = r.touch[1:]
		}
	}
	return v, nil
}

// DistanceMM pops the next scripted range reading.
func (r *Rig) DistanceMM() (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return 0, r.err
	}
	v := 1e9
	if len(r.distance) > 0 {
		v = r.distance[0]
		if len(r.distance) > 1 {
			r.distance = r.distance[1:]
		}
	}
	return v, nil
}

// AmbientLight pops the next scripted light reading.
func (r *Rig) AmbientLight() (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return 0, r.err
	}
	v := 0.0
	if len(r.ambient) > 0 {
		v = r.ambient[0]
		if len(r.ambient) > 1 {
			r.ambient = r.ambient[1:]
		}
	}
	return v, nil
}

// SurfaceColor pops the next scripted color reading.
func (r *Rig) SurfaceColor() (drive.Color, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return drive.ColorNone, r.err
	}
	v := drive.ColorNone
	if len(r.color) > 0 {
		v = r.color[0]
		if len(r.color) > 1 {
			r.color = r.color[1:]
		}
	}
	return v, nil
}

// Straight records a straight drive command.
func (r *Rig) Straight(distanceMM float64) error {
	return r.record(Command{Op: "straight", Value: distanceMM})
}

// Turn records a turn command.
func (r *Rig) Turn(angleDeg float64) error {
	return r.record(Command{Op: "turn", Value: angleDeg})
}

// Stop records a stop command.
func (r *Rig) Stop() error {
	return r.record(Command{Op: "stop"})
}

// RunTimed records a fan run. It does not sleep.
func (r *Rig) RunTimed(speed float64, duration time.Duration) error {
	return r.record(Command{Op: "fan", Value: speed, Dur: duration})
}

// SetLight records a status light change.
func (r *Rig) SetLight(color drive.Color) error {
	return r.record(Command{Op: "light", Color: color})
}

// Beep records a speaker tone.
func (r *Rig) Beep(freqHz int, duration time.Duration) error {
	return r.record(Command{Op: "beep", Value: float64(freqHz), Dur: duration})
}

func (r *Rig) record(cmd Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.commands = append(r.commands, cmd)
	return nil
}
