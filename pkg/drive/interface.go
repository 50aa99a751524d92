// Package drive defines the hardware capability interfaces for the firebot
// rover and the HTTP binding to the hub daemon.
//
// This package follows the Interface Segregation Principle (ISP) by defining
// small, focused interfaces that can be composed as needed. Consumers should
// depend only on the capabilities they actually use; the mission controller
// takes the composite Rig.
//
// All motion calls are blocking: they return only once the physical motion or
// actuator run has completed. The control loop is single-threaded with respect
// to motion, so no two motion commands are ever in flight at the same time.
package drive

import "time"

// TouchSensor reports bumper contact.
type TouchSensor interface {
	Touching() (bool, error)
}

// RangeSensor reports the lateral distance to the nearest obstacle on the
// robot's right side, in millimeters.
type RangeSensor interface {
	DistanceMM() (float64, error)
}

// LightSensor reports ambient light intensity in device units.
type LightSensor interface {
	AmbientLight() (float64, error)
}

// ColorSensor reports the color of the surface under the robot.
type ColorSensor interface {
	SurfaceColor() (Color, error)
}

// SensorArray is the composite sensor interface. Readings are sampled fresh
// on every call; nothing is cached between reads.
type SensorArray interface {
	TouchSensor
	RangeSensor
	LightSensor
	ColorSensor
}

// DriveBase provides synchronous differential-drive motion primitives.
type DriveBase interface {
	// Straight drives the given distance in millimeters.
	// Negative distances reverse.
	Straight(distanceMM float64) error

	// Turn rotates in place by the given angle in degrees.
	// Positive is clockwise, negative counterclockwise.
	Turn(angleDeg float64) error

	// Stop halts the drive base immediately.
	Stop() error
}

// Actuator provides timed runs of an auxiliary motor (the extinguisher fan).
type Actuator interface {
	RunTimed(speed float64, duration time.Duration) error
}

// Indicator provides the hub's status light and speaker.
// These are best-effort side channels, not part of the control contract.
type Indicator interface {
	SetLight(color Color) error
	Beep(freqHz int, duration time.Duration) error
}

// Rig is the composite interface for the full rover: every sensor and
// actuator the mission controller needs.
type Rig interface {
	SensorArray
	DriveBase
	Actuator
	Indicator
}

// Ensure HTTPRig implements Rig
var _ Rig = (*HTTPRig)(nil)
