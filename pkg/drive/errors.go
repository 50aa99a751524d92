package drive

import (
	"errors"
	"fmt"
)

// Sentinel errors for hub daemon failures. A failing sensor or actuator is
// unrecoverable at this layer: callers should halt rather than continue on
// stale or undefined readings.
var (
	// ErrHubUnavailable is returned when the hub daemon cannot be reached.
	ErrHubUnavailable = errors.New("drive: hub daemon unavailable")

	// ErrBadStatus is returned when the hub daemon answers with a non-2xx status.
	ErrBadStatus = errors.New("drive: unexpected hub response status")
)

// DeviceError wraps a failure with the device and operation that caused it.
type DeviceError struct {
	Device string // "touch", "range", "drivebase", "fan", ...
	Op     string // "read", "straight", "turn", ...
	Err    error
}

// Error implements the error interface.
func (e *DeviceError) Error() string {
	return fmt.Sprintf("drive [%s/%s]: %v", e.Device, e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *DeviceError) Unwrap() error {
	return e.Err
}

// wrapDevice wraps an error with device context.
func wrapDevice(device, op string, err error) error {
	if err == nil {
		return nil
	}
	return &DeviceError{Device: device, Op: op, Err: err}
}
