package drive

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/teslashibe/go-firebot/internal/httpc"
)

// HTTPRig implements Rig using the hub daemon's HTTP API.
// This is the primary rig used when running against the physical rover.
//
// Sensor reads use a short-timeout client; motion posts use a long-timeout
// client because the daemon replies only once the motion has completed.
type HTTPRig struct {
	BaseURL string

	sensor *http.Client
	motion *http.Client
}

// NewHTTPRig creates a rig bound to the hub daemon at the given API URL,
// e.g. "http://192.168.4.21:8000".
func NewHTTPRig(baseURL string) *HTTPRig {
	return &HTTPRig{
		BaseURL: strings.TrimRight(baseURL, "/"),
		sensor:  httpc.Sensor,
		motion:  httpc.Motion,
	}
}

// Touching reports whether the front bumper is pressed.
func (r *HTTPRig) Touching() (bool, error) {
	var out struct {
		Touching bool `json:"touching"`
	}
	if err := r.getJSON(r.sensor, "/api/sensor/touch", &out); err != nil {
		return false, wrapDevice("touch", "read", err)
	}
	return out.Touching, nil
}

// DistanceMM reports the right-side ultrasonic range in millimeters.
func (r *HTTPRig) DistanceMM() (float64, error) {
	var out struct {
		DistanceMM float64 `json:"distance_mm"`
	}
	if err := r.getJSON(r.sensor, "/api/sensor/range", &out); err != nil {
		return 0, wrapDevice("range", "read", err)
	}
	return out.DistanceMM, nil
}

// AmbientLight reports ambient light intensity in device units.
func (r *HTTPRig) AmbientLight() (float64, error) {
	var out struct {
		Intensity float64 `json:"intensity"`
	}
	if err := r.getJSON(r.sensor, "/api/sensor/ambient", &out); err != nil {
		return 0, wrapDevice("ambient", "read", err)
	}
	return out.Intensity, nil
}

// SurfaceColor reports the color under the downward sensor.
func (r *HTTPRig) SurfaceColor() (Color, error) {
	var out struct {
		Color string `json:"color"`
	}
	if err := r.getJSON(r.sensor, "/api/sensor/color", &out); err != nil {
		return ColorNone, wrapDevice("color", "read", err)
	}
	c, err := ParseColor(out.Color)
	if err != nil {
		return ColorNone, wrapDevice("color", "read", err)
	}
	return c, nil
}

// Straight drives the given distance in millimeters. Blocks until done.
func (r *HTTPRig) Straight(distanceMM float64) error {
	payload := map[string]any{"distance_mm": distanceMM}
	if err := r.postJSON(r.motion, "/api/drive/straight", payload); err != nil {
		return wrapDevice("drivebase", "straight", err)
	}
	return nil
}

// Turn rotates in place by the given angle in degrees. Blocks until done.
func (r *HTTPRig) Turn(angleDeg float64) error {
	payload := map[string]any{"angle_deg": angleDeg}
	if err := r.postJSON(r.motion, "/api/drive/turn", payload); err != nil {
		return wrapDevice("drivebase", "turn", err)
	}
	return nil
}

// Stop halts the drive base immediately.
func (r *HTTPRig) Stop() error {
	if err := r.postJSON(r.sensor, "/api/drive/stop", map[string]any{}); err != nil {
		return wrapDevice("drivebase", "stop", err)
	}
	return nil
}

// RunTimed runs the fan motor at the given speed for the given duration.
// Blocks until the run completes.
func (r *HTTPRig) RunTimed(speed float64, duration time.Duration) error {
	payload := map[string]any{
		"speed":       speed,
		"duration_ms": duration.Milliseconds(),
	}
	if err := r.postJSON(r.motion, "/api/motor/fan/run", payload); err != nil {
		return wrapDevice("fan", "run", err)
	}
	return nil
}

// SetLight sets the hub status light.
func (r *HTTPRig) SetLight(color Color) error {
	payload := map[string]any{"color": color.String()}
	if err := r.postJSON(r.sensor, "/api/hub/light", payload); err != nil {
		return wrapDevice("hub", "light", err)
	}
	return nil
}

// Beep plays a tone on the hub speaker.
func (r *HTTPRig) Beep(freqHz int, duration time.Duration) error {
	payload := map[string]any{
		"frequency_hz": freqHz,
		"duration_ms":  duration.Milliseconds(),
	}
	if err := r.postJSON(r.sensor, "/api/hub/beep", payload); err != nil {
		return wrapDevice("hub", "beep", err)
	}
	return nil
}

// getJSON performs a GET against the hub daemon and decodes the JSON body.
func (r *HTTPRig) getJSON(client *http.Client, path string, out any) error {
	resp, err := client.Get(r.BaseURL + path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrHubUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: %s from %s", ErrBadStatus, resp.Status, path)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}

// postJSON performs a POST against the hub daemon.
func (r *HTTPRig) postJSON(client *http.Client, path string, payload map[string]any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", path, err)
	}

	resp, err := client.Post(r.BaseURL+path, "application/json", strings.NewReader(string(data)))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrHubUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: %s from %s", ErrBadStatus, resp.Status, path)
	}
	return nil
}
