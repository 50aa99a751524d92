package sim

import (
	"math"
	"sync"
	"time"

	"github.com/teslashibe/go-firebot/pkg/drive"
)

// Arena defaults, millimeters unless noted.
const (
	DefaultRoomMM     = 3000.0
	DefaultGoalRadius = 150.0
	robotRadiusMM     = 50.0
	maxRangeMM        = 2000.0

	backgroundLight = 8.0
	flamePeakLight  = 92.0
)

// Arena is a minimal 2D kinematic model of a square room with one candle.
// It implements drive.Rig: drive commands move an ideal robot pose and the
// sensors are derived geometrically from it. Good enough to run the whole
// mission loop without hardware; not a physics simulation.
type Arena struct {
	mu sync.Mutex

	widthMM  float64
	heightMM float64

	// Robot pose. Heading is degrees, counterclockwise positive, 0 = +x.
	// drive.Turn is clockwise positive, so Turn subtracts from heading.
	x, y, heading float64

	flameX, flameY float64
	goalRadiusMM   float64
	extinguished   bool

	touching  bool
	lastLight drive.Color
	beeps     int
}

var _ drive.Rig = (*Arena)(nil)

// NewArena creates a square room with the robot on one side and the candle
// across the floor from it. With the stock tuning the flame becomes visible
// partway through the wander leg, so a full mission exercises scan, wander,
// approach, and extinguish.
func NewArena() *Arena {
	return &Arena{
		widthMM:      DefaultRoomMM,
		heightMM:     DefaultRoomMM,
		x:            500,
		y:            500,
		heading:      0,
		flameX:       2400,
		flameY:       500,
		goalRadiusMM: DefaultGoalRadius,
	}
}

// Pose returns the robot position and heading in degrees.
func (a *Arena) Pose() (x, y, headingDeg float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.x, a.y, a.heading
}

// Extinguished reports whether the candle has been put out.
func (a *Arena) Extinguished() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.extinguished
}

// Beeps returns how many speaker tones have been played.
func (a *Arena) Beeps() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.beeps
}

// LastLight returns the last status light color set.
func (a *Arena) LastLight() drive.Color {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastLight
}

// Touching reports wall contact from the last drive command.
func (a *Arena) Touching() (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.touching, nil
}

// DistanceMM casts a ray out of the robot's right side to the room walls.
func (a *Arena) DistanceMM() (float64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	rightRad := deg2rad(a.heading - 90)
	dx, dy := math.Cos(rightRad), math.Sin(rightRad)

	t := maxRangeMM
	if dx > 0 {
		t = math.Min(t, (a.widthMM-a.x)/dx)
	} else if dx < 0 {
		t = math.Min(t, -a.x/dx)
	}
	if dy > 0 {
		t = math.Min(t, (a.heightMM-a.y)/dy)
	} else if dy < 0 {
		t = math.Min(t, -a.y/dy)
	}
	return math.Max(t, 0), nil
}

// AmbientLight models the candle as a directional light source: brightest
// when the robot faces it, falling off with distance.
func (a *Arena) AmbientLight() (float64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.extinguished {
		return backgroundLight, nil
	}

	dx, dy := a.flameX-a.x, a.flameY-a.y
	dist := math.Hypot(dx, dy)
	bearing := rad2deg(math.Atan2(dy, dx))

	facing := math.Cos(deg2rad(angleDiff(a.heading, bearing)))
	if facing < 0 {
		facing = 0
	}
	falloff := 1 / (1 + dist/1000)
	return backgroundLight + flamePeakLight*facing*falloff, nil
}

// SurfaceColor reports red while the robot stands on the goal tile.
func (a *Arena) SurfaceColor() (drive.Color, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.extinguished && math.Hypot(a.flameX-a.x, a.flameY-a.y) <= a.goalRadiusMM {
		return drive.ColorRed, nil
	}
	return drive.ColorWhite, nil
}

// Straight moves along the heading, clamping at the walls. Hitting a wall
// sets bumper contact until the next drive command moves the robot free.
func (a *Arena) Straight(distanceMM float64) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	rad := deg2rad(a.heading)
	nx := a.x + distanceMM*math.Cos(rad)
	ny := a.y + distanceMM*math.Sin(rad)

	cx := clampf(nx, robotRadiusMM, a.widthMM-robotRadiusMM)
	cy := clampf(ny, robotRadiusMM, a.heightMM-robotRadiusMM)

	a.touching = cx != nx || cy != ny
	a.x, a.y = cx, cy
	return nil
}

// Turn rotates in place. Positive is clockwise.
func (a *Arena) Turn(angleDeg float64) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.heading = normDeg(a.heading - angleDeg)
	return nil
}

// Stop is a no-op for the ideal robot.
func (a *Arena) Stop() error {
	return nil
}

// RunTimed puts out the candle if the fan runs while on the goal tile.
func (a *Arena) RunTimed(speed float64, duration time.Duration) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if math.Hypot(a.flameX-a.x, a.flameY-a.y) <= a.goalRadiusMM {
		a.extinguished = true
	}
	return nil
}

// SetLight records the status light color.
func (a *Arena) SetLight(color drive.Color) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.lastLight = color
	return nil
}

// Beep counts speaker tones.
func (a *Arena) Beep(freqHz int, duration time.Duration) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.beeps++
	return nil
}

func deg2rad(d float64) float64 { return d * math.Pi / 180 }
func rad2deg(r float64) float64 { return r * 180 / math.Pi }

// normDeg wraps an angle to [0, 360).
func normDeg(d float64) float64 {
	d = math.Mod(d, 360)
	if d < 0 {
		d += 360
	}
	return d
}

// angleDiff returns the absolute difference between two angles in [0, 180].
func angleDiff(a, b float64) float64 {
	d := math.Abs(normDeg(a) - normDeg(b))
	if d > 180 {
		d = 360 - d
	}
	return d
}

func clampf(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
