package sim

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/teslashibe/go-firebot/pkg/drive"
)

func TestArena_RightSideRange(t *testing.T) {
	a := NewArena()

	// Heading +x, right side faces -y: the south wall is 500mm away.
	dist, err := a.DistanceMM()
	if err != nil {
		t.Fatalf("DistanceMM: %v", err)
	}
	if math.Abs(dist-500) > 1e-6 {
		t.Errorf("range: got %v, want 500", dist)
	}

	// Turn counterclockwise to face +y: the right side now faces +x, but the
	// east wall is beyond sensor range.
	if err := a.Turn(-90); err != nil {
		t.Fatal(err)
	}
	dist, err = a.DistanceMM()
	if err != nil {
		t.Fatalf("DistanceMM: %v", err)
	}
	if math.Abs(dist-maxRangeMM) > 1e-6 {
		t.Errorf("range: got %v, want capped at %v", dist, maxRangeMM)
	}
}

func TestArena_StraightClampsAtWall(t *testing.T) {
	a := NewArena()

	if err := a.Straight(5000); err != nil {
		t.Fatal(err)
	}
	touching, err := a.Touching()
	if err != nil {
		t.Fatal(err)
	}
	if !touching {
		t.Error("touching: got false, want true after driving into the wall")
	}

	x, _, _ := a.Pose()
	if math.Abs(x-(DefaultRoomMM-robotRadiusMM)) > 1e-6 {
		t.Errorf("x: got %v, want clamped at %v", x, DefaultRoomMM-robotRadiusMM)
	}

	// Backing off clears the contact.
	if err := a.Straight(-100); err != nil {
		t.Fatal(err)
	}
	touching, _ = a.Touching()
	if touching {
		t.Error("touching: got true, want false after backing off")
	}
}

func TestArena_AmbientRisesTowardFlame(t *testing.T) {
	a := NewArena()

	far, err := a.AmbientLight()
	if err != nil {
		t.Fatal(err)
	}
	if err := a.Straight(900); err != nil {
		t.Fatal(err)
	}
	near, err := a.AmbientLight()
	if err != nil {
		t.Fatal(err)
	}
	if near <= far {
		t.Errorf("ambient: got far=%v near=%v, want rising toward the flame", far, near)
	}

	// Facing away from the flame drops to background level.
	if err := a.Turn(180); err != nil {
		t.Fatal(err)
	}
	away, err := a.AmbientLight()
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(away-backgroundLight) > 1e-6 {
		t.Errorf("ambient facing away: got %v, want background %v", away, backgroundLight)
	}
}

func TestArena_GoalTileAndExtinguish(t *testing.T) {
	a := NewArena()

	color, err := a.SurfaceColor()
	if err != nil {
		t.Fatal(err)
	}
	if color != drive.ColorWhite {
		t.Errorf("surface off-goal: got %v, want white", color)
	}

	// Fan away from the goal does nothing.
	if err := a.RunTimed(1000, time.Millisecond); err != nil {
		t.Fatal(err)
	}
	if a.Extinguished() {
		t.Error("extinguished away from the goal tile")
	}

	// Drive onto the goal tile and extinguish.
	if err := a.Straight(1900); err != nil {
		t.Fatal(err)
	}
	color, _ = a.SurfaceColor()
	if color != drive.ColorRed {
		t.Errorf("surface on goal: got %v, want red", color)
	}
	if err := a.RunTimed(1000, time.Millisecond); err != nil {
		t.Fatal(err)
	}
	if !a.Extinguished() {
		t.Error("candle still burning after fan run on the goal tile")
	}

	// Out candle: no more glow, no more goal tile.
	light, _ := a.AmbientLight()
	if math.Abs(light-backgroundLight) > 1e-6 {
		t.Errorf("ambient after extinguish: got %v, want background", light)
	}
	color, _ = a.SurfaceColor()
	if color != drive.ColorWhite {
		t.Errorf("surface after extinguish: got %v, want white", color)
	}
}

func TestRig_LastReadingSticks(t *testing.T) {
	r := NewRig()
	r.PushAmbient(10, 20)

	for i, want := range []float64{10, 20, 20, 20} {
		got, err := r.AmbientLight()
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("read %d: got %v, want %v", i, got, want)
		}
	}
}

func TestRig_FailureInjection(t *testing.T) {
	r := NewRig()
	r.PushTouch(true)
	r.FailWith(errTest)

	if _, err := r.Touching(); err != errTest {
		t.Errorf("Touching: got %v, want injected error", err)
	}
	if err := r.Straight(100); err != errTest {
		t.Errorf("Straight: got %v, want injected error", err)
	}
	if len(r.Commands()) != 0 {
		t.Error("commands recorded despite injected failure")
	}
}

var errTest = errors.New("injected failure")
