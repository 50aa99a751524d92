package mission

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/teslashibe/go-firebot/pkg/sim"
)

// Full mission against the simulated arena: scan, wander until the flame is
// visible, approach, extinguish, terminal complete.
func TestRun_CompletesInArena(t *testing.T) {
	arena := sim.NewArena()
	cfg := testConfig()
	c := New(arena, cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := c.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if got := c.State(); got != StateComplete {
		t.Errorf("state: got %v, want %v", got, StateComplete)
	}
	if !arena.Extinguished() {
		t.Error("candle still burning after mission complete")
	}
	st := c.Status()
	if st.Ticks == 0 || st.Transitions == 0 {
		t.Errorf("diagnostics: got %+v, want nonzero ticks and transitions", st)
	}
}

// A failing sensor is unrecoverable: the loop halts with the device error
// rather than continuing on undefined readings.
func TestRun_HaltsOnDeviceError(t *testing.T) {
	rig := sim.NewRig()
	devErr := errors.New("hub daemon gone")
	rig.FailWith(devErr)
	c := New(rig, testConfig())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := c.Run(ctx)
	if err == nil {
		t.Fatal("Run: got nil, want device error")
	}
	if !errors.Is(err, devErr) {
		t.Errorf("Run: got %v, want wrapped %v", err, devErr)
	}
}

func TestRun_CancelStopsDriveBase(t *testing.T) {
	rig := sim.NewRig()
	rig.PushAmbient(10) // keep the controller wandering
	c := New(rig, testConfig())

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)

	err := c.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run: got %v, want context.Canceled", err)
	}

	cmds := rig.Commands()
	if len(cmds) == 0 || cmds[len(cmds)-1].Op != "stop" {
		t.Errorf("commands: got %v, want a trailing stop on shutdown", cmds)
	}
}

func TestStatus_Snapshot(t *testing.T) {
	rig := sim.NewRig()
	rig.PushAmbient(10)
	c := New(rig, testConfig())

	if err := c.Update(); err != nil {
		t.Fatalf("Update: %v", err)
	}

	st := c.Status()
	if st.State != "wander" {
		t.Errorf("state: got %q, want %q", st.State, "wander")
	}
	if st.Ticks != 1 {
		t.Errorf("ticks: got %d, want 1", st.Ticks)
	}
	if !floatEquals(st.LastAmbient, 10) {
		t.Errorf("last ambient: got %v, want 10", st.LastAmbient)
	}
	if st.RunID == "" {
		t.Error("run id: empty")
	}
}
