// Firebot-sim - run the full firefighting mission in a simulated arena
//
// Same controller and supervisor API as cmd/firebot, wired to the 2D arena
// instead of the hub daemon. Useful for tuning behavior without a robot.
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/teslashibe/go-firebot/internal/config"
	"github.com/teslashibe/go-firebot/internal/log"
	"github.com/teslashibe/go-firebot/pkg/mission"
	"github.com/teslashibe/go-firebot/pkg/sim"
	"github.com/teslashibe/go-firebot/pkg/web"
)

func main() {
	webPort := flag.String("web-port", config.WebPort(), "Supervisor API port")
	tick := flag.Duration("tick", 5*time.Millisecond, "Simulated control loop tick")
	timeout := flag.Duration("timeout", 2*time.Minute, "Give up after this long")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	level := config.LogLevel()
	if *debug {
		level = "debug"
	}
	log.Init(level)

	// Simulation runs faster than real time: short tick, no fan spin-up
	// or cooldown to wait out.
	cfg := mission.DefaultConfig()
	cfg.TickInterval = mission.Duration(*tick)
	cfg.FanRunTime = mission.Duration(10 * time.Millisecond)
	cfg.Cooldown = 0

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	ctx, cancelTimeout := context.WithTimeout(ctx, *timeout)
	defer cancelTimeout()

	arena := sim.NewArena()
	ctrl := mission.New(arena, cfg)

	server := web.NewServer(*webPort, ctrl)
	ctrl.SetSink(server)
	server.StartAsync()
	defer server.Shutdown()

	log.Info("simulated mission starting", "web_port", *webPort, "tick", tick.String())

	err := ctrl.Run(ctx)

	x, y, heading := arena.Pose()
	status := ctrl.Status()
	log.Info("simulation finished",
		"state", status.State,
		"ticks", status.Ticks,
		"transitions", status.Transitions,
		"extinguished", arena.Extinguished(),
		"x_mm", x, "y_mm", y, "heading_deg", heading)

	if err != nil && !errors.Is(err, context.Canceled) {
		log.Error("simulated mission failed", "error", err)
		os.Exit(1)
	}
}
