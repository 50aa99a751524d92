// Firebot - autonomous fire-seeking rover controller
//
// Connects to the hub daemon over HTTP, runs the firefighting mission loop,
// and serves the supervisor API.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/teslashibe/go-firebot/internal/config"
	"github.com/teslashibe/go-firebot/internal/log"
	"github.com/teslashibe/go-firebot/pkg/drive"
	"github.com/teslashibe/go-firebot/pkg/mission"
	"github.com/teslashibe/go-firebot/pkg/web"
)

func main() {
	hubAddr := flag.String("hub", config.HubAddr(""), "Hub daemon address (or set FIREBOT_HUB)")
	webPort := flag.String("web-port", config.WebPort(), "Supervisor API port")
	tuning := flag.String("tuning", config.TuningFile(), "YAML tuning file (optional)")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	level := config.LogLevel()
	if *debug {
		level = "debug"
	}
	log.Init(level)

	addr := *hubAddr
	if addr == "" {
		addr = config.HubAddrRequired()
	}

	cfg := mission.DefaultConfig()
	if *tuning != "" {
		var err error
		cfg, err = mission.LoadConfig(*tuning)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load tuning file: %v\n", err)
			os.Exit(1)
		}
		log.Info("tuning loaded", "file", *tuning)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	rig := drive.NewHTTPRig(config.HubAPIURL(addr))
	ctrl := mission.New(rig, cfg)

	server := web.NewServer(*webPort, ctrl)
	ctrl.SetSink(server)
	server.StartAsync()
	defer server.Shutdown()

	log.Info("firebot starting", "hub", addr, "web_port", *webPort)

	if err := ctrl.Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			log.Info("mission cancelled")
			return
		}
		log.Error("mission failed", "error", err)
		os.Exit(1)
	}
}
