// Package config provides environment configuration helpers for firebot commands.
package config

import (
	"fmt"
	"os"
)

// Default endpoints for the hub daemon and dashboard.
const (
	DefaultHubPort = "8000"
	DefaultWebPort = "8090"
)

// HubAddr returns the hub daemon address from the FIREBOT_HUB env var.
// Falls back to the provided default if not set.
func HubAddr(defaultAddr string) string {
	if addr := os.Getenv("FIREBOT_HUB"); addr != "" {
		return addr
	}
	return defaultAddr
}

// HubAddrRequired returns the hub daemon address from the FIREBOT_HUB env var.
// Exits if not set.
func HubAddrRequired() string {
	addr := os.Getenv("FIREBOT_HUB")
	if addr == "" {
		fmt.Fprintln(os.Stderr, "Error: FIREBOT_HUB environment variable is required")
		fmt.Fprintln(os.Stderr, "Usage: FIREBOT_HUB=192.168.4.21 go run ./cmd/firebot")
		os.Exit(1)
	}
	return addr
}

// HubAPIURL returns the hub daemon HTTP API URL for the given address.
func HubAPIURL(hubAddr string) string {
	return fmt.Sprintf("http://%s:%s", hubAddr, DefaultHubPort)
}

// WebPort returns the dashboard port from FIREBOT_WEB_PORT or the default.
func WebPort() string {
	if port := os.Getenv("FIREBOT_WEB_PORT"); port != "" {
		return port
	}
	return DefaultWebPort
}

// LogLevel returns the log level from FIREBOT_LOG_LEVEL or "info".
func LogLevel() string {
	if level := os.Getenv("FIREBOT_LOG_LEVEL"); level != "" {
		return level
	}
	return "info"
}

// TuningFile returns the tuning file path from FIREBOT_TUNING, or "" if unset.
func TuningFile() string {
	return os.Getenv("FIREBOT_TUNING")
}
