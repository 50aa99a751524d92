// Package httpc provides shared HTTP clients with sensible defaults.
// Use these instead of http.DefaultClient to ensure timeouts are set.
//
// Two clients are exposed because the hub daemon has two very different
// response profiles: sensor reads return within milliseconds, while motion
// endpoints reply only once the physical motion has completed.
package httpc

import (
	"net"
	"net/http"
	"time"
)

// Default timeouts for hub daemon operations.
const (
	DefaultSensorTimeout   = 2 * time.Second
	DefaultMotionTimeout   = 60 * time.Second
	DefaultConnectTimeout  = 5 * time.Second
	DefaultKeepAlive       = 30 * time.Second
	DefaultIdleConnTimeout = 90 * time.Second
)

// Sensor is the shared client for fast sensor and indicator requests.
var Sensor = NewClient(DefaultSensorTimeout)

// Motion is the shared client for blocking motion requests. The hub daemon
// holds the response until the drive base or fan finishes, so the timeout
// has to cover the longest plausible single motion.
var Motion = NewClient(DefaultMotionTimeout)

// NewClient creates a new HTTP client with the specified overall timeout.
func NewClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   DefaultConnectTimeout,
				KeepAlive: DefaultKeepAlive,
			}).DialContext,
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 4,
			IdleConnTimeout:     DefaultIdleConnTimeout,
		},
	}
}
