package mission

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for the mission loop. Registered on the default
// registry and served by the dashboard's /metrics endpoint.
var (
	ticksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "firebot_ticks_total",
		Help: "Total mission control loop ticks.",
	})

	transitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "firebot_transitions_total",
		Help: "State machine transitions by source and destination state.",
	}, []string{"from", "to"})

	detectionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "firebot_detections_total",
		Help: "Positive detection predicate results by kind.",
	}, []string{"kind"})

	deviceErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "firebot_device_errors_total",
		Help: "Unrecoverable sensor or actuator errors.",
	})
)
