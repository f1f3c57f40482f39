package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var Metrics = struct {
	CommandsTotal   *prometheus.CounterVec
	CommandDuration *prometheus.HistogramVec
	OutboundTotal   *prometheus.CounterVec
	QueueDropped    prometheus.Counter
	ActiveSessions  prometheus.Gauge
}{
	CommandsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "vtprovider",
		Name:      "commands_total",
		Help:      "Inbound commands handled by kind and status.",
	}, []string{"kind", "status"}),

	CommandDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "vtprovider",
		Name:      "command_duration_seconds",
		Help:      "Time spent in a handler hook per command kind.",
		Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
	}, []string{"kind"}),

	OutboundTotal: promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "vtprovider",
		Name:      "outbound_events_total",
		Help:      "Outbound events by event name and status (delivered, no_callback, error).",
	}, []string{"event", "status"}),

	QueueDropped: promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "vtprovider",
		Name:      "queue_dropped_total",
		Help:      "Inbound commands dropped because the looper queue was full or closed.",
	}),

	ActiveSessions: promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "vtprovider",
		Name:      "active_sessions",
		Help:      "Number of controller sessions with a live provider.",
	}),
}
