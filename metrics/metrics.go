package metrics

import (
	"net/http"
	"time"

	"fluids/model"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	calculationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fluids_calculations_total",
			Help: "Total number of curve/operating point calculations by outcome.",
		},
		[]string{"outcome"},
	)

	calculationDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "fluids_calculation_duration_seconds",
			Help:    "Duration of one curve/operating point calculation.",
			Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
		},
	)

	sweepPointsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "fluids_sweep_points_total",
			Help: "Total number of parameter values evaluated by sweeps.",
		},
	)

	activeSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "fluids_websocket_sessions",
			Help: "Number of connected websocket sessions.",
		},
	)

	messagesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fluids_websocket_messages_total",
			Help: "Total number of websocket messages received by type.",
		},
		[]string{"type"},
	)
)

func init() {
	prometheus.MustRegister(calculationsTotal)
	prometheus.MustRegister(calculationDurationSeconds)
	prometheus.MustRegister(sweepPointsTotal)
	prometheus.MustRegister(activeSessions)
	prometheus.MustRegister(messagesTotal)
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordCalculation counts one calculation and observes its duration.
func RecordCalculation(outcome string, d time.Duration) {
	calculationsTotal.WithLabelValues(outcome).Inc()
	calculationDurationSeconds.Observe(d.Seconds())
}

func AddSweepPoints(n int) {
	sweepPointsTotal.Add(float64(n))
}

func SessionOpened() {
	activeSessions.Inc()
}

func SessionClosed() {
	activeSessions.Dec()
}

// RecordMessage counts a received message. Unknown types share one label.
func RecordMessage(msgType string) {
	messagesTotal.WithLabelValues(normalizeType(msgType)).Inc()
}

var knownTypes = map[string]bool{
	model.MsgEnv:       true,
	model.MsgCalculate: true,
	model.MsgSweep:     true,
	model.MsgRanges:    true,
}

func normalizeType(msgType string) string {
	if knownTypes[msgType] {
		return msgType
	}
	return "other"
}
