// Package metrics defines the Prometheus collectors recorded by the flows.
package metrics

import (
	"errors"
	"time"

	"github.com/SaiNageswarS/paper-agent/schema"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors for generation round trips, tool runs and
// flow failures. A nil *Metrics records nothing.
type Metrics struct {
	GenerationsTotal   *prometheus.CounterVec
	GenerationDuration *prometheus.HistogramVec
	ToolCallsTotal     *prometheus.CounterVec
	FlowFailuresTotal  *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		GenerationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "paper_agent_generations_total",
				Help: "Generation round trips by operation and outcome (ok, error, timeout).",
			},
			[]string{"op", "outcome"},
		),
		GenerationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "paper_agent_generation_duration_seconds",
				Help:    "Generation round trip latency in seconds.",
				Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60, 120},
			},
			[]string{"op"},
		),
		ToolCallsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "paper_agent_tool_calls_total",
				Help: "Tool calls executed on behalf of the model.",
			},
			[]string{"tool"},
		),
		FlowFailuresTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "paper_agent_flow_failures_total",
				Help: "Failed operations by failure kind.",
			},
			[]string{"op", "kind"},
		),
	}

	reg.MustRegister(
		m.GenerationsTotal,
		m.GenerationDuration,
		m.ToolCallsTotal,
		m.FlowFailuresTotal,
	)
	return m
}

func (m *Metrics) ObserveGeneration(op string, start time.Time, err error) {
	if m == nil {
		return
	}
	m.GenerationDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	m.GenerationsTotal.WithLabelValues(op, outcome(err)).Inc()
}

func (m *Metrics) ObserveToolCall(tool string) {
	if m == nil {
		return
	}
	m.ToolCallsTotal.WithLabelValues(tool).Inc()
}

func (m *Metrics) ObserveFailure(op string, err error) {
	if m == nil {
		return
	}
	m.FlowFailuresTotal.WithLabelValues(op, Kind(err)).Inc()
}

// Kind names the failure class of err for labelling.
func Kind(err error) string {
	switch {
	case errors.Is(err, schema.ErrTimeout):
		return "timeout"
	case errors.Is(err, schema.ErrUnsupportedMediaType):
		return "unsupported_media_type"
	case errors.Is(err, schema.ErrValidation):
		return "validation"
	case errors.Is(err, schema.ErrNoPdfFound):
		return "no_pdf_found"
	case errors.Is(err, schema.ErrGeneration):
		return "generation"
	default:
		return "unknown"
	}
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, schema.ErrTimeout):
		return "timeout"
	default:
		return "error"
	}
}
