package tairclient

import (
	"errors"
	"strings"

	"github.com/gomodule/redigo/redis"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts commands and dials and tracks how long callers wait for
// a pooled connection. Register it with a prometheus.Registerer and pass
// it to WithMetrics. A nil *Metrics records nothing.
type Metrics struct {
	commands       *prometheus.CounterVec
	dials          *prometheus.CounterVec
	borrowDuration prometheus.Histogram
}

const (
	outcomeOK           = "ok"
	outcomeRejected     = "rejected"
	outcomeNoConnection = "no_connection"
	outcomeError        = "error"
)

// NewMetrics creates an unregistered set of client metrics under the
// given namespace.
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "client",
			Name:      "commands_total",
			Help:      "Commands issued, partitioned by command name and outcome.",
		}, []string{"command", "outcome"}),
		dials: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "client",
			Name:      "dials_total",
			Help:      "Connection attempts, partitioned by outcome.",
		}, []string{"outcome"}),
		borrowDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "client",
			Name:      "borrow_duration_seconds",
			Help:      "Time spent waiting for a pooled connection.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		}),
	}
}

func (m *Metrics) Describe(ch chan<- *prometheus.Desc) {
	m.commands.Describe(ch)
	m.dials.Describe(ch)
	m.borrowDuration.Describe(ch)
}

func (m *Metrics) Collect(ch chan<- prometheus.Metric) {
	m.commands.Collect(ch)
	m.dials.Collect(ch)
	m.borrowDuration.Collect(ch)
}

func (m *Metrics) observeCommand(command string, err error) {
	if m == nil {
		return
	}

	m.commands.WithLabelValues(strings.ToUpper(command), outcome(err)).Inc()
}

func (m *Metrics) observeDial(err error) {
	if m == nil {
		return
	}

	m.dials.WithLabelValues(outcome(err)).Inc()
}

func (m *Metrics) observeBorrow(seconds float64) {
	if m == nil {
		return
	}

	m.borrowDuration.Observe(seconds)
}

func outcome(err error) string {
	if err == nil {
		return outcomeOK
	}

	if errors.Is(err, ErrNoConnection) {
		return outcomeNoConnection
	}

	var serverErr redis.Error
	if errors.As(err, &serverErr) {
		return outcomeRejected
	}

	return outcomeError
}
