package contract

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for contract calls.
type Metrics struct {
	// Calls by operation and outcome ("ok" or the error code)
	Calls *prometheus.CounterVec

	// Call latency including commit
	CallDuration *prometheus.HistogramVec

	// Finalize results ("verified" or the error code)
	Verifications *prometheus.CounterVec
}

// NewMetrics registers the contract metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Calls: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "chocolate_contract_calls_total",
			Help: "Total contract calls by operation and outcome",
		}, []string{"op", "outcome"}),

		CallDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "chocolate_contract_call_duration_seconds",
			Help:    "Duration of contract calls including the storage commit",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"op"}),

		Verifications: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "chocolate_verifications_total",
			Help: "Verification finalize attempts by result",
		}, []string{"result"}),
	}
}

func (m *Metrics) observeCall(op, outcome string, d time.Duration) {
	if m != nil {
		m.Calls.WithLabelValues(op, outcome).Inc()
		m.CallDuration.WithLabelValues(op).Observe(d.Seconds())
	}
}

func (m *Metrics) incrementVerification(result string) {
	if m != nil {
		m.Verifications.WithLabelValues(result).Inc()
	}
}
