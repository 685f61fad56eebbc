package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// StockMetrics records stock adjustment and binding commit outcomes.
type StockMetrics struct {
	adjustments    *prometheus.CounterVec
	commits        *prometheus.CounterVec
	commitDuration *prometheus.HistogramVec
}

// NewStockMetrics registers the stock metrics on the provided registerer.
func NewStockMetrics(reg prometheus.Registerer) *StockMetrics {
	if reg == nil {
		return &StockMetrics{}
	}
	adjustments := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "stock_adjustments_total",
		Help: "Manual stock adjustments by direction and outcome.",
	}, []string{"direction", "outcome"})
	commits := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "binding_commits_total",
		Help: "Binding commit attempts by outcome.",
	}, []string{"outcome"})
	commitDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "binding_commit_duration_seconds",
		Help:    "Duration of binding commits in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})
	reg.MustRegister(adjustments, commits, commitDuration)
	return &StockMetrics{
		adjustments:    adjustments,
		commits:        commits,
		commitDuration: commitDuration,
	}
}

// IncAdjustment counts one manual adjustment attempt.
func (m *StockMetrics) IncAdjustment(direction string, success bool) {
	if m == nil || m.adjustments == nil {
		return
	}
	m.adjustments.WithLabelValues(normalizeLabel(direction), outcomeLabel(success)).Inc()
}

// ObserveCommit counts one commit attempt and its duration.
func (m *StockMetrics) ObserveCommit(success bool, duration time.Duration) {
	if m == nil || m.commits == nil {
		return
	}
	outcome := outcomeLabel(success)
	m.commits.WithLabelValues(outcome).Inc()
	m.commitDuration.WithLabelValues(outcome).Observe(duration.Seconds())
}

func outcomeLabel(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
