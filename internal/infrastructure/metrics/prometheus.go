package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"clubvenue/internal/ports/output"
)

var _ output.Metrics = (*Prometheus)(nil)

// Prometheus records workflow metrics in a registry.
type Prometheus struct {
	availabilityQueries prometheus.Counter
	venuesFound         prometheus.Histogram
	approvals           *prometheus.CounterVec
	sweepItems          *prometheus.CounterVec
	sweepDuration       prometheus.Histogram
}

// New registers the collectors on reg. Use prometheus.DefaultRegisterer in production.
func New(reg prometheus.Registerer) *Prometheus {
	factory := promauto.With(reg)
	return &Prometheus{
		availabilityQueries: factory.NewCounter(prometheus.CounterOpts{
			Name: "clubvenue_availability_queries_total",
			Help: "Total venue availability queries",
		}),
		venuesFound: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "clubvenue_available_venues",
			Help:    "Number of venues returned per availability query",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50},
		}),
		approvals: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "clubvenue_approvals_total",
			Help: "Approval workflow outcomes",
		}, []string{"outcome"}),
		sweepItems: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "clubvenue_sweep_items_total",
			Help: "Items visited by the expiry sweeper",
		}, []string{"kind", "result"}),
		sweepDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "clubvenue_sweep_duration_seconds",
			Help:    "Duration of one expiry sweep",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
		}),
	}
}

func (p *Prometheus) AvailabilityQueried(found int) {
	p.availabilityQueries.Inc()
	p.venuesFound.Observe(float64(found))
}

func (p *Prometheus) ApprovalFinished(outcome string) {
	p.approvals.WithLabelValues(outcome).Inc()
}

func (p *Prometheus) SweepItem(kind, result string) {
	p.sweepItems.WithLabelValues(kind, result).Inc()
}

func (p *Prometheus) SweepFinished(d time.Duration) {
	p.sweepDuration.Observe(d.Seconds())
}
