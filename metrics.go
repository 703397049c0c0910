package grid

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts grid activity. A nil *Metrics records nothing.
type Metrics struct {
	recomputes      prometheus.Counter
	windowRows      prometheus.Histogram
	sorts           *prometheus.CounterVec
	resizeCommits   prometheus.Counter
	persistFailures *prometheus.CounterVec
}

// NewMetrics creates unregistered collectors.
func NewMetrics() *Metrics {
	return &Metrics{
		recomputes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "grid_window_recomputes_total",
			Help: "How many times the visible row window was recomputed",
		}),
		windowRows: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "grid_window_rows",
			Help:    "How many rows the computed window renders",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}),
		sorts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "grid_sorts_total",
			Help: "Sort toggles by resulting direction",
		}, []string{"direction"}),
		resizeCommits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "grid_resize_commits_total",
			Help: "Completed column resize drags",
		}),
		persistFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "grid_width_persistence_failures_total",
			Help: "Width persistence operations that failed and were ignored",
		}, []string{"op"}),
	}
}

// Register adds the collectors to reg. Collectors another grid already
// registered are shared instead of failing.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	var err error
	m.recomputes = registerOrReuse(reg, m.recomputes, &err)
	m.windowRows = registerOrReuse(reg, m.windowRows, &err)
	m.sorts = registerOrReuse(reg, m.sorts, &err)
	m.resizeCommits = registerOrReuse(reg, m.resizeCommits, &err)
	m.persistFailures = registerOrReuse(reg, m.persistFailures, &err)
	return err
}

func registerOrReuse[C prometheus.Collector](reg prometheus.Registerer, c C, errp *error) C {
	if *errp != nil {
		return c
	}
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing
			}
		}
		*errp = err
	}
	return c
}

func (m *Metrics) windowComputed(w Window) {
	if m == nil {
		return
	}
	m.recomputes.Inc()
	if !w.Empty() {
		m.windowRows.Observe(float64(w.Len()))
	}
}

func (m *Metrics) sorted(d SortDirection) {
	if m == nil {
		return
	}
	m.sorts.WithLabelValues(d.String()).Inc()
}

func (m *Metrics) resizeCommitted() {
	if m == nil {
		return
	}
	m.resizeCommits.Inc()
}

func (m *Metrics) persistFailed(op string) {
	if m == nil {
		return
	}
	m.persistFailures.WithLabelValues(op).Inc()
}
