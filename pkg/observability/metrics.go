package observability

import (
	"context"

	"github.com/aretw0/cellfill/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the cellfill collectors.
type Metrics struct {
	CellsCreated *prometheus.CounterVec
	LifeSpawned  prometheus.Counter
	Prunes       prometheus.Counter
	CellsPruned  prometheus.Counter
	Length       prometheus.Histogram
}

// NewMetrics creates the collectors and registers them on reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		CellsCreated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cellfill_cells_created_total",
				Help: "Total number of drawn cells, by tag",
			},
			[]string{"tag"},
		),
		LifeSpawned: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cellfill_life_spawned_total",
			Help: "Total number of Life cells spawned by three Alive cells",
		}),
		Prunes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cellfill_prune_total",
			Help: "Total number of times three Dead cells matched",
		}),
		CellsPruned: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cellfill_cells_pruned_total",
			Help: "Total number of Alive cells removed by the prune rule",
		}),
		Length: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "cellfill_sequence_length",
			Help:    "Sequence length observed after each create",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}),
	}
	if reg != nil {
		reg.MustRegister(m.CellsCreated, m.LifeSpawned, m.Prunes, m.CellsPruned, m.Length)
	}
	return m
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnAppend: func(ctx context.Context, e *domain.CellEvent) {
			m.CellsCreated.WithLabelValues(e.Outcome.Drawn.String()).Inc()
			m.Length.Observe(float64(e.Length))
		},
		OnSpawn: func(ctx context.Context, e *domain.CellEvent) {
			m.LifeSpawned.Inc()
		},
		OnPrune: func(ctx context.Context, e *domain.CellEvent) {
			m.Prunes.Inc()
			m.CellsPruned.Add(float64(e.Outcome.Removed))
		},
	}
}
