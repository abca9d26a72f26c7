package observability

import (
	"context"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/inkling"
)

// Metrics holds the prometheus collectors fed by a Story's hooks.
type Metrics struct {
	Lookups *prometheus.CounterVec
	Visits  *prometheus.CounterVec
	Counted *prometheus.GaugeVec
}

// NewMetrics creates the collectors and registers them with reg.
// Pass prometheus.DefaultRegisterer to expose them on the default handler.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Lookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "inkling_content_lookups_total",
				Help: "Total number of content path lookups",
			},
			[]string{"story", "approximate"},
		),
		Visits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "inkling_container_visits_total",
				Help: "Total number of container entries reported",
			},
			[]string{"story", "container", "counted"},
		),
		Counted: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "inkling_container_visit_count",
				Help: "Latest visit count per container",
			},
			[]string{"story", "container"},
		),
	}

	for _, c := range []prometheus.Collector{m.Lookups, m.Visits, m.Counted} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Hooks returns story hooks that record into m.
func (m *Metrics) Hooks() inkling.Hooks {
	return inkling.Hooks{
		OnResolve: func(_ context.Context, e *inkling.ResolveEvent) {
			m.Lookups.WithLabelValues(e.Story, strconv.FormatBool(e.Approximate)).Inc()
		},
		OnVisit: func(_ context.Context, e *inkling.VisitEvent) {
			m.Visits.WithLabelValues(e.Story, e.Path, strconv.FormatBool(e.Counted)).Inc()
			if e.Visits > 0 {
				m.Counted.WithLabelValues(e.Story, e.Path).Set(float64(e.Visits))
			}
		},
	}
}
