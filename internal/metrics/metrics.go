// Package metrics exposes the core's runtime counters and gauges as
// real Prometheus collectors. No HTTP exposition is wired here: the
// core has no transport layer, so a caller that wants /metrics owns
// registering these into its own promhttp handler.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Collectors bundles every metric the core populates during one or
// more Optimise invocations.
type Collectors struct {
	OptimiseTotal        *prometheus.CounterVec
	OptimiseDuration     prometheus.Histogram
	SolverFallbackTotal  *prometheus.CounterVec
	RosterObjective      prometheus.Gauge
	BayAccessDispersion  prometheus.Gauge
	ConstraintViolations *prometheus.CounterVec
}

// NewCollectors constructs a fresh set of collectors and registers
// them into reg. Passing prometheus.NewRegistry() keeps them isolated
// for tests; passing prometheus.DefaultRegisterer wires them into the
// process-wide registry.
func NewCollectors(reg prometheus.Registerer) *Collectors {
	c := &Collectors{
		OptimiseTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "induct_optimise_total",
			Help: "Total number of Optimise invocations by terminal status.",
		}, []string{"status"}),
		OptimiseDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "induct_optimise_duration_seconds",
			Help:    "Wall-clock duration of Optimise invocations.",
			Buckets: prometheus.DefBuckets,
		}),
		SolverFallbackTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "induct_solver_fallback_total",
			Help: "Total number of invocations that fell back to the greedy solver.",
		}, []string{"reason"}),
		RosterObjective: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "induct_roster_objective",
			Help: "Objective value of the most recently produced roster.",
		}),
		BayAccessDispersion: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "induct_bay_access_dispersion",
			Help: "Gini coefficient of bay position_order across the selected roster.",
		}),
		ConstraintViolations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "induct_constraint_violations_total",
			Help: "Total soft-constraint violations observed, by rule name.",
		}, []string{"rule"}),
	}
	reg.MustRegister(
		c.OptimiseTotal,
		c.OptimiseDuration,
		c.SolverFallbackTotal,
		c.RosterObjective,
		c.BayAccessDispersion,
		c.ConstraintViolations,
	)
	return c
}

// RecordOptimise records one completed Optimise invocation.
func (c *Collectors) RecordOptimise(status string, durationSeconds float64, objective int) {
	c.OptimiseTotal.WithLabelValues(status).Inc()
	c.OptimiseDuration.Observe(durationSeconds)
	c.RosterObjective.Set(float64(objective))
}

// RecordFallback records that the greedy fallback was used.
func (c *Collectors) RecordFallback(reason string) {
	c.SolverFallbackTotal.WithLabelValues(reason).Inc()
}

// RecordViolations records each named soft-constraint violation.
func (c *Collectors) RecordViolations(rules []string) {
	for _, r := range rules {
		c.ConstraintViolations.WithLabelValues(r).Inc()
	}
}

// SetBayAccessDispersion records the compliance reporter's Gini metric.
func (c *Collectors) SetBayAccessDispersion(v float64) {
	c.BayAccessDispersion.Set(v)
}
