// Package metrics exposes a solver's Statistics as Prometheus gauges. The
// core itself never imports Prometheus (§6: statistics are "write-only
// from the core's perspective"); this package is the one place that
// reads them for external consumption.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/satforge/cdcl/sat"
)

// Collector adapts a solver's statistics snapshot function into a
// prometheus.Collector, polling it fresh on every scrape.
type Collector struct {
	snapshot func() sat.Statistics

	conflicts    *prometheus.Desc
	decisions    *prometheus.Desc
	propagations *prometheus.Desc
	restarts     *prometheus.Desc
	reusedLevels *prometheus.Desc
	reductions   *prometheus.Desc
	modeSwitches *prometheus.Desc
	ticks        *prometheus.Desc
}

// NewCollector wraps a snapshot function (typically (*sat.Solver).Stats)
// for registration with a prometheus.Registry.
func NewCollector(snapshot func() sat.Statistics) *Collector {
	return &Collector{
		snapshot: snapshot,
		conflicts: prometheus.NewDesc(
			"cdcl_conflicts_total", "Total conflicts encountered.", nil, nil),
		decisions: prometheus.NewDesc(
			"cdcl_decisions_total", "Total decisions made, by source.", []string{"source"}, nil),
		propagations: prometheus.NewDesc(
			"cdcl_propagations_total", "Total unit propagations performed.", nil, nil),
		restarts: prometheus.NewDesc(
			"cdcl_restarts_total", "Total restarts performed.", nil, nil),
		reusedLevels: prometheus.NewDesc(
			"cdcl_reused_trail_levels_total", "Total decision levels reused across restarts.", nil, nil),
		reductions: prometheus.NewDesc(
			"cdcl_reductions_total", "Total clause database reductions performed.", nil, nil),
		modeSwitches: prometheus.NewDesc(
			"cdcl_mode_switches_total", "Total stable/focused mode switches.", nil, nil),
		ticks: prometheus.NewDesc(
			"cdcl_ticks_total", "Total virtual clock ticks spent.", nil, nil),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.conflicts
	ch <- c.decisions
	ch <- c.propagations
	ch <- c.restarts
	ch <- c.reusedLevels
	ch <- c.reductions
	ch <- c.modeSwitches
	ch <- c.ticks
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	s := c.snapshot()
	ch <- prometheus.MustNewConstMetric(c.conflicts, prometheus.CounterValue, float64(s.Conflicts))
	ch <- prometheus.MustNewConstMetric(c.decisions, prometheus.CounterValue, float64(s.DecisionsRandom), "random")
	ch <- prometheus.MustNewConstMetric(c.decisions, prometheus.CounterValue, float64(s.DecisionsScore), "score")
	ch <- prometheus.MustNewConstMetric(c.decisions, prometheus.CounterValue, float64(s.DecisionsQueue), "queue")
	ch <- prometheus.MustNewConstMetric(c.decisions, prometheus.CounterValue, float64(s.DecisionsWarming), "warming")
	ch <- prometheus.MustNewConstMetric(c.decisions, prometheus.CounterValue, float64(s.DecisionsInitial), "initial")
	ch <- prometheus.MustNewConstMetric(c.decisions, prometheus.CounterValue, float64(s.DecisionsTarget), "target")
	ch <- prometheus.MustNewConstMetric(c.decisions, prometheus.CounterValue, float64(s.DecisionsSaved), "saved")
	ch <- prometheus.MustNewConstMetric(c.propagations, prometheus.CounterValue, float64(s.Propagations))
	ch <- prometheus.MustNewConstMetric(c.restarts, prometheus.CounterValue, float64(s.Restarts))
	ch <- prometheus.MustNewConstMetric(c.reusedLevels, prometheus.CounterValue, float64(s.ReusedLevels))
	ch <- prometheus.MustNewConstMetric(c.reductions, prometheus.CounterValue, float64(s.Reductions))
	ch <- prometheus.MustNewConstMetric(c.modeSwitches, prometheus.CounterValue, float64(s.ModeSwitches))
	ch <- prometheus.MustNewConstMetric(c.ticks, prometheus.CounterValue, float64(s.Ticks))
}
