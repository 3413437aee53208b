// Package prometheus exports orchestrator statistics and cleanup pass metrics as
// Prometheus metrics.
package prometheus

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jmgilman/go/cachemgr"
)

const namespace = "cachemgr"

// Source is the read side of an orchestrator. *cachemgr.Orchestrator implements it.
type Source interface {
	GetGlobalStatistics(ctx context.Context) cachemgr.GlobalStatistics
	Metrics() cachemgr.MetricsSnapshot
}

// Collector implements prometheus.Collector. Values are read from the source at
// scrape time, so the collector holds no state of its own.
type Collector struct {
	source  Source
	timeout time.Duration

	moduleItems    *prometheus.Desc
	moduleMemory   *prometheus.Desc
	moduleHits     *prometheus.Desc
	moduleMisses   *prometheus.Desc
	moduleHitRate  *prometheus.Desc
	moduleErrors   *prometheus.Desc
	activeModules  *prometheus.Desc
	globalHitRate  *prometheus.Desc
	memoryPressure *prometheus.Desc
	passes         *prometheus.Desc
	skippedTicks   *prometheus.Desc
	cleanedItems   *prometheus.Desc
	freedBytes     *prometheus.Desc
	executions     *prometheus.Desc
	strategyFails  *prometheus.Desc
	moduleFails    *prometheus.Desc
	lastPass       *prometheus.Desc
	averagePass    *prometheus.Desc
}

// CollectorOption configures a Collector.
type CollectorOption func(*Collector)

// WithScrapeTimeout bounds how long a scrape may spend reading module statistics.
func WithScrapeTimeout(d time.Duration) CollectorOption {
	return func(c *Collector) { c.timeout = d }
}

// NewCollector creates a collector for source. Register it with a prometheus.Registerer.
func NewCollector(source Source, opts ...CollectorOption) *Collector {
	moduleLabels := []string{"module"}
	c := &Collector{
		source:  source,
		timeout: 5 * time.Second,

		moduleItems: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "module", "items"),
			"Number of entries held by the module.", moduleLabels, nil),
		moduleMemory: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "module", "memory_bytes"),
			"Estimated bytes held by the module.", moduleLabels, nil),
		moduleHits: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "module", "hits_total"),
			"Lookups served by the module.", moduleLabels, nil),
		moduleMisses: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "module", "misses_total"),
			"Lookups the module could not serve.", moduleLabels, nil),
		moduleHitRate: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "module", "hit_rate"),
			"Module hit rate between 0 and 1.", moduleLabels, nil),
		moduleErrors: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "module", "statistics_error"),
			"Set to 1 when reading the module's statistics failed.", moduleLabels, nil),
		activeModules: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "active_modules"),
			"Number of enabled modules.", nil, nil),
		globalHitRate: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "hit_rate"),
			"Hit rate across all modules.", nil, nil),
		memoryPressure: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "memory_pressure"),
			"Sampled memory pressure between 0 and 100.", nil, nil),
		passes: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "cleanup", "passes_total"),
			"Global cleanup passes executed.", nil, nil),
		skippedTicks: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "cleanup", "skipped_ticks_total"),
			"Scheduler ticks skipped because a pass was still running.", nil, nil),
		cleanedItems: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "cleanup", "cleaned_items_total"),
			"Entries removed by cleanup strategies.", nil, nil),
		freedBytes: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "cleanup", "freed_bytes_total"),
			"Estimated bytes freed by cleanup strategies.", nil, nil),
		executions: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "cleanup", "strategy_executions_total"),
			"Strategy executions across all passes.", nil, nil),
		strategyFails: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "cleanup", "strategy_failures_total"),
			"Strategy executions that failed.", nil, nil),
		moduleFails: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "cleanup", "module_failures_total"),
			"Modules excluded from a pass because they failed.", nil, nil),
		lastPass: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "cleanup", "last_pass_duration_seconds"),
			"Duration of the most recent pass.", nil, nil),
		averagePass: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "cleanup", "average_pass_duration_seconds"),
			"Average duration of recent passes.", nil, nil),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ prometheus.Collector = (*Collector)(nil)

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	for _, d := range []*prometheus.Desc{
		c.moduleItems, c.moduleMemory, c.moduleHits, c.moduleMisses, c.moduleHitRate,
		c.moduleErrors, c.activeModules, c.globalHitRate, c.memoryPressure,
		c.passes, c.skippedTicks, c.cleanedItems, c.freedBytes, c.executions,
		c.strategyFails, c.moduleFails, c.lastPass, c.averagePass,
	} {
		ch <- d
	}
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	stats := c.source.GetGlobalStatistics(ctx)
	for name, s := range stats.Modules {
		ch <- prometheus.MustNewConstMetric(c.moduleItems, prometheus.GaugeValue, float64(s.TotalItems), name)
		ch <- prometheus.MustNewConstMetric(c.moduleMemory, prometheus.GaugeValue, float64(s.MemoryUsageBytes), name)
		ch <- prometheus.MustNewConstMetric(c.moduleHits, prometheus.CounterValue, float64(s.HitCount), name)
		ch <- prometheus.MustNewConstMetric(c.moduleMisses, prometheus.CounterValue, float64(s.MissCount), name)
		ch <- prometheus.MustNewConstMetric(c.moduleHitRate, prometheus.GaugeValue, s.HitRate, name)
		ch <- prometheus.MustNewConstMetric(c.moduleErrors, prometheus.GaugeValue, 0, name)
	}
	for name := range stats.ModuleErrors {
		ch <- prometheus.MustNewConstMetric(c.moduleErrors, prometheus.GaugeValue, 1, name)
	}
	ch <- prometheus.MustNewConstMetric(c.activeModules, prometheus.GaugeValue, float64(stats.ActiveModuleCount))
	ch <- prometheus.MustNewConstMetric(c.globalHitRate, prometheus.GaugeValue, stats.GlobalHitRate)
	ch <- prometheus.MustNewConstMetric(c.memoryPressure, prometheus.GaugeValue, stats.SystemMemoryPressure)

	m := c.source.Metrics()
	ch <- prometheus.MustNewConstMetric(c.passes, prometheus.CounterValue, float64(m.Passes))
	ch <- prometheus.MustNewConstMetric(c.skippedTicks, prometheus.CounterValue, float64(m.SkippedTicks))
	ch <- prometheus.MustNewConstMetric(c.cleanedItems, prometheus.CounterValue, float64(m.CleanedItems))
	ch <- prometheus.MustNewConstMetric(c.freedBytes, prometheus.CounterValue, float64(m.FreedBytes))
	ch <- prometheus.MustNewConstMetric(c.executions, prometheus.CounterValue, float64(m.StrategyExecutions))
	ch <- prometheus.MustNewConstMetric(c.strategyFails, prometheus.CounterValue, float64(m.StrategyFailures))
	ch <- prometheus.MustNewConstMetric(c.moduleFails, prometheus.CounterValue, float64(m.ModuleFailures))
	ch <- prometheus.MustNewConstMetric(c.lastPass, prometheus.GaugeValue, m.LastPassDuration.Seconds())
	ch <- prometheus.MustNewConstMetric(c.averagePass, prometheus.GaugeValue, m.AveragePassDuration.Seconds())
}
