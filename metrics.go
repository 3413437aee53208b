package cachemgr

import (
	"sync"
	"time"
)

const maxPassSamples = 1000

// Metrics collects operational statistics about cleanup passes and the scheduler.
type Metrics struct {
	mu sync.RWMutex

	passes           int64
	skippedTicks     int64
	cleanedItems     int64
	freedBytes       int64
	executions       int64
	strategyFailures int64
	moduleFailures   int64

	passDurations []time.Duration

	startTime    time.Time
	lastPassTime time.Time
	lastSkipTime time.Time
	lastPass     time.Duration
	peakPass     time.Duration
	peakCleaned  int64
}

// NewMetrics creates an empty Metrics instance.
func NewMetrics() *Metrics {
	return &Metrics{
		startTime:     time.Now(),
		passDurations: make([]time.Duration, 0, 64),
	}
}

// RecordPass records a completed global cleanup pass.
func (m *Metrics) RecordPass(result GlobalCleanupResult) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.passes++
	m.cleanedItems += int64(result.TotalCleanedItems)
	m.freedBytes += result.TotalFreedMemory
	m.executions += int64(result.ExecutedCount())
	m.strategyFailures += int64(len(result.Failures()))
	m.moduleFailures += int64(len(result.ModuleErrors))
	m.lastPassTime = result.StartTime
	m.lastPass = result.TotalExecutionTime

	m.passDurations = append(m.passDurations, result.TotalExecutionTime)
	if len(m.passDurations) > maxPassSamples {
		m.passDurations = m.passDurations[len(m.passDurations)-maxPassSamples/2:]
	}

	if result.TotalExecutionTime > m.peakPass {
		m.peakPass = result.TotalExecutionTime
	}
	if int64(result.TotalCleanedItems) > m.peakCleaned {
		m.peakCleaned = int64(result.TotalCleanedItems)
	}
}

// RecordSkippedTick records a scheduler tick skipped because a pass was running.
func (m *Metrics) RecordSkippedTick() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.skippedTicks++
	m.lastSkipTime = time.Now()
}

// Snapshot returns a point-in-time copy of the metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var avg time.Duration
	if len(m.passDurations) > 0 {
		var total time.Duration
		for _, d := range m.passDurations {
			total += d
		}
		avg = total / time.Duration(len(m.passDurations))
	}

	return MetricsSnapshot{
		Passes:              m.passes,
		SkippedTicks:        m.skippedTicks,
		CleanedItems:        m.cleanedItems,
		FreedBytes:          m.freedBytes,
		StrategyExecutions:  m.executions,
		StrategyFailures:    m.strategyFailures,
		ModuleFailures:      m.moduleFailures,
		LastPassDuration:    m.lastPass,
		AveragePassDuration: avg,
		PeakPassDuration:    m.peakPass,
		PeakCleanedItems:    m.peakCleaned,
		LastPassTime:        m.lastPassTime,
		LastSkipTime:        m.lastSkipTime,
		Uptime:              time.Since(m.startTime),
		PassSamples:         len(m.passDurations),
	}
}

// Reset clears all metrics data.
func (m *Metrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.passes = 0
	m.skippedTicks = 0
	m.cleanedItems = 0
	m.freedBytes = 0
	m.executions = 0
	m.strategyFailures = 0
	m.moduleFailures = 0
	m.passDurations = m.passDurations[:0]
	m.startTime = time.Now()
	m.lastPassTime = time.Time{}
	m.lastSkipTime = time.Time{}
	m.lastPass = 0
	m.peakPass = 0
	m.peakCleaned = 0
}

// MetricsSnapshot provides a point-in-time view of orchestrator metrics.
type MetricsSnapshot struct {
	Passes             int64 `json:"passes"`
	SkippedTicks       int64 `json:"skipped_ticks"`
	CleanedItems       int64 `json:"cleaned_items"`
	FreedBytes         int64 `json:"freed_bytes"`
	StrategyExecutions int64 `json:"strategy_executions"`
	StrategyFailures   int64 `json:"strategy_failures"`
	ModuleFailures     int64 `json:"module_failures"`

	LastPassDuration    time.Duration `json:"last_pass_duration_ns"`
	AveragePassDuration time.Duration `json:"avg_pass_duration_ns"`
	PeakPassDuration    time.Duration `json:"peak_pass_duration_ns"`
	PeakCleanedItems    int64         `json:"peak_cleaned_items"`

	LastPassTime time.Time     `json:"last_pass_time"`
	LastSkipTime time.Time     `json:"last_skip_time"`
	Uptime       time.Duration `json:"uptime"`
	PassSamples  int           `json:"pass_samples"`
}
