package cachemgr

import (
	"sort"
	"time"
)

// CleanupHints carries a strategy's escalated parameters to a module's SmartCleanup.
// Modules evict entries idle for longer than MaxAge, entries used fewer than MinUsage
// times, and then the least recently used Ratio of what remains. Limit caps the total
// number of removals (0 means unlimited). IntensityForce asks for a full sweep.
type CleanupHints struct {
	Intensity Intensity
	MaxAge    time.Duration
	MinUsage  float64
	Ratio     float64
	Limit     int
}

// CleanupContext is built once per (module, strategy) evaluation.
type CleanupContext struct {
	// ModuleName is the name the module was registered under.
	ModuleName string
	// Module is the target of the cleanup.
	Module Module
	// Stats is the module snapshot the decision is based on.
	Stats Statistics
	// SystemMemoryPressure is the sampled pressure, 0-100.
	SystemMemoryPressure float64
	// Intensity is the severity requested for this pass.
	Intensity Intensity
	// MaxCleanupItems is the remaining removal budget for the module (0 = unlimited).
	MaxCleanupItems int
	// Now is the orchestrator clock reading for this evaluation.
	Now time.Time
	// Data holds arbitrary values shared between orchestrator and strategies.
	Data map[string]any
}

// CleanupResult describes one strategy execution against one module.
type CleanupResult struct {
	WasExecuted      bool           `json:"was_executed"`
	CleanedItems     int            `json:"cleaned_items"`
	FreedMemoryBytes int64          `json:"freed_memory_bytes"`
	ExecutionTime    time.Duration  `json:"execution_time"`
	StrategyName     string         `json:"strategy_name"`
	ModuleName       string         `json:"module_name"`
	StartedAt        time.Time      `json:"started_at"`
	Extended         map[string]any `json:"extended,omitempty"`
	Err              error          `json:"-"`
}

// FailedResult builds the result recorded when a strategy fails.
func FailedResult(strategy string, err error) CleanupResult {
	return CleanupResult{
		StrategyName: strategy,
		Err:          err,
	}
}

// Failed reports whether the execution failed.
func (r CleanupResult) Failed() bool {
	return r.Err != nil
}

// ErrorMessage returns the failure message, or an empty string on success.
func (r CleanupResult) ErrorMessage() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

// ExecutionTimeMs returns the execution time in milliseconds.
func (r CleanupResult) ExecutionTimeMs() int64 {
	return r.ExecutionTime.Milliseconds()
}

// GlobalCleanupResult aggregates a full cleanup pass.
type GlobalCleanupResult struct {
	// ModuleResults holds the ordered strategy results per module.
	ModuleResults map[string][]CleanupResult
	// ModuleErrors lists modules excluded from the aggregate because they failed.
	ModuleErrors map[string]error
	// TotalCleanedItems sums CleanedItems over every module result.
	TotalCleanedItems int
	// TotalFreedMemory sums FreedMemoryBytes over every module result.
	TotalFreedMemory int64
	// TotalExecutionTime is the wall-clock duration of the whole pass.
	TotalExecutionTime time.Duration
	// Intensity is the intensity the pass ran at.
	Intensity Intensity
	// StartTime is when the pass started.
	StartTime time.Time
	// SystemMemoryPressure is the pressure sampled at the start of the pass.
	SystemMemoryPressure float64
}

// ExecutedCount returns the number of strategy executions across all modules.
func (g GlobalCleanupResult) ExecutedCount() int {
	n := 0
	for _, results := range g.ModuleResults {
		for _, r := range results {
			if r.WasExecuted {
				n++
			}
		}
	}
	return n
}

// Failures returns every failed strategy result, ordered by module name.
func (g GlobalCleanupResult) Failures() []CleanupResult {
	names := make([]string, 0, len(g.ModuleResults))
	for name := range g.ModuleResults {
		names = append(names, name)
	}
	sort.Strings(names)

	var failed []CleanupResult
	for _, name := range names {
		for _, r := range g.ModuleResults[name] {
			if r.Failed() {
				failed = append(failed, r)
			}
		}
	}
	return failed
}
