package cachemgr

import (
	"context"
	"math"
	"sync"
	"sync/atomic"
	"time"
)

//go:generate go run github.com/matryer/moq@v0.5.3 -pkg mocks -out mocks/strategy.go . Strategy

// Strategy decides when and how aggressively a module is cleaned.
//
// Strategies follow a two-phase protocol: the orchestrator calls ShouldCleanup and,
// only when it returns true in the same pass, ExecuteCleanup. Implementations are
// called concurrently for different modules and must be safe for concurrent use.
type Strategy interface {
	// Name uniquely identifies the strategy within an orchestrator.
	Name() string

	// Priority orders strategies for a module. Higher values run first.
	Priority() int

	// Enabled reports whether the strategy takes part in cleanup passes.
	Enabled() bool

	// ShouldCleanup is a cheap predicate. It must return false while the strategy's
	// minimum interval since its last execution on the same module has not elapsed.
	ShouldCleanup(cc *CleanupContext) bool

	// ExecuteCleanup asks the module to evict and reports what was removed.
	ExecuteCleanup(ctx context.Context, cc *CleanupContext) CleanupResult

	// Configuration returns a copy of the current parameters.
	Configuration() Parameters

	// SetConfiguration validates and applies new parameter values. Keys that are not
	// present keep their current value.
	SetConfiguration(params Parameters) error
}

// ParamMinInterval is the parameter every built-in strategy uses for interval gating.
const ParamMinInterval = "min_interval"

// StrategyOption configures a built-in strategy.
type StrategyOption func(*BaseStrategy)

// WithStrategyPriority overrides the default priority.
func WithStrategyPriority(priority int) StrategyOption {
	return func(b *BaseStrategy) { b.priority.Store(int64(priority)) }
}

// WithStrategyName overrides the default name, allowing several instances of the same
// strategy with different parameters to be registered together.
func WithStrategyName(name string) StrategyOption {
	return func(b *BaseStrategy) { b.name = name }
}

// BaseStrategy implements the bookkeeping shared by strategies: identity, parameters
// with validation, and per-module interval gating. Custom strategies can embed it.
type BaseStrategy struct {
	name     string
	priority atomic.Int64
	enabled  atomic.Bool

	mu            sync.RWMutex
	params        Parameters
	specs         []paramSpec
	lastExecution map[string]time.Time
}

// NewBaseStrategy creates a BaseStrategy with the given defaults. Parameters present
// in defaults are validated against their default type on SetConfiguration.
func NewBaseStrategy(name string, priority int, defaults Parameters, opts ...StrategyOption) *BaseStrategy {
	b := newBaseStrategy(name, priority, defaults, inferSpecs(defaults))
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func newBaseStrategy(name string, priority int, defaults Parameters, specs []paramSpec) *BaseStrategy {
	b := &BaseStrategy{
		name:          name,
		params:        defaults.Clone(),
		specs:         append([]paramSpec{{key: ParamMinInterval, kind: kindDuration, max: math.MaxFloat64}}, specs...),
		lastExecution: make(map[string]time.Time),
	}
	b.priority.Store(int64(priority))
	b.enabled.Store(true)
	return b
}

// Name implements Strategy.
func (b *BaseStrategy) Name() string {
	return b.name
}

// Priority implements Strategy.
func (b *BaseStrategy) Priority() int {
	return int(b.priority.Load())
}

// SetPriority changes the priority used for subsequent passes.
func (b *BaseStrategy) SetPriority(priority int) {
	b.priority.Store(int64(priority))
}

// Enabled implements Strategy.
func (b *BaseStrategy) Enabled() bool {
	return b.enabled.Load()
}

// SetEnabled toggles participation in cleanup passes.
func (b *BaseStrategy) SetEnabled(enabled bool) {
	b.enabled.Store(enabled)
}

// Configuration implements Strategy.
func (b *BaseStrategy) Configuration() Parameters {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.params.Clone()
}

// SetConfiguration implements Strategy.
func (b *BaseStrategy) SetConfiguration(params Parameters) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	merged := b.params.Merge(params)
	if err := validateParams(merged, b.specs); err != nil {
		return err
	}
	b.params = merged
	return nil
}

// Params returns the live parameter map. It is replaced, never mutated, by
// SetConfiguration, so callers may read it without further locking.
func (b *BaseStrategy) Params() Parameters {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.params
}

// MinInterval returns the minimum time between two executions on the same module.
func (b *BaseStrategy) MinInterval() time.Duration {
	return Param(b.Params(), ParamMinInterval, time.Duration(0))
}

// IntervalElapsed reports whether the strategy may run against module at now.
func (b *BaseStrategy) IntervalElapsed(module string, now time.Time) bool {
	minInterval := b.MinInterval()

	b.mu.RLock()
	last, ok := b.lastExecution[module]
	b.mu.RUnlock()

	if !ok || minInterval <= 0 {
		return true
	}
	return now.Sub(last) >= minInterval
}

// LastExecution returns when the strategy last ran against module.
func (b *BaseStrategy) LastExecution(module string) (time.Time, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	t, ok := b.lastExecution[module]
	return t, ok
}

// MarkExecuted records an execution against module at now.
func (b *BaseStrategy) MarkExecuted(module string, now time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lastExecution[module] = now
}

// Forget drops the execution history for module.
func (b *BaseStrategy) Forget(module string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.lastExecution, module)
}

// Execute runs the module's SmartCleanup with hints and builds the result. Freed
// memory is estimated from the average item size of the context's statistics.
func (b *BaseStrategy) Execute(ctx context.Context, cc *CleanupContext, hints CleanupHints) CleanupResult {
	now := contextNow(cc)
	start := time.Now()

	cleaned, err := cc.Module.SmartCleanup(ctx, hints)
	elapsed := time.Since(start)
	b.MarkExecuted(cc.ModuleName, now)

	if err != nil {
		res := FailedResult(b.name, moduleError(err, cc.ModuleName, "smart cleanup"))
		res.ModuleName = cc.ModuleName
		res.StartedAt = start
		res.ExecutionTime = elapsed
		return res
	}

	return CleanupResult{
		WasExecuted:      true,
		CleanedItems:     cleaned,
		FreedMemoryBytes: int64(cleaned) * cc.Stats.AverageItemSize(),
		ExecutionTime:    elapsed,
		StrategyName:     b.name,
		ModuleName:       cc.ModuleName,
		StartedAt:        start,
		Extended: map[string]any{
			"intensity": hints.Intensity.String(),
			"ratio":     hints.Ratio,
			"max_age":   hints.MaxAge.String(),
			"min_usage": hints.MinUsage,
			"limit":     hints.Limit,
		},
	}
}

// inferSpecs derives type checks from default values. Ranges are unbounded.
func inferSpecs(defaults Parameters) []paramSpec {
	var specs []paramSpec
	for key, v := range defaults {
		spec := paramSpec{key: key, min: -math.MaxFloat64, max: math.MaxFloat64}
		switch v.(type) {
		case time.Duration:
			spec.kind = kindDuration
		case int, int64:
			spec.kind = kindInt
		case float64:
			spec.kind = kindFloat
		default:
			continue
		}
		specs = append(specs, spec)
	}
	return specs
}

func contextNow(cc *CleanupContext) time.Time {
	if cc.Now.IsZero() {
		return time.Now()
	}
	return cc.Now
}

// escalated reports whether thresholds should be tightened for this evaluation.
func escalated(cc *CleanupContext) bool {
	return cc.SystemMemoryPressure > 70 || cc.Intensity >= IntensityAggressive
}

func clampRatio(r float64) float64 {
	return math.Min(math.Max(r, 0), 1)
}
