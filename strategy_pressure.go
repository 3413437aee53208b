package cachemgr

import (
	"context"
	"time"
)

// Memory pressure strategy parameters.
const (
	MemoryPressureStrategyName = "memory_pressure"

	ParamPressureThreshold = "pressure_threshold"
)

// MemoryPressureStrategy triggers purely on system memory pressure crossing an
// absolute threshold. The share of entries evicted grows with the overshoot.
type MemoryPressureStrategy struct {
	*BaseStrategy
}

var _ Strategy = (*MemoryPressureStrategy)(nil)

// NewMemoryPressureStrategy creates a memory pressure strategy with default parameters.
func NewMemoryPressureStrategy(opts ...StrategyOption) *MemoryPressureStrategy {
	b := newBaseStrategy(MemoryPressureStrategyName, 100, Parameters{
		ParamPressureThreshold: 75.0,
		ParamCleanupRatio:      0.3,
		ParamMinInterval:       30 * time.Second,
	}, []paramSpec{
		{key: ParamPressureThreshold, kind: kindFloat, min: 0, max: 100},
		{key: ParamCleanupRatio, kind: kindFloat, min: 0, max: 1},
	})
	for _, opt := range opts {
		opt(b)
	}
	return &MemoryPressureStrategy{BaseStrategy: b}
}

// ShouldCleanup implements Strategy.
func (s *MemoryPressureStrategy) ShouldCleanup(cc *CleanupContext) bool {
	if !s.IntervalElapsed(cc.ModuleName, contextNow(cc)) {
		return false
	}
	if cc.Intensity == IntensityForce {
		return true
	}
	return cc.SystemMemoryPressure > Param(s.Params(), ParamPressureThreshold, 75.0)
}

// ExecuteCleanup implements Strategy. The base ratio doubles as pressure approaches
// 100 and is scaled by 1.5 at Aggressive intensity.
func (s *MemoryPressureStrategy) ExecuteCleanup(ctx context.Context, cc *CleanupContext) CleanupResult {
	p := s.Params()
	threshold := Param(p, ParamPressureThreshold, 75.0)
	ratio := Param(p, ParamCleanupRatio, 0.3)

	if headroom := 100 - threshold; headroom > 0 && cc.SystemMemoryPressure > threshold {
		ratio *= 1 + (min(cc.SystemMemoryPressure, 100)-threshold)/headroom
	}
	if cc.Intensity >= IntensityAggressive {
		ratio *= 1.5
	}

	return s.Execute(ctx, cc, CleanupHints{
		Intensity: cc.Intensity,
		Ratio:     clampRatio(ratio),
		Limit:     cc.MaxCleanupItems,
	})
}
