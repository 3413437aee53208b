package cachemgr

import (
	"context"
	"math"
	"time"
)

// Usage based strategy parameters.
const (
	UsageBasedStrategyName = "usage_based"

	ParamHitRateThreshold  = "hit_rate_threshold"
	ParamMinUsageThreshold = "min_usage_threshold"
)

// UsageBasedStrategy evicts rarely used entries when a module's hit rate or average
// usage frequency drops below its thresholds. Escalation raises both thresholds and
// scales cleanup_ratio by 1.5.
type UsageBasedStrategy struct {
	*BaseStrategy
}

var _ Strategy = (*UsageBasedStrategy)(nil)

// NewUsageBasedStrategy creates a usage based strategy with default parameters.
func NewUsageBasedStrategy(opts ...StrategyOption) *UsageBasedStrategy {
	b := newBaseStrategy(UsageBasedStrategyName, 40, Parameters{
		ParamHitRateThreshold:  0.5,
		ParamMinUsageThreshold: 1.0,
		ParamCleanupRatio:      0.2,
		ParamMinInterval:       2 * time.Minute,
	}, []paramSpec{
		{key: ParamHitRateThreshold, kind: kindFloat, min: 0, max: 1},
		{key: ParamMinUsageThreshold, kind: kindFloat, min: 0, max: math.MaxFloat64},
		{key: ParamCleanupRatio, kind: kindFloat, min: 0, max: 1},
	})
	for _, opt := range opts {
		opt(b)
	}
	return &UsageBasedStrategy{BaseStrategy: b}
}

type usagePlan struct {
	hitRate  float64
	minUsage float64
	ratio    float64
}

func (s *UsageBasedStrategy) plan(cc *CleanupContext) usagePlan {
	p := s.Params()
	plan := usagePlan{
		hitRate:  Param(p, ParamHitRateThreshold, 0.5),
		minUsage: Param(p, ParamMinUsageThreshold, 1.0),
		ratio:    Param(p, ParamCleanupRatio, 0.2),
	}
	if escalated(cc) {
		plan.hitRate = math.Min(plan.hitRate*1.2, 1)
		plan.minUsage *= 1.5
		plan.ratio *= 1.5
	}
	plan.ratio = clampRatio(plan.ratio)
	return plan
}

// ShouldCleanup implements Strategy. The hit rate is only considered once the module
// has seen traffic.
func (s *UsageBasedStrategy) ShouldCleanup(cc *CleanupContext) bool {
	if !s.IntervalElapsed(cc.ModuleName, contextNow(cc)) {
		return false
	}
	if cc.Intensity == IntensityForce {
		return true
	}

	stats := cc.Stats
	if stats.TotalItems == 0 {
		return false
	}

	plan := s.plan(cc)
	if stats.HasTraffic() && stats.HitRate < plan.hitRate {
		return true
	}
	return stats.AverageUsageFrequency < plan.minUsage
}

// ExecuteCleanup implements Strategy.
func (s *UsageBasedStrategy) ExecuteCleanup(ctx context.Context, cc *CleanupContext) CleanupResult {
	plan := s.plan(cc)
	return s.Execute(ctx, cc, CleanupHints{
		Intensity: cc.Intensity,
		MinUsage:  plan.minUsage,
		Ratio:     plan.ratio,
		Limit:     cc.MaxCleanupItems,
	})
}
