package cachemgr

import (
	"context"
	"math"
	"time"
)

// LRU strategy parameters.
const (
	LRUStrategyName = "lru"

	ParamMaxItems        = "max_items"
	ParamMemoryThreshold = "memory_threshold"
	ParamMaxAge          = "max_age"
	ParamCleanupRatio    = "cleanup_ratio"
)

// LRUStrategy evicts the least recently used entries when a module grows past its
// item or memory limits, or when it has not been cleaned for half of max_age.
//
// Under memory pressure above 70 or at Aggressive intensity and above, max_age is
// halved and cleanup_ratio is scaled by 1.5.
type LRUStrategy struct {
	*BaseStrategy
}

var _ Strategy = (*LRUStrategy)(nil)

// NewLRUStrategy creates an LRU strategy with default parameters.
func NewLRUStrategy(opts ...StrategyOption) *LRUStrategy {
	b := newBaseStrategy(LRUStrategyName, 50, Parameters{
		ParamMaxItems:        int64(10000),
		ParamMemoryThreshold: int64(64 << 20),
		ParamMaxAge:          30 * time.Minute,
		ParamCleanupRatio:    0.25,
		ParamMinInterval:     time.Minute,
	}, []paramSpec{
		{key: ParamMaxItems, kind: kindInt, min: 1, max: math.MaxFloat64},
		{key: ParamMemoryThreshold, kind: kindInt, min: 1, max: math.MaxFloat64},
		{key: ParamMaxAge, kind: kindDuration, min: 0, max: math.MaxFloat64},
		{key: ParamCleanupRatio, kind: kindFloat, min: 0, max: 1},
	})
	for _, opt := range opts {
		opt(b)
	}
	return &LRUStrategy{BaseStrategy: b}
}

type lruPlan struct {
	maxItems  int64
	threshold int64
	maxAge    time.Duration
	ratio     float64
}

func (s *LRUStrategy) plan(cc *CleanupContext) lruPlan {
	p := s.Params()
	plan := lruPlan{
		maxItems:  Param(p, ParamMaxItems, int64(10000)),
		threshold: Param(p, ParamMemoryThreshold, int64(64<<20)),
		maxAge:    Param(p, ParamMaxAge, 30*time.Minute),
		ratio:     Param(p, ParamCleanupRatio, 0.25),
	}
	if escalated(cc) {
		plan.maxAge /= 2
		plan.ratio *= 1.5
	}
	plan.ratio = clampRatio(plan.ratio)
	return plan
}

// ShouldCleanup implements Strategy.
func (s *LRUStrategy) ShouldCleanup(cc *CleanupContext) bool {
	now := contextNow(cc)
	if !s.IntervalElapsed(cc.ModuleName, now) {
		return false
	}
	if cc.Intensity == IntensityForce {
		return true
	}

	plan := s.plan(cc)
	stats := cc.Stats
	switch {
	case stats.TotalItems > plan.maxItems:
		return true
	case stats.MemoryUsageBytes > plan.threshold:
		return true
	case plan.maxAge > 0 && !stats.LastCleanupTime.IsZero() && now.Sub(stats.LastCleanupTime) > plan.maxAge/2:
		return true
	}
	return false
}

// ExecuteCleanup implements Strategy. When the module is over max_items the ratio
// is raised far enough to bring it back under the limit.
func (s *LRUStrategy) ExecuteCleanup(ctx context.Context, cc *CleanupContext) CleanupResult {
	plan := s.plan(cc)

	ratio := plan.ratio
	if items := cc.Stats.TotalItems; items > plan.maxItems {
		ratio = math.Max(ratio, float64(items-plan.maxItems)/float64(items))
	}

	return s.Execute(ctx, cc, CleanupHints{
		Intensity: cc.Intensity,
		MaxAge:    plan.maxAge,
		Ratio:     ratio,
		Limit:     cc.MaxCleanupItems,
	})
}
