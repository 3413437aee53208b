package cachemgr

import (
	"context"
	"math"
	"sync"
	"time"
)

// Adaptive strategy parameters.
const (
	AdaptiveStrategyName = "adaptive"

	ParamBaseThreshold      = "base_threshold"
	ParamSensitivity        = "sensitivity"
	ParamHistorySize        = "history_size"
	ParamStabilityTolerance = "stability_tolerance"
)

// AdaptiveStrategy triggers when a module's hit rate falls below a threshold that
// follows the module's hit rate history. A stable history widens the tolerance
// (base_threshold - sensitivity); a degrading trend tightens it
// (base_threshold + sensitivity) and evicts a larger share.
type AdaptiveStrategy struct {
	*BaseStrategy

	historyMu sync.Mutex
	history   map[string][]float64
}

var _ Strategy = (*AdaptiveStrategy)(nil)

// Trend classifies a module's hit rate history.
type Trend string

// Hit rate trends.
const (
	TrendUnknown   Trend = "unknown"
	TrendStable    Trend = "stable"
	TrendVolatile  Trend = "volatile"
	TrendDegrading Trend = "degrading"
)

// NewAdaptiveStrategy creates an adaptive strategy with default parameters.
func NewAdaptiveStrategy(opts ...StrategyOption) *AdaptiveStrategy {
	b := newBaseStrategy(AdaptiveStrategyName, 30, Parameters{
		ParamBaseThreshold:      0.6,
		ParamSensitivity:        0.1,
		ParamHistorySize:        10,
		ParamStabilityTolerance: 0.02,
		ParamCleanupRatio:       0.2,
		ParamMinInterval:        time.Minute,
	}, []paramSpec{
		{key: ParamBaseThreshold, kind: kindFloat, min: 0, max: 1},
		{key: ParamSensitivity, kind: kindFloat, min: 0, max: 1},
		{key: ParamHistorySize, kind: kindInt, min: 2, max: 1000},
		{key: ParamStabilityTolerance, kind: kindFloat, min: 0, max: 1},
		{key: ParamCleanupRatio, kind: kindFloat, min: 0, max: 1},
	})
	for _, opt := range opts {
		opt(b)
	}
	return &AdaptiveStrategy{
		BaseStrategy: b,
		history:      make(map[string][]float64),
	}
}

// observe appends a hit rate sample for module, keeping at most history_size samples.
func (s *AdaptiveStrategy) observe(module string, hitRate float64) {
	size := Param(s.Params(), ParamHistorySize, 10)

	s.historyMu.Lock()
	defer s.historyMu.Unlock()

	h := append(s.history[module], hitRate)
	if len(h) > size {
		h = h[len(h)-size:]
	}
	s.history[module] = h
}

// History returns a copy of the recorded hit rate samples for module.
func (s *AdaptiveStrategy) History(module string) []float64 {
	s.historyMu.Lock()
	defer s.historyMu.Unlock()
	return append([]float64(nil), s.history[module]...)
}

// Threshold returns the current hit rate threshold for module and the trend it was
// derived from.
func (s *AdaptiveStrategy) Threshold(module string) (float64, Trend) {
	p := s.Params()
	base := Param(p, ParamBaseThreshold, 0.6)
	sensitivity := Param(p, ParamSensitivity, 0.1)
	tolerance := Param(p, ParamStabilityTolerance, 0.02)

	trend := classifyTrend(s.History(module), tolerance)
	switch trend {
	case TrendStable:
		return math.Max(base-sensitivity, 0), trend
	case TrendDegrading:
		return math.Min(base+sensitivity, 1), trend
	default:
		return base, trend
	}
}

// classifyTrend compares the latest sample with the mean of the earlier ones and
// measures the spread of the whole history.
func classifyTrend(history []float64, tolerance float64) Trend {
	if len(history) < 2 {
		return TrendUnknown
	}

	last := history[len(history)-1]
	var prevSum float64
	for _, v := range history[:len(history)-1] {
		prevSum += v
	}
	prevMean := prevSum / float64(len(history)-1)
	if last-prevMean < -tolerance {
		return TrendDegrading
	}

	mean := (prevSum + last) / float64(len(history))
	var variance float64
	for _, v := range history {
		variance += (v - mean) * (v - mean)
	}
	if math.Sqrt(variance/float64(len(history))) <= tolerance {
		return TrendStable
	}
	return TrendVolatile
}

// ShouldCleanup implements Strategy. Every evaluation of a module with traffic is
// recorded in the history, including gated ones.
func (s *AdaptiveStrategy) ShouldCleanup(cc *CleanupContext) bool {
	stats := cc.Stats
	if stats.HasTraffic() {
		s.observe(cc.ModuleName, stats.HitRate)
	}

	if !s.IntervalElapsed(cc.ModuleName, contextNow(cc)) {
		return false
	}
	if cc.Intensity == IntensityForce {
		return true
	}
	if !stats.HasTraffic() || stats.TotalItems == 0 {
		return false
	}

	threshold, _ := s.Threshold(cc.ModuleName)
	if escalated(cc) {
		threshold = math.Min(threshold+Param(s.Params(), ParamSensitivity, 0.1), 1)
	}
	return stats.HitRate < threshold
}

// ExecuteCleanup implements Strategy.
func (s *AdaptiveStrategy) ExecuteCleanup(ctx context.Context, cc *CleanupContext) CleanupResult {
	ratio := Param(s.Params(), ParamCleanupRatio, 0.2)
	threshold, trend := s.Threshold(cc.ModuleName)
	if trend == TrendDegrading {
		ratio *= 1.5
	}
	if escalated(cc) {
		ratio *= 1.5
	}

	res := s.Execute(ctx, cc, CleanupHints{
		Intensity: cc.Intensity,
		Ratio:     clampRatio(ratio),
		Limit:     cc.MaxCleanupItems,
	})
	if res.Extended != nil {
		res.Extended["threshold"] = threshold
		res.Extended["trend"] = string(trend)
	}
	return res
}

// Forget drops the execution and hit rate history for module.
func (s *AdaptiveStrategy) Forget(module string) {
	s.BaseStrategy.Forget(module)
	s.historyMu.Lock()
	delete(s.history, module)
	s.historyMu.Unlock()
}
