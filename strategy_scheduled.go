package cachemgr

import (
	"context"
	"math"
	"sync"
	"time"
)

// Scheduled strategy parameters.
const (
	ScheduledStrategyName = "scheduled"

	ParamScheduleInterval = "schedule_interval"
)

// ScheduledStrategy cleans every module on a fixed cadence, independent of its
// statistics. The cadence starts when the strategy is registered with an
// orchestrator, or at its first evaluation when used on its own.
type ScheduledStrategy struct {
	*BaseStrategy

	startMu sync.Mutex
	start   time.Time
}

var _ Strategy = (*ScheduledStrategy)(nil)

// NewScheduledStrategy creates a scheduled strategy with default parameters.
func NewScheduledStrategy(opts ...StrategyOption) *ScheduledStrategy {
	b := newBaseStrategy(ScheduledStrategyName, 10, Parameters{
		ParamScheduleInterval: 10 * time.Minute,
		ParamMaxAge:           time.Hour,
		ParamCleanupRatio:     0.1,
		ParamMinInterval:      time.Duration(0),
	}, []paramSpec{
		{key: ParamScheduleInterval, kind: kindDuration, min: float64(time.Millisecond), max: math.MaxFloat64},
		{key: ParamMaxAge, kind: kindDuration, min: 0, max: math.MaxFloat64},
		{key: ParamCleanupRatio, kind: kindFloat, min: 0, max: 1},
	})
	for _, opt := range opts {
		opt(b)
	}
	return &ScheduledStrategy{BaseStrategy: b}
}

// Anchor starts the cadence at now. The orchestrator calls it on registration with
// its own clock.
func (s *ScheduledStrategy) Anchor(now time.Time) {
	s.startMu.Lock()
	defer s.startMu.Unlock()
	s.start = now
}

// NextRun returns when the strategy is next due for module. It reports false until
// the cadence has started.
func (s *ScheduledStrategy) NextRun(module string) (time.Time, bool) {
	interval := Param(s.Params(), ParamScheduleInterval, 10*time.Minute)
	if last, ok := s.LastExecution(module); ok {
		return last.Add(interval), true
	}
	s.startMu.Lock()
	defer s.startMu.Unlock()
	if s.start.IsZero() {
		return time.Time{}, false
	}
	return s.start.Add(interval), true
}

func (s *ScheduledStrategy) anchorOnce(now time.Time) {
	s.startMu.Lock()
	defer s.startMu.Unlock()
	if s.start.IsZero() {
		s.start = now
	}
}

// ShouldCleanup implements Strategy.
func (s *ScheduledStrategy) ShouldCleanup(cc *CleanupContext) bool {
	now := contextNow(cc)
	s.anchorOnce(now)
	if !s.IntervalElapsed(cc.ModuleName, now) {
		return false
	}
	if cc.Intensity == IntensityForce {
		return true
	}
	next, _ := s.NextRun(cc.ModuleName)
	return !now.Before(next)
}

// ExecuteCleanup implements Strategy.
func (s *ScheduledStrategy) ExecuteCleanup(ctx context.Context, cc *CleanupContext) CleanupResult {
	p := s.Params()
	maxAge := Param(p, ParamMaxAge, time.Hour)
	ratio := Param(p, ParamCleanupRatio, 0.1)
	if cc.Intensity >= IntensityAggressive {
		maxAge /= 2
		ratio *= 1.5
	}

	return s.Execute(ctx, cc, CleanupHints{
		Intensity: cc.Intensity,
		MaxAge:    maxAge,
		Ratio:     clampRatio(ratio),
		Limit:     cc.MaxCleanupItems,
	})
}
