package cachemgr

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Runner executes global cleanup passes. *Orchestrator implements it.
type Runner interface {
	ExecuteGlobalCleanup(ctx context.Context, intensity Intensity) GlobalCleanupResult
}

// Scheduler triggers global cleanup passes on a fixed interval. The intensity of
// each pass is derived from the memory pressure sampled at tick time. A tick that
// arrives while the previous pass is still running is skipped, never queued.
type Scheduler struct {
	runner  Runner
	sampler PressureSampler
	logger  *Logger
	metrics *Metrics

	mu       sync.Mutex
	stop     chan struct{}
	loopDone chan struct{}
	interval time.Duration

	busy      atomic.Bool
	passStart atomic.Int64
	passes    sync.WaitGroup
}

// NewScheduler creates a stopped scheduler. logger and metrics may be nil.
func NewScheduler(runner Runner, sampler PressureSampler, logger *Logger, metrics *Metrics) *Scheduler {
	if logger == nil {
		logger = NewNopLogger()
	}
	if metrics == nil {
		metrics = NewMetrics()
	}
	return &Scheduler{
		runner:  runner,
		sampler: sampler,
		logger:  logger.WithOperation(OpSchedulerTick),
		metrics: metrics,
	}
}

// Start begins ticking every interval until ctx is cancelled or Stop is called.
// Starting a running scheduler replaces its timer.
func (s *Scheduler) Start(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return configError("auto_cleanup_interval", "interval must be greater than 0, got %s", interval)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked()

	stop := make(chan struct{})
	done := make(chan struct{})
	s.stop = stop
	s.loopDone = done
	s.interval = interval

	go s.loop(ctx, interval, stop, done)

	s.logger.Info(ctx, "auto cleanup started", "interval", interval.String())
	return nil
}

// Stop halts the ticker and waits for an in-flight pass to finish. Stopping a
// stopped scheduler is a no-op.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

func (s *Scheduler) stopLocked() {
	if s.stop == nil {
		return
	}
	close(s.stop)
	<-s.loopDone
	s.passes.Wait()

	s.stop = nil
	s.loopDone = nil
	s.interval = 0
}

// Running reports whether the ticker is active.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loopDone == nil {
		return false
	}
	select {
	case <-s.loopDone:
		return false
	default:
		return true
	}
}

// Interval returns the active tick interval, or zero when stopped.
func (s *Scheduler) Interval() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.interval
}

// Busy reports whether a pass is currently running.
func (s *Scheduler) Busy() bool {
	return s.busy.Load()
}

// RunNow runs a pass synchronously unless one is already in flight. It reports
// whether a pass was run.
func (s *Scheduler) RunNow(ctx context.Context) (GlobalCleanupResult, bool) {
	if !s.busy.CompareAndSwap(false, true) {
		s.skip(ctx)
		return GlobalCleanupResult{}, false
	}
	defer s.busy.Store(false)

	s.passStart.Store(time.Now().UnixNano())
	return s.run(ctx), true
}

func (s *Scheduler) loop(ctx context.Context, interval time.Duration, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Debug(ctx, "auto cleanup context cancelled")
			return
		case <-stop:
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

// tick starts a pass in its own goroutine so the ticker keeps firing and overlapping
// ticks can be observed and skipped.
func (s *Scheduler) tick(ctx context.Context) {
	if !s.busy.CompareAndSwap(false, true) {
		s.skip(ctx)
		return
	}

	s.passStart.Store(time.Now().UnixNano())
	s.passes.Add(1)
	go func() {
		defer s.passes.Done()
		defer s.busy.Store(false)
		s.run(context.WithoutCancel(ctx))
	}()
}

func (s *Scheduler) skip(ctx context.Context) {
	s.metrics.RecordSkippedTick()
	running := time.Duration(time.Now().UnixNano() - s.passStart.Load())
	LogSchedulerSkip(ctx, s.logger, running)
}

func (s *Scheduler) run(ctx context.Context) GlobalCleanupResult {
	pressure, err := guard(func() (float64, error) { return s.sampler.SamplePressure(ctx) })
	if err != nil {
		s.logger.Warn(ctx, "failed to sample memory pressure", "error", err)
		pressure = 0
	}
	intensity := IntensityForPressure(clampPressure(pressure))
	s.logger.Debug(ctx, "starting scheduled cleanup pass",
		"pressure", pressure,
		"intensity", intensity.String())

	result, err := guard(func() (GlobalCleanupResult, error) {
		return s.runner.ExecuteGlobalCleanup(ctx, intensity), nil
	})
	if err != nil {
		s.logger.Error(ctx, "scheduled cleanup pass panicked", "error", err)
	}
	return result
}
