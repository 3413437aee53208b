package cachemgr_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmgilman/go/cachemgr"
	"github.com/jmgilman/go/cachemgr/mocks"
)

// slowRunner records every pass it is asked to run and blocks for delay.
type slowRunner struct {
	delay time.Duration

	mu          sync.Mutex
	intensities []cachemgr.Intensity
	running     int
	overlapped  bool
}

func (r *slowRunner) ExecuteGlobalCleanup(ctx context.Context, intensity cachemgr.Intensity) cachemgr.GlobalCleanupResult {
	r.mu.Lock()
	r.intensities = append(r.intensities, intensity)
	r.running++
	if r.running > 1 {
		r.overlapped = true
	}
	r.mu.Unlock()

	time.Sleep(r.delay)

	r.mu.Lock()
	r.running--
	r.mu.Unlock()
	return cachemgr.GlobalCleanupResult{Intensity: intensity}
}

func (r *slowRunner) passes() []cachemgr.Intensity {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]cachemgr.Intensity(nil), r.intensities...)
}

func TestScheduler_SkipsTicksWhileBusy(t *testing.T) {
	runner := &slowRunner{delay: 250 * time.Millisecond}
	metrics := cachemgr.NewMetrics()
	s := cachemgr.NewScheduler(runner, cachemgr.StaticPressure(0), nil, metrics)

	require.NoError(t, s.Start(context.Background(), 100*time.Millisecond))
	time.Sleep(600 * time.Millisecond)
	s.Stop()

	passes := len(runner.passes())
	assert.GreaterOrEqual(t, passes, 2)
	assert.LessOrEqual(t, passes, 3)
	assert.False(t, runner.overlapped)
	assert.GreaterOrEqual(t, metrics.Snapshot().SkippedTicks, int64(1))
}

func TestScheduler_StartStopIdempotent(t *testing.T) {
	runner := &slowRunner{}
	s := cachemgr.NewScheduler(runner, cachemgr.StaticPressure(0), nil, nil)

	s.Stop()
	assert.False(t, s.Running())

	require.NoError(t, s.Start(context.Background(), time.Hour))
	require.NoError(t, s.Start(context.Background(), 2*time.Hour))
	assert.True(t, s.Running())
	assert.Equal(t, 2*time.Hour, s.Interval())

	s.Stop()
	s.Stop()
	assert.False(t, s.Running())
	assert.Zero(t, s.Interval())

	require.Error(t, s.Start(context.Background(), -time.Second))
}

func TestScheduler_StopsWithContext(t *testing.T) {
	s := cachemgr.NewScheduler(&slowRunner{}, cachemgr.StaticPressure(0), nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, s.Start(ctx, time.Hour))
	cancel()

	require.Eventually(t, func() bool { return !s.Running() }, time.Second, 5*time.Millisecond)
	s.Stop()
}

func TestScheduler_IntensityFromPressure(t *testing.T) {
	tests := []struct {
		name     string
		sampler  cachemgr.PressureSampler
		expected cachemgr.Intensity
	}{
		{"low pressure", cachemgr.StaticPressure(20), cachemgr.IntensityLight},
		{"moderate pressure", cachemgr.StaticPressure(70), cachemgr.IntensityNormal},
		{"high pressure", cachemgr.StaticPressure(95), cachemgr.IntensityAggressive},
		{"sampler failure", &mocks.PressureSamplerMock{
			SamplePressureFunc: func(context.Context) (float64, error) {
				return 0, errors.New("no procfs")
			},
		}, cachemgr.IntensityLight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &slowRunner{}
			s := cachemgr.NewScheduler(runner, tt.sampler, nil, nil)

			result, ran := s.RunNow(context.Background())
			require.True(t, ran)
			assert.Equal(t, tt.expected, result.Intensity)
			assert.Equal(t, []cachemgr.Intensity{tt.expected}, runner.passes())
		})
	}
}

func TestScheduler_RunNowWhileBusy(t *testing.T) {
	runner := &slowRunner{delay: 100 * time.Millisecond}
	metrics := cachemgr.NewMetrics()
	s := cachemgr.NewScheduler(runner, cachemgr.StaticPressure(0), nil, metrics)

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.RunNow(context.Background())
	}()

	require.Eventually(t, s.Busy, time.Second, time.Millisecond)
	_, ran := s.RunNow(context.Background())
	assert.False(t, ran)
	<-done

	assert.Len(t, runner.passes(), 1)
	assert.Equal(t, int64(1), metrics.Snapshot().SkippedTicks)
}
