package cachemgr

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	platformerrors "github.com/jmgilman/go/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is a manually advanced clock safe for concurrent use.
type fakeClock struct {
	ns atomic.Int64
}

func newFakeClock() *fakeClock {
	c := &fakeClock{}
	c.ns.Store(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).UnixNano())
	return c
}

func (c *fakeClock) Now() time.Time {
	return time.Unix(0, c.ns.Load())
}

func (c *fakeClock) Advance(d time.Duration) {
	c.ns.Add(int64(d))
}

// fillStore puts n entries one second apart so key-0 is the least recently used.
func fillStore(s *Store[int], clock *fakeClock, n int) {
	for i := range n {
		s.Put(fmt.Sprintf("key-%d", i), i)
		clock.Advance(time.Second)
	}
}

func TestStore_GetPutDelete(t *testing.T) {
	s := NewStore[string](WithItemSize(100))

	_, ok := s.Get("missing")
	assert.False(t, ok)

	s.Put("a", "1")
	s.Put("b", "2")
	v, ok := s.Get("a")
	require.True(t, ok)
	assert.Equal(t, "1", v)

	// replacing an entry does not change the item count
	s.Put("a", "3")
	assert.Equal(t, 2, s.Len())

	assert.True(t, s.Delete("b"))
	assert.False(t, s.Delete("b"))

	stats, err := s.Statistics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalItems)
	assert.Equal(t, int64(100), stats.MemoryUsageBytes)
	assert.Equal(t, int64(1), stats.HitCount)
	assert.Equal(t, int64(1), stats.MissCount)
	assert.InDelta(t, 0.5, stats.HitRate, 1e-9)
	assert.Equal(t, int64(100), s.MemoryUsage())
}

func TestStore_GetOrLoad(t *testing.T) {
	s := NewStore[int]()

	var loads atomic.Int32
	release := make(chan struct{})
	load := func() (int, error) {
		loads.Add(1)
		<-release
		return 42, nil
	}

	var wg sync.WaitGroup
	results := make([]int, 8)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := s.GetOrLoad("answer", load)
			assert.NoError(t, err)
			results[i] = v
		}()
	}

	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	for _, v := range results {
		assert.Equal(t, 42, v)
	}
	assert.LessOrEqual(t, loads.Load(), int32(2))
	assert.Equal(t, 1, s.Len())

	_, err := s.GetOrLoad("broken", func() (int, error) { return 0, errors.New("backend down") })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backend down")
	assert.Equal(t, 1, s.Len())
}

func TestStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	s := NewStore[int]()

	require.NoError(t, s.Initialize(ctx))
	err := s.Initialize(ctx)
	require.Error(t, err)
	assert.Equal(t, platformerrors.CodeConflict, platformerrors.GetCode(err))

	s.Put("a", 1)
	require.NoError(t, s.Dispose(ctx))
	assert.Equal(t, 0, s.Len())
	require.NoError(t, s.Dispose(ctx))

	// a disposed store can be registered again
	require.NoError(t, s.Initialize(ctx))
}

func TestStore_ClearCacheIdempotent(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	s := NewStore[int](WithClock(clock.Now))
	fillStore(s, clock, 50)

	require.NoError(t, s.ClearCache(ctx))
	first, err := s.Statistics(ctx)
	require.NoError(t, err)

	require.NoError(t, s.ClearCache(ctx))
	second, err := s.Statistics(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(0), first.TotalItems)
	assert.Equal(t, int64(0), first.MemoryUsageBytes)
	assert.Equal(t, first.TotalItems, second.TotalItems)
	assert.Equal(t, first.MemoryUsageBytes, second.MemoryUsageBytes)
	assert.False(t, second.LastCleanupTime.IsZero())
}

func TestStore_Warmup(t *testing.T) {
	ctx := context.Background()

	s := NewStore[int](WithWarmup(func(_ context.Context, put func(string, any)) error {
		put("one", 1)
		put("two", 2)
		return nil
	}))
	require.NoError(t, s.Warmup(ctx))
	assert.Equal(t, 2, s.Len())

	bad := NewStore[int](WithWarmup(func(_ context.Context, put func(string, any)) error {
		put("one", "not an int")
		return nil
	}))
	err := bad.Warmup(ctx)
	require.Error(t, err)
	assert.Equal(t, platformerrors.CodeInvalidInput, platformerrors.GetCode(err))

	require.NoError(t, NewStore[int]().Warmup(ctx))
}

func TestStore_SmartCleanup(t *testing.T) {
	tests := []struct {
		name     string
		hints    CleanupHints
		prepare  func(s *Store[int], clock *fakeClock)
		expected int
		survivor string
		evicted  string
	}{
		{
			name:     "ratio evicts least recently used",
			hints:    CleanupHints{Intensity: IntensityNormal, Ratio: 0.25},
			expected: 25,
			survivor: "key-99",
			evicted:  "key-0",
		},
		{
			name:     "ratio rounds up",
			hints:    CleanupHints{Intensity: IntensityNormal, Ratio: 0.001},
			expected: 1,
			evicted:  "key-0",
		},
		{
			name:     "max age selects idle entries",
			hints:    CleanupHints{Intensity: IntensityNormal, MaxAge: 50 * time.Second},
			expected: 50,
			survivor: "key-60",
			evicted:  "key-10",
		},
		{
			name:  "min usage selects rarely hit entries",
			hints: CleanupHints{Intensity: IntensityNormal, MinUsage: 1},
			prepare: func(s *Store[int], _ *fakeClock) {
				for i := range 10 {
					s.Get(fmt.Sprintf("key-%d", i))
				}
			},
			expected: 90,
			survivor: "key-5",
			evicted:  "key-50",
		},
		{
			name:     "limit caps removals",
			hints:    CleanupHints{Intensity: IntensityNormal, Ratio: 1, Limit: 10},
			expected: 10,
			survivor: "key-10",
			evicted:  "key-9",
		},
		{
			name:     "force evicts everything",
			hints:    CleanupHints{Intensity: IntensityForce},
			expected: 100,
			evicted:  "key-99",
		},
		{
			name:     "empty hints remove nothing",
			hints:    CleanupHints{Intensity: IntensityLight},
			expected: 0,
			survivor: "key-0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			clock := newFakeClock()
			s := NewStore[int](WithClock(clock.Now), WithItemSize(10))
			fillStore(s, clock, 100)
			if tt.prepare != nil {
				tt.prepare(s, clock)
			}

			removed, err := s.SmartCleanup(ctx, tt.hints)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, removed)
			assert.Equal(t, 100-tt.expected, s.Len())

			if tt.survivor != "" {
				_, ok := s.Get(tt.survivor)
				assert.True(t, ok, "expected %s to survive", tt.survivor)
			}
			if tt.evicted != "" {
				_, ok := s.Get(tt.evicted)
				assert.False(t, ok, "expected %s to be evicted", tt.evicted)
			}

			stats, err := s.Statistics(ctx)
			require.NoError(t, err)
			assert.Equal(t, int64(100-tt.expected), stats.TotalItems)
			assert.Equal(t, int64(100-tt.expected)*10, stats.MemoryUsageBytes)
			assert.Equal(t, int64(tt.expected), stats.Extended["total_evictions"])
		})
	}
}

func TestStore_SmartCleanupMonotonic(t *testing.T) {
	ctx := context.Background()
	hints := []CleanupHints{
		{Intensity: IntensityLight, Ratio: 0.1, MaxAge: 90 * time.Second},
		{Intensity: IntensityNormal, Ratio: 0.2, MaxAge: 60 * time.Second},
		{Intensity: IntensityAggressive, Ratio: 0.3, MaxAge: 30 * time.Second, MinUsage: 1},
		{Intensity: IntensityForce},
	}

	previous := -1
	for _, h := range hints {
		clock := newFakeClock()
		s := NewStore[int](WithClock(clock.Now))
		fillStore(s, clock, 100)

		removed, err := s.SmartCleanup(ctx, h)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, removed, previous, "intensity %s", h.Intensity)
		previous = removed
	}
}

func TestStore_SmartCleanupSkipsTouchedEntries(t *testing.T) {
	clock := newFakeClock()
	s := NewStore[int](WithClock(clock.Now))
	fillStore(s, clock, 10)

	victims := selectVictims(s.snapshot(), CleanupHints{Ratio: 1}, clock.Now().UnixNano())
	require.Len(t, victims, 10)

	// touching key-0 after the snapshot protects it
	clock.Advance(time.Second)
	_, ok := s.Get("key-0")
	require.True(t, ok)

	removed := 0
	for _, v := range victims {
		if s.removeIfUntouched(v) {
			removed++
		}
	}
	assert.Equal(t, 9, removed)
	_, ok = s.Get("key-0")
	assert.True(t, ok)
}

func TestStore_SmartCleanupCancelled(t *testing.T) {
	clock := newFakeClock()
	s := NewStore[int](WithClock(clock.Now))
	fillStore(s, clock, 10)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	removed, err := s.SmartCleanup(ctx, CleanupHints{Intensity: IntensityForce})
	require.NoError(t, err)
	assert.Equal(t, 0, removed)
	assert.Equal(t, 10, s.Len())
}

func TestStore_ConcurrentAccessDuringCleanup(t *testing.T) {
	ctx := context.Background()
	s := NewStore[int](WithShards(4))
	for i := range 1000 {
		s.Put(fmt.Sprintf("key-%d", i), i)
	}

	var wg sync.WaitGroup
	stop := make(chan struct{})
	for w := range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; ; i++ {
				select {
				case <-stop:
					return
				default:
				}
				key := fmt.Sprintf("key-%d", (i*7+w)%1000)
				if i%3 == 0 {
					s.Put(key, i)
				} else {
					s.Get(key)
				}
			}
		}()
	}

	for range 20 {
		_, err := s.SmartCleanup(ctx, CleanupHints{Intensity: IntensityNormal, Ratio: 0.2})
		require.NoError(t, err)
	}
	close(stop)
	wg.Wait()

	stats, err := s.Statistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(s.Len()), stats.TotalItems)
	assert.Equal(t, stats.TotalItems*defaultItemSize, stats.MemoryUsageBytes)
}

func TestStore_AccessCountMatchesLiveHits(t *testing.T) {
	ctx := context.Background()
	s := NewStore[int](WithShards(2))

	var wg sync.WaitGroup
	for w := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 2000 {
				key := fmt.Sprintf("key-%d", (i+w)%16)
				switch i % 5 {
				case 0:
					s.Put(key, i)
				case 1:
					s.Delete(key)
				default:
					s.Get(key)
				}
			}
		}()
	}
	wg.Wait()

	var live int64
	for _, sh := range s.shards {
		sh.mu.RLock()
		for _, it := range sh.items {
			live += it.hits.Load()
		}
		sh.mu.RUnlock()
	}
	assert.Equal(t, live, s.accesses.Load())

	require.NoError(t, s.ClearCache(ctx))
	assert.Equal(t, int64(0), s.accesses.Load())
}

func TestStore_PressureLevelFromBudget(t *testing.T) {
	s := NewStore[int](WithItemSize(100), WithMemoryBudget(1000))
	for i := range 8 {
		s.Put(fmt.Sprintf("key-%d", i), i)
	}

	stats, err := s.Statistics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, PressureHigh, stats.MemoryPressureLevel)
}
