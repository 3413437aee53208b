package cachemgr

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"
	platformerrors "github.com/jmgilman/go/errors"
	"golang.org/x/sync/singleflight"
)

const (
	defaultShardCount = 16
	defaultItemSize   = 256
)

// SizeEstimator returns the approximate number of bytes an entry occupies.
type SizeEstimator func(key string, value any) int64

// WarmupFunc pre-populates a store through put.
type WarmupFunc func(ctx context.Context, put func(key string, value any)) error

// FixedSizeEstimator charges the same number of bytes for every entry.
func FixedSizeEstimator(bytesPerItem int64) SizeEstimator {
	return func(string, any) int64 { return bytesPerItem }
}

// StoreOption configures a Store.
type StoreOption func(*storeOptions)

type storeOptions struct {
	priority     int
	enabled      bool
	shards       int
	estimator    SizeEstimator
	memoryBudget int64
	warmup       WarmupFunc
	now          func() time.Time
	logger       *Logger
}

// WithPriority sets the module priority. Higher priorities are scheduled first.
func WithPriority(priority int) StoreOption {
	return func(o *storeOptions) { o.priority = priority }
}

// WithEnabled sets whether the store initially takes part in cleanup passes.
func WithEnabled(enabled bool) StoreOption {
	return func(o *storeOptions) { o.enabled = enabled }
}

// WithShards sets the number of independently locked map shards.
func WithShards(n int) StoreOption {
	return func(o *storeOptions) { o.shards = n }
}

// WithItemSize charges a fixed number of bytes per entry.
func WithItemSize(bytes int64) StoreOption {
	return func(o *storeOptions) { o.estimator = FixedSizeEstimator(bytes) }
}

// WithSizeEstimator installs a custom per-entry size estimator.
func WithSizeEstimator(estimator SizeEstimator) StoreOption {
	return func(o *storeOptions) { o.estimator = estimator }
}

// WithMemoryBudget sets the byte budget used to derive the store's own pressure level.
func WithMemoryBudget(bytes int64) StoreOption {
	return func(o *storeOptions) { o.memoryBudget = bytes }
}

// WithWarmup installs the function run by Warmup.
func WithWarmup(fn WarmupFunc) StoreOption {
	return func(o *storeOptions) { o.warmup = fn }
}

// WithClock overrides the time source used for access tracking.
func WithClock(now func() time.Time) StoreOption {
	return func(o *storeOptions) { o.now = now }
}

// WithStoreLogger sets the logger used by the store.
func WithStoreLogger(logger *Logger) StoreOption {
	return func(o *storeOptions) { o.logger = logger }
}

// storeItem is a single entry. Access tracking uses atomics so readers only need the
// shard read lock.
type storeItem[V any] struct {
	value      V
	size       int64
	createdAt  int64
	lastAccess atomic.Int64
	hits       atomic.Int64
}

type storeShard[V any] struct {
	mu    sync.RWMutex
	items map[string]*storeItem[V]
}

// Store is a concurrent keyed cache implementing Module. It can be used directly as
// a domain cache or embedded by modules that add their own lookup logic.
//
// Entries live in a sharded map; a shard is chosen by hashing the key. Statistics are
// kept in running counters so Statistics never scans the map.
type Store[V any] struct {
	shards    []*storeShard[V]
	priority  int
	enabled   atomic.Bool
	estimator SizeEstimator
	budget    int64
	warmup    WarmupFunc
	now       func() time.Time
	logger    *Logger
	loads     singleflight.Group

	items       atomic.Int64
	bytes       atomic.Int64
	hits        atomic.Int64
	misses      atomic.Int64
	accesses    atomic.Int64
	evictions   atomic.Int64
	lastCleanup atomic.Int64

	initialized atomic.Bool
	disposed    atomic.Bool
}

var _ Module = (*Store[any])(nil)

// NewStore creates an empty, enabled store.
func NewStore[V any](opts ...StoreOption) *Store[V] {
	o := storeOptions{
		enabled:   true,
		shards:    defaultShardCount,
		estimator: FixedSizeEstimator(defaultItemSize),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.shards <= 0 {
		o.shards = defaultShardCount
	}
	if o.logger == nil {
		o.logger = NewNopLogger()
	}

	s := &Store[V]{
		shards:    make([]*storeShard[V], o.shards),
		priority:  o.priority,
		estimator: o.estimator,
		budget:    o.memoryBudget,
		warmup:    o.warmup,
		now:       o.now,
		logger:    o.logger,
	}
	for i := range s.shards {
		s.shards[i] = &storeShard[V]{items: make(map[string]*storeItem[V])}
	}
	s.enabled.Store(o.enabled)
	return s
}

func (s *Store[V]) shard(key string) *storeShard[V] {
	return s.shards[xxhash.Sum64String(key)%uint64(len(s.shards))]
}

// Get returns the value stored under key and records a hit or a miss.
func (s *Store[V]) Get(key string) (V, bool) {
	now := s.now().UnixNano()
	sh := s.shard(key)
	sh.mu.RLock()
	it, ok := sh.items[key]
	if ok {
		// Counted under the shard lock so a concurrent removal subtracts these hits.
		it.lastAccess.Store(now)
		it.hits.Add(1)
		s.accesses.Add(1)
	}
	sh.mu.RUnlock()

	if !ok {
		s.misses.Add(1)
		var zero V
		return zero, false
	}
	s.hits.Add(1)
	return it.value, true
}

// Put stores value under key, replacing any existing entry.
func (s *Store[V]) Put(key string, value V) {
	now := s.now().UnixNano()
	it := &storeItem[V]{
		value:     value,
		size:      s.estimator(key, value),
		createdAt: now,
	}
	it.lastAccess.Store(now)

	sh := s.shard(key)
	sh.mu.Lock()
	old, existed := sh.items[key]
	sh.items[key] = it
	sh.mu.Unlock()

	if existed {
		s.bytes.Add(it.size - old.size)
		s.accesses.Add(-old.hits.Load())
		return
	}
	s.items.Add(1)
	s.bytes.Add(it.size)
}

// GetOrLoad returns the cached value for key, calling load on a miss. Concurrent
// loads of the same key are collapsed into one call.
func (s *Store[V]) GetOrLoad(key string, load func() (V, error)) (V, error) {
	if v, ok := s.Get(key); ok {
		return v, nil
	}

	v, err, _ := s.loads.Do(key, func() (any, error) {
		sh := s.shard(key)
		sh.mu.RLock()
		it, ok := sh.items[key]
		sh.mu.RUnlock()
		if ok {
			return it.value, nil
		}

		loaded, err := load()
		if err != nil {
			return nil, err
		}
		s.Put(key, loaded)
		return loaded, nil
	})
	if err != nil {
		var zero V
		return zero, fmt.Errorf("failed to load %q: %w", key, err)
	}
	out, _ := v.(V)
	return out, nil
}

// Delete removes key and reports whether it was present.
func (s *Store[V]) Delete(key string) bool {
	sh := s.shard(key)
	sh.mu.Lock()
	it, ok := sh.items[key]
	if ok {
		delete(sh.items, key)
	}
	sh.mu.Unlock()

	if ok {
		s.forget(it)
	}
	return ok
}

// Len returns the number of entries.
func (s *Store[V]) Len() int {
	return int(s.items.Load())
}

func (s *Store[V]) forget(it *storeItem[V]) {
	s.items.Add(-1)
	s.bytes.Add(-it.size)
	s.accesses.Add(-it.hits.Load())
}

// Priority implements Module.
func (s *Store[V]) Priority() int {
	return s.priority
}

// Enabled implements Module.
func (s *Store[V]) Enabled() bool {
	return s.enabled.Load()
}

// SetEnabled toggles participation in cleanup passes.
func (s *Store[V]) SetEnabled(enabled bool) {
	s.enabled.Store(enabled)
}

// Initialize implements Module.
func (s *Store[V]) Initialize(ctx context.Context) error {
	if !s.initialized.CompareAndSwap(false, true) {
		return platformerrors.New(platformerrors.CodeConflict, "store already initialized")
	}
	s.disposed.Store(false)
	s.logger.Debug(ctx, "store initialized", "shards", len(s.shards))
	return nil
}

// Dispose implements Module. It drops every entry.
func (s *Store[V]) Dispose(ctx context.Context) error {
	if !s.disposed.CompareAndSwap(false, true) {
		return nil
	}
	s.initialized.Store(false)
	if err := s.ClearCache(ctx); err != nil {
		return err
	}
	s.logger.Debug(ctx, "store disposed")
	return nil
}

// Statistics implements Module using the running counters only.
func (s *Store[V]) Statistics(_ context.Context) (Statistics, error) {
	items := max(s.items.Load(), 0)
	bytes := max(s.bytes.Load(), 0)
	hits := s.hits.Load()
	misses := s.misses.Load()

	var avgUsage float64
	if items > 0 {
		avgUsage = float64(max(s.accesses.Load(), 0)) / float64(items)
	}

	var lastCleanup time.Time
	if ts := s.lastCleanup.Load(); ts != 0 {
		lastCleanup = time.Unix(0, ts)
	}

	level := PressureLow
	if s.budget > 0 {
		level = LevelForPressure(float64(bytes) / float64(s.budget) * 100)
	}

	return Statistics{
		TotalItems:            items,
		HitCount:              hits,
		MissCount:             misses,
		HitRate:               ComputeHitRate(hits, misses),
		MemoryUsageBytes:      bytes,
		LastCleanupTime:       lastCleanup,
		AverageUsageFrequency: avgUsage,
		MemoryPressureLevel:   level,
		Extended: map[string]any{
			"shards":          len(s.shards),
			"total_evictions": s.evictions.Load(),
		},
	}, nil
}

// ClearCache implements Module.
func (s *Store[V]) ClearCache(ctx context.Context) error {
	removed := 0
	for _, sh := range s.shards {
		sh.mu.Lock()
		old := sh.items
		sh.items = make(map[string]*storeItem[V])
		sh.mu.Unlock()

		for _, it := range old {
			s.forget(it)
		}
		removed += len(old)
	}
	s.lastCleanup.Store(s.now().UnixNano())

	if removed > 0 {
		s.logger.Debug(ctx, "store cleared", "removed", removed)
	}
	return nil
}

// MemoryUsage implements Module.
func (s *Store[V]) MemoryUsage() int64 {
	return max(s.bytes.Load(), 0)
}

// Warmup implements Module by running the configured warmup function, if any.
// Values of the wrong type are skipped and reported.
func (s *Store[V]) Warmup(ctx context.Context) error {
	if s.warmup == nil {
		return nil
	}

	var skipped int
	err := s.warmup(ctx, func(key string, value any) {
		v, ok := value.(V)
		if !ok {
			skipped++
			return
		}
		s.Put(key, v)
	})
	if err != nil {
		return fmt.Errorf("warmup failed: %w", err)
	}
	if skipped > 0 {
		return platformerrors.Newf(platformerrors.CodeInvalidInput, "warmup produced %d values of the wrong type", skipped)
	}
	return nil
}

// candidate is a snapshot of one entry taken during SmartCleanup.
type candidate[V any] struct {
	key        string
	item       *storeItem[V]
	lastAccess int64
	hits       int64
}

// SmartCleanup implements Module. Candidates are snapshotted shard by shard, victims
// are chosen without holding any lock, and each removal re-checks that the entry was
// not touched since the snapshot.
func (s *Store[V]) SmartCleanup(ctx context.Context, hints CleanupHints) (int, error) {
	now := s.now()
	candidates := s.snapshot()
	victims := selectVictims(candidates, hints, now.UnixNano())

	removed := 0
	for _, c := range victims {
		if ctx.Err() != nil {
			break
		}
		if s.removeIfUntouched(c) {
			removed++
		}
	}

	s.evictions.Add(int64(removed))
	s.lastCleanup.Store(now.UnixNano())
	s.logger.Debug(ctx, "smart cleanup finished",
		"candidates", len(candidates),
		"selected", len(victims),
		"removed", removed,
		"intensity", hints.Intensity.String(),
	)
	return removed, nil
}

func (s *Store[V]) snapshot() []candidate[V] {
	out := make([]candidate[V], 0, max(s.items.Load(), 0))
	for _, sh := range s.shards {
		sh.mu.RLock()
		for key, it := range sh.items {
			out = append(out, candidate[V]{
				key:        key,
				item:       it,
				lastAccess: it.lastAccess.Load(),
				hits:       it.hits.Load(),
			})
		}
		sh.mu.RUnlock()
	}
	return out
}

func (s *Store[V]) removeIfUntouched(c candidate[V]) bool {
	sh := s.shard(c.key)
	sh.mu.Lock()
	it, ok := sh.items[c.key]
	if !ok || it != c.item || it.lastAccess.Load() != c.lastAccess {
		sh.mu.Unlock()
		return false
	}
	delete(sh.items, c.key)
	sh.mu.Unlock()

	s.forget(it)
	return true
}

// selectVictims picks entries to evict. Expired and rarely used entries are always
// selected, then the least recently used Ratio of the remainder, capped at Limit.
func selectVictims[V any](candidates []candidate[V], hints CleanupHints, now int64) []candidate[V] {
	byRecency := func(c []candidate[V]) {
		sort.Slice(c, func(i, j int) bool {
			if c[i].lastAccess != c[j].lastAccess {
				return c[i].lastAccess < c[j].lastAccess
			}
			return c[i].key < c[j].key
		})
	}

	ratio := hints.Ratio
	if hints.Intensity == IntensityForce {
		ratio = 1
	}
	ratio = math.Min(math.Max(ratio, 0), 1)

	var selected, rest []candidate[V]
	for _, c := range candidates {
		idle := time.Duration(now - c.lastAccess)
		switch {
		case hints.MaxAge > 0 && idle > hints.MaxAge:
			selected = append(selected, c)
		case hints.MinUsage > 0 && float64(c.hits) < hints.MinUsage:
			selected = append(selected, c)
		default:
			rest = append(rest, c)
		}
	}

	if ratio > 0 && len(rest) > 0 {
		n := int(math.Ceil(ratio * float64(len(rest))))
		byRecency(rest)
		selected = append(selected, rest[:min(n, len(rest))]...)
	}

	if hints.Limit > 0 && len(selected) > hints.Limit {
		byRecency(selected)
		selected = selected[:hints.Limit]
	}
	return selected
}
