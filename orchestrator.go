package cachemgr

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	platformerrors "github.com/jmgilman/go/errors"
	"golang.org/x/sync/errgroup"
)

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithConfig sets the orchestrator configuration.
func WithConfig(config Config) Option {
	return func(o *Orchestrator) { o.config = config }
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger *Logger) Option {
	return func(o *Orchestrator) { o.logger = logger }
}

// WithPressureSampler overrides the memory pressure source.
func WithPressureSampler(sampler PressureSampler) Option {
	return func(o *Orchestrator) { o.sampler = sampler }
}

// WithOrchestratorClock overrides the clock used for cleanup contexts and timestamps.
// Durations are always measured with the wall clock.
func WithOrchestratorClock(now func() time.Time) Option {
	return func(o *Orchestrator) { o.now = now }
}

// WithEventHandler subscribes handler to orchestrator events.
func WithEventHandler(handler EventHandler) Option {
	return func(o *Orchestrator) { o.handlers = append(o.handlers, subscription{handler: handler}) }
}

// registry is an immutable view of the registered modules and strategies. Mutations
// build a new registry and swap it in, so cleanup passes never lock.
type registry struct {
	modules    map[string]Module
	strategies map[string]Strategy
}

type namedModule struct {
	name   string
	module Module
}

func (r *registry) clone() *registry {
	next := &registry{
		modules:    make(map[string]Module, len(r.modules)+1),
		strategies: make(map[string]Strategy, len(r.strategies)+1),
	}
	for k, v := range r.modules {
		next.modules[k] = v
	}
	for k, v := range r.strategies {
		next.strategies[k] = v
	}
	return next
}

func (r *registry) sortedModules(enabledOnly bool) []namedModule {
	out := make([]namedModule, 0, len(r.modules))
	for name, m := range r.modules {
		if enabledOnly && !m.Enabled() {
			continue
		}
		out = append(out, namedModule{name: name, module: m})
	}
	sort.SliceStable(out, func(i, j int) bool {
		pi, pj := out[i].module.Priority(), out[j].module.Priority()
		if pi != pj {
			return pi > pj
		}
		return out[i].name < out[j].name
	})
	return out
}

func (r *registry) enabledStrategies() []Strategy {
	out := make([]Strategy, 0, len(r.strategies))
	for _, s := range r.strategies {
		if s.Enabled() {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		pi, pj := out[i].Priority(), out[j].Priority()
		if pi != pj {
			return pi > pj
		}
		return out[i].Name() < out[j].Name()
	})
	return out
}

type subscription struct {
	id      uint64
	handler EventHandler
}

// Orchestrator registers cache modules and cleanup strategies, runs global cleanup
// passes and aggregates statistics. It is created by the application's composition
// root and passed to collaborators explicitly.
type Orchestrator struct {
	regLock chan struct{}
	reg     atomic.Pointer[registry]

	cfgMu  sync.RWMutex
	config Config

	sampler   PressureSampler
	logger    *Logger
	metrics   *Metrics
	now       func() time.Time
	scheduler *Scheduler

	handlersMu sync.RWMutex
	handlers   []subscription
	nextID     uint64

	lifetime context.Context
	cancel   context.CancelFunc
	closed   atomic.Bool
}

// New creates an orchestrator. When Config.AutoCleanup is set, the scheduler is
// started immediately and runs until Close.
func New(opts ...Option) (*Orchestrator, error) {
	o := &Orchestrator{
		regLock: make(chan struct{}, 1),
		config:  DefaultConfig(),
		metrics: NewMetrics(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}

	o.config.SetDefaults()
	if err := o.config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid orchestrator config: %w", err)
	}

	if o.logger == nil {
		o.logger = NewNopLogger()
	}
	for i := range o.handlers {
		o.nextID++
		o.handlers[i].id = o.nextID
	}

	o.lifetime, o.cancel = context.WithCancel(context.Background())

	if o.sampler == nil {
		sampler, err := defaultSampler(o.lifetime, o.config)
		if err != nil {
			o.cancel()
			return nil, fmt.Errorf("failed to initialize pressure sampler: %w", err)
		}
		o.sampler = sampler
	}

	o.reg.Store(&registry{
		modules:    make(map[string]Module),
		strategies: make(map[string]Strategy),
	})
	o.scheduler = NewScheduler(o, o.sampler, o.logger, o.metrics)

	if o.config.AutoCleanup {
		if err := o.scheduler.Start(o.lifetime, o.config.AutoCleanupInterval); err != nil {
			o.cancel()
			return nil, fmt.Errorf("failed to start auto cleanup: %w", err)
		}
	}

	return o, nil
}

func defaultSampler(ctx context.Context, cfg Config) (PressureSampler, error) {
	if cfg.MemoryBudgetBytes > 0 {
		return NewProcessSampler(ctx, cfg.MemoryBudgetBytes)
	}
	return NewSystemSampler(), nil
}

// lockRegistry acquires the registry lock, giving up after RegistryLockTimeout.
func (o *Orchestrator) lockRegistry(ctx context.Context, op Operation) (func(), error) {
	timer := time.NewTimer(o.Configuration().RegistryLockTimeout)
	defer timer.Stop()

	select {
	case o.regLock <- struct{}{}:
		return func() { <-o.regLock }, nil
	case <-timer.C:
		o.logger.WithOperation(op).Error(ctx, "registry lock acquisition timed out")
		return nil, fmt.Errorf("%s: %w", op, ErrRegistryLockTimeout)
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	}
}

// RegisterModule initializes m and registers it under name. A different module
// already registered under name is replaced and disposed. Registering the same
// module again is a no-op.
func (o *Orchestrator) RegisterModule(ctx context.Context, name string, m Module) error {
	if name == "" {
		return platformerrors.New(platformerrors.CodeInvalidInput, "module name is required")
	}
	if m == nil {
		return platformerrors.New(platformerrors.CodeInvalidInput, "module is required")
	}
	if o.closed.Load() {
		return ErrClosed
	}
	logger := o.logger.WithOperation(OpRegisterModule).WithModule(name)

	if current, ok := o.reg.Load().modules[name]; ok && current == m {
		logger.Debug(ctx, "module already registered")
		return nil
	}

	if _, err := guard(func() (struct{}, error) { return struct{}{}, m.Initialize(ctx) }); err != nil {
		logger.Error(ctx, "module initialization failed", "error", err)
		return moduleError(err, name, "initialize")
	}

	unlock, err := o.lockRegistry(ctx, OpRegisterModule)
	if err != nil {
		o.dispose(ctx, name, m)
		return err
	}
	if o.closed.Load() {
		unlock()
		o.dispose(ctx, name, m)
		return ErrClosed
	}
	next := o.reg.Load().clone()
	previous, replaced := next.modules[name]
	next.modules[name] = m
	o.reg.Store(next)
	unlock()

	if replaced && previous != m {
		logger.Info(ctx, "replacing registered module")
		o.dispose(ctx, name, previous)
	}

	logger.Info(ctx, "module registered", "priority", m.Priority(), "enabled", m.Enabled())
	o.emit(func(h EventHandler) { h.OnModuleRegistered(name) })
	return nil
}

// UnregisterModule removes and disposes the module registered under name.
func (o *Orchestrator) UnregisterModule(ctx context.Context, name string) error {
	unlock, err := o.lockRegistry(ctx, OpUnregisterModule)
	if err != nil {
		return err
	}
	cur := o.reg.Load()
	m, ok := cur.modules[name]
	if !ok {
		unlock()
		return platformerrors.WithContext(
			platformerrors.New(platformerrors.CodeNotFound, "module not registered"), "module", name)
	}
	next := cur.clone()
	delete(next.modules, name)
	o.reg.Store(next)
	unlock()

	for _, s := range next.strategies {
		if f, ok := s.(interface{ Forget(module string) }); ok {
			f.Forget(name)
		}
	}

	disposeErr := o.dispose(ctx, name, m)
	o.logger.WithOperation(OpUnregisterModule).WithModule(name).Info(ctx, "module unregistered")
	o.emit(func(h EventHandler) { h.OnModuleUnregistered(name) })
	return disposeErr
}

func (o *Orchestrator) dispose(ctx context.Context, name string, m Module) error {
	_, err := guard(func() (struct{}, error) { return struct{}{}, m.Dispose(ctx) })
	if err != nil {
		o.logger.WithModule(name).Warn(ctx, "module dispose failed", "error", err)
		return moduleError(err, name, "dispose")
	}
	return nil
}

// GetModule returns the module registered under name.
func (o *Orchestrator) GetModule(name string) (Module, bool) {
	m, ok := o.reg.Load().modules[name]
	return m, ok
}

// ModuleNames returns the registered module names in sorted order.
func (o *Orchestrator) ModuleNames() []string {
	reg := o.reg.Load()
	names := make([]string, 0, len(reg.modules))
	for name := range reg.modules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RegisterCleanupStrategy registers s under s.Name(), replacing any strategy with the
// same name. Overrides from Config.Strategies are applied to it.
func (o *Orchestrator) RegisterCleanupStrategy(ctx context.Context, s Strategy) error {
	if s == nil {
		return platformerrors.New(platformerrors.CodeInvalidInput, "strategy is required")
	}
	name := s.Name()
	if name == "" {
		return platformerrors.New(platformerrors.CodeInvalidInput, "strategy name is required")
	}
	if o.closed.Load() {
		return ErrClosed
	}

	if override, ok := o.Configuration().Strategies[name]; ok {
		if err := applyStrategyConfig(s, override); err != nil {
			return err
		}
	}
	if a, ok := s.(interface{ Anchor(now time.Time) }); ok {
		a.Anchor(o.now())
	}

	unlock, err := o.lockRegistry(ctx, OpRegisterStrategy)
	if err != nil {
		return err
	}
	if o.closed.Load() {
		unlock()
		return ErrClosed
	}
	next := o.reg.Load().clone()
	next.strategies[name] = s
	o.reg.Store(next)
	unlock()

	o.logger.WithOperation(OpRegisterStrategy).WithStrategy(name).Info(ctx, "cleanup strategy registered",
		"priority", s.Priority(), "enabled", s.Enabled())
	return nil
}

// UnregisterCleanupStrategy removes the strategy registered under name.
func (o *Orchestrator) UnregisterCleanupStrategy(ctx context.Context, name string) error {
	unlock, err := o.lockRegistry(ctx, OpUnregisterStrategy)
	if err != nil {
		return err
	}
	defer unlock()

	cur := o.reg.Load()
	if _, ok := cur.strategies[name]; !ok {
		return platformerrors.WithContext(
			platformerrors.New(platformerrors.CodeNotFound, "strategy not registered"), "strategy", name)
	}
	next := cur.clone()
	delete(next.strategies, name)
	o.reg.Store(next)

	o.logger.WithOperation(OpUnregisterStrategy).WithStrategy(name).Info(ctx, "cleanup strategy unregistered")
	return nil
}

// GetStrategy returns the strategy registered under name.
func (o *Orchestrator) GetStrategy(name string) (Strategy, bool) {
	s, ok := o.reg.Load().strategies[name]
	return s, ok
}

func applyStrategyConfig(s Strategy, sc StrategyConfig) error {
	if sc.Enabled != nil {
		toggler, ok := s.(interface{ SetEnabled(bool) })
		if !ok {
			return configError("enabled", "strategy %s cannot be toggled", s.Name())
		}
		toggler.SetEnabled(*sc.Enabled)
	}
	if len(sc.Parameters) > 0 {
		if err := s.SetConfiguration(sc.Parameters); err != nil {
			return platformerrors.WithContext(err, "strategy", s.Name())
		}
	}
	return nil
}

// moduleOutcome is the result of cleaning one module during a pass.
type moduleOutcome struct {
	name    string
	results []CleanupResult
	stats   Statistics
	mutated bool
	err     error
}

// ExecuteGlobalCleanup runs one cleanup pass over every enabled module at the given
// intensity. Modules are processed in parallel on a bounded worker pool; strategies
// run per module in descending priority. Failures are isolated and reported in the
// result, which is always returned.
func (o *Orchestrator) ExecuteGlobalCleanup(ctx context.Context, intensity Intensity) GlobalCleanupResult {
	wallStart := time.Now()
	logger := o.logger.WithOperation(OpGlobalCleanup)

	if !intensity.Valid() {
		logger.Warn(ctx, "invalid cleanup intensity, using normal", "intensity", int(intensity))
		intensity = IntensityNormal
	}

	cfg := o.Configuration()
	pressure := o.samplePressure(ctx)
	reg := o.reg.Load()
	modules := reg.sortedModules(true)
	strategies := reg.enabledStrategies()

	result := GlobalCleanupResult{
		ModuleResults:        make(map[string][]CleanupResult, len(modules)),
		ModuleErrors:         make(map[string]error),
		Intensity:            intensity,
		StartTime:            o.now(),
		SystemMemoryPressure: pressure,
	}

	outcomes := make([]moduleOutcome, len(modules))
	var g errgroup.Group
	g.SetLimit(cfg.concurrency(len(modules)))
	for i, nm := range modules {
		g.Go(func() error {
			outcomes[i] = o.cleanupModule(ctx, nm, strategies, pressure, intensity, cfg.MaxCleanupItems)
			return nil
		})
	}
	_ = g.Wait()

	for _, oc := range outcomes {
		if oc.err != nil {
			result.ModuleErrors[oc.name] = oc.err
			logger.WithModule(oc.name).Warn(ctx, "module excluded from cleanup pass", "error", oc.err)
			continue
		}
		result.ModuleResults[oc.name] = oc.results
		for _, r := range oc.results {
			if r.WasExecuted {
				result.TotalCleanedItems += r.CleanedItems
				result.TotalFreedMemory += r.FreedMemoryBytes
			}
		}
	}
	result.TotalExecutionTime = time.Since(wallStart)

	o.metrics.RecordPass(result)
	for _, oc := range outcomes {
		if oc.err == nil && oc.mutated {
			o.emit(func(h EventHandler) { h.OnModuleStatisticsChanged(oc.name, oc.stats) })
		}
	}
	LogGlobalCleanup(ctx, logger, result)
	o.emit(func(h EventHandler) { h.OnGlobalCleanupCompleted(result) })
	return result
}

// cleanupModule applies every strategy to one module. Statistics are refreshed after
// any strategy that removed entries so later strategies decide on current numbers.
func (o *Orchestrator) cleanupModule(
	ctx context.Context,
	nm namedModule,
	strategies []Strategy,
	pressure float64,
	intensity Intensity,
	maxItems int,
) moduleOutcome {
	out := moduleOutcome{name: nm.name}
	logger := o.logger.WithOperation(OpModuleCleanup).WithModule(nm.name)

	if err := ctx.Err(); err != nil {
		out.err = err
		return out
	}

	stats, err := guard(func() (Statistics, error) { return nm.module.Statistics(ctx) })
	if err != nil {
		out.err = moduleError(err, nm.name, "statistics")
		return out
	}

	cleaned := 0
	for _, s := range strategies {
		if maxItems > 0 && cleaned >= maxItems {
			logger.Debug(ctx, "cleanup cap reached", "cap", maxItems)
			break
		}

		remaining := 0
		if maxItems > 0 {
			remaining = maxItems - cleaned
		}
		cc := &CleanupContext{
			ModuleName:           nm.name,
			Module:               nm.module,
			Stats:                stats,
			SystemMemoryPressure: pressure,
			Intensity:            intensity,
			MaxCleanupItems:      remaining,
			Now:                  o.now(),
			Data: map[string]any{
				"module_priority":   nm.module.Priority(),
				"strategy_priority": s.Priority(),
			},
		}

		should, err := guard(func() (bool, error) { return s.ShouldCleanup(cc), nil })
		if err != nil {
			res := FailedResult(s.Name(), strategyError(err, s.Name(), nm.name))
			res.ModuleName = nm.name
			out.results = append(out.results, res)
			LogCleanupResult(ctx, logger, res)
			continue
		}
		if !should {
			continue
		}

		res, err := guard(func() (CleanupResult, error) { return s.ExecuteCleanup(ctx, cc), nil })
		if err != nil {
			res = FailedResult(s.Name(), strategyError(err, s.Name(), nm.name))
		}
		res.StrategyName = s.Name()
		res.ModuleName = nm.name
		out.results = append(out.results, res)
		LogCleanupResult(ctx, logger, res)

		if res.WasExecuted && res.CleanedItems > 0 {
			cleaned += res.CleanedItems
			out.mutated = true
			stats, err = guard(func() (Statistics, error) { return nm.module.Statistics(ctx) })
			if err != nil {
				out.err = moduleError(err, nm.name, "statistics")
				return out
			}
		}
	}

	out.stats = stats
	return out
}

// GetGlobalStatistics reads every registered module's statistics sequentially and
// aggregates them. Modules whose statistics fail are reported in ModuleErrors.
func (o *Orchestrator) GetGlobalStatistics(ctx context.Context) GlobalStatistics {
	modules := o.reg.Load().sortedModules(false)
	gs := GlobalStatistics{
		Modules:        make(map[string]Statistics, len(modules)),
		ModuleErrors:   make(map[string]error),
		LastUpdateTime: o.now(),
	}

	for _, nm := range modules {
		stats, err := guard(func() (Statistics, error) { return nm.module.Statistics(ctx) })
		if err != nil {
			gs.ModuleErrors[nm.name] = moduleError(err, nm.name, "statistics")
			o.logger.WithOperation(OpStatistics).WithModule(nm.name).Warn(ctx, "failed to read module statistics", "error", err)
			continue
		}
		gs.Modules[nm.name] = stats
		gs.TotalCacheItems += stats.TotalItems
		gs.TotalMemoryUsage += stats.MemoryUsageBytes
		gs.TotalHits += stats.HitCount
		gs.TotalMisses += stats.MissCount
		if nm.module.Enabled() {
			gs.ActiveModuleCount++
		}
	}

	gs.GlobalHitRate = ComputeHitRate(gs.TotalHits, gs.TotalMisses)
	gs.SystemMemoryPressure = o.samplePressure(ctx)
	gs.PressureLevel = LevelForPressure(gs.SystemMemoryPressure)
	return gs
}

// ClearAllCaches clears every registered module, enabled or not. Failures do not
// stop the remaining modules from being cleared and are returned joined.
func (o *Orchestrator) ClearAllCaches(ctx context.Context) error {
	logger := o.logger.WithOperation(OpClearAll)

	var errs []error
	modules := o.reg.Load().sortedModules(false)
	for _, nm := range modules {
		_, err := guard(func() (struct{}, error) { return struct{}{}, nm.module.ClearCache(ctx) })
		if err != nil {
			logger.WithModule(nm.name).Warn(ctx, "failed to clear module", "error", err)
			errs = append(errs, moduleError(err, nm.name, "clear"))
		}
	}

	logger.Info(ctx, "cleared all caches", "modules", len(modules), "failures", len(errs))
	return errors.Join(errs...)
}

// Configuration returns the current configuration.
func (o *Orchestrator) Configuration() Config {
	o.cfgMu.RLock()
	defer o.cfgMu.RUnlock()
	return o.config
}

// SetGlobalConfiguration validates and applies config. Strategy overrides are applied
// to registered strategies. The scheduler is restarted when the interval changed,
// started when auto cleanup was switched on and stopped when it was switched off.
func (o *Orchestrator) SetGlobalConfiguration(ctx context.Context, config Config) error {
	logger := o.logger.WithOperation(OpConfigure)

	config.SetDefaults()
	if err := config.Validate(); err != nil {
		logger.Warn(ctx, "rejected configuration", "error", err)
		return err
	}

	reg := o.reg.Load()
	for name, sc := range config.Strategies {
		s, ok := reg.strategies[name]
		if !ok {
			continue
		}
		if err := applyStrategyConfig(s, sc); err != nil {
			logger.Warn(ctx, "rejected strategy configuration", "strategy", name, "error", err)
			return err
		}
	}

	o.cfgMu.Lock()
	previous := o.config
	o.config = config
	o.cfgMu.Unlock()

	running := o.scheduler.Running()
	switch {
	case config.AutoCleanup && (!running || previous.AutoCleanupInterval != config.AutoCleanupInterval):
		o.scheduler.Stop()
		if err := o.scheduler.Start(o.lifetime, config.AutoCleanupInterval); err != nil {
			return err
		}
		logger.Info(ctx, "auto cleanup scheduled", "interval", config.AutoCleanupInterval.String())
	case !config.AutoCleanup && running:
		o.scheduler.Stop()
		logger.Info(ctx, "auto cleanup stopped")
	}

	logger.Info(ctx, "configuration applied",
		"max_concurrency", config.MaxConcurrency,
		"max_cleanup_items", config.MaxCleanupItems)
	return nil
}

// StartAutoCleanup starts (or restarts) the scheduler with interval. The scheduler
// stops when ctx is cancelled, on StopAutoCleanup, or on Close.
func (o *Orchestrator) StartAutoCleanup(ctx context.Context, interval time.Duration) error {
	if o.closed.Load() {
		return ErrClosed
	}
	if err := o.scheduler.Start(ctx, interval); err != nil {
		return err
	}

	o.cfgMu.Lock()
	o.config.AutoCleanup = true
	o.config.AutoCleanupInterval = interval
	o.cfgMu.Unlock()
	return nil
}

// StopAutoCleanup stops the scheduler, waiting for an in-flight pass to finish.
// Stopping a scheduler that is not running is a no-op. It must not be called from an
// event handler, which runs inside the pass it would wait for.
func (o *Orchestrator) StopAutoCleanup() {
	o.scheduler.Stop()

	o.cfgMu.Lock()
	o.config.AutoCleanup = false
	o.cfgMu.Unlock()
}

// Scheduler returns the orchestrator's scheduler.
func (o *Orchestrator) Scheduler() *Scheduler {
	return o.scheduler
}

// Metrics returns a snapshot of the pass metrics.
func (o *Orchestrator) Metrics() MetricsSnapshot {
	return o.metrics.Snapshot()
}

// Subscribe registers handler for orchestrator events and returns a function that
// removes it.
func (o *Orchestrator) Subscribe(handler EventHandler) func() {
	o.handlersMu.Lock()
	defer o.handlersMu.Unlock()

	o.nextID++
	id := o.nextID
	o.handlers = append(o.handlers, subscription{id: id, handler: handler})

	return func() {
		o.handlersMu.Lock()
		defer o.handlersMu.Unlock()
		for i, sub := range o.handlers {
			if sub.id == id {
				o.handlers = append(o.handlers[:i:i], o.handlers[i+1:]...)
				return
			}
		}
	}
}

func (o *Orchestrator) emit(fn func(EventHandler)) {
	o.handlersMu.RLock()
	handlers := make([]subscription, len(o.handlers))
	copy(handlers, o.handlers)
	o.handlersMu.RUnlock()

	for _, sub := range handlers {
		_, err := guard(func() (struct{}, error) {
			fn(sub.handler)
			return struct{}{}, nil
		})
		if err != nil {
			o.logger.Warn(context.Background(), "event handler panicked", "error", err)
		}
	}
}

func (o *Orchestrator) samplePressure(ctx context.Context) float64 {
	p, err := guard(func() (float64, error) { return o.sampler.SamplePressure(ctx) })
	if err != nil {
		o.logger.Warn(ctx, "failed to sample memory pressure", "error", err)
		return 0
	}
	return clampPressure(p)
}

// Close stops the scheduler and disposes every registered module. The orchestrator
// cannot be used afterwards. Close is safe to call multiple times.
func (o *Orchestrator) Close(ctx context.Context) error {
	if !o.closed.CompareAndSwap(false, true) {
		return nil
	}
	o.scheduler.Stop()
	o.cancel()

	// Shutdown waits for the lock regardless of ctx.
	o.regLock <- struct{}{}
	modules := o.reg.Load().sortedModules(false)
	o.reg.Store(&registry{
		modules:    make(map[string]Module),
		strategies: make(map[string]Strategy),
	})
	<-o.regLock

	var errs []error
	for _, nm := range modules {
		if err := o.dispose(ctx, nm.name, nm.module); err != nil {
			errs = append(errs, err)
		}
		o.emit(func(h EventHandler) { h.OnModuleUnregistered(nm.name) })
	}
	return errors.Join(errs...)
}

// guard runs fn, converting a panic into an error.
func guard[T any](fn func() (T, error)) (out T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = panicError(r)
		}
	}()
	return fn()
}
