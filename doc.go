// Package cachemgr coordinates eviction across independently owned in-process caches.
//
// Applications register cache modules and cleanup strategies with an [Orchestrator].
// The orchestrator runs global cleanup passes that fan out across modules, lets every
// enabled strategy decide whether and how hard to evict, and aggregates statistics for
// observability. An optional [Scheduler] drives passes periodically and escalates the
// cleanup intensity as memory pressure rises.
//
// # Architecture Overview
//
//   - Module: a self-contained keyed store with its own eviction logic ([Store] is the
//     reusable base implementation)
//   - Strategy: a policy deciding when and how aggressively to evict (LRU, usage based,
//     memory pressure, scheduled and adaptive strategies are built in)
//   - Orchestrator: registry of modules and strategies, global cleanup and statistics
//   - Scheduler: periodic driver with skip-if-busy semantics
//
// # Cleanup Passes
//
// A pass snapshots the enabled modules and strategies, then processes modules in
// parallel on a bounded worker pool. For a single module, strategies run in descending
// priority order using a two-phase protocol:
//
//  1. ShouldCleanup: a cheap predicate, gated by the strategy's minimum interval
//  2. ExecuteCleanup: asks the module to evict, measuring removed items and freed bytes
//
// Failures are isolated per (module, strategy) pair. A pass always produces a
// [GlobalCleanupResult], even when some modules or strategies failed.
//
//	orch, err := cachemgr.New(cachemgr.WithConfig(cfg))
//	if err != nil {
//	    return err
//	}
//	defer orch.Close(ctx)
//
//	types := cachemgr.NewStore[reflect.Type](cachemgr.WithPriority(10))
//	if err := orch.RegisterModule(ctx, "types", types); err != nil {
//	    return err
//	}
//	if err := orch.RegisterCleanupStrategy(ctx, cachemgr.NewLRUStrategy()); err != nil {
//	    return err
//	}
//
//	result := orch.ExecuteGlobalCleanup(ctx, cachemgr.IntensityNormal)
//
// # Memory Pressure
//
// Memory pressure is a normalized 0-100 signal produced by a [PressureSampler]. The
// defaults are backed by gopsutil: host memory utilization, or process resident memory
// relative to a configured budget when Config.MemoryBudgetBytes is set.
//
// # Thread Safety
//
// All exported types are safe for concurrent use. Statistics are point-in-time
// snapshots and may be stale by the time a strategy acts on them.
package cachemgr
