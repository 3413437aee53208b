package cachemgr

import "context"

//go:generate go run github.com/matryer/moq@v0.5.3 -pkg mocks -out mocks/module.go . Module

// Module is a self-contained keyed store with its own eviction logic.
// The orchestrator treats modules as opaque beyond this contract.
// Implementations must be safe for concurrent use by multiple goroutines.
type Module interface {
	// Priority orders modules within a cleanup pass. Higher values run first.
	Priority() int

	// Enabled reports whether the module takes part in cleanup passes.
	Enabled() bool

	// Initialize is called once when the module is registered.
	Initialize(ctx context.Context) error

	// Dispose is called once when the module is unregistered, replaced, or when the
	// orchestrator is closed.
	Dispose(ctx context.Context) error

	// Statistics returns a snapshot of the module. It is called on every pass and
	// must be cheap: running counters, never a scan.
	Statistics(ctx context.Context) (Statistics, error)

	// ClearCache removes every entry. Calling it repeatedly has no further effect.
	ClearCache(ctx context.Context) error

	// SmartCleanup performs one partial eviction pass guided by hints and returns the
	// number of removed entries. It must tolerate concurrent reads and writes; entries
	// touched while the pass runs may survive.
	SmartCleanup(ctx context.Context, hints CleanupHints) (int, error)

	// Warmup pre-populates the module. The orchestrator never calls it during
	// steady-state cleanup.
	Warmup(ctx context.Context) error

	// MemoryUsage returns a coarse estimate of the bytes held by the module.
	MemoryUsage() int64
}
