package cachemgr

import (
	"context"
	"fmt"
	"math"
	"os"

	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"
)

//go:generate go run github.com/matryer/moq@v0.5.3 -pkg mocks -out mocks/pressure_sampler.go . PressureSampler

// PressureSampler produces a normalized 0-100 memory pressure signal.
type PressureSampler interface {
	SamplePressure(ctx context.Context) (float64, error)
}

// PressureSamplerFunc adapts a function to PressureSampler.
type PressureSamplerFunc func(ctx context.Context) (float64, error)

// SamplePressure implements PressureSampler.
func (f PressureSamplerFunc) SamplePressure(ctx context.Context) (float64, error) {
	return f(ctx)
}

// StaticPressure returns a sampler that always reports pressure. Useful in tests and
// for hosts where pressure is managed externally.
func StaticPressure(pressure float64) PressureSampler {
	return PressureSamplerFunc(func(context.Context) (float64, error) {
		return clampPressure(pressure), nil
	})
}

// SystemSampler reports host memory utilization.
type SystemSampler struct{}

// NewSystemSampler creates a sampler backed by host virtual memory statistics.
func NewSystemSampler() *SystemSampler {
	return &SystemSampler{}
}

// SamplePressure implements PressureSampler.
func (s *SystemSampler) SamplePressure(ctx context.Context) (float64, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read virtual memory: %w", err)
	}
	return clampPressure(vm.UsedPercent), nil
}

// ProcessSampler reports the resident memory of the current process as a percentage
// of a configured budget.
type ProcessSampler struct {
	proc   *process.Process
	budget int64
}

// NewProcessSampler creates a sampler for the current process.
func NewProcessSampler(ctx context.Context, budgetBytes int64) (*ProcessSampler, error) {
	if budgetBytes <= 0 {
		return nil, configError("memory_budget_bytes", "memory budget must be greater than 0")
	}
	proc, err := process.NewProcessWithContext(ctx, int32(os.Getpid()))
	if err != nil {
		return nil, fmt.Errorf("failed to inspect current process: %w", err)
	}
	return &ProcessSampler{proc: proc, budget: budgetBytes}, nil
}

// SamplePressure implements PressureSampler.
func (s *ProcessSampler) SamplePressure(ctx context.Context) (float64, error) {
	info, err := s.proc.MemoryInfoWithContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read process memory: %w", err)
	}
	return clampPressure(float64(info.RSS) / float64(s.budget) * 100), nil
}

func clampPressure(p float64) float64 {
	if math.IsNaN(p) {
		return 0
	}
	return math.Min(math.Max(p, 0), 100)
}
