package prometheus

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmgilman/go/cachemgr"
)

type fakeSource struct {
	stats   cachemgr.GlobalStatistics
	metrics cachemgr.MetricsSnapshot
}

func (f *fakeSource) GetGlobalStatistics(context.Context) cachemgr.GlobalStatistics {
	return f.stats
}

func (f *fakeSource) Metrics() cachemgr.MetricsSnapshot {
	return f.metrics
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		stats: cachemgr.GlobalStatistics{
			Modules: map[string]cachemgr.Statistics{
				"types":   {TotalItems: 10, HitCount: 8, MissCount: 2, HitRate: 0.8, MemoryUsageBytes: 1024},
				"symbols": {TotalItems: 5, HitCount: 1, MissCount: 1, HitRate: 0.5, MemoryUsageBytes: 512},
			},
			ModuleErrors:         map[string]error{"broken": errors.New("boom")},
			ActiveModuleCount:    2,
			GlobalHitRate:        0.75,
			SystemMemoryPressure: 42,
		},
		metrics: cachemgr.MetricsSnapshot{
			Passes:              3,
			SkippedTicks:        1,
			CleanedItems:        120,
			FreedBytes:          4096,
			StrategyExecutions:  6,
			LastPassDuration:    250 * time.Millisecond,
			AveragePassDuration: 200 * time.Millisecond,
		},
	}
}

func TestCollector_Register(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NoError(t, reg.Register(NewCollector(newFakeSource())))

	mfs, err := reg.Gather()
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, mf := range mfs {
		names[mf.GetName()] = true
	}

	assert.True(t, names["cachemgr_module_items"])
	assert.True(t, names["cachemgr_module_memory_bytes"])
	assert.True(t, names["cachemgr_hit_rate"])
	assert.True(t, names["cachemgr_memory_pressure"])
	assert.True(t, names["cachemgr_cleanup_passes_total"])
	assert.True(t, names["cachemgr_cleanup_skipped_ticks_total"])
}

func TestCollector_Values(t *testing.T) {
	c := NewCollector(newFakeSource())

	expected := `
# HELP cachemgr_cleanup_cleaned_items_total Entries removed by cleanup strategies.
# TYPE cachemgr_cleanup_cleaned_items_total counter
cachemgr_cleanup_cleaned_items_total 120
# HELP cachemgr_module_items Number of entries held by the module.
# TYPE cachemgr_module_items gauge
cachemgr_module_items{module="symbols"} 5
cachemgr_module_items{module="types"} 10
# HELP cachemgr_module_statistics_error Set to 1 when reading the module's statistics failed.
# TYPE cachemgr_module_statistics_error gauge
cachemgr_module_statistics_error{module="broken"} 1
cachemgr_module_statistics_error{module="symbols"} 0
cachemgr_module_statistics_error{module="types"} 0
`
	err := testutil.CollectAndCompare(c, strings.NewReader(expected),
		"cachemgr_cleanup_cleaned_items_total",
		"cachemgr_module_items",
		"cachemgr_module_statistics_error",
	)
	require.NoError(t, err)
}

func TestCollector_WithOrchestrator(t *testing.T) {
	ctx := context.Background()
	orch, err := cachemgr.New(cachemgr.WithPressureSampler(cachemgr.StaticPressure(10)))
	require.NoError(t, err)
	defer func() { _ = orch.Close(ctx) }()

	store := cachemgr.NewStore[string]()
	store.Put("a", "1")
	require.NoError(t, orch.RegisterModule(ctx, "strings", store))

	c := NewCollector(orch, WithScrapeTimeout(time.Second))
	// six per-module series plus three global gauges and nine pass metrics
	assert.Equal(t, 18, testutil.CollectAndCount(c))
}
