package cachemgr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelForPressure(t *testing.T) {
	tests := []struct {
		pressure float64
		expected PressureLevel
	}{
		{0, PressureLow},
		{39.9, PressureLow},
		{40, PressureMedium},
		{69.9, PressureMedium},
		{70, PressureHigh},
		{90, PressureHigh},
		{90.1, PressureCritical},
		{100, PressureCritical},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, LevelForPressure(tt.pressure), "pressure %v", tt.pressure)
	}
}

func TestComputeHitRate(t *testing.T) {
	assert.Equal(t, 0.0, ComputeHitRate(0, 0))
	assert.Equal(t, 1.0, ComputeHitRate(10, 0))
	assert.Equal(t, 0.0, ComputeHitRate(0, 10))
	assert.InDelta(t, 0.75, ComputeHitRate(3, 1), 1e-9)
}

func TestStatistics_Derived(t *testing.T) {
	s := Statistics{TotalItems: 1000, MemoryUsageBytes: 100000}
	assert.Equal(t, int64(100), s.AverageItemSize())
	assert.False(t, s.HasTraffic())

	s.MissCount = 1
	assert.True(t, s.HasTraffic())

	assert.Equal(t, int64(0), Statistics{MemoryUsageBytes: 10}.AverageItemSize())
}
