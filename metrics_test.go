package cachemgr

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetrics_RecordPass(t *testing.T) {
	m := NewMetrics()

	m.RecordPass(GlobalCleanupResult{
		ModuleResults: map[string][]CleanupResult{
			"a": {
				{WasExecuted: true, CleanedItems: 10},
				{StrategyName: "broken", Err: errors.New("boom")},
			},
			"b": {{WasExecuted: true, CleanedItems: 5}},
		},
		ModuleErrors:       map[string]error{"c": errors.New("down")},
		TotalCleanedItems:  15,
		TotalFreedMemory:   1500,
		TotalExecutionTime: 20 * time.Millisecond,
		StartTime:          time.Unix(100, 0),
	})
	m.RecordPass(GlobalCleanupResult{
		TotalCleanedItems:  3,
		TotalExecutionTime: 40 * time.Millisecond,
		StartTime:          time.Unix(200, 0),
	})
	m.RecordSkippedTick()

	snap := m.Snapshot()
	assert.Equal(t, int64(2), snap.Passes)
	assert.Equal(t, int64(1), snap.SkippedTicks)
	assert.Equal(t, int64(18), snap.CleanedItems)
	assert.Equal(t, int64(1500), snap.FreedBytes)
	assert.Equal(t, int64(2), snap.StrategyExecutions)
	assert.Equal(t, int64(1), snap.StrategyFailures)
	assert.Equal(t, int64(1), snap.ModuleFailures)
	assert.Equal(t, 40*time.Millisecond, snap.LastPassDuration)
	assert.Equal(t, 30*time.Millisecond, snap.AveragePassDuration)
	assert.Equal(t, 40*time.Millisecond, snap.PeakPassDuration)
	assert.Equal(t, int64(15), snap.PeakCleanedItems)
	assert.Equal(t, time.Unix(200, 0), snap.LastPassTime)
	assert.False(t, snap.LastSkipTime.IsZero())
	assert.Equal(t, 2, snap.PassSamples)
}

func TestMetrics_SampleWindowBounded(t *testing.T) {
	m := NewMetrics()
	for range maxPassSamples + 1 {
		m.RecordPass(GlobalCleanupResult{TotalExecutionTime: time.Millisecond})
	}

	snap := m.Snapshot()
	assert.LessOrEqual(t, snap.PassSamples, maxPassSamples)
	assert.Equal(t, int64(maxPassSamples+1), snap.Passes)
}

func TestMetrics_Reset(t *testing.T) {
	m := NewMetrics()
	m.RecordPass(GlobalCleanupResult{TotalCleanedItems: 1, TotalExecutionTime: time.Second})
	m.RecordSkippedTick()
	m.Reset()

	snap := m.Snapshot()
	assert.Zero(t, snap.Passes)
	assert.Zero(t, snap.SkippedTicks)
	assert.Zero(t, snap.PeakPassDuration)
	assert.Zero(t, snap.PassSamples)
	assert.True(t, snap.LastPassTime.IsZero())
}
