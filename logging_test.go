package cachemgr

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected LogLevel
		wantErr  bool
	}{
		{"debug", LogLevelDebug, false},
		{"INFO", LogLevelInfo, false},
		{"warning", LogLevelWarn, false},
		{"error", LogLevelError, false},
		{"verbose", LogLevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level, err := ParseLogLevel(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.expected, level)
		})
	}
}

func TestLogger_LevelsAndContext(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LogConfig{Level: LogLevelInfo, Output: &buf})
	ctx := context.Background()

	logger.Debug(ctx, "hidden")
	logger.WithOperation(OpGlobalCleanup).WithModule("types").WithStrategy("lru").Info(ctx, "visible", "items", 3)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=visible")
	assert.Contains(t, out, "operation=global_cleanup")
	assert.Contains(t, out, "module=types")
	assert.Contains(t, out, "strategy=lru")
	assert.Contains(t, out, "items=3")
}

func TestLogger_Nop(t *testing.T) {
	ctx := context.Background()
	var nilLogger *Logger

	assert.NotPanics(t, func() {
		NewNopLogger().WithModule("x").Error(ctx, "ignored")
		nilLogger.Warn(ctx, "ignored")
		LogCleanupResult(ctx, nil, CleanupResult{})
		LogGlobalCleanup(ctx, nil, GlobalCleanupResult{})
		LogSchedulerSkip(ctx, nil, time.Second)
	})
}

func TestLogCleanupResult(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LogConfig{Level: LogLevelDebug, Output: &buf})
	ctx := context.Background()

	LogCleanupResult(ctx, logger, CleanupResult{
		WasExecuted:      true,
		CleanedItems:     200,
		FreedMemoryBytes: 20000,
		StrategyName:     "usage_based",
		ModuleName:       "types",
	})
	assert.Contains(t, buf.String(), "cleaned_items=200")
	assert.Contains(t, buf.String(), `freed="20 kB"`)

	buf.Reset()
	LogCleanupResult(ctx, logger, FailedResult("lru", errors.New("boom")))
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "error=boom")
}

func TestLogGlobalCleanup(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LogConfig{Level: LogLevelInfo, Output: &buf})
	ctx := context.Background()

	LogGlobalCleanup(ctx, logger, GlobalCleanupResult{
		ModuleResults:     map[string][]CleanupResult{"types": {{WasExecuted: true, CleanedItems: 4}}},
		TotalCleanedItems: 4,
		Intensity:         IntensityAggressive,
	})
	out := buf.String()
	require.Contains(t, out, "global cleanup completed")
	assert.Contains(t, out, "intensity=aggressive")
	assert.Contains(t, out, "executions=1")

	buf.Reset()
	LogGlobalCleanup(ctx, logger, GlobalCleanupResult{
		ModuleErrors: map[string]error{"types": errors.New("down")},
		Intensity:    IntensityLight,
	})
	assert.Contains(t, buf.String(), "failures=1")
}
