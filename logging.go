package cachemgr

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// LogLevel represents different logging levels
type LogLevel int

// LogLevelDebug represents debug logging level
const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

func (l LogLevel) slogLevel() slog.Level {
	switch l {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LogConfig holds configuration for the orchestrator logger.
type LogConfig struct {
	// Level sets the minimum log level (debug, info, warn, error)
	Level LogLevel
	// EnableCallerInfo includes file and line number in logs
	EnableCallerInfo bool
	// Output receives the log records. Defaults to os.Stderr.
	Output io.Writer
}

// DefaultLogConfig returns a default logging configuration.
func DefaultLogConfig() LogConfig {
	return LogConfig{
		Level:            LogLevelInfo,
		EnableCallerInfo: false,
	}
}

// Logger provides structured logging for the orchestrator, its modules and strategies.
// A nil *slog.Logger turns every call into a no-op.
type Logger struct {
	logger *slog.Logger
}

// NewLogger creates a new structured logger with the given configuration.
func NewLogger(config LogConfig) *Logger {
	out := config.Output
	if out == nil {
		out = os.Stderr
	}
	handler := slog.NewTextHandler(out, &slog.HandlerOptions{
		Level:     config.Level.slogLevel(),
		AddSource: config.EnableCallerInfo,
	})
	return &Logger{logger: slog.New(handler)}
}

// NewLoggerFromSlog adapts an existing slog logger.
func NewLoggerFromSlog(logger *slog.Logger) *Logger {
	return &Logger{logger: logger}
}

// NewNopLogger creates a no-op logger that discards all log messages.
func NewNopLogger() *Logger {
	return &Logger{}
}

// Debug logs debug-level messages
func (l *Logger) Debug(ctx context.Context, msg string, args ...any) {
	if l != nil && l.logger != nil {
		l.logger.DebugContext(ctx, msg, args...)
	}
}

// Info logs info-level messages
func (l *Logger) Info(ctx context.Context, msg string, args ...any) {
	if l != nil && l.logger != nil {
		l.logger.InfoContext(ctx, msg, args...)
	}
}

// Warn logs warning-level messages
func (l *Logger) Warn(ctx context.Context, msg string, args ...any) {
	if l != nil && l.logger != nil {
		l.logger.WarnContext(ctx, msg, args...)
	}
}

// Error logs error-level messages
func (l *Logger) Error(ctx context.Context, msg string, args ...any) {
	if l != nil && l.logger != nil {
		l.logger.ErrorContext(ctx, msg, args...)
	}
}

// With returns a logger with additional context fields
func (l *Logger) With(args ...any) *Logger {
	if l == nil || l.logger == nil {
		return l
	}
	return &Logger{logger: l.logger.With(args...)}
}

// WithOperation returns a logger with operation context
func (l *Logger) WithOperation(operation Operation) *Logger {
	return l.With("operation", string(operation))
}

// WithModule returns a logger with module context
func (l *Logger) WithModule(name string) *Logger {
	return l.With("module", name)
}

// WithStrategy returns a logger with strategy context
func (l *Logger) WithStrategy(name string) *Logger {
	return l.With("strategy", name)
}

// Operation represents different types of orchestrator operations for logging.
type Operation string

// Operation constants for orchestrator operations
const (
	OpRegisterModule     Operation = "register_module"
	OpUnregisterModule   Operation = "unregister_module"
	OpRegisterStrategy   Operation = "register_strategy"
	OpUnregisterStrategy Operation = "unregister_strategy"
	OpGlobalCleanup      Operation = "global_cleanup"
	OpModuleCleanup      Operation = "module_cleanup"
	OpClearAll           Operation = "clear_all"
	OpStatistics         Operation = "statistics"
	OpConfigure          Operation = "configure"
	OpSchedulerTick      Operation = "scheduler_tick"
)

// LogCleanupResult logs the outcome of one strategy execution.
func LogCleanupResult(ctx context.Context, logger *Logger, result CleanupResult) {
	if logger == nil {
		return
	}

	fields := []any{
		"module", result.ModuleName,
		"strategy", result.StrategyName,
		"duration_ms", result.ExecutionTimeMs(),
	}

	if result.Failed() {
		logger.Warn(ctx, "cleanup strategy failed", append(fields, "error", result.ErrorMessage())...)
		return
	}

	logger.Debug(ctx, "cleanup strategy executed", append(fields,
		"cleaned_items", result.CleanedItems,
		"freed", humanize.Bytes(uint64(max(result.FreedMemoryBytes, 0))),
	)...)
}

// LogGlobalCleanup logs the summary of a global cleanup pass.
func LogGlobalCleanup(ctx context.Context, logger *Logger, result GlobalCleanupResult) {
	if logger == nil {
		return
	}

	fields := []any{
		"intensity", result.Intensity.String(),
		"modules", len(result.ModuleResults),
		"executions", result.ExecutedCount(),
		"cleaned_items", result.TotalCleanedItems,
		"freed", humanize.Bytes(uint64(max(result.TotalFreedMemory, 0))),
		"pressure", fmt.Sprintf("%.1f", result.SystemMemoryPressure),
		"duration_ms", result.TotalExecutionTime.Milliseconds(),
	}

	failures := len(result.Failures()) + len(result.ModuleErrors)
	if failures > 0 {
		logger.Warn(ctx, "global cleanup completed with failures", append(fields, "failures", failures)...)
		return
	}
	logger.Info(ctx, "global cleanup completed", fields...)
}

// LogSchedulerSkip logs a tick skipped because the previous pass is still running.
func LogSchedulerSkip(ctx context.Context, logger *Logger, running time.Duration) {
	if logger == nil {
		return
	}

	logger.Info(ctx, "skipping cleanup tick, previous pass still running",
		"running_for_ms", running.Milliseconds())
}

// ParseLogLevel parses a string log level into a LogLevel.
func ParseLogLevel(level string) (LogLevel, error) {
	switch strings.ToLower(level) {
	case "debug":
		return LogLevelDebug, nil
	case "info":
		return LogLevelInfo, nil
	case "warn", "warning":
		return LogLevelWarn, nil
	case "error":
		return LogLevelError, nil
	default:
		return LogLevelInfo, fmt.Errorf("invalid log level: %s", level)
	}
}
