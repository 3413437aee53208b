package cachemgr

import (
	"fmt"

	platformerrors "github.com/jmgilman/go/errors"
)

// ErrRegistryLockTimeout is returned by registration calls when the registry lock
// could not be acquired within Config.RegistryLockTimeout.
var ErrRegistryLockTimeout = platformerrors.New(platformerrors.CodeTimeout, "timed out acquiring registry lock")

// ErrClosed is returned when registering with an orchestrator that has been closed.
var ErrClosed = platformerrors.New(platformerrors.CodeUnavailable, "orchestrator is closed")

// configError reports an invalid configuration parameter.
func configError(parameter string, format string, args ...any) error {
	err := platformerrors.Newf(platformerrors.CodeInvalidConfig, format, args...)
	return platformerrors.WithContext(err, "parameter", parameter)
}

// moduleError wraps a failure raised by a cache module.
func moduleError(err error, module string, operation string) error {
	wrapped := platformerrors.Wrapf(err, platformerrors.CodeExecutionFailed, "module %s failed", operation)
	return platformerrors.WithContext(wrapped, "module", module)
}

// strategyError wraps a failure raised by a cleanup strategy.
func strategyError(err error, strategy, module string) error {
	wrapped := platformerrors.Wrap(err, platformerrors.CodeExecutionFailed, "cleanup strategy failed")
	return platformerrors.WithContextMap(wrapped, map[string]interface{}{
		"strategy": strategy,
		"module":   module,
	})
}

// panicError converts a recovered panic value into an error.
func panicError(v any) error {
	if err, ok := v.(error); ok {
		return platformerrors.Wrap(err, platformerrors.CodeInternal, "recovered panic")
	}
	return platformerrors.New(platformerrors.CodeInternal, fmt.Sprintf("recovered panic: %v", v))
}
