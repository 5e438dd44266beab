package logging

import (
	"github.com/pion/logging"
)

var loggerFactory = logging.NewDefaultLoggerFactory()

// NewLogger creates a logger for scope from the package-wide default factory.
func NewLogger(scope string) logging.LeveledLogger {
	return loggerFactory.NewLogger(scope)
}

// NewLoggerFrom creates a logger for scope from factory, falling back to the
// default factory when factory is nil.
func NewLoggerFrom(factory logging.LoggerFactory, scope string) logging.LeveledLogger {
	if factory == nil {
		return NewLogger(scope)
	}
	return factory.NewLogger(scope)
}
