package trace

import (
	"sync"

	"go.uber.org/zap"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the logger traced coders write to. Until SetLogger is
// called it is a no-op logger, so wrapping coders costs nothing by
// default.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger installs the logger used by traced coders. Call it before
// the first traced encode or decode.
func SetLogger(l *zap.Logger) {
	logger = l
}
