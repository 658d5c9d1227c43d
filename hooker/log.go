package hooker

import (
	"sync/atomic"

	"go.uber.org/zap"
)

// DefaultTag is attached to every diagnostic unless overridden.
const DefaultTag = "HookHelper"

var logger atomic.Pointer[zap.Logger]

func init() {
	logger.Store(zap.NewNop())
}

// SetLogger replaces the package logger. A nil logger silences output.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger.Store(l)
}

func Logger() *zap.Logger {
	return logger.Load()
}
