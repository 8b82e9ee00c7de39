package ghclient

import (
	"github.com/hashicorp/go-retryablehttp"
	"github.com/huangsam/prgate/internal/contract"
)

// zapLeveledLogger routes retryablehttp logs through the process logger.
type zapLeveledLogger struct{}

var _ retryablehttp.LeveledLogger = zapLeveledLogger{} // Compile-time check

func (zapLeveledLogger) Error(msg string, keysAndValues ...any) {
	contract.Logger().Errorw(msg, keysAndValues...)
}

func (zapLeveledLogger) Info(msg string, keysAndValues ...any) {
	contract.Logger().Debugw(msg, keysAndValues...)
}

func (zapLeveledLogger) Debug(msg string, keysAndValues ...any) {
	contract.Logger().Debugw(msg, keysAndValues...)
}

func (zapLeveledLogger) Warn(msg string, keysAndValues ...any) {
	contract.Logger().Warnw(msg, keysAndValues...)
}
