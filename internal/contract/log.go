package contract

import (
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"
)

var (
	loggerMu sync.RWMutex
	logger   = zap.NewNop().Sugar()
)

// InitLogger configures the process-wide logger.
// Debug mode logs everything; otherwise only warnings and above are shown.
func InitLogger(debug bool) error {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	cfg.Encoding = "console"
	cfg.OutputPaths = []string{"stderr"}
	built, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	SetLogger(built.Sugar())
	return nil
}

// SetLogger replaces the process-wide logger. Tests install observer loggers.
func SetLogger(l *zap.SugaredLogger) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	if l == nil {
		l = zap.NewNop().Sugar()
	}
	logger = l
}

// Logger returns the process-wide logger. It is a no-op until InitLogger runs.
func Logger() *zap.SugaredLogger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return logger
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	Logger().Errorw(msg, "error", err)
	_ = Logger().Sync()
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message.
func LogWarn(msg string, err error) {
	Logger().Warnw(msg, "error", err)
}
