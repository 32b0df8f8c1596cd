package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// InfoLogger logs informational messages
	InfoLogger *zap.SugaredLogger
	// ErrorLogger logs error messages
	ErrorLogger *zap.SugaredLogger
	// DebugLogger logs debug messages
	DebugLogger *zap.SugaredLogger
)

// InitLogger initializes the loggers. Each level gets its own daily file under dir
// (LOG_DIR, default "logs"); errors are mirrored to stderr.
func InitLogger() error {
	logsDir := os.Getenv("LOG_DIR")
	if logsDir == "" {
		logsDir = "logs"
	}
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return fmt.Errorf("failed to create logs directory: %v", err)
	}

	timestamp := time.Now().Format("2006-01-02")
	info, err := newFileLogger(filepath.Join(logsDir, fmt.Sprintf("info-%s.log", timestamp)), zapcore.InfoLevel)
	if err != nil {
		return fmt.Errorf("failed to open info log file: %v", err)
	}
	errLog, err := newFileLogger(filepath.Join(logsDir, fmt.Sprintf("error-%s.log", timestamp)), zapcore.ErrorLevel, "stderr")
	if err != nil {
		return fmt.Errorf("failed to open error log file: %v", err)
	}
	debug, err := newFileLogger(filepath.Join(logsDir, fmt.Sprintf("debug-%s.log", timestamp)), zapcore.DebugLevel)
	if err != nil {
		return fmt.Errorf("failed to open debug log file: %v", err)
	}

	InfoLogger = info.Sugar()
	ErrorLogger = errLog.Sugar()
	DebugLogger = debug.Sugar()
	return nil
}

func newFileLogger(path string, level zapcore.Level, extra ...string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.Sampling = nil
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.OutputPaths = append([]string{path}, extra...)
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg.Build(zap.AddCallerSkip(1))
}

// SyncLoggers flushes buffered entries; call before exit.
func SyncLoggers() {
	for _, l := range []*zap.SugaredLogger{InfoLogger, ErrorLogger, DebugLogger} {
		if l != nil {
			_ = l.Sync()
		}
	}
}

// LogInfo logs an informational message
func LogInfo(format string, v ...interface{}) {
	if InfoLogger != nil {
		InfoLogger.Infof(format, v...)
	}
}

// LogError logs an error message
func LogError(format string, v ...interface{}) {
	if ErrorLogger != nil {
		ErrorLogger.Errorf(format, v...)
	}
}

// LogDebug logs a debug message
func LogDebug(format string, v ...interface{}) {
	if DebugLogger != nil {
		DebugLogger.Debugf(format, v...)
	}
}

// LogRequest logs HTTP request details
func LogRequest(method, path, ip string, status int, duration time.Duration) {
	if InfoLogger != nil {
		InfoLogger.Infow("request",
			"method", method,
			"path", path,
			"ip", ip,
			"status", status,
			"duration", duration,
		)
	}
}

// LogErrorWithStack logs an error with stack trace
func LogErrorWithStack(err error, stack []byte) {
	if ErrorLogger != nil {
		ErrorLogger.Errorw(err.Error(), "stack", string(stack))
	}
}
