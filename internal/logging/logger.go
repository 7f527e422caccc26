package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var logger *zap.Logger

// LogLevelEnvVar is the environment variable that controls logging verbosity.
// When unset or empty, logging is silent (no zap output).
// Valid values: "debug", "info", "warn", "error"
const LogLevelEnvVar = "ACCORDION_LOG_LEVEL"

// LogFileEnvVar overrides the log file path.
const LogFileEnvVar = "ACCORDION_LOG_FILE"

// Rotation defaults for file output.
const (
	DefaultMaxSizeMB  = 100
	DefaultMaxBackups = 3
	DefaultMaxAgeDays = 28
)

// Initialize creates a new logger with the specified level and output file.
// If level is empty, it checks ACCORDION_LOG_LEVEL. If neither is set,
// logging is disabled (silent mode). An empty file writes to stderr; the
// interactive UI always passes a file because it owns the terminal.
func Initialize(level, file string) error {
	if level == "" {
		level = os.Getenv(LogLevelEnvVar)
	}
	if file == "" {
		file = os.Getenv(LogFileEnvVar)
	}

	if level == "" {
		logger = zap.NewNop()
		return nil
	}

	zapLevel, err := ParseLevel(level)
	if err != nil {
		return err
	}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	var sink zapcore.WriteSyncer
	if file == "" {
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		sink = zapcore.Lock(os.Stderr)
	} else {
		if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		sink = zapcore.AddSync(newLumberjack(file))
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), sink, zap.NewAtomicLevelAt(zapLevel))
	logger = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
	return nil
}

// InitializeFromEnv initializes the logger from ACCORDION_LOG_LEVEL and
// ACCORDION_LOG_FILE.
func InitializeFromEnv() error {
	return Initialize("", "")
}

// ParseLevel converts a level name to a zap level.
func ParseLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "info":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("invalid log level %q (want debug, info, warn or error)", level)
	}
}

// DefaultLogFile returns the log path used by the interactive UI.
func DefaultLogFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "accordion", "accordion.log")
}

func newLumberjack(path string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    DefaultMaxSizeMB,
		MaxBackups: DefaultMaxBackups,
		MaxAge:     DefaultMaxAgeDays,
		Compress:   true,
	}
}

// GetLogger returns the global logger instance
func GetLogger() *zap.Logger {
	if logger == nil {
		// Fallback to silent logger if not initialized
		logger = zap.NewNop()
	}
	return logger
}

// SetLogger replaces the global logger. Intended for tests.
func SetLogger(l *zap.Logger) {
	logger = l
}

// Info logs an info message
func Info(msg string, fields ...zap.Field) {
	GetLogger().Info(msg, fields...)
}

// Debug logs a debug message
func Debug(msg string, fields ...zap.Field) {
	GetLogger().Debug(msg, fields...)
}

// Warn logs a warning message
func Warn(msg string, fields ...zap.Field) {
	GetLogger().Warn(msg, fields...)
}

// Error logs an error message
func Error(msg string, fields ...zap.Field) {
	GetLogger().Error(msg, fields...)
}

// LogTransition logs a settled panel transition
func LogTransition(kind, panelID string, open, pinned, unpinned []string) {
	fields := []zap.Field{
		zap.String("kind", kind),
		zap.String("panel", panelID),
		zap.Strings("open", open),
		zap.Strings("pinned", pinned),
	}
	if len(unpinned) > 0 {
		fields = append(fields, zap.Strings("unpinned", unpinned))
	}
	Debug("Panel transition", fields...)
}

// LogRejectedEvent logs an event the state machine refused. These are
// programming errors in the caller, never user errors.
func LogRejectedEvent(event string, err error) {
	Error("Panel event rejected",
		zap.String("event", event),
		zap.Error(err),
	)
}

// LogLookupFailure logs a panel whose component is not registered
func LogLookupFailure(panelID, componentName, suggestion string) {
	Warn("Component not found",
		zap.String("panel", panelID),
		zap.String("component", componentName),
		zap.String("suggestion", suggestion),
	)
}

// LogConfigLoaded logs a successfully loaded configuration
func LogConfigLoaded(path string, layers int) {
	Info("Configuration loaded",
		zap.String("path", path),
		zap.Int("layers", layers),
	)
}

// LogStateWrite logs a write to the host state store
func LogStateWrite(source, name string, value any) {
	Debug("State write",
		zap.String("source", source),
		zap.String("name", name),
		zap.Any("value", value),
	)
}

// LogConnection logs a connection event
func LogConnection(remoteAddr string, event string) {
	Info("Connection event",
		zap.String("remote_addr", remoteAddr),
		zap.String("event", event),
	)
}

// LogWebSocketMessage logs a WebSocket message
func LogWebSocketMessage(remoteAddr string, direction string, data []byte) {
	content := string(data)
	if len(content) > 256 {
		content = content[:256] + "..."
	}
	Debug("WebSocket message",
		zap.String("remote_addr", remoteAddr),
		zap.String("direction", direction),
		zap.Int("length", len(data)),
		zap.String("content", content),
	)
}

// Sync flushes any buffered log entries
func Sync() {
	if logger != nil {
		_ = logger.Sync()
	}
}
