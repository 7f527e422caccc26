// Package logging provides structured logging for the accordion.
//
// This package wraps a zap logger with package-level convenience functions
// and a few domain helpers for panel transitions, component lookups,
// configuration loads and state sync traffic.
//
// # Log Levels
//
//   - Debug: Panel transitions, state writes, WebSocket payloads
//   - Info: Configuration loads, connections
//   - Warn: Unknown components rendered as placeholders
//   - Error: Rejected panel events (caller bugs)
//
// # Configuration
//
// Logging is silent unless a level is given with --log-level or
// ACCORDION_LOG_LEVEL:
//
//	if err := logging.Initialize(level, logFile); err != nil {
//	    return err
//	}
//	defer logging.Sync()
//
// # Output
//
// The interactive UI owns the terminal, so it logs to a file rotated by
// lumberjack (see DefaultLogFile). Other commands log to stderr when no file
// is given.
//
// # Thread Safety
//
// All logging functions are safe for concurrent use.
package logging
