// Package logging provides structured logging for upnpscan.
//
// This package wraps zap logger with convenience functions for the logging
// patterns used throughout the scanner. Logging is silent by default so
// the CLI output stays clean; set UPNPSCAN_LOG_LEVEL to enable it.
//
// # Log Levels
//
// The package supports standard log levels:
//   - Debug: Detailed debugging info (raw SSDP payloads, skipped responses)
//   - Info: Normal operations (scan start/finish, devices resolved)
//   - Warn: Non-fatal issues (bind failures, descriptor fetch failures)
//   - Error: Fatal issues (startup failures)
//
// # Structured Logging
//
// All log functions use structured fields for queryability:
//
//	logging.Info("Device resolved",
//	    zap.String("usn", n.USN),
//	    zap.String("location", n.Location),
//	)
//
// # Configuration
//
// Initialize logging at startup:
//
//	if err := logging.InitializeFromEnv(); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
// # Thread Safety
//
// All logging functions are safe for concurrent use. The underlying zap
// logger handles synchronization automatically.
package logging
