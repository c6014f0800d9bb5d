// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance for console (development) or JSON
// output and integrates with the Fiber request context.
//
// # Context Awareness
//
// The WithRayID helper extracts the RayID assigned by the rayid middleware and
// attaches it to the log entry, so every line about one request can be
// correlated.
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info", Format: "console"})
//	log.Info("Server started")
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Error("Read failed", zap.Error(err))
package logger
