// Package logger provides the structured logger used by the registry and
// the exporter: a thin wrapper around go.uber.org/zap with optional trace
// correlation through OpenTelemetry span contexts.
//
// Entries are JSON by default, carry ISO8601 timestamps, the process id and
// the service name:
//
//	log, err := logger.NewLoggerClient(logger.Config{
//		Level:         logger.Info,
//		ServiceName:   "checkout",
//		EnableTracing: true,
//	})
//	if err != nil {
//		return err
//	}
//	log.InfoWithContext(ctx, "Scrape served", nil, map[string]interface{}{
//		"bytes": 1024,
//	})
//
// Libraries that take an optional logger default to NewNop.
package logger
