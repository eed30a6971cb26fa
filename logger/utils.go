package logger

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// tracingFields extracts the span context carried by ctx as zap fields, so
// log entries can be correlated with traces.
//
// Parameters:
//   - ctx: The context that may carry a span context
//
// Returns:
//   - []zap.Field: trace_id and span_id, or nil when tracing is disabled or
//     ctx carries no valid span context
//
// A remote span context extracted from a traceparent header counts as well,
// so a scrape handler logs under the scraper's trace.
func (l *LoggerClient) tracingFields(ctx context.Context) []zap.Field {
	if !l.tracingEnabled || ctx == nil {
		return nil
	}
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return nil
	}
	return []zap.Field{
		zap.String("trace_id", sc.TraceID().String()),
		zap.String("span_id", sc.SpanID().String()),
	}
}

// zapFields converts the error and the field maps of a log call into zap
// fields.
//
// Parameters:
//   - err: An error to include in the log entry, or nil
//   - fields: Maps of additional structured data
//
// Returns:
//   - []zap.Field: The error field, if any, followed by one field per map key
//
// When several maps carry the same key, each is written and the later one
// wins in JSON output.
func zapFields(err error, fields ...map[string]interface{}) []zap.Field {
	var out []zap.Field
	if err != nil {
		out = append(out, zap.Error(err))
	}
	for _, m := range fields {
		for k, v := range m {
			out = append(out, zap.Any(k, v))
		}
	}
	return out
}

func (l *LoggerClient) log(ctx context.Context, level zapcore.Level, msg string, err error, fields []map[string]interface{}) {
	ce := l.Zap.Check(level, msg)
	if ce == nil {
		return
	}
	zf := zapFields(err, fields...)
	zf = append(zf, l.tracingFields(ctx)...)
	ce.Write(zf...)
}

// Debug logs a debug message with an optional error and structured fields.
// Nothing is allocated when the debug level is disabled.
//
// Parameters:
//   - msg: The log message
//   - err: An error to include in the log entry, or nil
//   - fields: Maps of additional structured data
func (l *LoggerClient) Debug(msg string, err error, fields ...map[string]interface{}) {
	l.log(context.Background(), zapcore.DebugLevel, msg, err, fields)
}

// Info logs an informational message, along with an optional error and
// structured fields. Use it for lifecycle events such as a server starting.
//
// Parameters:
//   - msg: The log message
//   - err: An error to include in the log entry, or nil
//   - fields: Maps of additional structured data
//
// Example:
//
//	log.Info("Metrics server started", nil, map[string]interface{}{
//	    "address": ":9091",
//	})
func (l *LoggerClient) Info(msg string, err error, fields ...map[string]interface{}) {
	l.log(context.Background(), zapcore.InfoLevel, msg, err, fields)
}

// Warn logs a warning: something went wrong but the caller carries on,
// such as a rejected duplicate registration.
//
// Parameters:
//   - msg: The log message
//   - err: The error that caused the warning, or nil
//   - fields: Maps of additional structured data
func (l *LoggerClient) Warn(msg string, err error, fields ...map[string]interface{}) {
	l.log(context.Background(), zapcore.WarnLevel, msg, err, fields)
}

// Error logs an error message with the error and structured fields.
//
// Parameters:
//   - msg: The log message
//   - err: The error being reported
//   - fields: Maps of additional structured data
func (l *LoggerClient) Error(msg string, err error, fields ...map[string]interface{}) {
	l.log(context.Background(), zapcore.ErrorLevel, msg, err, fields)
}

// DebugWithContext logs at debug level with trace correlation.
func (l *LoggerClient) DebugWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
	l.log(ctx, zapcore.DebugLevel, msg, err, fields)
}

// InfoWithContext logs at info level with trace correlation.
func (l *LoggerClient) InfoWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
	l.log(ctx, zapcore.InfoLevel, msg, err, fields)
}

// WarnWithContext logs at warn level with trace correlation.
func (l *LoggerClient) WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
	l.log(ctx, zapcore.WarnLevel, msg, err, fields)
}

// ErrorWithContext is like Error and adds trace_id and span_id from ctx
// when tracing is enabled.
//
// Parameters:
//   - ctx: The context carrying the current span
//   - msg: The log message
//   - err: The error being reported
//   - fields: Maps of additional structured data
//
// Example:
//
//	log.ErrorWithContext(r.Context(), "Failed to encode metrics", err, nil)
func (l *LoggerClient) ErrorWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
	l.log(ctx, zapcore.ErrorLevel, msg, err, fields)
}
