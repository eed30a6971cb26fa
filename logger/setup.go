package logger

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoggerClient wraps a zap.Logger behind the Logger interface.
type LoggerClient struct {
	// Zap is the underlying logger, exposed for code that needs zap
	// directly.
	Zap *zap.Logger

	tracingEnabled bool
}

var _ Logger = (*LoggerClient)(nil)

// NewLoggerClient builds a logger writing to stderr with ISO8601 timestamps,
// upper-case levels and caller information. The process id and service
// name are attached to every entry.
//
// Example:
//
//	log, err := logger.NewLoggerClient(logger.Config{
//	    Level:       logger.Info,
//	    ServiceName: "checkout",
//	})
func NewLoggerClient(cfg Config) (*LoggerClient, error) {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	encoderCfg.EncodeDuration = zapcore.MillisDurationEncoder

	encoding := cfg.Encoding
	if encoding != EncodingConsole {
		encoding = EncodingJSON
	}

	callerSkip := cfg.CallerSkip
	if callerSkip <= 0 {
		callerSkip = 1
	}

	zcfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(parseLevel(cfg.Level)),
		Encoding:         encoding,
		EncoderConfig:    encoderCfg,
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		InitialFields: map[string]interface{}{
			"pid":     os.Getpid(),
			"service": cfg.ServiceName,
		},
	}

	// one extra frame for the shared log helper
	z, err := zcfg.Build(zap.AddCaller(), zap.AddCallerSkip(callerSkip+1))
	if err != nil {
		return nil, fmt.Errorf("build zap logger: %w", err)
	}
	return &LoggerClient{Zap: z, tracingEnabled: cfg.EnableTracing}, nil
}

// NewNop returns a logger that discards everything. Packages use it when
// the caller did not provide one.
func NewNop() *LoggerClient {
	return &LoggerClient{Zap: zap.NewNop()}
}

// NewFromZap wraps an existing zap logger.
func NewFromZap(z *zap.Logger, enableTracing bool) *LoggerClient {
	return &LoggerClient{Zap: z, tracingEnabled: enableTracing}
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case Debug:
		return zap.DebugLevel
	case Warning:
		return zap.WarnLevel
	case Error:
		return zap.ErrorLevel
	default:
		return zap.InfoLevel
	}
}
