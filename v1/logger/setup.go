package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoggerClient wraps a zap logger behind the map-based field API used by the
// other packages of this module.
type LoggerClient struct {
	// Zap is exposed for callers that need zap directly.
	Zap *zap.Logger

	// tracingEnabled makes the *WithContext methods attach trace_id and span_id.
	tracingEnabled bool
}

// NewLoggerClient builds a logger writing to stderr.
//
// Entries carry an ISO8601 "timestamp", a capitalised level, the caller, the
// process id and the configured service name:
//
//	{"level":"INFO","timestamp":"...","caller":"listing/fetch.go:88","msg":"listing served","pid":1,"service":"orders-api"}
//
// Example:
//
//	log, err := logger.NewLoggerClient(logger.Config{Level: logger.Debug, ServiceName: "orders-api"})
//	if err != nil {
//	    return err
//	}
//	log.Info("listing service started", nil)
func NewLoggerClient(cfg Config) (*LoggerClient, error) {
	encoding := cfg.Encoding
	if encoding == "" {
		encoding = EncodingJSON
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	if cfg.Development {
		encoderCfg = zap.NewDevelopmentEncoderConfig()
	}
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	encoderCfg.EncodeDuration = zapcore.MillisDurationEncoder

	zcfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(cfg.zapLevel()),
		Development:      cfg.Development,
		Encoding:         encoding,
		EncoderConfig:    encoderCfg,
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		InitialFields: map[string]interface{}{
			"pid":     os.Getpid(),
			"service": cfg.ServiceName,
		},
	}

	// Skip one frame so the caller is the code using LoggerClient, not this package.
	z, err := zcfg.Build(zap.AddCaller(), zap.AddCallerSkip(1))
	if err != nil {
		return nil, err
	}

	return NewWithZap(z, cfg.EnableTracing), nil
}

// NewWithZap wraps an existing zap logger. It is mainly useful in tests,
// together with zaptest/observer.
func NewWithZap(z *zap.Logger, enableTracing bool) *LoggerClient {
	return &LoggerClient{
		Zap:            z,
		tracingEnabled: enableTracing,
	}
}
