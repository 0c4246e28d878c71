package logger

import (
	"context"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ctxKey string

const (
	traceIDKey   ctxKey = "trace_id"
	sessionIDKey ctxKey = "session_id"
)

// Logger wraps zap.Logger with request-scoped helpers
type Logger struct {
	*zap.Logger
	service string
}

// Option customizes a Logger
type Option func(*options)

type options struct {
	format string
}

// WithFormat selects the encoder: "json" (default) or "console"
func WithFormat(format string) Option {
	return func(o *options) {
		o.format = format
	}
}

// New creates a new logger instance
func New(service, level string, opts ...Option) *Logger {
	o := options{format: "json"}
	for _, opt := range opts {
		opt(&o)
	}

	zapLevel, err := zapcore.ParseLevel(level)
	if err != nil {
		zapLevel = zapcore.InfoLevel
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	var encoder zapcore.Encoder
	if o.format == "console" {
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	} else {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), zapLevel)

	zapLogger := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	zapLogger = zapLogger.With(zap.String("service", service))

	return &Logger{
		Logger:  zapLogger,
		service: service,
	}
}

// NewNop returns a logger that discards everything
func NewNop() *Logger {
	return &Logger{Logger: zap.NewNop(), service: "nop"}
}

// WithContext returns a logger carrying the trace and session ids found in ctx
func (l *Logger) WithContext(ctx context.Context) *zap.Logger {
	logger := l.Logger
	if traceID := GetTraceID(ctx); traceID != "" {
		logger = logger.With(zap.String("trace_id", traceID))
	}
	if sessionID := GetSessionID(ctx); sessionID != "" {
		logger = logger.With(zap.String("session_id", sessionID))
	}
	return logger
}

// WithTraceIDContext adds a trace ID to the context
func WithTraceIDContext(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey, traceID)
}

// GetTraceID retrieves the trace ID from context
func GetTraceID(ctx context.Context) string {
	if traceID, ok := ctx.Value(traceIDKey).(string); ok {
		return traceID
	}
	return ""
}

// WithSessionIDContext adds the shopper session ID to the context
func WithSessionIDContext(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionIDKey, sessionID)
}

// GetSessionID retrieves the shopper session ID from context
func GetSessionID(ctx context.Context) string {
	if sessionID, ok := ctx.Value(sessionIDKey).(string); ok {
		return sessionID
	}
	return ""
}

// Sync flushes any buffered log entries
func (l *Logger) Sync() error {
	return l.Logger.Sync()
}
