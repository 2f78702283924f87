// Package logger provides a zap-based application logger.
package logger

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level is a logging priority.
type Level = zapcore.Level

// Supported levels.
const (
	LevelDebug = zapcore.DebugLevel
	LevelInfo  = zapcore.InfoLevel
	LevelWarn  = zapcore.WarnLevel
	LevelError = zapcore.ErrorLevel
)

// TraceIDFn extracts a trace id from a context. It returns "" when the
// context carries no span.
type TraceIDFn func(ctx context.Context) string

// Logger writes structured JSON records. Key/value pairs follow the message.
type Logger struct {
	zl      *zap.Logger
	traceID TraceIDFn
}

// New builds a Logger writing JSON lines to w.
func New(w io.Writer, level Level, service string, traceID TraceIDFn) *Logger {
	enc := zap.NewProductionEncoderConfig()
	enc.TimeKey = "time"
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(enc), zapcore.AddSync(w), level)
	return &Logger{
		zl:      zap.New(core).With(zap.String("service", service)),
		traceID: traceID,
	}
}

// Nop returns a Logger that discards everything.
func Nop() *Logger {
	return &Logger{zl: zap.NewNop()}
}

// ParseLevel maps "debug", "info", "warn" or "error" to a Level.
func ParseLevel(s string) (Level, error) {
	lvl, err := zapcore.ParseLevel(s)
	if err != nil {
		return LevelInfo, fmt.Errorf("parse log level: %w", err)
	}
	return lvl, nil
}

// Debug logs at debug level.
func (l *Logger) Debug(ctx context.Context, msg string, keyvals ...any) {
	l.write(ctx, LevelDebug, msg, keyvals)
}

// Info logs at info level.
func (l *Logger) Info(ctx context.Context, msg string, keyvals ...any) {
	l.write(ctx, LevelInfo, msg, keyvals)
}

// Warn logs at warn level.
func (l *Logger) Warn(ctx context.Context, msg string, keyvals ...any) {
	l.write(ctx, LevelWarn, msg, keyvals)
}

// Error logs at error level.
func (l *Logger) Error(ctx context.Context, msg string, keyvals ...any) {
	l.write(ctx, LevelError, msg, keyvals)
}

// Sync flushes buffered records.
func (l *Logger) Sync() error {
	return l.zl.Sync()
}

func (l *Logger) write(ctx context.Context, lvl Level, msg string, keyvals []any) {
	ce := l.zl.Check(lvl, msg)
	if ce == nil {
		return
	}
	fields := make([]zap.Field, 0, len(keyvals)/2+1)
	if l.traceID != nil && ctx != nil {
		if id := l.traceID(ctx); id != "" {
			fields = append(fields, zap.String("trace_id", id))
		}
	}
	for i := 0; i < len(keyvals); i += 2 {
		key, ok := keyvals[i].(string)
		if !ok {
			key = fmt.Sprint(keyvals[i])
		}
		if i+1 == len(keyvals) {
			fields = append(fields, zap.String(key, "(MISSING)"))
			break
		}
		fields = append(fields, zap.Any(key, keyvals[i+1]))
	}
	ce.Write(fields...)
}
