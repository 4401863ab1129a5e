package logging

import (
	"context"
	"io"
	"os"

	"github.com/felixgeelhaar/axsetup/internal/ports"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger implements ports.Logger on top of a zap core.
type ZapLogger struct {
	logger *zap.Logger
	level  zap.AtomicLevel
}

type zapOptions struct {
	out        io.Writer
	level      ports.Level
	jsonFormat bool
	timestamp  bool
}

// Option configures the zap logger.
type Option func(*zapOptions)

// WithOutput sets the output writer (default: os.Stderr).
func WithOutput(w io.Writer) Option {
	return func(o *zapOptions) {
		o.out = w
	}
}

// WithLevel sets the minimum log level (default: Info).
func WithLevel(level ports.Level) Option {
	return func(o *zapOptions) {
		o.level = level
	}
}

// WithJSONFormat enables JSON output.
func WithJSONFormat(enabled bool) Option {
	return func(o *zapOptions) {
		o.jsonFormat = enabled
	}
}

// WithTimestamp includes a timestamp in log entries.
func WithTimestamp(enabled bool) Option {
	return func(o *zapOptions) {
		o.timestamp = enabled
	}
}

// NewZapLogger creates a logger writing text or JSON entries.
func NewZapLogger(opts ...Option) *ZapLogger {
	o := zapOptions{
		out:       os.Stderr,
		level:     ports.LevelInfo,
		timestamp: true,
	}
	for _, opt := range opts {
		opt(&o)
	}

	var (
		encCfg  zapcore.EncoderConfig
		encoder zapcore.Encoder
	)
	if o.jsonFormat {
		encCfg = zap.NewProductionEncoderConfig()
		encCfg.EncodeTime = zapcore.RFC3339TimeEncoder
	} else {
		encCfg = zap.NewDevelopmentEncoderConfig()
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		encCfg.CallerKey = ""
	}
	if !o.timestamp {
		encCfg.TimeKey = ""
	}
	if o.jsonFormat {
		encoder = zapcore.NewJSONEncoder(encCfg)
	} else {
		encoder = zapcore.NewConsoleEncoder(encCfg)
	}

	level := zap.NewAtomicLevelAt(toZapLevel(o.level))
	core := zapcore.NewCore(encoder, zapcore.AddSync(o.out), level)

	return &ZapLogger{
		logger: zap.New(core),
		level:  level,
	}
}

// Debug logs a debug message.
func (l *ZapLogger) Debug(_ context.Context, msg string, fields ...ports.Field) {
	l.logger.Debug(msg, toZapFields(fields)...)
}

// Info logs an informational message.
func (l *ZapLogger) Info(_ context.Context, msg string, fields ...ports.Field) {
	l.logger.Info(msg, toZapFields(fields)...)
}

// Warn logs a warning message.
func (l *ZapLogger) Warn(_ context.Context, msg string, fields ...ports.Field) {
	l.logger.Warn(msg, toZapFields(fields)...)
}

// Error logs an error message.
func (l *ZapLogger) Error(_ context.Context, msg string, fields ...ports.Field) {
	l.logger.Error(msg, toZapFields(fields)...)
}

// With returns a new logger with additional fields. The level is shared.
func (l *ZapLogger) With(fields ...ports.Field) ports.Logger {
	return &ZapLogger{
		logger: l.logger.With(toZapFields(fields)...),
		level:  l.level,
	}
}

// Level returns the minimum log level.
func (l *ZapLogger) Level() ports.Level {
	return fromZapLevel(l.level.Level())
}

// SetLevel sets the minimum log level.
func (l *ZapLogger) SetLevel(level ports.Level) {
	l.level.SetLevel(toZapLevel(level))
}

// Sync flushes buffered entries.
func (l *ZapLogger) Sync() error {
	return l.logger.Sync()
}

func toZapFields(fields []ports.Field) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(fields))
	for _, f := range fields {
		out = append(out, zap.Any(f.Key, f.Value))
	}
	return out
}

func toZapLevel(level ports.Level) zapcore.Level {
	switch level {
	case ports.LevelDebug:
		return zapcore.DebugLevel
	case ports.LevelWarn:
		return zapcore.WarnLevel
	case ports.LevelError:
		return zapcore.ErrorLevel
	case ports.LevelInfo:
		return zapcore.InfoLevel
	}
	return zapcore.InfoLevel
}

func fromZapLevel(level zapcore.Level) ports.Level {
	switch {
	case level <= zapcore.DebugLevel:
		return ports.LevelDebug
	case level == zapcore.InfoLevel:
		return ports.LevelInfo
	case level == zapcore.WarnLevel:
		return ports.LevelWarn
	default:
		return ports.LevelError
	}
}

// Ensure ZapLogger implements Logger.
var _ ports.Logger = (*ZapLogger)(nil)
