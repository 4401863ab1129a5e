// Package logging implements ports.Logger with zap: text or JSON entries for
// the CLI, and a discarding logger for code that was given none.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewNopLogger returns a ZapLogger that discards every entry. Its level can
// still be read and changed.
func NewNopLogger() *ZapLogger {
	return &ZapLogger{
		logger: zap.NewNop(),
		level:  zap.NewAtomicLevelAt(zapcore.InfoLevel),
	}
}
