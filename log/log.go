// Package log wraps zap behind the small leveled interface the proving code
// and the CLI log through.
package log

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the interface the rest of the module logs through.
type Logger interface {
	Debugw(msg string, keyvals ...interface{})
	Infow(msg string, keyvals ...interface{})
	Warnw(msg string, keyvals ...interface{})
	Errorw(msg string, keyvals ...interface{})
	With(args ...interface{}) Logger
	Named(s string) Logger
}

type logger struct {
	*zap.SugaredLogger
}

func (l *logger) With(args ...interface{}) Logger {
	return &logger{l.SugaredLogger.With(args...)}
}

func (l *logger) Named(s string) Logger {
	return &logger{l.SugaredLogger.Named(s)}
}

const (
	DebugLevel = int(zapcore.DebugLevel)
	InfoLevel  = int(zapcore.InfoLevel)
	ErrorLevel = int(zapcore.ErrorLevel)
)

// DefaultLevel is the level of the default logger. Change it before the first
// DefaultLogger call.
var DefaultLevel = InfoLevel

var (
	defaultLogger     Logger
	defaultLoggerOnce sync.Once
)

// DefaultLogger returns the process-wide console logger.
func DefaultLogger() Logger {
	defaultLoggerOnce.Do(func() {
		defaultLogger = New(DefaultLevel)
	})
	return defaultLogger
}

// New returns a console logger printing statements at the given level.
func New(level int) Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.Level(level))
	l, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	return &logger{l.Sugar()}
}

// Nop returns a logger that discards everything. Library entry points default
// to it when the caller passes nil.
func Nop() Logger {
	return &logger{zap.NewNop().Sugar()}
}
