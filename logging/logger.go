// Package logging builds the zap loggers used by the services and the CLI.
//
// Loggers should be injected and named per component: lggr.Named("runner").
// Tests use [Test]; [New] is reserved for actual runtime.
package logging

import (
	"fmt"
	"os"
	"testing"

	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"

	"github.com/jeffsasaki/antipatterns/config"
)

// Logger is the subset of zap.SugaredLogger the rest of the module depends on.
type Logger interface {
	Named(name string) Logger

	Debugw(msg string, keysAndValues ...any)
	Infow(msg string, keysAndValues ...any)
	Warnw(msg string, keysAndValues ...any)
	Errorw(msg string, keysAndValues ...any)
	// Fatalw logs and then calls os.Exit(1).
	Fatalw(msg string, keysAndValues ...any)

	Sync() error
}

// New returns a Logger for the given settings.
func New(s config.LogSettings) (Logger, error) {
	level, err := parseLevel(s.Level)
	if err != nil {
		return nil, err
	}

	var sink zapcore.WriteSyncer
	switch s.Type {
	case config.LogTypeConsole:
		sink = zapcore.Lock(os.Stderr)
	case config.LogTypeFile:
		if s.FilePath == "" {
			return nil, fmt.Errorf("file path required for file logger")
		}
		sink = zapcore.AddSync(&lumberjack.Logger{
			Filename:   s.FilePath,
			MaxSize:    s.MaxSize,
			MaxBackups: s.MaxBackups,
			MaxAge:     s.MaxAge,
		})
	default:
		return nil, fmt.Errorf("unsupported log type: %s", s.Type)
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), sink, level)

	return &logger{zap.New(core, zap.AddCaller()).Sugar()}, nil
}

// Test returns a Logger that writes through tb.Log.
func Test(tb testing.TB) Logger {
	tb.Helper()
	return &logger{zaptest.NewLogger(tb).Sugar()}
}

// Nop returns a no-op Logger.
func Nop() Logger {
	return &logger{zap.NewNop().Sugar()}
}

// Wrap adapts an existing zap logger.
func Wrap(l *zap.Logger) Logger {
	return &logger{l.Sugar()}
}

type logger struct {
	*zap.SugaredLogger
}

func (l *logger) Named(name string) Logger {
	return &logger{l.SugaredLogger.Named(name)}
}

func parseLevel(level string) (zapcore.Level, error) {
	switch level {
	case config.LogLevelDebug:
		return zapcore.DebugLevel, nil
	case config.LogLevelInfo, "":
		return zapcore.InfoLevel, nil
	case config.LogLevelWarning:
		return zapcore.WarnLevel, nil
	case config.LogLevelError:
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("unsupported log level: %s", level)
	}
}
