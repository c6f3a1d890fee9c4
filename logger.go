package routegen

import (
	"fmt"

	"go.uber.org/zap"
)

// Logger is the minimal logging surface the compiler needs.
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

var LoggerEnabled = false

type defaultLogger struct {
}

func (d *defaultLogger) Debug(format string, args ...any) {
	if LoggerEnabled {
		fmt.Printf("[DEBUG] "+format+"\n", args...)
	}
}

func (d *defaultLogger) Info(format string, args ...any) {
	if LoggerEnabled {
		fmt.Printf("[INFO] "+format+"\n", args...)
	}
}

func (d *defaultLogger) Warn(format string, args ...any) {
	if LoggerEnabled {
		fmt.Printf("[WARN] "+format+"\n", args...)
	}
}

func (d *defaultLogger) Error(format string, args ...any) {
	if LoggerEnabled {
		switch t := args[0].(type) {
		case map[string]any:
			fmt.Printf("[ERROR] %s %+v\n", format, t)
		default:
			fmt.Printf("[ERROR] "+format+"\n", args...)
		}
	}
}

func getLogger(lgrs ...Logger) Logger {
	if len(lgrs) > 0 && lgrs[0] != nil {
		return lgrs[0]
	}
	return &defaultLogger{}
}

// ZapLogger adapts a zap logger to the Logger interface.
type ZapLogger struct {
	log *zap.SugaredLogger
}

// NewZapLogger wraps lgr for use with WithLogger.
func NewZapLogger(lgr *zap.Logger) *ZapLogger {
	return &ZapLogger{log: lgr.Sugar()}
}

func (z *ZapLogger) Debug(format string, args ...any) {
	z.log.Debugf(format, args...)
}

func (z *ZapLogger) Info(format string, args ...any) {
	z.log.Infof(format, args...)
}

func (z *ZapLogger) Warn(format string, args ...any) {
	z.log.Warnf(format, args...)
}

func (z *ZapLogger) Error(format string, args ...any) {
	z.log.Errorf(format, args...)
}
