package main

import (
	"github.com/iov-one/treasury/errors"
	"github.com/tendermint/tendermint/libs/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newLogger returns a console logger writing to stderr.
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "log level: %s", err)
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.DisableStacktrace = true
	logger, err := cfg.Build()
	if err != nil {
		return nil, errors.Wrap(err, "build logger")
	}
	return logger, nil
}

// tmLogger exposes a zap logger as the logger used by the core packages.
type tmLogger struct {
	z *zap.SugaredLogger
}

var _ log.Logger = tmLogger{}

func newTMLogger(z *zap.Logger) log.Logger {
	return tmLogger{z: z.Sugar()}
}

func (l tmLogger) Debug(msg string, keyvals ...interface{}) {
	l.z.Debugw(msg, keyvals...)
}

func (l tmLogger) Info(msg string, keyvals ...interface{}) {
	l.z.Infow(msg, keyvals...)
}

func (l tmLogger) Error(msg string, keyvals ...interface{}) {
	l.z.Errorw(msg, keyvals...)
}

func (l tmLogger) With(keyvals ...interface{}) log.Logger {
	return tmLogger{z: l.z.With(keyvals...)}
}
