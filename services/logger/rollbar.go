package logsvc

import (
	"fmt"

	"github.com/rollbar/rollbar-go"
	"github.com/rollbar/rollbar-go/errors"
	"go.uber.org/zap"

	"github.com/nossauesc/agenda/core"
	"github.com/nossauesc/agenda/core/account"
)

// RollbarLogger writes structured logs with zap and reports them to Rollbar when enabled.
type RollbarLogger struct {
	sugar   *zap.SugaredLogger
	enabled bool
}

var _ core.Logger = (*RollbarLogger)(nil)

func NewRollbarLogger(zl *zap.Logger, name string, conf *core.Config) *RollbarLogger {
	rollbar.SetToken(conf.RollbarToken)
	rollbar.SetEnvironment(conf.Env)
	rollbar.SetServerHost(conf.Server.Host)
	rollbar.SetCodeVersion(conf.Build)
	rollbar.SetStackTracer(errors.StackTracer)
	return &RollbarLogger{sugar: zl.Named(name).Sugar()}
}

// NewNopLogger discards everything. Used in tests.
func NewNopLogger() *RollbarLogger {
	return &RollbarLogger{sugar: zap.NewNop().Sugar()}
}

func (l *RollbarLogger) Enable(enabled bool) {
	l.enabled = enabled
	rollbar.SetEnabled(enabled)
}

// expected fmt: msg | error, map[string]interface{}, account.Profile
func (l *RollbarLogger) prepare(msg string, args []interface{}) []interface{} {
	var profSet bool
	newArgs := make([]interface{}, 0, len(args)+1)
	newArgs = append(newArgs, msg)
	for _, arg := range args {
		// set logged in user
		if prof, ok := arg.(account.Profile); ok {
			if !profSet { // only set one person
				rollbar.SetPerson(prof.ID, prof.DisplayName, prof.Email)
				profSet = true
			}
		} else {
			newArgs = append(newArgs, arg)
		}
	}
	if !profSet {
		rollbar.ClearPerson()
	}
	return newArgs
}

// fields converts args to zap key-value pairs.
func fields(args []interface{}) []interface{} {
	kvs := make([]interface{}, 0, 2*len(args))
	for i, arg := range args {
		switch val := arg.(type) {
		case error:
			kvs = append(kvs, "error", fmt.Sprintf("%+v", val))
		case map[string]interface{}:
			for k, v := range val {
				kvs = append(kvs, k, v)
			}
		case account.Profile:
			kvs = append(kvs, "uid", val.ID, "role", val.Role)
		default:
			kvs = append(kvs, fmt.Sprintf("arg%d", i), val)
		}
	}
	return kvs
}

func (l *RollbarLogger) Debug(msg string, args ...interface{}) {
	if l.enabled {
		rollbar.Debug(l.prepare(msg, args)...)
	}
	l.sugar.Debugw(msg, fields(args)...)
}

func (l *RollbarLogger) Info(msg string, args ...interface{}) {
	if l.enabled {
		rollbar.Info(l.prepare(msg, args)...)
	}
	l.sugar.Infow(msg, fields(args)...)
}

func (l *RollbarLogger) Warn(msg string, args ...interface{}) {
	if l.enabled {
		rollbar.Warning(l.prepare(msg, args)...)
	}
	l.sugar.Warnw(msg, fields(args)...)
}

func (l *RollbarLogger) Error(msg string, args ...interface{}) {
	if l.enabled {
		rollbar.Error(l.prepare(msg, args)...)
	}
	l.sugar.Errorw(msg, fields(args)...)
}

func (l *RollbarLogger) Fatal(msg string, args ...interface{}) {
	if l.enabled {
		rollbar.Critical(l.prepare(msg, args)...)
		rollbar.Wait()
	}
	l.sugar.Fatalw(msg, fields(args)...)
}

// Sync flushes buffered logs.
func (l *RollbarLogger) Sync() {
	_ = l.sugar.Sync()
	if l.enabled {
		rollbar.Wait()
	}
}
