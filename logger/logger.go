// Package logger provides the shared logrus root used across the node,
// plus an optional Sentry hook for error reporting.
package logger

import (
	"github.com/evalphobia/logrus_sentry"
	"github.com/sirupsen/logrus"
)

var mainLogger *logrus.Logger

func init() {
	mainLogger = logrus.StandardLogger()
	mainLogger.SetLevel(logrus.InfoLevel)
}

// Instance is embedded into long-living objects to give them a named log.
type Instance struct {
	Log *logrus.Entry
}

// New makes a logger instance tagged with the given module name.
func New(name ...string) Instance {
	if len(name) == 0 {
		name = []string{"default"}
	}
	instance := Instance{}
	instance.SetName(name[0])
	return instance
}

// SetName re-tags the instance with another module name.
func (i *Instance) SetName(name string) {
	i.Log = mainLogger.WithField("module", name)
}

// SetLevel sets the verbosity of the root logger.
func SetLevel(l string) error {
	level, err := logrus.ParseLevel(l)
	if err != nil {
		return err
	}
	mainLogger.SetLevel(level)
	return nil
}

// SetFormat sets the formatter of the root logger.
func SetFormat(f logrus.Formatter) {
	mainLogger.SetFormatter(f)
}

// SetDSN appends a Sentry hook to the root logger.
// Panic, fatal and error records are reported.
func SetDSN(dsn string) error {
	if dsn == "" {
		return nil
	}
	hook, err := logrus_sentry.NewSentryHook(dsn, []logrus.Level{
		logrus.PanicLevel,
		logrus.FatalLevel,
		logrus.ErrorLevel,
	})
	if err != nil {
		return err
	}
	hook.StacktraceConfiguration.Enable = true
	mainLogger.AddHook(hook)
	return nil
}
