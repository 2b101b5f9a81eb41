// Package logrus adapts a *logrus.Entry to doccache.Logger.
package logrus

import (
	"github.com/sirupsen/logrus"

	"github.com/unkn0wn-root/doccache"
)

var _ doccache.Logger = LogrusLogger{}

type LogrusLogger struct{ E *logrus.Entry }

// New tags every entry with component=doccache.
func New(l *logrus.Logger) LogrusLogger {
	return LogrusLogger{E: l.WithField("component", "doccache")}
}

func (l LogrusLogger) Debug(msg string, f doccache.Fields) { l.with(f).Debug(msg) }
func (l LogrusLogger) Info(msg string, f doccache.Fields)  { l.with(f).Info(msg) }
func (l LogrusLogger) Warn(msg string, f doccache.Fields)  { l.with(f).Warn(msg) }
func (l LogrusLogger) Error(msg string, f doccache.Fields) { l.with(f).Error(msg) }

func (l LogrusLogger) with(f doccache.Fields) *logrus.Entry {
	if len(f) == 0 {
		return l.E
	}
	e := l.E
	if err, ok := f["err"].(error); ok {
		e = e.WithError(err)
	}
	out := make(logrus.Fields, len(f))
	for k, v := range f {
		if k == "err" {
			continue
		}
		out[k] = v
	}
	return e.WithFields(out)
}
