// Package zap adapts a *zap.Logger to doccache.Logger.
package zap

import (
	"sort"

	"go.uber.org/zap"

	"github.com/unkn0wn-root/doccache"
)

var _ doccache.Logger = ZapLogger{}

type ZapLogger struct{ L *zap.Logger }

// New names the logger "doccache" so cache events are easy to filter.
func New(l *zap.Logger) ZapLogger { return ZapLogger{L: l.Named("doccache")} }

func (z ZapLogger) Debug(msg string, f doccache.Fields) { z.L.Debug(msg, zf(f)...) }
func (z ZapLogger) Info(msg string, f doccache.Fields)  { z.L.Info(msg, zf(f)...) }
func (z ZapLogger) Warn(msg string, f doccache.Fields)  { z.L.Warn(msg, zf(f)...) }
func (z ZapLogger) Error(msg string, f doccache.Fields) { z.L.Error(msg, zf(f)...) }

func zf(f doccache.Fields) []zap.Field {
	if len(f) == 0 {
		return nil
	}
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]zap.Field, 0, len(f))
	for _, k := range keys {
		if err, ok := f[k].(error); ok && k == "err" {
			out = append(out, zap.Error(err))
			continue
		}
		out = append(out, zap.Any(k, f[k]))
	}
	return out
}
