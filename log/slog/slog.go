//go:build go1.21

// Package slog adapts a *log/slog.Logger to doccache.Logger.
package slog

import (
	"context"
	stdslog "log/slog"
	"sort"

	"github.com/unkn0wn-root/doccache"
)

var _ doccache.Logger = Logger{}

type Logger struct{ L *stdslog.Logger }

func (s Logger) Debug(msg string, f doccache.Fields) { s.log(stdslog.LevelDebug, msg, f) }
func (s Logger) Info(msg string, f doccache.Fields)  { s.log(stdslog.LevelInfo, msg, f) }
func (s Logger) Warn(msg string, f doccache.Fields)  { s.log(stdslog.LevelWarn, msg, f) }
func (s Logger) Error(msg string, f doccache.Fields) { s.log(stdslog.LevelError, msg, f) }

func (s Logger) log(level stdslog.Level, msg string, f doccache.Fields) {
	s.L.LogAttrs(context.Background(), level, msg, attrs(f)...)
}

// attrs is sorted so log lines are stable across runs.
func attrs(f doccache.Fields) []stdslog.Attr {
	if len(f) == 0 {
		return nil
	}
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]stdslog.Attr, 0, len(f))
	for _, k := range keys {
		out = append(out, stdslog.Any(k, f[k]))
	}
	return out
}
