// Package trace records the human-readable account of one computation:
// which model handled each motif, the increments it added and any
// non-fatal warnings. A Trace optionally mirrors entries to a *slog.Logger.
package trace

import (
	"context"
	"fmt"
	"log/slog"
)

// Kind classifies an Entry.
type Kind string

const (
	KindMessage Kind = "message"
	KindWarning Kind = "warning"
	KindMethod  Kind = "method"
)

// Entry is one trace line with optional structured attributes.
type Entry struct {
	Kind  Kind           `json:"kind"`
	Text  string         `json:"text"`
	Attrs map[string]any `json:"attrs,omitempty"`
}

// Trace is run-scoped and not safe for concurrent use.
// A nil *Trace discards everything.
type Trace struct {
	log     *slog.Logger
	entries []Entry
}

// New returns a Trace mirroring to log (nil means record only).
func New(log *slog.Logger) *Trace {
	return &Trace{log: log}
}

// Message records an informational line.
func (t *Trace) Message(text string, kv ...any) {
	t.add(KindMessage, slog.LevelDebug, text, kv)
}

// Warn records a non-fatal assumption or range violation.
func (t *Trace) Warn(text string, kv ...any) {
	t.add(KindWarning, slog.LevelWarn, text, kv)
}

// Warnf is Warn with formatting and no attributes.
func (t *Trace) Warnf(format string, args ...any) {
	t.add(KindWarning, slog.LevelWarn, fmt.Sprintf(format, args...), nil)
}

// Method records the model chosen for an option.
func (t *Trace) Method(option, name, file string) {
	t.add(KindMethod, slog.LevelInfo, "model selected", []any{"option", option, "method", name, "file", file})
}

// Entries returns a copy of the recorded entries.
func (t *Trace) Entries() []Entry {
	if t == nil {
		return nil
	}
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Warnings returns the text of every warning entry, in order.
func (t *Trace) Warnings() []string {
	if t == nil {
		return nil
	}
	var out []string
	for _, e := range t.entries {
		if e.Kind == KindWarning {
			out = append(out, e.Text)
		}
	}
	return out
}

func (t *Trace) add(kind Kind, level slog.Level, text string, kv []any) {
	if t == nil {
		return
	}
	e := Entry{Kind: kind, Text: text}
	if len(kv) > 0 {
		e.Attrs = make(map[string]any, len(kv)/2)
		for i := 0; i+1 < len(kv); i += 2 {
			k, ok := kv[i].(string)
			if !ok {
				k = fmt.Sprint(kv[i])
			}
			e.Attrs[k] = kv[i+1]
		}
	}
	t.entries = append(t.entries, e)
	if t.log != nil {
		t.log.Log(context.Background(), level, text, kv...)
	}
}
