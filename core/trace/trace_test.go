package trace

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceRecordsAndMirrors(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	tr := New(log)

	tr.Message("crick pair", "enthalpy", -7900.0)
	tr.Warn("established for DNA")
	tr.Method("nn", "san04", "Santalucia2004nn.yaml")

	entries := tr.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, KindMessage, entries[0].Kind)
	assert.Equal(t, -7900.0, entries[0].Attrs["enthalpy"])
	assert.Equal(t, []string{"established for DNA"}, tr.Warnings())
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "method=san04")
}

func TestNilTraceIsNoop(t *testing.T) {
	var tr *Trace
	tr.Warn("ignored")
	assert.Nil(t, tr.Entries())
	assert.Nil(t, tr.Warnings())
}
