// internal/writers/registry.go
package writers

import (
	"fmt"
	"io"
	"sort"

	"tmcalc/pkg/api"
)

// Options tune every format.
type Options struct {
	Header bool // TSV header line
	Trace  bool // text: print the full trace
}

// Func renders a whole batch of results.
type Func func(w io.Writer, results []api.ResultV1, o Options) error

// Format registry (format → handler). Formats register themselves in init().
var registry = map[string]Func{}

// Register adds or replaces a format (last wins).
func Register(format string, fn Func) { registry[format] = fn }

// Formats lists the registered formats, sorted.
func Formats() []string {
	out := make([]string, 0, len(registry))
	for f := range registry {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Write renders results in format.
func Write(format string, w io.Writer, results []api.ResultV1, o Options) error {
	fn, ok := registry[format]
	if !ok {
		return fmt.Errorf("unknown result format %q (no writer registered)", format)
	}
	return fn(w, results, o)
}

// Start spins up a writer goroutine. Results sent on the channel are written
// in arrival order once the channel is closed; jsonl streams each result as
// it arrives. The error channel yields exactly one value.
func Start(out io.Writer, format string, o Options, bufSize int) (chan<- api.ResultV1, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	if format == "jsonl" {
		return startJSONL(out, bufSize)
	}
	in := make(chan api.ResultV1, bufSize)
	done := make(chan error, 1)
	go func() {
		var buf []api.ResultV1
		for r := range in {
			buf = append(buf, r)
		}
		done <- Write(format, out, buf, o)
	}()
	return in, done
}
