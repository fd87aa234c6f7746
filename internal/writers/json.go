package writers

import (
	"bufio"
	"encoding/json"
	"errors"
	"io"
	"syscall"

	"tmcalc/pkg/api"
)

func init() {
	Register("json", writeJSON)
	Register("jsonl", writeJSONL)
}

// writeJSON writes one result as an indented object and several as an
// indented array.
func writeJSON(w io.Writer, results []api.ResultV1, _ Options) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if len(results) == 1 {
		return enc.Encode(results[0])
	}
	if results == nil {
		results = []api.ResultV1{}
	}
	return enc.Encode(results)
}

func writeJSONL(w io.Writer, results []api.ResultV1, _ Options) error {
	enc := json.NewEncoder(w)
	for _, r := range results {
		if err := enc.Encode(r); err != nil {
			return err
		}
	}
	return nil
}

// startJSONL encodes each result as one line as soon as it arrives. A broken
// pipe on the final flush is not an error.
func startJSONL(out io.Writer, bufSize int) (chan<- api.ResultV1, <-chan error) {
	in := make(chan api.ResultV1, bufSize)
	done := make(chan error, 1)
	go func() {
		bw := bufio.NewWriterSize(out, 64<<10)
		enc := json.NewEncoder(bw)
		for r := range in {
			if err := enc.Encode(r); err != nil {
				for range in {
				}
				done <- err
				return
			}
		}
		if err := bw.Flush(); err != nil && !IsBrokenPipe(err) {
			done <- err
			return
		}
		done <- nil
	}()
	return in, done
}

// EncodePretty writes v as indented JSON.
func EncodePretty(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// IsBrokenPipe reports whether err is a closed downstream pipe, as when
// output goes to `head`.
func IsBrokenPipe(err error) bool {
	return err != nil && (errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe))
}
