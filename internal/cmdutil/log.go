// internal/cmdutil/log.go
package cmdutil

import (
	"fmt"
	"io"
)

// Warnf prints a WARN line to dst unless quiet.
func Warnf(dst io.Writer, quiet bool, format string, a ...any) {
	if quiet {
		return
	}
	_, _ = fmt.Fprintf(dst, "WARN: "+format+"\n", a...)
}

// Warnings prints every warning of one run, prefixed with id when set.
func Warnings(dst io.Writer, quiet bool, id string, warnings []string) {
	for _, w := range warnings {
		if id != "" {
			Warnf(dst, quiet, "%s: %s", id, w)
		} else {
			Warnf(dst, quiet, "%s", w)
		}
	}
}
