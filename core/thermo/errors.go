package thermo

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinels for errors.Is; every typed error below matches exactly one.
var (
	ErrSequence         = errors.New("invalid sequence")
	ErrNoMethod         = errors.New("no method")
	ErrMissingParameter = errors.New("missing thermodynamic parameter")
	ErrNotApplicable    = errors.New("method not applicable")
)

// SequenceError reports malformed input strands.
type SequenceError struct {
	Msg string
}

func (e *SequenceError) Error() string        { return "sequence: " + e.Msg }
func (e *SequenceError) Is(target error) bool { return target == ErrSequence }

// Sequencef builds a *SequenceError.
func Sequencef(format string, args ...any) error {
	return &SequenceError{Msg: fmt.Sprintf(format, args...)}
}

// NoMethodError reports a pattern no model covers, or an unknown model name.
type NoMethodError struct {
	Option string // option key, e.g. "sinMM"; may be empty
	Method string // requested model name; may be empty
	Msg    string
}

func (e *NoMethodError) Error() string {
	var b strings.Builder
	b.WriteString("no method")
	if e.Option != "" {
		b.WriteString(" for --" + e.Option)
	}
	if e.Method != "" {
		fmt.Fprintf(&b, " %q", e.Method)
	}
	if e.Msg != "" {
		b.WriteString(": " + e.Msg)
	}
	return b.String()
}

func (e *NoMethodError) Is(target error) bool { return target == ErrNoMethod }

// MissingParameterError lists every key a model needed but its tables lack.
type MissingParameterError struct {
	Model string
	Keys  []string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("%s: missing parameters [%s]", e.Model, strings.Join(e.Keys, ", "))
}

func (e *MissingParameterError) Is(target error) bool { return target == ErrMissingParameter }

// MethodNotApplicableError aggregates every applicability failure of a run.
type MethodNotApplicableError struct {
	Reasons []string
	Causes  []error
}

func (e *MethodNotApplicableError) Error() string {
	return "method not applicable: " + strings.Join(e.Reasons, "; ")
}

func (e *MethodNotApplicableError) Is(target error) bool { return target == ErrNotApplicable }

// Unwrap exposes the aggregated causes to errors.As.
func (e *MethodNotApplicableError) Unwrap() []error { return e.Causes }
