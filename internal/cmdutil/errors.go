package cmdutil

import (
	"errors"

	"tmcalc/core/melting"
	"tmcalc/core/thermo"
	"tmcalc/internal/config"
)

// Error kinds, as reported in metrics labels and HTTP error bodies.
const (
	KindSequence         = "sequence"
	KindInvalidOption    = "invalid_option"
	KindConfig           = "config"
	KindUsage            = "usage"
	KindNoMethod         = "no_method"
	KindMissingParameter = "missing_parameter"
	KindNotApplicable    = "not_applicable"
	KindInternal         = "internal"
)

// ErrUsage marks command-line misuse: unknown flags, wrong arguments.
var ErrUsage = errors.New("usage error")

// Classify names the kind of a computation or configuration error.
// A missing parameter is reported as such even when it arrives inside a
// not-applicable aggregate.
func Classify(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, thermo.ErrSequence):
		return KindSequence
	case errors.Is(err, melting.ErrInvalidOption):
		return KindInvalidOption
	case errors.Is(err, config.ErrConfig):
		return KindConfig
	case errors.Is(err, ErrUsage):
		return KindUsage
	case errors.Is(err, thermo.ErrNoMethod):
		return KindNoMethod
	case errors.Is(err, thermo.ErrMissingParameter):
		return KindMissingParameter
	case errors.Is(err, thermo.ErrNotApplicable):
		return KindNotApplicable
	}
	return KindInternal
}

// IsUsage reports errors in what the user asked for rather than in the
// computation: bad sequences, option values and config files.
func IsUsage(err error) bool {
	switch Classify(err) {
	case KindSequence, KindInvalidOption, KindConfig, KindUsage:
		return true
	}
	return false
}

// Exit codes of the commands.
const (
	ExitOK       = 0
	ExitCompute  = 1
	ExitUsage    = 2
	ExitOutput   = 3
	ExitCanceled = 130
)

// ExitCode maps a computation or configuration error to an exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case IsUsage(err):
		return ExitUsage
	}
	return ExitCompute
}
