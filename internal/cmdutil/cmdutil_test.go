package cmdutil

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"tmcalc/core/melting"
	"tmcalc/core/thermo"
	"tmcalc/internal/config"
)

func TestClassifyAndExitCode(t *testing.T) {
	cases := []struct {
		err  error
		kind string
		code int
	}{
		{nil, "", ExitOK},
		{thermo.Sequencef("bad base %q", "X"), KindSequence, ExitUsage},
		{&melting.OptionError{Option: "factor", Msg: "2"}, KindInvalidOption, ExitUsage},
		{fmt.Errorf("%w: broken", config.ErrConfig), KindConfig, ExitUsage},
		{&thermo.NoMethodError{Option: "nn", Method: "x"}, KindNoMethod, ExitCompute},
		{&thermo.MethodNotApplicableError{
			Reasons: []string{"missing"},
			Causes:  []error{&thermo.MissingParameterError{Model: "nn all97", Keys: []string{"k"}}},
		}, KindMissingParameter, ExitCompute},
		{&thermo.MethodNotApplicableError{Reasons: []string{"no"}}, KindNotApplicable, ExitCompute},
		{fmt.Errorf("%w: unknown flag --x", ErrUsage), KindUsage, ExitUsage},
		{errors.New("boom"), KindInternal, ExitCompute},
	}
	for _, c := range cases {
		assert.Equal(t, c.kind, Classify(c.err), "%v", c.err)
		assert.Equal(t, c.code, ExitCode(c.err), "%v", c.err)
	}
}

func TestWarnf(t *testing.T) {
	var b bytes.Buffer
	Warnings(&b, false, "r1", []string{"a", "b"})
	Warnf(&b, true, "hidden")
	assert.Equal(t, "WARN: r1: a\nWARN: r1: b\n", b.String())
}
