package melting

import (
	"tmcalc/core/correction"
	"tmcalc/core/duplex"
	"tmcalc/core/method"
	"tmcalc/core/thermo"
	"tmcalc/core/trace"
)

// Environment is the run-scoped state of one computation. It is created by
// NewEnvironment and discarded with the Report.
type Environment struct {
	Options Options
	Duplex  *duplex.Duplex
	// Hybridization is the arranged one: rnadna reads as dnarna and rnamrna
	// as mrnarna once the strands are swapped.
	Hybridization     duplex.Hybridization
	SelfComplementary bool
	Factor            int
	Result            *thermo.Result
	Trace             *trace.Trace
}

// NewEnvironment validates o, infers the complementary strand when absent,
// arranges the strands and builds the duplex.
func NewEnvironment(o Options, tr *trace.Trace) (*Environment, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	h, _ := duplex.ParseHybridization(string(o.Hybridization))
	o.Hybridization = h
	o.Mode, _ = ParseMode(string(o.Mode))

	top, bottom := o.Sequence, o.Complementary
	if bottom == "" {
		c, err := duplex.Complement(top, h)
		if err != nil {
			return nil, err
		}
		bottom = c
	}
	top, bottom, err := duplex.Arrange(h, top, bottom)
	if err != nil {
		return nil, err
	}
	d, err := duplex.New(top, bottom)
	if err != nil {
		return nil, err
	}
	if _, _, err := d.TrimUnpaired(); err != nil {
		return nil, err
	}

	switch h {
	case duplex.RNADNA:
		h = duplex.DNARNA
	case duplex.RNAMRNA:
		h = duplex.MRNARNA
	}
	self := o.SelfComplementary ||
		(duplex.IsSelfComplementary(d.Sequence()) && duplex.IsSelfComplementary(d.Complementary()))
	factor := o.Factor
	if factor == 0 {
		factor = 4
		if self {
			factor = 1
		}
	}
	tr.Message("environment",
		"duplex", d.String(),
		"hybridization", string(h),
		"self_complementary", self,
		"factor", factor,
		"oligo_conc", o.OligoConc)

	return &Environment{
		Options:           o,
		Duplex:            d,
		Hybridization:     h,
		SelfComplementary: self,
		Factor:            factor,
		Result:            &thermo.Result{},
		Trace:             tr,
	}, nil
}

// Mode resolves def against the threshold.
func (env *Environment) Mode() Mode {
	switch env.Options.Mode {
	case ModeNN, ModeApprox:
		return env.Options.Mode
	}
	if env.Duplex.Len() > env.Options.Threshold {
		return ModeApprox
	}
	return ModeNN
}

func (env *Environment) context() *method.Context {
	return &method.Context{
		Duplex:            env.Duplex,
		Hybridization:     env.Hybridization,
		SelfComplementary: env.SelfComplementary,
		Trace:             env.Trace,
	}
}

func (env *Environment) correctionState() *correction.State {
	return &correction.State{
		Result:        env.Result,
		Solution:      env.Options.Solution,
		Hybridization: env.Hybridization,
		Length:        env.Duplex.Len(),
		PercentGC:     env.Duplex.PercentGC(),
		OligoConc:     env.Options.OligoConc,
		Factor:        env.Factor,
		Trace:         env.Trace,
	}
}
