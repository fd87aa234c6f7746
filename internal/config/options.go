package config

import (
	"strings"

	"tmcalc/core/duplex"
	"tmcalc/core/melting"
	"tmcalc/core/motif"
	"tmcalc/pkg/api"
)

func motifOption(name string) (motif.Kind, bool) {
	for _, k := range motif.Kinds() {
		if strings.EqualFold(k.Option(), name) {
			return k, true
		}
	}
	return 0, false
}

// Options resolves c into the input of one computation: the hybridization's
// defaults first, then every non-empty setting of c over them. Values that
// need the duplex are checked later by melting.
func (c Config) Options() (melting.Options, error) {
	h, err := duplex.ParseHybridization(c.Hybridization)
	if err != nil {
		return melting.Options{}, &melting.OptionError{Option: "hybridization", Msg: err.Error()}
	}
	mode, err := melting.ParseMode(c.Mode)
	if err != nil {
		return melting.Options{}, err
	}

	o := melting.DefaultOptions(h)
	o.Sequence = strings.ToUpper(strings.TrimSpace(c.Sequence))
	o.Complementary = strings.ToUpper(strings.TrimSpace(c.Complementary))
	o.OligoConc = float64(c.OligoConc)
	o.Solution = c.Solution.Correction()
	o.SelfComplementary = c.SelfComplementary
	o.Factor = c.Factor
	o.Mode = mode
	if c.Threshold != 0 {
		o.Threshold = c.Threshold
	}
	o.DataDir = c.DataDir

	for opt, name := range c.Methods {
		if name == "" {
			continue
		}
		k, ok := motifOption(opt)
		if !ok {
			return melting.Options{}, &melting.OptionError{Option: "methods", Msg: "unknown option " + opt}
		}
		o.Methods[k] = name
	}
	if c.Approx != "" {
		o.Approx = c.Approx
	}
	if c.Ion != "" {
		o.Corrections.Ion = c.Ion
	}
	if c.NaEq != "" {
		o.Corrections.NaEq = c.NaEq
	}
	if c.DMSOMethod != "" {
		o.Corrections.DMSO = c.DMSOMethod
	}
	if c.FormamideMethod != "" {
		o.Corrections.Formamide = c.FormamideMethod
	}
	return o, o.Validate()
}

// WithRequest returns a copy of c with the computation settings of r laid
// over it. Empty request fields keep the value of c.
func (c Config) WithRequest(r api.RequestV1) (Config, error) {
	out := c
	out.Methods = map[string]string{}
	for k, v := range c.Methods {
		out.Methods[k] = v
	}
	out.Sequence = r.Sequence
	out.Complementary = r.Complementary
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&out.Hybridization, r.Hybridization)
	set(&out.Mode, r.Mode)
	set(&out.Approx, r.Approx)
	set(&out.Ion, r.Ion)
	set(&out.NaEq, r.NaEq)
	set(&out.DMSOMethod, r.DMSOMethod)
	set(&out.FormamideMethod, r.FormamideMethod)
	if r.OligoConc != 0 {
		out.OligoConc = Concentration(r.OligoConc)
	}
	if strings.TrimSpace(r.Solution) != "" {
		sol, err := ParseSolution(r.Solution)
		if err != nil {
			return Config{}, &melting.OptionError{Option: "solution", Msg: err.Error()}
		}
		out.Solution = sol
	}
	if r.SelfComplementary {
		out.SelfComplementary = true
	}
	if r.Factor != 0 {
		out.Factor = r.Factor
	}
	if r.Threshold != 0 {
		out.Threshold = r.Threshold
	}
	for k, v := range r.Methods {
		out.Methods[strings.ToLower(k)] = v
	}
	out.Trace = out.Trace || r.Trace
	return out, nil
}

// Request is the normalized request of o: every default resolved, the
// solution rendered canonically and method names keyed by option. Two
// Options that compute the same thing have equal Requests.
func Request(o melting.Options, sol Solution, trace bool) api.RequestV1 {
	r := api.RequestV1{
		Sequence:          o.Sequence,
		Complementary:     o.Complementary,
		Hybridization:     string(o.Hybridization),
		OligoConc:         o.OligoConc,
		Solution:          sol.String(),
		SelfComplementary: o.SelfComplementary,
		Factor:            o.Factor,
		Mode:              string(o.Mode),
		Threshold:         o.Threshold,
		Methods:           map[string]string{},
		Approx:            o.Approx,
		Ion:               o.Corrections.Ion,
		NaEq:              o.Corrections.NaEqMethod(),
		DMSOMethod:        o.Corrections.DMSO,
		FormamideMethod:   o.Corrections.Formamide,
		Trace:             trace,
	}
	for k, v := range o.Methods {
		r.Methods[k.Option()] = v
	}
	return r
}
