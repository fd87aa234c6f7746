package correction

import (
	"fmt"

	"tmcalc/core/thermo"
)

// Pipeline names the corrections of one run. An empty Ion selects
// automatically; an empty NaEq means ahs01.
type Pipeline struct {
	Ion       string `json:"ion,omitempty" mapstructure:"ion"`
	NaEq      string `json:"naeq,omitempty" mapstructure:"naeq"`
	DMSO      string `json:"dmso_method,omitempty" mapstructure:"dmso-method"`
	Formamide string `json:"formamide_method,omitempty" mapstructure:"formamide-method"`
}

// DefaultPipeline is automatic ion selection with the ahs01 sodium
// equivalence and DMSO formula and the bla96 formamide formula.
func DefaultPipeline() Pipeline {
	return Pipeline{NaEq: "ahs01", DMSO: "ahs01", Formamide: "bla96"}
}

// Applied records one correction that ran.
type Applied struct {
	Family Family `json:"family"`
	Method string `json:"method"`
}

// NaEqMethod is the sodium equivalence formula in effect.
func (p Pipeline) NaEqMethod() string {
	if p.NaEq == "" {
		return "ahs01"
	}
	return p.NaEq
}

// Apply runs the ion correction, folds the salt-independent entropy into
// Tm, then runs the DMSO and formamide corrections. An automatically
// selected ion correction is checked for applicability like a named one.
func (p Pipeline) Apply(s *State) ([]Applied, error) {
	var applied []Applied
	name := p.Ion
	if name == "" {
		name, s.Solution = AutoIon(s)
		s.Trace.Message("ion correction selected automatically", "method", name)
	}
	naeq, err := SodiumEquivalent(s.Solution, p.NaEqMethod())
	if err != nil {
		return nil, err
	}
	s.NaEq = naeq
	if err := run(Ion, name, s); err != nil {
		return nil, err
	}
	applied = append(applied, Applied{Family: Ion, Method: name})

	if s.Result.SaltIndependentEntropy != 0 {
		s.Result.Tm = thermo.FoldSaltIndependent(s.Result.Tm, s.Result.SaltIndependentEntropy, s.Result.Enthalpy)
		s.Trace.Message("salt-independent entropy folded into Tm", "entropy", s.Result.SaltIndependentEntropy)
	}

	rest, err := p.ApplyAgents(s)
	if err != nil {
		return nil, err
	}
	return append(applied, rest...), nil
}

// ApplyAgents runs only the DMSO and formamide corrections, each when its
// concentration is positive.
func (p Pipeline) ApplyAgents(s *State) ([]Applied, error) {
	var applied []Applied
	steps := []struct {
		family Family
		name   string
		conc   float64
	}{
		{DMSO, p.DMSO, s.Solution.DMSO},
		{Formamide, p.Formamide, s.Solution.Formamide},
	}
	for _, st := range steps {
		if st.conc <= 0 {
			continue
		}
		if err := run(st.family, st.name, s); err != nil {
			return nil, err
		}
		applied = append(applied, Applied{Family: st.family, Method: st.name})
	}
	return applied, nil
}

func run(f Family, name string, s *State) error {
	c, ok := Lookup(f, name)
	if !ok {
		return &thermo.NoMethodError{Option: string(f), Method: name, Msg: fmt.Sprintf("allowed: %v", Names(f))}
	}
	if !c.IsApplicable(s) {
		reason := fmt.Sprintf("the %s correction %q is not applicable to this duplex and solution", f, name)
		return &thermo.MethodNotApplicableError{Reasons: []string{reason}}
	}
	return c.Apply(s)
}
