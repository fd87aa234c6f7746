// core/correction/correction.go
// Ion and solvent corrections applied to an accumulated nearest-neighbor
// result. A correction works in one of two domains:
//
//	temperature: rewrites Tm directly
//	entropy:     adds to ΔS, then recomputes Tm = ΔH / (ΔS + R ln(CT/F)) − 273.15
//
// Because an entropy correction recomputes Tm from scratch, it discards any
// earlier temperature-domain change. The Pipeline order is therefore fixed.

package correction

import (
	"fmt"

	"tmcalc/core/duplex"
	"tmcalc/core/thermo"
	"tmcalc/core/trace"
)

// Solution is the ion and agent composition. Ions are in mol/L, DMSO and
// formamide in the unit their correction expects (% or mol/L).
type Solution struct {
	Na        float64 `json:"Na,omitempty" yaml:"Na" mapstructure:"Na"`
	K         float64 `json:"K,omitempty" yaml:"K" mapstructure:"K"`
	Mg        float64 `json:"Mg,omitempty" yaml:"Mg" mapstructure:"Mg"`
	Tris      float64 `json:"Tris,omitempty" yaml:"Tris" mapstructure:"Tris"`
	DNTP      float64 `json:"dNTP,omitempty" yaml:"dNTP" mapstructure:"dNTP"`
	DMSO      float64 `json:"DMSO,omitempty" yaml:"DMSO" mapstructure:"DMSO"`
	Formamide float64 `json:"formamide,omitempty" yaml:"formamide" mapstructure:"formamide"`
}

// Monovalent is Na + K + Tris/2.
func (s Solution) Monovalent() float64 { return s.Na + s.K + s.Tris/2 }

// FreeMg is the magnesium left after dNTP chelation.
func (s Solution) FreeMg() float64 { return s.Mg - s.DNTP }

// HasIons reports at least one of Na, Mg, K or Tris.
func (s Solution) HasIons() bool { return s.Na > 0 || s.Mg > 0 || s.K > 0 || s.Tris > 0 }

// Domain says what a correction rewrites.
type Domain int

const (
	Temperature Domain = iota
	Entropy
)

func (d Domain) String() string {
	if d == Entropy {
		return "entropy"
	}
	return "temperature"
}

// State is the part of a run a correction reads and rewrites.
type State struct {
	Result        *thermo.Result
	Solution      Solution
	Hybridization duplex.Hybridization
	Length        int     // duplex length, unpaired positions included
	PercentGC     float64 // 0..100
	OligoConc     float64 // mol/L
	Factor        int
	// NaEq is the sodium equivalent of Solution; the pipeline fills it.
	NaEq  float64
	Trace *trace.Trace
}

// fgc is the G·C fraction.
func (s *State) fgc() float64 { return s.PercentGC / 100 }

func (s *State) length() float64 { return float64(s.Length) }

// Correction is one named correction formula.
type Correction struct {
	Name    string
	Title   string // literature reference
	Domain  Domain
	Formula string

	// applicable reports whether the correction can run; it may only warn.
	applicable func(s *State) bool
	// tm returns the corrected Tm (temperature domain).
	tm func(s *State) float64
	// entropy returns the entropy increment (entropy domain).
	entropy func(s *State) float64
}

// IsApplicable runs the correction's checks, warning on the trace.
func (c *Correction) IsApplicable(s *State) bool {
	if c.applicable == nil {
		return true
	}
	return c.applicable(s)
}

// Apply rewrites s.Result.
func (c *Correction) Apply(s *State) error {
	s.Trace.Message("correction", "method", c.Name, "formula", c.Formula)
	switch c.Domain {
	case Entropy:
		s.Result.Entropy += c.entropy(s)
		tm, err := thermo.MeltingTemperature(s.Result.Enthalpy, s.Result.Entropy, s.OligoConc, s.Factor)
		if err != nil {
			return fmt.Errorf("%s: %w", c.Name, err)
		}
		s.Result.Tm = tm
	default:
		s.Result.Tm = c.tm(s)
	}
	return nil
}

// expect warns when the hybridization is outside what the correction was
// established for.
func expect(s *State, name string, allowed duplex.Hybridization) {
	if s.Hybridization != allowed {
		s.Trace.Warnf("the %s correction is established for %s duplexes; got %s", name, allowed, s.Hybridization)
	}
}

// warnOutside warns when v is outside [lo, hi].
func warnOutside(s *State, name, what string, v, lo, hi float64) {
	if v < lo || v > hi {
		s.Trace.Warnf("the %s correction is established for %s between %g and %g M; got %g", name, what, lo, hi, v)
	}
}
