// core/approx/approx.go
// Empirical Tm formulas for long duplexes. They read only the G·C and
// mismatch percentages, the duplex length and the sodium concentration;
// no nearest-neighbor table is involved.

package approx

import (
	"fmt"
	"math"
	"sort"

	"tmcalc/core/correction"
	"tmcalc/core/duplex"
	"tmcalc/core/thermo"
	"tmcalc/core/trace"
)

// Input is what a formula sees.
type Input struct {
	Hybridization   duplex.Hybridization
	Length          int
	PercentGC       float64
	PercentMismatch float64
	Solution        correction.Solution
	NaEq            string // sodium equivalence formula, see correction.SodiumEquivalent
	Threshold       int
	// Default is true when the mode was chosen by length rather than forced.
	Default bool
	Trace   *trace.Trace
}

// Formula is one registered approximative equation.
type Formula struct {
	Name     string
	Title    string
	Equation string
	// Established is the hybridization the formula was fitted on.
	Established duplex.Hybridization
	// Mismatches is true for formulas with a %mismatch term.
	Mismatches bool
	// RawIons skips the sodium equivalence; the formula has a fixed ionic strength.
	RawIons bool
	tm      func(na float64, in Input) float64
}

var formulas = []*Formula{
	{
		Name: "ahs01", Title: "von Ahsen et al. (2001)", Established: duplex.DNADNA,
		Equation: "Tm = 80.4 + 0.345·%GC + log10(Na)·(17.0 − 0.135·%GC) − 550/N",
		tm: func(na float64, in Input) float64 {
			return 80.4 + 0.345*in.PercentGC + math.Log10(na)*(17.0-0.135*in.PercentGC) - 550/float64(in.Length)
		},
	},
	marmurChester("che93", "Marmur (1962), Chester and Marshak (1993)", 650),
	marmurChester("che93corr", "von Ahsen et al. (2001), Marmur (1962), Chester and Marshak (1993)", 535),
	{
		Name: "schdot", Title: "Marmur, Schildkraut and Doty (1965, 1993)", Established: duplex.DNADNA,
		Equation: "Tm = 81.5 + 16.6·log10(Na) + 0.41·%GC − 675/N",
		tm: func(na float64, in Input) float64 {
			return 81.5 + 16.6*math.Log10(na) + 0.41*in.PercentGC - 675/float64(in.Length)
		},
	},
	{
		Name: "owe69", Title: "Owen et al. (1969)", Established: duplex.DNADNA,
		Equation: "Tm = 87.16 + 0.345·%GC + log10(Na)·(20.17 − 0.066·%GC)",
		tm: func(na float64, in Input) float64 {
			return 87.16 + 0.345*in.PercentGC + math.Log10(na)*(20.17-0.066*in.PercentGC)
		},
	},
	{
		Name: "san98", Title: "SantaLucia (1998)", Established: duplex.DNADNA,
		Equation: "Tm = 77.1 + 11.7·log10(Na) + 0.41·%GC − 528/N",
		tm: func(na float64, in Input) float64 {
			return 77.1 + 11.7*math.Log10(na) + 0.41*in.PercentGC - 528/float64(in.Length)
		},
	},
	wetmur("wetdna91", "Wetmur (1991), DNA duplexes", duplex.DNADNA, 81.5, 0.41),
	wetmur("wetrna91", "Wetmur (1991), RNA duplexes", duplex.RNARNA, 78, 0.7),
	wetmur("wetdnarna91", "Wetmur (1991), DNA/RNA duplexes", duplex.DNARNA, 67, 0.8),
}

func marmurChester(name, title string, p float64) *Formula {
	return &Formula{
		Name: name, Title: title, Established: duplex.DNADNA, RawIons: true,
		Equation: fmt.Sprintf("Tm = 69.3 + 0.41·%%GC − %g/N", p),
		tm: func(_ float64, in Input) float64 {
			return 69.3 + 0.41*in.PercentGC - p/float64(in.Length)
		},
	}
}

func wetmur(name, title string, h duplex.Hybridization, base, gc float64) *Formula {
	return &Formula{
		Name: name, Title: title, Established: h, Mismatches: true,
		Equation: fmt.Sprintf("Tm = %g + 16.6·log10(Na/(1 + 0.7·Na)) + %g·%%GC − 500/N − %%mismatch", base, gc),
		tm: func(na float64, in Input) float64 {
			return base + 16.6*math.Log10(na/(1+0.7*na)) + gc*in.PercentGC - 500/float64(in.Length) - in.PercentMismatch
		},
	}
}

// Lookup returns the formula called name.
func Lookup(name string) (*Formula, bool) {
	for _, f := range formulas {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}

// Names lists the registered formulas, sorted.
func Names() []string {
	out := make([]string, 0, len(formulas))
	for _, f := range formulas {
		out = append(out, f.Name)
	}
	sort.Strings(out)
	return out
}

// IsApplicable checks in against f, recording every warning on in.Trace.
// The returned reasons are empty when f can run.
func (f *Formula) IsApplicable(in Input) []string {
	var reasons []string
	if in.PercentMismatch != 0 {
		in.Trace.Warnf("the approximative formulas cannot properly account for mismatches and unpaired nucleotides")
		if !f.Mismatches {
			reasons = append(reasons, fmt.Sprintf("the %s formula does not cover mismatches or unpaired nucleotides", f.Name))
		}
	}
	if in.Threshold >= in.Length {
		in.Trace.Warnf("the approximative formulas were established for duplexes longer than %d bp", in.Threshold)
		if in.Default {
			reasons = append(reasons, fmt.Sprintf("the duplex (%d bp) is not longer than the threshold %d", in.Length, in.Threshold))
		}
	}
	if in.Hybridization != f.Established {
		in.Trace.Warnf("the %s formula was established for %s duplexes; got %s", f.Name, f.Established, in.Hybridization)
	}
	if f.RawIons {
		sol := in.Solution
		if sol.Na != 0 || sol.Mg != 0.0015 || sol.Tris != 0.01 || sol.K != 0.05 {
			in.Trace.Warnf("the %s formula was established at Na = 0 M, Mg = 0.0015 M, Tris = 0.01 M and K = 0.05 M", f.Name)
		}
	}
	return reasons
}

// sodium is the Na the formula uses: the equivalent of every ion when Mg,
// K or Tris are present.
func (f *Formula) sodium(in Input) (float64, error) {
	sol := in.Solution
	if f.RawIons || (sol.Mg <= 0 && sol.K <= 0 && sol.Tris <= 0) {
		return sol.Na, nil
	}
	return correction.SodiumEquivalent(sol, in.NaEq)
}

// Compute runs the formula called name and returns a Result carrying only Tm.
func Compute(name string, in Input) (*thermo.Result, error) {
	f, ok := Lookup(name)
	if !ok {
		return nil, &thermo.NoMethodError{Option: "am", Method: name, Msg: fmt.Sprintf("allowed: %v", Names())}
	}
	if in.Length <= 0 {
		return nil, thermo.Sequencef("empty duplex")
	}
	if reasons := f.IsApplicable(in); len(reasons) > 0 {
		return nil, &thermo.MethodNotApplicableError{Reasons: reasons}
	}
	na, err := f.sodium(in)
	if err != nil {
		return nil, err
	}
	if !f.RawIons && na <= 0 {
		return nil, &thermo.MethodNotApplicableError{Reasons: []string{fmt.Sprintf("the %s formula needs a positive sodium concentration", f.Name)}}
	}
	in.Trace.Message("approximative formula", "method", f.Name, "equation", f.Equation, "Na", na)
	return &thermo.Result{Tm: f.tm(na, in)}, nil
}
