package correction

import (
	"math"
	"sort"

	"tmcalc/core/duplex"
	"tmcalc/core/thermo"
)

// Family groups corrections by the option that selects them.
type Family string

const (
	Ion       Family = "ion"
	DMSO      Family = "dmso-method"
	Formamide Family = "formamide-method"
	NaEq      Family = "naeq"
)

var families = map[Family][]*Correction{
	Ion:       append(append([]*Correction{}, sodiumCorrections...), magnesiumCorrections...),
	DMSO:      dmsoCorrections,
	Formamide: formamideCorrections,
}

// Lookup returns the correction called name in family f.
func Lookup(f Family, name string) (*Correction, bool) {
	for _, c := range families[f] {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// Names lists the corrections of f, sorted. NaEq lists the sodium
// equivalence formulas.
func Names(f Family) []string {
	var out []string
	if f == NaEq {
		for n := range naeqCoefficients {
			out = append(out, n)
		}
	} else {
		for _, c := range families[f] {
			out = append(out, c.Name)
		}
	}
	sort.Strings(out)
	return out
}

// naeqCoefficients are the b of Na + K + Tris/2 + b·√(Mg − dNTP).
var naeqCoefficients = map[string]float64{
	"ahs01": 3.79, // von Ahsen et al. (2001)
	"pey00": 3.3,  // Peyret (2000)
	"mit96": 4.0,  // Mitsuhashi (1996)
}

// SodiumEquivalent folds the ions of sol into one sodium concentration.
// Without magnesium it is the plain monovalent sum and name is not consulted.
func SodiumEquivalent(sol Solution, name string) (float64, error) {
	mono := sol.Monovalent()
	if sol.Mg == 0 {
		return mono, nil
	}
	b, ok := naeqCoefficients[name]
	if !ok {
		return 0, &thermo.NoMethodError{Option: string(NaEq), Method: name, Msg: "unknown sodium equivalence formula"}
	}
	free := sol.FreeMg()
	if free < 0 {
		free = 0
	}
	return mono + b*math.Sqrt(free), nil
}

// AutoIon picks the ion correction for s following the ratio
// R = √(Mg − dNTP) / (Na + K + Tris/2). When R is below 0.22 the magnesium
// is negligible, and the returned solution has Mg set to zero.
func AutoIon(s *State) (string, Solution) {
	sol := s.Solution
	rna := s.Hybridization == duplex.RNARNA || s.Hybridization.IsModifiedRNA()
	pick := func(dna, r string) string {
		if rna {
			return r
		}
		return dna
	}
	if s.Hybridization.IsHybrid() {
		return "wet91", sol
	}
	mono := sol.Monovalent()
	if mono == 0 {
		return pick("owcmg08", "tanmg07"), sol
	}
	free := sol.FreeMg()
	if free < 0 {
		free = 0
	}
	ratio := math.Sqrt(free) / mono
	switch {
	case ratio < 0.22:
		sol.Mg = 0
		return pick("owc2204", "tanna07"), sol
	case ratio < 6:
		return pick("owcmix08", "tanmix07"), sol
	default:
		return pick("owcmg08", "tanmg07"), sol
	}
}
