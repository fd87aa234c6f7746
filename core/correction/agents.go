package correction

import (
	"fmt"

	"tmcalc/core/duplex"
)

// dmsoLinear is Tm − p·DMSO(%), the shape every DMSO correction shares.
func dmsoLinear(name, title string, p float64) *Correction {
	return &Correction{
		Name: name, Title: title, Domain: Temperature,
		Formula: fmt.Sprintf("Tm(DMSO) = Tm − %g·DMSO(%%)", p),
		applicable: func(s *State) bool {
			expect(s, name, duplex.DNADNA)
			s.Trace.Warnf("the %s DMSO correction is not tested against measured melting temperatures", name)
			return true
		},
		tm: func(s *State) float64 {
			return s.Result.Tm - p*s.Solution.DMSO
		},
	}
}

var dmsoCorrections = []*Correction{
	dmsoLinear("ahs01", "Ahsen et al. (2001)", 0.75),
	dmsoLinear("cul76", "Cullen and Bick (1976)", 0.5),
	dmsoLinear("esc80", "Escara and Hutton (1980)", 0.675),
	dmsoLinear("mus81", "Musielski et al. (1981)", 0.6),
}

var formamideCorrections = []*Correction{
	{
		Name: "bla96", Title: "Blake (1996)", Domain: Temperature,
		Formula: "Tm(formamide) = Tm + (0.453·fGC − 2.88)·formamide(M)",
		applicable: func(s *State) bool {
			expect(s, "bla96", duplex.DNADNA)
			return true
		},
		tm: func(s *State) float64 {
			return s.Result.Tm + (0.453*s.fgc()-2.88)*s.Solution.Formamide
		},
	},
	{
		Name: "lincorr", Title: "Linear correction (Wright et al.)", Domain: Temperature,
		Formula: "Tm(formamide) = Tm − 0.65·formamide(%)",
		applicable: func(s *State) bool {
			if s.Hybridization != duplex.DNADNA {
				s.Trace.Warnf("the lincorr formamide correction only covers dnadna duplexes; got %s", s.Hybridization)
				return false
			}
			return true
		},
		tm: func(s *State) float64 {
			return s.Result.Tm - 0.65*s.Solution.Formamide
		},
	},
}
