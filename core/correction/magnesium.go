package correction

import (
	"math"

	"tmcalc/core/duplex"
)

func needMagnesium(s *State, name string) bool {
	if s.Solution.FreeMg() <= 0 {
		s.Trace.Warnf("the %s correction needs free magnesium (Mg above dNTP)", name)
		return false
	}
	return true
}

// owczarzy08 holds the seven coefficients of the Owczarzy 2008 equation.
type owczarzy08 struct{ a, b, c, d, e, f, g float64 }

// owczarzy08Mg are the published coefficients for magnesium alone.
var owczarzy08Mg = owczarzy08{a: 3.92e-5, b: -9.11e-6, c: 6.26e-5, d: 1.42e-5, e: -4.82e-4, f: 5.25e-4, g: 8.31e-5}

// term is a + b·lnMg + fGC·(c + d·lnMg) + (e + f·lnMg + g·ln²Mg)/(2(N−1)).
func (k owczarzy08) term(s *State) float64 {
	ln := math.Log(s.Solution.FreeMg())
	return k.a + k.b*ln + s.fgc()*(k.c+k.d*ln) +
		1/(2*(s.length()-1))*(k.e+k.f*ln+k.g*ln*ln)
}

// mixed rescales a, d and g for a monovalent background.
func (k owczarzy08) mixed(mono float64) owczarzy08 {
	ln := math.Log(mono)
	k.a *= 0.843 - 0.352*math.Sqrt(mono)*ln
	k.d *= 1.279 - 4.03e-3*ln - 8.03e-3*ln*ln
	k.g *= 0.486 - 0.258*ln + 5.25e-3*ln*ln*ln
	return k
}

// tanMg06 and tanMg07 are the per-stack magnesium terms g2 = a2 + b2/N².
func tanMg06(mg, n float64) float64 {
	ln := math.Log(mg)
	a := 0.02*ln + 0.0068*ln*ln
	b := 1.18*ln + 0.344*ln*ln
	return a + b/(n*n)
}

func tanMg07(mg, n float64) float64 {
	ln := math.Log(mg)
	a := -0.6/n + 0.025*ln + 0.0068*ln*ln
	b := ln + 0.38*ln*ln
	return a + b/(n*n)
}

var magnesiumCorrections = []*Correction{
	{
		Name: "owcmg08", Title: "Owczarzy et al. (2008)", Domain: Temperature,
		Formula: "1/Tm(Mg) = 1/Tm(1M) + a + b·ln(Mg) + fGC·(c + d·ln(Mg)) + (e + f·ln(Mg) + g·ln²(Mg))/(2(N−1))",
		applicable: func(s *State) bool {
			if !needMagnesium(s, "owcmg08") {
				return false
			}
			warnOutside(s, "owcmg08", "magnesium concentrations", s.Solution.FreeMg(), 0.0005, 0.6)
			expect(s, "owcmg08", duplex.DNADNA)
			return true
		},
		tm: func(s *State) float64 {
			return inverse(s.Result.Tm, owczarzy08Mg.term(s))
		},
	},
	{
		Name: "owcmix08", Title: "Owczarzy et al. (2008), mixed ions", Domain: Temperature,
		Formula: "owcmg08 with a, d and g scaled by the monovalent concentration Na + K + Tris/2",
		applicable: func(s *State) bool {
			if !needMagnesium(s, "owcmix08") {
				return false
			}
			if s.Solution.Monovalent() <= 0 {
				s.Trace.Warnf("the owcmix08 correction needs monovalent cations")
				return false
			}
			warnOutside(s, "owcmix08", "magnesium concentrations", s.Solution.FreeMg(), 0.0005, 0.6)
			expect(s, "owcmix08", duplex.DNADNA)
			return true
		},
		tm: func(s *State) float64 {
			return inverse(s.Result.Tm, owczarzy08Mg.mixed(s.Solution.Monovalent()).term(s))
		},
	},
	{
		Name: "tanmg06", Title: "Tan and Chen (2006), magnesium", Domain: Entropy,
		Formula: "ΔS(Mg) = ΔS(1M) − 3.22·(N−1)·g2",
		applicable: func(s *State) bool {
			if !needMagnesium(s, "tanmg06") {
				return false
			}
			mg := s.Solution.FreeMg()
			// As published: the condition cannot hold.
			if mg < 0.1 && mg > 0.3 {
				s.Trace.Warnf("the tanmg06 correction is reliable for magnesium between 0.1 and 0.3 M")
			}
			if s.Length < 6 {
				s.Trace.Warnf("the tanmg06 correction is established for duplexes of at least 6 bp")
			}
			expect(s, "tanmg06", duplex.DNADNA)
			return true
		},
		entropy: func(s *State) float64 {
			return tanEntropy(s, tanMg06(s.Solution.FreeMg(), s.length()))
		},
	},
	{
		Name: "tanmg07", Title: "Tan and Chen (2007), magnesium", Domain: Entropy,
		Formula: "ΔS(Mg) = ΔS(1M) − 3.22·(N−1)·g2",
		applicable: func(s *State) bool {
			if !needMagnesium(s, "tanmg07") {
				return false
			}
			mg := s.Solution.FreeMg()
			// As published: the condition cannot hold.
			if mg < 0.0001 && mg > 1 {
				s.Trace.Warnf("the tanmg07 correction is reliable for magnesium between 0.0001 and 1 M")
			}
			if s.Hybridization != duplex.RNARNA && !s.Hybridization.IsModifiedRNA() {
				s.Trace.Warnf("the tanmg07 correction is established for rnarna duplexes; got %s", s.Hybridization)
			}
			return true
		},
		entropy: func(s *State) float64 {
			return tanEntropy(s, tanMg07(s.Solution.FreeMg(), s.length()))
		},
	},
	{
		Name: "tanmix07", Title: "Tan and Chen (2007), mixed ions", Domain: Entropy,
		Formula: "ΔS(Na,Mg) = ΔS(1M) − 3.22·((N−1)·(x1·g1 + x2·g2) + g12)",
		applicable: func(s *State) bool {
			if !needMagnesium(s, "tanmix07") {
				return false
			}
			if s.Solution.Na <= 0 {
				s.Trace.Warnf("the tanmix07 correction needs sodium")
				return false
			}
			switch {
			case s.Hybridization == duplex.DNADNA, s.Hybridization == duplex.RNARNA, s.Hybridization.IsModifiedRNA():
			default:
				s.Trace.Warnf("the tanmix07 correction is established for dnadna and rnarna duplexes; got %s", s.Hybridization)
			}
			return true
		},
		entropy: func(s *State) float64 {
			na, mg, n := s.Solution.Na, s.Solution.FreeMg(), s.length()
			lnNa := math.Log(na)
			x1 := na / (na + (8.1-32.4/n)*(5.2-lnNa)*mg)
			x2 := 1 - x1
			var g1, g2 float64
			switch {
			case s.Hybridization == duplex.RNARNA, s.Hybridization.IsModifiedRNA():
				g1, g2 = tanSodiumStack(na, n, 0.075, 0.018), tanMg07(mg, n)
			case s.Hybridization == duplex.DNADNA:
				g1, g2 = tanSodiumStack(na, n, 0.07, 0.013), tanMg06(mg, n)
			}
			g12 := -0.6 * x1 * x2 * lnNa * math.Log((1/x1-1)*na) / n
			return -3.22 * ((n-1)*(x1*g1+x2*g2) + g12)
		},
	},
}
