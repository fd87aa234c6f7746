package correction

import (
	"math"

	"tmcalc/core/duplex"
	"tmcalc/core/thermo"
)

func needSodium(s *State, name string) bool {
	if s.NaEq <= 0 {
		s.Trace.Warnf("the %s correction needs a strictly positive sodium (equivalent) concentration", name)
		return false
	}
	return true
}

// dnaSodium is the applicability of the DNA sodium corrections: a positive
// sodium equivalent, optionally within [lo, hi].
func dnaSodium(name string, lo, hi float64) func(*State) bool {
	return func(s *State) bool {
		if !needSodium(s, name) {
			return false
		}
		if hi > 0 {
			warnOutside(s, name, "sodium concentrations", s.NaEq, lo, hi)
		}
		expect(s, name, duplex.DNADNA)
		return true
	}
}

// tanSodiumStack is the per-stack free energy term of Tan and Chen for
// monovalent ions, g1 = a1 + b1/N with a1 = −ka·ln Na + 0.012·ln²Na and
// b1 = kb·ln²Na.
func tanSodiumStack(na float64, n, ka, kb float64) float64 {
	ln := math.Log(na)
	a := -ka*ln + 0.012*ln*ln
	b := kb * ln * ln
	return a + b/n
}

// tanEntropy is ΔS = −3.22·(N−1)·g.
func tanEntropy(s *State, g float64) float64 {
	return -3.22 * (s.length() - 1) * g
}

var sodiumCorrections = []*Correction{
	{
		Name: "ahs01", Title: "Ahsen et al. (2001)", Domain: Entropy,
		Formula:    "ΔS(Na) = ΔS(1M) + 0.847·(N−1)·log10(Na)",
		applicable: dnaSodium("ahs01", 0, 0),
		entropy: func(s *State) float64 {
			return 0.847 * (s.length() - 1) * math.Log10(s.NaEq)
		},
	},
	{
		Name: "kam71", Title: "Frank-Kamenetskii (1971)", Domain: Temperature,
		Formula:    "Tm(Na) = Tm(1M) + (7.95 − 3.06·fGC)·ln(Na)",
		applicable: dnaSodium("kam71", 0.069, 1.02),
		tm: func(s *State) float64 {
			return s.Result.Tm + (7.95-3.06*s.fgc())*math.Log(s.NaEq)
		},
	},
	{
		Name: "marschdot", Title: "Marmur, Schildkraut and Doty (1962, 1998)", Domain: Temperature,
		Formula:    "Tm(Na) = Tm(1M) + 16.6·log10(Na)",
		applicable: dnaSodium("marschdot", 0.01, 0.2),
		tm: func(s *State) float64 {
			return s.Result.Tm + 16.6*math.Log10(s.NaEq)
		},
	},
	{
		Name: "owc1904", Title: "Owczarzy et al. (2004), eq. 19", Domain: Temperature,
		Formula:    "Tm(Na) = Tm(1M) + (−3.22·fGC + 6.39)·ln(Na)",
		applicable: dnaSodium("owc1904", 0, 0),
		tm: func(s *State) float64 {
			return s.Result.Tm + (-3.22*s.fgc()+6.39)*math.Log(s.NaEq)
		},
	},
	{
		Name: "owc2004", Title: "Owczarzy et al. (2004), eq. 20", Domain: Temperature,
		Formula:    "1/Tm(Na) = 1/Tm(1M) + (3.85·fGC − 6.18)·1e-5·ln(Na)",
		applicable: dnaSodium("owc2004", 0, 0),
		tm: func(s *State) float64 {
			return inverse(s.Result.Tm, (3.85*s.fgc()-6.18)*1e-5*math.Log(s.NaEq))
		},
	},
	{
		Name: "owc2104", Title: "Owczarzy et al. (2004), eq. 21", Domain: Temperature,
		Formula:    "Tm(Na) = Tm(1M) + (−4.62·fGC + 4.52)·ln(Na) − 0.985·ln²(Na)",
		applicable: dnaSodium("owc2104", 0, 0),
		tm: func(s *State) float64 {
			ln := math.Log(s.NaEq)
			return s.Result.Tm + (-4.62*s.fgc()+4.52)*ln - 0.985*ln*ln
		},
	},
	{
		Name: "owc2204", Title: "Owczarzy et al. (2004), eq. 22", Domain: Temperature,
		Formula:    "1/Tm(Na) = 1/Tm(1M) + (4.29·fGC − 3.95)·1e-5·ln(Na) + 9.40e-6·ln²(Na)",
		applicable: dnaSodium("owc2204", 0, 0),
		tm: func(s *State) float64 {
			ln := math.Log(s.NaEq)
			return inverse(s.Result.Tm, (4.29*s.fgc()-3.95)*1e-5*ln+9.40e-6*ln*ln)
		},
	},
	{
		Name: "san96", Title: "SantaLucia et al. (1996)", Domain: Temperature,
		Formula: "Tm(Na) = Tm(1M) + 12.5·log10(Na)",
		applicable: func(s *State) bool {
			if !needSodium(s, "san96") {
				return false
			}
			if s.NaEq < 0.1 {
				s.Trace.Warnf("the san96 correction is not reliable below 0.1 M sodium; got %g", s.NaEq)
			}
			expect(s, "san96", duplex.DNADNA)
			return true
		},
		tm: func(s *State) float64 {
			return s.Result.Tm + 12.5*math.Log10(s.NaEq)
		},
	},
	{
		Name: "san04", Title: "SantaLucia (1998), SantaLucia and Hicks (2004)", Domain: Entropy,
		Formula: "ΔS(Na) = ΔS(1M) + 0.368·(N−1)·ln(Na)",
		applicable: func(s *State) bool {
			if !dnaSodium("san04", 0.05, 1.1)(s) {
				return false
			}
			if s.Length > 16 {
				s.Trace.Warnf("the san04 correction begins to break down for duplexes longer than 16 bp")
			}
			return true
		},
		entropy: func(s *State) float64 {
			return 0.368 * (s.length() - 1) * math.Log(s.NaEq)
		},
	},
	{
		Name: "schlif", Title: "Schildkraut and Lifson (1965)", Domain: Temperature,
		Formula: "Tm(Na) = Tm(1M) + 16.6·log10(Na)",
		// The published range is 0.01 to 0.2 M; the check uses 0.07 to 0.12 M.
		applicable: dnaSodium("schlif", 0.07, 0.12),
		tm: func(s *State) float64 {
			return s.Result.Tm + 16.6*math.Log10(s.NaEq)
		},
	},
	{
		Name: "tanna06", Title: "Tan and Chen (2006)", Domain: Entropy,
		Formula:    "ΔS(Na) = ΔS(1M) − 3.22·(N−1)·g1, g1 = −0.07·ln(Na) + 0.012·ln²(Na) + 0.013·ln²(Na)/N",
		applicable: dnaSodium("tanna06", 0.001, 1),
		entropy: func(s *State) float64 {
			return tanEntropy(s, tanSodiumStack(s.NaEq, s.length(), 0.07, 0.013))
		},
	},
	{
		Name: "tanna07", Title: "Tan and Chen (2007)", Domain: Entropy,
		Formula: "ΔS(Na) = ΔS(1M) − 3.22·(N−1)·g1, g1 = −0.075·ln(Na) + 0.012·ln²(Na) + 0.018·ln²(Na)/N",
		applicable: func(s *State) bool {
			if !needSodium(s, "tanna07") {
				return false
			}
			// As published: the condition cannot hold.
			if s.NaEq < 0.003 && s.NaEq > 1 {
				s.Trace.Warnf("the tanna07 correction is reliable for sodium between 0.003 and 1 M")
			}
			expect(s, "tanna07", duplex.RNARNA)
			return true
		},
		entropy: func(s *State) float64 {
			return tanEntropy(s, tanSodiumStack(s.NaEq, s.length(), 0.075, 0.018))
		},
	},
	{
		Name: "wet91", Title: "Wetmur (1991)", Domain: Temperature,
		Formula:    "Tm(Na) = Tm(1M) + 16.6·log10(Na/(1 + 0.7·Na)) + 3.83",
		applicable: func(s *State) bool { return needSodium(s, "wet91") },
		tm: func(s *State) float64 {
			return s.Result.Tm + 16.6*math.Log10(s.NaEq/(1+0.7*s.NaEq)) + 3.83
		},
	},
}

// inverse applies 1/Tm' = 1/(Tm + 273.15) + term and returns Tm' in °C.
func inverse(tm, term float64) float64 {
	return 1/(1/(tm+thermo.Kelvin)+term) - thermo.Kelvin
}
