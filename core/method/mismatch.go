package method

import (
	"tmcalc/core/duplex"
	"tmcalc/core/params"
)

// widenedStacks sums key over every doublet of the widened range.
func widenedStacks(alpha duplex.Alphabet, key func(top, bottom string) params.Key) evalFunc {
	return func(p *params.Probe, d *duplex.Duplex, start, end int) increment {
		d = inAlphabet(alpha, d)
		w1, w2 := d.Widen(start, end)
		var inc increment
		inc.add(stackSum(p, d, w1, w2, key))
		return inc
	}
}

// newAllawiSantaluciaPeyret serves single and tandem mismatches; the tandem
// table is merged with the selected single-mismatch table.
func newAllawiSantaluciaPeyret(t *params.Table) Strategy {
	return &model{name: "allsanpey", table: t, eval: widenedStacks(duplex.DNA, params.Mismatch), applicable: dnaOnly("allsanpey")}
}

func newWatkins11Mismatch(t *params.Table) Strategy {
	return &model{
		name:  "wat11",
		table: t,
		eval:  widenedStacks("", prefixed(params.Mismatch, "d", "r")),
		applicable: func(c *Context, _, _ int) bool {
			if !c.Hybridization.IsHybrid() {
				c.Trace.Warnf("wat11 is established for DNA/RNA hybrids; got %s", c.Hybridization)
			}
			return true
		},
	}
}

// znosko is the single mismatch as a mismatch-pair term plus the
// purine/pyrimidine context of the trimer and the loop closures.
func znosko(p *params.Probe, d *duplex.Duplex, start, end int) increment {
	d = d.Equivalent(duplex.RNA)
	w1, w2 := d.Widen(start, end)
	var inc increment
	mid := d.Pair(w1 + 1)
	if v, ok := p.Opt(params.MismatchParameter(mid.Top, mid.Bottom)); ok {
		inc.add(v)
	}
	top, err := duplex.PyrPur(d.Top(w1, w2))
	if err != nil {
		p.Fail(err)
		return inc
	}
	bottom, err := duplex.PyrPur(d.Bottom(w1, w2))
	if err != nil {
		p.Fail(err)
		return inc
	}
	if v, ok := p.Opt(params.Mismatch(top, bottom)); ok {
		inc.add(v)
	}
	inc.add(closures(p, d, w1, w2))
	return inc
}

func newZnosko07Mismatch(t *params.Table) Strategy {
	return &model{name: "zno07", table: t, eval: znosko, applicable: rnaOnly("zno07")}
}

func newZnosko08Mismatch(t *params.Table) Strategy {
	return &model{
		name:  "zno08",
		table: t,
		eval:  znosko,
		applicable: func(c *Context, start, end int) bool {
			c.expect("zno08", duplex.RNARNA)
			d := c.Duplex.Equivalent(duplex.RNA)
			w1, w2 := d.Widen(start, end)
			if d.CountTerminal("G", "U", w1, w2) == 0 {
				return c.reject("zno08", "needs a G·U pair next to the mismatch at position %d", start+1)
			}
			return true
		},
	}
}

func newTurner06Mismatch(t *params.Table) Strategy {
	eval := func(p *params.Probe, d *duplex.Duplex, start, end int) increment {
		d = d.Equivalent(duplex.RNA)
		w1, w2 := d.Widen(start, end)
		var inc increment
		inc.add(p.Need(params.LoopInitiation("2")))
		inc.add(closures(p, d, w1, w2))
		if d.Pair(w1 + 1).IsStrictly("G", "G") {
			inc.add(p.Need(params.FirstMismatch("G", "G", "1x1")))
			return inc
		}
		top, bottom, err := d.LoopFirstMismatch(w1)
		if err != nil {
			p.Fail(err)
			return inc
		}
		if top == "RU" && bottom == "YU" {
			inc.add(p.Need(params.FirstMismatch("RU", "YU", "1x1")))
		}
		return inc
	}
	return &model{name: "tur06", table: t, eval: eval, applicable: rnaOnly("tur06")}
}

// turnerTandem reads a symmetric tandem mismatch as one table entry. An
// asymmetric one is the mean of the two symmetric tandems built from each
// half, plus a sequence-dependent penalty.
func turnerTandem(p *params.Probe, d *duplex.Duplex, start, end int) increment {
	d = d.Equivalent(duplex.RNA)
	w1, w2 := d.Widen(start, end)
	var inc increment
	if d.IsSymmetric(w1, w2) {
		inc.add(p.Need(params.MismatchClosing(d.Top(w1+1, w2-1), d.Bottom(w1+1, w2-1), d.Pair(w1).String())))
	} else {
		closeLeft, left := d.Pair(w1), d.Pair(w1+1)
		right, closeRight := d.Pair(w2-1), d.Pair(w2)
		a := p.Need(params.MismatchClosing(left.Top+left.Bottom, left.Bottom+left.Top, closeLeft.String()))
		b := p.Need(params.MismatchClosing(right.Bottom+right.Top, right.Top+right.Bottom, closeRight.Bottom+"/"+closeRight.Top))
		inc.add(a.Add(b).Scale(0.5))
	}
	switch {
	case d.TandemGGPenalty(w1 + 1):
		inc.add(p.Need(params.Penalty("G/G_adjacent_AA_or_nonCanonicalPyrimidine")))
	case d.TandemDeltaPPenalty(w1 + 1):
		inc.add(p.Need(params.Penalty("AG_GA_UU_adjacent_UU_CU_CC_AA")))
	}
	return inc
}

func newTurner06Tandem(t *params.Table) Strategy {
	return &model{name: "tur06", table: t, eval: turnerTandem, applicable: rnaOnly("tur06")}
}
