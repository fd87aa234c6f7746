package method

import (
	"math"
	"strconv"

	"tmcalc/core/duplex"
	"tmcalc/core/params"
	"tmcalc/core/thermo"
)

// Loops longer than this keep their entropy out of the salt correction.
const saltDependentLoopMax = 4

// extrapolatedLoop scales a reference loop entropy to n nucleotides with the
// Jacobson-Stockmayer term 2.44·R·ln(n/ref).
func extrapolatedLoop(ref thermo.Thermodynamics, n, refSize int) thermo.Thermodynamics {
	return thermo.Thermodynamics{Entropy: ref.Entropy - 2.44*thermo.R*math.Log(float64(n)/float64(refSize))}
}

func santaluciaLoop(p *params.Probe, d *duplex.Duplex, start, end int) increment {
	d = d.Equivalent(duplex.DNA)
	w1, w2 := d.Widen(start, end)
	var inc increment
	inc.add(p.Need(params.Mismatch(d.TopPair(w1), d.BottomPair(w1))))
	inc.add(p.Need(params.Mismatch(d.TopPair(w2-1), d.BottomPair(w2-1))))

	n := d.InternalLoopLength(w1, w2)
	long := n > saltDependentLoopMax
	if v, ok := p.Opt(params.InternalLoop(n)); ok {
		inc.loop(thermo.Thermodynamics{Entropy: v.Entropy}, long)
	} else {
		inc.loop(extrapolatedLoop(p.Need(params.InternalLoop(30)), n, 30), long)
	}
	if d.IsAsymmetricLoop(w1, w2) {
		inc.loop(p.Need(params.Asymmetry()), long)
	}
	return inc
}

func newSantalucia04Loop(t *params.Table) Strategy {
	return &model{
		name:  "san04",
		table: t,
		eval:  santaluciaLoop,
		applicable: func(c *Context, start, end int) bool {
			c.expect("san04", duplex.DNADNA)
			w1, w2 := c.Duplex.Widen(start, end)
			if c.Duplex.InternalLoopLength(w1, w2) == 2 {
				return c.reject("san04", "a two-nucleotide internal loop is a single mismatch")
			}
			c.Trace.Warnf("san04 internal loop parameters at positions %d to %d are not validated experimentally", start+1, end+1)
			return true
		},
	}
}

// turnerLoopExtension is ΔG(n) − ΔG(6), in cal/mol per ln(n/6), for loops
// longer than the tabulated initiations.
const turnerLoopExtension = 1080.0

func turnerLoop(p *params.Probe, d *duplex.Duplex, start, end int) increment {
	d = d.Equivalent(duplex.RNA)
	w1, w2 := d.Widen(start, end)
	var inc increment
	n := d.InternalLoopLength(w1, w2)
	long := n > saltDependentLoopMax

	if v, ok := p.Opt(params.LoopInitiation(strconv.Itoa(n))); ok {
		inc.loop(v, long)
	} else {
		v := p.Need(params.LoopInitiation(">6"))
		v.Entropy -= turnerLoopExtension * math.Log(float64(n)/6) / (thermo.Kelvin + 37)
		inc.loop(v, long)
	}
	inc.add(closures(p, d, w1, w2))

	top, bottom := d.LoopSizes(w1, w2)
	if d.IsAsymmetricLoop(w1, w2) {
		inc.loop(p.Need(params.Asymmetry()).Scale(float64(abs(top-bottom))), long)
	}

	// 1×n loops with n > 2 get no first-mismatch bonus.
	if min(top, bottom) == 1 && max(top, bottom) > 2 {
		return inc
	}
	loopType := d.InternalLoopType(w1, w2)
	a, b, err := d.LoopFirstMismatch(w1)
	if err != nil {
		p.Fail(err)
		return inc
	}
	first := d.Pair(w1 + 1)
	if first.IsStrictly("G", "G") || first.IsStrictly("U", "U") {
		a, b = first.Top, first.Bottom
	}
	if v, ok := p.Opt(params.FirstMismatch(a, b, loopType)); ok {
		inc.add(v)
	}
	return inc
}

func newTurner06Loop(t *params.Table) Strategy {
	return &model{
		name:  "tur06",
		table: t,
		eval:  turnerLoop,
		applicable: func(c *Context, start, end int) bool {
			c.expect("tur06", duplex.RNARNA)
			w1, w2 := c.Duplex.Widen(start, end)
			top, bottom := c.Duplex.LoopSizes(w1, w2)
			if top == 3 && bottom == 3 && c.Duplex.Pair(w1+2).Is("A", "G") {
				return c.reject("tur06", "3x3 loops with a middle G·A pair are not covered")
			}
			return true
		},
	}
}

func znoskoLoop(p *params.Probe, d *duplex.Duplex, start, end int) increment {
	d = d.Equivalent(duplex.RNA)
	w1, w2 := d.Widen(start, end)
	var inc increment
	inc.add(p.Need(params.LoopInitiationAny()))
	if d.Pair(w1 + 1).Is("G", "A") {
		if v, ok := p.Opt(params.FirstMismatch("A", "G_not_RA/YG", "1x2")); ok {
			inc.add(v)
		}
	} else {
		a, b, err := d.LoopFirstMismatch(w1)
		if err != nil {
			p.Fail(err)
			return inc
		}
		if v, ok := p.Opt(params.FirstMismatch(a, b, "1x2")); ok {
			inc.add(v)
		}
	}
	inc.add(closures(p, d, w1, w2))
	return inc
}

func newZnosko07Loop(t *params.Table) Strategy {
	return &model{
		name:  "zno07",
		table: t,
		eval:  znoskoLoop,
		applicable: func(c *Context, start, end int) bool {
			c.expect("zno07", duplex.RNARNA)
			w1, w2 := c.Duplex.Widen(start, end)
			if lt := c.Duplex.InternalLoopType(w1, w2); lt != "1x2" && lt != "2x1" {
				return c.reject("zno07", "only 1x2 internal loops are covered; got %s", lt)
			}
			return true
		},
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
