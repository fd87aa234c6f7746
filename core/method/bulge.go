package method

import (
	"math"
	"strconv"

	"tmcalc/core/duplex"
	"tmcalc/core/params"
	"tmcalc/core/thermo"
)

func santaluciaBulge(p *params.Probe, d *duplex.Duplex, w1, w2 int) increment {
	var inc increment
	n := w2 - w1 - 1
	if v, ok := p.Opt(params.BulgeSize(n)); ok {
		inc.add(thermo.Thermodynamics{Entropy: v.Entropy})
	} else {
		inc.add(extrapolatedLoop(p.Need(params.BulgeSize(30)), n, 30))
	}
	if k := d.CountTerminal("A", "T", w1, w2); k > 0 {
		if v, ok := p.Opt(params.Closure("A", "T")); ok {
			inc.add(v.Scale(float64(k)))
		}
	}
	return inc
}

func newSantalucia04LongBulge(t *params.Table) Strategy {
	eval := func(p *params.Probe, d *duplex.Duplex, start, end int) increment {
		d = d.Equivalent(duplex.DNA)
		w1, w2 := d.Widen(start, end)
		return santaluciaBulge(p, d, w1, w2)
	}
	return &model{name: "san04", table: t, eval: eval, applicable: dnaOnly("san04")}
}

// newSantalucia04SingleBulge adds the stack formed across the bulge by its
// two closing pairs.
func newSantalucia04SingleBulge(t *params.Table) Strategy {
	eval := func(p *params.Probe, d *duplex.Duplex, start, end int) increment {
		d = d.Equivalent(duplex.DNA)
		w1, w2 := d.Widen(start, end)
		inc := santaluciaBulge(p, d, w1, w2)
		inc.add(p.Need(params.NN(d.SingleBulgeNeighbors(w1))))
		return inc
	}
	return &model{name: "san04", table: t, eval: eval, applicable: dnaOnly("san04")}
}

func turnerBulge(p *params.Probe, d *duplex.Duplex, w1, w2 int) increment {
	var inc increment
	n := w2 - w1 - 1
	if v, ok := p.Opt(params.BulgeInitiation(strconv.Itoa(n))); ok {
		inc.add(v)
	} else {
		v := p.Need(params.BulgeInitiation(">6"))
		v.Entropy -= turnerLoopExtension * math.Log(float64(n)/6) / (thermo.Kelvin + 37)
		inc.add(v)
	}
	return inc
}

func newTurner06LongBulge(t *params.Table) Strategy {
	eval := func(p *params.Probe, d *duplex.Duplex, start, end int) increment {
		d = d.Equivalent(duplex.RNA)
		w1, w2 := d.Widen(start, end)
		inc := turnerBulge(p, d, w1, w2)
		inc.add(closures(p, d, w1, w2))
		return inc
	}
	return &model{name: "tur06", table: t, eval: eval, applicable: rnaOnly("tur06")}
}

// newTurner06SingleBulge has no closure penalty; the stack across the bulge
// comes from the wobble table when a closing pair is G·U.
func newTurner06SingleBulge(t *params.Table) Strategy {
	eval := func(p *params.Probe, d *duplex.Duplex, start, end int) increment {
		d = d.Equivalent(duplex.RNA)
		w1, w2 := d.Widen(start, end)
		inc := turnerBulge(p, d, w1, w2)
		top, bottom := d.SingleBulgeNeighbors(w1)
		if d.Pair(w1).Is("G", "U") || d.Pair(w1+2).Is("G", "U") {
			inc.add(p.Need(params.Mismatch(top, bottom)))
		} else {
			inc.add(p.Need(params.NN(top, bottom)))
		}
		return inc
	}
	return &model{name: "tur06", table: t, eval: eval, applicable: rnaOnly("tur06")}
}

// globalBulge reads the whole bulge with its closing pairs as one entry.
func globalBulge(alpha duplex.Alphabet) evalFunc {
	return func(p *params.Probe, d *duplex.Duplex, start, end int) increment {
		d = d.Equivalent(alpha)
		w1, w2 := d.Widen(start, end)
		var inc increment
		inc.add(p.Need(params.SingleBulge(d.Top(w1, w2), d.Bottom(w1, w2))))
		return inc
	}
}

func newTanaka04SingleBulge(t *params.Table) Strategy {
	return &model{name: "tan04", table: t, eval: globalBulge(duplex.DNA), applicable: dnaOnly("tan04")}
}

func newSerra07SingleBulge(t *params.Table) Strategy {
	return &model{name: "ser07", table: t, eval: globalBulge(duplex.RNA), applicable: rnaOnly("ser07")}
}
