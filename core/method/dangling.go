package method

import (
	"strings"

	"tmcalc/core/duplex"
	"tmcalc/core/params"
	"tmcalc/core/thermo"
)

// danglingStack looks the widened range up as one oriented dangling entry.
func danglingStack(alpha duplex.Alphabet) evalFunc {
	return func(p *params.Probe, d *duplex.Duplex, start, end int) increment {
		d = d.Equivalent(alpha)
		w1, w2 := d.Widen(start, end)
		var inc increment
		inc.add(p.NeedKey(params.Dangling(d.Top(w1, w2), d.Bottom(w1, w2))))
		return inc
	}
}

func atDuplexEnd(name string) applicableFunc {
	return func(c *Context, start, end int) bool {
		w1, w2 := c.Duplex.Widen(start, end)
		if w1 != 0 && w2 != c.Duplex.Len()-1 {
			return c.reject(name, "positions %d to %d are not at a duplex end", start+1, end+1)
		}
		return true
	}
}

func newBommarito00(t *params.Table) Strategy {
	return &model{name: "bom00", table: t, eval: danglingStack(duplex.DNA), applicable: func(c *Context, start, end int) bool {
		c.expect("bom00", duplex.DNADNA)
		return atDuplexEnd("bom00")(c, start, end)
	}}
}

func newSerra08(t *params.Table) Strategy {
	return &model{name: "ser08", table: t, eval: danglingStack(duplex.RNA), applicable: func(c *Context, start, end int) bool {
		c.expect("ser08", duplex.RNARNA)
		return atDuplexEnd("ser08")(c, start, end)
	}}
}

// secondTerm computes the contribution of the outer dangling base. gapped
// is the strand with the gaps; gappedTop tells which strand it is.
type secondTerm func(p *params.Probe, gapped, other string, gappedTop bool) thermo.Thermodynamics

// doubleDangling is the inner dangling base, read as a single dangling end,
// plus the outer base through second.
func doubleDangling(second secondTerm) evalFunc {
	return func(p *params.Probe, d *duplex.Duplex, start, end int) increment {
		d = d.Equivalent(duplex.RNA)
		w1, w2 := d.Widen(start, end)
		top, bottom := d.Top(w1, w2), d.Bottom(w1, w2)
		gapped, other, gappedTop := bottom, top, false
		if strings.Contains(top, duplex.Gap) {
			gapped, other, gappedTop = top, bottom, true
		}
		i, j := w1, w2-1
		if strings.HasPrefix(gapped, duplex.Gap) {
			i, j = w1+1, w2
		}
		var inc increment
		inc.add(p.NeedKey(params.Dangling(d.Top(i, j), d.Bottom(i, j))))
		if len(other) < 3 {
			p.Fail(thermo.Sequencef("double dangling end %s/%s needs a closing pair", top, bottom))
			return inc
		}
		inc.add(second(p, gapped, other, gappedTop))
		return inc
	}
}

// serra05Second keys the outer base by the purine/pyrimidine class of the
// facing strand.
func serra05Second(p *params.Probe, gapped, other string, gappedTop bool) thermo.Thermodynamics {
	full, err := duplex.PyrPur(other)
	if err != nil {
		p.Fail(err)
		return thermo.Thermodynamics{}
	}
	comp := "Y"
	if full[1] != 'Y' {
		if strings.HasPrefix(gapped, duplex.Gap) {
			comp = full[:2]
		} else {
			comp = full[1:]
		}
	}
	if gappedTop {
		sense, err := duplex.DanglingSense(gapped, full)
		if err != nil {
			p.Fail(err)
			return thermo.Thermodynamics{}
		}
		return p.Need(params.SecondDangling("", comp, sense))
	}
	sense, err := duplex.DanglingSense(full, gapped)
	if err != nil {
		p.Fail(err)
		return thermo.Thermodynamics{}
	}
	return p.Need(params.SecondDangling(comp, "", sense))
}

// serra06Second keys the outer base by the purine/pyrimidine pattern of
// both strands.
func serra06Second(p *params.Probe, gapped, other string, gappedTop bool) thermo.Thermodynamics {
	seq, err := duplex.PyrPur(gapped)
	if err != nil {
		p.Fail(err)
		return thermo.Thermodynamics{}
	}
	comp, err := duplex.PyrPur(other)
	if err != nil {
		p.Fail(err)
		return thermo.Thermodynamics{}
	}
	if seq[0] == '-' {
		if comp[1] == 'Y' || comp[2] == 'Y' {
			comp = comp[1:3]
		}
	} else if comp[1] == 'Y' || comp[0] == 'Y' {
		comp = comp[:2]
	}
	if gappedTop {
		return p.NeedKey(params.Dangling(seq, comp))
	}
	return p.NeedKey(params.Dangling(comp, seq))
}

func doubleDanglingApplicable(name string) applicableFunc {
	return func(c *Context, start, end int) bool {
		c.expect(name, duplex.RNARNA)
		w1, w2 := c.Duplex.Widen(start, end)
		sense, err := duplex.DanglingSense(c.Duplex.Top(w1, w2), c.Duplex.Bottom(w1, w2))
		if err != nil {
			return c.reject(name, "%v", err)
		}
		if sense == "5" {
			return c.reject(name, "5' double dangling ends are not covered")
		}
		return true
	}
}

func newSerra05(t *params.Table) Strategy {
	return &model{name: "ser05", table: t, eval: doubleDangling(serra05Second), applicable: doubleDanglingApplicable("ser05")}
}

func newSerra06(t *params.Table) Strategy {
	return &model{name: "ser06", table: t, eval: doubleDangling(serra06Second), applicable: doubleDanglingApplicable("ser06")}
}

// polyADangling serves single, double and long dangling ends made only of
// adenines.
func polyADangling(name string, alpha duplex.Alphabet, t *params.Table) Strategy {
	return &model{
		name:  name,
		table: t,
		eval:  danglingStack(alpha),
		applicable: func(c *Context, start, end int) bool {
			if !c.SelfComplementary {
				c.Trace.Warnf("%s is established for self-complementary duplexes", name)
			}
			for i := start; i <= end; i++ {
				if !c.Duplex.Pair(i).Is("A", duplex.Gap) {
					return c.reject(name, "only poly-A dangling ends are covered; got %s/%s", c.Duplex.Top(start, end), c.Duplex.Bottom(start, end))
				}
			}
			return true
		},
	}
}

func newSugimoto02DNA(t *params.Table) Strategy { return polyADangling("sugdna02", duplex.DNA, t) }

func newSugimoto02RNA(t *params.Table) Strategy { return polyADangling("sugrna02", duplex.RNA, t) }
