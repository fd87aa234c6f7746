package method

import (
	"math"

	"tmcalc/core/duplex"
	"tmcalc/core/params"
	"tmcalc/core/thermo"
)

// crick is a Watson-Crick nearest-neighbor model. The motif term is the
// doublet sum; the helix initiation is computed once per duplex.
type crick struct {
	model
	initiate func(p *params.Probe, c *Context) thermo.Thermodynamics
}

func (m *crick) Initiation(c *Context) (thermo.Thermodynamics, error) {
	p := m.table.Probe()
	t := m.initiate(p, c)
	return t, p.Err(m.name)
}

func (m *crick) MissingInitiation(c *Context) []string {
	p := m.table.Probe()
	m.initiate(p, c)
	return p.Missing()
}

func neighborSum(alpha duplex.Alphabet, key func(top, bottom string) params.Key) evalFunc {
	return func(p *params.Probe, d *duplex.Duplex, start, end int) increment {
		var inc increment
		inc.add(stackSum(p, inAlphabet(alpha, d), start, end, key))
		return inc
	}
}

// plainInitiation is the optional "initiation" entry plus the symmetry
// correction of a self-complementary duplex.
func plainInitiation(p *params.Probe, c *Context) thermo.Thermodynamics {
	t, _ := p.Opt(params.Initiation(""))
	if c.SelfComplementary {
		t = t.Add(p.Need(params.Symmetry()))
	}
	return t
}

// terminalPairs counts a/b pairs at the two paired ends of the duplex.
func terminalPairs(p *params.Probe, d *duplex.Duplex, a, b string) int {
	start, end, err := d.TrimUnpaired()
	if err != nil {
		p.Fail(err)
		return 0
	}
	return d.CountTerminal(a, b, start, end)
}

// perTerminal adds key once per terminal a/b pair.
func perTerminal(alpha duplex.Alphabet, a, b string, key params.Key) func(*params.Probe, *Context) thermo.Thermodynamics {
	return func(p *params.Probe, c *Context) thermo.Thermodynamics {
		if n := terminalPairs(p, inAlphabet(alpha, c.Duplex), a, b); n > 0 {
			return p.Need(key).Scale(float64(n))
		}
		return thermo.Thermodynamics{}
	}
}

// decomposedInitiation charges every terminal pair by its kind.
func decomposedInitiation(p *params.Probe, c *Context) thermo.Thermodynamics {
	t := plainInitiation(p, c)
	d := c.Duplex.Equivalent(duplex.DNA)
	if n := terminalPairs(p, d, "A", "T"); n > 0 {
		t = t.Add(p.Need(params.Initiation("per_A/T")).Scale(float64(n)))
	}
	if n := terminalPairs(p, d, "G", "C"); n > 0 {
		t = t.Add(p.Need(params.Initiation("per_G/C")).Scale(float64(n)))
	}
	return t
}

// globalInitiation depends only on whether the duplex has any G·C pair.
func globalInitiation(p *params.Probe, c *Context) thermo.Thermodynamics {
	t := plainInitiation(p, c)
	if c.Duplex.HasGCPair() {
		return t.Add(p.Need(params.Initiation("one_GC_Pair")))
	}
	return t.Add(p.Need(params.Initiation("all_AT_pairs")))
}

// terminalTA counts 5'-TA ends: a T·A first pair or an A·T last pair.
func terminalTA(p *params.Probe, c *Context) thermo.Thermodynamics {
	d := c.Duplex.Equivalent(duplex.DNA)
	start, end, err := d.TrimUnpaired()
	if err != nil {
		p.Fail(err)
		return thermo.Thermodynamics{}
	}
	n := 0
	if d.Pair(start).IsStrictly("T", "A") {
		n++
	}
	if d.Pair(end).IsStrictly("A", "T") {
		n++
	}
	if n == 0 {
		return thermo.Thermodynamics{}
	}
	return p.Need(params.Terminal("5_T/A")).Scale(float64(n))
}

func sumOf(parts ...func(*params.Probe, *Context) thermo.Thermodynamics) func(*params.Probe, *Context) thermo.Thermodynamics {
	return func(p *params.Probe, c *Context) thermo.Thermodynamics {
		var t thermo.Thermodynamics
		for _, part := range parts {
			t = t.Add(part(p, c))
		}
		return t
	}
}

func dnaOnly(name string) applicableFunc {
	return func(c *Context, _, _ int) bool {
		c.expect(name, duplex.DNADNA)
		return true
	}
}

func rnaOnly(name string) applicableFunc {
	return func(c *Context, _, _ int) bool {
		c.expect(name, duplex.RNARNA)
		return true
	}
}

func newAllawi97(t *params.Table) Strategy {
	return &crick{
		model:    model{name: "all97", table: t, eval: neighborSum(duplex.DNA, params.NN), applicable: dnaOnly("all97")},
		initiate: decomposedInitiation,
	}
}

func newBreslauer86(t *params.Table) Strategy {
	return &crick{
		model:    model{name: "bre86", table: t, eval: neighborSum(duplex.DNA, params.NN), applicable: dnaOnly("bre86")},
		initiate: globalInitiation,
	}
}

func newFreier86(t *params.Table) Strategy {
	return &crick{
		model:    model{name: "fre86", table: t, eval: neighborSum(duplex.RNA, params.NN), applicable: rnaOnly("fre86")},
		initiate: plainInitiation,
	}
}

func newSantalucia04(t *params.Table) Strategy {
	return &crick{
		model:    model{name: "san04", table: t, eval: neighborSum(duplex.DNA, params.NN), applicable: dnaOnly("san04")},
		initiate: sumOf(plainInitiation, perTerminal(duplex.DNA, "A", "T", params.Terminal("per_A/T"))),
	}
}

func newSantalucia96(t *params.Table) Strategy {
	return &crick{
		model:    model{name: "san96", table: t, eval: neighborSum(duplex.DNA, params.NN), applicable: dnaOnly("san96")},
		initiate: sumOf(globalInitiation, terminalTA),
	}
}

func newSugimoto96(t *params.Table) Strategy {
	return &crick{
		model:    model{name: "sug96", table: t, eval: neighborSum(duplex.DNA, params.NN), applicable: dnaOnly("sug96")},
		initiate: globalInitiation,
	}
}

func newTanaka04(t *params.Table) Strategy {
	return &crick{
		model:    model{name: "tan04", table: t, eval: neighborSum(duplex.DNA, params.NN), applicable: dnaOnly("tan04")},
		initiate: sumOf(plainInitiation, perTerminal(duplex.DNA, "A", "T", params.Terminal("per_A/T"))),
	}
}

func newXia98(t *params.Table) Strategy {
	return &crick{
		model:    model{name: "xia98", table: t, eval: neighborSum(duplex.RNA, params.NN), applicable: rnaOnly("xia98")},
		initiate: sumOf(plainInitiation, perTerminal(duplex.RNA, "A", "U", params.Terminal("per_A/U"))),
	}
}

// newSugimoto95 keys the DNA/RNA hybrid stacks as "d<top>"/"r<bottom>".
func newSugimoto95(t *params.Table) Strategy {
	return &crick{
		model: model{
			name:  "sug95",
			table: t,
			eval:  neighborSum("", prefixed(params.NN, "d", "r")),
			applicable: func(c *Context, _, _ int) bool {
				if !c.Hybridization.IsHybrid() {
					c.Trace.Warnf("sug95 is established for DNA/RNA hybrids; got %s", c.Hybridization)
				}
				if c.SelfComplementary {
					return c.reject("sug95", "a hybrid duplex cannot be self-complementary")
				}
				return true
			},
		},
		initiate: plainInitiation,
	}
}

// entropyTurner06 scales the per-stack sodium term that brings the
// 2'-O-methyl RNA parameters, measured at 0.1 M Na, back to 1 M.
const entropyTurner06 = -0.368

func newTurner06(t *params.Table) Strategy {
	eval := func(p *params.Probe, d *duplex.Duplex, start, end int) increment {
		var inc increment
		inc.add(stackSum(p, d, start, end, prefixed(params.NN, "m", "")))
		inc.dep.Entropy += entropyTurner06 * float64(end-start) * math.Log(0.1)
		return inc
	}
	return &crick{
		model: model{
			name:  "tur06",
			table: t,
			eval:  eval,
			applicable: func(c *Context, _, _ int) bool {
				if !c.Hybridization.IsModifiedRNA() {
					return c.reject("tur06", "needs a 2'-O-methyl RNA/RNA duplex (mrnarna or rnamrna); got %s", c.Hybridization)
				}
				if c.SelfComplementary {
					return c.reject("tur06", "self-complementary duplexes are not covered")
				}
				return true
			},
		},
		initiate: sumOf(plainInitiation, perTerminal("", "A", "U", params.Terminal("per_A/U"))),
	}
}
