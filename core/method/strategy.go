// core/method/strategy.go
// Strategy is the per-motif thermodynamic model. Every model in this package
// is a value of the generic model type: a name, its merged parameter table,
// one evaluation function and an optional applicability predicate.
//
// The evaluation runs through a params.Probe, so the missing-parameter
// check and the computation share one code path.

package method

import (
	"fmt"
	"slices"
	"strings"

	"tmcalc/core/duplex"
	"tmcalc/core/params"
	"tmcalc/core/thermo"
	"tmcalc/core/trace"
)

// Context is the run state a strategy may consult when deciding whether it
// applies, and when computing the helix initiation.
type Context struct {
	Duplex            *duplex.Duplex
	Hybridization     duplex.Hybridization
	SelfComplementary bool
	Trace             *trace.Trace
}

// Strategy computes the increment of one motif range [start, end].
type Strategy interface {
	Name() string
	IsApplicable(ctx *Context, start, end int) bool
	MissingParameters(d *duplex.Duplex, start, end int) []string
	Compute(d *duplex.Duplex, start, end int, r *thermo.Result) error
}

// Initiator is implemented by Watson-Crick strategies. MissingInitiation
// lists the keys Initiation would fail on, without computing it.
type Initiator interface {
	Initiation(ctx *Context) (thermo.Thermodynamics, error)
	MissingInitiation(ctx *Context) []string
}

// expect warns when the hybridization is outside the set a model was
// established for. It never makes the model inapplicable.
func (c *Context) expect(model string, allowed ...duplex.Hybridization) {
	if slices.Contains(allowed, c.Hybridization) {
		return
	}
	names := make([]string, len(allowed))
	for i, h := range allowed {
		names[i] = string(h)
	}
	c.Trace.Warnf("%s is established for %s duplexes; got %s", model, strings.Join(names, " or "), c.Hybridization)
}

// reject records why a model does not apply and returns false.
func (c *Context) reject(model, format string, args ...any) bool {
	c.Trace.Warnf("%s: %s", model, fmt.Sprintf(format, args...))
	return false
}

// increment is the contribution of one motif. indep carries loop terms whose
// entropy must not be salt-corrected.
type increment struct {
	dep   thermo.Thermodynamics
	indep thermo.Thermodynamics
}

func (i *increment) add(t thermo.Thermodynamics) { i.dep = i.dep.Add(t) }

// loop adds a loop term, routing its entropy to the salt-independent part
// when saltIndependent is set.
func (i *increment) loop(t thermo.Thermodynamics, saltIndependent bool) {
	if !saltIndependent {
		i.add(t)
		return
	}
	i.dep.Enthalpy += t.Enthalpy
	i.indep.Entropy += t.Entropy
}

func (i *increment) merge(o increment) {
	i.dep = i.dep.Add(o.dep)
	i.indep = i.indep.Add(o.indep)
}

type evalFunc func(p *params.Probe, d *duplex.Duplex, start, end int) increment

type applicableFunc func(c *Context, start, end int) bool

type model struct {
	name       string
	table      *params.Table
	eval       evalFunc
	applicable applicableFunc
}

func (m *model) Name() string { return m.name }

func (m *model) IsApplicable(c *Context, start, end int) bool {
	if m.applicable == nil {
		return true
	}
	return m.applicable(c, start, end)
}

func (m *model) run(d *duplex.Duplex, start, end int) (increment, *params.Probe) {
	p := m.table.Probe()
	return m.eval(p, d, start, end), p
}

func (m *model) MissingParameters(d *duplex.Duplex, start, end int) []string {
	_, p := m.run(d, start, end)
	return p.Missing()
}

func (m *model) Compute(d *duplex.Duplex, start, end int, r *thermo.Result) error {
	inc, p := m.run(d, start, end)
	if err := p.Err(m.name); err != nil {
		return err
	}
	r.Add(inc.dep)
	if inc.indep != (thermo.Thermodynamics{}) {
		r.AddSaltIndependent(inc.indep)
	}
	return nil
}

// stackSum adds key(top doublet, bottom doublet) for every i in [from, to-1].
func stackSum(p *params.Probe, d *duplex.Duplex, from, to int, key func(top, bottom string) params.Key) thermo.Thermodynamics {
	var t thermo.Thermodynamics
	for i := from; i < to; i++ {
		t = t.Add(p.Need(key(d.TopPair(i), d.BottomPair(i))))
	}
	return t
}

// closures adds the per-pair A·U and G·U loop closure penalties of the
// closing pairs at i and j.
func closures(p *params.Probe, d *duplex.Duplex, i, j int) thermo.Thermodynamics {
	var t thermo.Thermodynamics
	if n := d.CountTerminal("A", "U", i, j); n > 0 {
		t = t.Add(p.Need(params.Closure("A", "U")).Scale(float64(n)))
	}
	if n := d.CountTerminal("G", "U", i, j); n > 0 {
		t = t.Add(p.Need(params.Closure("G", "U")).Scale(float64(n)))
	}
	return t
}

// prefixed tags the strands of a doublet key, as in "dAC"/"rUG".
func prefixed(key func(string, string) params.Key, top, bottom string) func(string, string) params.Key {
	return func(t, b string) params.Key { return key(top+t, bottom+b) }
}

func inAlphabet(alpha duplex.Alphabet, d *duplex.Duplex) *duplex.Duplex {
	if alpha == "" {
		return d
	}
	return d.Equivalent(alpha)
}
