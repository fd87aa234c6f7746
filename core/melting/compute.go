// core/melting/compute.go
// Compute drives one run:
//
//	NewEnvironment → Mode
//	  NN:     Segments → CheckApplicable → accumulate → initiation → Tm → ion/agents
//	  approx: formula → agents
//
// Nothing is cached between runs; a Report owns everything it points to.

package melting

import (
	"fmt"

	"tmcalc/core/approx"
	"tmcalc/core/correction"
	"tmcalc/core/duplex"
	"tmcalc/core/method"
	"tmcalc/core/motif"
	"tmcalc/core/params"
	"tmcalc/core/thermo"
	"tmcalc/core/trace"
)

// Segment is one classified motif range [Start, End].
type Segment struct {
	Start    int             `json:"start"`
	End      int             `json:"end"`
	Kind     motif.Kind      `json:"-"`
	Option   string          `json:"kind"`
	Method   string          `json:"method"`
	Strategy method.Strategy `json:"-"`
}

// Report is the outcome of a successful run.
type Report struct {
	Sequence          string               `json:"sequence"`
	Complementary     string               `json:"complementary"`
	Hybridization     duplex.Hybridization `json:"hybridization"`
	SelfComplementary bool                 `json:"self_complementary"`
	Result            thermo.Result        `json:"result"`
	Mode              Mode                 `json:"mode"`
	Segments          []Segment            `json:"segments,omitempty"`
	Corrections       []correction.Applied `json:"corrections,omitempty"`
	Trace             *trace.Trace         `json:"-"`
}

// Engine binds a model registry to a table loader. It holds no run state
// and is safe for concurrent use.
type Engine struct {
	Registry *method.Registry
	Loader   *params.Loader
}

// NewEngine uses the built-in models and the tables of dataDir (may be
// empty) over the embedded ones.
func NewEngine(dataDir string) *Engine {
	return &Engine{Registry: method.Default(), Loader: params.NewLoader(dataDir)}
}

// Compute is NewEngine(o.DataDir).Compute(o, tr).
func Compute(o Options, tr *trace.Trace) (*Report, error) {
	return NewEngine(o.DataDir).Compute(o, tr)
}

// Compute runs one computation. tr may be nil.
func (e *Engine) Compute(o Options, tr *trace.Trace) (*Report, error) {
	env, err := NewEnvironment(o, tr)
	if err != nil {
		return nil, err
	}
	rep := &Report{
		Sequence:          env.Duplex.Sequence(),
		Complementary:     env.Duplex.Complementary(),
		Hybridization:     env.Hybridization,
		SelfComplementary: env.SelfComplementary,
		Mode:              env.Mode(),
		Trace:             tr,
	}
	tr.Message("mode", "mode", string(rep.Mode))

	if rep.Mode == ModeApprox {
		rep.Corrections, err = e.approximate(env)
	} else {
		rep.Segments, rep.Corrections, err = e.nearestNeighbor(env)
	}
	if err != nil {
		return nil, err
	}
	rep.Result = *env.Result
	tr.Message("result",
		"enthalpy", rep.Result.Enthalpy,
		"entropy", rep.Result.Entropy,
		"tm", rep.Result.Tm)
	return rep, nil
}

// Segments scans the duplex left to right. The ranges are contiguous and
// cover every position.
func Segments(env *Environment, res *method.Resolver) ([]Segment, error) {
	d := env.Duplex
	var segs []Segment
	for pos := 0; pos < d.Len(); {
		start, end := motif.NextRange(d, pos, env.SelfComplementary)
		kind, err := motif.Classify(d, start, end, env.SelfComplementary)
		if err != nil {
			return nil, err
		}
		s, err := res.Resolve(kind)
		if err != nil {
			return nil, err
		}
		segs = append(segs, Segment{
			Start:    start,
			End:      end,
			Kind:     kind,
			Option:   kind.Option(),
			Method:   s.Name(),
			Strategy: s,
		})
		pos = end + 1
	}
	return segs, nil
}

// CheckApplicable asks every segment's strategy for its missing parameters
// and its applicability, and aggregates every failure. nn, when not nil, is
// the Watson-Crick strategy whose helix initiation the run will add; its
// initiation keys are checked too.
func CheckApplicable(env *Environment, segs []Segment, nn method.Strategy) error {
	var (
		reasons []string
		causes  []error
	)
	fail := func(err error) {
		reasons = append(reasons, err.Error())
		causes = append(causes, err)
	}
	n := env.Duplex.Len()
	if n >= env.Options.Threshold {
		env.Trace.Warnf("the nearest-neighbor model was established for duplexes shorter than %d bp", env.Options.Threshold)
		if env.Options.Mode == ModeDefault && n > env.Options.Threshold {
			fail(fmt.Errorf("the duplex (%d bp) is longer than the threshold %d", n, env.Options.Threshold))
		}
	}
	if env.SelfComplementary && env.Factor != 1 {
		fail(fmt.Errorf("a self-complementary duplex needs factor 1; got %d", env.Factor))
	}
	ctx := env.context()
	for _, s := range segs {
		if missing := s.Strategy.MissingParameters(env.Duplex, s.Start, s.End); len(missing) > 0 {
			fail(&thermo.MissingParameterError{Model: s.Option + " " + s.Method, Keys: missing})
		}
		if !s.Strategy.IsApplicable(ctx, s.Start, s.End) {
			fail(fmt.Errorf("%s model %s does not apply to positions %d-%d of %s",
				s.Option, s.Method, s.Start+1, s.End+1, env.Duplex))
		}
	}
	if ini, ok := nn.(method.Initiator); ok {
		if missing := ini.MissingInitiation(ctx); len(missing) > 0 {
			fail(&thermo.MissingParameterError{Model: motif.CrickPair.Option() + " " + nn.Name(), Keys: missing})
		}
	}
	if len(reasons) == 0 {
		return nil
	}
	return &thermo.MethodNotApplicableError{Reasons: reasons, Causes: causes}
}

// hairpinRepeats is the CNG repeat count above which a CNG duplex melts as
// a hairpin.
const hairpinRepeats = 4

func (e *Engine) nearestNeighbor(env *Environment) ([]Segment, []correction.Applied, error) {
	res := e.Registry.NewResolver(e.Loader, env.Options.Methods, env.Trace)
	segs, err := Segments(env, res)
	if err != nil {
		return nil, nil, err
	}
	// A CNG repeat carries its own initiation.
	var nn method.Strategy
	if !hasKind(segs, motif.CNGRepeat) {
		if nn, err = res.Resolve(motif.CrickPair); err != nil {
			return nil, nil, err
		}
	}
	if err := CheckApplicable(env, segs, nn); err != nil {
		return nil, nil, err
	}

	cng := -1
	for _, s := range segs {
		if err := s.Strategy.Compute(env.Duplex, s.Start, s.End, env.Result); err != nil {
			return nil, nil, fmt.Errorf("%s %s: %w", s.Option, s.Method, err)
		}
		env.Trace.Message("motif",
			"kind", s.Option,
			"method", s.Method,
			"positions", fmt.Sprintf("%d-%d", s.Start+1, s.End+1),
			"enthalpy", env.Result.Enthalpy,
			"entropy", env.Result.Entropy)
		if s.Kind == motif.CNGRepeat {
			cng = (s.End - s.Start - 1) / 3
		}
	}

	if nn != nil {
		if err := initiate(env, nn); err != nil {
			return nil, nil, err
		}
	}

	pipeline := env.Options.Corrections
	state := env.correctionState()
	if cng > hairpinRepeats {
		tm, err := thermo.HairpinTemperature(env.Result.Enthalpy, env.Result.Entropy)
		if err != nil {
			return nil, nil, err
		}
		env.Result.Tm = tm
		env.Trace.Message("hairpin", "repeats", cng, "tm", tm)
		applied, err := pipeline.ApplyAgents(state)
		return segs, applied, err
	}

	tm, err := thermo.MeltingTemperature(env.Result.Enthalpy, env.Result.Entropy, env.Options.OligoConc, env.Factor)
	if err != nil {
		return nil, nil, err
	}
	env.Result.Tm = tm
	applied, err := pipeline.Apply(state)
	if err != nil {
		return nil, nil, err
	}
	return segs, applied, nil
}

func hasKind(segs []Segment, k motif.Kind) bool {
	for _, s := range segs {
		if s.Kind == k {
			return true
		}
	}
	return false
}

func initiate(env *Environment, nn method.Strategy) error {
	ini, ok := nn.(method.Initiator)
	if !ok {
		return &thermo.NoMethodError{Option: motif.CrickPair.Option(), Method: nn.Name(), Msg: "model has no helix initiation"}
	}
	t, err := ini.Initiation(env.context())
	if err != nil {
		return err
	}
	env.Result.Add(t)
	env.Trace.Message("initiation", "method", nn.Name(), "enthalpy", t.Enthalpy, "entropy", t.Entropy)
	return nil
}

func (e *Engine) approximate(env *Environment) ([]correction.Applied, error) {
	name := env.Options.Approx
	if name == "" {
		return nil, &thermo.NoMethodError{Option: "am", Msg: fmt.Sprintf("no approximative formula for %s duplexes", env.Hybridization)}
	}
	d := env.Duplex
	r, err := approx.Compute(name, approx.Input{
		Hybridization:   env.Hybridization,
		Length:          d.Len(),
		PercentGC:       d.PercentGC(),
		PercentMismatch: d.PercentMismatching(),
		Solution:        env.Options.Solution,
		NaEq:            env.Options.Corrections.NaEqMethod(),
		Threshold:       env.Options.Threshold,
		Default:         env.Options.Mode == ModeDefault,
		Trace:           env.Trace,
	})
	if err != nil {
		return nil, err
	}
	*env.Result = *r
	return env.Options.Corrections.ApplyAgents(env.correctionState())
}
