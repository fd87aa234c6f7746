package melting

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tmcalc/core/correction"
	"tmcalc/core/duplex"
	"tmcalc/core/method"
	"tmcalc/core/motif"
	"tmcalc/core/params"
	"tmcalc/core/thermo"
	"tmcalc/core/trace"
)

func dnaOptions(seq string) Options {
	o := DefaultOptions(duplex.DNADNA)
	o.Sequence = seq
	o.OligoConc = 1e-4
	o.Solution = correction.Solution{Na: 1}
	return o
}

func engineFS(files map[string]string) *Engine {
	m := fstest.MapFS{}
	for name, body := range files {
		m[name] = &fstest.MapFile{Data: []byte(body)}
	}
	return &Engine{Registry: method.Default(), Loader: params.NewLoaderFS(m)}
}

func TestComputeWatsonCrickDuplex(t *testing.T) {
	tr := trace.New(nil)
	rep, err := Compute(dnaOptions("CGTTGA"), tr)
	require.NoError(t, err)

	// CG/GC + GT/CA + TT/AA + TG/AC + GA/CT, then per_G/C + per_A/T.
	h := -10600.0 - 8400 - 7900 - 8500 - 8200 + 2400
	s := -27.2 - 22.4 - 22.2 - 22.7 - 22.2 + 1.3
	want, err := thermo.MeltingTemperature(h, s, 1e-4, 4)
	require.NoError(t, err)

	assert.Equal(t, ModeNN, rep.Mode)
	assert.InDelta(t, h, rep.Result.Enthalpy, 1e-9)
	assert.InDelta(t, s, rep.Result.Entropy, 1e-9)
	assert.InDelta(t, want, rep.Result.Tm, 1e-9)
	require.Len(t, rep.Segments, 1)
	assert.Equal(t, motif.CrickPair, rep.Segments[0].Kind)
	assert.Equal(t, "all97", rep.Segments[0].Method)
	assert.Equal(t, []correction.Applied{{Family: correction.Ion, Method: "owc2204"}}, rep.Corrections)
	assert.NotEmpty(t, tr.Entries())
}

func TestComputeIsDeterministic(t *testing.T) {
	o := dnaOptions("CGTTGA")
	o.Solution = correction.Solution{Na: 0.05, Mg: 0.002, DMSO: 3}
	first, err := Compute(o, nil)
	require.NoError(t, err)
	second, err := Compute(o, nil)
	require.NoError(t, err)

	assert.Equal(t, first.Result, second.Result)
	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestSelfComplementaryUsesFactorOne(t *testing.T) {
	env, err := NewEnvironment(dnaOptions("GCATGC"), nil)
	require.NoError(t, err)
	assert.True(t, env.SelfComplementary)
	assert.Equal(t, 1, env.Factor)

	o := dnaOptions("GCATGC")
	o.Factor = 4
	_, err = Compute(o, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, thermo.ErrNotApplicable))
}

func TestEnvironmentArrangesRNADNA(t *testing.T) {
	o := DefaultOptions(duplex.RNADNA)
	o.Sequence = "GGACUC"
	o.OligoConc = 1e-4
	o.Solution = correction.Solution{Na: 1}
	env, err := NewEnvironment(o, nil)
	require.NoError(t, err)
	assert.Equal(t, duplex.DNARNA, env.Hybridization)
	assert.Equal(t, "GAGTCC", env.Duplex.Sequence())
	assert.Equal(t, "CUCAGG", env.Duplex.Complementary())
	assert.Equal(t, 4, env.Factor)
}

func TestSegmentsCoverTheDuplex(t *testing.T) {
	sel := method.Selection{}
	for _, k := range motif.Kinds() {
		name := DefaultMethod(duplex.DNADNA, k)
		if name == "" {
			name = DefaultMethod(duplex.RNARNA, k)
		}
		if k == motif.Wobble {
			name = "tur99"
		}
		sel[k] = name + ":stub"
	}
	e := engineFS(map[string]string{
		"stub.yaml": "model: stub\nsections:\n  neighbor:\n    \"AA/TT\": {enthalpy: 0, entropy: 0}\n",
	})
	d, err := duplex.New("AGCA-AGCATTGCGUC", "-CGCCCCGT--CGCAG")
	require.NoError(t, err)
	env := &Environment{Duplex: d, Hybridization: duplex.DNADNA, Options: Options{Methods: sel}}

	segs, err := Segments(env, e.Registry.NewResolver(e.Loader, sel, nil))
	require.NoError(t, err)
	require.NotEmpty(t, segs)
	assert.Equal(t, 0, segs[0].Start)
	assert.Equal(t, d.Len()-1, segs[len(segs)-1].End)
	for i := 1; i < len(segs); i++ {
		assert.Equal(t, segs[i-1].End+1, segs[i].Start, "contiguous at %d", i)
		assert.NotNil(t, segs[i].Strategy)
	}
}

func TestMissingParametersAreReportedBeforeCompute(t *testing.T) {
	e := engineFS(map[string]string{
		"mini.yaml": `model: mini
sections:
  neighbor:
    "CG/GC": {enthalpy: -10600, entropy: -27.2}
  initiation:
    "per_G/C": {enthalpy: 100, entropy: -2.8}
    "per_A/T": {enthalpy: 2300, entropy: 4.1}
`,
	})
	o := dnaOptions("CGTTGA")
	o.Methods = method.Selection{motif.CrickPair: "all97:mini"}
	_, err := e.Compute(o, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, thermo.ErrMissingParameter))
	assert.True(t, errors.Is(err, thermo.ErrNotApplicable))

	var mp *thermo.MissingParameterError
	require.True(t, errors.As(err, &mp))
	assert.Contains(t, mp.Keys, "neighborGT/CA")
}

func TestMissingInitiationIsReportedBeforeCompute(t *testing.T) {
	e := engineFS(map[string]string{
		"mini.yaml": `model: mini
sections:
  neighbor:
    "CG/GC": {enthalpy: -10600, entropy: -27.2}
    "GT/CA": {enthalpy: -8400, entropy: -22.4}
    "TT/AA": {enthalpy: -7900, entropy: -22.2}
    "TG/AC": {enthalpy: -8500, entropy: -22.7}
    "GA/CT": {enthalpy: -8200, entropy: -22.2}
`,
	})
	o := dnaOptions("CGTTGA")
	o.Methods = method.Selection{motif.CrickPair: "all97:mini"}
	_, err := e.Compute(o, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, thermo.ErrNotApplicable))
	assert.True(t, errors.Is(err, thermo.ErrMissingParameter))

	var mp *thermo.MissingParameterError
	require.True(t, errors.As(err, &mp))
	assert.Equal(t, "nn all97", mp.Model)
	assert.ElementsMatch(t, []string{"initiationper_A/T", "initiationper_G/C"}, mp.Keys)
}

func cngEngine(repeats int) *Engine {
	key := "CNGrepeats" + string(rune('0'+repeats)) + "CAG"
	return engineFS(map[string]string{
		"cng.yaml": "model: bro05\nsections:\n  \"\":\n    \"" + key + "\": {enthalpy: -40000, entropy: -100}\n",
	})
}

func cngOptions(repeats int) Options {
	seq := "G" + strings.Repeat("CAG", repeats) + "C"
	rev := []byte(seq)
	for i, j := 0, len(rev)-1; i < j; i, j = i+1, j-1 {
		rev[i], rev[j] = rev[j], rev[i]
	}
	o := DefaultOptions(duplex.RNARNA)
	o.Sequence = seq
	o.Complementary = string(rev)
	o.SelfComplementary = true
	o.OligoConc = 1e-4
	o.Solution = correction.Solution{Na: 1}
	o.Methods[motif.CNGRepeat] = "bro05:cng"
	return o
}

func TestLongCNGRepeatMeltsAsHairpin(t *testing.T) {
	rep, err := cngEngine(5).Compute(cngOptions(5), nil)
	require.NoError(t, err)
	assert.InDelta(t, 126.85, rep.Result.Tm, 1e-9)
	assert.Empty(t, rep.Corrections)
	require.Len(t, rep.Segments, 1)
	assert.Equal(t, motif.CNGRepeat, rep.Segments[0].Kind)
}

func TestShortCNGRepeatHasNoInitiation(t *testing.T) {
	rep, err := cngEngine(4).Compute(cngOptions(4), nil)
	require.NoError(t, err)
	assert.Equal(t, -40000.0, rep.Result.Enthalpy)
	want, err := thermo.MeltingTemperature(-40000, -100, 1e-4, 1)
	require.NoError(t, err)
	assert.InDelta(t, want, rep.Result.Tm, 1e-9)
	assert.Equal(t, []correction.Applied{{Family: correction.Ion, Method: "tanna07"}}, rep.Corrections)
}

func TestLongDuplexUsesApproximativeFormula(t *testing.T) {
	o := dnaOptions(strings.Repeat("GGCAT", 14))
	o.Solution.DMSO = 5
	rep, err := Compute(o, nil)
	require.NoError(t, err)
	assert.Equal(t, ModeApprox, rep.Mode)
	assert.Empty(t, rep.Segments)

	want := 81.5 + 16.6*math.Log10(1/1.7) + 0.41*60 - 500.0/70 - 0.75*5
	assert.InDelta(t, want, rep.Result.Tm, 1e-9)
	assert.Equal(t, []correction.Applied{{Family: correction.DMSO, Method: "ahs01"}}, rep.Corrections)
}

func TestForcedModes(t *testing.T) {
	o := dnaOptions("CGTTGA")
	o.Mode = ModeApprox
	tr := trace.New(nil)
	rep, err := Compute(o, tr)
	require.NoError(t, err)
	assert.Equal(t, ModeApprox, rep.Mode)
	assert.NotEmpty(t, tr.Warnings())

	o.Approx = ""
	_, err = Compute(o, nil)
	assert.True(t, errors.Is(err, thermo.ErrNoMethod))

	o = dnaOptions(strings.Repeat("GGCAT", 14))
	o.Mode = ModeNN
	tr = trace.New(nil)
	rep, err = Compute(o, tr)
	require.NoError(t, err)
	assert.Equal(t, ModeNN, rep.Mode)
	assert.NotEmpty(t, tr.Warnings())
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Options){
		"sequence":      func(o *Options) { o.Sequence = " " },
		"hybridization": func(o *Options) { o.Hybridization = "dnaxna" },
		"oligo-conc":    func(o *Options) { o.OligoConc = 0 },
		"solution":      func(o *Options) { o.Solution = correction.Solution{DMSO: 5} },
		"factor":        func(o *Options) { o.Factor = 2 },
		"mode":          func(o *Options) { o.Mode = "X" },
		"threshold":     func(o *Options) { o.Threshold = 0 },
	}
	for option, mutate := range cases {
		t.Run(option, func(t *testing.T) {
			o := dnaOptions("CGTTGA")
			mutate(&o)
			err := o.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidOption))
			var oe *OptionError
			require.True(t, errors.As(err, &oe))
			assert.Equal(t, option, oe.Option)
		})
	}
}

func TestUnknownModelName(t *testing.T) {
	o := dnaOptions("CGTTGA")
	o.Methods[motif.CrickPair] = "nope"
	_, err := Compute(o, nil)
	assert.True(t, errors.Is(err, thermo.ErrNoMethod))
}

func TestDefaults(t *testing.T) {
	assert.Equal(t, "all97", DefaultMethod(duplex.DNADNA, motif.CrickPair))
	assert.Equal(t, "xia98", DefaultMethod(duplex.RNARNA, motif.CrickPair))
	assert.Equal(t, "sug95", DefaultMethod(duplex.RNADNA, motif.CrickPair))
	assert.Equal(t, "tur06", DefaultMethod(duplex.MRNARNA, motif.CrickPair))
	assert.Equal(t, "", DefaultApprox(duplex.MRNARNA))

	o := DefaultOptions(duplex.DNADNA)
	o.Methods[motif.CrickPair] = "san04"
	assert.Equal(t, "all97", DefaultOptions(duplex.DNADNA).Methods[motif.CrickPair], "defaults must not be shared")
}

func TestCatalogListsEveryOption(t *testing.T) {
	cat := Catalog(method.Default(), duplex.DNADNA)
	require.Len(t, cat, len(motif.Kinds())+5)
	assert.Equal(t, "nn", cat[0].Option)
	assert.Equal(t, "all97", cat[0].Default)
	assert.NotEmpty(t, cat[0].Choices)

	byOption := map[string]OptionCatalog{}
	for _, oc := range cat {
		byOption[oc.Option] = oc
	}
	assert.Equal(t, "wetdna91", byOption["am"].Default)
	assert.Equal(t, "", byOption["ion"].Default)
	assert.Len(t, byOption["ion"].Choices, 18)
	assert.Equal(t, "ahs01", byOption["naeq"].Default)
	assert.Equal(t, "bla96", byOption["formamide-method"].Default)
}
