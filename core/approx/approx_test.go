package approx

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tmcalc/core/correction"
	"tmcalc/core/duplex"
	"tmcalc/core/thermo"
	"tmcalc/core/trace"
)

func input(h duplex.Hybridization, sol correction.Solution) Input {
	return Input{
		Hybridization: h,
		Length:        100,
		PercentGC:     50,
		Solution:      sol,
		NaEq:          "ahs01",
		Threshold:     60,
		Default:       true,
		Trace:         trace.New(nil),
	}
}

func TestFormulas(t *testing.T) {
	na := 0.1
	log := math.Log10(na)
	wet := 16.6 * math.Log10(na/(1+0.7*na))
	cases := map[string]float64{
		"ahs01":     80.4 + 0.345*50 + log*(17.0-0.135*50) - 5.5,
		"schdot":    81.5 + 16.6*log + 0.41*50 - 6.75,
		"owe69":     87.16 + 0.345*50 + log*(20.17-0.066*50),
		"san98":     77.1 + 11.7*log + 0.41*50 - 5.28,
		"wetdna91":  81.5 + wet + 0.41*50 - 5,
		"che93":     69.3 + 0.41*50 - 6.5,
		"che93corr": 69.3 + 0.41*50 - 5.35,
	}
	for name, want := range cases {
		t.Run(name, func(t *testing.T) {
			r, err := Compute(name, input(duplex.DNADNA, correction.Solution{Na: na}))
			require.NoError(t, err)
			assert.InDelta(t, want, r.Tm, 1e-9)
		})
	}
}

func TestWetmurSubtractsMismatches(t *testing.T) {
	in := input(duplex.RNARNA, correction.Solution{Na: 1})
	in.PercentMismatch = 2
	r, err := Compute("wetrna91", in)
	require.NoError(t, err)
	want := 78 + 16.6*math.Log10(1/1.7) + 0.7*50 - 5 - 2
	assert.InDelta(t, want, r.Tm, 1e-9)
	assert.NotEmpty(t, in.Trace.Warnings())
}

func TestMismatchesRejectOtherFormulas(t *testing.T) {
	in := input(duplex.DNADNA, correction.Solution{Na: 1})
	in.PercentMismatch = 1
	_, err := Compute("san98", in)
	assert.True(t, errors.Is(err, thermo.ErrNotApplicable))
}

func TestThresholdInDefaultMode(t *testing.T) {
	in := input(duplex.DNADNA, correction.Solution{Na: 1})
	in.Length = 60
	_, err := Compute("wetdna91", in)
	assert.True(t, errors.Is(err, thermo.ErrNotApplicable))

	in.Default = false
	in.Trace = trace.New(nil)
	_, err = Compute("wetdna91", in)
	require.NoError(t, err)
	assert.NotEmpty(t, in.Trace.Warnings())
}

func TestSodiumEquivalentReplacesNa(t *testing.T) {
	sol := correction.Solution{Na: 0.05, Mg: 0.0025, DNTP: 0.0016}
	r, err := Compute("san98", input(duplex.DNADNA, sol))
	require.NoError(t, err)
	na := 0.05 + 3.79*0.03
	assert.InDelta(t, 77.1+11.7*math.Log10(na)+0.41*50-5.28, r.Tm, 1e-9)

	in := input(duplex.DNADNA, sol)
	in.NaEq = "nope"
	_, err = Compute("san98", in)
	assert.True(t, errors.Is(err, thermo.ErrNoMethod))
}

func TestMarmurChesterIgnoresIons(t *testing.T) {
	in := input(duplex.DNADNA, correction.Solution{Na: 0, Mg: 0.0015, Tris: 0.01, K: 0.05})
	in.NaEq = "nope"
	r, err := Compute("che93", in)
	require.NoError(t, err)
	assert.InDelta(t, 69.3+20.5-6.5, r.Tm, 1e-9)
	assert.Empty(t, in.Trace.Warnings())
}

func TestUnknownFormula(t *testing.T) {
	_, err := Compute("nope", input(duplex.DNADNA, correction.Solution{Na: 1}))
	assert.True(t, errors.Is(err, thermo.ErrNoMethod))
	assert.Contains(t, err.Error(), `--am "nope"`)
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"ahs01", "che93", "che93corr", "owe69", "san98", "schdot", "wetdna91", "wetdnarna91", "wetrna91"}, Names())
}
