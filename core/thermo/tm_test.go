package thermo

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeltingTemperatureMatchesFormula(t *testing.T) {
	got, err := MeltingTemperature(-200000, -500, 4e-6, 1)
	require.NoError(t, err)
	want := -200000/(-500+1.99*math.Log(4e-6/1)) - 273.15
	assert.InDelta(t, want, got, 1e-9)
}

func TestMeltingTemperatureFactor(t *testing.T) {
	self, err := MeltingTemperature(-60000, -170, 1e-6, 1)
	require.NoError(t, err)
	nonSelf, err := MeltingTemperature(-60000, -170, 1e-6, 4)
	require.NoError(t, err)
	assert.Greater(t, self, nonSelf, "dividing CT by 4 lowers Tm")
}

func TestMeltingTemperatureRejectsBadInput(t *testing.T) {
	_, err := MeltingTemperature(-1, -1, 0, 1)
	require.Error(t, err)
	_, err = MeltingTemperature(-1, -1, 1e-6, 0)
	require.Error(t, err)
}

func TestHairpinTemperature(t *testing.T) {
	got, err := HairpinTemperature(40000, 100)
	require.NoError(t, err)
	assert.InDelta(t, 126.85, got, 1e-9)

	_, err = HairpinTemperature(1, 0)
	require.Error(t, err)
}

func TestFoldSaltIndependent(t *testing.T) {
	assert.Equal(t, 55.0, FoldSaltIndependent(55, 0, -100000))

	got := FoldSaltIndependent(55, -10, -100000)
	want := 1/(1/(55+273.15)+(-10.0)/(-100000.0)) - 273.15
	assert.InDelta(t, want, got, 1e-9)
	assert.Less(t, got, 55.0)
}

func TestResultAccumulates(t *testing.T) {
	var r Result
	r.Add(Thermodynamics{Enthalpy: -7900, Entropy: -22.2})
	r.AddSaltIndependent(Thermodynamics{Enthalpy: 100, Entropy: -5})
	assert.Equal(t, Thermodynamics{Enthalpy: -7800, Entropy: -22.2}, r.Thermo())
	assert.Equal(t, -5.0, r.SaltIndependentEntropy)
	assert.Equal(t, Thermodynamics{Enthalpy: 2, Entropy: 4}, Thermodynamics{Enthalpy: 1, Entropy: 2}.Scale(2))
}

func TestErrorSentinels(t *testing.T) {
	cases := []struct {
		err  error
		want error
	}{
		{Sequencef("bad %s", "X"), ErrSequence},
		{&NoMethodError{Option: "sinMM", Method: "foo"}, ErrNoMethod},
		{&MissingParameterError{Model: "san04", Keys: []string{"neighborAA/TT"}}, ErrMissingParameter},
		{&MethodNotApplicableError{Reasons: []string{"x"}}, ErrNotApplicable},
	}
	for _, c := range cases {
		assert.True(t, errors.Is(c.err, c.want), c.err.Error())
	}

	agg := &MethodNotApplicableError{
		Reasons: []string{"missing"},
		Causes:  []error{&MissingParameterError{Model: "m", Keys: []string{"k"}}},
	}
	assert.True(t, errors.Is(agg, ErrMissingParameter))
	var mp *MissingParameterError
	require.True(t, errors.As(agg, &mp))
	assert.Equal(t, []string{"k"}, mp.Keys)
	assert.Equal(t, `no method for --sinMM "foo"`, (&NoMethodError{Option: "sinMM", Method: "foo"}).Error())
}
