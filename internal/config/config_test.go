package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tmcalc/core/correction"
	"tmcalc/core/duplex"
	"tmcalc/core/melting"
	"tmcalc/core/motif"
	"tmcalc/pkg/api"
)

func TestParseConc(t *testing.T) {
	cases := map[string]float64{
		"0.05":  0.05,
		"50mM":  0.05,
		"250nM": 250e-9,
		"3uM":   3e-6,
		"1e-6":  1e-6,
		"5%":    5,
		" 2 M ": 2,
	}
	for in, want := range cases {
		got, err := ParseConc(in)
		require.NoError(t, err, in)
		assert.InDelta(t, want, got, want*1e-12, in)
	}
	for _, bad := range []string{"", "mM", "5kg"} {
		_, err := ParseConc(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseSolution(t *testing.T) {
	sol, err := ParseSolution("Na=0.05:mg=1.5mM,DMSO=5%:dNTP=0.2mM")
	require.NoError(t, err)
	assert.Equal(t, correction.Solution{Na: 0.05, Mg: 0.0015, DMSO: 5, DNTP: 0.0002}, sol.Correction())
	assert.Equal(t, "Na=0.05:Mg=0.0015:dNTP=0.0002:DMSO=5", sol.String())

	again, err := ParseSolution(sol.String())
	require.NoError(t, err)
	assert.Equal(t, sol, again)

	for _, bad := range []string{"Na", "Cl=1", "Na=1:Na=2", "Na=lots"} {
		_, err := ParseSolution(bad)
		assert.Error(t, err, bad)
	}
}

func flags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.StringP("sequence", "S", "", "")
	fs.StringP("hybridization", "H", "dnadna", "")
	fs.StringP("oligo-conc", "P", "", "")
	fs.StringP("solution", "E", "", "")
	fs.String("nn", "", "")
	fs.String("sinMM", "", "")
	fs.String("addr", ":8080", "")
	fs.String("config", "", "")
	return fs
}

func TestLayering(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tmcalc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
sequence: AAAAA
oligo-conc: 1uM
solution:
  Na: 50mM
  Mg: 0.002
methods:
  sinMM: allsanpey
serve:
  cache-ttl: 1h
`), 0o644))

	t.Setenv("TMCALC_HYBRIDIZATION", "rnarna")

	fs := flags()
	require.NoError(t, fs.Parse([]string{"-S", "CGTTGA", "--nn", "san04", "--addr", ":9090"}))
	v := New()
	require.NoError(t, BindFlags(v, fs))
	c, err := Load(v, path)
	require.NoError(t, err)

	assert.Equal(t, "CGTTGA", c.Sequence, "flags beat the file")
	assert.Equal(t, "rnarna", c.Hybridization, "env beats the flag default")
	assert.InDelta(t, 1e-6, float64(c.OligoConc), 1e-18)
	assert.Equal(t, correction.Solution{Na: 0.05, Mg: 0.002}, c.Solution.Correction())
	assert.Equal(t, "san04", c.Methods["nn"])
	assert.Equal(t, "allsanpey", c.Methods["sinmm"])
	assert.Equal(t, ":9090", c.Serve.Addr)
	assert.Equal(t, time.Hour, c.Serve.CacheTTL)
	assert.Equal(t, melting.DefaultThreshold, c.Threshold)
}

func TestSolutionFlagString(t *testing.T) {
	fs := flags()
	require.NoError(t, fs.Parse([]string{"-E", "Na=1:Mg=3mM"}))
	v := New()
	require.NoError(t, BindFlags(v, fs))
	c, err := Load(v, "")
	require.NoError(t, err)
	assert.Equal(t, correction.Solution{Na: 1, Mg: 0.003}, c.Solution.Correction())
}

func TestLoadErrorsAreConfigErrors(t *testing.T) {
	_, err := Load(New(), filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfig))

	fs := flags()
	require.NoError(t, fs.Parse([]string{"-E", "Na=salty"}))
	v := New()
	require.NoError(t, BindFlags(v, fs))
	_, err = Load(v, "")
	assert.True(t, errors.Is(err, ErrConfig))
}

func TestKey(t *testing.T) {
	assert.Equal(t, "methods.sinmm", Key("sinMM"))
	assert.Equal(t, "methods.gu", Key("GU"))
	assert.Equal(t, "serve.redis", Key("redis"))
	assert.Equal(t, "oligo-conc", Key("oligo-conc"))
}

func baseConfig() Config {
	return Config{
		Sequence:      "cgttga",
		Hybridization: "dnadna",
		OligoConc:     1e-4,
		Solution:      Solution{Na: 1},
		Mode:          "def",
		Threshold:     60,
		Methods:       map[string]string{"nn": "", "sinmm": "allsanpey:custom"},
	}
}

func TestOptions(t *testing.T) {
	c := baseConfig()
	c.Ion = "san04"
	c.Approx = "che93"
	o, err := c.Options()
	require.NoError(t, err)
	assert.Equal(t, "CGTTGA", o.Sequence)
	assert.Equal(t, duplex.DNADNA, o.Hybridization)
	assert.Equal(t, "all97", o.Methods[motif.CrickPair], "empty names keep the default")
	assert.Equal(t, "allsanpey:custom", o.Methods[motif.SingleMismatch])
	assert.Equal(t, "san04", o.Corrections.Ion)
	assert.Equal(t, "ahs01", o.Corrections.DMSO)
	assert.Equal(t, "che93", o.Approx)

	c = baseConfig()
	c.Hybridization = "dnaxna"
	_, err = c.Options()
	assert.True(t, errors.Is(err, melting.ErrInvalidOption))

	c = baseConfig()
	c.Methods = map[string]string{"wat": "x"}
	_, err = c.Options()
	assert.True(t, errors.Is(err, melting.ErrInvalidOption))

	c = baseConfig()
	c.Solution = Solution{}
	_, err = c.Options()
	assert.True(t, errors.Is(err, melting.ErrInvalidOption))
}

func TestWithRequestAndNormalizedRequest(t *testing.T) {
	c, err := baseConfig().WithRequest(api.RequestV1{
		Sequence:      "GCATGC",
		Hybridization: "rnarna",
		Solution:      "Na=50mM",
		Methods:       map[string]string{"NN": "tur06"},
	})
	require.NoError(t, err)
	assert.Equal(t, "rnarna", c.Hybridization)
	assert.Equal(t, "tur06", c.Methods["nn"])
	assert.Equal(t, 1e-4, float64(c.OligoConc), "unset fields keep the base value")

	o, err := c.Options()
	require.NoError(t, err)
	r := Request(o, c.Solution, false)
	assert.Equal(t, "Na=0.05", r.Solution)
	assert.Equal(t, "tur06", r.Methods["nn"])
	assert.Equal(t, "allsanpey:custom", r.Methods["sinMM"])
	assert.Equal(t, "tur06", r.Methods["tanMM"], "rnarna default")
	assert.Equal(t, "ahs01", r.NaEq)

	_, err = baseConfig().WithRequest(api.RequestV1{Sequence: "A", Solution: "Na=?"})
	assert.True(t, errors.Is(err, melting.ErrInvalidOption))
}
