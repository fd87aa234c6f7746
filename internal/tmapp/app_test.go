package tmapp

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tmcalc/internal/cmdutil"
	"tmcalc/pkg/api"
)

func run(t *testing.T, argv ...string) (int, string, string) {
	t.Helper()
	var out, errb bytes.Buffer
	code := Run(argv, &out, &errb)
	return code, out.String(), errb.String()
}

func TestComputeText(t *testing.T) {
	code, out, errs := run(t, "-S", "CGTTGA", "-P", "1e-4", "-E", "Na=1")
	require.Equal(t, cmdutil.ExitOK, code, errs)
	assert.Contains(t, out, "Sequence : 5' CGTTGA 3'")
	assert.Contains(t, out, "Method : nearest-neighbor")
	assert.Contains(t, out, "Melting temperature :")
}

func TestComputeJSON(t *testing.T) {
	code, out, errs := run(t, "-S", "cgttga", "-P", "100uM", "-E", "Na=1", "-o", "json", "--trace")
	require.Equal(t, cmdutil.ExitOK, code, errs)
	var v api.ResultV1
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	assert.Equal(t, "CGTTGA", v.Sequence)
	assert.Equal(t, "GCAACT", v.Complementary)
	assert.Equal(t, "NN", v.Mode)
	assert.InDelta(t, -41200, v.Enthalpy, 1e-9)
	assert.NotEmpty(t, v.Trace)
}

func TestUsageErrors(t *testing.T) {
	cases := map[string][]string{
		"unknown flag":   {"--nope"},
		"missing seq":    {"-P", "1e-4", "-E", "Na=1"},
		"bad solution":   {"-S", "CGTTGA", "-P", "1e-4", "-E", "Na"},
		"unknown output": {"-S", "CGTTGA", "-P", "1e-4", "-E", "Na=1", "-o", "xml"},
		"bad log level":  {"-S", "CGTTGA", "-P", "1e-4", "-E", "Na=1", "--log-level", "loud"},
		"extra args":     {"methods", "x"},
	}
	for name, argv := range cases {
		t.Run(name, func(t *testing.T) {
			code, _, errs := run(t, argv...)
			assert.Equal(t, cmdutil.ExitUsage, code)
			assert.Contains(t, errs, "tmcalc --help")
		})
	}
}

func TestComputeErrorExit(t *testing.T) {
	code, out, errs := run(t, "-S", "CGTTGA", "-P", "1e-4", "-E", "Na=1", "--nn", "nope")
	assert.Equal(t, cmdutil.ExitCompute, code)
	assert.Empty(t, out)
	assert.Contains(t, errs, "nope")
}

func TestBatchKeepsOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "duplexes.tsv")
	in := "# id sequence\n" +
		"a\tCGTTGA\n" +
		"b\tACGXT\n" +
		"c\tGGACTGACG\n"
	require.NoError(t, os.WriteFile(path, []byte(in), 0o644))

	code, out, errs := run(t, "batch", path, "-P", "1e-4", "-E", "Na=1", "-o", "tsv", "-t", "3")
	assert.Equal(t, cmdutil.ExitCompute, code)
	assert.Contains(t, errs, "ERROR: b:")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "id\t"))
	assert.True(t, strings.HasPrefix(lines[1], "a\tCGTTGA\t"))
	assert.True(t, strings.HasPrefix(lines[2], "c\tGGACTGACG\t"))
}

func TestBatchJSONL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "duplexes.fa")
	in := ">one\nCGTT\nGA\n>two\nGGACTGACG\n"
	require.NoError(t, os.WriteFile(path, []byte(in), 0o644))

	code, out, errs := run(t, "batch", path, "-P", "1e-4", "-E", "Na=1", "-o", "jsonl")
	require.Equal(t, cmdutil.ExitOK, code, errs)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	var v api.ResultV1
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &v))
	assert.Equal(t, "one", v.ID)
	assert.Equal(t, "CGTTGA", v.Sequence)
}

func TestBatchMissingFile(t *testing.T) {
	code, _, _ := run(t, "batch", filepath.Join(t.TempDir(), "none.tsv"), "-P", "1e-4", "-E", "Na=1")
	assert.Equal(t, cmdutil.ExitUsage, code)
}

func TestMethods(t *testing.T) {
	code, out, errs := run(t, "methods", "-H", "rnarna")
	require.Equal(t, cmdutil.ExitOK, code, errs)
	assert.Contains(t, out, "Models for rnarna duplexes")
	assert.Contains(t, out, "--nn")
	assert.Contains(t, out, "* xia98")

	code, out, errs = run(t, "methods", "-o", "json")
	require.Equal(t, cmdutil.ExitOK, code, errs)
	var list api.MethodsV1
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	assert.Equal(t, "dnadna", list.Hybridization)
	require.NotEmpty(t, list.Options)
	assert.Equal(t, "nn", list.Options[0].Option)
	assert.Equal(t, "all97", list.Options[0].Default)
}

func TestVersion(t *testing.T) {
	code, out, _ := run(t, "version")
	assert.Equal(t, cmdutil.ExitOK, code)
	assert.Equal(t, "tmcalc version dev\n", out)
}

func TestMetricsOut(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tmcalc.prom")
	code, _, errs := run(t, "-S", "CGTTGA", "-P", "1e-4", "-E", "Na=1", "--metrics-out", path)
	require.Equal(t, cmdutil.ExitOK, code, errs)
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), `tmcalc_runs_total{mode="NN",status="ok"} 1`)
	assert.Contains(t, string(b), `tmcalc_motifs_total{kind="nn",method="all97"} 1`)
}

func TestCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out, errb bytes.Buffer
	code := RunContext(ctx, []string{"serve", "--addr", "127.0.0.1:0"}, &out, &errb)
	assert.Equal(t, cmdutil.ExitCanceled, code, errb.String())
}
