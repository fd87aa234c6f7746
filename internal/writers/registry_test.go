package writers

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tmcalc/core/correction"
	"tmcalc/core/duplex"
	"tmcalc/core/melting"
	"tmcalc/core/motif"
	"tmcalc/core/thermo"
	"tmcalc/core/trace"
	"tmcalc/pkg/api"
)

func sampleReport() *melting.Report {
	tr := trace.New(nil)
	tr.Message("environment", "factor", 4)
	tr.Warn("Na outside the validated range")
	return &melting.Report{
		Sequence:      "CGTTGA",
		Complementary: "GCAACT",
		Hybridization: duplex.DNADNA,
		Result:        thermo.Result{Enthalpy: -41200, Entropy: -115.4, Tm: 21.5},
		Mode:          melting.ModeNN,
		Segments: []melting.Segment{
			{Start: 0, End: 5, Kind: motif.CrickPair, Option: "nn", Method: "all97"},
		},
		Corrections: []correction.Applied{{Family: correction.Ion, Method: "owc2204"}},
		Trace:       tr,
	}
}

func TestToAPIResult(t *testing.T) {
	v := ToAPIResult("r1", sampleReport(), false)
	assert.Equal(t, "r1", v.ID)
	assert.Equal(t, "NN", v.Mode)
	assert.Equal(t, []api.SegmentV1{{Start: 1, End: 6, Kind: "nn", Method: "all97"}}, v.Segments)
	assert.Equal(t, []api.CorrectionV1{{Family: "ion", Method: "owc2204"}}, v.Corrections)
	assert.Equal(t, []string{"Na outside the validated range"}, v.Warnings)
	assert.Empty(t, v.Trace)

	v = ToAPIResult("", sampleReport(), true)
	require.Len(t, v.Trace, 2)
	assert.Equal(t, "warning", v.Trace[1].Kind)
}

func TestUnknownResultFormatError(t *testing.T) {
	var b bytes.Buffer
	in, done := Start(&b, "nope-format", Options{}, 1)
	close(in)
	err := <-done
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown result format")
}

func TestFormats(t *testing.T) {
	assert.Equal(t, []string{"json", "jsonl", "text", "tsv"}, Formats())
}

func TestTextReport(t *testing.T) {
	var b bytes.Buffer
	v := ToAPIResult("", sampleReport(), true)
	require.NoError(t, Write("text", &b, []api.ResultV1{v}, Options{Trace: true}))
	out := b.String()
	assert.Contains(t, out, "Sequence : 5' CGTTGA 3'")
	assert.Contains(t, out, "Method : nearest-neighbor")
	assert.Contains(t, out, "Enthalpy : -41200.0 cal/mol")
	assert.Contains(t, out, "Melting temperature : 21.50 degrees C.")
	assert.Contains(t, out, "  1-6\tnn\tall97")
	assert.Contains(t, out, "WARNING : Na outside the validated range")
	assert.Contains(t, out, "[message] environment factor=4")
}

func TestTSV(t *testing.T) {
	var b bytes.Buffer
	v := ToAPIResult("r1", sampleReport(), false)
	require.NoError(t, Write("tsv", &b, []api.ResultV1{v}, Options{Header: true}))
	lines := strings.Split(strings.TrimSpace(b.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, TSVHeader, lines[0])
	assert.Equal(t, "r1\tCGTTGA\tGCAACT\tdnadna\tNN\t-41200.0\t-115.40\t21.50\t1", lines[1])
}

func TestJSONShapes(t *testing.T) {
	v := ToAPIResult("", sampleReport(), false)

	var one bytes.Buffer
	require.NoError(t, Write("json", &one, []api.ResultV1{v}, Options{}))
	var obj api.ResultV1
	require.NoError(t, json.Unmarshal(one.Bytes(), &obj))
	assert.Equal(t, v.Tm, obj.Tm)

	var many bytes.Buffer
	require.NoError(t, Write("json", &many, []api.ResultV1{v, v}, Options{}))
	var arr []api.ResultV1
	require.NoError(t, json.Unmarshal(many.Bytes(), &arr))
	assert.Len(t, arr, 2)
}

func TestJSONLStreams(t *testing.T) {
	var b bytes.Buffer
	in, done := Start(&b, "jsonl", Options{}, 0)
	v := ToAPIResult("a", sampleReport(), false)
	in <- v
	v.ID = "b"
	in <- v
	close(in)
	require.NoError(t, <-done)
	lines := strings.Split(strings.TrimSpace(b.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], `"id":"b"`)
}

func TestPairLine(t *testing.T) {
	assert.Equal(t, "||||||", pairLine("CGTTGA", "GCAACT"))
	assert.Equal(t, "|| :||", pairLine("CGAGGA", "GCCUCU"))
	assert.Equal(t, "", pairLine("CGTTGA", "GCAAC"))

	var b strings.Builder
	renderDuplex(&b, "CGTTGA", "GCAACT")
	assert.Equal(t, "Duplex :\n  5' CGTTGA 3'\n     ||||||\n  3' GCAACT 5'\n", b.String())
}
