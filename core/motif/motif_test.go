package motif

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tmcalc/core/duplex"
	"tmcalc/core/thermo"
)

type span struct {
	Start, End int
	Kind       Kind
}

func scan(t *testing.T, d *duplex.Duplex, self bool) []span {
	t.Helper()
	var out []span
	for pos := 0; pos < d.Len(); {
		start, end := NextRange(d, pos, self)
		k, err := Classify(d, start, end, self)
		require.NoError(t, err)
		out = append(out, span{start, end, k})
		pos = end + 1
	}
	return out
}

func mustDuplex(t *testing.T, top, bottom string) *duplex.Duplex {
	t.Helper()
	d, err := duplex.New(top, bottom)
	require.NoError(t, err)
	return d
}

func TestClassifyMotifs(t *testing.T) {
	cases := []struct {
		name        string
		top, bottom string
		self        bool
		want        []span
	}{
		{"perfect", "GCATGC", "CGTACG", false, []span{{0, 5, CrickPair}}},
		{"single mismatch", "GCATGC", "CGAACG", false,
			[]span{{0, 1, CrickPair}, {2, 2, SingleMismatch}, {3, 5, CrickPair}}},
		{"tandem mismatch", "GCAAGC", "CGCCCG", false,
			[]span{{0, 1, CrickPair}, {2, 3, TandemMismatch}, {4, 5, CrickPair}}},
		{"internal loop", "GCA-AGC", "CGCCCCG", false,
			[]span{{0, 1, CrickPair}, {2, 4, InternalLoop}, {5, 6, CrickPair}}},
		{"single bulge", "GCATGC", "CG-ACG", false,
			[]span{{0, 1, CrickPair}, {2, 2, SingleBulgeLoop}, {3, 5, CrickPair}}},
		{"long bulge", "GCAATGC", "CG--ACG", false,
			[]span{{0, 1, CrickPair}, {2, 3, LongBulgeLoop}, {4, 6, CrickPair}}},
		{"single dangling", "AGCATGC", "-CGTACG", false,
			[]span{{0, 0, SingleDanglingEnd}, {1, 6, CrickPair}}},
		{"double dangling", "GCATGCAA", "CGTACG--", false,
			[]span{{0, 5, CrickPair}, {6, 7, DoubleDanglingEnd}}},
		{"long dangling", "AAAGCATGC", "---CGTACG", false,
			[]span{{0, 2, LongDanglingEnd}, {3, 8, CrickPair}}},
		{"wobble", "GCGUGC", "CGUACG", false,
			[]span{{0, 1, CrickPair}, {2, 2, Wobble}, {3, 5, CrickPair}}},
		{"inosine", "GCITGC", "CGCACG", false,
			[]span{{0, 1, CrickPair}, {2, 2, Inosine}, {3, 5, CrickPair}}},
		{"locked", "GCALTGC", "CGTACG", false,
			[]span{{0, 1, CrickPair}, {2, 2, LockedNucleicAcid}, {3, 5, CrickPair}}},
		{"cng", "GCAGCAGCAGC", "CGACGACGACG", true, []span{{0, 10, CNGRepeat}}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, scan(t, mustDuplex(t, c.top, c.bottom), c.self))
		})
	}
}

func TestRangesCoverDuplex(t *testing.T) {
	d := mustDuplex(t, "AGCA-AGCATTGCGUC", "-CGCCCCGT--CGCAG")
	spans := scan(t, d, false)
	require.NotEmpty(t, spans)
	assert.Equal(t, 0, spans[0].Start)
	assert.Equal(t, d.Len()-1, spans[len(spans)-1].End)
	for i := 1; i < len(spans); i++ {
		assert.Equal(t, spans[i-1].End+1, spans[i].Start, "contiguous at %d", i)
	}
}

func TestTerminalMismatchHasNoMethod(t *testing.T) {
	d := mustDuplex(t, "ACGC", "AGCG")
	start, end := NextRange(d, 0, false)
	_, err := Classify(d, start, end, false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, thermo.ErrNoMethod))
}

func TestEquivalentRoundTripKeepsClassification(t *testing.T) {
	cases := []struct {
		top, bottom string
		native      duplex.Alphabet
		other       duplex.Alphabet
	}{
		{"GCATGC", "CGAACG", duplex.DNA, duplex.RNA},
		{"GCA-AGC", "CGCCCCG", duplex.DNA, duplex.RNA},
		{"AGCATGC", "-CGTACG", duplex.DNA, duplex.RNA},
		{"GCGUGC", "CGUACG", duplex.RNA, duplex.DNA},
	}
	for _, c := range cases {
		d := mustDuplex(t, c.top, c.bottom)
		back := d.Equivalent(c.other).Equivalent(c.native)
		assert.Equal(t, d.String(), back.String(), c.top)
		assert.Equal(t, scan(t, d, false), scan(t, back, false), c.top)
	}
}

func TestKindOptions(t *testing.T) {
	assert.Len(t, Kinds(), 15)
	seen := map[string]bool{}
	for _, k := range Kinds() {
		opt := k.Option()
		require.NotEmpty(t, opt, k.String())
		assert.False(t, seen[opt], "duplicate option %s", opt)
		seen[opt] = true
		back, ok := ParseOption(opt)
		require.True(t, ok)
		assert.Equal(t, k, back)
	}
	assert.Equal(t, "nn", CrickPair.Option())
	assert.Equal(t, "sinMM", SingleMismatch.Option())
	_, ok := ParseOption("nope")
	assert.False(t, ok)
}
