// core/duplex/duplex.go
// Duplex is the aligned, read-only view of two strands: top 5'→3', bottom 3'→5'.
// Positions where both strands carry a gap are dropped on construction, so
// every position has at least one nucleotide.

package duplex

import (
	"strings"

	"tmcalc/core/thermo"
)

// Duplex is immutable after construction.
type Duplex struct {
	pairs []BasePair
}

// New tokenizes and aligns both strands.
func New(top, bottom string) (*Duplex, error) {
	t, err := Tokenize(Normalize(top))
	if err != nil {
		return nil, err
	}
	b, err := Tokenize(Normalize(bottom))
	if err != nil {
		return nil, err
	}
	if len(t) == 0 {
		return nil, thermo.Sequencef("empty sequence")
	}
	if len(t) != len(b) {
		return nil, thermo.Sequencef("the sequences have two different lengths (%d and %d); replace the gaps by the character '-'", len(t), len(b))
	}
	pairs := make([]BasePair, 0, len(t))
	for i := range t {
		if t[i] == Gap && b[i] == Gap {
			continue
		}
		pairs = append(pairs, BasePair{Top: t[i], Bottom: b[i]})
	}
	if len(pairs) == 0 {
		return nil, thermo.Sequencef("the sequences contain only gaps")
	}
	return &Duplex{pairs: pairs}, nil
}

// FromPairs builds a duplex from already aligned pairs.
func FromPairs(pairs []BasePair) *Duplex {
	cp := make([]BasePair, len(pairs))
	copy(cp, pairs)
	return &Duplex{pairs: cp}
}

// Len is the number of aligned positions.
func (d *Duplex) Len() int { return len(d.pairs) }

// Pair returns the pair at i.
func (d *Duplex) Pair(i int) BasePair { return d.pairs[i] }

// Pairs returns a copy of all pairs.
func (d *Duplex) Pairs() []BasePair {
	out := make([]BasePair, len(d.pairs))
	copy(out, d.pairs)
	return out
}

// Top concatenates the top tokens of [i, j].
func (d *Duplex) Top(i, j int) string {
	var b strings.Builder
	for k := i; k <= j; k++ {
		b.WriteString(d.pairs[k].Top)
	}
	return b.String()
}

// Bottom concatenates the bottom tokens of [i, j].
func (d *Duplex) Bottom(i, j int) string {
	var b strings.Builder
	for k := i; k <= j; k++ {
		b.WriteString(d.pairs[k].Bottom)
	}
	return b.String()
}

// Sequence is the whole top strand.
func (d *Duplex) Sequence() string { return d.Top(0, d.Len()-1) }

// Complementary is the whole bottom strand (3'→5').
func (d *Duplex) Complementary() string { return d.Bottom(0, d.Len()-1) }

// TopPair is the nearest-neighbor doublet of the top strand at i, i+1.
func (d *Duplex) TopPair(i int) string { return d.Top(i, i+1) }

// BottomPair is the nearest-neighbor doublet of the bottom strand at i, i+1.
func (d *Duplex) BottomPair(i int) string { return d.Bottom(i, i+1) }

// Widen extends [i, j] by one position on each side that is not a duplex end.
func (d *Duplex) Widen(i, j int) (int, int) {
	if i > 0 {
		i--
	}
	if j < d.Len()-1 {
		j++
	}
	return i, j
}

// Alphabet selects the equivalent-sequence conversion.
type Alphabet string

const (
	DNA Alphabet = "dna"
	RNA Alphabet = "rna"
)

// Equivalent returns the duplex with T→U (RNA) or U→T (DNA) on both strands.
// Pair structure is unchanged, so classification is preserved.
func (d *Duplex) Equivalent(a Alphabet) *Duplex {
	out := make([]BasePair, len(d.pairs))
	for i, p := range d.pairs {
		out[i] = BasePair{Top: convert(p.Top, a), Bottom: convert(p.Bottom, a)}
	}
	return &Duplex{pairs: out}
}

func convert(tok string, a Alphabet) string {
	switch a {
	case RNA:
		switch tok {
		case "T":
			return "U"
		case "TL":
			return "UL"
		}
	case DNA:
		switch tok {
		case "U":
			return "T"
		case "UL":
			return "TL"
		}
	}
	return tok
}

func (d *Duplex) String() string { return d.Sequence() + "/" + d.Complementary() }
