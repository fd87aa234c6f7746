package duplex

import (
	"strconv"

	"tmcalc/core/thermo"
)

// PercentGC is the share of G·C pairs, in percent.
func (d *Duplex) PercentGC() float64 {
	n := 0
	for _, p := range d.pairs {
		if p.Is("G", "C") {
			n++
		}
	}
	return float64(n) / float64(d.Len()) * 100
}

// PercentMismatching is the share of non-Watson-Crick positions, in percent.
func (d *Duplex) PercentMismatching() float64 {
	n := 0
	for _, p := range d.pairs {
		if !p.IsComplementary() {
			n++
		}
	}
	return float64(n) / float64(d.Len()) * 100
}

// HasGCPair reports at least one G·C pair.
func (d *Duplex) HasGCPair() bool {
	for _, p := range d.pairs {
		if p.Is("G", "C") {
			return true
		}
	}
	return false
}

// CountTerminal counts how many of the two pairs at i and j are a/b.
func (d *Duplex) CountTerminal(a, b string, i, j int) int {
	n := 0
	if d.pairs[i].Is(a, b) {
		n++
	}
	if d.pairs[j].Is(a, b) {
		n++
	}
	return n
}

// TrimUnpaired returns the first and last paired positions.
func (d *Duplex) TrimUnpaired() (int, int, error) {
	start := 0
	for start < d.Len() && d.pairs[start].IsUnpaired() {
		start++
	}
	end := d.Len() - 1
	for end >= 0 && d.pairs[end].IsUnpaired() {
		end--
	}
	if start >= end {
		return 0, 0, thermo.Sequencef("no possible hybridization between %s and %s", d.Sequence(), d.Complementary())
	}
	return start, end, nil
}

func (d *Duplex) loopSides(i, j int) (top, bottom int) {
	for k := i + 1; k <= j-1; k++ {
		if d.pairs[k].Top != Gap {
			top++
		}
		if d.pairs[k].Bottom != Gap {
			bottom++
		}
	}
	return top, bottom
}

// InternalLoopLength counts the unpaired nucleotides strictly inside the
// closing pairs i and j.
func (d *Duplex) InternalLoopLength(i, j int) int {
	top, bottom := d.loopSides(i, j)
	return top + bottom
}

// IsAsymmetricLoop reports a gap strictly inside the closing pairs.
func (d *Duplex) IsAsymmetricLoop(i, j int) bool {
	for k := i + 1; k <= j-1; k++ {
		if d.pairs[k].IsUnpaired() {
			return true
		}
	}
	return false
}

// LoopSizes returns the number of loop nucleotides on each strand.
func (d *Duplex) LoopSizes(i, j int) (int, int) { return d.loopSides(i, j) }

// InternalLoopType names the loop geometry: "1x1", "2x2", "1x2", "2x3",
// "<n>xn_n>2" or "others_non_2x2".
func (d *Duplex) InternalLoopType(i, j int) string {
	top, bottom := d.loopSides(i, j)
	lo, hi := min(top, bottom), max(top, bottom)
	if d.IsAsymmetricLoop(i, j) {
		switch {
		case lo == 1 && hi > 2:
			return strconv.Itoa(top) + "xn_n>2"
		case (lo == 1 && hi == 2) || (lo == 2 && hi == 3):
			return strconv.Itoa(lo) + "x" + strconv.Itoa(hi)
		}
		return "others_non_2x2"
	}
	if (top == 2 && bottom == 2) || (top == 1 && bottom == 1) {
		return strconv.Itoa(lo) + "x" + strconv.Itoa(hi)
	}
	return "others_non_2x2"
}

// IsSymmetric reports that the bottom strand of [i, j] read 5'→3' equals the
// top strand read 5'→3'.
func (d *Duplex) IsSymmetric(i, j int) bool {
	for k := 0; i+k <= j; k++ {
		if d.pairs[i+k].Top != d.pairs[j-k].Bottom {
			return false
		}
	}
	return true
}

// LoopFirstMismatch returns the closing base (as R/Y) followed by the first
// loop base, for both strands.
func (d *Duplex) LoopFirstMismatch(i int) (string, string, error) {
	t, err := PyrPur(d.pairs[i].Top)
	if err != nil {
		return "", "", err
	}
	b, err := PyrPur(d.pairs[i].Bottom)
	if err != nil {
		return "", "", err
	}
	return t + d.pairs[i+1].Top, b + d.pairs[i+1].Bottom, nil
}

// SingleBulgeNeighbors returns the doublets formed by the pairs flanking a
// one-position bulge starting at closing pair i.
func (d *Duplex) SingleBulgeNeighbors(i int) (string, string) {
	return d.pairs[i].Top + d.pairs[i+2].Top, d.pairs[i].Bottom + d.pairs[i+2].Bottom
}

// TandemGGPenalty reports a G·G mismatch next to A·A or next to a
// non-canonical pair carrying a pyrimidine, at i and i+1.
func (d *Duplex) TandemGGPenalty(i int) bool {
	if i+1 > d.Len()-1 {
		return false
	}
	a, b := d.pairs[i], d.pairs[i+1]
	if (a.IsStrictly("G", "G") && b.IsStrictly("A", "A")) || (b.IsStrictly("G", "G") && a.IsStrictly("A", "A")) {
		return true
	}
	return (a.IsStrictly("G", "G") && b.HasPyrimidine()) || (b.IsStrictly("G", "G") && a.HasPyrimidine())
}

// TandemDeltaPPenalty reports an A·G next to C·U or C·C, or U·U next to A·A.
func (d *Duplex) TandemDeltaPPenalty(i int) bool {
	if i+1 > d.Len()-1 {
		return false
	}
	a, b := d.pairs[i], d.pairs[i+1]
	if a.Is("A", "G") || b.Is("A", "G") {
		return a.Is("C", "U") || b.Is("C", "U") || a.Is("C", "C") || b.Is("C", "C")
	}
	return (a.Is("U", "U") && b.Is("A", "A")) || (b.Is("U", "U") && a.Is("A", "A"))
}

// DanglingSense returns "5" or "3" for the orientation of a dangling end
// written as top/bottom, or "" when neither strand has a gap.
func DanglingSense(top, bottom string) (string, error) {
	switch {
	case top == "":
		return "3", nil
	case bottom == "":
		return "5", nil
	case bottom[0] == '-':
		return "5", nil
	case top[0] == '-':
		return "3", nil
	case bottom[len(bottom)-1] == '-':
		return "3", nil
	case top[len(top)-1] == '-':
		return "5", nil
	}
	if !containsGap(top) && !containsGap(bottom) {
		return "", nil
	}
	return "", thermo.Sequencef("cannot determine the orientation of the dangling end %s/%s", top, bottom)
}

func containsGap(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == '-' {
			return true
		}
	}
	return false
}
