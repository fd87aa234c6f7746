package motif

import (
	"fmt"

	"tmcalc/core/duplex"
	"tmcalc/core/thermo"
)

type category int

const (
	complementary category = iota
	wobblePair
	other
)

func categorize(p duplex.BasePair) category {
	switch {
	case p.IsComplementary():
		return complementary
	case p.Is("G", "U"):
		return wobblePair
	}
	return other
}

// NextRange returns the motif range starting at pos. A self-complementary
// CNG repeat spanning the whole duplex is one range; otherwise the range
// grows while the next pair has the same category (Watson-Crick, G·U, or
// anything else).
func NextRange(d *duplex.Duplex, pos int, selfComplementary bool) (int, int) {
	last := d.Len() - 1
	if pos == 0 && selfComplementary && d.IsCNGPattern(0, last) {
		return 0, last
	}
	c := categorize(d.Pair(pos))
	end := pos
	for end < last && categorize(d.Pair(end+1)) == c {
		end++
	}
	return pos, end
}

// Classify maps [start, end] to a motif kind.
func Classify(d *duplex.Duplex, start, end int, selfComplementary bool) (Kind, error) {
	n := end - start + 1
	if start == 0 || end == d.Len()-1 {
		switch {
		case selfComplementary && d.IsCNGPattern(start, end):
			return CNGRepeat, nil
		case d.IsDanglingEnd(start, end):
			switch n {
			case 1:
				return SingleDanglingEnd, nil
			case 2:
				return DoubleDanglingEnd, nil
			}
			return LongDanglingEnd, nil
		case d.IsGU(start, end):
			return Wobble, nil
		case d.IsMismatchPair(start) || d.IsMismatchPair(end):
			return 0, &thermo.NoMethodError{Msg: "terminal mismatches are not supported"}
		}
	}

	switch {
	case d.IsPerfectMatch(start, end):
		return CrickPair, nil
	case d.IsGU(start, end):
		return Wobble, nil
	case d.IsMismatch(start, end):
		switch {
		case n == 1:
			return SingleMismatch, nil
		case n == 2 && d.HasNoGap(start, end):
			return TandemMismatch, nil
		}
		return InternalLoop, nil
	case d.IsBulgeLoop(start, end):
		if n == 1 {
			return SingleBulgeLoop, nil
		}
		return LongBulgeLoop, nil
	case d.IsRegistered(start):
		switch d.ModificationAt(start) {
		case duplex.Inosine:
			return Inosine, nil
		case duplex.Azobenzene:
			return Azobenzene, nil
		case duplex.Hydroxyadenine:
			return Hydroxyadenine, nil
		case duplex.LockedNucleicAcid:
			return LockedNucleicAcid, nil
		}
	}
	return 0, &thermo.NoMethodError{Msg: fmt.Sprintf("cannot compute the structure %s/%s at positions %d to %d",
		d.Top(start, end), d.Bottom(start, end), start+1, end+1)}
}
