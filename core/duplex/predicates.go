package duplex

import "strings"

func (d *Duplex) inRange(i, j int) bool { return i >= 0 && j <= d.Len()-1 && i <= j }

// IsPerfectMatch reports that every pair in [i, j] is Watson-Crick.
func (d *Duplex) IsPerfectMatch(i, j int) bool {
	if !d.inRange(i, j) {
		return false
	}
	for k := i; k <= j; k++ {
		if !d.pairs[k].IsComplementary() {
			return false
		}
	}
	return true
}

// IsGU reports that every pair in [i, j] is a G·U wobble.
func (d *Duplex) IsGU(i, j int) bool {
	if !d.inRange(i, j) {
		return false
	}
	for k := i; k <= j; k++ {
		if !d.pairs[k].Is("G", "U") {
			return false
		}
	}
	return true
}

// IsMismatchPair reports a canonical non-complementary pair at i.
func (d *Duplex) IsMismatchPair(i int) bool {
	return d.pairs[i].IsMismatch()
}

// IsMismatch reports a run of mismatches, optionally mixed with single-strand
// gaps, that is not gapped on one strand throughout.
func (d *Duplex) IsMismatch(i, j int) bool {
	if !d.inRange(i, j) {
		return false
	}
	gapTop, gapBottom := 0, 0
	for k := i; k <= j; k++ {
		p := d.pairs[k]
		if p.IsMismatch() {
			continue
		}
		if !p.IsUnpaired() || (!isCanonical(p.Bottom) && !isCanonical(p.Top)) {
			return false
		}
		if p.Top == Gap {
			gapTop++
		} else {
			gapBottom++
		}
	}
	n := j - i + 1
	return gapTop != n && gapBottom != n
}

// oneStrandGapped reports that [i, j] is gapped on exactly one strand at every
// position, with canonical bases facing the gaps.
func (d *Duplex) oneStrandGapped(i, j int) bool {
	top, bottom := d.Top(i, j), d.Bottom(i, j)
	if strings.Contains(top, Gap) == strings.Contains(bottom, Gap) {
		return false
	}
	gapTop, gapBottom := 0, 0
	for k := i; k <= j; k++ {
		p := d.pairs[k]
		switch {
		case p.Top == Gap:
			gapTop++
			if !isCanonical(p.Bottom) {
				return false
			}
		case p.Bottom == Gap:
			gapBottom++
			if !isCanonical(p.Top) {
				return false
			}
		}
	}
	n := j - i + 1
	return gapTop == n || gapBottom == n
}

// IsDanglingEnd reports unpaired bases on one strand at a duplex end.
func (d *Duplex) IsDanglingEnd(i, j int) bool {
	if !d.inRange(i, j) {
		return false
	}
	if i != 0 && j != d.Len()-1 {
		return false
	}
	return d.oneStrandGapped(i, j)
}

// IsBulgeLoop reports unpaired bases on one strand.
func (d *Duplex) IsBulgeLoop(i, j int) bool {
	if !d.inRange(i, j) {
		return false
	}
	return d.oneStrandGapped(i, j)
}

// HasNoGap reports that neither strand has a gap in [i, j].
func (d *Duplex) HasNoGap(i, j int) bool {
	return !strings.Contains(d.Top(i, j), Gap) && !strings.Contains(d.Bottom(i, j), Gap)
}

// IsCNGPattern reports a whole-duplex G(CNG)nC repeat with 2 < n ≤ 7
// (length at least 8).
func (d *Duplex) IsCNGPattern(i, j int) bool {
	n := j - i + 1
	if n != d.Len() || n < 8 || (j-i-1)/3 > 7 {
		return false
	}
	if d.pairs[0].Top != "G" || d.pairs[d.Len()-1].Top != "C" {
		return false
	}
	cng := "C" + d.pairs[2].Top + "G"
	for k := 1; k <= d.Len()-4; k += 3 {
		if d.Top(k, k+2) != cng {
			return false
		}
	}
	return true
}

// IsRegistered reports a known nucleic acid at i.
func (d *Duplex) IsRegistered(i int) bool {
	if i < 0 || i > d.Len()-1 {
		return false
	}
	return d.pairs[i].IsRegistered()
}

// ModificationAt returns the modified-acid family at i.
func (d *Duplex) ModificationAt(i int) Modification {
	return d.pairs[i].Modification()
}

// HasModification reports a modified acid of family m in [i, j].
func (d *Duplex) HasModification(m Modification, i, j int) bool {
	for k := i; k <= j; k++ {
		if d.pairs[k].Modification() == m {
			return true
		}
	}
	return false
}
