package method

import (
	"tmcalc/core/duplex"
	"tmcalc/core/params"
)

// widenToPairs extends [start, end] by one position on each side whose
// pair is Watson-Crick.
func widenToPairs(d *duplex.Duplex, start, end int) (int, int) {
	if start > 0 && d.Pair(start-1).IsComplementary() {
		start--
	}
	if end < d.Len()-1 && d.Pair(end+1).IsComplementary() {
		end++
	}
	return start, end
}

// wobbleStacks sums the G·U containing stacks. The tandem 5'GGUC3'/3'CUGG5'
// motif has its own entry; a GU/UG stack elsewhere uses the "not_G/C"
// closing entry. Terminal G·U pairs pay a per-end penalty.
func wobbleStacks(p *params.Probe, d *duplex.Duplex, start, end int) increment {
	rna := d.Equivalent(duplex.RNA)
	w1, w2 := widenToPairs(rna, start, end)
	var inc increment
	if w2-w1 == 3 && rna.Top(w1, w2) == "GGUC" && rna.Bottom(w1, w2) == "CUGG" {
		inc.add(p.Need(params.MismatchClosing(rna.Top(w1, w2), rna.Bottom(w1, w2), "G/C")))
	} else {
		for i := w1; i < w2; i++ {
			top, bottom := rna.TopPair(i), rna.BottomPair(i)
			if top == "GU" && bottom == "UG" {
				inc.add(p.Need(params.MismatchClosing(top, bottom, "not_G/C")))
				continue
			}
			inc.add(p.Need(params.Mismatch(top, bottom)))
		}
	}
	if w1 == 0 && rna.Pair(w1).Is("G", "U") {
		inc.add(p.Need(params.Terminal("per_G/U")))
	}
	if w2 == rna.Len()-1 && rna.Pair(w2).Is("G", "U") {
		inc.add(p.Need(params.Terminal("per_G/U")))
	}
	return inc
}

func newTurner99Wobble(t *params.Table) Strategy {
	return &model{name: "tur99", table: t, eval: wobbleStacks, applicable: rnaOnly("tur99")}
}

func newSerra12Wobble(t *params.Table) Strategy {
	return &model{name: "ser12", table: t, eval: wobbleStacks, applicable: rnaOnly("ser12")}
}
