package method

import (
	"strings"

	"tmcalc/core/duplex"
	"tmcalc/core/params"
)

func modifiedStacks(alpha duplex.Alphabet, p *params.Probe, d *duplex.Duplex, start, end int) (increment, *duplex.Duplex, int, int) {
	d = d.Equivalent(alpha)
	w1, w2 := d.Widen(start, end)
	var inc increment
	inc.add(stackSum(p, d, w1, w2, params.Modified))
	return inc, d, w1, w2
}

func newSantalucia05Inosine(t *params.Table) Strategy {
	eval := func(p *params.Probe, d *duplex.Duplex, start, end int) increment {
		inc, _, _, _ := modifiedStacks(duplex.DNA, p, d, start, end)
		return inc
	}
	return &model{name: "san05", table: t, eval: eval, applicable: dnaOnly("san05")}
}

func newZnosko07Inosine(t *params.Table) Strategy {
	eval := func(p *params.Probe, d *duplex.Duplex, start, end int) increment {
		inc, rna, w1, w2 := modifiedStacks(duplex.RNA, p, d, start, end)
		n := 0
		if w1 == 0 && rna.Pair(w1).Is("I", "U") {
			n++
		}
		if w2 == rna.Len()-1 && rna.Pair(w2).Is("I", "U") {
			n++
		}
		if n > 0 {
			inc.add(p.Need(params.Terminal("per_I/U")).Scale(float64(n)))
		}
		return inc
	}
	return &model{
		name:  "zno07",
		table: t,
		eval:  eval,
		applicable: func(c *Context, start, end int) bool {
			c.expect("zno07", duplex.RNARNA)
			rna := c.Duplex.Equivalent(duplex.RNA)
			w1, w2 := rna.Widen(start, end)
			for i := w1; i <= w2; i++ {
				pr := rna.Pair(i)
				if pr.Modification() == duplex.Inosine && !pr.Is("I", "U") {
					return c.reject("zno07", "inosine at position %d is not paired with U", i+1)
				}
			}
			return true
		},
	}
}

func newAsanuma05(t *params.Table) Strategy {
	eval := func(p *params.Probe, d *duplex.Duplex, start, end int) increment {
		d = d.Equivalent(duplex.DNA)
		w1, w2 := d.Widen(start, end)
		var inc increment
		inc.add(p.Need(params.Azobenzene(d.Top(w1, w2), d.Bottom(w1, w2))))
		return inc
	}
	return &model{
		name:  "asa05",
		table: t,
		eval:  eval,
		applicable: func(c *Context, start, end int) bool {
			c.expect("asa05", duplex.DNADNA)
			w1, w2 := c.Duplex.Widen(start, end)
			if c.Duplex.ModificationAt(w1) == duplex.Azobenzene || c.Duplex.ModificationAt(w2) == duplex.Azobenzene {
				return c.reject("asa05", "azobenzene at a duplex end is not covered")
			}
			return true
		},
	}
}

// newMcTigue04 adds, for every stack touching a locked nucleotide, the
// unlocked stack and the locked increment.
func newMcTigue04(t *params.Table) Strategy {
	unlock := func(s string) string { return strings.ReplaceAll(s, "L", "") }
	eval := func(p *params.Probe, d *duplex.Duplex, start, end int) increment {
		inc, dna, w1, w2 := modifiedStacks(duplex.DNA, p, d, start, end)
		inc.add(stackSum(p, dna, w1, w2, func(top, bottom string) params.Key {
			return params.NN(unlock(top), unlock(bottom))
		}))
		return inc
	}
	return &model{
		name:  "mct04",
		table: t,
		eval:  eval,
		applicable: func(c *Context, start, end int) bool {
			c.expect("mct04", duplex.DNADNA)
			if start == 0 || end == c.Duplex.Len()-1 {
				return c.reject("mct04", "a locked nucleotide at a duplex end is not covered")
			}
			return true
		},
	}
}

// hydroxyadenineContexts are the measured 5'-XA*Y-3' triplets with the
// facing strand read 3'→5'.
var hydroxyadenineContexts = map[string][2]string{
	"TA*A": {"A", "T"},
	"GA*C": {"C", "G"},
}

func newSugimoto01(t *params.Table) Strategy {
	plain := func(s string) string { return strings.ReplaceAll(s, "A*", "A") }
	eval := func(p *params.Probe, d *duplex.Duplex, start, end int) increment {
		d = d.Equivalent(duplex.DNA)
		w1, w2 := d.Widen(start, end)
		var inc increment
		inc.add(stackSum(p, d, w1, w2, func(top, bottom string) params.Key {
			return params.NN(plain(top), plain(bottom))
		}))
		inc.add(p.NeedKey(params.Hydroxyadenine(d.Top(w1, w2), d.Bottom(w1, w2))))
		return inc
	}
	return &model{
		name:  "sug01",
		table: t,
		eval:  eval,
		applicable: func(c *Context, start, end int) bool {
			c.expect("sug01", duplex.DNADNA)
			d := c.Duplex
			if start == 0 || end == d.Len()-1 {
				return c.reject("sug01", "a hydroxyadenine at a duplex end is not covered")
			}
			w1, w2 := d.Widen(start, end)
			if !d.Pair(w1).IsComplementary() || !d.Pair(w2).IsComplementary() {
				return c.reject("sug01", "the hydroxyadenine at position %d needs Watson-Crick neighbors", start+1)
			}
			top, bottom := d.Top(w1, w2), d.Bottom(w1, w2)
			strand, facing := top, bottom
			if !strings.Contains(top, "A*") {
				strand, facing = bottom, top
			}
			ends, ok := hydroxyadenineContexts[strand]
			if !ok || !strings.HasPrefix(facing, ends[0]) || !strings.HasSuffix(facing, ends[1]) {
				return c.reject("sug01", "only TA*A and GA*C contexts are covered; got %s/%s", top, bottom)
			}
			return true
		},
	}
}

// newBroda05 reads a whole G(CNG)nC duplex as one entry.
func newBroda05(t *params.Table) Strategy {
	eval := func(p *params.Probe, d *duplex.Duplex, start, end int) increment {
		rna := d.Equivalent(duplex.RNA)
		var inc increment
		inc.add(p.Need(params.CNG((end-start-1)/3, rna.Top(start+1, start+3))))
		return inc
	}
	return &model{
		name:  "bro05",
		table: t,
		eval:  eval,
		applicable: func(c *Context, _, _ int) bool {
			c.expect("bro05", duplex.RNARNA)
			if !c.SelfComplementary {
				return c.reject("bro05", "CNG repeats must be self-complementary")
			}
			return true
		},
	}
}
