package params

import (
	"strconv"
	"strings"

	"tmcalc/core/duplex"
)

// Key addresses one table entry. Pair keys carry a symmetric fallback:
// the same duplex read from the other strand, reverse(bottom)/reverse(top).
type Key struct {
	primary   string
	symmetric string
}

func (k Key) String() string { return k.primary }

func plain(k string) Key { return Key{primary: k} }

func pair(section, top, bottom, suffix string) Key {
	return Key{
		primary:   section + top + "/" + bottom + suffix,
		symmetric: section + duplex.ReverseTokens(bottom) + "/" + duplex.ReverseTokens(top) + suffix,
	}
}

// NN is a Watson-Crick nearest-neighbor doublet.
func NN(top, bottom string) Key { return pair("neighbor", top, bottom, "") }

// Terminal is a per-end penalty such as "per_A/T" or "5_T/A".
func Terminal(kind string) Key { return plain("terminal" + kind) }

// Initiation is the helix initiation; kind may be empty.
func Initiation(kind string) Key { return plain("initiation" + kind) }

// Symmetry is the self-complementarity correction.
func Symmetry() Key { return plain("symmetry") }

// Mismatch is a mismatch-containing doublet or trimer.
func Mismatch(top, bottom string) Key { return pair("mismatch", top, bottom, "") }

// MismatchClosing is a mismatch stack with a named closing pair.
func MismatchClosing(top, bottom, closing string) Key {
	return pair("mismatch", top, bottom, "close"+closing)
}

// InternalLoop is the loop penalty for n unpaired nucleotides.
func InternalLoop(n int) Key { return plain("mismatchsize" + strconv.Itoa(n)) }

// LoopInitiation is the loop initiation by size; size may be ">6".
func LoopInitiation(size string) Key { return plain("mismatchinitiationsize" + size) }

// LoopInitiationAny is the size-independent loop initiation.
func LoopInitiationAny() Key { return plain("mismatchinitiation") }

// MismatchParameter is a single mismatching base pair term.
func MismatchParameter(a, b string) Key { return pair("parameters", a, b, "") }

// Closure is the per-pair penalty for an A·U, G·U or A·T loop closure.
func Closure(a, b string) Key { return plain("closureper_" + a + "/" + b) }

// Penalty is a named penalty.
func Penalty(kind string) Key { return plain("penalty" + kind) }

// Asymmetry is the per-nucleotide internal loop asymmetry.
func Asymmetry() Key { return plain("asymetry") }

// FirstMismatch is the first non-canonical pair bonus of a loop type.
func FirstMismatch(a, b, loop string) Key {
	return pair("mismatchfirst_non_canonical_pairloop"+loop, a, b, "")
}

// Dangling is a dangling-end stack; gaps are stripped and the orientation
// derived from their position.
func Dangling(top, bottom string) (Key, error) {
	sense, err := duplex.DanglingSense(top, bottom)
	if err != nil {
		return Key{}, err
	}
	return SecondDangling(top, bottom, sense), nil
}

// SecondDangling is a dangling-end stack with an explicit orientation.
func SecondDangling(top, bottom, sense string) Key {
	return pair("dangling", stripGaps(top), stripGaps(bottom), "sens"+sense)
}

// SingleBulge is the whole-motif value of a one-nucleotide bulge.
func SingleBulge(top, bottom string) Key {
	return pair("bulge", stripGaps(top), stripGaps(bottom), "")
}

// BulgeSize is the loop penalty of an n-nucleotide bulge.
func BulgeSize(n int) Key { return plain("bulgesize" + strconv.Itoa(n)) }

// BulgeInitiation is the bulge initiation by size; size may be ">6".
func BulgeInitiation(size string) Key { return plain("bulgeinitiationsize" + size) }

// CNG is a whole-duplex CNG repeat value.
func CNG(repeats int, triplet string) Key {
	return plain("CNGrepeats" + strconv.Itoa(repeats) + triplet)
}

// Modified is a doublet or trimer carrying an inosine, LNA or
// hydroxyadenine.
func Modified(top, bottom string) Key { return pair("modified", top, bottom, "") }

// ModifiedSense is a modified stack at a dangling end.
func ModifiedSense(top, bottom, sense string) Key {
	return pair("modified", top, bottom, "sens"+sense)
}

// Azobenzene prefixes the modified key with the isomer (trans for X_T,
// cys for X_C).
func Azobenzene(top, bottom string) Key {
	iso := ""
	switch {
	case strings.Contains(top, "X_T") || strings.Contains(bottom, "X_T"):
		iso = "trans"
	case strings.Contains(top, "X_C") || strings.Contains(bottom, "X_C"):
		iso = "cys"
	}
	return pair("modified"+iso, top, bottom, "")
}

// Hydroxyadenine uses the oriented key when the stack has a gap.
func Hydroxyadenine(top, bottom string) (Key, error) {
	sense, err := duplex.DanglingSense(top, bottom)
	if err != nil {
		return Key{}, err
	}
	if sense == "" {
		return Modified(top, bottom), nil
	}
	return ModifiedSense(top, bottom, sense), nil
}

func stripGaps(s string) string { return strings.ReplaceAll(s, duplex.Gap, "") }

// Lookup returns the value under k, trying the symmetric key second.
func (t *Table) Lookup(k Key) (v Value, ok bool) {
	if x, found := t.values[k.primary]; found {
		return x, true
	}
	if k.symmetric != "" {
		if x, found := t.values[k.symmetric]; found {
			return x, true
		}
	}
	return v, false
}

// Has reports whether k (or its symmetric key) is present.
func (t *Table) Has(k Key) bool {
	_, ok := t.Lookup(k)
	return ok
}
