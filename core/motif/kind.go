// Package motif segments a duplex into structural motifs and classifies
// each one. The Kind decides which parameter model handles a range.
package motif

import "fmt"

// Kind is the closed set of structural motifs.
type Kind int

const (
	CrickPair Kind = iota
	SingleMismatch
	TandemMismatch
	InternalLoop
	SingleBulgeLoop
	LongBulgeLoop
	SingleDanglingEnd
	DoubleDanglingEnd
	LongDanglingEnd
	Wobble
	CNGRepeat
	Inosine
	Azobenzene
	LockedNucleicAcid
	Hydroxyadenine
)

var kindInfo = [...]struct{ option, name string }{
	CrickPair:         {"nn", "Watson-Crick pairs"},
	SingleMismatch:    {"sinMM", "single mismatch"},
	TandemMismatch:    {"tanMM", "tandem mismatch"},
	InternalLoop:      {"intLP", "internal loop"},
	SingleBulgeLoop:   {"sinBU", "single bulge loop"},
	LongBulgeLoop:     {"lonBU", "long bulge loop"},
	SingleDanglingEnd: {"sinDE", "single dangling end"},
	DoubleDanglingEnd: {"secDE", "double dangling end"},
	LongDanglingEnd:   {"lonDE", "long dangling end"},
	Wobble:            {"GU", "GU wobble pairs"},
	CNGRepeat:         {"CNG", "CNG repeats"},
	Inosine:           {"ino", "inosine"},
	Azobenzene:        {"azo", "azobenzene"},
	LockedNucleicAcid: {"lck", "locked nucleic acid"},
	Hydroxyadenine:    {"ha", "hydroxyadenine"},
}

// Kinds lists every motif kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, len(kindInfo))
	for i := range kindInfo {
		out[i] = Kind(i)
	}
	return out
}

// Option is the command-line option key selecting the model for k.
func (k Kind) Option() string {
	if k < 0 || int(k) >= len(kindInfo) {
		return ""
	}
	return kindInfo[k].option
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindInfo) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindInfo[k].name
}

// ParseOption maps an option key back to its Kind.
func ParseOption(option string) (Kind, bool) {
	for i, ki := range kindInfo {
		if ki.option == option {
			return Kind(i), true
		}
	}
	return 0, false
}
