package duplex

import (
	"strings"

	"github.com/TimothyStiles/poly/transform"

	"tmcalc/core/thermo"
)

// Hybridization names the strand chemistries, top strand first.
type Hybridization string

const (
	DNADNA  Hybridization = "dnadna"
	RNARNA  Hybridization = "rnarna"
	DNARNA  Hybridization = "dnarna"
	RNADNA  Hybridization = "rnadna"
	MRNARNA Hybridization = "mrnarna"
	RNAMRNA Hybridization = "rnamrna"
)

// Hybridizations lists every accepted value.
func Hybridizations() []Hybridization {
	return []Hybridization{DNADNA, RNARNA, DNARNA, RNADNA, MRNARNA, RNAMRNA}
}

// ParseHybridization validates a case-insensitive hybridization name.
func ParseHybridization(s string) (Hybridization, error) {
	h := Hybridization(strings.ToLower(strings.TrimSpace(s)))
	for _, v := range Hybridizations() {
		if h == v {
			return h, nil
		}
	}
	return "", thermo.Sequencef("unknown hybridization %q; allowed: dnadna rnarna dnarna rnadna mrnarna rnamrna", s)
}

// IsHybrid reports a DNA/RNA heteroduplex.
func (h Hybridization) IsHybrid() bool { return h == DNARNA || h == RNADNA }

// IsModifiedRNA reports a 2'-O-methyl RNA / RNA duplex.
func (h Hybridization) IsModifiedRNA() bool { return h == MRNARNA || h == RNAMRNA }

// Complement infers the bottom strand (3'→5', position aligned) of top.
// Tokens without an unambiguous partner require an explicit complementary strand.
func Complement(top string, h Hybridization) (string, error) {
	toks, err := Tokenize(Normalize(top))
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, t := range toks {
		base := t
		if len(t) == 2 && (t[1] == 'L' || t[1] == '*') {
			base = t[:1]
		}
		switch base {
		case "A":
			if h == DNADNA || h == RNADNA {
				b.WriteByte('T')
			} else {
				b.WriteByte('U')
			}
		case "T", "U":
			b.WriteByte('A')
		case "G":
			b.WriteByte('C')
		case "C":
			b.WriteByte('G')
		case Gap:
			b.WriteByte('-')
		default:
			return "", thermo.Sequencef("cannot infer the complement of %s; give the complementary strand explicitly", t)
		}
	}
	return b.String(), nil
}

// Arrange puts the strands in the orientation the models expect: for rnadna
// and rnamrna the second strand becomes the top, both reversed.
func Arrange(h Hybridization, top, bottom string) (string, string, error) {
	if h != RNADNA && h != RNAMRNA {
		return top, bottom, nil
	}
	t, err := Tokenize(Normalize(top))
	if err != nil {
		return "", "", err
	}
	b, err := Tokenize(Normalize(bottom))
	if err != nil {
		return "", "", err
	}
	return joinReversed(b), joinReversed(t), nil
}

func joinReversed(toks []string) string {
	var b strings.Builder
	for i := len(toks) - 1; i >= 0; i-- {
		b.WriteString(toks[i])
	}
	return b.String()
}

// IsSelfComplementary reports that a strand, terminal gaps removed, equals
// its own reverse complement. U is read as T. Modified acids never qualify.
func IsSelfComplementary(strand string) bool {
	s := strings.Trim(Normalize(strand), Gap)
	if s == "" {
		return false
	}
	s = strings.ReplaceAll(s, "U", "T")
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case 'A', 'T', 'G', 'C':
		default:
			return false
		}
	}
	return transform.ReverseComplement(s) == s
}
