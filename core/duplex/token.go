// core/duplex/token.go
// Nucleotide tokens recognised in duplex strands. Modified acids are written
// as multi-character tokens (AL, A*, X_C, ...) and pair with a single token
// on the opposite strand.

package duplex

import (
	"strings"
	"unicode"

	"tmcalc/core/thermo"
)

// Gap marks an unpaired position.
const Gap = "-"

// Longest tokens first so prefix matching is greedy.
var knownTokens = []string{
	"X_C", "X_T",
	"A*", "AL", "TL", "GL", "CL", "UL",
	"A", "T", "U", "G", "C", "I", Gap,
}

// Modification names the family of a modified nucleic acid.
type Modification int

const (
	NotModified Modification = iota
	Inosine
	LockedNucleicAcid
	Hydroxyadenine
	Azobenzene
)

func (m Modification) String() string {
	switch m {
	case Inosine:
		return "inosine"
	case LockedNucleicAcid:
		return "locked nucleic acid"
	case Hydroxyadenine:
		return "hydroxyadenine"
	case Azobenzene:
		return "azobenzene"
	default:
		return "none"
	}
}

var modifications = map[string]Modification{
	"I":   Inosine,
	"AL":  LockedNucleicAcid,
	"TL":  LockedNucleicAcid,
	"GL":  LockedNucleicAcid,
	"CL":  LockedNucleicAcid,
	"A*":  Hydroxyadenine,
	"X_C": Azobenzene,
	"X_T": Azobenzene,
}

// Normalize removes spaces/quotes and uppercases bases.
func Normalize(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if unicode.IsSpace(r) || r == '\'' || r == '"' {
			continue
		}
		out = append(out, unicode.ToUpper(r))
	}
	return string(out)
}

// Tokenize splits a normalized strand into nucleotide tokens.
func Tokenize(s string) ([]string, error) {
	var out []string
	for i := 0; i < len(s); {
		tok := matchToken(s[i:])
		if tok == "" {
			return nil, thermo.Sequencef("unknown nucleic acid %q at %d in %s; allowed: A T G C U I - A* AL TL GL CL UL X_C X_T", s[i:i+1], i+1, s)
		}
		out = append(out, tok)
		i += len(tok)
	}
	return out, nil
}

func matchToken(s string) string {
	for _, t := range knownTokens {
		if strings.HasPrefix(s, t) {
			return t
		}
	}
	return ""
}

// ReverseTokens reverses a token concatenation, keeping multi-character
// tokens intact. Unknown characters are treated as single units.
func ReverseTokens(s string) string {
	var units []string
	for i := 0; i < len(s); {
		tok := matchToken(s[i:])
		if tok == "" {
			tok = s[i : i+1]
		}
		units = append(units, tok)
		i += len(tok)
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := len(units) - 1; i >= 0; i-- {
		b.WriteString(units[i])
	}
	return b.String()
}

func isCanonical(tok string) bool {
	switch tok {
	case "A", "T", "G", "C", "U":
		return true
	}
	return false
}

func isPyrimidine(tok string) bool {
	switch tok {
	case "T", "C", "U":
		return true
	}
	return false
}

// PyrPur maps every canonical base to R (purine) or Y (pyrimidine); gaps are kept.
func PyrPur(s string) (string, error) {
	b := []byte(s)
	for i := range b {
		switch b[i] {
		case 'A', 'G':
			b[i] = 'R'
		case 'T', 'U', 'C':
			b[i] = 'Y'
		case '-':
		default:
			return "", thermo.Sequencef("non Watson-Crick base in %s; purine/pyrimidine conversion needs A T G C U", s)
		}
	}
	return string(b), nil
}
