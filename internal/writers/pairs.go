package writers

import "strings"

// Glyphs of the pairing line drawn between the two strands.
const (
	pairGlyph   = "|"
	wobbleGlyph = ":"
)

// pairLine marks every position of the aligned strands: a bar for a
// Watson-Crick pair, a colon for a G·U wobble and a blank otherwise
// (mismatch, gap, modified or unpaired base). It returns "" when the strands
// are not aligned character for character.
func pairLine(top, bottom string) string {
	n := len(top)
	if n == 0 || n != len(bottom) {
		return ""
	}
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		switch pairKind(top[i], bottom[i]) {
		case 2:
			b.WriteString(pairGlyph)
		case 1:
			b.WriteString(wobbleGlyph)
		default:
			b.WriteByte(' ')
		}
	}
	return b.String()
}

// pairKind is 2 for a Watson-Crick pair, 1 for G·U and 0 otherwise.
func pairKind(x, y byte) int {
	switch string([]byte{x, y}) {
	case "AT", "TA", "AU", "UA", "GC", "CG":
		return 2
	case "GU", "UG":
		return 1
	}
	return 0
}

// renderDuplex draws the strands one above the other with the pairing line
// between them, indented like the other report sections.
func renderDuplex(b *strings.Builder, top, bottom string) {
	line := pairLine(top, bottom)
	if line == "" {
		return
	}
	b.WriteString("Duplex :\n")
	b.WriteString("  5' " + top + " 3'\n")
	b.WriteString("     " + line + "\n")
	b.WriteString("  3' " + bottom + " 5'\n")
}
