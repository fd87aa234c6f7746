package duplex

// BasePair is the top and bottom token at one duplex position.
type BasePair struct {
	Top    string
	Bottom string
}

// IsComplementary reports a Watson-Crick pair (A·T, A·U, T·A, G·C, C·G, U·A).
func (p BasePair) IsComplementary() bool {
	switch p.Top {
	case "A":
		return p.Bottom == "T" || p.Bottom == "U"
	case "T", "U":
		return p.Bottom == "A"
	case "G":
		return p.Bottom == "C"
	case "C":
		return p.Bottom == "G"
	}
	return false
}

// Is reports whether the pair is a/b in either orientation.
func (p BasePair) Is(a, b string) bool {
	return (p.Top == a && p.Bottom == b) || (p.Top == b && p.Bottom == a)
}

// IsStrictly reports whether the pair is exactly top a, bottom b.
func (p BasePair) IsStrictly(a, b string) bool {
	return p.Top == a && p.Bottom == b
}

// IsUnpaired reports a gap on either strand.
func (p BasePair) IsUnpaired() bool {
	return p.Top == Gap || p.Bottom == Gap
}

// IsMismatch reports two canonical bases that do not pair. G·U counts.
func (p BasePair) IsMismatch() bool {
	return !p.IsComplementary() && isCanonical(p.Top) && isCanonical(p.Bottom)
}

// HasPyrimidine reports a canonical pyrimidine on either strand.
func (p BasePair) HasPyrimidine() bool {
	return isPyrimidine(p.Top) || isPyrimidine(p.Bottom)
}

// Modification returns the modified-acid family carried by the pair, if any.
func (p BasePair) Modification() Modification {
	if m, ok := modifications[p.Top]; ok {
		return m
	}
	return modifications[p.Bottom]
}

// IsRegistered reports whether either token is a known nucleic acid.
func (p BasePair) IsRegistered() bool {
	return matchToken(p.Top) == p.Top || matchToken(p.Bottom) == p.Bottom
}

func (p BasePair) String() string { return p.Top + "/" + p.Bottom }
