package melting

import (
	"tmcalc/core/approx"
	"tmcalc/core/correction"
	"tmcalc/core/duplex"
	"tmcalc/core/method"
	"tmcalc/core/motif"
)

// Choice is one selectable model or formula.
type Choice struct {
	Name  string
	Title string
	File  string
}

// OptionCatalog lists the choices of one option and the default for a
// hybridization ("" when there is none).
type OptionCatalog struct {
	Option  string
	Default string
	Choices []Choice
}

// Catalog lists every option in command-line order: the motif kinds, then
// am, ion, naeq, dmso-method and formamide-method.
func Catalog(reg *method.Registry, h duplex.Hybridization) []OptionCatalog {
	var out []OptionCatalog
	for _, k := range motif.Kinds() {
		oc := OptionCatalog{Option: k.Option(), Default: DefaultMethod(h, k)}
		for _, name := range reg.Names(k) {
			s, _ := reg.Lookup(k, name)
			oc.Choices = append(oc.Choices, Choice{Name: s.Name, Title: s.Title, File: s.File})
		}
		out = append(out, oc)
	}

	am := OptionCatalog{Option: "am", Default: DefaultApprox(h)}
	for _, name := range approx.Names() {
		f, _ := approx.Lookup(name)
		am.Choices = append(am.Choices, Choice{Name: f.Name, Title: f.Title})
	}
	out = append(out, am)

	def := correction.DefaultPipeline()
	for _, f := range []correction.Family{correction.Ion, correction.NaEq, correction.DMSO, correction.Formamide} {
		oc := OptionCatalog{Option: string(f)}
		switch f {
		case correction.NaEq:
			oc.Default = def.NaEq
		case correction.DMSO:
			oc.Default = def.DMSO
		case correction.Formamide:
			oc.Default = def.Formamide
		}
		for _, name := range correction.Names(f) {
			c := Choice{Name: name}
			if corr, ok := correction.Lookup(f, name); ok {
				c.Title = corr.Title
			}
			oc.Choices = append(oc.Choices, c)
		}
		out = append(out, oc)
	}
	return out
}
