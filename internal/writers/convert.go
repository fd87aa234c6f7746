package writers

import (
	"tmcalc/core/melting"
	"tmcalc/pkg/api"
)

// ToAPIResult converts a Report to the stable wire schema (v1). Segment
// positions become 1-based. The trace is attached only when withTrace is
// set; warnings always are.
func ToAPIResult(id string, rep *melting.Report, withTrace bool) api.ResultV1 {
	v := api.ResultV1{
		ID:                id,
		Sequence:          rep.Sequence,
		Complementary:     rep.Complementary,
		Hybridization:     string(rep.Hybridization),
		SelfComplementary: rep.SelfComplementary,
		Mode:              string(rep.Mode),
		Enthalpy:          rep.Result.Enthalpy,
		Entropy:           rep.Result.Entropy,
		Tm:                rep.Result.Tm,
		Warnings:          rep.Trace.Warnings(),
	}
	for _, s := range rep.Segments {
		v.Segments = append(v.Segments, api.SegmentV1{
			Start: s.Start + 1, End: s.End + 1, Kind: s.Option, Method: s.Method,
		})
	}
	for _, c := range rep.Corrections {
		v.Corrections = append(v.Corrections, api.CorrectionV1{Family: string(c.Family), Method: c.Method})
	}
	if withTrace {
		for _, e := range rep.Trace.Entries() {
			v.Trace = append(v.Trace, api.TraceEntryV1{Kind: string(e.Kind), Text: e.Text, Attrs: e.Attrs})
		}
	}
	return v
}

// ToAPIMethods converts a catalogue listing.
func ToAPIMethods(h string, cat []melting.OptionCatalog) api.MethodsV1 {
	out := api.MethodsV1{Hybridization: h}
	for _, oc := range cat {
		o := api.OptionMethodsV1{Option: oc.Option, Default: oc.Default, Methods: []api.MethodV1{}}
		for _, c := range oc.Choices {
			o.Methods = append(o.Methods, api.MethodV1{Name: c.Name, Title: c.Title, File: c.File})
		}
		out.Options = append(out.Options, o)
	}
	return out
}
