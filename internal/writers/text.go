package writers

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"tmcalc/pkg/api"
)

func init() {
	Register("text", writeText)
	Register("tsv", writeTSV)
}

// joulesPerCalorie converts the reported enthalpy and entropy.
const joulesPerCalorie = 4.184

func writeText(w io.Writer, results []api.ResultV1, o Options) error {
	for i, r := range results {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, renderText(r, o.Trace)); err != nil {
			return err
		}
	}
	return nil
}

func renderText(r api.ResultV1, withTrace bool) string {
	var b strings.Builder
	if r.ID != "" {
		fmt.Fprintf(&b, "# %s\n", r.ID)
	}
	fmt.Fprintf(&b, "Sequence : 5' %s 3'\n", r.Sequence)
	fmt.Fprintf(&b, "Complementary : 3' %s 5'\n", r.Complementary)
	fmt.Fprintf(&b, "Hybridization : %s", r.Hybridization)
	if r.SelfComplementary {
		b.WriteString(" (self-complementary)")
	}
	b.WriteString("\n")
	renderDuplex(&b, r.Sequence, r.Complementary)
	fmt.Fprintf(&b, "Method : %s\n", modeName(r.Mode))
	fmt.Fprintf(&b, "Enthalpy : %.1f cal/mol ( %.1f J/mol)\n", r.Enthalpy, r.Enthalpy*joulesPerCalorie)
	fmt.Fprintf(&b, "Entropy : %.2f cal/mol-K ( %.2f J/mol-K)\n", r.Entropy, r.Entropy*joulesPerCalorie)
	fmt.Fprintf(&b, "Melting temperature : %.2f degrees C.\n", r.Tm)

	if len(r.Segments) > 0 {
		b.WriteString("Motifs :\n")
		for _, s := range r.Segments {
			fmt.Fprintf(&b, "  %d-%d\t%s\t%s\n", s.Start, s.End, s.Kind, s.Method)
		}
	}
	if len(r.Corrections) > 0 {
		b.WriteString("Corrections :\n")
		for _, c := range r.Corrections {
			fmt.Fprintf(&b, "  %s\t%s\n", c.Family, c.Method)
		}
	}
	for _, wmsg := range r.Warnings {
		fmt.Fprintf(&b, "WARNING : %s\n", wmsg)
	}
	if withTrace && len(r.Trace) > 0 {
		b.WriteString("Trace :\n")
		for _, e := range r.Trace {
			fmt.Fprintf(&b, "  [%s] %s%s\n", e.Kind, e.Text, renderAttrs(e.Attrs))
		}
	}
	return b.String()
}

func modeName(m string) string {
	switch m {
	case "NN":
		return "nearest-neighbor"
	case "A":
		return "approximative"
	}
	return m
}

func renderAttrs(attrs map[string]any) string {
	if len(attrs) == 0 {
		return ""
	}
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, attrs[k])
	}
	return b.String()
}

// TSVHeader is the column line of the tsv format.
const TSVHeader = "id\tsequence\tcomplementary\thybridization\tmode\tenthalpy\tentropy\ttm\twarnings"

func writeTSV(w io.Writer, results []api.ResultV1, o Options) error {
	if o.Header {
		if _, err := fmt.Fprintln(w, TSVHeader); err != nil {
			return err
		}
	}
	for _, r := range results {
		_, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%.1f\t%.2f\t%.2f\t%d\n",
			r.ID, r.Sequence, r.Complementary, r.Hybridization, r.Mode,
			r.Enthalpy, r.Entropy, r.Tm, len(r.Warnings))
		if err != nil {
			return err
		}
	}
	return nil
}
