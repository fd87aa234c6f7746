package tmapp

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"tmcalc/core/duplex"
	"tmcalc/core/melting"
	"tmcalc/core/method"
	"tmcalc/internal/config"
	"tmcalc/internal/writers"
	"tmcalc/pkg/api"
)

// methods lists every selectable model per option for --hybridization.
func (a *app) methods(_ context.Context, c config.Config) error {
	h, err := duplex.ParseHybridization(c.Hybridization)
	if err != nil {
		return &melting.OptionError{Option: "hybridization", Msg: err.Error()}
	}
	list := writers.ToAPIMethods(string(h), melting.Catalog(method.Default(), h))
	switch c.Output {
	case "json", "jsonl":
		err = writers.EncodePretty(a.stdout, list)
	default:
		err = renderMethods(a.stdout, list)
	}
	if err != nil {
		return &outputError{err}
	}
	return nil
}

func renderMethods(w io.Writer, list api.MethodsV1) error {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Models for %s duplexes (* marks the default)\n", list.Hybridization)
	for _, o := range list.Options {
		fmt.Fprintf(tw, "\n--%s\n", o.Option)
		for _, m := range o.Methods {
			mark := " "
			if m.Name == o.Default {
				mark = "*"
			}
			fmt.Fprintf(tw, "  %s %s\t%s\t%s\n", mark, m.Name, m.Title, m.File)
		}
	}
	return tw.Flush()
}
