// internal/tmcli/flags.go
package tmcli

import (
	"time"

	"github.com/spf13/pflag"

	"tmcalc/core/melting"
	"tmcalc/core/motif"
)

// addComputeFlags registers the flags of one computation. They are
// persistent so batch and serve inherit them as defaults.
func addComputeFlags(fs *pflag.FlagSet) {
	fs.StringP("sequence", "S", "", "sequence (5'→3') [*]")
	fs.StringP("complementary", "C", "", "complementary strand (3'→5'); inferred when omitted")
	fs.StringP("hybridization", "H", "dnadna", "dnadna|rnarna|dnarna|rnadna|mrnarna|rnamrna")
	fs.StringP("oligo-conc", "P", "", "concentration of the strand in excess, e.g. 1e-4 or 250nM [*]")
	fs.StringP("solution", "E", "", "solution composition, e.g. Na=0.05:Mg=1.5mM:dNTP=0.2mM:DMSO=5 [*]")
	fs.IntP("factor", "F", 0, "correction factor F of ln(Ct/F): 1 or 4 (0: by self-complementarity)")
	fs.Bool("self-complementary", false, "treat the duplex as self-complementary")
	fs.String("mode", string(melting.ModeDefault), "def (by length) | NN | A")
	fs.Int("threshold", melting.DefaultThreshold, "length above which def mode uses the approximative formula")

	for _, k := range motif.Kinds() {
		fs.String(k.Option(), "", k.String()+" model, as name or name:file")
	}
	fs.String("am", "", "approximative formula")
	fs.String("ion", "", "ion correction (default: chosen from the solution)")
	fs.String("naeq", "", "sodium equivalence formula [ahs01]")
	fs.String("dmso-method", "", "DMSO correction [ahs01]")
	fs.String("formamide-method", "", "formamide correction [bla96]")
	fs.String("data-dir", "", "directory searched for parameter tables before the built-in ones")
}

// addOutputFlags registers the ambient flags every command shares.
func addOutputFlags(fs *pflag.FlagSet) {
	fs.StringP("output", "o", "text", "text | json | jsonl | tsv")
	fs.Bool("trace", false, "include the computation trace in the output")
	fs.Bool("header", true, "print the TSV header line")
	fs.String("config", "", "YAML configuration file")
	fs.String("log-level", "warn", "debug | info | warn | error")
	fs.BoolP("quiet", "q", false, "suppress warnings")
	fs.String("metrics-out", "", "write Prometheus metrics in text format to this file")
}

func addBatchFlags(fs *pflag.FlagSet) {
	fs.IntP("threads", "t", 1, "number of worker goroutines")
}

func addServeFlags(fs *pflag.FlagSet) {
	fs.String("addr", ":8080", "listen address")
	fs.String("redis", "", "Redis address of the result cache (empty: no cache)")
	fs.String("redis-prefix", "tmcalc:result:", "key prefix of cached results")
	fs.Duration("cache-ttl", 24*time.Hour, "expiration of cached results (0: never)")
}
