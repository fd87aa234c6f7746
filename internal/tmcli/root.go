// Package tmcli defines the tmcalc command tree. It parses flags, loads the
// layered configuration and hands a config.Config to the handlers; it never
// computes anything itself.
package tmcli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"tmcalc/internal/cmdutil"
	"tmcalc/internal/config"
	"tmcalc/internal/version"
)

// Handlers run the commands.
type Handlers struct {
	Compute func(ctx context.Context, c config.Config) error
	Batch   func(ctx context.Context, c config.Config, path string) error
	Serve   func(ctx context.Context, c config.Config) error
	Methods func(ctx context.Context, c config.Config) error
}

const rootExample = `  tmcalc -S CGTTGA -P 1e-4 -E Na=1
  tmcalc -S GGACUC -H rnarna -P 1uM -E Na=0.1:Mg=1.5mM -o json
  tmcalc -S AGCTAGCT -C TCGTTCGA -P 1e-4 -E Na=0.05 --sinMM allsanpey --trace
  tmcalc batch oligos.tsv -P 250nM -E Na=50mM -o tsv -t 4
  tmcalc serve --addr :8080 --redis localhost:6379`

// NewRootCommand builds the command tree around h.
func NewRootCommand(h Handlers) *cobra.Command {
	root := &cobra.Command{
		Use:   "tmcalc",
		Short: "Nearest-neighbor melting temperature of nucleic acid duplexes",
		Long: `tmcalc computes the enthalpy, entropy and melting temperature of a
DNA, RNA or hybrid duplex with the nearest-neighbor model, including
mismatches, bulge and internal loops, dangling ends and modified
nucleotides, then corrects for the ions and denaturing agents of the
solution. Long duplexes use approximative formulas.`,
		Example:       rootExample,
		Version:       version.Version,
		Args:          usageArgs(cobra.NoArgs),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := load(cmd)
			if err != nil {
				return err
			}
			return h.Compute(cmd.Context(), c)
		},
	}
	addComputeFlags(root.PersistentFlags())
	addOutputFlags(root.PersistentFlags())
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", cmdutil.ErrUsage, err)
	})

	batch := &cobra.Command{
		Use:   "batch FILE",
		Short: "Compute every duplex of a TSV (id sequence [complementary]) or FASTA file",
		Long: `batch computes one result per input row on a worker pool and writes
the results in input order. A row that fails is reported on stderr and
the others still run; the exit status is 1 if any row failed. FILE may
be gzip-compressed, or - for stdin.`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := load(cmd)
			if err != nil {
				return err
			}
			return h.Batch(cmd.Context(), c, args[0])
		},
	}
	addBatchFlags(batch.Flags())

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API (POST /v1/tm, GET /v1/methods, /healthz, /metrics)",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := load(cmd)
			if err != nil {
				return err
			}
			return h.Serve(cmd.Context(), c)
		},
	}
	addServeFlags(serve.Flags())

	methods := &cobra.Command{
		Use:   "methods",
		Short: "List the models of every option and the defaults for -H",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := load(cmd)
			if err != nil {
				return err
			}
			return h.Methods(cmd.Context(), c)
		},
	}

	ver := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  usageArgs(cobra.NoArgs),
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("tmcalc version %s\n", version.Version)
		},
	}

	root.AddCommand(batch, serve, methods, ver)
	return root
}

func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return fmt.Errorf("%w: %v", cmdutil.ErrUsage, err)
		}
		return nil
	}
}

// load merges defaults, the --config file, TMCALC_* variables and the flags
// of cmd.
func load(cmd *cobra.Command) (config.Config, error) {
	v := config.New()
	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		return config.Config{}, err
	}
	path, _ := cmd.Flags().GetString("config")
	return config.Load(v, path)
}
