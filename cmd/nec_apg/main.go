package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/user/nec_apg_go/internal/config"
	"github.com/user/nec_apg_go/internal/deck"
)

// options mirrors the command line flags before they are merged into the
// loaded configuration.
type options struct {
	configPath string
	inputType  string
	solverPath string
	sweep      string
	gnuplot    string
	png        string
	pdf        string
	timeout    string
	force      bool
	verbose    bool
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}
	defaults := config.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "nec_apg [flags] inputfile.nec|inputfile.out [input2.nec|input2.out...]",
		Short: "Plot NEC2 AVERAGE POWER GAIN / 2 (radiation efficiency) with gnuplot",
		Long: fmt.Sprintf(`nec_apg turns NEC2 decks or nec2c reports into one gnuplot script that
compares the radiation efficiency (AVERAGE POWER GAIN / 2) of every input.

For a NEC2 deck (.nec, .nec2, .nec2c) the 4th field of every RP card is
rewritten so its last digit is 1, which makes nec2c report AVERAGE POWER
GAIN, and with -f every FR card is replaced by a predefined one:
%s
The deck is only written back when a card changed; the original card is
kept as a "# " comment. nec2c is then run as
  nec2c -i input.nec -o input.out
and the report is parsed. Reports (.out) are parsed directly.

View the result with: gnuplot -p %s`, profileUsage(), defaults.GnuplotFile),
		Example: `  nec_apg -f hf -n /usr/local/bin/nec2c comparison-endfed-10m.nec comparison-centerfed-10m.nec
  nec_apg -f nvis longwire-22m.nec doublet-22m.nec sloper-22m.nec`,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.MinimumNArgs(1)(cmd, args); err != nil {
				return &usageError{err: err}
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			opts.apply(cmd, cfg)

			logger, err := newLogger(cfg.Logging.Level, opts.verbose, stderr)
			if err != nil {
				return &config.ConfigurationError{Field: "logging level", Value: cfg.Logging.Level, Reason: "unknown level", Err: err}
			}
			defer func() { _ = logger.Sync() }()

			return NewApp(cfg, logger, stdout, stderr).Run(cmd.Context(), args)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	f := cmd.Flags()
	f.StringVarP(&opts.inputType, "input-type", "i", defaults.InputType, "type of input file: nec2|out|auto")
	f.StringVarP(&opts.solverPath, "nec2c", "n", defaults.SolverPath, "path to nec2c (env NEC2C)")
	f.StringVarP(&opts.sweep, "fr", "f", defaults.SweepProfile, "replace FR cards with a predefined card: "+strings.Join(deck.ProfileNames(), "|"))
	f.StringVarP(&opts.gnuplot, "gnuplot-file", "g", defaults.GnuplotFile, "gnuplot output file")
	f.BoolVarP(&opts.force, "force", "F", false, "force overwriting the output files if they exist")
	f.StringVar(&opts.png, "png", "", "also render a PNG preview to this file")
	f.StringVar(&opts.pdf, "pdf", "", "also write a PDF summary report to this file")
	f.StringVar(&opts.timeout, "timeout", "", "abort nec2c after this duration, e.g. 2m (default none)")
	f.StringVar(&opts.configPath, "config", "", "YAML configuration file")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")
	return cmd
}

// apply overrides configuration values with the flags set on the command line.
func (o *options) apply(cmd *cobra.Command, cfg *config.Config) {
	f := cmd.Flags()
	if f.Changed("input-type") {
		cfg.InputType = o.inputType
	}
	if f.Changed("nec2c") {
		cfg.SolverPath = o.solverPath
	}
	if f.Changed("fr") {
		cfg.SweepProfile = o.sweep
	}
	if f.Changed("gnuplot-file") {
		cfg.GnuplotFile = o.gnuplot
	}
	if f.Changed("force") {
		cfg.Force = o.force
	}
	if f.Changed("png") {
		cfg.PreviewPNG = o.png
	}
	if f.Changed("pdf") {
		cfg.ReportPDF = o.pdf
	}
	if f.Changed("timeout") {
		cfg.SolverTimeout = o.timeout
	}
}

func profileUsage() string {
	var b strings.Builder
	for _, name := range deck.ProfileNames()[1:] {
		fmt.Fprintf(&b, "  %-5s %s\n", name, deck.Profiles[name].Card)
	}
	return b.String()
}

// usageError marks bad command line syntax; usage is printed for it.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

// exitCode maps an error to the process exit status.
func exitCode(ctx context.Context, err error) int {
	if err == nil {
		return 0
	}
	if ctx.Err() != nil {
		return 130
	}
	var cfgErr *config.ConfigurationError
	var uErr *usageError
	if errors.As(err, &cfgErr) || errors.As(err, &uErr) {
		return 2
	}
	return 1
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(stderr, "ERROR:", err)
		var uErr *usageError
		if errors.As(err, &uErr) {
			fmt.Fprint(stderr, cmd.UsageString())
		}
	}
	return exitCode(ctx, err)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
