package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/user/nec_apg_go/internal/analysis"
	"github.com/user/nec_apg_go/internal/config"
	"github.com/user/nec_apg_go/internal/deck"
	"github.com/user/nec_apg_go/internal/parser"
	"github.com/user/nec_apg_go/internal/report"
	"github.com/user/nec_apg_go/internal/solver"
)

// App runs the deck -> nec2c -> report -> gnuplot pipeline.
type App struct {
	cfg     *config.Config
	logger  *zap.Logger
	stdout  io.Writer
	profile *deck.SweepProfile
	solver  *solver.Invoker
}

type source struct {
	Path string
	Kind analysis.Kind
}

// NewApp creates the pipeline for a validated configuration.
func NewApp(cfg *config.Config, logger *zap.Logger, stdout, stderr io.Writer) *App {
	return &App{
		cfg:    cfg,
		logger: logger,
		stdout: stdout,
		solver: &solver.Invoker{
			Path:    cfg.SolverPath,
			Stdout:  stdout,
			Stderr:  stderr,
			Timeout: cfg.GetSolverTimeout(),
		},
	}
}

// Preflight checks everything that can be checked before any deck is
// touched. All failures are *config.ConfigurationError.
func (a *App) Preflight(files []string) ([]source, error) {
	if err := a.cfg.Validate(); err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, config.Errorf("input files", "", "at least one inputfile.nec or inputfile.out is required")
	}

	profile, err := deck.LookupProfile(a.cfg.SweepProfile)
	if err != nil {
		return nil, err
	}
	a.profile = profile

	sources := make([]source, 0, len(files))
	needSolver := false
	for _, f := range files {
		fi, err := os.Stat(f)
		if err != nil || !fi.Mode().IsRegular() {
			return nil, &config.ConfigurationError{Field: "input file", Value: f, Reason: "does not exist or is not a file", Err: err}
		}
		kind, err := analysis.Classify(f, a.cfg.InputType)
		if err != nil {
			return nil, err
		}
		needSolver = needSolver || kind == analysis.KindDeck
		sources = append(sources, source{Path: f, Kind: kind})
	}

	for _, dst := range []string{a.cfg.GnuplotFile, a.cfg.PreviewPNG, a.cfg.ReportPDF} {
		if dst == "" {
			continue
		}
		if err := report.CheckDestination(dst, a.cfg.Force); err != nil {
			return nil, &config.ConfigurationError{Field: "output file", Value: dst, Reason: "can not be written", Err: err}
		}
	}

	if needSolver {
		if err := solver.CheckExecutable(a.cfg.SolverPath); err != nil {
			return nil, err
		}
	}
	return sources, nil
}

// Run processes every file in order and writes the gnuplot script, plus the
// optional PNG preview and PDF report. Nothing is written if any file fails.
func (a *App) Run(ctx context.Context, files []string) error {
	sources, err := a.Preflight(files)
	if err != nil {
		return err
	}

	if a.profile != nil {
		a.logger.Info("Using FR card", zap.String("profile", a.profile.Name), zap.String("card", a.profile.Card))
	}

	var collector analysis.Collector
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return err
		}
		a.logger.Info("Treating input", zap.String("file", src.Path), zap.Stringer("as", src.Kind))

		series, err := a.processSource(ctx, src)
		if err != nil {
			return err
		}
		if err := collector.Add(series); err != nil {
			return err
		}
		a.logger.Debug("Parsed series", zap.String("file", src.Path), zap.Int("samples", series.Len()))
	}

	return a.writeOutputs(collector.Series())
}

func (a *App) processSource(ctx context.Context, src source) (parser.Series, error) {
	if src.Kind == analysis.KindResult {
		return parser.ParseResultFile(src.Path)
	}

	replaced, err := deck.Prepare(src.Path, a.profile)
	if err != nil {
		return parser.Series{}, err
	}
	for _, r := range replaced {
		a.logger.Info(fmt.Sprintf("Replacing %s card", r.Tag),
			zap.String("file", src.Path), zap.Int("line", r.Line), zap.String("card", r.New))
	}

	a.logger.Info("Executing", zap.String("solver", a.solver.Path), zap.Strings("args", solver.Args(src.Path)))
	res, err := a.solver.Run(ctx, src.Path)
	if err != nil {
		return parser.Series{}, err
	}
	a.logger.Debug("Solver finished", zap.Int("exit_code", res.ExitCode), zap.Duration("took", res.Duration))

	series, err := parser.ParseResultFile(res.OutputPath)
	if err != nil {
		return parser.Series{}, err
	}
	// the legend names the deck the user passed, not the derived .out
	series.Label = src.Path
	return series, nil
}

func (a *App) writeOutputs(series []parser.Series) error {
	var results *analysis.AnalysisResults
	plotImages := make(map[string][]byte)
	if a.cfg.PreviewPNG != "" || a.cfg.ReportPDF != "" {
		var err error
		results, err = analysis.AnalyzeSeries(series)
		if err != nil {
			return err
		}
		for _, e := range results.AnalysisErrors {
			a.logger.Warn(e)
		}

		img, err := report.CreateEfficiencyPlot(results)
		if err != nil {
			return err
		}
		plotImages[report.ImageEfficiency] = img
		if heat, err := report.CreateBandHeatmap(results); err != nil {
			a.logger.Warn("Skipping band heatmap", zap.Error(err))
		} else {
			plotImages[report.ImageBandHeat] = heat
		}
	}

	if a.cfg.PreviewPNG != "" {
		a.logger.Info("Writing", zap.String("file", a.cfg.PreviewPNG))
		if err := report.WriteImage(a.cfg.PreviewPNG, plotImages[report.ImageEfficiency], a.cfg.Force); err != nil {
			return err
		}
	}
	if a.cfg.ReportPDF != "" {
		a.logger.Info("Writing", zap.String("file", a.cfg.ReportPDF))
		if err := report.BuildPDFReport(a.cfg.ReportPDF, results, plotImages, a.cfg.Force); err != nil {
			return err
		}
	}

	// script last: no script is left behind when an optional output fails
	a.logger.Info("Writing", zap.String("file", a.cfg.GnuplotFile))
	if err := report.GenerateGnuplotFile(a.cfg.GnuplotFile, series, a.cfg.Force); err != nil {
		return err
	}

	fmt.Fprintf(a.stdout, "View plot by executing: gnuplot -p %s\n", a.cfg.GnuplotFile)
	return nil
}
