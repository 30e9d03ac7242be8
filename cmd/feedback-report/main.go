// Command feedback-report analyzes a survey export offline and writes the
// analysis report next to the other generated files.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/swarnavabiswas0/Feedback/internal/charts"
	"github.com/swarnavabiswas0/Feedback/internal/config"
	"github.com/swarnavabiswas0/Feedback/internal/files"
	"github.com/swarnavabiswas0/Feedback/internal/infrastructure"
	"github.com/swarnavabiswas0/Feedback/internal/report"
	"github.com/swarnavabiswas0/Feedback/internal/services"
	"github.com/swarnavabiswas0/Feedback/internal/session"
	"github.com/swarnavabiswas0/Feedback/pkg/contracts"
)

type options struct {
	in     string
	out    string
	format string
	charts bool
}

func parseFlags(args []string, defaultOut string) (options, error) {
	fs := flag.NewFlagSet("feedback-report", flag.ContinueOnError)
	var o options
	fs.StringVar(&o.in, "in", "", "survey export to analyze (.csv or .xlsx), or a directory to analyze its newest export")
	fs.StringVar(&o.out, "out", defaultOut, "output directory for the report (defaults to data/reports relative to executable)")
	fs.StringVar(&o.format, "format", "", "report format: docx | pdf (defaults to the configured format)")
	fs.BoolVar(&o.charts, "charts", false, "also write every chart as PNG into <out>/charts")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if o.in == "" {
		return options{}, errors.New("-in is required")
	}
	abs, err := filepath.Abs(o.out)
	if err != nil {
		return options{}, err
	}
	o.out = abs
	return o, nil
}

func main() {
	if len(os.Args) > 1 && (os.Args[1] == "-version" || os.Args[1] == "--version") {
		fmt.Println(contracts.GetFullVersionString())
		return
	}

	paths, err := config.GetPaths()
	if err != nil {
		slog.Error("Failed to initialize paths", "error", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
	}

	// stdout carries the run summary, so logs go to stderr
	logger := infrastructure.WithComponent(infrastructure.NewLogger(os.Stderr, cfg.Logging.Level), "feedback-report")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	ctx = infrastructure.EnsureTraceID(ctx)
	err = run(ctx, cfg, logger, os.Args[1:], paths, os.Stdout)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "feedback-report:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger, args []string, paths *config.Paths, stdout io.Writer) error {
	opts, err := parseFlags(args, paths.ReportsDir)
	if err != nil {
		return err
	}

	defaultFormat, err := report.ParseFormat(cfg.Report.Format)
	if err != nil {
		return err
	}

	manager := files.NewManager(paths, logger)
	if err := manager.EnsureDirectory(opts.out); err != nil {
		return fmt.Errorf("cannot create output directory: %w", err)
	}

	input, err := resolveInput(opts.in)
	if err != nil {
		return err
	}

	f, err := os.Open(input)
	if err != nil {
		return fmt.Errorf("cannot open input: %w", err)
	}
	defer f.Close()

	logger.InfoContext(ctx, "Starting feedback analysis",
		slog.String("input_file", input),
		slog.String("output_dir", opts.out),
		slog.Bool("charts", opts.charts))

	analyzer := services.NewAnalyzerService(services.Options{
		Renderer:      charts.NewRenderer(cfg.Report.ChartWidth, cfg.Report.ChartHeight),
		Logger:        logger,
		DefaultFormat: defaultFormat,
	})

	var display charts.Display
	if opts.charts {
		display = charts.DirDisplay{Dir: filepath.Join(opts.out, "charts")}
	}

	sess, _ := session.NewStore(cfg.Session.TTL, session.WithLogger(logger)).Create()
	result, err := analyzer.Analyze(ctx, sess, services.AnalyzeInput{
		FileName: filepath.Base(input),
		Reader:   f,
		Format:   opts.format,
		Display:  display,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Analyzed %d responses (%d overall ratings counted as 0)\n", result.Rows, result.CoercedZeros)
	for _, d := range result.Distributions {
		fmt.Fprintf(stdout, "  %s: %d categories\n", d.Title, len(d.Buckets))
	}

	written, err := manager.WriteArtifacts(opts.out, result.Artifacts)
	if err != nil {
		return err
	}
	for _, path := range written {
		fmt.Fprintln(stdout, "Wrote", path)
	}

	logger.InfoContext(ctx, "Feedback analysis complete",
		slog.Int("rows", result.Rows),
		slog.Int("files", len(written)))
	return nil
}

// resolveInput returns path itself, or the newest survey export when path is a directory
func resolveInput(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("cannot open input: %w", err)
	}
	if !info.IsDir() {
		return path, nil
	}
	latest, err := files.LatestSurveyFile(path)
	if err != nil {
		return "", err
	}
	return latest.Path, nil
}
