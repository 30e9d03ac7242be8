// Command mockgen generates synthetic event feedback, writes it as a
// spreadsheet and builds the rating summary report.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/swarnavabiswas0/Feedback/internal/charts"
	"github.com/swarnavabiswas0/Feedback/internal/config"
	"github.com/swarnavabiswas0/Feedback/internal/exporter"
	"github.com/swarnavabiswas0/Feedback/internal/files"
	"github.com/swarnavabiswas0/Feedback/internal/infrastructure"
	"github.com/swarnavabiswas0/Feedback/internal/mockdata"
	"github.com/swarnavabiswas0/Feedback/internal/report"
	"github.com/swarnavabiswas0/Feedback/internal/services"
	"github.com/swarnavabiswas0/Feedback/internal/session"
	"github.com/swarnavabiswas0/Feedback/internal/tui"
	"github.com/swarnavabiswas0/Feedback/pkg/contracts"
)

type options struct {
	count       int
	event       string
	date        string
	out         string
	format      string
	csv         bool
	charts      bool
	interactive bool
	seed        uint64
}

func parseFlags(args []string, defaultOut string) (options, error) {
	fs := flag.NewFlagSet("mockgen", flag.ContinueOnError)
	var o options
	fs.IntVar(&o.count, "n", 50, "number of students to generate")
	fs.StringVar(&o.event, "event", "", "event name")
	fs.StringVar(&o.date, "date", "", "event date as DD-MM-YYYY")
	fs.StringVar(&o.out, "out", defaultOut, "output directory (defaults to data/reports relative to executable)")
	fs.StringVar(&o.format, "format", "", "summary format: docx | pdf (defaults to the configured format)")
	fs.BoolVar(&o.csv, "csv", false, "also write the responses as CSV")
	fs.BoolVar(&o.charts, "charts", false, "also write every histogram as PNG into <out>/charts")
	fs.BoolVar(&o.interactive, "interactive", false, "enter the parameters in a terminal form")
	fs.Uint64Var(&o.seed, "seed", 0, "random seed for reproducible output (0 picks one)")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if !o.interactive && (o.event == "" || o.date == "") {
		return options{}, errors.New("-event and -date are required unless -interactive is set")
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
	logger := infrastructure.WithComponent(infrastructure.NewLogger(os.Stderr, cfg.Logging.Level), "mockgen")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	ctx = infrastructure.EnsureTraceID(ctx)
	err = run(ctx, cfg, logger, os.Args[1:], paths, os.Stdin, os.Stdout)
	stop()
	if errors.Is(err, tui.ErrCancelled) {
		fmt.Fprintln(os.Stderr, "mockgen: cancelled")
		os.Exit(130)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "mockgen:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger, args []string, paths *config.Paths, stdin io.Reader, stdout io.Writer) error {
	opts, err := parseFlags(args, paths.ReportsDir)
	if err != nil {
		return err
	}

	defaultFormat, err := report.ParseFormat(cfg.Report.Format)
	if err != nil {
		return err
	}

	if opts.interactive {
		format := defaultFormat
		if opts.format != "" {
			if format, err = report.ParseFormat(opts.format); err != nil {
				return err
			}
		}
		values, err := tui.Run(ctx, stdin, stdout, tui.Values{
			EventName: opts.event,
			EventDate: opts.date,
			Count:     opts.count,
			Format:    format,
		})
		if err != nil {
			return err
		}
		opts.event, opts.date, opts.count = values.EventName, values.EventDate, values.Count
		opts.format = string(values.Format)
	}

	manager := files.NewManager(paths, logger)
	if err := manager.EnsureDirectory(opts.out); err != nil {
		return fmt.Errorf("cannot create output directory: %w", err)
	}

	logger.InfoContext(ctx, "Starting mock feedback generation",
		slog.Int("count", opts.count),
		slog.String("event_name", opts.event),
		slog.String("output_dir", opts.out))

	serviceOpts := services.Options{
		Renderer:      charts.NewRenderer(cfg.Report.ChartWidth, cfg.Report.ChartHeight),
		Logger:        logger,
		DefaultFormat: defaultFormat,
	}
	var generator *mockdata.Generator
	if opts.seed != 0 {
		generator = mockdata.NewGenerator(
			mockdata.WithRand(rand.New(rand.NewPCG(opts.seed, opts.seed))),
			mockdata.WithLogger(logger))
	}
	svc := services.NewGeneratorService(serviceOpts, generator)

	var display charts.Display
	if opts.charts {
		display = charts.DirDisplay{Dir: filepath.Join(opts.out, "charts")}
	}

	sess, _ := session.NewStore(cfg.Session.TTL, session.WithLogger(logger)).Create()
	result, err := svc.Generate(ctx, sess, services.GenerateInput{
		Count:     opts.count,
		EventName: opts.event,
		EventDate: opts.date,
		Format:    opts.format,
		Display:   display,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Generated %d responses for %s (%s)\n",
		result.Event.Participants, result.Event.Name, result.Event.DateInput)
	for _, r := range result.Preview {
		fmt.Fprintf(stdout, "  %s  %s  %v\n", r.Name, r.FormattedTimestamp(), r.Ratings)
	}

	written, err := manager.WriteArtifacts(opts.out, result.Artifacts)
	if err != nil {
		return err
	}
	for _, path := range written {
		fmt.Fprintln(stdout, "Wrote", path)
	}

	if opts.csv {
		name := services.FileBase(result.Event.Name) + config.MockFeedbackSuffix + ".csv"
		path, err := exporter.NewCSVWriter(paths, logger).
			WriteRecords(filepath.Join(opts.out, name), result.Records, result.Questions)
		if err != nil {
			return fmt.Errorf("failed to write CSV: %w", err)
		}
		fmt.Fprintln(stdout, "Wrote", path)
	}

	logger.InfoContext(ctx, "Mock feedback generation complete",
		slog.Int("participants", result.Event.Participants),
		slog.Int("files", len(result.Artifacts)))
	return nil
}
