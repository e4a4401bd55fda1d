package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/stuartin/azenix-challenge/internal/config"
	"github.com/stuartin/azenix-challenge/internal/entries"
	"github.com/stuartin/azenix-challenge/internal/ingest"
	"github.com/stuartin/azenix-challenge/internal/logger"
	"github.com/stuartin/azenix-challenge/internal/metrics"
	"github.com/stuartin/azenix-challenge/internal/parser"
	"github.com/stuartin/azenix-challenge/internal/report"
	"github.com/stuartin/azenix-challenge/internal/state"
	"github.com/stuartin/azenix-challenge/internal/types"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var code int
	switch os.Args[1] {
	case "summary":
		code = summaryCommand(ctx, os.Args[2:], os.Stdout, os.Stderr)
	case "history":
		code = historyCommand(os.Args[2:], os.Stdout, os.Stderr)
	case "version":
		fmt.Println("log-parse", version)
	default:
		printUsage(os.Stderr)
		code = 2
	}
	os.Exit(code)
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: log-parse <command> [flags]")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  summary   Parse an access log and print top URLs, top IPs and unique IPs")
	fmt.Fprintln(w, "  history   List previous summary runs")
	fmt.Fprintln(w, "  version   Print the version")
}

type summaryFlags struct {
	configPath  string
	logFile     string
	verbose     bool
	top         int
	format      string
	workers     int
	skipInvalid bool
	metricsFile string
	historyDB   string
}

func parseSummaryFlags(args []string, stderr io.Writer) (*types.Config, error) {
	fs := flag.NewFlagSet("summary", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var f summaryFlags
	fs.StringVar(&f.configPath, "config", "", "Path to config file")
	fs.StringVar(&f.logFile, "log-file", "", "The file path of the file to parse (.gz supported)")
	fs.BoolVar(&f.verbose, "verbose", false, "Enable verbose logging to console")
	fs.IntVar(&f.top, "top", 0, "Number of top URLs and IPs to show (default 3)")
	fs.StringVar(&f.format, "format", "", "Output format: text or json (default text)")
	fs.IntVar(&f.workers, "workers", 0, "Parse lines in parallel with this many workers")
	fs.BoolVar(&f.skipInvalid, "skip-invalid", false, "Skip malformed lines instead of failing")
	fs.StringVar(&f.metricsFile, "metrics-file", "", "Write Prometheus textfile metrics to this path")
	fs.StringVar(&f.historyDB, "history-db", "", "Record the run in this SQLite database")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg, err := config.LoadConfig(f.configPath)
	if err != nil {
		return nil, err
	}

	// flags win over the file when set
	set := map[string]bool{}
	fs.Visit(func(fl *flag.Flag) { set[fl.Name] = true })

	if set["log-file"] {
		cfg.Input.LogFile = f.logFile
	}
	if set["verbose"] && f.verbose {
		cfg.Logging.Level = "info"
	}
	if set["top"] {
		if f.top < 0 {
			return nil, fmt.Errorf("-top must not be negative")
		}
		cfg.Report.Top = f.top
	}
	if set["format"] {
		switch types.OutputFormat(f.format) {
		case types.FormatText, types.FormatJSON:
			cfg.Report.Format = types.OutputFormat(f.format)
		default:
			return nil, fmt.Errorf("invalid -format %q (want text or json)", f.format)
		}
	}
	if set["workers"] && f.workers > 0 {
		cfg.Input.Workers = f.workers
	}
	if set["skip-invalid"] {
		cfg.Input.SkipInvalid = f.skipInvalid
	}
	if set["metrics-file"] {
		cfg.Output.MetricsFile = f.metricsFile
	}
	if set["history-db"] {
		cfg.Output.HistoryDB = f.historyDB
	}

	if cfg.Input.LogFile == "" {
		return nil, errors.New("-log-file is required")
	}
	return cfg, nil
}

func summaryCommand(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, err := parseSummaryFlags(args, stderr)
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(stderr, "Error:", err)
		}
		return 2
	}

	log := logger.Init(cfg)

	if err := runSummary(ctx, cfg, log, stdout); err != nil {
		report.Failure(stdout, err)
		return 1
	}
	return 0
}

// runSummary reads, parses and reports one log file. The input is always
// released, whether or not the run succeeds.
func runSummary(ctx context.Context, cfg *types.Config, log zerolog.Logger, stdout io.Writer) error {
	started := time.Now()

	ing := ingest.Open(cfg.Input.LogFile)
	defer func() {
		if err := ing.Stop(); err != nil {
			log.Warn().Err(err).Str("component", "ingest").Msg("failed to close log file")
		}
	}()

	lines, err := ingest.ReadAll(ing)
	if err != nil {
		return err
	}
	log.Info().Str("component", "ingest").Str("file", cfg.Input.LogFile).Int("lines", len(lines)).Msg("log file read")

	p := parser.NewHTTPParser(log)
	results, err := p.ParseAll(ctx, lines, cfg.Input.Workers)
	if err != nil {
		return err
	}

	m := metrics.New()
	m.Record(results)
	if cfg.Output.MetricsFile != "" {
		defer func() {
			if err := m.WriteTextfile(cfg.Output.MetricsFile); err != nil {
				log.Warn().Err(err).Str("component", "metrics").Msg("metrics not written")
			}
		}()
	}

	parsed := parser.Entries(results)
	failed := len(results) - len(parsed)
	if failed > 0 {
		if !cfg.Input.SkipInvalid {
			return parser.FirstError(results)
		}
		log.Warn().Str("component", "parser").Int("skipped", failed).Msg("malformed lines skipped")
	}

	collection := entries.NewCollection(parsed)
	summary, err := report.Build(collection, cfg.Report.Top)
	if err != nil {
		return err
	}

	switch cfg.Report.Format {
	case types.FormatJSON:
		err = report.WriteJSON(stdout, summary)
	default:
		err = report.WriteText(stdout, summary)
	}
	if err != nil {
		return err
	}

	if cfg.Output.HistoryDB != "" {
		if err := saveRun(cfg, summary, started, len(results), len(parsed), failed); err != nil {
			log.Warn().Err(err).Str("component", "state").Msg("run not recorded")
		}
	}

	log.Info().Dur("took", time.Since(started)).Int("entries", collection.Len()).Msg("summary complete")
	return nil
}

func saveRun(cfg *types.Config, s *report.Summary, started time.Time, lines, parsed, failed int) error {
	store, err := state.NewStore(cfg.Output.HistoryDB)
	if err != nil {
		return err
	}
	defer store.Close()

	_, err = store.SaveRun(state.Run{
		LogFile:   cfg.Input.LogFile,
		CreatedAt: started,
		Lines:     lines,
		Parsed:    parsed,
		Failed:    failed,
		UniqueIPs: len(s.UniqueIPs),
		TopURLs:   s.TopURLs,
		TopIPs:    s.TopIPs,
	})
	return err
}

func historyCommand(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	fs.SetOutput(stderr)
	dbPath := fs.String("history-db", "log-parse.db", "SQLite database written by summary -history-db")
	limit := fs.Int("limit", 10, "Number of runs to show")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	store, err := state.NewStore(*dbPath)
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	defer store.Close()

	runs, err := store.ListRuns(*limit)
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	if len(runs) == 0 {
		fmt.Fprintln(stdout, "No runs recorded.")
		return 0
	}

	for _, r := range runs {
		fmt.Fprintf(stdout, "#%d %s %s lines=%d parsed=%d failed=%d unique_ips=%d\n",
			r.ID, r.CreatedAt.Format(time.RFC3339), r.LogFile, r.Lines, r.Parsed, r.Failed, r.UniqueIPs)
		for _, c := range r.TopURLs {
			fmt.Fprintf(stdout, "    url (%d) - %s\n", c.Count, c.Value)
		}
		for _, c := range r.TopIPs {
			fmt.Fprintf(stdout, "    ip  (%d) - %s\n", c.Count, c.Value)
		}
	}
	return 0
}
