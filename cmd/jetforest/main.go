// Command jetforest turns reconstructed collision events into flat jet
// feature records, written to a ROOT tree and/or a SQLite database, with
// QA plots on the side.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/banshee-data/jetforest/internal/config"
	"github.com/banshee-data/jetforest/internal/fsutil"
	"github.com/banshee-data/jetforest/internal/jets/assembler"
	"github.com/banshee-data/jetforest/internal/jets/event"
	"github.com/banshee-data/jetforest/internal/jets/pipeline"
	"github.com/banshee-data/jetforest/internal/monitoring"
	"github.com/banshee-data/jetforest/internal/qa"
	"github.com/banshee-data/jetforest/internal/sink"
	"github.com/banshee-data/jetforest/internal/sink/rootsink"
	"github.com/banshee-data/jetforest/internal/sink/sqlitesink"
	"github.com/banshee-data/jetforest/internal/version"
)

var errUsage = errors.New("usage")

func main() {
	log.SetPrefix("jetforest: ")
	log.SetFlags(log.LstdFlags)

	err := execute(context.Background(), os.Args[1:], os.Stdout)
	switch {
	case err == nil:
	case errors.Is(err, errUsage):
		printUsage(os.Stderr)
		os.Exit(2)
	default:
		log.Printf("%v", err)
		os.Exit(1)
	}
}

func execute(ctx context.Context, args []string, stdout io.Writer) error {
	if len(args) < 1 {
		return errUsage
	}
	command, rest := args[0], args[1:]

	switch command {
	case "run":
		return handleRun(ctx, rest, stdout)
	case "migrate":
		return handleMigrate(rest, stdout)
	case "version":
		fmt.Fprintln(stdout, version.String())
		return nil
	case "help":
		printUsage(stdout)
		return nil
	default:
		return fmt.Errorf("unknown command %q: %w", command, errUsage)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `jetforest - jet feature extraction for collision events

Usage: jetforest <command> [options]

Commands:
  run        Process an event file into ROOT and/or SQLite output
  migrate    Manage the SQLite schema (up, down, version)
  version    Show build information
  help       Show this help message

Run flags:
  -config <file>      Analyzer configuration (JSON); defaults apply when omitted
  -input <file>       Input events, one JSON object per line (required)
  -root <file>        Write records to a ROOT file
  -db <file>          Write records to a SQLite database
  -qa-dir <dir>       Write QA plots, report and summary
  -max-events <n>     Stop after n events (0 = all)
  -debug              Per-event debug logging

Examples:
  jetforest run -input events.jsonl -root forest.root -qa-dir qa/
  jetforest migrate -db forest.db version`)
}

func loadConfig(path string) (*config.AnalyzerConfig, error) {
	if path == "" {
		cfg := config.EmptyAnalyzerConfig()
		return cfg, cfg.Validate()
	}
	return config.LoadAnalyzerConfig(path)
}

func handleRun(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	configPath := fs.String("config", "", "analyzer configuration file")
	input := fs.String("input", "", "input event file (JSON lines)")
	rootPath := fs.String("root", "", "output ROOT file")
	dbPath := fs.String("db", "", "output SQLite database")
	qaDir := fs.String("qa-dir", "", "QA output directory")
	maxEvents := fs.Int("max-events", 0, "stop after this many events")
	debug := fs.Bool("debug", false, "enable debug logging")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("run: %w", errUsage)
	}
	if *input == "" {
		return fmt.Errorf("run: -input is required: %w", errUsage)
	}
	monitoring.SetDebug(*debug)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	opts := assembler.OptionsFrom(cfg)

	src, err := event.OpenJSONL(*input)
	if err != nil {
		return err
	}
	defer src.Close()

	runID := uuid.New()
	var (
		sinks sink.Multi
		root  *rootsink.Writer
	)
	if *rootPath != "" {
		if root, err = rootsink.Create(*rootPath); err != nil {
			return err
		}
		sinks = append(sinks, root)
	}
	if *dbPath != "" {
		cfgJSON, err := json.Marshal(cfg)
		if err != nil {
			sinks.Close()
			return fmt.Errorf("encode config: %w", err)
		}
		store, err := sqlitesink.Open(ctx, *dbPath, sqlitesink.Run{ID: runID, Config: string(cfgJSON)})
		if err != nil {
			sinks.Close()
			return err
		}
		sinks = append(sinks, store)
	}
	var out sink.Sink = sinks
	if len(sinks) == 0 {
		out = sink.Discard{}
	}

	mon := qa.New()
	runCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner := &pipeline.Runner{
		RunID:     runID,
		Source:    src,
		Assembler: assembler.New(opts),
		Sink:      out,
		Monitor:   mon,
		MaxEvents: *maxEvents,
	}
	stats, runErr := runner.Run(runCtx)

	if root != nil {
		mon.Register(root)
	}
	closeErr := out.Close()
	var qaErr error
	if *qaDir != "" {
		qaErr = mon.Write(fsutil.OSFileSystem{}, *qaDir)
	}

	s := mon.Summary()
	fmt.Fprintf(stdout, "run %s\n", stats.RunID)
	fmt.Fprintf(stdout, "events %d aborted %d jets %d gen_jets %d truncated %d elapsed %s\n",
		stats.Processed, stats.Aborted, stats.Jets, stats.GenJets, stats.Truncated, stats.Elapsed)
	if s.MatchedJets > 0 {
		fmt.Fprintf(stdout, "response mean %.3f stddev %.3f median %.3f (%d matched)\n",
			s.ResponseMean, s.ResponseStdDev, s.ResponseMedian, s.MatchedJets)
	}
	return errors.Join(runErr, closeErr, qaErr)
}

func handleMigrate(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	dbPath := fs.String("db", "jetforest.db", "SQLite database")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("migrate: %w", errUsage)
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("migrate: expected one of up, down, version: %w", errUsage)
	}

	db, err := sqlitesink.OpenDB(*dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	switch fs.Arg(0) {
	case "up":
		if err := sqlitesink.MigrateUp(db); err != nil {
			return err
		}
	case "down":
		if err := sqlitesink.MigrateDown(db); err != nil {
			return err
		}
	case "version":
	default:
		return fmt.Errorf("migrate: unknown action %q: %w", fs.Arg(0), errUsage)
	}

	v, dirty, err := sqlitesink.MigrateVersion(db)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "schema version %d dirty %t\n", v, dirty)
	return nil
}
