// sloptastic measures AI-style prose tells in text.
//
//	sloptastic [analyze] [flags] <file>...   Analyze files (txt, md, docx, pdf, html)
//	sloptastic analyze -stdin                Analyze standard input
//	sloptastic serve [-addr host:port]       Serve the HTTP API
//	sloptastic mcp                           Serve MCP tools over stdio
//	sloptastic watch <file>                  Re-analyze a file whenever it is saved
//	sloptastic history [-limit n]            Show saved analysis runs
//	sloptastic history show <id|report.json> Re-render a saved run or report
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/term"

	"sloptastic/internal/config"
	"sloptastic/internal/db"
	"sloptastic/internal/ingest"
	"sloptastic/internal/logging"
	"sloptastic/internal/mcptool"
	"sloptastic/internal/pipeline"
	"sloptastic/internal/report"
	"sloptastic/internal/server"
	"sloptastic/internal/watch"
	"sloptastic/internal/workspace"
)

const (
	exitOK    = 0
	exitError = 1
	exitTells = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd := "analyze"
	if len(args) > 0 {
		switch args[0] {
		case "analyze", "serve", "mcp", "watch", "history":
			cmd, args = args[0], args[1:]
		case "help", "-h", "--help":
			usage(stdout)
			return exitOK
		}
	}

	switch cmd {
	case "serve":
		return cmdServe(ctx, args, stderr)
	case "mcp":
		return cmdMCP(ctx, args, stderr)
	case "watch":
		return cmdWatch(ctx, args, stdout, stderr)
	case "history":
		return cmdHistory(args, stdout, stderr)
	default:
		return cmdAnalyze(args, stdin, stdout, stderr)
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  sloptastic [analyze] [flags] <file>...")
	fmt.Fprintln(w, "  sloptastic analyze -stdin [flags]")
	fmt.Fprintln(w, "  sloptastic serve [-addr host:port]")
	fmt.Fprintln(w, "  sloptastic mcp")
	fmt.Fprintln(w, "  sloptastic watch [flags] <file>")
	fmt.Fprintln(w, "  sloptastic history [-limit n] [-format text|json]")
	fmt.Fprintln(w, "  sloptastic history show [flags] <run-id|report.json>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'sloptastic <command> -h' for command flags.")
}

// setup loads config and builds the stderr logger shared by every command.
func setup(configPath string, stderr io.Writer) (config.Config, *slog.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, nil, err
	}
	logger, err := logging.New(stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, logger, nil
}

// flagsSet reports which flags were given explicitly, so they can override
// config values without clobbering them with flag defaults.
func flagsSet(fs *flag.FlagSet) map[string]bool {
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

func colorDisabled(cfg config.Config, w io.Writer) bool {
	if cfg.NoColor {
		return true
	}
	f, ok := w.(*os.File)
	return !ok || !term.IsTerminal(int(f.Fd()))
}

func cmdAnalyze(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "Path to a YAML config file")
	format := fs.String("format", "", "Output format: markdown, json, yaml or text")
	noColor := fs.Bool("no-color", false, "Disable colored output")
	workers := fs.Int("workers", 0, "Concurrent analyses (0 = one per CPU)")
	fromStdin := fs.Bool("stdin", false, "Read text from standard input")
	save := fs.Bool("save", false, "Save reports and history to the workspace")
	failOnTells := fs.Bool("fail-on-tells", false, "Exit with status 2 when any tell is found")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitError
	}

	cfg, logger, err := setup(*configPath, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	set := flagsSet(fs)
	if set["format"] {
		cfg.Format = *format
	}
	if set["no-color"] {
		cfg.NoColor = *noColor
	}
	if set["workers"] {
		cfg.Workers = *workers
	}
	if *save {
		cfg.History = true
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	var docs []report.Document
	code := exitOK
	switch {
	case *fromStdin:
		text, err := ingest.ReadText(stdin, cfg.MaxInputBytes)
		if err != nil {
			fmt.Fprintf(stderr, "Error reading stdin: %v\n", err)
			return exitError
		}
		docs = append(docs, report.Build("", text))
	case fs.NArg() == 0:
		usage(stderr)
		return exitError
	default:
		results := pipeline.AnalyzeSources(fs.Args(), cfg.Workers, pipeline.FileLoader(cfg.MaxInputBytes), logger)
		if errs := pipeline.Errors(results); len(errs) > 0 {
			for _, err := range errs {
				fmt.Fprintf(stderr, "Error: %v\n", err)
			}
			code = exitError
		}
		docs = pipeline.Documents(results)
	}

	if len(docs) > 0 {
		opts := report.Options{NoColor: colorDisabled(cfg, stdout)}
		if err := report.Render(stdout, cfg.Format, docs, opts); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitError
		}
	}

	if cfg.History && len(docs) > 0 {
		if err := persist(cfg.Workspace, docs, logger); err != nil {
			fmt.Fprintf(stderr, "Error saving history: %v\n", err)
			code = exitError
		}
	}

	if code == exitOK && *failOnTells {
		for _, d := range docs {
			if !d.Verdict.NoTells {
				return exitTells
			}
		}
	}
	return code
}

func persist(root string, docs []report.Document, logger *slog.Logger) error {
	layout, err := workspace.EnsureAt(root)
	if err != nil {
		return err
	}
	for _, d := range docs {
		path, err := workspace.SaveReport(layout, d)
		if err != nil {
			return err
		}
		id, err := db.PersistRun(layout.HistoryDB, d)
		if err != nil {
			return err
		}
		logger.Info("run saved", "source", d.Source, "run_id", id, "report", path)
	}
	return nil
}

func cmdServe(ctx context.Context, args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "Path to a YAML config file")
	addr := fs.String("addr", "", "Listen address (default from config)")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitError
	}

	cfg, logger, err := setup(*configPath, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	srv := server.New(server.Config{Addr: cfg.Server.Addr, MaxBodyBytes: cfg.Server.MaxBodyBytes}, logger)
	if err := srv.ListenAndServe(ctx); err != nil {
		logger.Error("server stopped", "err", err)
		return exitError
	}
	return exitOK
}

func cmdMCP(ctx context.Context, args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "Path to a YAML config file")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitError
	}

	_, logger, err := setup(*configPath, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	logger.Info("mcp server starting on stdio")
	if err := mcptool.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("mcp server stopped", "err", err)
		return exitError
	}
	return exitOK
}

func cmdWatch(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "Path to a YAML config file")
	format := fs.String("format", "", "Output format: markdown, json, yaml or text")
	noColor := fs.Bool("no-color", false, "Disable colored output")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitError
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(stderr, "Usage: sloptastic watch [flags] <file>")
		return exitError
	}

	cfg, logger, err := setup(*configPath, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	set := flagsSet(fs)
	if set["format"] {
		cfg.Format = *format
	}
	if set["no-color"] {
		cfg.NoColor = *noColor
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	opts := report.Options{NoColor: colorDisabled(cfg, stdout)}
	analyze := func(path string) {
		parsed, err := ingest.ParseFile(path, cfg.MaxInputBytes)
		if err != nil {
			logger.Warn("analysis failed", "path", path, "err", err)
			return
		}
		doc := report.Build(path, parsed.Text)
		if err := report.Render(stdout, cfg.Format, []report.Document{doc}, opts); err != nil {
			logger.Warn("render failed", "path", path, "err", err)
		}
	}

	path := fs.Arg(0)
	analyze(path)
	debounce := time.Duration(cfg.Watch.DebounceMs) * time.Millisecond
	if err := watch.File(ctx, path, debounce, analyze, logger); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	return exitOK
}

func cmdHistory(args []string, stdout, stderr io.Writer) int {
	if len(args) > 0 && args[0] == "show" {
		return cmdHistoryShow(args[1:], stdout, stderr)
	}

	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "Path to a YAML config file")
	limit := fs.Int("limit", 20, "Maximum runs to show")
	format := fs.String("format", "text", "Output format: text or json")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitError
	}

	cfg, _, err := setup(*configPath, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	layout := workspace.LayoutAt(cfg.Workspace)
	if _, err := os.Stat(layout.HistoryDB); os.IsNotExist(err) {
		fmt.Fprintf(stderr, "No history at %s (run analyze with -save first)\n", layout.HistoryDB)
		return exitError
	}
	runs, err := db.ListRuns(layout.HistoryDB, *limit)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	switch *format {
	case "json":
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(runs); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitError
		}
	case "text":
		total, err := db.CountRows(layout.HistoryDB, "runs")
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitError
		}
		fmt.Fprintf(stdout, "%d of %d runs\n", len(runs), total)
		for _, r := range runs {
			source := r.Source
			if source == "" {
				source = "<stdin>"
			}
			fmt.Fprintf(stdout, "%s  %s  %d words  %d tells  %s\n",
				r.AnalyzedAt.Local().Format("2006-01-02 15:04:05"), r.ID[:8], r.WordCount, r.TellCount, source)
			for _, f := range r.Findings {
				fmt.Fprintf(stdout, "    - %s\n", f.Message)
			}
		}
	default:
		fmt.Fprintf(stderr, "Error: unknown history format %q\n", *format)
		return exitError
	}
	return exitOK
}

// cmdHistoryShow re-renders one saved analysis. The argument is either a
// report file written by -save or a run id (or unique id prefix) from the
// history database.
func cmdHistoryShow(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("history show", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "Path to a YAML config file")
	format := fs.String("format", "", "Output format: markdown, json, yaml or text")
	noColor := fs.Bool("no-color", false, "Disable colored output")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitError
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(stderr, "Usage: sloptastic history show [flags] <run-id|report.json>")
		return exitError
	}

	cfg, _, err := setup(*configPath, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	set := flagsSet(fs)
	if set["format"] {
		cfg.Format = *format
	}
	if set["no-color"] {
		cfg.NoColor = *noColor
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	doc, err := loadSaved(fs.Arg(0), workspace.LayoutAt(cfg.Workspace))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	opts := report.Options{NoColor: colorDisabled(cfg, stdout)}
	if err := report.Render(stdout, cfg.Format, []report.Document{doc}, opts); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	return exitOK
}

func loadSaved(ref string, layout workspace.Layout) (report.Document, error) {
	if info, err := os.Stat(ref); err == nil && !info.IsDir() {
		return workspace.LoadReport(ref)
	}
	if _, err := os.Stat(layout.HistoryDB); os.IsNotExist(err) {
		return report.Document{}, fmt.Errorf("no history at %s", layout.HistoryDB)
	}
	return db.LoadRun(layout.HistoryDB, ref)
}
