package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	qerrors "github.com/dshills/QuantaSQL/internal/errors"
	"github.com/dshills/QuantaSQL/internal/config"
	"github.com/dshills/QuantaSQL/internal/log"
	"github.com/dshills/QuantaSQL/internal/source"
	"github.com/dshills/QuantaSQL/internal/sql/dialect"
	"github.com/dshills/QuantaSQL/internal/sql/ast"
	"github.com/dshills/QuantaSQL/internal/sql/format"
	"github.com/dshills/QuantaSQL/internal/sql/param"
	"github.com/dshills/QuantaSQL/internal/sql/parser"
	"github.com/dshills/QuantaSQL/internal/verify"
)

var (
	version = "0.1.0"
	commit  = "unknown"
)

// Exit codes.
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("sqlfmt", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: sqlfmt [options] [file ...]\n\n")
		fmt.Fprintf(stderr, "Formats SQL read from the files, or standard input when none are given.\n")
		fmt.Fprintf(stderr, "Files ending in .lz4 are decompressed.\n\n")
		fs.PrintDefaults()
	}

	var (
		configFile  = fs.String("config", "", "Path to configuration file (JSON or YAML)")
		showVersion = fs.Bool("version", false, "Show version information")
		dialectName = fs.String("dialect", "", "SQL dialect ("+strings.Join(dialect.Names(), ", ")+")")
		indent      = fs.String("indent", "", "Indent unit: tab or a number of spaces")
		compact     = fs.Bool("compact", false, "Print each statement on one line")
		logLevel    = fs.String("log-level", "", "Log level (debug, info, warn, error)")
		verifyDSN   = fs.String("verify-dsn", "", "PostgreSQL DSN to check the output against")
		output      = fs.String("o", "", "Write output to file (compressed when it ends in .lz4)")
		check       = fs.Bool("check", false, "List inputs that are not formatted and exit non-zero")
		listParams  = fs.Bool("params", false, "List bind placeholders instead of formatting")
		binds       []string
	)
	fs.Func("bind", "Value for the next placeholder, or name=value for :name (repeatable)", func(v string) error {
		binds = append(binds, v)
		return nil
	})

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	if *showVersion {
		fmt.Fprintf(stdout, "sqlfmt v%s (commit: %s)\n", version, commit)
		return exitOK
	}

	// Load configuration
	var cfg *config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.LoadFromFile(*configFile)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config file: %v\n", err)
			return exitFailure
		}
	} else {
		cfg = config.DefaultConfig()
	}

	indentUnit, err := parseIndent(*indent)
	if err != nil {
		fmt.Fprintf(stderr, "Invalid -indent: %v\n", err)
		return exitUsage
	}

	// Environment first, then command-line flags
	cfg.LoadFromEnv()
	cfg.LoadFromFlags(*dialectName, indentUnit, *compact, *logLevel, *verifyDSN)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Invalid configuration: %v\n", err)
		return exitUsage
	}

	logger := log.Configure(cfg.Log, stderr)
	d, err := dialect.Lookup(cfg.Dialect)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}
	opts, err := cfg.FormatOptions()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}
	logger.Debug("configuration",
		log.String("dialect", d.Name),
		log.Bool("pretty", opts.Pretty),
		log.Bool("verify", cfg.VerifyEnabled()))

	reader := &source.Reader{MaxBytes: cfg.Input.MaxBytes, Stdin: stdin}
	sources, err := reader.OpenAll(fs.Args())
	if err != nil {
		report(stderr, "sqlfmt", err)
		return exitFailure
	}

	var verifier *verify.Verifier
	if cfg.VerifyEnabled() {
		verifier, err = verify.Open(ctx, cfg.Verify.DSN, cfg.VerifyTimeout(), logger)
		if err != nil {
			report(stderr, "verify", err)
			return exitFailure
		}
		defer verifier.Close()
	}

	var out strings.Builder
	code := exitOK
	for _, src := range sources {
		logger.Debug("read input",
			log.String("name", src.Name),
			log.String("compression", src.Compression.String()),
			log.Int("raw_bytes", int(src.RawSize)),
			log.Int("bytes", len(src.Text)))

		if *listParams {
			if err := printParams(stdout, src, d, logger); err != nil {
				report(stderr, src.Name, err)
				return exitFailure
			}
			continue
		}

		text, err := formatSource(ctx, src, d, opts, binds, verifier, logger)
		if err != nil {
			report(stderr, src.Name, err)
			return exitFailure
		}

		if *check {
			if text != src.Text {
				fmt.Fprintln(stdout, src.Name)
				code = exitFailure
			}
			continue
		}
		out.WriteString(text)
	}

	if *check || *listParams {
		return code
	}

	if *output != "" {
		if err := source.WriteFile(*output, out.String()); err != nil {
			report(stderr, *output, err)
			return exitFailure
		}
		logger.Info("wrote output", log.String("path", *output), log.Int("bytes", out.Len()))
		return exitOK
	}

	if _, err := io.WriteString(stdout, out.String()); err != nil {
		report(stderr, "stdout", qerrors.OutputError(err))
		return exitFailure
	}
	return exitOK
}

// formatSource parses one input and prints it, newline terminated. With a
// verifier the printed statements are also checked against the server.
func formatSource(ctx context.Context, src *source.Source, d *dialect.Dialect, opts format.Options, binds []string, verifier *verify.Verifier, logger log.Logger) (string, error) {
	stmts, err := parseSource(src, d, logger)
	if err != nil {
		return "", err
	}
	if len(binds) > 0 {
		bind, err := param.Bind(binds, nodes(stmts)...)
		if err != nil {
			return "", err
		}
		opts.Bind = bind
	}

	var sb strings.Builder
	if err := format.Statements(&sb, stmts, opts); err != nil {
		return "", err
	}
	if sb.Len() > 0 {
		sb.WriteString("\n")
	}

	if verifier != nil {
		result, err := verifier.Statements(ctx, stmts, opts)
		if err != nil {
			return "", err
		}
		logger.Info("verified input", "name", src.Name, "checked", result.Checked, "skipped", result.Skipped)
	}
	return sb.String(), nil
}

// printParams writes one line per placeholder of each statement of src.
func printParams(w io.Writer, src *source.Source, d *dialect.Dialect, logger log.Logger) error {
	stmts, err := parseSource(src, d, logger)
	if err != nil {
		return err
	}
	for i, stmt := range stmts {
		params, err := param.Collect(stmt)
		if err != nil {
			return fmt.Errorf("statement %d: %w", i+1, err)
		}
		for _, prm := range params {
			fmt.Fprintf(w, "%s:%d\t%s\t%s\t%s\t%d\n", src.Name, i+1, prm.Name, prm.Style, prm.Column, prm.Uses)
		}
	}
	return nil
}

func parseSource(src *source.Source, d *dialect.Dialect, logger log.Logger) ([]ast.Statement, error) {
	p := parser.NewParser(src.Text, d.ParserOptions(parser.WithLogger(logger))...)
	return p.ParseStatementList()
}

func nodes(stmts []ast.Statement) []ast.Node {
	out := make([]ast.Node, len(stmts))
	for i, s := range stmts {
		out[i] = s
	}
	return out
}

// report prints err with its SQLSTATE and, for parse errors, the location.
func report(w io.Writer, name string, err error) {
	e := qerrors.GetError(err)
	if e.Line > 0 {
		fmt.Fprintf(w, "%s:%d:%d: %s\n", name, e.Line, e.Column, e.Error())
	} else {
		fmt.Fprintf(w, "%s: %s\n", name, e.Error())
	}
	if e.Hint != "" {
		fmt.Fprintf(w, "HINT: %s\n", e.Hint)
	}
}

// parseIndent converts the -indent value to an indent unit. An empty value
// leaves the configured unit in place.
func parseIndent(s string) (string, error) {
	switch s {
	case "":
		return "", nil
	case "tab", `\t`, "\t":
		return "\t", nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 8 {
		return "", fmt.Errorf("want tab or 1-8 spaces, got %q", s)
	}
	return strings.Repeat(" ", n), nil
}
