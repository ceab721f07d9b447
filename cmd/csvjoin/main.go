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
	"strings"
	"time"

	"github.com/vegasq/csvjoin/internal/config"
	"github.com/vegasq/csvjoin/internal/logging"
	"github.com/vegasq/csvjoin/output"
	"github.com/vegasq/csvjoin/query"
	"github.com/vegasq/csvjoin/reader"
	"github.com/vegasq/csvjoin/table"
)

// Environment variables read at startup
const (
	envLogLevel = "CSVJOIN_LOG_LEVEL"
	envSeqURL   = "CSVJOIN_SEQ_URL"
)

// errUsage marks command line mistakes that should print the usage text
var errUsage = errors.New("usage error")

// stringList is a repeatable string flag
type stringList []string

func (s *stringList) String() string {
	return strings.Join(*s, " ")
}

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

// counter is a repeatable boolean flag that counts occurrences (-d -d)
type counter int

func (c *counter) String() string {
	return fmt.Sprintf("%d", int(*c))
}

func (c *counter) Set(string) error {
	*c++
	return nil
}

func (c *counter) IsBoolFlag() bool { return true }

// options are the settings that only exist on the command line
type options struct {
	configPath string
	debug      int
	quiet      bool
	schema     bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes one invocation and returns the process exit code
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, opts, err := parseArgs(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	base, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	logger, cleanup := logging.SetupLogger(logging.Options{
		Level:  logging.LevelFromVerbosity(base, opts.debug, opts.quiet),
		Output: stderr,
		SeqURL: cfg.SeqURL,
	})
	defer cleanup()
	slog.SetDefault(logger)

	if opts.schema {
		err = showSchema(cfg, stdout)
	} else {
		err = joinFiles(ctx, cfg, stdout)
	}
	if err != nil {
		slog.Debug("run failed", slog.String("error", err.Error()))
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// parseArgs builds the run configuration: defaults, then the job file,
// then the environment, then explicitly set flags.
func parseArgs(args []string, stderr io.Writer) (config.Config, options, error) {
	fs := flag.NewFlagSet("csvjoin", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		opts    options
		inputs  stringList
		joins   stringList
		outCols stringList
		debug   counter
	)
	fs.Var(&inputs, "i", "Input file (repeat for each input; \"-\" is stdin, globs are expanded)")
	fs.Var(&inputs, "infile", "Alias for -i")
	fs.Var(&joins, "join", "Join column references, one per input (e.g. 0:city 1:city)")
	fs.Var(&outCols, "out-col", "Output column: a reference (0:city) or an expression (\"0:foo + 1:bar\")")
	outPath := fs.String("o", "-", "Output file (\"-\" is stdout)")
	sep := fs.String("sep", ",", "Use SEP as input separator")
	outSep := fs.String("out-sep", ",", "Use SEP as csv output separator")
	format := fs.String("f", "csv", "Output format: "+strings.Join(output.Formats, ", "))
	header := fs.Bool("header", false, "Write a \"#\" header line with the output column labels (csv only)")
	ignoreCase := fs.Bool("ignore-case", false, "Compare join keys case-insensitively")
	workers := fs.Int("workers", 1, "Evaluate output rows with N workers")
	limit := fs.Int("limit", 0, "Limit number of output rows (0 = unlimited)")
	fs.StringVar(&opts.configPath, "config", "", "YAML job file; flags override its settings")
	fs.Var(&debug, "d", "Increase verbosity (repeat for more)")
	fs.BoolVar(&opts.quiet, "quiet", false, "Only log errors")
	fs.BoolVar(&opts.schema, "schema", false, "Show the column references of every input instead of joining")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: csvjoin [options] -i <file0> -i <file1> [-i ...] --join <refs> --out-col <spec> [--out-col ...]\n\n")
		fmt.Fprintf(stderr, "Join delimited files on one key column per file and compute output columns.\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  csvjoin -i file0.csv -i file1.csv --join \"0:city 1:city\" --out-col 0:city --out-col 1:bar --out-col \"0:foo + 1:bar\"\n")
		fmt.Fprintf(stderr, "  csvjoin --schema -i file0.csv -i file1.csv\n")
		fmt.Fprintf(stderr, "  csvjoin --config job.yaml -f table\n")
	}

	if err := fs.Parse(gatherJoinRefs(args)); err != nil {
		return config.Config{}, opts, err
	}
	opts.debug = int(debug)

	cfg := config.Default()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return config.Config{}, opts, err
		}
		cfg = loaded
	}

	if v := os.Getenv(envLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(envSeqURL); v != "" {
		cfg.SeqURL = v
	}

	// positional arguments are inputs too
	inputs = append(inputs, fs.Args()...)
	if len(inputs) > 0 {
		cfg.Inputs = inputs
	}
	if len(joins) > 0 {
		cfg.Join = splitRefs(joins)
	}
	if len(outCols) > 0 {
		cfg.OutCols = make([]config.OutputColumn, len(outCols))
		for i, spec := range outCols {
			cfg.OutCols[i] = config.OutputColumn{Spec: spec}
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "o":
			cfg.Output = *outPath
		case "sep":
			cfg.Separator = *sep
		case "out-sep":
			cfg.OutSep = *outSep
		case "f":
			cfg.Format = *format
		case "header":
			cfg.Header = *header
		case "ignore-case":
			cfg.IgnoreCase = *ignoreCase
		case "workers":
			cfg.Workers = *workers
		case "limit":
			cfg.Limit = *limit
		}
	})

	if opts.schema {
		if len(cfg.Inputs) == 0 {
			fs.Usage()
			return config.Config{}, opts, fmt.Errorf("%w: --schema needs at least one input", errUsage)
		}
		return cfg, opts, nil
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, opts, err
	}
	return cfg, opts, nil
}

// gatherJoinRefs folds the column references that follow a --join value
// into that value, so "--join 0:city 1:city" parses like
// "--join '0:city 1:city'". Parsing stops at "--".
func gatherJoinRefs(args []string) []string {
	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		out = append(out, arg)
		if arg == "--" {
			return append(out, args[i+1:]...)
		}

		name, _, hasValue := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		if name != "join" || !strings.HasPrefix(arg, "-") {
			continue
		}
		if !hasValue {
			if i+1 >= len(args) {
				continue
			}
			i++
			out = append(out, args[i])
		}
		for i+1 < len(args) && query.IsColumnRef(args[i+1]) {
			i++
			out[len(out)-1] += " " + args[i]
		}
	}
	return out
}

// splitRefs accepts join references given as one flag per reference or
// several references in one flag, separated by spaces or commas
func splitRefs(values []string) []string {
	var refs []string
	for _, v := range values {
		refs = append(refs, strings.FieldsFunc(v, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t'
		})...)
	}
	return refs
}

func readerOptions(cfg config.Config) reader.Options {
	return reader.Options{Separator: cfg.Separator}
}

// joinFiles runs the full pipeline. Nothing is written until projection
// has succeeded.
func joinFiles(ctx context.Context, cfg config.Config, stdout io.Writer) error {
	start := time.Now()

	tables, err := reader.ReadInputs(cfg.Inputs, readerOptions(cfg))
	if err != nil {
		return err
	}

	spec, err := query.ParseJoinSpec(cfg.Join, tables)
	if err != nil {
		return err
	}

	specs, err := query.ParseOutputSpecs(cfg.OutputSpecs(), tables)
	if err != nil {
		return err
	}
	for i, label := range cfg.Labels() {
		specs[i].Label = label
	}

	joiner, err := query.NewJoiner(tables, spec, query.JoinOptions{IgnoreCase: cfg.IgnoreCase})
	if err != nil {
		return err
	}
	groups := joiner.CollectN(cfg.Limit)

	result, err := query.Project(ctx, groups, specs, query.ProjectOptions{Workers: cfg.Workers})
	if err != nil {
		return err
	}

	if err := writeTable(result, cfg, stdout); err != nil {
		return err
	}

	slog.Info("run completed",
		slog.Int("inputs", len(tables)),
		slog.Int("rows", result.Len()),
		slog.String("output", cfg.Output),
		slog.Duration("elapsed", time.Since(start)),
	)
	return nil
}

// showSchema prints the column references of every input
func showSchema(cfg config.Config, stdout io.Writer) error {
	tables, err := reader.ReadInputs(cfg.Inputs, readerOptions(cfg))
	if err != nil {
		return err
	}
	schemaCfg := cfg
	schemaCfg.Header = true
	return writeTable(reader.SchemaTable(tables), schemaCfg, stdout)
}

// writeTable formats t to stdout or to the configured output file. A
// partially written file is removed.
func writeTable(t *table.Table, cfg config.Config, stdout io.Writer) (err error) {
	opts := output.Options{Separator: cfg.OutSep, Header: cfg.Header}

	if cfg.Output == "" || cfg.Output == "-" {
		formatter, err := output.New(cfg.Format, stdout, opts)
		if err != nil {
			return err
		}
		return formatter.Format(t)
	}

	formatter, err := output.New(cfg.Format, nil, opts)
	if err != nil {
		return err
	}

	f, err := os.Create(cfg.Output)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("failed to close output file: %w", cerr)
		}
		if err != nil {
			_ = os.Remove(cfg.Output)
		}
	}()

	formatter.SetOutput(f)
	return formatter.Format(t)
}
