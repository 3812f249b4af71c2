package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/pflag"

	"github.com/dvloznov/pandacsv/internal/config"
	"github.com/dvloznov/pandacsv/internal/logger"
	"github.com/dvloznov/pandacsv/internal/table"
	"github.com/dvloznov/pandacsv/internal/trade"
)

// Exit codes.
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 255
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: pandacsv [flags] <csv_file> <command> [cmdargs...]")
	fmt.Fprintln(w, "\nCommands:")
	fmt.Fprintln(w, "  get-column <column-name> [unique]")
	fmt.Fprintln(w, "      print a column by name, one value per line. If unique is given,")
	fmt.Fprintln(w, "      repeated values are dropped and first-seen order is kept.")
	fmt.Fprintln(w, "  filter <column-name> <value> [<column-name> <value> ...]")
	fmt.Fprintln(w, "      print the rows whose columns equal all of the given values.")
	fmt.Fprintln(w, "  columns")
	fmt.Fprintln(w, "      print the recognized column names.")
	fmt.Fprintln(w, "\nFlags must come before <csv_file>:")
	fmt.Fprintln(w, "  -h, --help            show this help message")
	fmt.Fprintln(w, "      --log-level LEVEL debug, info, warn, error or disabled (env PANDACSV_LOG_LEVEL)")
	fmt.Fprintln(w, "      --log-format FMT  console or json (env PANDACSV_LOG_FORMAT)")
	fmt.Fprintln(w, "      --config FILE     optional config file (env PANDACSV_CONFIG)")
}

// run executes one invocation and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet("pandacsv", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SetInterspersed(false)
	config.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printUsage(stdout)
			return exitUsage
		}
		fmt.Fprintf(stderr, "error: %v\n\n", err)
		printUsage(stderr)
		return exitUsage
	}

	positional := fs.Args()
	if len(positional) < 2 {
		printUsage(stdout)
		return exitUsage
	}
	csvFile, command, cmdArgs := positional[0], positional[1], positional[2:]

	query, ok := newQuery(command, cmdArgs)
	if !ok {
		printUsage(stdout)
		return exitUsage
	}

	cfg, err := config.Load(fs)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitFailure
	}
	log := logger.WithFields(logger.New(stderr, cfg.Level, cfg.LogFormat), map[string]interface{}{
		"run_id":  uuid.NewString(),
		"command": command,
	})
	ctx := logger.WithContext(context.Background(), log)

	out := bufio.NewWriter(stdout)
	defer out.Flush()

	if err := query(ctx, csvFile, out); err != nil {
		log.Debug().Err(err).Msg("command failed")
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitFailure
	}
	return exitOK
}

type queryFunc func(ctx context.Context, csvFile string, out io.Writer) error

// newQuery validates the command line of a command and returns the function
// that runs it. ok is false on a usage error.
func newQuery(command string, args []string) (queryFunc, bool) {
	switch command {
	case "get-column":
		if len(args) < 1 {
			return nil, false
		}
		column, unique := args[0], len(args) > 1
		return func(ctx context.Context, csvFile string, out io.Writer) error {
			return getColumn(ctx, csvFile, column, unique, out)
		}, true
	case "filter":
		return func(ctx context.Context, csvFile string, out io.Writer) error {
			return filterRows(ctx, csvFile, args, out)
		}, true
	case "columns":
		return func(ctx context.Context, csvFile string, out io.Writer) error {
			return listColumns(ctx, csvFile, out)
		}, true
	default:
		return nil, false
	}
}

func getColumn(ctx context.Context, csvFile, column string, unique bool, out io.Writer) error {
	tbl, err := table.Load(ctx, csvFile)
	if err != nil {
		return fmt.Errorf("failed to parse csv file: %w", err)
	}

	values, err := tbl.Column(column, unique)
	if err != nil {
		return err
	}
	for _, v := range values {
		fmt.Fprintln(out, v)
	}
	return nil
}

func filterRows(ctx context.Context, csvFile string, args []string, out io.Writer) error {
	pairs, err := table.PairsFromArgs(args)
	if err != nil {
		return err
	}

	tbl, err := table.Load(ctx, csvFile)
	if err != nil {
		return fmt.Errorf("failed to parse csv file: %w", err)
	}

	trades, err := tbl.FilterChain(pairs)
	if err != nil {
		return err
	}
	log := logger.FromContext(ctx)
	log.Info().Int("matches", len(trades)).Int("constraints", len(pairs)).Msg("filter applied")
	for _, tr := range trades {
		fmt.Fprintln(out, tr.String())
	}
	return nil
}

func listColumns(ctx context.Context, csvFile string, out io.Writer) error {
	if _, err := table.Load(ctx, csvFile); err != nil {
		return fmt.Errorf("failed to parse csv file: %w", err)
	}
	for _, name := range trade.Columns() {
		fmt.Fprintln(out, name)
	}
	return nil
}
