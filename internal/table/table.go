// Package table holds the in-memory trade table and the queries run against it.
package table

import (
	"context"
	stdcsv "encoding/csv"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/dvloznov/pandacsv/internal/logger"
	"github.com/dvloznov/pandacsv/internal/trade"
)

// ErrIO is returned when the trade file cannot be opened or read.
var ErrIO = errors.New("i/o error")

// Table is the ordered set of trades loaded from one file.
// It is built once and never modified.
type Table struct {
	source  string
	skipped int
	trades  []trade.Trade
}

// New creates a table over already parsed trades.
func New(trades []trade.Trade) *Table {
	return &Table{trades: trades}
}

// Load reads the CSV file at path and keeps every row that parses as a trade,
// in file order. Rows that do not parse are skipped; only failing to open or
// read the file is an error.
func Load(ctx context.Context, path string) (*Table, error) {
	log := logger.FromContext(ctx).With().Str("path", path).Logger()
	log.Debug().Msg("opening trade file")

	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(ioError(err), "failed to open trade file")
	}
	defer file.Close()

	reader := stdcsv.NewReader(file)
	reader.Comma = ','
	reader.FieldsPerRecord = -1
	// A quote inside an unquoted field is kept as a literal character.
	reader.LazyQuotes = true

	t := &Table{source: path}
	for {
		row, readErr := reader.Read()
		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				break
			}
			var parseErr *stdcsv.ParseError
			if errors.As(readErr, &parseErr) {
				log.Debug().Int("line", parseErr.StartLine).Err(parseErr.Err).Msg("skipping unreadable row")
				t.skipped++
				continue
			}
			return nil, errors.Wrap(ioError(readErr), "failed to read trade file")
		}

		tr, parseErr := trade.Parse(row)
		if parseErr != nil {
			line, _ := reader.FieldPos(0)
			log.Debug().Int("line", line).Err(parseErr).Msg("skipping row")
			t.skipped++
			continue
		}
		t.trades = append(t.trades, tr)
	}

	log.Info().Int("trades", len(t.trades)).Int("skipped", t.skipped).Msg("trade file loaded")
	return t, nil
}

// Source returns the path the table was loaded from, or "" for tables built with New.
func (t *Table) Source() string {
	return t.source
}

// Skipped returns the number of rows dropped while loading.
func (t *Table) Skipped() int {
	return t.skipped
}

// Len returns the number of trades in the table.
func (t *Table) Len() int {
	return len(t.trades)
}

// Trades returns a copy of the trades in file order.
func (t *Table) Trades() []trade.Trade {
	out := make([]trade.Trade, len(t.trades))
	copy(out, t.trades)
	return out
}

// ioError joins err to ErrIO so callers can match either.
func ioError(err error) error {
	return &wrappedIOError{err: err}
}

type wrappedIOError struct {
	err error
}

func (e *wrappedIOError) Error() string { return e.err.Error() }

func (e *wrappedIOError) Is(target error) bool { return target == ErrIO }

func (e *wrappedIOError) Unwrap() error { return e.err }
