package table

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/dvloznov/pandacsv/internal/trade"
)

// ErrMissingArgument is returned when filter arguments do not come in column/value pairs.
var ErrMissingArgument = errors.New("missing argument")

// Pair is a single column equality constraint.
type Pair struct {
	Column string
	Value  string
}

// Column returns the values of the named column in row order.
// With unique set, repeated values are dropped and the first occurrence keeps its position.
func (t *Table) Column(name string, unique bool) ([]string, error) {
	get, err := trade.Lookup(name)
	if err != nil {
		return nil, err
	}

	values := make([]string, 0, len(t.trades))
	var seen map[string]struct{}
	if unique {
		seen = make(map[string]struct{})
	}
	for _, tr := range t.trades {
		v := get(tr)
		if unique {
			if _, dup := seen[v]; dup {
				continue
			}
			seen[v] = struct{}{}
		}
		values = append(values, v)
	}
	return values, nil
}

// Filter returns the trades whose column value equals value exactly, in their original order.
func Filter(trades []trade.Trade, column, value string) ([]trade.Trade, error) {
	get, err := trade.Lookup(column)
	if err != nil {
		return nil, err
	}
	return filter(trades, get, value), nil
}

// FilterChain narrows the table by each pair in turn. All column names are
// checked before any row is scanned.
func (t *Table) FilterChain(pairs []Pair) ([]trade.Trade, error) {
	getters := make([]trade.Accessor, len(pairs))
	for i, p := range pairs {
		get, err := trade.Lookup(p.Column)
		if err != nil {
			return nil, err
		}
		getters[i] = get
	}

	if len(pairs) == 0 {
		return t.Trades(), nil
	}

	result := t.trades
	for i, p := range pairs {
		result = filter(result, getters[i], p.Value)
	}
	return result, nil
}

func filter(trades []trade.Trade, get trade.Accessor, value string) []trade.Trade {
	var out []trade.Trade
	for _, tr := range trades {
		if get(tr) == value {
			out = append(out, tr)
		}
	}
	return out
}

// PairsFromArgs groups command-line tokens as column, value, column, value...
func PairsFromArgs(args []string) ([]Pair, error) {
	if len(args) == 0 || len(args)%2 != 0 {
		return nil, fmt.Errorf("%w: filter expects <column> <value> pairs, got %d arguments", ErrMissingArgument, len(args))
	}

	pairs := make([]Pair, 0, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		pairs = append(pairs, Pair{Column: args[i], Value: args[i+1]})
	}
	return pairs, nil
}
