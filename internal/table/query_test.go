package table

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/dvloznov/pandacsv/internal/trade"
)

func newTestTable(t *testing.T, rows ...string) *Table {
	t.Helper()
	trades := make([]trade.Trade, 0, len(rows))
	for _, r := range rows {
		tr, err := trade.Parse(strings.Split(r, ","))
		if err != nil {
			t.Fatalf("bad fixture row %q: %v", r, err)
		}
		trades = append(trades, tr)
	}
	return New(trades)
}

func ids(trades []trade.Trade) []string {
	out := make([]string, 0, len(trades))
	for _, tr := range trades {
		out = append(out, tr.TransactionID)
	}
	return out
}

func fixture(t *testing.T) *Table {
	return newTestTable(t,
		row("T1", "incoming", "EUR", "BTC"),
		row("T2", "incoming", "USD", "ETH"),
		row("T3", "outgoing", "EUR", "BTC"),
		row("T4", "incoming", "EUR", "BTC"),
		row("T5", "incoming", "USD", "ETH"),
	)
}

func TestColumn(t *testing.T) {
	tbl := fixture(t)

	tests := []struct {
		name   string
		column string
		unique bool
		want   []string
	}{
		{"all values in row order", "asset", false, []string{"BTC", "ETH", "BTC", "BTC", "ETH"}},
		{"unique keeps first-seen order", "asset", true, []string{"BTC", "ETH"}},
		{"unique fiat", "fiat", true, []string{"EUR", "USD"}},
		{"unique on distinct column", "transaction_id", true, []string{"T1", "T2", "T3", "T4", "T5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tbl.Column(tt.column, tt.unique)
			if err != nil {
				t.Fatalf("Column(%q) failed: %v", tt.column, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Column(%q, %v) = %v, want %v", tt.column, tt.unique, got, tt.want)
			}
		})
	}
}

func TestColumn_UniqueNotSorted(t *testing.T) {
	tbl := newTestTable(t,
		row("T1", "incoming", "EUR", "ETH"),
		row("T2", "incoming", "EUR", "BTC"),
		row("T3", "incoming", "EUR", "ETH"),
	)
	got, err := tbl.Column("asset", true)
	if err != nil {
		t.Fatalf("Column failed: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"ETH", "BTC"}) {
		t.Errorf("Expected [ETH BTC], got %v", got)
	}
}

func TestColumn_Unknown(t *testing.T) {
	got, err := fixture(t).Column("frobnicate", false)
	if !errors.Is(err, trade.ErrUnknownColumn) {
		t.Fatalf("Expected ErrUnknownColumn, got %v", err)
	}
	if got != nil {
		t.Errorf("Expected no partial output, got %v", got)
	}
}

func TestFilter(t *testing.T) {
	tbl := fixture(t)

	tests := []struct {
		name   string
		column string
		value  string
		want   []string
	}{
		{"match", "fiat", "USD", []string{"T2", "T5"}},
		{"case sensitive", "fiat", "usd", []string{}},
		{"no trimming", "fiat", " USD", []string{}},
		{"no numeric coercion", "amount_fiat", "100", []string{}},
		{"exact numeric string", "amount_fiat", "100.00", []string{"T1", "T2", "T3", "T4", "T5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Filter(tbl.Trades(), tt.column, tt.value)
			if err != nil {
				t.Fatalf("Filter failed: %v", err)
			}
			if !reflect.DeepEqual(ids(got), tt.want) {
				t.Errorf("Filter(%q, %q) = %v, want %v", tt.column, tt.value, ids(got), tt.want)
			}
		})
	}
}

func TestFilter_Chained(t *testing.T) {
	tbl := fixture(t)

	incoming, err := Filter(tbl.Trades(), "in_out", "incoming")
	if err != nil {
		t.Fatalf("Filter failed: %v", err)
	}
	btc, err := Filter(incoming, "asset", "BTC")
	if err != nil {
		t.Fatalf("Filter failed: %v", err)
	}
	if !reflect.DeepEqual(ids(btc), []string{"T1", "T4"}) {
		t.Errorf("Expected [T1 T4], got %v", ids(btc))
	}
}

func TestFilterChain(t *testing.T) {
	tbl := fixture(t)

	tests := []struct {
		name  string
		pairs []Pair
		want  []string
	}{
		{"single", []Pair{{"asset", "ETH"}}, []string{"T2", "T5"}},
		{"intersection keeps order", []Pair{{"in_out", "incoming"}, {"asset", "BTC"}}, []string{"T1", "T4"}},
		{"contradiction is empty", []Pair{{"fiat", "USD"}, {"fiat", "EUR"}}, []string{}},
		{"no pairs", nil, []string{"T1", "T2", "T3", "T4", "T5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tbl.FilterChain(tt.pairs)
			if err != nil {
				t.Fatalf("FilterChain failed: %v", err)
			}
			if !reflect.DeepEqual(ids(got), tt.want) {
				t.Errorf("FilterChain(%v) = %v, want %v", tt.pairs, ids(got), tt.want)
			}
		})
	}
}

func TestFilterChain_UnknownColumnAborts(t *testing.T) {
	got, err := fixture(t).FilterChain([]Pair{{"asset", "BTC"}, {"colour", "red"}})
	if !errors.Is(err, trade.ErrUnknownColumn) {
		t.Fatalf("Expected ErrUnknownColumn, got %v", err)
	}
	if got != nil {
		t.Errorf("Expected no output, got %v", ids(got))
	}
}

func TestPairsFromArgs(t *testing.T) {
	got, err := PairsFromArgs([]string{"fiat", "EUR", "amount_fiat", "-5.00"})
	if err != nil {
		t.Fatalf("PairsFromArgs failed: %v", err)
	}
	want := []Pair{{"fiat", "EUR"}, {"amount_fiat", "-5.00"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("PairsFromArgs() = %v, want %v", got, want)
	}

	for _, args := range [][]string{nil, {"fiat"}, {"fiat", "EUR", "asset"}} {
		if _, err := PairsFromArgs(args); !errors.Is(err, ErrMissingArgument) {
			t.Errorf("PairsFromArgs(%v) error = %v, want ErrMissingArgument", args, err)
		}
	}
}
