package trade

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// FieldCount is the number of positional fields in a Bitpanda trade row.
const FieldCount = 16

// ErrMalformedRow is returned by Parse when a row cannot be mapped onto a Trade.
var ErrMalformedRow = errors.New("malformed row")

// Trade is one row of the Bitpanda trade export.
// All values are kept exactly as they appear in the file; nothing is parsed
// into numbers or timestamps.
type Trade struct {
	TransactionID            string // "Transaction ID"
	Timestamp                string // ISO8601 issue time
	TransactionType          string // deposit, buy, sell, transfer, withdrawal...
	InOut                    string // incoming or outgoing
	AmountFiat               string
	Fiat                     string
	AmountAsset              string
	Asset                    string
	AssetMarketPrice         string // set only for buy/sell
	AssetMarketPriceCurrency string
	AssetClass               string
	ProductID                string
	Fee                      string
	FeeAsset                 string
	Spread                   string
	SpreadCurrency           string
}

// Parse maps the first FieldCount values of row onto a Trade.
// Trailing values past FieldCount are ignored.
func Parse(row []string) (Trade, error) {
	if len(row) < FieldCount {
		return Trade{}, fmt.Errorf("%w: got %d fields, want at least %d", ErrMalformedRow, len(row), FieldCount)
	}

	return Trade{
		TransactionID:            row[0],
		Timestamp:                row[1],
		TransactionType:          row[2],
		InOut:                    row[3],
		AmountFiat:               row[4],
		Fiat:                     row[5],
		AmountAsset:              row[6],
		Asset:                    row[7],
		AssetMarketPrice:         row[8],
		AssetMarketPriceCurrency: row[9],
		AssetClass:               row[10],
		ProductID:                row[11],
		Fee:                      row[12],
		FeeAsset:                 row[13],
		Spread:                   row[14],
		SpreadCurrency:           row[15],
	}, nil
}

// Fields returns the trade values in column order.
func (t Trade) Fields() []string {
	fields := make([]string, 0, FieldCount)
	for _, col := range columns {
		fields = append(fields, col.get(t))
	}
	return fields
}

// String renders the trade as its comma-joined field values.
func (t Trade) String() string {
	return strings.Join(t.Fields(), ",")
}
