package trade

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrUnknownColumn is returned when a column name is not part of the trade schema.
var ErrUnknownColumn = errors.New("unknown column")

// Accessor reads a single column value from a Trade.
type Accessor func(Trade) string

type column struct {
	name string
	get  Accessor
}

// columns is the trade schema in file order. Projection and filtering both
// resolve names through it.
var columns = [FieldCount]column{
	{"transaction_id", func(t Trade) string { return t.TransactionID }},
	{"timestamp", func(t Trade) string { return t.Timestamp }},
	{"transaction_type", func(t Trade) string { return t.TransactionType }},
	{"in_out", func(t Trade) string { return t.InOut }},
	{"amount_fiat", func(t Trade) string { return t.AmountFiat }},
	{"fiat", func(t Trade) string { return t.Fiat }},
	{"amount_asset", func(t Trade) string { return t.AmountAsset }},
	{"asset", func(t Trade) string { return t.Asset }},
	{"asset_market_price", func(t Trade) string { return t.AssetMarketPrice }},
	{"asset_market_price_currency", func(t Trade) string { return t.AssetMarketPriceCurrency }},
	{"asset_class", func(t Trade) string { return t.AssetClass }},
	{"product_id", func(t Trade) string { return t.ProductID }},
	{"fee", func(t Trade) string { return t.Fee }},
	{"fee_asset", func(t Trade) string { return t.FeeAsset }},
	{"spread", func(t Trade) string { return t.Spread }},
	{"spread_currency", func(t Trade) string { return t.SpreadCurrency }},
}

var byName = func() map[string]Accessor {
	m := make(map[string]Accessor, len(columns))
	for _, col := range columns {
		m[col.name] = col.get
	}
	return m
}()

// Lookup returns the accessor for the named column. Names are case-sensitive.
func Lookup(name string) (Accessor, error) {
	get, ok := byName[name]
	if !ok {
		return nil, fmt.Errorf("%w %s", ErrUnknownColumn, name)
	}
	return get, nil
}

// Columns returns the column names in schema order.
func Columns() []string {
	names := make([]string, 0, len(columns))
	for _, col := range columns {
		names = append(names, col.name)
	}
	return names
}
