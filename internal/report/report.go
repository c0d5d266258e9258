// Package report renders fetched prices as CSV text.
package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Header is the first line of every rendered report.
const Header = "Symbol,Price"

// Row is one successfully priced symbol.
type Row struct {
	Symbol string
	Price  decimal.Decimal
}

// Price converts a quoted close to its two-decimal report value. The float
// is rounded from its exact binary value, so 1.005 (stored just below the
// tie) becomes 1.00 and exact ties round to even. x must be finite.
func Price(x float64) decimal.Decimal {
	return decimal.RequireFromString(strconv.FormatFloat(x, 'f', 2, 64))
}

// Report is an ordered list of rows. Rows render in slice order.
type Report []Row

// Render serializes r as CSV: the header, then one "symbol,price" line per
// row with the price fixed to two decimals. Every line ends in "\n".
// Symbols are written as-is; they are assumed to contain no commas or
// newlines.
func Render(r Report) string {
	var b strings.Builder
	b.Grow(len(Header) + 1 + len(r)*16)
	b.WriteString(Header)
	b.WriteByte('\n')
	for _, row := range r {
		b.WriteString(row.Symbol)
		b.WriteByte(',')
		b.WriteString(row.Price.StringFixed(2))
		b.WriteByte('\n')
	}
	return b.String()
}

// WriteTo writes the rendered report to w.
func (r Report) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, Render(r))
	return int64(n), err
}
