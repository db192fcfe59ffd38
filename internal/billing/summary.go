// Package billing derives invoice figures from partitioned usage rows.
package billing

import (
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/callbill/internal/partition"
)

// DefaultTaxRate is the flat rate applied when no billing config overrides it.
var DefaultTaxRate = decimal.New(10, -2) // 0.10

var secondsPerMinute = decimal.NewFromInt(60)

// LineItem is one usage row prepared for rendering. DurationMinutes is a
// display value rounded to 2 decimal places; it never feeds the totals.
type LineItem struct {
	SN              int
	AreaPrefix      string
	AreaName        string
	DurationMinutes decimal.Decimal
	Charge          decimal.Decimal
}

// Summary carries the derived figures for one account's invoice.
//
// Subtotal is the exact decimal sum of the line charges; rounding happens only
// when the tax is taken, so Total == Subtotal + Tax holds without drift.
type Summary struct {
	AccountID string
	LineItems []LineItem
	TaxRate   decimal.Decimal
	Subtotal  decimal.Decimal
	Tax       decimal.Decimal
	Total     decimal.Decimal
}

// ComputeSummary is pure and deterministic: the same group and rate always
// produce the same summary, and the input rows are not mutated.
func ComputeSummary(group partition.Group, taxRate decimal.Decimal) Summary {
	summary := Summary{
		AccountID: group.AccountID,
		LineItems: make([]LineItem, 0, len(group.Rows)),
		TaxRate:   taxRate,
		Subtotal:  decimal.Zero,
	}

	for i, row := range group.Rows {
		item := LineItem{
			SN:              i + 1,
			AreaPrefix:      row.AreaPrefix,
			AreaName:        row.AreaName,
			DurationMinutes: row.DurationSeconds.Div(secondsPerMinute).Round(2),
			Charge:          row.Charge,
		}
		summary.LineItems = append(summary.LineItems, item)
		summary.Subtotal = summary.Subtotal.Add(row.Charge)
	}

	summary.Tax = summary.Subtotal.Mul(taxRate).Round(2)
	summary.Total = summary.Subtotal.Add(summary.Tax)
	return summary
}
