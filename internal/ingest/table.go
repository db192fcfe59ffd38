// Package ingest loads call-detail spreadsheets into typed rows.
package ingest

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Required column headers, exactly as exported by the upstream switch.
const (
	ColAccountID  = "Account id"
	ColAreaPrefix = "Area prefix"
	ColAreaName   = "Area name"
	ColDuration   = "Total duration"
	ColCharges    = "Call charges"
)

// RequiredColumns lists the headers a usable export must carry, in the order
// they are reported when missing.
var RequiredColumns = []string{ColAccountID, ColAreaPrefix, ColAreaName, ColDuration, ColCharges}

// Row is one usage record. Account ids are kept as the literal cell text so
// numeric ids never lose leading zeros or pick up float formatting.
type Row struct {
	AccountID  string
	AreaPrefix string
	AreaName   string

	// DurationSeconds and Charge are zero with the matching Valid flag false
	// when the source cell failed numeric coercion.
	DurationSeconds decimal.Decimal
	DurationValid   bool
	Charge          decimal.Decimal
	ChargeValid     bool
}

// Table is the normalized result of reading one spreadsheet.
type Table struct {
	Rows     []Row
	Warnings []CoercionWarning
}

// CoercionWarning records one cell that could not be coerced to a number.
// RowNumber is the spreadsheet row (header is row 1).
type CoercionWarning struct {
	RowNumber int    `json:"row"`
	Column    string `json:"column"`
	Value     string `json:"value"`
}

func (w CoercionWarning) String() string {
	return fmt.Sprintf("row %d: column %q: cannot coerce %q to a number", w.RowNumber, w.Column, w.Value)
}
