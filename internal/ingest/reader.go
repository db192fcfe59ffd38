package ingest

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/callbill/internal/config"
	"github.com/xuri/excelize/v2"
)

// Reader loads XLSX usage exports into a Table.
type Reader struct {
	strict bool
}

func NewReader(cfg config.Config) *Reader {
	return &Reader{strict: cfg.StrictCoercion}
}

// ReadFile opens the workbook at path and reads the first sheet.
func (r *Reader) ReadFile(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet %s: %w", path, err)
	}
	defer f.Close()
	return r.read(f)
}

// Read reads a workbook from a stream.
func (r *Reader) Read(src io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer f.Close()
	return r.read(f)
}

func (r *Reader) read(f *excelize.File) (*Table, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &SchemaError{Missing: append([]string(nil), RequiredColumns...)}
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, &SchemaError{Missing: append([]string(nil), RequiredColumns...)}
	}

	index := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		index[strings.TrimSpace(name)] = i
	}

	var missing []string
	for _, name := range RequiredColumns {
		if _, ok := index[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Missing: missing}
	}

	table := &Table{}
	for i, raw := range rows[1:] {
		rowNumber := i + 2 // header is spreadsheet row 1
		if isBlank(raw) {
			continue
		}

		row := Row{
			AccountID:  cell(raw, index[ColAccountID]),
			AreaPrefix: strings.TrimSpace(cell(raw, index[ColAreaPrefix])),
			AreaName:   strings.TrimSpace(cell(raw, index[ColAreaName])),
		}

		row.DurationSeconds, row.DurationValid = parseNumber(cell(raw, index[ColDuration]))
		if !row.DurationValid {
			table.Warnings = append(table.Warnings, CoercionWarning{
				RowNumber: rowNumber,
				Column:    ColDuration,
				Value:     cell(raw, index[ColDuration]),
			})
		}

		row.Charge, row.ChargeValid = parseMoney(cell(raw, index[ColCharges]))
		if !row.ChargeValid {
			table.Warnings = append(table.Warnings, CoercionWarning{
				RowNumber: rowNumber,
				Column:    ColCharges,
				Value:     cell(raw, index[ColCharges]),
			})
		}

		table.Rows = append(table.Rows, row)
	}

	if r.strict && len(table.Warnings) > 0 {
		return nil, &StrictCoercionError{Warnings: table.Warnings}
	}

	return table, nil
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// parseNumber coerces a plain numeric cell. Negative values count as coercion
// failures: durations and charges are never negative in a usage export.
func parseNumber(raw string) (decimal.Decimal, bool) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(v)
	if err != nil || d.IsNegative() {
		return decimal.Zero, false
	}
	return d, true
}

// parseMoney coerces a charge cell, stripping common currency formatting
// before parsing.
func parseMoney(raw string) (decimal.Decimal, bool) {
	v := strings.TrimSpace(raw)
	v = strings.NewReplacer("$", "", "€", "", "£", "", ",", "", " ", "").Replace(v)
	return parseNumber(v)
}
