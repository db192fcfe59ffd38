package ingest

import (
	"bytes"
	"testing"

	"github.com/smallbiznis/callbill/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, header []interface{}, rows ...[]interface{}) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &header))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func fullHeader() []interface{} {
	return []interface{}{"Account id", "Area prefix", "Area name", "Total duration", "Call charges"}
}

func TestReadValidSheet(t *testing.T) {
	buf := buildWorkbook(t, fullHeader(),
		[]interface{}{"AB-123", "91", "Mumbai", 90, 12.50},
		[]interface{}{"CD-456", "44", "London", 120, 3.75},
	)

	table, err := NewReader(config.Config{}).Read(buf)
	require.NoError(t, err)
	require.Len(t, table.Rows, 2)
	assert.Empty(t, table.Warnings)

	first := table.Rows[0]
	assert.Equal(t, "AB-123", first.AccountID)
	assert.Equal(t, "91", first.AreaPrefix)
	assert.Equal(t, "Mumbai", first.AreaName)
	assert.True(t, first.DurationValid)
	assert.Equal(t, "90", first.DurationSeconds.String())
	assert.True(t, first.ChargeValid)
	assert.Equal(t, "12.5", first.Charge.String())
}

func TestReadMissingColumn(t *testing.T) {
	buf := buildWorkbook(t,
		[]interface{}{"Account id", "Area prefix", "Area name", "Total duration"},
		[]interface{}{"AB-123", "91", "Mumbai", 90},
	)

	_, err := NewReader(config.Config{}).Read(buf)
	require.Error(t, err)

	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, []string{"Call charges"}, schemaErr.Missing)
}

func TestReadMissingSeveralColumns(t *testing.T) {
	buf := buildWorkbook(t, []interface{}{"Account id", "Area name"})

	_, err := NewReader(config.Config{}).Read(buf)

	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, []string{"Area prefix", "Total duration", "Call charges"}, schemaErr.Missing)
}

func TestReadCoercionWarnings(t *testing.T) {
	buf := buildWorkbook(t, fullHeader(),
		[]interface{}{"AB-123", "91", "Mumbai", "not-a-number", 1.00},
		[]interface{}{"AB-123", "91", "Mumbai", 60, "n/a"},
	)

	table, err := NewReader(config.Config{}).Read(buf)
	require.NoError(t, err)
	require.Len(t, table.Rows, 2)
	require.Len(t, table.Warnings, 2)

	assert.Equal(t, 2, table.Warnings[0].RowNumber)
	assert.Equal(t, ColDuration, table.Warnings[0].Column)
	assert.Equal(t, "not-a-number", table.Warnings[0].Value)
	assert.False(t, table.Rows[0].DurationValid)
	assert.True(t, table.Rows[0].DurationSeconds.IsZero())

	assert.Equal(t, 3, table.Warnings[1].RowNumber)
	assert.Equal(t, ColCharges, table.Warnings[1].Column)
	assert.False(t, table.Rows[1].ChargeValid)
}

func TestReadStrictMode(t *testing.T) {
	buf := buildWorkbook(t, fullHeader(),
		[]interface{}{"AB-123", "91", "Mumbai", "bad", 1.00},
	)

	_, err := NewReader(config.Config{StrictCoercion: true}).Read(buf)
	require.Error(t, err)

	var strictErr *StrictCoercionError
	require.ErrorAs(t, err, &strictErr)
	assert.Len(t, strictErr.Warnings, 1)
}

func TestReadStripsCurrencyFormatting(t *testing.T) {
	buf := buildWorkbook(t, fullHeader(),
		[]interface{}{"AB-123", "91", "Mumbai", 60, "$1,234.50"},
	)

	table, err := NewReader(config.Config{}).Read(buf)
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.True(t, table.Rows[0].ChargeValid)
	assert.Equal(t, "1234.5", table.Rows[0].Charge.String())
}

func TestReadNegativeValuesRejected(t *testing.T) {
	buf := buildWorkbook(t, fullHeader(),
		[]interface{}{"AB-123", "91", "Mumbai", -5, 1.00},
	)

	table, err := NewReader(config.Config{}).Read(buf)
	require.NoError(t, err)
	require.Len(t, table.Warnings, 1)
	assert.Equal(t, ColDuration, table.Warnings[0].Column)
}

func TestReadPreservesLeadingZeros(t *testing.T) {
	buf := buildWorkbook(t, fullHeader(),
		[]interface{}{"00123", "91", "Mumbai", 60, 1.00},
	)

	table, err := NewReader(config.Config{}).Read(buf)
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "00123", table.Rows[0].AccountID)
}

func TestReadSkipsBlankRows(t *testing.T) {
	buf := buildWorkbook(t, fullHeader(),
		[]interface{}{"AB-123", "91", "Mumbai", 60, 1.00},
		[]interface{}{"", "", "", "", ""},
		[]interface{}{"CD-456", "44", "London", 30, 2.00},
	)

	table, err := NewReader(config.Config{}).Read(buf)
	require.NoError(t, err)
	assert.Len(t, table.Rows, 2)
}
