package render

import (
	"bytes"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/callbill/internal/billing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleInput(items int) Input {
	summary := billing.Summary{
		AccountID: "AB-123",
		TaxRate:   billing.DefaultTaxRate,
		Subtotal:  decimal.Zero,
	}
	for i := 0; i < items; i++ {
		charge := decimal.NewFromInt(int64(i + 1))
		summary.LineItems = append(summary.LineItems, billing.LineItem{
			SN:              i + 1,
			AreaPrefix:      "91",
			AreaName:        fmt.Sprintf("Area %d", i+1),
			DurationMinutes: decimal.RequireFromString("1.50"),
			Charge:          charge,
		})
		summary.Subtotal = summary.Subtotal.Add(charge)
	}
	summary.Tax = summary.Subtotal.Mul(summary.TaxRate).Round(2)
	summary.Total = summary.Subtotal.Add(summary.Tax)

	return Input{
		InvoiceNumber:  "202403-AB-123",
		GeneratedAt:    time.Date(2024, 3, 20, 10, 0, 0, 0, time.UTC),
		FromCompany:    "Telecom Provider Inc.",
		ToCompany:      "Client Company Ltd.",
		BillingMonth:   "March 2024",
		Timezone:       "+00:00",
		CurrencySymbol: "$",
		TaxRateLabel:   "10%",
		Disclaimer:     "This is a computer-generated document and does not require a signature",
		Summary:        summary,
	}
}

// pageObjRe matches PDF page objects without matching the /Pages tree node.
var pageObjRe = regexp.MustCompile(`/Type /Page[^s]`)

func pdfPageCount(b []byte) int {
	return len(pageObjRe.FindAll(b, -1))
}

func TestPaginate(t *testing.T) {
	cases := []struct {
		items int
		want  []int
	}{
		{0, []int{0}},
		{5, []int{5}},
		{firstPageItems - totalsSlots, []int{firstPageItems - totalsSlots}},
		{firstPageItems, []int{firstPageItems - totalsSlots, totalsSlots}},
		{50, []int{firstPageItems, contPageItems, 50 - firstPageItems - contPageItems}},
	}
	for _, tc := range cases {
		got := paginate(tc.items)
		assert.Equal(t, tc.want, got, "paginate(%d)", tc.items)

		total := 0
		for _, c := range got {
			total += c
		}
		assert.Equal(t, tc.items, total)
	}
}

func TestPaginateLastPageKeepsRoomForTotals(t *testing.T) {
	for n := 0; n < 200; n++ {
		counts := paginate(n)
		require.NotEmpty(t, counts)

		capacity := contPageItems
		if len(counts) == 1 {
			capacity = firstPageItems
		}
		last := counts[len(counts)-1]
		assert.LessOrEqual(t, last+totalsSlots, capacity, "n=%d counts=%v", n, counts)
	}
}

func TestRenderSinglePage(t *testing.T) {
	pdf, err := NewRenderer().Render(sampleInput(3))
	require.NoError(t, err)
	require.NotEmpty(t, pdf)

	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
	assert.Equal(t, 1, pdfPageCount(pdf))
}

func TestRenderPaginatesLongTable(t *testing.T) {
	items := 60
	pdf, err := NewRenderer().Render(sampleInput(items))
	require.NoError(t, err)

	want := PageCount(items)
	assert.Greater(t, want, 1)
	assert.Equal(t, want, pdfPageCount(pdf))
}

func TestRenderEmptyInvoice(t *testing.T) {
	pdf, err := NewRenderer().Render(sampleInput(0))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
	assert.Equal(t, 1, pdfPageCount(pdf))
}

func TestRenderMissingLogoIsSkipped(t *testing.T) {
	in := sampleInput(1)
	in.LogoPath = "does/not/exist.png"

	pdf, err := NewRenderer().Render(in)
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
}
