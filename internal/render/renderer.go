// Package render lays out one paginated PDF invoice per account.
package render

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/page"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/border"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/callbill/internal/billing"
)

// Input is the deterministic view model for one invoice document.
type Input struct {
	InvoiceNumber  string
	GeneratedAt    time.Time
	FromCompany    string
	ToCompany      string
	BillingMonth   string // "January 2006"
	Timezone       string // "+05:30"
	LogoPath       string
	CurrencySymbol string
	TaxRateLabel   string // "10%"
	Disclaimer     string
	Summary        billing.Summary
}

// RenderError wraps a layout failure with the account it belongs to.
type RenderError struct {
	AccountID string
	Err       error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render invoice for account %q: %v", e.AccountID, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// Renderer builds invoice PDFs with fixed layout constants. All page state is
// local to one Render call; nothing is shared between invoices.
type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render produces the PDF bytes for one account summary. Pages are built
// explicitly from the paginate plan so the table header repeats at the top of
// every page and the totals block always sits under the last item row.
func (r *Renderer) Render(in Input) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.Bottom,
		}).
		Build()

	m := maroto.New(cfg)
	if err := m.RegisterFooter(footerRow(in.Disclaimer)); err != nil {
		return nil, &RenderError{AccountID: in.Summary.AccountID, Err: err}
	}

	items := in.Summary.LineItems
	offset := 0
	counts := paginate(len(items))
	for i, count := range counts {
		p := page.New()
		if i == 0 {
			p.Add(headerRows(in)...)
		}
		p.Add(tableHeaderRow())
		for _, item := range items[offset : offset+count] {
			p.Add(itemRow(item, in.CurrencySymbol))
		}
		offset += count
		if i == len(counts)-1 {
			p.Add(totalsRows(in)...)
		}
		m.AddPages(p)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, &RenderError{AccountID: in.Summary.AccountID, Err: err}
	}
	return doc.GetBytes(), nil
}

func headerRows(in Input) []core.Row {
	logoCol := col.New(2)
	if in.LogoPath != "" {
		if _, err := os.Stat(in.LogoPath); err == nil {
			logoCol = image.NewFromFileCol(2, in.LogoPath, props.Rect{
				Center:  false,
				Percent: 80,
			})
		}
	}

	return []core.Row{
		row.New(20).Add(
			logoCol,
			col.New(4),
			text.NewCol(6, "Invoice", props.Text{
				Size:  24,
				Style: fontstyle.Bold,
				Align: align.Right,
			}),
		),
		line.NewRow(4),
		row.New(8).Add(
			text.NewCol(6, "Date: "+in.GeneratedAt.Format("02/01/2006"), props.Text{
				Size:  10,
				Style: fontstyle.Bold,
			}),
			text.NewCol(6, "Invoice No: "+in.InvoiceNumber, props.Text{
				Size:  10,
				Style: fontstyle.Bold,
				Align: align.Right,
			}),
		),
		line.NewRow(4),
		row.New(32).Add(
			col.New(6).Add(
				text.New("Invoiced To:", props.Text{Size: 10, Style: fontstyle.Bold}),
				text.New(in.ToCompany, props.Text{Size: 9, Top: 8}),
			),
			col.New(6).Add(
				text.New("Pay To:", props.Text{Size: 10, Style: fontstyle.Bold}),
				text.New(in.FromCompany, props.Text{Size: 9, Top: 8}),
				text.New("Billing Month: "+in.BillingMonth, props.Text{Size: 9, Top: 13}),
				text.New("Time Zone: GMT "+in.Timezone, props.Text{Size: 9, Top: 18}),
			),
		),
		row.New(6),
	}
}

func tableHeaderRow() core.Row {
	th := props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Center, Top: 1.5}
	style := &props.Cell{
		BorderType:      border.Full,
		BackgroundColor: &props.Color{Red: 240, Green: 240, Blue: 240},
	}
	return row.New(tableHeaderHeight).Add(
		text.NewCol(1, "SN", th).WithStyle(style),
		text.NewCol(2, "Area Prefix", th).WithStyle(style),
		text.NewCol(5, "Area Name", th).WithStyle(style),
		text.NewCol(2, "Duration", th).WithStyle(style),
		text.NewCol(2, "Charge", th).WithStyle(style),
	)
}

func itemRow(item billing.LineItem, symbol string) core.Row {
	style := &props.Cell{BorderType: border.Full}
	return row.New(itemRowHeight).Add(
		text.NewCol(1, strconv.Itoa(item.SN), props.Text{Size: 9, Align: align.Center, Top: 1.5}).WithStyle(style),
		text.NewCol(2, item.AreaPrefix, props.Text{Size: 9, Align: align.Center, Top: 1.5}).WithStyle(style),
		text.NewCol(5, item.AreaName, props.Text{Size: 9, Left: 1, Top: 1.5}).WithStyle(style),
		text.NewCol(2, item.DurationMinutes.StringFixed(2)+" min", props.Text{Size: 9, Align: align.Right, Right: 1, Top: 1.5}).WithStyle(style),
		text.NewCol(2, money(symbol, item.Charge), props.Text{Size: 9, Align: align.Right, Right: 1, Top: 1.5}).WithStyle(style),
	)
}

func totalsRows(in Input) []core.Row {
	label := props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right}
	value := props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right, Right: 1}

	return []core.Row{
		row.New(4),
		row.New(8).Add(
			col.New(8),
			text.NewCol(2, "Sub Total:", label),
			text.NewCol(2, money(in.CurrencySymbol, in.Summary.Subtotal), value),
		),
		row.New(8).Add(
			col.New(8),
			text.NewCol(2, fmt.Sprintf("Tax (%s):", in.TaxRateLabel), label),
			text.NewCol(2, money(in.CurrencySymbol, in.Summary.Tax), value),
		),
		row.New(10).Add(
			col.New(8),
			text.NewCol(2, "Total:", props.Text{Size: 12, Style: fontstyle.Bold, Align: align.Right}),
			text.NewCol(2, money(in.CurrencySymbol, in.Summary.Total), props.Text{Size: 12, Style: fontstyle.Bold, Align: align.Right, Right: 1}),
		),
	}
}

func footerRow(disclaimer string) core.Row {
	return row.New(10).Add(
		text.NewCol(12, disclaimer, props.Text{Size: 8, Align: align.Center}),
	)
}

func money(symbol string, d decimal.Decimal) string {
	return symbol + d.StringFixed(2)
}
