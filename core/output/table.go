package output

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"cleaning-cost/core/types"
)

var cadenceLabels = map[types.Cadence]string{
	types.CadenceWeekly:    "Weekly",
	types.CadenceBiweekly:  "Bi-weekly",
	types.CadenceMonthly:   "Monthly",
	types.CadenceDeepClean: "Deep Clean",
}

// tableFormatter renders go-pretty tables, as box-drawn text or markdown.
type tableFormatter struct {
	format Format
}

func (f *tableFormatter) Format() Format { return f.format }

func (f *tableFormatter) Render(w io.Writer, result *EstimationResult) error {
	q := result.Quote
	cur := q.Prices.Currency

	prices := f.newTable("Cleaning Estimate")
	prices.AppendHeader(table.Row{"Cadence", "Price"})
	for _, c := range types.Cadences() {
		prices.AppendRow(table.Row{cadenceLabels[c], Money(q.Prices.Get(c), cur)})
	}
	if err := f.write(w, prices); err != nil {
		return err
	}

	if !result.ShowBreakdown {
		return nil
	}

	base := fmt.Sprintf("Base rate (%d sq ft)", q.BaseRow.SquareFeet)
	if q.FallbackBucket {
		base = fmt.Sprintf("Base rate (%d sq ft, fallback for %d)", q.BaseRow.SquareFeet, q.SquareFeet)
	}

	breakdown := f.newTable("Weekly Breakdown")
	breakdown.AppendHeader(table.Row{"Item", "Detail", "Amount"})
	breakdown.AppendRow(table.Row{base, q.Table, Money(q.BaseRow.Weekly, cur)})
	for _, a := range q.Adjustments {
		breakdown.AppendRow(table.Row{a.Label, a.Formula, Signed(a.Amount, cur)})
	}
	breakdown.AppendSeparator()
	breakdown.AppendRow(table.Row{"Subtotal", "", Money(q.Subtotal, cur)})
	breakdown.AppendRow(table.Row{"Markup factor", "", "x" + q.Factor.String()})
	breakdown.AppendFooter(table.Row{"Weekly", "", Money(q.Prices.Weekly, cur)})
	if err := f.write(w, breakdown); err != nil {
		return err
	}

	if len(result.Rooms) == 0 {
		return nil
	}
	return f.RenderRooms(w, result.Rooms)
}

func (f *tableFormatter) RenderRooms(w io.Writer, rooms []types.Room) error {
	t := f.newTable("Room Floors")
	t.AppendHeader(table.Row{"#", "Room", "Floor"})
	for i, r := range rooms {
		t.AppendRow(table.Row{i, r.Label, string(r.FloorType)})
	}
	return f.write(w, t)
}

func (f *tableFormatter) RenderRates(w io.Writer, rates *RateSheet) error {
	t := f.newTable(fmt.Sprintf("Rate Table (%s)", rates.Table))
	t.AppendHeader(table.Row{"Sq Ft", "Weekly", "Bi-weekly", "Monthly", "Deep Clean"})
	for _, row := range rates.Rows {
		t.AppendRow(table.Row{
			strconv.Itoa(row.SquareFeet),
			Money(row.Weekly, rates.Currency),
			Money(row.Biweekly, rates.Currency),
			Money(row.Monthly, rates.Currency),
			Money(row.DeepClean, rates.Currency),
		})
	}
	return f.write(w, t)
}

func (f *tableFormatter) newTable(title string) table.Writer {
	t := table.NewWriter()
	t.SetTitle(title)
	t.SetStyle(table.StyleLight)
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Price", Align: text.AlignRight},
		{Name: "Amount", Align: text.AlignRight, AlignFooter: text.AlignRight},
	})
	return t
}

func (f *tableFormatter) write(w io.Writer, t table.Writer) error {
	var out string
	if f.format == FormatMarkdown {
		out = t.RenderMarkdown()
	} else {
		out = t.Render()
	}
	_, err := io.WriteString(w, out+"\n\n")
	return err
}
