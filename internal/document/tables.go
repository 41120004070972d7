package document

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/Simplici0/vitrea/internal/quote"
)

// Format selects how Tables renders.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatCSV      Format = "csv"
)

// ParseFormat accepts text, table, markdown, md and csv.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "", "text", "table":
		return FormatText, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "csv":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("unknown output format %q", s)
	}
}

// Tables writes the price summary of q.
func Tables(w io.Writer, q quote.Quote, f Format) error {
	t := newTable(w)
	t.AppendHeader(table.Row{"Line", "Amount"})
	for _, line := range summaryLines(q) {
		t.AppendRow(table.Row{line.Label, money(line.Amount)})
	}
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 2, Align: text.AlignRight}})
	return render(t, f)
}

// ProductionTables writes the cutting list and glass schedule of every priced
// opening, one pair of tables per opening.
func ProductionTables(w io.Writer, q quote.Quote, f Format) error {
	if len(q.Openings) == 0 {
		_, err := fmt.Fprintln(w, "(no eligible openings)")
		return err
	}

	for i, o := range q.Openings {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}

		cut := newTable(w)
		cut.SetTitle(fmt.Sprintf("%s #%d %s cutting list", o.Room, o.Window, o.StyleCode))
		cut.AppendHeader(table.Row{"Component", "Cut length (mm)", "Qty"})
		for _, e := range o.Production.Cutting {
			cut.AppendRow(table.Row{string(e.Component), e.CutLength.Display, strconv.Itoa(e.Quantity)})
		}
		if err := render(cut, f); err != nil {
			return err
		}

		glass := newTable(w)
		glass.SetTitle(fmt.Sprintf("%s #%d %s glass schedule", o.Room, o.Window, o.StyleCode))
		glass.AppendHeader(table.Row{"Pane", "Type", "Width (mm)", "Height (mm)", "Glazing"})
		for _, e := range o.Production.Glass {
			glass.AppendRow(table.Row{e.PaneID, e.PaneLabel, e.PaneWidth.Display, e.PaneHeight.Display, e.GlazingLabel})
		}
		if err := render(glass, f); err != nil {
			return err
		}
	}
	return nil
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	return t
}

func render(t table.Writer, f Format) error {
	switch f {
	case FormatMarkdown:
		t.RenderMarkdown()
	case FormatCSV:
		t.RenderCSV()
	case FormatText, "":
		t.Render()
	default:
		return fmt.Errorf("unknown output format %q", f)
	}
	return nil
}
