package document

import (
	"bufio"
	"fmt"
	"io"

	"github.com/Simplici0/vitrea/internal/quote"
)

// Text writes a plain text summary of q.
func Text(w io.Writer, q quote.Quote, meta Meta) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, meta.Title())
	if meta.Reference != "" {
		fmt.Fprintf(bw, "Reference: %s\n", meta.Reference)
	}
	if !meta.CreatedAt.IsZero() {
		fmt.Fprintf(bw, "Created: %s\n", meta.CreatedAt.UTC().Format("2006-01-02 15:04"))
	}
	if meta.Notes != "" {
		fmt.Fprintf(bw, "Notes: %s\n", meta.Notes)
	}
	if note := meta.Note(); note != "" {
		fmt.Fprintln(bw, note)
	}
	fmt.Fprintf(bw, "Frame: %s\nGlazing: %s\nInstallation: %s\n", q.Frame, q.Glazing, yesNo(q.Install))
	fmt.Fprintf(bw, "Openings: %d priced, %d skipped\n\n", len(q.Openings), len(q.Skipped))

	for _, line := range summaryLines(q) {
		fmt.Fprintf(bw, "%-14s %12s\n", line.Label, money(line.Amount))
	}

	for _, o := range q.Openings {
		fmt.Fprintf(bw, "\n%s #%d  %s  %.1f x %.1f mm  materials %s\n",
			o.Room, o.Window, o.StyleCode, o.Dimensions.CutWidth, o.Dimensions.CutHeight, money(o.Cost.Total()))
	}
	for _, s := range q.Skipped {
		fmt.Fprintf(bw, "\nskipped: %s #%d (%s)\n", s.Room, s.Window, s.Reason)
	}

	return bw.Flush()
}
