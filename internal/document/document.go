// Package document renders a built quote for people: an HTML page, a plain
// text summary, tables for the terminal, and a PDF printed by headless Chrome.
package document

import (
	"fmt"
	"time"

	"github.com/Simplici0/vitrea/internal/quote"
)

// Meta describes a stored quote. The zero value is used for quotes that were
// never saved.
type Meta struct {
	Name      string
	Reference string
	Version   int
	Notes     string
	CreatedAt time.Time
}

// Title is the heading a document is shown under.
func (m Meta) Title() string {
	if m.Name == "" {
		return "Window quote"
	}
	if m.Version > 0 {
		return fmt.Sprintf("%s (v%d)", m.Name, m.Version)
	}
	return m.Name
}

// Note is shown on stored quotes. Their totals are the saved snapshot while
// the per-opening material lines are rebuilt at the current rates.
func (m Meta) Note() string {
	if m.CreatedAt.IsZero() {
		return ""
	}
	return "Totals are as quoted on " + m.CreatedAt.UTC().Format("2006-01-02") +
		". Opening material lines use current rates and may differ."
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

type summaryLine struct {
	Label  string
	Amount float64
}

func summaryLines(q quote.Quote) []summaryLine {
	b := q.Rounded
	lines := []summaryLine{
		{"Materials", b.Subtotal},
		{"Markup", b.Markup},
		{"Factory", b.Factory},
		{"Base", b.Base},
	}
	if q.Install {
		lines = append(lines, summaryLine{"Installation", b.Install})
	}
	return append(lines, summaryLine{"Total", b.Final})
}
