// Package style compiles window style codes into row and pane layouts.
//
// A style code lists rows top to bottom separated by '/', and panes left to
// right within a row separated by '-'. Each pane is a single letter:
//
//	A  awning
//	F  fixed
//	S  sliding
//
// "A-F/S" is an opening with two rows: an awning beside a fixed pane on top,
// and a single sliding pane below.
package style

import "strings"

const (
	rowSeparator  = "/"
	paneSeparator = "-"
)

// PaneKind identifies the operating type of a single pane.
type PaneKind int

const (
	Unknown PaneKind = iota
	Awning
	Fixed
	Sliding
)

// String returns the wire name of the kind.
func (k PaneKind) String() string {
	switch k {
	case Awning:
		return "awning"
	case Fixed:
		return "fixed"
	case Sliding:
		return "sliding"
	default:
		return "unknown"
	}
}

// Label returns the display name used on production schedules.
func (k PaneKind) Label() string {
	switch k {
	case Awning:
		return "Awning"
	case Fixed:
		return "Fixed"
	case Sliding:
		return "Sliding"
	default:
		return "Unknown"
	}
}

// MarshalText encodes the kind by its wire name.
func (k PaneKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func kindOf(token string) PaneKind {
	switch token {
	case "A":
		return Awning
	case "F":
		return Fixed
	case "S":
		return Sliding
	default:
		return Unknown
	}
}

// Pane is one glazed unit within a row.
type Pane struct {
	Kind PaneKind `json:"kind"`
	// Token is the raw style-code text the pane was compiled from.
	Token string `json:"token"`
}

// Row is a horizontal band of panes, left to right.
type Row []Pane

// ParsedStyle is the compiled layout of an opening. It always holds at least
// one row and every row holds at least one pane.
type ParsedStyle struct {
	code string
	rows []Row
}

// Parse compiles a style code. It never fails: unrecognized or empty tokens
// become Unknown panes, so "x/-" yields [[unknown] [unknown unknown]].
func Parse(code string) ParsedStyle {
	rawRows := strings.Split(code, rowSeparator)
	rows := make([]Row, 0, len(rawRows))
	for _, rawRow := range rawRows {
		tokens := strings.Split(rawRow, paneSeparator)
		row := make(Row, 0, len(tokens))
		for _, token := range tokens {
			row = append(row, Pane{Kind: kindOf(token), Token: token})
		}
		rows = append(rows, row)
	}
	return ParsedStyle{code: code, rows: rows}
}

// Code returns the style code the layout was compiled from.
func (p ParsedStyle) Code() string {
	return p.code
}

// NumRows returns the number of rows.
func (p ParsedStyle) NumRows() int {
	if len(p.rows) == 0 {
		// Zero value behaves like Parse("").
		return 1
	}
	return len(p.rows)
}

// PaneCount returns the number of panes in row i (0-based).
func (p ParsedStyle) PaneCount(i int) int {
	if len(p.rows) == 0 {
		return 1
	}
	return len(p.rows[i])
}

// Rows returns a copy of the layout.
func (p ParsedStyle) Rows() []Row {
	if len(p.rows) == 0 {
		return []Row{{{Kind: Unknown}}}
	}
	out := make([]Row, len(p.rows))
	for i, row := range p.rows {
		out[i] = append(Row(nil), row...)
	}
	return out
}

// Panes returns the total number of panes across all rows.
func (p ParsedStyle) Panes() int {
	n := 0
	for i := 0; i < p.NumRows(); i++ {
		n += p.PaneCount(i)
	}
	return n
}
