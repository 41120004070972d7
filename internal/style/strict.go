package style

import (
	"fmt"
	"strings"
)

// Position addresses a pane by 1-based row and pane number.
type Position struct {
	Row  int
	Pane int
}

func (p Position) String() string {
	return fmt.Sprintf("%d-%d", p.Row, p.Pane)
}

// UnknownPanesError lists the panes of a code that did not compile to a known kind.
type UnknownPanesError struct {
	Code      string
	Positions []Position
}

func (e *UnknownPanesError) Error() string {
	ids := make([]string, len(e.Positions))
	for i, pos := range e.Positions {
		ids[i] = pos.String()
	}
	return fmt.Sprintf("style %q has unknown panes at %s", e.Code, strings.Join(ids, ", "))
}

// Strict parses code like Parse and additionally reports Unknown panes as an
// *UnknownPanesError. The returned layout is usable either way.
func Strict(code string) (ParsedStyle, error) {
	parsed := Parse(code)

	var unknown []Position
	for r, row := range parsed.rows {
		for p, pane := range row {
			if pane.Kind == Unknown {
				unknown = append(unknown, Position{Row: r + 1, Pane: p + 1})
			}
		}
	}
	if len(unknown) > 0 {
		return parsed, &UnknownPanesError{Code: code, Positions: unknown}
	}
	return parsed, nil
}
