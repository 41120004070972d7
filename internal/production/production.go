// Package production derives the cutting list and glass schedule of an opening.
package production

import (
	"fmt"
	"math"
	"strconv"

	"github.com/Simplici0/vitrea/internal/project"
	"github.com/Simplici0/vitrea/internal/style"
)

// Component names the extrusion a cutting-list entry is for.
type Component string

const (
	HeadSill Component = "head-sill"
	Jambs    Component = "jambs"
	Transom  Component = "transom"
)

// MullionRow names the vertical mullions of row n (1-based).
func MullionRow(n int) Component {
	return Component(fmt.Sprintf("mullion-row-%d", n))
}

// Measure keeps a length at full precision beside its 1-decimal display form.
type Measure struct {
	Value   float64 `json:"value"`
	Display string  `json:"display"`
}

func measure(v float64) Measure {
	return Measure{Value: v, Display: strconv.FormatFloat(round1(v), 'f', 1, 64)}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// CuttingListEntry is one line of the cutting list.
type CuttingListEntry struct {
	Component Component `json:"component"`
	CutLength Measure   `json:"cutLength"`
	Quantity  int       `json:"quantity"`
}

// GlassScheduleEntry describes one pane of glass to order.
type GlassScheduleEntry struct {
	PaneID       string         `json:"paneId"`
	PaneKind     style.PaneKind `json:"paneKind"`
	PaneLabel    string         `json:"paneLabel"`
	PaneWidth    Measure        `json:"paneWidth"`
	PaneHeight   Measure        `json:"paneHeight"`
	GlazingLabel string         `json:"glazingLabel"`
}

// Sheet is the production output for one opening.
type Sheet struct {
	StyleCode string               `json:"style"`
	Cutting   []CuttingListEntry   `json:"cuttingList"`
	Glass     []GlassScheduleEntry `json:"glassSchedule"`
}

// Plan builds the cutting list and glass schedule of an eligible opening
// from its cut dimensions and layout.
func Plan(o project.Opening, d project.Dimensions, layout style.ParsedStyle, glazing project.GlazingKind) Sheet {
	numRows := layout.NumRows()
	rowHeight := d.CutHeight / float64(numRows)
	rows := layout.Rows()

	cutting := []CuttingListEntry{
		{Component: HeadSill, CutLength: measure(d.CutWidth), Quantity: 2},
		{Component: Jambs, CutLength: measure(d.CutHeight), Quantity: 2},
	}
	if numRows > 1 {
		cutting = append(cutting, CuttingListEntry{Component: Transom, CutLength: measure(d.CutWidth), Quantity: numRows - 1})
	}
	for i, row := range rows {
		if len(row) > 1 {
			cutting = append(cutting, CuttingListEntry{
				Component: MullionRow(i + 1),
				CutLength: measure(rowHeight),
				Quantity:  len(row) - 1,
			})
		}
	}

	glazingLabel := glazing.Label()
	glass := make([]GlassScheduleEntry, 0, layout.Panes())
	for i, row := range rows {
		paneWidth := measure(d.CutWidth / float64(len(row)))
		for j, pane := range row {
			glass = append(glass, GlassScheduleEntry{
				PaneID:       fmt.Sprintf("%d-%d", i+1, j+1),
				PaneKind:     pane.Kind,
				PaneLabel:    pane.Kind.Label(),
				PaneWidth:    paneWidth,
				PaneHeight:   measure(rowHeight),
				GlazingLabel: glazingLabel,
			})
		}
	}

	return Sheet{StyleCode: o.StyleCode, Cutting: cutting, Glass: glass}
}
