// Package estimate prices a project from its openings and a pricing model.
package estimate

import (
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/Simplici0/vitrea/internal/pricing"
	"github.com/Simplici0/vitrea/internal/project"
	"github.com/Simplici0/vitrea/internal/style"
)

// parallelThreshold is the number of eligible openings above which the
// per-opening pass fans out across goroutines.
const parallelThreshold = 64

// Breakdown is the price of a project at full precision.
//
// Base = Subtotal + Markup + Factory and Final = Base + Install.
type Breakdown struct {
	Subtotal float64 `json:"subtotal"`
	Markup   float64 `json:"markup"`
	Factory  float64 `json:"factory"`
	Base     float64 `json:"base"`
	Install  float64 `json:"install"`
	Final    float64 `json:"final"`
}

// Rounded returns a copy with every field rounded to cents, for display.
func (b Breakdown) Rounded() Breakdown {
	return Breakdown{
		Subtotal: round2(b.Subtotal),
		Markup:   round2(b.Markup),
		Factory:  round2(b.Factory),
		Base:     round2(b.Base),
		Install:  round2(b.Install),
		Final:    round2(b.Final),
	}
}

// Finite reports whether every field is a finite number. Sums over very many
// large openings can still overflow even when each opening is in range.
func (b Breakdown) Finite() bool {
	for _, v := range []float64{b.Subtotal, b.Markup, b.Factory, b.Base, b.Install, b.Final} {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return false
		}
	}
	return true
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Lines are the material cost components of one opening.
type Lines struct {
	Frame      float64 `json:"frame"`
	Structural float64 `json:"structural"`
	Glass      float64 `json:"glass"`
	Hardware   float64 `json:"hardware"`
	PowderCoat float64 `json:"powderCoat"`
	// Perimeter is the total extrusion length in millimetres.
	Perimeter float64 `json:"perimeter"`
}

// Total is the material cost of the opening.
func (l Lines) Total() float64 {
	return l.Frame + l.Structural + l.Glass + l.Hardware + l.PowderCoat
}

// Estimator prices projects against one pricing model.
type Estimator struct {
	model *pricing.Model
}

// New returns an estimator for model.
func New(model *pricing.Model) *Estimator {
	return &Estimator{model: model}
}

// OpeningCost prices one eligible opening.
func (e *Estimator) OpeningCost(d project.Dimensions, layout style.ParsedStyle, glazing project.GlazingKind) Lines {
	m := e.model
	numRows := layout.NumRows()
	rowHeight := d.CutHeight / float64(numRows)
	multiplier := m.GlazingMultiplier(glazing)

	var l Lines
	l.Frame = d.CutWidth*(m.HeadRate()+m.SillRate()) + 2*d.CutHeight*m.JambRate()

	transoms := float64(numRows - 1)
	l.Structural = transoms * d.CutWidth * m.MullionRate()

	verticalMullionLength := 0.0
	for _, row := range layout.Rows() {
		paneCount := len(row)
		if paneCount > 1 {
			mullions := float64(paneCount-1) * rowHeight
			l.Structural += mullions * m.MullionRate()
			verticalMullionLength += mullions
		}

		paneWidth := d.CutWidth / float64(paneCount)
		for _, pane := range row {
			l.Glass += rowHeight * paneWidth * m.GlassRate() * multiplier
			l.Hardware += m.FixedCost(pane.Kind)
		}
	}

	l.Perimeter = 2*d.CutWidth + 2*d.CutHeight + transoms*d.CutWidth + verticalMullionLength
	l.PowderCoat = l.Perimeter * m.PowderCoatRate()
	return l
}

type pricedOpening struct {
	dims   project.Dimensions
	layout style.ParsedStyle
}

// Estimate prices a project. Ineligible openings are left out of every
// total; a project without rooms prices at zero.
func (e *Estimator) Estimate(p project.Project) Breakdown {
	if len(p.Rooms) == 0 {
		return Breakdown{}
	}

	var openings []pricedOpening
	for _, room := range p.Rooms {
		for _, o := range room.Openings {
			d, _, ok := project.Eligible(o, p.Frame)
			if !ok {
				continue
			}
			openings = append(openings, pricedOpening{dims: d, layout: style.Parse(o.StyleCode)})
		}
	}

	costs := e.openingCosts(openings, p.Glazing)

	// Summed in input order so results do not depend on scheduling.
	subtotal := 0.0
	for _, c := range costs {
		subtotal += c
	}
	return e.totals(subtotal, len(openings), p.InstallationRequested)
}

func (e *Estimator) openingCosts(openings []pricedOpening, glazing project.GlazingKind) []float64 {
	costs := make([]float64, len(openings))
	if len(openings) <= parallelThreshold {
		for i, o := range openings {
			costs[i] = e.OpeningCost(o.dims, o.layout, glazing).Total()
		}
		return costs
	}

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, o := range openings {
		g.Go(func() error {
			costs[i] = e.OpeningCost(o.dims, o.layout, glazing).Total()
			return nil
		})
	}
	_ = g.Wait()
	return costs
}

func (e *Estimator) totals(subtotal float64, eligible int, install bool) Breakdown {
	b := Breakdown{Subtotal: subtotal}
	// The ratio is the marked-up total, so only the excess is markup.
	b.Markup = subtotal * (e.model.MarkupRatio() - 1)
	b.Factory = float64(eligible) * e.model.FactoryCost()
	b.Base = b.Subtotal + b.Markup + b.Factory
	if install {
		b.Install = float64(eligible) * e.model.InstallCost()
	}
	b.Final = b.Base + b.Install
	return b
}
