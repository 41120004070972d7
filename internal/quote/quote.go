// Package quote combines the estimator and production planner into the
// single result a request boundary hands out.
package quote

import (
	"github.com/Simplici0/vitrea/internal/estimate"
	"github.com/Simplici0/vitrea/internal/pricing"
	"github.com/Simplici0/vitrea/internal/production"
	"github.com/Simplici0/vitrea/internal/project"
	"github.com/Simplici0/vitrea/internal/style"
)

// OpeningSheet is everything derived for one eligible opening.
type OpeningSheet struct {
	Room       string             `json:"room"`
	Window     int                `json:"window"`
	StyleCode  string             `json:"style"`
	Dimensions project.Dimensions `json:"dimensions"`
	Rows       []style.Row        `json:"rows"`
	Cost       estimate.Lines     `json:"cost"`
	Production production.Sheet   `json:"production"`
}

// Skipped records an opening left out of the quote.
type Skipped struct {
	Room   string             `json:"room"`
	Window int                `json:"window"`
	Reason project.SkipReason `json:"reason"`
}

// Quote is the full derived output for one project.
type Quote struct {
	Frame     string             `json:"frame"`
	Glazing   string             `json:"glazing"`
	Install   bool               `json:"installation"`
	Breakdown estimate.Breakdown `json:"breakdown"`
	Rounded   estimate.Breakdown `json:"rounded"`
	Openings  []OpeningSheet     `json:"openings"`
	Skipped   []Skipped          `json:"skipped"`
}

// Service builds quotes against one pricing model.
type Service struct {
	estimator *estimate.Estimator
}

// NewService returns a service for model.
func NewService(model *pricing.Model) *Service {
	return &Service{estimator: estimate.New(model)}
}

// Estimate returns only the price breakdown of p.
func (s *Service) Estimate(p project.Project) estimate.Breakdown {
	return s.estimator.Estimate(p)
}

// Build prices p and plans production for each eligible opening. Windows are
// numbered from 1 within their room, counting ineligible ones too.
func (s *Service) Build(p project.Project) Quote {
	breakdown := s.estimator.Estimate(p)
	q := Quote{
		Frame:     p.Frame.String(),
		Glazing:   p.Glazing.Label(),
		Install:   p.InstallationRequested,
		Breakdown: breakdown,
		Rounded:   breakdown.Rounded(),
		Openings:  []OpeningSheet{},
		Skipped:   []Skipped{},
	}

	for _, room := range p.Rooms {
		for i, o := range room.Openings {
			d, reason, ok := project.Eligible(o, p.Frame)
			if !ok {
				q.Skipped = append(q.Skipped, Skipped{Room: room.Name, Window: i + 1, Reason: reason})
				continue
			}
			layout := style.Parse(o.StyleCode)
			q.Openings = append(q.Openings, OpeningSheet{
				Room:       room.Name,
				Window:     i + 1,
				StyleCode:  o.StyleCode,
				Dimensions: d,
				Rows:       layout.Rows(),
				Cost:       s.estimator.OpeningCost(d, layout, p.Glazing),
				Production: production.Plan(o, d, layout, p.Glazing),
			})
		}
	}
	return q
}
