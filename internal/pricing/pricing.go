package pricing

import (
	"github.com/Simplici0/vitrea/internal/project"
	"github.com/Simplici0/vitrea/internal/style"
)

// Rates is the plain configuration shape of a pricing model. Lengths are in
// millimetres and areas in square millimetres.
type Rates struct {
	HeadPerMm         float64 `koanf:"head_per_mm"`
	SillPerMm         float64 `koanf:"sill_per_mm"`
	JambPerMm         float64 `koanf:"jamb_per_mm"`
	MullionPerMm      float64 `koanf:"mullion_per_mm"`
	GlassPerSqMm      float64 `koanf:"glass_per_sq_mm"`
	PowderCoatPerMm   float64 `koanf:"powder_coat_per_mm"`
	MarkupRatio       float64 `koanf:"markup_ratio"`
	FactoryPerOpening float64 `koanf:"factory_per_opening"`
	InstallPerOpening float64 `koanf:"install_per_opening"`

	Glazing   GlazingMultipliers `koanf:"glazing"`
	PaneFixed PaneFixedCosts     `koanf:"pane_fixed"`
}

// GlazingMultipliers scale the glass cost per glazing kind.
type GlazingMultipliers struct {
	SingleGlazed float64 `koanf:"single_glazed"`
	Toughened    float64 `koanf:"toughened"`
	DoubleGlazed float64 `koanf:"double_glazed"`
	Acoustic     float64 `koanf:"acoustic"`
}

// PaneFixedCosts are hardware costs added once per pane of a kind.
type PaneFixedCosts struct {
	Awning  float64 `koanf:"awning"`
	Sliding float64 `koanf:"sliding"`
	Fixed   float64 `koanf:"fixed"`
}

// DefaultRates returns the built-in rate card.
func DefaultRates() Rates {
	return Rates{
		HeadPerMm:         0.011126,
		SillPerMm:         0.013221,
		JambPerMm:         0.008835,
		MullionPerMm:      0.008835,
		GlassPerSqMm:      0.000045,
		PowderCoatPerMm:   0.0042872,
		MarkupRatio:       2.0909,
		FactoryPerOpening: 750,
		InstallPerOpening: 800,
		Glazing: GlazingMultipliers{
			SingleGlazed: 1.0,
			Toughened:    1.3,
			DoubleGlazed: 1.8,
			Acoustic:     2.2,
		},
		PaneFixed: PaneFixedCosts{
			Awning:  45,
			Sliding: 60,
			Fixed:   5,
		},
	}
}

// Model is an immutable rate card. It is safe for concurrent use.
type Model struct {
	rates Rates
}

// New builds a model from rates after validating them.
func New(r Rates) (*Model, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &Model{rates: r}, nil
}

// Default returns a model with the built-in rate card.
func Default() *Model {
	return &Model{rates: DefaultRates()}
}

// Rates returns a copy of the underlying rates.
func (m *Model) Rates() Rates { return m.rates }

func (m *Model) HeadRate() float64 { return m.rates.HeadPerMm }
func (m *Model) SillRate() float64 { return m.rates.SillPerMm }
func (m *Model) JambRate() float64 { return m.rates.JambPerMm }
func (m *Model) MullionRate() float64 { return m.rates.MullionPerMm }
func (m *Model) GlassRate() float64 { return m.rates.GlassPerSqMm }
func (m *Model) PowderCoatRate() float64 { return m.rates.PowderCoatPerMm }
func (m *Model) MarkupRatio() float64 { return m.rates.MarkupRatio }
func (m *Model) FactoryCost() float64 { return m.rates.FactoryPerOpening }
func (m *Model) InstallCost() float64 { return m.rates.InstallPerOpening }

// GlazingMultiplier returns the glass cost scalar; unknown glazing is 1.0.
func (m *Model) GlazingMultiplier(g project.GlazingKind) float64 {
	switch g {
	case project.SingleGlazed:
		return m.rates.Glazing.SingleGlazed
	case project.Toughened:
		return m.rates.Glazing.Toughened
	case project.DoubleGlazed:
		return m.rates.Glazing.DoubleGlazed
	case project.Acoustic:
		return m.rates.Glazing.Acoustic
	default:
		return 1.0
	}
}

// FixedCost returns the per-pane hardware cost; unknown panes cost nothing.
func (m *Model) FixedCost(k style.PaneKind) float64 {
	switch k {
	case style.Awning:
		return m.rates.PaneFixed.Awning
	case style.Sliding:
		return m.rates.PaneFixed.Sliding
	case style.Fixed:
		return m.rates.PaneFixed.Fixed
	default:
		return 0
	}
}
