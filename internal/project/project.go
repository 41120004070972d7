// Package project holds the quoted project: rooms of window openings plus
// the frame and glazing choices that apply to all of them.
package project

// FrameKind is the frame being replaced.
type FrameKind int

const (
	ExistingAluminium FrameKind = iota
	ExistingTimber
)

func (f FrameKind) String() string {
	if f == ExistingTimber {
		return "existing-timber"
	}
	return "existing-aluminium"
}

// GlazingKind is the glass specification for the whole project.
type GlazingKind int

const (
	GlazingUnknown GlazingKind = iota
	SingleGlazed
	Toughened
	DoubleGlazed
	Acoustic
)

// ParseGlazingKind maps the wire value; unrecognized input is GlazingUnknown.
func ParseGlazingKind(s string) GlazingKind {
	switch s {
	case "single_glazed":
		return SingleGlazed
	case "toughened":
		return Toughened
	case "double_glazed":
		return DoubleGlazed
	case "acoustic":
		return Acoustic
	default:
		return GlazingUnknown
	}
}

// String returns the wire value, or "" for GlazingUnknown.
func (g GlazingKind) String() string {
	switch g {
	case SingleGlazed:
		return "single_glazed"
	case Toughened:
		return "toughened"
	case DoubleGlazed:
		return "double_glazed"
	case Acoustic:
		return "acoustic"
	default:
		return ""
	}
}

// Label returns the display name printed on glass schedules.
func (g GlazingKind) Label() string {
	switch g {
	case SingleGlazed:
		return "Single Glazed"
	case Toughened:
		return "Toughened"
	case DoubleGlazed:
		return "Double Glazed"
	case Acoustic:
		return "Acoustic"
	default:
		return "Unknown"
	}
}

// Opening is one window unit as supplied by the customer.
type Opening struct {
	Width     float64
	Height    float64
	StyleCode string
}

// Room groups openings under a name.
type Room struct {
	Name     string
	Openings []Opening
}

// Project is one quote request.
type Project struct {
	Frame                 FrameKind
	Glazing               GlazingKind
	InstallationRequested bool
	Rooms                 []Room

	// glazingRaw keeps an unrecognized wire value so Encode round-trips it.
	glazingRaw string
}

// Openings returns the number of openings across all rooms, eligible or not.
func (p Project) Openings() int {
	n := 0
	for _, room := range p.Rooms {
		n += len(room.Openings)
	}
	return n
}
