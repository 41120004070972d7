package project

import "math"

// TimberDeduction is removed from each axis when an existing timber frame is replaced.
const TimberDeduction = 60.0

// Dimensions are the cut sizes of an opening after the frame deduction.
type Dimensions struct {
	CutWidth  float64 `json:"cutWidth"`
	CutHeight float64 `json:"cutHeight"`
}

// SkipReason explains why an opening was left out of a quote.
type SkipReason string

const (
	SkipMissingWidth  SkipReason = "missing-width"
	SkipMissingHeight SkipReason = "missing-height"
	SkipDeduction     SkipReason = "deduction"
	SkipOutOfRange    SkipReason = "out-of-range"
)

// Adjust applies the frame deduction to the raw opening size.
func Adjust(o Opening, frame FrameKind) Dimensions {
	d := Dimensions{CutWidth: o.Width, CutHeight: o.Height}
	if frame == ExistingTimber {
		d.CutWidth -= TimberDeduction
		d.CutHeight -= TimberDeduction
	}
	return d
}

// Eligible reports whether an opening takes part in a quote. Ineligible
// openings are excluded from every total; the reason is informational only.
func Eligible(o Opening, frame FrameKind) (Dimensions, SkipReason, bool) {
	// Negated comparisons so NaN is rejected too.
	if !(o.Width > 0) {
		return Dimensions{}, SkipMissingWidth, false
	}
	if !(o.Height > 0) {
		return Dimensions{}, SkipMissingHeight, false
	}
	if math.IsInf(o.Width, 0) || math.IsInf(o.Height, 0) {
		return Dimensions{}, SkipOutOfRange, false
	}
	d := Adjust(o, frame)
	if d.CutWidth <= 0 || d.CutHeight <= 0 {
		return d, SkipDeduction, false
	}
	// The glass area must stay finite for every cost line to be finite.
	if math.IsInf(d.CutWidth*d.CutHeight, 0) {
		return Dimensions{}, SkipOutOfRange, false
	}
	return d, "", true
}
