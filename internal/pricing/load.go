package pricing

import (
	"errors"
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix marks environment variables that override rates.
// PRICING_MARKUP_RATIO sets markup_ratio; a double underscore descends into
// a section, so PRICING_GLAZING__ACOUSTIC sets glazing.acoustic.
const EnvPrefix = "PRICING_"

// Load builds a model from the built-in rates, then the YAML file at path
// (skipped when path is empty), then PRICING_* environment variables.
func Load(path string) (*Model, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaultsMap(), "."), nil); err != nil {
		return nil, fmt.Errorf("load default rates: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load pricing file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load pricing env: %w", err)
	}

	var r Rates
	if err := k.Unmarshal("", &r); err != nil {
		return nil, fmt.Errorf("decode pricing: %w", err)
	}

	m, err := New(r)
	if err != nil {
		return nil, fmt.Errorf("invalid pricing: %w", err)
	}
	return m, nil
}

func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

func defaultsMap() map[string]interface{} {
	d := DefaultRates()
	return map[string]interface{}{
		"head_per_mm":           d.HeadPerMm,
		"sill_per_mm":           d.SillPerMm,
		"jamb_per_mm":           d.JambPerMm,
		"mullion_per_mm":        d.MullionPerMm,
		"glass_per_sq_mm":       d.GlassPerSqMm,
		"powder_coat_per_mm":    d.PowderCoatPerMm,
		"markup_ratio":          d.MarkupRatio,
		"factory_per_opening":   d.FactoryPerOpening,
		"install_per_opening":   d.InstallPerOpening,
		"glazing.single_glazed": d.Glazing.SingleGlazed,
		"glazing.toughened":     d.Glazing.Toughened,
		"glazing.double_glazed": d.Glazing.DoubleGlazed,
		"glazing.acoustic":      d.Glazing.Acoustic,
		"pane_fixed.awning":     d.PaneFixed.Awning,
		"pane_fixed.sliding":    d.PaneFixed.Sliding,
		"pane_fixed.fixed":      d.PaneFixed.Fixed,
	}
}

// Validate rejects rate cards that would produce negative or shrinking prices.
func (r Rates) Validate() error {
	var errs []error
	check := func(name string, v float64) {
		if !(v >= 0) {
			errs = append(errs, fmt.Errorf("%s must be >= 0, got %v", name, v))
		}
	}

	check("head_per_mm", r.HeadPerMm)
	check("sill_per_mm", r.SillPerMm)
	check("jamb_per_mm", r.JambPerMm)
	check("mullion_per_mm", r.MullionPerMm)
	check("glass_per_sq_mm", r.GlassPerSqMm)
	check("powder_coat_per_mm", r.PowderCoatPerMm)
	check("factory_per_opening", r.FactoryPerOpening)
	check("install_per_opening", r.InstallPerOpening)
	check("glazing.single_glazed", r.Glazing.SingleGlazed)
	check("glazing.toughened", r.Glazing.Toughened)
	check("glazing.double_glazed", r.Glazing.DoubleGlazed)
	check("glazing.acoustic", r.Glazing.Acoustic)
	check("pane_fixed.awning", r.PaneFixed.Awning)
	check("pane_fixed.sliding", r.PaneFixed.Sliding)
	check("pane_fixed.fixed", r.PaneFixed.Fixed)

	if !(r.MarkupRatio >= 1) {
		errs = append(errs, fmt.Errorf("markup_ratio must be >= 1, got %v", r.MarkupRatio))
	}

	return errors.Join(errs...)
}
