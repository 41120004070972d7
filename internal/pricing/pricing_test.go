package pricing

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Simplici0/vitrea/internal/project"
	"github.com/Simplici0/vitrea/internal/style"
)

func nearlyEqual(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("%s = %v, want %v", name, got, want)
	}
}

func TestGlazingMultiplier_DefaultsToOne(t *testing.T) {
	m := Default()

	nearlyEqual(t, "single_glazed", m.GlazingMultiplier(project.SingleGlazed), 1.0)
	nearlyEqual(t, "acoustic", m.GlazingMultiplier(project.Acoustic), 2.2)
	nearlyEqual(t, "unknown", m.GlazingMultiplier(project.GlazingUnknown), 1.0)
	nearlyEqual(t, "out of range", m.GlazingMultiplier(project.GlazingKind(99)), 1.0)
}

func TestFixedCost_UnknownPaneIsZero(t *testing.T) {
	m := Default()

	nearlyEqual(t, "fixed", m.FixedCost(style.Fixed), 5)
	nearlyEqual(t, "awning", m.FixedCost(style.Awning), 45)
	nearlyEqual(t, "sliding", m.FixedCost(style.Sliding), 60)
	nearlyEqual(t, "unknown", m.FixedCost(style.Unknown), 0)
}

func TestNew_RejectsInvalidRates(t *testing.T) {
	r := DefaultRates()
	r.GlassPerSqMm = -1
	r.MarkupRatio = 0.5

	_, err := New(r)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	for _, want := range []string{"glass_per_sq_mm", "markup_ratio"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected error to mention %q, got %v", want, err)
		}
	}
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	m, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m.Rates() != DefaultRates() {
		t.Fatalf("rates = %+v, want defaults", m.Rates())
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pricing.yaml")
	content := []byte(`
factory_per_opening: 500
glazing:
  acoustic: 3
pane_fixed:
  awning: 50.5
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write pricing file: %v", err)
	}

	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	nearlyEqual(t, "factory", m.FactoryCost(), 500)
	nearlyEqual(t, "acoustic", m.GlazingMultiplier(project.Acoustic), 3)
	nearlyEqual(t, "awning", m.FixedCost(style.Awning), 50.5)
	nearlyEqual(t, "toughened untouched", m.GlazingMultiplier(project.Toughened), 1.3)
	nearlyEqual(t, "head untouched", m.HeadRate(), 0.011126)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pricing.yaml")
	if err := os.WriteFile(path, []byte("markup_ratio: 2.5\n"), 0o600); err != nil {
		t.Fatalf("write pricing file: %v", err)
	}
	t.Setenv("PRICING_MARKUP_RATIO", "3")
	t.Setenv("PRICING_GLAZING__DOUBLE_GLAZED", "1.9")

	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	nearlyEqual(t, "markup", m.MarkupRatio(), 3)
	nearlyEqual(t, "double_glazed", m.GlazingMultiplier(project.DoubleGlazed), 1.9)
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected error for missing pricing file")
	}
}
