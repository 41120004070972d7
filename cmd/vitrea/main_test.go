package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const lounge = `{
	"existingFrame": "aluminium",
	"glazingType": "single_glazed",
	"installationCosts": "no",
	"rooms": [{"name": "Lounge", "windows": [
		{"style": "F", "width": 1000, "height": 1000},
		{"style": "A", "width": 0, "height": 900}
	]}]
}`

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	t.Setenv("PRICING_FILE", "")
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeProject(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "project.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write project: %v", err)
	}
	return path
}

func TestEstimateCommand(t *testing.T) {
	out, errOut, err := execute(t, "", "estimate", writeProject(t, lounge))
	if err != nil {
		t.Fatalf("estimate returned error: %v", err)
	}
	if !strings.Contains(out, "978.25") || !strings.Contains(out, "Markup") {
		t.Fatalf("unexpected estimate output:\n%s", out)
	}
	if !strings.Contains(errOut, "skipped Lounge window 2: missing-width") {
		t.Fatalf("expected skipped opening on stderr, got %q", errOut)
	}
}

func TestEstimateCommandJSONFromStdin(t *testing.T) {
	out, _, err := execute(t, lounge, "estimate", "-", "--output", "json")
	if err != nil {
		t.Fatalf("estimate returned error: %v", err)
	}

	var got struct {
		Rounded struct {
			Final float64 `json:"final"`
		} `json:"rounded"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if got.Rounded.Final != 978.25 {
		t.Fatalf("expected final 978.25, got %v", got.Rounded.Final)
	}
}

func TestEstimateCommandPricingFile(t *testing.T) {
	rates := filepath.Join(t.TempDir(), "rates.yaml")
	if err := os.WriteFile(rates, []byte("factory_per_opening: 0\nmarkup_ratio: 1\n"), 0o644); err != nil {
		t.Fatalf("write rates: %v", err)
	}

	out, _, err := execute(t, "", "estimate", writeProject(t, lounge), "--pricing", rates, "-o", "csv")
	if err != nil {
		t.Fatalf("estimate returned error: %v", err)
	}
	if !strings.Contains(out, "Total,109.17") {
		t.Fatalf("expected materials-only total, got:\n%s", out)
	}
}

func TestPlanCommand(t *testing.T) {
	out, _, err := execute(t, "", "plan", writeProject(t, lounge), "--output", "csv")
	if err != nil {
		t.Fatalf("plan returned error: %v", err)
	}
	for _, want := range []string{"head-sill,1000.0,2", "jambs,1000.0,2", "1-1,Fixed,1000.0,1000.0,Single Glazed"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in plan output:\n%s", want, out)
		}
	}
}

func TestStrictRejectsUnknownPanes(t *testing.T) {
	path := writeProject(t, strings.Replace(lounge, `"style": "F"`, `"style": "F-Z"`, 1))

	if _, _, err := execute(t, "", "estimate", path); err != nil {
		t.Fatalf("lenient estimate returned error: %v", err)
	}
	_, _, err := execute(t, "", "estimate", path, "--strict")
	if err == nil || !strings.Contains(err.Error(), "Lounge window 1") {
		t.Fatalf("expected strict error naming the opening, got %v", err)
	}
}

func TestUnknownOutputFormat(t *testing.T) {
	if _, _, err := execute(t, "", "plan", writeProject(t, lounge), "-o", "xml"); err == nil {
		t.Fatalf("expected error for unknown output format")
	}
}

func TestMissingProjectFile(t *testing.T) {
	if _, _, err := execute(t, "", "estimate", filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatalf("expected error for missing project file")
	}
}
