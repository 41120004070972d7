package document

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Simplici0/vitrea/internal/pricing"
	"github.com/Simplici0/vitrea/internal/project"
	"github.com/Simplici0/vitrea/internal/quote"
)

func sampleQuote() quote.Quote {
	p := project.Project{
		Frame:   project.ExistingAluminium,
		Glazing: project.SingleGlazed,
		Rooms: []project.Room{{Name: "Lounge", Openings: []project.Opening{
			{Width: 1000, Height: 1000, StyleCode: "F"},
			{Width: 0, Height: 900, StyleCode: "A"},
		}}},
	}
	return quote.NewService(pricing.Default()).Build(p)
}

func sampleMeta() Meta {
	return Meta{
		Name:      "Smith <residence>",
		Reference: "3f1c8a9e-8d3b-4c55-9b59-1f4f0b6f0a11",
		Version:   2,
		Notes:     "Measure again on site",
		CreatedAt: time.Date(2024, 3, 5, 9, 30, 0, 0, time.UTC),
	}
}

func TestMetaTitle(t *testing.T) {
	assert.Equal(t, "Window quote", Meta{}.Title())
	assert.Equal(t, "Smith", Meta{Name: "Smith"}.Title())
	assert.Equal(t, "Smith (v3)", Meta{Name: "Smith", Version: 3}.Title())
}

func TestHTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, HTML(&buf, sampleQuote(), sampleMeta()))
	out := buf.String()

	assert.Contains(t, out, "Smith &lt;residence&gt; (v2)")
	assert.NotContains(t, out, "<residence>")
	assert.Contains(t, out, "Created 2024-03-05 09:30")
	assert.Contains(t, out, "Totals are as quoted on 2024-03-05. Opening material lines use current rates")
	assert.Contains(t, out, "978.25")
	assert.Contains(t, out, "head-sill")
	assert.Contains(t, out, "1000.0")
	assert.Contains(t, out, "Single Glazed")
	assert.Contains(t, out, "Lounge #2: missing-width")
	assert.NotContains(t, out, "Installation</th>")
}

func TestText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Text(&buf, sampleQuote(), Meta{}))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "Window quote\n"))
	assert.Contains(t, out, "Openings: 1 priced, 1 skipped")
	assert.Contains(t, out, "Materials")
	assert.Contains(t, out, "109.17")
	assert.Contains(t, out, "Lounge #1  F  1000.0 x 1000.0 mm")
	assert.Contains(t, out, "skipped: Lounge #2 (missing-width)")
	assert.NotContains(t, out, "Reference:")
	assert.NotContains(t, out, "current rates")
}

func TestText_StoredQuoteNote(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Text(&buf, sampleQuote(), sampleMeta()))

	assert.Contains(t, buf.String(), "Created: 2024-03-05 09:30\nNotes: Measure again on site\n"+
		"Totals are as quoted on 2024-03-05. Opening material lines use current rates and may differ.\n")
	assert.Empty(t, Meta{Name: "draft"}.Note())
}

func TestTables(t *testing.T) {
	q := sampleQuote()

	var csv bytes.Buffer
	require.NoError(t, Tables(&csv, q, FormatCSV))
	assert.Contains(t, csv.String(), "Line,Amount")
	assert.Contains(t, csv.String(), "Total,978.25")

	var md bytes.Buffer
	require.NoError(t, Tables(&md, q, FormatMarkdown))
	assert.Contains(t, md.String(), "| Line | Amount |")

	var txt bytes.Buffer
	require.NoError(t, Tables(&txt, q, FormatText))
	assert.Contains(t, txt.String(), "Markup")
	assert.Contains(t, txt.String(), "119.09")

	assert.Error(t, Tables(&txt, q, Format("yaml")))
}

func TestProductionTables(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ProductionTables(&buf, sampleQuote(), FormatCSV))
	out := buf.String()

	assert.Contains(t, out, "head-sill,1000.0,2")
	assert.Contains(t, out, "jambs,1000.0,2")
	assert.Contains(t, out, "1-1,Fixed,1000.0,1000.0,Single Glazed")
	assert.NotContains(t, out, "transom")

	buf.Reset()
	require.NoError(t, ProductionTables(&buf, quote.Quote{}, FormatText))
	assert.Equal(t, "(no eligible openings)\n", buf.String())
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatText, "table": FormatText, "md": FormatMarkdown, "csv": FormatCSV} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseFormat("xml")
	assert.Error(t, err)
}
