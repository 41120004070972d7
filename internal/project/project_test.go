package project

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_MapsWireValues(t *testing.T) {
	body := `{
		"existingFrame": "timber",
		"glazingType": "acoustic",
		"installationCosts": "yes",
		"rooms": [
			{"name": "Kitchen", "windows": [{"style": "A-F/S", "width": 1200, "height": "900.5"}]},
			{"name": "Hall", "windows": []}
		]
	}`

	p, err := Decode(strings.NewReader(body))
	require.NoError(t, err)

	assert.Equal(t, ExistingTimber, p.Frame)
	assert.Equal(t, Acoustic, p.Glazing)
	assert.True(t, p.InstallationRequested)
	require.Len(t, p.Rooms, 2)
	assert.Equal(t, "Kitchen", p.Rooms[0].Name)
	assert.Equal(t, Opening{Width: 1200, Height: 900.5, StyleCode: "A-F/S"}, p.Rooms[0].Openings[0])
	assert.Equal(t, 1, p.Openings())
}

func TestDecode_LenientValues(t *testing.T) {
	body := `{
		"existingFrame": "aluminium",
		"glazingType": "stained",
		"installationCosts": "Yes",
		"rooms": [{"name": "Den", "windows": [
			{"style": "F", "width": "wide", "height": null},
			{"style": "F"}
		]}]
	}`

	p, err := Decode(strings.NewReader(body))
	require.NoError(t, err)

	assert.Equal(t, ExistingAluminium, p.Frame)
	assert.Equal(t, GlazingUnknown, p.Glazing)
	assert.False(t, p.InstallationRequested)
	assert.Equal(t, Opening{StyleCode: "F"}, p.Rooms[0].Openings[0])
	assert.Equal(t, Opening{StyleCode: "F"}, p.Rooms[0].Openings[1])
}

func TestDecode_MalformedJSON(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"rooms": [`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode project")
}

func TestDecode_AbsentRooms(t *testing.T) {
	p, err := Decode(strings.NewReader(`{"glazingType": "single_glazed"}`))
	require.NoError(t, err)
	assert.Empty(t, p.Rooms)
}

func TestEncode_RoundTripsThroughDecode(t *testing.T) {
	in := Project{
		Frame:   ExistingTimber,
		Glazing: DoubleGlazed,
		Rooms: []Room{{Name: "Bed 1", Openings: []Opening{
			{Width: 600, Height: 1200, StyleCode: "S-S"},
		}}},
	}

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, in))
	assert.Contains(t, buf.String(), `"installationCosts":"no"`)

	out, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestEncode_KeepsUnknownGlazing(t *testing.T) {
	p := FromRequest(Request{GlazingType: "stained"})

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, p))
	assert.Contains(t, buf.String(), `"glazingType":"stained"`)
}

func TestEligible(t *testing.T) {
	tests := []struct {
		name    string
		opening Opening
		frame   FrameKind
		dims    Dimensions
		reason  SkipReason
		ok      bool
	}{
		{name: "aluminium unchanged", opening: Opening{Width: 1000, Height: 800}, frame: ExistingAluminium, dims: Dimensions{1000, 800}, ok: true},
		{name: "timber deduction", opening: Opening{Width: 1000, Height: 800}, frame: ExistingTimber, dims: Dimensions{940, 740}, ok: true},
		{name: "missing width", opening: Opening{Height: 800}, frame: ExistingAluminium, reason: SkipMissingWidth},
		{name: "negative height", opening: Opening{Width: 500, Height: -1}, frame: ExistingAluminium, reason: SkipMissingHeight},
		{name: "deduction leaves nothing", opening: Opening{Width: 1000, Height: 50}, frame: ExistingTimber, dims: Dimensions{940, -10}, reason: SkipDeduction},
		{name: "deduction to exactly zero", opening: Opening{Width: 60, Height: 500}, frame: ExistingTimber, dims: Dimensions{0, 440}, reason: SkipDeduction},
		{name: "NaN width", opening: Opening{Width: math.NaN(), Height: 500}, frame: ExistingAluminium, reason: SkipMissingWidth},
		{name: "infinite width", opening: Opening{Width: math.Inf(1), Height: 1000}, frame: ExistingAluminium, reason: SkipOutOfRange},
		{name: "infinite height", opening: Opening{Width: 1000, Height: math.Inf(1)}, frame: ExistingTimber, reason: SkipOutOfRange},
		{name: "area overflows", opening: Opening{Width: 1e200, Height: 1e200}, frame: ExistingAluminium, reason: SkipOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dims, reason, ok := Eligible(tt.opening, tt.frame)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.reason, reason)
			assert.Equal(t, tt.dims, dims)
		})
	}
}

func TestDecode_InfinityStringIsIneligible(t *testing.T) {
	p, err := Decode(strings.NewReader(`{"rooms": [{"name": "Hall", "windows": [
		{"style": "F", "width": "Infinity", "height": 1000},
		{"style": "F", "width": 1e200, "height": 1e200}
	]}]}`))
	require.NoError(t, err)
	require.Len(t, p.Rooms[0].Openings, 2)

	for _, o := range p.Rooms[0].Openings {
		_, reason, ok := Eligible(o, p.Frame)
		assert.False(t, ok)
		assert.Equal(t, SkipOutOfRange, reason)
	}
}

func TestGlazingKind_Labels(t *testing.T) {
	assert.Equal(t, "Double Glazed", DoubleGlazed.Label())
	assert.Equal(t, "Unknown", GlazingUnknown.Label())
	assert.Equal(t, Toughened, ParseGlazingKind("toughened"))
	assert.Equal(t, GlazingUnknown, ParseGlazingKind("ACOUSTIC"))
}
