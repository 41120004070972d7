package project

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Request is the JSON shape accepted at the request boundary.
type Request struct {
	ExistingFrame     string        `json:"existingFrame"`
	GlazingType       string        `json:"glazingType"`
	InstallationCosts string        `json:"installationCosts"`
	Rooms             []RoomRequest `json:"rooms"`
}

type RoomRequest struct {
	Name    string          `json:"name"`
	Windows []WindowRequest `json:"windows"`
}

type WindowRequest struct {
	Style  string      `json:"style"`
	Width  Millimetres `json:"width"`
	Height Millimetres `json:"height"`
}

// Millimetres decodes a JSON number or a numeric string. Any other value
// decodes to 0, which makes the opening ineligible instead of failing the request.
type Millimetres float64

func (m *Millimetres) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*m = 0
			return nil
		}
		data = []byte(strings.TrimSpace(s))
	}
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		*m = 0
		return nil
	}
	*m = Millimetres(v)
	return nil
}

// Decode reads a project from its wire form. Only malformed JSON is an error.
func Decode(r io.Reader) (Project, error) {
	var req Request
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return Project{}, fmt.Errorf("decode project: %w", err)
	}
	return FromRequest(req), nil
}

// FromRequest maps the wire form onto the domain model.
func FromRequest(req Request) Project {
	p := Project{
		Frame:                 ExistingAluminium,
		Glazing:               ParseGlazingKind(req.GlazingType),
		InstallationRequested: req.InstallationCosts == "yes",
	}
	if req.ExistingFrame == "timber" {
		p.Frame = ExistingTimber
	}
	if p.Glazing == GlazingUnknown {
		p.glazingRaw = req.GlazingType
	}

	for _, rr := range req.Rooms {
		room := Room{Name: rr.Name, Openings: make([]Opening, 0, len(rr.Windows))}
		for _, w := range rr.Windows {
			room.Openings = append(room.Openings, Opening{
				Width:     float64(w.Width),
				Height:    float64(w.Height),
				StyleCode: w.Style,
			})
		}
		p.Rooms = append(p.Rooms, room)
	}
	return p
}

// ToRequest maps a project back to its wire form.
func ToRequest(p Project) Request {
	req := Request{
		ExistingFrame:     "aluminium",
		GlazingType:       p.Glazing.String(),
		InstallationCosts: "no",
		Rooms:             make([]RoomRequest, 0, len(p.Rooms)),
	}
	if p.Frame == ExistingTimber {
		req.ExistingFrame = "timber"
	}
	if p.Glazing == GlazingUnknown {
		req.GlazingType = p.glazingRaw
	}
	if p.InstallationRequested {
		req.InstallationCosts = "yes"
	}
	for _, room := range p.Rooms {
		rr := RoomRequest{Name: room.Name, Windows: make([]WindowRequest, 0, len(room.Openings))}
		for _, o := range room.Openings {
			rr.Windows = append(rr.Windows, WindowRequest{
				Style:  o.StyleCode,
				Width:  Millimetres(o.Width),
				Height: Millimetres(o.Height),
			})
		}
		req.Rooms = append(req.Rooms, rr)
	}
	return req
}

// Encode writes a project in its wire form.
func Encode(w io.Writer, p Project) error {
	if err := json.NewEncoder(w).Encode(ToRequest(p)); err != nil {
		return fmt.Errorf("encode project: %w", err)
	}
	return nil
}
