package style

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(p ParsedStyle) [][]PaneKind {
	var out [][]PaneKind
	for _, row := range p.Rows() {
		var ks []PaneKind
		for _, pane := range row {
			ks = append(ks, pane.Kind)
		}
		out = append(out, ks)
	}
	return out
}

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		code string
		want [][]PaneKind
	}{
		{name: "single awning", code: "A", want: [][]PaneKind{{Awning}}},
		{name: "two rows", code: "A-F/S", want: [][]PaneKind{{Awning, Fixed}, {Sliding}}},
		{name: "doubled separator", code: "x/-", want: [][]PaneKind{{Unknown}, {Unknown, Unknown}}},
		{name: "empty code", code: "", want: [][]PaneKind{{Unknown}}},
		{name: "lowercase is unknown", code: "a-f", want: [][]PaneKind{{Unknown, Unknown}}},
		{name: "multi letter token", code: "AF", want: [][]PaneKind{{Unknown}}},
		{name: "three rows", code: "F/S-S-S/A-A", want: [][]PaneKind{{Fixed}, {Sliding, Sliding, Sliding}, {Awning, Awning}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.code)
			assert.Equal(t, tt.want, kinds(got))
			assert.Equal(t, len(tt.want), got.NumRows())
			for i, row := range tt.want {
				assert.Equal(t, len(row), got.PaneCount(i))
			}
		})
	}
}

func TestParse_IsDeterministic(t *testing.T) {
	assert.Equal(t, Parse("A-F/S-x"), Parse("A-F/S-x"))
}

func TestParse_RowsReturnsCopy(t *testing.T) {
	p := Parse("A-F")
	rows := p.Rows()
	rows[0][0].Kind = Sliding
	rows[0] = append(rows[0], Pane{Kind: Fixed})

	assert.Equal(t, Awning, p.Rows()[0][0].Kind)
	assert.Equal(t, 2, p.PaneCount(0))
}

func TestParsedStyle_ZeroValue(t *testing.T) {
	var p ParsedStyle
	assert.Equal(t, 1, p.NumRows())
	assert.Equal(t, 1, p.PaneCount(0))
	assert.Equal(t, [][]PaneKind{{Unknown}}, kinds(p))
}

func TestPaneKind_Labels(t *testing.T) {
	assert.Equal(t, "Awning", Awning.Label())
	assert.Equal(t, "Unknown", Unknown.Label())
	assert.Equal(t, "sliding", Sliding.String())
	assert.Equal(t, "unknown", PaneKind(42).String())
}

func TestStrict(t *testing.T) {
	parsed, err := Strict("A-F/S")
	require.NoError(t, err)
	assert.Equal(t, 2, parsed.NumRows())

	parsed, err = Strict("A-q/-")
	var unknownErr *UnknownPanesError
	require.True(t, errors.As(err, &unknownErr))
	assert.Equal(t, []Position{{1, 2}, {2, 1}, {2, 2}}, unknownErr.Positions)
	assert.Contains(t, err.Error(), "1-2, 2-1, 2-2")
	assert.Equal(t, 3, parsed.Panes())
}
