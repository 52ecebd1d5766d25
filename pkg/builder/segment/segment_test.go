package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEffectiveOrder(t *testing.T) {
	tests := []struct {
		name      string
		structure string
		order     []ID
		want      []ID
	}{
		{
			name:      "RTF keeps user order",
			structure: "RTF",
			order:     []ID{OutputFormat, Role, Goal, Context},
			want:      []ID{OutputFormat, Role, Goal},
		},
		{
			name:      "TAO on default order",
			structure: "TAO",
			order:     DefaultOrder,
			want:      []ID{Goal, Constraints, OutputFormat},
		},
		{
			name:      "unknown structure falls back to all segments",
			structure: "NOPE",
			order:     []ID{Examples, Role},
			want:      []ID{Examples, Role},
		},
		{
			name:      "segments missing from the user order are not added",
			structure: "CARE",
			order:     []ID{Goal},
			want:      []ID{Goal},
		},
		{
			name:      "empty order",
			structure: "STAR",
			order:     nil,
			want:      []ID{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EffectiveOrder(tt.structure, tt.order))
		})
	}
}

func TestSegmentsPerStructure(t *testing.T) {
	assert.Equal(t, []ID{Context, Goal, Constraints, Inputs, OutputFormat, Role}, Segments("CO-STAR"))
	assert.Equal(t, []ID{Role, Context, Goal, Constraints, Examples}, Segments("CRISPE"))
	assert.Equal(t, DefaultOrder, Segments(""))
}

func TestSegmentsReturnsCopy(t *testing.T) {
	s := Segments("RTF")
	s[0] = Examples
	assert.Equal(t, Role, Segments("RTF")[0])
}

func TestDisplayLabel(t *testing.T) {
	assert.Equal(t, "CASE", DisplayLabel("CARE"))
	assert.Equal(t, "RTF", DisplayLabel("RTF"))
}

func TestIsKnown(t *testing.T) {
	assert.True(t, IsKnown(OutputFormat))
	assert.False(t, IsKnown("tone"))
	assert.Equal(t, 4, Index(Constraints))
	assert.Equal(t, -1, Index("tone"))
}
