package choropleth

import (
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewScale(t *testing.T) {
	s, err := NewScale(map[string]float64{"CHN": 800, "MYS": 42, "USA": 1000}, "", "")
	require.NoError(t, err)

	lo, hi := s.Domain()
	assert.Equal(t, 42.0, lo)
	assert.Equal(t, 1000.0, hi)

	_, err = NewScale(nil, "not-a-color", "")
	assert.Error(t, err)

	_, err = NewScale(nil, "", "#12")
	assert.Error(t, err)
}

func TestScale_Color(t *testing.T) {
	s, err := NewScale(map[string]float64{"A": 10, "B": 20, "C": 30}, "", "")
	require.NoError(t, err)

	low, _ := colorful.Hex(DefaultLow)
	high, _ := colorful.Hex(DefaultHigh)

	tests := []struct {
		name  string
		value float64
		want  string
	}{
		{"zero", 0, NoData},
		{"negative", -4, NoData},
		{"minimum", 10, DefaultLow},
		{"maximum", 30, DefaultHigh},
		{"below domain", 5, DefaultLow},
		{"above domain", 1e6, DefaultHigh},
		{"midpoint", 20, low.BlendRgb(high, 0.5).Clamped().Hex()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Color(tt.value))
		})
	}
}

func TestScale_DegenerateDomain(t *testing.T) {
	s, err := NewScale(map[string]float64{"CHN": 800}, "#ffffff", "#000000")
	require.NoError(t, err)

	assert.Equal(t, "#000000", s.Color(800))
	assert.Equal(t, NoData, s.Color(0))

	empty, err := NewScale(nil, "", "")
	require.NoError(t, err)
	assert.Equal(t, DefaultHigh, empty.Color(1))
}

func TestScale_Legend(t *testing.T) {
	s, err := NewScale(map[string]float64{"A": 10, "B": 30}, "", "")
	require.NoError(t, err)

	stops := s.Legend(4)
	require.Len(t, stops, 5)

	assert.Equal(t, Stop{Offset: 0, Value: 10, Color: DefaultLow}, stops[0])
	assert.Equal(t, Stop{Offset: 1, Value: 30, Color: DefaultHigh}, stops[4])
	assert.InDelta(t, 15.0, stops[1].Value, 1e-9)
	assert.InDelta(t, 0.25, stops[1].Offset, 1e-9)

	assert.Len(t, s.Legend(0), DefaultLegendSteps+1)
}
