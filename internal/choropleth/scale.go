package choropleth

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	// DefaultLow is the color of the smallest value.
	DefaultLow = "#adccfa"
	// DefaultHigh is the color of the largest value.
	DefaultHigh = "#08306b"
	// NoData fills entities with no positive value.
	NoData = "#e0e0e0"
	// DefaultLegendSteps is the number of gradient intervals in a legend.
	DefaultLegendSteps = 50
)

// Scale is a sequential color scale over the extent of a value map.
type Scale struct {
	min, max  float64
	low, high colorful.Color
}

// Stop is one color stop of a gradient legend.
type Stop struct {
	// Offset is the position along the legend, from 0 to 1.
	Offset float64 `json:"offset"`
	Value  float64 `json:"value"`
	Color  string  `json:"color"`
}

// NewScale builds a scale spanning the smallest and largest of values,
// interpolating in RGB between low and high. Empty colors take the defaults.
func NewScale(values map[string]float64, low, high string) (*Scale, error) {
	if low == "" {
		low = DefaultLow
	}

	if high == "" {
		high = DefaultHigh
	}

	lo, err := colorful.Hex(low)
	if err != nil {
		return nil, fmt.Errorf("invalid low color %q: %w", low, err)
	}

	hi, err := colorful.Hex(high)
	if err != nil {
		return nil, fmt.Errorf("invalid high color %q: %w", high, err)
	}

	s := &Scale{low: lo, high: hi}

	first := true
	for _, v := range values {
		if first {
			s.min, s.max = v, v
			first = false

			continue
		}

		s.min = math.Min(s.min, v)
		s.max = math.Max(s.max, v)
	}

	return s, nil
}

// Domain returns the smallest and largest value of the scale.
func (s *Scale) Domain() (lo, hi float64) {
	return s.min, s.max
}

// Color returns the fill for a value. Values of zero or less get NoData;
// others are clamped to the domain. A single-valued domain maps to high.
func (s *Scale) Color(v float64) string {
	if v <= 0 || math.IsNaN(v) {
		return NoData
	}

	return s.at(s.position(v)).Hex()
}

func (s *Scale) position(v float64) float64 {
	if s.max <= s.min {
		return 1
	}

	t := (v - s.min) / (s.max - s.min)

	return math.Max(0, math.Min(1, t))
}

func (s *Scale) at(t float64) colorful.Color {
	return s.low.BlendRgb(s.high, t).Clamped()
}

// Legend returns steps+1 evenly spaced stops from the low to the high end.
func (s *Scale) Legend(steps int) []Stop {
	if steps <= 0 {
		steps = DefaultLegendSteps
	}

	stops := make([]Stop, 0, steps+1)

	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		stops = append(stops, Stop{
			Offset: t,
			Value:  s.min + t*(s.max-s.min),
			Color:  s.at(t).Hex(),
		})
	}

	return stops
}
