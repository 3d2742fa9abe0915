package geo

import (
	"errors"
	"fmt"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// ErrReferenceDataUnavailable is returned when the reference geometry is
// missing or has nothing usable in it. No map can be drawn for the session.
var ErrReferenceDataUnavailable = errors.New("reference geometry unavailable")

// LoadFile loads and parses a GeoJSON FeatureCollection from the given path.
func LoadFile(path string) (*geojson.FeatureCollection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read reference geometry %s: %w: %w", path, ErrReferenceDataUnavailable, err)
	}

	return Parse(data)
}

// Parse parses GeoJSON data into a FeatureCollection.
func Parse(data []byte) (*geojson.FeatureCollection, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty geojson document: %w", ErrReferenceDataUnavailable)
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse geojson: %w", err)
	}

	return fc, nil
}

// HasGeometry reports whether a geometry has at least one coordinate to draw.
func HasGeometry(g orb.Geometry) bool {
	switch g := g.(type) {
	case nil:
		return false
	case orb.Point, orb.Bound:
		return true
	case orb.MultiPoint:
		return len(g) > 0
	case orb.LineString:
		return len(g) > 0
	case orb.MultiLineString:
		return len(g) > 0
	case orb.Ring:
		return len(g) > 0
	case orb.Polygon:
		return len(g) > 0
	case orb.MultiPolygon:
		return len(g) > 0
	case orb.Collection:
		for _, child := range g {
			if HasGeometry(child) {
				return true
			}
		}

		return false
	default:
		return false
	}
}
