package reconcile

import (
	"fmt"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/require"

	"emigrant-atlas/internal/geo"
	"emigrant-atlas/internal/mapping"
)

// entity describes a registry entry for tests: an id followed by its names.
type entity []string

// testRegistry builds a registry with one drawable feature per entity, in order.
func testRegistry(t *testing.T, entities ...entity) *geo.Registry {
	t.Helper()

	fc := geojson.NewFeatureCollection()
	keys := geo.Keys{ID: []string{"code"}}

	for _, e := range entities {
		f := geojson.NewFeature(orb.Point{0, 0})
		f.Properties["code"] = e[0]

		for i, name := range e[1:] {
			key := fmt.Sprintf("name%d", i)
			f.Properties[key] = name

			if !contains(keys.Names, key) {
				keys.Names = append(keys.Names, key)
			}
		}

		fc.Append(f)
	}

	reg, err := geo.BuildRegistry(fc, keys)
	require.NoError(t, err)

	return reg
}

func testTables(t *testing.T, yaml string) *mapping.Compiled {
	t.Helper()

	tables, err := mapping.Parse([]byte(yaml))
	require.NoError(t, err)

	return tables.Compile()
}

func testResolver(t *testing.T, reg *geo.Registry, tables *mapping.Compiled, opts ...Option) *Resolver {
	t.Helper()

	r, err := New(reg, tables, opts...)
	require.NoError(t, err)

	return r
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}

	return false
}
