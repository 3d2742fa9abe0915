package geo

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/paulmach/orb/geojson"

	"emigrant-atlas/internal/common"
	"emigrant-atlas/internal/diagnostic"
	"emigrant-atlas/internal/match"
)

// Keys lists the feature property keys consulted when building a registry.
// Each list is a priority order: the first present, non-blank property wins.
type Keys struct {
	// ID holds the candidate identifier properties (e.g. ISO codes).
	ID []string
	// Names holds every property carrying a textual name for the entity.
	Names []string
	// Display holds the properties used for the human-readable name.
	Display []string
}

// DefaultKeys returns the property keys used by common world-countries datasets.
func DefaultKeys() Keys {
	return Keys{
		ID:      []string{"ISO_A3", "iso_a3", "ISO3", "iso3", "ADM0_A3", "id"},
		Names:   []string{"ADMIN", "admin", "NAME", "name", "Country"},
		Display: []string{"ADMIN", "NAME", "name", "Country", "admin"},
	}
}

// withDefaults fills empty key lists from DefaultKeys.
func (k Keys) withDefaults() Keys {
	d := DefaultKeys()

	if len(k.ID) == 0 {
		k.ID = d.ID
	}

	if len(k.Names) == 0 {
		k.Names = d.Names
	}

	if len(k.Display) == 0 {
		k.Display = d.Display
	}

	return k
}

// Entity is a canonical geographic entity known to the reference geometry.
type Entity struct {
	// ID is the stable identifier, e.g. an ISO 3166 alpha-3 code.
	ID string `json:"id"`
	// DisplayName is the name shown to users.
	DisplayName string `json:"display_name"`
	// Names are the normalized names that resolve to this entity, in insertion order.
	Names []string `json:"names"`
}

// Registry indexes canonical entities by normalized name.
// It is immutable after BuildRegistry and safe for concurrent use.
type Registry struct {
	entities []*Entity
	byID     map[string]*Entity
	index    map[string]string
	names    []string
	diags    diagnostic.Diagnostics
}

// BuildRegistry builds a registry from a FeatureCollection. Features without
// drawable geometry or without an identifier are left out.
func BuildRegistry(fc *geojson.FeatureCollection, keys Keys) (*Registry, error) {
	if fc == nil || len(fc.Features) == 0 {
		return nil, fmt.Errorf("no features: %w", ErrReferenceDataUnavailable)
	}

	keys = keys.withDefaults()

	r := &Registry{
		byID:  make(map[string]*Entity),
		index: make(map[string]string),
	}

	for i, f := range fc.Features {
		where := fmt.Sprintf("feature %d", i)

		if f == nil || !HasGeometry(f.Geometry) {
			r.diags.AddInfo(diagnostic.CodeMissingGeometry, "feature has no drawable geometry", where, "")
			continue
		}

		id, ok := featureID(f, keys.ID)
		if !ok {
			r.diags.AddWarning(diagnostic.CodeMissingID, "feature has no identifier", where, "")
			continue
		}

		r.add(f, id, keys)
	}

	if len(r.entities) == 0 {
		return nil, fmt.Errorf("no feature with geometry and identifier among %d: %w",
			len(fc.Features), ErrReferenceDataUnavailable)
	}

	return r, nil
}

// add registers a feature under id, merging names into an existing entity.
func (r *Registry) add(f *geojson.Feature, id string, keys Keys) {
	e, exists := r.byID[id]
	if !exists {
		display, _, ok := common.FirstNonEmpty(keys.Display, propertyLookup(f))
		if !ok {
			display = id
		}

		e = &Entity{ID: id, DisplayName: strings.TrimSpace(display)}
		r.byID[id] = e
		r.entities = append(r.entities, e)
	}

	for _, key := range keys.Names {
		raw, ok := propertyString(f.Properties, key)
		if !ok {
			continue
		}

		name := match.Normalize(raw)
		if name == "" {
			continue
		}

		owner, claimed := r.index[name]
		switch {
		case !claimed:
			r.index[name] = id
			r.names = append(r.names, name)
			e.Names = append(e.Names, name)
		case owner != id:
			r.diags.AddWarning(diagnostic.CodeSharedName,
				fmt.Sprintf("name already belongs to %s", owner), name, id)
		}
	}
}

// Lookup returns the entity id for a normalized name.
func (r *Registry) Lookup(name string) (string, bool) {
	id, ok := r.index[name]
	return id, ok
}

// Entity returns the entity with the given id.
func (r *Registry) Entity(id string) (Entity, bool) {
	e, ok := r.byID[id]
	if !ok {
		return Entity{}, false
	}

	return e.clone(), true
}

// DisplayName returns the display name of the entity with the given id.
func (r *Registry) DisplayName(id string) (string, bool) {
	e, ok := r.byID[id]
	if !ok {
		return "", false
	}

	return e.DisplayName, true
}

// Entities returns all entities in the order they were first seen.
func (r *Registry) Entities() []Entity {
	out := make([]Entity, 0, len(r.entities))
	for _, e := range r.entities {
		out = append(out, e.clone())
	}

	return out
}

// Names returns every indexed name in insertion order.
// Fuzzy matching breaks distance ties by this order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.names...)
}

// Len returns the number of entities.
func (r *Registry) Len() int {
	return len(r.entities)
}

// Diagnostics returns what was skipped or conflicted while building.
func (r *Registry) Diagnostics() diagnostic.Diagnostics {
	return r.diags
}

func (e *Entity) clone() Entity {
	c := *e
	c.Names = append([]string(nil), e.Names...)

	return c
}

// featureID picks the identifier property, falling back to the feature's own id.
func featureID(f *geojson.Feature, keys []string) (string, bool) {
	if v, _, ok := common.FirstNonEmpty(keys, propertyLookup(f)); ok {
		return strings.TrimSpace(v), true
	}

	if f.ID != nil {
		if s := strings.TrimSpace(stringify(f.ID)); s != "" {
			return s, true
		}
	}

	return "", false
}

func propertyLookup(f *geojson.Feature) func(string) (string, bool) {
	return func(key string) (string, bool) {
		return propertyString(f.Properties, key)
	}
}

func propertyString(props geojson.Properties, key string) (string, bool) {
	v, ok := props[key]
	if !ok || v == nil {
		return "", false
	}

	return stringify(v), true
}

func stringify(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
