package choropleth

import "sort"

// DefaultTopN is the length of the ranking shown next to a map.
const DefaultTopN = 5

// NameSource resolves an entity id to its display name.
type NameSource interface {
	DisplayName(id string) (string, bool)
}

// Ranked is one entry of a top-N ranking.
type Ranked struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// TopN returns the n largest values in descending order, ties broken by id.
// Names come from names when it knows the id; otherwise the id is used.
// A non-positive n returns every entry.
func TopN(values map[string]float64, names NameSource, n int) []Ranked {
	out := make([]Ranked, 0, len(values))

	for id, v := range values {
		name := id
		if names != nil {
			if display, ok := names.DisplayName(id); ok && display != "" {
				name = display
			}
		}

		out = append(out, Ranked{ID: id, Name: name, Value: v})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}

		return out[i].ID < out[j].ID
	})

	if n > 0 && len(out) > n {
		out = out[:n]
	}

	return out
}
