package reconcile

import (
	"encoding/json"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/spf13/cast"
)

// YearKey is the record field carrying the year; it is never a label.
const YearKey = "year"

// numericPrefix matches the longest leading decimal number of a string.
var numericPrefix = regexp.MustCompile(`^[+-]?(?:\d+(?:\.\d*)?|\.\d+)(?:[eE][+-]?\d+)?`)

// ParseValue converts a raw value into a number. Missing, blank and
// unparsable values parse as 0, as do booleans, NaN and infinities.
// Strings may carry thousands separators ("1,234") and trailing text after
// the number ("300*", "12.5kg"); only the leading number counts.
func ParseValue(v any) float64 {
	var (
		f   float64
		err error
	)

	switch v := v.(type) {
	case nil, bool:
		return 0
	case string:
		f, err = parseNumeric(v)
	case json.Number:
		f, err = parseNumeric(string(v))
	default:
		f, err = cast.ToFloat64E(v)
	}

	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}

	return f
}

func parseNumeric(s string) (float64, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))

	prefix := numericPrefix.FindString(s)
	if prefix == "" {
		return 0, nil
	}

	return cast.ToFloat64E(prefix)
}

// ObservationsFromMap converts a year record into observations. The year
// field is dropped and labels are ordered lexically so a record read from an
// unordered document always resolves the same way.
func ObservationsFromMap(record map[string]any) []Observation {
	labels := make([]string, 0, len(record))

	for label := range record {
		if strings.EqualFold(strings.TrimSpace(label), YearKey) {
			continue
		}

		labels = append(labels, label)
	}

	sort.Strings(labels)

	obs := make([]Observation, 0, len(labels))
	for _, label := range labels {
		obs = append(obs, Observation{Label: label, Value: record[label]})
	}

	return obs
}
