package common

import "strings"

// UnknownStr is the display value for enum values outside their defined range.
const UnknownStr = "unknown"

// FirstNonEmpty returns the first key whose lookup yields a non-blank string,
// together with that key. Lookups are tried in the order the keys are given.
func FirstNonEmpty(keys []string, lookup func(key string) (string, bool)) (value, key string, ok bool) {
	for _, k := range keys {
		if v, found := lookup(k); found && strings.TrimSpace(v) != "" {
			return v, k, true
		}
	}

	return "", "", false
}
