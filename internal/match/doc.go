// Package match provides label normalization, Levenshtein distance calculation,
// and closest-name selection for reconciling free-text geographic labels.
//
// Key functions:
//   - Normalize: canonical comparison form for labels and gazetteer names
//   - Levenshtein: computes edit distance between strings
//   - Closest: picks the nearest known name with a deterministic tie-break
package match
