package match

import "sort"

// Candidate is a known name considered for a fuzzy match.
type Candidate struct {
	// Name is the normalized known name.
	Name string
	// Index is the position of Name in the searched list (insertion order).
	Index int
	// Distance is the Levenshtein distance from the searched label.
	Distance int
}

// CandidateList is a list of candidates with ranking functionality.
type CandidateList []Candidate

// RankCandidates computes the distance from label to every name and returns
// the candidates sorted by distance ascending, ties by original position.
func RankCandidates(label string, names []string) CandidateList {
	candidates := make(CandidateList, 0, len(names))

	for i, name := range names {
		candidates = append(candidates, Candidate{
			Name:     name,
			Index:    i,
			Distance: Levenshtein(label, name),
		})
	}

	sort.Sort(candidates)

	return candidates
}

// Closest returns the name nearest to label. Ties are broken by the earliest
// position in names. The second result is false when names is empty.
func Closest(label string, names []string) (Candidate, bool) {
	best := Candidate{Index: -1}

	for i, name := range names {
		d := Levenshtein(label, name)
		if best.Index < 0 || d < best.Distance {
			best = Candidate{Name: name, Index: i, Distance: d}
		}

		if d == 0 {
			break
		}
	}

	return best, best.Index >= 0
}

// Len implements sort.Interface.
func (c CandidateList) Len() int { return len(c) }

// Swap implements sort.Interface.
func (c CandidateList) Swap(i, j int) { c[i], c[j] = c[j], c[i] }

// Less implements sort.Interface.
// Sorts by distance ascending, then by insertion position for determinism.
func (c CandidateList) Less(i, j int) bool {
	if c[i].Distance != c[j].Distance {
		return c[i].Distance < c[j].Distance
	}

	return c[i].Index < c[j].Index
}

// Top returns the top n candidates.
func (c CandidateList) Top(n int) CandidateList {
	if n >= len(c) {
		return c
	}

	return c[:n]
}

// Best returns the best candidate, or nil if no candidates.
func (c CandidateList) Best() *Candidate {
	if len(c) == 0 {
		return nil
	}

	return &c[0]
}

// Within returns the candidates whose distance does not exceed maxDistance.
func (c CandidateList) Within(maxDistance int) CandidateList {
	var result CandidateList

	for _, cand := range c {
		if cand.Distance <= maxDistance {
			result = append(result, cand)
		}
	}

	return result
}

// IsAmbiguous returns true if the top two candidates share the best distance.
func (c CandidateList) IsAmbiguous() bool {
	if len(c) < 2 {
		return false
	}

	return c[0].Distance == c[1].Distance
}

// DefaultMaxDistance is the largest edit distance accepted for a fuzzy match.
const DefaultMaxDistance = 10
