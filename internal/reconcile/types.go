package reconcile

import (
	"fmt"
	"sort"

	"emigrant-atlas/internal/common"
	"emigrant-atlas/internal/diagnostic"
)

// Observation is one raw (label, value) pair from a single year's record.
type Observation struct {
	// Label is the free-text geographic label as it appears in the source.
	Label string
	// Value is the raw value: nil, a number, or a string with thousands separators.
	Value any
}

// Tier identifies which layer of the pipeline resolved an observation.
type Tier int

const (
	// TierExact means the label matched a registry name after alias translation.
	TierExact Tier = iota
	// TierFallback means the fallback table redirected the label to a registry name.
	TierFallback
	// TierFuzzy means the closest registry name was within the distance cut-off.
	TierFuzzy
	// TierMissed means no layer resolved the label.
	TierMissed
)

// String returns a human-readable name for the tier.
func (t Tier) String() string {
	switch t {
	case TierExact:
		return "exact"
	case TierFallback:
		return "fallback"
	case TierFuzzy:
		return "fuzzy"
	case TierMissed:
		return "missed"
	default:
		return common.UnknownStr
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t Tier) MarshalText() ([]byte, error) {
	if t < TierExact || t > TierMissed {
		return nil, fmt.Errorf("invalid tier %d", int(t))
	}

	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Tier) UnmarshalText(text []byte) error {
	for c := TierExact; c <= TierMissed; c++ {
		if c.String() == string(text) {
			*t = c
			return nil
		}
	}

	return fmt.Errorf("unknown tier %q", text)
}

// Outcome explains how a single observation was resolved.
type Outcome struct {
	// Label is the raw label.
	Label string `json:"label"`
	// Normalized is the label after normalization.
	Normalized string `json:"normalized"`
	// Translated is the normalized label after alias translation.
	Translated string `json:"translated"`
	// Value is the parsed value.
	Value float64 `json:"value"`
	// Tier is the layer that resolved the observation.
	Tier Tier `json:"tier"`
	// EntityID is the resolved entity, empty when missed.
	EntityID string `json:"entity_id,omitempty"`
	// Via is the registry name the observation resolved through.
	Via string `json:"via,omitempty"`
	// Fallback is a fallback target that was tried but is not a registry name.
	Fallback string `json:"fallback,omitempty"`
	// Closest is the nearest registry name when fuzzy matching was attempted.
	Closest string `json:"closest,omitempty"`
	// Distance is the edit distance to Closest.
	Distance int `json:"distance,omitempty"`
}

// Stats counts outcomes. Observations with a value of zero or less are not
// counted in any of the four buckets; they appear only in Skipped.
type Stats struct {
	Matched      int `json:"matched"`
	FallbackUsed int `json:"fallback_used"`
	FuzzyMatched int `json:"fuzzy_matched"`
	Missed       int `json:"missed"`
	Skipped      int `json:"skipped"`
}

// Total returns the number of observations with a positive value.
func (s Stats) Total() int {
	return s.Matched + s.FallbackUsed + s.FuzzyMatched + s.Missed
}

// Resolved returns the number of observations that contributed to a value.
func (s Stats) Resolved() int {
	return s.Matched + s.FallbackUsed + s.FuzzyMatched
}

// Result is the outcome of one resolution pass. It is rebuilt from scratch on
// every pass and never updated incrementally.
type Result struct {
	// Values maps entity id to the sum of every observation resolved to it.
	Values map[string]float64 `json:"values"`
	// Stats counts outcomes per tier.
	Stats Stats `json:"stats"`
	// Outcomes lists the decision for every counted observation, in input order.
	Outcomes []Outcome `json:"outcomes"`
	// Diagnostics records unresolved labels and unusable fallbacks.
	Diagnostics diagnostic.Diagnostics `json:"-"`
}

func newResult() *Result {
	return &Result{Values: make(map[string]float64)}
}

// record adds an outcome to the result.
func (r *Result) record(o Outcome) {
	r.Outcomes = append(r.Outcomes, o)

	switch o.Tier {
	case TierExact:
		r.Stats.Matched++
	case TierFallback:
		r.Stats.FallbackUsed++
	case TierFuzzy:
		r.Stats.FuzzyMatched++
	case TierMissed:
		r.Stats.Missed++
		return
	}

	r.Values[o.EntityID] += o.Value
}

// Value returns the accumulated value for an entity, zero when absent.
func (r *Result) Value(id string) float64 {
	return r.Values[id]
}

// Empty reports whether no observation contributed to the result.
func (r *Result) Empty() bool {
	return len(r.Values) == 0
}

// IDs returns the entity ids present in the result, sorted.
func (r *Result) IDs() []string {
	ids := make([]string, 0, len(r.Values))
	for id := range r.Values {
		ids = append(ids, id)
	}

	sort.Strings(ids)

	return ids
}

// Misses returns the outcomes that no layer resolved.
func (r *Result) Misses() []Outcome {
	return r.byTier(TierMissed)
}

// Redirects returns the outcomes resolved by fallback or fuzzy matching,
// the ones an operator should audit.
func (r *Result) Redirects() []Outcome {
	return append(r.byTier(TierFallback), r.byTier(TierFuzzy)...)
}

func (r *Result) byTier(t Tier) []Outcome {
	var out []Outcome

	for _, o := range r.Outcomes {
		if o.Tier == t {
			out = append(out, o)
		}
	}

	return out
}
