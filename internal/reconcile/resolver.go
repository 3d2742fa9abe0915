package reconcile

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"emigrant-atlas/internal/diagnostic"
	"emigrant-atlas/internal/geo"
	"emigrant-atlas/internal/mapping"
	"emigrant-atlas/internal/match"
)

// ErrReferenceDataUnavailable is returned when there is no registry to resolve against.
var ErrReferenceDataUnavailable = geo.ErrReferenceDataUnavailable

// maxSuggestions bounds the names offered for an unresolved label.
const maxSuggestions = 3

// Resolver runs resolution passes against one registry and one set of tables.
// Both are read-only, so a Resolver may serve concurrent passes.
type Resolver struct {
	registry    *geo.Registry
	tables      *mapping.Compiled
	names       []string
	maxDistance int
	logger      *zap.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithMaxDistance overrides the fuzzy-distance cut-off from the tables.
func WithMaxDistance(d int) Option {
	return func(r *Resolver) {
		r.maxDistance = d
	}
}

// WithLogger sets the logger used for per-label decisions and pass summaries.
func WithLogger(l *zap.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// New creates a Resolver. A nil tables value means no aliases or fallbacks.
func New(registry *geo.Registry, tables *mapping.Compiled, opts ...Option) (*Resolver, error) {
	if registry == nil || registry.Len() == 0 {
		return nil, fmt.Errorf("cannot build resolver: %w", ErrReferenceDataUnavailable)
	}

	if tables == nil {
		tables = (&mapping.Tables{}).Compile()
	}

	r := &Resolver{
		registry:    registry,
		tables:      tables,
		names:       registry.Names(),
		maxDistance: tables.MaxDistance(),
		logger:      zap.NewNop(),
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.maxDistance < 0 {
		return nil, errors.New("max fuzzy distance must not be negative")
	}

	return r, nil
}

// MaxDistance returns the fuzzy-distance cut-off in effect.
func (r *Resolver) MaxDistance() int {
	return r.maxDistance
}

// Registry returns the registry the resolver matches against.
func (r *Resolver) Registry() *geo.Registry {
	return r.registry
}

// Resolve runs a full pass over the observations and returns a fresh result.
// An empty input yields an empty result, not an error.
func (r *Resolver) Resolve(obs []Observation) *Result {
	return r.resolve(obs, r.logger)
}

func (r *Resolver) resolve(obs []Observation, log *zap.Logger) *Result {
	res := newResult()

	for _, o := range obs {
		value := ParseValue(o.Value)
		if value <= 0 {
			res.Stats.Skipped++
			continue
		}

		out := r.resolveOne(o.Label, value)
		r.report(res, out, log)
		res.record(out)
	}

	log.Info("resolution complete",
		zap.Int("matched", res.Stats.Matched),
		zap.Int("fallback_used", res.Stats.FallbackUsed),
		zap.Int("fuzzy_matched", res.Stats.FuzzyMatched),
		zap.Int("missed", res.Stats.Missed),
		zap.Int("skipped", res.Stats.Skipped),
		zap.Int("entities", len(res.Values)),
	)

	return res
}

// resolveOne walks the layers for a single label.
func (r *Resolver) resolveOne(label string, value float64) Outcome {
	normalized := match.Normalize(label)

	out := Outcome{
		Label:      label,
		Normalized: normalized,
		Translated: normalized,
		Value:      value,
		Tier:       TierMissed,
	}

	if normalized == "" {
		return out
	}

	if target, ok := r.tables.Alias(normalized); ok {
		out.Translated = target
	}

	// The alias target is tried first; a label already known verbatim still
	// matches exactly when its alias points somewhere the registry lacks.
	for _, name := range uniq(out.Translated, normalized) {
		if id, ok := r.registry.Lookup(name); ok {
			out.Tier, out.EntityID, out.Via = TierExact, id, name
			return out
		}
	}

	if target, _, ok := r.tables.Fallback(label, normalized, out.Translated); ok {
		name := match.Normalize(target)
		if id, found := r.registry.Lookup(name); found {
			out.Tier, out.EntityID, out.Via = TierFallback, id, name
			return out
		}

		out.Fallback = name
	}

	if best, ok := match.Closest(out.Translated, r.names); ok {
		out.Closest, out.Distance = best.Name, best.Distance

		if best.Distance <= r.maxDistance {
			id, _ := r.registry.Lookup(best.Name)
			out.Tier, out.EntityID, out.Via = TierFuzzy, id, best.Name

			return out
		}
	}

	return out
}

// report logs a decision and records diagnostics for the ones needing audit.
func (r *Resolver) report(res *Result, o Outcome, log *zap.Logger) {
	fields := []zap.Field{
		zap.String("label", o.Label),
		zap.String("normalized", o.Translated),
		zap.String("tier", o.Tier.String()),
	}

	if o.Fallback != "" {
		res.Diagnostics.AddWarning(diagnostic.CodeFallbackUnresolved,
			fmt.Sprintf("fallback target %q does not name a reference entity", o.Fallback), o.Label, o.Fallback)
	}

	switch o.Tier {
	case TierExact:
		log.Debug("label matched", append(fields, zap.String("entity", o.EntityID))...)
	case TierFallback:
		log.Info("label redirected", append(fields, zap.String("entity", o.EntityID), zap.String("via", o.Via))...)
	case TierFuzzy:
		log.Info("label auto-redirected",
			append(fields, zap.String("entity", o.EntityID), zap.String("via", o.Via), zap.Int("distance", o.Distance))...)
	case TierMissed:
		msg := "no match for label"
		var suggestions []string

		if o.Closest != "" {
			msg = fmt.Sprintf("no match within distance %d; closest %q at %d", r.maxDistance, o.Closest, o.Distance)

			for _, c := range match.RankCandidates(o.Translated, r.names).Top(maxSuggestions) {
				suggestions = append(suggestions, c.Name)
			}
		}

		res.Diagnostics.AddWarning(diagnostic.CodeUnresolvedLabel, msg, o.Label, o.Translated, suggestions...)
		log.Warn("no match for label",
			append(fields, zap.String("closest", o.Closest), zap.Int("distance", o.Distance))...)
	}
}

// uniq returns the non-empty names in order without repeats.
func uniq(names ...string) []string {
	out := make([]string, 0, len(names))

	for _, n := range names {
		dup := false

		for _, seen := range out {
			if seen == n {
				dup = true
				break
			}
		}

		if !dup && n != "" {
			out = append(out, n)
		}
	}

	return out
}
