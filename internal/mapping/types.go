package mapping

import (
	"sort"

	"emigrant-atlas/internal/match"
)

// Tables is the YAML representation of the curated label tables.
type Tables struct {
	// Version of the tables schema.
	Version string `yaml:"version"`
	// Description documents which naming policy the tables encode.
	Description string `yaml:"description,omitempty"`
	// MaxFuzzyDistance is the largest accepted edit distance for a fuzzy match.
	MaxFuzzyDistance *int `yaml:"max_fuzzy_distance,omitempty"`
	// Aliases map a raw label to the canonical name it should be matched as.
	Aliases map[string]string `yaml:"aliases,omitempty"`
	// Fallbacks map a raw label to a substitute canonical name used when nothing matches.
	Fallbacks map[string]string `yaml:"fallbacks,omitempty"`
}

// Distance returns the configured fuzzy cut-off, or the default when unset.
func (t *Tables) Distance() int {
	if t == nil || t.MaxFuzzyDistance == nil {
		return match.DefaultMaxDistance
	}

	return *t.MaxFuzzyDistance
}

// Compiled holds the lookup-ready form of Tables. It is read-only and safe to
// share between concurrent resolution passes.
type Compiled struct {
	aliases       map[string]string
	fallbacks     map[string]string
	fallbacksNorm map[string]string
	maxDistance   int
}

// Compile normalizes alias keys and targets and indexes fallbacks both
// verbatim and by normalized key. When several keys normalize to the same
// form, the lexically first original key wins.
func (t *Tables) Compile() *Compiled {
	c := &Compiled{
		aliases:       make(map[string]string),
		fallbacks:     make(map[string]string),
		fallbacksNorm: make(map[string]string),
		maxDistance:   t.Distance(),
	}

	if t == nil {
		return c
	}

	for _, k := range sortedKeys(t.Aliases) {
		key := match.Normalize(k)
		target := match.Normalize(t.Aliases[k])

		if key == "" || target == "" {
			continue
		}

		if _, dup := c.aliases[key]; !dup {
			c.aliases[key] = target
		}
	}

	for _, k := range sortedKeys(t.Fallbacks) {
		target := t.Fallbacks[k]
		if k == "" || match.Normalize(target) == "" {
			continue
		}

		c.fallbacks[k] = target

		if key := match.Normalize(k); key != "" {
			if _, dup := c.fallbacksNorm[key]; !dup {
				c.fallbacksNorm[key] = target
			}
		}
	}

	return c
}

// Alias returns the normalized alias target for a normalized label.
func (c *Compiled) Alias(normalized string) (string, bool) {
	if c == nil {
		return "", false
	}

	target, ok := c.aliases[normalized]

	return target, ok
}

// Fallback returns the substitute name for the first key that has one.
// Each key is tried verbatim and then by its normalized form before moving on.
func (c *Compiled) Fallback(keys ...string) (target, key string, ok bool) {
	if c == nil {
		return "", "", false
	}

	for _, k := range keys {
		if t, found := c.fallbacks[k]; found {
			return t, k, true
		}

		if t, found := c.fallbacksNorm[match.Normalize(k)]; found {
			return t, k, true
		}
	}

	return "", "", false
}

// MaxDistance returns the fuzzy-distance cut-off.
func (c *Compiled) MaxDistance() int {
	if c == nil {
		return match.DefaultMaxDistance
	}

	return c.maxDistance
}

// AliasTargets returns every distinct normalized alias target, sorted.
func (c *Compiled) AliasTargets() []string {
	return distinctValues(c.aliases, match.Normalize)
}

// FallbackTargets returns every distinct normalized fallback target, sorted.
func (c *Compiled) FallbackTargets() []string {
	return distinctValues(c.fallbacks, match.Normalize)
}

// Len returns the number of compiled alias and fallback entries.
func (c *Compiled) Len() (aliases, fallbacks int) {
	return len(c.aliases), len(c.fallbacks)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

func distinctValues(m map[string]string, norm func(string) string) []string {
	seen := make(map[string]struct{}, len(m))
	out := make([]string, 0, len(m))

	for _, v := range m {
		n := norm(v)
		if _, ok := seen[n]; ok {
			continue
		}

		seen[n] = struct{}{}
		out = append(out, n)
	}

	sort.Strings(out)

	return out
}
