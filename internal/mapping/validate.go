package mapping

import (
	"fmt"

	"emigrant-atlas/internal/diagnostic"
	"emigrant-atlas/internal/match"
)

// NameIndex resolves a normalized canonical name to an entity id.
type NameIndex interface {
	Lookup(name string) (string, bool)
}

// Validate validates tables structurally. It does not need the reference
// geometry; see CheckTargets for that.
func Validate(t *Tables) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if t == nil {
		res.AddError("tables_is_nil", "tables are nil", "", "")
		return res
	}

	if t.Distance() < 0 {
		res.AddError(diagnostic.CodeInvalidDistance,
			fmt.Sprintf("max_fuzzy_distance must not be negative, got %d", t.Distance()), "max_fuzzy_distance", "")
	}

	validateEntries(res, "aliases", t.Aliases)
	validateEntries(res, "fallbacks", t.Fallbacks)

	// Alias translation happens once; a target that is itself an alias key is never followed.
	for _, k := range sortedKeys(t.Aliases) {
		key, target := match.Normalize(k), match.Normalize(t.Aliases[k])
		if target == "" || target == key {
			continue
		}

		if next, ok := lookupNormalized(t.Aliases, target); ok && match.Normalize(next) != target {
			res.AddWarning(diagnostic.CodeAliasChain,
				fmt.Sprintf("alias target %q is itself aliased to %q; aliases are not chained", target, next), "aliases", k)
		}
	}

	for _, k := range sortedKeys(t.Fallbacks) {
		target := match.Normalize(t.Fallbacks[k])
		if target == "" || target == match.Normalize(k) {
			continue
		}

		if next, ok := lookupNormalized(t.Fallbacks, target); ok && match.Normalize(next) != target {
			res.AddWarning(diagnostic.CodeAliasChain,
				fmt.Sprintf("fallback target %q is itself redirected to %q; fallbacks are not chained", target, next), "fallbacks", k)
		}
	}

	return res
}

// CheckTargets reports alias and fallback targets that do not name any entity
// in the reference geometry. Such entries can never take effect.
func CheckTargets(c *Compiled, index NameIndex) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if c == nil || index == nil {
		return res
	}

	for _, target := range c.FallbackTargets() {
		if _, ok := index.Lookup(target); !ok {
			res.AddWarning(diagnostic.CodeFallbackUnresolved,
				"fallback target does not name a reference entity", "fallbacks", target)
		}
	}

	for _, target := range c.AliasTargets() {
		if _, ok := index.Lookup(target); !ok {
			res.AddInfo(diagnostic.CodeAliasUnresolved,
				"alias target does not name a reference entity; labels using it fall through", "aliases", target)
		}
	}

	return res
}

// validateEntries checks for blank keys and targets, and keys that collide after normalization.
func validateEntries(res *diagnostic.Diagnostics, table string, entries map[string]string) {
	seen := make(map[string]string, len(entries))

	for _, k := range sortedKeys(entries) {
		key := match.Normalize(k)
		if key == "" {
			res.AddError(diagnostic.CodeEmptyKey, "key is blank after normalization", table, k)
			continue
		}

		if match.Normalize(entries[k]) == "" {
			res.AddError(diagnostic.CodeEmptyValue, "target is blank after normalization", table, k)
		}

		if prev, dup := seen[key]; dup {
			res.AddWarning(diagnostic.CodeDuplicateKey,
				fmt.Sprintf("%q and %q normalize to the same key %q; %q wins", prev, k, key, prev), table, k)

			continue
		}

		seen[key] = k
	}
}

// lookupNormalized finds the entry whose key normalizes to name.
func lookupNormalized(entries map[string]string, name string) (string, bool) {
	for _, k := range sortedKeys(entries) {
		if match.Normalize(k) == name {
			return entries[k], true
		}
	}

	return "", false
}
