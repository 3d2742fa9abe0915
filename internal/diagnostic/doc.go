// Package diagnostic provides structured warnings, errors, and
// "why this resolved" explanations for label reconciliation.
//
// Key capabilities:
//   - Unresolved label warnings with the closest known name
//   - Reference geometry problems (missing ids, shared names)
//   - Table validation findings (empty keys, alias chains)
package diagnostic
