// Package reconcile resolves raw (label -> value) observations for one year
// onto canonical entity ids.
//
// Resolution pipeline, per observation and in input order:
//  1. Parse the value; observations worth zero or less are skipped entirely
//  2. Normalize the label and translate it once through the alias table
//  3. Exact match against the registry name index
//  4. Fallback table redirect, accepted only if the target matches exactly
//  5. Fuzzy match on edit distance, bounded by the configured cut-off
//  6. Otherwise the observation is recorded as missed and processing continues
//
// A pass never fails on individual records. Only a missing registry stops it.
package reconcile
