// Package mapping provides the YAML schema, parsing, compilation and
// validation of the curated label tables used during reconciliation.
//
// Tables are data, not code: they turn known naming divergences between the
// statistical source and the reference geometry into deterministic rules.
//
// # Key capabilities
//
//   - Aliases: exact substitutions for known renames (applied once, never chained)
//   - Fallbacks: redirect a label to another entity when the reference geometry
//     has no entity at the same granularity (e.g. a territory folded into its country)
//   - The fuzzy-distance cut-off that bounds the last-resort match
//   - An embedded default table set
//
// # Schema Overview
//
// The tables file has the following structure:
//
//	version: "1"
//	max_fuzzy_distance: 10
//	# normalized raw label -> canonical name
//	aliases:
//	  CHINA PROC: CHINA
//	  MACEDONIA: NORTH MACEDONIA
//	# raw or normalized label -> substitute canonical name
//	fallbacks:
//	  HONG KONG: CHINA
//
// Keys and targets may be written in any case or punctuation; they are
// normalized once when the tables are compiled.
package mapping
