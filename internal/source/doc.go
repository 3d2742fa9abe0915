// Package source reads the raw observations for a category: year-keyed JSON
// documents and the CSV or XLSX tables operators upload.
//
// Nothing here resolves labels. A document yields, for one year, the map of
// label to raw value that the reconcile package consumes.
package source
