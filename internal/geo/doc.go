// Package geo loads reference geometry (a GeoJSON FeatureCollection) and
// builds the canonical entity registry that labels are reconciled against.
//
// Only features with drawable geometry take part: a feature that cannot be
// rendered on the choropleth must never receive a value.
package geo
