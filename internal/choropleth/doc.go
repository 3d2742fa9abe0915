// Package choropleth turns a resolved value map into what a map view draws:
// a fill color per entity, a gradient legend, and the top-N ranking.
package choropleth
