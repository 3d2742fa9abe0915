package source

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cast"

	"emigrant-atlas/internal/reconcile"
)

// ErrSourceDataUnavailable is returned when a document has no record for a year.
var ErrSourceDataUnavailable = errors.New("source data unavailable")

// dataKey holds the row array in documents of the first shape.
const dataKey = "data"

// Document is one category's observations, indexed by year.
type Document struct {
	years map[int]map[string]any
	order []int
	// flat is set when the document is a single record valid for every year.
	flat map[string]any
}

// ParseDocument decodes a JSON document. Three shapes are accepted, tried in
// order: {"data": [{"year": 1981, ...}, ...]}, {"1981": {...}, ...}, and a
// flat record used as-is for any year. The flat shape applies only when no
// key is a year holding a record. Numbers keep their textual form.
func ParseDocument(data []byte) (*Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to parse source document: %w", err)
	}

	if raw == nil {
		return nil, fmt.Errorf("source document is null: %w", ErrSourceDataUnavailable)
	}

	if rows, ok := raw[dataKey].([]any); ok {
		doc := newDocument()

		for _, row := range rows {
			record, ok := row.(map[string]any)
			if !ok {
				continue
			}

			if year, ok := parseYear(record[reconcile.YearKey]); ok {
				doc.add(year, record)
			}
		}

		return doc, nil
	}

	if doc, ok := yearKeyed(raw); ok {
		return doc, nil
	}

	return &Document{flat: raw}, nil
}

// yearKeyed indexes every year key holding a record. Other keys, such as
// upload metadata, are ignored. It reports false when no key qualifies.
func yearKeyed(raw map[string]any) (*Document, bool) {
	doc := newDocument()

	for _, key := range sortedKeys(raw) {
		year, ok := parseYear(key)
		if !ok {
			continue
		}

		record, ok := raw[key].(map[string]any)
		if !ok {
			continue
		}

		doc.add(year, record)
	}

	return doc, len(doc.order) > 0
}

func newDocument() *Document {
	return &Document{years: make(map[int]map[string]any)}
}

// add stores a record; the first record seen for a year wins.
func (d *Document) add(year int, record map[string]any) {
	if _, ok := d.years[year]; ok {
		return
	}

	d.years[year] = record
	d.order = append(d.order, year)
}

// Flat reports whether the document is a single record valid for every year.
func (d *Document) Flat() bool {
	return d.flat != nil
}

// Years returns the years present, sorted. A flat document has none.
func (d *Document) Years() []int {
	out := append([]int(nil), d.order...)
	sort.Ints(out)

	return out
}

// Year returns the record for a year.
func (d *Document) Year(year int) (map[string]any, error) {
	if d.flat != nil {
		return d.flat, nil
	}

	record, ok := d.years[year]
	if !ok {
		return nil, fmt.Errorf("no record for %d: %w", year, ErrSourceDataUnavailable)
	}

	return record, nil
}

// Observations returns the year's record as observations, ordered by label.
func (d *Document) Observations(year int) ([]reconcile.Observation, error) {
	record, err := d.Year(year)
	if err != nil {
		return nil, err
	}

	return reconcile.ObservationsFromMap(record), nil
}

// AllObservations returns the observations of every year in the document.
func (d *Document) AllObservations() map[int][]reconcile.Observation {
	out := make(map[int][]reconcile.Observation, len(d.years))
	for year, record := range d.years {
		out[year] = reconcile.ObservationsFromMap(record)
	}

	return out
}

// parseYear accepts 4-digit years given as numbers or strings.
func parseYear(v any) (int, bool) {
	if v == nil {
		return 0, false
	}

	s := strings.TrimSpace(fmt.Sprint(v))
	if !isYear(s) {
		return 0, false
	}

	year, err := cast.ToIntE(s)
	if err != nil {
		return 0, false
	}

	return year, true
}

// isYear reports whether s is exactly four ASCII digits.
func isYear(s string) bool {
	if len(s) != 4 {
		return false
	}

	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}

	return true
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}
