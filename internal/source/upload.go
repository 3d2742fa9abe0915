package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/spf13/cast"
	"github.com/xuri/excelize/v2"

	"emigrant-atlas/internal/reconcile"
)

var (
	// ErrEmptyFile is returned when an upload has no non-blank row.
	ErrEmptyFile = errors.New("file appears empty")
	// ErrUnsupportedLayout is returned when no years are found in the first row or column.
	ErrUnsupportedLayout = errors.New("file format not supported: year not in first row or column")
	// ErrUnsupportedFileType is returned for extensions other than .csv and .xlsx.
	ErrUnsupportedFileType = errors.New("unsupported file type: only CSV or XLSX allowed")
)

// Row is one year of an uploaded table.
type Row struct {
	Year int
	// Values maps a label to a cleaned cell: a float64, a string, or nil.
	Values map[string]any
}

// ParseUpload reads a CSV or XLSX table. The file name's extension selects the
// format; for XLSX only the first sheet is read. Years may run along the first
// row (one column per year) or down the first column (one row per year).
func ParseUpload(name string, r io.Reader) ([]Row, error) {
	var (
		cells [][]string
		err   error
	)

	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".csv":
		cells, err = readCSV(r)
	case ".xlsx":
		cells, err = readXLSX(r)
	default:
		return nil, fmt.Errorf("%s: %w", name, ErrUnsupportedFileType)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}

	cells = dropBlankRows(cells)
	if len(cells) == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrEmptyFile)
	}

	switch {
	case yearsInFirstRow(cells):
		return byColumn(cells), nil
	case yearsInFirstColumn(cells):
		return byRow(cells), nil
	default:
		return nil, fmt.Errorf("%s: %w", name, ErrUnsupportedLayout)
	}
}

func readCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	return reader.ReadAll()
}

func readXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}

	return f.GetRows(sheets[0])
}

func dropBlankRows(cells [][]string) [][]string {
	out := cells[:0]

	for _, row := range cells {
		for _, v := range row {
			if strings.TrimSpace(v) != "" {
				out = append(out, row)
				break
			}
		}
	}

	return out
}

func yearsInFirstRow(cells [][]string) bool {
	for _, v := range cells[0][min(1, len(cells[0])):] {
		if isYear(strings.TrimSpace(v)) {
			return true
		}
	}

	return false
}

func yearsInFirstColumn(cells [][]string) bool {
	for _, row := range cells[1:] {
		if isYear(strings.TrimSpace(cell(row, 0))) {
			return true
		}
	}

	return false
}

// byColumn reads a table whose header row holds the years.
func byColumn(cells [][]string) []Row {
	header := cells[0]

	var rows []Row

	for j := 1; j < len(header); j++ {
		year, ok := parseYear(header[j])
		if !ok {
			continue
		}

		row := Row{Year: year, Values: make(map[string]any)}

		for _, r := range cells[1:] {
			if label := strings.TrimSpace(cell(r, 0)); keepLabel(label) {
				row.Values[label] = cleanValue(cell(r, j))
			}
		}

		rows = append(rows, row)
	}

	return rows
}

// byRow reads a table whose first column holds the years.
func byRow(cells [][]string) []Row {
	header := cells[0]

	var rows []Row

	for _, r := range cells[1:] {
		year, ok := parseYear(cell(r, 0))
		if !ok {
			continue
		}

		row := Row{Year: year, Values: make(map[string]any)}

		for j := 1; j < len(header); j++ {
			if label := strings.TrimSpace(header[j]); keepLabel(label) {
				row.Values[label] = cleanValue(cell(r, j))
			}
		}

		rows = append(rows, row)
	}

	return rows
}

// keepLabel drops blanks and the summary rows tables commonly carry.
func keepLabel(label string) bool {
	return label != "" && !strings.EqualFold(label, "total") && label != "%"
}

// cleanValue strips quotes, apostrophes, commas and whitespace from a cell.
// Numeric cells become float64; blank and NaN cells become nil.
func cleanValue(v string) any {
	s := strings.Map(func(r rune) rune {
		if r == '"' || r == '\'' || r == ',' || unicode.IsSpace(r) {
			return -1
		}

		return r
	}, v)

	if s == "" || s == "NaN" {
		return nil
	}

	if f, err := cast.ToFloat64E(s); err == nil {
		return f
	}

	return s
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}

	return ""
}

// DocumentFromRows indexes uploaded rows by year. The first row for a year wins.
func DocumentFromRows(rows []Row) *Document {
	doc := newDocument()

	for _, row := range rows {
		record := make(map[string]any, len(row.Values)+1)
		for label, v := range row.Values {
			record[label] = v
		}

		record[reconcile.YearKey] = row.Year
		doc.add(row.Year, record)
	}

	return doc
}
