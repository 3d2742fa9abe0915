package source

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LoadFile reads a document from disk. JSON files are parsed as documents;
// CSV and XLSX files as uploads.
func LoadFile(path string) (*Document, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".xlsx":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open source file: %w", err)
		}
		defer f.Close()

		rows, err := ParseUpload(filepath.Base(path), f)
		if err != nil {
			return nil, err
		}

		return DocumentFromRows(rows), nil
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read source file: %w", err)
		}

		return ParseDocument(data)
	}
}
