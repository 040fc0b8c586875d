package ingest

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	importer "talentdesk/internal/importer/domain"
)

// Ingestion errors are fatal to the import attempt; no partial table is
// ever returned.
var (
	ErrEmptyFile            = errors.New("ingest: empty file")
	ErrEmptyHeader          = errors.New("ingest: empty header row")
	ErrUnsupportedExtension = errors.New("ingest: unsupported file extension")
	ErrGridRequiresWorkbook = errors.New("ingest: weekend matrix requires an xlsx or xls workbook")
)

// Extension resolves the authoritative file type from the name. MIME types
// are treated as unreliable and never consulted.
func Extension(filename string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	switch ext {
	case "csv", "xlsx", "xls":
		return ext, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedExtension, ext)
	}
}

// ReadTable converts an uploaded file into the uniform tabular
// representation: ordered rows keyed by column header.
func ReadTable(filename string, r io.Reader) (*importer.Table, error) {
	ext, err := Extension(filename)
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("ingest: read %s: %w", filename, err)
	}
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}
	switch ext {
	case "csv":
		return readCSVTable(filepath.Base(filename), data)
	default:
		return readWorkbookTable(filepath.Base(filename), data)
	}
}

// ReadGrid converts an uploaded workbook into the positional representation
// used by weekend-matrix parsing, including per-cell fill metadata.
func ReadGrid(filename string, r io.Reader) (*importer.Grid, error) {
	ext, err := Extension(filename)
	if err != nil {
		return nil, err
	}
	if ext == "csv" {
		return nil, ErrGridRequiresWorkbook
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("ingest: read %s: %w", filename, err)
	}
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}
	return readWorkbookGrid(filepath.Base(filename), data)
}
