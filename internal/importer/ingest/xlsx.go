package ingest

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	importer "talentdesk/internal/importer/domain"
)

// readWorkbookTable reads the first sheet of a workbook into the uniform
// tabular representation. Cell values are read as displayed, not
// reinterpreted; empty cells default to "".
func readWorkbookTable(source string, data []byte) (*importer.Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("ingest: unreadable workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := firstSheetRows(f)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrEmptyFile
	}

	headers := trimTrailingBlank(rows[0])
	if len(headers) == 0 {
		return nil, ErrEmptyHeader
	}

	table := &importer.Table{Source: source, Headers: headers}
	for i, cells := range rows[1:] {
		values := make(map[string]string, len(headers))
		for j, header := range headers {
			if j < len(cells) {
				values[header] = cells[j]
			} else {
				values[header] = ""
			}
		}
		table.Rows = append(table.Rows, importer.RawRow{
			Index:   i + 2,
			Headers: headers,
			Values:  values,
		})
	}
	return table, nil
}

// readWorkbookGrid reads the first sheet positionally, padding every row to
// the sheet's widest row, and captures per-cell fill metadata.
func readWorkbookGrid(source string, data []byte) (*importer.Grid, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("ingest: unreadable workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheet, err := firstSheetName(f)
	if err != nil {
		return nil, err
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("ingest: unreadable workbook: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyFile
	}

	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	cells := make([][]string, len(rows))
	widths := make([]int, len(rows))
	for i, row := range rows {
		widths[i] = len(trimTrailingBlank(row))
		padded := make([]string, width)
		copy(padded, row)
		cells[i] = padded
	}

	styles, err := inspectFills(f, sheet, len(rows), width)
	if err != nil {
		return nil, err
	}
	return &importer.Grid{Source: source, Cells: cells, Widths: widths, Styles: styles}, nil
}

// trimTrailingBlank drops empty cells from the tail of a header row.
func trimTrailingBlank(cells []string) []string {
	end := len(cells)
	for end > 0 && strings.TrimSpace(cells[end-1]) == "" {
		end--
	}
	return cells[:end]
}

func firstSheetName(f *excelize.File) (string, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", fmt.Errorf("ingest: unreadable workbook: no sheets")
	}
	return sheets[0], nil
}

func firstSheetRows(f *excelize.File) ([][]string, error) {
	sheet, err := firstSheetName(f)
	if err != nil {
		return nil, err
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("ingest: unreadable workbook: %w", err)
	}
	return rows, nil
}

// fillTable answers fill lookups from a precomputed cell set. When no cell
// of the sheet carries any style, the whole sheet is reported as having no
// style information so callers can fall back to their configured policy.
type fillTable struct {
	styled bool
	filled map[[2]int]bool
}

// Fill implements importer.CellStyles.
func (t *fillTable) Fill(row, col int) importer.FillInfo {
	if t == nil || !t.styled {
		return importer.FillUnknown
	}
	if t.filled[[2]int{row, col}] {
		return importer.FillPresent
	}
	return importer.FillNone
}

func inspectFills(f *excelize.File, sheet string, rowCount, width int) (*fillTable, error) {
	table := &fillTable{filled: make(map[[2]int]bool)}
	styleFills := make(map[int]bool)

	for row := 0; row < rowCount; row++ {
		for col := 0; col < width; col++ {
			cell, err := excelize.CoordinatesToCellName(col+1, row+1)
			if err != nil {
				return nil, fmt.Errorf("ingest: cell name: %w", err)
			}
			styleID, err := f.GetCellStyle(sheet, cell)
			if err != nil {
				continue
			}
			if styleID == 0 {
				continue
			}
			table.styled = true
			filled, known := styleFills[styleID]
			if !known {
				filled = styleHasFill(f, styleID)
				styleFills[styleID] = filled
			}
			if filled {
				table.filled[[2]int{row, col}] = true
			}
		}
	}
	return table, nil
}

// styleHasFill reports whether a style carries a non-white pattern fill.
func styleHasFill(f *excelize.File, styleID int) bool {
	style, err := f.GetStyle(styleID)
	if err != nil || style == nil {
		return false
	}
	if style.Fill.Type != "pattern" || style.Fill.Pattern == 0 {
		return false
	}
	for _, color := range style.Fill.Color {
		if !isDefaultFillColor(color) {
			return true
		}
	}
	return false
}

func isDefaultFillColor(color string) bool {
	normalized := strings.ToUpper(strings.TrimPrefix(strings.TrimSpace(color), "#"))
	// ARGB values carry a leading alpha byte.
	if len(normalized) == 8 {
		normalized = normalized[2:]
	}
	switch normalized {
	case "", "FFFFFF", "AUTO":
		return true
	default:
		return false
	}
}
