package importer

// RawRow is one source-file row: an ordered header-to-value mapping plus a
// 1-based row index used for error reporting.
type RawRow struct {
	Index    int
	Headers  []string
	Values   map[string]string
	Messages []string
}

// Get returns the raw cell value under header, or "" when absent.
func (r RawRow) Get(header string) string {
	if r.Values == nil {
		return ""
	}
	return r.Values[header]
}

// AddMessage appends a validation message to the row.
func (r *RawRow) AddMessage(message string) {
	if message == "" {
		return
	}
	r.Messages = append(r.Messages, message)
}

// Table is the uniform tabular representation produced by ingestion for
// header-mapped sources.
type Table struct {
	Source  string
	Headers []string
	Rows    []RawRow
}

// FillInfo describes the background fill of a source cell.
type FillInfo int

const (
	// FillUnknown means the source carries no style information at all.
	FillUnknown FillInfo = iota
	// FillNone means style information exists and the cell has a default fill.
	FillNone
	// FillPresent means the cell carries a non-default background fill.
	FillPresent
)

// CellStyles exposes per-cell fill inspection for grid sources. Row and
// column are zero-based sheet coordinates.
type CellStyles interface {
	Fill(row, col int) FillInfo
}

// NoStyles is a CellStyles for sources without style metadata.
type NoStyles struct{}

// Fill always reports FillUnknown.
func (NoStyles) Fill(int, int) FillInfo { return FillUnknown }

// Grid is the positional representation produced by ingestion for
// weekend-matrix sources: raw cells plus style metadata. Widths records
// each row's cell count before the reader padded rows to a uniform width.
type Grid struct {
	Source string
	Cells  [][]string
	Widths []int
	Styles CellStyles
}

// RowWidth returns the row's original width, falling back to the padded
// cell count when no width was recorded.
func (g *Grid) RowWidth(i int) int {
	if i >= 0 && i < len(g.Widths) {
		return g.Widths[i]
	}
	if i >= 0 && i < len(g.Cells) {
		return len(g.Cells[i])
	}
	return 0
}
