package domain

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Canonical column names shared by the 1D and 2D solutions.
const (
	ColX         = "x"
	ColY         = "y"
	ColDepth     = "depth"
	ColVelocityX = "u"
	ColVelocityY = "v"
	ColVelocity  = "U" // velocity norm
	ColHead      = "head"
	ColCritHead  = "crit_head"
	ColTopo      = "gd_elev"
	ColFlow      = "q"
	ColFlowX     = "qx"
	ColFlowY     = "qy"
	ColFroude    = "Froude"
)

// ErrMalformedOutput marks every parse failure so callers can tell a broken
// tool output apart from a failed tool invocation.
var ErrMalformedOutput = errors.New("malformed swashes output")

// cols1D maps the tool's 1D/pseudo-2D header expressions to canonical names.
var cols1D = map[string]string{
	"(i-0.5)*dx":    ColX,
	"h[i]":          ColDepth,
	"u[i]":          ColVelocityX,
	"topo[i]":       ColTopo,
	"q[i]":          ColFlow,
	"topo[i]+h[i]":  ColHead,
	"Fr[i]=Froude":  ColFroude,
	"topo[i]+hc[i]": ColCritHead,
}

// cols2D maps the tool's 2D header expressions to canonical names.
var cols2D = map[string]string{
	"(i-0.5)*dx":         ColX,
	"(j-0.5)*dy":         ColY,
	"h[i][j]":            ColDepth,
	"u[i][j]":            ColVelocityX,
	"v[i][j]":            ColVelocityY,
	"topo[i][j]+h[i][j]": ColHead,
	"topo[i][j]":         ColTopo,
	"||U||[i][j]":        ColVelocity,
	"Fr[i][j]":           ColFroude,
	"qx[i][j]":           ColFlowX,
	"qy[i][j]":           ColFlowY,
	"q[i][j]":            ColFlow,
}

// DomainParams holds the discretized domain geometry the tool reports in its
// comment block. Width, DY and CellsY stay zero for non-2D solutions.
type DomainParams struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width,omitempty"`
	DX     float64 `json:"dx"`
	DY     float64 `json:"dy,omitempty"`
	CellsX int     `json:"cells_x"`
	CellsY int     `json:"cells_y,omitempty"`
}

// Table is one parsed analytic solution. Cells keep the exact strings the
// tool printed; use Column or Grid for typed access.
type Table struct {
	Case        Case         `json:"case"`
	ColumnNames []string     `json:"columns"`
	Rows        [][]string   `json:"rows"`
	Params      DomainParams `json:"domain"`
	GeneratedBy string       `json:"generated_by,omitempty"`
	ComputedAt  time.Time    `json:"computed_at"`
}

// Parse reads the tool's stdout into a Table, canonicalizes the column
// headers, extracts the domain parameters from the comment block, and checks
// that the echoed case matches the request. All failures wrap
// ErrMalformedOutput.
func Parse(c Case, raw []byte) (*Table, error) {
	lines := strings.Split(strings.ReplaceAll(string(raw), "\r\n", "\n"), "\n")

	var header []string
	var comments []string
	var rows [][]string

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, "#") {
			// A comment line directly above the first data line is the header;
			// every other comment line is metadata.
			if i+1 < len(lines) && isDataLine(lines[i+1]) {
				header = strings.Fields(strings.TrimLeft(trimmed, "#"))
			} else {
				comments = append(comments, strings.TrimSpace(strings.TrimLeft(trimmed, "#")))
			}
			continue
		}
		rows = append(rows, strings.Fields(trimmed))
	}

	if len(header) == 0 {
		return nil, fmt.Errorf("%w: no header line found", ErrMalformedOutput)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no data rows found", ErrMalformedOutput)
	}
	for i, row := range rows {
		if len(row) != len(header) {
			return nil, fmt.Errorf("%w: row %d has %d values, header has %d columns",
				ErrMalformedOutput, i+1, len(row), len(header))
		}
	}

	t := &Table{
		Case:        c,
		ColumnNames: canonicalize(c.Dimension, header),
		Rows:        rows,
		ComputedAt:  clock.Now().UTC(),
	}
	if err := t.readComments(comments); err != nil {
		return nil, err
	}
	return t, nil
}

// isDataLine reports whether a raw output line is a numeric data row.
func isDataLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	return trimmed != "" && !strings.HasPrefix(trimmed, "#")
}

// canonicalize renames the tool's header expressions to stable column names.
// Unknown tokens pass through untouched.
func canonicalize(d Dimension, header []string) []string {
	cols := cols1D
	if d == TwoDimensional {
		cols = cols2D
	}
	names := make([]string, len(header))
	for i, h := range header {
		if name, ok := cols[h]; ok {
			names[i] = name
		} else {
			names[i] = h
		}
	}
	return names
}

// paramKeywords maps DomainParams fields to the comment prefixes that carry
// them; 1D outputs use the shorter spellings.
var paramKeywords = map[string][]string{
	"length": {"Length of the domain:"},
	"width":  {"Width of the domain:"},
	"dx":     {"Space step in x:", "Space step:"},
	"dy":     {"Space step in y:"},
	"ncellx": {"Number of cells in x:", "Number of cells:"},
	"ncelly": {"Number of cells in y:"},
}

// readComments extracts metadata from the comment block and verifies the
// echoed case against the request.
func (t *Table) readComments(comments []string) error {
	echo := map[string]float64{}

	for _, line := range comments {
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "Generated by") {
			t.GeneratedBy = line
			continue
		}
		for _, key := range []string{"Dimension:", "Type:", "Domain:", "Choice:"} {
			if strings.HasPrefix(line, key) {
				v, err := numberFromComment(line)
				if err != nil {
					return fmt.Errorf("%w: comment %q: %v", ErrMalformedOutput, line, err)
				}
				echo[key] = v
			}
		}
		for param, keywords := range paramKeywords {
			for _, keyword := range keywords {
				if !strings.HasPrefix(line, keyword) {
					continue
				}
				v, err := numberFromComment(line)
				if err != nil {
					return fmt.Errorf("%w: comment %q: %v", ErrMalformedOutput, line, err)
				}
				t.setParam(param, v)
			}
		}
	}

	expected := map[string]float64{
		"Dimension:": t.Case.Dimension.value(),
		"Type:":      float64(t.Case.Type),
		"Domain:":    float64(t.Case.Domain),
		"Choice:":    float64(t.Case.Choice),
	}
	for key, want := range expected {
		if got, ok := echo[key]; ok && got != want {
			return fmt.Errorf("%w: tool echoed %s %g, requested %g", ErrMalformedOutput,
				strings.TrimSuffix(key, ":"), got, want)
		}
	}
	if t.Params.CellsX != 0 && t.Params.CellsX != t.Case.CellsX {
		return fmt.Errorf("%w: tool reported %d cells in x, requested %d",
			ErrMalformedOutput, t.Params.CellsX, t.Case.CellsX)
	}
	if t.Params.CellsY != 0 && t.Case.CellsY != 0 && t.Params.CellsY != t.Case.CellsY {
		return fmt.Errorf("%w: tool reported %d cells in y, requested %d",
			ErrMalformedOutput, t.Params.CellsY, t.Case.CellsY)
	}
	return nil
}

func (t *Table) setParam(param string, v float64) {
	switch param {
	case "length":
		t.Params.Length = v
	case "width":
		t.Params.Width = v
	case "dx":
		t.Params.DX = v
	case "dy":
		t.Params.DY = v
	case "ncellx":
		t.Params.CellsX = int(v)
	case "ncelly":
		t.Params.CellsY = int(v)
	}
}

// numberFromComment returns the float after the last ':' and before any
// trailing unit, e.g. "Space step in x: 0.8 meters" -> 0.8.
func numberFromComment(line string) (float64, error) {
	idx := strings.LastIndex(line, ":")
	if idx < 0 {
		return 0, errors.New("no ':' separator")
	}
	fields := strings.Fields(line[idx+1:])
	if len(fields) == 0 {
		return 0, errors.New("no value after ':'")
	}
	return strconv.ParseFloat(fields[0], 64)
}

// Columns returns the canonical column names.
func (t *Table) Columns() []string {
	return t.ColumnNames
}

// HasColumn reports whether the table carries the named column.
func (t *Table) HasColumn(name string) bool {
	return t.columnIndex(name) >= 0
}

func (t *Table) columnIndex(name string) int {
	for i, n := range t.ColumnNames {
		if n == name {
			return i
		}
	}
	return -1
}

// CSV renders the table as comma-separated text: header line first, rows in
// tool order, lines joined with '\n'. Values are emitted exactly as the tool
// printed them.
func (t *Table) CSV() string {
	lines := make([]string, 0, len(t.Rows)+1)
	lines = append(lines, strings.Join(t.ColumnNames, ","))
	for _, row := range t.Rows {
		lines = append(lines, strings.Join(row, ","))
	}
	return strings.Join(lines, "\n")
}

// Column parses one column into a float64 slice in row order. "NaN" cells
// become math.NaN().
func (t *Table) Column(name string) ([]float64, error) {
	idx := t.columnIndex(name)
	if idx < 0 {
		return nil, fmt.Errorf("unknown column %q: available columns are %v", name, t.ColumnNames)
	}
	values := make([]float64, len(t.Rows))
	for i, row := range t.Rows {
		v, err := strconv.ParseFloat(row[idx], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: column %q row %d: %v", ErrMalformedOutput, name, i+1, err)
		}
		values[i] = v
	}
	return values, nil
}

// Grid pivots one column of a two-dimensional table into a [cells_y][cells_x]
// matrix, rows ordered by ascending y and columns by ascending x — the same
// orientation an ASCII grid raster uses.
func (t *Table) Grid(name string) ([][]float64, error) {
	if t.Case.Dimension != TwoDimensional {
		return nil, fmt.Errorf("grid requires a two-dimensional solution, case is %s", t.Case.Dimension)
	}
	values, err := t.Column(name)
	if err != nil {
		return nil, err
	}

	xIdx := t.columnIndex(ColX)
	yIdx := t.columnIndex(ColY)
	if xIdx < 0 || yIdx < 0 {
		return nil, fmt.Errorf("%w: 2D table is missing x/y columns", ErrMalformedOutput)
	}

	// The raw cell strings index the axes: equal coordinates print identically,
	// so no float comparison is needed.
	xOrder := axisOrder(t.Rows, xIdx)
	yOrder := axisOrder(t.Rows, yIdx)
	nx, ny := t.Case.CellsX, t.Case.CellsY
	if len(xOrder) != nx || len(yOrder) != ny {
		return nil, fmt.Errorf("%w: expected %dx%d grid, found %d x and %d y coordinates",
			ErrMalformedOutput, nx, ny, len(xOrder), len(yOrder))
	}
	if len(t.Rows) != nx*ny {
		return nil, fmt.Errorf("%w: expected %d grid cells, found %d rows",
			ErrMalformedOutput, nx*ny, len(t.Rows))
	}

	grid := make([][]float64, ny)
	for i := range grid {
		grid[i] = make([]float64, nx)
		for j := range grid[i] {
			grid[i][j] = math.NaN()
		}
	}
	for i, row := range t.Rows {
		grid[yOrder[row[yIdx]]][xOrder[row[xIdx]]] = values[i]
	}
	return grid, nil
}

// axisOrder maps each distinct coordinate string to its index along the
// axis, in order of first appearance. The tool emits coordinates ascending,
// so first appearance matches spatial order.
func axisOrder(rows [][]string, col int) map[string]int {
	order := map[string]int{}
	for _, row := range rows {
		if _, ok := order[row[col]]; !ok {
			order[row[col]] = len(order)
		}
	}
	return order
}
