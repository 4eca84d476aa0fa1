package domain

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// NoDataValue replaces NaN cells in ASCII grid rasters.
const NoDataValue = -99999

// minGridRows is the minimum row count of a 1D raster; single-row grids are
// padded by repetition because some GIS tools reject rasters under 3 rows.
const minGridRows = 3

// WriteASCIIGrid encodes one column of the table as an ESRI ASCII grid
// raster with the lower-left corner at (0,0). One-dimensional tables write a
// square-cell raster (CELLSIZE) padded to minGridRows; two-dimensional
// tables write a DX/DY raster with rows ordered by ascending y.
func WriteASCIIGrid(w io.Writer, t *Table, column string) error {
	if t.Case.Dimension == TwoDimensional {
		return writeGrid2D(w, t, column)
	}
	return writeGrid1D(w, t, column)
}

func writeGrid1D(w io.Writer, t *Table, column string) error {
	values, err := t.Column(column)
	if err != nil {
		return err
	}
	if t.Params.CellsX != 0 && len(values) != t.Params.CellsX {
		return fmt.Errorf("%w: column %q has %d values, domain has %d cells",
			ErrMalformedOutput, column, len(values), t.Params.CellsX)
	}

	header := fmt.Sprintf("NCOLS %d\nNROWS %d\nXLLCORNER 0.0\nYLLCORNER 0.0\nCELLSIZE %s\nNODATA_VALUE %d\n\n",
		len(values), minGridRows, formatCoord(t.Params.DX), NoDataValue)
	if _, err := io.WriteString(w, header); err != nil {
		return err
	}
	line := formatGridRow(values)
	for i := 0; i < minGridRows; i++ {
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return err
		}
	}
	return nil
}

func writeGrid2D(w io.Writer, t *Table, column string) error {
	grid, err := t.Grid(column)
	if err != nil {
		return err
	}

	header := fmt.Sprintf("NCOLS %d\nNROWS %d\nXLLCORNER 0.0\nYLLCORNER 0.0\nDX %s\nDY %s\nNODATA_VALUE %d\n\n",
		t.Case.CellsX, t.Case.CellsY, formatCoord(t.Params.DX), formatCoord(t.Params.DY), NoDataValue)
	if _, err := io.WriteString(w, header); err != nil {
		return err
	}
	for _, row := range grid {
		if _, err := io.WriteString(w, formatGridRow(row)+"\n"); err != nil {
			return err
		}
	}
	return nil
}

func formatGridRow(values []float64) string {
	cells := make([]string, len(values))
	for i, v := range values {
		if math.IsNaN(v) {
			v = NoDataValue
		}
		cells[i] = strconv.FormatFloat(v, 'f', 6, 64)
	}
	return strings.Join(cells, " ")
}

// formatCoord prints a grid geometry value without trailing zeros.
func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
