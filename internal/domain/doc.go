// Package domain models SWASHES analytic solutions to the Shallow Water
// Equations and the tabular text format the SWASHES tool prints.
//
// # Data Source
//
// Solutions are computed by the SWASHES command-line tool (Delestre et al.,
// "SWASHES: a compilation of Shallow Water Analytic Solutions for Hydraulic
// and Environmental Studies"). The tool is invoked as
//
//	swashes <dimension> <type> <domain> <choice> <cells_x> [<cells_y>]
//
// where dimension is one of 1, 1.5 (pseudo-2D) or 2, and the remaining
// parameters are the integer selectors from the SWASHES manual. The solution
// is written to stdout; diagnostics go to stderr.
//
// # Output Format
//
// The stdout stream is a comment block followed by whitespace-separated
// numeric rows:
//
//	#############################
//	# Generated by SWASHES ...
//	# Dimension: 1
//	# Type: 2
//	# Domain: 1
//	# Choice: 2
//	# Length of the domain: 1000 meters
//	# Space step: 200 meters
//	# Number of cells: 5
//	#
//	#(i-0.5)*dx	h[i]	u[i]	...
//	100 0.770195 2.59675 ...
//
// A '#' line followed by another '#' line is metadata; the single '#' line
// immediately preceding the first data row carries the column headers.
// Header tokens are the tool's internal expressions ("h[i]", "topo[i][j]")
// and are canonicalized to stable column names ("depth", "gd_elev") on
// parse. Cell values are kept as the exact strings the tool printed so CSV
// output round-trips without loss; typed accessors parse on demand. Dry 2D
// cells may carry "NaN" Froude numbers.
//
// # Metadata Comments
//
// The comment block echoes the requested case (Dimension/Type/Domain/Choice)
// and describes the discretized domain (length, width, space steps, cell
// counts, under a few alternative spellings). Both are extracted: the echo
// is checked against the request so a mismatched or truncated output fails
// parsing instead of yielding a mislabeled table, and the domain parameters
// feed the ASCII grid headers.
//
// # Grid Files
//
// One- and two-dimensional tables encode to ESRI ASCII grid rasters with the
// lower-left corner pinned to (0,0) and NaN replaced by the -99999 NODATA
// sentinel. Single-row 1D rasters are padded to three rows by repetition so
// GIS tools accept them.
package domain
