package domain

import (
	"context"
	"fmt"
	"strconv"
)

// Dimension selects the dimensionality of an analytic solution.
type Dimension int

const (
	// OneDimensional solutions vary along x only.
	OneDimensional Dimension = iota + 1
	// PseudoTwoDimensional solutions are 1D solutions of channels with a
	// varying cross-section, passed to the tool as dimension "1.5".
	PseudoTwoDimensional
	// TwoDimensional solutions vary along x and y.
	TwoDimensional
)

// String returns the CLI token for the dimension ("1", "1.5" or "2").
func (d Dimension) String() string {
	switch d {
	case OneDimensional:
		return "1"
	case PseudoTwoDimensional:
		return "1.5"
	case TwoDimensional:
		return "2"
	default:
		return fmt.Sprintf("Dimension(%d)", int(d))
	}
}

// value returns the numeric form used by the coherence check against the
// tool's "Dimension:" echo comment.
func (d Dimension) value() float64 {
	switch d {
	case OneDimensional:
		return 1
	case PseudoTwoDimensional:
		return 1.5
	case TwoDimensional:
		return 2
	default:
		return 0
	}
}

// ParseDimension converts a CLI or query token into a Dimension.
// Accepts "1", "1.5" and "2" (also "1.0" and "2.0").
func ParseDimension(s string) (Dimension, error) {
	switch s {
	case "1", "1.0":
		return OneDimensional, nil
	case "1.5":
		return PseudoTwoDimensional, nil
	case "2", "2.0":
		return TwoDimensional, nil
	default:
		return 0, fmt.Errorf("invalid dimension %q: must be 1, 1.5 or 2", s)
	}
}

// MarshalJSON encodes the dimension as its CLI token.
func (d Dimension) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(d.String())), nil
}

// UnmarshalJSON accepts both quoted tokens ("1.5") and bare numbers (1.5).
func (d *Dimension) UnmarshalJSON(data []byte) error {
	s := string(data)
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = unquoted
	}
	parsed, err := ParseDimension(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Case identifies one analytic solution: which solution to compute and how
// finely to discretize it. Type, Domain and Choice are the integer selectors
// from the SWASHES manual.
type Case struct {
	Dimension Dimension `json:"dimension"`
	Type      int       `json:"type"`
	Domain    int       `json:"domain"`
	Choice    int       `json:"choice"`
	CellsX    int       `json:"cells_x"`
	CellsY    int       `json:"cells_y,omitempty"`
}

// Validate reports whether the case can be passed to the tool.
func (c Case) Validate() error {
	switch c.Dimension {
	case OneDimensional, PseudoTwoDimensional, TwoDimensional:
	default:
		return fmt.Errorf("invalid dimension %d: must be 1, 1.5 or 2", int(c.Dimension))
	}
	if c.Type <= 0 || c.Domain <= 0 || c.Choice <= 0 {
		return fmt.Errorf("type, domain and choice must be positive: got %d/%d/%d", c.Type, c.Domain, c.Choice)
	}
	if c.CellsX <= 0 {
		return fmt.Errorf("cells_x must be positive: got %d", c.CellsX)
	}
	if c.Dimension == TwoDimensional && c.CellsY <= 0 {
		return fmt.Errorf("two-dimensional solutions need a positive cells_y: got %d", c.CellsY)
	}
	if c.Dimension != TwoDimensional && c.CellsY != 0 {
		return fmt.Errorf("cells_y is only valid for two-dimensional solutions")
	}
	return nil
}

// Args returns the argv tail for the tool invocation.
func (c Case) Args() []string {
	args := []string{
		c.Dimension.String(),
		strconv.Itoa(c.Type),
		strconv.Itoa(c.Domain),
		strconv.Itoa(c.Choice),
		strconv.Itoa(c.CellsX),
	}
	if c.Dimension == TwoDimensional {
		args = append(args, strconv.Itoa(c.CellsY))
	}
	return args
}

// Key returns a stable identifier for caching and logging, e.g. "2/1/1/1/50x50".
func (c Case) Key() string {
	if c.Dimension == TwoDimensional {
		return fmt.Sprintf("%s/%d/%d/%d/%dx%d", c.Dimension, c.Type, c.Domain, c.Choice, c.CellsX, c.CellsY)
	}
	return fmt.Sprintf("%s/%d/%d/%d/%d", c.Dimension, c.Type, c.Domain, c.Choice, c.CellsX)
}

// Slug returns a filesystem-safe identifier, e.g. "swashes_2_t1_d1_c1_50x50".
func (c Case) Slug() string {
	dim := c.Dimension.String()
	if c.Dimension == PseudoTwoDimensional {
		dim = "1p5"
	}
	if c.Dimension == TwoDimensional {
		return fmt.Sprintf("swashes_%s_t%d_d%d_c%d_%dx%d", dim, c.Type, c.Domain, c.Choice, c.CellsX, c.CellsY)
	}
	return fmt.Sprintf("swashes_%s_t%d_d%d_c%d_%d", dim, c.Type, c.Domain, c.Choice, c.CellsX)
}

// Solver computes the analytic solution for a case.
type Solver interface {
	Solve(ctx context.Context, c Case) (*Table, error)
}
