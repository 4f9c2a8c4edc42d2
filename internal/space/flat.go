// Package space provides cost oracles: what it costs to occupy a position.
package space

import (
	"fmt"
	"strings"

	"github.com/roach88/pathfind/internal/config"
	"github.com/roach88/pathfind/internal/geom"
)

// Plane cell markers.
const (
	CellStart     = 'O'
	CellGoal      = 'G'
	CellSolid     = 'X'
	CellEmpty     = '_'
	CellHazardous = '*'
)

// HazardCost is the extra cost of entering a hazardous plane cell.
const HazardCost = 5.0

// FlatSpace is a 2D space defined by a character matrix, used mostly for
// tests and the CLI. Row index is Y, column index is X.
//
//	O: start      G: goal
//	X: solid      _: empty
//	*: hazardous
//
// Start, goal and empty cells cost nothing beyond the move itself. Solid
// cells, unknown characters and anything outside the plane cost CostInf.
type FlatSpace struct {
	plane   [][]rune
	costInf float64
}

// NewFlatSpace builds a FlatSpace from rows of the plane.
func NewFlatSpace(rows []string, cfg config.Configuration) *FlatSpace {
	plane := make([][]rune, len(rows))
	for i, row := range rows {
		plane[i] = []rune(row)
	}
	return &FlatSpace{plane: plane, costInf: cfg.CostInf}
}

// ParsePlane reads a plane from text, one row per line. Blank lines and
// surrounding whitespace are ignored. All rows must have the same width.
func ParsePlane(text string) ([]string, error) {
	var rows []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		rows = append(rows, line)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("plane is empty")
	}

	width := len([]rune(rows[0]))
	for i, row := range rows {
		if w := len([]rune(row)); w != width {
			return nil, fmt.Errorf("row %d has width %d, expected %d", i, w, width)
		}
	}
	return rows, nil
}

// MaterialCost implements pathing.Space.
func (s *FlatSpace) MaterialCost(pos geom.Vector2i) float64 {
	c, ok := s.At(pos)
	if !ok {
		return s.costInf
	}

	switch c {
	case CellStart, CellGoal, CellEmpty:
		return 0
	case CellHazardous:
		return HazardCost
	default:
		return s.costInf
	}
}

// At returns the character at pos, or false if pos is outside the plane.
func (s *FlatSpace) At(pos geom.Vector2i) (rune, bool) {
	if pos.X < 0 || pos.Y < 0 || int(pos.Y) >= len(s.plane) {
		return 0, false
	}
	row := s.plane[pos.Y]
	if int(pos.X) >= len(row) {
		return 0, false
	}
	return row[pos.X], true
}

// Find returns the positions of every cell holding c, in row-major order.
func (s *FlatSpace) Find(c rune) []geom.Vector2i {
	var out []geom.Vector2i
	for y, row := range s.plane {
		for x, r := range row {
			if r == c {
				out = append(out, geom.Vec2(int32(x), int32(y)))
			}
		}
	}
	return out
}

// Rows returns a copy of the plane as strings.
func (s *FlatSpace) Rows() []string {
	out := make([]string, len(s.plane))
	for i, row := range s.plane {
		out[i] = string(row)
	}
	return out
}

// Size returns the plane's width and height.
func (s *FlatSpace) Size() (width, height int) {
	if len(s.plane) == 0 {
		return 0, 0
	}
	return len(s.plane[0]), len(s.plane)
}
