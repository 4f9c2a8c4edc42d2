package harness

import (
	"github.com/roach88/pathfind/internal/geom"
	"github.com/roach88/pathfind/internal/pathing"
)

// Path drawing markers.
const (
	MarkStart = '@'
	MarkGoal  = '%'
)

// Draw renders path over plane. The plane is not modified. Path nodes that
// fall outside the plane are skipped.
func Draw(plane []string, path []pathing.PathNode[geom.Vector2i]) []string {
	grid := make([][]rune, len(plane))
	for i, row := range plane {
		grid[i] = []rune(row)
	}

	for i, step := range path {
		pos := step.Action.Pos
		if pos.Y < 0 || int(pos.Y) >= len(grid) || pos.X < 0 || int(pos.X) >= len(grid[pos.Y]) {
			continue
		}

		var mark rune
		switch {
		case i == 0:
			mark = MarkStart
		case i == len(path)-1:
			mark = MarkGoal
		default:
			mark = arrow(step.Action.Move.Offset)
		}
		grid[pos.Y][pos.X] = mark
	}

	out := make([]string, len(grid))
	for i, row := range grid {
		out[i] = string(row)
	}
	return out
}

// arrow picks the glyph for a move offset. Y grows downward.
func arrow(d geom.Vector2i) rune {
	sx, sy := sign(d.X), sign(d.Y)
	switch {
	case sx == 0 && sy < 0:
		return '^'
	case sx == 0 && sy > 0:
		return 'v'
	case sy == 0 && sx < 0:
		return '<'
	case sy == 0 && sx > 0:
		return '>'
	case sx == sy && sx != 0:
		return '\\'
	case sx == -sy && sx != 0:
		return '/'
	default:
		return '+'
	}
}

func sign(v int32) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 0
	}
}
