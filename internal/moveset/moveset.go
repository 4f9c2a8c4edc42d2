// Package moveset provides stock movesets and loads custom ones from CUE.
package moveset

import (
	"fmt"
	"math"

	"github.com/roach88/pathfind/internal/geom"
	"github.com/roach88/pathfind/internal/pathing"
)

// Direction2D names the four cardinal moves on a 2D plane.
type Direction2D int

const (
	Up Direction2D = iota
	Down
	Left
	Right
)

func (d Direction2D) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// Offset returns the unit step of d. Rows grow downward, so Up is -Y.
func (d Direction2D) Offset() geom.Vector2i {
	switch d {
	case Up:
		return geom.Vec2(0, -1)
	case Down:
		return geom.Vec2(0, 1)
	case Left:
		return geom.Vec2(-1, 0)
	case Right:
		return geom.Vec2(1, 0)
	default:
		return geom.Vector2i{}
	}
}

// Of returns the unit-cost MoveAction for d, as used by Cardinal2D.
func (d Direction2D) Of() pathing.MoveAction[geom.Vector2i] {
	return pathing.MoveAction[geom.Vector2i]{Name: d.String(), Cost: 1, Offset: d.Offset()}
}

// Cardinal2D is the 4-directional unit-cost moveset.
func Cardinal2D() pathing.Moveset[geom.Vector2i] {
	return pathing.Moveset[geom.Vector2i]{Up.Of(), Down.Of(), Left.Of(), Right.Of()}
}

// Octile2D is Cardinal2D plus diagonal moves costing √2.
func Octile2D() pathing.Moveset[geom.Vector2i] {
	diag := math.Sqrt2
	return append(Cardinal2D(),
		pathing.MoveAction[geom.Vector2i]{Name: "up-left", Cost: diag, Offset: geom.Vec2(-1, -1)},
		pathing.MoveAction[geom.Vector2i]{Name: "up-right", Cost: diag, Offset: geom.Vec2(1, -1)},
		pathing.MoveAction[geom.Vector2i]{Name: "down-left", Cost: diag, Offset: geom.Vec2(-1, 1)},
		pathing.MoveAction[geom.Vector2i]{Name: "down-right", Cost: diag, Offset: geom.Vec2(1, 1)},
	)
}

// Voxel3D is the default 3D moveset: walk in the four horizontal directions,
// climb one voxel up at double cost, or drop one voxel down.
func Voxel3D() pathing.Moveset[geom.Vector3i] {
	return pathing.Moveset[geom.Vector3i]{
		{Name: "north", Cost: 1, Offset: geom.Vec3(0, 0, -1)},
		{Name: "south", Cost: 1, Offset: geom.Vec3(0, 0, 1)},
		{Name: "west", Cost: 1, Offset: geom.Vec3(-1, 0, 0)},
		{Name: "east", Cost: 1, Offset: geom.Vec3(1, 0, 0)},
		{Name: "climb", Cost: 2, Offset: geom.Vec3(0, 1, 0)},
		{Name: "fall", Cost: 1, Offset: geom.Vec3(0, -1, 0)},
	}
}

// Named2D returns a stock 2D moveset by name.
func Named2D(name string) (pathing.Moveset[geom.Vector2i], error) {
	switch name {
	case "", "cardinal":
		return Cardinal2D(), nil
	case "octile":
		return Octile2D(), nil
	default:
		return nil, fmt.Errorf("unknown moveset %q: must be cardinal or octile", name)
	}
}
