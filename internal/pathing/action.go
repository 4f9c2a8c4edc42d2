package pathing

import "fmt"

// MoveAction is one legal move: the edges of the search graph.
// Movesets are built once and shared read-only across calculations.
type MoveAction[P Position[P]] struct {
	// Name labels the move for display ("right", "fall"). Part of identity.
	Name string
	// Cost is the base cost of executing the move, before material cost.
	Cost float64
	// Offset is added to the current position to find the neighbor.
	Offset P
}

// String renders the move for logs.
func (m MoveAction[P]) String() string {
	if m.Name != "" {
		return m.Name
	}
	return fmt.Sprintf("%v@%g", m.Offset, m.Cost)
}

// Moveset is the ordered list of moves available to the agent.
type Moveset[P Position[P]] []MoveAction[P]

// SpatialAction identifies a node in the search graph: the position reached
// and the move that reached it. HasMove is false only for the root.
//
// Two actions are equal only when position and move both match, so one
// position reached by two different moves is tracked as two nodes.
type SpatialAction[P Position[P]] struct {
	Pos     P
	Move    MoveAction[P]
	HasMove bool
}

// RootAction returns the identity of the start node.
func RootAction[P Position[P]](pos P) SpatialAction[P] {
	return SpatialAction[P]{Pos: pos}
}

// NewSpatialAction returns the identity of pos reached through move.
func NewSpatialAction[P Position[P]](pos P, move MoveAction[P]) SpatialAction[P] {
	return SpatialAction[P]{Pos: pos, Move: move, HasMove: true}
}

// IsRoot reports whether a is the start identity.
func (a SpatialAction[P]) IsRoot() bool {
	return !a.HasMove
}

// Edge returns the move that produced a, if any.
func (a SpatialAction[P]) Edge() (MoveAction[P], bool) {
	return a.Move, a.HasMove
}

// String renders the action for logs and error details.
func (a SpatialAction[P]) String() string {
	if !a.HasMove {
		return fmt.Sprintf("%v(root)", a.Pos)
	}
	return fmt.Sprintf("%v(%s)", a.Pos, a.Move)
}
