package pathing

// Position is the capability a coordinate type needs to be searched.
//
// Implementations must be comparable (they key maps), closed under Add (an
// edge offset is applied with Add) and provide a symmetric, non-negative
// Distance. Distance doubles as the A* heuristic, so it must never
// overestimate the true remaining cost for results to be optimal. The
// calculator does not check this.
type Position[P any] interface {
	comparable
	Add(other P) P
	Distance(other P) float64
}

// Space answers what it costs to occupy a position.
//
// MaterialCost must be non-negative. Impassable positions report the
// configured effective-infinite cost. Implementations are called from the
// hot loop and should be cheap and free of I/O.
type Space[P any] interface {
	MaterialCost(pos P) float64
}

// SpaceFunc adapts a plain function to the Space interface.
type SpaceFunc[P any] func(pos P) float64

// MaterialCost calls f(pos).
func (f SpaceFunc[P]) MaterialCost(pos P) float64 {
	return f(pos)
}
