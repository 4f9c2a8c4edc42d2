package pathing

// Node is the per-identity bookkeeping of a search.
//
// A Node is either Open (it occupies a heap slot) or Closed (no slot; its
// cost is still the best known for its identity). Cost fields may only be
// changed by the calculator immediately before resubmitting the node through
// OpenSet.Insert or OpenSet.SiftUp.
type Node[P Position[P]] struct {
	// GCost is the accumulated cost from the start.
	GCost float64
	// HCost is the heuristic estimate to the goal.
	HCost float64
	// Action is the node's identity.
	Action SpatialAction[P]
	// Parent is the identity this node was reached from.
	// Only meaningful when HasParent is true.
	Parent    SpatialAction[P]
	HasParent bool

	// slot is the heap index plus one, so the zero Node is Closed.
	slot int
}

// newRootNode builds the start node of a calculation.
func newRootNode[P Position[P]](start, goal P) *Node[P] {
	return &Node[P]{
		GCost:  0,
		HCost:  start.Distance(goal),
		Action: RootAction(start),
	}
}

// NewNode returns a closed node with the given identity and costs.
// Useful for tests and for seeding an OpenSet directly.
func NewNode[P Position[P]](action SpatialAction[P], gCost, hCost float64) *Node[P] {
	return &Node[P]{GCost: gCost, HCost: hCost, Action: action}
}

// FCost is the heap key: accumulated plus estimated cost.
func (n *Node[P]) FCost() float64 {
	return n.GCost + n.HCost
}

// Slot returns the node's index in the open set, or false if it is Closed.
func (n *Node[P]) Slot() (int, bool) {
	if n.slot == 0 {
		return 0, false
	}
	return n.slot - 1, true
}

// IsOpen reports whether the node currently sits in the open set.
func (n *Node[P]) IsOpen() bool {
	return n.slot != 0
}

func (n *Node[P]) setSlot(idx int) {
	n.slot = idx + 1
}

func (n *Node[P]) clearSlot() {
	n.slot = 0
}

// SetParent records the identity this node is reached from.
func (n *Node[P]) SetParent(parent SpatialAction[P]) {
	n.Parent = parent
	n.HasParent = true
}

// PathNode is one step of a returned path. It keeps where the agent goes and
// by which move, without the cost bookkeeping.
type PathNode[P Position[P]] struct {
	Action SpatialAction[P]
}

// NewPathNode wraps an identity as a path element.
func NewPathNode[P Position[P]](action SpatialAction[P]) PathNode[P] {
	return PathNode[P]{Action: action}
}

// Positions extracts the positions of a path in order.
func Positions[P Position[P]](path []PathNode[P]) []P {
	out := make([]P, len(path))
	for i, pn := range path {
		out[i] = pn.Action.Pos
	}
	return out
}
