package pathing

// Visited maps every identity referenced during a calculation to its node,
// whether the node is still open or already closed.
//
// The store and the OpenSet share *Node values: the heap decides where a node
// sits, the store finds it by identity. Updating a node through either is
// visible through both.
//
// Nodes are created lazily on first reference, so the position space never
// has to be enumerated.
type Visited[P Position[P]] struct {
	nodes map[SpatialAction[P]]*Node[P]
}

// NewVisited creates an empty store.
func NewVisited[P Position[P]]() *Visited[P] {
	return &Visited[P]{nodes: make(map[SpatialAction[P]]*Node[P])}
}

// Get returns the node stored for action.
func (v *Visited[P]) Get(action SpatialAction[P]) (*Node[P], bool) {
	n, ok := v.nodes[action]
	return n, ok
}

// Put stores n under its own identity, replacing any previous node.
func (v *Visited[P]) Put(n *Node[P]) {
	v.nodes[n.Action] = n
}

// Resolve returns the node for action, creating it if it has never been seen.
// A new node starts at costInf with no heuristic, parent set to parent, and
// is Closed until the calculator inserts it.
func (v *Visited[P]) Resolve(action SpatialAction[P], parent SpatialAction[P], costInf float64) *Node[P] {
	if n, ok := v.nodes[action]; ok {
		return n
	}

	n := &Node[P]{
		GCost:     costInf,
		HCost:     0,
		Action:    action,
		Parent:    parent,
		HasParent: true,
	}
	v.nodes[action] = n
	return n
}

// Len returns the number of identities seen.
func (v *Visited[P]) Len() int {
	return len(v.nodes)
}

// Clear forgets every node.
func (v *Visited[P]) Clear() {
	clear(v.nodes)
}

// Each calls fn for every stored node in unspecified order.
func (v *Visited[P]) Each(fn func(n *Node[P])) {
	for _, n := range v.nodes {
		fn(n)
	}
}

// Retrace walks parent links from goal back to the root and returns the path
// in start-to-goal order, both ends included.
//
// A parent identity missing from the store, or a chain longer than the store
// itself (which can only happen if links form a cycle), is reported as an
// error.
func (v *Visited[P]) Retrace(goal *Node[P]) ([]PathNode[P], error) {
	path := []PathNode[P]{NewPathNode(goal.Action)}

	current := goal
	for current.HasParent {
		if len(path) > len(v.nodes)+1 {
			return nil, errParentCycle(goal.Action.String(), len(path))
		}
		parent, ok := v.nodes[current.Parent]
		if !ok {
			return nil, errDanglingParent(current.Action.String(), current.Parent.String())
		}
		path = append(path, NewPathNode(parent.Action))
		current = parent
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path, nil
}
