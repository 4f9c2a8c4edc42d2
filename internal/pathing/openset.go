package pathing

// OpenSet is the search frontier: a binary min-heap over nodes ordered by
// FCost, stored as an implicit tree in a slice. The node at index i has its
// parent at (i-1)/2 and children at 2i+1 and 2i+2.
//
// Every node in the heap records its own index, so a node whose cost has
// dropped can be moved toward the root with SiftUp without scanning the
// slice or removing and reinserting it.
//
// Invariants at every quiescent point:
//   - heap[i].Slot() == i for every element
//   - every parent's FCost is <= both children's FCost
type OpenSet[P Position[P]] struct {
	heap []*Node[P]
}

// NewOpenSet creates an empty open set.
func NewOpenSet[P Position[P]]() *OpenSet[P] {
	return &OpenSet[P]{
		heap: make([]*Node[P], 0, 64), // Pre-allocate for typical searches
	}
}

// Insert appends n and restores heap order.
// Returns an error if n is already open.
func (s *OpenSet[P]) Insert(n *Node[P]) error {
	if idx, open := n.Slot(); open {
		return errNodeAlreadyOpen(n.Action.String(), idx)
	}

	s.heap = append(s.heap, n)
	n.setSlot(len(s.heap) - 1)
	s.up(len(s.heap) - 1)
	return nil
}

// SiftUp restores heap order after n's cost was lowered (decrease-key).
// n must currently be open; a closed node or a slot that does not hold n is
// reported as an error.
func (s *OpenSet[P]) SiftUp(n *Node[P]) error {
	idx, open := n.Slot()
	if !open {
		return errNodeClosed(n.Action.String())
	}
	if idx >= len(s.heap) || s.heap[idx] != n {
		return errSlotCorrupt(n.Action.String(), idx, len(s.heap))
	}

	s.up(idx)
	return nil
}

// Pop removes and returns the node with the lowest FCost.
// The returned node is Closed. Returns an error if the set is empty.
func (s *OpenSet[P]) Pop() (*Node[P], error) {
	if len(s.heap) == 0 {
		return nil, errEmptyOpenSet()
	}

	last := len(s.heap) - 1
	s.swap(0, last)

	n := s.heap[last]
	// Nil out the slot so the backing array does not pin the node.
	s.heap[last] = nil
	s.heap = s.heap[:last]
	n.clearSlot()

	if len(s.heap) > 0 {
		s.down(0)
	}

	return n, nil
}

// Clear empties the set. Nodes that were open become Closed.
func (s *OpenSet[P]) Clear() {
	for i, n := range s.heap {
		n.clearSlot()
		s.heap[i] = nil
	}
	s.heap = s.heap[:0]
}

// IsEmpty reports whether there is nothing left to expand.
func (s *OpenSet[P]) IsEmpty() bool {
	return len(s.heap) == 0
}

// Len returns the number of open nodes.
func (s *OpenSet[P]) Len() int {
	return len(s.heap)
}

// Get returns the node at heap index idx, or false if idx is out of range.
func (s *OpenSet[P]) Get(idx int) (*Node[P], bool) {
	if idx < 0 || idx >= len(s.heap) {
		return nil, false
	}
	return s.heap[idx], true
}

// CostOrder returns the FCost of every element in heap array order.
func (s *OpenSet[P]) CostOrder() []float64 {
	out := make([]float64, len(s.heap))
	for i, n := range s.heap {
		out[i] = n.FCost()
	}
	return out
}

// up moves the element at idx toward the root while it is strictly cheaper
// than its parent.
func (s *OpenSet[P]) up(idx int) {
	for idx > 0 {
		parent := (idx - 1) / 2
		if !(s.heap[idx].FCost() < s.heap[parent].FCost()) {
			return
		}
		s.swap(idx, parent)
		idx = parent
	}
}

// down moves the element at idx toward the leaves while its cheaper child is
// strictly cheaper than it.
func (s *OpenSet[P]) down(idx int) {
	n := len(s.heap)
	for {
		left := 2*idx + 1
		if left >= n {
			return
		}
		child := left
		if right := left + 1; right < n && s.heap[right].FCost() < s.heap[left].FCost() {
			child = right
		}
		if !(s.heap[child].FCost() < s.heap[idx].FCost()) {
			return
		}
		s.swap(idx, child)
		idx = child
	}
}

// swap exchanges two elements and keeps both slots in sync.
func (s *OpenSet[P]) swap(i, j int) {
	s.heap[i], s.heap[j] = s.heap[j], s.heap[i]
	s.heap[i].setSlot(i)
	s.heap[j].setSlot(j)
}
