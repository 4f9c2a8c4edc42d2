package pathing

import (
	"container/heap"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/pathfind/internal/geom"
)

func dummyNode(g, h float64) *Node[geom.Vector2i] {
	return NewNode(RootAction(geom.Vector2i{}), g, h)
}

func insertAll(t *testing.T, s *OpenSet[geom.Vector2i], costs ...float64) []*Node[geom.Vector2i] {
	t.Helper()
	nodes := make([]*Node[geom.Vector2i], len(costs))
	for i, c := range costs {
		nodes[i] = dummyNode(c, 0)
		require.NoError(t, s.Insert(nodes[i]))
	}
	return nodes
}

// requireHeapInvariants checks slot consistency and heap order.
func requireHeapInvariants(t *testing.T, s *OpenSet[geom.Vector2i]) {
	t.Helper()
	for i, n := range s.heap {
		slot, open := n.Slot()
		require.True(t, open, "element %d is not marked open", i)
		require.Equal(t, i, slot, "element %d has stale slot", i)
		for _, c := range []int{2*i + 1, 2*i + 2} {
			if c < len(s.heap) {
				require.LessOrEqual(t, n.FCost(), s.heap[c].FCost(),
					"parent %d (%v) > child %d (%v)", i, n.FCost(), c, s.heap[c].FCost())
			}
		}
	}
}

func TestOpenSet_Ordered(t *testing.T) {
	s := NewOpenSet[geom.Vector2i]()
	insertAll(t, s, 0, 1, 2)

	assert.Equal(t, []float64{0, 1, 2}, s.CostOrder())
	requireHeapInvariants(t, s)
}

func TestOpenSet_Unordered(t *testing.T) {
	s := NewOpenSet[geom.Vector2i]()
	insertAll(t, s, 1, 3, 2, 5, 0, 4)

	assert.Equal(t, []float64{0, 1, 2, 5, 3, 4}, s.CostOrder())

	lowest, err := s.Pop()
	require.NoError(t, err)
	assert.Equal(t, 0.0, lowest.FCost())
	assert.False(t, lowest.IsOpen(), "popped node must be closed")

	assert.Equal(t, []float64{1, 3, 2, 5, 4}, s.CostOrder())
	requireHeapInvariants(t, s)
}

func TestOpenSet_FCostIncludesHeuristic(t *testing.T) {
	s := NewOpenSet[geom.Vector2i]()
	a := dummyNode(1, 5) // f=6
	b := dummyNode(4, 0) // f=4
	require.NoError(t, s.Insert(a))
	require.NoError(t, s.Insert(b))

	got, err := s.Pop()
	require.NoError(t, err)
	assert.Same(t, b, got)
}

func TestOpenSet_DecreaseKeyToRoot(t *testing.T) {
	s := NewOpenSet[geom.Vector2i]()
	nodes := insertAll(t, s, 1, 3, 2, 5, 4)
	require.Equal(t, []float64{1, 3, 2, 5, 4}, s.CostOrder())

	five := nodes[3]
	slot, _ := five.Slot()
	require.Equal(t, 3, slot)

	five.GCost = 0.5
	require.NoError(t, s.SiftUp(five))

	assert.Equal(t, []float64{0.5, 1, 2, 3, 4}, s.CostOrder())
	slot, open := five.Slot()
	assert.True(t, open)
	assert.Equal(t, 0, slot)

	oldRoot, _ := nodes[0].Slot()
	assert.Equal(t, 1, oldRoot, "displaced root moves down one level")
	requireHeapInvariants(t, s)
}

func TestOpenSet_DecreaseKeyBelowSibling(t *testing.T) {
	s := NewOpenSet[geom.Vector2i]()
	nodes := insertAll(t, s, 1, 3, 2, 5, 4)

	four := nodes[4]
	four.GCost = 2.5
	require.NoError(t, s.SiftUp(four))

	assert.Equal(t, []float64{1, 2.5, 2, 5, 3}, s.CostOrder())
	slot, _ := four.Slot()
	assert.Equal(t, 1, slot, "stops below a cheaper parent")

	got, ok := s.Get(1)
	require.True(t, ok)
	assert.Same(t, four, got)
	requireHeapInvariants(t, s)
}

func TestOpenSet_SiftUpEqualCostDoesNotMove(t *testing.T) {
	s := NewOpenSet[geom.Vector2i]()
	nodes := insertAll(t, s, 1, 1)

	require.NoError(t, s.SiftUp(nodes[1]))
	slot, _ := nodes[1].Slot()
	assert.Equal(t, 1, slot, "ties do not swap")
}

func TestOpenSet_SiftUpClosedNode(t *testing.T) {
	s := NewOpenSet[geom.Vector2i]()
	n := dummyNode(1, 0)

	err := s.SiftUp(n)
	require.Error(t, err)
	assert.True(t, IsClosedNodeError(err))

	insertAll(t, s, 2)
	require.NoError(t, s.Insert(n))
	popped, err := s.Pop()
	require.NoError(t, err)
	require.Same(t, n, popped)

	err = s.SiftUp(n)
	assert.True(t, IsClosedNodeError(err), "a popped node is closed")
}

func TestOpenSet_SiftUpForeignNode(t *testing.T) {
	a := NewOpenSet[geom.Vector2i]()
	b := NewOpenSet[geom.Vector2i]()
	n := insertAll(t, a, 1)[0]

	err := b.SiftUp(n)
	require.Error(t, err)
	assert.True(t, IsCorruptionError(err))

	insertAll(t, b, 3)
	err = b.SiftUp(n)
	require.Error(t, err)
	assert.True(t, IsCorruptionError(err), "slot 0 of b holds a different node")
}

func TestOpenSet_InsertTwice(t *testing.T) {
	s := NewOpenSet[geom.Vector2i]()
	n := insertAll(t, s, 1)[0]

	err := s.Insert(n)
	require.Error(t, err)
	assert.True(t, IsCorruptionError(err))
	assert.Equal(t, 1, s.Len())
}

func TestOpenSet_PopEmpty(t *testing.T) {
	s := NewOpenSet[geom.Vector2i]()

	_, err := s.Pop()
	require.Error(t, err)
	assert.True(t, IsEmptyError(err))
	assert.Contains(t, err.Error(), string(ErrCodeEmptyOpenSet))
}

func TestOpenSet_PopSingle(t *testing.T) {
	s := NewOpenSet[geom.Vector2i]()
	n := insertAll(t, s, 7)[0]

	got, err := s.Pop()
	require.NoError(t, err)
	assert.Same(t, n, got)
	assert.True(t, s.IsEmpty())
}

func TestOpenSet_GetAndClear(t *testing.T) {
	s := NewOpenSet[geom.Vector2i]()
	nodes := insertAll(t, s, 2, 1)

	_, ok := s.Get(-1)
	assert.False(t, ok)
	_, ok = s.Get(2)
	assert.False(t, ok)

	first, ok := s.Get(0)
	require.True(t, ok)
	assert.Equal(t, 1.0, first.FCost())

	s.Clear()
	assert.True(t, s.IsEmpty())
	assert.Equal(t, 0, s.Len())
	for _, n := range nodes {
		assert.False(t, n.IsOpen(), "cleared nodes must be closed")
	}

	// Cleared nodes can be inserted again.
	require.NoError(t, s.Insert(nodes[0]))
}

// refItem and refHeap are a container/heap reference implementation.
type refItem struct {
	f   float64
	idx int
}

type refHeap []*refItem

func (h refHeap) Len() int           { return len(h) }
func (h refHeap) Less(i, j int) bool { return h[i].f < h[j].f }
func (h refHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].idx = i
	h[j].idx = j
}
func (h *refHeap) Push(x any) {
	it := x.(*refItem)
	it.idx = len(*h)
	*h = append(*h, it)
}
func (h *refHeap) Pop() any {
	old := *h
	n := len(old)
	it := old[n-1]
	*h = old[:n-1]
	return it
}

func TestOpenSet_MatchesReferenceHeap(t *testing.T) {
	for _, size := range []int{1_000, 10_000, 100_000} {
		t.Run(fmt.Sprintf("n=%d", size), func(t *testing.T) {
			rng := rand.New(rand.NewSource(int64(size)))
			s := NewOpenSet[geom.Vector2i]()
			ref := &refHeap{}

			nodes := make([]*Node[geom.Vector2i], 0, size)
			items := make([]*refItem, 0, size)

			for i := 0; i < size; i++ {
				g := rng.Float64() * 1000
				h := rng.Float64() * 100

				n := NewNode(RootAction(geom.Vec2(int32(i), 0)), g, h)
				require.NoError(t, s.Insert(n))
				nodes = append(nodes, n)

				it := &refItem{f: g + h}
				heap.Push(ref, it)
				items = append(items, it)

				// Interleave decrease-keys on random open nodes.
				if i%3 == 0 {
					j := rng.Intn(len(nodes))
					if nodes[j].IsOpen() {
						drop := rng.Float64() * nodes[j].GCost
						nodes[j].GCost -= drop
						require.NoError(t, s.SiftUp(nodes[j]))

						items[j].f -= drop
						heap.Fix(ref, items[j].idx)
					}
				}

				// Interleave pops.
				if i%7 == 0 {
					got, err := s.Pop()
					require.NoError(t, err)
					want := heap.Pop(ref).(*refItem)
					require.InDelta(t, want.f, got.FCost(), 1e-9)
				}
			}

			if size <= 10_000 {
				requireHeapInvariants(t, s)
			}
			require.Equal(t, ref.Len(), s.Len())

			prev := -1.0
			for !s.IsEmpty() {
				got, err := s.Pop()
				require.NoError(t, err)
				want := heap.Pop(ref).(*refItem)

				require.InDelta(t, want.f, got.FCost(), 1e-9)
				require.GreaterOrEqual(t, got.FCost(), prev, "pops must be non-decreasing")
				prev = got.FCost()
			}
			assert.Equal(t, 0, ref.Len())
		})
	}
}
