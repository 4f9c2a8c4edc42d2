package pathing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/pathfind/internal/geom"
)

var moveRight = MoveAction[geom.Vector2i]{Name: "right", Cost: 1, Offset: geom.Vec2(1, 0)}

func TestVisited_ResolveCreatesOnce(t *testing.T) {
	v := NewVisited[geom.Vector2i]()
	root := RootAction(geom.Vec2(0, 0))
	id := NewSpatialAction(geom.Vec2(1, 0), moveRight)

	n := v.Resolve(id, root, 1000)
	assert.Equal(t, 1000.0, n.GCost)
	assert.Equal(t, 0.0, n.HCost)
	assert.True(t, n.HasParent)
	assert.Equal(t, root, n.Parent)
	assert.False(t, n.IsOpen(), "resolved nodes start closed")
	assert.Equal(t, 1, v.Len())

	n.GCost = 3
	again := v.Resolve(id, RootAction(geom.Vec2(9, 9)), 1000)
	assert.Same(t, n, again)
	assert.Equal(t, 3.0, again.GCost, "existing nodes are not reset")
	assert.Equal(t, root, again.Parent)
}

func TestVisited_IdentityIncludesMove(t *testing.T) {
	v := NewVisited[geom.Vector2i]()
	leap := MoveAction[geom.Vector2i]{Name: "leap", Cost: 3, Offset: geom.Vec2(1, 0)}
	root := RootAction(geom.Vec2(0, 0))

	a := v.Resolve(NewSpatialAction(geom.Vec2(1, 0), moveRight), root, 100)
	b := v.Resolve(NewSpatialAction(geom.Vec2(1, 0), leap), root, 100)
	c := v.Resolve(RootAction(geom.Vec2(1, 0)), root, 100)

	assert.NotSame(t, a, b)
	assert.NotSame(t, a, c)
	assert.Equal(t, 3, v.Len())
}

func TestVisited_PutGetClear(t *testing.T) {
	v := NewVisited[geom.Vector2i]()
	n := NewNode(RootAction(geom.Vec2(2, 2)), 0, 0)
	v.Put(n)

	got, ok := v.Get(RootAction(geom.Vec2(2, 2)))
	require.True(t, ok)
	assert.Same(t, n, got)

	count := 0
	v.Each(func(*Node[geom.Vector2i]) { count++ })
	assert.Equal(t, 1, count)

	v.Clear()
	assert.Equal(t, 0, v.Len())
	_, ok = v.Get(RootAction(geom.Vec2(2, 2)))
	assert.False(t, ok)
}

func TestVisited_Retrace(t *testing.T) {
	v := NewVisited[geom.Vector2i]()
	root := newRootNode(geom.Vec2(0, 0), geom.Vec2(2, 0))
	v.Put(root)

	first := v.Resolve(NewSpatialAction(geom.Vec2(1, 0), moveRight), root.Action, 100)
	second := v.Resolve(NewSpatialAction(geom.Vec2(2, 0), moveRight), first.Action, 100)

	path, err := v.Retrace(second)
	require.NoError(t, err)
	assert.Equal(t, []geom.Vector2i{geom.Vec2(0, 0), geom.Vec2(1, 0), geom.Vec2(2, 0)}, Positions(path))
	assert.True(t, path[0].Action.IsRoot())

	move, ok := path[2].Action.Edge()
	require.True(t, ok)
	assert.Equal(t, moveRight, move)
}

func TestVisited_RetraceRootOnly(t *testing.T) {
	v := NewVisited[geom.Vector2i]()
	root := newRootNode(geom.Vec2(3, 3), geom.Vec2(3, 3))
	v.Put(root)

	path, err := v.Retrace(root)
	require.NoError(t, err)
	require.Len(t, path, 1)
	assert.Equal(t, root.Action, path[0].Action)
}

func TestVisited_RetraceDanglingParent(t *testing.T) {
	v := NewVisited[geom.Vector2i]()
	orphan := v.Resolve(NewSpatialAction(geom.Vec2(1, 0), moveRight), RootAction(geom.Vec2(0, 0)), 100)

	_, err := v.Retrace(orphan)
	require.Error(t, err)
	assert.True(t, IsCorruptionError(err))
	assert.True(t, hasCode(err, ErrCodeDanglingParent))
}

func TestVisited_RetraceCycle(t *testing.T) {
	v := NewVisited[geom.Vector2i]()
	a := NewSpatialAction(geom.Vec2(1, 0), moveRight)
	b := NewSpatialAction(geom.Vec2(2, 0), moveRight)

	na := v.Resolve(a, b, 100)
	v.Resolve(b, a, 100)

	_, err := v.Retrace(na)
	require.Error(t, err)
	assert.True(t, hasCode(err, ErrCodeParentCycle))
}
