package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/pathfind/internal/geom"
	"github.com/roach88/pathfind/internal/moveset"
	"github.com/roach88/pathfind/internal/pathing"
)

func step(x, y int32, d moveset.Direction2D) pathing.PathNode[geom.Vector2i] {
	return pathing.NewPathNode(pathing.NewSpatialAction(geom.Vec2(x, y), d.Of()))
}

func root(x, y int32) pathing.PathNode[geom.Vector2i] {
	return pathing.NewPathNode(pathing.RootAction(geom.Vec2(x, y)))
}

func TestDraw(t *testing.T) {
	plane := []string{"O__", "__G"}
	path := []pathing.PathNode[geom.Vector2i]{
		root(0, 0),
		step(1, 0, moveset.Right),
		step(1, 1, moveset.Down),
		step(2, 1, moveset.Right),
	}

	assert.Equal(t, []string{"@>_", "_v%"}, Draw(plane, path))
	assert.Equal(t, []string{"O__", "__G"}, plane, "plane must not be modified")
}

func TestDraw_EmptyPath(t *testing.T) {
	plane := []string{"OX", "XG"}
	assert.Equal(t, plane, Draw(plane, nil))
}

func TestDraw_SingleNode(t *testing.T) {
	assert.Equal(t, []string{"_@_"}, Draw([]string{"___"}, []pathing.PathNode[geom.Vector2i]{root(1, 0)}))
}

func TestDraw_SkipsOutside(t *testing.T) {
	path := []pathing.PathNode[geom.Vector2i]{root(0, 0), step(-1, 0, moveset.Left), step(0, 0, moveset.Right)}
	assert.Equal(t, []string{"%"}, Draw([]string{"_"}, path))
}

func TestArrow(t *testing.T) {
	tests := []struct {
		offset geom.Vector2i
		want   rune
	}{
		{geom.Vec2(0, -1), '^'},
		{geom.Vec2(0, 1), 'v'},
		{geom.Vec2(-1, 0), '<'},
		{geom.Vec2(3, 0), '>'},
		{geom.Vec2(1, 1), '\\'},
		{geom.Vec2(-1, -1), '\\'},
		{geom.Vec2(1, -1), '/'},
		{geom.Vec2(-2, 1), '/'},
		{geom.Vec2(0, 0), '+'},
	}

	for _, tt := range tests {
		t.Run(tt.offset.String(), func(t *testing.T) {
			assert.Equal(t, string(tt.want), string(arrow(tt.offset)))
		})
	}
}
