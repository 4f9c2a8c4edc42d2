package space

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/pathfind/internal/config"
	"github.com/roach88/pathfind/internal/geom"
)

func TestFlatSpace_MaterialCost(t *testing.T) {
	cfg := config.Default()
	s := NewFlatSpace([]string{
		"O_*",
		"XGq",
	}, cfg)

	tests := []struct {
		name string
		pos  geom.Vector2i
		want float64
	}{
		{"start", geom.Vec2(0, 0), 0},
		{"empty", geom.Vec2(1, 0), 0},
		{"hazard", geom.Vec2(2, 0), HazardCost},
		{"solid", geom.Vec2(0, 1), cfg.CostInf},
		{"goal", geom.Vec2(1, 1), 0},
		{"unknown char", geom.Vec2(2, 1), cfg.CostInf},
		{"negative x", geom.Vec2(-1, 0), cfg.CostInf},
		{"negative y", geom.Vec2(0, -1), cfg.CostInf},
		{"past width", geom.Vec2(3, 0), cfg.CostInf},
		{"past height", geom.Vec2(0, 2), cfg.CostInf},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.MaterialCost(tt.pos))
		})
	}
}

func TestFlatSpace_Find(t *testing.T) {
	s := NewFlatSpace([]string{
		"O___G",
		"_____",
		"____O",
	}, config.Default())

	assert.Equal(t, []geom.Vector2i{geom.Vec2(0, 0), geom.Vec2(4, 2)}, s.Find(CellStart))
	assert.Equal(t, []geom.Vector2i{geom.Vec2(4, 0)}, s.Find(CellGoal))
	assert.Empty(t, s.Find(CellSolid))

	w, h := s.Size()
	assert.Equal(t, 5, w)
	assert.Equal(t, 3, h)
}

func TestParsePlane(t *testing.T) {
	rows, err := ParsePlane("\n  O_G \n\n X_X\n")
	require.NoError(t, err)
	assert.Equal(t, []string{"O_G", "X_X"}, rows)

	_, err = ParsePlane("O_G\nX_\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 1 has width 2")

	_, err = ParsePlane("   \n")
	assert.Error(t, err)
}

func TestVoxelSpace_MaterialCost(t *testing.T) {
	cfg := config.Default()
	s := NewVoxelSpace(geom.Vec3(0, 0, 0), geom.Vec3(3, 3, 3), cfg)
	s.Set(geom.Vec3(1, 0, 0), MaterialSolid)
	s.Set(geom.Vec3(2, 0, 0), MaterialNonSolid)
	s.Set(geom.Vec3(3, 0, 0), MaterialDangerous)
	s.Set(geom.Vec3(0, 1, 0), MaterialUnknown)
	s.Set(geom.Vec3(9, 9, 9), MaterialSolid) // out of bounds, ignored

	assert.Equal(t, 0.0, s.MaterialCost(geom.Vec3(0, 0, 0)))
	assert.Equal(t, cfg.CostInf, s.MaterialCost(geom.Vec3(1, 0, 0)))
	assert.InDelta(t, 2.1, s.MaterialCost(geom.Vec3(2, 0, 0)), 1e-9)
	assert.InDelta(t, 5.0, s.MaterialCost(geom.Vec3(3, 0, 0)), 1e-9)
	assert.InDelta(t, 1.0, s.MaterialCost(geom.Vec3(0, 1, 0)), 1e-9)
	assert.Equal(t, cfg.CostInf, s.MaterialCost(geom.Vec3(-1, 0, 0)))
	assert.Equal(t, MaterialUnknown, s.Material(geom.Vec3(9, 9, 9)))
}

func TestVoxelSpace_Fill(t *testing.T) {
	s := NewVoxelSpace(geom.Vec3(0, 0, 0), geom.Vec3(4, 4, 4), config.Default())
	s.Fill(geom.Vec3(0, 0, 0), geom.Vec3(4, 0, 4), MaterialSolid)

	assert.Equal(t, MaterialSolid, s.Material(geom.Vec3(2, 0, 3)))
	assert.Equal(t, MaterialAir, s.Material(geom.Vec3(2, 1, 3)))

	s.Set(geom.Vec3(2, 0, 3), MaterialAir)
	assert.Equal(t, MaterialAir, s.Material(geom.Vec3(2, 0, 3)))
}
