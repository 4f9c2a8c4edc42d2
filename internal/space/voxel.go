package space

import (
	"github.com/roach88/pathfind/internal/config"
	"github.com/roach88/pathfind/internal/geom"
)

// Material is what occupies a voxel.
type Material uint8

const (
	MaterialAir Material = iota
	MaterialNonSolid
	MaterialSolid
	MaterialDangerous
	MaterialUnknown
)

func (m Material) String() string {
	switch m {
	case MaterialAir:
		return "air"
	case MaterialNonSolid:
		return "non_solid"
	case MaterialSolid:
		return "solid"
	case MaterialDangerous:
		return "dangerous"
	default:
		return "unknown"
	}
}

// VoxelSpace is a sparse 3D world. Unset voxels inside the bounds are air;
// voxels outside the bounds are unknown and impassable.
//
// Solid voxels cost CostInf. Every other material costs its hazard
// multiplier divided by the solid multiplier, so with stock values a
// non-solid voxel costs 2.1 and a dangerous one 5. Air is free.
type VoxelSpace struct {
	voxels   map[geom.Vector3i]Material
	min, max geom.Vector3i
	hazard   config.HazardMultiplier
	costInf  float64
}

// NewVoxelSpace creates an empty (all air) space spanning min..max inclusive.
func NewVoxelSpace(min, max geom.Vector3i, cfg config.Configuration) *VoxelSpace {
	return &VoxelSpace{
		voxels:  make(map[geom.Vector3i]Material),
		min:     min,
		max:     max,
		hazard:  cfg.Hazard,
		costInf: cfg.CostInf,
	}
}

// Set places material m at pos. Positions outside the bounds are ignored.
func (s *VoxelSpace) Set(pos geom.Vector3i, m Material) {
	if !s.inBounds(pos) {
		return
	}
	if m == MaterialAir {
		delete(s.voxels, pos)
		return
	}
	s.voxels[pos] = m
}

// Fill sets every voxel in the box from..to inclusive.
func (s *VoxelSpace) Fill(from, to geom.Vector3i, m Material) {
	for x := from.X; x <= to.X; x++ {
		for y := from.Y; y <= to.Y; y++ {
			for z := from.Z; z <= to.Z; z++ {
				s.Set(geom.Vec3(x, y, z), m)
			}
		}
	}
}

// Material returns what occupies pos.
func (s *VoxelSpace) Material(pos geom.Vector3i) Material {
	if !s.inBounds(pos) {
		return MaterialUnknown
	}
	if m, ok := s.voxels[pos]; ok {
		return m
	}
	return MaterialAir
}

// MaterialCost implements pathing.Space.
// Positions outside the bounds are impassable.
func (s *VoxelSpace) MaterialCost(pos geom.Vector3i) float64 {
	if !s.inBounds(pos) {
		return s.costInf
	}
	switch m := s.Material(pos); m {
	case MaterialAir:
		return 0
	case MaterialSolid:
		return s.costInf
	default:
		return s.scaled(m)
	}
}

func (s *VoxelSpace) scaled(m Material) float64 {
	var mult uint32
	switch m {
	case MaterialNonSolid:
		mult = s.hazard.NonSolid
	case MaterialDangerous:
		mult = s.hazard.Dangerous
	default:
		mult = s.hazard.Unknown
	}
	base := s.hazard.Solid
	if base == 0 {
		base = 1
	}
	return float64(mult) / float64(base)
}

func (s *VoxelSpace) inBounds(pos geom.Vector3i) bool {
	return pos.X >= s.min.X && pos.X <= s.max.X &&
		pos.Y >= s.min.Y && pos.Y <= s.max.Y &&
		pos.Z >= s.min.Z && pos.Z <= s.max.Z
}
