// Package geom provides integer grid positions usable by the path calculator.
package geom

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Vector2i is a cell on a 2D grid. Y grows downward when drawn as rows.
type Vector2i struct {
	X int32 `json:"x" yaml:"x"`
	Y int32 `json:"y" yaml:"y"`
}

// Vec2 builds a Vector2i.
func Vec2(x, y int32) Vector2i {
	return Vector2i{X: x, Y: y}
}

// Add returns v + o.
func (v Vector2i) Add(o Vector2i) Vector2i {
	return Vector2i{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns the offset from o to v.
func (v Vector2i) Sub(o Vector2i) Vector2i {
	return Vector2i{X: v.X - o.X, Y: v.Y - o.Y}
}

// Distance is the Euclidean distance between v and o.
func (v Vector2i) Distance(o Vector2i) float64 {
	dx := float64(v.X - o.X)
	dy := float64(v.Y - o.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// IsZero reports whether v is the origin.
func (v Vector2i) IsZero() bool {
	return v == Vector2i{}
}

func (v Vector2i) String() string {
	return fmt.Sprintf("(%d,%d)", v.X, v.Y)
}

// Vector3i is a voxel position. Y is the vertical axis.
type Vector3i struct {
	X int32 `json:"x" yaml:"x"`
	Y int32 `json:"y" yaml:"y"`
	Z int32 `json:"z" yaml:"z"`
}

// Vec3 builds a Vector3i.
func Vec3(x, y, z int32) Vector3i {
	return Vector3i{X: x, Y: y, Z: z}
}

// Add returns v + o.
func (v Vector3i) Add(o Vector3i) Vector3i {
	return Vector3i{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Sub returns the offset from o to v.
func (v Vector3i) Sub(o Vector3i) Vector3i {
	return Vector3i{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

// Distance is the Euclidean distance between v and o.
func (v Vector3i) Distance(o Vector3i) float64 {
	dx := float64(v.X - o.X)
	dy := float64(v.Y - o.Y)
	dz := float64(v.Z - o.Z)
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// IsZero reports whether v is the origin.
func (v Vector3i) IsZero() bool {
	return v == Vector3i{}
}

func (v Vector3i) String() string {
	return fmt.Sprintf("(%d,%d,%d)", v.X, v.Y, v.Z)
}

// ParseVector2i parses "x,y".
func ParseVector2i(s string) (Vector2i, error) {
	parts, err := parseInts(s, 2)
	if err != nil {
		return Vector2i{}, err
	}
	return Vector2i{X: parts[0], Y: parts[1]}, nil
}

// ParseVector3i parses "x,y,z".
func ParseVector3i(s string) (Vector3i, error) {
	parts, err := parseInts(s, 3)
	if err != nil {
		return Vector3i{}, err
	}
	return Vector3i{X: parts[0], Y: parts[1], Z: parts[2]}, nil
}

func parseInts(s string, n int) ([]int32, error) {
	fields := strings.Split(strings.Trim(strings.TrimSpace(s), "()"), ",")
	if len(fields) != n {
		return nil, fmt.Errorf("expected %d comma-separated integers, got %q", n, s)
	}
	out := make([]int32, n)
	for i, f := range fields {
		v, err := strconv.ParseInt(strings.TrimSpace(f), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid coordinate %q: %w", f, err)
		}
		out[i] = int32(v)
	}
	return out, nil
}
