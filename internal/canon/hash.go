package canon

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/roach88/pathfind/internal/config"
	"github.com/roach88/pathfind/internal/geom"
	"github.com/roach88/pathfind/internal/pathing"
)

// Domain prefixes for content hashes. The version suffix allows the encoding
// to change without colliding with old hashes.
const (
	DomainQuery = "pathfind/query/v2"
	DomainPath  = "pathfind/path/v1"
)

// hashWithDomain computes SHA256(domain + 0x00 + data).
// The null byte keeps the domain/data boundary unambiguous.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// QueryHash identifies a 2D calculation by everything that determines its
// answer: the plane, the moveset, the endpoints and the configuration. Two
// queries with the same hash have the same optimal cost.
func QueryHash(plane []string, moves pathing.Moveset[geom.Vector2i], start, goal geom.Vector2i, cfg config.Configuration) (string, error) {
	obj := Object{
		"plane":  plane,
		"moves":  movesValue(moves),
		"start":  vectorValue(start),
		"goal":   vectorValue(goal),
		"config": configValue(cfg),
	}

	canonical, err := Marshal(obj)
	if err != nil {
		return "", fmt.Errorf("QueryHash: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainQuery, canonical), nil
}

// PathHash is the content hash of MarshalPath(path).
func PathHash(path []pathing.PathNode[geom.Vector2i]) (string, error) {
	canonical, err := MarshalPath(path)
	if err != nil {
		return "", fmt.Errorf("PathHash: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainPath, canonical), nil
}

// MarshalPath renders a path as canonical JSON:
//
//	[{"x":0,"y":0},{"move":"right","x":1,"y":0}]
//
// The root step has no move.
func MarshalPath(path []pathing.PathNode[geom.Vector2i]) ([]byte, error) {
	arr := make(Array, len(path))
	for i, step := range path {
		obj := vectorValue(step.Action.Pos)
		if move, ok := step.Action.Edge(); ok {
			obj["move"] = move.String()
		}
		arr[i] = obj
	}
	return Marshal(arr)
}

func vectorValue(v geom.Vector2i) Object {
	return Object{"x": v.X, "y": v.Y}
}

func movesValue(moves pathing.Moveset[geom.Vector2i]) Array {
	arr := make(Array, len(moves))
	for i, m := range moves {
		arr[i] = Object{
			"name":   m.Name,
			"cost":   Number(m.Cost),
			"offset": vectorValue(m.Offset),
		}
	}
	return arr
}

// configValue encodes cfg. The timeout is a duration string so the encoding
// has no float beyond the explicit Number.
func configValue(cfg config.Configuration) Object {
	return Object{
		"cost_inf": Number(cfg.CostInf),
		"timeout":  cfg.Timeout.String(),
		"hazard": Object{
			"unknown":   int64(cfg.Hazard.Unknown),
			"non_solid": int64(cfg.Hazard.NonSolid),
			"solid":     int64(cfg.Hazard.Solid),
			"dangerous": int64(cfg.Hazard.Dangerous),
		},
	}
}

// MustQueryHash is like QueryHash but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustQueryHash(plane []string, moves pathing.Moveset[geom.Vector2i], start, goal geom.Vector2i, cfg config.Configuration) string {
	h, err := QueryHash(plane, moves, start, goal, cfg)
	if err != nil {
		panic(err)
	}
	return h
}
