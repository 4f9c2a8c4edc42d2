// Package pathing implements the A* path calculator.
//
// The calculator finds the cheapest route between two positions for an agent
// that moves through a fixed moveset. It is generic over the coordinate type:
// any type satisfying Position can be searched, whether a 2D grid cell, a
// voxel or something more exotic.
//
// ARCHITECTURE:
//
// Node identity is a SpatialAction, the position reached plus the edge that
// reached it. The same cell entered by walking and by falling is two nodes,
// each with its own best cost and parent.
//
// The Visited store owns every Node created during a calculation, keyed by
// identity. The OpenSet is an array-backed binary heap over the same *Node
// values; each Node records its own heap slot so a cheaper route can be
// applied in place (decrease-key) instead of pushing a duplicate.
//
// Parent links are identity keys, not pointers. Retracing a path walks those
// keys back through the Visited store.
//
// Search Flow:
//  1. Root node (g=0, h=distance(start, goal)) is stored and inserted
//  2. The cheapest open node is popped; reaching the goal position ends the run
//  3. Every move is applied: tentative g = g + move cost + material cost
//  4. A neighbor improved by more than MinimumImprovement is relaxed
//     (SiftUp when already open, Insert otherwise)
//  5. The time budget is polled once per iteration
//
// OUTCOMES:
//
// "No route" and "out of time" are ordinary answers: Calculate returns an
// empty path and a nil error. Errors are reserved for broken invariants
// (heap slot corruption, dangling parents) and context cancellation.
//
// A Calculator is not safe for concurrent use. Separate calculators may run
// in parallel; nothing is shared between them except the read-only moveset.
package pathing
