// Package heuristic holds the remaining-cost estimates used by the grid search.
//
// An estimate must never exceed the true shortest-path cost between the two cells (admissible), and
// must satisfy estimate(a,c) <= 1 + estimate(b,c) for adjacent a,b (consistent). Both hold for
// Manhattan distance on a 4-connected grid with unit moves.
package heuristic

import (
	da "github.com/lintang-b-s/Gridstar/pkg/datastructure"
	"golang.org/x/exp/constraints"
)

// Func estimates the remaining cost from a to b.
type Func func(a, b da.Coordinate) float64

// Manhattan L1 distance, the exact cost on an obstacle-free 4-connected grid.
func Manhattan(a, b da.Coordinate) float64 {
	return float64(Abs(a.Row-b.Row) + Abs(a.Col-b.Col))
}

// Zero turns A* into Dijkstra.
func Zero(a, b da.Coordinate) float64 {
	return 0
}

func Abs[T constraints.Signed | constraints.Float](a T) T {
	if a < 0 {
		return -a
	}
	return a
}
