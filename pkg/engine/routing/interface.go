package routing

import (
	"context"

	"github.com/lintang-b-s/Gridstar/pkg"
	da "github.com/lintang-b-s/Gridstar/pkg/datastructure"
)

// StepEvent one observable change: cell now has state. Step is the number of cells expanded so far
// (or, during path reconstruction, the position of the cell counted from the end).
type StepEvent struct {
	Step  int           `json:"step"`
	Cell  da.Coordinate `json:"cell"`
	State pkg.CellState `json:"state"`
}

// StepFunc observes a StepEvent. it runs inline on the search goroutine, a CANCEL is observed at the top
// of the next search iteration.
type StepFunc func(ev StepEvent) StepSignal

type Router interface {
	FindPath(start, end da.Coordinate, onStep StepFunc) (*SearchResult, error)
	FindPathContext(ctx context.Context, start, end da.Coordinate, onStep StepFunc) (*SearchResult, error)
}
