package routing

import (
	"context"
	"fmt"

	"github.com/lintang-b-s/Gridstar/pkg"
	da "github.com/lintang-b-s/Gridstar/pkg/datastructure"
	"github.com/lintang-b-s/Gridstar/pkg/heuristic"
	"github.com/lintang-b-s/Gridstar/pkg/util"
	"go.uber.org/zap"
)

// Astar A* over a grid with unit-cost orthogonal moves. the frontier is ordered by (f, insertion order):
// among equal f the cell inserted first is expanded first. a frontier entry is never re-prioritized, a cheaper
// route found while the cell waits in the frontier only updates its g, f and predecessor.
//
// the grid must not be used by anyone else during a search, and its neighbor lists must be refreshed
// before calling FindPath.
type Astar struct {
	grid      *da.Grid
	heuristic heuristic.Func
	logger    *zap.Logger

	pq *da.MinHeap[da.Coordinate]
}

func NewAstar(grid *da.Grid, h heuristic.Func, logger *zap.Logger) *Astar {
	if h == nil {
		h = heuristic.Manhattan
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	pq := da.NewFourAryHeap[da.Coordinate]()
	pq.Preallocate(grid.NumberOfCells())
	return &Astar{
		grid:      grid,
		heuristic: h,
		logger:    logger,
		pq:        pq,
	}
}

func (as *Astar) FindPath(start, end da.Coordinate, onStep StepFunc) (*SearchResult, error) {
	return as.FindPathContext(context.Background(), start, end, onStep)
}

// FindPathContext runs the search to completion. NO_PATH and CANCELLED are results, not errors. a
// cancellation, either a CANCEL from onStep or ctx being done, is polled at the top of every iteration.
func (as *Astar) FindPathContext(ctx context.Context, start, end da.Coordinate, onStep StepFunc) (*SearchResult, error) {
	if err := as.validateEndpoints(start, end); err != nil {
		return nil, err
	}

	state := newSearchState(as.grid.NumberOfCells())
	as.pq.Clear()

	state.gScore[start] = 0
	state.fScore[start] = as.heuristic(start, end)
	startNode := da.NewPriorityQueueNode(state.fScore[start], START_INSERTION_ORDER, start)
	as.pq.Insert(startNode)
	state.frontierMembership[start] = struct{}{}

	cancelRequested := false
	emit := func(ev StepEvent) {
		if onStep == nil {
			return
		}
		if onStep(ev) == CANCEL {
			cancelRequested = true
		}
	}

	for !as.pq.IsEmpty() {
		if cancelRequested || util.StopConcurrentOperation(ctx) {
			as.logger.Debug("search cancelled",
				zap.String("start", start.String()), zap.String("end", end.String()),
				zap.Int("expanded_cells", len(state.popOrder)))
			return newSearchResult(CANCELLED, start, end, state), nil
		}

		queryKey, _ := as.pq.ExtractMin()
		current := queryKey.GetItem()
		delete(state.frontierMembership, current)

		if current == end {
			as.logger.Debug("path found",
				zap.String("start", start.String()), zap.String("end", end.String()),
				zap.Float64("length", state.getGScore(end)),
				zap.Int("expanded_cells", len(state.popOrder)))
			return newSearchResult(PATH_FOUND, start, end, state), nil
		}

		state.expand(current)
		step := len(state.popOrder)
		if current != start {
			as.grid.MarkSearchState(current, pkg.VISITED)
		}
		currentState, _ := as.grid.State(current)
		emit(StepEvent{Step: step, Cell: current, State: currentState})

		currentG := state.getGScore(current)
		for _, neighbor := range as.grid.Neighbors(current) {
			tentativeG := currentG + pkg.UNIT_EDGE_WEIGHT
			if tentativeG >= state.getGScore(neighbor) {
				continue
			}

			// better path to neighbor
			state.predecessor[neighbor] = current
			state.gScore[neighbor] = tentativeG
			f := tentativeG + as.heuristic(neighbor, end)
			state.fScore[neighbor] = f

			// a cell already in the frontier keeps the priority it was pushed with
			if _, inFrontier := state.frontierMembership[neighbor]; inFrontier {
				continue
			}

			nbNode := da.NewPriorityQueueNode(f, state.nextInsertionOrder(), neighbor)
			as.pq.Insert(nbNode)
			state.frontierMembership[neighbor] = struct{}{}
			if as.grid.MarkSearchState(neighbor, pkg.FRONTIER) {
				emit(StepEvent{Step: step, Cell: neighbor, State: pkg.FRONTIER})
			}
		}
	}

	as.logger.Debug("no path",
		zap.String("start", start.String()), zap.String("end", end.String()),
		zap.Int("expanded_cells", len(state.popOrder)))
	return newSearchResult(NO_PATH, start, end, state), nil
}

// validateEndpoints start and end must be distinct in-bounds cells holding the grid's only start and end marks.
func (as *Astar) validateEndpoints(start, end da.Coordinate) error {
	if !as.grid.InBounds(start) || !as.grid.InBounds(end) {
		return fmt.Errorf("%w: start %v or end %v outside the grid: %w", da.ErrInvalidEndpoints, start, end,
			da.ErrOutOfBounds)
	}
	if start == end {
		return fmt.Errorf("%w: start and end are both %v", da.ErrInvalidEndpoints, start)
	}

	gridStart, err := as.grid.StartCell()
	if err != nil {
		return err
	}
	gridEnd, err := as.grid.EndCell()
	if err != nil {
		return err
	}
	if gridStart != start || gridEnd != end {
		return fmt.Errorf("%w: grid marks start %v and end %v, query asks for %v -> %v", da.ErrInvalidEndpoints,
			gridStart, gridEnd, start, end)
	}
	return nil
}
