package engine

import (
	"context"
	"fmt"
	"runtime"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/lintang-b-s/Gridstar/pkg"
	"github.com/lintang-b-s/Gridstar/pkg/concurrent"
	da "github.com/lintang-b-s/Gridstar/pkg/datastructure"
	"github.com/lintang-b-s/Gridstar/pkg/engine/routing"
	"github.com/lintang-b-s/Gridstar/pkg/geo"
	"github.com/lintang-b-s/Gridstar/pkg/heuristic"
	"go.uber.org/zap"
	"golang.org/x/exp/slices"
)

// Solution what a driver needs after a search: the outcome, the start -> end path and some counters.
type Solution struct {
	Outcome       routing.Outcome
	Path          []da.Coordinate
	Length        int
	ExpandedCells int
	Polyline      string
	Cached        bool
}

// Engine runs searches on grids owned by the caller: refresh neighbors, A*, path reconstruction and path
// marking. finished searches are cached by the grid fingerprint.
type Engine struct {
	logger    *zap.Logger
	heuristic heuristic.Func
	cache     *lru.Cache[string, Solution]
}

func NewEngine(logger *zap.Logger, cacheSize int) (*Engine, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Engine{
		logger:    logger,
		heuristic: heuristic.Manhattan,
	}
	if cacheSize > 0 {
		cache, err := lru.New[string, Solution](cacheSize)
		if err != nil {
			return nil, fmt.Errorf("create solution cache: %w", err)
		}
		e.cache = cache
	}
	return e, nil
}

// Solve searches from the grid's start to its end. onStep sees every frontier/visited change, onCell every
// path cell. grid search marks from an earlier run are cleared first.
func (e *Engine) Solve(ctx context.Context, grid *da.Grid, onStep, onCell routing.StepFunc) (*Solution, error) {
	start, end, err := endpoints(grid)
	if err != nil {
		return nil, err
	}
	grid.ClearSearchMarks()

	fingerprint := grid.Fingerprint()
	if sol, ok := e.cached(fingerprint); ok {
		e.logger.Debug("solution cache hit", zap.String("outcome", sol.Outcome.String()))
		replayPath(grid, sol.Path, onCell)
		return sol, nil
	}

	grid.RefreshNeighbors()
	as := routing.NewAstar(grid, e.heuristic, e.logger)
	res, err := as.FindPathContext(ctx, start, end, onStep)
	if err != nil {
		return nil, err
	}

	sol := e.finish(grid, res, onCell)
	e.store(fingerprint, sol)
	return sol, nil
}

// SolveStreaming like Solve but the search runs on its own goroutine and its events are handed to emit
// through a bounded channel. an emit error cancels the search. never served from the cache.
func (e *Engine) SolveStreaming(ctx context.Context, grid *da.Grid, buffer int,
	emit func(ev routing.StepEvent) error) (*Solution, error) {
	start, end, err := endpoints(grid)
	if err != nil {
		return nil, err
	}
	grid.ClearSearchMarks()
	grid.RefreshNeighbors()

	as := routing.NewAstar(grid, e.heuristic, e.logger)
	stream := routing.NewStream(ctx, as, start, end, buffer)

	var emitErr error
	for ev := range stream.Events() {
		if emitErr != nil {
			continue
		}
		if emitErr = emit(ev); emitErr != nil {
			e.logger.Info("stopping streamed search", zap.Error(emitErr))
			stream.Cancel()
		}
	}

	res, err := stream.Wait()
	if err != nil {
		return nil, err
	}

	sol := e.finish(grid, res, func(ev routing.StepEvent) routing.StepSignal {
		if emitErr != nil {
			return routing.CANCEL
		}
		if emitErr = emit(ev); emitErr != nil {
			return routing.CANCEL
		}
		return routing.CONTINUE
	})
	if emitErr != nil {
		return sol, emitErr
	}
	e.store(grid.Fingerprint(), sol)
	return sol, nil
}

// BatchResult solution (or error) of grids[Index].
type BatchResult struct {
	Index    int
	Solution *Solution
	Err      error
}

// SolveBatch solves independent grids concurrently. every grid must be owned by this call alone.
func (e *Engine) SolveBatch(ctx context.Context, grids []*da.Grid, workers int) []BatchResult {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	jobs := make([]int, len(grids))
	for i := range grids {
		jobs[i] = i
	}

	results := concurrent.RunAll(workers, jobs, func(i int) BatchResult {
		sol, err := e.Solve(ctx, grids[i], nil, nil)
		return BatchResult{Index: i, Solution: sol, Err: err}
	})

	ordered := make([]BatchResult, len(grids))
	for _, res := range results {
		ordered[res.Index] = res
	}
	return ordered
}

func (e *Engine) finish(grid *da.Grid, res *routing.SearchResult, onCell routing.StepFunc) *Solution {
	sol := &Solution{
		Outcome:       res.Outcome(),
		ExpandedCells: res.ExpandedCells(),
		Length:        res.PathLength(),
	}
	if res.Found() {
		sol.Path = routing.Reconstruct(res.Predecessors(), res.End(), routing.MarkPath(grid, onCell))
		sol.Polyline = geo.PolylineFromCells(sol.Path)
	}
	return sol
}

func (e *Engine) cached(fingerprint string) (*Solution, bool) {
	if e.cache == nil {
		return nil, false
	}
	sol, ok := e.cache.Get(fingerprint)
	if !ok {
		return nil, false
	}
	sol.Cached = true
	sol.Path = slices.Clone(sol.Path)
	return &sol, true
}

// store only definitive outcomes, a cancelled search says nothing about the grid. the cache owns its own
// copy of the path, callers may modify the solutions they get.
func (e *Engine) store(fingerprint string, sol *Solution) {
	if e.cache == nil || sol.Outcome == routing.CANCELLED {
		return
	}
	entry := *sol
	entry.Path = slices.Clone(sol.Path)
	e.cache.Add(fingerprint, entry)
}

func (e *Engine) Purge() {
	if e.cache != nil {
		e.cache.Purge()
	}
}

// replayPath marks a cached path on grid, reporting cells in the same order as routing.Reconstruct.
func replayPath(grid *da.Grid, path []da.Coordinate, onCell routing.StepFunc) {
	mark := routing.MarkPath(grid, onCell)
	notify := true
	for i := len(path) - 2; i >= 1 && notify; i-- {
		if mark(routing.StepEvent{Step: len(path) - 1 - i, Cell: path[i], State: pkg.PATH}) == routing.CANCEL {
			notify = false
		}
	}
}

func endpoints(grid *da.Grid) (da.Coordinate, da.Coordinate, error) {
	start, err := grid.StartCell()
	if err != nil {
		return da.Coordinate{}, da.Coordinate{}, err
	}
	end, err := grid.EndCell()
	if err != nil {
		return da.Coordinate{}, da.Coordinate{}, err
	}
	if start == end {
		return da.Coordinate{}, da.Coordinate{}, fmt.Errorf("%w: start and end are both %v", da.ErrInvalidEndpoints, start)
	}
	return start, end, nil
}
