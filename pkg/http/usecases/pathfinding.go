package usecases

import (
	"context"
	"errors"

	da "github.com/lintang-b-s/Gridstar/pkg/datastructure"
	"github.com/lintang-b-s/Gridstar/pkg/engine"
	"github.com/lintang-b-s/Gridstar/pkg/engine/routing"
	"github.com/lintang-b-s/Gridstar/pkg/util"
	"go.uber.org/zap"
)

// SolvedGrid solution plus the grid rows after the search (frontier, visited and path marks included).
type SolvedGrid struct {
	Solution *engine.Solution
	Rows     []string
}

type PathfindingService struct {
	log          *zap.Logger
	engine       PathfindingEngine
	pixelWidth   int
	batchWorkers int
	streamBuffer int
}

func NewPathfindingService(log *zap.Logger, engine PathfindingEngine, pixelWidth, batchWorkers,
	streamBuffer int) *PathfindingService {
	return &PathfindingService{
		log:          log,
		engine:       engine,
		pixelWidth:   pixelWidth,
		batchWorkers: batchWorkers,
		streamBuffer: streamBuffer,
	}
}

func (ps *PathfindingService) ComputePath(ctx context.Context, rows []string) (*SolvedGrid, error) {
	grid, err := ps.parse(rows)
	if err != nil {
		return nil, err
	}

	sol, err := ps.engine.Solve(ctx, grid, nil, nil)
	if err != nil {
		return nil, ps.wrapSearchError(err)
	}
	return &SolvedGrid{Solution: sol, Rows: grid.Rows()}, nil
}

// ComputePaths solves many grids at once. the first invalid grid fails the whole request.
func (ps *PathfindingService) ComputePaths(ctx context.Context, grids [][]string) ([]*SolvedGrid, error) {
	parsed := make([]*da.Grid, 0, len(grids))
	for i, rows := range grids {
		grid, err := ps.parse(rows)
		if err != nil {
			return nil, util.WrapErrorf(err, util.ErrBadParamInput, "grid %d is invalid", i)
		}
		parsed = append(parsed, grid)
	}

	results := ps.engine.SolveBatch(ctx, parsed, ps.batchWorkers)
	solved := make([]*SolvedGrid, len(results))
	for _, res := range results {
		if res.Err != nil {
			return nil, ps.wrapBatchError(res.Index, res.Err)
		}
		solved[res.Index] = &SolvedGrid{Solution: res.Solution, Rows: parsed[res.Index].Rows()}
	}
	return solved, nil
}

// StreamPath solves rows and reports every search and path step to emit as it happens.
func (ps *PathfindingService) StreamPath(ctx context.Context, rows []string,
	emit func(ev routing.StepEvent) error) (*SolvedGrid, error) {
	grid, err := ps.parse(rows)
	if err != nil {
		return nil, err
	}

	sol, err := ps.engine.SolveStreaming(ctx, grid, ps.streamBuffer, emit)
	if err != nil {
		return nil, ps.wrapSearchError(err)
	}
	return &SolvedGrid{Solution: sol, Rows: grid.Rows()}, nil
}

func (ps *PathfindingService) parse(rows []string) (*da.Grid, error) {
	grid, err := da.ParseRows(rows, ps.pixelWidth)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrBadParamInput, "invalid grid")
	}
	return grid, nil
}

// wrapBatchError names the failing grid and keeps the code wrapSearchError picked for err.
func (ps *PathfindingService) wrapBatchError(index int, err error) error {
	coded := ps.wrapSearchError(err)
	var ierr *util.Error
	if !errors.As(coded, &ierr) {
		return coded
	}
	return util.WrapErrorf(coded, ierr.Code(), "grid %d", index)
}

func (ps *PathfindingService) wrapSearchError(err error) error {
	if errors.Is(err, da.ErrInvalidEndpoints) || errors.Is(err, da.ErrOutOfBounds) {
		return util.WrapErrorf(err, util.ErrBadParamInput, "invalid start/end cells")
	}
	var wrapped *util.Error
	if errors.As(err, &wrapped) {
		return err
	}
	ps.log.Error("search failed", zap.Error(err))
	return util.WrapErrorf(err, util.ErrInternalServerError, util.MessageInternalServerError)
}
