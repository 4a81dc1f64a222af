package usecases

import (
	"context"

	da "github.com/lintang-b-s/Gridstar/pkg/datastructure"
	"github.com/lintang-b-s/Gridstar/pkg/engine"
	"github.com/lintang-b-s/Gridstar/pkg/engine/routing"
)

type PathfindingEngine interface {
	Solve(ctx context.Context, grid *da.Grid, onStep, onCell routing.StepFunc) (*engine.Solution, error)
	SolveStreaming(ctx context.Context, grid *da.Grid, buffer int,
		emit func(ev routing.StepEvent) error) (*engine.Solution, error)
	SolveBatch(ctx context.Context, grids []*da.Grid, workers int) []engine.BatchResult
}
