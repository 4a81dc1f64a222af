package controllers

import (
	"context"

	"github.com/lintang-b-s/Gridstar/pkg/engine/routing"
	"github.com/lintang-b-s/Gridstar/pkg/http/usecases"
)

type PathfindingService interface {
	ComputePath(ctx context.Context, rows []string) (*usecases.SolvedGrid, error)
	ComputePaths(ctx context.Context, grids [][]string) ([]*usecases.SolvedGrid, error)
	StreamPath(ctx context.Context, rows []string,
		emit func(ev routing.StepEvent) error) (*usecases.SolvedGrid, error)
}
