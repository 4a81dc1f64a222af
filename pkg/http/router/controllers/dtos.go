package controllers

import (
	da "github.com/lintang-b-s/Gridstar/pkg/datastructure"
	"github.com/lintang-b-s/Gridstar/pkg/engine/routing"
	"github.com/lintang-b-s/Gridstar/pkg/http/usecases"
)

type computePathRequest struct {
	Grid []string `json:"grid" validate:"required,min=1,max=512,dive,required,max=512"`
}

type computePathsRequest struct {
	Grids []computePathRequest `json:"grids" validate:"required,min=1,max=64,dive"`
}

type computePathResponse struct {
	Outcome       routing.Outcome `json:"outcome"`
	Path          []da.Coordinate `json:"path"`
	Length        int             `json:"length"`
	ExpandedCells int             `json:"expanded_cells"`
	Polyline      string          `json:"polyline"`
	Cached        bool            `json:"cached"`
	Grid          []string        `json:"grid"`
}

func NewComputePathResponse(solved *usecases.SolvedGrid) computePathResponse {
	sol := solved.Solution
	path := sol.Path
	if path == nil {
		path = []da.Coordinate{}
	}
	return computePathResponse{
		Outcome:       sol.Outcome,
		Path:          path,
		Length:        sol.Length,
		ExpandedCells: sol.ExpandedCells,
		Polyline:      sol.Polyline,
		Cached:        sol.Cached,
		Grid:          solved.Rows,
	}
}

func NewComputePathsResponse(solved []*usecases.SolvedGrid) []computePathResponse {
	resp := make([]computePathResponse, 0, len(solved))
	for _, s := range solved {
		resp = append(resp, NewComputePathResponse(s))
	}
	return resp
}

type stepResponse struct {
	Step  int    `json:"step"`
	Row   int    `json:"row"`
	Col   int    `json:"col"`
	State string `json:"state"`
}

func NewStepResponse(ev routing.StepEvent) stepResponse {
	return stepResponse{
		Step:  ev.Step,
		Row:   ev.Cell.Row,
		Col:   ev.Cell.Col,
		State: ev.State.String(),
	}
}
