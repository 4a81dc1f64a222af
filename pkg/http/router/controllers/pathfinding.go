package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	helper "github.com/lintang-b-s/Gridstar/pkg/http/router/routerhelper"
	"go.uber.org/zap"
)

const maxRequestBodyBytes = 4 << 20

type pathfindingAPI struct {
	pathfindingService PathfindingService
	log                *zap.Logger
}

func New(pathfindingService PathfindingService, log *zap.Logger) *pathfindingAPI {
	return &pathfindingAPI{
		pathfindingService: pathfindingService,
		log:                log,
	}
}

func (api *pathfindingAPI) Routes(group *helper.RouteGroup) {
	group.POST("/computePath", api.computePath)
	group.POST("/computePaths", api.computePaths)
}

func (api *pathfindingAPI) computePath(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request computePathRequest

	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)).Decode(&request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := validateRequest(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	solved, err := api.pathfindingService.ComputePath(r.Context(), request.Grid)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)

	if err := writeJSON(w, http.StatusOK, envelope{"data": NewComputePathResponse(solved)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

func (api *pathfindingAPI) computePaths(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request computePathsRequest

	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)).Decode(&request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := validateRequest(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	grids := make([][]string, 0, len(request.Grids))
	for _, g := range request.Grids {
		grids = append(grids, g.Grid)
	}

	solved, err := api.pathfindingService.ComputePaths(r.Context(), grids)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)

	if err := writeJSON(w, http.StatusOK, envelope{"data": NewComputePathsResponse(solved)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}
