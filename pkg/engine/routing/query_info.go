package routing

import (
	"github.com/lintang-b-s/Gridstar/pkg"
	da "github.com/lintang-b-s/Gridstar/pkg/datastructure"
)

// searchState per-query A* bookkeeping. a cell is in frontierMembership iff it has a heap entry that has
// not been popped yet.
type searchState struct {
	gScore             map[da.Coordinate]float64
	fScore             map[da.Coordinate]float64
	predecessor        map[da.Coordinate]da.Coordinate
	frontierMembership map[da.Coordinate]struct{}

	// g at the moment a cell was popped and expanded
	expandedG map[da.Coordinate]float64
	popOrder  []da.Coordinate

	insertionCounter uint64
}

func newSearchState(sizeHint int) *searchState {
	return &searchState{
		gScore:             make(map[da.Coordinate]float64, sizeHint),
		fScore:             make(map[da.Coordinate]float64, sizeHint),
		predecessor:        make(map[da.Coordinate]da.Coordinate, sizeHint),
		frontierMembership: make(map[da.Coordinate]struct{}),
		expandedG:          make(map[da.Coordinate]float64, sizeHint),
		popOrder:           make([]da.Coordinate, 0, sizeHint),
	}
}

func (s *searchState) getGScore(c da.Coordinate) float64 {
	g, ok := s.gScore[c]
	if !ok {
		return pkg.INF_WEIGHT
	}
	return g
}

func (s *searchState) getFScore(c da.Coordinate) float64 {
	f, ok := s.fScore[c]
	if !ok {
		return pkg.INF_WEIGHT
	}
	return f
}

func (s *searchState) nextInsertionOrder() uint64 {
	s.insertionCounter++
	return s.insertionCounter
}

func (s *searchState) expand(c da.Coordinate) {
	s.expandedG[c] = s.getGScore(c)
	s.popOrder = append(s.popOrder, c)
}

// SearchResult outcome of one FindPath call. the score maps are kept for every outcome, including CANCELLED.
type SearchResult struct {
	outcome Outcome
	start   da.Coordinate
	end     da.Coordinate
	state   *searchState
}

func newSearchResult(outcome Outcome, start, end da.Coordinate, state *searchState) *SearchResult {
	return &SearchResult{outcome: outcome, start: start, end: end, state: state}
}

func (r *SearchResult) Outcome() Outcome {
	return r.outcome
}

func (r *SearchResult) Found() bool {
	return r.outcome == PATH_FOUND
}

func (r *SearchResult) Start() da.Coordinate {
	return r.start
}

func (r *SearchResult) End() da.Coordinate {
	return r.end
}

// Predecessors best known previous cell of every improved cell. callers must not modify it.
func (r *SearchResult) Predecessors() map[da.Coordinate]da.Coordinate {
	return r.state.predecessor
}

// GScore cost of the best known path from start to c, pkg.INF_WEIGHT if c was never reached.
func (r *SearchResult) GScore(c da.Coordinate) float64 {
	return r.state.getGScore(c)
}

func (r *SearchResult) FScore(c da.Coordinate) float64 {
	return r.state.getFScore(c)
}

// ExpandedGScore g of c when it was popped from the frontier.
func (r *SearchResult) ExpandedGScore(c da.Coordinate) (float64, bool) {
	g, ok := r.state.expandedG[c]
	return g, ok
}

// PopOrder cells in the order they were expanded. the goal is not included.
func (r *SearchResult) PopOrder() []da.Coordinate {
	return r.state.popOrder
}

func (r *SearchResult) ExpandedCells() int {
	return len(r.state.popOrder)
}

// PathLength number of moves from start to end, -1 unless a path was found.
func (r *SearchResult) PathLength() int {
	if r.outcome != PATH_FOUND {
		return -1
	}
	return int(r.state.getGScore(r.end))
}
