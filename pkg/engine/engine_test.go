package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/lintang-b-s/Gridstar/pkg"
	da "github.com/lintang-b-s/Gridstar/pkg/datastructure"
	"github.com/lintang-b-s/Gridstar/pkg/engine/routing"
	"github.com/lintang-b-s/Gridstar/pkg/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var (
	openGrid = []string{
		"S....",
		".....",
		".....",
		".....",
		"....E",
	}
	walledGrid = []string{
		"S.#..",
		"..#..",
		"..#..",
		"..#..",
		"..#.E",
	}
	noEndGrid = []string{
		"S....",
		".....",
		".....",
		".....",
		".....",
	}
)

func parse(t *testing.T, rows []string) *da.Grid {
	t.Helper()
	g, err := da.ParseRows(rows, 800)
	require.NoError(t, err)
	return g
}

func newEngine(t *testing.T, cacheSize int) *Engine {
	t.Helper()
	e, err := NewEngine(zap.NewNop(), cacheSize)
	require.NoError(t, err)
	return e
}

func TestSolve(t *testing.T) {
	e := newEngine(t, 16)
	g := parse(t, openGrid)

	steps := 0
	cells := 0
	sol, err := e.Solve(context.Background(), g, func(ev routing.StepEvent) routing.StepSignal {
		steps++
		return routing.CONTINUE
	}, func(ev routing.StepEvent) routing.StepSignal {
		cells++
		return routing.CONTINUE
	})
	require.NoError(t, err)

	assert.Equal(t, routing.PATH_FOUND, sol.Outcome)
	assert.Equal(t, 8, sol.Length)
	assert.Len(t, sol.Path, 9)
	assert.False(t, sol.Cached)
	assert.Positive(t, steps)
	assert.Equal(t, 7, cells)
	assert.Equal(t, 7, g.CountState(pkg.PATH))

	decoded, err := geo.CellsFromPolyline(sol.Polyline)
	require.NoError(t, err)
	assert.Equal(t, sol.Path, decoded)
}

func TestSolveCache(t *testing.T) {
	e := newEngine(t, 16)
	g := parse(t, openGrid)

	first, err := e.Solve(context.Background(), g, nil, nil)
	require.NoError(t, err)
	require.False(t, first.Cached)

	steps := 0
	cells := 0
	second, err := e.Solve(context.Background(), g, func(ev routing.StepEvent) routing.StepSignal {
		steps++
		return routing.CONTINUE
	}, func(ev routing.StepEvent) routing.StepSignal {
		cells++
		return routing.CONTINUE
	})
	require.NoError(t, err)

	assert.True(t, second.Cached)
	assert.Equal(t, first.Path, second.Path)
	assert.Equal(t, first.Polyline, second.Polyline)
	assert.Equal(t, 0, steps)
	assert.Equal(t, 7, cells)
	assert.Equal(t, 7, g.CountState(pkg.PATH))
	assert.Equal(t, 0, g.CountState(pkg.VISITED))
	assert.Equal(t, 0, g.CountState(pkg.FRONTIER))

	// a different barrier layout is a different key
	require.NoError(t, g.MakeBarrier(da.NewCoordinate(2, 2)))
	third, err := e.Solve(context.Background(), g, nil, nil)
	require.NoError(t, err)
	assert.False(t, third.Cached)

	e.Purge()
	fourth, err := e.Solve(context.Background(), g, nil, nil)
	require.NoError(t, err)
	assert.False(t, fourth.Cached)
}

func TestSolveCacheOwnsPath(t *testing.T) {
	e := newEngine(t, 16)

	first, err := e.Solve(context.Background(), parse(t, openGrid), nil, nil)
	require.NoError(t, err)
	want := append([]da.Coordinate(nil), first.Path...)
	first.Path[1] = da.NewCoordinate(9, 9)

	second, err := e.Solve(context.Background(), parse(t, openGrid), nil, nil)
	require.NoError(t, err)
	require.True(t, second.Cached)
	assert.Equal(t, want, second.Path)
	second.Path[1] = da.NewCoordinate(8, 8)

	third, err := e.Solve(context.Background(), parse(t, openGrid), nil, nil)
	require.NoError(t, err)
	require.True(t, third.Cached)
	assert.Equal(t, want, third.Path)
}

func TestSolveWithoutCache(t *testing.T) {
	e := newEngine(t, 0)
	g := parse(t, openGrid)

	for i := 0; i < 2; i++ {
		sol, err := e.Solve(context.Background(), g, nil, nil)
		require.NoError(t, err)
		assert.False(t, sol.Cached)
		assert.Equal(t, 8, sol.Length)
	}
}

func TestSolveCancelledIsNotCached(t *testing.T) {
	e := newEngine(t, 16)
	g := parse(t, openGrid)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sol, err := e.Solve(ctx, g, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, routing.CANCELLED, sol.Outcome)
	assert.Empty(t, sol.Path)
	assert.Equal(t, -1, sol.Length)

	sol, err = e.Solve(context.Background(), g, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, routing.PATH_FOUND, sol.Outcome)
	assert.False(t, sol.Cached)
}

func TestSolveErrors(t *testing.T) {
	testCases := []struct {
		name string
		rows []string
	}{
		{name: "no end", rows: noEndGrid},
		{name: "two starts", rows: []string{"SS.", "...", "..E"}},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			e := newEngine(t, 16)
			sol, err := e.Solve(context.Background(), parse(t, tt.rows), nil, nil)
			assert.Nil(t, sol)
			assert.ErrorIs(t, err, da.ErrInvalidEndpoints)
		})
	}
}

func TestSolveBatch(t *testing.T) {
	e := newEngine(t, 16)
	grids := []*da.Grid{
		parse(t, openGrid),
		parse(t, walledGrid),
		parse(t, noEndGrid),
		parse(t, openGrid),
	}

	results := e.SolveBatch(context.Background(), grids, 3)
	require.Len(t, results, 4)
	for i, res := range results {
		assert.Equal(t, i, res.Index)
	}

	require.NoError(t, results[0].Err)
	assert.Equal(t, routing.PATH_FOUND, results[0].Solution.Outcome)
	assert.Equal(t, 8, results[0].Solution.Length)

	require.NoError(t, results[1].Err)
	assert.Equal(t, routing.NO_PATH, results[1].Solution.Outcome)

	assert.ErrorIs(t, results[2].Err, da.ErrInvalidEndpoints)
	assert.Nil(t, results[2].Solution)

	require.NoError(t, results[3].Err)
	assert.Equal(t, 8, results[3].Solution.Length)
	assert.Equal(t, 7, grids[3].CountState(pkg.PATH))
}

func TestSolveStreaming(t *testing.T) {
	t.Run("steps then path cells", func(t *testing.T) {
		e := newEngine(t, 16)
		g := parse(t, openGrid)

		var events []routing.StepEvent
		sol, err := e.SolveStreaming(context.Background(), g, 4, func(ev routing.StepEvent) error {
			events = append(events, ev)
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, routing.PATH_FOUND, sol.Outcome)

		pathEvents := 0
		for i, ev := range events {
			if ev.State == pkg.PATH {
				pathEvents++
				continue
			}
			assert.Zero(t, pathEvents, "search event %d after a path event", i)
		}
		assert.Equal(t, 7, pathEvents)
		assert.Equal(t, 7, g.CountState(pkg.PATH))

		cached, err := e.Solve(context.Background(), g, nil, nil)
		require.NoError(t, err)
		assert.True(t, cached.Cached)
	})

	t.Run("emit error cancels the search", func(t *testing.T) {
		e := newEngine(t, 16)
		g := parse(t, openGrid)

		errClosed := errors.New("connection closed")
		calls := 0
		sol, err := e.SolveStreaming(context.Background(), g, 1, func(ev routing.StepEvent) error {
			calls++
			return errClosed
		})
		assert.ErrorIs(t, err, errClosed)
		require.NotNil(t, sol)
		assert.Equal(t, routing.CANCELLED, sol.Outcome)
		assert.Equal(t, 1, calls)
	})

	t.Run("invalid grid", func(t *testing.T) {
		e := newEngine(t, 16)
		_, err := e.SolveStreaming(context.Background(), parse(t, noEndGrid), 4, func(ev routing.StepEvent) error {
			return nil
		})
		assert.ErrorIs(t, err, da.ErrInvalidEndpoints)
	})
}
