package usecases

import (
	"context"
	"errors"
	"fmt"
	"testing"

	da "github.com/lintang-b-s/Gridstar/pkg/datastructure"
	"github.com/lintang-b-s/Gridstar/pkg/engine"
	"github.com/lintang-b-s/Gridstar/pkg/engine/routing"
	"github.com/lintang-b-s/Gridstar/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newService(t *testing.T) *PathfindingService {
	t.Helper()
	eng, err := engine.NewEngine(zap.NewNop(), 8)
	require.NoError(t, err)
	return NewPathfindingService(zap.NewNop(), eng, 800, 2, 4)
}

func errorCode(t *testing.T, err error) error {
	t.Helper()
	var ierr *util.Error
	require.True(t, errors.As(err, &ierr), "%v is not a util.Error", err)
	return ierr.Code()
}

func TestComputePath(t *testing.T) {
	ps := newService(t)

	testCases := []struct {
		name       string
		rows       []string
		wantErr    error
		wantCause  error
		wantLength int
		wantRows   []string
	}{
		{
			name:       "path",
			rows:       []string{"S..", ".#.", "..E"},
			wantLength: 4,
			wantRows:   []string{"Sxx", "*#x", "**E"},
		},
		{name: "malformed", rows: []string{"S..", "..E"}, wantErr: util.ErrBadParamInput, wantCause: da.ErrMalformedGrid},
		{name: "no start", rows: []string{"...", "...", "..E"}, wantErr: util.ErrBadParamInput, wantCause: da.ErrInvalidEndpoints},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			solved, err := ps.ComputePath(context.Background(), tt.rows)
			if tt.wantErr != nil {
				assert.Equal(t, tt.wantErr, errorCode(t, err))
				assert.ErrorIs(t, err, tt.wantCause)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLength, solved.Solution.Length)
			assert.Equal(t, tt.wantRows, solved.Rows)
		})
	}
}

func TestComputePaths(t *testing.T) {
	ps := newService(t)

	solved, err := ps.ComputePaths(context.Background(), [][]string{
		{"SE", ".."},
		{"S#", "#E"},
	})
	require.NoError(t, err)
	require.Len(t, solved, 2)
	assert.Equal(t, routing.PATH_FOUND, solved[0].Solution.Outcome)
	assert.Equal(t, routing.NO_PATH, solved[1].Solution.Outcome)

	_, err = ps.ComputePaths(context.Background(), [][]string{{"SE", ".."}, {"S.", "??"}})
	assert.Equal(t, util.ErrBadParamInput, errorCode(t, err))
}

func TestWrapBatchErrorKeepsCode(t *testing.T) {
	ps := newService(t)

	testCases := []struct {
		name     string
		index    int
		err      error
		wantCode error
	}{
		{name: "invalid endpoints", index: 1, err: da.ErrInvalidEndpoints, wantCode: util.ErrBadParamInput},
		{name: "search failure", index: 3, err: errors.New("heap corrupted"), wantCode: util.ErrInternalServerError},
		{
			name:     "already coded",
			index:    0,
			err:      util.WrapErrorf(errors.New("gone"), util.ErrNotFound, "missing"),
			wantCode: util.ErrNotFound,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			err := ps.wrapBatchError(tt.index, tt.err)
			assert.Equal(t, tt.wantCode, errorCode(t, err))
			assert.ErrorIs(t, err, tt.err)
			assert.Contains(t, err.Error(), fmt.Sprintf("grid %d", tt.index))
		})
	}
}

func TestStreamPath(t *testing.T) {
	ps := newService(t)

	var states []string
	solved, err := ps.StreamPath(context.Background(), []string{"S.", ".E"}, func(ev routing.StepEvent) error {
		states = append(states, ev.State.String())
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, solved.Solution.Length)
	assert.Equal(t, []string{"start", "frontier", "frontier", "visited", "visited", "path"}, states)
}
