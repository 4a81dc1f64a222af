package geo

import (
	"testing"

	da "github.com/lintang-b-s/Gridstar/pkg/datastructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolylineFromCells(t *testing.T) {
	testCases := []struct {
		name string
		path []da.Coordinate
	}{
		{name: "single cell", path: []da.Coordinate{da.NewCoordinate(3, 4)}},
		{name: "straight line", path: []da.Coordinate{da.NewCoordinate(0, 0), da.NewCoordinate(0, 1), da.NewCoordinate(0, 2)}},
		{
			name: "turns",
			path: []da.Coordinate{
				da.NewCoordinate(0, 0), da.NewCoordinate(1, 0), da.NewCoordinate(1, 1),
				da.NewCoordinate(0, 1), da.NewCoordinate(0, 2), da.NewCoordinate(1, 2),
			},
		},
		{name: "large grid", path: []da.Coordinate{da.NewCoordinate(499, 511), da.NewCoordinate(500, 511)}},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			encoded := PolylineFromCells(tt.path)
			assert.NotEmpty(t, encoded)

			decoded, err := CellsFromPolyline(encoded)
			require.NoError(t, err)
			assert.Equal(t, tt.path, decoded)
		})
	}
}

func TestCellsFromPolylineMalformed(t *testing.T) {
	_, err := CellsFromPolyline("_")
	assert.Error(t, err)
}
