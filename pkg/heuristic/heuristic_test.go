package heuristic

import (
	"testing"

	da "github.com/lintang-b-s/Gridstar/pkg/datastructure"
	"github.com/stretchr/testify/assert"
)

func TestManhattan(t *testing.T) {
	testCases := []struct {
		name string
		a    da.Coordinate
		b    da.Coordinate
		want float64
	}{
		{name: "same cell", a: da.NewCoordinate(2, 2), b: da.NewCoordinate(2, 2), want: 0},
		{name: "same row", a: da.NewCoordinate(0, 0), b: da.NewCoordinate(0, 4), want: 4},
		{name: "same col", a: da.NewCoordinate(4, 1), b: da.NewCoordinate(0, 1), want: 4},
		{name: "corner to corner", a: da.NewCoordinate(0, 0), b: da.NewCoordinate(4, 4), want: 8},
		{name: "mixed signs", a: da.NewCoordinate(3, 0), b: da.NewCoordinate(0, 4), want: 7},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Manhattan(tt.a, tt.b))
			assert.Equal(t, tt.want, Manhattan(tt.b, tt.a))
			assert.Equal(t, 0.0, Zero(tt.a, tt.b))
		})
	}
}

// adjacent cells differ by exactly one in manhattan distance to any goal.
func TestManhattanConsistent(t *testing.T) {
	goal := da.NewCoordinate(3, 5)
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			a := da.NewCoordinate(row, col)
			for _, b := range []da.Coordinate{da.NewCoordinate(row+1, col), da.NewCoordinate(row, col+1)} {
				assert.LessOrEqual(t, Manhattan(a, goal), 1+Manhattan(b, goal))
				assert.LessOrEqual(t, Manhattan(b, goal), 1+Manhattan(a, goal))
			}
		}
	}
}

func TestAbs(t *testing.T) {
	assert.Equal(t, 3, Abs(-3))
	assert.Equal(t, 3, Abs(3))
	assert.Equal(t, 2.5, Abs(-2.5))
}
