package geo

import (
	"fmt"
	"math"

	da "github.com/lintang-b-s/Gridstar/pkg/datastructure"
	"github.com/twpayne/go-polyline"
)

// PolylineFromCells encodes a cell path as a google encoded polyline of (row, col) pairs.
func PolylineFromCells(path []da.Coordinate) string {
	coords := make([][]float64, 0, len(path))
	for _, c := range path {
		coords = append(coords, []float64{float64(c.Row), float64(c.Col)})
	}
	return string(polyline.EncodeCoords(coords))
}

// CellsFromPolyline inverse of PolylineFromCells.
func CellsFromPolyline(encoded string) ([]da.Coordinate, error) {
	coords, _, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, fmt.Errorf("decode polyline: %w", err)
	}
	path := make([]da.Coordinate, 0, len(coords))
	for _, c := range coords {
		if len(c) != 2 {
			return nil, fmt.Errorf("decode polyline: expected 2 dimensions, got %d", len(c))
		}
		path = append(path, da.NewCoordinate(int(math.Round(c[0])), int(math.Round(c[1]))))
	}
	return path, nil
}
