package datastructure

import (
	"fmt"

	"github.com/lintang-b-s/Gridstar/pkg"
)

// Coordinate (row, col) of a cell. cells refer to each other only through coordinates resolved by the Grid.
type Coordinate struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func NewCoordinate(row, col int) Coordinate {
	return Coordinate{Row: row, Col: col}
}

func (c Coordinate) GetRow() int {
	return c.Row
}

func (c Coordinate) GetCol() int {
	return c.Col
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

type Cell struct {
	coord     Coordinate
	state     pkg.CellState
	neighbors []Coordinate
}

func newCell(row, col int) Cell {
	return Cell{
		coord: NewCoordinate(row, col),
		state: pkg.EMPTY,
	}
}

func (c *Cell) GetCoordinate() Coordinate {
	return c.coord
}

func (c *Cell) GetRow() int {
	return c.coord.Row
}

func (c *Cell) GetCol() int {
	return c.coord.Col
}

func (c *Cell) GetState() pkg.CellState {
	return c.state
}

func (c *Cell) SetState(state pkg.CellState) {
	c.state = state
}

// GetNeighbors. traversable orthogonal neighbors as of the last Grid.RefreshNeighbors call.
func (c *Cell) GetNeighbors() []Coordinate {
	return c.neighbors
}

func (c *Cell) IsBarrier() bool {
	return c.state == pkg.BARRIER
}

func (c *Cell) IsStart() bool {
	return c.state == pkg.START
}

func (c *Cell) IsEnd() bool {
	return c.state == pkg.END
}
