package datastructure

import (
	"errors"
	"fmt"

	"github.com/lintang-b-s/Gridstar/pkg"
)

var (
	ErrOutOfBounds       = errors.New("cell index out of bounds")
	ErrInvalidSideLength = errors.New("grid side length must be at least 1")
	ErrInvalidEndpoints  = errors.New("grid must contain exactly one start and one distinct end cell")
)

// neighbor offsets in the order down, up, right, left. the order decides which of several equal-cost
// paths the search returns.
var neighborOffsets = [4]Coordinate{
	{Row: 1, Col: 0},
	{Row: -1, Col: 0},
	{Row: 0, Col: 1},
	{Row: 0, Col: -1},
}

// Grid square grid of sideLength x sideLength cells, stored row-major. the grid is the only owner of its cells.
type Grid struct {
	sideLength int
	pixelWidth int
	cells      []Cell
}

func NewGrid(sideLength, pixelWidth int) (*Grid, error) {
	if sideLength < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSideLength, sideLength)
	}

	cells := make([]Cell, sideLength*sideLength)
	for row := 0; row < sideLength; row++ {
		for col := 0; col < sideLength; col++ {
			cells[row*sideLength+col] = newCell(row, col)
		}
	}

	return &Grid{
		sideLength: sideLength,
		pixelWidth: pixelWidth,
		cells:      cells,
	}, nil
}

func (g *Grid) SideLength() int {
	return g.sideLength
}

func (g *Grid) NumberOfCells() int {
	return len(g.cells)
}

func (g *Grid) PixelWidth() int {
	return g.pixelWidth
}

// Gap size in pixels of one cell for a renderer.
func (g *Grid) Gap() int {
	return g.pixelWidth / g.sideLength
}

func (g *Grid) InBounds(c Coordinate) bool {
	return c.Row >= 0 && c.Row < g.sideLength && c.Col >= 0 && c.Col < g.sideLength
}

// Id flat row-major index of c. c must be in bounds.
func (g *Grid) Id(c Coordinate) int {
	return c.Row*g.sideLength + c.Col
}

func (g *Grid) CoordinateOf(id int) Coordinate {
	return NewCoordinate(id/g.sideLength, id%g.sideLength)
}

func (g *Grid) CellAt(row, col int) (*Cell, error) {
	c := NewCoordinate(row, col)
	if !g.InBounds(c) {
		return nil, fmt.Errorf("%w: %v on a grid of side %d", ErrOutOfBounds, c, g.sideLength)
	}
	return &g.cells[g.Id(c)], nil
}

func (g *Grid) Cell(c Coordinate) (*Cell, error) {
	return g.CellAt(c.Row, c.Col)
}

// cell unchecked lookup for hot loops.
func (g *Grid) cell(c Coordinate) *Cell {
	return &g.cells[g.Id(c)]
}

func (g *Grid) State(c Coordinate) (pkg.CellState, error) {
	cell, err := g.Cell(c)
	if err != nil {
		return pkg.EMPTY, err
	}
	return cell.GetState(), nil
}

func (g *Grid) SetState(c Coordinate, state pkg.CellState) error {
	cell, err := g.Cell(c)
	if err != nil {
		return err
	}
	cell.SetState(state)
	return nil
}

// MakeStart marks c as the start cell. a previous start cell is reset to empty. the end cell cannot become the start.
func (g *Grid) MakeStart(c Coordinate) error {
	return g.moveUniqueMark(c, pkg.START, pkg.END)
}

// MakeEnd marks c as the end cell. a previous end cell is reset to empty. the start cell cannot become the end.
func (g *Grid) MakeEnd(c Coordinate) error {
	return g.moveUniqueMark(c, pkg.END, pkg.START)
}

func (g *Grid) moveUniqueMark(c Coordinate, state, other pkg.CellState) error {
	target, err := g.Cell(c)
	if err != nil {
		return err
	}
	if target.GetState() == other {
		return fmt.Errorf("%w: %v is already the %s cell", ErrInvalidEndpoints, c, other)
	}
	for i := range g.cells {
		if g.cells[i].state == state {
			g.cells[i].state = pkg.EMPTY
		}
	}
	target.SetState(state)
	return nil
}

// MakeBarrier walls c off. start and end cells are left alone.
func (g *Grid) MakeBarrier(c Coordinate) error {
	cell, err := g.Cell(c)
	if err != nil {
		return err
	}
	if state := cell.GetState(); state == pkg.START || state == pkg.END {
		return fmt.Errorf("%w: %v is the %s cell", ErrInvalidEndpoints, c, state)
	}
	cell.SetState(pkg.BARRIER)
	return nil
}

func (g *Grid) ResetCell(c Coordinate) error {
	return g.SetState(c, pkg.EMPTY)
}

// Reset sets every cell back to empty and drops all neighbor lists.
func (g *Grid) Reset() {
	for i := range g.cells {
		g.cells[i].state = pkg.EMPTY
		g.cells[i].neighbors = nil
	}
}

// ClearSearchMarks resets frontier, visited and path cells to empty. start, end and barriers stay.
func (g *Grid) ClearSearchMarks() {
	for i := range g.cells {
		if g.cells[i].state.IsSearchMark() {
			g.cells[i].state = pkg.EMPTY
		}
	}
}

// RefreshNeighbors recomputes the neighbor list of every non-barrier cell: the up to 4 orthogonally
// adjacent cells that are not barriers, in the order down, up, right, left. it must be called after
// barrier edits and before a search, neighbor lists are never refreshed implicitly.
func (g *Grid) RefreshNeighbors() {
	for i := range g.cells {
		cell := &g.cells[i]
		cell.neighbors = cell.neighbors[:0]
		if cell.IsBarrier() {
			continue
		}
		for _, off := range neighborOffsets {
			n := NewCoordinate(cell.coord.Row+off.Row, cell.coord.Col+off.Col)
			if !g.InBounds(n) || g.cell(n).IsBarrier() {
				continue
			}
			cell.neighbors = append(cell.neighbors, n)
		}
	}
}

// Neighbors of c as of the last RefreshNeighbors call.
func (g *Grid) Neighbors(c Coordinate) []Coordinate {
	if !g.InBounds(c) {
		return nil
	}
	return g.cell(c).neighbors
}

// StartCell returns the single start cell or ErrInvalidEndpoints.
func (g *Grid) StartCell() (Coordinate, error) {
	return g.uniqueCell(pkg.START)
}

// EndCell returns the single end cell or ErrInvalidEndpoints.
func (g *Grid) EndCell() (Coordinate, error) {
	return g.uniqueCell(pkg.END)
}

func (g *Grid) uniqueCell(state pkg.CellState) (Coordinate, error) {
	var (
		found Coordinate
		count int
	)
	for i := range g.cells {
		if g.cells[i].state == state {
			found = g.cells[i].coord
			count++
		}
	}
	if count != 1 {
		return Coordinate{}, fmt.Errorf("%w: found %d %s cells", ErrInvalidEndpoints, count, state)
	}
	return found, nil
}

// ForEachCell iterates cells in row-major order.
func (g *Grid) ForEachCell(handle func(cell *Cell)) {
	for i := range g.cells {
		handle(&g.cells[i])
	}
}

// CountState number of cells currently in state.
func (g *Grid) CountState(state pkg.CellState) int {
	count := 0
	for i := range g.cells {
		if g.cells[i].state == state {
			count++
		}
	}
	return count
}

// Clone deep copy, including neighbor lists.
func (g *Grid) Clone() *Grid {
	cells := make([]Cell, len(g.cells))
	for i := range g.cells {
		cells[i] = g.cells[i]
		if g.cells[i].neighbors != nil {
			cells[i].neighbors = append([]Coordinate(nil), g.cells[i].neighbors...)
		}
	}
	return &Grid{
		sideLength: g.sideLength,
		pixelWidth: g.pixelWidth,
		cells:      cells,
	}
}

// MarkSearchState writes a search mark (frontier, visited, path) on c unless c holds an editor-owned state.
// reports whether the cell changed.
func (g *Grid) MarkSearchState(c Coordinate, state pkg.CellState) bool {
	if !g.InBounds(c) {
		return false
	}
	cell := g.cell(c)
	if cell.state.IsEditorOwned() {
		return false
	}
	cell.state = state
	return true
}
