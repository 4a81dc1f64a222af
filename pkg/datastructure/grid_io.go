package datastructure

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dsnet/compress/bzip2"
	"github.com/lintang-b-s/Gridstar/pkg"
)

var ErrMalformedGrid = errors.New("malformed grid")

/*
textual grid format, one line per row and one rune per cell:

	.  empty      #  barrier
	S  start      E  end
	o  frontier   x  visited   *  path

blank lines are skipped. the grid must be square.
*/

// ParseGrid reads a textual grid.
func ParseGrid(r io.Reader, pixelWidth int) (*Grid, error) {
	br := bufio.NewReader(r)
	rows := make([]string, 0)
	for {
		line, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
		line = strings.TrimRight(line, " \t\r\n")
		if line != "" {
			rows = append(rows, line)
		}
		if errors.Is(err, io.EOF) {
			break
		}
	}
	return ParseRows(rows, pixelWidth)
}

// ParseRows builds a grid from one string per row.
func ParseRows(rows []string, pixelWidth int) (*Grid, error) {
	side := len(rows)
	if side == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrMalformedGrid)
	}

	g, err := NewGrid(side, pixelWidth)
	if err != nil {
		return nil, err
	}

	for row, line := range rows {
		runes := []rune(line)
		if len(runes) != side {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrMalformedGrid, row, len(runes), side)
		}
		for col, r := range runes {
			state, ok := pkg.GetCellState(r)
			if !ok {
				return nil, fmt.Errorf("%w: unknown cell %q at %v", ErrMalformedGrid, r, NewCoordinate(row, col))
			}
			g.cell(NewCoordinate(row, col)).SetState(state)
		}
	}
	return g, nil
}

// Rows textual form of the grid, one string per row.
func (g *Grid) Rows() []string {
	rows := make([]string, g.sideLength)
	var sb strings.Builder
	for row := 0; row < g.sideLength; row++ {
		sb.Reset()
		for col := 0; col < g.sideLength; col++ {
			sb.WriteRune(g.cell(NewCoordinate(row, col)).state.Rune())
		}
		rows[row] = sb.String()
	}
	return rows
}

func (g *Grid) String() string {
	return strings.Join(g.Rows(), "\n")
}

// Fingerprint identifies the editor-owned layout (barriers, start, end). search marks are ignored, so a grid
// gets the same fingerprint before and after a search.
func (g *Grid) Fingerprint() string {
	var sb strings.Builder
	sb.Grow(len(g.cells) + g.sideLength)
	for i := range g.cells {
		if i > 0 && i%g.sideLength == 0 {
			sb.WriteByte('/')
		}
		state := g.cells[i].state
		if state.IsSearchMark() {
			state = pkg.EMPTY
		}
		sb.WriteRune(state.Rune())
	}
	return sb.String()
}

func isCompressed(filename string) bool {
	return strings.HasSuffix(filename, ".bz2")
}

// WriteGrid saves the textual grid to filename, bzip2 compressed when filename ends with .bz2.
func (g *Grid) WriteGrid(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	var (
		out io.Writer = f
		bz  *bzip2.Writer
	)
	if isCompressed(filename) {
		bz, err = bzip2.NewWriter(f, &bzip2.WriterConfig{})
		if err != nil {
			return err
		}
		out = bz
	}

	w := bufio.NewWriter(out)
	for _, row := range g.Rows() {
		if _, err := fmt.Fprintln(w, row); err != nil {
			return err
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if bz != nil {
		if err := bz.Close(); err != nil {
			return err
		}
	}
	return f.Sync()
}

// ReadGrid loads a grid written by WriteGrid (or by hand).
func ReadGrid(filename string, pixelWidth int) (*Grid, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var in io.Reader = f
	if isCompressed(filename) {
		bz, err := bzip2.NewReader(f, nil)
		if err != nil {
			return nil, err
		}
		defer bz.Close()
		in = bz
	}
	return ParseGrid(in, pixelWidth)
}
