package routing

import (
	"github.com/lintang-b-s/Gridstar/pkg"
	da "github.com/lintang-b-s/Gridstar/pkg/datastructure"
	"github.com/lintang-b-s/Gridstar/pkg/util"
)

// Reconstruct walks predecessors back from end until a cell without a predecessor (the start) and returns
// the path in start -> end order, both endpoints included. onCell, if set, is called with state PATH for every
// intermediate cell in walking order (next to end first); start and end are never reported. a CANCEL from
// onCell stops further notifications, the returned path is always complete.
// the same predecessor map always yields the same path.
func Reconstruct(predecessors map[da.Coordinate]da.Coordinate, end da.Coordinate, onCell StepFunc) []da.Coordinate {
	path := []da.Coordinate{end}
	notify := onCell != nil

	current := end
	// a predecessor tree has at most len(predecessors) edges
	for i := 0; i < len(predecessors); i++ {
		prev, ok := predecessors[current]
		if !ok {
			break
		}
		path = append(path, prev)
		current = prev

		if _, intermediate := predecessors[current]; intermediate && notify {
			if onCell(StepEvent{Step: len(path) - 1, Cell: current, State: pkg.PATH}) == CANCEL {
				notify = false
			}
		}
	}

	return util.ReverseG(path)
}

// MarkPath onCell callback that marks reconstructed cells as PATH on grid, then forwards the event to next.
func MarkPath(grid *da.Grid, next StepFunc) StepFunc {
	return func(ev StepEvent) StepSignal {
		grid.MarkSearchState(ev.Cell, pkg.PATH)
		if next != nil {
			return next(ev)
		}
		return CONTINUE
	}
}
