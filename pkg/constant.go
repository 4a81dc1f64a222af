package pkg

// enum of cell_state
type CellState uint8

const (
	EMPTY CellState = iota
	BARRIER
	START
	END
	FRONTIER
	VISITED
	PATH
)

const (
	INF_WEIGHT float64 = 1e15

	// every orthogonal move costs the same
	UNIT_EDGE_WEIGHT float64 = 1.0
)

// rune used by the textual grid format for each cell_state
const (
	EMPTY_RUNE    = '.'
	BARRIER_RUNE  = '#'
	START_RUNE    = 'S'
	END_RUNE      = 'E'
	FRONTIER_RUNE = 'o'
	VISITED_RUNE  = 'x'
	PATH_RUNE     = '*'
)

func (s CellState) String() string {
	switch s {
	case EMPTY:
		return "empty"
	case BARRIER:
		return "barrier"
	case START:
		return "start"
	case END:
		return "end"
	case FRONTIER:
		return "frontier"
	case VISITED:
		return "visited"
	case PATH:
		return "path"
	default:
		return "unknown"
	}
}

func (s CellState) Rune() rune {
	switch s {
	case BARRIER:
		return BARRIER_RUNE
	case START:
		return START_RUNE
	case END:
		return END_RUNE
	case FRONTIER:
		return FRONTIER_RUNE
	case VISITED:
		return VISITED_RUNE
	case PATH:
		return PATH_RUNE
	default:
		return EMPTY_RUNE
	}
}

func GetCellState(r rune) (CellState, bool) {
	switch r {
	case EMPTY_RUNE:
		return EMPTY, true
	case BARRIER_RUNE:
		return BARRIER, true
	case START_RUNE:
		return START, true
	case END_RUNE:
		return END, true
	case FRONTIER_RUNE:
		return FRONTIER, true
	case VISITED_RUNE:
		return VISITED, true
	case PATH_RUNE:
		return PATH, true
	default:
		return EMPTY, false
	}
}

// IsEditorOwned. start, end and barrier marks belong to the grid editor; the search never overwrites them.
func (s CellState) IsEditorOwned() bool {
	return s == START || s == END || s == BARRIER
}

// IsSearchMark. marks written by the search engine / path reconstructor.
func (s CellState) IsSearchMark() bool {
	return s == FRONTIER || s == VISITED || s == PATH
}

func (s CellState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
