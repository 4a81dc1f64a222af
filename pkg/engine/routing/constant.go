package routing

// enum of search outcome
type Outcome uint8

const (
	PATH_FOUND Outcome = iota
	NO_PATH
	CANCELLED
)

func (o Outcome) String() string {
	switch o {
	case PATH_FOUND:
		return "path_found"
	case NO_PATH:
		return "no_path"
	case CANCELLED:
		return "cancelled"
	default:
		return "unknown"
	}
}

func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// enum returned by step callbacks
type StepSignal uint8

const (
	CONTINUE StepSignal = iota
	CANCEL
)

const (
	// insertion order of the start cell in the frontier
	START_INSERTION_ORDER uint64 = 0

	DEFAULT_STREAM_BUFFER = 64
)
