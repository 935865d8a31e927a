package game

type GameState int

const (
	InProgress GameState = iota
	Over
)

func (state GameState) String() string {
	switch state {
	case InProgress:
		return "in progress"
	case Over:
		return "over"
	default:
		return "unknown"
	}
}

const (
	boardSize = 7

	// NumCells is the number of cells in the cross
	NumCells = 33

	DefaultUndoDepth = 5
	DefaultTracking  = true
)

// Center is the only cell left empty in the initial layout
var Center = Coord{3, 3}
