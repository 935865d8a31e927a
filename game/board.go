package game

type Board struct {
	cells [NumCells]bool

	events *dispatcher
}

// NewBoard returns a board in the initial layout that emits no events.
func NewBoard() *Board {
	board := &Board{}
	board.reset()
	return board
}

func newBoard(events *dispatcher) *Board {
	board := &Board{events: events}
	board.reset()
	return board
}

func (board *Board) Occupied(coord Coord) bool {
	return board.cells[coord.mustIndex()]
}

// Count returns the number of pegs left on the board
func (board *Board) Count() int {
	count := 0
	for _, occupied := range board.cells {
		if occupied {
			count++
		}
	}
	return count
}

func (board *Board) fill(coord Coord) {
	board.cells[coord.mustIndex()] = true
	board.events.emit(Event{Kind: CellFilled, Cell: coord})
}

func (board *Board) empty(coord Coord) {
	board.cells[coord.mustIndex()] = false
	board.events.emit(Event{Kind: CellEmptied, Cell: coord})
}

// reset fills every cell, then empties the center
func (board *Board) reset() {
	for _, coord := range cellCoords {
		board.fill(coord)
	}
	board.empty(Center)
}

func (board *Board) applyMove(move Move) {
	board.empty(move.Origin)
	board.fill(move.Dest)
	board.empty(move.Mid)
}

// reverseMove undoes applyMove. Observers rely on the fill, fill, empty
// order.
func (board *Board) reverseMove(move Move) {
	board.fill(move.Origin)
	board.fill(move.Mid)
	board.empty(move.Dest)
}

// replay emits the current state of every cell without changing it
func (board *Board) replay() {
	for idx, coord := range cellCoords {
		kind := CellEmptied
		if board.cells[idx] {
			kind = CellFilled
		}
		board.events.emit(Event{Kind: kind, Cell: coord})
	}
}
