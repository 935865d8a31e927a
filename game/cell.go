package game

import "fmt"

// Coord addresses a cell on the board by row and column, both 0-indexed.
type Coord struct {
	Row, Col int
}

func (coord Coord) String() string {
	return fmt.Sprintf("(%d, %d)", coord.Row, coord.Col)
}

// Less orders coordinates row-major
func (coord Coord) Less(other Coord) bool {
	if coord.Row != other.Row {
		return coord.Row < other.Row
	}
	return coord.Col < other.Col
}

// Valid returns whether the coordinate is one of the cells of the cross
func (coord Coord) Valid() bool {
	return coord.index() >= 0
}

func (coord Coord) index() int {
	if coord.Row < 0 || coord.Col < 0 || coord.Row >= boardSize || coord.Col >= boardSize {
		return -1
	}
	return int(cellIndex[coord.Row][coord.Col])
}

// mustIndex is used by every board accessor; an off-board coordinate is a
// programming error in the caller.
func (coord Coord) mustIndex() int {
	idx := coord.index()
	if idx < 0 {
		panic(fmt.Sprintf("game: %v is not a board cell", coord))
	}
	return idx
}

// Cells returns the valid cells of the board in row-major order.
func Cells() []Coord {
	cells := make([]Coord, NumCells)
	copy(cells, cellCoords[:])
	return cells
}

var (
	cellIndex  [boardSize][boardSize]int8
	cellCoords [NumCells]Coord
)

func isCrossCell(row, col int) bool {
	inArm := func(n int) bool { return n >= 2 && n <= 4 }
	return inArm(row) || inArm(col)
}

func init() {
	idx := 0
	for row := 0; row < boardSize; row++ {
		for col := 0; col < boardSize; col++ {
			if !isCrossCell(row, col) {
				cellIndex[row][col] = -1
				continue
			}
			cellIndex[row][col] = int8(idx)
			cellCoords[idx] = Coord{row, col}
			idx++
		}
	}
	if idx != NumCells {
		panic(fmt.Sprintf("game: cross has %d cells, expected %d", idx, NumCells))
	}
}
