package game

import (
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

const (
	pegChar   = 'o'
	holeChar  = '.'
	blankChar = ' '
)

// BoardSnapshot is a text picture of the board, one line per row: 'o' for a
// peg, '.' for a hole and ' ' outside the cross. Trailing blanks are omitted.
type BoardSnapshot struct {
	Board string `yaml:"board"`
}

func (snapshot *BoardSnapshot) Serialize() string {
	out, err := yaml.Marshal(snapshot)
	if err != nil {
		panic(err)
	}

	return string(out)
}

func (snapshot BoardSnapshot) String() string {
	return snapshot.Board
}

func (snapshot *BoardSnapshot) pegs() ([NumCells]bool, error) {
	var pegs [NumCells]bool

	rows := strings.Split(strings.Trim(snapshot.Board, "\n"), "\n")
	if len(rows) != boardSize {
		return pegs, errors.Errorf("snapshot has %d rows, expected %d", len(rows), boardSize)
	}

	for row, line := range rows {
		line = strings.TrimRight(line, " \r")
		if len(line) > boardSize {
			return pegs, errors.Errorf("snapshot row %d has %d columns, expected at most %d", row, len(line), boardSize)
		}
		line += strings.Repeat(string(blankChar), boardSize-len(line))

		for col, c := range line {
			coord := Coord{row, col}
			idx := coord.index()

			switch {
			case c == blankChar && idx < 0:
			case c == blankChar:
				return pegs, errors.Errorf("snapshot is missing cell %v", coord)
			case idx < 0:
				return pegs, errors.Errorf("snapshot has %q at %v, outside the board", c, coord)
			case c == pegChar:
				pegs[idx] = true
			case c == holeChar:
				pegs[idx] = false
			default:
				return pegs, errors.Errorf("snapshot has unknown character %q at %v", c, coord)
			}
		}
	}

	return pegs, nil
}

func (board *Board) snapshot() BoardSnapshot {
	var out strings.Builder

	for row := 0; row < boardSize; row++ {
		var line strings.Builder
		for col := 0; col < boardSize; col++ {
			coord := Coord{row, col}
			switch {
			case !coord.Valid():
				line.WriteRune(blankChar)
			case board.Occupied(coord):
				line.WriteRune(pegChar)
			default:
				line.WriteRune(holeChar)
			}
		}
		out.WriteString(strings.TrimRight(line.String(), string(blankChar)))
		out.WriteByte('\n')
	}

	return BoardSnapshot{Board: out.String()}
}

// load sets every cell from the snapshot, emitting a notification per cell
func (board *Board) load(snapshot *BoardSnapshot) error {
	pegs, err := snapshot.pegs()
	if err != nil {
		return err
	}

	for idx, coord := range cellCoords {
		if pegs[idx] {
			board.fill(coord)
		} else {
			board.empty(coord)
		}
	}
	return nil
}

// ParseLayout checks a text picture of the board and wraps it in a snapshot
func ParseLayout(layout string) (*BoardSnapshot, error) {
	snapshot := &BoardSnapshot{Board: layout}
	if _, err := snapshot.pegs(); err != nil {
		return nil, err
	}
	return snapshot, nil
}

func LoadSnapshot(in string) (*BoardSnapshot, error) {
	var snapshot BoardSnapshot
	if err := yaml.Unmarshal([]byte(in), &snapshot); err != nil {
		return nil, errors.Wrap(err, "decode snapshot")
	}
	if _, err := snapshot.pegs(); err != nil {
		return nil, err
	}
	return &snapshot, nil
}
