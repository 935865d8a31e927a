package game

import "fmt"

// Move is a jump from Origin over Mid to Dest. Moves are plain values;
// building one does not check that it is legal.
type Move struct {
	Origin, Mid, Dest Coord
}

func NewMove(origin, dest Coord) Move {
	return Move{
		Origin: origin,
		Mid:    Coord{(origin.Row + dest.Row) / 2, (origin.Col + dest.Col) / 2},
		Dest:   dest,
	}
}

func (move Move) String() string {
	return fmt.Sprintf("%v->%v", move.Origin, move.Dest)
}

// IsOnBoard returns whether both ends of the move are board cells
func (move Move) IsOnBoard() bool {
	return move.Origin.Valid() && move.Dest.Valid()
}

// IsLegalDistance returns whether the move is an orthogonal jump of exactly
// two cells
func (move Move) IsLegalDistance() bool {
	dRow := abs(move.Origin.Row - move.Dest.Row)
	dCol := abs(move.Origin.Col - move.Dest.Col)
	return (dRow == 2 && dCol == 0) || (dCol == 2 && dRow == 0)
}

// IsLegalOccupancy returns whether there is a peg to move, a peg to capture
// and a hole to land in. The move must already be a legal distance on the
// board.
func (move Move) IsLegalOccupancy(board *Board) bool {
	return board.Occupied(move.Origin) &&
		!board.Occupied(move.Dest) &&
		board.Occupied(move.Mid)
}

func (move Move) isLegal(board *Board) bool {
	return move.IsOnBoard() && move.IsLegalDistance() && move.IsLegalOccupancy(board)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
