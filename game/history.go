package game

import (
	"fmt"

	"github.com/gammazero/deque"
)

// History is a bounded undo stack. Pushing onto a full history drops the
// oldest move.
type History struct {
	moves    deque.Deque
	capacity int
}

func NewHistory(capacity int) *History {
	if capacity < 1 {
		panic(fmt.Sprintf("game: history capacity must be positive, got %d", capacity))
	}
	return &History{capacity: capacity}
}

func (history *History) Capacity() int {
	return history.capacity
}

func (history *History) Len() int {
	return history.moves.Len()
}

func (history *History) IsEmpty() bool {
	return history.moves.Len() == 0
}

func (history *History) isFull() bool {
	return history.moves.Len() >= history.capacity
}

// Push always accepts the move, evicting the oldest one if the history is full
func (history *History) Push(move Move) {
	if history.isFull() {
		history.moves.PopFront()
	}
	history.moves.PushBack(move)
}

// Pop removes and returns the most recently pushed move
func (history *History) Pop() (Move, error) {
	if history.IsEmpty() {
		return Move{}, ErrEmptyHistory
	}
	return history.moves.PopBack().(Move), nil
}

func (history *History) Clear() {
	history.moves = deque.Deque{}
}

// Moves returns a copy of the history, oldest move first
func (history *History) Moves() []Move {
	moves := make([]Move, history.moves.Len())
	for i := range moves {
		moves[i] = history.moves.At(i).(Move)
	}
	return moves
}
