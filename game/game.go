// Package game implements the peg solitaire engine: the cross-shaped board,
// jump legality, bounded undo and end-of-game detection.
package game

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/they4kman/gosenku/util/collections"
)

type GameConfig struct {
	// Number of moves that can be undone
	UndoDepth int
	// Whether to check for the end of the game after every move
	Tracking bool

	// Starting position; the initial layout is used when nil. Restart always
	// returns to the initial layout.
	Snapshot *BoardSnapshot

	Logger logrus.FieldLogger
}

func NewGameConfig() GameConfig {
	return GameConfig{
		UndoDepth: DefaultUndoDepth,
		Tracking:  DefaultTracking,
		Snapshot:  nil,
		Logger:    logrus.StandardLogger(),
	}
}

// Engine is the only mutator of the board and the undo history. It is not
// safe for concurrent use, and listeners must not call back into its
// mutating methods while an event is being delivered.
type Engine struct {
	board    *Board
	history  *History
	tracking bool
	state    GameState

	events dispatcher
	log    logrus.FieldLogger
}

func NewEngine(config GameConfig) (*Engine, error) {
	if config.UndoDepth < 1 {
		return nil, errors.Wrapf(ErrInvalidConfig, "undo depth must be positive, got %d", config.UndoDepth)
	}

	engine := &Engine{
		history:  NewHistory(config.UndoDepth),
		tracking: config.Tracking,
		state:    InProgress,
		log:      config.Logger,
	}
	if engine.log == nil {
		engine.log = logrus.StandardLogger()
	}

	engine.board = newBoard(&engine.events)
	if config.Snapshot != nil {
		if err := engine.board.load(config.Snapshot); err != nil {
			return nil, errors.Wrap(err, "load starting position")
		}
	}

	return engine, nil
}

// Subscribe registers a listener for the given kinds of event, or for every
// kind when none are given. Listeners survive Restart.
func (engine *Engine) Subscribe(listener Listener, kinds ...EventKind) Subscription {
	return engine.events.subscribe(listener, kinds...)
}

func (engine *Engine) Unsubscribe(subscription Subscription) {
	engine.events.unsubscribe(subscription)
}

func (engine *Engine) State() GameState {
	return engine.state
}

func (engine *Engine) Tracking() bool {
	return engine.tracking
}

func (engine *Engine) SetTracking(enabled bool) {
	engine.tracking = enabled
}

func (engine *Engine) Occupied(coord Coord) bool {
	return engine.board.Occupied(coord)
}

func (engine *Engine) CellsRemaining() int {
	return engine.board.Count()
}

func (engine *Engine) History() *History {
	return engine.history
}

func (engine *Engine) Snapshot() BoardSnapshot {
	return engine.board.snapshot()
}

// AttemptMove performs the jump from origin to dest if it is legal, and
// reports whether it did. Illegal attempts change nothing and emit nothing.
func (engine *Engine) AttemptMove(origin, dest Coord) bool {
	move := NewMove(origin, dest)
	log := engine.log.WithField("move", move.String())

	switch {
	case !move.IsOnBoard():
		log.Debug("Rejected move: off the board")
		return false
	case !move.IsLegalDistance():
		log.Debug("Rejected move: not a two-cell orthogonal jump")
		return false
	case !move.IsLegalOccupancy(engine.board):
		log.Debug("Rejected move: cells not in place")
		return false
	}

	engine.board.applyMove(move)
	engine.history.Push(move)
	engine.notifyHistory()
	log.WithField("cells_remaining", engine.board.Count()).Debug("Applied move")

	if engine.tracking {
		engine.CheckEnd()
	}
	return true
}

// Undo reverses the most recent move. End detection is not re-run, since
// undoing a move never removes a legal move.
func (engine *Engine) Undo() error {
	move, err := engine.history.Pop()
	if err != nil {
		return err
	}

	engine.board.reverseMove(move)
	engine.state = InProgress
	engine.notifyHistory()
	engine.log.WithField("move", move.String()).Debug("Undid move")
	return nil
}

// CheckEnd looks for any legal move left on the board. When there is none,
// the game is over: GameOver is emitted and true is returned.
func (engine *Engine) CheckEnd() bool {
	if engine.hasLegalMove() {
		return false
	}

	remaining := engine.board.Count()
	engine.state = Over
	engine.log.WithFields(logrus.Fields{
		"cells_remaining": remaining,
		"board":           engine.board.snapshot().String(),
	}).Info("Game over")
	engine.events.emit(Event{Kind: GameOver, CellsRemaining: remaining})
	return true
}

func (engine *Engine) hasLegalMove() bool {
	for _, origin := range cellCoords {
		if !engine.board.Occupied(origin) {
			continue
		}
		for _, dest := range cellCoords {
			if NewMove(origin, dest).isLegal(engine.board) {
				return true
			}
		}
	}
	return false
}

// LegalMoves returns every move currently available, in board order
func (engine *Engine) LegalMoves() []Move {
	var moves []Move
	for _, origin := range cellCoords {
		for dest := range engine.destinations(origin) {
			moves = append(moves, NewMove(origin, dest))
		}
	}
	return moves
}

// Destinations returns the cells the peg at origin can jump to. It is empty
// for an off-board or empty origin.
func (engine *Engine) Destinations(origin Coord) collections.Set[Coord] {
	dests := make(collections.Set[Coord])
	if !origin.Valid() || !engine.board.Occupied(origin) {
		return dests
	}
	for dest := range engine.destinations(origin) {
		dests.Add(dest)
	}
	return dests
}

// destinations yields legal destinations from origin. Only the four cells
// two steps away can qualify, and yielding them in a fixed order keeps
// LegalMoves deterministic.
func (engine *Engine) destinations(origin Coord) <-chan Coord {
	out := make(chan Coord, len(jumpOffsets))
	if origin.Valid() && engine.board.Occupied(origin) {
		for _, offset := range jumpOffsets {
			dest := Coord{origin.Row + offset.Row, origin.Col + offset.Col}
			if NewMove(origin, dest).isLegal(engine.board) {
				out <- dest
			}
		}
	}
	close(out)
	return out
}

var jumpOffsets = [...]Coord{{-2, 0}, {0, 2}, {2, 0}, {0, -2}}

// Restart returns the board to the initial layout and clears the history.
// Listeners stay registered.
func (engine *Engine) Restart() {
	engine.board.reset()
	engine.history.Clear()
	engine.state = InProgress
	engine.notifyHistory()
	engine.log.Debug("Restarted game")
}

// ReplayAllState emits the history and every cell as they are now, so a
// newly attached listener can draw the whole game.
func (engine *Engine) ReplayAllState() {
	engine.notifyHistory()
	engine.board.replay()
}

func (engine *Engine) notifyHistory() {
	engine.events.emit(Event{Kind: HistoryChanged, History: engine.history})
}
