package game

import (
	"errors"
	"reflect"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

const initialLayout = `  ooo
  ooo
ooooooo
ooo.ooo
ooooooo
  ooo
  ooo
`

const lonePegLayout = `  ...
  ...
.......
...o...
.......
  ...
  ...
`

// One jump from (3,2) to (3,4) leaves a single peg
const lastJumpLayout = `  ...
  ...
.......
..oo...
.......
  ...
  ...
`

func newTestEngine(t *testing.T, layout string, configure ...func(*GameConfig)) (*Engine, *test.Hook) {
	t.Helper()

	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	config := NewGameConfig()
	config.Logger = logger
	if layout != "" {
		snapshot, err := ParseLayout(layout)
		if err != nil {
			t.Fatalf("parse layout: %v", err)
		}
		config.Snapshot = snapshot
	}
	for _, fn := range configure {
		fn(&config)
	}

	engine, err := NewEngine(config)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine, hook
}

func record(engine *Engine, kinds ...EventKind) *recorder {
	rec := &recorder{}
	engine.Subscribe(rec.listen, kinds...)
	return rec
}

func TestNewEngineInitialState(t *testing.T) {
	engine, _ := newTestEngine(t, "")

	if engine.State() != InProgress {
		t.Fatalf("expected state %v, got %v", InProgress, engine.State())
	}
	if !engine.Tracking() {
		t.Fatal("tracking should default to on")
	}
	if engine.History().Capacity() != DefaultUndoDepth {
		t.Fatalf("expected undo depth %d, got %d", DefaultUndoDepth, engine.History().Capacity())
	}
	if snapshot := engine.Snapshot(); snapshot.Board != initialLayout {
		t.Fatalf("unexpected initial layout:\n%s", snapshot.Board)
	}
}

func TestNewEngineRejectsUndoDepth(t *testing.T) {
	for _, depth := range []int{0, -3} {
		config := NewGameConfig()
		config.UndoDepth = depth
		if _, err := NewEngine(config); !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("undo depth %d: expected ErrInvalidConfig, got %v", depth, err)
		}
	}
}

func TestNewEngineNilLogger(t *testing.T) {
	config := NewGameConfig()
	config.Logger = nil
	engine, err := NewEngine(config)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	engine.AttemptMove(Coord{2, 2}, Coord{4, 4})
}

func TestCheckEndInitialLayout(t *testing.T) {
	engine, _ := newTestEngine(t, "")
	rec := record(engine, GameOver)

	if engine.CheckEnd() {
		t.Fatal("initial layout should have legal moves")
	}
	if len(rec.events) != 0 {
		t.Fatalf("expected no GameOver, got %v", rec.events)
	}
	if engine.State() != InProgress {
		t.Fatalf("expected state %v, got %v", InProgress, engine.State())
	}
}

func TestCheckEndLonePeg(t *testing.T) {
	engine, hook := newTestEngine(t, lonePegLayout)
	rec := record(engine)

	if !engine.CheckEnd() {
		t.Fatal("a lone peg should end the game")
	}

	expected := []Event{{Kind: GameOver, CellsRemaining: 1}}
	if !reflect.DeepEqual(rec.events, expected) {
		t.Fatalf("expected %v, got %v", expected, rec.events)
	}
	if engine.State() != Over {
		t.Fatalf("expected state %v, got %v", Over, engine.State())
	}

	entry := hook.LastEntry()
	if entry == nil || entry.Message != "Game over" {
		t.Fatalf("expected game over log entry, got %v", entry)
	}
	if entry.Data["cells_remaining"] != 1 {
		t.Fatalf("expected cells_remaining 1, got %v", entry.Data["cells_remaining"])
	}
}

func TestAttemptMoveDiagonalIsNoop(t *testing.T) {
	engine, hook := newTestEngine(t, "")
	rec := record(engine)
	before := engine.Snapshot()

	if engine.AttemptMove(Coord{2, 2}, Coord{4, 4}) {
		t.Fatal("diagonal move should be rejected")
	}
	if len(rec.events) != 0 {
		t.Fatalf("expected no events, got %v", rec.events)
	}
	if !engine.History().IsEmpty() {
		t.Fatal("history should be unchanged")
	}
	if engine.Snapshot() != before {
		t.Fatal("board should be unchanged")
	}
	if entry := hook.LastEntry(); entry == nil || entry.Level != logrus.DebugLevel {
		t.Fatalf("expected a debug entry for the rejected move, got %v", entry)
	}
}

func TestAttemptMoveRejectsIllegal(t *testing.T) {
	tests := []struct {
		name         string
		origin, dest Coord
	}{
		{"off board origin", Coord{0, 0}, Coord{0, 2}},
		{"off board dest", Coord{2, 1}, Coord{0, 1}},
		{"onto a peg", Coord{0, 3}, Coord{2, 3}},
		{"out of range", Coord{-2, 3}, Coord{0, 3}},
		{"from the hole", Center, Coord{1, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, _ := newTestEngine(t, "")
			rec := record(engine)

			if engine.AttemptMove(tt.origin, tt.dest) {
				t.Fatal("move should be rejected")
			}
			if len(rec.events) != 0 {
				t.Fatalf("expected no events, got %v", rec.events)
			}
		})
	}
}

func TestMoveThenUndo(t *testing.T) {
	engine, _ := newTestEngine(t, "")
	rec := record(engine)

	if !engine.AttemptMove(Coord{1, 3}, Center) {
		t.Fatal("move into the center should be legal")
	}

	expected := []Event{
		cellEvent(CellEmptied, 1, 3),
		cellEvent(CellFilled, 3, 3),
		cellEvent(CellEmptied, 2, 3),
		{Kind: HistoryChanged, History: engine.History()},
	}
	if !reflect.DeepEqual(rec.events, expected) {
		t.Fatalf("expected %v, got %v", expected, rec.events)
	}
	if engine.History().Len() != 1 {
		t.Fatalf("expected 1 move in history, got %d", engine.History().Len())
	}

	rec.reset()
	if err := engine.Undo(); err != nil {
		t.Fatalf("undo: %v", err)
	}

	expected = []Event{
		cellEvent(CellFilled, 1, 3),
		cellEvent(CellFilled, 2, 3),
		cellEvent(CellEmptied, 3, 3),
		{Kind: HistoryChanged, History: engine.History()},
	}
	if !reflect.DeepEqual(rec.events, expected) {
		t.Fatalf("expected %v, got %v", expected, rec.events)
	}
	if !engine.Occupied(Coord{1, 3}) || !engine.Occupied(Coord{2, 3}) || engine.Occupied(Center) {
		t.Fatal("undo did not restore the board")
	}
	if !engine.History().IsEmpty() {
		t.Fatal("history should be empty after undo")
	}

	if err := engine.Undo(); !errors.Is(err, ErrEmptyHistory) {
		t.Fatalf("expected ErrEmptyHistory, got %v", err)
	}
}

func TestUndoDepthLimit(t *testing.T) {
	engine, _ := newTestEngine(t, "", func(config *GameConfig) {
		config.UndoDepth = 2
	})

	moves := [][2]Coord{
		{{1, 3}, {3, 3}},
		{{2, 1}, {2, 3}},
		{{0, 2}, {2, 2}},
	}
	for _, move := range moves {
		if !engine.AttemptMove(move[0], move[1]) {
			t.Fatalf("move %v should be legal", move)
		}
	}

	for i := 0; i < 2; i++ {
		if err := engine.Undo(); err != nil {
			t.Fatalf("undo %d: %v", i, err)
		}
	}
	if err := engine.Undo(); !errors.Is(err, ErrEmptyHistory) {
		t.Fatalf("expected the oldest move to be evicted, got %v", err)
	}

	if engine.Occupied(Coord{1, 3}) || engine.Occupied(Coord{2, 3}) || !engine.Occupied(Center) {
		t.Fatal("the first move should still be on the board")
	}
}

func TestTrackingEndsGame(t *testing.T) {
	engine, hook := newTestEngine(t, lastJumpLayout)
	rec := record(engine, GameOver, HistoryChanged)

	if !engine.AttemptMove(Coord{3, 2}, Coord{3, 4}) {
		t.Fatal("last jump should be legal")
	}

	expected := []Event{
		{Kind: HistoryChanged, History: engine.History()},
		{Kind: GameOver, CellsRemaining: 1},
	}
	if !reflect.DeepEqual(rec.events, expected) {
		t.Fatalf("expected %v, got %v", expected, rec.events)
	}
	if engine.State() != Over {
		t.Fatalf("expected state %v, got %v", Over, engine.State())
	}
	entry := hook.LastEntry()
	if entry == nil || entry.Message != "Game over" {
		t.Fatalf("expected game over log entry, got %v", entry)
	}
	if entry.Data["board"] != engine.Snapshot().String() {
		t.Fatalf("expected the final board in the log entry, got %v", entry.Data["board"])
	}

	if err := engine.Undo(); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if engine.State() != InProgress {
		t.Fatalf("undo should resume the game, got state %v", engine.State())
	}
	if len(rec.events) != 3 {
		t.Fatalf("undo should not emit GameOver, got %v", rec.events)
	}
}

func TestTrackingDisabled(t *testing.T) {
	engine, _ := newTestEngine(t, lastJumpLayout, func(config *GameConfig) {
		config.Tracking = false
	})
	rec := record(engine, GameOver)

	if !engine.AttemptMove(Coord{3, 2}, Coord{3, 4}) {
		t.Fatal("last jump should be legal")
	}
	if len(rec.events) != 0 {
		t.Fatalf("expected no GameOver without tracking, got %v", rec.events)
	}
	if engine.State() != InProgress {
		t.Fatalf("expected state %v, got %v", InProgress, engine.State())
	}

	if !engine.CheckEnd() {
		t.Fatal("explicit check should find the game over")
	}
	if len(rec.events) != 1 || rec.events[0].CellsRemaining != 1 {
		t.Fatalf("expected GameOver(1), got %v", rec.events)
	}
}

func TestSetTracking(t *testing.T) {
	engine, _ := newTestEngine(t, lastJumpLayout)
	rec := record(engine, GameOver)

	engine.SetTracking(false)
	if engine.Tracking() {
		t.Fatal("tracking should be off")
	}
	engine.AttemptMove(Coord{3, 2}, Coord{3, 4})
	if len(rec.events) != 0 {
		t.Fatalf("expected no GameOver, got %v", rec.events)
	}

	if err := engine.Undo(); err != nil {
		t.Fatalf("undo: %v", err)
	}
	engine.SetTracking(true)
	engine.AttemptMove(Coord{3, 2}, Coord{3, 4})
	if len(rec.events) != 1 {
		t.Fatalf("expected GameOver once tracking is back on, got %v", rec.events)
	}
}

func TestRestart(t *testing.T) {
	engine, _ := newTestEngine(t, lastJumpLayout)
	engine.AttemptMove(Coord{3, 2}, Coord{3, 4})
	rec := record(engine)

	engine.Restart()

	if snapshot := engine.Snapshot(); snapshot.Board != initialLayout {
		t.Fatalf("restart should give the initial layout, got:\n%s", snapshot.Board)
	}
	if engine.CellsRemaining() != NumCells-1 {
		t.Fatalf("expected %d pegs, got %d", NumCells-1, engine.CellsRemaining())
	}
	if !engine.History().IsEmpty() {
		t.Fatal("restart should clear the history")
	}
	if engine.State() != InProgress {
		t.Fatalf("expected state %v, got %v", InProgress, engine.State())
	}

	if len(rec.events) != NumCells+2 {
		t.Fatalf("expected %d events, got %d", NumCells+2, len(rec.events))
	}
	if last := rec.events[len(rec.events)-1]; last.Kind != HistoryChanged {
		t.Fatalf("expected HistoryChanged last, got %v", last.Kind)
	}

	// Listeners registered before the restart still hear about moves
	rec.reset()
	engine.AttemptMove(Coord{1, 3}, Center)
	if len(rec.events) != 4 {
		t.Fatalf("expected 4 events after restart, got %v", rec.events)
	}
}

func TestReplayAllState(t *testing.T) {
	engine, _ := newTestEngine(t, "")
	engine.AttemptMove(Coord{1, 3}, Center)
	before := engine.Snapshot()

	rec := record(engine)
	engine.ReplayAllState()

	if len(rec.events) != NumCells+1 {
		t.Fatalf("expected %d events, got %d", NumCells+1, len(rec.events))
	}
	if rec.events[0] != (Event{Kind: HistoryChanged, History: engine.History()}) {
		t.Fatalf("expected HistoryChanged first, got %v", rec.events[0])
	}
	for i, cell := range Cells() {
		event := rec.events[i+1]
		kind := CellEmptied
		if engine.Occupied(cell) {
			kind = CellFilled
		}
		if event != (Event{Kind: kind, Cell: cell}) {
			t.Fatalf("event for %v = %v, expected %v", cell, event, kind)
		}
	}

	if engine.Snapshot() != before || engine.History().Len() != 1 {
		t.Fatal("replay must not change the game")
	}
}

func TestSubscribeKindsAndOrder(t *testing.T) {
	engine, _ := newTestEngine(t, "")

	var order []string
	engine.Subscribe(func(event Event) {
		if event.Kind == HistoryChanged {
			order = append(order, "all")
		}
	})
	engine.Subscribe(func(Event) {
		order = append(order, "history")
	}, HistoryChanged)
	cells := record(engine, CellFilled, CellEmptied)

	engine.AttemptMove(Coord{1, 3}, Center)

	if !reflect.DeepEqual(order, []string{"history", "all"}) {
		t.Fatalf("expected kind listeners before all-kind listeners, got %v", order)
	}
	if !reflect.DeepEqual(cells.kinds(), []EventKind{CellEmptied, CellFilled, CellEmptied}) {
		t.Fatalf("unexpected cell events %v", cells.kinds())
	}
}

func TestUnsubscribe(t *testing.T) {
	engine, _ := newTestEngine(t, "")
	kept := record(engine, HistoryChanged)
	dropped := &recorder{}
	subscription := engine.Subscribe(dropped.listen, HistoryChanged, CellFilled)
	droppedAll := &recorder{}
	subscriptionAll := engine.Subscribe(droppedAll.listen)

	engine.Unsubscribe(subscription)
	engine.Unsubscribe(subscriptionAll)
	engine.AttemptMove(Coord{1, 3}, Center)

	if len(dropped.events) != 0 || len(droppedAll.events) != 0 {
		t.Fatal("unsubscribed listeners should not receive events")
	}
	if len(kept.events) != 1 {
		t.Fatalf("remaining listener should receive events, got %v", kept.events)
	}
}

func TestUnsubscribeDuringEmit(t *testing.T) {
	engine, _ := newTestEngine(t, "")

	var calls []string
	var first Subscription
	first = engine.Subscribe(func(Event) {
		calls = append(calls, "first")
		engine.Unsubscribe(first)
	}, HistoryChanged)
	engine.Subscribe(func(Event) {
		calls = append(calls, "second")
	}, HistoryChanged)
	engine.Subscribe(func(Event) {
		calls = append(calls, "third")
	}, HistoryChanged)

	engine.AttemptMove(Coord{1, 3}, Center)
	if !reflect.DeepEqual(calls, []string{"first", "second", "third"}) {
		t.Fatalf("unsubscribing mid-delivery should not disturb the current event, got %v", calls)
	}

	calls = nil
	engine.AttemptMove(Coord{2, 1}, Coord{2, 3})
	if !reflect.DeepEqual(calls, []string{"second", "third"}) {
		t.Fatalf("expected only the remaining listeners on the next event, got %v", calls)
	}
}

func TestSubscribeDuplicateKinds(t *testing.T) {
	engine, _ := newTestEngine(t, "")
	rec := record(engine, HistoryChanged, HistoryChanged)

	engine.AttemptMove(Coord{1, 3}, Center)
	if len(rec.events) != 1 {
		t.Fatalf("a kind named twice should be delivered once, got %v", rec.kinds())
	}
}

func TestLegalMoves(t *testing.T) {
	engine, _ := newTestEngine(t, "")

	expected := []Move{
		NewMove(Coord{1, 3}, Center),
		NewMove(Coord{3, 1}, Center),
		NewMove(Coord{3, 5}, Center),
		NewMove(Coord{5, 3}, Center),
	}
	if moves := engine.LegalMoves(); !reflect.DeepEqual(moves, expected) {
		t.Fatalf("expected %v, got %v", expected, moves)
	}

	lonePeg, _ := newTestEngine(t, lonePegLayout)
	if moves := lonePeg.LegalMoves(); len(moves) != 0 {
		t.Fatalf("expected no moves, got %v", moves)
	}
}

func TestDestinations(t *testing.T) {
	engine, _ := newTestEngine(t, "")

	dests := engine.Destinations(Coord{3, 1})
	if dests.Len() != 1 || !dests.Contains(Center) {
		t.Fatalf("expected only the center, got %v", dests)
	}

	for _, origin := range []Coord{Center, {0, 0}, {0, 2}} {
		if dests := engine.Destinations(origin); dests.Len() != 0 {
			t.Fatalf("expected no destinations from %v, got %v", origin, dests)
		}
	}
}
