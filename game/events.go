package game

type EventKind int

const (
	CellFilled EventKind = iota
	CellEmptied
	HistoryChanged
	GameOver

	numEventKinds
)

func (kind EventKind) String() string {
	switch kind {
	case CellFilled:
		return "cell_filled"
	case CellEmptied:
		return "cell_emptied"
	case HistoryChanged:
		return "history_changed"
	case GameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Event is a single notification. Only the payload field matching Kind is
// set: Cell for CellFilled/CellEmptied, History for HistoryChanged and
// CellsRemaining for GameOver.
type Event struct {
	Kind           EventKind
	Cell           Coord
	History        *History
	CellsRemaining int
}

type Listener func(Event)

// Subscription identifies a registered listener, for Unsubscribe
type Subscription uint64

type registration struct {
	id       Subscription
	listener Listener
}

// dispatcher fans events out to listeners registered for a kind, then to
// listeners registered for every kind.
type dispatcher struct {
	byKind [numEventKinds][]registration
	all    []registration
	nextID Subscription
}

func (dispatcher *dispatcher) subscribe(listener Listener, kinds ...EventKind) Subscription {
	dispatcher.nextID++
	reg := registration{id: dispatcher.nextID, listener: listener}

	if len(kinds) == 0 {
		dispatcher.all = append(dispatcher.all, reg)
		return reg.id
	}

	var registered [numEventKinds]bool
	for _, kind := range kinds {
		if kind < 0 || kind >= numEventKinds {
			panic("game: unknown event kind " + kind.String())
		}
		if registered[kind] {
			continue
		}
		registered[kind] = true
		dispatcher.byKind[kind] = append(dispatcher.byKind[kind], reg)
	}
	return reg.id
}

func (dispatcher *dispatcher) unsubscribe(id Subscription) {
	// Lists are rebuilt rather than filtered in place, so an emit in progress
	// keeps iterating over the listeners it started with.
	remove := func(regs []registration) []registration {
		kept := make([]registration, 0, len(regs))
		for _, reg := range regs {
			if reg.id != id {
				kept = append(kept, reg)
			}
		}
		return kept
	}

	for kind := range dispatcher.byKind {
		dispatcher.byKind[kind] = remove(dispatcher.byKind[kind])
	}
	dispatcher.all = remove(dispatcher.all)
}

func (dispatcher *dispatcher) emit(event Event) {
	if dispatcher == nil {
		return
	}
	for _, reg := range dispatcher.byKind[event.Kind] {
		reg.listener(event)
	}
	for _, reg := range dispatcher.all {
		reg.listener(event)
	}
}
