// Package ui is a line-oriented terminal front end for the game. It draws
// the board purely from engine notifications.
package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/they4kman/gosenku/config"
	"github.com/they4kman/gosenku/game"
)

const boardSize = 7

type cellView int

const (
	blank cellView = iota
	peg
	hole
)

type Terminal struct {
	engine       *game.Engine
	theme        config.Theme
	out          io.Writer
	subscription game.Subscription

	cells   [boardSize][boardSize]cellView
	canUndo bool
}

// NewTerminal attaches a front end to the engine and replays the current
// game into it.
func NewTerminal(engine *game.Engine, theme config.Theme, out io.Writer) *Terminal {
	terminal := &Terminal{
		engine: engine,
		theme:  theme,
		out:    out,
	}
	terminal.subscription = engine.Subscribe(terminal.update)
	engine.ReplayAllState()
	return terminal
}

func (terminal *Terminal) Detach() {
	terminal.engine.Unsubscribe(terminal.subscription)
}

func (terminal *Terminal) update(event game.Event) {
	switch event.Kind {
	case game.CellFilled:
		terminal.cells[event.Cell.Row][event.Cell.Col] = peg
	case game.CellEmptied:
		terminal.cells[event.Cell.Row][event.Cell.Col] = hole
	case game.HistoryChanged:
		terminal.canUndo = !event.History.IsEmpty()
	case game.GameOver:
		fmt.Fprintf(terminal.out, "Game over! %d %s left.\n", event.CellsRemaining, pluralize("peg", event.CellsRemaining))
	}
}

// Pegs returns the number of pegs the front end currently shows
func (terminal *Terminal) Pegs() int {
	count := 0
	for _, row := range terminal.cells {
		for _, cell := range row {
			if cell == peg {
				count++
			}
		}
	}
	return count
}

func (terminal *Terminal) CanUndo() bool {
	return terminal.canUndo
}

// IsOver asks the engine rather than relying on GameOver, which is not
// replayed to a front end attached after the game ended.
func (terminal *Terminal) IsOver() bool {
	return terminal.engine.State() == game.Over
}

func (terminal *Terminal) symbol(cell cellView) string {
	switch cell {
	case peg:
		return terminal.theme.Peg
	case hole:
		return terminal.theme.Hole
	default:
		return terminal.theme.Blank
	}
}

func (terminal *Terminal) Render() {
	var out strings.Builder

	out.WriteString("  ")
	for col := 0; col < boardSize; col++ {
		fmt.Fprintf(&out, " %d", col)
	}
	out.WriteByte('\n')

	for row, cells := range terminal.cells {
		var line strings.Builder
		fmt.Fprintf(&line, "%d ", row)
		for _, cell := range cells {
			line.WriteString(" ")
			line.WriteString(terminal.symbol(cell))
		}
		out.WriteString(strings.TrimRight(line.String(), " "))
		out.WriteByte('\n')
	}

	fmt.Fprintf(&out, "pegs: %d  undo: %s  tracking: %s\n",
		terminal.Pegs(), onOff(terminal.canUndo), onOff(terminal.engine.Tracking()))
	if terminal.IsOver() {
		pegs := terminal.Pegs()
		fmt.Fprintf(&out, "no moves left with %d %s; type restart to play again\n",
			pegs, pluralize("peg", pegs))
	}

	io.WriteString(terminal.out, out.String())
}

// Run reads commands from in until quit or end of input
func (terminal *Terminal) Run(in io.Reader) error {
	scanner := bufio.NewScanner(in)

	terminal.Render()
	for {
		io.WriteString(terminal.out, "> ")
		if !scanner.Scan() {
			io.WriteString(terminal.out, "\n")
			return scanner.Err()
		}

		quit, err := terminal.Execute(scanner.Text())
		if err != nil {
			fmt.Fprintln(terminal.out, err)
			continue
		}
		if quit {
			return nil
		}
	}
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}

func pluralize(word string, n int) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
