package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/they4kman/gosenku/game"
)

const helpText = `commands:
  move R,C R,C   jump the peg at the first cell to the second (alias: m)
  undo           take back the last move (alias: u)
  restart        start a new game (alias: r)
  track on|off   toggle automatic end-of-game detection
  hint [R,C]     list legal moves, or the jumps from one cell
  help           show this text (alias: ?)
  quit           leave the game (alias: q)
`

// Execute runs a single command line, reporting whether the player asked to
// quit. Errors are meant for the player and leave the game unchanged.
func (terminal *Terminal) Execute(line string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}

	command, args := strings.ToLower(fields[0]), fields[1:]
	switch command {
	case "move", "m":
		return false, terminal.move(args)
	case "undo", "u":
		if err := terminal.engine.Undo(); err != nil {
			return false, err
		}
	case "restart", "r":
		terminal.engine.Restart()
	case "track":
		if len(args) != 1 || (args[0] != "on" && args[0] != "off") {
			return false, errors.New("usage: track on|off")
		}
		terminal.engine.SetTracking(args[0] == "on")
	case "hint":
		return false, terminal.hint(args)
	case "help", "?":
		fmt.Fprint(terminal.out, helpText)
		return false, nil
	case "quit", "q", "exit":
		return true, nil
	default:
		return false, errors.Errorf("unknown command %q, type help for a list", fields[0])
	}

	terminal.Render()
	return false, nil
}

func (terminal *Terminal) move(args []string) error {
	if len(args) != 2 {
		return errors.New("usage: move R,C R,C")
	}
	origin, err := ParseCoord(args[0])
	if err != nil {
		return err
	}
	dest, err := ParseCoord(args[1])
	if err != nil {
		return err
	}

	if !terminal.engine.AttemptMove(origin, dest) {
		return errors.Errorf("cannot jump from %v to %v", origin, dest)
	}
	terminal.Render()
	return nil
}

func (terminal *Terminal) hint(args []string) error {
	switch len(args) {
	case 0:
		moves := terminal.engine.LegalMoves()
		if len(moves) == 0 {
			fmt.Fprintln(terminal.out, "no legal moves")
			return nil
		}
		for _, move := range moves {
			fmt.Fprintf(terminal.out, "  %s\n", formatMove(move))
		}
	case 1:
		origin, err := ParseCoord(args[0])
		if err != nil {
			return err
		}
		dests := terminal.engine.Destinations(origin)
		if dests.Len() == 0 {
			fmt.Fprintf(terminal.out, "no jumps from %s\n", formatCoord(origin))
			return nil
		}
		for _, dest := range dests.Sorted(game.Coord.Less) {
			fmt.Fprintf(terminal.out, "  %s\n", formatMove(game.NewMove(origin, dest)))
		}
	default:
		return errors.New("usage: hint [R,C]")
	}
	return nil
}

// ParseCoord reads a cell written as "row,col"
func ParseCoord(text string) (game.Coord, error) {
	parts := strings.Split(text, ",")
	if len(parts) != 2 {
		return game.Coord{}, errors.Errorf("bad cell %q, expected R,C", text)
	}

	row, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return game.Coord{}, errors.Errorf("bad row in %q", text)
	}
	col, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return game.Coord{}, errors.Errorf("bad column in %q", text)
	}

	coord := game.Coord{Row: row, Col: col}
	if !coord.Valid() {
		return game.Coord{}, errors.Errorf("%s is not on the board", formatCoord(coord))
	}
	return coord, nil
}

func formatCoord(coord game.Coord) string {
	return fmt.Sprintf("%d,%d", coord.Row, coord.Col)
}

func formatMove(move game.Move) string {
	return fmt.Sprintf("move %s %s", formatCoord(move.Origin), formatCoord(move.Dest))
}
