package board

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var ErrBadDiagram = errors.New("bad board diagram")

var diagramRowRegex = regexp.MustCompile(`^[wb.]{8}$`)

// String prints the board as 8 lines of 8 characters: w for player 0,
// b for player 1 and . for an empty square.
func (s State) String() string {
	var sb strings.Builder
	sb.Grow(NumSquares + Dim)
	for row := 0; row < Dim; row++ {
		for col := 0; col < Dim; col++ {
			sq := NewSquare(row, col)
			switch {
			case s.players[0].Occupied(sq):
				sb.WriteByte('w')
			case s.players[1].Occupied(sq):
				sb.WriteByte('b')
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// FromDiagram parses the output of State.String. Blank lines and
// surrounding whitespace are ignored.
func FromDiagram(text string) (State, error) {
	var rows []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !diagramRowRegex.MatchString(line) {
			return State{}, fmt.Errorf("%w: row %q", ErrBadDiagram, line)
		}
		rows = append(rows, line)
	}
	if len(rows) != Dim {
		return State{}, fmt.Errorf("%w: expected %d rows, got %d", ErrBadDiagram, Dim, len(rows))
	}
	var s State
	for row, line := range rows {
		for col, c := range line {
			switch c {
			case 'w':
				s.Put(Player0, NewSquare(row, col))
			case 'b':
				s.Put(Player1, NewSquare(row, col))
			}
		}
	}
	return s, nil
}
