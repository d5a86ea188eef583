package retrograde

import (
	"github.com/domino14/raysolver/board"
	"github.com/domino14/raysolver/movegen"
)

// IsTerminalExist reports whether player 0, to move, can leave player 1
// without pieces in one move. If player 1 has no pieces already, that is
// any move at all; a position where player 0 can't move is never
// terminal.
func IsTerminalExist(pos board.State) bool {
	moves, _ := movegen.AllMoves(pos, board.Player0)
	for _, m := range moves {
		if m.Mask(board.Player1) == 0 {
			return true
		}
	}
	return false
}
