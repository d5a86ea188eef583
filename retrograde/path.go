package retrograde

import (
	"errors"
	"fmt"

	"github.com/domino14/raysolver/board"
	"github.com/domino14/raysolver/movegen"
)

var (
	// ErrNoPath means a position on the line has no dist0 label.
	ErrNoPath = errors.New("can't build path")
	// ErrInconsistent means the labels have no move realizing a distance.
	ErrInconsistent = errors.New("distance labels are inconsistent")
)

// BuildPath replays an optimal line from start. The result starts with
// start and alternates player 0 and player 1 moves until a position with
// dist0 == 0; it holds 2*dist0(start)+1 positions.
func BuildPath(start board.State, dists Distances) ([]board.State, error) {
	pos := start
	path := []board.State{pos}
	for {
		length0, ok := dists.Dist0(pos)
		if !ok {
			return path, fmt.Errorf("%w: no dist0 for position\n%s", ErrNoPath, pos)
		}
		if length0 == 0 {
			return path, nil
		}
		next, found := pick(pos, board.Player0, func(m board.State) bool {
			d, ok := dists.Dist1(m)
			return ok && d == length0
		})
		if !found {
			return path, fmt.Errorf("%w: no player 0 move with dist1 %d from\n%s",
				ErrInconsistent, length0, pos)
		}
		pos = next
		path = append(path, pos)

		next, found = pick(pos, board.Player1, func(m board.State) bool {
			d, ok := dists.Dist0(m)
			return ok && d+1 == length0
		})
		if !found {
			return path, fmt.Errorf("%w: no player 1 move with dist0 %d from\n%s",
				ErrInconsistent, length0-1, pos)
		}
		pos = next
		path = append(path, pos)
	}
}

// pick returns the first move of player from pos accepted by ok.
func pick(pos board.State, player int, ok func(board.State) bool) (board.State, bool) {
	moves, _ := movegen.AllMoves(pos, player)
	for _, m := range moves {
		if ok(m) {
			return m, true
		}
	}
	return board.State{}, false
}
