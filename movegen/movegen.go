// Package movegen generates the successor positions of a player's ray
// moves. A piece slides along one of the 8 rays until it leaves the
// board, hits a piece of its own, or captures an opposing piece.
package movegen

import "github.com/domino14/raysolver/board"

// A Direction is a (row, col) step along a ray.
type Direction struct {
	DRow, DCol int
}

// Directions lists the rays in generation order.
var Directions = [8]Direction{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// AllMoves returns every position reachable by one move of player. Moves
// that lead to the same position are not merged.
func AllMoves(s board.State, player int) ([]board.State, error) {
	return AppendMoves(nil, s, player)
}

// AppendMoves appends the successors of s to dst, so callers can reuse
// a buffer across positions.
func AppendMoves(dst []board.State, s board.State, player int) ([]board.State, error) {
	own, err := s.Pieces(player)
	if err != nil {
		return dst, err
	}
	opp := s.Mask(1 - player)
	for _, from := range own.Squares() {
		for _, d := range Directions {
			dst = appendRay(dst, s, own, board.Bitboard(opp), player, from, d)
		}
	}
	return dst, nil
}

func appendRay(dst []board.State, s board.State, own, opp board.Bitboard,
	player int, from board.Square, d Direction) []board.State {

	row, col := from.Row(), from.Col()
	for i := 1; ; i++ {
		r, c := row+i*d.DRow, col+i*d.DCol
		if !board.OnBoard(r, c) {
			break
		}
		to := board.NewSquare(r, c)
		if own.Occupied(to) {
			break
		}
		next, _ := s.Move(player, from, to)
		dst = append(dst, next)
		if opp.Occupied(to) {
			break
		}
	}
	return dst
}
