package movegen

import (
	"errors"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/raysolver/board"
)

func mustDiagram(t *testing.T, d string) board.State {
	t.Helper()
	s, err := board.FromDiagram(d)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

// moved returns the square the player's piece moved to, and the square it
// left.
func moved(before, after board.State, player int) (from, to board.Bitboard) {
	b := board.Bitboard(before.Mask(player))
	a := board.Bitboard(after.Mask(player))
	return b &^ a, a &^ b
}

func TestCaptureCorner(t *testing.T) {
	is := is.New(t)
	var s board.State
	is.NoErr(s.Put(board.Player0, board.NewSquare(0, 0)))
	is.NoErr(s.Put(board.Player1, board.NewSquare(1, 1)))

	moves, err := AllMoves(s, board.Player0)
	is.NoErr(err)
	// 7 along the top row, 7 down the first column, and the capture.
	is.Equal(len(moves), 15)

	captures := 0
	for _, m := range moves {
		empty, err := m.IsEmpty(board.Player1)
		is.NoErr(err)
		if empty {
			captures++
			is.Equal(m.Mask(board.Player0), uint64(1)<<board.NewSquare(1, 1))
		}
	}
	is.Equal(captures, 1)
}

func TestLonePieceMoveCounts(t *testing.T) {
	is := is.New(t)
	cases := []struct {
		row, col int
		expected int
	}{
		{0, 0, 21},
		{3, 3, 27},
		{7, 7, 21},
		{0, 3, 21},
		{2, 5, 25},
	}
	for _, c := range cases {
		var s board.State
		is.NoErr(s.Put(board.Player1, board.NewSquare(c.row, c.col)))
		moves, err := AllMoves(s, board.Player1)
		is.NoErr(err)
		is.Equal(len(moves), c.expected)
	}
}

func TestGenerationOrder(t *testing.T) {
	is := is.New(t)
	var s board.State
	is.NoErr(s.Put(board.Player0, board.NewSquare(3, 3)))
	moves, err := AllMoves(s, board.Player0)
	is.NoErr(err)
	// The first ray is (-1,-1), walked outward.
	is.Equal(moves[0].Mask(board.Player0), uint64(1)<<board.NewSquare(2, 2))
	is.Equal(moves[1].Mask(board.Player0), uint64(1)<<board.NewSquare(1, 1))
	is.Equal(moves[2].Mask(board.Player0), uint64(1)<<board.NewSquare(0, 0))
	// then (-1,0).
	is.Equal(moves[3].Mask(board.Player0), uint64(1)<<board.NewSquare(2, 3))
	// and the last one is the far end of the (1,1) ray.
	is.Equal(moves[len(moves)-1].Mask(board.Player0), uint64(1)<<board.NewSquare(7, 7))
}

func TestOwnPieceBlocks(t *testing.T) {
	is := is.New(t)
	s := mustDiagram(t, `
w.w.....
........
w.......
........
........
........
........
........`)
	moves, err := AllMoves(s, board.Player0)
	is.NoErr(err)
	origin := board.NewSquare(0, 0)
	for _, m := range moves {
		from, to := moved(s, m, board.Player0)
		if from.Occupied(origin) {
			// (0,0) can't reach past (0,1) or (1,0).
			is.True(!to.Occupied(board.NewSquare(0, 2)))
			is.True(!to.Occupied(board.NewSquare(0, 3)))
			is.True(!to.Occupied(board.NewSquare(2, 0)))
			is.True(!to.Occupied(board.NewSquare(3, 0)))
		}
	}
}

func TestCaptureStopsRay(t *testing.T) {
	is := is.New(t)
	s := mustDiagram(t, `
w..b....
........
........
........
........
........
........
........`)
	moves, err := AllMoves(s, board.Player0)
	is.NoErr(err)
	for _, m := range moves {
		_, to := moved(s, m, board.Player0)
		for col := 4; col < 8; col++ {
			is.True(!to.Occupied(board.NewSquare(0, col)))
		}
	}
	// 3 along the row (two slides and a capture), 7 down, 7 diagonal.
	is.Equal(len(moves), 17)
}

func TestMoveProperties(t *testing.T) {
	is := is.New(t)
	diagrams := []string{`
w..b....
.w......
........
...w....
........
.....b..
........
.......w`, `
........
........
..www...
..wbw...
..www...
........
........
........`, `
b......b
........
........
...ww...
...ww...
........
........
b......b`}

	for _, d := range diagrams {
		s := mustDiagram(t, d)
		for player := 0; player < 2; player++ {
			moves, err := AllMoves(s, player)
			is.NoErr(err)
			is.True(len(moves) > 0)
			opp := 1 - player
			oppBefore := board.Bitboard(s.Mask(opp))
			for _, m := range moves {
				is.NoErr(m.Validate())
				from, to := moved(s, m, player)
				is.Equal(from.Count(), 1)
				is.Equal(to.Count(), 1)
				is.True(from != to)
				oppAfter := board.Bitboard(m.Mask(opp))
				landing := to.Squares()[0]
				if oppBefore.Occupied(landing) {
					is.True(!oppAfter.Occupied(landing))
					is.Equal(oppAfter.Count(), oppBefore.Count()-1)
				} else {
					is.Equal(oppAfter, oppBefore)
				}
			}
		}
	}
}

func TestSurroundedPieceOnlyCaptures(t *testing.T) {
	is := is.New(t)
	s := mustDiagram(t, `
........
........
..www...
..wbw...
..www...
........
........
........`)
	moves, err := AllMoves(s, board.Player1)
	is.NoErr(err)
	is.Equal(len(moves), 8)
	for _, m := range moves {
		is.Equal(board.Bitboard(m.Mask(board.Player0)).Count(), 7)
	}
}

func TestAppendMovesReusesBuffer(t *testing.T) {
	is := is.New(t)
	var s board.State
	is.NoErr(s.Put(board.Player0, board.NewSquare(4, 4)))
	buf := make([]board.State, 0, 64)
	buf, err := AppendMoves(buf[:0], s, board.Player0)
	is.NoErr(err)
	is.Equal(len(buf), 27)
	buf, err = AppendMoves(buf[:0], s, board.Player0)
	is.NoErr(err)
	is.Equal(len(buf), 27)
}

func TestInvalidPlayer(t *testing.T) {
	is := is.New(t)
	_, err := AllMoves(board.State{}, 2)
	is.True(errors.Is(err, board.ErrInvalidPlayer))
}
