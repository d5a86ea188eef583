package board

import (
	"errors"
	"testing"

	"github.com/matryer/is"
)

func TestPutInvalidPlayer(t *testing.T) {
	is := is.New(t)
	var s State
	err := s.Put(2, NewSquare(0, 0))
	is.True(errors.Is(err, ErrInvalidPlayer))
	err = s.Put(-1, NewSquare(0, 0))
	is.True(errors.Is(err, ErrInvalidPlayer))
	_, err = s.IsEmpty(7)
	is.True(errors.Is(err, ErrInvalidPlayer))
	_, err = s.Pieces(3)
	is.True(errors.Is(err, ErrInvalidPlayer))
}

func TestMaskInvalidPlayer(t *testing.T) {
	is := is.New(t)
	var s State
	for _, player := range []int{-1, 2, 3} {
		func() {
			defer func() {
				err, ok := recover().(error)
				is.True(ok)
				is.True(errors.Is(err, ErrInvalidPlayer))
			}()
			s.Mask(player)
		}()
	}
}

func TestPutAndIsEmpty(t *testing.T) {
	is := is.New(t)
	var s State
	empty, err := s.IsEmpty(Player0)
	is.NoErr(err)
	is.True(empty)

	is.NoErr(s.Put(Player0, NewSquare(3, 4)))
	empty, err = s.IsEmpty(Player0)
	is.NoErr(err)
	is.True(!empty)
	empty, err = s.IsEmpty(Player1)
	is.NoErr(err)
	is.True(empty)
	is.Equal(s.Mask(Player0), uint64(1)<<28)
}

func TestCompare(t *testing.T) {
	is := is.New(t)
	a, err := FromMasks(1, 2)
	is.NoErr(err)
	b, err := FromMasks(1, 4)
	is.NoErr(err)
	c, err := FromMasks(2, 1)
	is.NoErr(err)

	is.Equal(a.Compare(a), 0)
	is.Equal(a.Compare(b), -1)
	is.Equal(b.Compare(a), 1)
	// player 0 mask dominates.
	is.Equal(b.Compare(c), -1)
	is.True(a.Less(c))
	is.True(!c.Less(a))
	is.True(a == State{players: [2]Bitboard{1, 2}})
}

func TestHash(t *testing.T) {
	is := is.New(t)
	s, err := FromMasks(0xF0, 0x0F00)
	is.NoErr(err)
	is.Equal(s.Hash(), uint64(0x0FF0))
}

func TestFromMasksOverlap(t *testing.T) {
	is := is.New(t)
	_, err := FromMasks(3, 2)
	is.True(errors.Is(err, ErrOverlap))

	var s State
	is.NoErr(s.Put(Player0, 5))
	is.NoErr(s.Put(Player1, 5))
	is.True(errors.Is(s.Validate(), ErrOverlap))
}

func TestSquare(t *testing.T) {
	is := is.New(t)
	sq := NewSquare(6, 3)
	is.Equal(int(sq), 51)
	is.Equal(sq.Row(), 6)
	is.Equal(sq.Col(), 3)
	is.Equal(sq.String(), "(6,3)")
	_, err := NewSquareChecked(8, 0)
	is.True(errors.Is(err, ErrOffBoard))
	_, err = NewSquareChecked(0, -1)
	is.True(errors.Is(err, ErrOffBoard))
}

func TestBitboardSquares(t *testing.T) {
	is := is.New(t)
	bb := EmptyBB.Set(63).Set(0).Set(17)
	is.Equal(bb.Count(), 3)
	is.Equal(bb.Squares(), []Square{0, 17, 63})
	bb = bb.Clear(17)
	is.True(!bb.Occupied(17))
	is.Equal(bb.Count(), 2)
}

func TestMove(t *testing.T) {
	is := is.New(t)
	var s State
	s.Put(Player0, NewSquare(0, 0))
	s.Put(Player1, NewSquare(1, 1))

	moved, captured := s.Move(Player0, NewSquare(0, 0), NewSquare(1, 1))
	is.True(captured)
	is.Equal(moved.Mask(Player0), uint64(1)<<9)
	is.Equal(moved.Mask(Player1), uint64(0))

	moved, captured = s.Move(Player1, NewSquare(1, 1), NewSquare(2, 2))
	is.True(!captured)
	is.Equal(moved.Mask(Player0), uint64(1))
	is.Equal(moved.Mask(Player1), uint64(1)<<18)
	// the original state is untouched.
	is.Equal(s.Mask(Player1), uint64(1)<<9)
}

func TestDiagramRoundTrip(t *testing.T) {
	is := is.New(t)
	diagram := `
w.......
.b......
........
........
...w....
........
........
.......w
`
	s, err := FromDiagram(diagram)
	is.NoErr(err)
	p0, _ := s.Pieces(Player0)
	p1, _ := s.Pieces(Player1)
	is.Equal(p0.Squares(), []Square{0, 35, 63})
	is.Equal(p1.Squares(), []Square{9})
	is.Equal("\n"+s.String(), diagram)
}

func TestFromDiagramErrors(t *testing.T) {
	is := is.New(t)
	_, err := FromDiagram("w.......\n")
	is.True(errors.Is(err, ErrBadDiagram))
	_, err = FromDiagram("x.......\n")
	is.True(errors.Is(err, ErrBadDiagram))
}
