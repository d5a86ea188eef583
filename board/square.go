package board

import (
	"errors"
	"fmt"
)

const (
	// Dim is the number of rows (and columns) on the board.
	Dim = 8
	// NumSquares is the total number of squares on the board.
	NumSquares = Dim * Dim
)

var ErrOffBoard = errors.New("square is off the board")

// A Square is a board square index, row*8+col.
type Square uint8

// NewSquare does not check its arguments; use NewSquareChecked for
// untrusted input.
func NewSquare(row, col int) Square {
	return Square(row*Dim + col)
}

func NewSquareChecked(row, col int) (Square, error) {
	if !OnBoard(row, col) {
		return 0, fmt.Errorf("%w: (%d,%d)", ErrOffBoard, row, col)
	}
	return NewSquare(row, col), nil
}

// OnBoard reports whether (row, col) lies within the 8x8 grid.
func OnBoard(row, col int) bool {
	return row >= 0 && row < Dim && col >= 0 && col < Dim
}

func (sq Square) Row() int {
	return int(sq) / Dim
}

func (sq Square) Col() int {
	return int(sq) % Dim
}

func (sq Square) String() string {
	return fmt.Sprintf("(%d,%d)", sq.Row(), sq.Col())
}
