// Package render draws positions as SVG boards.
package render

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/domino14/raysolver/board"
)

type Options struct {
	SquareSize int
	// Gap between consecutive boards of a line.
	Gap        int
	LightColor string
	DarkColor  string
}

func DefaultOptions() Options {
	return Options{
		SquareSize: 40,
		Gap:        20,
		LightColor: "#f0d9b5",
		DarkColor:  "#b58863",
	}
}

func (o Options) boardSize() int {
	return o.SquareSize * board.Dim
}

// Board writes a single position as an SVG document.
func Board(w io.Writer, s board.State, opts Options) {
	Line(w, []board.State{s}, opts)
}

// Line writes a sequence of positions side by side, left to right, as one
// SVG document. Each board is labeled with its ply number.
func Line(w io.Writer, states []board.State, opts Options) {
	size := opts.boardSize()
	labelHeight := opts.SquareSize / 2
	width := len(states)*size + max(len(states)-1, 0)*opts.Gap
	canvas := svg.New(w)
	canvas.Start(width, size+labelHeight)
	for i, s := range states {
		x := i * (size + opts.Gap)
		drawBoard(canvas, x, labelHeight, s, opts)
		canvas.Text(x+size/2, labelHeight*3/4, fmt.Sprintf("ply %d", i),
			"text-anchor:middle;font-size:12px;font-family:sans-serif")
	}
	canvas.End()
}

func drawBoard(canvas *svg.SVG, x0, y0 int, s board.State, opts Options) {
	sq := opts.SquareSize
	radius := sq * 2 / 5
	for row := 0; row < board.Dim; row++ {
		for col := 0; col < board.Dim; col++ {
			x, y := x0+col*sq, y0+row*sq
			fill := opts.LightColor
			if (row+col)%2 == 1 {
				fill = opts.DarkColor
			}
			canvas.Rect(x, y, sq, sq, "fill:"+fill)

			square := board.NewSquare(row, col)
			cx, cy := x+sq/2, y+sq/2
			switch {
			case s.Mask(board.Player0)&(1<<square) != 0:
				canvas.Circle(cx, cy, radius, "fill:white;stroke:black;stroke-width:2")
			case s.Mask(board.Player1)&(1<<square) != 0:
				canvas.Circle(cx, cy, radius, "fill:black;stroke:black;stroke-width:2")
			}
		}
	}
}
