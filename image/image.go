// Package image renders chess boards as SVG diagrams.
package image

import (
	"fmt"
	"image/color"
	"io"
	"strings"

	svg "github.com/ajstarks/svgo"

	chess "github.com/chesscore/rules"
)

const (
	sqWidth     = 45
	sqHeight    = 45
	boardWidth  = 8 * sqWidth
	boardHeight = 8 * sqHeight
)

// SVG writes the board SVG representation into the writer.
// An error is returned if there is an error writing data.
// SVG also takes options which can customize the image output.
func SVG(w io.Writer, b *chess.Board, options ...func(*Encoder)) error {
	e := NewEncoder(w, options...)
	return e.EncodeSVG(b)
}

// SquareColors is designed to be used as an optional argument
// to the SVG function. It changes the default light and
// dark square colors to the colors given.
func SquareColors(light, dark color.Color) func(*Encoder) {
	return func(e *Encoder) {
		e.light = light
		e.dark = dark
	}
}

// MarkSquares is designed to be used as an optional argument
// to the SVG function. It marks the given squares with the
// color. A possible usage includes marking squares of the
// previous move.
func MarkSquares(c color.Color, sqs ...chess.Square) func(*Encoder) {
	return func(e *Encoder) {
		for _, sq := range sqs {
			e.marks[sq] = c
		}
	}
}

// Perspective is designed to be used as an optional argument
// to the SVG function. It draws the board from the perspective
// of the given color. White is the default.
func Perspective(c chess.Color) func(*Encoder) {
	return func(e *Encoder) {
		e.perspective = c
	}
}

// An Encoder draws chess boards. It is configured by the SVG options.
type Encoder struct {
	w           io.Writer
	light       color.Color
	dark        color.Color
	perspective chess.Color
	marks       map[chess.Square]color.Color
}

// NewEncoder returns an Encoder writing to w.
func NewEncoder(w io.Writer, options ...func(*Encoder)) *Encoder {
	e := &Encoder{
		w:           w,
		light:       color.RGBA{235, 209, 166, 255},
		dark:        color.RGBA{165, 117, 81, 255},
		perspective: chess.White,
		marks:       map[chess.Square]color.Color{},
	}
	for _, op := range options {
		op(e)
	}
	return e
}

// errWriter remembers the first write error so the drawing code can
// ignore it until the end.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(p []byte) (int, error) {
	if ew.err != nil {
		return 0, ew.err
	}
	n, err := ew.w.Write(p)
	ew.err = err
	return n, err
}

// EncodeSVG writes the board SVG representation into
// the encoder's writer.
func (e *Encoder) EncodeSVG(b *chess.Board) error {
	ew := &errWriter{w: e.w}
	canvas := svg.New(ew)
	canvas.Start(boardWidth, boardHeight)
	canvas.Title(b.String())
	for i := 0; i < 64; i++ {
		sq := e.squareAt(i)
		x, y := xyForSquare(i)

		fill := e.colorForSquare(sq)
		if c, ok := e.marks[sq]; ok {
			fill = c
		}
		canvas.Rect(x, y, sqWidth, sqHeight, "fill: "+colorToHex(fill))

		if p := b.Piece(sq); p != nil {
			canvas.Text(x+sqWidth/2, y+sqHeight*3/4, strings.ToUpper(p.Type().String()), pieceStyle(p.Color()))
		}

		e.drawCoordinates(canvas, i, sq, x, y)
	}
	canvas.End()
	return ew.err
}

// squareAt maps the i-th drawn square, left to right and top to bottom,
// to a board square.
func (e *Encoder) squareAt(i int) chess.Square {
	row, col := 7-i/8, i%8
	if e.perspective == chess.Black {
		row, col = i/8, 7-i%8
	}
	sq, _ := chess.NewSquare(row, col)
	return sq
}

func (e *Encoder) colorForSquare(sq chess.Square) color.Color {
	if (sq.Row+sq.Col)%2 == 0 {
		return e.dark
	}
	return e.light
}

func (e *Encoder) drawCoordinates(canvas *svg.SVG, i int, sq chess.Square, x, y int) {
	style := "font-size:11px;fill: " + colorToHex(e.colorForSquare(chess.Square{Row: sq.Row, Col: sq.Col + 1}))
	if i%8 == 0 {
		canvas.Text(x+3, y+12, fmt.Sprint(sq.Row+1), style)
	}
	if i/8 == 7 {
		canvas.Text(x+sqWidth-9, y+sqHeight-4, string(rune('a'+sq.Col)), style)
	}
}

func pieceStyle(c chess.Color) string {
	fill, stroke := "#ffffff", "#000000"
	if c == chess.Black {
		fill, stroke = "#000000", "#ffffff"
	}
	return fmt.Sprintf("text-anchor:middle;font-family:sans-serif;font-weight:bold;font-size:30px;fill:%s;stroke:%s;stroke-width:1", fill, stroke)
}

func xyForSquare(i int) (x, y int) {
	return (i % 8) * sqWidth, (i / 8) * sqHeight
}

func colorToHex(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return strings.ToUpper(fmt.Sprintf("#%02x%02x%02x", uint8(r>>8), uint8(g>>8), uint8(b>>8)))
}
