package image

import (
	"bytes"
	"errors"
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chess "github.com/chesscore/rules"
)

func render(t *testing.T, b *chess.Board, options ...func(*Encoder)) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, SVG(&buf, b, options...))
	return buf.String()
}

func TestSVG(t *testing.T) {
	b := chess.NewBoard()
	out := render(t, b)

	assert.True(t, strings.HasPrefix(out, "<?xml"))
	assert.Contains(t, out, "<svg")
	assert.Contains(t, out, b.String())
	assert.Equal(t, 64, strings.Count(out, "<rect"))
	assert.Contains(t, out, "#EBD1A6")
	assert.Contains(t, out, "#A57551")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), "</svg>"))
}

func TestSVGSquareColors(t *testing.T) {
	out := render(t, chess.NewBoard(), SquareColors(color.White, color.Black))
	assert.Equal(t, 32, strings.Count(out, `style="fill: #FFFFFF"`))
	assert.Equal(t, 32, strings.Count(out, `style="fill: #000000"`))
}

func TestSVGMarkSquares(t *testing.T) {
	e2, err := chess.ParseSquare("e2")
	require.NoError(t, err)
	e4, err := chess.ParseSquare("e4")
	require.NoError(t, err)

	yellow := color.RGBA{255, 255, 0, 255}
	out := render(t, chess.NewBoard(), MarkSquares(yellow, e2, e4))
	assert.Equal(t, 2, strings.Count(out, `style="fill: #FFFF00"`))
}

func TestSVGPerspective(t *testing.T) {
	b := chess.NewBoard()
	white := render(t, b)
	black := render(t, b, Perspective(chess.Black))
	assert.NotEqual(t, white, black)

	// The top left square is a8 for white and h1 for black, both light.
	e := NewEncoder(nil, Perspective(chess.Black))
	assert.Equal(t, "h1", e.squareAt(0).String())
	assert.Equal(t, "a8", NewEncoder(nil).squareAt(0).String())
	assert.Equal(t, "a1", e.squareAt(63).String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestSVGWriteError(t *testing.T) {
	err := SVG(failingWriter{}, chess.NewBoard())
	assert.EqualError(t, err, "disk full")
}
