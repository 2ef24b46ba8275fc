package chess

import "fmt"

// A Square is a coordinate on the board. Row 0 is the first rank and
// column 0 is the a-file.
type Square struct {
	Row int8
	Col int8
}

// NoSquare is the zero-information square used for "no en passant target".
var NoSquare = Square{Row: -1, Col: -1}

// NewSquare returns the square at the given row and column and whether
// it lies on the board.
func NewSquare(row, col int) (Square, bool) {
	if row < 0 || row > 7 || col < 0 || col > 7 {
		return NoSquare, false
	}
	return Square{Row: int8(row), Col: int8(col)}, true
}

// mustSquare is NewSquare for coordinates the caller has already bounds checked.
func mustSquare(row, col int) Square {
	sq, ok := NewSquare(row, col)
	if !ok {
		invariant("square (%d,%d) out of range", row, col)
	}
	return sq
}

// ParseSquare decodes a square name such as "e4".
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}
	sq, ok := NewSquare(int(s[1]-'1'), int(s[0]-'a'))
	if !ok {
		return NoSquare, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}
	return sq, nil
}

// Valid reports whether the square lies on the board.
func (sq Square) Valid() bool {
	return sq.Row >= 0 && sq.Row <= 7 && sq.Col >= 0 && sq.Col <= 7
}

func (sq Square) index() int {
	return int(sq.Row)*8 + int(sq.Col)
}

// String returns the algebraic name of the square, or "-" for NoSquare.
func (sq Square) String() string {
	if !sq.Valid() {
		return "-"
	}
	return string([]byte{byte('a' + sq.Col), byte('1' + sq.Row)})
}

// offset returns the square reached by moving dr rows and dc columns.
func (sq Square) offset(dr, dc int) (Square, bool) {
	return NewSquare(int(sq.Row)+dr, int(sq.Col)+dc)
}
