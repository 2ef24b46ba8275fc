package chess

import (
	"fmt"
	"strconv"
	"strings"
)

// A Board is an 8x8 grid together with the live pieces standing on it.
// For every piece p in the collection, the grid cell at p's square
// holds p, and every occupied cell holds a piece of the collection.
type Board struct {
	grid   [64]*Piece
	pieces []*Piece
}

// NewBoard returns a board in the standard starting arrangement.
func NewBoard() *Board {
	b := &Board{pieces: make([]*Piece, 0, 32)}
	back := [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for col := 0; col < 8; col++ {
		b.place(back[col], White, mustSquare(0, col), false)
	}
	for col := 0; col < 8; col++ {
		b.place(Pawn, White, mustSquare(1, col), false)
	}
	for col := 0; col < 8; col++ {
		b.place(Pawn, Black, mustSquare(6, col), false)
	}
	for col := 0; col < 8; col++ {
		b.place(back[col], Black, mustSquare(7, col), false)
	}
	return b
}

// ReplayBoard plays the moves in order on a fresh starting board. Moves
// are applied as given; legality is the caller's concern, but each move
// must start on a square holding the piece it names.
func ReplayBoard(moves []Move) (*Board, error) {
	b := NewBoard()
	turn := White
	for i, m := range moves {
		p := b.Piece(m.s1)
		if p == nil || p.typ != m.piece || p.color != turn {
			return nil, fmt.Errorf("%w: ply %d %s", ErrIllegalMove, i+1, m)
		}
		b.apply(m)
		turn = turn.Other()
	}
	return b, nil
}

// SquareAt returns the square at row and col, or false when the
// coordinates fall off the board.
func (b *Board) SquareAt(row, col int) (Square, bool) {
	return NewSquare(row, col)
}

// Piece returns the piece on sq or nil if the square is empty or off the board.
func (b *Board) Piece(sq Square) *Piece {
	if !sq.Valid() {
		return nil
	}
	return b.grid[sq.index()]
}

// Pieces returns the live pieces of color c in collection order.
// NoColor returns every live piece.
func (b *Board) Pieces(c Color) []*Piece {
	out := make([]*Piece, 0, len(b.pieces))
	for _, p := range b.pieces {
		if c == NoColor || p.color == c {
			out = append(out, p)
		}
	}
	return out
}

// KingSquare returns the square of c's king. It panics with an
// *InvariantViolation if c has no king.
func (b *Board) KingSquare(c Color) Square {
	for _, p := range b.pieces {
		if p.typ == King && p.color == c {
			return p.sq
		}
	}
	invariant("no %s king on board %s", c.Name(), b)
	return NoSquare
}

func (b *Board) place(t PieceType, c Color, sq Square, moved bool) *Piece {
	if b.grid[sq.index()] != nil {
		invariant("square %s already occupied", sq)
	}
	p := &Piece{typ: t, color: c, sq: sq, moved: moved}
	b.grid[sq.index()] = p
	b.pieces = append(b.pieces, p)
	return p
}

func (b *Board) remove(p *Piece) {
	if b.grid[p.sq.index()] != p {
		invariant("piece %s not found on %s", p, p.sq)
	}
	b.grid[p.sq.index()] = nil
	for i, q := range b.pieces {
		if q == p {
			b.pieces = append(b.pieces[:i], b.pieces[i+1:]...)
			return
		}
	}
	invariant("piece %s on %s missing from piece list", p, p.sq)
}

func (b *Board) relocate(p *Piece, to Square) {
	b.grid[p.sq.index()] = nil
	p.sq = to
	p.moved = true
	b.grid[to.index()] = p
}

// apply plays an already classified move. It does not check legality.
func (b *Board) apply(m Move) {
	p := b.Piece(m.s1)
	if p == nil {
		invariant("no piece on %s for move %s", m.s1, m)
	}
	if m.captured != NoPieceType {
		victim := b.Piece(m.capturedSquare())
		if victim == nil || victim.color == p.color {
			invariant("no capturable piece on %s for move %s", m.capturedSquare(), m)
		}
		b.remove(victim)
	} else if b.Piece(m.s2) != nil {
		invariant("destination %s occupied for non-capture %s", m.s2, m)
	}
	b.relocate(p, m.s2)

	switch m.typ {
	case Castle:
		rookFrom, rookTo := castleRookSquares(m)
		rook := b.Piece(rookFrom)
		if rook == nil || rook.typ != Rook {
			invariant("no rook on %s for castle %s", rookFrom, m)
		}
		b.relocate(rook, rookTo)
	case Promotion:
		if m.promo == NoPieceType || m.promo == King || m.promo == Pawn {
			invariant("unspecified promotion kind for %s", m)
		}
		promoted := &Piece{typ: m.promo, color: p.color, sq: m.s2, moved: true}
		for i, q := range b.pieces {
			if q == p {
				b.pieces[i] = promoted
				break
			}
		}
		b.grid[m.s2.index()] = promoted
	}
}

// castleRookSquares returns where the rook starts and ends for a castle move.
func castleRookSquares(m Move) (Square, Square) {
	row := int(m.s1.Row)
	if m.s2.Col > m.s1.Col {
		return mustSquare(row, 7), mustSquare(row, 5)
	}
	return mustSquare(row, 0), mustSquare(row, 3)
}

// Clone returns a deep copy of the board. No piece is shared with the receiver.
func (b *Board) Clone() *Board {
	c := &Board{pieces: make([]*Piece, len(b.pieces))}
	for i, p := range b.pieces {
		cp := *p
		c.pieces[i] = &cp
		c.grid[cp.sq.index()] = &cp
	}
	return c
}

// String implements the fmt.Stringer interface and returns
// a string in the FEN board format: rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR
func (b *Board) String() string {
	var sb strings.Builder
	for row := 7; row >= 0; row-- {
		empty := 0
		for col := 0; col < 8; col++ {
			p := b.grid[row*8+col]
			if p == nil {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(p.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if row != 0 {
			sb.WriteByte('/')
		}
	}
	return sb.String()
}

// Draw returns visual representation of the board useful for debugging.
func (b *Board) Draw() string {
	var sb strings.Builder
	sb.WriteString("\n  a b c d e f g h\n")
	for row := 7; row >= 0; row-- {
		sb.WriteString(strconv.Itoa(row + 1))
		for col := 0; col < 8; col++ {
			sb.WriteByte(' ')
			if p := b.grid[row*8+col]; p != nil {
				sb.WriteString(p.String())
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// MarshalText implements the encoding.TextMarshaler interface and
// returns the FEN board field.
func (b *Board) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface and
// takes a FEN board field.
func (b *Board) UnmarshalText(text []byte) error {
	parsed, err := BoardFromFEN(string(text))
	if err != nil {
		return err
	}
	*b = *parsed
	return nil
}
