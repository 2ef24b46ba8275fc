package chess

import (
	"strconv"
	"strings"
)

// Side represents a side of the board.
type Side int8

const (
	// KingSide is the right side of the board from white's perspective.
	KingSide Side = iota + 1
	// QueenSide is the left side of the board from white's perspective.
	QueenSide
)

// sideRights are one color's castling flags. They only ever go from
// true to false.
type sideRights struct {
	kingSide  bool
	queenSide bool
}

// CastleRights holds the castling eligibility of both colors.
type CastleRights struct {
	white sideRights
	black sideRights
}

// AllCastleRights is the castling state of the starting position.
var AllCastleRights = CastleRights{
	white: sideRights{kingSide: true, queenSide: true},
	black: sideRights{kingSide: true, queenSide: true},
}

// CanCastle returns true if the given color and side combination
// can still castle.
func (cr CastleRights) CanCastle(c Color, side Side) bool {
	r := cr.side(c)
	if r == nil {
		return false
	}
	if side == KingSide {
		return r.kingSide
	}
	return r.queenSide
}

func (cr *CastleRights) side(c Color) *sideRights {
	switch c {
	case White:
		return &cr.white
	case Black:
		return &cr.black
	}
	return nil
}

func (cr *CastleRights) revoke(c Color, side Side) {
	r := cr.side(c)
	if r == nil {
		return
	}
	if side == KingSide {
		r.kingSide = false
	} else {
		r.queenSide = false
	}
}

// String implements the fmt.Stringer interface and returns
// a FEN compatible string. Ex. KQq
func (cr CastleRights) String() string {
	var sb strings.Builder
	if cr.white.kingSide {
		sb.WriteByte('K')
	}
	if cr.white.queenSide {
		sb.WriteByte('Q')
	}
	if cr.black.kingSide {
		sb.WriteByte('k')
	}
	if cr.black.queenSide {
		sb.WriteByte('q')
	}
	if sb.Len() == 0 {
		return "-"
	}
	return sb.String()
}

// Position is the full state of a game at one point: the board, the
// side to move, castling rights, en passant target and clocks.
type Position struct {
	board         *Board
	turn          Color
	castleRights  CastleRights
	enPassant     Square
	halfMoveClock int
	moveCount     int
}

// StartingPosition returns the starting position
// rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1
func StartingPosition() *Position {
	return &Position{
		board:        NewBoard(),
		turn:         White,
		castleRights: AllCastleRights,
		enPassant:    NoSquare,
		moveCount:    1,
	}
}

// Board returns the position's board.
func (pos *Position) Board() *Board {
	return pos.board
}

// Turn returns the color to move next.
func (pos *Position) Turn() Color {
	return pos.turn
}

// CastleRights returns the castling rights of the position.
func (pos *Position) CastleRights() CastleRights {
	return pos.castleRights
}

// EnPassantSquare returns the en passant target square or NoSquare.
func (pos *Position) EnPassantSquare() Square {
	return pos.enPassant
}

// HalfMoveClock returns the number of plies since the last pawn move or capture.
func (pos *Position) HalfMoveClock() int {
	return pos.halfMoveClock
}

// MoveCount returns the full move number, starting at 1 and
// incremented after Black moves.
func (pos *Position) MoveCount() int {
	return pos.moveCount
}

// ValidMoves returns the legal moves for the side to move in generation order.
func (pos *Position) ValidMoves() []Move {
	return legalMoves(pos)
}

// InCheck reports whether the side to move is in check.
func (pos *Position) InCheck() bool {
	return inCheck(pos.board, pos.turn)
}

// String implements the fmt.Stringer interface and returns the full FEN.
func (pos *Position) String() string {
	return strings.Join([]string{
		pos.board.String(),
		pos.turn.String(),
		pos.castleRights.String(),
		pos.enPassant.String(),
		strconv.Itoa(pos.halfMoveClock),
		strconv.Itoa(pos.moveCount),
	}, " ")
}

func (pos *Position) copy() *Position {
	cp := *pos
	cp.board = pos.board.Clone()
	return &cp
}

// Update returns the position after the move is played. The receiver is
// not modified. The move is assumed to be legal in pos.
func (pos *Position) Update(m Move) *Position {
	next := pos.copy()
	next.updateCastleRights(m)

	next.enPassant = NoSquare
	if m.typ == DoubleStep {
		next.enPassant = mustSquare(int(m.s1.Row)+pawnAdvance(pos.turn), int(m.s1.Col))
	}

	next.board.apply(m)

	if m.piece == Pawn || m.IsCapture() {
		next.halfMoveClock = 0
	} else {
		next.halfMoveClock++
	}
	if pos.turn == Black {
		next.moveCount++
	}
	next.turn = pos.turn.Other()
	return next
}

func (pos *Position) updateCastleRights(m Move) {
	mover := pos.turn
	if m.piece == King {
		pos.castleRights.revoke(mover, KingSide)
		pos.castleRights.revoke(mover, QueenSide)
	}
	if m.piece == Rook {
		revokeForCorner(&pos.castleRights, mover, m.s1)
	}
	if m.captured == Rook {
		revokeForCorner(&pos.castleRights, mover.Other(), m.s2)
	}
}

// revokeForCorner clears c's right on the wing whose rook starts on sq.
func revokeForCorner(cr *CastleRights, c Color, sq Square) {
	if sq.Row != backRow(c) {
		return
	}
	switch sq.Col {
	case 7:
		cr.revoke(c, KingSide)
	case 0:
		cr.revoke(c, QueenSide)
	}
}
