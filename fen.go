package chess

import (
	"fmt"
	"strconv"
	"strings"
)

// FENStartPos is the FEN string of the standard starting position.
const FENStartPos = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// BoardFromFEN decodes a FEN board field. Pieces off their home squares
// are marked as moved; pawns on their starting row and kings and rooks
// on their home squares are not.
func BoardFromFEN(field string) (*Board, error) {
	ranks := strings.Split(field, "/")
	if len(ranks) != 8 {
		return nil, fmt.Errorf("%w: board field %q must have 8 ranks", ErrInvalidFEN, field)
	}
	type placement struct {
		typ   PieceType
		color Color
		sq    Square
	}
	var found [64]*placement
	for i, rank := range ranks {
		row := 7 - i
		col := 0
		for j := 0; j < len(rank); j++ {
			ch := rank[j]
			if ch >= '1' && ch <= '8' {
				col += int(ch - '0')
				continue
			}
			t := pieceTypeFromByte(ch)
			if t == NoPieceType {
				return nil, fmt.Errorf("%w: unknown piece %q", ErrInvalidFEN, ch)
			}
			sq, ok := NewSquare(row, col)
			if !ok {
				return nil, fmt.Errorf("%w: rank %q overflows", ErrInvalidFEN, rank)
			}
			if t == Pawn && (row == 0 || row == 7) {
				return nil, fmt.Errorf("%w: pawn on %s", ErrInvalidFEN, sq)
			}
			c := Black
			if ch >= 'A' && ch <= 'Z' {
				c = White
			}
			found[sq.index()] = &placement{typ: t, color: c, sq: sq}
			col++
		}
		if col != 8 {
			return nil, fmt.Errorf("%w: rank %q does not cover 8 files", ErrInvalidFEN, rank)
		}
	}

	b := &Board{pieces: make([]*Piece, 0, 32)}
	for _, pl := range found {
		if pl == nil {
			continue
		}
		b.place(pl.typ, pl.color, pl.sq, !onHomeSquare(pl.typ, pl.color, pl.sq))
	}
	return b, nil
}

func onHomeSquare(t PieceType, c Color, sq Square) bool {
	switch t {
	case Pawn:
		return sq.Row == pawnStartRow(c)
	case King:
		return sq.Row == backRow(c) && sq.Col == 4
	case Rook:
		return sq.Row == backRow(c) && (sq.Col == 0 || sq.Col == 7)
	}
	return false
}

// decodeFEN parses a full FEN string. A lone board field is accepted
// and gets White to move, no castling, no en passant and clocks 0 1.
func decodeFEN(fen string) (*Position, error) {
	fields := strings.Fields(strings.TrimSpace(fen))
	if len(fields) != 1 && (len(fields) < 4 || len(fields) > 6) {
		return nil, fmt.Errorf("%w: %q has %d fields", ErrInvalidFEN, fen, len(fields))
	}
	b, err := BoardFromFEN(fields[0])
	if err != nil {
		return nil, err
	}
	if err := checkKings(b); err != nil {
		return nil, err
	}
	pos := &Position{board: b, turn: White, enPassant: NoSquare, moveCount: 1}
	if len(fields) == 1 {
		return checkWaitingKing(pos)
	}

	switch fields[1] {
	case "w":
		pos.turn = White
	case "b":
		pos.turn = Black
	default:
		return nil, fmt.Errorf("%w: bad active color %q", ErrInvalidFEN, fields[1])
	}

	cr, err := parseCastleRights(fields[2])
	if err != nil {
		return nil, err
	}
	pos.castleRights = normalizeCastleRights(b, cr)

	if fields[3] != "-" {
		sq, err := ParseSquare(fields[3])
		if err != nil {
			return nil, fmt.Errorf("%w: bad en passant square %q", ErrInvalidFEN, fields[3])
		}
		// The target lies behind a pawn the opponent just double stepped.
		if opp := pos.turn.Other(); sq.Row != pawnStartRow(opp)+int8(pawnAdvance(opp)) {
			return nil, fmt.Errorf("%w: en passant square %s with %s to move", ErrInvalidFEN, sq, pos.turn.Name())
		}
		pos.enPassant = sq
	}

	if len(fields) > 4 {
		n, err := strconv.Atoi(fields[4])
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: bad half move clock %q", ErrInvalidFEN, fields[4])
		}
		pos.halfMoveClock = n
	}
	if len(fields) > 5 {
		n, err := strconv.Atoi(fields[5])
		if err != nil || n < 1 {
			return nil, fmt.Errorf("%w: bad move number %q", ErrInvalidFEN, fields[5])
		}
		pos.moveCount = n
	}
	return checkWaitingKing(pos)
}

// checkWaitingKing rejects positions where the side that just moved
// left its king attacked.
func checkWaitingKing(pos *Position) (*Position, error) {
	if inCheck(pos.board, pos.turn.Other()) {
		return nil, fmt.Errorf("%w: %s to move can capture the %s king",
			ErrInvalidFEN, pos.turn.Name(), pos.turn.Other().Name())
	}
	return pos, nil
}

func checkKings(b *Board) error {
	var kings [3]int
	for _, p := range b.pieces {
		if p.typ == King {
			kings[p.color]++
		}
	}
	if kings[White] != 1 || kings[Black] != 1 {
		return fmt.Errorf("%w: want one king per color, got %d white and %d black",
			ErrInvalidFEN, kings[White], kings[Black])
	}
	return nil
}

func parseCastleRights(s string) (CastleRights, error) {
	var cr CastleRights
	if s == "-" {
		return cr, nil
	}
	seen := map[rune]bool{}
	for _, ch := range s {
		if seen[ch] {
			return cr, fmt.Errorf("%w: repeated castling right %q", ErrInvalidFEN, ch)
		}
		seen[ch] = true
		switch ch {
		case 'K':
			cr.white.kingSide = true
		case 'Q':
			cr.white.queenSide = true
		case 'k':
			cr.black.kingSide = true
		case 'q':
			cr.black.queenSide = true
		default:
			return cr, fmt.Errorf("%w: bad castling rights %q", ErrInvalidFEN, s)
		}
	}
	return cr, nil
}

// normalizeCastleRights drops rights whose king or rook is not at home.
func normalizeCastleRights(b *Board, cr CastleRights) CastleRights {
	for _, c := range [2]Color{White, Black} {
		row := backRow(c)
		king := b.Piece(Square{Row: row, Col: 4})
		if king == nil || king.typ != King || king.color != c {
			cr.revoke(c, KingSide)
			cr.revoke(c, QueenSide)
			continue
		}
		for _, w := range [2]struct {
			side Side
			col  int8
		}{{KingSide, 7}, {QueenSide, 0}} {
			rook := b.Piece(Square{Row: row, Col: w.col})
			if rook == nil || rook.typ != Rook || rook.color != c {
				cr.revoke(c, w.side)
			}
		}
	}
	return cr
}
