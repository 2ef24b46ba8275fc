package chess

import (
	"fmt"
	"strings"
)

// Notation is the interface implemented by objects that can
// encode and decode moves.
type Notation interface {
	Encoder
	Decoder
}

// Encoder is the interface implemented by objects that can
// encode a move into a string given the position. It is not
// the encoders responsibility to validate the move.
type Encoder interface {
	Encode(pos *Position, m Move) string
}

// Decoder is the interface implemented by objects that can
// decode a string into a move given the position. The returned
// move is always one of the position's legal moves.
type Decoder interface {
	Decode(pos *Position, s string) (Move, error)
}

// UCINotation is a more computer friendly alternative to algebraic
// notation. This notation uses the same format as the UCI (Universal Chess
// Interface). Examples: e2e4, e7e5, e1g1 (white short castling), e7e8q (for promotion)
type UCINotation struct{}

// String implements the fmt.Stringer interface and returns
// the notation's name.
func (UCINotation) String() string {
	return "UCI Notation"
}

// Encode implements the Encoder interface.
func (UCINotation) Encode(_ *Position, m Move) string {
	return m.String()
}

// Decode implements the Decoder interface.
func (UCINotation) Decode(pos *Position, s string) (Move, error) {
	if len(s) < 4 || len(s) > 5 {
		return Move{}, fmt.Errorf("%w: %q is not a UCI move", ErrInvalidNotation, s)
	}
	s1, err := ParseSquare(s[0:2])
	if err != nil {
		return Move{}, fmt.Errorf("%w: %q: %w", ErrInvalidNotation, s, err)
	}
	s2, err := ParseSquare(s[2:4])
	if err != nil {
		return Move{}, fmt.Errorf("%w: %q: %w", ErrInvalidNotation, s, err)
	}
	promo := NoPieceType
	if len(s) == 5 {
		promo = pieceTypeFromByte(s[4])
		if promo == NoPieceType || promo == King || promo == Pawn {
			return Move{}, fmt.Errorf("%w: %q has a bad promotion piece", ErrInvalidNotation, s)
		}
	}
	for _, m := range pos.ValidMoves() {
		if m.s1 == s1 && m.s2 == s2 && m.promo == promo {
			return m, nil
		}
	}
	return Move{}, fmt.Errorf("%w: %s in %s", ErrIllegalMove, s, pos)
}

// AlgebraicNotation (or Standard Algebraic Notation) is the
// official chess notation used by FIDE. Examples: e4, e5,
// O-O (short castling), e8=Q (promotion)
//
// Decoding looks the string up among the encodings of the legal moves;
// it is not a general SAN parser.
type AlgebraicNotation struct{}

// String implements the fmt.Stringer interface and returns
// the notation's name.
func (AlgebraicNotation) String() string {
	return "Algebraic Notation"
}

// Encode implements the Encoder interface.
func (AlgebraicNotation) Encode(pos *Position, m Move) string {
	var sb strings.Builder
	switch {
	case m.typ == Castle && m.s2.Col > m.s1.Col:
		sb.WriteString("O-O")
	case m.typ == Castle:
		sb.WriteString("O-O-O")
	case m.piece == Pawn:
		if m.IsCapture() {
			sb.WriteByte(byte('a' + m.s1.Col))
			sb.WriteByte('x')
		}
		sb.WriteString(m.s2.String())
		if m.promo != NoPieceType {
			sb.WriteByte('=')
			sb.WriteString(fenLetter(m.promo, White))
		}
	default:
		sb.WriteString(fenLetter(m.piece, White))
		sb.WriteString(disambiguation(pos, m))
		if m.IsCapture() {
			sb.WriteByte('x')
		}
		sb.WriteString(m.s2.String())
	}
	sb.WriteString(checkSuffix(pos, m))
	return sb.String()
}

// Decode implements the Decoder interface.
func (n AlgebraicNotation) Decode(pos *Position, s string) (Move, error) {
	want := strings.TrimRight(s, "+#!?")
	if want == "" {
		return Move{}, fmt.Errorf("%w: empty move", ErrInvalidNotation)
	}
	var found []Move
	for _, m := range pos.ValidMoves() {
		if strings.TrimRight(n.Encode(pos, m), "+#") == want {
			found = append(found, m)
		}
	}
	switch len(found) {
	case 0:
		return Move{}, fmt.Errorf("%w: %s in %s", ErrIllegalMove, s, pos)
	case 1:
		return found[0], nil
	}
	return Move{}, fmt.Errorf("%w: %s in %s", ErrAmbiguousNotation, s, pos)
}

// disambiguation returns the file, rank or square needed to tell m
// apart from other legal moves of the same piece type to the same square.
func disambiguation(pos *Position, m Move) string {
	if pos == nil {
		return ""
	}
	var sameFile, sameRank, other bool
	for _, o := range pos.ValidMoves() {
		if o.piece != m.piece || o.s2 != m.s2 || o.s1 == m.s1 {
			continue
		}
		other = true
		if o.s1.Col == m.s1.Col {
			sameFile = true
		}
		if o.s1.Row == m.s1.Row {
			sameRank = true
		}
	}
	switch {
	case !other:
		return ""
	case !sameFile:
		return string(rune('a' + m.s1.Col))
	case !sameRank:
		return string(rune('1' + m.s1.Row))
	}
	return m.s1.String()
}

func checkSuffix(pos *Position, m Move) string {
	if pos == nil {
		return ""
	}
	next := pos.Update(m)
	if !next.InCheck() {
		return ""
	}
	if len(next.ValidMoves()) == 0 {
		return "#"
	}
	return "+"
}
