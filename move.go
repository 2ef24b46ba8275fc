package chess

// MoveType is the category of a move.
type MoveType int8

const (
	// Standard is a non-capturing move.
	Standard MoveType = iota
	// Capture is a move onto a square holding an enemy piece.
	Capture
	// DoubleStep is a pawn's two square advance from its starting row.
	DoubleStep
	// Castle is a king move of two columns that also relocates a rook.
	Castle
	// EnPassant is a pawn capture of a pawn that just double-stepped.
	EnPassant
	// Promotion is a pawn move onto the last row.
	Promotion
)

func (t MoveType) String() string {
	switch t {
	case Standard:
		return "STANDARD"
	case Capture:
		return "CAPTURE"
	case DoubleStep:
		return "DOUBLE_STEP"
	case Castle:
		return "CASTLE"
	case EnPassant:
		return "EN_PASSANT"
	case Promotion:
		return "PROMOTION"
	}
	return "UNKNOWN"
}

// A Move is an immutable description of one ply. Moves are comparable
// with ==.
type Move struct {
	s1       Square
	s2       Square
	piece    PieceType
	typ      MoveType
	promo    PieceType
	captured PieceType
}

// NewMove returns a move for use as a request against Game.MakeMove.
// Only the fields used for legal move matching are set.
func NewMove(s1, s2 Square, typ MoveType, promo PieceType) Move {
	return Move{s1: s1, s2: s2, typ: typ, promo: promo}
}

// S1 returns the origin square of the move.
func (m Move) S1() Square {
	return m.s1
}

// S2 returns the destination square of the move.
func (m Move) S2() Square {
	return m.s2
}

// Piece returns the type of the moving piece.
func (m Move) Piece() PieceType {
	return m.piece
}

// Type returns the move category.
func (m Move) Type() MoveType {
	return m.typ
}

// Promo returns the promotion piece type, or NoPieceType.
func (m Move) Promo() PieceType {
	return m.promo
}

// Captured returns the type of the piece removed by the move, or NoPieceType.
func (m Move) Captured() PieceType {
	return m.captured
}

// IsCapture reports whether the move removes an enemy piece.
func (m Move) IsCapture() bool {
	return m.captured != NoPieceType
}

// capturedSquare is where the captured piece stood. For en passant this
// is beside the origin, not the destination.
func (m Move) capturedSquare() Square {
	if m.typ == EnPassant {
		return Square{Row: m.s1.Row, Col: m.s2.Col}
	}
	return m.s2
}

// matches reports whether other names the same move: same squares,
// category and promotion kind.
func (m Move) matches(other Move) bool {
	return m.s1 == other.s1 && m.s2 == other.s2 && m.typ == other.typ && m.promo == other.promo
}

// String returns the move in coordinate form, e.g. "e2e4" or "e7e8q".
func (m Move) String() string {
	return m.s1.String() + m.s2.String() + m.promo.String()
}
