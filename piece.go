package chess

// Color represents the color of a chess piece.
type Color int8

const (
	// NoColor represents no color.
	NoColor Color = iota
	// White represents the color white.
	White
	// Black represents the color black.
	Black
)

// Other returns the opposite color of the receiver.
func (c Color) Other() Color {
	switch c {
	case White:
		return Black
	case Black:
		return White
	}
	return NoColor
}

// String implements the fmt.Stringer interface and returns
// the color's FEN compatible notation.
func (c Color) String() string {
	switch c {
	case White:
		return "w"
	case Black:
		return "b"
	}
	return "-"
}

// Name returns a display friendly name.
func (c Color) Name() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	}
	return "No Color"
}

// PieceType is the type of a piece.
type PieceType int8

const (
	// NoPieceType represents a lack of piece type.
	NoPieceType PieceType = iota
	// King represents a king.
	King
	// Queen represents a queen.
	Queen
	// Rook represents a rook.
	Rook
	// Bishop represents a bishop.
	Bishop
	// Knight represents a knight.
	Knight
	// Pawn represents a pawn.
	Pawn
)

// PieceTypes returns all piece types in generation order.
func PieceTypes() [6]PieceType {
	return [6]PieceType{King, Queen, Rook, Bishop, Knight, Pawn}
}

// PromoTypes are the piece types a pawn may promote to.
var PromoTypes = [4]PieceType{Queen, Rook, Bishop, Knight}

// String returns the lowercase letter of the piece type.
func (p PieceType) String() string {
	switch p {
	case King:
		return "k"
	case Queen:
		return "q"
	case Rook:
		return "r"
	case Bishop:
		return "b"
	case Knight:
		return "n"
	case Pawn:
		return "p"
	}
	return ""
}

func pieceTypeFromByte(b byte) PieceType {
	switch b {
	case 'k', 'K':
		return King
	case 'q', 'Q':
		return Queen
	case 'r', 'R':
		return Rook
	case 'b', 'B':
		return Bishop
	case 'n', 'N':
		return Knight
	case 'p', 'P':
		return Pawn
	}
	return NoPieceType
}

type direction struct {
	dr, dc int
}

var (
	orthogonal = []direction{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	diagonal   = []direction{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	allAround  = append(append([]direction{}, orthogonal...), diagonal...)
	knightJump = []direction{
		{2, 1}, {2, -1}, {-2, 1}, {-2, -1},
		{1, 2}, {1, -2}, {-1, 2}, {-1, -2},
	}
)

// movement is the step policy of a piece type. Pawns are handled
// separately since their moves depend on color and occupancy.
type movement struct {
	dirs   []direction
	slides bool
}

var movements = [...]movement{
	King:   {dirs: allAround},
	Queen:  {dirs: allAround, slides: true},
	Rook:   {dirs: orthogonal, slides: true},
	Bishop: {dirs: diagonal, slides: true},
	Knight: {dirs: knightJump},
}

// pawnAdvance is the row delta of a pawn of the given color.
func pawnAdvance(c Color) int {
	if c == White {
		return 1
	}
	return -1
}

func pawnStartRow(c Color) int8 {
	if c == White {
		return 1
	}
	return 6
}

func backRow(c Color) int8 {
	if c == White {
		return 0
	}
	return 7
}

// A Piece is a live piece owned by exactly one Board.
type Piece struct {
	typ   PieceType
	color Color
	sq    Square
	moved bool
}

// Type returns the piece's type.
func (p *Piece) Type() PieceType {
	return p.typ
}

// Color returns the piece's color.
func (p *Piece) Color() Color {
	return p.color
}

// Square returns the square the piece stands on.
func (p *Piece) Square() Square {
	return p.sq
}

// HasMoved reports whether the piece has moved since it was placed.
func (p *Piece) HasMoved() bool {
	return p.moved
}

// String returns the FEN letter of the piece: uppercase for white.
func (p *Piece) String() string {
	return fenLetter(p.typ, p.color)
}

func fenLetter(t PieceType, c Color) string {
	s := t.String()
	if c == White {
		return string(s[0] - 'a' + 'A')
	}
	return s
}
