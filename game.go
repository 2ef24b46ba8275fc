/*
Package chess implements the rules of chess: legal move generation,
move application and game status. It supports all special moves
(castling, en passant, promotion) and automatic draw detection by
threefold repetition and the fifty move rule.
Example usage:

	// Create new game
	game := NewGame()

	// Make moves
	game.PushNotationMove("e2e4", UCINotation{})
	game.PushNotationMove("e7e5", UCINotation{})

	// Check game status
	if game.Outcome() != NoOutcome {
		fmt.Printf("Game ended: %s by %s\n", game.Outcome(), game.Method())
	}
*/
package chess

import (
	"golang.org/x/exp/maps"
)

// Status is the state of a game after a move, or the rejection of a move.
type Status int8

const (
	// StatusWhiteToMove means the game is in progress and White moves next.
	StatusWhiteToMove Status = iota
	// StatusBlackToMove means the game is in progress and Black moves next.
	StatusBlackToMove
	// StatusVictoryWhite means White won.
	StatusVictoryWhite
	// StatusVictoryBlack means Black won.
	StatusVictoryBlack
	// StatusStalemate means the side to move has no legal move and is not in check.
	StatusStalemate
	// StatusDraw means the game was drawn by repetition or the fifty move rule.
	StatusDraw
	// StatusInvalidMove is returned, never stored, when a move is rejected.
	StatusInvalidMove
)

// String returns the status name as used on the wire, e.g. "WHITE_TO_MOVE".
func (s Status) String() string {
	switch s {
	case StatusWhiteToMove:
		return "WHITE_TO_MOVE"
	case StatusBlackToMove:
		return "BLACK_TO_MOVE"
	case StatusVictoryWhite:
		return "VICTORY_WHITE"
	case StatusVictoryBlack:
		return "VICTORY_BLACK"
	case StatusStalemate:
		return "STALEMATE"
	case StatusDraw:
		return "DRAW"
	case StatusInvalidMove:
		return "INVALID_MOVE"
	}
	return "UNKNOWN"
}

// Terminal reports whether no further moves are accepted.
func (s Status) Terminal() bool {
	return s != StatusWhiteToMove && s != StatusBlackToMove
}

func toMove(c Color) Status {
	if c == White {
		return StatusWhiteToMove
	}
	return StatusBlackToMove
}

func victoryFor(c Color) Status {
	if c == White {
		return StatusVictoryWhite
	}
	return StatusVictoryBlack
}

// A Outcome is the result of a game.
type Outcome string

const (
	// NoOutcome indicates that a game is in progress.
	NoOutcome Outcome = "*"
	// WhiteWon indicates that white won the game.
	WhiteWon Outcome = "1-0"
	// BlackWon indicates that black won the game.
	BlackWon Outcome = "0-1"
	// Draw indicates that game was a draw.
	Draw Outcome = "1/2-1/2"
)

// String implements the fmt.Stringer interface.
func (o Outcome) String() string {
	return string(o)
}

// A Method is the method that generated the outcome.
type Method uint8

const (
	// NoMethod indicates that an outcome hasn't occurred.
	NoMethod Method = iota
	// Checkmate indicates that the game was won by checkmate.
	Checkmate
	// Resignation indicates that the game was won by resignation.
	Resignation
	// Stalemate indicates that the game was drawn by stalemate.
	Stalemate
	// ThreefoldRepetition indicates that the game was automatically drawn
	// when the board arrangement occurred for the third time.
	ThreefoldRepetition
	// FiftyMoveRule indicates that the game was automatically drawn when
	// fifty plies passed without a pawn move or capture.
	FiftyMoveRule
)

func (m Method) String() string {
	switch m {
	case Checkmate:
		return "Checkmate"
	case Resignation:
		return "Resignation"
	case Stalemate:
		return "Stalemate"
	case ThreefoldRepetition:
		return "ThreefoldRepetition"
	case FiftyMoveRule:
		return "FiftyMoveRule"
	}
	return "NoMethod"
}

const (
	numOfRepetitionsForDraw = 3
	halfMoveClockForDraw    = 50
)

// A Game represents a single chess game.
type Game struct {
	pos       *Position      // Current position
	moves     []Move         // Moves played, in order
	positions map[string]int // Occurrences of each board field
	legal     []Move         // Legal moves of the current position
	status    Status         // Current status
	method    Method         // How the game ended
}

// FEN takes a string and returns a function that updates
// the game to reflect the FEN data. Since FEN doesn't encode
// prior moves, the move list will be empty. The returned
// function is designed to be used in the NewGame constructor.
// An error is returned if there is a problem parsing the FEN data.
func FEN(fen string) (func(*Game), error) {
	pos, err := decodeFEN(fen)
	if err != nil {
		return nil, err
	}
	return func(g *Game) {
		g.reset(pos)
	}, nil
}

// NewGame returns a new game in the standard starting position.
// Optional functions can be provided to configure the initial game state.
//
// Example:
//
//	// Standard game
//	game := NewGame()
//
//	// Game from FEN
//	fen, _ := FEN("4k3/8/8/8/1q6/8/2P5/4K3 w - - 0 1")
//	game := NewGame(fen)
func NewGame(options ...func(*Game)) *Game {
	g := &Game{}
	g.reset(StartingPosition())
	for _, f := range options {
		if f != nil {
			f(g)
		}
	}
	return g
}

// reset starts the game over from pos with an empty history.
func (g *Game) reset(pos *Position) {
	g.pos = pos
	g.moves = nil
	g.positions = map[string]int{pos.board.String(): 1}
	g.method = NoMethod
	g.legal = legalMoves(pos)
	g.updateStatus()
}

// ValidMoves returns the legal moves of the side to move in generation
// order. The order is stable until the next move is made.
func (g *Game) ValidMoves() []Move {
	return append([]Move(nil), g.legal...)
}

// MakeMove plays move if it is one of the legal moves of the current
// position. Moves are matched on origin, destination, category and
// promotion kind. It returns StatusInvalidMove, and leaves the game
// unchanged, when the move is not legal or the game is over.
func (g *Game) MakeMove(move Move) Status {
	if g.status.Terminal() {
		return StatusInvalidMove
	}
	for _, legal := range g.legal {
		if legal.matches(move) {
			g.play(legal)
			return g.status
		}
	}
	return StatusInvalidMove
}

// MakeMoveIndex plays the i-th move of ValidMoves.
func (g *Game) MakeMoveIndex(i int) Status {
	if i < 0 || i >= len(g.legal) {
		return StatusInvalidMove
	}
	return g.MakeMove(g.legal[i])
}

// PushNotationMove decodes moveStr with the given notation and plays it.
//
// Example:
//
//	game.PushNotationMove("e2e4", chess.UCINotation{})
//	game.PushNotationMove("Nf6", chess.AlgebraicNotation{})
func (g *Game) PushNotationMove(moveStr string, notation Notation) Status {
	if g.status.Terminal() {
		return StatusInvalidMove
	}
	move, err := notation.Decode(g.pos, moveStr)
	if err != nil {
		return StatusInvalidMove
	}
	return g.MakeMove(move)
}

func (g *Game) play(move Move) {
	g.pos = g.pos.Update(move)
	g.moves = append(g.moves, move)
	g.positions[g.pos.board.String()]++
	g.legal = legalMoves(g.pos)
	g.updateStatus()
}

// updateStatus derives the status of the current position.
func (g *Game) updateStatus() {
	turn := g.pos.turn
	switch {
	case len(g.legal) == 0 && g.pos.InCheck():
		g.status = victoryFor(turn.Other())
		g.method = Checkmate
	case len(g.legal) == 0:
		g.status = StatusStalemate
		g.method = Stalemate
	case g.Repetitions() >= numOfRepetitionsForDraw:
		g.status = StatusDraw
		g.method = ThreefoldRepetition
	case g.pos.halfMoveClock >= halfMoveClockForDraw:
		g.status = StatusDraw
		g.method = FiftyMoveRule
	default:
		g.status = toMove(turn)
		g.method = NoMethod
	}
}

// Resign resigns the game for the given color. If the game has
// already been completed then the game is not updated.
func (g *Game) Resign(color Color) {
	if g.status.Terminal() || color == NoColor {
		return
	}
	g.status = victoryFor(color.Other())
	g.method = Resignation
}

// Status returns the current status of the game.
func (g *Game) Status() Status {
	return g.status
}

// Outcome returns the game outcome.
func (g *Game) Outcome() Outcome {
	switch g.status {
	case StatusVictoryWhite:
		return WhiteWon
	case StatusVictoryBlack:
		return BlackWon
	case StatusStalemate, StatusDraw:
		return Draw
	}
	return NoOutcome
}

// Method returns the method in which the outcome occurred.
func (g *Game) Method() Method {
	return g.method
}

// InCheck reports whether the side to move is in check.
func (g *Game) InCheck() bool {
	return g.pos.InCheck()
}

// Position returns the game's current position.
func (g *Game) Position() *Position {
	return g.pos
}

// Moves returns the moves played so far.
func (g *Game) Moves() []Move {
	return append([]Move(nil), g.moves...)
}

// Repetitions returns how many times the current board arrangement has
// occurred in the game, the current occurrence included.
func (g *Game) Repetitions() int {
	return g.positions[g.pos.board.String()]
}

// FEN returns the full FEN of the current position.
func (g *Game) FEN() string {
	return g.pos.String()
}

// PositionFEN returns only the board field of the current position's FEN.
func (g *Game) PositionFEN() string {
	return g.pos.board.String()
}

// Clone returns a deep copy of the game. Moves made on the clone do
// not affect the receiver.
func (g *Game) Clone() *Game {
	return &Game{
		pos:       g.pos.copy(),
		moves:     append([]Move(nil), g.moves...),
		positions: maps.Clone(g.positions),
		legal:     append([]Move(nil), g.legal...),
		status:    g.status,
		method:    g.method,
	}
}

// MarshalText implements the encoding.TextMarshaler interface and
// encodes the game's current position as FEN.
func (g *Game) MarshalText() ([]byte, error) {
	return []byte(g.FEN()), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface and
// assumes the data is in the FEN format. The move history is discarded.
func (g *Game) UnmarshalText(text []byte) error {
	pos, err := decodeFEN(string(text))
	if err != nil {
		return err
	}
	g.reset(pos)
	return nil
}
