package chess

import (
	"testing"
)

func TestCheckmate(t *testing.T) {
	fenStr := "rn1qkbnr/pbpp1ppp/1p6/4p3/2B1P3/5Q2/PPPP1PPP/RNB1K1NR w KQkq - 0 1"
	fen, err := FEN(fenStr)
	if err != nil {
		t.Fatal(err)
	}
	g := NewGame(fen)
	if status := g.PushNotationMove("Qxf7#", AlgebraicNotation{}); status != StatusVictoryWhite {
		t.Fatalf("expected status %s but got %s", StatusVictoryWhite, status)
	}
	if g.Method() != Checkmate {
		t.Fatalf("expected method %s but got %s", Checkmate, g.Method())
	}
	if g.Outcome() != WhiteWon {
		t.Fatalf("expected outcome %s but got %s", WhiteWon, g.Outcome())
	}

	// Checkmate on castle
	fenStr = "Q7/5Qp1/3k2N1/7p/8/4B3/PP3PPP/R3K2R w KQ - 0 31"
	fen, err = FEN(fenStr)
	if err != nil {
		t.Fatal(err)
	}
	g = NewGame(fen)
	if status := g.PushNotationMove("O-O-O", AlgebraicNotation{}); status == StatusInvalidMove {
		t.Fatalf("expected O-O-O to be legal in %s", fenStr)
	}
	t.Log(g.Position().String())
	if g.Method() != Checkmate {
		t.Fatalf("expected method %s but got %s", Checkmate, g.Method())
	}
	if g.Outcome() != WhiteWon {
		t.Fatalf("expected outcome %s but got %s", WhiteWon, g.Outcome())
	}
}

func TestCheckmateFromFen(t *testing.T) {
	fenStr := "rn1qkbnr/pbpp1Qpp/1p6/4p3/2B1P3/8/PPPP1PPP/RNB1K1NR b KQkq - 0 1"
	fen, err := FEN(fenStr)
	if err != nil {
		t.Fatal(err)
	}
	g := NewGame(fen)
	if g.Method() != Checkmate {
		t.Error(g.Position().Board().Draw())
		t.Fatalf("expected method %s but got %s", Checkmate, g.Method())
	}
	if g.Outcome() != WhiteWon {
		t.Fatalf("expected outcome %s but got %s", WhiteWon, g.Outcome())
	}
}

func TestFoolsMate(t *testing.T) {
	g := NewGame()
	status := push(t, g, "f2f3", "e7e5", "g2g4", "d8h4")
	if status != StatusVictoryBlack {
		t.Fatalf("expected status %s but got %s", StatusVictoryBlack, status)
	}
	if g.Outcome() != BlackWon {
		t.Fatalf("expected outcome %s but got %s", BlackWon, g.Outcome())
	}
	if !g.InCheck() {
		t.Fatal("expected white to be in check")
	}
	if len(g.ValidMoves()) != 0 {
		t.Fatalf("expected no valid moves but got %d", len(g.ValidMoves()))
	}
}

func TestStalemate(t *testing.T) {
	fenStr := "k1K5/8/8/8/8/8/8/1Q6 w - - 0 1"
	fen, err := FEN(fenStr)
	if err != nil {
		t.Fatal(err)
	}
	g := NewGame(fen)
	if status := g.PushNotationMove("Qb6", AlgebraicNotation{}); status != StatusStalemate {
		t.Fatalf("expected status %s but got %s", StatusStalemate, status)
	}
	if g.Method() != Stalemate {
		t.Fatalf("expected method %s but got %s", Stalemate, g.Method())
	}
	if g.Outcome() != Draw {
		t.Fatalf("expected outcome %s but got %s", Draw, g.Outcome())
	}
}

// position shouldn't result in stalemate because pawn can move http://en.lichess.org/Pc6mJDZN#138
func TestInvalidStalemate(t *testing.T) {
	fenStr := "8/3P4/8/8/8/7k/7p/7K w - - 2 70"
	fen, err := FEN(fenStr)
	if err != nil {
		t.Fatal(err)
	}
	g := NewGame(fen)
	if status := g.PushNotationMove("d8=Q", AlgebraicNotation{}); status != StatusBlackToMove {
		t.Fatalf("expected status %s but got %s", StatusBlackToMove, status)
	}
	if g.Outcome() != NoOutcome {
		t.Fatalf("expected outcome %s but got %s", NoOutcome, g.Outcome())
	}
}

func TestThreefoldRepetition(t *testing.T) {
	g := NewGame()
	shuffle := []string{"g1f3", "g8f6", "f3g1", "f6g8"}
	push(t, g, shuffle...)
	if g.Repetitions() != 2 {
		t.Fatalf("expected 2 repetitions but got %d", g.Repetitions())
	}
	if status := push(t, g, shuffle[:3]...); status != StatusBlackToMove {
		t.Fatalf("expected status %s but got %s", StatusBlackToMove, status)
	}
	if status := push(t, g, shuffle[3]); status != StatusDraw {
		t.Fatalf("expected status %s but got %s", StatusDraw, status)
	}
	if g.Method() != ThreefoldRepetition {
		t.Fatalf("expected method %s but got %s", ThreefoldRepetition, g.Method())
	}
	if status := g.PushNotationMove("e2e4", UCINotation{}); status != StatusInvalidMove {
		t.Fatalf("expected status %s after a draw but got %s", StatusInvalidMove, status)
	}
}

func TestFiftyMoveRule(t *testing.T) {
	g := mustGame(t, "7k/8/8/8/8/8/8/KR6 w - - 0 1")
	path := []string{
		"b1", "b2", "c2", "d2", "e2", "f2", "f3", "e3", "d3", "c3", "b3", "b4", "c4",
		"d4", "e4", "f4", "f5", "e5", "d5", "c5", "b5", "b6", "c6", "d6", "e6", "f6",
	}
	king := []string{"h8g8", "g8h8"}
	for i := 1; i < len(path); i++ {
		if status := push(t, g, path[i-1]+path[i]); status != StatusBlackToMove {
			t.Fatalf("ply %d: expected status %s but got %s", 2*i-1, StatusBlackToMove, status)
		}
		status := push(t, g, king[(i-1)%2])
		if i < len(path)-1 && status != StatusWhiteToMove {
			t.Fatalf("ply %d: expected status %s but got %s", 2*i, StatusWhiteToMove, status)
		}
	}
	if g.Position().HalfMoveClock() != 50 {
		t.Fatalf("expected half move clock 50 but got %d", g.Position().HalfMoveClock())
	}
	if g.Status() != StatusDraw || g.Method() != FiftyMoveRule {
		t.Fatalf("expected %s by %s but got %s by %s", StatusDraw, FiftyMoveRule, g.Status(), g.Method())
	}
}

func TestFiftyMoveClockReset(t *testing.T) {
	tests := []struct {
		fen    string
		move   string
		clock  int
		status Status
	}{
		{"7k/8/8/8/8/8/P7/KR6 w - - 49 60", "b1b2", 50, StatusDraw},
		{"7k/8/8/8/8/8/P7/KR6 w - - 49 60", "a2a3", 0, StatusBlackToMove},
		{"7k/8/8/8/8/8/Pr6/KR6 w - - 49 60", "b1b2", 0, StatusBlackToMove},
	}
	for _, tt := range tests {
		g := mustGame(t, tt.fen)
		if status := push(t, g, tt.move); status != tt.status {
			t.Fatalf("%s %s: expected status %s but got %s", tt.fen, tt.move, tt.status, status)
		}
		if g.Position().HalfMoveClock() != tt.clock {
			t.Fatalf("%s %s: expected clock %d but got %d", tt.fen, tt.move, tt.clock, g.Position().HalfMoveClock())
		}
	}
}

func TestFiftyMoveRuleFromFen(t *testing.T) {
	g := mustGame(t, "7k/8/8/8/8/8/8/KR6 w - - 50 80")
	if g.Status() != StatusDraw || g.Method() != FiftyMoveRule {
		t.Fatalf("expected %s by %s but got %s by %s", StatusDraw, FiftyMoveRule, g.Status(), g.Method())
	}
}

func TestInvalidMoveLeavesGameUnchanged(t *testing.T) {
	g := NewGame()
	before := g.FEN()
	e2, e4, e5 := mustSq(t, "e2"), mustSq(t, "e4"), mustSq(t, "e5")
	moves := []Move{
		NewMove(e2, e5, Standard, NoPieceType),
		NewMove(e2, e4, Standard, NoPieceType),
		NewMove(e2, e4, DoubleStep, Queen),
		NewMove(mustSq(t, "e7"), mustSq(t, "e5"), DoubleStep, NoPieceType),
	}
	for _, m := range moves {
		if status := g.MakeMove(m); status != StatusInvalidMove {
			t.Fatalf("%s: expected status %s but got %s", m, StatusInvalidMove, status)
		}
	}
	if g.FEN() != before || len(g.Moves()) != 0 || g.Status() != StatusWhiteToMove {
		t.Fatalf("game changed after invalid moves: %s", g.FEN())
	}
	if status := g.MakeMove(NewMove(e2, e4, DoubleStep, NoPieceType)); status != StatusBlackToMove {
		t.Fatalf("expected status %s but got %s", StatusBlackToMove, status)
	}
}

func TestMakeMoveIndex(t *testing.T) {
	g := NewGame()
	if status := g.MakeMoveIndex(-1); status != StatusInvalidMove {
		t.Fatalf("expected status %s but got %s", StatusInvalidMove, status)
	}
	if status := g.MakeMoveIndex(20); status != StatusInvalidMove {
		t.Fatalf("expected status %s but got %s", StatusInvalidMove, status)
	}
	want := g.ValidMoves()[7]
	if status := g.MakeMoveIndex(7); status != StatusBlackToMove {
		t.Fatalf("expected status %s but got %s", StatusBlackToMove, status)
	}
	if got := g.Moves()[0]; got != want {
		t.Fatalf("expected move %s but got %s", want, got)
	}
}

func TestResign(t *testing.T) {
	g := NewGame()
	push(t, g, "e2e4")
	g.Resign(White)
	if g.Status() != StatusVictoryBlack || g.Method() != Resignation {
		t.Fatalf("expected %s by %s but got %s by %s", StatusVictoryBlack, Resignation, g.Status(), g.Method())
	}
	g.Resign(Black)
	if g.Outcome() != BlackWon {
		t.Fatalf("expected outcome %s but got %s", BlackWon, g.Outcome())
	}
	if status := g.PushNotationMove("e7e5", UCINotation{}); status != StatusInvalidMove {
		t.Fatalf("expected status %s but got %s", StatusInvalidMove, status)
	}
}

func TestGameClone(t *testing.T) {
	g := NewGame()
	push(t, g, "e2e4")
	clone := g.Clone()
	push(t, clone, "e7e5", "g1f3")
	if len(g.Moves()) != 1 || g.Status() != StatusBlackToMove {
		t.Fatalf("original game changed: %s", g.FEN())
	}
	if len(clone.Moves()) != 3 || clone.Status() != StatusBlackToMove {
		t.Fatalf("unexpected clone state: %s", clone.FEN())
	}
	if g.Position().Board().Piece(mustSq(t, "f3")) != nil {
		t.Fatal("clone shares the board with the original")
	}
}

func TestGamePositionIsImmutable(t *testing.T) {
	g := NewGame()
	start := g.Position()
	push(t, g, "e2e4")
	if start.String() != FENStartPos {
		t.Fatalf("expected old position %s but got %s", FENStartPos, start.String())
	}
}

func TestGameMarshalText(t *testing.T) {
	g := NewGame()
	push(t, g, "e2e4")
	b, err := g.MarshalText()
	if err != nil {
		t.Fatal(err)
	}
	want := "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1"
	if string(b) != want {
		t.Fatalf("expected %s but got %s", want, b)
	}
	if g.PositionFEN() != "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR" {
		t.Fatalf("unexpected board field %s", g.PositionFEN())
	}

	other := NewGame()
	if err := other.UnmarshalText(b); err != nil {
		t.Fatal(err)
	}
	if other.FEN() != want || len(other.Moves()) != 0 || other.Status() != StatusBlackToMove {
		t.Fatalf("unexpected game after unmarshal: %s", other.FEN())
	}
	if err := other.UnmarshalText([]byte("not a fen")); err == nil {
		t.Fatal("expected an error for a bad FEN")
	}
}

func TestStatusStrings(t *testing.T) {
	tests := map[Status]string{
		StatusWhiteToMove:  "WHITE_TO_MOVE",
		StatusBlackToMove:  "BLACK_TO_MOVE",
		StatusVictoryWhite: "VICTORY_WHITE",
		StatusVictoryBlack: "VICTORY_BLACK",
		StatusStalemate:    "STALEMATE",
		StatusDraw:         "DRAW",
		StatusInvalidMove:  "INVALID_MOVE",
	}
	for s, want := range tests {
		if s.String() != want {
			t.Fatalf("expected %s but got %s", want, s.String())
		}
	}
}

func TestFENRejectsCapturableKing(t *testing.T) {
	fenStr := "4k3/8/8/8/8/8/8/4R1K1 w - - 0 1"
	if _, err := FEN(fenStr); err == nil {
		t.Fatalf("expected an error for %s", fenStr)
	}
	g := NewGame()
	if err := g.UnmarshalText([]byte(fenStr)); err == nil {
		t.Fatalf("expected an error for %s", fenStr)
	}
	if g.FEN() != FENStartPos || g.Status() != StatusWhiteToMove {
		t.Fatalf("game changed after a rejected FEN: %s", g.FEN())
	}
}
