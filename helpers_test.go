package chess

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustGame(t testing.TB, fen string) *Game {
	t.Helper()
	opt, err := FEN(fen)
	require.NoError(t, err)
	return NewGame(opt)
}

func mustPosition(t testing.TB, fen string) *Position {
	t.Helper()
	pos, err := decodeFEN(fen)
	require.NoError(t, err)
	return pos
}

func mustSq(t testing.TB, s string) Square {
	t.Helper()
	sq, err := ParseSquare(s)
	require.NoError(t, err)
	return sq
}

func moveStrings(moves []Move) []string {
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = m.String()
	}
	sort.Strings(out)
	return out
}

func movesFrom(moves []Move, from Square) []Move {
	var out []Move
	for _, m := range moves {
		if m.S1() == from {
			out = append(out, m)
		}
	}
	return out
}

func push(t testing.TB, g *Game, uci ...string) Status {
	t.Helper()
	status := g.Status()
	for _, s := range uci {
		status = g.PushNotationMove(s, UCINotation{})
		require.NotEqual(t, StatusInvalidMove, status, "move %s in %s", s, g.FEN())
	}
	return status
}

// requireConsistent checks that grid occupancy and piece squares agree.
func requireConsistent(t testing.TB, b *Board) {
	t.Helper()
	seen := 0
	for _, p := range b.pieces {
		require.Same(t, p, b.grid[p.sq.index()], "piece %s on %s", p, p.sq)
	}
	for _, p := range b.grid {
		if p != nil {
			seen++
		}
	}
	require.Equal(t, len(b.pieces), seen)
}
