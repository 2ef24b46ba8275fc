package chess

// Perft counts the leaf nodes of the legal move tree of pos to the
// given depth.
func Perft(pos *Position, depth int) int {
	if depth <= 0 {
		return 1
	}
	moves := pos.ValidMoves()
	if depth == 1 {
		return len(moves)
	}
	nodes := 0
	for _, m := range moves {
		nodes += Perft(pos.Update(m), depth-1)
	}
	return nodes
}
