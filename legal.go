package chess

// legalMoves returns the pseudo-legal moves of pos that do not leave
// the mover's king attacked. Each candidate is played on a disposable
// clone so the live board is never touched.
func legalMoves(pos *Position) []Move {
	candidates := pseudoLegalMoves(pos)
	legal := make([]Move, 0, len(candidates))
	for _, m := range candidates {
		scratch := pos.board.Clone()
		scratch.apply(m)
		if !inCheck(scratch, pos.turn) {
			legal = append(legal, m)
		}
	}
	return legal
}

// inCheck reports whether c's king is attacked on b.
func inCheck(b *Board, c Color) bool {
	return isAttacked(b, b.KingSquare(c), c.Other())
}

// isAttacked reports whether sq is in by's threat map.
func isAttacked(b *Board, sq Square, by Color) bool {
	t := b.threats(by)
	return t.Has(sq)
}
