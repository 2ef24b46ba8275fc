package chess

// threatMap marks every square a color attacks.
type threatMap [64]bool

// Has reports whether sq is attacked.
func (t *threatMap) Has(sq Square) bool {
	return sq.Valid() && t[sq.index()]
}

// pseudoLegalMoves returns the moves of the side to move that follow
// piece movement and occupancy rules, without regard to whether the
// mover's king is left attacked. Castling is already fully checked.
func pseudoLegalMoves(pos *Position) []Move {
	b := pos.board
	moves := make([]Move, 0, 48)
	var enemyThreats *threatMap
	for _, p := range b.pieces {
		if p.color != pos.turn {
			continue
		}
		switch p.typ {
		case Pawn:
			moves = appendPawnMoves(moves, b, p, pos.enPassant)
		case King:
			moves = appendStepMoves(moves, b, p)
			if enemyThreats == nil {
				t := b.threats(pos.turn.Other())
				enemyThreats = &t
			}
			moves = appendCastleMoves(moves, b, p, pos.castleRights, enemyThreats)
		default:
			moves = appendStepMoves(moves, b, p)
		}
	}
	return moves
}

// appendStepMoves walks each direction of a knight, bishop, rook,
// queen or king. A ray stops at the first occupied square, which is
// included only when it holds an enemy piece.
func appendStepMoves(moves []Move, b *Board, p *Piece) []Move {
	mv := movements[p.typ]
	for _, d := range mv.dirs {
		sq := p.sq
		for {
			next, ok := sq.offset(d.dr, d.dc)
			if !ok {
				break
			}
			sq = next
			target := b.Piece(sq)
			if target == nil {
				moves = append(moves, Move{s1: p.sq, s2: sq, piece: p.typ, typ: Standard})
			} else {
				if target.color != p.color {
					moves = append(moves, Move{s1: p.sq, s2: sq, piece: p.typ, typ: Capture, captured: target.typ})
				}
				break
			}
			if !mv.slides {
				break
			}
		}
	}
	return moves
}

func appendPawnMoves(moves []Move, b *Board, p *Piece, ep Square) []Move {
	dr := pawnAdvance(p.color)
	lastRow := backRow(p.color.Other())

	if one, ok := p.sq.offset(dr, 0); ok && b.Piece(one) == nil {
		if one.Row == lastRow {
			moves = appendPromotions(moves, p.sq, one, NoPieceType)
		} else {
			moves = append(moves, Move{s1: p.sq, s2: one, piece: Pawn, typ: Standard})
			if !p.moved && p.sq.Row == pawnStartRow(p.color) {
				if two, ok := one.offset(dr, 0); ok && b.Piece(two) == nil {
					moves = append(moves, Move{s1: p.sq, s2: two, piece: Pawn, typ: DoubleStep})
				}
			}
		}
	}

	for _, dc := range [2]int{-1, 1} {
		to, ok := p.sq.offset(dr, dc)
		if !ok {
			continue
		}
		target := b.Piece(to)
		switch {
		case target != nil && target.color != p.color:
			if to.Row == lastRow {
				moves = appendPromotions(moves, p.sq, to, target.typ)
			} else {
				moves = append(moves, Move{s1: p.sq, s2: to, piece: Pawn, typ: Capture, captured: target.typ})
			}
		case target == nil && to == ep:
			victim := b.Piece(Square{Row: p.sq.Row, Col: to.Col})
			if victim != nil && victim.typ == Pawn && victim.color != p.color {
				moves = append(moves, Move{s1: p.sq, s2: to, piece: Pawn, typ: EnPassant, captured: Pawn})
			}
		}
	}
	return moves
}

func appendPromotions(moves []Move, from, to Square, captured PieceType) []Move {
	for _, promo := range PromoTypes {
		moves = append(moves, Move{s1: from, s2: to, piece: Pawn, typ: Promotion, promo: promo, captured: captured})
	}
	return moves
}

// appendCastleMoves adds castling as a two column king move. The king
// and rook must be unmoved on their home squares, the right must still
// be held, every square between them must be empty, and the squares
// the king starts on, crosses and lands on must not be attacked.
func appendCastleMoves(moves []Move, b *Board, king *Piece, cr CastleRights, enemy *threatMap) []Move {
	c := king.color
	row := backRow(c)
	if king.moved || king.sq != (Square{Row: row, Col: 4}) {
		return moves
	}
	if enemy.Has(king.sq) {
		return moves
	}
	wings := [2]struct {
		side    Side
		rookCol int8
		empty   []int8
		path    []int8
	}{
		{side: KingSide, rookCol: 7, empty: []int8{5, 6}, path: []int8{5, 6}},
		{side: QueenSide, rookCol: 0, empty: []int8{1, 2, 3}, path: []int8{3, 2}},
	}
	for _, w := range wings {
		if !cr.CanCastle(c, w.side) {
			continue
		}
		rook := b.Piece(Square{Row: row, Col: w.rookCol})
		if rook == nil || rook.typ != Rook || rook.color != c || rook.moved {
			continue
		}
		if !allEmpty(b, row, w.empty) || anyAttacked(enemy, row, w.path) {
			continue
		}
		to := Square{Row: row, Col: w.path[len(w.path)-1]}
		moves = append(moves, Move{s1: king.sq, s2: to, piece: King, typ: Castle})
	}
	return moves
}

func allEmpty(b *Board, row int8, cols []int8) bool {
	for _, col := range cols {
		if b.Piece(Square{Row: row, Col: col}) != nil {
			return false
		}
	}
	return true
}

func anyAttacked(t *threatMap, row int8, cols []int8) bool {
	for _, col := range cols {
		if t.Has(Square{Row: row, Col: col}) {
			return true
		}
	}
	return false
}

// threats returns every square c attacks. Sliding rays include the
// first occupied square whatever its color, so a piece defended by its
// own side is reported as attacked. Pawns only report their diagonals.
func (b *Board) threats(c Color) threatMap {
	var t threatMap
	for _, p := range b.pieces {
		if p.color != c {
			continue
		}
		if p.typ == Pawn {
			dr := pawnAdvance(c)
			for _, dc := range [2]int{-1, 1} {
				if sq, ok := p.sq.offset(dr, dc); ok {
					t[sq.index()] = true
				}
			}
			continue
		}
		mv := movements[p.typ]
		for _, d := range mv.dirs {
			sq := p.sq
			for {
				next, ok := sq.offset(d.dr, d.dc)
				if !ok {
					break
				}
				sq = next
				t[sq.index()] = true
				if !mv.slides || b.Piece(sq) != nil {
					break
				}
			}
		}
	}
	return t
}
