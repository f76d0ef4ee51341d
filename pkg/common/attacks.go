package common

var (
	knightOffsets = [8][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	kingOffsets   = [8][2]int{{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1}}
)

func (p *Position) kingSquare(white bool) Square {
	for sq := Square(0); sq < 64; sq++ {
		if piece, w := p.PieceOn(sq); piece == King && w == white {
			return sq
		}
	}
	return SquareNone
}

func (p *Position) pieceAt(file, rank int) (piece int, white bool, ok bool) {
	if file < FileA || file > FileH || rank < Rank1 || rank > Rank8 {
		return Empty, false, false
	}
	piece, white = p.PieceOn(MakeSquare(file, rank))
	return piece, white, true
}

// isAttackedBy reports whether a piece of the given color attacks sq.
func (p *Position) isAttackedBy(sq Square, white bool) bool {
	if sq == SquareNone {
		return false
	}
	var file, rank = sq.File(), sq.Rank()

	var pawnRank = rank - 1
	if !white {
		pawnRank = rank + 1
	}
	for _, df := range [2]int{-1, 1} {
		if piece, w, ok := p.pieceAt(file+df, pawnRank); ok && piece == Pawn && w == white {
			return true
		}
	}
	for _, d := range knightOffsets {
		if piece, w, ok := p.pieceAt(file+d[0], rank+d[1]); ok && piece == Knight && w == white {
			return true
		}
	}
	for _, d := range kingOffsets {
		if piece, w, ok := p.pieceAt(file+d[0], rank+d[1]); ok && piece == King && w == white {
			return true
		}
	}
	for _, d := range kingOffsets {
		var diagonal = d[0] != 0 && d[1] != 0
		for f, r := file+d[0], rank+d[1]; ; f, r = f+d[0], r+d[1] {
			var piece, w, ok = p.pieceAt(f, r)
			if !ok {
				break
			}
			if piece == Empty {
				continue
			}
			if w == white && (piece == Queen ||
				diagonal && piece == Bishop ||
				!diagonal && piece == Rook) {
				return true
			}
			break
		}
	}
	return false
}
