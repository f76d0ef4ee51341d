package common

import (
	"strings"
)

// Move packs from (6 bits), to (6 bits), promotion piece (3 bits) and kind (2 bits).
// Castling is stored as king captures own rook.
type Move int32

const (
	MoveNormal = iota
	MovePromotion
	MoveEnPassant
	MoveCastling
)

const (
	MoveNone Move = 0
	MoveNull Move = 65 // b1b1
)

const promotionLetters = "pnbrqk"

func NewMove(from, to Square, kind, promotion int) Move {
	return Move(int32(from) |
		int32(to)<<6 |
		int32(promotion)<<12 |
		int32(kind)<<15)
}

func (m Move) From() Square {
	return Square(m & 63)
}

func (m Move) To() Square {
	return Square((m >> 6) & 63)
}

func (m Move) Promotion() int {
	return int((m >> 12) & 7)
}

func (m Move) Kind() int {
	return int((m >> 15) & 3)
}

func (m Move) String() string {
	return MoveToUci(m, false)
}

// MoveToUci converts a move to coordinate notation (g1f3, a7a8q).
// Castling is printed as e1g1 in normal chess and as e1h1 in chess960 mode.
func MoveToUci(m Move, chess960 bool) string {
	if m == MoveNone {
		return "(none)"
	}
	if m == MoveNull {
		return "0000"
	}
	var from, to = m.From(), m.To()
	if m.Kind() == MoveCastling && !chess960 {
		var file = FileC
		if to > from {
			file = FileG
		}
		to = MakeSquare(file, from.Rank())
	}
	var s = SquareName(from) + SquareName(to)
	if m.Kind() == MovePromotion {
		s += promotionLetters[m.Promotion()-Pawn : m.Promotion()-Pawn+1]
	}
	return s
}

// ParseMove finds the legal move of p whose coordinate notation equals s.
func ParseMove(p *Position, s string) (Move, bool) {
	if len(s) == 5 {
		// some GUIs send the promotion piece in uppercase
		s = s[:4] + strings.ToLower(s[4:])
	}
	for _, m := range p.LegalMoves() {
		if s == MoveToUci(m, p.Chess960()) {
			return m, true
		}
	}
	return MoveNone, false
}
