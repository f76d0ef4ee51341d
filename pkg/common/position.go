package common

import (
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"
	"sync"

	"github.com/notnil/chess"
)

const InitialPositionFen = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Position is an immutable snapshot of a board backed by the rules library.
// It is safe to share between goroutines.
type Position struct {
	WhiteMove bool
	Key       uint64
	Rule50    int
	LastMove  Move
	check     bool
	chess960  bool
	pos       *chess.Position
	once      sync.Once
	moves     []Move
	raw       []*chess.Move
}

func NewPositionFromFEN(fen string) (*Position, error) {
	return NewPosition(fen, false)
}

// NewPosition parses fen. Missing move counters are filled with "0 1".
func NewPosition(fen string, chess960 bool) (*Position, error) {
	var fields = strings.Fields(fen)
	switch len(fields) {
	case 4:
		fields = append(fields, "0", "1")
	case 5:
		fields = append(fields, "1")
	}
	if len(fields) != 6 {
		return nil, fmt.Errorf("invalid fen %q", fen)
	}
	var option, err = chess.FEN(strings.Join(fields, " "))
	if err != nil {
		return nil, fmt.Errorf("parse fen %q: %w", fen, err)
	}
	var p = newPosition(chess.NewGame(option).Position(), chess960)
	p.check = p.isAttackedBy(p.kingSquare(p.WhiteMove), !p.WhiteMove)
	return p, nil
}

func newPosition(pos *chess.Position, chess960 bool) *Position {
	var fen = pos.String()
	var h = fnv.New64a()
	// the key ignores move counters, so repetitions hash equal
	h.Write([]byte(fenPrefix(fen, 4)))
	var rule50 int
	if fields := strings.Fields(fen); len(fields) >= 5 {
		rule50, _ = strconv.Atoi(fields[4])
	}
	return &Position{
		WhiteMove: pos.Turn() == chess.White,
		Key:       h.Sum64(),
		Rule50:    rule50,
		chess960:  chess960,
		pos:       pos,
	}
}

func fenPrefix(fen string, fields int) string {
	for i := 0; i < len(fen); i++ {
		if fen[i] == ' ' {
			fields--
			if fields == 0 {
				return fen[:i]
			}
		}
	}
	return fen
}

func (p *Position) Chess960() bool {
	return p.chess960
}

func (p *Position) FEN() string {
	return p.pos.String()
}

// LegalMoves returns the legal moves of the position.
// The slice is shared and must not be modified.
func (p *Position) LegalMoves() []Move {
	p.once.Do(p.generateMoves)
	return p.moves
}

func (p *Position) generateMoves() {
	p.raw = p.pos.ValidMoves()
	p.moves = make([]Move, len(p.raw))
	for i, m := range p.raw {
		p.moves[i] = fromChessMove(m)
	}
}

// MakeMove returns the position after a legal move.
func (p *Position) MakeMove(m Move) (*Position, bool) {
	for i, lm := range p.LegalMoves() {
		if lm == m {
			var child = newPosition(p.pos.Update(p.raw[i]), p.chess960)
			child.LastMove = m
			child.check = p.raw[i].HasTag(chess.Check)
			return child, true
		}
	}
	return nil, false
}

// MakeMoveLAN applies a move given in coordinate notation.
func (p *Position) MakeMoveLAN(lan string) (*Position, bool) {
	var m, ok = ParseMove(p, lan)
	if !ok {
		return nil, false
	}
	return p.MakeMove(m)
}

func (p *Position) IsCheck() bool {
	return p.check
}

func (p *Position) IsCheckmate() bool {
	p.LegalMoves()
	return p.pos.Status() == chess.Checkmate
}

// PieceOn returns the piece type on sq and whether it is white.
func (p *Position) PieceOn(sq Square) (piece int, white bool) {
	var pc = p.pos.Board().Piece(chess.Square(sq))
	if pc == chess.NoPiece {
		return Empty, false
	}
	return pieceFromChess(pc.Type()), pc.Color() == chess.White
}

func (p *Position) IsCaptureOrPromotion(m Move) bool {
	switch m.Kind() {
	case MovePromotion, MoveEnPassant:
		return true
	case MoveCastling:
		return false
	}
	var piece, _ = p.PieceOn(m.To())
	return piece != Empty
}

// Mirror returns the position with colors swapped and the board flipped vertically.
func (p *Position) Mirror() (*Position, error) {
	return NewPosition(MirrorFEN(p.FEN()), p.chess960)
}

func MirrorFEN(fen string) string {
	var fields = strings.Fields(fen)
	if len(fields) < 4 {
		return fen
	}
	var ranks = strings.Split(fields[0], "/")
	for i, j := 0, len(ranks)-1; i < j; i, j = i+1, j-1 {
		ranks[i], ranks[j] = ranks[j], ranks[i]
	}
	fields[0] = swapCase(strings.Join(ranks, "/"))
	if fields[1] == "w" {
		fields[1] = "b"
	} else {
		fields[1] = "w"
	}
	if fields[2] != "-" {
		var castling = swapCase(fields[2])
		var white, black strings.Builder
		for _, ch := range castling {
			if ch >= 'A' && ch <= 'Z' {
				white.WriteRune(ch)
			} else {
				black.WriteRune(ch)
			}
		}
		fields[2] = white.String() + black.String()
	}
	if fields[3] != "-" && len(fields[3]) == 2 {
		var rank = fields[3][1]
		fields[3] = fields[3][:1] + string('1'+'8'-rank)
	}
	return strings.Join(fields, " ")
}

// String draws the board followed by the FEN and the key.
func (p *Position) String() string {
	const separator = "\n +---+---+---+---+---+---+---+---+\n"
	var sb strings.Builder
	sb.WriteString(separator)
	for i := 0; i < 64; i++ {
		var sq = Square(i).Flip()
		var piece, white = p.PieceOn(sq)
		sb.WriteString(" | ")
		sb.WriteByte(PieceLetter(piece, white))
		if sq.File() == FileH {
			fmt.Fprintf(&sb, " | %d", sq.Rank()+1)
			sb.WriteString(separator)
		}
	}
	sb.WriteString("   a   b   c   d   e   f   g   h\n")
	fmt.Fprintf(&sb, "\nFen: %v\nKey: %016X", p.FEN(), p.Key)
	return sb.String()
}

func fromChessMove(m *chess.Move) Move {
	var from, to = Square(m.S1()), Square(m.S2())
	switch {
	case m.HasTag(chess.KingSideCastle):
		return NewMove(from, MakeSquare(FileH, from.Rank()), MoveCastling, Empty)
	case m.HasTag(chess.QueenSideCastle):
		return NewMove(from, MakeSquare(FileA, from.Rank()), MoveCastling, Empty)
	case m.Promo() != chess.NoPieceType:
		return NewMove(from, to, MovePromotion, pieceFromChess(m.Promo()))
	case m.HasTag(chess.EnPassant):
		return NewMove(from, to, MoveEnPassant, Empty)
	}
	return NewMove(from, to, MoveNormal, Empty)
}

func pieceFromChess(pt chess.PieceType) int {
	switch pt {
	case chess.Pawn:
		return Pawn
	case chess.Knight:
		return Knight
	case chess.Bishop:
		return Bishop
	case chess.Rook:
		return Rook
	case chess.Queen:
		return Queen
	case chess.King:
		return King
	}
	return Empty
}
