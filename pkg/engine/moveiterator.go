package engine

import . "github.com/ChizhovVadim/CounterUci/pkg/common"

const sortTableKeyImportant = 100000

type orderedMove struct {
	Move Move
	Key  int32
}

type moveIterator struct {
	buffer []orderedMove
	count  int
	index  int
}

func (t *thread) initMoveIterator(height int, transMove Move) moveIterator {
	var p = t.stack[height].position
	var killer1 = t.stack[height].killer1
	var killer2 = t.stack[height].killer2
	var mi = moveIterator{buffer: t.stack[height].moveList[:]}
	for _, m := range p.LegalMoves() {
		var score int
		if m == transMove {
			score = sortTableKeyImportant + 2000
		} else if p.IsCaptureOrPromotion(m) {
			score = sortTableKeyImportant + 1000 + mvvlva(p, m)
		} else if m == killer1 {
			score = sortTableKeyImportant + 1
		} else if m == killer2 {
			score = sortTableKeyImportant
		} else {
			score = t.readHistory(p.WhiteMove, m)
		}
		mi.buffer[mi.count] = orderedMove{Move: m, Key: int32(score)}
		mi.count++
	}
	return mi
}

// initMoveIteratorQS returns captures and promotions, or every move when in check.
func (t *thread) initMoveIteratorQS(height int) moveIterator {
	var p = t.stack[height].position
	var isCheck = p.IsCheck()
	var mi = moveIterator{buffer: t.stack[height].moveList[:]}
	for _, m := range p.LegalMoves() {
		var score int
		if p.IsCaptureOrPromotion(m) {
			score = 29000 + mvvlva(p, m)
		} else if !isCheck {
			continue
		}
		mi.buffer[mi.count] = orderedMove{Move: m, Key: int32(score)}
		mi.count++
	}
	sortMoves(mi.buffer[:mi.count])
	return mi
}

func (mi *moveIterator) Next() Move {
	if mi.index >= mi.count {
		return MoveNone
	}
	const sortMovesIndex = 1
	if mi.index <= sortMovesIndex {
		if mi.index == sortMovesIndex {
			sortMoves(mi.buffer[mi.index:mi.count])
		} else {
			moveToTop(mi.buffer[mi.index:mi.count])
		}
	}
	var m = mi.buffer[mi.index].Move
	mi.index++
	return m
}

var sortPieceValues = [...]int{Empty: 0, Pawn: 1, Knight: 2, Bishop: 3, Rook: 4, Queen: 5, King: 6}

func mvvlva(p *Position, move Move) int {
	var captured, _ = p.PieceOn(move.To())
	if move.Kind() == MoveEnPassant {
		captured = Pawn
	}
	var moving, _ = p.PieceOn(move.From())
	var promotion = Empty
	if move.Kind() == MovePromotion {
		promotion = move.Promotion()
	}
	return 8*(sortPieceValues[captured]+sortPieceValues[promotion]) -
		sortPieceValues[moving]
}

func sortMoves(moves []orderedMove) {
	for i := 1; i < len(moves); i++ {
		j, t := i, moves[i]
		for ; j > 0 && moves[j-1].Key < t.Key; j-- {
			moves[j] = moves[j-1]
		}
		moves[j] = t
	}
}

func moveToTop(ml []orderedMove) {
	var bestIndex = 0
	for i := 1; i < len(ml); i++ {
		if ml[i].Key > ml[bestIndex].Key {
			bestIndex = i
		}
	}
	if bestIndex != 0 {
		ml[0], ml[bestIndex] = ml[bestIndex], ml[0]
	}
}
