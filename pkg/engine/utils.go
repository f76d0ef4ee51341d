package engine

import (
	. "github.com/ChizhovVadim/CounterUci/pkg/common"
)

const (
	stackSize = MaxHeight + 1
	maxHeight = MaxHeight
	valueWin  = ValueMateInMaxHeight
	valueLoss = -valueWin
)

func valueToTT(v, height int) int {
	if v >= valueWin {
		return v + height
	}
	if v <= valueLoss {
		return v - height
	}
	return v
}

func valueFromTT(v, height int) int {
	if v >= valueWin {
		return v - height
	}
	if v <= valueLoss {
		return v + height
	}
	return v
}

func isDraw(p *Position) bool {
	return p.Rule50 > 100
}

// genRootMoves returns the legal moves of p restricted to searchMoves when given,
// transposition table move first and captures next.
func (e *Engine) genRootMoves(p *Position, searchMoves []Move) []Move {
	var _, _, _, transMove, _ = e.transTable.Read(p.Key)
	var ml []orderedMove
	for _, m := range p.LegalMoves() {
		if len(searchMoves) != 0 && findMoveIndex(searchMoves, m) < 0 {
			continue
		}
		var key int
		if m == transMove {
			key = sortTableKeyImportant
		} else if p.IsCaptureOrPromotion(m) {
			key = 1000 + mvvlva(p, m)
		}
		ml = append(ml, orderedMove{Move: m, Key: int32(key)})
	}
	sortMoves(ml)
	var result = make([]Move, len(ml))
	for i := range ml {
		result[i] = ml[i].Move
	}
	return result
}

func findMoveIndex(ml []Move, move Move) int {
	for i := range ml {
		if ml[i] == move {
			return i
		}
	}
	return -1
}

func moveToBegin(ml []Move, index int) {
	if index == 0 {
		return
	}
	var item = ml[index]
	for i := index; i > 0; i-- {
		ml[i] = ml[i-1]
	}
	ml[0] = item
}

func cloneMoves(ml []Move) []Move {
	var result = make([]Move, len(ml))
	copy(result, ml)
	return result
}
