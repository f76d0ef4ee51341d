package engine

import (
	. "github.com/ChizhovVadim/CounterUci/pkg/common"
)

const pawnValue = 100

func aspirationWindow(t *thread, ml []Move, depth, prevScore int) int {
	if depth >= 5 && !(prevScore <= valueLoss || prevScore >= valueWin) {
		const window = 25
		var alpha = Max(-ValueInfinity, prevScore-window)
		var beta = Min(ValueInfinity, prevScore+window)
		var score = searchRoot(t, ml, alpha, beta, depth)
		if score > alpha && score < beta {
			return score
		}
		if score >= beta {
			beta = ValueInfinity
		}
		if score <= alpha {
			alpha = -ValueInfinity
		}
		score = searchRoot(t, ml, alpha, beta, depth)
		if score > alpha && score < beta {
			return score
		}
	}
	return searchRoot(t, ml, -ValueInfinity, ValueInfinity, depth)
}

// searchRoot searches only the moves of ml, so searchmoves restrictions hold.
func searchRoot(t *thread, ml []Move, alpha, beta, depth int) int {
	const height = 0
	t.clearPV(height)
	var position = t.stack[height].position
	var best = -ValueInfinity
	var bestMove = MoveNone
	var oldAlpha = alpha

	for i, move := range ml {
		t.makeMove(move, height)
		var newDepth = depth - 1
		var score int
		if i == 0 {
			score = -t.alphaBeta(-beta, -alpha, newDepth, height+1)
		} else {
			score = -t.alphaBeta(-(alpha + 1), -alpha, newDepth, height+1)
			if score > alpha && score < beta {
				score = -t.alphaBeta(-beta, -alpha, newDepth, height+1)
			}
		}
		if score > best {
			best = score
			bestMove = move
		}
		if score > alpha {
			alpha = score
			t.assignPV(height, move)
			if alpha >= beta {
				break
			}
		}
	}

	var bound = 0
	if best > oldAlpha {
		bound |= boundLower
	}
	if best < beta {
		bound |= boundUpper
	}
	if bound != boundUpper {
		t.engine.transTable.Update(position.Key, depth, valueToTT(best, height), bound, bestMove)
	}
	return best
}

func (t *thread) alphaBeta(alpha, beta, depth, height int) int {
	if depth <= 0 {
		return t.quiescence(alpha, beta, height)
	}
	t.clearPV(height)

	var pvNode = beta != alpha+1
	var position = t.stack[height].position
	var isCheck = position.IsCheck()

	if height >= maxHeight {
		return t.evaluator.Evaluate(position)
	}
	if t.isRepeat(height) || isDraw(position) {
		return ValueDraw
	}
	// mate distance pruning
	if WinIn(height+1) <= alpha {
		return alpha
	}
	if LossIn(height+2) >= beta && !isCheck {
		return beta
	}

	var ttDepth, ttValue, ttBound, ttMove, ttHit = t.engine.transTable.Read(position.Key)
	if ttHit {
		ttValue = valueFromTT(ttValue, height)
		if ttDepth >= depth && !pvNode {
			if ttValue >= beta && (ttBound&boundLower) != 0 {
				if ttMove != MoveNone && !position.IsCaptureOrPromotion(ttMove) {
					t.updateKiller(ttMove, height)
				}
				return ttValue
			}
			if ttValue <= alpha && (ttBound&boundUpper) != 0 {
				return ttValue
			}
		}
	}

	var staticEval = t.evaluator.Evaluate(position)
	t.stack[height].staticEval = staticEval
	var improving = height < 2 || staticEval > t.stack[height-2].staticEval

	if height+2 <= maxHeight {
		t.stack[height+2].killer1 = MoveNone
		t.stack[height+2].killer2 = MoveNone
	}

	// reverse futility pruning
	if !pvNode && depth <= 8 && !isCheck && beta < valueWin {
		var score = staticEval - pawnValue*depth
		if score >= beta {
			return staticEval
		}
	}

	var mi = t.initMoveIterator(height, ttMove)
	var killer1 = t.stack[height].killer1
	var killer2 = t.stack[height].killer2
	var quietsSearched = t.stack[height].quietsSearched[:0]

	var movesSearched = 0
	var quietsSeen = 0
	var bestMove = MoveNone
	var best = -ValueInfinity
	var oldAlpha = alpha

	var lmp = 5 + (depth-1)*depth
	if !improving {
		lmp /= 2
	}

	for {
		var move = mi.Next()
		if move == MoveNone {
			break
		}
		var isNoisy = position.IsCaptureOrPromotion(move)
		if !isNoisy {
			quietsSeen++
		}

		if depth <= 8 && best > valueLoss && movesSearched > 0 && !isCheck &&
			!(isNoisy || move == killer1 || move == killer2) {
			// late-move pruning
			if quietsSeen > lmp {
				continue
			}
			// futility pruning
			if staticEval+100+pawnValue*depth <= alpha {
				continue
			}
		}

		var child = t.makeMove(move, height)
		movesSearched++

		var reduction int
		if depth >= 3 && movesSearched > 1 && !isNoisy {
			reduction = t.engine.Lmr(depth, movesSearched)
			if move == killer1 || move == killer2 {
				reduction--
			}
			if !isCheck {
				reduction -= Max(-2, Min(2, t.readHistory(position.WhiteMove, move)/5000))
				if !improving {
					reduction++
				}
			}
			if pvNode {
				reduction -= 2
			}
			if isCheck || child.IsCheck() {
				reduction--
			}
			reduction = Max(0, Min(depth-2, reduction))
		}

		if !isNoisy {
			quietsSearched = append(quietsSearched, move)
		}

		var newDepth = depth - 1
		var score = alpha + 1
		// LMR
		if reduction > 0 {
			score = -t.alphaBeta(-(alpha + 1), -alpha, newDepth-reduction, height+1)
		}
		// PVS
		if score > alpha && pvNode && movesSearched > 1 && newDepth > 0 {
			score = -t.alphaBeta(-(alpha + 1), -alpha, newDepth, height+1)
		}
		// full search
		if score > alpha {
			score = -t.alphaBeta(-beta, -alpha, newDepth, height+1)
		}

		if score > best {
			best = score
			bestMove = move
		}
		if score > alpha {
			alpha = score
			t.assignPV(height, move)
			if alpha >= beta {
				break
			}
		}
	}

	if movesSearched == 0 {
		if isCheck {
			return LossIn(height)
		}
		return ValueDraw
	}

	if alpha > oldAlpha && bestMove != MoveNone && !position.IsCaptureOrPromotion(bestMove) {
		t.updateHistory(position.WhiteMove, quietsSearched, bestMove, depth)
		t.updateKiller(bestMove, height)
	}

	var bound = 0
	if best > oldAlpha {
		bound |= boundLower
	}
	if best < beta {
		bound |= boundUpper
	}
	t.engine.transTable.Update(position.Key, depth, valueToTT(best, height), bound, bestMove)

	return best
}

func (t *thread) quiescence(alpha, beta, height int) int {
	t.clearPV(height)
	var position = t.stack[height].position
	if isDraw(position) {
		return ValueDraw
	}
	if height >= maxHeight {
		return t.evaluator.Evaluate(position)
	}
	if t.isRepeat(height) {
		return ValueDraw
	}

	var _, ttValue, ttBound, _, ttHit = t.engine.transTable.Read(position.Key)
	if ttHit {
		ttValue = valueFromTT(ttValue, height)
		if ttBound == boundExact ||
			ttBound == boundLower && ttValue >= beta ||
			ttBound == boundUpper && ttValue <= alpha {
			return ttValue
		}
	}

	var isCheck = position.IsCheck()
	var best = -ValueInfinity
	if !isCheck {
		var eval = t.evaluator.Evaluate(position)
		best = Max(best, eval)
		if eval > alpha {
			alpha = eval
			if alpha >= beta {
				return alpha
			}
		}
	}

	var mi = t.initMoveIteratorQS(height)
	var hasLegalMove = false
	for {
		var move = mi.Next()
		if move == MoveNone {
			break
		}
		t.makeMove(move, height)
		hasLegalMove = true
		var score = -t.quiescence(-beta, -alpha, height+1)
		best = Max(best, score)
		if score > alpha {
			alpha = score
			t.assignPV(height, move)
			if alpha >= beta {
				break
			}
		}
	}
	if isCheck && !hasLegalMove {
		return LossIn(height)
	}
	return best
}

// incNodes polls for cancellation every 1024 nodes.
func (t *thread) incNodes() {
	t.nodes++
	if t.nodes&1023 == 0 {
		t.sharedNodes.Store(t.nodes)
		t.engine.timeManager.OnNodesChanged(t.engine.totalNodes())
		if t.ctx.Err() != nil {
			panic(errSearchTimeout)
		}
	}
}

func (t *thread) makeMove(move Move, height int) *Position {
	var child, ok = t.stack[height].position.MakeMove(move)
	if !ok {
		panic("illegal move " + move.String())
	}
	t.stack[height+1].position = child
	t.incNodes()
	return child
}

func (t *thread) isRepeat(height int) bool {
	var p = t.stack[height].position

	if p.Rule50 == 0 || p.LastMove == MoveNone {
		return false
	}
	for i := height - 1; i >= 0; i-- {
		var temp = t.stack[i].position
		if temp.Key == p.Key {
			return true
		}
		if temp.Rule50 == 0 || temp.LastMove == MoveNone {
			return false
		}
	}

	return t.engine.historyKeys[p.Key] >= 2
}

func (t *thread) updateKiller(move Move, height int) {
	if t.stack[height].killer1 != move {
		t.stack[height].killer2 = t.stack[height].killer1
		t.stack[height].killer1 = move
	}
}

func (t *thread) clearPV(height int) {
	t.stack[height].pv.clear()
}

func (t *thread) assignPV(height int, m Move) {
	t.stack[height].pv.assign(m, &t.stack[height+1].pv)
}
