package engine

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/ChizhovVadim/CounterUci/pkg/common"
)

var errSearchTimeout = errors.New("search timeout")

// lazySmp runs one iterative deepening loop per thread over a shared transposition table.
// Helper threads start at staggered depths and differ in root move order.
func lazySmp(ctx context.Context, e *Engine) {
	e.mainLine = mainLine{
		moves: []common.Move{e.rootMoves[0]},
	}
	var g, gctx = errgroup.WithContext(ctx)
	for i := range e.threads {
		var t = &e.threads[i]
		var ml = cloneMoves(e.rootMoves)
		if i > 0 && len(ml) > 1 {
			rotateMoves(ml, i%len(ml))
		}
		g.Go(func() error {
			return iterativeDeepening(gctx, t, ml, 1+i%2)
		})
	}
	g.Wait()
}

func iterativeDeepening(ctx context.Context, t *thread, ml []common.Move, startDepth int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if r == errSearchTimeout {
				return
			}
			panic(r)
		}
	}()

	t.ctx = ctx
	for h := 0; h <= 2; h++ {
		t.stack[h].killer1 = common.MoveNone
		t.stack[h].killer2 = common.MoveNone
	}

	var prevScore = 0
	for depth := startDepth; depth <= maxHeight; depth++ {
		if ctx.Err() != nil {
			return nil
		}
		if depth > startDepth {
			var bestMove = t.engine.bestMove()
			if index := findMoveIndex(ml, bestMove); index >= 0 {
				moveToBegin(ml, index)
			}
		}
		var score = aspirationWindow(t, ml, depth, prevScore)
		prevScore = score
		t.sharedNodes.Store(t.nodes)
		t.engine.onIterationComplete(t, depth, score)
	}
	return nil
}

func (e *Engine) bestMove() common.Move {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.mainLine.moves) == 0 {
		return common.MoveNone
	}
	return e.mainLine.moves[0]
}

func rotateMoves(ml []common.Move, n int) {
	var rotated = append(cloneMoves(ml[n:]), ml[:n]...)
	copy(ml, rotated)
}
