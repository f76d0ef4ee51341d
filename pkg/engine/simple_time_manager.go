package engine

import (
	"context"
	"sync/atomic"
	"time"

	. "github.com/ChizhovVadim/CounterUci/pkg/common"
)

// timeManager stops the search on clock, node, depth and mate limits.
// Clock limits are ignored while the pondering flag is set.
type timeManager struct {
	start     time.Time
	limits    LimitsType
	pondering *atomic.Bool
	softLimit time.Duration
	hardLimit time.Duration
	deadline  bool
	cancel    context.CancelFunc
}

func newTimeManager(ctx context.Context, start time.Time, limits LimitsType,
	pondering *atomic.Bool, moveOverhead int, p *Position) (context.Context, *timeManager) {

	var tm = &timeManager{
		start:     start,
		limits:    limits,
		pondering: pondering,
	}

	if limits.MoveTime > 0 {
		tm.hardLimit = time.Duration(limits.MoveTime) * time.Millisecond
	} else if limits.WhiteTime > 0 || limits.BlackTime > 0 {
		var main, inc time.Duration
		if p.WhiteMove {
			main = time.Duration(limits.WhiteTime) * time.Millisecond
			inc = time.Duration(limits.WhiteIncrement) * time.Millisecond
		} else {
			main = time.Duration(limits.BlackTime) * time.Millisecond
			inc = time.Duration(limits.BlackIncrement) * time.Millisecond
		}
		var overhead = time.Duration(moveOverhead) * time.Millisecond
		tm.softLimit, tm.hardLimit = calcLimits(main, inc, overhead, limits.MovesToGo)
	}

	var cancel context.CancelFunc
	if tm.hardLimit != 0 && !tm.isPondering() {
		ctx, cancel = context.WithDeadline(ctx, start.Add(tm.hardLimit))
		tm.deadline = true
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}

	tm.cancel = cancel
	return ctx, tm
}

func (tm *timeManager) isPondering() bool {
	return tm.pondering != nil && tm.pondering.Load()
}

func (tm *timeManager) OnNodesChanged(nodes int64) {
	if tm.limits.Nodes > 0 && nodes >= int64(tm.limits.Nodes) {
		tm.cancel()
		return
	}
	// the search started as ponder and the clock runs since ponderhit
	if !tm.deadline && tm.hardLimit != 0 && !tm.isPondering() &&
		time.Since(tm.start) >= tm.hardLimit {
		tm.cancel()
	}
}

func (tm *timeManager) OnIterationComplete(line mainLine) {
	if tm.limits.Depth != 0 && line.depth >= tm.limits.Depth {
		tm.cancel()
		return
	}
	if tm.limits.Mate != 0 && line.score >= WinIn(2*tm.limits.Mate) {
		tm.cancel()
		return
	}
	if tm.limits.Infinite || tm.isPondering() {
		return
	}
	if line.score >= WinIn(line.depth-5) ||
		line.score <= LossIn(line.depth-5) {
		tm.cancel()
		return
	}
	if tm.softLimit != 0 &&
		time.Since(tm.start) >= tm.softLimit {
		tm.cancel()
		return
	}
}

func (tm *timeManager) Close() {
	tm.cancel()
}

func calcLimits(main, inc, moveOverhead time.Duration, moves int) (soft, hard time.Duration) {
	const (
		DefaultMovesToGo = 40
		MinTimeLimit     = 1 * time.Millisecond
	)

	main -= moveOverhead
	if main < MinTimeLimit {
		main = MinTimeLimit
	}

	if moves == 0 {
		var ideal = main/35 + inc/2
		soft = ideal * 7 / 10
		hard = ideal * 21 / 10
	} else {
		moves = Min(moves, DefaultMovesToGo)
		soft = (main/time.Duration(moves+1) + inc) * 7 / 10
		hard = (main/time.Duration(moves+1) + inc) * 21 / 10
	}

	hard = limitDuration(hard, MinTimeLimit, main)
	soft = limitDuration(soft, MinTimeLimit, main)

	return
}

func limitDuration(v, min, max time.Duration) time.Duration {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
