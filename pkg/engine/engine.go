package engine

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	. "github.com/ChizhovVadim/CounterUci/pkg/common"
)

type Engine struct {
	Options
	evalBuilder func() Evaluator
	timeManager *timeManager
	transTable  *transTable
	historyKeys map[uint64]int
	threads     []thread
	progress    func(SearchInfo)
	rootMoves   []Move
	mainLine    mainLine
	start       time.Time
	nodes       int64
	mu          sync.Mutex
}

type Evaluator interface {
	Evaluate(p *Position) int
}

type thread struct {
	engine      *Engine
	evaluator   Evaluator
	ctx         context.Context
	nodes       int64
	sharedNodes atomic.Int64
	mainHistory [2 * 64 * 64]int16
	stack       [stackSize]struct {
		position       *Position
		moveList       [MaxMoves]orderedMove
		quietsSearched [MaxMoves]Move
		pv             pv
		staticEval     int
		killer1        Move
		killer2        Move
	}
}

type pv struct {
	items [stackSize]Move
	size  int
}

type mainLine struct {
	moves []Move
	score int
	depth int
}

func NewEngine(evalBuilder func() Evaluator) *Engine {
	return &Engine{
		Options:     NewOptions(),
		evalBuilder: evalBuilder,
	}
}

// Prepare resizes the transposition table and the thread pool to the current options.
func (e *Engine) Prepare() {
	if e.transTable == nil || e.transTable.Size() != e.Hash {
		if e.transTable != nil {
			e.transTable = nil
			runtime.GC()
		}
		e.transTable = newTransTable(e.Hash)
	}
	if len(e.threads) != e.Threads {
		e.threads = make([]thread, e.Threads)
		for i := range e.threads {
			var t = &e.threads[i]
			t.engine = e
			t.evaluator = e.evalBuilder()
		}
	}
}

// Search runs an iterative deepening search on the last of params.Positions.
// It returns when ctx is cancelled or a limit is reached.
func (e *Engine) Search(ctx context.Context, params SearchParams) SearchInfo {
	e.start = params.Limits.StartTime
	if e.start.IsZero() {
		e.start = time.Now()
	}
	e.Prepare()
	var p = params.Positions[len(params.Positions)-1]
	var searchCtx, tm = newTimeManager(ctx, e.start, params.Limits, params.Pondering, e.MoveOverhead, p)
	defer tm.Close()
	e.timeManager = tm
	e.transTable.IncDate()
	e.historyKeys = getHistoryKeys(params.Positions)
	e.progress = params.Progress
	e.nodes = 0
	e.mainLine = mainLine{}
	e.rootMoves = e.genRootMoves(p, params.Limits.SearchMoves)
	for i := range e.threads {
		var t = &e.threads[i]
		t.nodes = 0
		t.sharedNodes.Store(0)
		t.stack[0].position = p
	}

	if len(e.rootMoves) == 0 {
		var score = ValueDraw
		if p.IsCheck() {
			score = LossIn(0)
		}
		e.mainLine = mainLine{score: score}
		return e.currentSearchResult()
	}

	lazySmp(searchCtx, e)
	e.nodes = 0
	for i := range e.threads {
		e.nodes += e.threads[i].nodes
	}
	return e.currentSearchResult()
}

func getHistoryKeys(positions []*Position) map[uint64]int {
	var result = make(map[uint64]int)
	for i := len(positions) - 1; i >= 0; i-- {
		var p = positions[i]
		result[p.Key]++
		if p.Rule50 == 0 {
			break
		}
	}
	return result
}

func (e *Engine) Clear() {
	if e.transTable != nil {
		e.transTable.Clear()
	}
	for i := range e.threads {
		e.threads[i].clearHistory()
	}
}

func (e *Engine) currentSearchResult() SearchInfo {
	return SearchInfo{
		Depth:    e.mainLine.depth,
		MainLine: e.mainLine.moves,
		Score:    e.mainLine.score,
		Nodes:    e.nodes,
		Hashfull: e.transTable.Hashfull(),
		Time:     time.Since(e.start),
	}
}

func (e *Engine) totalNodes() int64 {
	var total int64
	for i := range e.threads {
		total += e.threads[i].sharedNodes.Load()
	}
	return total
}

func (e *Engine) onIterationComplete(t *thread, depth, score int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.nodes = e.totalNodes()
	if depth > e.mainLine.depth {
		const height = 0
		e.mainLine = mainLine{
			depth: depth,
			score: score,
			moves: t.stack[height].pv.toSlice(),
		}
		e.timeManager.OnIterationComplete(e.mainLine)
		if e.progress != nil && e.nodes >= int64(e.ProgressMinNodes) {
			e.progress(e.currentSearchResult())
		}
	}
}

func (pv *pv) clear() {
	pv.size = 0
}

func (pv *pv) assign(m Move, child *pv) {
	pv.size = 1
	pv.items[0] = m
	if child.size > 0 {
		pv.size += child.size
		copy(pv.items[1:], child.items[:child.size])
	}
}

func (pv *pv) toSlice() []Move {
	var result = make([]Move, pv.size)
	copy(result, pv.items[:pv.size])
	return result
}
