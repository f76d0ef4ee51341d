package uci

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ChizhovVadim/CounterUci/pkg/common"
	"github.com/ChizhovVadim/CounterUci/pkg/engine"
	"github.com/ChizhovVadim/CounterUci/pkg/eval"
)

type fakeEngine struct {
	prepared atomic.Int32
	cleared  atomic.Int32
	// block makes Search wait for cancellation.
	block  bool
	result func(params common.SearchParams) common.SearchInfo

	mu     sync.Mutex
	params []common.SearchParams
}

func (e *fakeEngine) Prepare() { e.prepared.Add(1) }

func (e *fakeEngine) Clear() { e.cleared.Add(1) }

func (e *fakeEngine) Search(ctx context.Context, params common.SearchParams) common.SearchInfo {
	e.mu.Lock()
	e.params = append(e.params, params)
	e.mu.Unlock()
	if e.block {
		<-ctx.Done()
	}
	if e.result != nil {
		return e.result(params)
	}
	return common.SearchInfo{Depth: 1, Nodes: 1}
}

func (e *fakeEngine) lastParams() common.SearchParams {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.params[len(e.params)-1]
}

type fakeEvaluator struct{}

func (fakeEvaluator) Trace(p *common.Position) string {
	return "trace " + p.FEN()
}

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// waitFor polls the buffer until it contains s.
func (b *lockedBuffer) waitFor(t *testing.T, s string) {
	t.Helper()
	var deadline = time.Now().Add(5 * time.Second)
	for !strings.Contains(b.String(), s) {
		if time.Now().After(deadline) {
			t.Fatalf("timeout waiting for %q, output:\n%v", s, b.String())
		}
		time.Sleep(time.Millisecond)
	}
}

type testSession struct {
	uci  *Protocol
	out  *lockedBuffer
	diag *lockedBuffer
	hash int
}

func newTestSession(eng Engine) *testSession {
	var s = &testSession{
		out:  &lockedBuffer{},
		diag: &lockedBuffer{},
		hash: 16,
	}
	s.uci = New("Counter", "Vadim Chizhov", "test", eng, fakeEvaluator{},
		[]Option{
			&IntOption{Name: "Hash", Min: 1, Max: 1 << 16, Value: &s.hash},
		})
	s.uci.SetOutput(s.out, s.diag)
	return s
}

// run feeds input to the session and returns everything printed.
func (s *testSession) run(t *testing.T, input string) string {
	t.Helper()
	if err := s.uci.Run(context.Background(), strings.NewReader(input)); err != nil {
		t.Fatal(err)
	}
	return s.out.String()
}

// start runs the session on a pipe; the returned function closes the input
// and waits for Run.
func (s *testSession) start(t *testing.T) (*io.PipeWriter, func() error) {
	var r, w = io.Pipe()
	var done = make(chan error, 1)
	go func() {
		done <- s.uci.Run(context.Background(), r)
	}()
	return w, func() error {
		w.Close()
		select {
		case err := <-done:
			return err
		case <-time.After(5 * time.Second):
			t.Fatal("session did not finish")
			return nil
		}
	}
}

func send(t *testing.T, w io.Writer, line string) {
	t.Helper()
	if _, err := io.WriteString(w, line+"\n"); err != nil {
		t.Fatal(err)
	}
}

func TestHandshake(t *testing.T) {
	var eng = &fakeEngine{}
	var s = newTestSession(eng)
	var out = s.run(t, "uci\nisready\n")
	for _, want := range []string{
		"id name Counter test\n",
		"id author Vadim Chizhov\n",
		"option name Hash type spin default 16 min 1 max 65536\n",
		"option name Score Output type combo default Centipawn var Centipawn var ScorPct-GUI var ScorPct\n",
		"option name Clean_Search type check default false\n",
		"uciok\nreadyok\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in\n%v", want, out)
		}
	}
	if strings.Contains(out, "UCI_Chess960") {
		t.Error("chess960 is not supported by the rules backend")
	}
	if eng.prepared.Load() != 1 {
		t.Error(eng.prepared.Load())
	}
}

func TestUnknownCommand(t *testing.T) {
	var s = newTestSession(&fakeEngine{})
	var out = s.run(t, "foo bar\n\nisready\n")
	if !strings.Contains(out, "Unknown command: foo bar\n") {
		t.Error(out)
	}
	if !strings.Contains(out, "readyok") {
		t.Error(out)
	}
}

func TestShortcutsDisabledByDefault(t *testing.T) {
	var s = newTestSession(&fakeEngine{})
	var out = s.run(t, "g d 1\n")
	if !strings.Contains(out, "Unknown command: g d 1") {
		t.Error(out)
	}
}

func TestQuit(t *testing.T) {
	var s = newTestSession(&fakeEngine{})
	var out = s.run(t, "quit\nisready\n")
	if strings.Contains(out, "readyok") {
		t.Error(out)
	}
}

func TestEndOfInputStopsSearch(t *testing.T) {
	var eng = &fakeEngine{block: true}
	var s = newTestSession(eng)
	var out = s.run(t, "go infinite\n")
	if !strings.Contains(out, "bestmove") {
		t.Error(out)
	}
}

func TestContextCancel(t *testing.T) {
	var s = newTestSession(&fakeEngine{block: true})
	var r, w = io.Pipe()
	defer w.Close()
	var ctx, cancel = context.WithCancel(context.Background())
	var done = make(chan error, 1)
	go func() {
		done <- s.uci.Run(ctx, r)
	}()
	send(t, w, "go infinite")
	send(t, w, "isready")
	s.out.waitFor(t, "readyok")
	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Error(err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return")
	}
	if !strings.Contains(s.out.String(), "bestmove") {
		t.Error(s.out.String())
	}
}

func TestCommandsRejectedWhileSearching(t *testing.T) {
	var eng = &fakeEngine{block: true}
	var s = newTestSession(eng)
	var w, finish = s.start(t)
	send(t, w, "go infinite")
	send(t, w, "ucinewgame")
	send(t, w, "go depth 1")
	send(t, w, "isready")
	s.out.waitFor(t, "readyok")
	send(t, w, "stop")
	s.out.waitFor(t, "bestmove")
	if err := finish(); err != nil {
		t.Fatal(err)
	}
	var out = s.out.String()
	if strings.Count(out, "info string search still run") != 2 {
		t.Error(out)
	}
	if eng.cleared.Load() != 0 {
		t.Error("ucinewgame executed during search")
	}
	if eng.prepared.Load() != 0 {
		t.Error("isready prepared during search")
	}
	if len(eng.params) != 1 {
		t.Error(len(eng.params))
	}
}

func TestInfiniteHoldsBestMove(t *testing.T) {
	var s = newTestSession(&fakeEngine{})
	var w, finish = s.start(t)
	send(t, w, "go infinite")
	send(t, w, "isready")
	s.out.waitFor(t, "readyok")
	time.Sleep(20 * time.Millisecond)
	if strings.Contains(s.out.String(), "bestmove") {
		t.Fatal("bestmove before stop")
	}
	send(t, w, "stop")
	s.out.waitFor(t, "bestmove")
	if err := finish(); err != nil {
		t.Fatal(err)
	}
}

func TestPonderhit(t *testing.T) {
	var eng = &fakeEngine{}
	var s = newTestSession(eng)
	var w, finish = s.start(t)
	send(t, w, "go ponder wtime 1000 btime 1000")
	send(t, w, "isready")
	s.out.waitFor(t, "readyok")
	time.Sleep(20 * time.Millisecond)
	if strings.Contains(s.out.String(), "bestmove") {
		t.Fatal("bestmove before ponderhit")
	}
	send(t, w, "ponderhit")
	s.out.waitFor(t, "bestmove")
	if err := finish(); err != nil {
		t.Fatal(err)
	}
	var params = eng.lastParams()
	if params.Pondering == nil || params.Pondering.Load() {
		t.Error("pondering flag not cleared")
	}
	if !params.Limits.Ponder || params.Limits.WhiteTime != 1000 {
		t.Error(params.Limits)
	}
}

func TestStopWithoutSearch(t *testing.T) {
	var s = newTestSession(&fakeEngine{})
	var out = s.run(t, "stop\nponderhit\nisready\n")
	if out != "readyok\n" {
		t.Error(out)
	}
}

func TestBestMove(t *testing.T) {
	var tests = []struct {
		mainLine []string
		want     string
	}{
		{nil, "bestmove (none)\n"},
		{[]string{"e2e4"}, "bestmove e2e4\n"},
		{[]string{"e2e4", "e7e5"}, "bestmove e2e4 ponder e7e5\n"},
	}
	for _, test := range tests {
		var eng = &fakeEngine{
			result: func(params common.SearchParams) common.SearchInfo {
				var p = params.Positions[len(params.Positions)-1]
				var si = common.SearchInfo{Depth: 1}
				for _, lan := range test.mainLine {
					var m, _ = common.ParseMove(p, lan)
					si.MainLine = append(si.MainLine, m)
					p, _ = p.MakeMove(m)
				}
				return si
			},
		}
		var s = newTestSession(eng)
		var out = s.run(t, "position startpos\ngo depth 1\n")
		if !strings.HasSuffix(out, test.want) {
			t.Error(test.mainLine, out)
		}
	}
}

func TestSearchInfoFormat(t *testing.T) {
	var p, _ = common.NewPositionFromFEN(common.InitialPositionFen)
	var m, _ = common.ParseMove(p, "e2e4")
	var si = common.SearchInfo{
		Score:    35,
		Depth:    7,
		Nodes:    20000,
		Hashfull: 12,
		Time:     999 * time.Millisecond,
		MainLine: []common.Move{m},
	}
	var got = searchInfoToUci(si, common.DefaultScoreFormatter, false)
	var want = "info depth 7 score cp 35 nodes 20000 nps 20000 hashfull 12 time 999 pv e2e4"
	if got != want {
		t.Error(got)
	}
	si.Score = common.WinIn(3)
	si.MainLine = nil
	got = searchInfoToUci(si, common.DefaultScoreFormatter, false)
	if !strings.HasPrefix(got, "info depth 7 score mate 2 ") || strings.Contains(got, " pv") {
		t.Error(got)
	}
}

func TestRunOnce(t *testing.T) {
	var eng = &fakeEngine{}
	var s = newTestSession(eng)
	if err := s.uci.RunOnce(context.Background(), []string{"go", "depth", "3"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(s.out.String(), "bestmove") {
		t.Error(s.out.String())
	}
	if eng.lastParams().Limits.Depth != 3 {
		t.Error(eng.lastParams().Limits)
	}
}

func TestGoParseErrorStillSearches(t *testing.T) {
	var eng = &fakeEngine{}
	var s = newTestSession(eng)
	var out = s.run(t, "go depth x movetime 100\n")
	if !strings.Contains(out, "info string depth:") || !strings.Contains(out, "bestmove") {
		t.Error(out)
	}
	if eng.lastParams().Limits.MoveTime != 100 {
		t.Error(eng.lastParams().Limits)
	}
}

func TestPerft(t *testing.T) {
	var eng = &fakeEngine{}
	var s = newTestSession(eng)
	var out = s.run(t, "position startpos\ngo perft 2\n")
	if !strings.Contains(out, "e2e4: 20\n") || !strings.Contains(out, "Nodes searched: 400\n") {
		t.Error(out)
	}
	if strings.Contains(out, "bestmove") || len(eng.params) != 0 {
		t.Error("perft started a search")
	}
}

func TestDisplayEvalCompiler(t *testing.T) {
	var s = newTestSession(&fakeEngine{})
	var out = s.run(t, "d\neval\ncompiler\n")
	for _, want := range []string{
		"Fen: " + common.InitialPositionFen,
		"trace " + common.InitialPositionFen,
		"Compiled by go",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in\n%v", want, out)
		}
	}
}

func TestEvalWithoutEvaluator(t *testing.T) {
	var out = &lockedBuffer{}
	var uci = New("Counter", "", "test", &fakeEngine{}, nil, nil)
	uci.SetOutput(out, io.Discard)
	if err := uci.Run(context.Background(), strings.NewReader("eval\n")); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "info string "+errNoEvaluator.Error()) {
		t.Error(out.String())
	}
}

func TestShortcuts(t *testing.T) {
	var eng = &fakeEngine{}
	var s = newTestSession(eng)
	s.uci.EnableShortcuts()
	var out = s.run(t, "p startpos moves e2e4\nso name Hash value 32\ng d 2\nc++\nq\n")
	if !strings.Contains(out, "bestmove") || !strings.Contains(out, "Compiled by") {
		t.Error(out)
	}
	if s.hash != 32 {
		t.Error(s.hash)
	}
	var params = eng.lastParams()
	if len(params.Positions) != 2 || params.Limits.Depth != 2 {
		t.Error(len(params.Positions), params.Limits)
	}
}

// A mate in one must be found through the whole command path.
func TestRealEngineSession(t *testing.T) {
	var eng = engine.NewEngine(func() engine.Evaluator {
		return eval.NewEvaluationService()
	})
	eng.Hash = 1
	var s = newTestSession(eng)
	var w, finish = s.start(t)
	for _, line := range []string{
		"uci",
		"isready",
		"ucinewgame",
		"position fen 6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1",
		"go depth 4",
	} {
		send(t, w, line)
	}
	s.out.waitFor(t, "bestmove")
	if err := finish(); err != nil {
		t.Fatal(err)
	}
	var out = s.out.String()
	if !strings.Contains(out, "score mate 1") {
		t.Error(out)
	}
	if !strings.Contains(out, "bestmove a1a8") {
		t.Error(out)
	}
}

func TestFinalInfoNotRepeated(t *testing.T) {
	var tests = []struct {
		progress []int
		result   int
		want     int
	}{
		{nil, 1, 1},
		{[]int{1, 2}, 2, 2},
		{[]int{1, 2}, 3, 3},
	}
	for _, test := range tests {
		var eng = &fakeEngine{
			result: func(params common.SearchParams) common.SearchInfo {
				for _, depth := range test.progress {
					params.Progress(common.SearchInfo{Depth: depth})
				}
				return common.SearchInfo{Depth: test.result}
			},
		}
		var s = newTestSession(eng)
		var out = s.run(t, "go depth 3\n")
		if got := strings.Count(out, "info depth "); got != test.want {
			t.Error(test.progress, test.result, out)
		}
		if !strings.Contains(out, fmt.Sprintf("info depth %v ", test.result)) {
			t.Error(out)
		}
	}
}

func TestScoreOutputMode(t *testing.T) {
	var tests = []struct {
		setup string
		want  string
	}{
		{"", "score cp 135 "},
		{"setoption name Score Output value ScorPct\n", "score cp 55."},
	}
	for _, test := range tests {
		var eng = &fakeEngine{
			result: func(params common.SearchParams) common.SearchInfo {
				return common.SearchInfo{Depth: 1, Score: 135}
			},
		}
		var s = newTestSession(eng)
		var out = s.run(t, test.setup+"go depth 1\n")
		if !strings.Contains(out, test.want) {
			t.Error(test.setup, out)
		}
	}
}
