package uci

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"

	"github.com/ChizhovVadim/CounterUci/pkg/common"
)

func TestBenchCommandsDefault(t *testing.T) {
	var current, _ = common.NewPositionFromFEN(common.InitialPositionFen)
	var list, err = BenchCommands(current, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 3+2*len(benchFens) {
		t.Fatal(len(list))
	}
	var head = []string{
		"setoption name Threads value 1",
		"setoption name Hash value 16",
		"ucinewgame",
		"position fen " + common.InitialPositionFen,
		"go depth 6",
	}
	for i, want := range head {
		if list[i] != want {
			t.Errorf("%v: %q", i, list[i])
		}
	}
}

func TestBenchCommandsArgs(t *testing.T) {
	var current, _ = common.NewPositionFromFEN("8/8/8/8/8/8/8/K6k w - - 0 1")
	var list, err = BenchCommands(current, []string{"64", "2", "5000", "current", "nodes"})
	if err != nil {
		t.Fatal(err)
	}
	var want = []string{
		"setoption name Threads value 2",
		"setoption name Hash value 64",
		"ucinewgame",
		"position fen " + current.FEN(),
		"go nodes 5000",
	}
	if strings.Join(list, "\n") != strings.Join(want, "\n") {
		t.Error(list)
	}

	list, err = BenchCommands(current, []string{"16", "1", "1", "current", "eval"})
	if err != nil {
		t.Fatal(err)
	}
	if list[len(list)-1] != "eval" {
		t.Error(list)
	}
}

func writeZstd(t *testing.T, path, content string) {
	t.Helper()
	var f, err = os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	enc, err := zstd.NewWriter(f)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := enc.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestBenchCommandsFile(t *testing.T) {
	var dir = t.TempDir()
	var content = common.InitialPositionFen + "\n\nsetoption name Hash value 1\n8/8/8/8/8/8/8/K6k w - - 0 1\n"
	var plain = filepath.Join(dir, "fens.txt")
	if err := os.WriteFile(plain, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	var compressed = filepath.Join(dir, "fens.txt.zst")
	writeZstd(t, compressed, content)

	var want = []string{
		"setoption name Threads value 1",
		"setoption name Hash value 16",
		"ucinewgame",
		"position fen " + common.InitialPositionFen,
		"go depth 3",
		"setoption name Hash value 1",
		"position fen 8/8/8/8/8/8/8/K6k w - - 0 1",
		"go depth 3",
	}
	for _, path := range []string{plain, compressed} {
		var list, err = BenchCommands(nil, []string{"16", "1", "3", path})
		if err != nil {
			t.Fatal(path, err)
		}
		if strings.Join(list, "\n") != strings.Join(want, "\n") {
			t.Error(path, list)
		}
	}

	if _, err := BenchCommands(nil, []string{"16", "1", "3", filepath.Join(dir, "missing")}); err == nil {
		t.Error("missing file accepted")
	}
}

func TestRunBench(t *testing.T) {
	var eng = &fakeEngine{
		result: func(params common.SearchParams) common.SearchInfo {
			return common.SearchInfo{Depth: params.Limits.Depth, Nodes: 1000}
		},
	}
	var s = newTestSession(eng)
	var commands = []string{
		"setoption name Hash value 32",
		"ucinewgame",
		"position startpos",
		"go depth 2",
		"position fen 8/8/8/8/8/8/8/K6k w - - 0 1",
		"go depth 2",
		"eval",
		"position startpos",
		"go perft 2",
	}
	var summary, err = s.uci.RunBench(context.Background(), commands)
	if err != nil {
		t.Fatal(err)
	}
	if summary.Positions != 4 {
		t.Error(summary.Positions)
	}
	if summary.Nodes != 1000+1000+400 {
		t.Error(summary.Nodes)
	}
	if summary.Elapsed <= 0 {
		t.Error(summary.Elapsed)
	}
	if s.hash != 32 || eng.cleared.Load() != 1 {
		t.Error(s.hash, eng.cleared.Load())
	}
	var diag = s.diag.String()
	for _, want := range []string{
		"Position: 1/4",
		"Position: 4/4",
		"Nodes/Second: ",
		"Total time (ms) : ",
		"Nodes searched  : 2400\n",
		"Nodes/second    : ",
	} {
		if !strings.Contains(diag, want) {
			t.Errorf("missing %q in\n%v", want, diag)
		}
	}
	if strings.Count(s.out.String(), "bestmove") != 2 {
		t.Error(s.out.String())
	}
}

func TestBenchCommand(t *testing.T) {
	var eng = &fakeEngine{
		result: func(params common.SearchParams) common.SearchInfo {
			return common.SearchInfo{Depth: 1, Nodes: 10}
		},
	}
	var s = newTestSession(eng)
	s.run(t, "position fen 8/8/8/8/8/8/8/K6k w - - 0 1\nbench 16 1 4 current\n")
	if !strings.Contains(s.diag.String(), "Nodes searched  : 10\n") {
		t.Error(s.diag.String())
	}
	if eng.lastParams().Limits.Depth != 4 {
		t.Error(eng.lastParams().Limits)
	}
}

func TestFormatNps(t *testing.T) {
	var tests = []struct {
		nodes, ms int64
		want      string
	}{
		{1000, 1, "1000000"},
		{5000, 1000, "5000"},
		{20_000_000, 1000, "20000k"},
	}
	for _, test := range tests {
		if got := formatNps(test.nodes, test.ms); got != test.want {
			t.Error(test, got)
		}
	}
}
