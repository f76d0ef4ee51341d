package eval

import (
	"strings"
	"testing"

	. "github.com/ChizhovVadim/CounterUci/pkg/common"
)

var testFENs = []string{
	InitialPositionFen,
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq -",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - -",
	"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	"8/5k2/8/3b4/8/2B5/4K3/8 b - - 0 1",
}

func TestInitialPosition(t *testing.T) {
	var p, err = NewPositionFromFEN(InitialPositionFen)
	if err != nil {
		t.Fatal(err)
	}
	if score := NewEvaluationService().Evaluate(p); score != 0 {
		t.Error(score)
	}
}

func TestMirrorSymmetry(t *testing.T) {
	var e = NewEvaluationService()
	for _, fen := range testFENs {
		var p, err = NewPositionFromFEN(fen)
		if err != nil {
			t.Fatal(err)
		}
		var mirrored, err2 = p.Mirror()
		if err2 != nil {
			t.Fatal(err2)
		}
		if a, b := e.Evaluate(p), e.Evaluate(mirrored); a != b {
			t.Error(fen, a, b)
		}
	}
}

func TestMaterialAdvantage(t *testing.T) {
	var p, err = NewPositionFromFEN("rnb1kbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	var e = NewEvaluationService()
	if score := e.Evaluate(p); score < 700 {
		t.Error("white should be a queen up", score)
	}
	var black, _ = NewPositionFromFEN("rnb1kbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR b KQkq - 0 1")
	if score := e.Evaluate(black); score > -700 {
		t.Error("black should be a queen down", score)
	}
}

func TestInsufficientMaterialScaled(t *testing.T) {
	var p, err = NewPositionFromFEN("8/5k2/8/8/8/2B5/4K3/8 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	if score := NewEvaluationService().Evaluate(p); score != 0 {
		t.Error(score)
	}
}

func TestTrace(t *testing.T) {
	var p, _ = NewPositionFromFEN(InitialPositionFen)
	var s = NewEvaluationService().Trace(p)
	for _, want := range []string{"Material", "Piece-square", "Bishop pair", "Total", "Final evaluation: +0.00 (white side)"} {
		if !strings.Contains(s, want) {
			t.Error(want, s)
		}
	}
}
