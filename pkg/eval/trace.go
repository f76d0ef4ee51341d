package eval

import (
	"fmt"
	"strings"

	. "github.com/ChizhovVadim/CounterUci/pkg/common"
)

// Trace returns a table of the evaluation terms of p, in pawns from white's side.
func (e *EvaluationService) Trace(p *Position) string {
	e.compute(p)
	var t = e.terms
	var sb strings.Builder
	sb.WriteString("     Term    |    White    |    Black    |    Total\n")
	sb.WriteString("             |   MG    EG  |   MG    EG  |   MG    EG\n")
	sb.WriteString(" ------------+-------------+-------------+------------\n")
	writeTerm(&sb, "Material", t.material)
	writeTerm(&sb, "Piece-square", t.psq)
	writeTerm(&sb, "Bishop pair", t.bishopPair)
	sb.WriteString(" ------------+-------------+-------------+------------\n")
	writeTerm(&sb, "Total", [2]Score{
		t.material[sideWhite] + t.psq[sideWhite] + t.bishopPair[sideWhite],
		t.material[sideBlack] + t.psq[sideBlack] + t.bishopPair[sideBlack],
	})
	fmt.Fprintf(&sb, "\nPhase: %d/%d\n", t.phase, totalPhase)
	fmt.Fprintf(&sb, "Scale: %d/%d\n", t.factor, scaleNormal)
	fmt.Fprintf(&sb, "Final evaluation: %+.2f (white side)\n", pawns(t.result))
	return sb.String()
}

func writeTerm(sb *strings.Builder, name string, s [2]Score) {
	var total = s[sideWhite] - s[sideBlack]
	fmt.Fprintf(sb, "%12s | %5.2f %5.2f | %5.2f %5.2f | %5.2f %5.2f\n", name,
		pawns(s[sideWhite].Mg()), pawns(s[sideWhite].Eg()),
		pawns(s[sideBlack].Mg()), pawns(s[sideBlack].Eg()),
		pawns(total.Mg()), pawns(total.Eg()))
}

func pawns(v int) float64 {
	return float64(v) / DefaultPawnValue
}
