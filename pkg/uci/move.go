package uci

import (
	"fmt"
	"strings"

	"github.com/ChizhovVadim/CounterUci/pkg/common"
)

func searchInfoToUci(si common.SearchInfo, formatter common.ScoreFormatter, chess960 bool) string {
	var sb = &strings.Builder{}
	fmt.Fprintf(sb, "info depth %v score %v", si.Depth, formatter.Format(si.Score))
	var timeMs = si.Time.Milliseconds()
	var nps = si.Nodes * 1000 / (timeMs + 1)
	fmt.Fprintf(sb, " nodes %v nps %v hashfull %v time %v", si.Nodes, nps, si.Hashfull, timeMs)
	if len(si.MainLine) != 0 {
		sb.WriteString(" pv")
		for _, move := range si.MainLine {
			sb.WriteString(" ")
			sb.WriteString(common.MoveToUci(move, chess960))
		}
	}
	return sb.String()
}

func bestMoveToUci(si common.SearchInfo, chess960 bool) string {
	if len(si.MainLine) == 0 {
		return "bestmove " + common.MoveToUci(common.MoveNone, chess960)
	}
	var s = "bestmove " + common.MoveToUci(si.MainLine[0], chess960)
	if len(si.MainLine) >= 2 {
		s += " ponder " + common.MoveToUci(si.MainLine[1], chess960)
	}
	return s
}
