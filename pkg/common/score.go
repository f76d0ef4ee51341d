package common

import (
	"fmt"
	"math"
	"strconv"
)

const (
	MaxHeight     = 127
	ValueDraw     = 0
	ValueMate     = 30000
	ValueInfinity = ValueMate + 1
	// Scores at or beyond this bound encode a forced mate.
	ValueMateInMaxHeight = ValueMate - 2*MaxHeight
)

func WinIn(height int) int {
	return ValueMate - height
}

func LossIn(height int) int {
	return -ValueMate + height
}

// MateIn converts a mate score to moves to mate, negative when getting mated.
func MateIn(v int) int {
	if v > 0 {
		return (ValueMate - v + 1) / 2
	}
	return (-ValueMate - v) / 2
}

// Score Output modes.
const (
	ScoreCentipawn  = "Centipawn"
	ScorePercentGUI = "ScorPct-GUI"
	ScorePercent    = "ScorPct"
)

const (
	DefaultPawnValue = 100
	percentFactor    = 2.15
)

// ScoreFormatter renders engine values as UCI score text.
type ScoreFormatter struct {
	// PawnValue is the number of internal units in one pawn.
	PawnValue int
	Mode      string
}

var DefaultScoreFormatter = ScoreFormatter{
	PawnValue: DefaultPawnValue,
	Mode:      ScoreCentipawn,
}

// Format returns "cp <x>" or "mate <y>". Mate is counted in moves, not plies.
// v must lie strictly between -ValueInfinity and ValueInfinity.
func (f ScoreFormatter) Format(v int) string {
	if v <= -ValueInfinity || v >= ValueInfinity {
		panic(fmt.Sprintf("score %v out of range", v))
	}
	if Abs(v) >= ValueMateInMaxHeight {
		return "mate " + strconv.Itoa(MateIn(v))
	}
	var pawnValue = f.PawnValue
	if pawnValue <= 0 {
		pawnValue = DefaultPawnValue
	}
	var cp = v * 100 / pawnValue
	switch f.Mode {
	case ScorePercentGUI:
		return fmt.Sprintf("cp %.0f", 10000*winProbability(cp))
	case ScorePercent:
		return fmt.Sprintf("cp %.2f", 100*winProbability(cp))
	default:
		return "cp " + strconv.Itoa(cp)
	}
}

func winProbability(cp int) float64 {
	var x = math.Pow(percentFactor, percentFactor*float64(cp)/1000)
	return x / (x + 1)
}
