package eval

import (
	. "github.com/ChizhovVadim/CounterUci/pkg/common"
)

const (
	minorPhase = 4
	rookPhase  = 6
	queenPhase = 12
	totalPhase = 2 * (4*minorPhase + 2*rookPhase + queenPhase)
)

const (
	scaleDraw   = 0
	scaleHard   = 1
	scaleNormal = 2
)

// EvaluationService is a tapered material and piece-square evaluation.
// It keeps per-call scratch state, so every search thread needs its own instance.
type EvaluationService struct {
	Weights
	pieceCount [2][King + 1]int
	force      [2]int
	bishopDark [2]int
	terms      evalTerms
}

type evalTerms struct {
	material   [2]Score
	psq        [2]Score
	bishopPair [2]Score
	phase      int
	factor     int
	// white point of view
	result int
}

func NewEvaluationService() *EvaluationService {
	var es = &EvaluationService{}
	es.Weights.init()
	return es
}

// Evaluate returns the static score from the side to move point of view.
func (e *EvaluationService) Evaluate(p *Position) int {
	var result = e.compute(p)
	if !p.WhiteMove {
		result = -result
	}
	return result
}

func (e *EvaluationService) compute(p *Position) int {
	e.terms = evalTerms{}
	e.pieceCount = [2][King + 1]int{}
	e.bishopDark = [2]int{}

	for sq := Square(0); sq < 64; sq++ {
		var piece, white = p.PieceOn(sq)
		if piece == Empty {
			continue
		}
		var side = sideBlack
		if white {
			side = sideWhite
		}
		e.terms.material[side] += e.Material[piece]
		e.terms.psq[side] += e.PST[side][piece][sq]
		e.pieceCount[side][piece]++
		if piece == Bishop && sq.IsDark() {
			e.bishopDark[side]++
		}
	}

	for side := sideWhite; side <= sideBlack; side++ {
		var count = &e.pieceCount[side]
		e.force[side] = minorPhase*(count[Knight]+count[Bishop]) +
			rookPhase*count[Rook] + queenPhase*count[Queen]
		if count[Bishop] >= 2 {
			e.terms.bishopPair[side] = e.BishopPairMaterial
		}
	}

	var s = e.terms.material[sideWhite] + e.terms.psq[sideWhite] + e.terms.bishopPair[sideWhite] -
		e.terms.material[sideBlack] - e.terms.psq[sideBlack] - e.terms.bishopPair[sideBlack]

	var phase = Min(e.force[sideWhite]+e.force[sideBlack], totalPhase)
	e.terms.phase = phase

	var result = (s.Mg()*phase + s.Eg()*(totalPhase-phase)) / totalPhase

	var bishops = e.pieceCount[sideWhite][Bishop] + e.pieceCount[sideBlack][Bishop]
	var darkBishops = e.bishopDark[sideWhite] + e.bishopDark[sideBlack]
	var ocb = e.force[sideWhite] == minorPhase &&
		e.force[sideBlack] == minorPhase &&
		bishops == 2 && darkBishops == 1

	if result > 0 {
		e.terms.factor = computeFactor(e, sideWhite, ocb)
	} else {
		e.terms.factor = computeFactor(e, sideBlack, ocb)
	}
	result = result * e.terms.factor / scaleNormal
	e.terms.result = result
	return result
}

func computeFactor(e *EvaluationService, side int, ocb bool) int {
	var other = side ^ 1
	if e.force[side] >= queenPhase+rookPhase {
		return scaleNormal
	}
	if e.pieceCount[side][Pawn] == 0 {
		if e.force[side] <= minorPhase {
			return scaleDraw
		}
		if e.force[side] == 2*minorPhase && e.pieceCount[side][Knight] == 2 && e.pieceCount[other][Pawn] == 0 {
			return scaleDraw
		}
		if e.force[side]-e.force[other] <= minorPhase {
			return scaleHard
		}
	} else if e.pieceCount[side][Pawn] == 1 {
		if e.force[side] <= minorPhase && e.pieceCount[other][Knight]+e.pieceCount[other][Bishop] != 0 {
			return scaleHard
		}
		if e.force[side] == e.force[other] && e.pieceCount[other][Knight]+e.pieceCount[other][Bishop] != 0 {
			return scaleHard
		}
	} else if ocb && e.pieceCount[side][Pawn]-e.pieceCount[other][Pawn] <= 2 {
		return scaleHard
	}
	return scaleNormal
}
