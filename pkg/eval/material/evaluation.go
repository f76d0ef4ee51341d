package eval

import (
	"fmt"

	"github.com/ChizhovVadim/CounterUci/pkg/common"
)

var pieceValues = [common.King + 1]int{0, 100, 400, 400, 600, 1200, 0}

// EvaluationService counts material only.
type EvaluationService struct{}

func NewEvaluationService() *EvaluationService {
	return &EvaluationService{}
}

func (e *EvaluationService) Evaluate(p *common.Position) int {
	var eval = e.whiteScore(p)
	if !p.WhiteMove {
		eval = -eval
	}
	return eval
}

func (e *EvaluationService) whiteScore(p *common.Position) int {
	var eval int
	for sq := common.Square(0); sq < 64; sq++ {
		var piece, white = p.PieceOn(sq)
		if white {
			eval += pieceValues[piece]
		} else {
			eval -= pieceValues[piece]
		}
	}
	return eval
}

func (e *EvaluationService) Trace(p *common.Position) string {
	return fmt.Sprintf("Material: %+.2f\nFinal evaluation: %+.2f (white side)\n",
		float64(e.whiteScore(p))/100, float64(e.whiteScore(p))/100)
}
