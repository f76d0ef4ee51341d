package uci

import (
	"github.com/ChizhovVadim/CounterUci/pkg/common"
)

// History is the game as a chain of immutable positions; the last one is current.
type History struct {
	positions []*common.Position
}

func (h *History) Reset(p *common.Position) {
	h.positions = append(h.positions[:0:0], p)
}

func (h *History) Push(p *common.Position) {
	h.positions = append(h.positions, p)
}

func (h *History) Current() *common.Position {
	return h.positions[len(h.positions)-1]
}

func (h *History) Len() int {
	return len(h.positions)
}

// Positions returns a copy of the chain that stays valid after later commands.
func (h *History) Positions() []*common.Position {
	var result = make([]*common.Position, len(h.positions))
	copy(result, h.positions)
	return result
}
