package engine

import . "github.com/ChizhovVadim/CounterUci/pkg/common"

const historyMax = 1 << 14

func (t *thread) readHistory(side bool, m Move) int {
	return int(t.mainHistory[sideFromToIndex(side, m)])
}

// updateHistory rewards bestMove and penalizes the quiet moves tried before it.
func (t *thread) updateHistory(side bool, quietsSearched []Move, bestMove Move, depth int) {
	var bonus = Min(depth*depth, 400)
	for _, m := range quietsSearched {
		var good = m == bestMove
		updateHistory(&t.mainHistory[sideFromToIndex(side, m)], bonus, good)
		if good {
			break
		}
	}
}

// Exponential moving average
func updateHistory(v *int16, bonus int, good bool) {
	var newVal int
	if good {
		newVal = historyMax
	} else {
		newVal = -historyMax
	}
	*v += int16((newVal - int(*v)) * bonus / 512)
}

func (t *thread) clearHistory() {
	for i := range t.mainHistory {
		t.mainHistory[i] = 0
	}
}

func sideFromToIndex(side bool, move Move) int {
	var result = (int(move.From()) << 6) | int(move.To())
	if side {
		result |= 1 << 12
	}
	return result
}
