package engine

import . "github.com/chers/chers/pkg/common"

const historyMax = 1 << 14

// historyService scores quiet moves by how often they caused a cutoff,
// indexed by side, from and to squares.
type historyService struct {
	table [2 * 64 * 64]int16
}

func (h *historyService) Read(side int, m Move) int {
	return int(h.table[sideFromToIndex(side, m)])
}

func (h *historyService) Update(side int, quietsSearched []Move, bestMove Move, depth int) {
	var bonus = Min(depth*depth, 400)
	for _, m := range quietsSearched {
		var good = m == bestMove
		updateHistory(&h.table[sideFromToIndex(side, m)], bonus, good)
		if good {
			break
		}
	}
}

func (h *historyService) Clear() {
	for i := range h.table {
		h.table[i] = 0
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

func sideFromToIndex(side int, move Move) int {
	return side<<12 | move.From()<<6 | move.To()
}
