package eval

import (
	. "github.com/chers/chers/pkg/common"
)

const (
	minorPhase = 4
	rookPhase  = 6
	queenPhase = 12
	totalPhase = 2 * (4*minorPhase + 2*rookPhase + queenPhase)
)

const (
	darkSquares = uint64(0xAA55AA55AA55AA55)
)

// EvaluationService blends middlegame and endgame piece-square scores
// by the amount of non-pawn material left on the board.
// It keeps scratch counters, so one instance serves one search thread.
type EvaluationService struct {
	Weights
	pieceCount [2][King + 1]int
	force      [2]int
}

func NewEvaluationService() *EvaluationService {
	var es = &EvaluationService{}
	es.Weights.init()
	return es
}

func (e *EvaluationService) Evaluate(p *Position) int {
	var (
		x     uint64
		sq    int
		piece int
		side  int
		s     Score
	)

	for side = SideWhite; side <= SideBlack; side++ {
		for piece = Pawn; piece <= King; piece++ {
			var count = 0
			for x = p.Pieces[side][piece]; x != 0; x &= x - 1 {
				sq = FirstOne(x)
				s += e.PST[side][piece][sq]
				count++
			}
			e.pieceCount[side][piece] = count
		}
		e.force[side] = minorPhase*(e.pieceCount[side][Knight]+e.pieceCount[side][Bishop]) +
			rookPhase*e.pieceCount[side][Rook] + queenPhase*e.pieceCount[side][Queen]
	}

	if e.pieceCount[SideWhite][Bishop] >= 2 {
		s += e.BishopPairMaterial
	}
	if e.pieceCount[SideBlack][Bishop] >= 2 {
		s -= e.BishopPairMaterial
	}

	var phase = e.force[SideWhite] + e.force[SideBlack]
	if phase > totalPhase {
		phase = totalPhase
	}

	var result = (s.Middle()*phase + s.End()*(totalPhase-phase)) / totalPhase

	var bishops = p.PiecesByType(Bishop)
	var ocb = e.force[SideWhite] == minorPhase &&
		e.force[SideBlack] == minorPhase &&
		(bishops&darkSquares) != 0 &&
		(bishops&^darkSquares) != 0

	if result > 0 {
		result = result * computeFactor(e, SideWhite, ocb) / scaleNormal
	} else {
		result = result * computeFactor(e, SideBlack, ocb) / scaleNormal
	}

	if p.SideToMove == SideBlack {
		result = -result
	}

	return result
}

const (
	scaleDraw   = 0
	scaleHard   = 1
	scaleNormal = 2
)

// computeFactor halves the advantage of a side that cannot realistically win.
func computeFactor(e *EvaluationService, side int, ocb bool) int {
	if e.force[side] >= queenPhase+rookPhase {
		return scaleNormal
	}
	if e.pieceCount[side][Pawn] == 0 {
		if e.force[side] <= minorPhase {
			return scaleDraw
		}
		if e.force[side] == 2*minorPhase && e.pieceCount[side][Knight] == 2 && e.pieceCount[side^1][Pawn] == 0 {
			return scaleDraw
		}
		if e.force[side]-e.force[side^1] <= minorPhase {
			return scaleHard
		}
	} else if e.pieceCount[side][Pawn] == 1 {
		if e.force[side] <= minorPhase && e.pieceCount[side^1][Knight]+e.pieceCount[side^1][Bishop] != 0 {
			return scaleHard
		}
		if e.force[side] == e.force[side^1] && e.pieceCount[side^1][Knight]+e.pieceCount[side^1][Bishop] != 0 {
			return scaleHard
		}
	} else if ocb && e.pieceCount[side][Pawn]-e.pieceCount[side^1][Pawn] <= 2 {
		return scaleHard
	}
	return scaleNormal
}
