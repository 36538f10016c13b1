package eval

import (
	"github.com/chers/chers/pkg/common"
)

var pieceValues = [common.King + 1]int{
	common.Pawn:   100,
	common.Knight: 400,
	common.Bishop: 400,
	common.Rook:   600,
	common.Queen:  1200,
}

// EvaluationService counts material only. The search tests use it
// as the simplest evaluation that still tells good captures from bad ones.
type EvaluationService struct{}

func NewEvaluationService() *EvaluationService {
	return &EvaluationService{}
}

func (e *EvaluationService) Evaluate(p *common.Position) int {
	var eval = 0
	for piece := common.Pawn; piece < common.King; piece++ {
		eval += pieceValues[piece] * (common.PopCount(p.Pieces[common.SideWhite][piece]) -
			common.PopCount(p.Pieces[common.SideBlack][piece]))
	}
	if p.SideToMove == common.SideBlack {
		eval = -eval
	}
	return eval
}
