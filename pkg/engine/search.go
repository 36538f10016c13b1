package engine

import (
	. "github.com/chers/chers/pkg/common"
)

func searchRoot(t *thread, depth int) int {
	return t.alphaBeta(-valueInfinity, valueInfinity, depth, 0)
}

// alphaBeta is a fail-soft principal variation search.
// Scores are from the point of view of the side to move.
func (t *thread) alphaBeta(alpha, beta, depth, height int) int {
	if depth <= 0 {
		return t.quiescence(alpha, beta, height, 0)
	}
	t.clearPV(height)

	var rootNode = height == 0
	var pvNode = beta != alpha+1
	var position = &t.position
	var isCheck = position.IsCheck()

	if !rootNode {
		if height >= maxHeight {
			return t.evaluator.Evaluate(position)
		}
		if t.isRepeat(height) || isDraw(position) {
			return valueDraw
		}
		// mate distance pruning
		if winIn(height+1) <= alpha {
			return alpha
		}
		if lossIn(height+2) >= beta && !isCheck {
			return beta
		}
	}

	var ttDepth, ttValue, ttBound, ttMove, ttHit = t.engine.transTable.Read(position.Key)
	if ttHit {
		ttValue = valueFromTT(ttValue, height)
		if ttDepth >= depth && !pvNode {
			if ttValue >= beta && (ttBound&boundLower) != 0 {
				if ttMove != MoveEmpty && !isCaptureOrPromotion(ttMove) {
					t.updateKiller(ttMove, height)
				}
				return ttValue
			}
			if ttValue <= alpha && (ttBound&boundUpper) != 0 {
				return ttValue
			}
		}
	}
	if rootNode && t.rootMove != MoveEmpty {
		ttMove = t.rootMove
	}

	if height+2 <= maxHeight {
		t.stack[height+2].killer1 = MoveEmpty
		t.stack[height+2].killer2 = MoveEmpty
	}

	var mi = moveIterator{
		position:  position,
		buffer:    t.stack[height].moveList[:],
		history:   &t.history,
		transMove: ttMove,
		killer1:   t.stack[height].killer1,
		killer2:   t.stack[height].killer2,
	}
	mi.Init()
	var pinned = position.Pinned()
	var side = position.SideToMove

	var movesSearched = 0
	var quietsSearched = t.stack[height].quietsSearched[:0]
	var bestMove Move
	var best = -valueInfinity
	var oldAlpha = alpha

	for mi.Reset(); ; {
		var move = mi.Next()
		if move == MoveEmpty {
			break
		}
		if !t.MakeMove(move, height, pinned) {
			continue
		}
		movesSearched++
		if !isCaptureOrPromotion(move) {
			quietsSearched = append(quietsSearched, move)
		}

		var newDepth = depth - 1
		var score int
		if movesSearched == 1 {
			score = -t.alphaBeta(-beta, -alpha, newDepth, height+1)
		} else {
			score = -t.alphaBeta(-(alpha + 1), -alpha, newDepth, height+1)
			if score > alpha && score < beta {
				score = -t.alphaBeta(-beta, -alpha, newDepth, height+1)
			}
		}

		t.UnmakeMove(height)

		if score > best {
			best = score
			bestMove = move
		}
		if score > alpha {
			alpha = score
			t.assignPV(height, move)
			if alpha >= beta {
				break
			}
		}
	}

	if movesSearched == 0 {
		if !isCheck {
			return valueDraw
		}
		return lossIn(height)
	}

	if alpha > oldAlpha && !isCaptureOrPromotion(bestMove) {
		t.history.Update(side, quietsSearched, bestMove, depth)
		t.updateKiller(bestMove, height)
	}

	ttBound = 0
	if best > oldAlpha {
		ttBound |= boundLower
	}
	if best < beta {
		ttBound |= boundUpper
	}
	if !(rootNode && ttBound == boundUpper) {
		t.engine.transTable.Update(position.Key, depth, valueToTT(best, height), ttBound, bestMove)
	}

	return best
}

// quiescence searches captures until the position is quiet.
// Quiet checks are tried on its first ply only, all evasions when in check.
func (t *thread) quiescence(alpha, beta, height, qsPly int) int {
	t.clearPV(height)
	var position = &t.position
	if isDraw(position) {
		return valueDraw
	}
	if height >= maxHeight {
		return t.evaluator.Evaluate(position)
	}
	if t.isRepeat(height) {
		return valueDraw
	}

	var _, ttValue, ttBound, _, ttHit = t.engine.transTable.Read(position.Key)
	if ttHit {
		ttValue = valueFromTT(ttValue, height)
		if ttBound == boundExact ||
			ttBound == boundLower && ttValue >= beta ||
			ttBound == boundUpper && ttValue <= alpha {
			return ttValue
		}
	}

	var isCheck = position.IsCheck()
	var best = -valueInfinity
	if !isCheck {
		var eval = t.evaluator.Evaluate(position)
		best = Max(best, eval)
		if eval > alpha {
			alpha = eval
			if alpha >= beta {
				return alpha
			}
		}
	}
	var mi = moveIteratorQS{
		position: position,
		buffer:   t.stack[height].moveList[:],
	}
	mi.Init(qsPly == 0)
	var pinned = position.Pinned()
	var hasLegalMove = false
	for mi.Reset(); ; {
		var move = mi.Next()
		if move == MoveEmpty {
			break
		}
		if !isCheck && !seeGEZero(position, move) {
			continue
		}
		if !t.MakeMove(move, height, pinned) {
			continue
		}
		hasLegalMove = true
		var score = -t.quiescence(-beta, -alpha, height+1, qsPly+1)
		t.UnmakeMove(height)
		best = Max(best, score)
		if score > alpha {
			alpha = score
			t.assignPV(height, move)
			if alpha >= beta {
				break
			}
		}
	}
	if isCheck && !hasLegalMove {
		return lossIn(height)
	}
	return best
}

func (t *thread) incNodes() {
	t.nodes++
	if t.nodes&255 == 0 {
		//fixed nodes search only in single threaded mode
		if t.engine.Threads == 1 {
			t.engine.timeManager.OnNodesChanged(int(t.nodesBase + t.nodes))
		}
		if t.engine.timeManager.IsDone() {
			panic(errSearchTimeout)
		}
	}
}

// isRepeat reports a position seen before since the last irreversible move,
// either on the current search path or in the game history.
func (t *thread) isRepeat(height int) bool {
	var p = &t.position
	if p.Rule50 == 0 {
		return false
	}
	for i := height - 1; i >= 0; i-- {
		var prev = &t.stack[i].undo
		if prev.Key == p.Key {
			return true
		}
		if prev.Rule50 == 0 {
			return false
		}
	}
	return t.engine.historyKeys[p.Key] > 0
}

func (t *thread) updateKiller(move Move, height int) {
	if t.stack[height].killer1 != move {
		t.stack[height].killer2 = t.stack[height].killer1
		t.stack[height].killer1 = move
	}
}

// MakeMove plays a generated move if it is legal. pinned is the position's Pinned().
func (t *thread) MakeMove(move Move, height int, pinned uint64) bool {
	if !t.position.IsLegal(move, pinned) {
		return false
	}
	t.stack[height].undo = t.position.MakeMove(move)
	t.incNodes()
	return true
}

func (t *thread) UnmakeMove(height int) {
	t.position.UnmakeMove(t.stack[height].undo)
}

func (t *thread) clearPV(height int) {
	t.stack[height].pv.clear()
}

func (t *thread) assignPV(height int, move Move) {
	t.stack[height].pv.assign(move, &t.stack[height+1].pv)
}
