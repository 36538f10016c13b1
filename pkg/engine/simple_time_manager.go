package engine

import (
	"context"
	"time"

	. "github.com/chers/chers/pkg/common"
)

// simpleTimeManager turns the search limits into a cancellable context.
// The search polls IsDone, so every limit ends up as a cancel call.
type simpleTimeManager struct {
	ctx       context.Context
	start     time.Time
	limits    LimitsType
	softLimit time.Duration
	hardLimit time.Duration
	cancel    context.CancelFunc
}

func newSimpleTimeManager(ctx context.Context, start time.Time,
	limits LimitsType, p *Position) *simpleTimeManager {

	var tm = &simpleTimeManager{
		start:  start,
		limits: limits,
	}

	if limits.MoveTime > 0 {
		tm.hardLimit = time.Duration(limits.MoveTime) * time.Millisecond
	} else if limits.WhiteTime > 0 || limits.BlackTime > 0 {
		var main, inc time.Duration
		if p.SideToMove == SideWhite {
			main = time.Duration(limits.WhiteTime) * time.Millisecond
			inc = time.Duration(limits.WhiteIncrement) * time.Millisecond
		} else {
			main = time.Duration(limits.BlackTime) * time.Millisecond
			inc = time.Duration(limits.BlackIncrement) * time.Millisecond
		}
		tm.softLimit, tm.hardLimit = calcLimits(main, inc, limits.MovesToGo)
	}

	if tm.hardLimit != 0 {
		tm.ctx, tm.cancel = context.WithDeadline(ctx, start.Add(tm.hardLimit))
	} else {
		tm.ctx, tm.cancel = context.WithCancel(ctx)
	}
	return tm
}

func (tm *simpleTimeManager) IsDone() bool {
	select {
	case <-tm.ctx.Done():
		return true
	default:
		return false
	}
}

func (tm *simpleTimeManager) OnNodesChanged(nodes int) {
	if tm.limits.Nodes > 0 && nodes >= tm.limits.Nodes {
		tm.cancel()
	}
}

func (tm *simpleTimeManager) OnIterationComplete(line mainLine) {
	if tm.limits.Depth != 0 && line.depth >= tm.limits.Depth {
		tm.cancel()
		return
	}
	if tm.limits.Mate != 0 && line.score >= winIn(2*tm.limits.Mate) {
		tm.cancel()
		return
	}
	if tm.limits.Infinite {
		return
	}
	if line.score >= winIn(line.depth-5) ||
		line.score <= lossIn(line.depth-5) {
		tm.cancel()
		return
	}
	if tm.softLimit != 0 &&
		time.Since(tm.start) >= tm.softLimit {
		tm.cancel()
		return
	}
}

func (tm *simpleTimeManager) Close() {
	tm.cancel()
}

func calcLimits(main, inc time.Duration, moves int) (soft, hard time.Duration) {
	const (
		DefaultMovesToGo = 40
		MoveOverhead     = 300 * time.Millisecond
		MinTimeLimit     = 1 * time.Millisecond
	)

	main -= MoveOverhead
	if main < MinTimeLimit {
		main = MinTimeLimit
	}

	if moves == 0 {
		var ideal = main/35 + inc/2
		soft = ideal * 7 / 10
		hard = ideal * 21 / 10
	} else {
		moves = Min(moves, DefaultMovesToGo)
		soft = (main/time.Duration(moves+1) + inc) * 7 / 10
		hard = (main/time.Duration(moves+1) + inc) * 21 / 10
	}

	hard = limitDuration(hard, MinTimeLimit, main)
	soft = limitDuration(soft, MinTimeLimit, main)

	return
}

func limitDuration(v, min, max time.Duration) time.Duration {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// onlyClock tells that the search is bounded by the clock alone,
// so a forced move can be played without searching.
func (tm *simpleTimeManager) onlyClock() bool {
	return !tm.limits.Infinite && tm.limits.Depth == 0 &&
		tm.limits.Nodes == 0 && tm.limits.Mate == 0
}
