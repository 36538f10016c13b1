// Package engine picks a move with iterative deepening alpha-beta search.
package engine

import (
	"context"
	"errors"
	"runtime"
	"time"

	. "github.com/chers/chers/pkg/common"
)

type Engine struct {
	Options
	evalBuilder func() interface{}
	timeManager *simpleTimeManager
	transTable  TransTable
	historyKeys map[uint64]int
	threads     []thread
	progress    func(SearchInfo)
	mainLine    mainLine
	start       time.Time
}

// thread owns one copy of the root position and plays moves on it in place.
type thread struct {
	engine    *Engine
	evaluator Evaluator
	history   historyService
	position  Position
	rootMove  Move
	nodes     int64
	nodesBase int64
	stack     [stackSize]struct {
		undo           UndoInfo
		moveList       [MaxMoves]OrderedMove
		quietsSearched [MaxMoves]Move
		pv             pv
		killer1        Move
		killer2        Move
	}
}

type pv struct {
	items [stackSize]Move
	size  int
}

type mainLine struct {
	moves []Move
	score int
	depth int
	nodes int64
}

type Evaluator interface {
	Evaluate(p *Position) int
}

type TransTable interface {
	Size() (megabytes int)
	IncDate()
	Clear()
	Read(key uint64) (depth, score, bound int, move Move, found bool)
	Update(key uint64, depth, score, bound int, move Move)
}

func NewEngine(evalBuilder func() interface{}, options Options) *Engine {
	return &Engine{
		Options:     options,
		evalBuilder: evalBuilder,
	}
}

// Prepare allocates the table and the threads. Search calls it,
// so it is only needed to pay the allocation cost up front.
func (e *Engine) Prepare() {
	if !e.UseTransTable {
		e.transTable = noTransTable{}
	} else if e.transTable == nil || e.transTable.Size() != e.Hash {
		if e.transTable != nil {
			e.transTable = nil
			runtime.GC()
		}
		e.transTable = newTransTable(e.Hash)
	}
	if e.Threads < 1 {
		e.Threads = 1
	}
	if len(e.threads) != e.Threads {
		e.threads = make([]thread, e.Threads)
		for i := range e.threads {
			var t = &e.threads[i]
			t.engine = e
			t.evaluator = e.buildEvaluator()
		}
	}
}

// Search looks for the best move in the last of searchParams.Positions;
// the earlier ones are the game history used to detect repetitions.
// It returns the deepest completed iteration when a limit is reached or ctx is done.
func (e *Engine) Search(ctx context.Context, searchParams SearchParams) SearchInfo {
	e.start = time.Now()
	e.Prepare()
	var p = &searchParams.Positions[len(searchParams.Positions)-1]
	e.timeManager = newSimpleTimeManager(ctx, e.start, searchParams.Limits, p)
	defer e.timeManager.Close()
	e.transTable.IncDate()
	e.historyKeys = getHistoryKeys(searchParams.Positions)
	e.mainLine = mainLine{}
	for i := range e.threads {
		var t = &e.threads[i]
		t.nodes = 0
		t.position = *p
	}
	e.progress = searchParams.Progress
	lazySmp(e)
	for i := range e.threads {
		var t = &e.threads[i]
		e.mainLine.nodes += t.nodes
		t.nodes = 0
	}
	return e.currentSearchResult()
}

func getHistoryKeys(positions []Position) map[uint64]int {
	var result = make(map[uint64]int)
	for i := len(positions) - 1; i >= 0; i-- {
		var p = &positions[i]
		result[p.Key]++
		if p.Rule50 == 0 {
			break
		}
	}
	return result
}

// Clear forgets everything learned in previous searches. Call it before a new game.
func (e *Engine) Clear() {
	if e.transTable != nil {
		e.transTable.Clear()
	}
	for i := range e.threads {
		var t = &e.threads[i]
		t.history.Clear()
	}
}

func (e *Engine) currentSearchResult() SearchInfo {
	return SearchInfo{
		Depth:    e.mainLine.depth,
		MainLine: e.mainLine.moves,
		Score:    newUciScore(e.mainLine.score),
		Nodes:    e.mainLine.nodes,
		Time:     time.Since(e.start).Milliseconds(),
	}
}

func (pv *pv) clear() {
	pv.size = 0
}

func (pv *pv) assign(m Move, child *pv) {
	pv.size = 1
	pv.items[0] = m
	if child.size > 0 {
		pv.size += child.size
		copy(pv.items[1:], child.items[:child.size])
	}
}

func (pv *pv) toSlice() []Move {
	var result = make([]Move, pv.size)
	copy(result, pv.items[:pv.size])
	return result
}

func (e *Engine) buildEvaluator() Evaluator {
	if ev, ok := e.evalBuilder().(Evaluator); ok {
		return ev
	}
	panic(errors.New("bad eval builder"))
}
