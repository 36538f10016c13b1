package engine

import (
	"errors"
	"sync"

	"github.com/chers/chers/pkg/common"
)

var errSearchTimeout = errors.New("search timeout")

type searchTask struct {
	depth        int
	startingMove common.Move //for move ordering
	nodesBase    int64       //nodes of finished tasks
}

// lazySmp runs iterative deepening on every thread at once.
// The threads share only the transposition table.
func lazySmp(e *Engine) {
	var ml = e.genRootMoves()
	if len(ml) == 0 {
		var score = valueDraw
		if e.threads[0].position.IsCheck() {
			score = lossIn(0)
		}
		e.mainLine = mainLine{score: score}
		return
	}
	e.mainLine = mainLine{
		depth: 0,
		score: 0,
		moves: []common.Move{ml[0]},
	}
	if len(ml) == 1 && e.timeManager.onlyClock() {
		return
	}

	var tasks = make(chan searchTask)
	var taskResults = make(chan mainLine)

	var wg = &sync.WaitGroup{}

	for i := 0; i < e.Threads; i++ {
		wg.Add(1)
		go func(t *thread) {
			defer wg.Done()
			searchDepth(t, tasks, taskResults)
		}(&e.threads[i])
	}

	go func() {
		wg.Wait()
		close(taskResults)
	}()

	iterativeDeepening(e, tasks, taskResults)
}

func iterativeDeepening(
	e *Engine,
	tasks chan<- searchTask,
	taskResults <-chan mainLine,
) {
	var searchCountByDepth [stackSize]int
	for {
		var task = searchTask{
			depth:        e.mainLine.depth + 1, // next Iteration
			startingMove: e.mainLine.moves[0],
			nodesBase:    e.mainLine.nodes,
		}
		if task.depth < len(searchCountByDepth) &&
			searchCountByDepth[task.depth] >= (e.Threads+1)/2 {
			// some threads search deeper
			task.depth = e.mainLine.depth + 2
		}

		if task.depth > maxHeight ||
			e.timeManager.IsDone() {
			// no new iterations
			if tasks != nil {
				close(tasks)
				tasks = nil
			}
		}

		select {
		case taskResult, ok := <-taskResults:
			if !ok {
				// all searches finished
				return
			}
			e.mainLine.nodes += taskResult.nodes
			if taskResult.depth > e.mainLine.depth {
				e.mainLine.depth = taskResult.depth
				e.mainLine.score = taskResult.score
				e.mainLine.moves = taskResult.moves
				e.timeManager.OnIterationComplete(e.mainLine)
				if e.progress != nil && e.mainLine.nodes >= int64(e.ProgressMinNodes) {
					e.progress(e.currentSearchResult())
				}
			}
		case tasks <- task:
			searchCountByDepth[task.depth]++
		}
	}
}

// searchDepth runs the tasks it receives until the time manager stops it.
// An iteration cut short is dropped: only completed depths are reported.
func searchDepth(
	t *thread,
	tasks <-chan searchTask,
	taskResults chan<- mainLine,
) {
	defer func() {
		if r := recover(); r != nil {
			if r == errSearchTimeout {
				return
			}
			panic(r)
		}
	}()

	const height = 0
	for h := 0; h <= 2; h++ {
		t.stack[h].killer1 = common.MoveEmpty
		t.stack[h].killer2 = common.MoveEmpty
	}

	for task := range tasks {
		t.rootMove = task.startingMove
		t.nodesBase = task.nodesBase
		var score = searchRoot(t, task.depth)
		taskResults <- mainLine{
			depth: task.depth,
			score: score,
			moves: t.stack[height].pv.toSlice(),
			nodes: t.nodes,
		}
		t.nodes = 0
	}
}

func (e *Engine) genRootMoves() []common.Move {
	var t = &e.threads[0]
	var ml = t.position.GenerateLegalMoves()
	_, _, _, transMove, _ := e.transTable.Read(t.position.Key)
	for i := range ml {
		if ml[i] == transMove {
			ml[0], ml[i] = ml[i], ml[0]
			break
		}
	}
	return ml
}
