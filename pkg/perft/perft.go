// Package perft counts the leaves of the legal move tree.
// The counts for well known positions are published, so any mismatch
// points at a move generator or make/unmake bug.
package perft

import (
	"context"
	"sort"
	"sync"

	"github.com/chers/chers/pkg/common"
	"golang.org/x/sync/errgroup"
)

type DivideEntry struct {
	Move  common.Move
	Nodes int64
}

// Perft returns the number of leaf nodes depth plies below p.
// p is modified during the walk and restored before returning.
func Perft(p *common.Position, depth int) int64 {
	if depth <= 0 {
		return 1
	}
	var buffer [common.MaxMoves]common.OrderedMove
	var ml = p.LegalMoves(buffer[:])
	if depth == 1 {
		return int64(len(ml))
	}
	var result int64
	for i := range ml {
		var undo = p.MakeMove(ml[i].Move)
		result += Perft(p, depth-1)
		p.UnmakeMove(undo)
	}
	return result
}

// perftContext is Perft that stops with ctx.Err() once ctx is done.
// ctx is not polled in the last plies.
func perftContext(ctx context.Context, p *common.Position, depth int) (int64, error) {
	if depth <= 3 {
		return Perft(p, depth), nil
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	var buffer [common.MaxMoves]common.OrderedMove
	var ml = p.LegalMoves(buffer[:])
	var result int64
	for i := range ml {
		var undo = p.MakeMove(ml[i].Move)
		var nodes, err = perftContext(ctx, p, depth-1)
		p.UnmakeMove(undo)
		if err != nil {
			return 0, err
		}
		result += nodes
	}
	return result, nil
}

// Divide reports the perft count below every legal root move, sorted by move text.
func Divide(p *common.Position, depth int) []DivideEntry {
	var result []DivideEntry
	for _, move := range p.GenerateLegalMoves() {
		var undo = p.MakeMove(move)
		result = append(result, DivideEntry{Move: move, Nodes: Perft(p, depth-1)})
		p.UnmakeMove(undo)
	}
	sortEntries(result)
	return result
}

// DivideParallel splits the root moves between workers.
// Each worker walks its own copy of the position.
func DivideParallel(ctx context.Context, p *common.Position, depth, workers int) ([]DivideEntry, error) {
	if workers < 1 {
		workers = 1
	}
	var root = *p
	var moves = root.GenerateLegalMoves()

	g, ctx := errgroup.WithContext(ctx)

	var tasks = make(chan common.Move)
	var mu sync.Mutex
	var result = make([]DivideEntry, 0, len(moves))

	g.Go(func() error {
		defer close(tasks)
		for _, move := range moves {
			if err := ctx.Err(); err != nil {
				return err
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case tasks <- move:
			}
		}
		return nil
	})

	for i := 0; i < workers; i++ {
		g.Go(func() error {
			var child = root
			for move := range tasks {
				var undo = child.MakeMove(move)
				var nodes, err = perftContext(ctx, &child, depth-1)
				child.UnmakeMove(undo)
				if err != nil {
					return err
				}
				mu.Lock()
				result = append(result, DivideEntry{Move: move, Nodes: nodes})
				mu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	sortEntries(result)
	return result, nil
}

func Total(entries []DivideEntry) int64 {
	var result int64
	for _, e := range entries {
		result += e.Nodes
	}
	return result
}

func sortEntries(entries []DivideEntry) {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Move.String() < entries[j].Move.String()
	})
}
