// Package bench runs perft or search over every position of a FEN file
// and reports nodes and speed.
package bench

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/chers/chers/internal/fenfile"
	"github.com/chers/chers/pkg/common"
	"github.com/chers/chers/pkg/engine"
	"github.com/chers/chers/pkg/perft"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const (
	ModePerft  = "perft"
	ModeSearch = "search"
)

var ErrPerftMismatch = errors.New("perft mismatch")

type Config struct {
	Path    string
	Mode    string
	Depth   int
	Threads int
	// Hash is the table size of every search worker in MB.
	Hash        int
	EvalBuilder func() interface{}
	Logger      zerolog.Logger
}

type Result struct {
	Positions  int
	Nodes      int64
	Mismatches int
	Elapsed    time.Duration
}

func (r Result) NodesPerSecond() int64 {
	var seconds = r.Elapsed.Seconds()
	if seconds <= 0 {
		return 0
	}
	return int64(float64(r.Nodes) / seconds)
}

type positionResult struct {
	entry    fenfile.Entry
	nodes    int64
	mismatch bool
}

// Run reads the file in a loader goroutine and feeds the positions to the workers.
// A read, decompression or FEN error stops the whole run.
func Run(ctx context.Context, cfg Config) (Result, error) {
	if cfg.Mode != ModePerft && cfg.Mode != ModeSearch {
		return Result{}, fmt.Errorf("unknown bench mode %q", cfg.Mode)
	}
	if cfg.Depth <= 0 {
		return Result{}, fmt.Errorf("bad depth %v", cfg.Depth)
	}
	if cfg.Threads < 1 {
		cfg.Threads = 1
	}
	var log = cfg.Logger.With().Str("mode", cfg.Mode).Int("depth", cfg.Depth).Logger()
	log.Info().Str("path", cfg.Path).Int("threads", cfg.Threads).Msg("bench started")

	var start = time.Now()
	var result Result

	g, ctx := errgroup.WithContext(ctx)

	var entries = make(chan fenfile.Entry, 128)
	var results = make(chan positionResult, 128)

	g.Go(func() error {
		defer close(entries)
		return fenfile.Load(ctx, cfg.Path, entries)
	})

	var wg = &sync.WaitGroup{}
	for i := 0; i < cfg.Threads; i++ {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			if cfg.Mode == ModePerft {
				return runPerft(ctx, cfg.Depth, entries, results)
			}
			return runSearch(ctx, cfg, entries, results)
		})
	}

	g.Go(func() error {
		wg.Wait()
		close(results)
		return nil
	})

	g.Go(func() error {
		for r := range results {
			result.Positions++
			result.Nodes += r.nodes
			if r.mismatch {
				result.Mismatches++
				log.Error().Int("line", r.entry.Line).Str("fen", r.entry.Fen).
					Int64("nodes", r.nodes).Int64("expected", r.entry.Perft[cfg.Depth]).
					Msg("perft mismatch")
			}
		}
		return nil
	})

	var err = g.Wait()
	result.Elapsed = time.Since(start)
	if err != nil {
		log.Error().Err(err).Int("positions", result.Positions).Msg("bench aborted")
		return result, err
	}
	log.Info().
		Int("positions", result.Positions).
		Int64("nodes", result.Nodes).
		Dur("elapsed", result.Elapsed).
		Int64("nps", result.NodesPerSecond()).
		Msg("bench finished")
	if result.Mismatches != 0 {
		return result, fmt.Errorf("%w: %v positions", ErrPerftMismatch, result.Mismatches)
	}
	return result, nil
}

func parseEntry(entry fenfile.Entry) (common.Position, error) {
	var p, err = common.NewPositionFromFEN(entry.Fen)
	if err != nil {
		return common.Position{}, fmt.Errorf("line %v: %w", entry.Line, err)
	}
	return p, nil
}

func runPerft(ctx context.Context, depth int,
	entries <-chan fenfile.Entry, results chan<- positionResult) error {
	for entry := range entries {
		var p, err = parseEntry(entry)
		if err != nil {
			return err
		}
		var nodes = perft.Perft(&p, depth)
		var expected, ok = entry.Perft[depth]
		select {
		case <-ctx.Done():
			return ctx.Err()
		case results <- positionResult{entry: entry, nodes: nodes, mismatch: ok && expected != nodes}:
		}
	}
	return nil
}

func runSearch(ctx context.Context, cfg Config,
	entries <-chan fenfile.Entry, results chan<- positionResult) error {
	var options = engine.NewOptions()
	options.Threads = 1
	if cfg.Hash > 0 {
		options.Hash = cfg.Hash
	}
	var e = engine.NewEngine(cfg.EvalBuilder, options)
	e.Prepare()
	for entry := range entries {
		var p, err = parseEntry(entry)
		if err != nil {
			return err
		}
		e.Clear()
		var si = e.Search(ctx, common.SearchParams{
			Positions: []common.Position{p},
			Limits:    common.LimitsType{Depth: cfg.Depth},
		})
		if err := ctx.Err(); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case results <- positionResult{entry: entry, nodes: si.Nodes}:
		}
	}
	return nil
}
