package main

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/chers/chers/internal/bench"
	"github.com/chers/chers/internal/console"
	"github.com/chers/chers/internal/evalbuilder"
	"github.com/chers/chers/pkg/common"
	"github.com/chers/chers/pkg/engine"
	"github.com/chers/chers/pkg/perft"
	"github.com/rs/zerolog"
)

type commands struct {
	ctx    context.Context
	args   *CommandArgs
	in     io.Reader
	out    io.Writer
	logger zerolog.Logger
}

// positionArg reads the position from the first positional argument,
// the start position when it is absent.
func (c *commands) positionArg() (common.Position, error) {
	var fen, ok = c.args.Arg(0)
	if !ok {
		fen = common.InitialPositionFen
	}
	return common.NewPositionFromFEN(fen)
}

// fenAndDepth accepts "<fen> <depth>" or "<depth>" for the start position.
func (c *commands) fenAndDepth() (common.Position, int, error) {
	var fen = common.InitialPositionFen
	var sdepth, ok = c.args.Arg(1)
	if ok {
		fen, _ = c.args.Arg(0)
	} else if sdepth, ok = c.args.Arg(0); !ok {
		return common.Position{}, 0, fmt.Errorf("usage: %v [fen] depth", c.args.CommandName())
	}
	var depth, err = strconv.Atoi(sdepth)
	if err != nil || depth < 0 {
		return common.Position{}, 0, fmt.Errorf("bad depth %q", sdepth)
	}
	p, err := common.NewPositionFromFEN(fen)
	if err != nil {
		return common.Position{}, 0, err
	}
	return p, depth, nil
}

func (c *commands) perft() error {
	var p, depth, err = c.fenAndDepth()
	if err != nil {
		return err
	}
	var start = time.Now()
	var nodes = perft.Perft(&p, depth)
	var elapsed = time.Since(start)
	c.logger.Info().Int("depth", depth).Int64("nodes", nodes).Dur("elapsed", elapsed).Msg("perft finished")
	fmt.Fprintln(c.out, nodes)
	return nil
}

func (c *commands) divide() error {
	var p, depth, err = c.fenAndDepth()
	if err != nil {
		return err
	}
	threads, err := c.args.GetInt("threads", 1)
	if err != nil {
		return err
	}
	var entries []perft.DivideEntry
	if threads > 1 && depth > 1 {
		entries, err = perft.DivideParallel(c.ctx, &p, depth, threads)
		if err != nil {
			return err
		}
	} else {
		entries = perft.Divide(&p, depth)
	}
	for _, entry := range entries {
		fmt.Fprintln(c.out, entry.Move, entry.Nodes)
	}
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "Total", perft.Total(entries))
	return nil
}

func (c *commands) newEngine() (*engine.Engine, error) {
	var evalBuilder, err = evalbuilder.Get(c.args.GetString("eval", ""))
	if err != nil {
		return nil, err
	}
	var options = engine.NewOptions()
	if options.Hash, err = c.args.GetInt("hash", options.Hash); err != nil {
		return nil, err
	}
	if options.Threads, err = c.args.GetInt("threads", options.Threads); err != nil {
		return nil, err
	}
	if options.Hash <= 0 || options.Threads <= 0 || options.Threads > 4*runtime.NumCPU() {
		return nil, fmt.Errorf("bad engine options hash %v threads %v", options.Hash, options.Threads)
	}
	return engine.NewEngine(evalBuilder, options), nil
}

func (c *commands) limits(defaultMoveTime int) (common.LimitsType, error) {
	var limits common.LimitsType
	var err error
	if limits.Depth, err = c.args.GetInt("depth", 0); err != nil {
		return limits, err
	}
	if limits.Nodes, err = c.args.GetInt("nodes", 0); err != nil {
		return limits, err
	}
	if limits.MoveTime, err = c.args.GetInt("movetime", 0); err != nil {
		return limits, err
	}
	if limits.Depth == 0 && limits.Nodes == 0 && limits.MoveTime == 0 {
		limits.MoveTime = defaultMoveTime
	}
	return limits, nil
}

func (c *commands) search() error {
	var p, err = c.positionArg()
	if err != nil {
		return err
	}
	limits, err := c.limits(0)
	if err != nil {
		return err
	}
	if limits.Depth == 0 && limits.Nodes == 0 && limits.MoveTime == 0 {
		limits.Depth = 8
	}
	eng, err := c.newEngine()
	if err != nil {
		return err
	}
	var si = eng.Search(c.ctx, common.SearchParams{
		Positions: []common.Position{p},
		Limits:    limits,
		Progress: func(si common.SearchInfo) {
			fmt.Fprintln(c.out, searchInfoToUci(si))
		},
	})
	fmt.Fprintln(c.out, searchInfoToUci(si))
	if si.BestMove() == common.MoveEmpty {
		fmt.Fprintln(c.out, "bestmove (none)")
		return nil
	}
	fmt.Fprintln(c.out, "bestmove", si.BestMove())
	return nil
}

func searchInfoToUci(si common.SearchInfo) string {
	var sb = &strings.Builder{}
	var nps = si.Nodes * 1000 / (si.Time + 1)
	fmt.Fprintf(sb, "info depth %v", si.Depth)
	if si.Score.Mate != 0 {
		fmt.Fprintf(sb, " score mate %v", si.Score.Mate)
	} else {
		fmt.Fprintf(sb, " score cp %v", si.Score.Centipawns)
	}
	fmt.Fprintf(sb, " nodes %v time %v nps %v", si.Nodes, si.Time, nps)
	if len(si.MainLine) != 0 {
		fmt.Fprintf(sb, " pv")
		for _, move := range si.MainLine {
			sb.WriteString(" ")
			sb.WriteString(move.String())
		}
	}
	return sb.String()
}

func (c *commands) bench() error {
	var path = mapPath(c.args.GetString("path", ""))
	if path == "" {
		return fmt.Errorf("usage: bench -path file[.zst] [-mode perft|search] [-depth N]")
	}
	var evalBuilder, err = evalbuilder.Get(c.args.GetString("eval", ""))
	if err != nil {
		return err
	}
	depth, err := c.args.GetInt("depth", 4)
	if err != nil {
		return err
	}
	threads, err := c.args.GetInt("threads", runtime.NumCPU())
	if err != nil {
		return err
	}
	hash, err := c.args.GetInt("hash", 16)
	if err != nil {
		return err
	}
	var result, errRun = bench.Run(c.ctx, bench.Config{
		Path:        path,
		Mode:        c.args.GetString("mode", bench.ModePerft),
		Depth:       depth,
		Threads:     threads,
		Hash:        hash,
		EvalBuilder: evalBuilder,
		Logger:      c.logger,
	})
	fmt.Fprintln(c.out, "Positions", result.Positions)
	fmt.Fprintln(c.out, "Nodes", result.Nodes)
	fmt.Fprintln(c.out, "Time", result.Elapsed)
	fmt.Fprintln(c.out, "NPS", result.NodesPerSecond())
	return errRun
}

func (c *commands) play() error {
	var side = c.args.GetString("side", "white")
	var humanSide int
	switch side {
	case "white", "w":
		humanSide = common.SideWhite
	case "black", "b":
		humanSide = common.SideBlack
	default:
		return fmt.Errorf("bad side %q", side)
	}
	limits, err := c.limits(3000)
	if err != nil {
		return err
	}
	colour, err := c.args.GetBool("colour", true)
	if err != nil {
		return err
	}
	eng, err := c.newEngine()
	if err != nil {
		return err
	}
	return console.Play(c.ctx, eng, console.Config{
		Fen:       c.args.GetString("fen", ""),
		HumanSide: humanSide,
		Limits:    limits,
		Colour:    colour,
	}, c.in, c.out, c.logger)
}
