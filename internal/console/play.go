// Package console plays a game between a human typing moves and the engine.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/chers/chers/pkg/common"
	"github.com/rs/zerolog"
)

type IEngine interface {
	Search(ctx context.Context, searchParams common.SearchParams) common.SearchInfo
}

type Config struct {
	Fen       string
	HumanSide int
	Limits    common.LimitsType
	Colour    bool
}

// Play runs the game loop until the game ends, the human types quit, or input ends.
func Play(ctx context.Context, engine IEngine, cfg Config,
	in io.Reader, out io.Writer, log zerolog.Logger) error {
	var fen = cfg.Fen
	if fen == "" {
		fen = common.InitialPositionFen
	}
	var game, err = newGame(fen)
	if err != nil {
		return err
	}
	var scanner = bufio.NewScanner(in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		var pos = game.current()
		PrintBoard(out, pos, cfg.Colour)
		if result, over := game.result(); over {
			fmt.Fprintln(out, result)
			log.Info().Str("result", result).Int("plies", len(game.positions)-1).Msg("game over")
			return nil
		}
		if pos.SideToMove == cfg.HumanSide {
			fmt.Fprint(out, "Enter move: ")
			var move common.Move
			for {
				if !scanner.Scan() {
					return scanner.Err()
				}
				var text = strings.TrimSpace(scanner.Text())
				if text == "quit" {
					return nil
				}
				var err error
				move, err = parseMove(pos, text)
				if err == nil {
					break
				}
				fmt.Fprintf(out, "Illegal move (%v). Try again: ", err)
			}
			game.makeMove(move)
			continue
		}
		fmt.Fprintln(out, "Thinking...")
		var si = engine.Search(ctx, common.SearchParams{
			Positions: game.positions,
			Limits:    cfg.Limits,
		})
		var move = si.BestMove()
		if move == common.MoveEmpty {
			return fmt.Errorf("no move from engine in %v", pos.String())
		}
		log.Debug().Int("depth", si.Depth).Int64("nodes", si.Nodes).
			Int("score", si.Score.Centipawns).Int("mate", si.Score.Mate).
			Str("move", move.String()).Msg("engine move")
		fmt.Fprintf(out, "%v %v\n", pos.FullMove, pos.MoveToSAN(move))
		game.makeMove(move)
	}
}

// parseMove accepts coordinate notation (e2e4, e7e8q) or SAN (Nf3, O-O).
func parseMove(p *common.Position, text string) (common.Move, error) {
	var move, err = p.ParseMoveLAN(text)
	if err == nil {
		return move, nil
	}
	if move, errSAN := p.ParseMoveSAN(text); errSAN == nil {
		return move, nil
	}
	return common.MoveEmpty, err
}

type game struct {
	positions []common.Position
}

func newGame(fen string) (*game, error) {
	var pos, err = common.NewPositionFromFEN(fen)
	if err != nil {
		return nil, err
	}
	return &game{
		positions: []common.Position{pos},
	}, nil
}

func (g *game) current() *common.Position {
	return &g.positions[len(g.positions)-1]
}

func (g *game) makeMove(move common.Move) {
	var child = *g.current()
	child.MakeMove(move)
	g.positions = append(g.positions, child)
}

// repetitions counts earlier occurrences of the current position
// since the last capture or pawn move.
func (g *game) repetitions() int {
	var cur = g.current()
	var count int
	for i := len(g.positions) - 2; i >= 0; i-- {
		var p = &g.positions[i]
		if p.Key == cur.Key {
			count++
		}
		if p.Rule50 == 0 {
			break
		}
	}
	return count
}

func (g *game) result() (string, bool) {
	var pos = g.current()
	switch pos.GameStatus() {
	case common.StatusCheckmate:
		if pos.SideToMove == common.SideWhite {
			return "Black won!", true
		}
		return "White won!", true
	case common.StatusStalemate:
		return "Draw! (stalemate)", true
	case common.StatusFiftyMoveRule:
		return "Draw! (fifty move rule)", true
	case common.StatusInsufficientMaterial:
		return "Draw! (insufficient material)", true
	}
	if g.repetitions() >= 2 {
		return "Draw! (threefold repetition)", true
	}
	return "", false
}
