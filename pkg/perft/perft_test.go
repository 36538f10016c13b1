package perft

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/chers/chers/pkg/common"
	"github.com/google/go-cmp/cmp"
)

type perftTest struct {
	fen   string
	depth int
	nodes int64
}

// https://www.chessprogramming.org/Perft_Results
var referenceTests = []perftTest{
	{common.InitialPositionFen, 1, 20},
	{common.InitialPositionFen, 2, 400},
	{common.InitialPositionFen, 3, 8902},
	{common.InitialPositionFen, 4, 197281},
	{common.InitialPositionFen, 5, 4865609},
	{common.InitialPositionFen, 6, 119060324},
	{"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq -", 1, 48},
	{"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq -", 2, 2039},
	{"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq -", 3, 97862},
	{"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq -", 4, 4085603},
	{"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq -", 5, 193690690},
	{"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - -", 1, 14},
	{"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - -", 3, 2812},
	{"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - -", 5, 674624},
	{"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - -", 7, 178633661},
	{"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1", 1, 6},
	{"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1", 3, 9467},
	{"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1", 4, 422333},
	{"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1", 5, 15833292},
	{"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8", 1, 44},
	{"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8", 3, 62379},
	{"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8", 5, 89941194},
	{"r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10", 1, 46},
	{"r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10", 3, 89890},
	{"r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10", 5, 164075551},
}

// Positions that catch the usual special move bugs.
var trickyTests = []perftTest{
	// en passant would expose the king
	{"3k4/3p4/8/K1P4r/8/8/8/8 b - - 0 1", 6, 1134888},
	{"8/8/4k3/8/2p5/8/B2P2K1/8 w - - 0 1", 6, 1015133},
	// en passant gives check
	{"8/8/1k6/2b5/2pP4/8/5K2/8 b - d3 0 1", 6, 1440467},
	// castling gives check
	{"5k2/8/8/8/8/8/8/4K2R w K - 0 1", 6, 661072},
	{"3k4/8/8/8/8/8/8/R3K3 w Q - 0 1", 6, 803711},
	// castling rights lost by captures
	{"r3k2r/1b4bq/8/8/8/8/7B/R3K2R w KQkq - 0 1", 4, 1274206},
	// castling prevented
	{"r3k2r/8/3Q4/8/8/5q2/8/R3K2R b KQkq - 0 1", 4, 1720476},
	// promotion out of check
	{"2K2r2/4P3/8/8/8/8/8/3k4 w - - 0 1", 6, 3821001},
	// discovered check
	{"8/8/1P2K3/8/2n5/1q6/8/5k2 b - - 0 1", 5, 1004658},
	// promotion gives check
	{"4k3/1P6/8/8/8/8/K7/8 w - - 0 1", 6, 217342},
	{"8/P1k5/K7/8/8/8/8/8 w - - 0 1", 6, 92683},
	// self stalemate
	{"K1k5/8/P7/8/8/8/8/8 w - - 0 1", 6, 2217},
	// stalemate and checkmate
	{"8/k1P5/8/1K6/8/8/8/8 w - - 0 1", 7, 567584},
	{"8/8/2k5/5q2/5n2/8/5K2/8 b - - 0 1", 4, 23527},
}

const shortNodesLimit = 5_000_000

func runPerftTests(t *testing.T, tests []perftTest) {
	for i, test := range tests {
		if testing.Short() && test.nodes > shortNodesLimit {
			continue
		}
		var p, err = common.NewPositionFromFEN(test.fen)
		if err != nil {
			t.Fatal(i, err)
		}
		var before = p
		var nodes = Perft(&p, test.depth)
		if nodes != test.nodes {
			t.Error(i, test.fen, test.depth, nodes, "want", test.nodes)
		}
		if diff := cmp.Diff(before, p); diff != "" {
			t.Errorf("%d: position changed by perft (-want +got):\n%s", i, diff)
		}
	}
}

func TestPerft(t *testing.T) {
	runPerftTests(t, referenceTests)
}

func TestPerftTricky(t *testing.T) {
	runPerftTests(t, trickyTests)
}

func TestPerftDepthZero(t *testing.T) {
	var p, _ = common.NewPositionFromFEN(common.InitialPositionFen)
	if n := Perft(&p, 0); n != 1 {
		t.Error(n)
	}
	// checkmated side: no moves, but the position itself is a leaf at depth 0
	p, _ = common.NewPositionFromFEN("rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	if n := Perft(&p, 0); n != 1 {
		t.Error(n)
	}
	if n := Perft(&p, 2); n != 0 {
		t.Error(n)
	}
}

func TestDivide(t *testing.T) {
	var p, _ = common.NewPositionFromFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq -")
	var entries = Divide(&p, 3)
	if len(entries) != 48 {
		t.Fatal(len(entries))
	}
	if total := Total(entries); total != 97862 {
		t.Error(total)
	}
	for i := 1; i < len(entries); i++ {
		if entries[i-1].Move.String() >= entries[i].Move.String() {
			t.Error("not sorted", entries[i-1].Move, entries[i].Move)
		}
	}

	p, _ = common.NewPositionFromFEN(common.InitialPositionFen)
	for _, e := range Divide(&p, 2) {
		if e.Nodes != 20 {
			t.Error(e.Move, e.Nodes)
		}
	}
}

func TestDivideParallel(t *testing.T) {
	var fens = []string{
		common.InitialPositionFen,
		"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
		"8/8/1k6/2b5/2pP4/8/5K2/8 b - d3 0 1",
	}
	for _, fen := range fens {
		var p, _ = common.NewPositionFromFEN(fen)
		var before = p
		var serial = Divide(&p, 3)
		var parallel, err = DivideParallel(context.Background(), &p, 3, 4)
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(serial, parallel); diff != "" {
			t.Errorf("%v (-serial +parallel):\n%s", fen, diff)
		}
		if diff := cmp.Diff(before, p); diff != "" {
			t.Errorf("%v: position changed (-want +got):\n%s", fen, diff)
		}
	}
}

func TestDivideParallelCancelled(t *testing.T) {
	var p, _ = common.NewPositionFromFEN(common.InitialPositionFen)
	var ctx, cancel = context.WithCancel(context.Background())
	cancel()
	var _, err = DivideParallel(ctx, &p, 3, 2)
	if err == nil {
		t.Error("expected context error")
	}
}

func TestDivideParallelStopsOnDeadline(t *testing.T) {
	var p, _ = common.NewPositionFromFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	var ctx, cancel = context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	var start = time.Now()
	var _, err = DivideParallel(ctx, &p, 8, 2)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Error(err)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Error("divide ignored the deadline", elapsed)
	}
}

func TestPerftContext(t *testing.T) {
	var p, _ = common.NewPositionFromFEN(common.InitialPositionFen)
	var before = p
	var nodes, err = perftContext(context.Background(), &p, 4)
	if err != nil || nodes != 197281 {
		t.Error(nodes, err)
	}
	var ctx, cancel = context.WithCancel(context.Background())
	cancel()
	nodes, err = perftContext(ctx, &p, 5)
	if !errors.Is(err, context.Canceled) || nodes != 0 {
		t.Error(nodes, err)
	}
	if diff := cmp.Diff(before, p); diff != "" {
		t.Errorf("position changed (-want +got):\n%s", diff)
	}
}

func benchmarkPerft(b *testing.B, fen string, depth int) {
	var p, err = common.NewPositionFromFEN(fen)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Perft(&p, depth)
	}
}

func BenchmarkPerftInitial(b *testing.B) {
	benchmarkPerft(b, common.InitialPositionFen, 3)
}

func BenchmarkPerftKiwipete(b *testing.B) {
	benchmarkPerft(b, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", 3)
}
