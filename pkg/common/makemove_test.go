package common

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMakeMove(t *testing.T) {
	var tests = []struct {
		fen      string
		move     string
		expected string
	}{
		{
			InitialPositionFen,
			"e2e4",
			"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
		},
		{
			"rnbqkbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 2",
			"e4d5",
			"rnbqkbnr/ppp1pppp/8/3P4/8/8/PPPP1PPP/RNBQKBNR b KQkq - 0 2",
		},
		{
			"rnbqkbnr/1pp1pppp/p7/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3",
			"e5d6",
			"rnbqkbnr/1pp1pppp/p2P4/8/8/8/PPPP1PPP/RNBQKBNR b KQkq - 0 3",
		},
		{
			"rnbqkbnr/pppp1ppp/8/8/P3pP2/8/1PPPP1PP/RNBQKBNR b KQkq f3 0 3",
			"e4f3",
			"rnbqkbnr/pppp1ppp/8/8/P7/5p2/1PPPP1PP/RNBQKBNR w KQkq - 0 4",
		},
		{
			"r1bqkb1r/pppp1ppp/2n2n2/1B2p3/4P3/5N2/PPPP1PPP/RNBQK2R w KQkq - 4 4",
			"e1g1",
			"r1bqkb1r/pppp1ppp/2n2n2/1B2p3/4P3/5N2/PPPP1PPP/RNBQ1RK1 b kq - 5 4",
		},
		{
			"r2qkb1r/ppp1pppp/2n5/3p1b2/3PnB2/2NQP3/PPP2PPP/R3KBNR w KQkq - 5 6",
			"e1c1",
			"r2qkb1r/ppp1pppp/2n5/3p1b2/3PnB2/2NQP3/PPP2PPP/2KR1BNR b kq - 6 6",
		},
		{
			"rnbqk2r/pppp1ppp/5n2/4N3/1b2P3/2N5/PPPP1PPP/R1BQKB1R b KQkq - 0 4",
			"e8g8",
			"rnbq1rk1/pppp1ppp/5n2/4N3/1b2P3/2N5/PPPP1PPP/R1BQKB1R w KQ - 1 5",
		},
		{
			"r3kbnr/pppqpppp/2n1b3/3pN3/2PP4/2N5/PP2PPPP/R1BQKB1R b KQkq - 6 5",
			"e8c8",
			"2kr1bnr/pppqpppp/2n1b3/3pN3/2PP4/2N5/PP2PPPP/R1BQKB1R w KQ - 7 6",
		},
		{
			"8/5P1P/2k5/4b1P1/3p4/3B1K2/8/8 w - - 1 85",
			"f7f8q",
			"5Q2/7P/2k5/4b1P1/3p4/3B1K2/8/8 b - - 0 85",
		},
		{
			"8/8/2k5/4K3/8/8/4p3/8 b - - 0 90",
			"e2e1q",
			"8/8/2k5/4K3/8/8/8/4q3 w - - 0 91",
		},
		{
			"5b2/6P1/2k5/4K3/3p4/3B4/8/8 w - - 3 92",
			"g7f8q",
			"5Q2/8/2k5/4K3/3p4/3B4/8/8 b - - 0 92",
		},
		{
			"8/5P1P/2k5/4b1P1/3p4/3B1K2/8/8 w - - 1 85",
			"f7f8n",
			"5N2/7P/2k5/4b1P1/3p4/3B1K2/8/8 b - - 0 85",
		},
		{
			// capturing a rook on its home square revokes the opponent's right
			"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
			"a1a8",
			"R3k2r/8/8/8/8/8/8/4K2R b Kk - 0 1",
		},
	}
	for i, test := range tests {
		var p, err = NewPositionFromFEN(test.fen)
		if err != nil {
			t.Fatal(i, err)
		}
		var expected, _ = NewPositionFromFEN(test.expected)
		var before = p
		var undo, err2 = p.MakeMoveLAN(test.move)
		if err2 != nil {
			t.Error(i, test.move, err2)
			continue
		}
		if got := p.String(); got != test.expected {
			t.Error(i, test.move, got)
		}
		if p.Key != expected.Key {
			t.Error(i, "key differs from parsed position")
		}
		p.UnmakeMove(undo)
		if diff := cmp.Diff(before, p); diff != "" {
			t.Errorf("%d: unmake %v (-want +got):\n%s", i, test.move, diff)
		}
	}
}

func TestMakeUnmakeRestores(t *testing.T) {
	for i, fen := range testFENs {
		var p, err = NewPositionFromFEN(fen)
		if err != nil {
			t.Fatal(i, err)
		}
		var before = p
		for _, m := range p.GenerateLegalMoves() {
			var undo = p.MakeMove(m)
			if err := p.Validate(); err != nil {
				t.Fatal(i, fen, m, err)
			}
			p.UnmakeMove(undo)
			if diff := cmp.Diff(before, p); diff != "" {
				t.Fatalf("%d: %v %v (-want +got):\n%s", i, fen, m, diff)
			}
		}
	}
}

// Random games keep the incremental key equal to a full recomputation,
// and unwinding the whole game gets back to the start.
func TestRandomGamesKeepInvariants(t *testing.T) {
	var r = rand.New(rand.NewSource(7))
	var games = 40
	if testing.Short() {
		games = 5
	}
	for game := 0; game < games; game++ {
		var p, _ = NewPositionFromFEN(testFENs[game%len(testFENs)])
		var start = p
		var undos []UndoInfo
		for ply := 0; ply < 200; ply++ {
			var ml = p.GenerateLegalMoves()
			if len(ml) == 0 {
				break
			}
			undos = append(undos, p.MakeMove(ml[r.Intn(len(ml))]))
			if err := p.Validate(); err != nil {
				t.Fatal(game, ply, err)
			}
		}
		for i := len(undos) - 1; i >= 0; i-- {
			p.UnmakeMove(undos[i])
		}
		if diff := cmp.Diff(start, p); diff != "" {
			t.Fatalf("game %d (-want +got):\n%s", game, diff)
		}
	}
}

func TestNullMove(t *testing.T) {
	var p, _ = NewPositionFromFEN("rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1")
	var before = p
	var undo = p.MakeNullMove()
	if p.SideToMove != SideWhite || p.EpSquare != SquareNone || p.FullMove != 2 {
		t.Error(p.String())
	}
	if err := p.Validate(); err != nil {
		t.Error(err)
	}
	p.UnmakeNullMove(undo)
	if diff := cmp.Diff(before, p); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestMakeMoveInvariantViolation(t *testing.T) {
	var tests = []struct {
		fen  string
		move Move
	}{
		// nothing on e3
		{InitialPositionFen, makeMove(SquareE3, SquareE4, Pawn, Empty)},
		// knight claims to be a bishop
		{InitialPositionFen, makeMove(SquareG1, SquareF3, Bishop, Empty)},
		// captures own piece
		{InitialPositionFen, makeMove(SquareD1, SquareD2, Queen, Pawn)},
		// leaves the king in check
		{"4k3/8/8/8/8/8/3R4/4K2r w - - 0 1", makeMove(SquareD2, SquareC2, Rook, Empty)},
		// rook jumps over its own pawn
		{InitialPositionFen, makeMove(SquareA1, SquareA8, Rook, Rook)},
		// knight moves like a rook
		{InitialPositionFen, makeMove(SquareG1, SquareG4, Knight, Empty)},
		// bishop through its own pawn
		{InitialPositionFen, makeMove(SquareC1, SquareF4, Bishop, Empty)},
		// castling without the right
		{"r3k2r/8/8/8/8/8/8/R3K2R w - - 0 1", newMove(SquareE1, SquareG1, King, Empty, Empty, KindKingCastle)},
		// castling through an attacked square
		{"4kr2/8/8/8/8/8/8/R3K2R w KQ - 0 1", newMove(SquareE1, SquareG1, King, Empty, Empty, KindKingCastle)},
		// castling with a piece in the way
		{"4k3/8/8/8/8/8/8/RN2K2R w KQ - 0 1", newMove(SquareE1, SquareC1, King, Empty, Empty, KindQueenCastle)},
		// pawn moves three squares
		{InitialPositionFen, makePawnMove(SquareE2, SquareE5, Empty, Empty)},
		// pawn moves sideways onto an empty square
		{InitialPositionFen, makePawnMove(SquareE2, SquareD3, Empty, Empty)},
		// double push from the third rank
		{"4k3/8/8/8/8/4P3/8/4K3 w - - 0 1", newMove(SquareE3, SquareE5, Pawn, Empty, Empty, KindDoublePawnPush)},
		// reaches the last rank without promoting
		{"k7/4P3/8/8/8/8/8/4K3 w - - 0 1", makePawnMove(SquareE7, SquareE8, Empty, Empty)},
		// promotes in the middle of the board
		{InitialPositionFen, makePawnMove(SquareE2, SquareE3, Empty, Queen)},
		// king steps two squares without castling
		{"4k3/8/8/8/8/8/8/4K3 w - - 0 1", makeMove(SquareE1, SquareG1, King, Empty)},
	}
	for i, test := range tests {
		var p, err = NewPositionFromFEN(test.fen)
		if err != nil {
			t.Fatal(i, err)
		}
		var before = p
		func() {
			defer func() {
				var r = recover()
				var e, ok = r.(error)
				if !ok || !errors.Is(e, ErrInvariant) {
					t.Error(i, test.move, "expected invariant panic, got", r)
				}
			}()
			p.MakeMove(test.move)
		}()
		// everything but the king-in-check case is refused before the board changes
		if i != 3 {
			if diff := cmp.Diff(before, p); diff != "" {
				t.Errorf("%d: %v changed the position (-want +got):\n%s", i, test.move, diff)
			}
		}
	}
}

func BenchmarkMakeUnmake(b *testing.B) {
	var positions []Position
	var moves [][]Move
	for _, fen := range testFENs {
		var p, _ = NewPositionFromFEN(fen)
		positions = append(positions, p)
		moves = append(moves, p.GenerateLegalMoves())
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for j := range positions {
			var p = &positions[j]
			for _, m := range moves[j] {
				var undo = p.MakeMove(m)
				p.UnmakeMove(undo)
			}
		}
	}
}
