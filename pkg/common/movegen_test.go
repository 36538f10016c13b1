package common

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/notnil/chess"
)

func legalMoveStrings(p *Position) []string {
	var result []string
	for _, m := range p.GenerateLegalMoves() {
		result = append(result, m.String())
	}
	sort.Strings(result)
	return result
}

// oracleMoves lists legal moves in coordinate notation using an independent library.
func oracleMoves(t *testing.T, fen string) []string {
	t.Helper()
	var opt, err = chess.FEN(fen)
	if err != nil {
		t.Fatal(fen, err)
	}
	var game = chess.NewGame(opt)
	var pos = game.Position()
	var result []string
	for _, m := range pos.ValidMoves() {
		result = append(result, chess.UCINotation{}.Encode(pos, m))
	}
	sort.Strings(result)
	return result
}

func TestLegalMovesMatchOracle(t *testing.T) {
	for i, fen := range testFENs {
		var p, err = NewPositionFromFEN(fen)
		if err != nil {
			t.Fatal(i, err)
		}
		if diff := cmp.Diff(oracleMoves(t, fen), legalMoveStrings(&p)); diff != "" {
			t.Errorf("%d %v (-oracle +got):\n%s", i, fen, diff)
			continue
		}
		// one ply deeper covers the replies to every root move
		for _, m := range p.GenerateLegalMoves() {
			var undo = p.MakeMove(m)
			var childFen = p.String()
			if diff := cmp.Diff(oracleMoves(t, childFen), legalMoveStrings(&p)); diff != "" {
				t.Errorf("%d %v after %v (-oracle +got):\n%s", i, fen, m, diff)
			}
			p.UnmakeMove(undo)
		}
	}
}

func TestLegalMovesAreUniqueAndSafe(t *testing.T) {
	for i, fen := range testFENs {
		var p, _ = NewPositionFromFEN(fen)
		var side = p.SideToMove
		var seen = make(map[Move]bool)
		for _, m := range p.GenerateLegalMoves() {
			if seen[m] {
				t.Error(i, fen, "duplicate", m)
			}
			seen[m] = true
			var undo = p.MakeMove(m)
			if p.IsAttackedBy(p.KingSquare(side), side^1) {
				t.Error(i, fen, m, "leaves king attacked")
			}
			p.UnmakeMove(undo)
		}
	}
}

func TestMoveCounts(t *testing.T) {
	var tests = []struct {
		fen   string
		count int
	}{
		{InitialPositionFen, 20},
		{kiwipeteFen, 48},
		{position3Fen, 14},
		{position4Fen, 6},
		{position5Fen, 44},
		{position6Fen, 46},
		// en passant would expose the king: only king moves and the pawn push
		{"8/8/8/K2pP2q/8/8/8/7k w - d6 0 1", 6},
		// double check: the king must move
		{"4k3/8/8/8/8/3n4/4r3/R3K2R w KQ - 0 1", 3},
	}
	for i, test := range tests {
		var p, err = NewPositionFromFEN(test.fen)
		if err != nil {
			t.Fatal(i, err)
		}
		if got := len(p.GenerateLegalMoves()); got != test.count {
			t.Error(i, test.fen, got, legalMoveStrings(&p))
		}
	}
}

func TestPromotionsGenerateFourMoves(t *testing.T) {
	var p, _ = NewPositionFromFEN("8/5P1P/2k5/4b1P1/3p4/3B1K2/8/8 w - - 1 85")
	var promotions = map[int]int{}
	for _, m := range p.GenerateLegalMoves() {
		if m.From() == SquareF7 {
			promotions[m.Promotion()]++
			if m.Kind() != KindPromotion {
				t.Error(m, "kind", m.Kind())
			}
		}
	}
	if diff := cmp.Diff(map[int]int{Queen: 1, Rook: 1, Bishop: 1, Knight: 1}, promotions); diff != "" {
		t.Error(diff)
	}
}

func TestCastlingThroughAttack(t *testing.T) {
	var tests = []struct {
		fen  string
		want []string
	}{
		{"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", []string{"e1c1", "e1g1"}},
		// f1 attacked by the rook on f8
		{"4kr2/8/8/8/8/8/8/R3K2R w KQ - 0 1", []string{"e1c1"}},
		// only b1 is attacked, queen side stays legal
		{"1r2k3/8/8/8/8/8/8/R3K2R w KQ - 0 1", []string{"e1c1", "e1g1"}},
		// in check: no castling
		{"4k3/8/8/8/8/8/8/R3K2r w Q - 0 1", nil},
	}
	for i, test := range tests {
		var p, err = NewPositionFromFEN(test.fen)
		if err != nil {
			t.Fatal(i, err)
		}
		var got []string
		for _, m := range p.GenerateLegalMoves() {
			if m.IsCastle() {
				got = append(got, m.String())
			}
		}
		sort.Strings(got)
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Error(i, test.fen, diff)
		}
	}
}

func TestGameStatus(t *testing.T) {
	var tests = []struct {
		fen    string
		status GameStatus
	}{
		{InitialPositionFen, StatusOngoing},
		// fool's mate
		{"rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3", StatusCheckmate},
		// back rank mate
		{"6k1/5ppp/8/8/8/8/8/R5K1 b - - 0 1", StatusOngoing},
		{"R5k1/5ppp/8/8/8/8/8/6K1 b - - 0 1", StatusCheckmate},
		{"7k/5Q2/6K1/8/8/8/8/8 b - - 0 1", StatusStalemate},
		{"k7/8/1Q6/8/8/8/8/7K b - - 0 1", StatusStalemate},
		{"4k3/8/8/8/8/8/8/4K1N1 w - - 0 1", StatusInsufficientMaterial},
		{"4k3/8/8/8/8/8/4P3/4K3 w - - 100 80", StatusFiftyMoveRule},
	}
	for i, test := range tests {
		var p, err = NewPositionFromFEN(test.fen)
		if err != nil {
			t.Fatal(i, err)
		}
		if got := p.GameStatus(); got != test.status {
			t.Error(i, test.fen, got)
		}
		if (test.status == StatusCheckmate) != p.IsCheckmate() {
			t.Error(i, "IsCheckmate")
		}
		if (test.status == StatusStalemate) != p.IsStalemate() {
			t.Error(i, "IsStalemate")
		}
		var opt, _ = chess.FEN(test.fen)
		var oracle = chess.NewGame(opt).Position().Status()
		if (oracle == chess.Checkmate) != (test.status == StatusCheckmate) ||
			(oracle == chess.Stalemate) != (test.status == StatusStalemate) {
			t.Error(i, "oracle status", oracle)
		}
	}
}

func TestGenerateCapturesAreCapturesOrChecks(t *testing.T) {
	for i, fen := range testFENs {
		var p, _ = NewPositionFromFEN(fen)
		if p.IsCheck() {
			continue
		}
		var buffer [MaxMoves]OrderedMove
		var pinned = p.Pinned()
		var legal = make(map[Move]bool)
		for _, m := range p.GenerateLegalMoves() {
			legal[m] = true
		}
		var seen = make(map[Move]bool)
		for _, om := range p.GenerateCaptures(buffer[:], true) {
			var m = om.Move
			if seen[m] {
				t.Error(i, fen, "duplicate", m)
			}
			seen[m] = true
			if !p.IsLegal(m, pinned) {
				continue
			}
			if !legal[m] {
				t.Error(i, fen, m, "not a legal move")
			}
			var undo = p.MakeMove(m)
			var givesCheck = p.IsCheck()
			p.UnmakeMove(undo)
			if m.CapturedPiece() == Empty && m.Promotion() == Empty && !givesCheck {
				t.Error(i, fen, m, "quiet move without check")
			}
		}
		// every legal capture is produced
		for m := range legal {
			if m.CapturedPiece() != Empty && !seen[m] {
				t.Error(i, fen, m, "capture missing")
			}
		}
	}
}

func TestParseMove(t *testing.T) {
	var p, _ = NewPositionFromFEN(kiwipeteFen)
	var m, err = p.ParseMoveLAN("e1g1")
	if err != nil || m.Kind() != KindKingCastle {
		t.Error(m, err)
	}
	if _, err := p.ParseMoveLAN("e1e3"); err == nil {
		t.Error("e1e3 accepted")
	}
	if _, err := p.ParseMoveLAN("z9"); err == nil {
		t.Error("z9 accepted")
	}
	var san = p.MoveToSAN(m)
	if san != "O-O" {
		t.Error(san)
	}
	var m2, err2 = p.ParseMoveSAN("Qxf6")
	if err2 != nil || m2.String() != "f3f6" {
		t.Error(m2, err2)
	}
}
