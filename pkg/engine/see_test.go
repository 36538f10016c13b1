package engine

import (
	"testing"

	"github.com/chers/chers/pkg/common"
)

func TestSeeGE(t *testing.T) {
	var tests = []struct {
		fen       string
		move      string
		threshold int
		want      bool
	}{
		{"1k1r4/1pp4p/p7/4p3/8/P5P1/1PP4P/2K1R3 w - - 0 1", "e1e5", 0, true},
		{"1k1r4/1pp4p/p7/4p3/8/P5P1/1PP4P/2K1R3 w - - 0 1", "e1e5", 1, true},
		{"1k1r4/1pp4p/p7/4p3/8/P5P1/1PP4P/2K1R3 w - - 0 1", "e1e5", 2, false},
		{"1k1r3q/1ppn3p/p4b2/4p3/8/P2N2P1/1PP1R1BP/2K1Q3 w - - 0 1", "d3e5", 0, false},
		{"1k1r3q/1ppn3p/p4b2/4p3/8/P2N2P1/1PP1R1BP/2K1Q3 w - - 0 1", "d3e5", -3, true},
		// quiet move onto a square guarded by a pawn
		{"4k3/8/3p4/8/8/8/7Q/4K3 w - - 0 1", "h2e5", 0, false},
		{"4k3/8/3p4/8/8/8/7Q/4K3 w - - 0 1", "h2h4", 0, true},
	}
	for i, test := range tests {
		var p, err = common.NewPositionFromFEN(test.fen)
		if err != nil {
			t.Fatal(i, err)
		}
		var move, err2 = p.ParseMoveLAN(test.move)
		if err2 != nil {
			t.Fatal(i, err2)
		}
		if got := SeeGE(&p, move, test.threshold); got != test.want {
			t.Error(i, test.fen, test.move, test.threshold, got)
		}
	}
}

func TestHistoryUpdate(t *testing.T) {
	var p, _ = common.NewPositionFromFEN(common.InitialPositionFen)
	var e4, _ = p.ParseMoveLAN("e2e4")
	var d4, _ = p.ParseMoveLAN("d2d4")
	var nf3, _ = p.ParseMoveLAN("g1f3")
	var h historyService
	h.Update(common.SideWhite, []common.Move{e4, d4, nf3}, d4, 8)
	if h.Read(common.SideWhite, d4) <= 0 || h.Read(common.SideWhite, e4) >= 0 {
		t.Error(h.Read(common.SideWhite, d4), h.Read(common.SideWhite, e4))
	}
	// moves after the best one were never searched
	if h.Read(common.SideWhite, nf3) != 0 || h.Read(common.SideBlack, d4) != 0 {
		t.Error("unexpected update")
	}
	h.Clear()
	if h.Read(common.SideWhite, d4) != 0 {
		t.Error("clear")
	}
}
