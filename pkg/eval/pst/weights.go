package eval

import (
	. "github.com/chers/chers/pkg/common"
)

// Tables are written from white's point of view, a1 first.
var (
	middlePST = [King + 1][64]int{
		Pawn: {
			0, 0, 0, 0, 0, 0, 0, 0,
			-5, 10, 10, -20, -20, 10, 10, -5,
			0, 0, -10, 5, 5, 0, 0, 0,
			0, -10, 10, 20, 20, 10, 5, 0,
			10, 10, 15, 25, 25, 15, 10, 10,
			15, 15, 20, 30, 30, 20, 15, 15,
			30, 30, 30, 40, 40, 30, 30, 30,
			0, 0, 0, 0, 0, 0, 0, 0,
		},
		Knight: {
			-30, -20, -10, -10, -10, -10, -20, -30,
			-20, -10, 5, 5, 5, 5, -10, -20,
			-20, 5, 15, 15, 15, 15, 5, -20,
			-10, 5, 15, 20, 20, 15, 5, -10,
			-10, 5, 15, 25, 25, 15, 5, -10,
			-20, 5, 10, 15, 15, 10, 5, -20,
			-20, 0, 0, 0, 0, 0, 0, -20,
			-30, -10, -10, -10, -10, -10, -20, -30,
		},
		Bishop: {
			-20, -10, -10, -10, -10, -10, -10, -20,
			-10, 10, 5, 5, 5, 5, 10, -10,
			-10, 5, 5, 15, 15, 5, 5, -10,
			-10, 5, 5, 15, 15, 5, 5, -10,
			-10, 5, 10, 20, 20, 10, 5, -10,
			-10, 10, 10, 15, 15, 10, 10, -10,
			-10, 10, 5, 5, 5, 5, 10, -10,
			-20, -10, -10, -10, -10, -10, -10, -20,
		},
		Rook: {
			0, 0, 5, 10, 10, 5, 0, 0,
			-5, 0, 0, 0, 0, 0, 0, -5,
			-5, 0, 0, 0, 0, 0, 0, -5,
			-5, 0, 0, 0, 0, 0, 0, -5,
			-5, 0, 0, 0, 0, 0, 0, -5,
			-5, 0, 0, 0, 0, 0, 0, -5,
			10, 15, 15, 20, 20, 15, 15, 10,
			0, 0, 0, 5, 5, 0, 0, 0,
		},
		Queen: {
			-20, -10, -10, -5, -5, -10, -10, -20,
			-10, 0, 0, 0, 0, 0, 0, -10,
			-10, 0, 5, 5, 5, 5, 0, -10,
			-5, 0, 5, 5, 5, 5, 0, -5,
			-5, 0, 5, 5, 5, 5, 0, -5,
			-10, 5, 5, 5, 5, 5, 5, -10,
			-10, 0, 5, 5, 5, 5, 0, -10,
			-20, -10, -10, -5, -5, -10, -10, -20,
		},
		King: {
			30, 20, 5, -10, -10, 5, 20, 30,
			10, 10, -15, -30, -30, -15, 10, 10,
			-20, -20, -20, -20, -20, -20, -20, -20,
			-20, -30, -30, -40, -40, -30, -30, -20,
			-30, -40, -40, -50, -50, -40, -40, -30,
			-30, -40, -40, -50, -50, -40, -40, -30,
			-30, -40, -40, -50, -50, -40, -40, -30,
			-30, -40, -40, -50, -50, -40, -40, -30,
		},
	}

	endPST = [King + 1][64]int{
		Pawn: {
			0, 0, 0, 0, 0, 0, 0, 0,
			0, 0, 0, 0, 0, 0, 0, 0,
			10, 10, 10, 10, 10, 10, 10, 10,
			20, 20, 20, 20, 20, 20, 20, 20,
			30, 30, 30, 30, 30, 30, 30, 30,
			40, 40, 40, 40, 40, 40, 40, 40,
			60, 60, 60, 60, 60, 60, 60, 60,
			0, 0, 0, 0, 0, 0, 0, 0,
		},
		Knight: {
			-20, -10, -5, -5, -5, -5, -10, -20,
			-10, 0, 0, 0, 0, 0, 0, -10,
			-10, 5, 5, 5, 5, 5, 5, -10,
			-5, 5, 5, 10, 10, 5, 5, -5,
			-5, 5, 5, 10, 10, 5, 5, -5,
			-10, 5, 5, 5, 5, 5, 5, -10,
			-10, 0, 0, 0, 0, 0, 0, -10,
			-20, -10, -5, -5, -5, -5, -10, -20,
		},
		Bishop: {
			-10, -5, -5, -5, -5, -5, -5, -10,
			-5, 0, 0, 0, 0, 0, 0, -5,
			-5, 0, 5, 5, 5, 5, 0, -5,
			-5, 0, 5, 5, 5, 5, 0, -5,
			-5, 0, 5, 5, 5, 5, 0, -5,
			-5, 0, 5, 5, 5, 5, 0, -5,
			-5, 0, 0, 0, 0, 0, 0, -5,
			-10, -5, -5, -5, -5, -5, -5, -10,
		},
		Rook: {
			0, 0, 0, 0, 0, 0, 0, 0,
			0, 0, 0, 0, 0, 0, 0, 0,
			-5, 0, 0, 0, 0, 0, 0, -5,
			-5, 0, 0, 0, 0, 0, 0, -5,
			-5, 0, 0, 0, 0, 0, 0, -5,
			-5, 0, 0, 0, 0, 0, 0, -5,
			15, 20, 20, 25, 25, 20, 20, 15,
			10, 10, 10, 10, 10, 10, 10, 10,
		},
		Queen: {},
		King: {
			-20, -10, -10, -10, -10, -10, -10, -20,
			-10, 0, 0, 0, 0, 0, 0, -10,
			-10, 0, 10, 20, 20, 10, 0, -10,
			-10, 0, 10, 30, 30, 10, 0, -10,
			-10, 0, 10, 30, 30, 10, 0, -10,
			-10, 0, 10, 20, 20, 10, 0, -10,
			-10, 0, 0, 0, 0, 0, 0, -10,
			-20, -10, -10, -10, -10, -10, -10, -20,
		},
	}

	material = [King + 1]Score{
		Pawn:   S(100, 120),
		Knight: S(320, 300),
		Bishop: S(330, 320),
		Rook:   S(500, 530),
		Queen:  S(950, 980),
	}
)

type Weights struct {
	PST                [2][King + 1][64]Score
	BishopPairMaterial Score
}

func (w *Weights) init() {
	w.BishopPairMaterial = S(30, 50)
	for piece := Pawn; piece <= King; piece++ {
		for sq := 0; sq < 64; sq++ {
			var s = material[piece] + S(middlePST[piece][sq], endPST[piece][sq])
			w.PST[SideWhite][piece][sq] = s
			w.PST[SideBlack][piece][FlipSquare(sq)] = -s
		}
	}
}
