package common

import "math/rand"

var (
	sideKey        uint64
	enpassantKey   [8]uint64
	castlingKey    [16]uint64
	pieceSquareKey [7 * 2 * 64]uint64
)

func PieceSquareKey(piece, side, square int) uint64 {
	return pieceSquareKey[MakePiece(piece, side)*64+square]
}

// ComputeKey hashes the full state from scratch.
// The incremental Key maintained by MakeMove must always equal it.
func (p *Position) ComputeKey() uint64 {
	var result = uint64(0)
	if p.SideToMove == SideWhite {
		result ^= sideKey
	}
	result ^= castlingKey[p.CastleRights]
	if p.EpSquare != SquareNone {
		result ^= enpassantKey[File(p.EpSquare)]
	}
	for side := SideWhite; side <= SideBlack; side++ {
		for pt := Pawn; pt <= King; pt++ {
			for x := p.Pieces[side][pt]; x != 0; x &= x - 1 {
				result ^= PieceSquareKey(pt, side, FirstOne(x))
			}
		}
	}
	return result
}

func initKeys() {
	var r = rand.New(rand.NewSource(0))
	sideKey = r.Uint64()
	for i := range enpassantKey {
		enpassantKey[i] = r.Uint64()
	}
	for i := range pieceSquareKey {
		pieceSquareKey[i] = r.Uint64()
	}

	var castle [4]uint64
	for i := range castle {
		castle[i] = r.Uint64()
	}

	for i := range castlingKey {
		for j := 0; j < 4; j++ {
			if (i & (1 << uint(j))) != 0 {
				castlingKey[i] ^= castle[j]
			}
		}
	}
}

func init() {
	initKeys()
}
