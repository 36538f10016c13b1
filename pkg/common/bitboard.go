package common

import "math/bits"

const (
	FileAMask uint64 = 0x0101010101010101 << iota
	FileBMask
	FileCMask
	FileDMask
	FileEMask
	FileFMask
	FileGMask
	FileHMask
)

const (
	Rank1Mask uint64 = 0xFF << (8 * iota)
	Rank2Mask
	Rank3Mask
	Rank4Mask
	Rank5Mask
	Rank6Mask
	Rank7Mask
	Rank8Mask
)

var (
	pawnAttacks   [2][64]uint64
	SquareMask    [64]uint64
	KnightAttacks [64]uint64
	KingAttacks   [64]uint64
	rookMask      [64]uint64
	bishopMask    [64]uint64
	rookAttacks   [64][1 << 12]uint64
	bishopAttacks [64][1 << 9]uint64
	betweenMask   [64][64]uint64
	lineMask      [64][64]uint64
)

var FileMask = [8]uint64{
	FileAMask, FileBMask, FileCMask, FileDMask, FileEMask, FileFMask, FileGMask, FileHMask,
}

var RankMask = [8]uint64{
	Rank1Mask, Rank2Mask, Rank3Mask, Rank4Mask, Rank5Mask, Rank6Mask, Rank7Mask, Rank8Mask,
}

var (
	rookShifts   = [...]func(uint64) uint64{Up, Right, Down, Left}
	bishopShifts = [...]func(uint64) uint64{UpRight, UpLeft, DownRight, DownLeft}
)

func BitboardString(b uint64) string {
	var s = ""
	for x := b; x != 0; x &= x - 1 {
		sq := FirstOne(x)
		if s != "" {
			s += ","
		}
		s += SquareName(sq)
	}
	return "(" + s + ")"
}

func PopCount(b uint64) int {
	return bits.OnesCount64(b)
}

func FirstOne(b uint64) int {
	return bits.TrailingZeros64(b)
}

func MoreThanOne(value uint64) bool {
	return value != 0 && ((value-1)&value) != 0
}

func Up(b uint64) uint64 {
	return b << 8
}

func Down(b uint64) uint64 {
	return b >> 8
}

func Right(b uint64) uint64 {
	return (b & ^FileHMask) << 1
}

func Left(b uint64) uint64 {
	return (b & ^FileAMask) >> 1
}

func UpRight(b uint64) uint64 {
	return Up(Right(b))
}

func UpLeft(b uint64) uint64 {
	return Up(Left(b))
}

func DownRight(b uint64) uint64 {
	return Down(Right(b))
}

func DownLeft(b uint64) uint64 {
	return Down(Left(b))
}

func AllWhitePawnAttacks(b uint64) uint64 {
	return ((b & ^FileAMask) << 7) | ((b & ^FileHMask) << 9)
}

func AllBlackPawnAttacks(b uint64) uint64 {
	return ((b & ^FileAMask) >> 9) | ((b & ^FileHMask) >> 7)
}

func AllPawnAttacks(b uint64, side int) uint64 {
	if side == SideWhite {
		return AllWhitePawnAttacks(b)
	}
	return AllBlackPawnAttacks(b)
}

// PawnAttacks returns the squares a pawn of side standing on from attacks.
func PawnAttacks(from, side int) uint64 {
	return pawnAttacks[side][from]
}

// https://www.chessprogramming.org/Magic_Bitboards
func BishopAttacks(from int, occ uint64) uint64 {
	return bishopAttacks[from][((bishopMask[from]&occ)*bishopMult[from])>>bishopShift]
}

func RookAttacks(from int, occ uint64) uint64 {
	return rookAttacks[from][((rookMask[from]&occ)*rookMult[from])>>rookShift]
}

func QueenAttacks(from int, occ uint64) uint64 {
	return BishopAttacks(from, occ) | RookAttacks(from, occ)
}

// BishopAttacksSlow and RookAttacksSlow scan rays square by square.
// They give the same answer as the magic lookups and are used to build and check them.
func BishopAttacksSlow(from int, occ uint64) uint64 {
	return computeSlideAttacks(from, occ, bishopShifts[:])
}

func RookAttacksSlow(from int, occ uint64) uint64 {
	return computeSlideAttacks(from, occ, rookShifts[:])
}

func BetweenMask(from, to int) uint64 {
	return betweenMask[from][to]
}

// LineMask is the full board line through both squares, or zero if they are not aligned.
func LineMask(from, to int) uint64 {
	return lineMask[from][to]
}

const (
	bishopShift = 55
	rookShift   = 52
)

var rookMult = [...]uint64{
	0x0080001020400080, 0x0040001000200040, 0x0080081000200080, 0x0080040800100080,
	0x0080020400080080, 0x0080010200040080, 0x0080008001000200, 0x0080002040800100,
	0x0000800020400080, 0x0000400020005000, 0x0000801000200080, 0x0000800800100080,
	0x0000800400080080, 0x0000800200040080, 0x0000800100020080, 0x0000800040800100,
	0x0000208000400080, 0x0000404000201000, 0x0000808010002000, 0x0000808008001000,
	0x0000808004000800, 0x0000808002000400, 0x0000010100020004, 0x0000020000408104,
	0x0000208080004000, 0x0000200040005000, 0x0000100080200080, 0x0000080080100080,
	0x0000040080080080, 0x0000020080040080, 0x0000010080800200, 0x0000800080004100,
	0x0000204000800080, 0x0000200040401000, 0x0000100080802000, 0x0000080080801000,
	0x0000040080800800, 0x0000020080800400, 0x0000020001010004, 0x0000800040800100,
	0x0000204000808000, 0x0000200040008080, 0x0000100020008080, 0x0000080010008080,
	0x0000040008008080, 0x0000020004008080, 0x0000010002008080, 0x0000004081020004,
	0x0000204000800080, 0x0000200040008080, 0x0000100020008080, 0x0000080010008080,
	0x0000040008008080, 0x0000020004008080, 0x0000800100020080, 0x0000800041000080,
	0x00FFFCDDFCED714A, 0x007FFCDDFCED714A, 0x003FFFCDFFD88096, 0x0000040810002101,
	0x0001000204080011, 0x0001000204000801, 0x0001000082000401, 0x0001FFFAABFAD1A2,
}

var bishopMult = [...]uint64{
	0x0002020202020200, 0x0002020202020000, 0x0004010202000000, 0x0004040080000000,
	0x0001104000000000, 0x0000821040000000, 0x0000410410400000, 0x0000104104104000,
	0x0000040404040400, 0x0000020202020200, 0x0000040102020000, 0x0000040400800000,
	0x0000011040000000, 0x0000008210400000, 0x0000004104104000, 0x0000002082082000,
	0x0004000808080800, 0x0002000404040400, 0x0001000202020200, 0x0000800802004000,
	0x0000800400A00000, 0x0000200100884000, 0x0000400082082000, 0x0000200041041000,
	0x0002080010101000, 0x0001040008080800, 0x0000208004010400, 0x0000404004010200,
	0x0000840000802000, 0x0000404002011000, 0x0000808001041000, 0x0000404000820800,
	0x0001041000202000, 0x0000820800101000, 0x0000104400080800, 0x0000020080080080,
	0x0000404040040100, 0x0000808100020100, 0x0001010100020800, 0x0000808080010400,
	0x0000820820004000, 0x0000410410002000, 0x0000082088001000, 0x0000002011000800,
	0x0000080100400400, 0x0001010101000200, 0x0002020202000400, 0x0001010101000200,
	0x0000410410400000, 0x0000208208200000, 0x0000002084100000, 0x0000000020880000,
	0x0000001002020000, 0x0000040408020000, 0x0004040404040000, 0x0002020202020000,
	0x0000104104104000, 0x0000002082082000, 0x0000000020841000, 0x0000000000208800,
	0x0000000010020200, 0x0000000404080200, 0x0000040404040400, 0x0002020202020200,
}

// relevantOccupancy keeps the ray squares whose occupancy can change the attack set,
// that is every ray square except the last one before the edge.
func relevantOccupancy(sq int, fs []func(uint64) uint64) uint64 {
	var result uint64
	for _, shift := range fs {
		for x := shift(SquareMask[sq]); x != 0 && shift(x) != 0; x = shift(x) {
			result |= x
		}
	}
	return result
}

// magicify spreads the bits of index over the set bits of mask.
func magicify(mask uint64, index int) uint64 {
	var result uint64
	for i := 0; mask != 0; i++ {
		var lsb = mask & -mask
		mask &= mask - 1
		if index&(1<<uint(i)) != 0 {
			result |= lsb
		}
	}
	return result
}

func computeSlideAttacks(f int, occ uint64, fs []func(sq uint64) uint64) uint64 {
	var result uint64
	for _, shift := range fs {
		var x = shift(SquareMask[f])
		for x != 0 {
			result |= x
			if (x & occ) != 0 {
				break
			}
			x = shift(x)
		}
	}
	return result
}

func init() {
	for sq := 0; sq < 64; sq++ {
		var b = uint64(1) << uint(sq)
		SquareMask[sq] = b

		pawnAttacks[SideWhite][sq] = Up(Left(b) | Right(b))
		pawnAttacks[SideBlack][sq] = Down(Left(b) | Right(b))

		KnightAttacks[sq] = Right(UpRight(b)) | Up(UpRight(b)) |
			Up(UpLeft(b)) | Left(UpLeft(b)) |
			Left(DownLeft(b)) | Down(DownLeft(b)) |
			Down(DownRight(b)) | Right(DownRight(b))

		KingAttacks[sq] = UpRight(b) | Up(b) | UpLeft(b) | Left(b) |
			DownLeft(b) | Down(b) | DownRight(b) | Right(b)
	}

	for sq := 0; sq < 64; sq++ {
		rookMask[sq] = relevantOccupancy(sq, rookShifts[:])
		for i, count := 0, 1<<uint(PopCount(rookMask[sq])); i < count; i++ {
			var occ = magicify(rookMask[sq], i)
			rookAttacks[sq][(occ*rookMult[sq])>>rookShift] = RookAttacksSlow(sq, occ)
		}

		bishopMask[sq] = relevantOccupancy(sq, bishopShifts[:])
		for i, count := 0, 1<<uint(PopCount(bishopMask[sq])); i < count; i++ {
			var occ = magicify(bishopMask[sq], i)
			bishopAttacks[sq][(occ*bishopMult[sq])>>bishopShift] = BishopAttacksSlow(sq, occ)
		}
	}

	for s1 := 0; s1 < 64; s1++ {
		for s2 := 0; s2 < 64; s2++ {
			var pair = SquareMask[s1] | SquareMask[s2]
			if (RookAttacks(s1, 0) & SquareMask[s2]) != 0 {
				betweenMask[s1][s2] = RookAttacks(s1, SquareMask[s2]) & RookAttacks(s2, SquareMask[s1])
				lineMask[s1][s2] = (RookAttacks(s1, 0) & RookAttacks(s2, 0)) | pair
			} else if (BishopAttacks(s1, 0) & SquareMask[s2]) != 0 {
				betweenMask[s1][s2] = BishopAttacks(s1, SquareMask[s2]) & BishopAttacks(s2, SquareMask[s1])
				lineMask[s1][s2] = (BishopAttacks(s1, 0) & BishopAttacks(s2, 0)) | pair
			}
		}
	}
}
