package common

import (
	"strconv"
	"strings"
)

var castleMask [64]int

func (p *Position) PiecesByColor(side int) uint64 {
	return p.Colours[side]
}

// PiecesByType is the union of both sides' bitboards for a piece type.
func (p *Position) PiecesByType(pieceType int) uint64 {
	return p.Pieces[SideWhite][pieceType] | p.Pieces[SideBlack][pieceType]
}

func (p *Position) KingSquare(side int) int {
	return FirstOne(p.Pieces[side][King])
}

func (p *Position) GetPieceTypeAndSide(sq int) (pieceType, side int) {
	var bb = SquareMask[sq]
	if (p.Colours[SideWhite] & bb) != 0 {
		side = SideWhite
	} else if (p.Colours[SideBlack] & bb) != 0 {
		side = SideBlack
	} else {
		return Empty, SideWhite
	}
	for pt := Pawn; pt <= King; pt++ {
		if p.Pieces[side][pt]&bb != 0 {
			return pt, side
		}
	}
	panic(invariantViolation("no piece on occupied square %s", SquareName(sq)))
}

func (p *Position) WhatPiece(sq int) int {
	var pieceType, _ = p.GetPieceTypeAndSide(sq)
	return pieceType
}

func (p *Position) xorPiece(piece, side, square int) {
	var b = SquareMask[square]
	p.Pieces[side][piece] ^= b
	p.Colours[side] ^= b
	p.All ^= b
	p.Key ^= PieceSquareKey(piece, side, square)
}

func (p *Position) movePiece(piece, side, from, to int) {
	var b = SquareMask[from] ^ SquareMask[to]
	p.Pieces[side][piece] ^= b
	p.Colours[side] ^= b
	p.All ^= b
	p.Key ^= PieceSquareKey(piece, side, from) ^ PieceSquareKey(piece, side, to)
}

func (p *Position) isAttackedBySide(sq, side int, occ uint64) bool {
	var enemy = &p.Pieces[side]
	if (PawnAttacks(sq, side^1) & enemy[Pawn]) != 0 {
		return true
	}
	if (KnightAttacks[sq] & enemy[Knight]) != 0 {
		return true
	}
	if (KingAttacks[sq] & enemy[King]) != 0 {
		return true
	}
	if (BishopAttacks(sq, occ) & (enemy[Bishop] | enemy[Queen])) != 0 {
		return true
	}
	if (RookAttacks(sq, occ) & (enemy[Rook] | enemy[Queen])) != 0 {
		return true
	}
	return false
}

// IsAttackedBy reports whether side attacks sq with the current occupancy.
func (p *Position) IsAttackedBy(sq, side int) bool {
	return p.isAttackedBySide(sq, side, p.All)
}

// AttackersTo returns the pieces of both sides attacking sq through occ.
func (p *Position) AttackersTo(sq int, occ uint64) uint64 {
	return (PawnAttacks(sq, SideBlack) & p.Pieces[SideWhite][Pawn]) |
		(PawnAttacks(sq, SideWhite) & p.Pieces[SideBlack][Pawn]) |
		(KnightAttacks[sq] & p.PiecesByType(Knight)) |
		(BishopAttacks(sq, occ) & (p.PiecesByType(Bishop) | p.PiecesByType(Queen))) |
		(RookAttacks(sq, occ) & (p.PiecesByType(Rook) | p.PiecesByType(Queen))) |
		(KingAttacks[sq] & p.PiecesByType(King))
}

func (p *Position) computeCheckers() uint64 {
	var side = p.SideToMove
	return p.AttackersTo(p.KingSquare(side), p.All) & p.Colours[side^1]
}

// isLegal reports whether the side that just moved left its king safe.
func (p *Position) isLegal() bool {
	var side = p.SideToMove ^ 1
	return !p.isAttackedBySide(p.KingSquare(side), p.SideToMove, p.All)
}

func (p *Position) IsCheck() bool {
	return p.Checkers != 0
}

// Pinned returns the side to move's pieces that shield their own king from a slider.
func (p *Position) Pinned() uint64 {
	var side = p.SideToMove
	var enemy = &p.Pieces[side^1]
	var kingSq = p.KingSquare(side)
	var result uint64
	var snipers = (RookAttacks(kingSq, 0) & (enemy[Rook] | enemy[Queen])) |
		(BishopAttacks(kingSq, 0) & (enemy[Bishop] | enemy[Queen]))
	for ; snipers != 0; snipers &= snipers - 1 {
		var blockers = betweenMask[FirstOne(snipers)][kingSq] & p.All
		if blockers != 0 && !MoreThanOne(blockers) {
			result |= blockers & p.Colours[side]
		}
	}
	return result
}

// IsInsufficientMaterial covers the draws no sequence of moves can avoid:
// bare kings, a single minor piece, and bishops all on one square colour.
func (p *Position) IsInsufficientMaterial() bool {
	if (p.PiecesByType(Pawn) | p.PiecesByType(Rook) | p.PiecesByType(Queen)) != 0 {
		return false
	}
	var minors = p.PiecesByType(Knight) | p.PiecesByType(Bishop)
	if !MoreThanOne(minors) {
		return true
	}
	if p.PiecesByType(Knight) != 0 {
		return false
	}
	const darkSquares uint64 = 0xAA55AA55AA55AA55
	var bishops = p.PiecesByType(Bishop)
	return bishops&darkSquares == 0 || bishops&^darkSquares == 0
}

// MirrorPosition flips the board vertically and swaps the colours.
func MirrorPosition(p *Position) Position {
	var result = Position{
		SideToMove:   p.SideToMove ^ 1,
		CastleRights: (p.CastleRights >> 2) | ((p.CastleRights & 3) << 2),
		EpSquare:     SquareNone,
		Rule50:       p.Rule50,
		FullMove:     p.FullMove,
	}
	for side := SideWhite; side <= SideBlack; side++ {
		for pt := Pawn; pt <= King; pt++ {
			for x := p.Pieces[side][pt]; x != 0; x &= x - 1 {
				result.xorPiece(pt, side^1, FlipSquare(FirstOne(x)))
			}
		}
	}
	if p.EpSquare != SquareNone {
		result.EpSquare = FlipSquare(p.EpSquare)
	}
	result.Key = result.ComputeKey()
	result.Checkers = result.computeCheckers()
	return result
}

func (p *Position) String() string {
	var sb strings.Builder

	for rank := Rank8; rank >= Rank1; rank-- {
		var emptyCount = 0
		for file := FileA; file <= FileH; file++ {
			var pt, side = p.GetPieceTypeAndSide(MakeSquare(file, rank))
			if pt == Empty {
				emptyCount++
				continue
			}
			if emptyCount != 0 {
				sb.WriteByte(byte('0' + emptyCount))
				emptyCount = 0
			}
			sb.WriteByte(pieceToChar(pt, side))
		}
		if emptyCount != 0 {
			sb.WriteByte(byte('0' + emptyCount))
		}
		if rank != Rank1 {
			sb.WriteByte('/')
		}
	}

	if p.SideToMove == SideWhite {
		sb.WriteString(" w ")
	} else {
		sb.WriteString(" b ")
	}

	if p.CastleRights == 0 {
		sb.WriteString("-")
	} else {
		for i, ch := range "KQkq" {
			if p.CastleRights&(1<<uint(i)) != 0 {
				sb.WriteRune(ch)
			}
		}
	}
	sb.WriteString(" ")

	if p.EpSquare == SquareNone {
		sb.WriteString("-")
	} else {
		sb.WriteString(SquareName(p.EpSquare))
	}

	sb.WriteString(" ")
	sb.WriteString(strconv.Itoa(p.Rule50))
	sb.WriteString(" ")
	sb.WriteString(strconv.Itoa(p.FullMove))

	return sb.String()
}

func init() {
	for i := range castleMask {
		castleMask[i] = AllCastleRights
	}
	castleMask[SquareA1] &^= WhiteQueenSide
	castleMask[SquareE1] &^= WhiteQueenSide | WhiteKingSide
	castleMask[SquareH1] &^= WhiteKingSide
	castleMask[SquareA8] &^= BlackQueenSide
	castleMask[SquareE8] &^= BlackQueenSide | BlackKingSide
	castleMask[SquareH8] &^= BlackKingSide
}
