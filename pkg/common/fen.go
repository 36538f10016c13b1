package common

import (
	"strconv"
	"strings"
)

// NewPositionFromFEN parses Forsyth-Edwards Notation. The halfmove clock and
// fullmove number may be omitted and default to 0 and 1.
// Errors are *FenError and match ErrInvalidFEN.
func NewPositionFromFEN(fen string) (Position, error) {
	var fail = func(field FenField, value, reason string) (Position, error) {
		return Position{}, &FenError{Fen: fen, Field: field, Value: value, Reason: reason}
	}

	var tokens = strings.Fields(fen)
	if len(tokens) < 4 {
		return fail(FenFieldCount, "", "need at least 4 fields, got "+strconv.Itoa(len(tokens)))
	}
	if len(tokens) > 6 {
		return fail(FenFieldCount, "", "at most 6 fields allowed, got "+strconv.Itoa(len(tokens)))
	}

	var p = Position{
		EpSquare: SquareNone,
		FullMove: 1,
	}

	var ranks = strings.Split(tokens[0], "/")
	if len(ranks) != 8 {
		return fail(FenPlacement, tokens[0], "need 8 ranks, got "+strconv.Itoa(len(ranks)))
	}
	for i, sRank := range ranks {
		var rank = Rank8 - i
		var file = FileA
		var prevDigit = false
		for _, ch := range sRank {
			if ch >= '1' && ch <= '8' {
				if prevDigit {
					return fail(FenPlacement, sRank, "adjacent empty square counts")
				}
				prevDigit = true
				file += int(ch - '0')
				if file > 8 {
					return fail(FenPlacement, sRank, "rank has more than 8 files")
				}
				continue
			}
			prevDigit = false
			var pt, side, ok = parsePiece(ch)
			if !ok {
				return fail(FenPlacement, string(ch), "invalid piece")
			}
			if file >= 8 {
				return fail(FenPlacement, sRank, "rank has more than 8 files")
			}
			p.xorPiece(pt, side, MakeSquare(file, rank))
			file++
		}
		if file != 8 {
			return fail(FenPlacement, sRank, "rank has "+strconv.Itoa(file)+" files")
		}
	}

	switch tokens[1] {
	case "w":
		p.SideToMove = SideWhite
	case "b":
		p.SideToMove = SideBlack
	default:
		return fail(FenSideToMove, tokens[1], "expected w or b")
	}

	if tokens[2] != "-" {
		for _, ch := range tokens[2] {
			var i = strings.IndexRune("KQkq", ch)
			if i < 0 {
				return fail(FenCastling, tokens[2], "unexpected "+strconv.QuoteRune(ch))
			}
			if p.CastleRights&(1<<uint(i)) != 0 {
				return fail(FenCastling, tokens[2], "repeated "+strconv.QuoteRune(ch))
			}
			p.CastleRights |= 1 << uint(i)
		}
		if reason := castlingConsistency(&p); reason != "" {
			return fail(FenCastling, tokens[2], reason)
		}
	}

	if tokens[3] != "-" {
		var sq = ParseSquare(tokens[3])
		if sq == SquareNone {
			return fail(FenEnPassant, tokens[3], "not a square")
		}
		if reason := enPassantConsistency(&p, sq); reason != "" {
			return fail(FenEnPassant, tokens[3], reason)
		}
		p.EpSquare = sq
	}

	if len(tokens) > 4 {
		var n, err = strconv.Atoi(tokens[4])
		if err != nil || n < 0 {
			return fail(FenHalfmove, tokens[4], "expected a non-negative integer")
		}
		p.Rule50 = n
	}

	if len(tokens) > 5 {
		var n, err = strconv.Atoi(tokens[5])
		if err != nil || n < 1 {
			return fail(FenFullmove, tokens[5], "expected a positive integer")
		}
		p.FullMove = n
	}

	if reason := placementLegality(&p); reason != "" {
		return fail(FenLegality, "", reason)
	}

	p.Key = p.ComputeKey()
	p.Checkers = p.computeCheckers()
	p.LastMove = MoveEmpty
	return p, nil
}

func castlingConsistency(p *Position) string {
	var checks = [...]struct {
		flag     int
		side     int
		king     int
		rook     int
		flagName string
	}{
		{WhiteKingSide, SideWhite, SquareE1, SquareH1, "K"},
		{WhiteQueenSide, SideWhite, SquareE1, SquareA1, "Q"},
		{BlackKingSide, SideBlack, SquareE8, SquareH8, "k"},
		{BlackQueenSide, SideBlack, SquareE8, SquareA8, "q"},
	}
	for _, c := range checks {
		if p.CastleRights&c.flag == 0 {
			continue
		}
		if p.Pieces[c.side][King]&SquareMask[c.king] == 0 {
			return c.flagName + " without king on " + SquareName(c.king)
		}
		if p.Pieces[c.side][Rook]&SquareMask[c.rook] == 0 {
			return c.flagName + " without rook on " + SquareName(c.rook)
		}
	}
	return ""
}

func enPassantConsistency(p *Position, sq int) string {
	var side = p.SideToMove
	var wantRank = let(side == SideWhite, Rank6, Rank3)
	if Rank(sq) != wantRank {
		return "must be on rank " + strconv.Itoa(wantRank+1) + " for this side to move"
	}
	if p.All&SquareMask[sq] != 0 {
		return "square is occupied"
	}
	var pawnSq = sq + let(side == SideWhite, -8, 8)
	if p.Pieces[side^1][Pawn]&SquareMask[pawnSq] == 0 {
		return "no pawn on " + SquareName(pawnSq) + " that could have just moved"
	}
	var startSq = sq - let(side == SideWhite, -8, 8)
	if p.All&SquareMask[startSq] != 0 {
		return "start square " + SquareName(startSq) + " is occupied"
	}
	return ""
}

func placementLegality(p *Position) string {
	for side := SideWhite; side <= SideBlack; side++ {
		if n := PopCount(p.Pieces[side][King]); n != 1 {
			return "expected one " + sideName(side) + " king, found " + strconv.Itoa(n)
		}
	}
	if p.PiecesByType(Pawn)&(Rank1Mask|Rank8Mask) != 0 {
		return "pawn on first or last rank"
	}
	var waiting = p.SideToMove ^ 1
	if p.isAttackedBySide(p.KingSquare(waiting), p.SideToMove, p.All) {
		return sideName(waiting) + " king is in check but it is " + sideName(p.SideToMove) + " to move"
	}
	return ""
}

func sideName(side int) string {
	if side == SideWhite {
		return "white"
	}
	return "black"
}
