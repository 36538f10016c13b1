package common

import (
	"strings"
	"unicode"
)

func Min(l, r int) int {
	if l < r {
		return l
	}
	return r
}

func Max(l, r int) int {
	if l > r {
		return l
	}
	return r
}

func let(ok bool, yes, no int) int {
	if ok {
		return yes
	}
	return no
}

func parsePiece(ch rune) (pieceType, side int, ok bool) {
	var i = strings.IndexRune("pnbrqk", unicode.ToLower(ch))
	if i < 0 {
		return Empty, SideWhite, false
	}
	return i + Pawn, let(unicode.IsUpper(ch), SideWhite, SideBlack), true
}

func pieceToChar(pieceType, side int) byte {
	var ch = "pnbrqk"[pieceType-Pawn]
	if side == SideWhite {
		ch -= 'a' - 'A'
	}
	return ch
}

// MakePiece packs a piece type and side into 0..13, white first.
func MakePiece(pieceType, side int) int {
	return pieceType + 7*side
}

func GetPieceTypeAndSide(piece int) (pieceType, side int) {
	if piece < 7 {
		return piece, SideWhite
	}
	return piece - 7, SideBlack
}
