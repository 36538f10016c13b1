package console

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chers/chers/pkg/common"
)

const (
	whiteKing   = "♔"
	whiteQueen  = "♕"
	whiteRook   = "♖"
	whiteBishop = "♗"
	whiteKnight = "♘"
	whitePawn   = "♙"
	blackKing   = "♚"
	blackQueen  = "♛"
	blackRook   = "♜"
	blackBishop = "♝"
	blackKnight = "♞"
	blackPawn   = "♟"
)

const (
	fgBlack = 30
	// Background text colors
	bgWhite = 47
	// Background Hi-Intensity text colors
	bgHiWhite = 107
)

var chessSymbols = [2][7]string{
	{" ", whitePawn, whiteKnight, whiteBishop, whiteRook, whiteQueen, whiteKing},
	{" ", blackPawn, blackKnight, blackBishop, blackRook, blackQueen, blackKing},
}

var asciiSymbols = [2][7]string{
	{".", "P", "N", "B", "R", "Q", "K"},
	{".", "p", "n", "b", "r", "q", "k"},
}

// PrintBoard writes p from white's side, rank 8 first.
// With colour the squares are drawn with ANSI escapes and chess glyphs.
func PrintBoard(w io.Writer, p *common.Position, colour bool) {
	var sb strings.Builder
	for i := 0; i < 64; i++ {
		var sq = common.FlipSquare(i)
		if common.File(sq) == common.FileA {
			sb.WriteString(strconv.Itoa(common.Rank(sq) + 1))
			sb.WriteString(" ")
		}
		var piece, side = p.GetPieceTypeAndSide(sq)
		if colour {
			sb.WriteString(pieceString(piece, side, common.IsDarkSquare(sq)))
		} else {
			sb.WriteString(asciiSymbols[side][piece])
			sb.WriteString(" ")
		}
		if common.File(sq) == common.FileH {
			sb.WriteString("\n")
		}
	}
	sb.WriteString("  a b c d e f g h\n")
	fmt.Fprint(w, sb.String())
}

func pieceString(piece, side int, darkSquare bool) string {
	var s = chessSymbols[side][piece] + " "
	var bgColor = bgHiWhite
	if darkSquare {
		bgColor = bgWhite
	}
	const escape = "\x1b"
	const reset = 0
	return fmt.Sprintf("%s[%d;%dm%s%s[%dm",
		escape, fgBlack, bgColor, s, escape, reset)
}
