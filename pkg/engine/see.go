package engine

import (
	. "github.com/chers/chers/pkg/common"
)

var pieceValuesSEE = [King + 1]int{Pawn: 1, Knight: 4, Bishop: 4, Rook: 6, Queen: 12, King: 120}

func seeGEZero(p *Position, move Move) bool {
	return SeeGE(p, move, 0)
}

// SeeGE tells whether the exchange sequence started by move on its target square
// wins at least threshold (in pawns). Based on Ethereal.
func SeeGE(pos *Position, move Move, threshold int) bool {
	var from = move.From()
	var to = move.To()
	var movingPiece = move.MovingPiece()
	var capturedPiece = move.CapturedPiece()
	var promotionPiece = move.Promotion()

	var nextVictim = movingPiece
	if promotionPiece != Empty {
		nextVictim = promotionPiece
	}

	var balance = pieceValuesSEE[capturedPiece]
	if promotionPiece != Empty {
		balance += pieceValuesSEE[promotionPiece] - pieceValuesSEE[Pawn]
	}
	balance -= threshold

	if balance < 0 {
		return false
	}

	balance -= pieceValuesSEE[nextVictim]
	if balance >= 0 {
		return true
	}

	var occupied = pos.All&^SquareMask[from] | SquareMask[to]
	if move.Kind() == KindEnPassant {
		var capSq int
		if pos.SideToMove == SideWhite {
			capSq = to - 8
		} else {
			capSq = to + 8
		}
		occupied &^= SquareMask[capSq]
	}

	var attackers = pos.AttackersTo(to, occupied) & occupied

	var bishops = pos.PiecesByType(Bishop) | pos.PiecesByType(Queen)
	var rooks = pos.PiecesByType(Rook) | pos.PiecesByType(Queen)

	var side = pos.SideToMove ^ 1

	for {
		var myAttackers = attackers & pos.Colours[side]
		if myAttackers == 0 {
			break
		}

		var attackerType, attackerFrom = getLeastValuableAttacker(pos, side, myAttackers)

		occupied &^= SquareMask[attackerFrom]

		if attackerType == Pawn || attackerType == Bishop || attackerType == Queen {
			attackers |= BishopAttacks(to, occupied) & bishops
		}
		if attackerType == Rook || attackerType == Queen {
			attackers |= RookAttacks(to, occupied) & rooks
		}

		attackers &= occupied

		side = side ^ 1

		balance = -balance - 1 - pieceValuesSEE[attackerType]
		if balance >= 0 {
			if attackerType == King &&
				(attackers&pos.Colours[side]) != 0 {
				side = side ^ 1
			}
			break
		}
	}

	return side != pos.SideToMove
}

func getLeastValuableAttacker(p *Position, side int, attackers uint64) (attacker, from int) {
	for piece := Pawn; piece <= King; piece++ {
		if x := p.Pieces[side][piece] & attackers; x != 0 {
			return piece, FirstOne(x)
		}
	}
	return Empty, SquareNone
}
