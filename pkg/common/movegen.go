package common

const (
	f1g1Mask = (uint64(1) << SquareF1) | (uint64(1) << SquareG1)
	b1d1Mask = (uint64(1) << SquareB1) | (uint64(1) << SquareC1) | (uint64(1) << SquareD1)
	f8g8Mask = (uint64(1) << SquareF8) | (uint64(1) << SquareG8)
	b8d8Mask = (uint64(1) << SquareB8) | (uint64(1) << SquareC8) | (uint64(1) << SquareD8)
)

var (
	whiteKingSideCastle  = newMove(SquareE1, SquareG1, King, Empty, Empty, KindKingCastle)
	whiteQueenSideCastle = newMove(SquareE1, SquareC1, King, Empty, Empty, KindQueenCastle)
	blackKingSideCastle  = newMove(SquareE8, SquareG8, King, Empty, Empty, KindKingCastle)
	blackQueenSideCastle = newMove(SquareE8, SquareC8, King, Empty, Empty, KindQueenCastle)
)

func addPromotions(ml []OrderedMove, from, to, capturedPiece int) (count int) {
	ml[0].Move = makePawnMove(from, to, capturedPiece, Queen)
	ml[1].Move = makePawnMove(from, to, capturedPiece, Rook)
	ml[2].Move = makePawnMove(from, to, capturedPiece, Bishop)
	ml[3].Move = makePawnMove(from, to, capturedPiece, Knight)
	return 4
}

// GenerateMoves writes the pseudo-legal moves into ml: moves that may still leave
// the own king attacked. In check only evasion candidates are produced.
func (p *Position) GenerateMoves(ml []OrderedMove) []OrderedMove {
	var count = 0
	var fromBB, toBB uint64
	var from, to int

	var side = p.SideToMove
	var ownPieces = &p.Pieces[side]
	var own = p.Colours[side]
	var opp = p.Colours[side^1]
	var allPieces = p.All
	var kingSq = p.KingSquare(side)

	var target = ^own
	if p.Checkers != 0 {
		target = p.Checkers | betweenMask[FirstOne(p.Checkers)][kingSq]
	}

	// in double check only the king can move
	if !MoreThanOne(p.Checkers) {
		if p.EpSquare != SquareNone {
			for fromBB = PawnAttacks(p.EpSquare, side^1) & ownPieces[Pawn]; fromBB != 0; fromBB &= fromBB - 1 {
				ml[count].Move = makeEnPassant(FirstOne(fromBB), p.EpSquare)
				count++
			}
		}

		var forward = let(side == SideWhite, 8, -8)
		var startRank = let(side == SideWhite, Rank2, Rank7)
		var promotionRank = let(side == SideWhite, Rank7, Rank2)

		for fromBB = ownPieces[Pawn]; fromBB != 0; fromBB &= fromBB - 1 {
			from = FirstOne(fromBB)
			var promotion = Rank(from) == promotionRank
			to = from + forward
			if (SquareMask[to] & allPieces) == 0 {
				if (SquareMask[to] & target) != 0 {
					if promotion {
						count += addPromotions(ml[count:], from, to, Empty)
					} else {
						ml[count].Move = makePawnMove(from, to, Empty, Empty)
						count++
					}
				}
				if Rank(from) == startRank {
					var to2 = to + forward
					if (SquareMask[to2]&allPieces) == 0 && (SquareMask[to2]&target) != 0 {
						ml[count].Move = makePawnMove(from, to2, Empty, Empty)
						count++
					}
				}
			}
			for toBB = PawnAttacks(from, side) & opp & target; toBB != 0; toBB &= toBB - 1 {
				to = FirstOne(toBB)
				if promotion {
					count += addPromotions(ml[count:], from, to, p.WhatPiece(to))
				} else {
					ml[count].Move = makePawnMove(from, to, p.WhatPiece(to), Empty)
					count++
				}
			}
		}

		for fromBB = ownPieces[Knight]; fromBB != 0; fromBB &= fromBB - 1 {
			from = FirstOne(fromBB)
			for toBB = KnightAttacks[from] & target; toBB != 0; toBB &= toBB - 1 {
				to = FirstOne(toBB)
				ml[count].Move = makeMove(from, to, Knight, p.WhatPiece(to))
				count++
			}
		}

		for fromBB = ownPieces[Bishop]; fromBB != 0; fromBB &= fromBB - 1 {
			from = FirstOne(fromBB)
			for toBB = BishopAttacks(from, allPieces) & target; toBB != 0; toBB &= toBB - 1 {
				to = FirstOne(toBB)
				ml[count].Move = makeMove(from, to, Bishop, p.WhatPiece(to))
				count++
			}
		}

		for fromBB = ownPieces[Rook]; fromBB != 0; fromBB &= fromBB - 1 {
			from = FirstOne(fromBB)
			for toBB = RookAttacks(from, allPieces) & target; toBB != 0; toBB &= toBB - 1 {
				to = FirstOne(toBB)
				ml[count].Move = makeMove(from, to, Rook, p.WhatPiece(to))
				count++
			}
		}

		for fromBB = ownPieces[Queen]; fromBB != 0; fromBB &= fromBB - 1 {
			from = FirstOne(fromBB)
			for toBB = QueenAttacks(from, allPieces) & target; toBB != 0; toBB &= toBB - 1 {
				to = FirstOne(toBB)
				ml[count].Move = makeMove(from, to, Queen, p.WhatPiece(to))
				count++
			}
		}
	}

	for toBB = KingAttacks[kingSq] &^ own; toBB != 0; toBB &= toBB - 1 {
		to = FirstOne(toBB)
		ml[count].Move = makeMove(kingSq, to, King, p.WhatPiece(to))
		count++
	}

	if p.Checkers == 0 {
		if side == SideWhite {
			if (p.CastleRights&WhiteKingSide) != 0 &&
				(allPieces&f1g1Mask) == 0 &&
				!p.isAttackedBySide(SquareF1, SideBlack, allPieces) &&
				!p.isAttackedBySide(SquareG1, SideBlack, allPieces) {
				ml[count].Move = whiteKingSideCastle
				count++
			}
			if (p.CastleRights&WhiteQueenSide) != 0 &&
				(allPieces&b1d1Mask) == 0 &&
				!p.isAttackedBySide(SquareD1, SideBlack, allPieces) &&
				!p.isAttackedBySide(SquareC1, SideBlack, allPieces) {
				ml[count].Move = whiteQueenSideCastle
				count++
			}
		} else {
			if (p.CastleRights&BlackKingSide) != 0 &&
				(allPieces&f8g8Mask) == 0 &&
				!p.isAttackedBySide(SquareF8, SideWhite, allPieces) &&
				!p.isAttackedBySide(SquareG8, SideWhite, allPieces) {
				ml[count].Move = blackKingSideCastle
				count++
			}
			if (p.CastleRights&BlackQueenSide) != 0 &&
				(allPieces&b8d8Mask) == 0 &&
				!p.isAttackedBySide(SquareD8, SideWhite, allPieces) &&
				!p.isAttackedBySide(SquareC8, SideWhite, allPieces) {
				ml[count].Move = blackQueenSideCastle
				count++
			}
		}
	}

	return ml[:count]
}

// GenerateCaptures writes captures, en passant and queen promotions into ml.
// With genChecks it adds quiet moves that give check, directly or by discovery.
// It is meant for positions without check; use GenerateMoves for evasions.
func (p *Position) GenerateCaptures(ml []OrderedMove, genChecks bool) []OrderedMove {
	var count = 0
	var fromBB, toBB uint64
	var from, to int

	var side = p.SideToMove
	var ownPieces = &p.Pieces[side]
	var own = p.Colours[side]
	var opp = p.Colours[side^1]
	var allPieces = p.All
	var forward = let(side == SideWhite, 8, -8)
	var promotionRank = let(side == SideWhite, Rank7, Rank2)

	if p.EpSquare != SquareNone {
		for fromBB = PawnAttacks(p.EpSquare, side^1) & ownPieces[Pawn]; fromBB != 0; fromBB &= fromBB - 1 {
			ml[count].Move = makeEnPassant(FirstOne(fromBB), p.EpSquare)
			count++
		}
	}

	fromBB = (AllPawnAttacks(opp, side^1) | RankMask[promotionRank]) & ownPieces[Pawn]
	for ; fromBB != 0; fromBB &= fromBB - 1 {
		from = FirstOne(fromBB)
		var promotion = let(Rank(from) == promotionRank, Queen, Empty)
		if promotion != Empty && (SquareMask[from+forward]&allPieces) == 0 {
			ml[count].Move = makePawnMove(from, from+forward, Empty, promotion)
			count++
		}
		for toBB = PawnAttacks(from, side) & opp; toBB != 0; toBB &= toBB - 1 {
			to = FirstOne(toBB)
			ml[count].Move = makePawnMove(from, to, p.WhatPiece(to), promotion)
			count++
		}
	}

	var checksN, checksB, checksR, checksQ uint64
	if genChecks {
		var oppKing = p.KingSquare(side ^ 1)
		checksN = KnightAttacks[oppKing] &^ allPieces
		checksB = BishopAttacks(oppKing, allPieces) &^ allPieces
		checksR = RookAttacks(oppKing, allPieces) &^ allPieces
		checksQ = checksB | checksR

		var pawnChecks = PawnAttacks(oppKing, side^1) &^ allPieces
		for toBB = pawnChecks; toBB != 0; toBB &= toBB - 1 {
			to = FirstOne(toBB)
			from = to - forward
			if from >= 0 && from < 64 &&
				(ownPieces[Pawn]&SquareMask[from]) != 0 &&
				Rank(from) != promotionRank {
				ml[count].Move = makePawnMove(from, to, Empty, Empty)
				count++
			}
		}

		// discovered checks
		for fromBB = (ownPieces[Rook] | ownPieces[Queen]) & RookAttacks(oppKing, 0); fromBB != 0; fromBB &= fromBB - 1 {
			var blockers = betweenMask[FirstOne(fromBB)][oppKing] & allPieces
			if blockers == 0 || MoreThanOne(blockers) || (blockers&own) == 0 {
				continue
			}
			from = FirstOne(blockers)
			switch p.WhatPiece(from) {
			case Knight:
				for toBB = KnightAttacks[from] &^ allPieces &^ checksN; toBB != 0; toBB &= toBB - 1 {
					ml[count].Move = makeMove(from, FirstOne(toBB), Knight, Empty)
					count++
				}
			case Bishop:
				for toBB = BishopAttacks(from, allPieces) &^ allPieces &^ checksB; toBB != 0; toBB &= toBB - 1 {
					ml[count].Move = makeMove(from, FirstOne(toBB), Bishop, Empty)
					count++
				}
			}
		}

		for fromBB = (ownPieces[Bishop] | ownPieces[Queen]) & BishopAttacks(oppKing, 0); fromBB != 0; fromBB &= fromBB - 1 {
			var blockers = betweenMask[FirstOne(fromBB)][oppKing] & allPieces
			if blockers == 0 || MoreThanOne(blockers) || (blockers&own) == 0 {
				continue
			}
			from = FirstOne(blockers)
			switch p.WhatPiece(from) {
			case Knight:
				for toBB = KnightAttacks[from] &^ allPieces &^ checksN; toBB != 0; toBB &= toBB - 1 {
					ml[count].Move = makeMove(from, FirstOne(toBB), Knight, Empty)
					count++
				}
			case Rook:
				for toBB = RookAttacks(from, allPieces) &^ allPieces &^ checksR; toBB != 0; toBB &= toBB - 1 {
					ml[count].Move = makeMove(from, FirstOne(toBB), Rook, Empty)
					count++
				}
			case Pawn:
				to = from + forward
				if (allPieces&SquareMask[to]) == 0 &&
					Rank(from) != promotionRank &&
					(SquareMask[to]&pawnChecks) == 0 {
					ml[count].Move = makePawnMove(from, to, Empty, Empty)
					count++
				}
			}
		}
	}

	for fromBB = ownPieces[Knight]; fromBB != 0; fromBB &= fromBB - 1 {
		from = FirstOne(fromBB)
		for toBB = KnightAttacks[from] & (opp | checksN); toBB != 0; toBB &= toBB - 1 {
			to = FirstOne(toBB)
			ml[count].Move = makeMove(from, to, Knight, p.WhatPiece(to))
			count++
		}
	}

	for fromBB = ownPieces[Bishop]; fromBB != 0; fromBB &= fromBB - 1 {
		from = FirstOne(fromBB)
		for toBB = BishopAttacks(from, allPieces) & (opp | checksB); toBB != 0; toBB &= toBB - 1 {
			to = FirstOne(toBB)
			ml[count].Move = makeMove(from, to, Bishop, p.WhatPiece(to))
			count++
		}
	}

	for fromBB = ownPieces[Rook]; fromBB != 0; fromBB &= fromBB - 1 {
		from = FirstOne(fromBB)
		for toBB = RookAttacks(from, allPieces) & (opp | checksR); toBB != 0; toBB &= toBB - 1 {
			to = FirstOne(toBB)
			ml[count].Move = makeMove(from, to, Rook, p.WhatPiece(to))
			count++
		}
	}

	for fromBB = ownPieces[Queen]; fromBB != 0; fromBB &= fromBB - 1 {
		from = FirstOne(fromBB)
		for toBB = QueenAttacks(from, allPieces) & (opp | checksQ); toBB != 0; toBB &= toBB - 1 {
			to = FirstOne(toBB)
			ml[count].Move = makeMove(from, to, Queen, p.WhatPiece(to))
			count++
		}
	}

	{
		from = p.KingSquare(side)
		for toBB = KingAttacks[from] & opp; toBB != 0; toBB &= toBB - 1 {
			to = FirstOne(toBB)
			ml[count].Move = makeMove(from, to, King, p.WhatPiece(to))
			count++
		}
	}

	return ml[:count]
}

// IsLegal tells whether a move produced by GenerateMoves or GenerateCaptures
// keeps the own king safe. pinned must be p.Pinned().
func (p *Position) IsLegal(move Move, pinned uint64) bool {
	var side = p.SideToMove
	var from = move.From()
	var to = move.To()
	var kingSq = p.KingSquare(side)

	if move.IsCastle() {
		// GenerateMoves already checked the king's path
		return true
	}
	if move.MovingPiece() == King {
		return !p.isAttackedBySide(to, side^1, p.All^SquareMask[from])
	}
	if move.Kind() == KindEnPassant {
		var victim = to + let(side == SideWhite, -8, 8)
		var occ = p.All ^ SquareMask[from] ^ SquareMask[victim] ^ SquareMask[to]
		var enemy = p.Colours[side^1] &^ SquareMask[victim]
		return (p.AttackersTo(kingSq, occ) & enemy) == 0
	}
	if p.Checkers != 0 {
		if MoreThanOne(p.Checkers) {
			return false
		}
		var evasions = p.Checkers | betweenMask[FirstOne(p.Checkers)][kingSq]
		if (SquareMask[to] & evasions) == 0 {
			return false
		}
	}
	return (pinned&SquareMask[from]) == 0 || (lineMask[from][kingSq]&SquareMask[to]) != 0
}

// LegalMoves writes the legal moves into ml.
func (p *Position) LegalMoves(ml []OrderedMove) []OrderedMove {
	var pinned = p.Pinned()
	var count = 0
	for _, om := range p.GenerateMoves(ml) {
		if p.IsLegal(om.Move, pinned) {
			ml[count] = om
			count++
		}
	}
	return ml[:count]
}

func (p *Position) GenerateLegalMoves() []Move {
	var buffer [MaxMoves]OrderedMove
	var legal = p.LegalMoves(buffer[:])
	var result = make([]Move, len(legal))
	for i := range legal {
		result[i] = legal[i].Move
	}
	return result
}

func (p *Position) HasLegalMoves() bool {
	var buffer [MaxMoves]OrderedMove
	var pinned = p.Pinned()
	for _, om := range p.GenerateMoves(buffer[:]) {
		if p.IsLegal(om.Move, pinned) {
			return true
		}
	}
	return false
}

func (p *Position) IsCheckmate() bool {
	return p.IsCheck() && !p.HasLegalMoves()
}

func (p *Position) IsStalemate() bool {
	return !p.IsCheck() && !p.HasLegalMoves()
}

// GameStatus reports the outcome decided by the position alone.
// Repetitions need the game history and are left to the caller.
func (p *Position) GameStatus() GameStatus {
	if !p.HasLegalMoves() {
		if p.IsCheck() {
			return StatusCheckmate
		}
		return StatusStalemate
	}
	if p.Rule50 >= 100 {
		return StatusFiftyMoveRule
	}
	if p.IsInsufficientMaterial() {
		return StatusInsufficientMaterial
	}
	return StatusOngoing
}
