package common

// MakeMove plays a legal move in place and returns what UnmakeMove needs to take it back.
// A move that does not fit the position panics with ErrInvariant:
// it means the move generator or the caller is broken.
func (p *Position) MakeMove(move Move) UndoInfo {
	var undo = UndoInfo{
		Move:         move,
		CastleRights: p.CastleRights,
		EpSquare:     p.EpSquare,
		Rule50:       p.Rule50,
		FullMove:     p.FullMove,
		Key:          p.Key,
		Checkers:     p.Checkers,
		LastMove:     p.LastMove,
	}

	var side = p.SideToMove
	var from = move.From()
	var to = move.To()
	var movingPiece = move.MovingPiece()
	var capturedPiece = move.CapturedPiece()

	if p.Pieces[side][movingPiece]&SquareMask[from] == 0 || movingPiece == Empty {
		panic(invariantViolation("move %v: no %v on %v in %v",
			move, movingPiece, SquareName(from), p))
	}
	if p.Colours[side]&SquareMask[to] != 0 {
		panic(invariantViolation("move %v captures own piece in %v", move, p))
	}
	if !p.isPlayable(move) {
		panic(invariantViolation("move %v is not playable in %v", move, p))
	}

	p.Key ^= sideKey
	if p.EpSquare != SquareNone {
		p.Key ^= enpassantKey[File(p.EpSquare)]
		p.EpSquare = SquareNone
	}

	var castleRights = p.CastleRights & castleMask[from] & castleMask[to]
	p.Key ^= castlingKey[castleRights^p.CastleRights]
	p.CastleRights = castleRights

	if movingPiece == Pawn || capturedPiece != Empty {
		p.Rule50 = 0
	} else {
		p.Rule50++
	}
	if side == SideBlack {
		p.FullMove++
	}

	switch move.Kind() {
	case KindEnPassant:
		var victim = to + let(side == SideWhite, -8, 8)
		if undo.EpSquare != to || p.Pieces[side^1][Pawn]&SquareMask[victim] == 0 {
			panic(invariantViolation("move %v: bad en passant in %v", move, p))
		}
		p.xorPiece(Pawn, side^1, victim)
		p.movePiece(Pawn, side, from, to)
	case KindKingCastle, KindQueenCastle:
		var rookFrom, rookTo = castlingRookSquares(to)
		p.movePiece(King, side, from, to)
		p.movePiece(Rook, side, rookFrom, rookTo)
	default:
		if capturedPiece != Empty {
			if p.Pieces[side^1][capturedPiece]&SquareMask[to] == 0 {
				panic(invariantViolation("move %v: no %v to capture on %v in %v",
					move, capturedPiece, SquareName(to), p))
			}
			p.xorPiece(capturedPiece, side^1, to)
		} else if p.All&SquareMask[to] != 0 {
			panic(invariantViolation("move %v: target %v is occupied in %v", move, SquareName(to), p))
		}
		if promotion := move.Promotion(); promotion != Empty {
			p.xorPiece(Pawn, side, from)
			p.xorPiece(promotion, side, to)
		} else {
			p.movePiece(movingPiece, side, from, to)
		}
		if move.Kind() == KindDoublePawnPush {
			p.EpSquare = (from + to) / 2
			p.Key ^= enpassantKey[File(p.EpSquare)]
		}
	}

	p.SideToMove = side ^ 1
	if !p.isLegal() {
		panic(invariantViolation("move %v leaves the king in check in %v", move, p))
	}
	p.Checkers = p.computeCheckers()
	p.LastMove = move
	return undo
}

// UnmakeMove restores the position exactly as it was before MakeMove returned undo.
func (p *Position) UnmakeMove(undo UndoInfo) {
	var move = undo.Move
	var side = p.SideToMove ^ 1
	var from = move.From()
	var to = move.To()

	switch move.Kind() {
	case KindEnPassant:
		p.movePiece(Pawn, side, to, from)
		p.xorPiece(Pawn, side^1, to+let(side == SideWhite, -8, 8))
	case KindKingCastle, KindQueenCastle:
		var rookFrom, rookTo = castlingRookSquares(to)
		p.movePiece(Rook, side, rookTo, rookFrom)
		p.movePiece(King, side, to, from)
	default:
		if promotion := move.Promotion(); promotion != Empty {
			p.xorPiece(promotion, side, to)
			p.xorPiece(Pawn, side, from)
		} else {
			p.movePiece(move.MovingPiece(), side, to, from)
		}
		if captured := move.CapturedPiece(); captured != Empty {
			p.xorPiece(captured, side^1, to)
		}
	}

	p.SideToMove = side
	p.CastleRights = undo.CastleRights
	p.EpSquare = undo.EpSquare
	p.Rule50 = undo.Rule50
	p.FullMove = undo.FullMove
	p.Key = undo.Key
	p.Checkers = undo.Checkers
	p.LastMove = undo.LastMove
}

// MakeNullMove passes the turn. The side to move must not be in check.
func (p *Position) MakeNullMove() UndoInfo {
	var undo = UndoInfo{
		Move:         MoveEmpty,
		CastleRights: p.CastleRights,
		EpSquare:     p.EpSquare,
		Rule50:       p.Rule50,
		FullMove:     p.FullMove,
		Key:          p.Key,
		Checkers:     p.Checkers,
		LastMove:     p.LastMove,
	}
	if p.Checkers != 0 {
		panic(invariantViolation("null move in check in %v", p))
	}
	p.Key ^= sideKey
	if p.EpSquare != SquareNone {
		p.Key ^= enpassantKey[File(p.EpSquare)]
		p.EpSquare = SquareNone
	}
	p.Rule50++
	if p.SideToMove == SideBlack {
		p.FullMove++
	}
	p.SideToMove ^= 1
	p.Checkers = 0
	p.LastMove = MoveEmpty
	return undo
}

func (p *Position) UnmakeNullMove(undo UndoInfo) {
	p.SideToMove ^= 1
	p.EpSquare = undo.EpSquare
	p.Rule50 = undo.Rule50
	p.FullMove = undo.FullMove
	p.Key = undo.Key
	p.Checkers = undo.Checkers
	p.LastMove = undo.LastMove
}

func castlingRookSquares(kingTo int) (rookFrom, rookTo int) {
	switch kingTo {
	case SquareG1:
		return SquareH1, SquareF1
	case SquareC1:
		return SquareA1, SquareD1
	case SquareG8:
		return SquareH8, SquareF8
	case SquareC8:
		return SquareA8, SquareD8
	}
	panic(invariantViolation("castling to %v", SquareName(kingTo)))
}

// isPlayable tells whether the piece on the origin square can make move by the
// rules of movement, ignoring whether the own king is left in check.
// The move kind must agree with the captured and promotion pieces.
func (p *Position) isPlayable(move Move) bool {
	var from = move.From()
	var to = move.To()
	var kind = move.Kind()
	var captured = move.CapturedPiece()
	switch move.MovingPiece() {
	case Pawn:
		return p.isPlayablePawnMove(move)
	case King:
		if kind == KindKingCastle || kind == KindQueenCastle {
			return p.canCastle(move)
		}
	}
	if move.Promotion() != Empty || kind != let(captured == Empty, KindQuiet, KindCapture) {
		return false
	}
	var targets uint64
	switch move.MovingPiece() {
	case Knight:
		targets = KnightAttacks[from]
	case Bishop:
		targets = BishopAttacks(from, p.All)
	case Rook:
		targets = RookAttacks(from, p.All)
	case Queen:
		targets = QueenAttacks(from, p.All)
	case King:
		targets = KingAttacks[from]
	}
	return targets&SquareMask[to] != 0
}

func (p *Position) isPlayablePawnMove(move Move) bool {
	var side = p.SideToMove
	var from = move.From()
	var to = move.To()
	var kind = move.Kind()
	var promotion = move.Promotion()
	var forward = let(side == SideWhite, 8, -8)

	var isPromotionKind = kind == KindPromotion || kind == KindPromotionCapture
	if isPromotionKind != (promotion != Empty) ||
		(RelativeRank(side, to) == Rank8) != (promotion != Empty) ||
		promotion == Pawn || promotion == King {
		return false
	}
	var isCaptureKind = kind == KindCapture || kind == KindPromotionCapture || kind == KindEnPassant
	if isCaptureKind != (move.CapturedPiece() != Empty) {
		return false
	}
	switch kind {
	case KindQuiet, KindPromotion:
		return to == from+forward
	case KindDoublePawnPush:
		return RelativeRank(side, from) == Rank2 && to == from+2*forward &&
			p.All&SquareMask[from+forward] == 0
	case KindCapture, KindPromotionCapture:
		return PawnAttacks(from, side)&SquareMask[to] != 0
	case KindEnPassant:
		return move.CapturedPiece() == Pawn && PawnAttacks(from, side)&SquareMask[to] != 0
	}
	return false
}

// canCastle checks the right, the king and rook squares, the empty path and
// that the king does not start on, cross or land on an attacked square.
func (p *Position) canCastle(move Move) bool {
	var side = p.SideToMove
	var from = move.From()
	var to = move.To()
	var right int
	switch {
	case side == SideWhite && move.Kind() == KindKingCastle && to == SquareG1:
		right = WhiteKingSide
	case side == SideWhite && move.Kind() == KindQueenCastle && to == SquareC1:
		right = WhiteQueenSide
	case side == SideBlack && move.Kind() == KindKingCastle && to == SquareG8:
		right = BlackKingSide
	case side == SideBlack && move.Kind() == KindQueenCastle && to == SquareC8:
		right = BlackQueenSide
	default:
		return false
	}
	if p.CastleRights&right == 0 || move.CapturedPiece() != Empty ||
		from != let(side == SideWhite, SquareE1, SquareE8) {
		return false
	}
	var rookFrom, _ = castlingRookSquares(to)
	if p.Pieces[side][Rook]&SquareMask[rookFrom] == 0 || BetweenMask(from, rookFrom)&p.All != 0 {
		return false
	}
	var enemy = side ^ 1
	return !p.IsAttackedBy(from, enemy) &&
		!p.IsAttackedBy((from+to)/2, enemy) &&
		!p.IsAttackedBy(to, enemy)
}
