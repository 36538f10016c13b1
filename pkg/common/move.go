package common

import (
	"fmt"
	"strings"
)

// Move packs from (bits 0-5), to (6-11), moving piece (12-14),
// captured piece (15-17), promotion (18-20) and move kind (21-23).
type Move int32

const MoveEmpty = Move(0)

const (
	KindQuiet = iota
	KindDoublePawnPush
	KindCapture
	KindEnPassant
	KindKingCastle
	KindQueenCastle
	KindPromotion
	KindPromotionCapture
)

func newMove(from, to, movingPiece, capturedPiece, promotion, kind int) Move {
	return Move(from ^ (to << 6) ^ (movingPiece << 12) ^ (capturedPiece << 15) ^
		(promotion << 18) ^ (kind << 21))
}

func makeMove(from, to, movingPiece, capturedPiece int) Move {
	return newMove(from, to, movingPiece, capturedPiece, Empty,
		let(capturedPiece == Empty, KindQuiet, KindCapture))
}

func makePawnMove(from, to, capturedPiece, promotion int) Move {
	var kind int
	switch {
	case promotion != Empty && capturedPiece != Empty:
		kind = KindPromotionCapture
	case promotion != Empty:
		kind = KindPromotion
	case capturedPiece != Empty:
		kind = KindCapture
	case AbsDelta(from, to) == 16:
		kind = KindDoublePawnPush
	default:
		kind = KindQuiet
	}
	return newMove(from, to, Pawn, capturedPiece, promotion, kind)
}

func makeEnPassant(from, to int) Move {
	return newMove(from, to, Pawn, Pawn, Empty, KindEnPassant)
}

func (m Move) From() int {
	return int(m & 63)
}

func (m Move) To() int {
	return int((m >> 6) & 63)
}

func (m Move) MovingPiece() int {
	return int((m >> 12) & 7)
}

func (m Move) CapturedPiece() int {
	return int((m >> 15) & 7)
}

func (m Move) Promotion() int {
	return int((m >> 18) & 7)
}

func (m Move) Kind() int {
	return int((m >> 21) & 7)
}

func (m Move) IsCastle() bool {
	var kind = m.Kind()
	return kind == KindKingCastle || kind == KindQueenCastle
}

func (m Move) String() string {
	if m == MoveEmpty {
		return "0000"
	}
	var sPromotion = ""
	if m.Promotion() != Empty {
		sPromotion = string("nbrq"[m.Promotion()-Knight])
	}
	return SquareName(m.From()) + SquareName(m.To()) + sPromotion
}

func validMoveText(lan string) bool {
	if len(lan) != 4 && len(lan) != 5 {
		return false
	}
	if ParseSquare(lan[0:2]) == SquareNone || ParseSquare(lan[2:4]) == SquareNone {
		return false
	}
	return len(lan) == 4 || strings.IndexByte("nbrqNBRQ", lan[4]) >= 0
}

// ParseMoveLAN finds the legal move written in coordinate notation, e.g. e2e4 or e7e8q.
func (p *Position) ParseMoveLAN(lan string) (Move, error) {
	if !validMoveText(lan) {
		return MoveEmpty, fmt.Errorf("%w: %q", ErrInvalidMove, lan)
	}
	for _, mv := range p.GenerateLegalMoves() {
		if strings.EqualFold(mv.String(), lan) {
			return mv, nil
		}
	}
	return MoveEmpty, fmt.Errorf("%w: %s in %s", ErrIllegalMove, lan, p.String())
}

// MakeMoveLAN parses and plays a coordinate move.
func (p *Position) MakeMoveLAN(lan string) (UndoInfo, error) {
	var mv, err = p.ParseMoveLAN(lan)
	if err != nil {
		return UndoInfo{}, err
	}
	return p.MakeMove(mv), nil
}

// MoveToSAN writes mv in standard algebraic notation with a check or mate suffix.
func (p *Position) MoveToSAN(mv Move) string {
	var ml = p.GenerateLegalMoves()
	var san = moveToSAN(ml, mv)
	var child = *p
	child.MakeMove(mv)
	if child.IsCheck() {
		if len(child.GenerateLegalMoves()) == 0 {
			san += "#"
		} else {
			san += "+"
		}
	}
	return san
}

func moveToSAN(ml []Move, mv Move) string {
	const PieceNames = "NBRQK"
	if mv.Kind() == KindKingCastle {
		return "O-O"
	}
	if mv.Kind() == KindQueenCastle {
		return "O-O-O"
	}
	var strPiece, strCapture, strFrom, strTo, strPromotion string
	if mv.MovingPiece() != Pawn {
		strPiece = string(PieceNames[mv.MovingPiece()-Knight])
	}
	strTo = SquareName(mv.To())
	if mv.CapturedPiece() != Empty {
		strCapture = "x"
		if mv.MovingPiece() == Pawn {
			strFrom = SquareName(mv.From())[:1]
		}
	}
	if mv.Promotion() != Empty {
		strPromotion = "=" + string(PieceNames[mv.Promotion()-Knight])
	}
	var ambiguity = false
	var uniqCol = true
	var uniqRow = true
	for _, mv1 := range ml {
		if mv1.From() == mv.From() || mv1.To() != mv.To() ||
			mv1.MovingPiece() != mv.MovingPiece() || mv.MovingPiece() == Pawn {
			continue
		}
		ambiguity = true
		if File(mv1.From()) == File(mv.From()) {
			uniqCol = false
		}
		if Rank(mv1.From()) == Rank(mv.From()) {
			uniqRow = false
		}
	}
	if ambiguity {
		if uniqCol {
			strFrom = SquareName(mv.From())[:1]
		} else if uniqRow {
			strFrom = SquareName(mv.From())[1:2]
		} else {
			strFrom = SquareName(mv.From())
		}
	}
	return strPiece + strFrom + strCapture + strTo + strPromotion
}

// ParseMoveSAN accepts standard algebraic notation, ignoring check and annotation marks.
func (p *Position) ParseMoveSAN(san string) (Move, error) {
	var text = san
	if index := strings.IndexAny(text, "+#?!"); index >= 0 {
		text = text[:index]
	}
	text = strings.Replace(text, "0-0-0", "O-O-O", 1)
	text = strings.Replace(text, "0-0", "O-O", 1)
	var ml = p.GenerateLegalMoves()
	for _, mv := range ml {
		if text == moveToSAN(ml, mv) {
			return mv, nil
		}
	}
	return MoveEmpty, fmt.Errorf("%w: %s in %s", ErrIllegalMove, san, p.String())
}
