package common

const (
	SideWhite = iota
	SideBlack
)

const (
	WhiteKingSide = 1 << iota
	WhiteQueenSide
	BlackKingSide
	BlackQueenSide
)

const AllCastleRights = WhiteKingSide | WhiteQueenSide | BlackKingSide | BlackQueenSide

const InitialPositionFen = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

const (
	Empty int = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

const (
	MaxMoves = 256
)

// Position is indexed by side then piece type. Pieces[side][Empty] is always zero.
type Position struct {
	Pieces       [2][King + 1]uint64
	Colours      [2]uint64
	All          uint64
	Checkers     uint64
	SideToMove   int
	CastleRights int
	EpSquare     int
	Rule50       int
	FullMove     int
	Key          uint64
	LastMove     Move
}

// UndoInfo holds everything MakeMove changes besides the piece placement.
type UndoInfo struct {
	Move         Move
	CastleRights int
	EpSquare     int
	Rule50       int
	FullMove     int
	Key          uint64
	Checkers     uint64
	LastMove     Move
}

type OrderedMove struct {
	Move Move
	Key  int
}

type LimitsType struct {
	Infinite       bool
	WhiteTime      int
	BlackTime      int
	WhiteIncrement int
	BlackIncrement int
	MoveTime       int
	MovesToGo      int
	Depth          int
	Nodes          int
	Mate           int
}

type SearchParams struct {
	// Positions is the game history, the last element is the position to search.
	Positions []Position
	Limits    LimitsType
	Progress  func(si SearchInfo)
}

type SearchInfo struct {
	Score    UciScore
	Depth    int
	Nodes    int64
	Time     int64
	MainLine []Move
}

func (si *SearchInfo) BestMove() Move {
	if len(si.MainLine) == 0 {
		return MoveEmpty
	}
	return si.MainLine[0]
}

type UciScore struct {
	Centipawns int
	Mate       int
}

type GameStatus int

const (
	StatusOngoing GameStatus = iota
	StatusCheckmate
	StatusStalemate
	StatusFiftyMoveRule
	StatusInsufficientMaterial
)

func (s GameStatus) String() string {
	switch s {
	case StatusCheckmate:
		return "checkmate"
	case StatusStalemate:
		return "stalemate"
	case StatusFiftyMoveRule:
		return "draw by fifty-move rule"
	case StatusInsufficientMaterial:
		return "draw by insufficient material"
	}
	return "ongoing"
}
