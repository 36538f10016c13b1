package common

const (
	kiwipeteFen  = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	position3Fen = "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1"
	position4Fen = "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1"
	position5Fen = "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8"
	position6Fen = "r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10"
)

var testFENs = []string{
	InitialPositionFen,
	kiwipeteFen,
	position3Fen,
	position4Fen,
	position5Fen,
	position6Fen,
	"r3k2r/p1ppqNb1/bn2pnp1/3P4/1p2P3/2N2Q1p/PPPBBPPP/R3K2R b KQkq - 0 1",
	"rnbqkbnr/1pp1pppp/p7/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3",
	"rnbqkbnr/pppp1ppp/8/8/P3pP2/8/1PPPP1PP/RNBQKBNR b KQkq f3 0 3",
	"8/5P1P/2k5/4b1P1/3p4/3B1K2/8/8 w - - 1 85",
	"5b2/6P1/2k5/4K3/3p4/3B4/8/8 w - - 3 92",
	"8/8/2k5/4K3/8/8/4p3/8 b - - 0 90",
	"rnbqkbnr/pp2pppp/2p5/3p4/2PP4/5N2/PP2PPPP/RNBQKB1R b KQkq c3 0 3",
	"2rr2k1/pp1q1ppp/2n1p1n1/3p4/1bPP3P/1P2RNP1/PB3P2/1BRQ2K1 b - h3 0 19",
	"r2q1rk1/pp1b1ppp/2nbp3/3p4/2PP1n2/1P3N2/PB1N1PPP/1BRQR1K1 w - - 11 14",
	// en passant capture exposes the king along the rank
	"8/8/8/K2pP2q/8/8/8/7k w - d6 0 1",
	// en passant removes the checking pawn
	"8/8/8/2k5/3Pp3/8/8/4K3 b - d3 0 1",
	// double check
	"4k3/8/8/8/8/3n4/4r3/R3K2R w KQ - 0 1",
}
