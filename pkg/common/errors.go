package common

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidFEN  = errors.New("invalid fen")
	ErrInvalidMove = errors.New("invalid move text")
	ErrIllegalMove = errors.New("illegal move")
	ErrInvariant   = errors.New("position invariant violated")
)

type FenField int

const (
	FenFieldCount FenField = iota
	FenPlacement
	FenSideToMove
	FenCastling
	FenEnPassant
	FenHalfmove
	FenFullmove
	FenLegality
)

func (f FenField) String() string {
	switch f {
	case FenFieldCount:
		return "field count"
	case FenPlacement:
		return "piece placement"
	case FenSideToMove:
		return "side to move"
	case FenCastling:
		return "castling rights"
	case FenEnPassant:
		return "en passant square"
	case FenHalfmove:
		return "halfmove clock"
	case FenFullmove:
		return "fullmove number"
	case FenLegality:
		return "position"
	}
	return "unknown"
}

// FenError describes which part of a FEN string was rejected.
type FenError struct {
	Fen    string
	Field  FenField
	Value  string
	Reason string
}

func (e *FenError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid fen %q: %v: %s", e.Fen, e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid fen %q: %v %q: %s", e.Fen, e.Field, e.Value, e.Reason)
}

func (e *FenError) Unwrap() error {
	return ErrInvalidFEN
}

func invariantViolation(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvariant, fmt.Sprintf(format, args...))
}
