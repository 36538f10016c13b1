package eval

import "fmt"

// Score keeps the middlegame and endgame halves in one int64.
type Score int64

func (s Score) Middle() int {
	return int(int32((s + 1<<31) >> 32))
}

func (s Score) End() int {
	return int(int32(s))
}

func S(middle, end int) Score {
	return Score(middle)<<32 + Score(end)
}

func (s Score) String() string {
	return fmt.Sprintf("Score(%d, %d)", s.Middle(), s.End())
}
