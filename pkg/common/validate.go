package common

// Validate checks the internal consistency of the position: disjoint piece sets,
// matching occupancy, one king per side, and that Key and Checkers match a recomputation.
func (p *Position) Validate() error {
	var all uint64
	for side := SideWhite; side <= SideBlack; side++ {
		if p.Pieces[side][Empty] != 0 {
			return invariantViolation("%s has bits on the empty slot", sideName(side))
		}
		var colour uint64
		for pt := Pawn; pt <= King; pt++ {
			if colour&p.Pieces[side][pt] != 0 || all&p.Pieces[side][pt] != 0 {
				return invariantViolation("piece sets overlap at %s",
					BitboardString((colour|all)&p.Pieces[side][pt]))
			}
			colour |= p.Pieces[side][pt]
		}
		if colour != p.Colours[side] {
			return invariantViolation("%s occupancy %s does not match its pieces %s",
				sideName(side), BitboardString(p.Colours[side]), BitboardString(colour))
		}
		all |= colour
		if n := PopCount(p.Pieces[side][King]); n != 1 {
			return invariantViolation("%s has %d kings", sideName(side), n)
		}
	}
	if all != p.All {
		return invariantViolation("occupancy %s does not match pieces %s",
			BitboardString(p.All), BitboardString(all))
	}
	if p.SideToMove != SideWhite && p.SideToMove != SideBlack {
		return invariantViolation("side to move %d", p.SideToMove)
	}
	if p.CastleRights&^AllCastleRights != 0 {
		return invariantViolation("castle rights %b", p.CastleRights)
	}
	if p.EpSquare != SquareNone && (p.EpSquare < 0 || p.EpSquare >= 64) {
		return invariantViolation("en passant square %d", p.EpSquare)
	}
	if key := p.ComputeKey(); key != p.Key {
		return invariantViolation("key %x, recomputed %x", p.Key, key)
	}
	if checkers := p.computeCheckers(); checkers != p.Checkers {
		return invariantViolation("checkers %s, recomputed %s",
			BitboardString(p.Checkers), BitboardString(checkers))
	}
	return nil
}
