package checkersmg

// LegalMoves returns the moves available to the side to move. During a
// capture chain only continuation jumps of the chained piece are returned;
// otherwise any jump makes every simple move illegal. An empty result means
// the side to move has lost.
func (b *Board) LegalMoves() []Move {
	if b.chain != 0 {
		return b.appendJumps(nil, b.active, b.chain)
	}
	if moves := b.appendJumps(nil, b.active, b.pieces[b.active]); len(moves) > 0 {
		return moves
	}
	return b.SimpleMoves()
}

// Jumps returns every capture available to the side to move, ignoring any
// capture chain in progress.
func (b *Board) Jumps() []Move {
	return b.appendJumps(nil, b.active, b.pieces[b.active])
}

// JumpsFrom returns the captures available to the piece of the side to move
// standing on sq.
func (b *Board) JumpsFrom(sq Square) []Move {
	return b.appendJumps(nil, b.active, bit(sq)&b.pieces[b.active])
}

// CanJumpFrom reports whether the piece of c on sq could capture if c were
// to move.
func (b *Board) CanJumpFrom(c Color, sq Square) bool {
	return b.jumpers(c, bit(sq)) != 0
}

// SimpleMoves returns every one-step move of the side to move, whether or
// not a capture is available.
func (b *Board) SimpleMoves() []Move {
	var moves []Move
	a := b.active
	for _, d := range directions {
		src := d.stepSources(b.empty, d.movers(b.forward[a], b.backward[a]))
		for src != 0 {
			from := popLSB(&src)
			moves = append(moves, NewMove(from, d.target(from, 1)))
		}
	}
	return moves
}

// MoveDestinations returns the union of squares the side to move could
// reach with a simple move.
func (b *Board) MoveDestinations() uint64 {
	a := b.active
	var dest uint64
	for _, d := range directions {
		dest |= d.toward(d.stepSources(b.empty, d.movers(b.forward[a], b.backward[a])), 1)
	}
	return dest
}

// CapturesOf returns the jumps of the side to move that would capture the
// passive piece on sq.
func (b *Board) CapturesOf(sq Square) []Move {
	var moves []Move
	target := bit(sq) & b.pieces[b.active.Other()]
	if target == 0 {
		return nil
	}
	for _, d := range directions {
		if b.capturesAlong(d, target) {
			moves = append(moves, NewMove(d.origin(sq, 1), d.target(sq, 1)))
		}
	}
	return moves
}

// Takeable reports whether the side to move could capture the passive piece
// on sq.
func (b *Board) Takeable(sq Square) bool {
	target := bit(sq) & b.pieces[b.active.Other()]
	if target == 0 {
		return false
	}
	for _, d := range directions {
		if b.capturesAlong(d, target) {
			return true
		}
	}
	return false
}

// capturesAlong reports whether an active piece behind target along d can
// jump it onto an empty square.
func (b *Board) capturesAlong(d direction, target uint64) bool {
	a := b.active
	return d.back(target, 1)&d.movers(b.forward[a], b.backward[a]) != 0 && d.toward(target, 1)&b.empty != 0
}

// IsOver reports whether the side to move has no legal move.
func (b *Board) IsOver() bool {
	a := b.active
	if b.chain != 0 {
		return b.jumpers(a, b.chain) == 0
	}
	if b.jumpers(a, b.pieces[a]) != 0 {
		return false
	}
	for _, d := range directions {
		if d.stepSources(b.empty, d.movers(b.forward[a], b.backward[a])) != 0 {
			return false
		}
	}
	return true
}

// jumpers returns the squares of from, owned by c, that have a capture.
func (b *Board) jumpers(c Color, from uint64) uint64 {
	var out uint64
	opp := b.pieces[c.Other()]
	for _, d := range directions {
		out |= d.jumpSources(b.empty, opp, d.movers(b.forward[c], b.backward[c])&from)
	}
	return out
}

func (b *Board) appendJumps(moves []Move, c Color, from uint64) []Move {
	opp := b.pieces[c.Other()]
	for _, d := range directions {
		src := d.jumpSources(b.empty, opp, d.movers(b.forward[c], b.backward[c])&from)
		for src != 0 {
			sq := popLSB(&src)
			moves = append(moves, NewMove(sq, d.target(sq, 2)))
		}
	}
	return moves
}
