package checkersmg

import "fmt"

// MakeMove plays m in place without checking legality. Moves must come from
// LegalMoves (or SimpleMoves/CapturesOf when probing hypotheticals).
//
// After a jump that leaves the piece with another capture the turn does not
// pass and the piece is not crowned; crowning waits until the chain ends.
func (b *Board) MakeMove(m Move) {
	a, p := b.active, b.active.Other()
	from, to := bit(m.From()), bit(m.To())

	if m.IsJump() {
		taken := bit(m.Captured())
		b.pieces[p] &^= taken
		b.forward[p] &^= taken
		b.backward[p] &^= taken
	}

	path := from | to
	b.pieces[a] ^= path
	if b.forward[a]&from != 0 {
		b.forward[a] ^= path
	}
	if b.backward[a]&from != 0 {
		b.backward[a] ^= path
	}
	b.updateEmpty()

	if m.IsJump() && b.jumpers(a, to) != 0 {
		b.chain = to
		return
	}

	if a == Black && to&blackKingRow != 0 {
		b.backward[Black] |= to
	} else if a == White && to&whiteKingRow != 0 {
		b.forward[White] |= to
	}

	b.chain = 0
	b.active = p
}

// Peek returns the position after m, leaving b untouched.
func (b *Board) Peek(m Move) Board {
	next := *b
	next.MakeMove(m)
	return next
}

// Clone returns an independent copy of b.
func (b *Board) Clone() *Board {
	c := *b
	return &c
}

// Apply plays m after checking the board and the move. Unlike MakeMove it
// is safe to call with moves from outside the engine.
func (b *Board) Apply(m Move) error {
	if err := b.Validate(); err != nil {
		return err
	}
	for _, legal := range b.LegalMoves() {
		if legal == m {
			b.MakeMove(m)
			return nil
		}
	}
	return fmt.Errorf("%w: %s for %s", ErrIllegalMove, m, b.active)
}
