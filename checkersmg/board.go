package checkersmg

import "fmt"

// Color identifies a side. Black moves first and toward higher squares.
type Color uint8

const (
	Black Color = 0
	White Color = 1
)

// Other returns the opposing side.
func (c Color) Other() Color { return c ^ 1 }

func (c Color) String() string {
	if c == Black {
		return "black"
	}
	return "white"
}

// Board is a checkers position. Kings are not a separate set: a king is a
// piece present in both its side's forward and backward mover sets. The zero
// Board is uninitialized; use NewGame, Reset or ParseFEN.
type Board struct {
	pieces   [2]uint64
	forward  [2]uint64
	backward [2]uint64
	empty    uint64
	active   Color
	chain    uint64 // landing square of a piece that must keep jumping
}

// NewGame returns the standard opening position with Black to move.
func NewGame() *Board {
	b := &Board{}
	b.Reset()
	return b
}

// Reset restores the opening position.
func (b *Board) Reset() {
	*b = Board{}
	b.forward[Black] = blackStart
	b.backward[White] = whiteStart
	b.pieces[Black] = blackStart
	b.pieces[White] = whiteStart
	b.active = Black
	b.updateEmpty()
}

func (b *Board) updateEmpty() {
	b.empty = validSquares &^ (b.pieces[Black] | b.pieces[White])
}

// Active returns the side to move.
func (b *Board) Active() Color { return b.active }

// Passive returns the side not to move.
func (b *Board) Passive() Color { return b.active.Other() }

// Pieces returns all squares held by c.
func (b *Board) Pieces(c Color) uint64 { return b.pieces[c] }

// Kings returns the kings of c.
func (b *Board) Kings(c Color) uint64 { return b.forward[c] & b.backward[c] }

// Men returns the uncrowned pieces of c.
func (b *Board) Men(c Color) uint64 { return b.pieces[c] &^ b.Kings(c) }

// Forward returns the pieces of c that may move toward higher squares.
func (b *Board) Forward(c Color) uint64 { return b.forward[c] }

// Backward returns the pieces of c that may move toward lower squares.
func (b *Board) Backward(c Color) uint64 { return b.backward[c] }

// Empty returns the unoccupied playable squares.
func (b *Board) Empty() uint64 { return b.empty }

// Counts returns the number of men and kings of c.
func (b *Board) Counts(c Color) (men, kings int) {
	return popCount(b.Men(c)), popCount(b.Kings(c))
}

// InCaptureChain reports whether the side to move is in the middle of a
// multi-jump and must continue with the same piece.
func (b *Board) InCaptureChain() bool { return b.chain != 0 }

// ChainSquare returns the square of the piece that must keep jumping, or
// NoSquare outside a capture chain.
func (b *Board) ChainSquare() Square {
	if b.chain == 0 {
		return NoSquare
	}
	c := b.chain
	return popLSB(&c)
}

// IsKing reports whether the piece on sq, of either side, is a king.
func (b *Board) IsKing(sq Square) bool {
	m := bit(sq)
	return (b.Kings(Black)|b.Kings(White))&m != 0
}

// PieceAt reports which side, if any, holds sq.
func (b *Board) PieceAt(sq Square) (Color, bool) {
	m := bit(sq)
	switch {
	case b.pieces[Black]&m != 0:
		return Black, true
	case b.pieces[White]&m != 0:
		return White, true
	}
	return Black, false
}

// Validate checks the internal consistency of the position.
func (b *Board) Validate() error {
	// A full board also has no empty squares, so look at the pieces too.
	if b.empty == 0 && b.pieces[Black]|b.pieces[White] == 0 {
		return fmt.Errorf("%w: board not initialized", ErrInvalidState)
	}
	if b.active > White {
		return fmt.Errorf("%w: side to move %d", ErrInvalidState, b.active)
	}
	for c := Black; c <= White; c++ {
		if b.pieces[c]&^validSquares != 0 || (b.forward[c]|b.backward[c])&^validSquares != 0 {
			return fmt.Errorf("%w: %s has pieces off the playable squares", ErrInvalidState, c)
		}
		if b.pieces[c] != b.forward[c]|b.backward[c] {
			return fmt.Errorf("%w: %s occupancy does not match its mover sets", ErrInvalidState, c)
		}
	}
	// Men belong to exactly one mover set, which one depends on the side.
	if b.backward[Black]&^b.forward[Black] != 0 {
		return fmt.Errorf("%w: black man moving backward", ErrInvalidState)
	}
	if b.forward[White]&^b.backward[White] != 0 {
		return fmt.Errorf("%w: white man moving forward", ErrInvalidState)
	}
	if b.pieces[Black]&b.pieces[White] != 0 {
		return fmt.Errorf("%w: square held by both sides", ErrInvalidState)
	}
	if b.empty != validSquares&^(b.pieces[Black]|b.pieces[White]) {
		return fmt.Errorf("%w: empty set out of date", ErrInvalidState)
	}
	if b.chain != 0 && (popCount(b.chain) != 1 || b.chain&b.pieces[b.active] == 0) {
		return fmt.Errorf("%w: capture chain square not held by the side to move", ErrInvalidState)
	}
	return nil
}
