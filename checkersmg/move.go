package checkersmg

import (
	"fmt"
	"strconv"
	"strings"
)

// Square is a bit index into the packed board. Use Number for the 1..32
// notation that humans and other programs see.
type Square uint8

// NoSquare is returned where no square applies.
const NoSquare Square = 0xFF

// SquareFromNumber converts a square number 1..32 to its bit index.
func SquareFromNumber(n int) (Square, bool) {
	if n < 1 || n > 32 {
		return NoSquare, false
	}
	i := n - 1
	return Square(i + i/8), true
}

// Number returns the 1..32 square number.
func (s Square) Number() int {
	i := int(s)
	return i - i/9 + 1
}

// Valid reports whether s is one of the 32 playable squares.
func (s Square) Valid() bool {
	return s < numBits && bit(s)&validSquares != 0
}

func (s Square) String() string {
	if !s.Valid() {
		return "-"
	}
	return strconv.Itoa(s.Number())
}

// MaskOf builds a square set from square numbers. Numbers outside 1..32 are
// ignored.
func MaskOf(numbers ...int) uint64 {
	var m uint64
	for _, n := range numbers {
		if sq, ok := SquareFromNumber(n); ok {
			m |= bit(sq)
		}
	}
	return m
}

// SquaresOf lists the squares of mask in ascending order.
func SquaresOf(mask uint64) []Square {
	out := make([]Square, 0, popCount(mask))
	for rest := mask & validSquares; rest != 0; {
		out = append(out, popLSB(&rest))
	}
	return out
}

// Move encodes a move in 16 bits: origin, destination and a jump flag. The
// captured piece of a jump always sits halfway between origin and destination.
type Move uint16

const (
	moveFromShift = 0 // 6 bits
	moveToShift   = 6 // 6 bits
	moveJumpFlag  = 1 << 12
)

// NoMove is the zero Move; it is never legal.
const NoMove Move = 0

// NewMove builds a move between two squares. A two-step diagonal is a jump.
func NewMove(from, to Square) Move {
	m := Move(from&0x3F)<<moveFromShift | Move(to&0x3F)<<moveToShift
	if d := span(from, to); d == 8 || d == 10 {
		m |= moveJumpFlag
	}
	return m
}

func span(from, to Square) int {
	d := int(to) - int(from)
	if d < 0 {
		return -d
	}
	return d
}

// From returns the origin square.
func (m Move) From() Square { return Square((uint16(m) >> moveFromShift) & 0x3F) }

// To returns the destination square.
func (m Move) To() Square { return Square((uint16(m) >> moveToShift) & 0x3F) }

// IsJump reports whether the move captures.
func (m Move) IsJump() bool { return m&moveJumpFlag != 0 }

// Captured returns the square of the captured piece, or NoSquare.
func (m Move) Captured() Square {
	if !m.IsJump() {
		return NoSquare
	}
	return (m.From() + m.To()) / 2
}

// String renders the move as "11-15" or "15x22".
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}
	sep := "-"
	if m.IsJump() {
		sep = "x"
	}
	return m.From().String() + sep + m.To().String()
}

// ParseMove reads "11-15", "15x22" or "11 to 15". Whether the move is a jump
// follows from the geometry, not the separator.
func ParseMove(movestr string) (Move, error) {
	s := strings.ToLower(strings.TrimSpace(movestr))
	var parts []string
	switch {
	case strings.Contains(s, " to "):
		parts = strings.SplitN(s, " to ", 2)
	case strings.Contains(s, "x"):
		parts = strings.SplitN(s, "x", 2)
	default:
		parts = strings.SplitN(s, "-", 2)
	}
	if len(parts) != 2 {
		return NoMove, fmt.Errorf("%w: %q", ErrBadMove, movestr)
	}
	var sq [2]Square
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return NoMove, fmt.Errorf("%w: %q", ErrBadMove, movestr)
		}
		s, ok := SquareFromNumber(n)
		if !ok {
			return NoMove, fmt.Errorf("%w: square %d out of range", ErrBadMove, n)
		}
		sq[i] = s
	}
	switch span(sq[0], sq[1]) {
	case 4, 5, 8, 10:
	default:
		return NoMove, fmt.Errorf("%w: %q is not a diagonal step or jump", ErrBadMove, movestr)
	}
	return NewMove(sq[0], sq[1]), nil
}
