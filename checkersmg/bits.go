package checkersmg

import "math/bits"

// The board is packed into the low 36 bits of a uint64. Each group of nine
// bits holds two rows of four playable squares followed by one guard bit, so
// a diagonal step is always a shift by 4 (right) or 5 (left) and a shift can
// never wrap from one edge of the board onto the other.
const (
	numBits = 36

	validSquares uint64 = 0x7FBFDFEFF
	guardBits    uint64 = 0x804020100

	blackStart uint64 = 0x1EFF      // squares 1-12
	whiteStart uint64 = 0x7FBC00000 // squares 21-32

	blackKingRow uint64 = 0x780000000 // squares 29-32
	whiteKingRow uint64 = 0xF         // squares 1-4
)

// direction is one of the four diagonal directions. Forward directions point
// toward higher bits (Black's men), backward ones toward lower bits.
type direction struct {
	shift   uint
	forward bool
}

var (
	rightForward  = direction{shift: 4, forward: true}
	leftForward   = direction{shift: 5, forward: true}
	rightBackward = direction{shift: 4, forward: false}
	leftBackward  = direction{shift: 5, forward: false}
)

// directions lists the four diagonals in generation order.
var directions = [4]direction{rightForward, leftForward, rightBackward, leftBackward}

// toward shifts mask n steps along d.
func (d direction) toward(mask uint64, n uint) uint64 {
	if d.forward {
		return mask << (d.shift * n)
	}
	return mask >> (d.shift * n)
}

// back shifts mask n steps against d.
func (d direction) back(mask uint64, n uint) uint64 {
	if d.forward {
		return mask >> (d.shift * n)
	}
	return mask << (d.shift * n)
}

// movers picks the mover set that can travel along d.
func (d direction) movers(forward, backward uint64) uint64 {
	if d.forward {
		return forward
	}
	return backward
}

// stepSources returns the squares of movers whose neighbour along d is empty.
func (d direction) stepSources(empty, movers uint64) uint64 {
	return d.back(empty, 1) & movers
}

// jumpSources returns the squares of movers that can capture an opposing
// piece along d and land on an empty square.
func (d direction) jumpSources(empty, opp, movers uint64) uint64 {
	return d.back(empty, 2) & d.back(opp, 1) & movers
}

// target returns the square reached from sq after n steps along d.
func (d direction) target(sq Square, n uint) Square {
	if d.forward {
		return sq + Square(d.shift*n)
	}
	return sq - Square(d.shift*n)
}

// origin returns the square n steps before sq along d.
func (d direction) origin(sq Square, n uint) Square {
	if d.forward {
		return sq - Square(d.shift*n)
	}
	return sq + Square(d.shift*n)
}

// adjacency returns, per direction, the squares whose neighbour along that
// direction is in set.
func adjacency(set uint64) [4]uint64 {
	var out [4]uint64
	for i, d := range directions {
		out[i] = d.back(set, 1) & validSquares
	}
	return out
}

// WithNeighbours returns the squares of of that have at least k diagonal
// neighbours in set. Off-board neighbours never count.
func WithNeighbours(of, set uint64, k int) uint64 {
	adj := adjacency(set)
	var out uint64
	for rest := of & validSquares; rest != 0; {
		sq := popLSB(&rest)
		b := bit(sq)
		n := 0
		for _, m := range adj {
			if m&b != 0 {
				n++
			}
		}
		if n >= k {
			out |= b
		}
	}
	return out
}

// DiagonalRuns counts the strings of three squares of set lying next to each
// other on one diagonal. Longer strings count once per window.
func DiagonalRuns(set uint64) int {
	n := 0
	for _, d := range directions[:2] {
		n += popCount(set & d.back(set, 1) & d.back(set, 2))
	}
	return n
}

// Flanked returns the squares of set whose two neighbours on at least one
// diagonal line are both in open.
func Flanked(set, open uint64) uint64 {
	var out uint64
	for _, s := range [2]uint{4, 5} {
		out |= set & (open << s) & (open >> s)
	}
	return out
}

func bit(sq Square) uint64 { return uint64(1) << uint(sq) }

// popLSB removes and returns the lowest set square of mask.
func popLSB(mask *uint64) Square {
	sq := bits.TrailingZeros64(*mask)
	*mask &= *mask - 1
	return Square(sq)
}

func popCount(mask uint64) int { return bits.OnesCount64(mask) }
