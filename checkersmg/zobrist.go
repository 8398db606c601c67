package checkersmg

import "math/rand"

// Zobrist keys for men and kings of each side on each bit, the side to move
// and the square of a chained piece.
var zobristMan [2][numBits]uint64
var zobristKing [2][numBits]uint64
var zobristChain [numBits]uint64
var zobristSide uint64

func init() {
	initZobrist()
}

func initZobrist() {
	// Fixed seed so hashes are stable between runs and in tests.
	rnd := rand.New(rand.NewSource(0xC0DE))

	for c := 0; c < 2; c++ {
		for sq := 0; sq < numBits; sq++ {
			zobristMan[c][sq] = rnd.Uint64()
			zobristKing[c][sq] = rnd.Uint64()
		}
	}
	for sq := 0; sq < numBits; sq++ {
		zobristChain[sq] = rnd.Uint64()
	}
	zobristSide = rnd.Uint64()
}

// Hash computes the Zobrist key of the position.
func (b *Board) Hash() uint64 {
	var key uint64
	for c := Black; c <= White; c++ {
		for men := b.Men(c); men != 0; {
			key ^= zobristMan[c][popLSB(&men)]
		}
		for kings := b.Kings(c); kings != 0; {
			key ^= zobristKing[c][popLSB(&kings)]
		}
	}
	if b.active == White {
		key ^= zobristSide
	}
	if b.chain != 0 {
		key ^= zobristChain[b.ChainSquare()]
	}
	return key
}
