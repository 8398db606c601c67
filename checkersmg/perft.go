package checkersmg

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Perft counts the move sequences of the given length from b. Every legal
// move is one ply, including each jump of a capture chain.
func Perft(b *Board, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	moves := b.LegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		next := b.Peek(m)
		nodes += Perft(&next, depth-1)
	}
	return nodes
}

// PerftDivide returns the perft count below each legal root move.
func PerftDivide(b *Board, depth int) map[Move]uint64 {
	result := make(map[Move]uint64)
	if depth <= 0 {
		return result
	}
	for _, m := range b.LegalMoves() {
		next := b.Peek(m)
		result[m] = Perft(&next, depth-1)
	}
	return result
}

// PerftParallel is PerftDivide with one goroutine per root move, bounded by
// workers.
func PerftParallel(ctx context.Context, b *Board, depth, workers int) (map[Move]uint64, error) {
	result := make(map[Move]uint64)
	if depth <= 0 {
		return result, nil
	}
	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for _, m := range b.LegalMoves() {
		m := m
		next := b.Peek(m)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			n := Perft(&next, depth-1)
			mu.Lock()
			result[m] = n
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}
