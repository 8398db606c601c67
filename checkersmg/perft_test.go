package checkersmg

import (
	"context"
	"testing"
)

var startPerft = []uint64{1, 7, 49, 302, 1469}

func TestPerftStartPosition(t *testing.T) {
	b := NewGame()
	for depth, want := range startPerft {
		if got := Perft(b, depth); got != want {
			t.Fatalf("perft(%d) = %d, want %d", depth, got, want)
		}
	}
}

func TestPerftDivideSumsToPerft(t *testing.T) {
	b := NewGame()
	div := PerftDivide(b, 4)
	if len(div) != 7 {
		t.Fatalf("expected 7 root moves, got %d", len(div))
	}
	var sum uint64
	for _, n := range div {
		sum += n
	}
	if sum != startPerft[4] {
		t.Fatalf("divide sums to %d, want %d", sum, startPerft[4])
	}

	par, err := PerftParallel(context.Background(), b, 4, 3)
	if err != nil {
		t.Fatalf("parallel perft: %v", err)
	}
	for m, n := range div {
		if par[m] != n {
			t.Fatalf("move %s: parallel %d, sequential %d", m, par[m], n)
		}
	}
}

func TestPerftCountsChainJumps(t *testing.T) {
	b, err := ParseFEN("B:W18,26,1:B14")
	if err != nil {
		t.Fatalf("parse FEN: %v", err)
	}
	// 14x23, then the forced 23x30.
	if got := Perft(b, 2); got != 1 {
		t.Fatalf("perft(2) = %d, want 1", got)
	}
}

func BenchmarkPerft5(b *testing.B) {
	board := NewGame()
	for i := 0; i < b.N; i++ {
		Perft(board, 5)
	}
}
