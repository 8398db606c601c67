package engine

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"lukechampine.com/frand"

	cm "checkers-engine/checkersmg"
)

// minimax is an unpruned reference for the value of cur, reached from prev.
func minimax(e *Evaluator, prev, cur *cm.Board, depth int) int64 {
	if depth == 0 || cur.IsOver() {
		s := e.Score(prev, cur)
		if cur.Active() != prev.Active() {
			s = -s
		}
		return s
	}
	best := -Infinity
	for _, m := range cur.LegalMoves() {
		next := cur.Peek(m)
		var v int64
		if next.Active() == cur.Active() {
			v = minimax(e, cur, &next, depth)
		} else {
			v = -minimax(e, cur, &next, depth-1)
		}
		best = Max(best, v)
	}
	return best
}

func rootValues(e *Evaluator, b *cm.Board, depth int) []int64 {
	var out []int64
	for _, m := range b.LegalMoves() {
		next := b.Peek(m)
		if next.Active() == b.Active() {
			out = append(out, minimax(e, b, &next, depth))
		} else {
			out = append(out, -minimax(e, b, &next, depth-1))
		}
	}
	return out
}

// testPositions returns the start position and a few positions reached by
// seeded random play.
func testPositions(t *testing.T) []*cm.Board {
	t.Helper()
	out := []*cm.Board{cm.NewGame()}
	seed := make([]byte, 32)
	for g := 0; g < 3; g++ {
		seed[0] = byte(g + 1)
		rng := frand.NewCustom(seed, 1024, 12)
		b := cm.NewGame()
		for ply := 0; ply < 12+6*g && !b.IsOver(); ply++ {
			moves := b.LegalMoves()
			b.MakeMove(moves[rng.Intn(len(moves))])
		}
		if !b.IsOver() {
			out = append(out, b)
		}
	}
	return out
}

func TestDepthZeroPlaysFirstMove(t *testing.T) {
	s := NewSearcher(newTestEvaluator())
	m, err := s.ChooseMove(cm.NewGame(), 0)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if m.String() != "9-13" {
		t.Fatalf("depth 0 chose %s, want 9-13", m)
	}
}

func TestDepthOneMaximisesScore(t *testing.T) {
	e := newTestEvaluator()
	ref := newTestEvaluator()
	for _, b := range testPositions(t) {
		// Captures may extend into chains, which are searched deeper.
		if len(b.Jumps()) > 0 {
			continue
		}
		m, err := NewSearcher(e).ChooseMove(b, 1)
		if err != nil {
			t.Fatalf("%s: %v", b.ToFEN(), err)
		}
		chosen := b.Peek(m)
		want := ref.Score(b, &chosen)
		for _, o := range b.LegalMoves() {
			after := b.Peek(o)
			if s := ref.Score(b, &after); s > want {
				t.Fatalf("%s: chose %s (%d) over %s (%d)", b.ToFEN(), m, want, o, s)
			}
		}
	}
}

func TestSearchMatchesMinimax(t *testing.T) {
	for _, b := range testPositions(t) {
		for depth := 1; depth <= 3; depth++ {
			want := rootValues(newTestEvaluator(), b, depth)
			bestIdx := 0
			for i, v := range want {
				if v > want[bestIdx] {
					bestIdx = i
				}
			}

			res, err := NewSearcher(newTestEvaluator()).Search(b, depth)
			if err != nil {
				t.Fatalf("%s depth %d: %v", b.ToFEN(), depth, err)
			}
			if res.Score != want[bestIdx] || res.Best != b.LegalMoves()[bestIdx] {
				t.Fatalf("%s depth %d: got %s %d, want %s %d", b.ToFEN(), depth,
					res.Best, res.Score, b.LegalMoves()[bestIdx], want[bestIdx])
			}
			for i, r := range res.Root {
				if !r.Bound && r.Score != want[i] {
					t.Fatalf("%s depth %d: exact value of %s is %d, want %d", b.ToFEN(), depth, r.Move, r.Score, want[i])
				}
				if r.Bound && r.Score < want[i] {
					t.Fatalf("%s depth %d: bound of %s below true value", b.ToFEN(), depth, r.Move)
				}
			}
		}
	}
}

func TestParallelMatchesSequential(t *testing.T) {
	for _, b := range testPositions(t) {
		seq, err := NewSearcher(newTestEvaluator()).Search(b, 3)
		if err != nil {
			t.Fatalf("sequential: %v", err)
		}
		par, err := NewSearcher(newTestEvaluator(), WithThreads(4)).Search(b, 3)
		if err != nil {
			t.Fatalf("parallel: %v", err)
		}
		if seq.Best != par.Best || seq.Score != par.Score {
			t.Fatalf("%s: sequential %s %d, parallel %s %d", b.ToFEN(), seq.Best, seq.Score, par.Best, par.Score)
		}
		want := rootValues(newTestEvaluator(), b, 3)
		for i, r := range par.Root {
			if r.Bound || r.Score != want[i] {
				t.Fatalf("%s: parallel value of %s is %d, want exact %d", b.ToFEN(), r.Move, r.Score, want[i])
			}
		}
	}
}

func TestSearchErrors(t *testing.T) {
	s := NewSearcher(newTestEvaluator())
	if _, err := s.ChooseMove(mustFEN(t, "B:W5,6,10:B1"), 2); !errors.Is(err, ErrGameOver) {
		t.Fatalf("blocked position: got %v, want ErrGameOver", err)
	}
	if _, err := s.ChooseMove(cm.NewGame(), -1); !errors.Is(err, ErrBadDepth) {
		t.Fatalf("negative depth: got %v, want ErrBadDepth", err)
	}
	if _, err := s.ChooseMove(&cm.Board{}, 1); !errors.Is(err, cm.ErrInvalidState) {
		t.Fatalf("zero board: got %v, want ErrInvalidState", err)
	}
}

func TestSearchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for _, threads := range []int{1, 4} {
		s := NewSearcher(newTestEvaluator(), WithThreads(threads))
		if _, err := s.SearchContext(ctx, cm.NewGame(), 3); !errors.Is(err, context.Canceled) {
			t.Fatalf("threads %d: got %v, want context.Canceled", threads, err)
		}
		// The searcher stays usable after a cancelled search.
		res, err := s.Search(cm.NewGame(), 2)
		if err != nil {
			t.Fatalf("threads %d: search after cancel: %v", threads, err)
		}
		if len(res.Root) != 7 || res.Best == cm.NoMove {
			t.Fatalf("threads %d: best %s over %d root moves", threads, res.Best, len(res.Root))
		}
	}
}

func TestSearchFindsWin(t *testing.T) {
	b := mustFEN(t, "W:W22:B18")
	for depth := 1; depth <= 3; depth++ {
		res, err := NewSearcher(newTestEvaluator()).Search(b, depth)
		if err != nil {
			t.Fatalf("depth %d: %v", depth, err)
		}
		if res.Best.String() != "22x15" || res.Score != WinScore {
			t.Fatalf("depth %d: got %s %d", depth, res.Best, res.Score)
		}
	}
}

func TestSearchFollowsChain(t *testing.T) {
	b := mustFEN(t, "B:W18,26,1:B14")
	res, err := NewSearcher(newTestEvaluator()).Search(b, 1)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if got := res.PV.String(); got != "14x23 23x30" {
		t.Fatalf("pv %q, want 14x23 23x30", got)
	}
	if res.Stats.ChainExtensions == 0 {
		t.Fatalf("chain extension not counted")
	}
}

func TestSearchLeavesBoardUntouched(t *testing.T) {
	for _, b := range testPositions(t) {
		fen := b.ToFEN()
		for _, threads := range []int{1, 3} {
			if _, err := NewSearcher(newTestEvaluator(), WithThreads(threads)).ChooseMove(b, 3); err != nil {
				t.Fatalf("%s: %v", fen, err)
			}
			if b.ToFEN() != fen {
				t.Fatalf("search moved the board: %s -> %s", fen, b.ToFEN())
			}
		}
	}
}

func TestSearchStats(t *testing.T) {
	s := NewSearcher(newTestEvaluator(), WithThreads(0))
	if s.Threads() != 1 {
		t.Fatalf("threads %d, want 1", s.Threads())
	}
	res, err := s.Search(cm.NewGame(), 4)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	st := res.Stats
	if st.Nodes == 0 || st.Leaves == 0 || st.Leaves > st.Nodes || st.BetaCutoffs == 0 {
		t.Fatalf("implausible stats %+v", st)
	}
	if st.CacheHits == 0 || st.CacheHits > st.CacheLookups {
		t.Fatalf("implausible cache stats %+v", st)
	}

	var buf bytes.Buffer
	st.Dump(&buf)
	if !strings.HasPrefix(buf.String(), "info string") || !strings.Contains(buf.String(), "Nodes") {
		t.Fatalf("unexpected dump %q", buf.String())
	}

	again, err := s.Search(cm.NewGame(), 4)
	if err != nil {
		t.Fatalf("second search: %v", err)
	}
	if again.Best != res.Best || again.Score != res.Score {
		t.Fatalf("repeat search differs: %s %d vs %s %d", again.Best, again.Score, res.Best, res.Score)
	}
}

func TestPVLine(t *testing.T) {
	var child PVLine
	child.Update(mustMove(t, "23x30"), PVLine{})
	var pv PVLine
	pv.Update(mustMove(t, "14x23"), child)
	c := pv.Clone()
	pv.Clear()
	if c.String() != "14x23 23x30" || pv.String() != "" {
		t.Fatalf("clone %q, cleared %q", c, pv)
	}
}
