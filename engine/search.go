package engine

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	cm "checkers-engine/checkersmg"
)

// PVLine is a principal variation.
type PVLine struct {
	Moves []cm.Move
}

// Clear the principal variation line.
func (pv *PVLine) Clear() {
	pv.Moves = pv.Moves[:0]
}

// Update the principal variation line with a new best move, followed by the
// line of best play after it.
func (pv *PVLine) Update(m cm.Move, child PVLine) {
	pv.Moves = append(pv.Moves[:0], m)
	pv.Moves = append(pv.Moves, child.Moves...)
}

// Clone returns an independent copy.
func (pv PVLine) Clone() PVLine {
	return PVLine{Moves: append([]cm.Move(nil), pv.Moves...)}
}

func (pv PVLine) String() string {
	parts := make([]string, len(pv.Moves))
	for i, m := range pv.Moves {
		parts[i] = m.String()
	}
	return strings.Join(parts, " ")
}

// RootResult is the search value of one root move from the mover's point of
// view. With a sequential search a move that could not beat an earlier one
// only gets an upper bound.
type RootResult struct {
	Move  cm.Move
	Score int64
	Bound bool
	PV    PVLine
}

// SearchResult is the outcome of a search.
type SearchResult struct {
	Best  cm.Move
	Score int64
	Depth int
	PV    PVLine
	Root  []RootResult
	Stats SearchStats
	Time  time.Duration
}

// Searcher picks moves with a fixed-depth negamax alpha-beta search. A
// Searcher is not safe for concurrent use; with more than one thread it runs
// the root moves on its own workers.
type Searcher struct {
	eval    *Evaluator
	threads int
	log     zerolog.Logger
	workers []*searchWorker
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithThreads sets the number of root workers. Values below one mean one.
func WithThreads(n int) Option {
	return func(s *Searcher) { s.threads = Max(n, 1) }
}

// WithLogger sets the logger for search diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Searcher) { s.log = l }
}

// NewSearcher returns a single-threaded searcher over eval.
func NewSearcher(eval *Evaluator, opts ...Option) *Searcher {
	s := &Searcher{eval: eval, threads: 1, log: zerolog.Nop()}
	for _, o := range opts {
		o(s)
	}
	s.workers = []*searchWorker{{eval: eval}}
	return s
}

// Threads returns the number of root workers.
func (s *Searcher) Threads() int { return s.threads }

// Evaluator returns the evaluator of the main worker.
func (s *Searcher) Evaluator() *Evaluator { return s.eval }

// ChooseMove returns the move with the best search value at depth. Ties go
// to the move generated first. Depth zero returns the first legal move.
func (s *Searcher) ChooseMove(b *cm.Board, depth int) (cm.Move, error) {
	res, err := s.Search(b, depth)
	if err != nil {
		return cm.NoMove, err
	}
	return res.Best, nil
}

// Search runs a full search of b at depth and reports every root move.
func (s *Searcher) Search(b *cm.Board, depth int) (SearchResult, error) {
	return s.SearchContext(context.Background(), b, depth)
}

// SearchContext is Search with cancellation checked between root moves.
func (s *Searcher) SearchContext(ctx context.Context, b *cm.Board, depth int) (SearchResult, error) {
	if depth < 0 {
		return SearchResult{}, fmt.Errorf("%w: %d", ErrBadDepth, depth)
	}
	if err := b.Validate(); err != nil {
		return SearchResult{}, err
	}
	moves := b.LegalMoves()
	if len(moves) == 0 {
		return SearchResult{}, fmt.Errorf("%w: %s has no moves", ErrGameOver, b.Active())
	}

	start := time.Now()
	res := SearchResult{Depth: depth}
	if depth == 0 {
		next := b.Peek(moves[0])
		res.Best = moves[0]
		res.Score = s.eval.Score(b, &next)
		res.PV.Moves = []cm.Move{moves[0]}
		res.Root = []RootResult{{Move: moves[0], Score: res.Score, PV: res.PV.Clone()}}
		res.Time = time.Since(start)
		return res, nil
	}

	var err error
	if s.threads > 1 && len(moves) > 1 {
		res.Root, err = s.searchParallel(ctx, b, moves, depth)
	} else {
		res.Root, err = s.searchSequential(ctx, b, moves, depth)
	}
	for _, w := range s.workers {
		res.Stats.Add(w.collect())
	}
	if err != nil {
		return SearchResult{}, err
	}

	best := 0
	for i, r := range res.Root {
		if r.Score > res.Root[best].Score {
			best = i
		}
	}
	res.Best = res.Root[best].Move
	res.Score = res.Root[best].Score
	res.PV = res.Root[best].PV
	res.Time = time.Since(start)

	s.log.Debug().
		Int("depth", depth).
		Str("best", res.Best.String()).
		Int64("score", res.Score).
		Str("pv", res.PV.String()).
		Dur("time", res.Time).
		Msg("search-done")
	res.Stats.log(s.log)
	return res, nil
}

func (s *Searcher) searchSequential(ctx context.Context, b *cm.Board, moves []cm.Move, depth int) ([]RootResult, error) {
	w := s.workers[0]
	out := make([]RootResult, len(moves))
	alpha := -Infinity
	for i, m := range moves {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		val, pv := w.searchRoot(b, m, depth, alpha)
		out[i] = RootResult{Move: m, Score: val, Bound: i > 0 && val <= alpha, PV: pv}
		alpha = Max(alpha, val)
	}
	return out, nil
}

// searchParallel gives every root move a full window so the values do not
// depend on which worker finishes first. Workers stop taking moves once ctx
// is done.
func (s *Searcher) searchParallel(ctx context.Context, b *cm.Board, moves []cm.Move, depth int) ([]RootResult, error) {
	for len(s.workers) < s.threads {
		s.workers = append(s.workers, &searchWorker{eval: s.eval.Fork()})
	}
	out := make([]RootResult, len(moves))
	var next atomic.Int64
	g, ctx := errgroup.WithContext(ctx)
	for t := 0; t < s.threads; t++ {
		w := s.workers[t]
		t := t
		root := *b
		g.Go(func() error {
			for {
				if err := ctx.Err(); err != nil {
					return err
				}
				i := int(next.Add(1) - 1)
				if i >= len(moves) {
					return nil
				}
				val, pv := w.searchRoot(&root, moves[i], depth, -Infinity)
				out[i] = RootResult{Move: moves[i], Score: val, PV: pv}
				s.log.Debug().Int("thread", t).Str("move", moves[i].String()).Int64("score", val).Msg("root-move")
			}
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// searchWorker holds the per-goroutine search state.
type searchWorker struct {
	eval    *Evaluator
	killers KillerTable
	stats   SearchStats
}

// collect returns and resets the worker's counters.
func (w *searchWorker) collect() SearchStats {
	st := w.stats
	st.CacheLookups, st.CacheHits = w.eval.cache.Lookups, w.eval.cache.Hits
	w.eval.cache.Lookups, w.eval.cache.Hits = 0, 0
	w.stats = SearchStats{}
	return st
}

// searchRoot returns the value of root move m for the side to move in b.
func (w *searchWorker) searchRoot(b *cm.Board, m cm.Move, depth int, alpha int64) (int64, PVLine) {
	next := b.Peek(m)
	var childPV PVLine
	var val int64
	if next.Active() == b.Active() {
		w.stats.ChainExtensions++
		val = w.negamax(b, &next, depth, alpha, Infinity, 1, &childPV)
	} else {
		val = -w.negamax(b, &next, depth-1, -Infinity, -alpha, 1, &childPV)
	}
	var pv PVLine
	pv.Update(m, childPV)
	return val, pv
}

// negamax returns the value of cur for its side to move. prev is the
// position cur was reached from; leaves are scored by the move between them.
// A capture chain keeps the same side to move and does not use up depth.
func (w *searchWorker) negamax(prev, cur *cm.Board, depth int, alpha, beta int64, ply int, pv *PVLine) int64 {
	w.stats.Nodes++
	if depth == 0 || cur.IsOver() {
		w.stats.Leaves++
		pv.Clear()
		score := w.eval.Score(prev, cur)
		if cur.Active() != prev.Active() {
			score = -score
		}
		return score
	}

	moves := cur.LegalMoves()
	killers := w.killers.orderMoves(moves, ply)

	best := -Infinity
	var childPV PVLine
	for i, m := range moves {
		next := cur.Peek(m)
		var val int64
		if next.Active() == cur.Active() {
			w.stats.ChainExtensions++
			val = w.negamax(cur, &next, depth, alpha, beta, ply+1, &childPV)
		} else {
			val = -w.negamax(cur, &next, depth-1, -beta, -alpha, ply+1, &childPV)
		}
		if val > best {
			best = val
			pv.Update(m, childPV)
		}
		alpha = Max(alpha, val)
		if alpha >= beta {
			w.stats.BetaCutoffs++
			if i < killers {
				w.stats.KillerHits++
			}
			w.killers.InsertKiller(m, ply)
			break
		}
	}
	return best
}
