package engine

import (
	"fmt"

	"lukechampine.com/frand"

	cm "checkers-engine/checkersmg"
)

// Agent chooses a move for the side to move.
type Agent interface {
	Decide(b *cm.Board) (cm.Move, error)
}

// SearchAgent plays the move chosen by a Searcher at a fixed depth.
type SearchAgent struct {
	Searcher *Searcher
	Depth    int
}

// NewSearchAgent builds a single-threaded search agent with default weights.
func NewSearchAgent(depth int) *SearchAgent {
	return &SearchAgent{
		Searcher: NewSearcher(NewEvaluator(NewFeatureSet(), DefaultWeights())),
		Depth:    depth,
	}
}

func (a *SearchAgent) Decide(b *cm.Board) (cm.Move, error) {
	return a.Searcher.ChooseMove(b, a.Depth)
}

func (a *SearchAgent) String() string { return fmt.Sprintf("search(depth=%d)", a.Depth) }

// RandomAgent plays a uniformly random legal move.
type RandomAgent struct {
	rng *frand.RNG
}

// NewRandomAgent returns a RandomAgent. A nil seed draws from the system
// entropy source; a 32-byte seed gives a reproducible sequence.
func NewRandomAgent(seed []byte) *RandomAgent {
	if seed == nil {
		return &RandomAgent{rng: frand.New()}
	}
	return &RandomAgent{rng: frand.NewCustom(seed, 1024, 12)}
}

func (a *RandomAgent) Decide(b *cm.Board) (cm.Move, error) {
	moves := b.LegalMoves()
	if len(moves) == 0 {
		return cm.NoMove, ErrGameOver
	}
	return moves[a.rng.Intn(len(moves))], nil
}

func (a *RandomAgent) String() string { return "random" }

// FirstMoveAgent always plays the first generated legal move.
type FirstMoveAgent struct{}

func (FirstMoveAgent) Decide(b *cm.Board) (cm.Move, error) {
	moves := b.LegalMoves()
	if len(moves) == 0 {
		return cm.NoMove, ErrGameOver
	}
	return moves[0], nil
}

func (FirstMoveAgent) String() string { return "first" }
