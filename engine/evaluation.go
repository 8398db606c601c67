package engine

import (
	"fmt"
	"strings"

	cm "checkers-engine/checkersmg"
)

// =============================================================================
// SCORE CONSTANTS
// =============================================================================
const (
	// WinScore is returned for a move that leaves the opponent without moves.
	WinScore int64 = 1 << 60
	// Infinity bounds the search window; it is never produced by Score.
	Infinity int64 = 1 << 61
)

// Evaluator scores a move by the change it makes to the position. An
// Evaluator owns a feature cache and must not be shared between goroutines;
// use Fork for parallel work.
type Evaluator struct {
	features *FeatureSet
	weights  Weights
	mask     FeatureMask
	cache    *FeatureCache
}

// NewEvaluator builds an evaluator over fs with the weight table w.
func NewEvaluator(fs *FeatureSet, w Weights) *Evaluator {
	return NewEvaluatorWithCache(fs, w, DefaultCacheEntries)
}

// NewEvaluatorWithCache is NewEvaluator with a custom cache size; zero
// disables the cache.
func NewEvaluatorWithCache(fs *FeatureSet, w Weights, cacheEntries int) *Evaluator {
	mask := requiredFeatures(w)
	return &Evaluator{
		features: fs,
		weights:  w,
		mask:     mask,
		cache:    NewFeatureCache(cacheEntries, mask),
	}
}

// requiredFeatures selects the weighted features plus the ones the mode
// indicators read.
func requiredFeatures(w Weights) FeatureMask {
	var m FeatureMask
	m = m.With(FeatMob).With(FeatDeny).With(FeatCent)
	for id := FeatureID(0); id < NumFeatures; id++ {
		if w.Features[id] != 0 {
			m = m.With(id)
		}
	}
	return m
}

// Fork returns an evaluator with the same features and weights and a fresh
// cache of the same size.
func (e *Evaluator) Fork() *Evaluator {
	return NewEvaluatorWithCache(e.features, e.weights, len(e.cache.entries))
}

// Weights returns the weight table in use.
func (e *Evaluator) Weights() Weights { return e.weights }

// Features returns the registry in use.
func (e *Evaluator) Features() *FeatureSet { return e.features }

// Cache exposes the feature cache counters.
func (e *Evaluator) Cache() *FeatureCache { return e.cache }

// Modes holds the mode indicators of one evaluation.
type Modes [NumModes]bool

// Breakdown is the itemised result of an evaluation.
type Breakdown struct {
	Terminal bool
	Deltas   FeatureVector
	Mobil    int
	Modes    Modes
	Material int
	Position int
	Total    int64
}

// Score returns how much playing from before to after favoured the side that
// was to move in before. A move that leaves the opponent without moves wins.
func (e *Evaluator) Score(before, after *cm.Board) int64 {
	return e.Evaluate(before, after).Total
}

// Evaluate is Score with every term reported.
func (e *Evaluator) Evaluate(before, after *cm.Board) Breakdown {
	var bd Breakdown
	if before.IsOver() {
		bd.Terminal, bd.Total = true, -WinScore
		return bd
	}
	if after.IsOver() {
		bd.Terminal, bd.Total = true, WinScore
		if after.Active() == before.Active() {
			bd.Total = -WinScore
		}
		return bd
	}

	old := e.cache.vector(e.features, before)
	cur := e.cache.vector(e.features, after)
	for id := range bd.Deltas {
		bd.Deltas[id] = cur[id] - old[id]
	}
	bd.Mobil = bd.Deltas[FeatMob] - bd.Deltas[FeatDeny]
	bd.Modes = modesOf(bd.Deltas, bd.Mobil)

	mover := before.Active()
	bd.Material = Material(after, mover) - Material(after, mover.Other())
	bd.Position = positionScore(after, mover)

	w := &e.weights
	total := w.Material*int64(bd.Material) + w.Position*int64(bd.Position)
	for id := FeatureID(0); id < NumFeatures; id++ {
		if w.Features[id] != 0 {
			total += w.Features[id] * int64(bd.Deltas[id])
		}
	}
	for m := ModeID(0); m < NumModes; m++ {
		if bd.Modes[m] {
			total += w.Modes[m]
		}
	}
	bd.Total = total
	return bd
}

// modesOf derives the mode indicators from the deltas.
func modesOf(d FeatureVector, mobil int) Modes {
	undenied := mobil > 0
	mobility := d[FeatMob] > 0
	denial := d[FeatDeny] > 0
	control := d[FeatCent] > 0

	var m Modes
	m[ModeDemmo] = denial && !mobility
	m[ModeMode2] = undenied && !denial
	m[ModeMode3] = !undenied && denial
	m[ModeMoc2] = !undenied && control
	m[ModeMoc3] = undenied && !control
	m[ModeMoc4] = !undenied && !control
	return m
}

// positionScore sums the square class weights of the pieces of c.
func positionScore(b *cm.Board, c cm.Color) int {
	total := 0
	for i, class := range positionClasses {
		total += (i + 1) * popCount(b.Pieces(c)&class)
	}
	return total
}

// Format renders the breakdown with feature names from fs.
func (bd Breakdown) Format(fs *FeatureSet) string {
	if bd.Terminal {
		return fmt.Sprintf("terminal %s", formatScore(bd.Total))
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "material %d position %d", bd.Material, bd.Position)
	for _, f := range fs.All() {
		if bd.Deltas[f.ID] != 0 {
			fmt.Fprintf(&sb, " %s %+d", f.Name, bd.Deltas[f.ID])
		}
	}
	fmt.Fprintf(&sb, " mobil %+d", bd.Mobil)
	for m := ModeID(0); m < NumModes; m++ {
		if bd.Modes[m] {
			fmt.Fprintf(&sb, " %s", m)
		}
	}
	fmt.Fprintf(&sb, " total %s", formatScore(bd.Total))
	return sb.String()
}

// formatScore prints win scores symbolically.
func formatScore(s int64) string {
	if Abs(s) >= WinScore {
		if s > 0 {
			return "win"
		}
		return "loss"
	}
	return fmt.Sprintf("%d", s)
}
