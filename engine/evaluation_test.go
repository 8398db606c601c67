package engine

import (
	"strings"
	"testing"

	"lukechampine.com/frand"

	cm "checkers-engine/checkersmg"
)

func newTestEvaluator() *Evaluator {
	return NewEvaluator(NewFeatureSet(), DefaultWeights())
}

func mustMove(t *testing.T, s string) cm.Move {
	t.Helper()
	m, err := cm.ParseMove(s)
	if err != nil {
		t.Fatalf("parse move %q: %v", s, err)
	}
	return m
}

func TestTerminalScores(t *testing.T) {
	e := newTestEvaluator()

	blocked := mustFEN(t, "B:W5,6,10:B1")
	if got := e.Score(blocked, blocked); got != -WinScore {
		t.Fatalf("score from finished position %d, want %d", got, -WinScore)
	}

	b := mustFEN(t, "W:W22:B18")
	after := b.Peek(mustMove(t, "22x15"))
	if got := e.Score(b, &after); got != WinScore {
		t.Fatalf("winning capture scored %d, want %d", got, WinScore)
	}
	bd := e.Evaluate(b, &after)
	if !bd.Terminal || bd.Format(e.Features()) != "terminal win" {
		t.Fatalf("unexpected terminal breakdown %q", bd.Format(e.Features()))
	}
}

func TestModes(t *testing.T) {
	var gain FeatureVector
	gain[FeatMob] = 1
	m := modesOf(gain, 1)
	want := Modes{ModeMode2: true, ModeMoc3: true}
	if m != want {
		t.Fatalf("mobility gain modes %v, want %v", m, want)
	}

	var denial FeatureVector
	denial[FeatDeny] = 1
	denial[FeatCent] = 1
	m = modesOf(denial, -1)
	want = Modes{ModeDemmo: true, ModeMode3: true, ModeMoc2: true}
	if m != want {
		t.Fatalf("denial modes %v, want %v", m, want)
	}

	m = modesOf(FeatureVector{}, 0)
	want = Modes{ModeMoc4: true}
	if m != want {
		t.Fatalf("quiet modes %v, want %v", m, want)
	}
}

func TestPositionScore(t *testing.T) {
	b := cm.NewGame()
	if got := positionScore(b, cm.Black); got != 40 {
		t.Fatalf("black position at start %d, want 40", got)
	}
	if got := positionScore(b, cm.White); got != 40 {
		t.Fatalf("white position at start %d, want 40", got)
	}
}

func TestCaptureOutscoresQuietMoves(t *testing.T) {
	e := newTestEvaluator()
	b := mustFEN(t, "B:W18,30:B14,1,2,5")
	capture := b.Peek(mustMove(t, "14x23"))
	best := e.Score(b, &capture)
	for _, m := range b.SimpleMoves() {
		after := b.Peek(m)
		if s := e.Score(b, &after); s >= best {
			t.Fatalf("quiet move %s scored %d, capture only %d", m, s, best)
		}
	}
	if bd := e.Evaluate(b, &capture); bd.Material != 6 {
		t.Fatalf("material after capture %d, want 6", bd.Material)
	}
}

func TestScoreMatchesBreakdown(t *testing.T) {
	e := newTestEvaluator()
	b := cm.NewGame()
	w := e.Weights()
	for _, m := range b.LegalMoves() {
		after := b.Peek(m)
		bd := e.Evaluate(b, &after)
		total := w.Material*int64(bd.Material) + w.Position*int64(bd.Position)
		for id, d := range bd.Deltas {
			total += w.Features[id] * int64(d)
		}
		for id, on := range bd.Modes {
			if on {
				total += w.Modes[id]
			}
		}
		if total != bd.Total || total != e.Score(b, &after) {
			t.Fatalf("%s: breakdown total %d, recomputed %d", m, bd.Total, total)
		}
		if bd.Mobil != bd.Deltas[FeatMob]-bd.Deltas[FeatDeny] {
			t.Fatalf("%s: mobil %d inconsistent", m, bd.Mobil)
		}
		if !strings.Contains(bd.Format(e.Features()), "total ") {
			t.Fatalf("format misses total: %q", bd.Format(e.Features()))
		}
	}
}

func TestRequiredFeatures(t *testing.T) {
	w := DefaultWeights()
	mask := requiredFeatures(w)
	for _, id := range []FeatureID{FeatAdv, FeatBack, FeatCent, FeatCntr, FeatDeny, FeatKcent, FeatMob, FeatMov, FeatThret} {
		if !mask.Has(id) {
			t.Fatalf("default mask misses feature %d", id)
		}
	}
	if mask.Has(FeatPole) {
		t.Fatalf("unweighted pole in default mask")
	}
	w.Features[FeatPole] = 1
	if !requiredFeatures(w).Has(FeatPole) {
		t.Fatalf("weighted pole missing from mask")
	}
}

func TestCachedScoresMatchUncached(t *testing.T) {
	fs := NewFeatureSet()
	cached := NewEvaluator(fs, DefaultWeights())
	plain := NewEvaluatorWithCache(fs, DefaultWeights(), 0)
	rng := frand.NewCustom(make([]byte, 32), 1024, 12)

	for game := 0; game < 4; game++ {
		b := cm.NewGame()
		for ply := 0; ply < 60 && !b.IsOver(); ply++ {
			moves := b.LegalMoves()
			for _, m := range moves {
				after := b.Peek(m)
				if c, p := cached.Score(b, &after), plain.Score(b, &after); c != p {
					t.Fatalf("%s after %s: cached %d, uncached %d", b.ToFEN(), m, c, p)
				}
			}
			b.MakeMove(moves[rng.Intn(len(moves))])
		}
	}
	if cached.Cache().Hits == 0 {
		t.Fatalf("cache never hit")
	}
	if plain.Cache().Lookups != 0 {
		t.Fatalf("disabled cache counted lookups")
	}
}

func TestFeatureCacheReplacement(t *testing.T) {
	fc := NewFeatureCache(2, 0)
	var v1, v2, v3 FeatureVector
	v1[0], v2[0], v3[0] = 1, 2, 3

	fc.Put(1, v1)
	fc.Put(2, v2)
	if got, ok := fc.Get(1); !ok || got != v1 {
		t.Fatalf("entry 1 lost")
	}
	if got, ok := fc.Get(2); !ok || got != v2 {
		t.Fatalf("entry 2 lost")
	}
	fc.Put(3, v3)
	if _, ok := fc.Get(1); ok {
		t.Fatalf("oldest entry survived a full cluster")
	}
	if got, ok := fc.Get(3); !ok || got != v3 {
		t.Fatalf("newest entry missing")
	}
	if fc.Lookups != 4 || fc.Hits != 3 {
		t.Fatalf("counters %d/%d, want 3/4", fc.Hits, fc.Lookups)
	}
	fc.Clear()
	if _, ok := fc.Get(3); ok {
		t.Fatalf("entry survived Clear")
	}
}

func TestFork(t *testing.T) {
	e := NewEvaluatorWithCache(NewFeatureSet(), DefaultWeights(), 64)
	f := e.Fork()
	if f.Cache() == e.Cache() || len(f.Cache().entries) != len(e.Cache().entries) {
		t.Fatalf("fork shares or resizes the cache")
	}
	if f.Weights() != e.Weights() || f.Features() != e.Features() {
		t.Fatalf("fork changed weights or features")
	}
}
