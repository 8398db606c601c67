package engine

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadWeights(t *testing.T) {
	fs := NewFeatureSet()
	base := DefaultWeights()
	in := `{"material": 5, "features": {"pole": 3, "adv": 0}, "modes": {"moc2": -1}}`
	w, err := LoadWeights(strings.NewReader(in), fs, base)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if w.Material != 5 || w.Position != base.Position {
		t.Fatalf("material %d position %d", w.Material, w.Position)
	}
	if w.Features[FeatPole] != 3 || w.Features[FeatAdv] != 0 || w.Features[FeatKcent] != base.Features[FeatKcent] {
		t.Fatalf("features not overlaid: %v", w.Features)
	}
	if w.Modes[ModeMoc2] != -1 || w.Modes[ModeMoc3] != base.Modes[ModeMoc3] {
		t.Fatalf("modes not overlaid: %v", w.Modes)
	}
}

func TestLoadWeightsRejectsUnknownNames(t *testing.T) {
	fs := NewFeatureSet()
	for _, in := range []string{
		`{"features": {"tempo": 1}}`,
		`{"modes": {"mode9": 1}}`,
	} {
		_, err := LoadWeights(strings.NewReader(in), fs, DefaultWeights())
		if !errors.Is(err, ErrUnknownWeight) {
			t.Fatalf("%s: got %v, want ErrUnknownWeight", in, err)
		}
	}
	if _, err := LoadWeights(strings.NewReader(`{"king": 3}`), fs, DefaultWeights()); err == nil {
		t.Fatalf("unknown top-level field accepted")
	}
	if _, err := LoadWeights(strings.NewReader(`{`), fs, DefaultWeights()); err == nil {
		t.Fatalf("truncated JSON accepted")
	}
}

func TestLoadWeightsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weights.json")
	if err := os.WriteFile(path, []byte(`{"position": 7}`), 0o644); err != nil {
		t.Fatal(err)
	}
	w, err := LoadWeightsFile(path, NewFeatureSet())
	if err != nil {
		t.Fatalf("load file: %v", err)
	}
	if w.Position != 7 || w.Material != DefaultWeights().Material {
		t.Fatalf("unexpected weights %+v", w)
	}
	if _, err := LoadWeightsFile(filepath.Join(t.TempDir(), "missing.json"), NewFeatureSet()); err == nil {
		t.Fatalf("missing file accepted")
	}
}

func TestModeNames(t *testing.T) {
	for m := ModeID(0); m < NumModes; m++ {
		got, ok := modeByName(m.String())
		if !ok || got != m {
			t.Fatalf("mode %s does not round trip", m)
		}
	}
}
