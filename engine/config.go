package engine

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// weightFile is the JSON layout of a weight override. Omitted entries keep
// their default value.
type weightFile struct {
	Material *int64           `json:"material"`
	Position *int64           `json:"position"`
	Features map[string]int64 `json:"features"`
	Modes    map[string]int64 `json:"modes"`
}

// LoadWeights reads a JSON weight override from r on top of base.
func LoadWeights(r io.Reader, fs *FeatureSet, base Weights) (Weights, error) {
	var wf weightFile
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&wf); err != nil {
		return base, fmt.Errorf("decode weights: %w", err)
	}

	w := base
	if wf.Material != nil {
		w.Material = *wf.Material
	}
	if wf.Position != nil {
		w.Position = *wf.Position
	}
	for name, v := range wf.Features {
		id, ok := fs.Lookup(name)
		if !ok {
			return base, fmt.Errorf("%w: feature %q", ErrUnknownWeight, name)
		}
		w.Features[id] = v
	}
	for name, v := range wf.Modes {
		id, ok := modeByName(name)
		if !ok {
			return base, fmt.Errorf("%w: mode %q", ErrUnknownWeight, name)
		}
		w.Modes[id] = v
	}
	return w, nil
}

// LoadWeightsFile reads a JSON weight override from path on top of the
// default weights.
func LoadWeightsFile(path string, fs *FeatureSet) (Weights, error) {
	f, err := os.Open(path)
	if err != nil {
		return DefaultWeights(), err
	}
	defer f.Close()
	w, err := LoadWeights(f, fs, DefaultWeights())
	if err != nil {
		return w, fmt.Errorf("%s: %w", path, err)
	}
	return w, nil
}

func modeByName(name string) (ModeID, bool) {
	for m := ModeID(0); m < NumModes; m++ {
		if modeNames[m] == name {
			return m, true
		}
	}
	return 0, false
}
