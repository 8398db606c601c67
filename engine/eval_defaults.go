package engine

// ModeID indexes a mode indicator derived from the feature deltas.
type ModeID int

const (
	ModeDemmo ModeID = iota // denial without any mobility gain
	ModeMode2               // undenied mobility gained, no denial
	ModeMode3               // denial gained, no undenied mobility
	ModeMoc2                // centre gained without undenied mobility
	ModeMoc3                // undenied mobility without centre gain
	ModeMoc4                // neither
	NumModes
)

var modeNames = [NumModes]string{"demmo", "mode2", "mode3", "moc2", "moc3", "moc4"}

func (m ModeID) String() string {
	if m < 0 || m >= NumModes {
		return "mode?"
	}
	return modeNames[m]
}

// Weights is the linear weight table of the evaluator. Material and
// Position apply to the position after the move, everything else to deltas.
type Weights struct {
	Material int64
	Position int64
	Features [NumFeatures]int64
	Modes    [NumModes]int64
}

// DefaultWeights returns the historical power-of-two weights. Features that
// are not listed weigh zero and are never computed.
func DefaultWeights() Weights {
	var w Weights
	w.Material = 1 << 20
	w.Position = 1 << 14

	w.Features[FeatKcent] = 1 << 16
	w.Features[FeatMov] = 1 << 8
	w.Features[FeatAdv] = -(1 << 8)
	w.Features[FeatBack] = -(1 << 6)
	w.Features[FeatCntr] = 1 << 5
	w.Features[FeatThret] = 1 << 5

	w.Modes[ModeMoc2] = -(1 << 18)
	w.Modes[ModeMoc4] = -(1 << 14)
	w.Modes[ModeMode3] = -(1 << 13)
	w.Modes[ModeDemmo] = -(1 << 11)
	w.Modes[ModeMode2] = -(1 << 8)
	w.Modes[ModeMoc3] = 1 << 4
	return w
}

// positionClasses weights the squares a side holds, 1 for the weakest class
// up to 4.
var positionClasses = [4]uint64{
	0x88000,     // 15, 18
	0x1904C00,   // 10, 11, 14, 19, 22, 23
	0x3A0502E0,  // 6-9, 16, 17, 24-27
	0x7C060301F, // 1-5, 12, 13, 20, 21, 28-32
}
