package engine

import (
	"math/bits"

	cm "checkers-engine/checkersmg"
)

// FeatureID indexes a positional feature. Every feature is measured from the
// point of view of the position's own side to move (active) against the
// other side (passive).
type FeatureID int

const (
	FeatAdv FeatureID = iota
	FeatBack
	FeatCent
	FeatCntr
	FeatDeny
	FeatKcent
	FeatMob
	FeatMov
	FeatThret
	FeatApex
	FeatDia
	FeatDyke
	FeatExpos
	FeatGuard
	FeatHole
	FeatNode
	FeatOreo
	FeatPole
	NumFeatures
)

// FeatureFunc computes one feature of a position.
type FeatureFunc func(b *cm.Board) int

// Feature is one entry of a FeatureSet.
type Feature struct {
	ID   FeatureID
	Name string
	Fn   FeatureFunc
}

// FeatureVector holds one value per feature. Features that were not
// requested are left at zero.
type FeatureVector [NumFeatures]int

// FeatureMask selects the features to compute.
type FeatureMask uint32

// Has reports whether id is selected.
func (m FeatureMask) Has(id FeatureID) bool { return m&(1<<uint(id)) != 0 }

// With returns m with id selected.
func (m FeatureMask) With(id FeatureID) FeatureMask { return m | 1<<uint(id) }

// Len returns the number of selected features.
func (m FeatureMask) Len() int { return bits.OnesCount32(uint32(m)) }

// FeatureSet is the fixed registry of feature extractors. Build it once
// with NewFeatureSet and hand it to the evaluators that need it.
type FeatureSet struct {
	features [NumFeatures]Feature
	byName   map[string]FeatureID
}

// NewFeatureSet returns the registry of all known features.
func NewFeatureSet() *FeatureSet {
	fs := &FeatureSet{byName: make(map[string]FeatureID, NumFeatures)}
	register := func(id FeatureID, name string, fn FeatureFunc) {
		fs.features[id] = Feature{ID: id, Name: name, Fn: fn}
		fs.byName[name] = id
	}
	register(FeatAdv, "adv", Advancement)
	register(FeatBack, "back", BackRowBridge)
	register(FeatCent, "cent", CenterControl)
	register(FeatCntr, "cntr", CenterReach)
	register(FeatDeny, "deny", DenialOfOccupancy)
	register(FeatKcent, "kcent", KingCenterControl)
	register(FeatMob, "mob", TotalMobility)
	register(FeatMov, "mov", MoveParity)
	register(FeatThret, "thret", Threat)
	register(FeatApex, "apex", Apex)
	register(FeatDia, "dia", DoubleDiagonal)
	register(FeatDyke, "dyke", Dyke)
	register(FeatExpos, "expos", Exposure)
	register(FeatGuard, "guard", BackRowControl)
	register(FeatHole, "hole", Hole)
	register(FeatNode, "node", Node)
	register(FeatOreo, "oreo", TriangleOfOreo)
	register(FeatPole, "pole", Pole)
	return fs
}

// Get returns the feature with the given id.
func (fs *FeatureSet) Get(id FeatureID) Feature { return fs.features[id] }

// Lookup finds a feature by name.
func (fs *FeatureSet) Lookup(name string) (FeatureID, bool) {
	id, ok := fs.byName[name]
	return id, ok
}

// All returns the features in id order.
func (fs *FeatureSet) All() []Feature {
	out := make([]Feature, NumFeatures)
	copy(out, fs.features[:])
	return out
}

// Extract computes the selected features of b.
func (fs *FeatureSet) Extract(b *cm.Board, mask FeatureMask) FeatureVector {
	var v FeatureVector
	for id := FeatureID(0); id < NumFeatures; id++ {
		if mask.Has(id) {
			v[id] = fs.features[id].Fn(b)
		}
	}
	return v
}

// =============================================================================
// SQUARE SETS
// =============================================================================
var (
	// Centre squares as seen by the side to move.
	centerForBlack = cm.MaskOf(11, 12, 15, 16, 20, 21, 24, 25)
	centerForWhite = cm.MaskOf(8, 9, 12, 13, 17, 18, 21, 22)

	rows3And4 = cm.MaskOf(9, 10, 11, 12, 13, 14, 15, 16)
	rows5And6 = cm.MaskOf(17, 18, 19, 20, 21, 22, 23, 24)

	// Files starting on squares 1-4, keyed by the side to move.
	moveSystemBlack = cm.MaskOf(1, 2, 3, 4, 9, 10, 11, 12, 17, 18, 19, 20, 25, 26, 27, 28)
	moveSystemWhite = cm.MaskOf(5, 6, 7, 8, 13, 14, 15, 16, 21, 22, 23, 24, 29, 30, 31, 32)

	bridgeBlack = cm.MaskOf(1, 3)
	bridgeWhite = cm.MaskOf(30, 32)
	oreoBlack   = cm.MaskOf(2, 3, 7)
	oreoWhite   = cm.MaskOf(26, 30, 31)
	apexSquares = cm.MaskOf(7, 26)

	doubleDiagonal = cm.MaskOf(1, 6, 10, 15, 19, 24, 28, 5, 9, 14, 18, 23, 27, 32)
)

// moveCeiling is the material total at or above which MoveParity is off.
const moveCeiling = 24

func centerFor(c cm.Color) uint64 {
	if c == cm.Black {
		return centerForBlack
	}
	return centerForWhite
}

func bridgeOf(c cm.Color) uint64 {
	if c == cm.Black {
		return bridgeBlack
	}
	return bridgeWhite
}

func oreoOf(c cm.Color) uint64 {
	if c == cm.Black {
		return oreoBlack
	}
	return oreoWhite
}

func popCount(x uint64) int { return bits.OnesCount64(x) }

// Material returns 2 per man plus 3 per king of c.
func Material(b *cm.Board, c cm.Color) int {
	men, kings := b.Counts(c)
	return 2*men + 3*kings
}

// =============================================================================
// CORE FEATURES
// =============================================================================

// Advancement credits each passive man in the two rows nearest its crowning
// row and debits each one in the two rows before the midline.
func Advancement(b *cm.Board) int {
	p := b.Passive()
	near, far := rows3And4, rows5And6
	if p == cm.Black {
		near, far = rows5And6, rows3And4
	}
	men := b.Men(p)
	return popCount(men&near) - popCount(men&far)
}

// BackRowBridge is 1 when the active side has no kings and the passive side
// holds both bridge squares of its back row.
func BackRowBridge(b *cm.Board) int {
	if b.Kings(b.Active()) != 0 {
		return 0
	}
	p := b.Passive()
	if bridge := bridgeOf(p); b.Pieces(p)&bridge == bridge {
		return 1
	}
	return 0
}

// CenterControl counts passive men on the centre squares.
func CenterControl(b *cm.Board) int {
	return popCount(b.Men(b.Passive()) & centerFor(b.Active()))
}

// CenterReach counts centre squares that are held by the active side or
// reachable by one of its simple moves.
func CenterReach(b *cm.Board) int {
	return popCount(centerFor(b.Active()) & (b.Pieces(b.Active()) | b.MoveDestinations()))
}

// KingCenterControl counts passive kings on the centre squares.
func KingCenterControl(b *cm.Board) int {
	return popCount(b.Kings(b.Passive()) & centerFor(b.Active()))
}

// TotalMobility counts the distinct squares the active side can reach with a
// simple move, whether or not a capture is pending.
func TotalMobility(b *cm.Board) int {
	return popCount(b.MoveDestinations())
}

// DenialOfOccupancy counts the squares of TotalMobility on which the moved
// piece could be captured without exchange: the capture either continues
// into a chain or leaves the capturer out of reach.
func DenialOfOccupancy(b *cm.Board) int {
	var denied uint64
	for _, m := range b.SimpleMoves() {
		dest := m.To()
		if denied&(uint64(1)<<uint(dest)) != 0 {
			continue
		}
		after := b.Peek(m)
		for _, take := range after.CapturesOf(dest) {
			reply := after.Peek(take)
			if reply.Active() == after.Active() || !reply.Takeable(take.To()) {
				denied |= uint64(1) << uint(dest)
				break
			}
		}
	}
	return popCount(denied)
}

// UndeniedMobility is TotalMobility minus DenialOfOccupancy.
func UndeniedMobility(b *cm.Board) int {
	return TotalMobility(b) - DenialOfOccupancy(b)
}

// Threat counts the simple moves after which the moved piece could capture.
func Threat(b *cm.Board) int {
	a := b.Active()
	n := 0
	for _, m := range b.SimpleMoves() {
		after := b.Peek(m)
		if after.CanJumpFrom(a, m.To()) {
			n++
		}
	}
	return n
}

// MoveParity is 1 when material is level and below the ceiling and an odd
// number of pieces stand in the active side's move system.
func MoveParity(b *cm.Board) int {
	black, white := Material(b, cm.Black), Material(b, cm.White)
	if black != white || white >= moveCeiling {
		return 0
	}
	system := moveSystemBlack
	if b.Active() == cm.White {
		system = moveSystemWhite
	}
	all := b.Pieces(cm.Black) | b.Pieces(cm.White)
	return popCount(all&system) % 2
}

// =============================================================================
// SUPPLEMENTARY FEATURES
// =============================================================================

// Apex is -1 when there are no kings, an active man holds square 7 or 26
// and no passive man holds either.
func Apex(b *cm.Board) int {
	if b.Kings(cm.Black)|b.Kings(cm.White) != 0 {
		return 0
	}
	if b.Men(b.Active())&apexSquares != 0 && b.Men(b.Passive())&apexSquares == 0 {
		return -1
	}
	return 0
}

// DoubleDiagonal counts passive pieces on the two diagonals ending in the
// double corners.
func DoubleDiagonal(b *cm.Board) int {
	return popCount(b.Pieces(b.Passive()) & doubleDiagonal)
}

// Dyke counts strings of three passive pieces on adjacent diagonal squares.
func Dyke(b *cm.Board) int {
	return cm.DiagonalRuns(b.Pieces(b.Passive()))
}

// Exposure counts passive pieces flanked on one diagonal by two empty
// squares.
func Exposure(b *cm.Board) int {
	return popCount(cm.Flanked(b.Pieces(b.Passive()), b.Empty()))
}

// BackRowControl is 1 when the active side has no kings and the passive
// side holds either its bridge or its triangle of Oreo.
func BackRowControl(b *cm.Board) int {
	if b.Kings(b.Active()) != 0 {
		return 0
	}
	p := b.Passive()
	own := b.Pieces(p)
	if bridge := bridgeOf(p); own&bridge == bridge {
		return 1
	}
	if oreo := oreoOf(p); own&oreo == oreo {
		return 1
	}
	return 0
}

// Hole counts empty squares with at least three passive neighbours.
func Hole(b *cm.Board) int {
	return popCount(cm.WithNeighbours(b.Empty(), b.Pieces(b.Passive()), 3))
}

// Node counts passive pieces with at least three empty neighbours.
func Node(b *cm.Board) int {
	return popCount(cm.WithNeighbours(b.Pieces(b.Passive()), b.Empty(), 3))
}

// TriangleOfOreo is 1 when the passive side has no kings and holds its
// triangle of Oreo.
func TriangleOfOreo(b *cm.Board) int {
	p := b.Passive()
	if b.Kings(p) != 0 {
		return 0
	}
	if oreo := oreoOf(p); b.Pieces(p)&oreo == oreo {
		return 1
	}
	return 0
}

// Pole counts passive men whose four neighbours are all empty.
func Pole(b *cm.Board) int {
	return popCount(cm.WithNeighbours(b.Men(b.Passive()), b.Empty(), 4))
}
