package engine

import (
	cm "checkers-engine/checkersmg"
)

// MaxPly bounds the killer table; capture chains can push a line past the
// nominal depth.
const MaxPly = 128

// KillerTable remembers, per ply, the last two quiet moves that caused a
// cutoff.
type KillerTable struct {
	KillerMoves [MaxPly][2]cm.Move
}

func (k *KillerTable) InsertKiller(move cm.Move, ply int) {
	if ply >= MaxPly || move.IsJump() {
		return
	}
	if move != k.KillerMoves[ply][0] {
		k.KillerMoves[ply][1] = k.KillerMoves[ply][0]
		k.KillerMoves[ply][0] = move
	}
}

// Clear the killer moves table.
func (k *KillerTable) ClearKillers() {
	for ply := 0; ply < MaxPly; ply++ {
		k.KillerMoves[ply][0] = cm.NoMove
		k.KillerMoves[ply][1] = cm.NoMove
	}
}

// orderMoves moves the killers of ply to the front, keeping generation
// order otherwise. It reports how many killers were found.
func (k *KillerTable) orderMoves(moves []cm.Move, ply int) int {
	if ply >= MaxPly {
		return 0
	}
	front := 0
	for _, killer := range k.KillerMoves[ply] {
		if killer == cm.NoMove {
			continue
		}
		for i := front; i < len(moves); i++ {
			if moves[i] == killer {
				copy(moves[front+1:i+1], moves[front:i])
				moves[front] = killer
				front++
				break
			}
		}
	}
	return front
}
