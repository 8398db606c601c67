package engine

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	cm "checkers-engine/checkersmg"
)

// Outcome is the result of a match.
type Outcome int

const (
	Unfinished Outcome = iota
	BlackWins
	WhiteWins
)

func (o Outcome) String() string {
	switch o {
	case BlackWins:
		return "black wins"
	case WhiteWins:
		return "white wins"
	}
	return "unfinished"
}

// Match plays two agents against each other. There is no draw detection; a
// game that reaches MaxPlies is reported as unfinished.
type Match struct {
	Black    Agent
	White    Agent
	MaxPlies int
	// Start is the opening position; nil means the standard one.
	Start *cm.Board
	// Logger receives per-move and result events; nil disables logging.
	Logger *zerolog.Logger
}

// MatchResult records a finished or abandoned match.
type MatchResult struct {
	Outcome Outcome
	Moves   []cm.Move
	Final   *cm.Board
}

// Transcript lists the moves in play order.
func (r MatchResult) Transcript() string {
	return PVLine{Moves: r.Moves}.String()
}

// PlayMatch plays black against white from the opening.
func PlayMatch(ctx context.Context, black, white Agent, maxPlies int) (MatchResult, error) {
	m := Match{Black: black, White: white, MaxPlies: maxPlies}
	return m.Play(ctx)
}

// Play runs the match until one side has no move, MaxPlies is reached or
// ctx is done. Each ply is one legal move, so a double jump takes two.
func (m *Match) Play(ctx context.Context) (MatchResult, error) {
	b := cm.NewGame()
	if m.Start != nil {
		b = m.Start.Clone()
	}
	res := MatchResult{Final: b}
	log := zerolog.Nop()
	if m.Logger != nil {
		log = *m.Logger
	}

	for ply := 0; m.MaxPlies <= 0 || ply < m.MaxPlies; ply++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if b.IsOver() {
			res.Outcome = BlackWins
			if b.Active() == cm.Black {
				res.Outcome = WhiteWins
			}
			log.Info().Int("plies", ply).Str("result", res.Outcome.String()).Msg("game-over")
			return res, nil
		}

		agent := m.Black
		if b.Active() == cm.White {
			agent = m.White
		}
		mv, err := agent.Decide(b)
		if err != nil {
			return res, fmt.Errorf("ply %d (%s): %w", ply, b.Active(), err)
		}
		if err := b.Apply(mv); err != nil {
			return res, fmt.Errorf("ply %d (%s): %w", ply, b.Active(), err)
		}
		res.Moves = append(res.Moves, mv)
		log.Debug().Int("ply", ply).Str("move", mv.String()).Str("fen", b.ToFEN()).Msg("move")
	}

	if b.IsOver() {
		res.Outcome = BlackWins
		if b.Active() == cm.Black {
			res.Outcome = WhiteWins
		}
	}
	log.Info().Int("plies", len(res.Moves)).Str("result", res.Outcome.String()).Msg("match-stopped")
	return res, nil
}
