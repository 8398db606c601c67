package engine

import "errors"

var (
	// ErrGameOver is returned when asked for a move in a finished game.
	ErrGameOver = errors.New("engine: game over")
	// ErrUnknownWeight is returned for a weight file naming an unknown
	// feature or mode.
	ErrUnknownWeight = errors.New("engine: unknown weight")
	ErrBadDepth      = errors.New("engine: negative search depth")
)
