package checkersmg

import "errors"

var (
	// ErrInvalidState is returned when a board is uninitialized or its
	// bookkeeping is inconsistent.
	ErrInvalidState = errors.New("checkersmg: invalid board state")
	// ErrIllegalMove is returned by Apply for a move outside LegalMoves.
	ErrIllegalMove = errors.New("checkersmg: illegal move")
	ErrBadMove     = errors.New("checkersmg: malformed move")
	ErrBadFEN      = errors.New("checkersmg: malformed FEN")
)
