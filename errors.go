package chess

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidFEN is returned when a FEN string cannot be decoded.
	ErrInvalidFEN = errors.New("chess: invalid FEN")
	// ErrInvalidSquare is returned when a square name cannot be decoded.
	ErrInvalidSquare = errors.New("chess: invalid square")
	// ErrInvalidNotation is returned when a move string cannot be decoded.
	ErrInvalidNotation = errors.New("chess: invalid notation")
	// ErrAmbiguousNotation is returned when a move string matches more than one legal move.
	ErrAmbiguousNotation = errors.New("chess: ambiguous notation")
	// ErrIllegalMove is returned when a replayed move is not legal in its position.
	ErrIllegalMove = errors.New("chess: illegal move")
)

// InvariantViolation is the panic value used when board bookkeeping
// reaches a state that legal play can never produce.
type InvariantViolation struct {
	Msg string
}

func (e *InvariantViolation) Error() string {
	return "chess: invariant violation: " + e.Msg
}

func invariant(format string, args ...any) {
	panic(&InvariantViolation{Msg: fmt.Sprintf(format, args...)})
}
