package merge

import "errors"

var (
	// ErrInvalidConfig is returned when a level configuration cannot be used.
	ErrInvalidConfig = errors.New("merge: invalid config")

	// ErrUnknownBlockValue is returned when a tile value has no BlockType entry.
	ErrUnknownBlockValue = errors.New("merge: unknown block value")

	// ErrInvalidState is returned when the machine is asked to enter a state
	// outside the enumerated set.
	ErrInvalidState = errors.New("merge: invalid state")

	// ErrInvalidTransition is returned when an operation is attempted from a
	// state that does not accept it.
	ErrInvalidTransition = errors.New("merge: invalid transition")
)
