package game

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDimensions indicates a non-positive width or height.
	ErrInvalidDimensions = errors.New("grid width and height must be positive")

	// ErrNegativePrizeCount indicates a prize count below zero.
	ErrNegativePrizeCount = errors.New("prize counts must be non-negative")

	// ErrGridTooLarge indicates a grid with more than MaxBoxes boxes.
	ErrGridTooLarge = errors.New("grid has too many boxes")

	// ErrTooManyPrizes indicates more prizes than boxes.
	ErrTooManyPrizes = errors.New("prize counts exceed the number of boxes")

	// ErrMalformedState indicates persisted state that does not describe a valid grid.
	ErrMalformedState = errors.New("malformed game state")
)

// ConfigurationError reports a caller-supplied configuration that cannot
// produce a grid.
type ConfigurationError struct {
	Config Config
	Err    error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration %s: %v", e.Config, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// PersistenceError reports a failure reading or writing the durable slot.
type PersistenceError struct {
	Op  string // "load" or "save"
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Op, e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
