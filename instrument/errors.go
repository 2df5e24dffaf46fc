package instrument

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidFret       = errors.New("invalid fret")
	ErrUnknownInstrument = errors.New("unknown instrument")
)

// ParseError names the token that could not be read.
type ParseError struct {
	Token string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse %q: %v", e.Token, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

type LengthMismatchError struct {
	Got  int
	Want int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("got %d fret positions, instrument has %d strings", e.Got, e.Want)
}
