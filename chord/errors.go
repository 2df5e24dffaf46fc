package chord

import (
	"errors"
	"fmt"

	"github.com/jsphweid/chordex/pcset"
)

var ErrSilentChord = errors.New("no pitches sounded")

// NoMatchError carries the input that no template matched.
type NoMatchError struct {
	Input pcset.Set
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("no known chord for pitch classes %v", e.Input.Classes())
}

type CatalogIntegrityError struct {
	Index   int
	Pattern string
	Reason  string
}

func (e *CatalogIntegrityError) Error() string {
	return fmt.Sprintf("catalog entry %d (%q): %s", e.Index, e.Pattern, e.Reason)
}
