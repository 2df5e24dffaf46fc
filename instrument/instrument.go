// Package instrument turns fret positions on a tuned stringed instrument
// into the pitches they sound.
package instrument

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jsphweid/chordex/pitch"
)

type Instrument struct {
	Name string
	// open pitch of each string, in the order fret specs list them
	Strings []pitch.Specific
}

func New(name string, tuning []pitch.Specific) *Instrument {
	strs := make([]pitch.Specific, len(tuning))
	copy(strs, tuning)
	return &Instrument{Name: name, Strings: strs}
}

func FromTuning(name, tuning string) (*Instrument, error) {
	strs, err := ParseTuning(tuning)
	if err != nil {
		return nil, err
	}
	return New(name, strs), nil
}

// ParseTuning reads whitespace separated pitch tokens such as
// "E2 A2 D3 G3 B3 E4".
func ParseTuning(text string) ([]pitch.Specific, error) {
	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return nil, &ParseError{Token: text, Err: errors.New("tuning has no strings")}
	}
	res := make([]pitch.Specific, 0, len(tokens))
	for _, tok := range tokens {
		p, err := pitch.ParseSpecific(tok)
		if err != nil {
			return nil, &ParseError{Token: tok, Err: err}
		}
		res = append(res, p)
	}
	return res, nil
}

func FormatTuning(strs []pitch.Specific) string {
	tokens := make([]string, 0, len(strs))
	for _, p := range strs {
		tokens = append(tokens, p.String())
	}
	return strings.Join(tokens, " ")
}

func (i *Instrument) StringCount() int {
	return len(i.Strings)
}

func (i *Instrument) Tuning() string {
	return FormatTuning(i.Strings)
}

const muted = -1

// Resolve maps a fret spec to the pitches of the sounded strings. The spec
// is either one character per string ("x32010") or whitespace separated
// tokens ("x 3 2 0 10 0"); muted strings are left out of the result.
func (i *Instrument) Resolve(spec string) ([]pitch.Specific, error) {
	frets, err := i.parseFrets(spec)
	if err != nil {
		return nil, err
	}
	var res []pitch.Specific
	for s, fret := range frets {
		if fret == muted {
			continue
		}
		res = append(res, i.Strings[s].AddInterval(fret))
	}
	return res, nil
}

func (i *Instrument) parseFrets(spec string) ([]int, error) {
	tokens := strings.Fields(spec)
	// a lone token on a many-string instrument is the compact form
	if len(tokens) == 1 && i.StringCount() != 1 {
		tokens = strings.Split(tokens[0], "")
	}
	if len(tokens) != i.StringCount() {
		return nil, &LengthMismatchError{Got: len(tokens), Want: i.StringCount()}
	}

	frets := make([]int, 0, len(tokens))
	for _, tok := range tokens {
		fret, err := parseFret(tok)
		if err != nil {
			return nil, err
		}
		frets = append(frets, fret)
	}
	return frets, nil
}

func parseFret(tok string) (int, error) {
	if tok == "x" || tok == "X" {
		return muted, nil
	}
	for _, r := range tok {
		if r < '0' || r > '9' {
			return 0, &ParseError{Token: tok, Err: ErrInvalidFret}
		}
	}
	fret, err := strconv.Atoi(tok)
	if err != nil {
		return 0, &ParseError{Token: tok, Err: fmt.Errorf("%w: %v", ErrInvalidFret, err)}
	}
	return fret, nil
}
