// Package pitch models octave-independent pitch classes and octave-specific
// pitches. Enharmonic spellings share a single Class value; spelling only
// matters when a pitch is rendered.
package pitch

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jsphweid/chordex/util"
)

// Class is a pitch class in [0, 11], C = 0.
type Class int

const (
	C Class = iota
	CSharp
	D
	DSharp
	E
	F
	FSharp
	G
	GSharp
	A
	ASharp
	B
)

// NOTE: aliases, not separate values
const (
	DFlat = CSharp
	EFlat = DSharp
	GFlat = FSharp
	AFlat = GSharp
	BFlat = ASharp
)

const NumClasses = 12

var ErrInvalidPitch = errors.New("invalid pitch")

// NewClass normalizes any integer into [0, 11].
func NewClass(n int) Class {
	return Class(util.Mod(n, NumClasses))
}

func (c Class) Add(interval int) Class {
	return NewClass(int(c) + interval)
}

func (c Class) Name(sp Spelling) string {
	return sp.names()[NewClass(int(c))]
}

func (c Class) String() string {
	return c.Name(Preferred)
}

type Spelling int

const (
	Preferred Spelling = iota
	Sharps
	Flats
)

var (
	preferredNames = [NumClasses]string{"C", "C♯", "D", "E♭", "E", "F", "F♯", "G", "A♭", "A", "B♭", "B"}
	sharpNames     = [NumClasses]string{"C", "C♯", "D", "D♯", "E", "F", "F♯", "G", "G♯", "A", "A♯", "B"}
	flatNames      = [NumClasses]string{"C", "D♭", "D", "E♭", "E", "F", "G♭", "G", "A♭", "A", "B♭", "B"}
)

func (sp Spelling) names() [NumClasses]string {
	switch sp {
	case Sharps:
		return sharpNames
	case Flats:
		return flatNames
	default:
		return preferredNames
	}
}

func (sp Spelling) String() string {
	switch sp {
	case Sharps:
		return "sharps"
	case Flats:
		return "flats"
	default:
		return "preferred"
	}
}

func ParseSpelling(s string) (Spelling, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "preferred":
		return Preferred, nil
	case "sharp", "sharps", "#", "♯":
		return Sharps, nil
	case "flat", "flats", "b", "♭":
		return Flats, nil
	}
	return Preferred, fmt.Errorf("unknown spelling %q (want preferred, sharps or flats)", s)
}

var letterClasses = map[byte]Class{
	'C': C, 'D': D, 'E': E, 'F': F, 'G': G, 'A': A, 'B': B,
}

// ParseClass reads a note name such as "C", "f#", "Db" or "B♭".
func ParseClass(s string) (Class, error) {
	c, rest, err := parseName(s)
	if err != nil {
		return 0, err
	}
	if rest != "" {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPitch, s)
	}
	return c, nil
}

// parseName consumes a letter and any accidentals, returning the remainder.
func parseName(s string) (Class, string, error) {
	if s == "" {
		return 0, "", fmt.Errorf("%w: empty", ErrInvalidPitch)
	}
	letter := s[0]
	if letter >= 'a' && letter <= 'z' {
		letter -= 'a' - 'A'
	}
	c, ok := letterClasses[letter]
	if !ok {
		return 0, "", fmt.Errorf("%w: %q", ErrInvalidPitch, s)
	}
	rest := s[1:]
	for {
		switch {
		case strings.HasPrefix(rest, "#"):
			c, rest = c.Add(1), rest[1:]
		case strings.HasPrefix(rest, "♯"):
			c, rest = c.Add(1), rest[len("♯"):]
		case strings.HasPrefix(rest, "b"):
			c, rest = c.Add(-1), rest[1:]
		case strings.HasPrefix(rest, "♭"):
			c, rest = c.Add(-1), rest[len("♭"):]
		default:
			return c, rest, nil
		}
	}
}
