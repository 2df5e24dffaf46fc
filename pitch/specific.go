package pitch

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jsphweid/chordex/util"
)

// Specific is a pitch class in a particular octave.
type Specific struct {
	Class  Class
	Octave int
}

func NewSpecific(c Class, octave int) Specific {
	return Specific{Class: NewClass(int(c)), Octave: octave}
}

// AddInterval returns the pitch n semitones away, carrying into the octave.
func (p Specific) AddInterval(n int) Specific {
	total := int(p.Class) + n
	return Specific{
		Class:  NewClass(total),
		Octave: p.Octave + util.FloorDiv(total, NumClasses),
	}
}

// Compare orders by octave, then pitch class.
func (p Specific) Compare(o Specific) int {
	switch {
	case p.Octave < o.Octave:
		return -1
	case p.Octave > o.Octave:
		return 1
	case p.Class < o.Class:
		return -1
	case p.Class > o.Class:
		return 1
	}
	return 0
}

func (p Specific) Less(o Specific) bool {
	return p.Compare(o) < 0
}

// MIDI returns the MIDI note number, C4 = 60.
func (p Specific) MIDI() int {
	return (p.Octave+1)*NumClasses + int(p.Class)
}

func FromMIDI(n int) Specific {
	return Specific{Class: NewClass(n), Octave: util.FloorDiv(n, NumClasses) - 1}
}

// String renders with ASCII accidentals so the result parses back.
func (p Specific) String() string {
	name := strings.NewReplacer("♯", "#", "♭", "b").Replace(p.Class.Name(Sharps))
	return name + strconv.Itoa(p.Octave)
}

func (p Specific) Display(sp Spelling) string {
	return p.Class.Name(sp) + strconv.Itoa(p.Octave)
}

// ParseSpecific reads tokens of the form <letter>[accidental]<octave>,
// e.g. "E2", "Bb3", "F♯4", "C-1".
func ParseSpecific(token string) (Specific, error) {
	c, rest, err := parseName(token)
	if err != nil {
		return Specific{}, err
	}
	if rest == "" {
		return Specific{}, fmt.Errorf("%w: %q is missing an octave", ErrInvalidPitch, token)
	}
	octave, err := strconv.Atoi(rest)
	if err != nil || rest[0] == '+' {
		return Specific{}, fmt.Errorf("%w: %q has a bad octave", ErrInvalidPitch, token)
	}
	return Specific{Class: c, Octave: octave}, nil
}

func Classes(pitches []Specific) []Class {
	res := make([]Class, 0, len(pitches))
	for _, p := range pitches {
		res = append(res, p.Class)
	}
	return res
}

// Lowest returns the lowest pitch; ok is false for an empty list.
func Lowest(pitches []Specific) (Specific, bool) {
	if len(pitches) == 0 {
		return Specific{}, false
	}
	low := pitches[0]
	for _, p := range pitches[1:] {
		if p.Less(low) {
			low = p
		}
	}
	return low, true
}
