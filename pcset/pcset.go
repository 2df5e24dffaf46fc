// Package pcset implements octave-independent pitch-class sets as a fixed
// 12-slot membership vector. Every operation returns a new Set.
package pcset

import (
	"fmt"
	"iter"
	"strings"

	"github.com/jsphweid/chordex/pitch"
	"github.com/jsphweid/chordex/util"
)

// Set has index i true when pitch class i sounds. Being an array, it is
// compared with == and copied on assignment.
type Set [pitch.NumClasses]bool

func FromClasses(classes []pitch.Class) Set {
	var s Set
	for _, c := range classes {
		s[pitch.NewClass(int(c))] = true
	}
	return s
}

func FromPitches(pitches []pitch.Specific) Set {
	return FromClasses(pitch.Classes(pitches))
}

// Parse reads a 12-character pattern of '0'/'1', index 0 first.
func Parse(pattern string) (Set, error) {
	var s Set
	if len(pattern) != pitch.NumClasses {
		return s, fmt.Errorf("pattern %q has %d characters, want %d", pattern, len(pattern), pitch.NumClasses)
	}
	for i := 0; i < len(pattern); i++ {
		switch pattern[i] {
		case '1':
			s[i] = true
		case '0':
		default:
			return s, fmt.Errorf("pattern %q has %q at position %d", pattern, pattern[i], i)
		}
	}
	return s, nil
}

func (s Set) String() string {
	var b strings.Builder
	for _, on := range s {
		if on {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}

// Rotate shifts every member k steps to the right: the value at index i
// lands at (i+k) mod 12. Negative k rotates left.
func (s Set) Rotate(k int) Set {
	var r Set
	for i, on := range s {
		r[util.Mod(i+k, pitch.NumClasses)] = on
	}
	return r
}

// Transpose moves every pitch class up by k semitones.
func (s Set) Transpose(k int) Set {
	return s.Rotate(k)
}

// Rotations yields (step, s.Rotate(step)) for steps 0 through 11. Each call
// starts over from the receiver, which is never modified.
func (s Set) Rotations() iter.Seq2[int, Set] {
	return func(yield func(int, Set) bool) {
		for step := 0; step < pitch.NumClasses; step++ {
			if !yield(step, s.Rotate(step)) {
				return
			}
		}
	}
}

func (s Set) Contains(c pitch.Class) bool {
	return s[pitch.NewClass(int(c))]
}

func (s Set) Classes() []pitch.Class {
	var res []pitch.Class
	for i, on := range s {
		if on {
			res = append(res, pitch.Class(i))
		}
	}
	return res
}

func (s Set) Len() int {
	n := 0
	for _, on := range s {
		if on {
			n++
		}
	}
	return n
}

func (s Set) IsEmpty() bool {
	return s == Set{}
}
