package chord

import (
	"github.com/jsphweid/chordex/pcset"
)

type Family int

const (
	FamilyMajor Family = iota
	FamilyDominant
	FamilySuspended
	FamilyMinor
	FamilyDiminished
	FamilyAugmented
	FamilyOther
)

var familyNames = [...]string{"major", "dominant", "suspended", "minor", "diminished", "augmented", "other"}

func (f Family) String() string {
	if f < 0 || int(f) >= len(familyNames) {
		return "unknown"
	}
	return familyNames[f]
}

// Template is a chord shape whose own tonic is pitch class 0. Fields are
// unexported so a Template cannot change after the catalog builds it.
type Template struct {
	set          pcset.Set
	name         string
	abbreviation string
	family       Family
}

func (t Template) Set() pcset.Set {
	return t.set
}

func (t Template) Pattern() string {
	return t.set.String()
}

func (t Template) Name() string {
	return t.name
}

// Abbreviation is empty for the plain major triad.
func (t Template) Abbreviation() string {
	return t.abbreviation
}

func (t Template) Family() Family {
	return t.family
}
