package chord

import (
	"fmt"

	"github.com/jsphweid/chordex/pcset"
)

// Entry is one hardcoded catalog row. Bit i of Pattern, left to right, means
// the pitch class i semitones above the template's tonic sounds.
type Entry struct {
	Pattern      string
	Name         string
	Abbreviation string
	Family       Family
}

// Output depends on these triples verbatim. Order sets match order.
var entries = []Entry{
	{"100010010000", "major", "", FamilyMajor},
	{"100010010100", "major 6th", "6", FamilyMajor},
	{"100010010001", "major 7th", "maj7", FamilyMajor},
	{"101010010001", "major 9th", "maj9", FamilyMajor},
	{"101010010000", "added 9th", "add9", FamilyMajor},
	{"101010010100", "6/9", "6/9", FamilyMajor},
	{"100010110001", "major 7th sharp 11th", "maj7♯11", FamilyMajor},
	{"100010000001", "major 7th no 5th", "maj7(no5)", FamilyMajor},
	{"101010010101", "major 13th", "maj13", FamilyMajor},

	{"100010010010", "dominant 7th", "7", FamilyDominant},
	{"101010010010", "dominant 9th", "9", FamilyDominant},
	{"110010010010", "dominant 7th flat 9th", "7♭9", FamilyDominant},
	{"100110010010", "dominant 7th sharp 9th", "7♯9", FamilyDominant},
	{"101011010010", "dominant 11th", "11", FamilyDominant},
	{"101010010110", "dominant 13th", "13", FamilyDominant},
	{"100010100010", "dominant 7th flat 5th", "7♭5", FamilyDominant},
	{"100010000010", "dominant 7th no 5th", "7(no5)", FamilyDominant},
	{"100010110010", "dominant 7th sharp 11th", "7♯11", FamilyDominant},
	{"100010011010", "dominant 7th flat 13th", "7♭13", FamilyDominant},

	{"101000010000", "suspended 2nd", "sus2", FamilySuspended},
	{"100001010000", "suspended 4th", "sus4", FamilySuspended},
	{"101000010010", "dominant 7th suspended 2nd", "7sus2", FamilySuspended},
	{"100001010010", "dominant 7th suspended 4th", "7sus4", FamilySuspended},
	{"101001010010", "dominant 9th suspended 4th", "9sus4", FamilySuspended},
	{"100001000000", "suspended 4th no 5th", "sus4(no5)", FamilySuspended},

	{"100100010000", "minor", "m", FamilyMinor},
	{"100100010100", "minor 6th", "m6", FamilyMinor},
	{"100100010010", "minor 7th", "m7", FamilyMinor},
	{"100100010001", "minor major 7th", "m(maj7)", FamilyMinor},
	{"101100010010", "minor 9th", "m9", FamilyMinor},
	{"101100010000", "minor added 9th", "m(add9)", FamilyMinor},
	{"101101010010", "minor 11th", "m11", FamilyMinor},
	{"101100010110", "minor 13th", "m13", FamilyMinor},
	{"100100000010", "minor 7th no 5th", "m7(no5)", FamilyMinor},
	{"101100010100", "minor 6/9", "m6/9", FamilyMinor},

	{"100100100000", "diminished", "dim", FamilyDiminished},
	{"100100100100", "diminished 7th", "dim7", FamilyDiminished},
	{"100100100010", "half-diminished 7th", "m7♭5", FamilyDiminished},
	{"100100100001", "diminished major 7th", "dim(maj7)", FamilyDiminished},

	{"100010001000", "augmented", "aug", FamilyAugmented},
	{"100010001010", "augmented 7th", "aug7", FamilyAugmented},
	{"100010001001", "augmented major 7th", "aug(maj7)", FamilyAugmented},
	{"101010001010", "augmented 9th", "aug9", FamilyAugmented},

	{"100000010000", "power chord", "5", FamilyOther},
	{"100010100000", "major flat 5th", "(♭5)", FamilyOther},
	{"100010100001", "major 7th flat 5th", "maj7♭5", FamilyOther},
	{"100011010000", "added 11th", "add11", FamilyOther},
	{"100010110000", "added sharp 11th", "add♯11", FamilyOther},
	{"100101010000", "minor added 11th", "m(add11)", FamilyOther},
	{"100001000010", "quartal", "quartal", FamilyOther},
}

// Default is built during package initialization and never modified
// afterwards, so it is safe for concurrent readers. A bad row panics with a
// *CatalogIntegrityError before main runs.
var Default = mustCatalog(entries)

// Catalog is an ordered, read-only list of templates.
type Catalog struct {
	templates []Template
	byPattern map[pcset.Set]int
}

func NewCatalog(rows []Entry) (*Catalog, error) {
	c := &Catalog{
		templates: make([]Template, 0, len(rows)),
		byPattern: make(map[pcset.Set]int, len(rows)),
	}
	for i, row := range rows {
		set, err := pcset.Parse(row.Pattern)
		if err != nil {
			return nil, &CatalogIntegrityError{Index: i, Pattern: row.Pattern, Reason: err.Error()}
		}
		if !set[0] {
			return nil, &CatalogIntegrityError{Index: i, Pattern: row.Pattern, Reason: "tonic (bit 0) is not sounded"}
		}
		if row.Name == "" {
			return nil, &CatalogIntegrityError{Index: i, Pattern: row.Pattern, Reason: "empty name"}
		}
		if prev, ok := c.byPattern[set]; ok {
			return nil, &CatalogIntegrityError{
				Index:   i,
				Pattern: row.Pattern,
				Reason:  fmt.Sprintf("duplicates %q", c.templates[prev].name),
			}
		}
		c.byPattern[set] = len(c.templates)
		c.templates = append(c.templates, Template{
			set:          set,
			name:         row.Name,
			abbreviation: row.Abbreviation,
			family:       row.Family,
		})
	}
	return c, nil
}

func mustCatalog(rows []Entry) *Catalog {
	c, err := NewCatalog(rows)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Catalog) Len() int {
	return len(c.templates)
}

// Templates returns a copy in catalog order.
func (c *Catalog) Templates() []Template {
	res := make([]Template, len(c.templates))
	copy(res, c.templates)
	return res
}

func (c *Catalog) Lookup(pattern string) (Template, bool) {
	set, err := pcset.Parse(pattern)
	if err != nil {
		return Template{}, false
	}
	i, ok := c.byPattern[set]
	if !ok {
		return Template{}, false
	}
	return c.templates[i], true
}
