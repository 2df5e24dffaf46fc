package chord

import (
	"github.com/jsphweid/chordex/pcset"
	"github.com/jsphweid/chordex/pitch"
)

type Match struct {
	Template Template
	Tonic    pitch.Class
}

// Short renders e.g. "F♯m7".
func (m Match) Short(sp pitch.Spelling) string {
	return m.Tonic.Name(sp) + m.Template.abbreviation
}

// Long renders e.g. "F♯ minor 7th".
func (m Match) Long(sp pitch.Spelling) string {
	return m.Tonic.Name(sp) + " " + m.Template.name
}

// MatchAll returns, in catalog order, every template that equals some
// rotation of input, with the tonic that rotation implies. Each template
// contributes at most once. An empty result means no known chord.
func (c *Catalog) MatchAll(input pcset.Set) []Match {
	var res []Match
	if input.IsEmpty() {
		return res
	}

	var rotations [pitch.NumClasses]pcset.Set
	for step, r := range input.Rotations() {
		rotations[step] = r
	}

	for _, t := range c.templates {
		for step, r := range rotations {
			if r == t.set {
				// template tonic is 0, so undo the rotation
				res = append(res, Match{Template: t, Tonic: pitch.NewClass(-step)})
				break
			}
		}
	}
	return res
}

// Identify matches the pitch classes of the given pitches.
func (c *Catalog) Identify(pitches []pitch.Specific) ([]Match, error) {
	if len(pitches) == 0 {
		return nil, ErrSilentChord
	}
	return c.MatchAll(pcset.FromPitches(pitches)), nil
}

// Best picks one interpretation, preferring a match rooted on the lowest
// sounded pitch and otherwise the first in catalog order.
func (c *Catalog) Best(pitches []pitch.Specific) (Match, error) {
	matches, err := c.Identify(pitches)
	if err != nil {
		return Match{}, err
	}
	if len(matches) == 0 {
		return Match{}, &NoMatchError{Input: pcset.FromPitches(pitches)}
	}
	bass, _ := pitch.Lowest(pitches)
	for _, m := range matches {
		if m.Tonic == bass.Class {
			return m, nil
		}
	}
	return matches[0], nil
}

func MatchAll(input pcset.Set) []Match {
	return Default.MatchAll(input)
}

func Identify(pitches []pitch.Specific) ([]Match, error) {
	return Default.Identify(pitches)
}

func Best(pitches []pitch.Specific) (Match, error) {
	return Default.Best(pitches)
}
