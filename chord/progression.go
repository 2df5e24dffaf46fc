package chord

import (
	"fmt"
	"sort"

	"github.com/jsphweid/chordex/model"
	"github.com/jsphweid/chordex/pcset"
	"github.com/jsphweid/chordex/pitch"
	"github.com/jsphweid/chordex/util"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

func getChord(offset int64, pressed map[uint8]bool) model.Chord {
	// storing it in millis for space savings, accurate enough for display
	return model.Chord{
		Offset: uint32(offset / 1000),
		Notes:  util.SortedKeys(pressed),
	}
}

// GetChords walks every track of s and returns the held-note state after
// each moment something changed, in time order. Silent moments are left out.
func GetChords(s *smf.SMF) (chords []model.Chord, err error) {
	// smf can panic on malformed input
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("reading midi events: %v", r)
		}
	}()

	var reducedEvents []model.ReducedEvent
	for _, events := range s.Tracks {
		var absTicks int64
		for _, event := range events {
			absTicks += int64(event.Delta)
			msg := midi.Message(event.Message)
			var channel, key, velocity uint8
			switch {
			case msg.GetNoteStart(&channel, &key, &velocity):
				reducedEvents = append(reducedEvents, model.ReducedEvent{
					Offset: s.TimeAt(absTicks),
					Note:   key,
				})
			case msg.GetNoteEnd(&channel, &key):
				reducedEvents = append(reducedEvents, model.ReducedEvent{
					Offset:    s.TimeAt(absTicks),
					IsNoteOff: true,
					Note:      key,
				})
			}
		}
	}

	// prioritize smaller offset values then note off
	sort.SliceStable(reducedEvents, func(i, j int) bool {
		if reducedEvents[i].Offset != reducedEvents[j].Offset {
			return reducedEvents[i].Offset < reducedEvents[j].Offset
		}
		return reducedEvents[i].IsNoteOff && !reducedEvents[j].IsNoteOff
	})

	timestampToChord := make(map[int64]model.Chord)
	pressed := make(map[uint8]bool)
	for _, evt := range reducedEvents {
		if evt.IsNoteOff {
			delete(pressed, evt.Note)
		} else {
			pressed[evt.Note] = true
		}
		timestampToChord[evt.Offset] = getChord(evt.Offset, pressed)
	}

	for _, offset := range util.SortedKeys(timestampToChord) {
		c := timestampToChord[offset]
		if len(c.Notes) > 0 {
			chords = append(chords, c)
		}
	}
	return chords, nil
}

func notesToSet(notes model.Notes) pcset.Set {
	var s pcset.Set
	for _, n := range notes {
		s[int(n)%pitch.NumClasses] = true
	}
	return s
}

// NameChords returns the matches for each moment of a timeline.
func (c *Catalog) NameChords(chords []model.Chord) [][]Match {
	res := make([][]Match, 0, len(chords))
	for _, ch := range chords {
		res = append(res, c.MatchAll(notesToSet(ch.Notes)))
	}
	return res
}
