package midi

import (
	"fmt"
	"os"

	"github.com/jsphweid/chordex/pitch"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const (
	channel  = 0
	velocity = 100
)

var clock = smf.MetricTicks(960)

// ChordToSMF builds a single-track file that sounds pitches for one whole
// note, each entering strum ticks after the one before it.
func ChordToSMF(pitches []pitch.Specific, strum uint32) (*smf.SMF, error) {
	keys := make([]uint8, 0, len(pitches))
	for _, p := range pitches {
		n := p.MIDI()
		if n < 0 || n > 127 {
			return nil, fmt.Errorf("%v is outside the midi note range", p)
		}
		keys = append(keys, uint8(n))
	}

	var track smf.Track
	var elapsed uint32
	for i, key := range keys {
		var delta uint32
		if i > 0 {
			delta = strum
			elapsed += strum
		}
		track.Add(delta, midi.NoteOn(channel, key, velocity))
	}

	sustain := clock.Ticks4th() * 4
	if elapsed < sustain {
		sustain -= elapsed
	} else {
		sustain = clock.Ticks4th()
	}
	for i, key := range keys {
		var delta uint32
		if i == 0 {
			delta = sustain
		}
		track.Add(delta, midi.NoteOff(channel, key))
	}
	track.Close(0)

	var res smf.SMF
	res.TimeFormat = clock
	res.Tracks = append(res.Tracks, track)
	return &res, nil
}

func WriteFile(path string, s *smf.SMF) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if _, err := s.WriteTo(f); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
