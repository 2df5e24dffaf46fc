package midi

import (
	"bytes"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/jsphweid/chordex/model"
	"github.com/jsphweid/chordex/pitch"
	"github.com/stretchr/testify/assert"
	"gitlab.com/gomidi/midi/v2"
)

func eMajorVoicing() []pitch.Specific {
	return []pitch.Specific{
		pitch.NewSpecific(pitch.E, 2),
		pitch.NewSpecific(pitch.B, 2),
		pitch.NewSpecific(pitch.E, 3),
		pitch.NewSpecific(pitch.GSharp, 3),
	}
}

func TestChordToSMFWritesEveryNote(t *testing.T) {
	assert := assert.New(t)
	s, err := ChordToSMF(eMajorVoicing(), 0)
	assert.NoError(err)
	assert.Len(s.Tracks, 1)

	var on, off []uint8
	for _, evt := range s.Tracks[0] {
		msg := midi.Message(evt.Message)
		var ch, key, vel uint8
		switch {
		case msg.GetNoteStart(&ch, &key, &vel):
			on = append(on, key)
		case msg.GetNoteEnd(&ch, &key):
			off = append(off, key)
		}
	}
	assert.Equal([]uint8{40, 47, 52, 56}, on)
	assert.Equal([]uint8{40, 47, 52, 56}, off)
}

func TestChordToSMFRejectsOutOfRangePitches(t *testing.T) {
	_, err := ChordToSMF([]pitch.Specific{pitch.NewSpecific(pitch.C, 12)}, 0)
	assert.Error(t, err)
}

func TestWriteFileThenReadMidiFile(t *testing.T) {
	assert := assert.New(t)
	s, err := ChordToSMF(eMajorVoicing(), 30)
	assert.NoError(err)

	path := filepath.Join(t.TempDir(), "e.mid")
	assert.NoError(WriteFile(path, s))

	back, err := ReadMidiFile(path)
	assert.NoError(err)
	assert.Len(back.Tracks, 1)
}

func TestReadMidiFileMissing(t *testing.T) {
	_, err := ReadMidiFile(filepath.Join(t.TempDir(), "nope.mid"))
	assert.Error(t, err)
}

func TestReadRejectsGarbage(t *testing.T) {
	_, err := Read([]byte("not a midi file"))
	assert.Error(t, err)
	_, err = Read(nil)
	assert.Error(t, err)
}

func TestReadRoundTripsBytes(t *testing.T) {
	s, err := ChordToSMF(eMajorVoicing(), 0)
	assert.NoError(t, err)
	var buf bytes.Buffer
	_, err = s.WriteTo(&buf)
	assert.NoError(t, err)
	back, err := Read(buf.Bytes())
	assert.NoError(t, err)
	assert.Len(t, back.Tracks, 1)
}

func TestTrackerFollowsHeldKeys(t *testing.T) {
	assert := assert.New(t)
	tr := NewTracker(0, nil)

	assert.True(tr.Handle(midi.NoteOn(0, 64, 90)))
	assert.True(tr.Handle(midi.NoteOn(0, 60, 90)))
	assert.False(tr.Handle(midi.NoteOn(0, 60, 90)))
	assert.Equal(model.Notes{60, 64}, tr.Held())

	assert.True(tr.Handle(midi.NoteOff(0, 60)))
	assert.False(tr.Handle(midi.NoteOff(0, 61)))
	assert.Equal(model.Notes{64}, tr.Held())

	// note on with zero velocity releases
	assert.True(tr.Handle(midi.NoteOn(0, 64, 0)))
	assert.Empty(tr.Held())

	assert.False(tr.Handle(midi.ControlChange(0, 64, 127)))
}

func TestTrackerNotifiesWithoutDelay(t *testing.T) {
	var got []model.Notes
	tr := NewTracker(0, func(held model.Notes) {
		got = append(got, held)
	})
	tr.Handle(midi.NoteOn(0, 60, 90))
	tr.Handle(midi.NoteOn(0, 64, 90))
	tr.Handle(midi.NoteOff(0, 60))
	assert.Equal(t, []model.Notes{{60}, {60, 64}, {64}}, got)
}

func TestTrackerDebouncesBursts(t *testing.T) {
	var mu sync.Mutex
	var got []model.Notes
	tr := NewTracker(20*time.Millisecond, func(held model.Notes) {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, held)
	})
	tr.Handle(midi.NoteOn(0, 60, 90))
	tr.Handle(midi.NoteOn(0, 64, 90))
	tr.Handle(midi.NoteOn(0, 67, 90))

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == 1
	}, time.Second, 5*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, model.Notes{60, 64, 67}, got[0])
}

func TestTrackerReset(t *testing.T) {
	tr := NewTracker(0, nil)
	tr.Handle(midi.NoteOn(0, 60, 90))
	tr.Reset()
	assert.Empty(t, tr.Held())
}
