package model

type Notes = []uint8

// Chord is the set of keys held at one moment of a MIDI file.
type Chord struct {
	// milliseconds from the start of the file
	Offset uint32
	Notes  Notes
}

type ReducedEvent struct {
	// microseconds
	Offset    int64
	IsNoteOff bool
	Note      uint8
}
