package midi

import (
	"fmt"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/jsphweid/chordex/model"
	"github.com/jsphweid/chordex/util"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

// Tracker follows which keys are held on a live input. Chords are usually
// struck a few milliseconds apart, so change notifications are debounced.
type Tracker struct {
	mu        sync.Mutex
	pressed   map[uint8]bool
	debounced func(f func())
	onChange  func(held model.Notes)
}

func NewTracker(delay time.Duration, onChange func(held model.Notes)) *Tracker {
	t := &Tracker{
		pressed:  make(map[uint8]bool),
		onChange: onChange,
	}
	if delay > 0 {
		t.debounced = debounce.New(delay)
	} else {
		t.debounced = func(f func()) { f() }
	}
	return t
}

// Handle applies one message and reports whether the held set changed.
func (t *Tracker) Handle(msg midi.Message) bool {
	var ch, key, vel uint8
	t.mu.Lock()
	changed := false
	switch {
	case msg.GetNoteStart(&ch, &key, &vel):
		changed = !t.pressed[key]
		t.pressed[key] = true
	case msg.GetNoteEnd(&ch, &key):
		changed = t.pressed[key]
		delete(t.pressed, key)
	}
	t.mu.Unlock()

	if changed && t.onChange != nil {
		t.debounced(func() {
			t.onChange(t.Held())
		})
	}
	return changed
}

func (t *Tracker) Held() model.Notes {
	t.mu.Lock()
	defer t.mu.Unlock()
	return util.SortedKeys(t.pressed)
}

func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pressed = make(map[uint8]bool)
}

// Listen feeds every message arriving on in to t until stop is called.
func Listen(in drivers.In, t *Tracker) (stop func(), err error) {
	return midi.ListenTo(in, func(msg midi.Message, timestampms int32) {
		t.Handle(msg)
	})
}

// OpenInPort finds an input by name, or uses the first port when name is
// empty.
func OpenInPort(name string) (drivers.In, error) {
	if name == "" {
		return midi.InPort(0)
	}
	drv := drivers.Get()
	if drv == nil {
		return nil, fmt.Errorf("no midi driver registered")
	}
	ins, err := drv.Ins()
	if err != nil {
		return nil, err
	}
	for _, in := range ins {
		if in.String() == name {
			return in, nil
		}
	}
	return nil, fmt.Errorf("midi input %q not found", name)
}

func CloseDriver() {
	midi.CloseDriver()
}
