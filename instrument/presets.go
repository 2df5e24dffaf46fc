package instrument

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
)

const DefaultName = "guitar"

var builtin = []Preset{
	{Name: "guitar", Tuning: "E2 A2 D3 G3 B3 E4"},
	{Name: "drop-d", Tuning: "D2 A2 D3 G3 B3 E4"},
	{Name: "bass", Tuning: "E1 A1 D2 G2"},
	{Name: "ukulele", Tuning: "G4 C4 E4 A4"},
	{Name: "mandolin", Tuning: "G3 D4 A4 E5"},
	{Name: "banjo", Tuning: "G4 D3 G3 B3 D4"},
}

type Preset struct {
	Name   string `toml:"name"`
	Tuning string `toml:"tuning"`
}

// PresetFile is the TOML layout of a user instruments file:
//
//	[[instrument]]
//	name = "baritone"
//	tuning = "B1 E2 A2 D3 F#3 B3"
type PresetFile struct {
	Instruments []Preset `toml:"instrument"`
}

// Registry holds named instruments. It is safe for concurrent use, since a
// Watcher may reload it while callers look instruments up.
type Registry struct {
	mu          sync.RWMutex
	instruments map[string]*Instrument
	// names each preset file contributed on its last load
	loaded map[string][]string
}

func NewRegistry() *Registry {
	r := &Registry{
		instruments: make(map[string]*Instrument),
		loaded:      make(map[string][]string),
	}
	for _, p := range builtin {
		inst, err := FromTuning(p.Name, p.Tuning)
		if err != nil {
			panic(fmt.Sprintf("builtin instrument %s: %v", p.Name, err))
		}
		r.instruments[p.Name] = inst
	}
	return r
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func (r *Registry) Get(name string) (*Instrument, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	inst, ok := r.instruments[normalize(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownInstrument, name)
	}
	return inst, nil
}

func (r *Registry) Add(inst *Instrument) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.instruments[normalize(inst.Name)] = inst
}

func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.instruments))
	for name := range r.instruments {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadFile replaces the instruments a previous load of path contributed with
// the ones the file holds now. A builtin shadowed by a removed entry comes
// back. Nothing changes unless the whole file parses.
func (r *Registry) LoadFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}
	insts, err := ParsePresets(data)
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", path, err)
	}

	key := path
	if abs, err := filepath.Abs(path); err == nil {
		key = abs
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, name := range r.loaded[key] {
		delete(r.instruments, name)
		if b, ok := builtinByName(name); ok {
			r.instruments[name] = b
		}
	}
	names := make([]string, 0, len(insts))
	for _, inst := range insts {
		name := normalize(inst.Name)
		r.instruments[name] = inst
		names = append(names, name)
	}
	r.loaded[key] = names
	return len(insts), nil
}

func builtinByName(name string) (*Instrument, bool) {
	for _, p := range builtin {
		if p.Name == name {
			inst, err := FromTuning(p.Name, p.Tuning)
			return inst, err == nil
		}
	}
	return nil, false
}

func ParsePresets(data []byte) ([]*Instrument, error) {
	var file PresetFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	res := make([]*Instrument, 0, len(file.Instruments))
	for _, p := range file.Instruments {
		if normalize(p.Name) == "" {
			return nil, fmt.Errorf("instrument with tuning %q has no name", p.Tuning)
		}
		inst, err := FromTuning(normalize(p.Name), p.Tuning)
		if err != nil {
			return nil, fmt.Errorf("instrument %s: %w", p.Name, err)
		}
		res = append(res, inst)
	}
	return res, nil
}
