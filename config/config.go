package config

import (
	"time"

	"github.com/jsphweid/chordex/instrument"
	"github.com/jsphweid/chordex/pitch"
	"github.com/spf13/viper"
)

type ServerConfig struct {
	Addr           string   `mapstructure:"addr"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type MidiConfig struct {
	Port     string        `mapstructure:"port"`
	Debounce time.Duration `mapstructure:"debounce"`
}

// Config holds runtime configuration, populated from .chordex.yaml (or
// .toml), CHORDEX_* env vars and CLI flags.
type Config struct {
	// Tuning wins over Instrument when both are set.
	Tuning          string       `mapstructure:"tuning"`
	Instrument      string       `mapstructure:"instrument"`
	Spelling        string       `mapstructure:"spelling"`
	InstrumentsFile string       `mapstructure:"instruments_file"`
	Watch           bool         `mapstructure:"watch"`
	Debug           bool         `mapstructure:"debug"`
	Server          ServerConfig `mapstructure:"server"`
	Midi            MidiConfig   `mapstructure:"midi"`
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault("tuning", "")
	v.SetDefault("instrument", instrument.DefaultName)
	v.SetDefault("spelling", "preferred")
	v.SetDefault("instruments_file", "")
	v.SetDefault("watch", false)
	v.SetDefault("debug", false)
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("midi.port", "")
	v.SetDefault("midi.debounce", 50*time.Millisecond)
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() (Config, error) {
	return LoadFrom(viper.GetViper())
}

func LoadFrom(v *viper.Viper) (Config, error) {
	SetDefaults(v)
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ResolveInstrument picks the instrument the config describes: an explicit
// tuning first, then a named preset from r.
func (c Config) ResolveInstrument(r *instrument.Registry) (*instrument.Instrument, error) {
	if c.Tuning != "" {
		return instrument.FromTuning("custom", c.Tuning)
	}
	name := c.Instrument
	if name == "" {
		name = instrument.DefaultName
	}
	return r.Get(name)
}

func (c Config) SpellingPreference() (pitch.Spelling, error) {
	return pitch.ParseSpelling(c.Spelling)
}
