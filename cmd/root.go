package cmd

import (
	"os"
	"strings"

	"github.com/jsphweid/chordex/config"
	"github.com/jsphweid/chordex/instrument"
	"github.com/jsphweid/chordex/logger"
	"github.com/jsphweid/chordex/pitch"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:          "chordex",
	Short:        "Names chords from pitches or fret positions",
	Long:         `Names every chord a set of pitches could be, from note names, MIDI notes, fret positions, MIDI files or a live MIDI keyboard.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Setup(logger.Config{Debug: viper.GetBool("debug")})
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default .chordex.yaml)")
	flags.Bool("debug", false, "verbose logging to stderr")
	flags.String("tuning", "", `open string pitches, low to high, e.g. "E2 A2 D3 G3 B3 E4"`)
	flags.String("instrument", instrument.DefaultName, "named instrument preset")
	flags.String("spelling", "preferred", "accidentals for tonics: preferred, sharps or flats")
	flags.String("instruments-file", "", "TOML file with extra instrument presets")
	flags.Bool("watch", false, "reload the instruments file when it changes")

	viper.BindPFlag("debug", flags.Lookup("debug"))
	viper.BindPFlag("tuning", flags.Lookup("tuning"))
	viper.BindPFlag("instrument", flags.Lookup("instrument"))
	viper.BindPFlag("spelling", flags.Lookup("spelling"))
	viper.BindPFlag("instruments_file", flags.Lookup("instruments-file"))
	viper.BindPFlag("watch", flags.Lookup("watch"))
}

func initConfig() {
	if cfgFile, _ := rootCmd.PersistentFlags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".chordex")
		viper.AddConfigPath(".")
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix("CHORDEX")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// It's fine if no config file is found; we use defaults.
	_ = viper.ReadInConfig()
}

// env is what most commands need: config plus the instrument and spelling
// it selects.
type env struct {
	cfg        config.Config
	registry   *instrument.Registry
	instrument *instrument.Instrument
	// registry name of instrument, empty for a --tuning instrument
	instrumentName string
	spelling       pitch.Spelling
}

func loadEnv() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	registry := instrument.NewRegistry()
	if cfg.InstrumentsFile != "" {
		n, err := registry.LoadFile(cfg.InstrumentsFile)
		if err != nil {
			return nil, err
		}
		logger.L().Debug("instruments.loaded", "path", cfg.InstrumentsFile, "count", n)
	}
	inst, err := cfg.ResolveInstrument(registry)
	if err != nil {
		return nil, err
	}
	sp, err := cfg.SpellingPreference()
	if err != nil {
		return nil, err
	}
	e := &env{cfg: cfg, registry: registry, instrument: inst, spelling: sp}
	if cfg.Tuning == "" {
		e.instrumentName = inst.Name
	}
	return e, nil
}

// watch starts reloading the instruments file when the config asks for it.
// The returned func stops the watcher and is safe to call either way.
func (e *env) watch() (stop func(), err error) {
	if !e.cfg.Watch || e.cfg.InstrumentsFile == "" {
		return func() {}, nil
	}
	w, err := instrument.NewWatcher(e.cfg.InstrumentsFile, e.registry)
	if err != nil {
		return nil, err
	}
	if err := w.Start(); err != nil {
		w.Stop()
		return nil, err
	}
	go func() {
		for err := range w.Reloads {
			if err != nil {
				logger.L().Warn("instruments.reload_failed", "path", w.Path, "err", err)
				continue
			}
			logger.L().Info("instruments.reloaded", "path", w.Path)
		}
	}()
	return w.Stop, nil
}
