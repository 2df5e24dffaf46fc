package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/jsphweid/chordex/chord"
	"github.com/jsphweid/chordex/logger"
	"github.com/jsphweid/chordex/midi"
	"github.com/jsphweid/chordex/model"
	"github.com/jsphweid/chordex/pitch"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // autoregisters driver
)

func init() {
	listenCmd.Flags().String("port", "", "MIDI input port name (default first port)")
	viper.BindPFlag("midi.port", listenCmd.Flags().Lookup("port"))
	rootCmd.AddCommand(listenCmd)
}

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Names chords played on a MIDI keyboard",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv()
		if err != nil {
			return err
		}
		defer midi.CloseDriver()

		in, err := midi.OpenInPort(e.cfg.Midi.Port)
		if err != nil {
			return err
		}
		logger.L().Info("midi.listening", "port", in.String())

		out := cmd.OutOrStdout()
		tracker := midi.NewTracker(e.cfg.Midi.Debounce, func(held model.Notes) {
			fmt.Fprintln(out, describeHeld(held, e.spelling))
		})
		stop, err := midi.Listen(in, tracker)
		if err != nil {
			return err
		}
		defer stop()

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		return nil
	},
}

func describeHeld(held model.Notes, sp pitch.Spelling) string {
	if len(held) == 0 {
		return "-"
	}
	pitches := make([]pitch.Specific, len(held))
	for i, n := range held {
		pitches[i] = pitch.FromMIDI(int(n))
	}
	matches, _ := chord.Identify(pitches)
	if len(matches) == 0 {
		return "no matches"
	}
	names := make([]string, len(matches))
	for i, m := range matches {
		names[i] = m.Long(sp)
	}
	return strings.Join(names, " | ")
}
