package cmd

import (
	"fmt"
	"strings"

	"github.com/jsphweid/chordex/chord"
	"github.com/jsphweid/chordex/logger"
	"github.com/jsphweid/chordex/midi"
	"github.com/spf13/cobra"
)

func init() {
	fretsCmd.Flags().Bool("short", false, "print abbreviated names")
	fretsCmd.Flags().String("out", "", "also write the voicing to this MIDI file")
	fretsCmd.Flags().Uint32("strum", 0, "ticks between strings in the MIDI file")
	rootCmd.AddCommand(fretsCmd)
}

var fretsCmd = &cobra.Command{
	Use:     "frets <spec>",
	Short:   "Names the chord a fret spec plays",
	Long:    `Names the chord a fret spec plays: one character per string (x for muted) or whitespace separated positions.`,
	Example: "  chordex frets x32010\n  chordex frets --instrument ukulele 0003\n  chordex frets x x 12 x x 10",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv()
		if err != nil {
			return err
		}
		spec := strings.Join(args, " ")
		pitches, err := e.instrument.Resolve(spec)
		if err != nil {
			return err
		}
		matches, err := chord.Identify(pitches)
		if err != nil {
			return err
		}
		short, _ := cmd.Flags().GetBool("short")
		printMatches(cmd.OutOrStdout(), matches, e.spelling, short)

		if out, _ := cmd.Flags().GetString("out"); out != "" {
			strum, _ := cmd.Flags().GetUint32("strum")
			s, err := midi.ChordToSMF(pitches, strum)
			if err != nil {
				return err
			}
			if err := midi.WriteFile(out, s); err != nil {
				return err
			}
			logger.L().Info("frets.wrote", "path", out, "notes", len(pitches))
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", out)
		}
		return nil
	},
}
