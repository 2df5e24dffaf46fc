package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jsphweid/chordex/chord"
	"github.com/jsphweid/chordex/pitch"
	"github.com/spf13/cobra"
)

func init() {
	identifyCmd.Flags().Bool("short", false, "print abbreviated names")
	identifyCmd.Flags().Bool("best", false, "print only the most likely name")
	rootCmd.AddCommand(identifyCmd)
}

var identifyCmd = &cobra.Command{
	Use:   "identify <pitch>...",
	Short: "Names the chord formed by pitches",
	Long: `Names the chord formed by pitches. Each argument is a MIDI note number (60),
a pitch with octave (C4, Bb3) or a bare note name (C, F#), which is taken as octave 4.`,
	Example: "  chordex identify C E G\n  chordex identify 57 64 67 72",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv()
		if err != nil {
			return err
		}
		pitches, err := parsePitchArgs(args)
		if err != nil {
			return err
		}
		short, _ := cmd.Flags().GetBool("short")
		if best, _ := cmd.Flags().GetBool("best"); best {
			m, err := chord.Best(pitches)
			if err != nil {
				return err
			}
			printMatches(cmd.OutOrStdout(), []chord.Match{m}, e.spelling, short)
			return nil
		}
		matches, err := chord.Identify(pitches)
		if err != nil {
			return err
		}
		printMatches(cmd.OutOrStdout(), matches, e.spelling, short)
		return nil
	},
}

func parsePitchArgs(args []string) ([]pitch.Specific, error) {
	res := make([]pitch.Specific, 0, len(args))
	for _, arg := range args {
		if n, err := strconv.Atoi(arg); err == nil {
			if n < 0 || n > 127 {
				return nil, fmt.Errorf("midi note %d out of range", n)
			}
			res = append(res, pitch.FromMIDI(n))
			continue
		}
		if c, err := pitch.ParseClass(arg); err == nil {
			res = append(res, pitch.NewSpecific(c, 4))
			continue
		}
		p, err := pitch.ParseSpecific(arg)
		if err != nil {
			return nil, err
		}
		res = append(res, p)
	}
	return res, nil
}

func printMatches(w io.Writer, matches []chord.Match, sp pitch.Spelling, short bool) {
	if len(matches) == 0 {
		fmt.Fprintln(w, "no matches")
		return
	}
	for _, m := range matches {
		if short {
			fmt.Fprintln(w, m.Short(sp))
		} else {
			fmt.Fprintln(w, m.Long(sp))
		}
	}
}
