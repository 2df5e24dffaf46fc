package cmd

import (
	"fmt"
	"strings"

	"github.com/jsphweid/chordex/chord"
	"github.com/jsphweid/chordex/midi"
	"github.com/spf13/cobra"
)

func init() {
	inspectCmd.Flags().Bool("short", false, "print abbreviated names")
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.mid>",
	Short: "Names every chord sounding in a MIDI file",
	Long:  `Names every chord sounding in a MIDI file, one line per moment the held notes change.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv()
		if err != nil {
			return err
		}
		s, err := midi.ReadMidiFile(args[0])
		if err != nil {
			return err
		}
		chords, err := chord.GetChords(s)
		if err != nil {
			return err
		}
		short, _ := cmd.Flags().GetBool("short")
		out := cmd.OutOrStdout()
		for i, matches := range chord.Default.NameChords(chords) {
			names := make([]string, 0, len(matches))
			for _, m := range matches {
				if short {
					names = append(names, m.Short(e.spelling))
				} else {
					names = append(names, m.Long(e.spelling))
				}
			}
			label := "-"
			if len(names) > 0 {
				label = strings.Join(names, " | ")
			}
			fmt.Fprintf(out, "%8dms  %v  %s\n", chords[i].Offset, chords[i].Notes, label)
		}
		return nil
	},
}
