package cmd

import (
	"github.com/jsphweid/chordex/chord"
	"github.com/jsphweid/chordex/tui"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(tuiCmd)
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Names chords as you type fret specs",
	Long:  `Names chords as you type fret specs. Tab cycles named instruments, Esc quits.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv()
		if err != nil {
			return err
		}
		stop, err := e.watch()
		if err != nil {
			return err
		}
		defer stop()
		return tui.Run(tui.New(chord.Default, e.registry, e.instrument, e.spelling))
	},
}
