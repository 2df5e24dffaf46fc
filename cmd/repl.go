package cmd

import (
	"github.com/jsphweid/chordex/chord"
	"github.com/jsphweid/chordex/logger"
	"github.com/jsphweid/chordex/repl"
	"github.com/spf13/cobra"
)

func init() {
	replCmd.Flags().Bool("short", false, "start with abbreviated names")
	rootCmd.AddCommand(replCmd)
}

var replCmd = &cobra.Command{
	Use:   "repl",
	Short:          "Reads fret specs line by line and names their chords",
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

		short, _ := cmd.Flags().GetBool("short")
		return repl.Run(cmd.InOrStdin(), cmd.OutOrStdout(), repl.Options{
			Catalog:        chord.Default,
			Registry:       e.registry,
			Instrument:     e.instrument,
			InstrumentName: e.instrumentName,
			Spelling:       e.spelling,
			Short:          short,
			Logger:         logger.L(),
		})
	},
}
