package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(instrumentsCmd)
}

var instrumentsCmd = &cobra.Command{
	Use:   "instruments",
	Short: "Lists named instruments and their tunings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv()
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, name := range e.registry.Names() {
			inst, err := e.registry.Get(name)
			if err != nil {
				return err
			}
			fmt.Fprintf(tw, "%s\t%d strings\t%s\n", name, inst.StringCount(), inst.Tuning())
		}
		return tw.Flush()
	},
}
