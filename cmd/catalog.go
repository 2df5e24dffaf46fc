package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jsphweid/chordex/chord"
	"github.com/spf13/cobra"
)

func init() {
	catalogCmd.Flags().String("family", "", "only list one family, e.g. minor")
	rootCmd.AddCommand(catalogCmd)
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Lists every chord the matcher knows",
	Long:  `Lists every chord the matcher knows, grouped by family, with its interval pattern from the root.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		only, _ := cmd.Flags().GetString("family")
		out := cmd.OutOrStdout()
		r := lipgloss.NewRenderer(out)
		header := r.NewStyle().Bold(true).Underline(true)
		pattern := r.NewStyle().Faint(true)
		abbr := r.NewStyle().Width(12)

		groups := map[chord.Family][]chord.Template{}
		var order []chord.Family
		for _, t := range chord.Default.Templates() {
			if _, ok := groups[t.Family()]; !ok {
				order = append(order, t.Family())
			}
			groups[t.Family()] = append(groups[t.Family()], t)
		}

		found := false
		for _, f := range order {
			if only != "" && !strings.EqualFold(only, f.String()) {
				continue
			}
			found = true
			fmt.Fprintln(out, header.Render(f.String()))
			for _, t := range groups[f] {
				fmt.Fprintf(out, "  %s  %s%s\n", pattern.Render(t.Pattern()), abbr.Render(t.Abbreviation()), t.Name())
			}
		}
		if !found {
			return fmt.Errorf("no chord family %q", only)
		}
		return nil
	},
}
