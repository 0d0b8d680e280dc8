package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Another0Noob/stagelog/internal/normalize"
)

var reference string

var normalizeCmd = &cobra.Command{
	Use:   "normalize",
	Short: "Normalize a performance title or venue name",
}

var normalizeTitleCmd = &cobra.Command{
	Use:   "title <raw>",
	Short: "Strip bracket tags from a title",
	Long: `Strip bracket tags such as "[광주]" from a performance title. When
--reference names the same show without tags, its spelling is used.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), normalize.Title(args[0], reference))
		return nil
	},
}

var normalizeVenueCmd = &cobra.Command{
	Use:   "venue <raw>",
	Short: "Flatten the parentheses of a venue name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), normalize.Venue(args[0]))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(normalizeCmd)
	normalizeCmd.AddCommand(normalizeTitleCmd, normalizeVenueCmd)

	normalizeTitleCmd.Flags().StringVarP(
		&reference,
		"reference",
		"r",
		"",
		"known spelling of the same title",
	)
}
