package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/Another0Noob/stagelog/internal/kopisapi"
	"github.com/Another0Noob/stagelog/internal/normalize"
)

var trendingCmd = &cobra.Command{
	Use:   "trending",
	Short: "Show the KOPIS box office of the last week",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		genre, err := kopisapi.ParseGenre(genreFlag)
		if err != nil {
			return err
		}

		client, err := newClient(nil)
		if err != nil {
			return err
		}

		entries, err := client.BoxOffice(cmd.Context(), genre, time.Time{}, time.Time{})
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "RANK\tTITLE\tVENUE\tGENRE")
		for _, e := range entries {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n",
				e.Rank,
				normalize.Title(e.Title, ""),
				normalize.Venue(e.Venue),
				e.Genre,
			)
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(trendingCmd)

	trendingCmd.Flags().StringVarP(&genreFlag, "genre", "g", "", "play or musical")
}
