package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Another0Noob/stagelog/internal/kopisapi"
	"github.com/Another0Noob/stagelog/internal/normalize"
)

var (
	genreFlag string
	dateFlag  string
	pagesFlag int
)

var searchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Search KOPIS for performances",
	Long: `Search KOPIS for performances whose title contains term. Titles and
venues are printed both as published and normalized.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSearch(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringVarP(&genreFlag, "genre", "g", "", "play or musical")
	searchCmd.Flags().StringVarP(&dateFlag, "date", "d", "", "start of the search window (YYYY-MM-DD)")
	searchCmd.Flags().IntVarP(&pagesFlag, "pages", "p", 1, "maximum number of pages to fetch")
}

func runSearch(cmd *cobra.Command, term string) error {
	genre, err := kopisapi.ParseGenre(genreFlag)
	if err != nil {
		return err
	}

	q := kopisapi.SearchQuery{Title: term, Genre: genre}
	if dateFlag != "" {
		q.Start, err = time.Parse(time.DateOnly, dateFlag)
		if err != nil {
			return fmt.Errorf("parse --date: %w", err)
		}
	}

	client, err := newClient(nil)
	if err != nil {
		return err
	}

	results, err := client.SearchAll(cmd.Context(), q, pagesFlag)
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}
	logger.Debug("search finished", zap.String("term", term), zap.Int("results", len(results)))

	printPerformances(cmd.OutOrStdout(), results)
	return nil
}

// printPerformances writes one row per performance. The title reference is
// the first bracket-free title in the listing.
func printPerformances(w io.Writer, results []kopisapi.Performance) {
	var ref string
	for _, p := range results {
		if !normalize.HasTag(p.Title) {
			ref = p.Title
			break
		}
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tVENUE\tPERIOD")
	for _, p := range results {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s~%s\n",
			p.ID,
			normalize.Title(p.Title, ref),
			normalize.Venue(p.Venue),
			p.From, p.To,
		)
	}
	tw.Flush()
}
