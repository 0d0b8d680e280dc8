package cmd

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Another0Noob/stagelog/internal/ticket"
	"github.com/Another0Noob/stagelog/internal/ticketparser"
)

var (
	inputFile  string
	outputFile string
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Re-normalize the titles and theaters of a ticket export",
	Long: `Read a ticket export (.csv or .json), run the title and venue
normalizers over every record and write the records that would change to a
CSV file. Titles of the same show are reconciled against the first
bracket-free spelling in the export.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runClean(cmd.OutOrStdout(), inputFile, outputFile)
	},
}

func init() {
	rootCmd.AddCommand(cleanCmd)

	cleanCmd.Flags().StringVarP(
		&inputFile,
		"input",
		"i",
		"",
		"path to ticket export",
	)
	cleanCmd.MarkFlagRequired("input")

	cleanCmd.Flags().StringVarP(
		&outputFile,
		"output",
		"o",
		"",
		"path of the changes CSV (default YYYY-MM-DD-changes.csv)",
	)
}

func runClean(out io.Writer, inputPath, outputPath string) error {
	fmt.Fprintln(out, "--- Reading Tickets ---")

	tickets, err := ticketparser.Parse(inputPath)
	if err != nil {
		return fmt.Errorf("parse ticket file: %w", err)
	}

	fmt.Fprintf(out, "Got %d tickets.\n", len(tickets))

	fmt.Fprintln(out, "--- Normalizing ---")

	changes := ticket.Renormalize(tickets)

	var titles, theaters int
	for _, c := range changes {
		if c.TitleChanged() {
			titles++
		}
		if c.TheaterChanged() {
			theaters++
		}
	}
	fmt.Fprintf(out, "%d titles and %d theaters would change.\n", titles, theaters)

	if len(changes) == 0 {
		return nil
	}

	if outputPath == "" {
		t := time.Now()
		outputPath = fmt.Sprintf("%d-%02d-%02d-changes.csv", t.Year(), t.Month(), t.Day())
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer file.Close()

	if err := writeChanges(file, changes); err != nil {
		return fmt.Errorf("write %s: %w", outputPath, err)
	}

	logger.Info("changes written", zap.String("path", outputPath), zap.Int("changes", len(changes)))
	fmt.Fprintf(out, "Wrote %d changes to %s.\n", len(changes), outputPath)
	return nil
}

func writeChanges(w io.Writer, changes []ticket.Change) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"index", "id", "oldTitle", "newTitle", "oldTheater", "newTheater"}); err != nil {
		return err
	}
	for _, c := range changes {
		err := cw.Write([]string{
			strconv.Itoa(c.Index),
			c.ID,
			c.OldTitle,
			c.NewTitle,
			c.OldTheater,
			c.NewTheater,
		})
		if err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
