package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/jgoulah/bikereport/pkg/models"
	"github.com/spf13/cobra"
)

var listLimit int

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored rental records",
	Long:  `Displays the rental records stored in the local database by the import command.`,
	RunE:  runList,
}

func init() {
	listCmd.Flags().IntVar(&listLimit, "limit", 0, "Limit number of records shown (0 = no limit)")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	db, err := openExistingDB()
	if errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(out, "No data found (run 'bikereport import' first)")
		return nil
	}
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	data, err := db.ListRecords()
	if err != nil {
		return fmt.Errorf("listing records: %w", err)
	}

	if len(data) == 0 {
		fmt.Fprintln(out, "No data found (run 'bikereport import' first)")
		return nil
	}

	source, err := db.Source()
	if err != nil {
		return err
	}

	shown := data
	if listLimit > 0 && len(shown) > listLimit {
		shown = shown[:listLimit]
	}

	fmt.Fprintf(out, "\nRental Data (%s):\n", source)
	fmt.Fprintln(out, "------------------------------------------------------")
	fmt.Fprintf(out, "%-12s  %-16s  %-8s  %10s\n", "Date", "Weather", "Day", "Rentals")
	fmt.Fprintln(out, "------------------------------------------------------")

	for _, record := range shown {
		fmt.Fprintf(out, "%-12s  %-16s  %-8s  %10s\n",
			record.Date.Format("2006-01-02"),
			models.WeatherLabel(record.Weathersit),
			models.DayTypeLabel(models.IsWeekend(record.Weekday)),
			humanize.Comma(int64(record.Count)))
	}

	var total int64
	for _, record := range data {
		total += int64(record.Count)
	}

	fmt.Fprintln(out, "------------------------------------------------------")
	if len(shown) < len(data) {
		fmt.Fprintf(out, "Showing %d of %d records\n", len(shown), len(data))
	}
	fmt.Fprintf(out, "Total: %s rentals (%s)\n", humanize.Comma(total), english.Plural(len(data), "record", ""))

	return nil
}
