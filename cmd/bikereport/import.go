package main

import (
	"fmt"
	"time"

	"github.com/jgoulah/bikereport/internal/dataset"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import the dataset CSV into the local database",
	Long: `Reads the dataset CSV and replaces the contents of the local SQLite database
with its rows. Reports can then be built with --source sqlite.`,
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "=== Import started at %s ===\n", time.Now().Format("2006-01-02 15:04:05 MST"))

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log := newLogger(cfg).WithField("command", "import")

	path := getDatasetPath(cfg)
	table, err := dataset.LoadCSV(path)
	if err != nil {
		return fmt.Errorf("loading dataset: %w", err)
	}

	records, err := table.Records()
	if err != nil {
		return fmt.Errorf("converting %s: %w", path, err)
	}

	db, err := openDB()
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	n, err := db.ReplaceRecords(path, records)
	if err != nil {
		return fmt.Errorf("storing records: %w", err)
	}
	log.WithFields(map[string]interface{}{"path": path, "db": db.Path(), "rows": n}).Infof("import finished")

	fmt.Fprintf(out, "✓ Imported %d records from %s into %s\n", n, path, db.Path())
	return nil
}
