package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jgoulah/bikereport/internal/config"
	"github.com/jgoulah/bikereport/internal/database"
	"github.com/jgoulah/bikereport/internal/dataset"
	"github.com/jgoulah/bikereport/internal/logger"
	"github.com/spf13/cobra"
)

var (
	cfgFile     string
	dbPath      string
	datasetFile string
	logLevel    string
)

var rootCmd = &cobra.Command{
	Use:   "bikereport",
	Short: "Analyze daily bike rental data",
	Long: `BikeReport loads the daily bike sharing dataset and reports average rentals by
weather situation, weekday versus weekend, and total rentals per date.
Reports can be printed, saved as HTML, PDF or XLSX, or published over MQTT.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database file (default is ./bikereport.db)")
	rootCmd.PersistentFlags().StringVar(&datasetFile, "file", "", "dataset CSV (default from config, then data/day.csv)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
}

// getConfigPath returns the config file path
func getConfigPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return config.DefaultConfigPath()
}

// getDBPath returns the database file path (local directory)
func getDBPath() string {
	if dbPath != "" {
		return dbPath
	}
	return "bikereport.db"
}

// getDatasetPath returns the CSV path, preferring the --file flag
func getDatasetPath(cfg *config.Config) string {
	if datasetFile != "" {
		return datasetFile
	}
	return cfg.GetDatasetPath()
}

// loadConfig loads the configuration file
func loadConfig() (*config.Config, error) {
	return config.Load(getConfigPath())
}

// saveConfig writes the configuration file
func saveConfig(cfg *config.Config) error {
	return config.Save(getConfigPath(), cfg)
}

// newLogger builds the logger, letting --log-level override the config
func newLogger(cfg *config.Config) logger.Logger {
	level := cfg.GetLogLevel()
	if logLevel != "" {
		level = logLevel
	}
	return logger.New(level, cfg.Env)
}

// openDB opens the database connection
func openDB() (*database.DB, error) {
	path := getDBPath()

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	return database.New(path)
}

// openExistingDB opens the database without creating it; only import creates
// the store. A missing file is a *dataset.LoadError.
func openExistingDB() (*database.DB, error) {
	path := getDBPath()
	if _, err := os.Stat(path); err != nil {
		return nil, &dataset.LoadError{Path: path, Err: err}
	}
	return database.New(path)
}

// loadTable loads the dataset from the CSV file or the local store
func loadTable(cfg *config.Config, source string, log logger.Logger) (*dataset.Table, error) {
	switch source {
	case "csv":
		path := getDatasetPath(cfg)
		log.WithField("path", path).Debugf("loading CSV dataset")
		return dataset.LoadCSV(path)
	case "sqlite":
		db, err := openExistingDB()
		if err != nil {
			return nil, fmt.Errorf("opening database: %w", err)
		}
		defer db.Close()

		log.WithField("path", db.Path()).Debugf("loading stored dataset")
		return dataset.LoadSQLite(db)
	default:
		return nil, fmt.Errorf("unknown source: %s (available: csv, sqlite)", source)
	}
}
