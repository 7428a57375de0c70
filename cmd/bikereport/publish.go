package main

import (
	"fmt"
	"time"

	"github.com/jgoulah/bikereport/internal/aggregate"
	"github.com/jgoulah/bikereport/internal/publisher"
	"github.com/spf13/cobra"
)

var publishSource string

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Publish the aggregate tables over MQTT",
	Long: `Computes the rental aggregates and publishes each table as a retained JSON
message under the configured topic prefix (weather, weekend, daily).`,
	RunE: runPublish,
}

func init() {
	publishCmd.Flags().StringVar(&publishSource, "source", "csv", "Dataset source (csv or sqlite)")
	rootCmd.AddCommand(publishCmd)
}

func runPublish(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "=== Publish started at %s ===\n", time.Now().Format("2006-01-02 15:04:05 MST"))

	// Load config
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log := newLogger(cfg).WithField("command", "publish")

	if !cfg.MQTT.Enabled {
		return fmt.Errorf("MQTT is not enabled in config")
	}

	table, err := loadTable(cfg, publishSource, log)
	if err != nil {
		return fmt.Errorf("loading dataset: %w", err)
	}

	result, aggErr := aggregate.All(table)
	if aggErr != nil {
		log.Warnf("aggregation failed, affected tables are not published: %v", aggErr)
	}

	pub, err := publisher.New(cfg.MQTT, log)
	if err != nil {
		return fmt.Errorf("creating publisher: %w", err)
	}
	defer pub.Close()

	fmt.Fprintf(out, "Publishing aggregates for %s (%d rows) to %s/...\n", table.Name(), table.Len(), cfg.MQTT.GetTopicPrefix())
	n, err := pub.Publish(table.Name(), result)
	if err != nil {
		return fmt.Errorf("publishing: %w", err)
	}

	fmt.Fprintf(out, "✓ Published %d tables\n", n)
	if aggErr != nil {
		return fmt.Errorf("publish incomplete: %w", aggErr)
	}
	return nil
}
