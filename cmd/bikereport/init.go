package main

import (
	"fmt"
	"os"

	"github.com/jgoulah/bikereport/internal/config"
	"github.com/spf13/cobra"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default settings",
	Long: `Writes a config file holding the default dataset path, log level and MQTT
topic settings, ready to be edited. An existing file is kept unless --force is given.`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config file")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	path := getConfigPath()

	if _, err := os.Stat(path); err == nil && !initForce {
		return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
	}

	// Fill every setting from the defaults the accessors apply
	var defaults config.Config
	cfg := &config.Config{
		DatasetPath: defaults.GetDatasetPath(),
		LogLevel:    defaults.GetLogLevel(),
		MQTT: config.MQTTConfig{
			Broker:      "localhost:1883",
			TopicPrefix: defaults.MQTT.GetTopicPrefix(),
			ClientID:    defaults.MQTT.GetClientID(),
		},
	}
	if err := saveConfig(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s\n", path)
	return nil
}
