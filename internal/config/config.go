package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration
type Config struct {
	DatasetPath string       `yaml:"dataset_path,omitempty"` // CSV source (fallback: data/day.csv)
	LogLevel    string       `yaml:"log_level,omitempty"`
	Env         string       `yaml:"env,omitempty"` // "production" switches to JSON logs
	MQTT        MQTTConfig   `yaml:"mqtt,omitempty"`
	Output      OutputConfig `yaml:"output,omitempty"`
}

// MQTTConfig holds broker settings for publishing aggregates
type MQTTConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Broker      string `yaml:"broker"` // host:port, e.g. "localhost:1883"
	Username    string `yaml:"username,omitempty"`
	Password    string `yaml:"password,omitempty"`
	TopicPrefix string `yaml:"topic_prefix,omitempty"`
	ClientID    string `yaml:"client_id,omitempty"`
}

// OutputConfig holds default paths for the report renderings; empty disables
type OutputConfig struct {
	HTML string `yaml:"html,omitempty"`
	PDF  string `yaml:"pdf,omitempty"`
	XLSX string `yaml:"xlsx,omitempty"`
}

// Load reads the config file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			// Return empty config if file doesn't exist
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return &cfg, nil
}

// Save writes the config to file
func Save(configPath string, cfg *Config) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	// Broker credentials may live here
	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// DefaultConfigPath returns the default config file path (local directory)
func DefaultConfigPath() string {
	return "config.yaml"
}

// GetDatasetPath returns the CSV source with a default of data/day.csv
func (c *Config) GetDatasetPath() string {
	if c.DatasetPath == "" {
		return filepath.Join("data", "day.csv")
	}
	return c.DatasetPath
}

// GetLogLevel returns the log level with a default of info
func (c *Config) GetLogLevel() string {
	if c.LogLevel == "" {
		return "info"
	}
	return c.LogLevel
}

// GetTopicPrefix returns the MQTT topic prefix with a default of bike_rentals
func (c *MQTTConfig) GetTopicPrefix() string {
	if c.TopicPrefix == "" {
		return "bike_rentals"
	}
	return c.TopicPrefix
}

// GetClientID returns the MQTT client id with a default of bikereport
func (c *MQTTConfig) GetClientID() string {
	if c.ClientID == "" {
		return "bikereport"
	}
	return c.ClientID
}
