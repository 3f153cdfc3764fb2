// internal/config/config.go
//
// Configuration for the dashboard. Everything has a usable default so the
// binary can run against a local mosquitto with no config file at all.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Broker holds the MQTT connection settings.
type Broker struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`
	ClientID string `yaml:"client_id,omitempty"`
}

// Feed holds the live log feed settings.
type Feed struct {
	// Capacity is the maximum number of log entries retained for display.
	Capacity int `yaml:"capacity"`
}

// Storage holds the local history database settings.
type Storage struct {
	Enabled bool `yaml:"enabled"`
	// Dir is the data directory. Defaults to ~/.piomon.
	Dir string `yaml:"dir,omitempty"`
}

// Config models the piomon configuration file.
type Config struct {
	Broker Broker `yaml:"broker"`
	// TopicRoot is the first segment of every topic the rig publishes to.
	TopicRoot string `yaml:"topic_root"`
	// Experiment scopes subscriptions to a single experiment id.
	Experiment string  `yaml:"experiment"`
	Feed       Feed    `yaml:"feed"`
	Storage    Storage `yaml:"storage"`
	// UnitStaleAfter marks a unit as stale once it has been silent this long,
	// e.g. "5m". Parsed with time.ParseDuration.
	UnitStaleAfter string `yaml:"unit_stale_after"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Broker: Broker{
			Host:     "localhost",
			Port:     1883,
			ClientID: "piomon",
		},
		TopicRoot:      "morbidostat",
		Experiment:     "latest",
		Feed:           Feed{Capacity: 100},
		Storage:        Storage{Enabled: true},
		UnitStaleAfter: "5m",
	}
}

// Load reads the config file at path. A missing file is not an error: the
// defaults are returned as-is.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Broker.Host == "" {
		return fmt.Errorf("config: broker host must not be empty")
	}
	if c.Broker.Port <= 0 || c.Broker.Port > 65535 {
		return fmt.Errorf("config: broker port %d out of range", c.Broker.Port)
	}
	if c.TopicRoot == "" {
		return fmt.Errorf("config: topic_root must not be empty")
	}
	if c.Experiment == "" {
		return fmt.Errorf("config: experiment must not be empty")
	}
	if c.Feed.Capacity <= 0 {
		return fmt.Errorf("config: feed capacity must be positive, got %d", c.Feed.Capacity)
	}
	if c.UnitStaleAfter != "" {
		if _, err := time.ParseDuration(c.UnitStaleAfter); err != nil {
			return fmt.Errorf("config: unit_stale_after: %w", err)
		}
	}
	return nil
}

// StaleThreshold returns the parsed unit_stale_after duration.
func (c Config) StaleThreshold() time.Duration {
	d, err := time.ParseDuration(c.UnitStaleAfter)
	if err != nil || d <= 0 {
		return 5 * time.Minute
	}
	return d
}

// BrokerURL returns the tcp:// URL paho expects.
func (c Config) BrokerURL() string {
	return fmt.Sprintf("tcp://%s:%d", c.Broker.Host, c.Broker.Port)
}
