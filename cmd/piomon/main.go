// cmd/piomon/main.go
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sgbaird/pioreactor/internal/config"
	"github.com/sgbaird/pioreactor/internal/feed"
	"github.com/sgbaird/pioreactor/internal/logging"
	"github.com/sgbaird/pioreactor/internal/model"
	"github.com/sgbaird/pioreactor/internal/mqtt"
	"github.com/sgbaird/pioreactor/internal/storage"
	"github.com/sgbaird/pioreactor/internal/telemetry"
	"github.com/sgbaird/pioreactor/internal/tui"
)

func defaultDataDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".piomon"
	}
	return filepath.Join(homeDir, ".piomon")
}

func main() {
	configPath := flag.String("config", filepath.Join(defaultDataDir(), "config.yaml"), "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("❌ Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	dataDir := cfg.Storage.Dir
	if dataDir == "" {
		dataDir = defaultDataDir()
	}

	diag, err := logging.New(dataDir)
	if err != nil {
		fmt.Printf("❌ Failed to open diagnostics log: %v\n", err)
		os.Exit(1)
	}
	defer diag.Close()

	// Connect to the MQTT broker
	brokerCfg := mqtt.DefaultConfig()
	brokerCfg.URL = cfg.BrokerURL()
	brokerCfg.ClientID = cfg.Broker.ClientID
	brokerCfg.Username = cfg.Broker.Username
	brokerCfg.Password = cfg.Broker.Password

	broker, err := mqtt.NewClient(brokerCfg)
	if err != nil {
		fmt.Printf("❌ Failed to connect to MQTT broker: %v\n", err)
		fmt.Println("\nMake sure the broker is reachable:")
		fmt.Printf("  mosquitto_sub -h %s -p %d -t '%s/#'\n", cfg.Broker.Host, cfg.Broker.Port, cfg.TopicRoot)
		os.Exit(1)
	}
	defer broker.Close()

	// Create storage and seed the feed with recent history
	var store *storage.Storage
	var seed []model.LogEntry
	if cfg.Storage.Enabled {
		store, err = storage.NewStorage(dataDir)
		if err != nil {
			fmt.Printf("❌ Failed to initialize storage: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()

		seed, err = store.RecentLogs(cfg.Feed.Capacity)
		if err != nil {
			diag.Printf("main: seeding feed from history failed: %v", err)
		}
	}

	// Start the log feed and telemetry subscriptions
	logFeed := feed.New(cfg.Feed.Capacity, seed)
	sub := feed.NewSubscriber(broker, logFeed, cfg.TopicRoot, cfg.Experiment, diag)
	if err := sub.Start(); err != nil {
		fmt.Printf("❌ Failed to subscribe to logs: %v\n", err)
		os.Exit(1)
	}
	defer sub.Stop()

	tracker := telemetry.NewTracker(broker, cfg.TopicRoot, cfg.Experiment, diag)
	if err := tracker.Start(); err != nil {
		fmt.Printf("❌ Failed to subscribe to telemetry: %v\n", err)
		os.Exit(1)
	}
	defer tracker.Stop()

	// Create TUI model
	m := tui.NewModel(sub, tracker, store, broker.States(), cfg.Experiment, cfg.StaleThreshold())

	// Start TUI
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}
