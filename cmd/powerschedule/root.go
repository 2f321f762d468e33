package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/powerschedule/powerschedule/internal/api"
	"github.com/powerschedule/powerschedule/internal/config"
	"github.com/powerschedule/powerschedule/internal/database"
	"github.com/powerschedule/powerschedule/internal/notify"
)

var (
	cfgFile string
	dbPath  string
)

var rootCmd = &cobra.Command{
	Use:   "powerschedule",
	Short: "Track scheduled electricity outages for your queues",
	Long: `Powerschedule tracks scheduled electricity outage queues against the
be-svitlo provider, renders per-day timelines in the terminal, and can watch
for changes and notify via Telegram or MQTT.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database file (default is ./data.db)")
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
	return "data.db"
}

// loadConfig loads and validates the configuration file
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(getConfigPath())
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
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

// newAPIClient builds the provider client, honoring a base URL override
func newAPIClient(cfg *config.Config) *api.Client {
	client := api.NewClient()
	if cfg.APIBaseURL != "" {
		client.BaseURL = cfg.APIBaseURL
	}
	return client
}

// buildNotifier assembles the configured delivery channels. The
// returned closer disconnects MQTT; it is a no-op otherwise.
func buildNotifier(cfg *config.Config) (notify.Notifier, func(), error) {
	var channels notify.Multi
	closer := func() {}

	if cfg.Telegram.Enabled {
		tg, err := notify.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			return nil, nil, fmt.Errorf("setting up telegram: %w", err)
		}
		channels = append(channels, tg)
	}

	if cfg.MQTT.Enabled {
		mq, err := notify.NewMQTTNotifier(cfg.MQTT)
		if err != nil {
			return nil, nil, fmt.Errorf("setting up MQTT: %w", err)
		}
		channels = append(channels, mq)
		closer = mq.Close
	}

	return channels, closer, nil
}
