package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration
type Config struct {
	APIBaseURL              string         `yaml:"api_base_url,omitempty"`
	UpdateIntervalMinutes   int            `yaml:"update_interval_minutes,omitempty"`   // Refresh cadence (fallback: 15)
	NotificationLeadMinutes int            `yaml:"notification_lead_minutes,omitempty"` // Minutes before a shutdown (fallback: 30)
	Telegram                TelegramConfig `yaml:"telegram,omitempty"`
	MQTT                    MQTTConfig     `yaml:"mqtt,omitempty"`
}

// TelegramConfig holds Telegram bot delivery settings
type TelegramConfig struct {
	Enabled  bool   `yaml:"enabled"`
	BotToken string `yaml:"bot_token"`
	ChatID   int64  `yaml:"chat_id"`
}

// MQTTConfig holds MQTT broker delivery settings
type MQTTConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Broker      string `yaml:"broker"` // host:port
	Username    string `yaml:"username,omitempty"`
	Password    string `yaml:"password,omitempty"`
	TopicPrefix string `yaml:"topic_prefix,omitempty"`
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
	// Ensure directory exists
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// DefaultConfigPath returns the default config file path (local directory)
func DefaultConfigPath() string {
	return "config.yaml"
}

// GetUpdateInterval returns the refresh cadence in minutes with a default of 15
func (c *Config) GetUpdateInterval() int {
	if c.UpdateIntervalMinutes <= 0 {
		return 15
	}
	return c.UpdateIntervalMinutes
}

// GetLeadMinutes returns the notification lead time with a default of 30
func (c *Config) GetLeadMinutes() int {
	if c.NotificationLeadMinutes == 0 {
		return 30
	}
	return c.NotificationLeadMinutes
}

// Validate checks for configuration values that can never work
func (c *Config) Validate() error {
	if c.NotificationLeadMinutes < 0 {
		return fmt.Errorf("notification_lead_minutes must not be negative, got %d", c.NotificationLeadMinutes)
	}
	if c.Telegram.Enabled {
		if c.Telegram.BotToken == "" {
			return fmt.Errorf("telegram bot_token is required when enabled")
		}
		if c.Telegram.ChatID == 0 {
			return fmt.Errorf("telegram chat_id is required when enabled")
		}
	}
	if c.MQTT.Enabled && c.MQTT.Broker == "" {
		return fmt.Errorf("MQTT broker address is required when enabled")
	}
	return nil
}
