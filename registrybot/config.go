package registrybot

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	coreconfig "github.com/gloudstoun/telegram-bot-project/core/config"
	coredatabase "github.com/gloudstoun/telegram-bot-project/core/database"
)

// ContentConfig locates static assets shipped with the bot.
type ContentConfig struct {
	Dir      string `yaml:"dir" envconfig:"CONTENT_DIR"`
	BotPhoto string `yaml:"bot_photo" envconfig:"CONTENT_BOT_PHOTO"`
}

// RegistrationConfig tunes the registration flow.
// SessionTTLMinutes bounds how long an abandoned prompt keeps its state;
// 0 keeps sessions alive indefinitely.
type RegistrationConfig struct {
	SessionTTLMinutes int `yaml:"session_ttl_minutes" envconfig:"REGISTRATION_SESSION_TTL_MINUTES"`
}

// Config aggregates core bot settings with the registry bot's own sections.
type Config struct {
	Core         coreconfig.Config   `yaml:",inline"`
	Database     coredatabase.Config `yaml:"database"`
	Content      ContentConfig       `yaml:"content"`
	Registration RegistrationConfig  `yaml:"registration"`
}

// CoreConfig exposes the embedded core configuration.
func (c *Config) CoreConfig() *coreconfig.Config {
	if c == nil {
		return nil
	}
	return &c.Core
}

// LoadConfig reads the YAML file, overlays environment variables, and validates.
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	if err := coreconfig.Normalize(&cfg.Core); err != nil {
		return nil, err
	}
	if cfg.Registration.SessionTTLMinutes < 0 {
		return nil, fmt.Errorf("registration.session_ttl_minutes must be >= 0")
	}
	return &cfg, nil
}
