package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config is the service configuration, read from the environment.
type Config struct {
	Server ServerConfig
	Log    LogConfig
	Rules  RulesConfig
}

type ServerConfig struct {
	Port     string `envconfig:"PORT" default:"8080"`
	GamePort string `envconfig:"GAME_PORT" default:"8081"`
}

type LogConfig struct {
	Level    string `envconfig:"LOG_LEVEL" default:"info"`
	Encoding string `envconfig:"LOG_ENCODING" default:"json"`
}

type RulesConfig struct {
	// FullDefense is passed to the defense catalogs; it is reserved and has no effect yet.
	FullDefense bool `envconfig:"RULES_FULL_DEFENSE" default:"false"`
	// BatchLimit caps how many tests one batch request may prepare.
	BatchLimit int `envconfig:"RULES_BATCH_LIMIT" default:"64"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if cfg.Rules.BatchLimit <= 0 {
		return nil, fmt.Errorf("load config: RULES_BATCH_LIMIT must be positive, got %d", cfg.Rules.BatchLimit)
	}
	return &cfg, nil
}
