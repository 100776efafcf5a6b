// Package config loads orderflow configuration from an optional YAML
// file and ORDERFLOW_-prefixed environment variables, with defaults for
// every knob.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the full application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	Engine   EngineConfig   `mapstructure:"engine"`
	Database DatabaseConfig `mapstructure:"database"`
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// EngineConfig carries the algorithm-selection thresholds. The sort
// thresholds are configuration, not algorithmic constants: callers may
// still override per call.
type EngineConfig struct {
	SortInsertionMax    int           `mapstructure:"sort_insertion_max"`
	SortQuickMax        int           `mapstructure:"sort_quick_max"`
	FuzzyThreshold      int           `mapstructure:"fuzzy_threshold"`
	AvailabilityTimeout time.Duration `mapstructure:"availability_timeout"`
}

type DatabaseConfig struct {
	// DSN is the sqlite path for the persistence sink. Empty disables
	// durable storage.
	DSN string `mapstructure:"dsn"`
}

// Load reads configuration. configPath may be empty, in which case only
// defaults and environment variables apply.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("ORDERFLOW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.shutdown_timeout", 15*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("engine.sort_insertion_max", 10)
	v.SetDefault("engine.sort_quick_max", 50)
	v.SetDefault("engine.fuzzy_threshold", 2)
	v.SetDefault("engine.availability_timeout", 5*time.Second)
	v.SetDefault("database.dsn", "orderflow.db")
}

func validate(cfg *Config) error {
	if cfg.Engine.SortInsertionMax < 0 || cfg.Engine.SortQuickMax < cfg.Engine.SortInsertionMax {
		return fmt.Errorf("invalid sort thresholds: insertion_max=%d quick_max=%d",
			cfg.Engine.SortInsertionMax, cfg.Engine.SortQuickMax)
	}
	if cfg.Engine.FuzzyThreshold < 0 {
		return fmt.Errorf("fuzzy threshold must be non-negative, got %d", cfg.Engine.FuzzyThreshold)
	}
	if cfg.Engine.AvailabilityTimeout <= 0 {
		return fmt.Errorf("availability timeout must be positive, got %s", cfg.Engine.AvailabilityTimeout)
	}
	return nil
}
