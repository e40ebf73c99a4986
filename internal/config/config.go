package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig
	Board    BoardConfig
	Engine   EngineConfig
	Log      LogConfig
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

// BoardConfig locates the board definition.
type BoardConfig struct {
	Path string
}

// EngineConfig holds drag behavior defaults.
type EngineConfig struct {
	// Threshold is the pointer travel, in cells, before a pending drag
	// activates.
	Threshold float64
	// AnimationMs is the settle animation duration for cards that don't
	// declare their own.
	AnimationMs int `mapstructure:"animation_ms"`
}

// LogConfig holds diagnostic output settings.
type LogConfig struct {
	// Path of the diagnostic log file; empty disables logging. Writing to
	// stderr would fight the terminal UI for the screen.
	Path string
	// Level is a zerolog level name: debug, info, warn, error.
	Level string
}

// Load reads configuration from file and env. Env var overrides use prefix
// DATADRAG_.
func Load() (Config, error) {
	v := viper.New()

	dataDir := filepath.Join(os.Getenv("HOME"), ".local", "share", "datadrag")
	v.SetDefault("database.path", filepath.Join(dataDir, "datadrag.db"))
	v.SetDefault("board.path", filepath.Join(os.Getenv("HOME"), ".config", "datadrag", "board.toml"))
	v.SetDefault("engine.threshold", 5.0)
	v.SetDefault("engine.animation_ms", 150)
	v.SetDefault("log.path", "")
	v.SetDefault("log.level", "info")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("DATADRAG_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "datadrag"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("DATADRAG")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.Engine.Threshold < 0 {
		c.Engine.Threshold = 0
	}
	if c.Engine.AnimationMs < 0 {
		c.Engine.AnimationMs = 0
	}
	return c, nil
}
