package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all server configuration
type Config struct {
	Server ServerConfig `yaml:"server"`
	Auth   AuthConfig   `yaml:"auth"`
	Redis  RedisConfig  `yaml:"redis"`
	Grid   GridConfig   `yaml:"grid"`
	Editor EditorConfig `yaml:"editor"`
	World  WorldConfig  `yaml:"world"`
}

// ServerConfig holds server-specific settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// AuthConfig holds JWT authentication settings. When disabled, connections
// are anonymous and Redis is never contacted.
type AuthConfig struct {
	Enabled             bool   `yaml:"enabled"`
	Issuer              string `yaml:"issuer"`
	PublicKeyURL        string `yaml:"public_key_url"`
	PublicKeyRefreshHrs int    `yaml:"public_key_refresh_hours"`
}

// RedisConfig holds Redis connection settings for the revoked-token
// blacklist.
type RedisConfig struct {
	Address         string `yaml:"address"`
	Password        string `yaml:"password"`
	DB              int    `yaml:"db"`
	BlacklistPrefix string `yaml:"blacklist_prefix"`
}

// GridConfig holds the hex layout and bounds policy. Policy is "radius"
// (cells within Radius hex steps of the origin) or "pixel" (cells whose
// projected center lands inside the margin-inset Width x Height rect).
type GridConfig struct {
	HexSize           float64 `yaml:"hex_size"`
	BoundsPolicy      string  `yaml:"bounds_policy"`
	Radius            int     `yaml:"radius"`
	Width             float64 `yaml:"width"`
	Height            float64 `yaml:"height"`
	Margin            float64 `yaml:"margin"`
	PlacementAttempts int     `yaml:"placement_attempts"`
}

// EditorConfig holds line drawing settings.
type EditorConfig struct {
	Palette   []string `yaml:"palette"`
	LineWidth float64  `yaml:"line_width"`
	HitSlop   float64  `yaml:"hit_slop"`
}

// WorldConfig holds initial grid population settings.
type WorldConfig struct {
	Stations      int   `yaml:"stations"`       // normal stations beyond start/end
	MinSeparation int   `yaml:"min_separation"` // hex distance between stations
	Seed          int64 `yaml:"seed"`           // 0 means time-derived
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// Default returns a runnable configuration without a config file.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (cfg *Config) applyDefaults() {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Auth.PublicKeyRefreshHrs == 0 {
		cfg.Auth.PublicKeyRefreshHrs = 24
	}
	if cfg.Grid.HexSize == 0 {
		cfg.Grid.HexSize = 24
	}
	if cfg.Grid.BoundsPolicy == "" {
		cfg.Grid.BoundsPolicy = "radius"
	}
	if cfg.Grid.Radius == 0 {
		cfg.Grid.Radius = 12
	}
	if cfg.Grid.Width == 0 {
		cfg.Grid.Width = 1280
	}
	if cfg.Grid.Height == 0 {
		cfg.Grid.Height = 720
	}
	if cfg.Grid.Margin == 0 {
		cfg.Grid.Margin = 40
	}
	if cfg.Grid.PlacementAttempts == 0 {
		cfg.Grid.PlacementAttempts = 800
	}
	if len(cfg.Editor.Palette) == 0 {
		cfg.Editor.Palette = []string{"#d7263d", "#1b998b", "#2e86ab", "#f4a261", "#6a4c93"}
	}
	if cfg.Editor.LineWidth == 0 {
		cfg.Editor.LineWidth = 6
	}
	if cfg.Editor.HitSlop == 0 {
		cfg.Editor.HitSlop = 3
	}
	if cfg.World.Stations == 0 {
		cfg.World.Stations = 8
	}
	if cfg.World.MinSeparation == 0 {
		cfg.World.MinSeparation = 2
	}
}
