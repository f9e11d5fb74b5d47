// Package config holds the server tunables: match pacing, scoring, and
// storage locations. Values load from an optional JSON file with sane
// defaults, so a bare binary runs without any configuration present.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// DefaultGameType is the single ruleset this server runs.
const DefaultGameType = "match3x3"

// Config carries the server tunables.
type Config struct {
	// ResetDelaySeconds is the pause between a terminal board and the
	// automatic rematch reset.
	ResetDelaySeconds int `json:"reset_delay_seconds"`

	// WinScore is the score increment credited to a session winner.
	WinScore int `json:"win_score"`

	// LeaderboardSize caps the published leaderboard length.
	LeaderboardSize int `json:"leaderboard_size"`

	// RepublishSeconds is the liveness interval for re-broadcasting the
	// leaderboard; zero or negative disables the interval.
	RepublishSeconds int `json:"republish_seconds"`

	// MaxChatLength truncates session chat messages.
	MaxChatLength int `json:"max_chat_length"`

	// DatabasePath locates the sqlite file holding player records.
	DatabasePath string `json:"database_path"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		ResetDelaySeconds: 3,
		WinScore:          10,
		LeaderboardSize:   10,
		RepublishSeconds:  60,
		MaxChatLength:     500,
		DatabasePath:      "data/playgrid.db",
	}
}

// Load reads a JSON config file, filling missing fields from defaults. A
// missing file is not an error: the defaults are returned as-is.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the loaded values.
func (c *Config) Validate() error {
	if c.ResetDelaySeconds <= 0 {
		return fmt.Errorf("%w: reset_delay_seconds must be positive", ErrInvalidConfig)
	}
	if c.WinScore <= 0 {
		return fmt.Errorf("%w: win_score must be positive", ErrInvalidConfig)
	}
	if c.LeaderboardSize <= 0 {
		return fmt.Errorf("%w: leaderboard_size must be positive", ErrInvalidConfig)
	}
	if c.MaxChatLength <= 0 {
		return fmt.Errorf("%w: max_chat_length must be positive", ErrInvalidConfig)
	}
	if c.DatabasePath == "" {
		return fmt.Errorf("%w: database_path must be set", ErrInvalidConfig)
	}
	return nil
}

// ResetDelay returns the rematch pause as a duration.
func (c *Config) ResetDelay() time.Duration {
	return time.Duration(c.ResetDelaySeconds) * time.Second
}

// RepublishInterval returns the leaderboard liveness interval; zero means
// disabled.
func (c *Config) RepublishInterval() time.Duration {
	return time.Duration(c.RepublishSeconds) * time.Second
}
