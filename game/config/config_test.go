package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default config is invalid: %v", err)
	}
	if cfg.ResetDelay() != 3*time.Second {
		t.Errorf("Expected 3s reset delay, got %v", cfg.ResetDelay())
	}
	if cfg.WinScore != 10 {
		t.Errorf("Expected win score 10, got %d", cfg.WinScore)
	}
	if cfg.LeaderboardSize != 10 {
		t.Errorf("Expected leaderboard size 10, got %d", cfg.LeaderboardSize)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("Load of missing file failed: %v", err)
	}
	if cfg.WinScore != Default().WinScore {
		t.Error("Missing file should yield defaults")
	}
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	body := `{"reset_delay_seconds": 5, "win_score": 25}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.ResetDelay() != 5*time.Second {
		t.Errorf("Expected 5s reset delay, got %v", cfg.ResetDelay())
	}
	if cfg.WinScore != 25 {
		t.Errorf("Expected win score 25, got %d", cfg.WinScore)
	}
	// Untouched fields keep defaults.
	if cfg.LeaderboardSize != 10 {
		t.Errorf("Expected default leaderboard size, got %d", cfg.LeaderboardSize)
	}
}

func TestValidate_AllowsDisabledRepublish(t *testing.T) {
	cfg := Default()
	cfg.RepublishSeconds = 0
	if err := cfg.Validate(); err != nil {
		t.Errorf("Zero republish interval should validate: %v", err)
	}
	if cfg.RepublishInterval() != 0 {
		t.Errorf("Expected zero interval, got %v", cfg.RepublishInterval())
	}
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"win_score": -1}`), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Expected error for negative win score")
	}
}

func TestLoad_RejectsMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{not json`), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Expected error for malformed JSON")
	}
}
