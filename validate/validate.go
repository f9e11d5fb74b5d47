// Command validate checks PlayGrid server configuration JSON files before
// deployment. It verifies:
//   - JSON structure and known field names
//   - Positive pacing and scoring values (reset delay, win score)
//   - A sane leaderboard size and chat length
//   - A usable database path
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/playgrid/playgrid/game/config"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// validateConfig loads and validates a single configuration JSON file.
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	cfg := config.Default()
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid JSON: %v", err))
		return result
	}

	if err := cfg.Validate(); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
	}

	if result.Valid {
		result.Errors = append(result.Errors, describe(cfg)...)
	}
	return result
}

// describe returns informational lines about a valid config.
func describe(cfg *config.Config) []string {
	return []string{
		fmt.Sprintf("reset delay: %s", cfg.ResetDelay()),
		fmt.Sprintf("win score: %d, leaderboard size: %d", cfg.WinScore, cfg.LeaderboardSize),
		fmt.Sprintf("database: %s", cfg.DatabasePath),
	}
}

func main() {
	paths := os.Args[1:]
	if len(paths) == 0 {
		paths = []string{"playgrid.json"}
	}

	failed := 0
	for _, path := range paths {
		result := validateConfig(path)

		fmt.Printf("=== %s ===\n", result.File)
		if result.Valid {
			fmt.Println("OK")
		} else {
			fmt.Println("INVALID")
			failed++
		}
		for _, line := range result.Errors {
			fmt.Printf("  %s\n", line)
		}
	}

	if failed > 0 {
		fmt.Printf("\n%d of %d file(s) failed validation\n", failed, len(paths))
		os.Exit(1)
	}
	fmt.Printf("\nAll %d file(s) valid\n", len(paths))
}
