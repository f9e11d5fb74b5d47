package player

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

var (
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// Record is a player's identity and cumulative stats. Credential material
// never leaves the store.
type Record struct {
	ID          int64     `json:"-"`
	Username    string    `json:"username"`
	GamesPlayed int       `json:"games_played"`
	Wins        int       `json:"wins"`
	Score       int       `json:"score"`
	Level       int       `json:"level"`
	CreatedAt   time.Time `json:"created_at"`
}

// GameLog is one completed session appended to the games table.
type GameLog struct {
	SessionID string
	GameType  string
	PlayerX   string
	PlayerO   string
	Winner    string // empty on a draw
	StartedAt time.Time
	EndedAt   time.Time
}

// Store is the sqlite-backed player store.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS players (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	username TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL DEFAULT '',
	email TEXT NOT NULL DEFAULT '',
	games_played INTEGER NOT NULL DEFAULT 0,
	wins INTEGER NOT NULL DEFAULT 0,
	score INTEGER NOT NULL DEFAULT 0,
	level INTEGER NOT NULL DEFAULT 1,
	created_at DATETIME NOT NULL
);
CREATE TABLE IF NOT EXISTS games (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id TEXT NOT NULL,
	game_type TEXT NOT NULL,
	player_x TEXT NOT NULL,
	player_o TEXT NOT NULL,
	winner TEXT NOT NULL DEFAULT '',
	started_at DATETIME NOT NULL,
	ended_at DATETIME NOT NULL
);
`

// OpenStore opens (creating if needed) the sqlite database at path and
// ensures the schema exists.
func OpenStore(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// modernc sqlite allows a single writer; serialize through one conn.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Register creates a player record with hashed credentials. A username that
// already carries credentials yields ErrUsernameTaken; a bare guest row
// (created by a win before registration) is claimed instead.
func (s *Store) Register(ctx context.Context, username, password, email string) (*Record, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	var existingHash string
	err = s.db.QueryRowContext(ctx,
		`SELECT password_hash FROM players WHERE username = ?`, username).Scan(&existingHash)
	switch {
	case err == nil:
		if existingHash != "" {
			return nil, ErrUsernameTaken
		}
		if _, err := s.db.ExecContext(ctx,
			`UPDATE players SET password_hash = ?, email = ? WHERE username = ?`,
			string(hash), email, username); err != nil {
			return nil, fmt.Errorf("failed to claim guest record: %w", err)
		}
	case errors.Is(err, sql.ErrNoRows):
		if _, err := s.db.ExecContext(ctx,
			`INSERT INTO players (username, password_hash, email, created_at) VALUES (?, ?, ?, ?)`,
			username, string(hash), email, time.Now().UTC()); err != nil {
			return nil, fmt.Errorf("failed to insert player: %w", err)
		}
	default:
		return nil, fmt.Errorf("failed to look up username: %w", err)
	}

	return s.Get(ctx, username)
}

// Authenticate verifies credentials and returns an opaque session token.
func (s *Store) Authenticate(ctx context.Context, username, password string) (string, error) {
	var hash string
	err := s.db.QueryRowContext(ctx,
		`SELECT password_hash FROM players WHERE username = ?`, username).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && hash == "") {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", fmt.Errorf("failed to look up username: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}
	return uuid.NewString(), nil
}

// Get returns the record for a username.
func (s *Store) Get(ctx context.Context, username string) (*Record, error) {
	var r Record
	err := s.db.QueryRowContext(ctx,
		`SELECT id, username, games_played, wins, score, level, created_at
		 FROM players WHERE username = ?`, username).
		Scan(&r.ID, &r.Username, &r.GamesPlayed, &r.Wins, &r.Score, &r.Level, &r.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sql.ErrNoRows
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read player: %w", err)
	}
	return &r, nil
}

// RecordWin credits a concluded session to the winning display name:
// games played and wins each increment by one, score by points. A name
// without a record yet gets a guest row first. Level derives from score
// (one level per 100 points).
func (s *Store) RecordWin(ctx context.Context, username string, points int) (*Record, error) {
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO players (username, created_at) VALUES (?, ?)
		 ON CONFLICT(username) DO NOTHING`,
		username, time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("failed to ensure player record: %w", err)
	}

	if _, err := s.db.ExecContext(ctx,
		`UPDATE players SET
			games_played = games_played + 1,
			wins = wins + 1,
			score = score + ?,
			level = ((score + ?) / 100) + 1
		 WHERE username = ?`,
		points, points, username); err != nil {
		return nil, fmt.Errorf("failed to record win: %w", err)
	}

	return s.Get(ctx, username)
}

// TopN returns up to n records ordered by score descending, ties broken by
// registration order.
func (s *Store) TopN(ctx context.Context, n int) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, username, games_played, wins, score, level, created_at
		 FROM players ORDER BY score DESC, id ASC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &r.Username, &r.GamesPlayed, &r.Wins, &r.Score, &r.Level, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// LogGame appends a completed session to the games table.
func (s *Store) LogGame(ctx context.Context, g GameLog) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO games (session_id, game_type, player_x, player_o, winner, started_at, ended_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		g.SessionID, g.GameType, g.PlayerX, g.PlayerO, g.Winner, g.StartedAt.UTC(), g.EndedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to log game: %w", err)
	}
	return nil
}

// CountPlayers returns the number of player records.
func (s *Store) CountPlayers(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM players`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count players: %w", err)
	}
	return n, nil
}

// CountGames returns the number of logged games.
func (s *Store) CountGames(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM games`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count games: %w", err)
	}
	return n, nil
}
