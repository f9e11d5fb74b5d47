package player

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := OpenStore(filepath.Join(t.TempDir(), "players.db"))
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRegisterAndAuthenticate(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	rec, err := store.Register(ctx, "alice", "s3cret", "alice@example.com")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if rec.Username != "alice" || rec.Wins != 0 || rec.Score != 0 {
		t.Errorf("Unexpected fresh record: %+v", rec)
	}
	if rec.Level != 1 {
		t.Errorf("Expected level 1 for a new player, got %d", rec.Level)
	}

	token, err := store.Authenticate(ctx, "alice", "s3cret")
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if token == "" {
		t.Error("Expected a non-empty token")
	}

	if _, err := store.Authenticate(ctx, "alice", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials for bad password, got %v", err)
	}
	if _, err := store.Authenticate(ctx, "nobody", "s3cret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}

func TestRegister_UsernameTaken(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if _, err := store.Register(ctx, "alice", "one", ""); err != nil {
		t.Fatalf("First register failed: %v", err)
	}
	if _, err := store.Register(ctx, "alice", "two", ""); !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("Expected ErrUsernameTaken, got %v", err)
	}
}

func TestRegister_ClaimsGuestRecord(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	// A guest wins before ever registering.
	if _, err := store.RecordWin(ctx, "BraveTiger7", 10); err != nil {
		t.Fatalf("RecordWin failed: %v", err)
	}

	rec, err := store.Register(ctx, "BraveTiger7", "pw", "")
	if err != nil {
		t.Fatalf("Register over guest row failed: %v", err)
	}
	if rec.Wins != 1 || rec.Score != 10 {
		t.Errorf("Expected guest stats to survive registration, got %+v", rec)
	}

	if _, err := store.Authenticate(ctx, "BraveTiger7", "pw"); err != nil {
		t.Errorf("Authenticate after claiming guest row failed: %v", err)
	}
}

func TestRecordWin(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	rec, err := store.RecordWin(ctx, "alice", 10)
	if err != nil {
		t.Fatalf("RecordWin failed: %v", err)
	}
	if rec.GamesPlayed != 1 || rec.Wins != 1 || rec.Score != 10 {
		t.Errorf("Unexpected record after first win: %+v", rec)
	}

	for i := 0; i < 9; i++ {
		if rec, err = store.RecordWin(ctx, "alice", 10); err != nil {
			t.Fatalf("RecordWin failed: %v", err)
		}
	}
	if rec.Score != 100 {
		t.Errorf("Expected score 100 after ten wins, got %d", rec.Score)
	}
	if rec.Level != 2 {
		t.Errorf("Expected level 2 at 100 points, got %d", rec.Level)
	}
}

func TestTopN_OrderAndTruncation(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	names := []string{"a", "b", "c", "d", "e"}
	for i, name := range names {
		for j := 0; j <= i; j++ {
			if _, err := store.RecordWin(ctx, name, 10); err != nil {
				t.Fatalf("RecordWin failed: %v", err)
			}
		}
	}

	top, err := store.TopN(ctx, 3)
	if err != nil {
		t.Fatalf("TopN failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(top))
	}
	if top[0].Username != "e" || top[1].Username != "d" || top[2].Username != "c" {
		t.Errorf("Unexpected order: %s %s %s", top[0].Username, top[1].Username, top[2].Username)
	}
	for i := 1; i < len(top); i++ {
		if top[i].Score > top[i-1].Score {
			t.Error("Leaderboard not sorted descending by score")
		}
	}
}

func TestTopN_StableTieBreak(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	// Same score; first registered ranks first.
	store.RecordWin(ctx, "first", 10)
	store.RecordWin(ctx, "second", 10)

	top, err := store.TopN(ctx, 10)
	if err != nil {
		t.Fatalf("TopN failed: %v", err)
	}
	if top[0].Username != "first" || top[1].Username != "second" {
		t.Errorf("Tie not broken by registration order: %s, %s", top[0].Username, top[1].Username)
	}
}

func TestLogGameAndCounts(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	store.Register(ctx, "alice", "pw", "")
	if err := store.LogGame(ctx, GameLog{
		SessionID: "s1",
		GameType:  "match3x3",
		PlayerX:   "alice",
		PlayerO:   "bob",
		Winner:    "alice",
	}); err != nil {
		t.Fatalf("LogGame failed: %v", err)
	}

	players, err := store.CountPlayers(ctx)
	if err != nil || players != 1 {
		t.Errorf("Expected 1 player, got %d (err=%v)", players, err)
	}
	games, err := store.CountGames(ctx)
	if err != nil || games != 1 {
		t.Errorf("Expected 1 game, got %d (err=%v)", games, err)
	}
}

func TestGuestName(t *testing.T) {
	name := GuestName()
	if name == "" {
		t.Fatal("Expected a non-empty guest name")
	}
	if strings.ContainsAny(name, " \t") {
		t.Errorf("Guest name should not contain whitespace: %q", name)
	}
}
