package session

import (
	"errors"
	"testing"
	"time"

	"github.com/playgrid/playgrid/game/engine"
)

func newPlayingSession(t *testing.T) *Session {
	t.Helper()

	sess := New("test-session", "match3x3")
	if _, err := sess.AddSeat("conn-a", "alice"); err != nil {
		t.Fatalf("Failed to seat first player: %v", err)
	}
	if _, err := sess.AddSeat("conn-b", "bob"); err != nil {
		t.Fatalf("Failed to seat second player: %v", err)
	}
	return sess
}

func TestAddSeat_Assignment(t *testing.T) {
	sess := New("s1", "match3x3")

	if sess.Status() != StatusWaiting {
		t.Errorf("Expected new session to be waiting, got %q", sess.Status())
	}

	first, err := sess.AddSeat("conn-a", "alice")
	if err != nil {
		t.Fatalf("AddSeat failed: %v", err)
	}
	if first.Mark != engine.MarkX {
		t.Errorf("Expected first occupant to get X, got %q", first.Mark)
	}
	if sess.Status() != StatusWaiting {
		t.Errorf("Expected session to stay waiting with one seat, got %q", sess.Status())
	}

	second, err := sess.AddSeat("conn-b", "bob")
	if err != nil {
		t.Fatalf("AddSeat failed: %v", err)
	}
	if second.Mark != engine.MarkO {
		t.Errorf("Expected second occupant to get O, got %q", second.Mark)
	}
	if sess.Status() != StatusPlaying {
		t.Errorf("Expected session to be playing with two seats, got %q", sess.Status())
	}

	seats := sess.Seats()
	if len(seats) != 2 {
		t.Fatalf("Expected 2 seats, got %d", len(seats))
	}
	if seats[0].Mark == seats[1].Mark {
		t.Error("Seats must have distinct marks")
	}
	if seats[0].ConnID == seats[1].ConnID {
		t.Error("Seats must have distinct connections")
	}
}

func TestAddSeat_Full(t *testing.T) {
	sess := newPlayingSession(t)

	if _, err := sess.AddSeat("conn-c", "carol"); !errors.Is(err, ErrRoomFull) {
		t.Errorf("Expected ErrRoomFull, got %v", err)
	}
}

func TestAddSeat_DuplicateConnection(t *testing.T) {
	sess := New("s1", "match3x3")
	sess.AddSeat("conn-a", "alice")

	if _, err := sess.AddSeat("conn-a", "alice"); !errors.Is(err, ErrRoomFull) {
		t.Errorf("Expected ErrRoomFull for duplicate connection, got %v", err)
	}
}

func TestApplyMove_Valid(t *testing.T) {
	sess := newPlayingSession(t)

	res, err := sess.ApplyMove("conn-a", 4)
	if err != nil {
		t.Fatalf("ApplyMove failed: %v", err)
	}

	want := engine.Board{}
	want[4] = engine.MarkX
	if res.Board != want {
		t.Errorf("Expected board %v, got %v", want, res.Board)
	}
	if res.Mark != engine.MarkX {
		t.Errorf("Expected mark X, got %q", res.Mark)
	}
	if res.Turn != engine.MarkO {
		t.Errorf("Expected turn to flip to O, got %q", res.Turn)
	}
	if res.Winner != engine.Empty || res.Terminal {
		t.Errorf("Expected no terminal result, got winner=%q terminal=%v", res.Winner, res.Terminal)
	}
}

func TestApplyMove_NotParticipant(t *testing.T) {
	sess := newPlayingSession(t)

	_, err := sess.ApplyMove("conn-z", 0)
	if !errors.Is(err, ErrNotParticipant) {
		t.Errorf("Expected ErrNotParticipant, got %v", err)
	}
	if sess.Snapshot().Board != (engine.Board{}) {
		t.Error("Board mutated by rejected move")
	}
}

func TestApplyMove_NotReady(t *testing.T) {
	sess := New("s1", "match3x3")
	sess.AddSeat("conn-a", "alice")

	_, err := sess.ApplyMove("conn-a", 0)
	if !errors.Is(err, ErrNotReady) {
		t.Errorf("Expected ErrNotReady while waiting, got %v", err)
	}
}

func TestApplyMove_OutOfTurn(t *testing.T) {
	sess := newPlayingSession(t)

	_, err := sess.ApplyMove("conn-b", 0)
	if !errors.Is(err, ErrOutOfTurn) {
		t.Errorf("Expected ErrOutOfTurn, got %v", err)
	}
	if sess.Snapshot().Board != (engine.Board{}) {
		t.Error("Board mutated by out-of-turn move")
	}
}

func TestApplyMove_CellOccupied(t *testing.T) {
	sess := newPlayingSession(t)

	if _, err := sess.ApplyMove("conn-a", 4); err != nil {
		t.Fatalf("Setup move failed: %v", err)
	}

	_, err := sess.ApplyMove("conn-b", 4)
	if !errors.Is(err, ErrCellOccupied) {
		t.Errorf("Expected ErrCellOccupied, got %v", err)
	}

	for _, cell := range []int{-1, 9, 42} {
		if _, err := sess.ApplyMove("conn-b", cell); !errors.Is(err, ErrCellOccupied) {
			t.Errorf("Expected ErrCellOccupied for cell %d, got %v", cell, err)
		}
	}
}

func TestApplyMove_WinTransitionsToFinished(t *testing.T) {
	sess := newPlayingSession(t)

	// X: 0 1 2 (top row), O: 3 4
	moves := []struct {
		conn string
		cell int
	}{
		{"conn-a", 0}, {"conn-b", 3}, {"conn-a", 1}, {"conn-b", 4},
	}
	for _, m := range moves {
		if _, err := sess.ApplyMove(m.conn, m.cell); err != nil {
			t.Fatalf("Setup move %+v failed: %v", m, err)
		}
	}

	res, err := sess.ApplyMove("conn-a", 2)
	if err != nil {
		t.Fatalf("Winning move failed: %v", err)
	}
	if res.Winner != engine.MarkX {
		t.Errorf("Expected winner X, got %q", res.Winner)
	}
	if !res.Terminal {
		t.Error("Winning move not reported terminal")
	}
	if sess.Status() != StatusFinished {
		t.Errorf("Expected status finished, got %q", sess.Status())
	}

	// Moves during the reset window are rejected, never applied.
	if _, err := sess.ApplyMove("conn-b", 5); !errors.Is(err, ErrNotReady) {
		t.Errorf("Expected ErrNotReady after terminal board, got %v", err)
	}
}

func TestScheduleReset_RestoresBoard(t *testing.T) {
	sess := newPlayingSession(t)
	sess.ApplyMove("conn-a", 0)
	sess.ApplyMove("conn-b", 3)
	sess.ApplyMove("conn-a", 1)
	sess.ApplyMove("conn-b", 4)
	sess.ApplyMove("conn-a", 2)

	done := make(chan ResetResult, 1)
	sess.ScheduleReset(10*time.Millisecond, func(r ResetResult) {
		done <- r
	})

	select {
	case r := <-done:
		if r.Board != (engine.Board{}) {
			t.Errorf("Expected empty board after reset, got %v", r.Board)
		}
		if r.Turn != engine.MarkX {
			t.Errorf("Expected turn X after reset, got %q", r.Turn)
		}
		if r.Status != StatusPlaying {
			t.Errorf("Expected playing after reset with both seats, got %q", r.Status)
		}
	case <-time.After(time.Second):
		t.Fatal("Reset did not fire")
	}

	if sess.Status() != StatusPlaying {
		t.Errorf("Expected session playing after reset, got %q", sess.Status())
	}
	if _, err := sess.ApplyMove("conn-a", 8); err != nil {
		t.Errorf("Move after reset failed: %v", err)
	}
}

func TestScheduleReset_CancelledByDestroy(t *testing.T) {
	sess := newPlayingSession(t)

	fired := make(chan struct{}, 1)
	sess.ScheduleReset(10*time.Millisecond, func(ResetResult) {
		fired <- struct{}{}
	})
	sess.Destroy()

	select {
	case <-fired:
		t.Error("Reset fired after session was destroyed")
	case <-time.After(50 * time.Millisecond):
	}

	if _, err := sess.ApplyMove("conn-a", 0); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound on destroyed session, got %v", err)
	}
}

func TestOpponent(t *testing.T) {
	sess := newPlayingSession(t)

	opp, ok := sess.Opponent("conn-a")
	if !ok {
		t.Fatal("Expected an opponent for conn-a")
	}
	if opp.ConnID != "conn-b" {
		t.Errorf("Expected opponent conn-b, got %s", opp.ConnID)
	}

	if _, ok := New("s", "match3x3").Opponent("conn-a"); ok {
		t.Error("Expected no opponent in an empty session")
	}
}
