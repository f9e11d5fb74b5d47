package matchmaking

import "testing"

func TestTake_ParksFirstRequester(t *testing.T) {
	q := NewQueue()

	opp, matched := q.Take("match3x3", "conn-a", "alice")
	if matched {
		t.Fatal("First requester should be parked, not matched")
	}
	if opp != nil {
		t.Fatal("Expected nil opponent when parked")
	}
	if !q.Waiting("match3x3") {
		t.Error("Expected a parked ticket for match3x3")
	}
}

func TestTake_MatchesSecondRequester(t *testing.T) {
	q := NewQueue()
	q.Take("match3x3", "conn-a", "alice")

	opp, matched := q.Take("match3x3", "conn-b", "bob")
	if !matched {
		t.Fatal("Second requester should be matched")
	}
	if opp.ConnID != "conn-a" || opp.Name != "alice" {
		t.Errorf("Expected parked ticket conn-a/alice, got %s/%s", opp.ConnID, opp.Name)
	}
	if q.Waiting("match3x3") {
		t.Error("Parked ticket should be consumed after a match")
	}
}

func TestTake_NeverSelfPairs(t *testing.T) {
	q := NewQueue()
	q.Take("match3x3", "conn-a", "alice")

	// A duplicate request from the same connection refreshes the ticket
	// instead of matching against itself.
	opp, matched := q.Take("match3x3", "conn-a", "alice")
	if matched {
		t.Fatal("Connection matched against its own parked ticket")
	}
	if opp != nil {
		t.Fatal("Expected nil opponent on refresh")
	}

	// The refreshed ticket still matches a different connection.
	opp, matched = q.Take("match3x3", "conn-b", "bob")
	if !matched || opp.ConnID != "conn-a" {
		t.Errorf("Expected refreshed ticket to match conn-b, got matched=%v opp=%+v", matched, opp)
	}
}

func TestTake_GameTypesAreIndependent(t *testing.T) {
	q := NewQueue()
	q.Take("match3x3", "conn-a", "alice")

	opp, matched := q.Take("other", "conn-b", "bob")
	if matched {
		t.Fatal("Requester matched across game types")
	}
	if opp != nil {
		t.Fatal("Expected nil opponent for a different game type")
	}
	if !q.Waiting("match3x3") || !q.Waiting("other") {
		t.Error("Expected a parked ticket per game type")
	}
}

func TestRemove(t *testing.T) {
	q := NewQueue()
	q.Take("match3x3", "conn-a", "alice")

	if !q.Remove("conn-a") {
		t.Error("Expected Remove to report a removed ticket")
	}
	if q.Waiting("match3x3") {
		t.Error("Ticket still parked after Remove")
	}
	if q.Remove("conn-a") {
		t.Error("Second Remove should find nothing")
	}
}

func TestRemove_LeavesOtherTickets(t *testing.T) {
	q := NewQueue()
	q.Take("match3x3", "conn-a", "alice")
	q.Take("other", "conn-b", "bob")

	q.Remove("conn-a")

	if q.Waiting("match3x3") {
		t.Error("conn-a's ticket should be gone")
	}
	if !q.Waiting("other") {
		t.Error("conn-b's ticket should remain")
	}
}
