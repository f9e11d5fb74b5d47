package player

import "context"

// EventLeaderboard is the event name carrying a leaderboard snapshot.
const EventLeaderboard = "leaderboard"

// Broadcaster delivers global events to every connected client.
type Broadcaster interface {
	BroadcastToAll(event string, data any)
}

// Aggregator recomputes the ranked top-N view of player scores and
// publishes it to all connections. It is triggered after registration,
// after any win, after disconnect cleanup, and on a liveness interval.
type Aggregator struct {
	store *Store
	out   Broadcaster
	size  int
}

// NewAggregator creates an aggregator publishing at most size entries.
func NewAggregator(store *Store, out Broadcaster, size int) *Aggregator {
	return &Aggregator{store: store, out: out, size: size}
}

// Snapshot reads the current top-N without publishing.
func (a *Aggregator) Snapshot(ctx context.Context) ([]Record, error) {
	return a.store.TopN(ctx, a.size)
}

// Republish recomputes the leaderboard and broadcasts it.
func (a *Aggregator) Republish(ctx context.Context) error {
	records, err := a.store.TopN(ctx, a.size)
	if err != nil {
		return err
	}
	if records == nil {
		records = []Record{}
	}
	a.out.BroadcastToAll(EventLeaderboard, records)
	return nil
}
