package service

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/playgrid/playgrid/game/config"
	"github.com/playgrid/playgrid/game/engine"
	"github.com/playgrid/playgrid/game/matchmaking"
	"github.com/playgrid/playgrid/game/session"
	"github.com/playgrid/playgrid/player"
)

// gameServiceImpl implements the GameService interface.
type gameServiceImpl struct {
	registry    *session.Registry
	directory   *session.Directory
	queue       *matchmaking.Queue
	router      Router
	scores      Scorekeeper
	leaderboard Publisher

	resetDelay time.Duration
	winScore   int
	maxChatLen int
}

// New creates the game service.
func New(
	registry *session.Registry,
	directory *session.Directory,
	queue *matchmaking.Queue,
	router Router,
	scores Scorekeeper,
	leaderboard Publisher,
	cfg *config.Config,
) GameService {
	return &gameServiceImpl{
		registry:    registry,
		directory:   directory,
		queue:       queue,
		router:      router,
		scores:      scores,
		leaderboard: leaderboard,
		resetDelay:  cfg.ResetDelay(),
		winScore:    cfg.WinScore,
		maxChatLen:  cfg.MaxChatLength,
	}
}

// Connect greets a new connection with a suggested guest name. The name is
// remembered but not bound; the first request-match either overrides it or
// binds it as the connection's identity.
func (s *gameServiceImpl) Connect(ctx context.Context, connID string) string {
	name := player.GuestName()
	s.directory.Suggest(connID, name)
	s.router.SendToConn(connID, EventWelcome, WelcomePayload{
		ConnID:      connID,
		DisplayName: name,
	})
	return name
}

// RequestMatch pairs the requester with the parked entry for the game type,
// or parks the requester. The queue slot and the registry are taken
// sequentially, never nested.
func (s *gameServiceImpl) RequestMatch(ctx context.Context, connID, displayName, gameType string) error {
	if gameType == "" {
		gameType = config.DefaultGameType
	}

	// An anonymous request binds the guest name suggested at connect time.
	// A fresh one is generated only if the connection was never greeted.
	name := s.directory.Bind(connID, displayName)
	if name == "" {
		name = s.directory.Bind(connID, player.GuestName())
	}

	parked, matched := s.queue.Take(gameType, connID, name)
	if !matched {
		s.router.SendToConn(connID, EventWaiting, WaitingPayload{
			GameType: gameType,
			Message:  "waiting for an opponent",
		})
		return nil
	}

	sess := s.registry.Create(gameType)

	// First parked, first seated: the parked side gets X and moves first.
	if _, err := sess.AddSeat(parked.ConnID, parked.Name); err != nil {
		return err
	}
	if _, err := sess.AddSeat(connID, name); err != nil {
		return err
	}

	s.directory.Join(parked.ConnID, sess.ID)
	s.directory.Join(connID, sess.ID)
	s.router.JoinSession(parked.ConnID, sess.ID)
	s.router.JoinSession(connID, sess.ID)

	// Either side can disconnect between ticket consumption and seating.
	// Its cleanup then finds neither a parked entry nor a session, so the
	// pairing must re-check liveness itself and unwind a dead match.
	for _, pair := range []struct{ gone, stays string }{
		{parked.ConnID, connID},
		{connID, parked.ConnID},
	} {
		if s.router.Connected(pair.gone) {
			continue
		}
		sess.Destroy()
		s.registry.Delete(sess.ID)
		s.directory.Leave(pair.gone, sess.ID)
		s.directory.Leave(pair.stays, sess.ID)
		s.router.LeaveSession(pair.gone, sess.ID)
		s.router.LeaveSession(pair.stays, sess.ID)
		s.router.SendToConn(pair.stays, EventOpponentLeft, OpponentLeftPayload{
			SessionID: sess.ID,
			Message:   "your opponent left the game",
		})
		log.Printf("Session %s unwound: %s disconnected during pairing", sess.ID, pair.gone)
		return nil
	}

	s.router.BroadcastToSession(sess.ID, EventSessionStarted, SessionStartedPayload{
		SessionID:     sess.ID,
		Seats:         sess.Seats(),
		CurrentSymbol: engine.MarkX,
	})

	log.Printf("Session %s started: %s (X) vs %s (O)", sess.ID, parked.Name, name)
	return nil
}

// SubmitMove validates the move against the owning session and broadcasts
// the outcome. A terminal result triggers win bookkeeping and the delayed
// auto-reset.
func (s *gameServiceImpl) SubmitMove(ctx context.Context, connID, sessionID string, cell int) error {
	sess, err := s.registry.Get(sessionID)
	if err != nil {
		return err
	}

	res, err := sess.ApplyMove(connID, cell)
	if err != nil {
		return err
	}

	s.router.BroadcastToSession(sessionID, EventMoveApplied, MoveAppliedPayload{
		CellIndex:     res.Cell,
		Symbol:        res.Mark,
		Board:         res.Board,
		CurrentSymbol: res.Turn,
		Winner:        res.Winner,
		IsTerminal:    res.Terminal,
	})

	if res.Terminal {
		s.concludeSession(ctx, sess, res)
	}
	return nil
}

// concludeSession runs the one-time bookkeeping for a terminal board and
// arms the auto-reset.
func (s *gameServiceImpl) concludeSession(ctx context.Context, sess *session.Session, res *session.MoveResult) {
	entry := player.GameLog{
		SessionID: sess.ID,
		GameType:  sess.GameType,
		StartedAt: sess.CreatedAt,
		EndedAt:   time.Now(),
	}
	for _, seat := range sess.Seats() {
		if seat.Mark == engine.MarkX {
			entry.PlayerX = seat.Name
		} else {
			entry.PlayerO = seat.Name
		}
	}

	// Exactly one record update per concluded session, winner only.
	if res.Winner != engine.Empty {
		if seat, ok := sess.SeatByMark(res.Winner); ok {
			entry.Winner = seat.Name
			if _, err := s.scores.RecordWin(ctx, seat.Name, s.winScore); err != nil {
				log.Printf("Failed to record win for %s: %v", seat.Name, err)
			}
			if err := s.leaderboard.Republish(ctx); err != nil {
				log.Printf("Failed to republish leaderboard: %v", err)
			}
		}
	}

	if err := s.scores.LogGame(ctx, entry); err != nil {
		log.Printf("Failed to log game %s: %v", sess.ID, err)
	}

	sessionID := sess.ID
	sess.ScheduleReset(s.resetDelay, func(r session.ResetResult) {
		s.router.BroadcastToSession(sessionID, EventSessionReset, SessionResetPayload{
			Board:         r.Board,
			CurrentSymbol: r.Turn,
		})
	})
}

// SendChat relays a chat line to the session. Only occupants may speak.
func (s *gameServiceImpl) SendChat(ctx context.Context, connID, sessionID, text string) error {
	sess, err := s.registry.Get(sessionID)
	if err != nil {
		return err
	}
	if !sess.HasSeat(connID) {
		return session.ErrNotParticipant
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if runes := []rune(text); len(runes) > s.maxChatLen {
		text = string(runes[:s.maxChatLen])
	}

	name, ok := s.directory.Name(connID)
	if !ok {
		name = "unknown"
	}

	s.router.BroadcastToSession(sessionID, EventSessionChat, ChatPayload{
		DisplayName: name,
		Text:        text,
		Timestamp:   time.Now(),
	})
	return nil
}

// Disconnect runs the cleanup sequence for a closed connection: the parked
// queue entry, every session where the connection holds a seat, the
// directory binding, and a leaderboard republish.
func (s *gameServiceImpl) Disconnect(ctx context.Context, connID string) {
	s.queue.Remove(connID)

	for _, sess := range s.registry.ByConn(connID) {
		opp, hasOpp := sess.Opponent(connID)

		sess.Destroy()
		s.registry.Delete(sess.ID)
		s.directory.Leave(connID, sess.ID)

		if hasOpp {
			s.directory.Leave(opp.ConnID, sess.ID)
			s.router.SendToConn(opp.ConnID, EventOpponentLeft, OpponentLeftPayload{
				SessionID: sess.ID,
				Message:   "your opponent left the game",
			})
			s.router.LeaveSession(opp.ConnID, sess.ID)
		}

		log.Printf("Session %s destroyed after %s disconnected", sess.ID, connID)
	}

	s.directory.Remove(connID)

	if err := s.leaderboard.Republish(ctx); err != nil {
		log.Printf("Failed to republish leaderboard: %v", err)
	}
}

// Sessions returns snapshots of all live sessions.
func (s *gameServiceImpl) Sessions(ctx context.Context) []session.Snapshot {
	sessions := s.registry.List()
	out := make([]session.Snapshot, 0, len(sessions))
	for _, sess := range sessions {
		out = append(out, sess.Snapshot())
	}
	return out
}
