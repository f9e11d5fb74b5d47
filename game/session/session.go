package session

import (
	"errors"
	"sync"
	"time"

	"github.com/playgrid/playgrid/game/engine"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrNotParticipant  = errors.New("connection does not hold a seat in this session")
	ErrNotReady        = errors.New("session is not in a playable state")
	ErrOutOfTurn       = errors.New("not this seat's turn")
	ErrCellOccupied    = errors.New("cell is out of range or already taken")
	ErrRoomFull        = errors.New("session already has two seats")
)

// Status is the lifecycle state of a session.
type Status string

const (
	StatusWaiting  Status = "waiting"  // fewer than two seats occupied
	StatusPlaying  Status = "playing"  // both seats occupied, moves accepted
	StatusFinished Status = "finished" // terminal board, auto-reset pending
)

// Seat binds a connection to a session with an assigned mark.
type Seat struct {
	ConnID string      `json:"-"`
	Name   string      `json:"name"`
	Mark   engine.Mark `json:"symbol"`
}

// Session is one in-progress or finished match. All mutation happens under
// the session's own mutex.
type Session struct {
	ID        string
	GameType  string
	CreatedAt time.Time

	mu         sync.Mutex
	seats      []Seat
	board      engine.Board
	turn       engine.Mark
	status     Status
	destroyed  bool
	resetTimer *time.Timer
}

// New creates an empty waiting session. Seats are added by the matchmaking
// layer via AddSeat.
func New(id, gameType string) *Session {
	return &Session{
		ID:        id,
		GameType:  gameType,
		CreatedAt: time.Now(),
		turn:      engine.MarkX,
		status:    StatusWaiting,
	}
}

// AddSeat seats a connection. Arrival order fixes the mark assignment: the
// first occupant gets X and moves first, the second gets O. Seating the
// second occupant transitions the session to playing.
func (s *Session) AddSeat(connID, name string) (Seat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.destroyed {
		return Seat{}, ErrSessionNotFound
	}
	if len(s.seats) >= 2 {
		return Seat{}, ErrRoomFull
	}
	for _, seat := range s.seats {
		if seat.ConnID == connID {
			return Seat{}, ErrRoomFull
		}
	}

	mark := engine.MarkX
	if len(s.seats) == 1 {
		mark = engine.MarkO
	}
	seat := Seat{ConnID: connID, Name: name, Mark: mark}
	s.seats = append(s.seats, seat)

	if len(s.seats) == 2 {
		s.status = StatusPlaying
	}
	return seat, nil
}

// MoveResult describes a validated, applied move.
type MoveResult struct {
	Cell     int
	Mark     engine.Mark
	Board    engine.Board
	Turn     engine.Mark
	Winner   engine.Mark
	Terminal bool
}

// ApplyMove validates and applies a move for the given connection. The
// checks run in a strict order, and nothing is written until all of them
// pass:
//
//  1. requesting connection must hold a seat (ErrNotParticipant)
//  2. session must be playing (ErrNotReady)
//  3. the seat's mark must match the current turn (ErrOutOfTurn)
//  4. the cell must be in range and empty (ErrCellOccupied)
//
// On success the mark is written, the board evaluated, and the turn
// flipped. A winner or full board transitions the session to finished; the
// caller is expected to arm the auto-reset via ScheduleReset.
func (s *Session) ApplyMove(connID string, cell int) (*MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.destroyed {
		return nil, ErrSessionNotFound
	}

	seat, ok := s.seatFor(connID)
	if !ok {
		return nil, ErrNotParticipant
	}
	if s.status != StatusPlaying {
		return nil, ErrNotReady
	}
	if seat.Mark != s.turn {
		return nil, ErrOutOfTurn
	}
	if cell < 0 || cell >= engine.Cells || s.board[cell] != engine.Empty {
		return nil, ErrCellOccupied
	}

	s.board[cell] = seat.Mark
	res := engine.Evaluate(s.board)
	s.turn = seat.Mark.Opponent()

	out := &MoveResult{
		Cell:     cell,
		Mark:     seat.Mark,
		Board:    s.board,
		Turn:     s.turn,
		Winner:   res.Winner,
		Terminal: res.Terminal(),
	}
	if out.Terminal {
		s.status = StatusFinished
	}
	return out, nil
}

// ResetResult describes the state restored by an auto-reset.
type ResetResult struct {
	Board  engine.Board
	Turn   engine.Mark
	Status Status
}

// ScheduleReset arms the auto-reset timer. When the delay elapses the board
// is cleared, the turn returns to X, and the session goes back to playing
// (or stays waiting if a seat was vacated meanwhile); fn is then invoked
// with the restored state. A timer that fires after Destroy is a no-op and
// fn is not called. Re-arming replaces any pending timer.
func (s *Session) ScheduleReset(delay time.Duration, fn func(ResetResult)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.destroyed {
		return
	}
	if s.resetTimer != nil {
		s.resetTimer.Stop()
	}
	s.resetTimer = time.AfterFunc(delay, func() {
		if res, ok := s.reset(); ok && fn != nil {
			fn(res)
		}
	})
}

func (s *Session) reset() (ResetResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.destroyed {
		return ResetResult{}, false
	}
	s.board = engine.Board{}
	s.turn = engine.MarkX
	if len(s.seats) == 2 {
		s.status = StatusPlaying
	} else {
		s.status = StatusWaiting
	}
	s.resetTimer = nil
	return ResetResult{Board: s.board, Turn: s.turn, Status: s.status}, true
}

// Destroy marks the session dead and cancels any pending auto-reset. Later
// calls on the session fail with ErrSessionNotFound.
func (s *Session) Destroy() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.destroyed = true
	if s.resetTimer != nil {
		s.resetTimer.Stop()
		s.resetTimer = nil
	}
}

// HasSeat reports whether the connection holds a seat in this session.
func (s *Session) HasSeat(connID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.seatFor(connID)
	return ok
}

// Opponent returns the seat held by the other occupant, if any.
func (s *Session) Opponent(connID string) (Seat, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, seat := range s.seats {
		if seat.ConnID != connID {
			return seat, true
		}
	}
	return Seat{}, false
}

// SeatByMark returns the seat holding the given mark, if occupied.
func (s *Session) SeatByMark(mark engine.Mark) (Seat, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, seat := range s.seats {
		if seat.Mark == mark {
			return seat, true
		}
	}
	return Seat{}, false
}

// Seats returns the seats in arrival order.
func (s *Session) Seats() []Seat {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Seat, len(s.seats))
	copy(out, s.seats)
	return out
}

// Status returns the current lifecycle state.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Snapshot is a read-only copy of a session for listings.
type Snapshot struct {
	ID        string       `json:"id"`
	GameType  string       `json:"game_type"`
	Status    Status       `json:"status"`
	Seats     []Seat       `json:"seats"`
	Board     engine.Board `json:"board"`
	Turn      engine.Mark  `json:"current_symbol"`
	CreatedAt time.Time    `json:"created_at"`
}

// Snapshot copies the session state under its lock.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	seats := make([]Seat, len(s.seats))
	copy(seats, s.seats)
	return Snapshot{
		ID:        s.ID,
		GameType:  s.GameType,
		Status:    s.status,
		Seats:     seats,
		Board:     s.board,
		Turn:      s.turn,
		CreatedAt: s.CreatedAt,
	}
}

// seatFor must be called with s.mu held.
func (s *Session) seatFor(connID string) (Seat, bool) {
	for _, seat := range s.seats {
		if seat.ConnID == connID {
			return seat, true
		}
	}
	return Seat{}, false
}
