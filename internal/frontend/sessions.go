package frontend

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Shivanand-hulikatti/activity-board/internal/board"
	"github.com/Shivanand-hulikatti/activity-board/internal/observability"
)

// CookieName carries the session id of a browser's board.
const CookieName = "board_session"

// BoardFactory builds the board for a new session.
type BoardFactory func() (*board.Board, error)

type session struct {
	board    *board.Board
	lastSeen time.Time
}

// Sessions gives every browser its own board, keyed by a cookie.
type Sessions struct {
	mu       sync.Mutex
	boards   map[string]*session
	newBoard BoardFactory
	limit    int
	log      *zap.Logger
	now      func() time.Time
}

// NewSessions constructs an empty registry holding at most limit sessions.
// A limit of zero means no cap.
func NewSessions(newBoard BoardFactory, limit int, log *zap.Logger) *Sessions {
	if log == nil {
		log = zap.NewNop()
	}
	return &Sessions{
		boards:   make(map[string]*session),
		newBoard: newBoard,
		limit:    limit,
		log:      log,
		now:      time.Now,
	}
}

// Lookup returns the board of the requesting browser, or nil when the
// request carries no known session.
func (s *Sessions) Lookup(r *http.Request) *board.Board {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess := s.lookupLocked(r); sess != nil {
		return sess.board
	}
	return nil
}

// Board returns the board of the requesting browser, creating one and
// setting the cookie when the request carries no known session.
func (s *Sessions) Board(w http.ResponseWriter, r *http.Request) (*board.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess := s.lookupLocked(r); sess != nil {
		return sess.board, nil
	}

	b, err := s.newBoard()
	if err != nil {
		return nil, err
	}
	if s.limit > 0 && len(s.boards) >= s.limit {
		s.evictOldestLocked()
	}
	id := uuid.NewString()
	s.boards[id] = &session{board: b, lastSeen: s.now()}
	observability.ActiveSessions.Set(float64(len(s.boards)))

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	s.log.Debug("board session created", zap.String("session", id))
	return b, nil
}

func (s *Sessions) lookupLocked(r *http.Request) *session {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return nil
	}
	if _, err := uuid.Parse(c.Value); err != nil {
		return nil
	}
	sess, ok := s.boards[c.Value]
	if !ok {
		return nil
	}
	sess.lastSeen = s.now()
	return sess
}

func (s *Sessions) evictOldestLocked() {
	var (
		oldestID string
		oldest   *session
	)
	for id, sess := range s.boards {
		if oldest == nil || sess.lastSeen.Before(oldest.lastSeen) {
			oldestID, oldest = id, sess
		}
	}
	if oldest == nil {
		return
	}
	oldest.board.Close()
	delete(s.boards, oldestID)
	s.log.Info("evicted least recently used board session", zap.Int("limit", s.limit))
}

// Sweep closes and forgets sessions idle for longer than maxIdle and
// returns how many were removed.
func (s *Sessions) Sweep(maxIdle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-maxIdle)
	removed := 0
	for id, sess := range s.boards {
		if sess.lastSeen.Before(cutoff) {
			sess.board.Close()
			delete(s.boards, id)
			removed++
		}
	}
	observability.ActiveSessions.Set(float64(len(s.boards)))
	if removed > 0 {
		s.log.Info("evicted idle board sessions", zap.Int("count", removed), zap.Int("remaining", len(s.boards)))
	}
	return removed
}

// Len reports the number of live sessions.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.boards)
}

// Close stops every board's pending timers.
func (s *Sessions) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, sess := range s.boards {
		sess.board.Close()
		delete(s.boards, id)
	}
	observability.ActiveSessions.Set(0)
}
