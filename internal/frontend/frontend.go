// Package frontend serves the activity board to browsers. Each browser gets
// its own board; form posts and remove clicks arrive as HTTP requests and
// are turned into board operations, after which the page is rendered back.
package frontend

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Shivanand-hulikatti/activity-board/internal/board"
	"github.com/Shivanand-hulikatti/activity-board/web"
)

// Server binds page events to the boards held in a Sessions registry.
type Server struct {
	sessions *Sessions
	log      *zap.Logger
}

// NewServer constructs a Server.
func NewServer(sessions *Sessions, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{sessions: sessions, log: log}
}

// Routes mounts the page, its event endpoints and the static assets on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/", s.Page)
	r.Post("/signup", s.Signup)
	r.Post(board.DefaultUnregisterPath, s.Unregister)
	r.Get("/message", s.Message)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(web.Static()))))
}

// Page handles GET /: the initial load of the catalog. It is the only route
// that starts a session.
func (s *Server) Page(w http.ResponseWriter, r *http.Request) {
	b, err := s.sessions.Board(w, r)
	if err != nil {
		s.log.Error("create board session", zap.Error(err))
		http.Error(w, "board unavailable", http.StatusInternalServerError)
		return
	}
	// A failed load leaves its notice in the list; the page still renders.
	_ = b.LoadCatalog(r.Context())
	s.render(w, b, http.StatusOK)
}

// Signup handles the signup form submission.
func (s *Server) Signup(w http.ResponseWriter, r *http.Request) {
	b, ok := s.board(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	status := http.StatusOK
	err := b.SubmitSignup(r.Context(), r.PostForm.Get("email"), r.PostForm.Get("activity"))
	if errors.Is(err, board.ErrMissingField) || errors.Is(err, board.ErrUnknownActivity) {
		status = http.StatusBadRequest
	}
	s.render(w, b, status)
}

// Unregister handles a click on a participant's remove control.
func (s *Server) Unregister(w http.ResponseWriter, r *http.Request) {
	b, ok := s.board(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	activity, email := r.PostForm.Get("activity"), r.PostForm.Get("email")
	sent, _ := b.RequestUnregister(r.Context(), activity, email)
	if !sent {
		s.log.Debug("remove click ignored", zap.String("activity", activity), zap.String("email", email))
	}
	s.render(w, b, http.StatusOK)
}

// Message reports the feedback slot so scripts can poll for the timeout.
func (s *Server) Message(w http.ResponseWriter, r *http.Request) {
	b, ok := s.board(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(b.Message())
}

// board finds the session's board. Requests without a session are sent to
// the page first.
func (s *Server) board(w http.ResponseWriter, r *http.Request) (*board.Board, bool) {
	b := s.sessions.Lookup(r)
	if b == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return nil, false
	}
	return b, true
}

func (s *Server) render(w http.ResponseWriter, b *board.Board, status int) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := b.Render(w); err != nil {
		s.log.Warn("render page", zap.Error(err))
	}
}
