// internal/httpserver/routes_sessions.go
//
// HTTP routes for game sessions.
//   - POST   /sessions                 → create and start a session, returns its token
//   - GET    /sessions/{id}            → snapshot
//   - POST   /sessions/{id}/letter     → type one letter
//   - POST   /sessions/{id}/key        → keyboard key ("Enter", "Backspace" or a letter)
//   - POST   /sessions/{id}/backspace  → delete the last letter
//   - POST   /sessions/{id}/guess      → submit the current row
//   - POST   /sessions/{id}/reset      → back to ready, timers cancelled
//   - POST   /sessions/{id}/start      → start a new game after a reset
//   - DELETE /sessions/{id}            → drop the session
//
// Input that the game ignores (wrong state, full row, non-letters) is not an
// error: the handler still answers 200 with the unchanged snapshot.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/cosmic-word/internal/game"
	"github.com/robalobadob/cosmic-word/internal/sse"
	"github.com/robalobadob/cosmic-word/internal/store"
)

// mountSessions registers all /sessions routes.
func (s *Server) mountSessions(r chi.Router) {
	r.Post("/sessions", s.handleCreate)

	r.Group(func(r chi.Router) {
		r.Use(s.requireToken)
		r.Get("/sessions/{id}", s.handleSnapshot)
		r.Delete("/sessions/{id}", s.handleDelete)
		r.Post("/sessions/{id}/letter", s.handleLetter)
		r.Post("/sessions/{id}/key", s.handleKey)
		r.Post("/sessions/{id}/backspace", s.action(func(sess *game.Session) { sess.Backspace() }))
		r.Post("/sessions/{id}/guess", s.action(func(sess *game.Session) { sess.SubmitGuess() }))
		r.Post("/sessions/{id}/reset", s.action(func(sess *game.Session) { sess.Reset() }))
		r.Post("/sessions/{id}/start", s.handleStart)
	})
}

// modeReq is the payload for POST /sessions and /sessions/{id}/start.
type modeReq struct {
	Mode string `json:"mode"` // "quest" | "race" | "countdown"; empty means the default
}

// sessionRes is returned by session endpoints.
type sessionRes struct {
	SessionID string        `json:"sessionId"`
	Token     string        `json:"token,omitempty"`
	ExpiresAt *time.Time    `json:"expiresAt,omitempty"`
	Snapshot  game.Snapshot `json:"snapshot"`
}

// modeRes describes a built-in mode for GET /modes.
type modeRes struct {
	Name         string `json:"name"`
	Rows         int    `json:"rows"`
	Cols         int    `json:"cols"`
	TimerMs      int64  `json:"timerMs,omitempty"`
	ShowProgress bool   `json:"showProgress,omitempty"`
}

func (s *Server) handleModes(w http.ResponseWriter, r *http.Request) {
	out := []modeRes{}
	for _, m := range game.Modes() {
		mr := modeRes{Name: m.Name, Rows: m.Rows, Cols: m.Cols, ShowProgress: m.ShowProgress}
		if m.Timer != nil {
			mr.TimerMs = m.Timer.Total.Milliseconds()
		}
		out = append(out, mr)
	}
	writeJSON(w, http.StatusOK, out)
}

// resolveMode decodes an optional mode body. A missing or empty body picks
// the default mode.
func (s *Server) resolveMode(r *http.Request) (game.ModeConfig, bool) {
	var req modeReq
	_ = json.NewDecoder(r.Body).Decode(&req)
	if req.Mode == "" {
		req.Mode = s.defaultMode
	}
	return game.ModeByName(req.Mode)
}

// handleCreate creates a session, starts it and returns a token bound to it.
func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	mode, ok := s.resolveMode(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown_mode")
		return
	}

	id := uuid.NewString()
	hub := sse.NewHub()
	sess := game.NewSession(s.dict,
		game.WithScheduler(s.sched),
		game.WithSink(hub.Publish),
		game.WithLogger(log.With().Str("session", id).Logger()),
	)
	if err := sess.Start(mode); err != nil {
		log.Error().Err(err).Str("mode", mode.Name).Msg("start session")
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	tok, exp, err := s.tokens.Sign(id)
	if err != nil {
		sess.Reset()
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return
	}
	e := &store.Entry{ID: id, Session: sess, Hub: hub, Created: time.Now().UTC()}
	if err := s.store.Save(r.Context(), e); err != nil {
		sess.Reset()
		log.Error().Err(err).Msg("save session")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}

	log.Info().Str("session", id).Str("mode", mode.Name).Msg("session created")
	writeJSON(w, http.StatusCreated, sessionRes{SessionID: id, Token: tok, ExpiresAt: &exp, Snapshot: sess.Snapshot()})
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	e := entryFrom(r)
	writeJSON(w, http.StatusOK, sessionRes{SessionID: e.ID, Snapshot: e.Session.Snapshot()})
}

// action wraps a body-less session operation and answers with the snapshot.
func (s *Server) action(fn func(*game.Session)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e := entryFrom(r)
		fn(e.Session)
		writeJSON(w, http.StatusOK, sessionRes{SessionID: e.ID, Snapshot: e.Session.Snapshot()})
	}
}

// letterReq is the payload for POST /sessions/{id}/letter.
type letterReq struct {
	Letter string `json:"letter"`
}

func (s *Server) handleLetter(w http.ResponseWriter, r *http.Request) {
	var req letterReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	e := entryFrom(r)
	// SubmitKey ignores anything that is not exactly one letter; the
	// "Enter"/"Backspace" names are not letters and are routed elsewhere.
	if req.Letter != "Enter" && req.Letter != "Backspace" {
		e.Session.SubmitKey(req.Letter)
	}
	writeJSON(w, http.StatusOK, sessionRes{SessionID: e.ID, Snapshot: e.Session.Snapshot()})
}

// keyReq is the payload for POST /sessions/{id}/key.
type keyReq struct {
	Key string `json:"key"`
}

func (s *Server) handleKey(w http.ResponseWriter, r *http.Request) {
	var req keyReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	e := entryFrom(r)
	e.Session.SubmitKey(req.Key)
	writeJSON(w, http.StatusOK, sessionRes{SessionID: e.ID, Snapshot: e.Session.Snapshot()})
}

// handleStart starts a new game on a session that was reset.
func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	mode, ok := s.resolveMode(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown_mode")
		return
	}
	e := entryFrom(r)
	if err := e.Session.Start(mode); err != nil {
		switch {
		case errors.Is(err, game.ErrAlreadyStarted):
			writeError(w, http.StatusConflict, "already_started")
		default:
			writeError(w, http.StatusUnprocessableEntity, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, sessionRes{SessionID: e.ID, Snapshot: e.Session.Snapshot()})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	e, err := s.store.Delete(r.Context(), entryFrom(r).ID)
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	closeEntry(e)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
