// internal/httpserver/server.go
//
// HTTP server wiring for the puzzle engine.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/modes", "/debug/words".
//   - Session endpoints: create, input, snapshot, reset/restart, delete, SSE events.
//   - Token middleware binding a signed session token to the session in the path.
//   - Idle session sweeping.
//
// Notes:
//   - Every session is a single-player game; the server only carries input in
//     and events out for a browser front-end.
//   - The events stream is mounted outside the request timeout.

package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/cosmic-word/internal/game"
	"github.com/robalobadob/cosmic-word/internal/store"
	"github.com/robalobadob/cosmic-word/internal/timer"
	"github.com/robalobadob/cosmic-word/internal/words"
)

// Config carries the server's collaborators and settings.
type Config struct {
	Dict         *words.Dictionary
	Store        store.Store
	Scheduler    timer.Scheduler // nil means wall clock
	TokenSecret  []byte
	TokenTTL     time.Duration
	ClientOrigin string
	DefaultMode  string
}

// Server bundles router, session store and token signer.
type Server struct {
	r           *chi.Mux
	dict        *words.Dictionary
	store       store.Store
	sched       timer.Scheduler
	tokens      *Tokens
	origin      string
	defaultMode string
}

// New constructs a Server, installs middleware, and registers routes.
func New(cfg Config) *Server {
	if cfg.Store == nil {
		cfg.Store = store.NewMemoryStore()
	}
	if cfg.Scheduler == nil {
		cfg.Scheduler = timer.TickerScheduler{}
	}
	if cfg.ClientOrigin == "" {
		cfg.ClientOrigin = "http://localhost:5173"
	}
	if cfg.DefaultMode == "" {
		cfg.DefaultMode = game.ModeQuest
	}
	s := &Server{
		r:           chi.NewRouter(),
		dict:        cfg.Dict,
		store:       cfg.Store,
		sched:       cfg.Scheduler,
		tokens:      NewTokens(cfg.TokenSecret, cfg.TokenTTL),
		origin:      cfg.ClientOrigin,
		defaultMode: cfg.DefaultMode,
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID) // add X-Request-ID
	s.r.Use(chimw.RealIP)    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer) // recover from panics
	s.r.Use(jsonContentType) // default JSON responses
	s.r.Use(s.cors)          // credentials-friendly CORS

	// Streaming route first: no request timeout.
	s.r.With(s.requireToken).Get("/sessions/{id}/events", s.handleEvents)

	s.r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(10 * time.Second)) // bound handler time

		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"service":"cosmic-word","endpoints":["/health","/modes","POST /sessions","/sessions/{id}/*"]}`))
		})
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"ok":true}`))
		})
		r.Get("/modes", s.handleModes)
		r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"entries": s.dict.Len(), "byLength": s.dict.Stats()})
		})

		s.mountSessions(r)
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// RunSweeper resets and drops sessions idle for longer than idle, checking
// every interval, until ctx is done.
func (s *Server) RunSweeper(ctx context.Context, idle, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.sweep(ctx, idle)
		}
	}
}

func (s *Server) sweep(ctx context.Context, idle time.Duration) int {
	swept := s.store.Sweep(ctx, idle)
	for _, e := range swept {
		closeEntry(e)
	}
	if len(swept) > 0 {
		log.Info().Int("sessions", len(swept)).Int("live", s.store.Len()).Msg("swept idle sessions")
	}
	return len(swept)
}

// closeEntry cancels the session's countdown and disconnects its streams.
func closeEntry(e *store.Entry) {
	if e == nil {
		return
	}
	e.Session.Reset()
	e.Hub.Close()
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for the configured client origin.
func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", s.origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ctxEntryKey is the context key type for the authorized session entry.
type ctxEntryKey struct{}

// requireToken verifies the session token and injects the matching entry.
// The token comes from "Authorization: Bearer" or, for EventSource clients
// that cannot set headers, the "token" query parameter.
func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tok := bearerOrQuery(r)
		if tok == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		sid, err := s.tokens.Verify(tok)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid_token")
			return
		}
		if sid != chi.URLParam(r, "id") {
			writeError(w, http.StatusForbidden, "forbidden")
			return
		}
		e, err := s.store.Get(r.Context(), sid)
		if err != nil {
			writeError(w, http.StatusNotFound, "not_found")
			return
		}
		ctx := context.WithValue(r.Context(), ctxEntryKey{}, e)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// entryFrom returns the entry placed by requireToken.
func entryFrom(r *http.Request) *store.Entry {
	e, _ := r.Context().Value(ctxEntryKey{}).(*store.Entry)
	return e
}

// ------------------------------- small util --------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
