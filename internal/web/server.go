// Package web serves the browser UI: a single page with the request form,
// a streamed response area and the recent history of the visitor's session.
package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/longkey1/sunyata/internal/sunyata/assistant"
	"github.com/longkey1/sunyata/internal/sunyata/session"
	"github.com/robfig/cron/v3"
)

//go:embed templates/index.html
var templatesFS embed.FS

// SessionCookie names the cookie that carries the visitor's session ID.
const SessionCookie = "sunyata_session"

// pruneSchedule is how often idle sessions and rate limiters are dropped.
const pruneSchedule = "@every 1m"

// Options configure a Server.
type Options struct {
	Addr               string
	RateLimit          int // Generations per minute per client, 0 = disabled
	SessionIdleTimeout time.Duration
	DefaultTemperature float32
}

// Server is the HTTP display surface of the assistant.
type Server struct {
	assistant *assistant.Assistant
	store     *session.Store
	opts      Options
	logger    *log.Logger
	page      *template.Template
	limiter   *RateLimiter
	router    *http.ServeMux

	mu     sync.Mutex
	server *http.Server
	cron   *cron.Cron
}

// New creates a Server. A nil logger discards log output.
func New(a *assistant.Assistant, store *session.Store, opts Options, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	s := &Server{
		assistant: a,
		store:     store,
		opts:      opts,
		logger:    logger,
		page:      template.Must(template.ParseFS(templatesFS, "templates/index.html")),
		limiter:   NewRateLimiter(opts.RateLimit),
		router:    http.NewServeMux(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	generate := RateLimitMiddleware(s.limiter, s.logger)(http.HandlerFunc(s.handleGenerate))

	s.router.HandleFunc("GET /{$}", s.handleIndex)
	s.router.Handle("POST /api/generate", generate)
	s.router.HandleFunc("GET /api/history", s.handleHistory)
	s.router.HandleFunc("GET /api/options", s.handleOptions)
	s.router.HandleFunc("GET /health", s.handleHealth)
}

// Handler returns the router wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	return Chain(
		RecoveryMiddleware(s.logger),
		SecurityHeadersMiddleware(),
		LoggingMiddleware(s.logger),
	)(s.router)
}

// Start starts the pruning schedule and serves until Shutdown is called.
func (s *Server) Start() error {
	c := cron.New()
	if _, err := c.AddFunc(pruneSchedule, s.prune); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		// No WriteTimeout: a response streams for as long as the endpoint emits tokens.
		IdleTimeout: 120 * time.Second,
	}

	s.mu.Lock()
	s.server = srv
	s.cron = c
	s.mu.Unlock()

	c.Start()
	s.logger.Printf("SERVER_START | addr=%s rate_limit=%d/min session_idle_timeout=%s",
		s.opts.Addr, s.opts.RateLimit, s.opts.SessionIdleTimeout)

	err := srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown gracefully shuts down the server, waiting for in-flight streams.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv, c := s.server, s.cron
	s.mu.Unlock()

	if c != nil {
		<-c.Stop().Done()
	}
	if srv == nil {
		return nil
	}
	s.logger.Printf("SERVER_SHUTDOWN | sessions=%d", s.store.Len())
	return srv.Shutdown(ctx)
}

// prune drops idle sessions and forgotten rate-limit buckets.
func (s *Server) prune() {
	sessions := s.store.Prune(s.opts.SessionIdleTimeout)
	clients := 0
	if s.limiter != nil {
		clients = s.limiter.Prune(10 * time.Minute)
	}
	if sessions > 0 || clients > 0 {
		s.logger.Printf("PRUNE | sessions=%d clients=%d remaining=%d", sessions, clients, s.store.Len())
	}
}

// sessionFor returns the visitor's session, creating it and setting the
// cookie on first contact.
func (s *Server) sessionFor(w http.ResponseWriter, r *http.Request) *session.Session {
	var id string
	if c, err := r.Cookie(SessionCookie); err == nil {
		id = c.Value
	}
	sess, created := s.store.GetOrCreate(id)
	if created {
		http.SetCookie(w, &http.Cookie{
			Name:     SessionCookie,
			Value:    sess.ID,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		s.logger.Printf("SESSION_START | session=%s", sess.GetShortID())
	}
	return sess
}
