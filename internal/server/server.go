// Package server provides the HTTP JSON API for the job board.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/jonathan/jobboard/internal/applications"
	"github.com/jonathan/jobboard/internal/experience"
	"github.com/jonathan/jobboard/internal/listings"
	"github.com/jonathan/jobboard/internal/logging"
	"github.com/jonathan/jobboard/internal/search"
	"github.com/jonathan/jobboard/internal/server/ratelimit"
	"github.com/jonathan/jobboard/internal/skills"
	"github.com/jonathan/jobboard/internal/store"
	"github.com/jonathan/jobboard/internal/types"
	"go.uber.org/zap"
)

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	store      store.Store
	users      *store.Collection[types.User]
	logger     *zap.Logger
	autoAdd    bool

	engine       *search.Engine
	listings     *listings.Service
	applications *applications.Service
	experience   *experience.Service
	vocabulary   *skills.Vocabulary
	publisher    applications.Publisher
	rateLimiter  *ratelimit.Limiter
}

// Config holds server configuration
type Config struct {
	Port      int
	RateLimit *ratelimit.Config // nil disables rate limiting
	Now       func() time.Time
	Logger    *zap.Logger
	Publisher applications.Publisher

	// AutoAddSkills adds unknown profile skills to the shared vocabulary.
	AutoAddSkills bool
}

// New wires the components over st and loads the skill vocabulary.
func New(ctx context.Context, st store.Store, cfg Config) (*Server, error) {
	logger := logging.OrNop(cfg.Logger)
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	publisher := cfg.Publisher
	if publisher == nil {
		publisher = applications.NopPublisher{}
	}
	rl := cfg.RateLimit
	if rl == nil {
		rl = &ratelimit.Config{Enabled: false}
	}

	s := &Server{
		store:   st,
		users:   store.NewCollection[types.User](st, store.CollectionUsers),
		logger:  logger,
		autoAdd: cfg.AutoAddSkills,
		engine:  search.NewEngine(now),
		listings: listings.NewService(st,
			listings.WithLogger(logger),
			listings.WithClock(now)),
		applications: applications.NewService(st,
			applications.WithLogger(logger),
			applications.WithClock(now),
			applications.WithPublisher(publisher)),
		experience:  experience.NewService(st, now, logger),
		vocabulary:  skills.NewVocabulary(st, logger),
		publisher:   publisher,
		rateLimiter: ratelimit.NewLimiter(rl),
	}

	if err := s.vocabulary.Load(ctx); err != nil {
		s.rateLimiter.Stop()
		return nil, fmt.Errorf("failed to load skill vocabulary: %w", err)
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(s.routes()))),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// Listings
	mux.HandleFunc("GET /vacancies", s.handleSearchVacancies)
	mux.HandleFunc("POST /vacancies", s.handleCreateVacancy)
	mux.HandleFunc("GET /vacancies/{id}", s.handleGetVacancy)
	mux.HandleFunc("GET /resumes", s.handleSearchResumes)
	mux.HandleFunc("POST /resumes", s.handleCreateResume)
	mux.HandleFunc("GET /resumes/{id}", s.handleGetResume)
	mux.HandleFunc("GET /categories", s.handleCategories)

	// Applications
	mux.HandleFunc("POST /vacancies/{id}/applications", s.handleSubmitApplication)
	mux.HandleFunc("GET /applications", s.handleListApplications)
	mux.HandleFunc("PATCH /applications/{id}", s.handleTransitionApplication)

	// Skills
	mux.HandleFunc("GET /skills", s.handleSuggestSkills)
	mux.HandleFunc("POST /skills", s.handleAddSkill)
	mux.HandleFunc("PUT /users/{id}/skills", s.handleSetProfileSkills)

	// Work experience
	mux.HandleFunc("GET /users/{id}/experience", s.handleGetExperience)
	mux.HandleFunc("POST /users/{id}/experience", s.handleAddExperience)
	mux.HandleFunc("PUT /users/{id}/experience/{index}", s.handleReplaceExperience)
	mux.HandleFunc("DELETE /users/{id}/experience/{index}", s.handleRemoveExperience)

	return mux
}

// Handler returns the full middleware chain.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start begins listening for requests and blocks until SIGINT or SIGTERM.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errc <- err
		}
	}()

	select {
	case err := <-errc:
		s.Close()
		return fmt.Errorf("server error: %w", err)
	case <-stop:
	}
	s.logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.Close()
	s.logger.Info("server stopped")
	return nil
}

// Close releases the limiter, the event publisher and the store.
func (s *Server) Close() {
	s.rateLimiter.Stop()
	if err := s.publisher.Close(); err != nil {
		s.logger.Warn("failed to close event publisher", zap.Error(err))
	}
	if err := s.store.Close(); err != nil {
		s.logger.Warn("failed to close store", zap.Error(err))
	}
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit rejects clients over their limit with 429.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(clientID(r), r.URL.Path, r.Method)
		setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// withLogging logs one line per request.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
			zap.String("remote", r.RemoteAddr))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// clientID is the remote IP. X-Forwarded-For is not trusted.
func clientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

func setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
	}
	if !info.ResetTime.IsZero() {
		response["reset_at"] = info.ResetTime.Format(time.RFC3339)
	}
	if info.RetryAfter > 0 {
		secs := int(info.RetryAfter.Seconds()) + 1
		response["retry_after"] = secs
		w.Header().Set("Retry-After", strconv.Itoa(secs))
	}

	s.logger.Warn("rate limit exceeded",
		zap.String("client", clientID(r)),
		zap.String("path", r.URL.Path),
		zap.Int("limit", info.Limit))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
