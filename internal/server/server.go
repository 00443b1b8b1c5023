// Package server provides the web front end for the resume roaster.
package server

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/jonathan/resume-roaster/internal/analysis"
	"github.com/jonathan/resume-roaster/internal/server/ratelimit"
	"github.com/jonathan/resume-roaster/internal/session"
	"github.com/jonathan/resume-roaster/internal/types"
	"github.com/jonathan/resume-roaster/internal/upload"
	"golang.org/x/sync/errgroup"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Defaults for Config fields left zero.
const (
	DefaultSessionTTL = time.Hour
	sweepInterval     = time.Minute
	shutdownTimeout   = 30 * time.Second
)

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	sessions    *session.Store
	rateLimiter *ratelimit.Limiter
	pages       map[string]*template.Template
	sessionTTL  time.Duration

	closing   chan struct{}
	closeOnce sync.Once
}

// Config holds server configuration
type Config struct {
	Port    int
	APIURL  string
	Timeout time.Duration
	// Mode preselected for new sessions. Defaults to roast.
	Mode       types.Mode
	SessionTTL time.Duration
	// Analyzer replaces the HTTP analysis client built from APIURL.
	Analyzer upload.Analyzer
	// RateLimit overrides the RATE_LIMIT_* environment configuration.
	RateLimit *ratelimit.Config
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	analyzer := cfg.Analyzer
	if analyzer == nil {
		opts := analysis.DefaultOptions()
		if cfg.Timeout > 0 {
			opts.Timeout = cfg.Timeout
		}
		client, err := analysis.NewClient(cfg.APIURL, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to create analysis client: %w", err)
		}
		log.Printf("Analysis service: %s", client.Endpoint())
		analyzer = client
	}

	pages, err := parsePages()
	if err != nil {
		return nil, err
	}

	mode := cfg.Mode
	if !mode.Valid() {
		mode = types.DefaultMode
	}
	ttl := cfg.SessionTTL
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	rlConfig := cfg.RateLimit
	if rlConfig == nil {
		rlConfig = ratelimit.LoadConfig()
	}

	s := &Server{
		pages:       pages,
		sessionTTL:  ttl,
		rateLimiter: ratelimit.NewLimiter(rlConfig),
		closing:     make(chan struct{}),
	}
	s.sessions = session.NewStore(func() *session.Session {
		sess := session.New(analyzer, upload.WithTimeout(cfg.Timeout))
		sess.SetMode(mode)
		return sess
	})

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleLanding)
	mux.HandleFunc("POST /start", s.handleStart)
	mux.HandleFunc("GET /upload", s.handleUploadPage)
	mux.HandleFunc("POST /upload", s.handleUpload)
	mux.HandleFunc("GET /result", s.handleResult)
	mux.HandleFunc("GET /result/roast.txt", s.handleRoastText)
	mux.HandleFunc("POST /reset", s.handleReset)
	mux.HandleFunc("GET /events", s.handleEvents)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /static/", http.FileServerFS(staticFS))

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(mux))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 0, // SSE streams stay open
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

func parsePages() (map[string]*template.Template, error) {
	pages := make(map[string]*template.Template)
	for _, name := range []string{"landing", "upload", "result"} {
		tmpl, err := template.ParseFS(templateFS, "templates/layout.gohtml", "templates/"+name+".gohtml")
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s page: %w", name, err)
		}
		pages[name] = tmpl
	}
	return pages, nil
}

// Handler returns the root handler with all middleware applied.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start serves until SIGINT or SIGTERM, then shuts down gracefully.
func (s *Server) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.Run(ctx)
}

// Run serves until ctx is cancelled or the listener fails.
func (s *Server) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				if n := s.sessions.Sweep(s.sessionTTL); n > 0 {
					log.Printf("[session] expired %d idle sessions", n)
				}
			}
		}
	})

	g.Go(func() error {
		<-ctx.Done()
		return s.Shutdown()
	})

	return g.Wait()
}

// Shutdown stops accepting requests, ends event streams and cancels in-flight uploads.
func (s *Server) Shutdown() error {
	log.Println("Shutting down server...")
	s.closeOnce.Do(func() { close(s.closing) })
	// Uploads block their handlers, so they are cancelled before draining connections.
	s.sessions.Close()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := s.httpServer.Shutdown(ctx)

	s.rateLimiter.Stop()
	s.sessions.Close()

	if err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit rejects clients that exceed their tier with 429.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(clientID(r), r.Method, r.URL.Path)
		setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// clientID uses the remote IP address.
func clientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

func setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]any{
		"error":   "rate_limit_exceeded",
		"message": "Too many roasts. Please try again later.",
		"limit":   info.Limit,
	}
	if info.RetryAfter > 0 {
		seconds := int(info.RetryAfter.Seconds()) + 1
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", fmt.Sprintf("%d", seconds))
	}

	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Reset=%s",
		info.Limit, info.ResetTime.Format(time.RFC3339))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
