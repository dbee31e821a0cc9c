package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	lru "github.com/hashicorp/golang-lru/v2"

	pscerrors "github.com/matzehuels/pscdeps/pkg/errors"
	"github.com/matzehuels/pscdeps/pkg/pipeline"
)

// DefaultCacheSize bounds the response cache when Options.CacheSize is zero.
const DefaultCacheSize = 256

const shutdownTimeout = 10 * time.Second

// Options configures a [Server].
type Options struct {
	// CacheSize bounds the number of memoized responses.
	CacheSize int
	// Version is reported by /healthz.
	Version string
}

// Server answers queries against one snapshot.
type Server struct {
	snap      *pipeline.Snapshot
	logger    *log.Logger
	version   string
	started   time.Time
	responses *lru.Cache[string, response]
	router    chi.Router
}

// New creates a server over snap. A nil logger discards output.
func New(snap *pipeline.Snapshot, logger *log.Logger, opts Options) (*Server, error) {
	if snap == nil {
		return nil, errors.New("server needs a loaded snapshot")
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	size := opts.CacheSize
	if size <= 0 {
		size = DefaultCacheSize
	}
	responses, err := lru.New[string, response](size)
	if err != nil {
		return nil, fmt.Errorf("create response cache: %w", err)
	}

	s := &Server{
		snap:      snap,
		logger:    logger,
		version:   opts.Version,
		started:   time.Now(),
		responses: responses,
	}
	s.router = s.routes()
	return s, nil
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/packages", s.handlePackages)
		r.Get("/dependents/{name}", s.handleDependents)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusNotFound, string(pscerrors.ErrCodeNotFound), "no route for "+r.URL.Path)
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()
	s.logger.Info("serving", "addr", ln.Addr().String(), "packages", len(s.snap.Projects))

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
